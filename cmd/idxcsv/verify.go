package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/born-ml/idxcsv/convert"
)

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Check that a CSV file is exactly the conversion of an IDX image/label pair",
	Args:  cobra.NoArgs,
	RunE:  runVerify,
}

func init() {
	addDatasetFlags(verifyCmd, "csv", "CSV file to check")
	rootCmd.AddCommand(verifyCmd)
}

func runVerify(cmd *cobra.Command, _ []string) error {
	opts := datasetOptions(cmd, "csv")
	logger(cmd).Printf("verifying %s against %s and %s", opts.OutputPath, opts.ImagesPath, opts.LabelsPath)

	if err := convert.Verify(opts); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s matches %s and %s\n", opts.OutputPath, opts.ImagesPath, opts.LabelsPath)
	return nil
}
