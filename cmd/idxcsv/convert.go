package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/born-ml/idxcsv/convert"
)

var convertCmd = &cobra.Command{
	Use:   "convert",
	Short: "Write one CSV row per sample: label followed by the pixel values",
	Args:  cobra.NoArgs,
	RunE:  runConvert,
}

func init() {
	addDatasetFlags(convertCmd, "output", "CSV file to create or replace")
	convertCmd.Flags().Bool("checksum", false, "Print the SHA-256 of the written file")
	rootCmd.AddCommand(convertCmd)
}

func runConvert(cmd *cobra.Command, _ []string) error {
	opts := datasetOptions(cmd, "output")
	opts.Checksum, _ = cmd.Flags().GetBool("checksum")
	vlog := logger(cmd)

	vlog.Printf("images=%s labels=%s output=%s validation=%s mmap=%t",
		opts.ImagesPath, opts.LabelsPath, opts.OutputPath, opts.ValidationLevel, opts.Mmap)

	result, err := convert.Run(opts)
	if err != nil {
		return fmt.Errorf("conversion: %w", err)
	}

	vlog.Printf("image header: magic=%d count=%d rows=%d cols=%d",
		result.ImageHeader.Magic, result.ImageHeader.Count, result.ImageHeader.Rows, result.ImageHeader.Cols)
	vlog.Printf("label header: magic=%d count=%d", result.LabelHeader.Magic, result.LabelHeader.Count)

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Saved %d samples to %s\n", result.Samples, result.OutputPath)
	if result.HasChecksum {
		fmt.Fprintf(out, "SHA-256: %s\n", result.Checksum)
	}

	return nil
}
