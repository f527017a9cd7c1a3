package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/born-ml/idxcsv/convert"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Validate IDX files and print their headers",
	Args:  cobra.NoArgs,
	RunE:  runInspect,
}

func init() {
	inspectCmd.Flags().StringP("images", "i", "", "IDX image file")
	inspectCmd.Flags().StringP("labels", "l", "", "IDX label file")
	inspectCmd.Flags().Bool("mmap", false, "Memory-map the input files")
	addValidationFlags(inspectCmd)
	inspectCmd.MarkFlagsOneRequired("images", "labels")
	rootCmd.AddCommand(inspectCmd)
}

func runInspect(cmd *cobra.Command, _ []string) error {
	imagesPath, _ := cmd.Flags().GetString("images")
	labelsPath, _ := cmd.Flags().GetString("labels")
	mmap, _ := cmd.Flags().GetBool("mmap")
	opts := convert.Options{Mmap: mmap, ValidationLevel: validationLevel(cmd)}
	out := cmd.OutOrStdout()
	logger(cmd).Printf("validation=%s mmap=%t", opts.ValidationLevel, opts.Mmap)

	if imagesPath != "" {
		h, err := convert.InspectImages(imagesPath, opts)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "%s: magic=%d images=%d rows=%d cols=%d\n", imagesPath, h.Magic, h.Count, h.Rows, h.Cols)
	}

	if labelsPath != "" {
		h, err := convert.InspectLabels(labelsPath, opts)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "%s: magic=%d labels=%d\n", labelsPath, h.Magic, h.Count)
	}

	return nil
}
