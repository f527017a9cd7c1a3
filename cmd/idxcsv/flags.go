package main

import (
	"io"
	"log"

	"github.com/spf13/cobra"

	"github.com/born-ml/idxcsv/convert"
)

// addDatasetFlags registers the flags shared by convert and verify.
func addDatasetFlags(cmd *cobra.Command, outputName, outputUsage string) {
	cmd.Flags().StringP("images", "i", convert.DefaultImagesPath, "IDX image file")
	cmd.Flags().StringP("labels", "l", convert.DefaultLabelsPath, "IDX label file")
	cmd.Flags().StringP(outputName, "o", convert.DefaultOutputPath, outputUsage)
	cmd.Flags().Int("limit", 0, "Only use the first N samples (0 = all)")
	cmd.Flags().Bool("mmap", false, "Memory-map the input files")
	addValidationFlags(cmd)
}

func addValidationFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("strict", false, "Reject files whose magic number is not 2051/2049")
	cmd.Flags().Bool("no-label-check", false, "Do not check the label count against the label header")
	cmd.Flags().BoolP("verbose", "v", false, "Log header details to stderr")
	cmd.MarkFlagsMutuallyExclusive("strict", "no-label-check")
}

// datasetOptions collects the flags registered by addDatasetFlags.
func datasetOptions(cmd *cobra.Command, outputName string) convert.Options {
	opts := convert.Options{}
	opts.ImagesPath, _ = cmd.Flags().GetString("images")
	opts.LabelsPath, _ = cmd.Flags().GetString("labels")
	opts.OutputPath, _ = cmd.Flags().GetString(outputName)
	opts.Limit, _ = cmd.Flags().GetInt("limit")
	opts.Mmap, _ = cmd.Flags().GetBool("mmap")
	opts.ValidationLevel = validationLevel(cmd)
	return opts
}

func validationLevel(cmd *cobra.Command) convert.ValidationLevel {
	strict, _ := cmd.Flags().GetBool("strict")
	noLabelCheck, _ := cmd.Flags().GetBool("no-label-check")
	switch {
	case strict:
		return convert.ValidationStrict
	case noLabelCheck:
		return convert.ValidationNone
	default:
		return convert.ValidationNormal
	}
}

// logger returns a stderr logger when --verbose is set, a discarding one otherwise.
func logger(cmd *cobra.Command) *log.Logger {
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		return log.New(cmd.ErrOrStderr(), "idxcsv: ", 0)
	}
	return log.New(io.Discard, "", 0)
}
