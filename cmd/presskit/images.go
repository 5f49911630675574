package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fenlow/presskit"
)

func newImagesCommand() *cobra.Command {
	var (
		srcDir string
		dstDir string
	)

	cmd := &cobra.Command{
		Use:   "images",
		Short: "Resize article images into web-sized JPEGs",
		RunE: func(cmd *cobra.Command, args []string) error {
			processed, err := presskit.PrepareImages(srcDir, dstDir)
			for _, img := range processed {
				fmt.Fprintf(cmd.OutOrStdout(), "%s -> %s (%dx%d, %d bytes)\n",
					img.Source, img.Filename, img.Width, img.Height, img.Size)
			}
			return err
		},
	}

	cmd.Flags().StringVar(&srcDir, "src", "images", "directory with source images")
	cmd.Flags().StringVar(&dstDir, "dst", "public/images", "output directory for processed images")
	return cmd
}
