package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Set at build time via ldflags.
var (
	version = "dev"
	commit  = "none"
)

func main() {
	rootCmd := &cobra.Command{
		Use:     "presskit",
		Short:   "presskit - a static marketing-blog engine",
		Long:    "presskit serves a blog whose posts are markdown files compiled into the binary.\nPosts carry TOML front matter; publication is gated by a published flag plus\nan unpublish override list in site.toml.",
		Version: fmt.Sprintf("%s (commit: %s)", version, commit),
	}

	rootCmd.AddCommand(newServeCommand())
	rootCmd.AddCommand(newImagesCommand())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
