package main

import (
	"embed"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/cobra"

	"github.com/fenlow/presskit"
	"github.com/fenlow/presskit/views"
)

//go:embed content/*.md
var embeddedContent embed.FS

func newServeCommand() *cobra.Command {
	var (
		configPath string
		contentDir string
		staticDir  string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the site",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := presskit.LoadSiteConfig(configPath)
			if err != nil {
				return err
			}

			fsys, err := contentFS(contentDir)
			if err != nil {
				return err
			}
			posts, err := presskit.LoadPosts(fsys)
			if err != nil {
				return err
			}

			app := presskit.New(cfg, posts, views.Defaults(cfg),
				presskit.WithStaticDir(staticDir),
			)
			defer app.Close()
			return app.Start()
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "site.toml", "path to the site config file")
	cmd.Flags().StringVar(&contentDir, "content", "", "serve posts from this directory instead of the embedded content")
	cmd.Flags().StringVar(&staticDir, "static", "public", "directory for static assets")
	return cmd
}

func contentFS(dir string) (fs.FS, error) {
	if dir == "" {
		return fs.Sub(embeddedContent, "content")
	}
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("content dir: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("content dir %s is not a directory", dir)
	}
	return os.DirFS(dir), nil
}
