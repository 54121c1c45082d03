package main

import (
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/vango-dev/weave/internal/config"
	"github.com/vango-dev/weave/internal/errors"
)

func initCmd() *cobra.Command {
	var (
		force bool
		root  string
	)

	cmd := &cobra.Command{
		Use:         "init [dir]",
		Short:       "Write a default weave.yaml",
		Args:        cobra.MaximumNArgs(1),
		Annotations: map[string]string{skipConfig: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}
			if config.Exists(dir) && !force {
				return errors.Newf(errors.CategoryConfig, "%s already exists in %s", config.ConfigFileName, dir).
					WithSuggestion("Pass --force to overwrite it.")
			}

			cfg := config.New()
			if root != "" {
				cfg.App.Root = root
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			path := filepath.Join(dir, config.ConfigFileName)
			if err := cfg.SaveTo(path); err != nil {
				return err
			}
			success(cmd.OutOrStdout(), "Wrote %s", path)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite an existing file")
	cmd.Flags().StringVar(&root, "root", "", "Root component (default: Home)")

	return cmd
}
