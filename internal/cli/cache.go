package cli

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/spf13/cobra"

	"github.com/matzehuels/antcolor/pkg/cache"
)

// cacheCommand creates the cache management command.
func (c *CLI) cacheCommand() *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the local result cache",
	}
	cmd.PersistentFlags().StringVar(&dir, "cache-dir", "", "cache directory (default: $XDG_CACHE_HOME/"+appName+")")

	cmd.AddCommand(c.cacheClearCommand(&dir))
	cmd.AddCommand(c.cachePathCommand(&dir))

	return cmd
}

// cacheClearCommand creates the "cache clear" subcommand.
func (c *CLI) cacheClearCommand(dir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove all cached colorings and renderings",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := cacheDir(*dir)
			if err != nil {
				return fmt.Errorf("get cache dir: %w", err)
			}
			if !fileExists(path) {
				printInfo("Cache is empty")
				return nil
			}

			fc, err := cache.NewFileCache(path)
			if err != nil {
				return err
			}
			count, err := fc.Clear()
			if err != nil && !errors.Is(err, fs.ErrNotExist) {
				return fmt.Errorf("clear cache: %w", err)
			}

			printSuccess("Cleared %d cached entries", count)
			printDetail("Directory: %s", fc.Dir())
			return nil
		},
	}
}

// cachePathCommand creates the "cache path" subcommand.
func (c *CLI) cachePathCommand(dir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the cache directory path",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := cacheDir(*dir)
			if err != nil {
				return fmt.Errorf("get cache dir: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}
}
