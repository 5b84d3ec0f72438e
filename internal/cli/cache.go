package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/noticecheck/pkg/cache"
)

// cacheCommand creates the cache management command.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the license-text cache",
	}

	cmd.AddCommand(c.cacheClearCommand())
	cmd.AddCommand(c.cachePathCommand())

	return cmd
}

// cacheClearCommand creates the "cache clear" subcommand.
func (c *CLI) cacheClearCommand() *cobra.Command {
	var cacheURL string

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Clear all cached license texts",
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runCacheClear(cmd.Context(), cacheURL)
		},
	}
	cmd.Flags().StringVar(&cacheURL, "cache-url", "", "shared cache to clear instead of the local one")

	return cmd
}

func (c *CLI) runCacheClear(ctx context.Context, cacheURL string) error {
	backend, err := c.newCache(ctx, false, cacheURL)
	if err != nil {
		return err
	}
	defer backend.Close()

	clearer, ok := backend.(cache.Clearer)
	if !ok {
		printInfo(c.Out, "Cache is disabled")
		return nil
	}

	spinner := newSpinnerWithContext(ctx, c.Out, "Clearing cache...")
	spinner.Start()
	count, err := clearer.Clear(ctx)
	if err != nil {
		spinner.StopWithError("Clear failed")
		return fmt.Errorf("clear cache: %w", err)
	}
	spinner.StopWithSuccess(fmt.Sprintf("Cleared %d cached entries", count))

	if fc, ok := backend.(*cache.FileCache); ok {
		printDetail(c.Out, "Directory: %s", fc.Dir())
	}
	return nil
}

// cachePathCommand creates the "cache path" subcommand.
func (c *CLI) cachePathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the cache directory path",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := cache.DefaultDir()
			if err != nil {
				return fmt.Errorf("get cache dir: %w", err)
			}
			fmt.Fprintln(c.Out, dir)
			return nil
		},
	}
}
