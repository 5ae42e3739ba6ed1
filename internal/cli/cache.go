package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/oceanplot/pkg/cache"
)

// cacheCommand creates the cache management command.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the rendered figure cache",
	}

	cmd.AddCommand(c.cacheClearCommand())
	cmd.AddCommand(c.cachePathCommand())

	return cmd
}

// cacheClearCommand creates the "cache clear" subcommand. With a Redis URL
// it removes the oceanplot keys of that database instead of the local files.
func (c *CLI) cacheClearCommand() *cobra.Command {
	var redisURL string

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Remove all cached figures",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if redisURL != "" {
				return c.clearRedis(cmd, redisURL)
			}

			dir, err := cacheDir()
			if err != nil {
				return fmt.Errorf("get cache dir: %w", err)
			}
			if _, err := os.Stat(dir); os.IsNotExist(err) {
				printInfo("Cache is empty")
				return nil
			}

			fc, err := newFileCache()
			if err != nil {
				return err
			}
			defer fc.Close()

			count, err := fc.Clear()
			if err != nil {
				return err
			}
			printSuccess("Cleared %s cached figures", StyleNumber.Render(fmt.Sprint(count)))
			printDetail("Directory: %s", fc.Dir())
			return nil
		},
	}

	cmd.Flags().StringVar(&redisURL, "redis-url", os.Getenv(envRedisURL), "clear the Redis artifact cache (default $"+envRedisURL+")")
	return cmd
}

func (c *CLI) clearRedis(cmd *cobra.Command, redisURL string) error {
	ctx := cmd.Context()
	rc, err := cache.NewRedisCache(ctx, cache.RedisConfig{URL: redisURL})
	if err != nil {
		return err
	}
	defer rc.Close()

	count, err := rc.Clear(ctx, redisKeyPrefix+"*")
	if err != nil {
		return fmt.Errorf("clear redis cache: %w", err)
	}
	printSuccess("Cleared %s cached figures", StyleNumber.Render(fmt.Sprint(count)))
	printDetail("Redis keys: %s*", redisKeyPrefix)
	return nil
}

// cachePathCommand creates the "cache path" subcommand.
func (c *CLI) cachePathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the cache directory path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := cacheDir()
			if err != nil {
				return fmt.Errorf("get cache dir: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), dir)
			return nil
		},
	}
}
