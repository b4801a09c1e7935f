package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/skylinelab/watertower/pkg/cache"
	"github.com/skylinelab/watertower/pkg/config"
	"github.com/skylinelab/watertower/pkg/errors"
)

// newCacheCmd creates the cache management command.
// Clear and stats operate on the file backend only; shared backends (redis,
// mongo) are managed by their own tooling.
func newCacheCmd(configPath *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the result cache",
	}

	cmd.AddCommand(newCacheClearCmd(configPath))
	cmd.AddCommand(newCachePathCmd(configPath))
	cmd.AddCommand(newCacheStatsCmd(configPath))

	return cmd
}

// fileCacheDir resolves the directory of the file cache backend.
func fileCacheDir(configPath string) (string, error) {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return "", err
	}
	if cfg.Cache.Backend != config.BackendFile && cfg.Cache.Backend != "" {
		return "", errors.New(errors.ErrCodeUnsupported,
			"cache backend %q is not managed locally", cfg.Cache.Backend)
	}
	if cfg.Cache.Dir != "" {
		return cfg.Cache.Dir, nil
	}
	return config.DefaultCacheDir(), nil
}

// newCacheClearCmd creates the "cache clear" subcommand.
func newCacheClearCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove all cached results",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := fileCacheDir(*configPath)
			if err != nil {
				return err
			}

			c, err := cache.NewFileCache(dir)
			if err != nil {
				return err
			}
			entries, _, err := c.Stats()
			if err != nil {
				return err
			}
			if entries == 0 {
				printInfo("Cache is empty")
				return nil
			}
			if err := c.Purge(); err != nil {
				return err
			}

			printSuccess("Cleared %d cached entries", entries)
			printDetail("Directory: %s", dir)
			return nil
		},
	}
}

// newCachePathCmd creates the "cache path" subcommand.
func newCachePathCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the cache directory path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := fileCacheDir(*configPath)
			if err != nil {
				return err
			}
			fmt.Println(dir)
			return nil
		},
	}
}

// newCacheStatsCmd creates the "cache stats" subcommand.
func newCacheStatsCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show cache entry count and size",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := fileCacheDir(*configPath)
			if err != nil {
				return err
			}

			c, err := cache.NewFileCache(dir)
			if err != nil {
				return err
			}
			entries, bytes, err := c.Stats()
			if err != nil {
				return err
			}

			printKeyValue("Directory", dir)
			printKeyValue("Entries", fmt.Sprintf("%d", entries))
			printKeyValue("Size", formatBytes(bytes))
			return nil
		},
	}
}

// formatBytes renders a byte count in human units.
func formatBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(n)/float64(div), "KMGTPE"[exp])
}
