package cli

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/bracketgen/pkg/cache"
)

// cacheCommand groups the artifact cache subcommands.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the rendered artifact cache",
	}
	cmd.AddCommand(
		c.cacheInfoCommand(),
		c.cacheClearCommand(),
		c.cachePathCommand(),
	)
	return cmd
}

func (c *CLI) cacheInfoCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Show the configured cache backend",
		RunE: func(cmd *cobra.Command, args []string) error {
			cc := c.config().Cache
			backend := strings.ToLower(cc.Backend)
			if backend == "" {
				backend = cache.BackendNone
			}
			ui := c.ui()

			ui.field("Backend", backend)
			ui.field("TTL", cc.TTL.String())
			switch backend {
			case cache.BackendRedis:
				ui.field("Server", redactURL(cc.RedisURL))
			case cache.BackendMongo:
				ui.field("Server", redactURL(cc.MongoURI))
				ui.field("Collection", cc.MongoDatabase+"."+cc.MongoCollection)
			case cache.BackendFile:
				fc, err := c.fileCache()
				if err != nil {
					return err
				}
				n, err := fc.Len()
				if err != nil {
					return err
				}
				ui.field("Directory", fc.Dir())
				ui.field("Entries", fmt.Sprint(n))
			}
			return nil
		},
	}
}

// cacheClearCommand empties the local file cache. Shared backends expire
// entries through their TTL and are left alone.
func (c *CLI) cacheClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove all locally cached artifacts",
		RunE: func(cmd *cobra.Command, args []string) error {
			if b := strings.ToLower(c.config().Cache.Backend); b == cache.BackendRedis || b == cache.BackendMongo {
				c.ui().warn("The %s backend is not cleared; its entries expire on their own", b)
			}

			fc, err := c.fileCache()
			if err != nil {
				return err
			}
			count, err := fc.Clear()
			if err != nil {
				return err
			}
			if count == 0 {
				c.ui().note("Cache is empty")
				return nil
			}
			c.ui().ok("Cleared %d cached entries", count)
			c.ui().detail("Directory: %s", fc.Dir())
			return nil
		},
	}
}

// cachePathCommand prints the file cache directory for scripts.
func (c *CLI) cachePathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the cache directory path",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := c.cacheDir()
			if err != nil {
				return fmt.Errorf("get cache dir: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), dir)
			return nil
		},
	}
}

// fileCache opens the local file cache regardless of the configured backend.
func (c *CLI) fileCache() (*cache.FileCache, error) {
	dir, err := c.cacheDir()
	if err != nil {
		return nil, fmt.Errorf("get cache dir: %w", err)
	}
	return cache.NewFileCache(dir)
}

// redactURL hides the password in a connection string.
func redactURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return raw
	}
	return u.Redacted()
}
