package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/bloom/internal/server"
	"github.com/matzehuels/bloom/pkg/observability"
)

func (c *CLI) serveCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the editor HTTP API",
		Long: `Run the editor HTTP API.

Each browser gets its own session, identified by a cookie or the
X-Bloom-Session header. Sessions are kept in the store configured under
[store]; derived previews and outlines in the cache configured under [editor].`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Server.Addr = addr
			}

			ed, closeAll, err := openEditor(ctx, cfg, c.Logger, false)
			if err != nil {
				return err
			}
			defer closeAll()

			observability.NewLogHooks(c.Logger).Install()
			defer observability.Reset()

			c.Logger.Info("session store", "backend", cfg.Store.Backend, "cache", cfg.Editor.Cache, "ttl", cfg.SessionTTL())
			srv := server.New(ed, c.Logger, server.Options{
				AllowedOrigins: cfg.Server.AllowedOrigins,
				CookieName:     cfg.Server.CookieName,
				CookieTTL:      cfg.SessionTTL(),
			})
			return srv.ListenAndServe(ctx, cfg.Server.Addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides server.addr)")
	return cmd
}
