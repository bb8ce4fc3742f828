package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/taskwise-ai/taskwise/internal/server"
)

var serveAddrFlag string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the JSON HTTP API server",
	Long: `Run the TaskWise HTTP API server.

The server exposes task CRUD under /api/tasks plus suggestion endpoints
(/api/suggest, /api/prioritize, /api/deadline, /api/steps, /api/insights)
for web frontends. The reminder monitor runs alongside it.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if TaskMgr == nil || Gateway == nil {
			return fmt.Errorf("services not initialized")
		}

		addr := serveAddrFlag
		if addr == "" {
			addr = Settings.Server.Addr
		}

		srv := server.NewServer(TaskMgr, Gateway, Enricher, Settings.Server.AllowedOrigins, log.Default())

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		if Monitor != nil {
			go Monitor.Run(ctx)
		}

		if err := srv.ListenAndServe(ctx, addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("running API server: %w", err)
		}
		return nil
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveAddrFlag, "addr", "", "listen address (defaults to server.addr from config)")
	rootCmd.AddCommand(serveCmd)
}
