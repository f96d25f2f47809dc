package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/cockroachdb/errors"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"

	"github.com/HendryAvila/jumble/internal/search"
	"github.com/HendryAvila/jumble/internal/server"
	"github.com/HendryAvila/jumble/internal/workspace"
)

func newServeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the MCP server (stdio transport)",
		Args:  cobra.NoArgs,
		RunE:  a.serve,
	}
}

// serve loads the workspace and runs the stdio server until stdin closes
// or the process is interrupted.
func (a *app) serve(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store := workspace.NewStore(a.cfg.Root, a.cfg.WorkspaceOptions(a.log))
	searcher := search.NewSearcher(a.log)
	defer func() { _ = searcher.Close() }()
	store.OnPublish(searcher.Publish)

	if _, err := store.Rebuild(ctx); err != nil {
		return errors.Wrap(err, "loading workspace")
	}

	if a.cfg.Watch {
		w := workspace.NewWatcher(store, a.cfg.Debounce, a.log)
		go func() {
			if err := w.Run(ctx); err != nil && ctx.Err() == nil {
				a.log.Error("workspace watcher stopped", "error", err)
			}
		}()
	}

	s := server.New(store, searcher, a.log)
	stdio := mcpserver.NewStdioServer(s)
	stdio.SetErrorLogger(slog.NewLogLogger(a.log.Handler(), slog.LevelError))

	a.log.Info("serving MCP over stdio", "version", server.Version, "root", store.Root(), "watch", a.cfg.Watch)
	err := stdio.Listen(ctx, os.Stdin, os.Stdout)
	if err != nil && !errors.Is(err, context.Canceled) {
		return errors.Wrap(err, "serving stdio")
	}
	return nil
}
