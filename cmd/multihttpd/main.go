// Command multihttpd runs the document-root-and-upload HTTP/1.1 server.
// Wiring follows dharzan-VaultDrop/cmd/vaultdrop's cobra + signal.NotifyContext
// shape: a single root command, context-based cancellation on SIGINT/SIGTERM,
// and a non-zero exit on any startup failure.
package main

import (
	"context"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/yourusername/multihttpd/internal/config"
	"github.com/yourusername/multihttpd/internal/connection"
	"github.com/yourusername/multihttpd/internal/handlers"
	"github.com/yourusername/multihttpd/internal/logging"
	"github.com/yourusername/multihttpd/internal/pool"
	"github.com/yourusername/multihttpd/internal/sockettune"
	"github.com/yourusername/multihttpd/internal/storage"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCommand().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "multihttpd: %v\n", err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var documentRoot string

	cmd := &cobra.Command{
		Use:   "multihttpd [port] [host] [workers]",
		Short: "Multi-threaded HTTP/1.1 origin server",
		Args:  cobra.MaximumNArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), args, documentRoot)
		},
	}
	cmd.Flags().StringVar(&documentRoot, "document-root", ".", "Directory served for GET requests and uploads")
	return cmd
}

func run(ctx context.Context, args []string, documentRoot string) error {
	cfg, err := config.Load(args, documentRoot)
	if err != nil {
		return err
	}
	authority := config.NewAuthority(cfg)
	logger := logging.New()

	listener, err := sockettune.ListenConfig().Listen(ctx, "tcp", cfg.Addr())
	if err != nil {
		return fmt.Errorf("bind %s: %w", cfg.Addr(), err)
	}

	h := handlers.New(cfg.DocumentRoot, cfg.UploadSubdir, storage.NewFileStore(), logger)

	p := pool.New(cfg.Workers, cfg.Workers*2, func(conn net.Conn) {
		connection.New(conn, cfg, authority, h, logger).Serve()
	}, logger)
	p.Start()

	acceptor := pool.NewAcceptor(listener, p, logger)
	logger.Startup(cfg.Addr(), cfg.Workers, cfg.DocumentRoot)

	err = acceptor.Run(ctx)
	p.Close()
	return err
}
