package main

import (
	"context"
	"fmt"
	"net"
	"os"
	"time"

	"github.com/spf13/cobra"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/oggyb/skillswap/internal/config"
	"github.com/oggyb/skillswap/internal/logger"
	"github.com/oggyb/skillswap/internal/rpc"
)

var (
	flagAddr    string
	flagToken   string
	flagTimeout time.Duration
)

var rootCmd = &cobra.Command{
	Use:          "skillctl",
	Short:        "skillctl administers a skillswap server",
	SilenceUsage: true, // don't print usage on operational errors
	Long: `skillctl seeds demo data into the configured database, prints the skill
catalog and calls the skillswap gRPC API.

Configuration comes from the same environment variables as the server
(DB_DRIVER, MYSQL_DSN, GRPC_HOST, GRPC_PORT, ...).`,
	PersistentPreRun: func(*cobra.Command, []string) {
		logger.InitFromConfig(config.New())
	},
}

func init() {
	cfg := config.New()
	rootCmd.PersistentFlags().StringVar(&flagAddr, "addr", net.JoinHostPort(cfg.GRPC.Host, cfg.GRPC.Port), "gRPC server address")
	rootCmd.PersistentFlags().StringVar(&flagToken, "token", os.Getenv("SKILLSWAP_TOKEN"), "Bearer token (defaults to $SKILLSWAP_TOKEN)")
	rootCmd.PersistentFlags().DurationVar(&flagTimeout, "timeout", 10*time.Second, "Per-call timeout")
}

// Execute is called by main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// dial connects to the server and returns a typed client plus a call context
// carrying the bearer token, if any.
func dial(cmd *cobra.Command) (*rpc.Client, context.Context, func(), error) {
	conn, err := grpc.NewClient(flagAddr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, nil, nil, fmt.Errorf("dial %s: %w", flagAddr, err)
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), flagTimeout)
	if flagToken != "" {
		ctx = rpc.WithToken(ctx, flagToken)
	}
	cleanup := func() {
		cancel()
		_ = conn.Close()
	}
	return rpc.NewClient(conn), ctx, cleanup, nil
}

func requireToken() error {
	if flagToken == "" {
		return fmt.Errorf("not signed in: run 'skillctl login' and pass --token or set SKILLSWAP_TOKEN")
	}
	return nil
}
