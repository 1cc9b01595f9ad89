package main

import (
	"os/signal"
	"syscall"

	"github.com/herogame/herogame/internal/auth"
	"github.com/herogame/herogame/internal/config"
	"github.com/herogame/herogame/internal/server"
	"github.com/herogame/herogame/internal/store"
	"github.com/spf13/cobra"
)

// NewServeCmd creates the serve subcommand.
func NewServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd)
		},
	}

	// flag defaults mirror config.Default so an untouched flag never
	// clobbers a value from the file or the environment
	def := config.Default()
	cmd.Flags().String("server.address", def.Server.Address, "listen address")
	cmd.Flags().String("database.dsn", def.Database.DSN, "sqlite dsn")
	cmd.Flags().String("auth.signing_key", "", "session token signing key")
	cmd.Flags().Int("auth.token_expiration", def.Auth.TokenExpiration, "session token lifetime in hours")

	return cmd
}

func runServe(cmd *cobra.Command) error {
	logger := cliLogger{}

	cfg, err := config.Load(configFile, cmd.Flags())
	if err != nil {
		return err
	}

	db, err := store.Connect(cfg.Database.DSN)
	if err != nil {
		return err
	}
	defer db.Close()

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := store.InitSchema(ctx, db); err != nil {
		return err
	}

	repo := store.NewRepositoryManager(db)
	repo.MustValidate()

	auther := auth.NewAuthenticator(repo.Accounts(), cfg).WithLogger(logger)

	srv := server.New(cfg, repo, auther, logger)
	return srv.Run(ctx)
}
