package main

import (
	"github.com/herogame/herogame/internal/auth"
	"github.com/herogame/herogame/internal/config"
	"github.com/herogame/herogame/internal/model"
	"github.com/herogame/herogame/internal/store"
	"github.com/spf13/cobra"
)

// NewSeedCmd creates the seed subcommand. It provisions a development
// account with one starter hero.
func NewSeedCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Create a development account and starter hero",
		RunE: func(cmd *cobra.Command, _ []string) error {
			username, _ := cmd.Flags().GetString("username")
			password, _ := cmd.Flags().GetString("password")
			return runSeed(cmd, username, password)
		},
	}

	cmd.Flags().String("username", "dev", "seed account username")
	cmd.Flags().String("password", "dev-password", "seed account password")

	return cmd
}

func runSeed(cmd *cobra.Command, username, password string) error {
	logger := cliLogger{}

	cfg, err := config.Load(configFile, nil)
	if err != nil {
		return err
	}

	db, err := store.Connect(cfg.Database.DSN)
	if err != nil {
		return err
	}
	defer db.Close()

	ctx := cmd.Context()

	if err := store.InitSchema(ctx, db); err != nil {
		return err
	}

	repo := store.NewRepositoryManager(db)
	repo.MustValidate()

	auther := auth.NewAuthenticator(repo.Accounts(), cfg).WithLogger(logger)

	account, err := auther.Register(ctx, &model.Account{Username: username}, password)
	if err != nil {
		return err
	}

	hero := model.NewHero(account.ID, "")
	if _, err := repo.Heroes().Create(ctx, hero); err != nil {
		return err
	}

	logger.Info("seeded account %q (id=%d) with hero %q", account.Username, account.ID, hero.Name)
	return nil
}
