package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/oggyb/skillswap/internal/catalog"
	"github.com/oggyb/skillswap/internal/config"
	"github.com/oggyb/skillswap/internal/db"
)

var (
	flagSeedUsers    int
	flagSeedSeed     int64
	flagSeedPassword string
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Wipe the database and load demo accounts, profiles and connections",
	Args:  cobra.NoArgs,
	RunE:  runSeed,
}

func init() {
	def := db.DefaultSeedOptions()
	seedCmd.Flags().IntVar(&flagSeedUsers, "users", def.Users, "Number of demo users")
	seedCmd.Flags().Int64Var(&flagSeedSeed, "seed", def.Seed, "Random seed; the same seed gives the same dataset")
	seedCmd.Flags().StringVar(&flagSeedPassword, "password", def.Password, "Password shared by every demo account")
	rootCmd.AddCommand(seedCmd)
}

func runSeed(cmd *cobra.Command, _ []string) error {
	cfg := config.New()

	cat, err := catalog.Load(cfg.Catalog.Path)
	if err != nil {
		return fmt.Errorf("cannot load catalog: %w", err)
	}

	database, err := db.NewDB(cfg)
	if err != nil {
		return fmt.Errorf("cannot open database: %w", err)
	}

	res, err := db.SeedTestData(database.WithContext(cmd.Context()), db.SeedOptions{
		Users:    flagSeedUsers,
		Seed:     flagSeedSeed,
		Password: flagSeedPassword,
		Catalog:  cat,
	})
	if err != nil {
		return fmt.Errorf("seeding failed: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Seeded %d accounts and %d connections (user1@example.com .. user%d@example.com).\n",
		res.Accounts, res.Connections, res.Accounts)
	return nil
}
