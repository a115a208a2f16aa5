package cmd

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/kuntur-detector/case-service/internal/config"
	"github.com/kuntur-detector/case-service/internal/storage"
)

var (
	migrateFrom string
	migrateTo   string
)

var migrateStoreCmd = &cobra.Command{
	Use:   "migrate-store",
	Short: "Copy the case document between storage drivers (file <-> redis)",
	RunE:  runMigrateStore,
}

func init() {
	migrateStoreCmd.Flags().StringVar(&migrateFrom, "from", config.StoreDriverFile, "source driver: file or redis")
	migrateStoreCmd.Flags().StringVar(&migrateTo, "to", config.StoreDriverRedis, "destination driver: file or redis")
}

func storeFor(cfg *config.Config, driver string) (storage.Store, error) {
	switch driver {
	case config.StoreDriverFile:
		return storage.NewFileStore(cfg.CasesFile), nil
	case config.StoreDriverRedis:
		return storage.NewRedisStore(cfg.RedisAddr, cfg.RedisKey), nil
	}
	return nil, fmt.Errorf("unknown driver %q (want file or redis)", driver)
}

func runMigrateStore(cmd *cobra.Command, args []string) error {
	_ = godotenv.Load(".env")
	_ = godotenv.Load("../.env")
	if migrateFrom == migrateTo {
		return fmt.Errorf("--from and --to are both %q", migrateFrom)
	}
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	src, err := storeFor(cfg, migrateFrom)
	if err != nil {
		return err
	}
	dst, err := storeFor(cfg, migrateTo)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
	defer cancel()

	cases, err := src.Load(ctx)
	if err != nil {
		return fmt.Errorf("load from %s: %w", migrateFrom, err)
	}
	if err := dst.Save(ctx, cases); err != nil {
		return fmt.Errorf("save to %s: %w", migrateTo, err)
	}
	log.Printf("migrate-store: copied %d cases from %s to %s", len(cases), migrateFrom, migrateTo)
	return nil
}
