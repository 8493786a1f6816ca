// Command droneops is the drone operations coordinator: it tracks the
// pilot roster, the drone fleet and client missions, assigns resources
// and flags scheduling conflicts.
package main

import (
	"fmt"
	"os"

	"github.com/skyward/droneops/internal/config"
	"github.com/skyward/droneops/internal/storage/sqlite"
	"github.com/skyward/droneops/pkg/logger"
	"github.com/spf13/cobra"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "droneops",
	Short: "Drone operations coordinator",
	Long:  `Coordinates drone pilots, drones and client missions: availability tracking, resource assignment and conflict detection.`,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to TOML config file")
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(conflictsCmd)
	rootCmd.AddCommand(assignCmd)
	rootCmd.AddCommand(updatePilotCmd)
	rootCmd.AddCommand(importCmd)
}

// bootstrap loads config, builds the logger and opens the record store
func bootstrap() (*config.Config, *logger.Logger, *sqlite.Store, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, nil, err
	}

	log, err := logger.New(logger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
	})
	if err != nil {
		return nil, nil, nil, err
	}

	store, err := sqlite.New(cfg.Database.Path, log)
	if err != nil {
		return nil, nil, nil, err
	}

	return cfg, log, store, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
