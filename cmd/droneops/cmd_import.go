package main

import (
	"fmt"

	"github.com/skyward/droneops/internal/storage"
	"github.com/spf13/cobra"
)

var (
	importPilotsPath   string
	importDronesPath   string
	importMissionsPath string
)

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Seed the record store from CSV exports",
	Long:  `Imports pilot, drone and mission records from CSV files whose header rows use the store's schema field names.`,
	RunE:  runImport,
}

func init() {
	importCmd.Flags().StringVar(&importPilotsPath, "pilots", "", "pilot roster CSV file")
	importCmd.Flags().StringVar(&importDronesPath, "drones", "", "drone fleet CSV file")
	importCmd.Flags().StringVar(&importMissionsPath, "missions", "", "missions CSV file")
}

func runImport(cmd *cobra.Command, args []string) error {
	cfg, log, store, err := bootstrap()
	if err != nil {
		return err
	}
	defer store.Close()
	defer log.Sync()

	// flags win; the ops config section supplies the defaults
	if importPilotsPath == "" {
		importPilotsPath = cfg.Ops.PilotsCSV
	}
	if importDronesPath == "" {
		importDronesPath = cfg.Ops.DronesCSV
	}
	if importMissionsPath == "" {
		importMissionsPath = cfg.Ops.MissionsCSV
	}
	if importPilotsPath == "" && importDronesPath == "" && importMissionsPath == "" {
		return fmt.Errorf("nothing to import: pass --pilots, --drones and/or --missions, or set the [ops] config section")
	}

	imports := []struct {
		collection storage.Collection
		path       string
	}{
		{storage.CollectionPilots, importPilotsPath},
		{storage.CollectionDrones, importDronesPath},
		{storage.CollectionMissions, importMissionsPath},
	}

	for _, imp := range imports {
		if imp.path == "" {
			continue
		}
		count, err := store.ImportCSV(imp.collection, imp.path)
		if err != nil {
			return fmt.Errorf("import %s: %w", imp.collection, err)
		}
		fmt.Printf("Imported %d %s record(s) from %s\n", count, imp.collection, imp.path)
	}
	return nil
}
