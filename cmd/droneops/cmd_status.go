package main

import (
	"fmt"

	"github.com/skyward/droneops/internal/ops"
	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show record counts per collection",
	RunE:  runStatus,
}

func runStatus(cmd *cobra.Command, args []string) error {
	_, log, store, err := bootstrap()
	if err != nil {
		return err
	}
	defer store.Close()
	defer log.Sync()

	pilots, err := store.Pilots()
	if err != nil {
		return err
	}
	drones, err := store.Drones()
	if err != nil {
		return err
	}
	missions, err := store.Missions()
	if err != nil {
		return err
	}

	availablePilots := 0
	for _, p := range pilots {
		if p.Status == ops.PilotAvailable {
			availablePilots++
		}
	}
	availableDrones := 0
	for _, d := range drones {
		if d.Status == ops.DroneAvailable {
			availableDrones++
		}
	}
	activeMissions := 0
	for _, m := range missions {
		if m.Status == ops.MissionActive {
			activeMissions++
		}
	}

	fmt.Printf("Pilots:   %d (%d available)\n", len(pilots), availablePilots)
	fmt.Printf("Drones:   %d (%d available)\n", len(drones), availableDrones)
	fmt.Printf("Missions: %d (%d active)\n", len(missions), activeMissions)
	return nil
}
