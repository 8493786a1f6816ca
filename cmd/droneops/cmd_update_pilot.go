package main

import (
	"fmt"

	"github.com/skyward/droneops/internal/ops"
	"github.com/skyward/droneops/internal/roster"
	"github.com/spf13/cobra"
)

var updatePilotCmd = &cobra.Command{
	Use:   "update-pilot PILOT_ID STATUS",
	Short: "Update a pilot's status",
	Long:  `Sets a pilot's status to one of: Available, Assigned, On Leave, Unavailable.`,
	Args:  cobra.ExactArgs(2),
	RunE:  runUpdatePilot,
}

func runUpdatePilot(cmd *cobra.Command, args []string) error {
	pilotID := args[0]
	status, err := ops.ParsePilotStatus(args[1])
	if err != nil {
		return err
	}

	_, log, store, err := bootstrap()
	if err != nil {
		return err
	}
	defer store.Close()
	defer log.Sync()

	svc := roster.NewService(store, log)
	if err := svc.UpdateStatus(pilotID, status); err != nil {
		return err
	}
	fmt.Printf("Updated pilot %s to %s\n", pilotID, status)
	return nil
}
