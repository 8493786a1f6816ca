package main

import (
	"fmt"

	"github.com/skyward/droneops/internal/assignment"
	"github.com/spf13/cobra"
)

var (
	assignMissionID string
	assignPilotID   string
	assignDroneID   string
)

var assignCmd = &cobra.Command{
	Use:   "assign",
	Short: "Assign resources to a mission",
	Long:  `Assigns a specific pilot and/or drone to a mission, or auto-assigns by first-fit matching when neither is given.`,
	RunE:  runAssign,
}

func init() {
	assignCmd.Flags().StringVar(&assignMissionID, "mission", "", "mission ID to assign (required)")
	assignCmd.Flags().StringVar(&assignPilotID, "pilot", "", "specific pilot ID to assign")
	assignCmd.Flags().StringVar(&assignDroneID, "drone", "", "specific drone ID to assign")
	assignCmd.MarkFlagRequired("mission")
}

func runAssign(cmd *cobra.Command, args []string) error {
	_, log, store, err := bootstrap()
	if err != nil {
		return err
	}
	defer store.Close()
	defer log.Sync()

	svc := assignment.NewService(store, log)

	if assignPilotID == "" && assignDroneID == "" {
		pilot, drone, err := svc.AutoAssign(assignMissionID)
		if err != nil {
			return err
		}
		if pilot == nil && drone == nil {
			fmt.Printf("No eligible resources for mission %s\n", assignMissionID)
			return nil
		}
		if pilot != nil {
			fmt.Printf("Assigned pilot %s (%s) to mission %s\n", pilot.ID, pilot.Name, assignMissionID)
		}
		if drone != nil {
			fmt.Printf("Assigned drone %s (%s) to mission %s\n", drone.ID, drone.Model, assignMissionID)
		}
		return nil
	}

	if err := svc.Assign(assignMissionID, assignPilotID, assignDroneID); err != nil {
		return err
	}
	fmt.Printf("Mission %s assignment recorded\n", assignMissionID)
	return nil
}
