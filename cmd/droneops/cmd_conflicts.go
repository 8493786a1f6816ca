package main

import (
	"fmt"

	"github.com/skyward/droneops/internal/conflict"
	"github.com/spf13/cobra"
)

var conflictsCmd = &cobra.Command{
	Use:   "conflicts",
	Short: "Scan for scheduling conflicts",
	RunE:  runConflicts,
}

func runConflicts(cmd *cobra.Command, args []string) error {
	_, log, store, err := bootstrap()
	if err != nil {
		return err
	}
	defer store.Close()
	defer log.Sync()

	detector := conflict.NewDetector(store, log)
	report, err := detector.Detect()
	if err != nil {
		return err
	}

	if len(report) == 0 {
		fmt.Println("No conflicts found")
		return nil
	}

	for _, c := range report {
		fmt.Printf("[%s] %s\n", c.Kind, c.Detail)
		if c.Kind == conflict.KindMaintenanceAssignment {
			alt, err := detector.SuggestReassignment(c)
			if err != nil {
				return err
			}
			if alt != nil {
				fmt.Printf("  suggestion: reassign to drone %s (%s)\n", alt.ID, alt.Model)
			} else {
				fmt.Println("  suggestion: no alternative available")
			}
		}
	}
	fmt.Printf("%d conflict(s) found\n", len(report))
	return nil
}
