package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"machinehub/internal/core/domain"

	"github.com/spf13/cobra"
)

// MachinesCmd groups machine commands
func MachinesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "machines",
		Short: "Browse and manage machines",
	}

	cmd.AddCommand(machinesListCmd())
	cmd.AddCommand(machinesMineCmd())

	return cmd
}

// machinesListCmd lists the public catalog (no login needed)
func machinesListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List machines in the catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result struct {
				Data []machineRow `json:"data"`
				Meta struct {
					Total int64 `json:"total"`
				} `json:"meta"`
			}
			if err := apiGet("/api/v1/machines", &result); err != nil {
				return err
			}

			printMachines(result.Data)
			fmt.Printf("%d machine(s) total\n", result.Meta.Total)
			return nil
		},
	}
}

// machinesMineCmd lists the caller's own machines (owner surface)
func machinesMineCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mine",
		Short: "List your own machine listings",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireAccess("/owner/machines", domain.RoleOwner, domain.RoleAdmin); err != nil {
				return err
			}

			var result struct {
				Machines []machineRow `json:"machines"`
			}
			if err := apiGet("/api/v1/owner/machines", &result); err != nil {
				return err
			}

			printMachines(result.Machines)
			return nil
		},
	}
}

type machineRow struct {
	ID           uint    `json:"id"`
	Name         string  `json:"name"`
	CategoryName string  `json:"category_name"`
	DailyRate    float64 `json:"daily_rate"`
	Location     string  `json:"location"`
	IsActive     bool    `json:"is_active"`
}

func printMachines(machines []machineRow) {
	w := tabwriter.NewWriter(os.Stdout, 0, 8, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tCATEGORY\tRATE/DAY\tLOCATION\tACTIVE")
	for _, m := range machines {
		fmt.Fprintf(w, "%d\t%s\t%s\t%.2f\t%s\t%t\n",
			m.ID, m.Name, m.CategoryName, m.DailyRate, m.Location, m.IsActive)
	}
	w.Flush()
}
