package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"machinehub/internal/core/domain"

	"github.com/spf13/cobra"
)

// BookingsCmd groups booking commands
func BookingsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bookings",
		Short: "View bookings",
	}

	cmd.AddCommand(bookingsMyCmd())
	cmd.AddCommand(bookingsIncomingCmd())

	return cmd
}

// bookingsMyCmd shows the caller's own bookings, any logged-in role
func bookingsMyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "my",
		Short: "List your bookings grouped by status",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireAccess("/bookings/my",
				domain.RoleCustomer, domain.RoleOwner, domain.RoleAdmin); err != nil {
				return err
			}

			var result groupedBookings
			if err := apiGet("/api/v1/bookings/my", &result); err != nil {
				return err
			}

			printGroupedBookings(result)
			return nil
		},
	}
}

// bookingsIncomingCmd shows bookings on the caller's machines (owner surface)
func bookingsIncomingCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "incoming",
		Short: "List bookings on your machines grouped by status",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireAccess("/owner/bookings", domain.RoleOwner, domain.RoleAdmin); err != nil {
				return err
			}

			var result groupedBookings
			if err := apiGet("/api/v1/owner/bookings", &result); err != nil {
				return err
			}

			printGroupedBookings(result)
			return nil
		},
	}
}

type groupedBookings struct {
	Groups  map[string][]bookingRow `json:"groups"`
	Order   []string                `json:"order"`
	Unknown []bookingRow            `json:"unknown"`
}

type bookingRow struct {
	ID        uint   `json:"id"`
	MachineID uint   `json:"machine_id"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	Status    string `json:"status"`
}

func printGroupedBookings(result groupedBookings) {
	w := tabwriter.NewWriter(os.Stdout, 0, 8, 2, ' ', 0)
	for _, status := range result.Order {
		bookings := result.Groups[status]
		fmt.Fprintf(w, "%s (%d)\n", status, len(bookings))
		for _, b := range bookings {
			fmt.Fprintf(w, "  #%d\tmachine %d\t%s → %s\n", b.ID, b.MachineID, b.StartDate, b.EndDate)
		}
	}
	w.Flush()

	if len(result.Unknown) > 0 {
		fmt.Printf("%d booking(s) with unrecognized status not shown\n", len(result.Unknown))
	}
}
