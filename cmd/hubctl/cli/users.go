package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"machinehub/internal/core/domain"

	"github.com/spf13/cobra"
)

// UsersCmd groups user administration commands
func UsersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "users",
		Short: "Administer users",
	}

	cmd.AddCommand(usersListCmd())

	return cmd
}

// usersListCmd lists platform users (admin surface)
func usersListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all users",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireAccess("/admin/users", domain.RoleAdmin); err != nil {
				return err
			}

			var result struct {
				Users []struct {
					ID       uint   `json:"id"`
					Username string `json:"username"`
					Email    string `json:"email"`
					Role     string `json:"role"`
					IsActive bool   `json:"is_active"`
				} `json:"users"`
				Total int64 `json:"total"`
			}
			if err := apiGet("/api/v1/users", &result); err != nil {
				return err
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 8, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tUSERNAME\tEMAIL\tROLE\tACTIVE")
			for _, u := range result.Users {
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%t\n", u.ID, u.Username, u.Email, u.Role, u.IsActive)
			}
			w.Flush()

			fmt.Printf("%d user(s) total\n", result.Total)
			return nil
		},
	}
}
