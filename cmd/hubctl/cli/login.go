package cli

import (
	"fmt"

	"machinehub/internal/core/domain"

	"github.com/spf13/cobra"
)

// LoginCmd authenticates against the server and persists the session
func LoginCmd() *cobra.Command {
	var username, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in to the MachineHub server",
		RunE: func(cmd *cobra.Command, args []string) error {
			if username == "" || password == "" {
				return fmt.Errorf("--username and --password are required")
			}

			var result struct {
				AccessToken string `json:"access_token"`
				Role        string `json:"role"`
				User        struct {
					Username string `json:"username"`
				} `json:"user"`
			}

			err := apiPost("/api/v1/auth/login", map[string]string{
				"username": username,
				"password": password,
			}, &result)
			if err != nil {
				return err
			}

			// Token before role: a role without a token must never be
			// observable as logged in
			store.SetToken(result.AccessToken)
			store.SetRole(domain.Role(result.Role))

			fmt.Printf("Logged in as %s (%s)\n", result.User.Username, result.Role)
			return nil
		},
	}

	cmd.Flags().StringVarP(&username, "username", "u", "", "username")
	cmd.Flags().StringVarP(&password, "password", "p", "", "password")

	return cmd
}

// LogoutCmd clears the persisted session
func LogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Log out and forget the stored session",
		RunE: func(cmd *cobra.Command, args []string) error {
			// Best effort server-side revocation; clearing locally is
			// what actually logs this client out
			_ = apiPost("/api/v1/auth/logout", nil, nil)

			store.Clear()
			fmt.Println("Logged out")
			return nil
		},
	}
}

// WhoamiCmd prints the current session state
func WhoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the current session",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !store.IsAuthenticated() {
				fmt.Println("Not logged in")
				return nil
			}

			var result struct {
				User struct {
					Username string `json:"username"`
					Email    string `json:"email"`
					Role     string `json:"role"`
				} `json:"user"`
			}
			if err := apiGet("/api/v1/auth/me", &result); err != nil {
				// The server rejected the stored token; show what the
				// local session believes and let the user re-login
				fmt.Printf("Session role: %s (server check failed: %v)\n", store.Role(), err)
				return nil
			}

			fmt.Printf("%s <%s> role=%s admin=%t owner=%t customer=%t\n",
				result.User.Username, result.User.Email, result.User.Role,
				store.IsAdmin(), store.IsOwner(), store.IsCustomer())
			return nil
		},
	}
}
