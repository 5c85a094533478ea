package cli

import (
	"fmt"
	"os"

	"machinehub/internal/core/domain"
	"machinehub/internal/pkg/guard"
	"machinehub/internal/pkg/session"

	"github.com/spf13/cobra"
)

var (
	apiBase     string
	sessionFile string

	// store is the CLI's session store, rehydrated before every command
	// so a login from a previous invocation is still in effect
	store *session.Store
)

// RootCmd builds the hubctl command tree
func RootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "hubctl",
		Short: "MachineHub command line client",
		Long: `hubctl talks to a MachineHub server. Log in once; the session
is persisted and survives across invocations until you log out.`,

		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			store = session.Init(session.NewFileStorage(sessionFile))
		},
	}

	cmd.PersistentFlags().StringVar(&apiBase, "api", envOr("MACHINEHUB_API", "http://localhost:3000"), "MachineHub server base URL")
	cmd.PersistentFlags().StringVar(&sessionFile, "session", envOr("SESSION_FILE", defaultSessionFile()), "session file path")

	cmd.AddCommand(LoginCmd())
	cmd.AddCommand(LogoutCmd())
	cmd.AddCommand(WhoamiCmd())
	cmd.AddCommand(MachinesCmd())
	cmd.AddCommand(BookingsCmd())
	cmd.AddCommand(UsersCmd())

	return cmd
}

// InitAndExecute runs the root command
func InitAndExecute() {
	if err := RootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// requireAccess runs the guard for the given surface before a command
// touches the API. Denied turns into an error naming where the user
// should go instead of the protected surface.
func requireAccess(path string, roles ...domain.Role) error {
	decision := guard.New(store, roles...).Evaluate(path)

	switch decision.State {
	case guard.StateAllowed:
		return nil
	case guard.StateDenied:
		if !store.IsAuthenticated() {
			return fmt.Errorf("not logged in (run 'hubctl login'; wanted %s)", decision.RedirectTo)
		}
		return fmt.Errorf("role %s may not access %s (redirected to %s)", store.Role(), path, decision.RedirectTo)
	default:
		// Init rehydrates before commands run, so Checking here means a bug
		return fmt.Errorf("session not ready")
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func defaultSessionFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".machinehub-session.json"
	}
	return home + "/.machinehub-session.json"
}
