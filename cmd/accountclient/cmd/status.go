package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/ideamans/accountclient/pkg/token"
)

// statusCmd represents the status command
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the signed-in user",
	Long: `Restore the stored session, refreshing it when possible, and show who is signed in.

This is the default command.`,
	RunE: runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	a, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = a.Close() }()

	out := cmd.OutOrStdout()
	st := a.Session.State()
	if !st.Authenticated() {
		fmt.Fprintln(out, "Not signed in")
		printRoute(out, a.Router)
		return nil
	}

	fmt.Fprintf(out, "Signed in as %s\n", st.CurrentUser.Email())
	if name := st.CurrentUser.Name(); name != "" {
		fmt.Fprintf(out, "Name: %s\n", name)
	}
	if claims := token.NewCodec().Payload(st.IDToken); claims != nil {
		fmt.Fprintf(out, "Identity token expires: %s\n", claims.Expiry().Local().Format(time.RFC3339))
	}
	printRoute(out, a.Router)
	return nil
}
