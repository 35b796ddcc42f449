package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// signoutCmd represents the signout command
var signoutCmd = &cobra.Command{
	Use:   "signout",
	Short: "Sign out and forget the stored tokens",
	RunE:  runSignOut,
}

func init() {
	rootCmd.AddCommand(signoutCmd)
}

func runSignOut(cmd *cobra.Command, args []string) error {
	a, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = a.Close() }()

	if err := a.Session.SignOut(cmd.Context()); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "Signed out")
	printRoute(out, a.Router)
	return nil
}
