package cmd

import (
	"github.com/spf13/cobra"
)

// meCmd represents the me command
var meCmd = &cobra.Command{
	Use:   "me",
	Short: "Fetch the signed-in user from the account service",
	RunE:  runMe,
}

func init() {
	rootCmd.AddCommand(meCmd)
}

func runMe(cmd *cobra.Command, args []string) error {
	a, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = a.Close() }()

	user, gerr := a.Account.Me(cmd.Context())
	if gerr != nil {
		return gerr
	}
	return printUser(cmd.OutOrStdout(), user)
}
