package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ideamans/accountclient/cmd/accountclient/cmd/app"
)

var (
	cfgFile  string
	logLevel string
	version  = "dev" // Set by build
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "accountclient",
	Short: "accountclient - command-line client for the account service",
	Long: `accountclient signs users in and out of the account service, keeps the
identity and refresh tokens in local storage, and calls the authenticated
account endpoints on their behalf.

Tokens survive between runs: every command restores the stored session
first and refreshes it when the refresh token is still valid.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	// Default to status command when no subcommand is specified
	RunE: func(cmd *cobra.Command, args []string) error {
		return statusCmd.RunE(cmd, args)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags available to all commands
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "accountclient.yaml", "Path to configuration file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Override logging.level (debug, info, warn, error)")
}

// openApp wires the client from the persistent flags.
func openApp(cmd *cobra.Command) (*app.App, error) {
	return app.New(cmd.Context(), app.Options{
		ConfigPath: cfgFile,
		LogLevel:   logLevel,
	})
}

// openSession wires the client and restores the stored session.
func openSession(cmd *cobra.Command) (*app.App, error) {
	a, err := openApp(cmd)
	if err != nil {
		return nil, err
	}
	if err := a.Session.Bootstrap(cmd.Context()); err != nil {
		_ = a.Close()
		return nil, err
	}
	return a, nil
}
