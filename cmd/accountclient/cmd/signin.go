package cmd

import (
	"bufio"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/ideamans/accountclient/pkg/router"
	"github.com/ideamans/accountclient/pkg/validate"
)

var (
	signInEmail    string
	signInPassword string
)

// signinCmd represents the signin command
var signinCmd = &cobra.Command{
	Use:   "signin",
	Short: "Sign in with e-mail and password",
	Long: `Sign in to the account service and store the issued tokens.

The password is read from standard input when --password is omitted.`,
	RunE: runSignIn,
}

func init() {
	signinCmd.Flags().StringVarP(&signInEmail, "email", "e", "", "Account e-mail address")
	signinCmd.Flags().StringVarP(&signInPassword, "password", "p", "", "Account password (prompted when omitted)")
	rootCmd.AddCommand(signinCmd)
}

func runSignIn(cmd *cobra.Command, args []string) error {
	in := bufio.NewReader(cmd.InOrStdin())
	password, err := readSecret(cmd, in, signInPassword, "Password")
	if err != nil {
		return err
	}

	form := validate.SignInForm{Email: signInEmail, Password: password}
	if err := form.Validate(); err != nil {
		return formError(err)
	}

	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = a.Close() }()

	if err := a.Session.SignIn(cmd.Context(), form.Email, form.Password); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Signed in as %s\n", a.Session.State().CurrentUser.Email())
	printRoute(out, a.Router)
	return nil
}

// printRoute reports where the guard sent the client, if anywhere.
func printRoute(w io.Writer, r *router.Router) {
	loc := r.Current()
	if loc.Path == "" {
		return
	}
	fmt.Fprintf(w, "Route: %s (%s)\n", r.URL(loc.Path), loc.Name)
}
