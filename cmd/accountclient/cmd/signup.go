package cmd

import (
	"bufio"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ideamans/accountclient/pkg/validate"
)

var (
	signUpEmail           string
	signUpPassword        string
	signUpConfirmPassword string
)

// signupCmd represents the signup command
var signupCmd = &cobra.Command{
	Use:   "signup",
	Short: "Create an account and sign in",
	Long: `Register a new account with the account service and store the issued tokens.

Password and confirmation are read from standard input when their flags are omitted.`,
	RunE: runSignUp,
}

func init() {
	signupCmd.Flags().StringVarP(&signUpEmail, "email", "e", "", "Account e-mail address")
	signupCmd.Flags().StringVarP(&signUpPassword, "password", "p", "", "Password, 6 to 30 characters (prompted when omitted)")
	signupCmd.Flags().StringVar(&signUpConfirmPassword, "confirm-password", "", "Password again (prompted when omitted)")
	rootCmd.AddCommand(signupCmd)
}

func runSignUp(cmd *cobra.Command, args []string) error {
	in := bufio.NewReader(cmd.InOrStdin())
	password, err := readSecret(cmd, in, signUpPassword, "Password")
	if err != nil {
		return err
	}
	confirm, err := readSecret(cmd, in, signUpConfirmPassword, "Confirm password")
	if err != nil {
		return err
	}

	form := validate.SignUpForm{Email: signUpEmail, Password: password, ConfirmPassword: confirm}
	if err := form.Validate(); err != nil {
		return formError(err)
	}

	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = a.Close() }()

	if err := a.Session.SignUp(cmd.Context(), form.Email, form.Password); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Account created, signed in as %s\n", a.Session.State().CurrentUser.Email())
	printRoute(out, a.Router)
	return nil
}
