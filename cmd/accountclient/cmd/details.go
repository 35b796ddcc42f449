package cmd

import (
	"github.com/spf13/cobra"

	"github.com/ideamans/accountclient/pkg/session"
	"github.com/ideamans/accountclient/pkg/validate"
)

var (
	detailsName    string
	detailsEmail   string
	detailsWebsite string
)

// detailsCmd represents the details command
var detailsCmd = &cobra.Command{
	Use:   "details",
	Short: "Update name, e-mail and website of the signed-in user",
	Long: `Update the account details of the signed-in user.

--email defaults to the current e-mail address. An empty --name or --website
clears that field.`,
	RunE: runDetails,
}

func init() {
	detailsCmd.Flags().StringVar(&detailsName, "name", "", "Display name, at most 60 characters")
	detailsCmd.Flags().StringVarP(&detailsEmail, "email", "e", "", "E-mail address (default: current)")
	detailsCmd.Flags().StringVar(&detailsWebsite, "website", "", "Website URL")
	rootCmd.AddCommand(detailsCmd)
}

func runDetails(cmd *cobra.Command, args []string) error {
	a, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = a.Close() }()

	st := a.Session.State()
	if !st.Authenticated() {
		return session.ErrNotSignedIn
	}

	email := detailsEmail
	if email == "" {
		email = st.CurrentUser.Email()
	}
	form := validate.DetailsForm{Name: detailsName, Email: email, Website: detailsWebsite}
	if err := form.Validate(); err != nil {
		return formError(err)
	}

	user, gerr := a.Account.UpdateDetails(cmd.Context(), form)
	if gerr != nil {
		return gerr
	}
	return printUser(cmd.OutOrStdout(), user)
}
