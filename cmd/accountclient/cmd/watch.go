package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ideamans/accountclient/pkg/config"
	"github.com/ideamans/accountclient/pkg/router"
	"github.com/ideamans/accountclient/pkg/session"
	"github.com/ideamans/accountclient/pkg/shared/logging"
)

// watchCmd represents the watch command
var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Follow session and route changes until interrupted",
	Long: `Restore the stored session and print every session change and route
transition until SIGINT/SIGTERM.

When a config file is in use it is watched as well: a changed logging level
applies immediately, other changes are reported and take effect on the next run.`,
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = a.Close() }()

	out := cmd.OutOrStdout()
	unsubscribe := a.Session.Subscribe(func(c session.Change) {
		fmt.Fprintln(out, describeChange(c))
	})
	defer unsubscribe()
	a.Router.OnNavigate(func(from, to router.Location) {
		fmt.Fprintf(out, "route: %s (%s)\n", a.Router.URL(to.Path), to.Name)
	})

	if err := a.Session.Bootstrap(ctx); err != nil {
		return err
	}

	if _, err := os.Stat(cfgFile); err != nil {
		a.Logger.Info("No config file to watch, waiting for interrupt", "path", cfgFile)
		<-ctx.Done()
		return nil
	}

	watcher, err := config.NewWatcher(config.NewFileLoader(cfgFile), a.Config, a.Logger)
	if err != nil {
		return fmt.Errorf("failed to create config watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	watcher.OnChange(func(cfg *config.Config) {
		if l, ok := a.Logger.(*logging.SimpleLogger); ok && logLevel == "" {
			l.SetLevel(logging.ParseLevel(cfg.Logging.Level))
		}
		fmt.Fprintf(out, "config: reloaded (log level %s)\n", cfg.Logging.Level)
	})

	if err := watcher.Watch(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

// describeChange renders a session change on one line.
func describeChange(c session.Change) string {
	st := c.State
	switch {
	case c.Has(session.FieldCurrentUser) && st.Authenticated():
		return fmt.Sprintf("session: signed in as %s", st.CurrentUser.Email())
	case c.Has(session.FieldCurrentUser):
		return "session: signed out"
	case c.Has(session.FieldError) && st.Error != nil:
		return fmt.Sprintf("session: error: %v", st.Error)
	case st.IsLoading:
		return "session: loading"
	default:
		return "session: idle"
	}
}
