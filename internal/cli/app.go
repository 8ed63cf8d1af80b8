// Package cli implements ddmsctl, the operator console for the DDMS API.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/fatih/color"
	"github.com/sangkips/ddms-api/internal/client"
	"github.com/sangkips/ddms-api/internal/logging"
	"github.com/sangkips/ddms-api/internal/notify"
	"github.com/sangkips/ddms-api/pkg/clock"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var errNotLoggedIn = errors.New("not logged in, run 'ddmsctl login' first")

// App holds what every command shares. One App serves a whole process,
// including every command typed into the shell.
type App struct {
	v      *viper.Viper
	in     io.Reader
	out    io.Writer
	outMu  sync.Mutex
	clock  clock.Clock
	cfg    Config
	log    *zap.SugaredLogger
	client *client.Client
	notify notify.Notifier
	ready  bool
}

// Option customises an App.
type Option func(*App)

// WithIO replaces stdin and stdout.
func WithIO(in io.Reader, out io.Writer) Option {
	return func(a *App) {
		a.in = in
		a.out = out
	}
}

// WithClock replaces the wall clock used by the shell's session timer.
func WithClock(c clock.Clock) Option {
	return func(a *App) { a.clock = c }
}

// NewApp returns an App reading its settings from v.
func NewApp(v *viper.Viper, opts ...Option) *App {
	a := &App{v: v, in: os.Stdin, out: os.Stdout, clock: clock.Real()}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// RootCmd builds the ddmsctl command tree.
func (a *App) RootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "ddmsctl",
		Short:         "Operator console for the DDMS donation receipt API",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init()
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return a.persist()
		},
	}
	root.SetIn(a.in)
	root.SetOut(a.out)
	root.SetErr(a.out)

	root.PersistentFlags().String("api-url", "", "API base URL including /api/v1 (DDMS_API_URL)")
	root.PersistentFlags().String("session-file", "", "where credentials are kept (DDMS_SESSION_FILE)")
	root.PersistentFlags().Bool("no-color", false, "disable colored output")
	_ = a.v.BindPFlag("DDMS_API_URL", root.PersistentFlags().Lookup("api-url"))
	_ = a.v.BindPFlag("DDMS_SESSION_FILE", root.PersistentFlags().Lookup("session-file"))
	_ = a.v.BindPFlag("NO_COLOR", root.PersistentFlags().Lookup("no-color"))

	root.AddCommand(a.loginCmd())
	root.AddCommand(a.logoutCmd())
	root.AddCommand(a.whoamiCmd())
	root.AddCommand(a.storesCmd())
	root.AddCommand(a.receiptsCmd())
	root.AddCommand(a.shellCmd())
	return root
}

// Execute runs the command line args. The saved session is brought in
// line with the client even when the command fails, since a failed token
// renewal logs the operator out.
func (a *App) Execute(ctx context.Context, args []string) error {
	root := a.RootCmd()
	root.SetArgs(args)
	err := root.ExecuteContext(ctx)
	if err != nil && a.ready {
		if perr := a.persist(); perr != nil {
			a.log.Warnw("save session", "error", perr)
		}
	}
	return err
}

func (a *App) init() error {
	if a.ready {
		return nil
	}
	cfg, err := LoadConfig(a.v)
	if err != nil {
		return err
	}
	if a.v.GetBool("NO_COLOR") {
		color.NoColor = true
	}

	log, err := logging.New(cfg.LogLevel, false)
	if err != nil {
		return err
	}

	c, err := client.New(client.Config{BaseURL: cfg.APIURL, Logger: log}, client.NewSession())
	if err != nil {
		return err
	}
	if err := restoreSession(cfg.SessionFile, c.Session()); err != nil {
		log.Warnw("ignoring saved session", "error", err)
	}

	a.cfg = cfg
	a.log = log
	a.client = c
	a.notify = fanout{&console{app: a}, notify.NewLogger(log)}
	a.ready = true
	return nil
}

func (a *App) persist() error {
	if !a.ready {
		return nil
	}
	return persistSession(a.cfg.SessionFile, a.client.Session())
}

func (a *App) requireLogin() error {
	if !a.client.Session().IsAuthenticated() {
		return errNotLoggedIn
	}
	return nil
}

func (a *App) printf(format string, args ...interface{}) {
	a.outMu.Lock()
	defer a.outMu.Unlock()
	fmt.Fprintf(a.out, format, args...)
}

func (a *App) println(args ...interface{}) {
	a.outMu.Lock()
	defer a.outMu.Unlock()
	fmt.Fprintln(a.out, args...)
}

// console shows notifications on the App's output.
type console struct {
	app *App
}

func (c *console) Success(msg string) {
	c.app.println(color.New(color.FgGreen).Sprint("✓"), msg)
}

func (c *console) Error(msg string) {
	c.app.println(color.New(color.FgRed).Sprint("✗"), msg)
}

// fanout delivers every message to each notifier in turn.
type fanout []notify.Notifier

func (f fanout) Success(msg string) {
	for _, n := range f {
		n.Success(msg)
	}
}

func (f fanout) Error(msg string) {
	for _, n := range f {
		n.Error(msg)
	}
}
