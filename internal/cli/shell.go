package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"
	"unicode"

	"github.com/fatih/color"
	"github.com/sangkips/ddms-api/internal/session"
	"github.com/spf13/cobra"
)

const shellPrompt = "ddms> "

// warnAt are the remaining times at which the countdown is repeated
// after the first warning.
var warnAt = map[int]bool{60: true, 30: true, 10: true, 5: true}

func (a *App) shellCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Interactive console that logs out after a period of inactivity",
		Long: `Start an interactive console. Any ddmsctl command can be typed
without the program name. The session ends after SESSION_TIMEOUT of
inactivity; SESSION_WARNING before that a countdown is shown and only
'extend' keeps the session alive.

Built-in commands: extend, logout, exit.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireLogin(); err != nil {
				return err
			}
			return a.runShell(cmd.Context())
		},
	}
}

func (a *App) runShell(ctx context.Context) error {
	expired := make(chan struct{})
	var expireOnce sync.Once
	endSession := func() { expireOnce.Do(func() { close(expired) }) }

	var (
		warnMu     sync.Mutex
		lastWarned int
	)
	ctrl, err := session.NewController(a.cfg.Session, a.client, session.Options{
		Clock:         a.clock,
		Logger:        a.log,
		Notifier:      a.notify,
		Authenticated: a.client.Session().IsAuthenticated,
		OnChange: func(st session.State) {
			warnMu.Lock()
			defer warnMu.Unlock()
			if !st.WarningVisible {
				lastWarned = 0
				return
			}
			secs := int((st.Remaining + time.Second - 1) / time.Second)
			if lastWarned != 0 && (secs == lastWarned || !warnAt[secs]) {
				return
			}
			lastWarned = secs
			a.printf("\n%s session expires in %ds, type 'extend' to stay logged in\n%s",
				color.New(color.FgYellow, color.Bold).Sprint("!"), secs, shellPrompt)
		},
	})
	if err != nil {
		return err
	}
	defer ctrl.Close()

	// Every logout ends the shell: expiry, the logout built-in and a
	// failed token renewal inside a command all clear the session.
	a.client.Session().OnLogout(func() {
		ctrl.Close()
		endSession()
	})

	lines := make(chan string)
	go func() {
		defer close(lines)
		sc := bufio.NewScanner(a.in)
		for sc.Scan() {
			select {
			case lines <- sc.Text():
			case <-expired:
				return
			}
		}
	}()

	user, _ := a.client.Session().User()
	a.printf("Logged in as %s. Type 'help' for commands, 'exit' to leave.\n", user.Name)
	ctrl.Start()

	for {
		a.printf("%s", shellPrompt)
		select {
		case <-ctx.Done():
			a.println()
			return ctx.Err()
		case <-expired:
			a.println()
			return a.persist()
		case line, ok := <-lines:
			if !ok {
				a.println()
				return nil
			}
			ctrl.Activity(session.ActivityKeyDown)
			if done := a.shellLine(ctx, ctrl, line); done {
				return nil
			}
		}
	}
}

// shellLine runs one line of input and reports whether the shell
// should exit.
func (a *App) shellLine(ctx context.Context, ctrl *session.Controller, line string) bool {
	args, err := splitArgs(line)
	if err != nil {
		a.notify.Error(err.Error())
		return false
	}
	if len(args) == 0 {
		return false
	}

	switch args[0] {
	case "exit", "quit":
		return true
	case "extend":
		if !ctrl.Extend() {
			a.notify.Error("No active session to extend")
		}
		return false
	case "logout":
		if err := ctrl.Logout(ctx); err != nil {
			a.log.Debugw("remote logout failed", "error", err)
		}
		return false
	case "shell", "login":
		a.notify.Error(fmt.Sprintf("'%s' is not available inside the shell", args[0]))
		return false
	}

	if st := ctrl.State(); st.WarningVisible {
		a.println("Type 'extend' to keep the session alive.")
	}

	if err := a.Execute(ctx, args); err != nil && !IsReported(err) {
		a.notify.Error(err.Error())
	}
	return false
}

// splitArgs splits a command line into words. Single and double quotes
// group words; a backslash escapes the next character outside single
// quotes.
func splitArgs(line string) ([]string, error) {
	var (
		args    []string
		cur     strings.Builder
		inWord  bool
		quote   rune
		escaped bool
	)
	for _, r := range line {
		switch {
		case escaped:
			cur.WriteRune(r)
			escaped = false
		case r == '\\' && quote != '\'':
			escaped = true
			inWord = true
		case quote != 0:
			if r == quote {
				quote = 0
			} else {
				cur.WriteRune(r)
			}
		case r == '"' || r == '\'':
			quote = r
			inWord = true
		case unicode.IsSpace(r):
			if inWord {
				args = append(args, cur.String())
				cur.Reset()
				inWord = false
			}
		default:
			cur.WriteRune(r)
			inWord = true
		}
	}
	if quote != 0 || escaped {
		return nil, errors.New("unterminated quote or escape")
	}
	if inWord {
		args = append(args, cur.String())
	}
	return args, nil
}
