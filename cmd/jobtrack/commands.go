package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"strconv"

	"github.com/jobtrack/jobtrack-go/internal/dashboard"
	"github.com/jobtrack/jobtrack-go/internal/model"
)

type command func(ctx context.Context, a *app, args []string) error

var commands = map[string]command{
	"login":   cmdLogin,
	"signup":  cmdSignup,
	"logout":  cmdLogout,
	"list":    cmdList,
	"summary": cmdSummary,
	"add":     cmdAdd,
	"status":  cmdStatus,
	"delete":  cmdDelete,
	"whoami":  cmdWhoami,
}

var errUsage = errors.New("invalid arguments, see `jobtrack help`")

// usageError marks a bad command line. run exits 2 for it.
type usageError struct {
	err error
}

func (e *usageError) Error() string { return e.err.Error() }
func (e *usageError) Unwrap() error { return e.err }

func badUsage(err error) error {
	return &usageError{err: err}
}

func newFlagSet(name string, a *app) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(a.errOut)
	return fs
}

// parseFlags parses args into fs. Anything left over is an error.
func parseFlags(fs *flag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return err
		}
		return badUsage(err)
	}
	if fs.NArg() > 0 {
		return badUsage(fmt.Errorf("unexpected argument %q", fs.Arg(0)))
	}
	return nil
}

func parseStatus(s string) (model.Status, error) {
	status, err := model.ParseStatus(s)
	if err != nil {
		return "", badUsage(fmt.Errorf("%w: %q", err, s))
	}
	return status, nil
}

func cmdLogin(ctx context.Context, a *app, args []string) error {
	return authenticate(ctx, a, "login", dashboard.ModeLogin, args)
}

func cmdSignup(ctx context.Context, a *app, args []string) error {
	return authenticate(ctx, a, "signup", dashboard.ModeSignup, args)
}

func authenticate(ctx context.Context, a *app, name string, mode dashboard.Mode, args []string) error {
	fs := newFlagSet(name, a)
	username := fs.String("username", "", "account name")
	password := fs.String("password", "", "password (default $JOBTRACK_PASSWORD, else prompt)")
	confirm := fs.String("confirm", "", "password confirmation for signup (default: prompt)")
	if err := parseFlags(fs, args); err != nil {
		return err
	}

	form := dashboard.LoginForm{Mode: mode, Username: *username, Password: *password, Confirm: *confirm}

	var err error
	if form.Username == "" {
		if form.Username, err = a.prompt("Username"); err != nil {
			return err
		}
	}

	prompted := false
	if form.Password == "" {
		form.Password = a.cfg.Password
	}
	if form.Password == "" {
		if form.Password, err = a.prompt("Password"); err != nil {
			return err
		}
		prompted = true
	}

	if mode == dashboard.ModeSignup && form.Confirm == "" {
		if prompted {
			if form.Confirm, err = a.prompt("Confirm password"); err != nil {
				return err
			}
		} else {
			form.Confirm = form.Password
		}
	}

	err = a.ctrl.Login(ctx, form)
	a.render()
	return err
}

func cmdLogout(_ context.Context, a *app, _ []string) error {
	if err := a.ctrl.Logout(); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Logged out.")
	return nil
}

func cmdList(ctx context.Context, a *app, _ []string) error {
	err := a.ctrl.Restore(ctx)
	a.render()
	return err
}

func cmdSummary(ctx context.Context, a *app, _ []string) error {
	if err := resume(a); err != nil {
		return err
	}
	if err := a.ctrl.Refresh(ctx); err != nil {
		a.render()
		return err
	}
	return a.renderer.Summary(a.out, a.ctrl.State().Summary)
}

func cmdAdd(ctx context.Context, a *app, args []string) error {
	form := dashboard.NewApplicationForm()
	status := string(form.Status)

	fs := newFlagSet("add", a)
	fs.StringVar(&form.Company, "company", "", "company name")
	fs.StringVar(&form.Role, "role", "", "role applied for")
	fs.StringVar(&form.DateApplied, "date", a.clock.Now().Format(model.DateLayout), "date applied, YYYY-MM-DD")
	fs.StringVar(&status, "status", status, "initial status")
	if err := parseFlags(fs, args); err != nil {
		return err
	}

	parsed, err := parseStatus(status)
	if err != nil {
		return err
	}
	form.Status = parsed

	if err := resume(a); err != nil {
		return err
	}
	err = a.ctrl.AddApplication(ctx, &form)
	a.render()
	return err
}

func cmdStatus(ctx context.Context, a *app, args []string) error {
	if len(args) != 2 {
		return badUsage(errUsage)
	}
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	status, err := parseStatus(args[1])
	if err != nil {
		return err
	}

	if err := resume(a); err != nil {
		return err
	}
	err = a.ctrl.UpdateStatus(ctx, id, status)
	a.render()
	return err
}

func cmdDelete(ctx context.Context, a *app, args []string) error {
	if len(args) != 1 {
		return badUsage(errUsage)
	}
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	if err := resume(a); err != nil {
		return err
	}
	err = a.ctrl.DeleteApplication(ctx, id)
	a.render()
	return err
}

func cmdWhoami(_ context.Context, a *app, _ []string) error {
	if err := resume(a); err != nil {
		return err
	}
	_, err := fmt.Fprintln(a.out, displayUser(a.ctrl.State().Username))
	return err
}

// resume loads the stored session without fetching anything.
func resume(a *app) error {
	ok, err := a.ctrl.Resume()
	if err != nil {
		return fmt.Errorf("reading stored session: %w", err)
	}
	if !ok {
		return dashboard.ErrNotLoggedIn
	}
	return nil
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, badUsage(fmt.Errorf("invalid application id %q", s))
	}
	return id, nil
}

func displayUser(username string) string {
	if username == "" {
		return "(unknown user)"
	}
	return username
}
