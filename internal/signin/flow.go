// Package signin drives the sign-in form: credential check, profile lookup
// and session establishment.
package signin

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/Skotchmaster/inventory_console/internal/gateway"
	"github.com/Skotchmaster/inventory_console/internal/logging"
	"github.com/Skotchmaster/inventory_console/internal/models"
	"github.com/Skotchmaster/inventory_console/internal/session"
)

type State int

const (
	Idle State = iota
	Submitting
	Authenticated
	Failed
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Submitting:
		return "submitting"
	case Authenticated:
		return "authenticated"
	case Failed:
		return "failed"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

const (
	MsgFieldsRequired = "both fields required"
	MsgBadCredentials = "incorrect email or password"
	MsgNoProfile      = "could not retrieve user profile"
	MsgSessionFailed  = "could not start session"

	DashboardPath = "/dashboard"
)

var (
	ErrValidation = errors.New("validation failed")
	ErrAuth       = errors.New("authentication failed")
)

type Navigator interface {
	Navigate(path string)
}

type credentials struct {
	Email    string `validate:"required"`
	Password string `validate:"required"`
}

type Flow struct {
	gw       gateway.Gateway
	store    *session.Store
	nav      Navigator
	validate *validator.Validate

	state   State
	message string
}

func New(gw gateway.Gateway, store *session.Store, nav Navigator) *Flow {
	return &Flow{
		gw:       gw,
		store:    store,
		nav:      nav,
		validate: validator.New(),
	}
}

func (f *Flow) State() State { return f.state }

// Message is the text shown under the form, empty when there is nothing to say.
func (f *Flow) Message() string { return f.message }

// Submit runs one sign-in attempt. Every call is independent of earlier ones;
// a Failed flow accepts a new submission.
func (f *Flow) Submit(ctx context.Context, email, password string) error {
	l := logging.FromContext(ctx).With("flow", "signin")

	if err := f.validate.Struct(credentials{Email: email, Password: password}); err != nil {
		f.state = Idle
		f.message = MsgFieldsRequired
		return fmt.Errorf("%w: %s", ErrValidation, MsgFieldsRequired)
	}

	f.state = Submitting
	f.message = ""

	res, err := f.gw.Authenticate(ctx, email, password)
	if err != nil || res == nil {
		l.Warn("signin_failed", "reason", "authenticate", "error", err)
		return f.fail(MsgBadCredentials, err)
	}

	prof, err := f.gw.FetchProfile(ctx, res.IdentityID)
	if err != nil || prof == nil {
		l.Warn("signin_failed", "reason", "fetch_profile", "identity_id", res.IdentityID, "error", err)
		return f.fail(MsgNoProfile, err)
	}
	role, err := models.ParseRole(prof.Role)
	if err != nil {
		l.Warn("signin_failed", "reason", "bad_role", "identity_id", res.IdentityID, "error", err)
		return f.fail(MsgNoProfile, err)
	}

	id := models.Identity{ID: res.IdentityID, Username: prof.Username, Role: role}
	if err := f.store.Save(id); err != nil {
		l.Error("signin_failed", "reason", "save_session", "identity_id", id.ID, "error", err)
		return f.fail(MsgSessionFailed, err)
	}

	f.state = Authenticated
	l.Info("signin_ok", "identity_id", id.ID, "role", id.Role)
	if f.nav != nil {
		f.nav.Navigate(DashboardPath)
	}
	return nil
}

func (f *Flow) fail(msg string, cause error) error {
	f.state = Failed
	f.message = msg
	if cause == nil {
		return fmt.Errorf("%w: %s", ErrAuth, msg)
	}
	return fmt.Errorf("%w: %s: %w", ErrAuth, msg, cause)
}
