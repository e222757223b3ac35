package dashboard

import (
	"errors"
	"strings"
	"time"

	"github.com/jobtrack/jobtrack-go/internal/model"
)

var (
	ErrCredentialsRequired = errors.New("username and password are required")
	ErrPasswordMismatch    = errors.New("passwords do not match")
	ErrCompanyRequired     = errors.New("company is required")
	ErrRoleRequired        = errors.New("role is required")
	ErrDateRequired        = errors.New("date applied is required")
	ErrInvalidDate         = errors.New("date applied must be YYYY-MM-DD")
)

var formMessages = map[error]string{
	ErrCredentialsRequired: "Username and password are required",
	ErrPasswordMismatch:    "Passwords do not match",
	ErrCompanyRequired:     "Company is required",
	ErrRoleRequired:        "Role is required",
	ErrDateRequired:        "Date applied is required",
	ErrInvalidDate:         "Date applied must be YYYY-MM-DD",
	model.ErrUnknownStatus: "Unknown status",
}

// formMessage returns the user-facing text for a form validation error.
func formMessage(err error) string {
	for target, msg := range formMessages {
		if errors.Is(err, target) {
			return msg
		}
	}
	return err.Error()
}

// Mode selects between logging in and creating an account.
type Mode int

const (
	ModeLogin Mode = iota
	ModeSignup
)

// LoginForm is the input of the login/signup screen. Confirm only matters
// in signup mode.
type LoginForm struct {
	Mode     Mode
	Username string
	Password string
	Confirm  string
}

// Validate runs the client-side checks. Nothing is sent when it fails.
func (f LoginForm) Validate() error {
	if f.Username == "" || f.Password == "" {
		return ErrCredentialsRequired
	}
	if f.Mode == ModeSignup && f.Confirm != f.Password {
		return ErrPasswordMismatch
	}
	return nil
}

func (f LoginForm) credentials() model.Credentials {
	return model.Credentials{Username: f.Username, Password: f.Password}
}

// ApplicationForm is the input of the add-application form.
type ApplicationForm struct {
	Company     string
	Role        string
	DateApplied string
	Status      model.Status
}

// NewApplicationForm returns an empty form with the default status.
func NewApplicationForm() ApplicationForm {
	return ApplicationForm{Status: model.StatusApplied}
}

// Reset clears the form back to its defaults.
func (f *ApplicationForm) Reset() {
	*f = NewApplicationForm()
}

// Validate checks that every required field is present.
func (f ApplicationForm) Validate() error {
	if strings.TrimSpace(f.Company) == "" {
		return ErrCompanyRequired
	}
	if strings.TrimSpace(f.Role) == "" {
		return ErrRoleRequired
	}
	if strings.TrimSpace(f.DateApplied) == "" {
		return ErrDateRequired
	}
	if _, err := time.Parse(model.DateLayout, strings.TrimSpace(f.DateApplied)); err != nil {
		return ErrInvalidDate
	}
	if f.Status != "" && !f.Status.Valid() {
		return model.ErrUnknownStatus
	}
	return nil
}

// Request validates the form and builds the create request from it.
func (f ApplicationForm) Request() (model.NewApplication, error) {
	if err := f.Validate(); err != nil {
		return model.NewApplication{}, err
	}

	status := f.Status
	if status == "" {
		status = model.StatusApplied
	}

	return model.NewApplication{
		Company:     strings.TrimSpace(f.Company),
		Role:        strings.TrimSpace(f.Role),
		DateApplied: strings.TrimSpace(f.DateApplied),
		Status:      status,
	}, nil
}
