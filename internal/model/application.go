package model

import (
	"errors"
	"strings"
)

// Status is the stage a job application is in.
type Status string

const (
	StatusApplied    Status = "Applied"
	StatusInterview  Status = "Interview"
	StatusOffer      Status = "Offer"
	StatusRejected   Status = "Rejected"
	StatusNoResponse Status = "No Response"
)

var ErrUnknownStatus = errors.New("unknown application status")

// Statuses returns every status in display order.
func Statuses() []Status {
	return []Status{
		StatusApplied,
		StatusInterview,
		StatusOffer,
		StatusRejected,
		StatusNoResponse,
	}
}

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	for _, known := range Statuses() {
		if s == known {
			return true
		}
	}
	return false
}

// ParseStatus maps user input onto a known status. Matching ignores case and
// surrounding whitespace, so "no response" resolves to StatusNoResponse.
func ParseStatus(s string) (Status, error) {
	s = strings.TrimSpace(s)
	for _, known := range Statuses() {
		if strings.EqualFold(s, string(known)) {
			return known, nil
		}
	}
	return "", ErrUnknownStatus
}

// DateLayout is the wire format of Application.DateApplied.
const DateLayout = "2006-01-02"

// Application is a tracked job application as returned by the API.
// DateApplied is kept exactly as the server sent it.
type Application struct {
	ID          int64  `json:"id"`
	Company     string `json:"company"`
	Role        string `json:"role"`
	DateApplied string `json:"date_applied"`
	Status      Status `json:"status"`
}

// NewApplication is the request body for creating an application.
type NewApplication struct {
	Company     string `json:"company"`
	Role        string `json:"role"`
	DateApplied string `json:"date_applied"`
	Status      Status `json:"status"`
}

// StatusUpdate is the request body for changing an application's status.
type StatusUpdate struct {
	Status Status `json:"status"`
}
