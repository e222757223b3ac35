// Package view prints the dashboard to a terminal.
package view

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/jonboulle/clockwork"

	"github.com/jobtrack/jobtrack-go/internal/dashboard"
	"github.com/jobtrack/jobtrack-go/internal/model"
)

const EmptyTableText = "No applications yet. Add your first application to get started."

// Renderer writes tables and summary counters. The clock decides what
// "today" is for the days-since column.
type Renderer struct {
	clock clockwork.Clock
}

// NewRenderer creates a Renderer. A nil clock means the real clock.
func NewRenderer(clock clockwork.Clock) *Renderer {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Renderer{clock: clock}
}

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}

// Applications writes the applications table.
func (r *Renderer) Applications(w io.Writer, apps []model.Application) error {
	if len(apps) == 0 {
		_, err := fmt.Fprintln(w, EmptyTableText)
		return err
	}

	tw := newTable(w)
	fmt.Fprintln(tw, "ID\tCOMPANY\tROLE\tDATE APPLIED\tDAYS SINCE\tSTATUS")
	for _, app := range apps {
		since := "-"
		if days, ok := DaysSince(r.clock, app.DateApplied); ok {
			since = FormatDays(days)
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\n",
			app.ID, app.Company, app.Role, FormatDate(app.DateApplied), since, app.Status)
	}
	return tw.Flush()
}

// Summary writes the six counters. A nil summary prints zeros.
func (r *Renderer) Summary(w io.Writer, summary *model.Summary) error {
	var s model.Summary
	if summary != nil {
		s = *summary
	}

	headers := []string{"TOTAL"}
	values := []string{strconv.Itoa(s.Total)}
	for _, status := range model.Statuses() {
		headers = append(headers, strings.ToUpper(string(status)))
		values = append(values, strconv.Itoa(s.Count(status)))
	}

	tw := newTable(w)
	fmt.Fprintln(tw, strings.Join(headers, "\t"))
	fmt.Fprintln(tw, strings.Join(values, "\t"))
	return tw.Flush()
}

// Dashboard writes the whole screen for st: the login prompt when logged
// out, otherwise the user line, summary and table.
func (r *Renderer) Dashboard(w io.Writer, st dashboard.State) error {
	if !st.LoggedIn {
		if st.Error != "" {
			fmt.Fprintf(w, "Error: %s\n", st.Error)
		}
		_, err := fmt.Fprintln(w, "Not logged in. Run `jobtrack login` or `jobtrack signup`.")
		return err
	}

	fmt.Fprintf(w, "Job Application Tracker  (logged in as %s)\n", displayName(st.Username))
	if st.Error != "" {
		fmt.Fprintf(w, "Error: %s\n", st.Error)
	}
	if st.Loading {
		fmt.Fprintln(w, "Loading...")
	}
	fmt.Fprintln(w)

	if err := r.Summary(w, st.Summary); err != nil {
		return err
	}
	fmt.Fprintln(w)
	return r.Applications(w, st.Applications)
}

func displayName(username string) string {
	if username == "" {
		return "unknown user"
	}
	return username
}
