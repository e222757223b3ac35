package model

import (
	"errors"
	"testing"
)

func TestParseStatus(t *testing.T) {
	tests := []struct {
		in      string
		want    Status
		wantErr error
	}{
		{in: "Applied", want: StatusApplied},
		{in: "interview", want: StatusInterview},
		{in: "  OFFER ", want: StatusOffer},
		{in: "no response", want: StatusNoResponse},
		{in: "Rejected", want: StatusRejected},
		{in: "ghosted", wantErr: ErrUnknownStatus},
		{in: "", wantErr: ErrUnknownStatus},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseStatus(tt.in)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("ParseStatus(%q) error = %v, want %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseStatus(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestStatusesOrderAndValidity(t *testing.T) {
	want := []Status{"Applied", "Interview", "Offer", "Rejected", "No Response"}
	got := Statuses()
	if len(got) != len(want) {
		t.Fatalf("Statuses() returned %d entries, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Statuses()[%d] = %q, want %q", i, got[i], want[i])
		}
		if !got[i].Valid() {
			t.Errorf("%q should be valid", got[i])
		}
	}
	if Status("applied").Valid() {
		t.Error("Valid() must be case sensitive on the wire value")
	}
}

func TestSummaryCountMissingStatus(t *testing.T) {
	s := Summary{Total: 2, ByStatus: map[Status]int{StatusOffer: 2}}
	if got := s.Count(StatusOffer); got != 2 {
		t.Errorf("Count(Offer) = %d, want 2", got)
	}
	if got := s.Count(StatusRejected); got != 0 {
		t.Errorf("Count(Rejected) = %d, want 0", got)
	}
	if got := (Summary{}).Count(StatusApplied); got != 0 {
		t.Errorf("zero Summary Count() = %d, want 0", got)
	}
}
