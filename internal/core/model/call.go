package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/joycelim/callheat/internal/core/constants"
)

// View selects one of the two time-zone projections of a call.
type View string

const (
	ViewLocal  View = "local"
	ViewRemote View = "remote"
)

// ParseView validates a view name from a flag or query parameter.
func ParseView(s string) (View, error) {
	switch View(s) {
	case ViewLocal, ViewRemote:
		return View(s), nil
	default:
		return "", fmt.Errorf("unknown view %q (want local or remote)", s)
	}
}

// CallRecord is one historical call between the two parties. The same real
// interval is carried twice: once in each party's wall clock. The two
// projections differ in clock time but cover identical durations.
type CallRecord struct {
	ID          string    `json:"id"`
	LocalStart  time.Time `json:"localStart"`
	LocalEnd    time.Time `json:"localEnd"`
	RemoteStart time.Time `json:"remoteStart"`
	RemoteEnd   time.Time `json:"remoteEnd"`
}

// NewID generates an identifier for records whose source line has none.
func NewID() string {
	return uuid.NewString()
}

// Span returns the start and end timestamps in the requested view.
func (r CallRecord) Span(view View) (time.Time, time.Time) {
	if view == ViewRemote {
		return r.RemoteStart, r.RemoteEnd
	}
	return r.LocalStart, r.LocalEnd
}

// Duration is the call length. Both views agree on it for valid records;
// the local view is authoritative.
func (r CallRecord) Duration() time.Duration {
	return r.LocalEnd.Sub(r.LocalStart)
}

// RecordError reports a single invalid record. Bad records are skipped
// without aborting the batch, so the error carries enough to log usefully.
type RecordError struct {
	RecordID string
	Reason   string
}

func (e *RecordError) Error() string {
	return fmt.Sprintf("call record %s: %s", e.RecordID, e.Reason)
}

// Validate enforces the per-record contract: both projections present,
// end strictly after start in each, matching durations, and a sane length.
func (r CallRecord) Validate() error {
	if r.LocalStart.IsZero() || r.LocalEnd.IsZero() {
		return &RecordError{RecordID: r.ID, Reason: "missing local view timestamps"}
	}
	if r.RemoteStart.IsZero() || r.RemoteEnd.IsZero() {
		return &RecordError{RecordID: r.ID, Reason: "missing remote view timestamps"}
	}
	if !r.LocalEnd.After(r.LocalStart) {
		return &RecordError{RecordID: r.ID, Reason: fmt.Sprintf("local end %s is not after start %s",
			r.LocalEnd.Format(time.RFC3339), r.LocalStart.Format(time.RFC3339))}
	}
	if !r.RemoteEnd.After(r.RemoteStart) {
		return &RecordError{RecordID: r.ID, Reason: fmt.Sprintf("remote end %s is not after start %s",
			r.RemoteEnd.Format(time.RFC3339), r.RemoteStart.Format(time.RFC3339))}
	}

	localDur := r.LocalEnd.Sub(r.LocalStart)
	remoteDur := r.RemoteEnd.Sub(r.RemoteStart)
	diff := localDur - remoteDur
	if diff < 0 {
		diff = -diff
	}
	if diff > constants.ViewDurationTolerance {
		return &RecordError{RecordID: r.ID, Reason: fmt.Sprintf("view durations disagree: local %v, remote %v",
			localDur, remoteDur)}
	}

	if localDur > constants.MaxCallDuration {
		return &RecordError{RecordID: r.ID, Reason: fmt.Sprintf("duration %v exceeds the %v cap",
			localDur, constants.MaxCallDuration)}
	}

	return nil
}
