// Package form holds the in-memory state of the match form and renders the
// last result received from the matching service.
package form

import (
	"encoding/json"

	"github.com/f3rmion/skillx/internal/match"
)

// Status is the user-visible state of the form.
type Status int

const (
	// Idle means nothing has been submitted yet.
	Idle Status = iota
	// Submitting means the newest submission has not completed.
	Submitting
	// HasResult means the newest completed submission succeeded.
	HasResult
	// Failed means the newest completed submission failed.
	Failed
)

func (s Status) String() string {
	switch s {
	case Idle:
		return "idle"
	case Submitting:
		return "submitting"
	case HasResult:
		return "has-result"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// State holds the form input, the last result and the submission counters.
// It is not safe for concurrent use; the TUI only touches it from Update.
type State struct {
	input match.FormInput

	result json.RawMessage
	err    error

	// seq is the last sequence number handed out, applied the highest one
	// whose completion was accepted.
	seq     uint64
	applied uint64
}

// NewState returns an empty form.
func NewState() *State {
	return &State{}
}

// SetIdentifier replaces the identifier text.
func (s *State) SetIdentifier(v string) {
	s.input.Identifier = v
}

// SetRawSkills replaces the raw skills text.
func (s *State) SetRawSkills(v string) {
	s.input.RawSkills = v
}

// Input returns the current form input.
func (s *State) Input() match.FormInput {
	return s.input
}

// Begin starts a submission of the current input and returns its sequence
// number with the request to send.
func (s *State) Begin() (uint64, match.MatchRequest) {
	s.seq++
	return s.seq, match.NewRequest(s.input)
}

// Complete records the outcome of submission seq. Completions older than the
// last applied one are dropped and Complete returns false.
//
// A completion that arrives in order is applied even while a newer submission
// is still pending: it is the freshest answer available, and Status keeps
// reporting Submitting until the newest one lands. Once a newer completion has
// been applied nothing older can replace it.
func (s *State) Complete(seq uint64, result json.RawMessage, err error) bool {
	if seq <= s.applied || seq > s.seq {
		return false
	}
	s.applied = seq

	if err != nil {
		s.err = err
		return true
	}

	s.result = result
	s.err = nil
	return true
}

// Status reports the current state of the form.
func (s *State) Status() Status {
	switch {
	case s.seq > s.applied:
		return Submitting
	case s.err != nil:
		return Failed
	case s.result != nil:
		return HasResult
	default:
		return Idle
	}
}

// Result returns the last successful response, if any.
func (s *State) Result() (json.RawMessage, bool) {
	return s.result, s.result != nil
}

// Err returns the error of the last applied submission, if it failed.
func (s *State) Err() error {
	return s.err
}

// Seq returns the last sequence number handed out by Begin.
func (s *State) Seq() uint64 {
	return s.seq
}

// Applied returns the sequence number of the last accepted completion.
func (s *State) Applied() uint64 {
	return s.applied
}
