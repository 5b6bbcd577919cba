package briefing

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"audio-briefing/src/core/domain"
	"audio-briefing/src/workflows"
)

var (
	// ErrCannotAdvance is returned when the gate of the current step is closed
	ErrCannotAdvance = errors.New("current step cannot advance")
	// ErrSending is returned for navigation while a submission is in flight
	ErrSending = errors.New("submission in progress")
	// ErrTerminal is returned when navigating away from success or error other than by restart or retry
	ErrTerminal = errors.New("step is terminal")
	// ErrNotRetryable is returned by Retry outside the error step
	ErrNotRetryable = errors.New("nothing to retry")
	ErrUnknownKey   = errors.New("unknown answer key")
	ErrInvalidValue = errors.New("invalid answer value")
)

// Submitter delivers the answers of a completed briefing
type Submitter interface {
	Submit(ctx context.Context, sessionID string, answers domain.AnswerReader) error
}

// Session is the state of one visitor: the answer store and the navigation history.
// Events of a session are processed one at a time.
type Session struct {
	ID string

	mu        sync.Mutex
	def       workflows.Definition
	answers   *Answers
	history   *History
	sending   bool
	lastSeen  time.Time
	submitter Submitter
	logger    *slog.Logger
	now       func() time.Time
}

// Snapshot is a consistent read-only copy of a session
type Snapshot struct {
	ID         string          `json:"id"`
	Step       domain.StepID   `json:"step"`
	History    []domain.StepID `json:"history"`
	Answers    *Answers        `json:"answers"`
	Sending    bool            `json:"sending"`
	CanAdvance bool            `json:"can_advance"`
	CanRetreat bool            `json:"can_retreat"`
}

func newSession(id string, def workflows.Definition, submitter Submitter, logger *slog.Logger, now func() time.Time) *Session {
	return &Session{
		ID:        id,
		def:       def,
		answers:   NewAnswers(def.Defaults),
		history:   NewHistory(def.StartStep),
		lastSeen:  now(),
		submitter: submitter,
		logger:    logger.With("session_id", id),
		now:       now,
	}
}

// Snapshot copies the session state
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Session) snapshotLocked() Snapshot {
	current := s.history.Current()
	return Snapshot{
		ID:         s.ID,
		Step:       current,
		History:    s.history.Steps(),
		Answers:    s.answers.Clone(),
		Sending:    s.sending,
		CanAdvance: !s.sending && CanAdvance(s.def, current, s.answers),
		CanRetreat: !s.sending && !current.IsTerminal() && s.history.Len() > 1,
	}
}

// Set stores one answer. Values are kept even when invalid; they only close the gate.
func (s *Session) Set(key domain.Key, v Value) error {
	if err := s.check(key, v); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.sending {
		return ErrSending
	}
	s.touchLocked()
	s.answers.Set(key, v)
	return nil
}

// SetAll stores several answers; the first rejected key aborts before anything is written
func (s *Session) SetAll(values map[domain.Key]Value) error {
	for k, v := range values {
		if err := s.check(k, v); err != nil {
			return err
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.sending {
		return ErrSending
	}
	s.touchLocked()
	for k, v := range values {
		s.answers.Set(k, v)
	}
	return nil
}

func (s *Session) check(key domain.Key, v Value) error {
	field, _, ok := s.def.Field(key.Field)
	switch {
	case !ok:
		return fmt.Errorf("%w: %s", ErrUnknownKey, key)
	case field.Kind == domain.KindMulti && (key.Option == "" || !field.HasOption(key.Option)):
		return fmt.Errorf("%w: %s", ErrUnknownKey, key)
	case field.Kind != domain.KindMulti && key.Option != "":
		return fmt.Errorf("%w: %s", ErrUnknownKey, key)
	case field.Kind == domain.KindMulti && v.Kind != ValueFlag:
		return fmt.Errorf("%w: %s expects a toggle", ErrInvalidValue, key)
	case field.Kind != domain.KindMulti && v.Kind == ValueFlag:
		return fmt.Errorf("%w: %s expects text", ErrInvalidValue, key)
	}
	return nil
}

// Advance moves to the next step, or submits the briefing at the final step.
// A submission ends at success (answers reset) or at error (answers kept).
func (s *Session) Advance(ctx context.Context) error {
	s.mu.Lock()
	if s.sending {
		s.mu.Unlock()
		return ErrSending
	}
	s.touchLocked()

	current := s.history.Current()
	if current.IsTerminal() {
		s.mu.Unlock()
		return ErrTerminal
	}
	if !CanAdvance(s.def, current, s.answers) {
		s.mu.Unlock()
		return ErrCannotAdvance
	}

	if !s.def.IsFinal(current) {
		next := s.def.Next(current, s.answers)
		s.history.Push(next)
		s.mu.Unlock()
		s.logger.Debug("advanced", "from", current, "to", next)
		return nil
	}

	s.sending = true
	answers := s.answers.Clone()
	s.mu.Unlock()

	s.logger.Info("submitting briefing")
	err := s.submitter.Submit(ctx, s.ID, answers)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.sending = false
	s.touchLocked()
	if err != nil {
		s.logger.Error("briefing submission failed", "event", domain.EventTypeSubmitFailed, "error", err)
		s.history.Push(domain.StepError)
		return nil
	}
	s.logger.Info("briefing submitted", "event", domain.EventTypeSubmitted)
	s.history.Push(domain.StepSuccess)
	s.answers.Reset(s.def.Defaults)
	return nil
}

// Retreat returns to the previous step. At the first step it does nothing.
func (s *Session) Retreat() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.sending {
		return ErrSending
	}
	s.touchLocked()
	if s.history.Current().IsTerminal() {
		return ErrTerminal
	}
	s.history.Pop()
	return nil
}

// Retry leaves the error step for the contact step with the answers intact
func (s *Session) Retry() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.sending {
		return ErrSending
	}
	s.touchLocked()
	if s.history.Current() != domain.StepError {
		return ErrNotRetryable
	}
	s.history.Pop()
	return nil
}

// Restart clears the answers and goes back to the start step
func (s *Session) Restart() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.sending {
		return ErrSending
	}
	s.touchLocked()
	s.answers.Reset(s.def.Defaults)
	s.history.Reset()
	return nil
}

func (s *Session) touchLocked() {
	s.lastSeen = s.now()
}

// idleSince reports the last activity and whether a submission is running
func (s *Session) idleSince() (time.Time, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSeen, s.sending
}
