package intake

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/alfazaa/intake/internal/model"
)

// Step is a wizard state.
type Step int

// Wizard steps, in order.
const (
	StepPartyInfo Step = iota
	StepDamage
	StepReview
)

func (s Step) String() string {
	switch s {
	case StepPartyInfo:
		return "party"
	case StepDamage:
		return "damage"
	case StepReview:
		return "review"
	}
	return fmt.Sprintf("step(%d)", int(s))
}

// ErrWrongStep is returned when an action is not allowed in the current step.
var ErrWrongStep = errors.New("action not allowed in current step")

// Saver persists a finished intake.
type Saver interface {
	Save(ctx context.Context, in model.Intake) (*model.IntakeRecord, error)
}

// Session is one intake workflow: a draft plus the wizard position.
// It is safe for concurrent use.
type Session struct {
	mu    sync.Mutex
	draft *Draft
	step  Step
	last  *model.IntakeRecord
}

// NewSession starts a workflow with a fresh draft on the first step.
func NewSession(now func() time.Time) *Session {
	return &Session{draft: NewDraft(now)}
}

// Step returns the current wizard step.
func (s *Session) Step() Step {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.step
}

// Do runs fn with exclusive access to the draft.
func (s *Session) Do(fn func(d *Draft) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.draft)
}

// Snapshot returns a copy of the draft fields and the current step.
func (s *Session) Snapshot() (model.Intake, Step) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.draft.Fields(), s.step
}

// Next moves one step forward. Leaving the first step requires the draft to
// validate; otherwise the errors are returned and the step is unchanged.
func (s *Session) Next() (Errors, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch s.step {
	case StepPartyInfo:
		if errs := Validate(s.draft.fields); !errs.Valid() {
			return errs, nil
		}
		s.step = StepDamage
	case StepDamage:
		s.step = StepReview
	default:
		return nil, fmt.Errorf("next from %s: %w", s.step, ErrWrongStep)
	}
	return Errors{}, nil
}

// Back moves one step backward. The draft is kept. Back on the first step is a no-op.
func (s *Session) Back() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.step > StepPartyInfo {
		s.step--
	}
}

// Finalize persists the draft through saver. On success the draft is reset and
// the session returns to the first step. On failure nothing changes and the
// caller may retry.
func (s *Session) Finalize(ctx context.Context, saver Saver) (*model.IntakeRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.step != StepReview {
		return nil, fmt.Errorf("finalize from %s: %w", s.step, ErrWrongStep)
	}
	// Guards against a draft edited through the API after validation passed.
	if errs := Validate(s.draft.fields); !errs.Valid() {
		return nil, &ValidationError{Errors: errs}
	}

	rec, err := saver.Save(ctx, s.draft.Fields())
	if err != nil {
		return nil, err
	}

	s.last = rec
	s.draft.Reset()
	s.step = StepPartyInfo
	return rec, nil
}

// LastRecord returns the record saved by the most recent Finalize, if any.
func (s *Session) LastRecord() *model.IntakeRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.last
}

// Abandon discards the draft and returns to the first step.
func (s *Session) Abandon() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.draft.Reset()
	s.step = StepPartyInfo
}

// ValidationError wraps validation errors found at finalize time.
type ValidationError struct {
	Errors Errors
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("draft has %d invalid fields", len(e.Errors))
}
