package panel

import (
	"crypto/subtle"
	"fmt"

	"go.uber.org/zap"
)

// State is one step of the report-download lifecycle.
type State string

const (
	StateIdle             State = "IDLE"
	StateAwaitingPassword State = "AWAITING_PASSWORD"
	StateAuthorized       State = "AUTHORIZED"
	StateDownloading      State = "DOWNLOADING"
	StateSucceeded        State = "SUCCEEDED"
)

// downloadPassword is the pre-shared secret gating the report download.
// It is compared client-side and is a usability gate only, not an
// authentication boundary; any real access control must live server-side.
const downloadPassword = "admin123456"

// allowedTransitions maps each state to the states it may move to.
// Failure and cancellation always reset to Idle, so they have no state of
// their own.
var allowedTransitions = map[State][]State{
	StateIdle:             {StateAwaitingPassword},
	StateAwaitingPassword: {StateAuthorized, StateIdle},
	StateAuthorized:       {StateDownloading, StateIdle},
	StateDownloading:      {StateSucceeded, StateIdle},
	StateSucceeded:        {StateIdle},
}

// ErrIllegalTransition reports an operation invoked in a state that does not
// permit it.
type ErrIllegalTransition struct {
	From State
	To   State
}

func (e *ErrIllegalTransition) Error() string {
	return fmt.Sprintf("panel: illegal transition %s -> %s", e.From, e.To)
}

// State returns the flow's current state.
func (f *Flow) State() State {
	return f.state
}

// Begin moves the flow from Idle to AwaitingPassword (the password prompt
// is showing).
func (f *Flow) Begin() error {
	return f.transition(StateAwaitingPassword)
}

// Authorize compares the candidate against the shared download secret. On a
// match the flow advances to Authorized; on a mismatch it stays at
// AwaitingPassword so the user may try again.
func (f *Flow) Authorize(candidate string) bool {
	ok := subtle.ConstantTimeCompare([]byte(candidate), []byte(downloadPassword)) == 1
	if !ok {
		f.logger.Info("download authorization rejected")
		return false
	}
	if err := f.transition(StateAuthorized); err != nil {
		f.logger.Warn("authorize outside password prompt", zap.String("state", string(f.state)))
		return false
	}
	return true
}

// Cancel abandons the flow and returns it to Idle.
func (f *Flow) Cancel() {
	f.logger.Debug("download flow cancelled", zap.String("state", string(f.state)))
	f.state = StateIdle
}

// Reset returns a finished flow to Idle.
func (f *Flow) Reset() {
	f.state = StateIdle
}

func (f *Flow) transition(to State) error {
	for _, allowed := range allowedTransitions[f.state] {
		if allowed == to {
			f.logger.Debug("download flow transition",
				zap.String("from", string(f.state)),
				zap.String("to", string(to)))
			f.state = to
			return nil
		}
	}
	return &ErrIllegalTransition{From: f.state, To: to}
}

// fail records a failed download and resets to Idle, returning err for the
// caller to surface. In-memory flow state carries nothing to roll back.
func (f *Flow) fail(err error) error {
	f.logger.Warn("report download failed", zap.Error(err))
	f.state = StateIdle
	return err
}
