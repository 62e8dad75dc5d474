package widget

import "github.com/coinworks/adwidget/internal/domain"

// Phase is the top-level display state of a placement.
type Phase string

const (
	PhaseLoading Phase = "loading"
	PhaseError   Phase = "error"
	PhaseEmpty   Phase = "empty"
	PhaseReady   Phase = "ready"
)

// FlowState is the reward/quiz gating state machine.
//
//	Idle -> QuizLoading -> QuizShown -> RewardShown   (correct answer)
//	                    \-> RewardShown               (no quiz available)
//	QuizShown -> Idle                                 (incorrect, after delay; or cancel)
//	RewardShown -> Idle                               (claim or dismiss)
type FlowState string

const (
	FlowIdle        FlowState = "idle"
	FlowQuizLoading FlowState = "quiz_loading"
	FlowQuizShown   FlowState = "quiz_shown"
	FlowRewardShown FlowState = "reward_shown"
)

// Snapshot is a consistent copy of the widget state for renderers.
// Everything in it is owned by the caller; mutating it has no effect on
// the controller.
type Snapshot struct {
	Phase Phase
	Err   string

	Ad             *domain.Ad
	Media          domain.MediaKind
	Guest          bool
	RewardEligible bool

	Flow           FlowState
	Quiz           *domain.QuizQuestion
	Answer         string
	SelectedOption string
	Result         *domain.QuizResult
	SubmitErr      string
}

// CanSubmit reports whether the quiz submit action is enabled: the
// widget does not know which input mode applies until the question is
// loaded, so either answer field being non-empty is enough.
func (s Snapshot) CanSubmit() bool {
	return s.Flow == FlowQuizShown && (s.Answer != "" || s.SelectedOption != "")
}
