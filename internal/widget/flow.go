package widget

import (
	"context"
	"time"

	"github.com/coinworks/adwidget/internal/domain"
)

// RequestReward starts the reward path for the current ad: fetch a quiz
// question and show it. When the quiz fetch fails (most commonly: no
// quiz configured for the ad), the reward is offered directly instead
// of blocking the user on a broken quiz backend. That leniency is
// deliberate.
func (c *Controller) RequestReward(ctx context.Context) {
	c.mu.Lock()
	if c.phase != PhaseReady || c.ad == nil || !c.rewardEligible || c.flow != FlowIdle {
		c.mu.Unlock()
		return
	}
	c.flow = FlowQuizLoading
	c.flowGen++
	gen := c.flowGen
	adID := c.ad.ID
	c.mu.Unlock()

	quiz, err := c.ads.RandomQuizQuestion(ctx, adID)

	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.flowGen || c.flow != FlowQuizLoading {
		return
	}
	if err != nil {
		c.logger.Info("no quiz for ad, granting reward path directly", "ad_id", adID, "error", err)
		c.flow = FlowRewardShown
		return
	}
	c.quiz = quiz
	c.flow = FlowQuizShown
}

// SetAnswer records the free-text answer draft.
func (c *Controller) SetAnswer(answer string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.flow == FlowQuizShown {
		c.answer = answer
	}
}

// SelectOption records the chosen multiple-choice option.
func (c *Controller) SelectOption(option string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.flow == FlowQuizShown {
		c.selectedOption = option
	}
}

// SubmitAnswer grades the current answer. A correct answer shows the
// result message and, after the configured delay, moves to the reward
// surface. An incorrect answer shows the message and returns to Idle so
// the reward button can be tried again. A transport failure keeps the
// quiz open with a retryable error instead of leaving the user stuck.
func (c *Controller) SubmitAnswer(ctx context.Context) error {
	c.mu.Lock()
	if c.flow != FlowQuizShown || c.quiz == nil || c.ad == nil {
		c.mu.Unlock()
		return domain.ErrValidation("no quiz is open")
	}
	if c.answer == "" && c.selectedOption == "" {
		c.mu.Unlock()
		return domain.ErrValidation("answer or option required")
	}
	adID, questionID := c.ad.ID, c.quiz.ID
	answer, option := c.answer, c.selectedOption
	gen := c.flowGen
	c.submitErr = ""
	c.mu.Unlock()

	result, err := c.ads.SubmitQuizAnswer(ctx, adID, questionID, answer, option)

	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.flowGen || c.flow != FlowQuizShown {
		return nil
	}
	if err != nil {
		appErr := domain.ErrQuizSubmit(err)
		c.submitErr = appErr.Message
		c.logger.Error("quiz answer submission failed", "ad_id", adID, "error", err)
		return appErr
	}

	c.result = result
	if result.Correct {
		c.transitionAfterLocked(c.opts.CorrectDelay, func(c *Controller) {
			c.flow = FlowRewardShown
			c.quiz = nil
			c.result = nil
		})
	} else {
		c.transitionAfterLocked(c.opts.IncorrectDelay, func(c *Controller) {
			c.flow = FlowIdle
			c.quiz = nil
			c.answer = ""
			c.selectedOption = ""
			c.result = nil
		})
	}
	return nil
}

// CancelQuiz closes the quiz immediately without any network call.
func (c *Controller) CancelQuiz() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.flow != FlowQuizShown && c.flow != FlowQuizLoading {
		return
	}
	c.resetFlowLocked()
}

// ClaimReward reports the claimed amount and closes the reward surface.
func (c *Controller) ClaimReward(credits int64) {
	c.mu.Lock()
	if c.flow != FlowRewardShown || c.ad == nil {
		c.mu.Unlock()
		return
	}
	ad := *c.ad
	guest := c.guest
	c.resetFlowLocked()
	c.mu.Unlock()

	c.reporter.RewardClaim(ad.ID, credits, guest)
	if c.opts.OnRewardClaim != nil {
		c.opts.OnRewardClaim(ad, credits)
	}
}

// DismissReward closes the reward surface without a claim.
func (c *Controller) DismissReward() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.flow == FlowRewardShown {
		c.resetFlowLocked()
	}
}

// transitionAfterLocked schedules fn to run after d, unless the flow
// generation moves on first (cancel, new ad). A non-positive delay runs
// fn inline, which keeps tests deterministic. Caller holds c.mu.
func (c *Controller) transitionAfterLocked(d time.Duration, fn func(*Controller)) {
	if d <= 0 {
		fn(c)
		return
	}
	gen := c.flowGen
	time.AfterFunc(d, func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		if gen != c.flowGen {
			return
		}
		fn(c)
	})
}
