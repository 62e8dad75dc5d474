// Package widget implements the ad presentation widget: loading exactly
// one ad for a placement, at-most-once view tracking, and the
// reward/quiz gating flow. The controller is headless; renderers read
// Snapshots and call the action methods.
package widget

import (
	"context"
	"log/slog"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/coinworks/adwidget/internal/adclient"
	"github.com/coinworks/adwidget/internal/domain"
	"github.com/coinworks/adwidget/internal/session"
	"github.com/coinworks/adwidget/internal/telemetry"
)

// Delays between a graded quiz result and the follow-up transition,
// matching the upstream widget timings.
const (
	DefaultCorrectDelay   = 1500 * time.Millisecond
	DefaultIncorrectDelay = 2000 * time.Millisecond
)

// Options configures one placement.
type Options struct {
	Filters domain.Filters
	Media   domain.MediaKind
	// AdID requests a specific ad; domain.NoAdID means "any match".
	AdID int64
	// ShowRewardProbability is the chance, per ad load, that an
	// authenticated viewer is offered the reward path.
	ShowRewardProbability float64

	// Delay overrides for the post-result transitions. Zero picks the
	// defaults; a negative value makes the transition immediate (used
	// by tests).
	CorrectDelay   time.Duration
	IncorrectDelay time.Duration

	// Host hooks, all optional.
	OnAdView      func(domain.Ad)
	OnAdClick     func(domain.Ad)
	OnRewardClaim func(domain.Ad, int64)
	// OpenLink opens a URL in the host's browsing context.
	OpenLink func(string)
	// Close dismisses the placement: embedded hosts get notified,
	// standalone hosts exit.
	Close func()

	// Rand decides reward eligibility; defaults to math/rand/v2.
	Rand func() float64
}

// Controller owns the lifecycle of one mounted placement.
type Controller struct {
	opts     Options
	ads      *adclient.Client
	reporter *telemetry.Reporter
	sess     session.Session
	logger   *slog.Logger

	mu sync.Mutex
	// loadGen invalidates stale fetches: a Load superseded by a newer
	// one never commits its response.
	loadGen uint64
	// flowGen invalidates pending delayed flow transitions when the
	// quiz is cancelled or the ad is replaced.
	flowGen uint64

	phase  Phase
	errMsg string
	ad     *domain.Ad
	// viewedAdID is the ViewGuard: the last ad id a view report was
	// issued for. At most one view fires per distinct ad id no matter
	// how often the placement re-renders or reloads the same ad.
	viewedAdID     int64
	guest          bool
	rewardEligible bool

	flow           FlowState
	quiz           *domain.QuizQuestion
	answer         string
	selectedOption string
	result         *domain.QuizResult
	submitErr      string
}

// New creates a controller for one placement. It starts in
// PhaseLoading; call Load to fetch the ad.
func New(opts Options, ads *adclient.Client, reporter *telemetry.Reporter, sess session.Session, logger *slog.Logger) *Controller {
	if opts.Rand == nil {
		opts.Rand = rand.Float64
	}
	if opts.CorrectDelay == 0 {
		opts.CorrectDelay = DefaultCorrectDelay
	}
	if opts.IncorrectDelay == 0 {
		opts.IncorrectDelay = DefaultIncorrectDelay
	}
	if opts.Media == "" {
		opts.Media = domain.MediaNone
	}
	return &Controller{
		opts:       opts,
		ads:        ads,
		reporter:   reporter,
		sess:       sess,
		logger:     logger,
		phase:      PhaseLoading,
		viewedAdID: domain.NoAdID,
		flow:       FlowIdle,
	}
}

// Load fetches one ad for the placement and commits it. Safe to call
// again when the filters or requested ad id change; a slower earlier
// Load that resolves after a newer one is discarded rather than
// overwriting committed state.
func (c *Controller) Load(ctx context.Context) {
	c.mu.Lock()
	c.loadGen++
	gen := c.loadGen
	c.phase = PhaseLoading
	c.errMsg = ""
	c.mu.Unlock()

	var excludeUserID int64
	if profile, ok := c.sess.Profile(); ok {
		excludeUserID = profile.UserID
	}
	guest := !session.Authenticated(c.sess)

	ads, err := c.ads.FetchDisplayAds(ctx, c.opts.Filters, excludeUserID, c.opts.AdID)

	c.mu.Lock()
	if gen != c.loadGen {
		c.mu.Unlock()
		c.logger.Debug("stale ad fetch discarded", "gen", gen)
		return
	}

	c.guest = guest

	if err != nil {
		c.resetFlowLocked()
		c.phase = PhaseError
		c.errMsg = domain.ErrAdLoad(err).Message
		c.ad = nil
		c.mu.Unlock()
		c.logger.Error("ad fetch failed", "error", err)
		return
	}
	if len(ads) == 0 {
		c.resetFlowLocked()
		c.phase = PhaseEmpty
		c.ad = nil
		c.mu.Unlock()
		return
	}

	ad := ads[0]
	sameAd := c.ad != nil && c.ad.ID == ad.ID
	c.ad = &ad
	c.phase = PhaseReady
	if !sameAd {
		// Reward eligibility is decided exactly once per ad and stays
		// fixed until a different ad replaces this one.
		c.resetFlowLocked()
		c.rewardEligible = !guest && c.opts.Rand() < c.opts.ShowRewardProbability
	}

	firstView := c.viewedAdID != ad.ID
	if firstView {
		c.viewedAdID = ad.ID
	}
	c.mu.Unlock()

	c.logger.Info("ad committed", "ad_id", ad.ID, "format", ad.Format, "guest", guest)

	if firstView {
		c.reporter.View(ad.ID, guest)
		if c.opts.OnAdView != nil {
			c.opts.OnAdView(ad)
		}
	}
}

// Snapshot returns a copy of the current widget state.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	s := Snapshot{
		Phase:          c.phase,
		Err:            c.errMsg,
		Media:          c.opts.Media,
		Guest:          c.guest,
		RewardEligible: c.rewardEligible,
		Flow:           c.flow,
		Answer:         c.answer,
		SelectedOption: c.selectedOption,
		SubmitErr:      c.submitErr,
	}
	if c.ad != nil {
		ad := *c.ad
		s.Ad = &ad
	}
	if c.quiz != nil {
		q := *c.quiz
		s.Quiz = &q
	}
	if c.result != nil {
		res := *c.result
		s.Result = &res
	}
	return s
}

// FindOutMore reports a completion interaction (the viewer engaged with
// the ad) and opens the find-out-more link. No-op when the current ad
// has none.
func (c *Controller) FindOutMore() {
	c.mu.Lock()
	if c.ad == nil || c.ad.FindOutMoreLink == "" {
		c.mu.Unlock()
		return
	}
	ad := *c.ad
	guest := c.guest
	c.mu.Unlock()

	c.reporter.Completion(ad.ID, guest)
	if c.opts.OnAdClick != nil {
		c.opts.OnAdClick(ad)
	}
	c.openLink(ad.FindOutMoreLink)
}

// VisitWebsite opens the ad's primary link. No interaction is reported
// for this action.
func (c *Controller) VisitWebsite() {
	c.mu.Lock()
	var link string
	if c.ad != nil {
		link = c.ad.Link
	}
	c.mu.Unlock()
	if link != "" {
		c.openLink(link)
	}
}

// Skip reports a skip interaction and clears the ad, leaving the
// placement in the empty state.
func (c *Controller) Skip() {
	c.mu.Lock()
	if c.ad == nil {
		c.mu.Unlock()
		return
	}
	ad := *c.ad
	guest := c.guest
	c.ad = nil
	c.phase = PhaseEmpty
	c.resetFlowLocked()
	c.mu.Unlock()

	c.reporter.Skip(ad.ID, guest)
}

// CloseWidget invokes the host-provided close mechanism.
func (c *Controller) CloseWidget() {
	if c.opts.Close != nil {
		c.opts.Close()
	}
}

func (c *Controller) openLink(url string) {
	if c.opts.OpenLink != nil {
		c.opts.OpenLink(url)
		return
	}
	c.logger.Info("open link", "url", url)
}

// resetFlowLocked returns the reward flow to Idle and invalidates any
// pending delayed transition. Caller holds c.mu.
func (c *Controller) resetFlowLocked() {
	c.flowGen++
	c.flow = FlowIdle
	c.quiz = nil
	c.answer = ""
	c.selectedOption = ""
	c.result = nil
	c.submitErr = ""
}
