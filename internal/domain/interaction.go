package domain

import (
	"time"

	"github.com/google/uuid"
)

// InteractionType enumerates the ad interaction events the platform
// records.
type InteractionType string

const (
	InteractionView          InteractionType = "view"
	InteractionSkip          InteractionType = "skip"
	InteractionCompletion    InteractionType = "completion"
	InteractionRewardClaimed InteractionType = "reward_claimed"
)

// InteractionEvent is one best-effort telemetry event. Events are
// queued and delivered out of band; a delivery failure never affects
// the placement that emitted it.
type InteractionEvent struct {
	EventID       uuid.UUID       `json:"event_id"`
	AdID          int64           `json:"ad_id"`
	Type          InteractionType `json:"interactionType"`
	CreditsEarned int64           `json:"creditsEarned"`
	Guest         bool            `json:"guest"`
	OccurredAt    time.Time       `json:"occurred_at"`
}

// NewInteraction builds a fully-tagged event for the given ad.
func NewInteraction(adID int64, typ InteractionType, credits int64, guest bool) InteractionEvent {
	return InteractionEvent{
		EventID:       uuid.New(),
		AdID:          adID,
		Type:          typ,
		CreditsEarned: credits,
		Guest:         guest,
		OccurredAt:    time.Now().UTC(),
	}
}
