package domain

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAd_JSONContract(t *testing.T) {
	// Field names follow the upstream ad service responses, including
	// the mixed-case advertiser keys.
	raw := `{
		"id": 101,
		"title": "Double Coins Weekend",
		"media_url": "https://cdn.example.com/ad.mp4",
		"findOutMoreLink": "https://example.com/more",
		"format": "video",
		"advertiser": {"Business_Name": "Coinworks Promotions", "country": "US"}
	}`

	var ad Ad
	require.NoError(t, json.Unmarshal([]byte(raw), &ad))

	assert.Equal(t, int64(101), ad.ID)
	assert.Equal(t, "https://cdn.example.com/ad.mp4", ad.MediaURL)
	assert.Equal(t, "https://example.com/more", ad.FindOutMoreLink)
	require.NotNil(t, ad.Advertiser)
	assert.Equal(t, "Coinworks Promotions", ad.Advertiser.BusinessName)
}

func TestAppError_WrapsCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := ErrAdLoad(cause)

	assert.Equal(t, "AD_LOAD_FAILED", err.Code)
	assert.Equal(t, 502, err.Status)
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "connection refused")
}

func TestAppError_WithoutCause(t *testing.T) {
	err := ErrNotFound("ad", 9999)

	assert.Equal(t, "NOT_FOUND", err.Code)
	assert.Equal(t, 404, err.Status)
	assert.Equal(t, "NOT_FOUND: ad 9999 not found", err.Error())
	assert.Nil(t, errors.Unwrap(err))
}

func TestNewInteraction(t *testing.T) {
	ev := NewInteraction(7, InteractionRewardClaimed, 5, false)

	assert.NotEqual(t, ev.EventID.String(), "00000000-0000-0000-0000-000000000000")
	assert.Equal(t, int64(7), ev.AdID)
	assert.Equal(t, InteractionRewardClaimed, ev.Type)
	assert.Equal(t, int64(5), ev.CreditsEarned)
	assert.WithinDuration(t, time.Now(), ev.OccurredAt, time.Minute)
}

func TestInteractionEvent_WireFormat(t *testing.T) {
	ev := NewInteraction(7, InteractionView, 0, true)

	data, err := json.Marshal(ev)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "view", decoded["interactionType"])
	assert.Equal(t, true, decoded["guest"])
}
