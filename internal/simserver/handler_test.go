package simserver

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coinworks/adwidget/internal/domain"
)

func newTestServer(t *testing.T) (*httptest.Server, *Store, *TokenValidator) {
	t.Helper()
	store := NewStore()
	SeedFixtures(store)
	tokens := NewTokenValidator("test-secret")
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	srv := httptest.NewServer(NewHandler(store, tokens, logger).Router())
	t.Cleanup(srv.Close)
	return srv, store, tokens
}

func postJSON(t *testing.T, url string, body any, token string) *http.Response {
	t.Helper()
	data, err := json.Marshal(body)
	require.NoError(t, err)
	req, err := http.NewRequest(http.MethodPost, url, bytes.NewReader(data))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return resp
}

func decodeBody[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var v T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&v))
	return v
}

func TestDisplayAds_FiltersByFormat(t *testing.T) {
	srv, _, _ := newTestServer(t)

	resp := postJSON(t, srv.URL+"/api/ads/display", map[string]any{
		"format": "video", "mediaFormat": "regular",
	}, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeBody[struct {
		Ads []domain.Ad `json:"ads"`
	}](t, resp)
	require.Len(t, body.Ads, 1, "display serves at most one ad")
	assert.Equal(t, domain.FormatVideo, body.Ads[0].Format)
}

func TestDisplayAds_ExcludesOwnCreatives(t *testing.T) {
	srv, _, _ := newTestServer(t)

	// Fixture ad 102 is owned by user 7.
	resp := postJSON(t, srv.URL+"/api/ads/display", map[string]any{
		"format": "image", "excludeUserId": 7,
	}, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeBody[struct {
		Ads []domain.Ad `json:"ads"`
	}](t, resp)
	for _, ad := range body.Ads {
		assert.NotEqual(t, int64(102), ad.ID)
	}
}

func TestDisplayAds_NoMatchReturnsEmptyArray(t *testing.T) {
	srv, _, _ := newTestServer(t)

	resp := postJSON(t, srv.URL+"/api/ads/display", map[string]any{
		"format": "carousel",
	}, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.JSONEq(t, `{"ads": []}`, string(data))
}

func TestDisplayAdByID(t *testing.T) {
	srv, _, _ := newTestServer(t)

	resp, err := http.Get(srv.URL + "/api/ads/display/101")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeBody[struct {
		Ads []domain.Ad `json:"ads"`
	}](t, resp)
	require.Len(t, body.Ads, 1)
	assert.Equal(t, int64(101), body.Ads[0].ID)
	assert.NotNil(t, body.Ads[0].Advertiser)
}

func TestDisplayAdByID_NotFound(t *testing.T) {
	srv, _, _ := newTestServer(t)

	resp, err := http.Get(srv.URL + "/api/ads/display/9999")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestRecordInteraction(t *testing.T) {
	srv, store, _ := newTestServer(t)

	resp := postJSON(t, srv.URL+"/api/ads/ad/101/interactions", map[string]any{
		"interactionType": "view", "creditsEarned": 0, "guest": true,
	}, "")
	defer resp.Body.Close()
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	recs := store.Interactions()
	require.Len(t, recs, 1)
	assert.Equal(t, int64(101), recs[0].AdID)
	assert.Equal(t, domain.InteractionView, recs[0].Type)
	assert.True(t, recs[0].Guest)
}

func TestRecordInteraction_TokenOverridesGuestClaim(t *testing.T) {
	srv, store, tokens := newTestServer(t)

	token, err := tokens.MintToken(42, time.Hour)
	require.NoError(t, err)

	resp := postJSON(t, srv.URL+"/api/ads/ad/101/interactions", map[string]any{
		"interactionType": "reward_claimed", "creditsEarned": 5, "guest": true,
	}, token)
	defer resp.Body.Close()
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	recs := store.Interactions()
	require.Len(t, recs, 1)
	assert.False(t, recs[0].Guest, "a valid token wins over the claimed guest flag")
	assert.Equal(t, int64(5), recs[0].CreditsEarned)
}

func TestRecordInteraction_RejectsUnknownType(t *testing.T) {
	srv, store, _ := newTestServer(t)

	resp := postJSON(t, srv.URL+"/api/ads/ad/101/interactions", map[string]any{
		"interactionType": "hover",
	}, "")
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Empty(t, store.Interactions())
}

func TestRandomQuiz(t *testing.T) {
	srv, _, _ := newTestServer(t)

	resp, err := http.Get(srv.URL + "/api/ads/ad/101/quiz/random")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeBody[struct {
		Question domain.QuizQuestion `json:"question"`
	}](t, resp)
	assert.NotZero(t, body.Question.ID)
	assert.NotEmpty(t, body.Question.Question)
}

func TestRandomQuiz_NoQuizConfigured(t *testing.T) {
	srv, _, _ := newTestServer(t)

	// Fixture ad 102 has no quiz.
	resp, err := http.Get(srv.URL + "/api/ads/ad/102/quiz/random")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestSubmitAnswer_Grading(t *testing.T) {
	tests := []struct {
		name        string
		body        map[string]any
		wantCorrect bool
	}{
		{
			"correct option",
			map[string]any{"adId": 101, "questionId": 9001, "selectedOption": "Double"},
			true,
		},
		{
			"case-insensitive match",
			map[string]any{"adId": 101, "questionId": 9001, "selectedOption": "dOuBlE"},
			true,
		},
		{
			"wrong option",
			map[string]any{"adId": 101, "questionId": 9001, "selectedOption": "Triple"},
			false,
		},
		{
			"free text answer",
			map[string]any{"adId": 103, "questionId": 9002, "answer": "Coinworks Radio"},
			true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, _, _ := newTestServer(t)

			resp := postJSON(t, srv.URL+"/api/ads/quiz/answer", tt.body, "")
			require.Equal(t, http.StatusOK, resp.StatusCode)

			result := decodeBody[domain.QuizResult](t, resp)
			assert.Equal(t, tt.wantCorrect, result.Correct)
			assert.NotEmpty(t, result.Message)
		})
	}
}

func TestSubmitAnswer_RequiresAnswerOrOption(t *testing.T) {
	srv, _, _ := newTestServer(t)

	resp := postJSON(t, srv.URL+"/api/ads/quiz/answer", map[string]any{
		"adId": 101, "questionId": 9001,
	}, "")
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestSubmitAnswer_UnknownQuestion(t *testing.T) {
	srv, _, _ := newTestServer(t)

	resp := postJSON(t, srv.URL+"/api/ads/quiz/answer", map[string]any{
		"adId": 101, "questionId": 5555, "answer": "anything",
	}, "")
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestHealth(t *testing.T) {
	srv, _, _ := newTestServer(t)

	resp, err := http.Get(srv.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))
}

func TestTokenValidator_InvalidTokensAreGuests(t *testing.T) {
	tokens := NewTokenValidator("test-secret")
	other := NewTokenValidator("other-secret")

	forged, err := other.MintToken(42, time.Hour)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+forged)
	_, ok := tokens.UserID(req)
	assert.False(t, ok, "a token signed with the wrong secret is a guest")

	expired, err := tokens.MintToken(42, -time.Hour)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+expired)
	_, ok = tokens.UserID(req)
	assert.False(t, ok, "an expired token is a guest")

	req.Header.Del("Authorization")
	_, ok = tokens.UserID(req)
	assert.False(t, ok)
}
