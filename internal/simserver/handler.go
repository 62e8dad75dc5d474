package simserver

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/coinworks/adwidget/internal/domain"
)

// Handler serves the ad-service contracts from a Store.
type Handler struct {
	store  *Store
	tokens *TokenValidator
	logger *slog.Logger
}

// NewHandler creates the simulator handler.
func NewHandler(store *Store, tokens *TokenValidator, logger *slog.Logger) *Handler {
	return &Handler{store: store, tokens: tokens, logger: logger}
}

// Router builds the chi router with the five ad-service endpoints under
// /api plus a health check.
func (h *Handler) Router() chi.Router {
	r := chi.NewRouter()
	r.Use(requestLogger(h.logger))
	r.Use(jsonContentType)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"status": "healthy"})
	})

	r.Route("/api/ads", func(r chi.Router) {
		r.Post("/display", h.DisplayAds)
		r.Get("/display/{adID}", h.DisplayAdByID)
		r.Post("/ad/{adID}/interactions", h.RecordInteraction)
		r.Get("/ad/{adID}/quiz/random", h.RandomQuiz)
		r.Post("/quiz/answer", h.SubmitAnswer)
	})

	return r
}

type displayRequest struct {
	Format        string `json:"format"`
	MediaFormat   string `json:"mediaFormat"`
	ExcludeUserID int64  `json:"excludeUserId"`
}

// DisplayAds handles POST /api/ads/display.
func (h *Handler) DisplayAds(w http.ResponseWriter, r *http.Request) {
	var req displayRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, domain.ErrValidation("invalid display request body"))
		return
	}

	ads := h.store.DisplayAds(domain.Filters{Format: req.Format, MediaFormat: req.MediaFormat}, req.ExcludeUserID)
	if len(ads) > 1 {
		ads = ads[:1]
	}
	if ads == nil {
		ads = []domain.Ad{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"ads": ads})
}

// DisplayAdByID handles GET /api/ads/display/{adID}.
func (h *Handler) DisplayAdByID(w http.ResponseWriter, r *http.Request) {
	adID, err := strconv.ParseInt(chi.URLParam(r, "adID"), 10, 64)
	if err != nil {
		writeError(w, domain.ErrValidation("invalid ad id"))
		return
	}
	ad, ok := h.store.AdByID(adID)
	if !ok {
		writeError(w, domain.ErrNotFound("ad", adID))
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ads": []domain.Ad{ad}})
}

type interactionRequest struct {
	InteractionType domain.InteractionType `json:"interactionType"`
	CreditsEarned   int64                  `json:"creditsEarned"`
	Guest           bool                   `json:"guest"`
}

var validInteractions = map[domain.InteractionType]bool{
	domain.InteractionView:          true,
	domain.InteractionSkip:          true,
	domain.InteractionCompletion:    true,
	domain.InteractionRewardClaimed: true,
}

// RecordInteraction handles POST /api/ads/ad/{adID}/interactions.
func (h *Handler) RecordInteraction(w http.ResponseWriter, r *http.Request) {
	adID, err := strconv.ParseInt(chi.URLParam(r, "adID"), 10, 64)
	if err != nil {
		writeError(w, domain.ErrValidation("invalid ad id"))
		return
	}
	var req interactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, domain.ErrValidation("invalid interaction body"))
		return
	}
	if !validInteractions[req.InteractionType] {
		writeError(w, domain.ErrValidation("unknown interaction type"))
		return
	}

	// A valid bearer token overrides the client's claimed guest flag.
	guest := req.Guest
	if _, ok := h.tokens.UserID(r); ok {
		guest = false
	}

	h.store.RecordInteraction(RecordedInteraction{
		AdID:          adID,
		Type:          req.InteractionType,
		CreditsEarned: req.CreditsEarned,
		Guest:         guest,
	})
	w.WriteHeader(http.StatusNoContent)
}

// RandomQuiz handles GET /api/ads/ad/{adID}/quiz/random.
func (h *Handler) RandomQuiz(w http.ResponseWriter, r *http.Request) {
	adID, err := strconv.ParseInt(chi.URLParam(r, "adID"), 10, 64)
	if err != nil {
		writeError(w, domain.ErrValidation("invalid ad id"))
		return
	}
	q, ok := h.store.NextQuiz(adID)
	if !ok {
		writeError(w, domain.ErrNotFound("quiz for ad", adID))
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"question": q})
}

type answerRequest struct {
	AdID           int64  `json:"adId"`
	QuestionID     int64  `json:"questionId"`
	Answer         string `json:"answer"`
	SelectedOption string `json:"selectedOption"`
}

// SubmitAnswer handles POST /api/ads/quiz/answer.
func (h *Handler) SubmitAnswer(w http.ResponseWriter, r *http.Request) {
	var req answerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, domain.ErrValidation("invalid answer body"))
		return
	}
	if req.Answer == "" && req.SelectedOption == "" {
		writeError(w, domain.ErrValidation("answer or selectedOption required"))
		return
	}
	result, ok := h.store.GradeAnswer(req.AdID, req.QuestionID, req.Answer, req.SelectedOption)
	if !ok {
		writeError(w, domain.ErrNotFound("quiz question", req.QuestionID))
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, err *domain.AppError) {
	w.WriteHeader(err.Status)
	json.NewEncoder(w).Encode(err)
}

// requestLogger logs each request with slog structured logging.
func requestLogger(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			id := r.Header.Get("X-Request-ID")
			if id == "" {
				id = uuid.New().String()
			}
			w.Header().Set("X-Request-ID", id)
			ww := &statusWriter{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(ww, r)
			logger.Info("http request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.status,
				"duration_ms", time.Since(start).Milliseconds(),
				"request_id", id,
			)
		})
	}
}

func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		next.ServeHTTP(w, r)
	})
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

// bearerToken extracts the raw token from an Authorization header.
func bearerToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	if h == "" || !strings.HasPrefix(h, "Bearer ") {
		return ""
	}
	return strings.TrimPrefix(h, "Bearer ")
}
