// Package simserver is a local stand-in for the platform's ad service.
// It serves the display, interaction, and quiz contracts from in-memory
// fixtures so the widget can be developed and tested without the real
// backend.
package simserver

import (
	"strings"
	"sync"

	"github.com/coinworks/adwidget/internal/domain"
)

// QuizEntry pairs a question with its accepted answer.
type QuizEntry struct {
	Question domain.QuizQuestion
	// Accepted matches either the free-text answer or the selected
	// option, case-insensitively.
	Accepted string
}

// RecordedInteraction is one interaction the store received, kept for
// inspection in tests and the simulator's log.
type RecordedInteraction struct {
	AdID          int64
	Type          domain.InteractionType
	CreditsEarned int64
	Guest         bool
}

// Store holds the simulator's fixtures and the interactions it has
// recorded.
type Store struct {
	mu           sync.Mutex
	ads          []adFixture
	quizzes      map[int64][]QuizEntry
	interactions []RecordedInteraction
	// nextQuiz rotates through an ad's quiz entries, standing in for
	// the backend's random pick.
	nextQuiz map[int64]int
}

type adFixture struct {
	ad      domain.Ad
	ownerID int64
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		quizzes:  make(map[int64][]QuizEntry),
		nextQuiz: make(map[int64]int),
	}
}

// AddAd registers an ad owned by ownerID (0 for house ads).
func (s *Store) AddAd(ad domain.Ad, ownerID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ads = append(s.ads, adFixture{ad: ad, ownerID: ownerID})
}

// AddQuiz attaches a quiz entry to an ad.
func (s *Store) AddQuiz(adID int64, entry QuizEntry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.quizzes[adID] = append(s.quizzes[adID], entry)
}

// DisplayAds returns ads matching the filters, excluding creatives
// owned by excludeUserID. Empty format matches everything.
func (s *Store) DisplayAds(f domain.Filters, excludeUserID int64) []domain.Ad {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []domain.Ad
	for _, fx := range s.ads {
		if excludeUserID != 0 && fx.ownerID == excludeUserID {
			continue
		}
		if f.Format != "" && fx.ad.Format != f.Format {
			continue
		}
		out = append(out, fx.ad)
	}
	return out
}

// AdByID returns the ad with the given id.
func (s *Store) AdByID(id int64) (domain.Ad, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, fx := range s.ads {
		if fx.ad.ID == id {
			return fx.ad, true
		}
	}
	return domain.Ad{}, false
}

// NextQuiz returns the next quiz question for the ad, rotating through
// its entries.
func (s *Store) NextQuiz(adID int64) (domain.QuizQuestion, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entries := s.quizzes[adID]
	if len(entries) == 0 {
		return domain.QuizQuestion{}, false
	}
	i := s.nextQuiz[adID] % len(entries)
	s.nextQuiz[adID] = i + 1
	return entries[i].Question, true
}

// GradeAnswer checks an answer against the quiz entry for questionID.
func (s *Store) GradeAnswer(adID, questionID int64, answer, selectedOption string) (domain.QuizResult, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, entry := range s.quizzes[adID] {
		if entry.Question.ID != questionID {
			continue
		}
		given := answer
		if given == "" {
			given = selectedOption
		}
		if strings.EqualFold(strings.TrimSpace(given), entry.Accepted) {
			return domain.QuizResult{Correct: true, Message: "Correct! Claim your reward."}, true
		}
		return domain.QuizResult{Correct: false, Message: "Not quite, try again later."}, true
	}
	return domain.QuizResult{}, false
}

// RecordInteraction appends one interaction.
func (s *Store) RecordInteraction(rec RecordedInteraction) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.interactions = append(s.interactions, rec)
}

// Interactions returns a copy of everything recorded so far.
func (s *Store) Interactions() []RecordedInteraction {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]RecordedInteraction, len(s.interactions))
	copy(out, s.interactions)
	return out
}
