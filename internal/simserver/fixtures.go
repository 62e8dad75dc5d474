package simserver

import "github.com/coinworks/adwidget/internal/domain"

// SeedFixtures loads a small spread of creatives covering every media
// format, plus quizzes for the ads that gate their rewards.
func SeedFixtures(s *Store) {
	s.AddAd(domain.Ad{
		ID:              101,
		Title:           "Double Coins Weekend",
		Description:     "Reload your wallet this weekend and get twice the coins.",
		MediaURL:        "https://cdn.example.com/ads/double-coins.mp4",
		Link:            "https://example.com/promos/double-coins",
		FindOutMoreLink: "https://example.com/promos/double-coins/details",
		Format:          domain.FormatVideo,
		Advertiser: &domain.Advertiser{
			BusinessName: "Coinworks Promotions",
			Email:        "promo@example.com",
			Country:      "US",
			State:        "CA",
			City:         "San Francisco",
		},
	}, 0)

	s.AddAd(domain.Ad{
		ID:          102,
		Title:       "Creator Tier Upgrade",
		Description: "Unlock premium content tools with the creator tier.",
		MediaURL:    "https://cdn.example.com/ads/creator-tier.png",
		Link:        "https://example.com/tiers/creator",
		Format:      domain.FormatImage,
	}, 7)

	s.AddAd(domain.Ad{
		ID:              103,
		Title:           "Coinworks Radio",
		Description:     "Listen and earn while you browse.",
		MediaURL:        "https://cdn.example.com/ads/radio-spot.mp3",
		FindOutMoreLink: "https://example.com/radio",
		Format:          domain.FormatAudio,
	}, 0)

	s.AddQuiz(101, QuizEntry{
		Question: domain.QuizQuestion{
			ID:       9001,
			Question: "How many extra coins does the weekend promo grant?",
			Type:     domain.QuestionMultiple,
			Options:  []string{"None", "Half", "Double", "Triple"},
		},
		Accepted: "Double",
	})
	s.AddQuiz(103, QuizEntry{
		Question: domain.QuizQuestion{
			ID:       9002,
			Question: "What is the name of the audio channel in this spot?",
			Type:     domain.QuestionFreeText,
		},
		Accepted: "Coinworks Radio",
	})
}
