package adclient

import (
	"context"
	"fmt"
	"net/http"

	"github.com/coinworks/adwidget/internal/domain"
)

type quizResponse struct {
	Question *domain.QuizQuestion `json:"question"`
}

type answerRequest struct {
	AdID           int64  `json:"adId"`
	QuestionID     int64  `json:"questionId"`
	Answer         string `json:"answer"`
	SelectedOption string `json:"selectedOption"`
}

// RandomQuizQuestion fetches one quiz question for the given ad. Any
// failure here, including "no quiz configured", is reported as an error
// and the caller decides how lenient to be.
func (c *Client) RandomQuizQuestion(ctx context.Context, adID int64) (*domain.QuizQuestion, error) {
	var resp quizResponse
	if err := c.doJSON(ctx, http.MethodGet, fmt.Sprintf("/ads/ad/%d/quiz/random", adID), nil, &resp); err != nil {
		return nil, err
	}
	if resp.Question == nil {
		return nil, fmt.Errorf("quiz response for ad %d carried no question", adID)
	}
	return resp.Question, nil
}

// SubmitQuizAnswer grades the user's answer. Exactly one of answer
// (free text) and selectedOption is expected to be non-empty; the
// server decides which applies to the question.
func (c *Client) SubmitQuizAnswer(ctx context.Context, adID, questionID int64, answer, selectedOption string) (*domain.QuizResult, error) {
	req := answerRequest{AdID: adID, QuestionID: questionID, Answer: answer, SelectedOption: selectedOption}
	var result domain.QuizResult
	if err := c.doJSON(ctx, http.MethodPost, "/ads/quiz/answer", req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}
