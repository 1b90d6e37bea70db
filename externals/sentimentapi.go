package externals

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/goccy/go-json"
	"github.com/sony/gobreaker/v2"

	"restaurant-booking-server/config"
)

var ErrSentiment = errors.New("sentiment scoring failed")

type sentimentRequest struct {
	Text string `json:"text"`
}

type SentimentResponse struct {
	Score int `json:"score"`
}

type SentimentClient struct {
	baseURL    string
	httpClient *http.Client
	breaker    *gobreaker.CircuitBreaker[int]
}

func NewSentimentClient(cfg config.SentimentConfig) *SentimentClient {
	return &SentimentClient{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: &http.Client{Timeout: cfg.Timeout},
		breaker:    newBreaker[int]("sentiment"),
	}
}

// Score returns the polarity of text: negative below zero, positive above.
// Every failure wraps ErrSentiment.
func (client *SentimentClient) Score(ctx context.Context, text string) (int, error) {
	score, err := client.breaker.Execute(func() (int, error) {
		return client.doScore(ctx, text)
	})
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrSentiment, err)
	}

	return score, nil
}

func (client *SentimentClient) doScore(ctx context.Context, text string) (int, error) {
	payload, err := json.Marshal(sentimentRequest{Text: text})
	if err != nil {
		return 0, err
	}

	request, err := http.NewRequestWithContext(ctx, http.MethodPost, client.baseURL+"/sentiment", bytes.NewReader(payload))
	if err != nil {
		return 0, err
	}
	request.Header.Set("Content-Type", "application/json")

	resp, err := client.httpClient.Do(request)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, err
	}

	// check response status code
	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	var response SentimentResponse
	err = json.Unmarshal(body, &response)
	if err != nil {
		return 0, err
	}

	return response.Score, nil
}
