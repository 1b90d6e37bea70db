package externals

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/goccy/go-json"
	"github.com/sony/gobreaker/v2"
	"golang.org/x/time/rate"

	"restaurant-booking-server/config"
)

var ErrTranslation = errors.New("translation failed")

type translationResponse struct {
	Data struct {
		Translations []struct {
			TranslatedText string `json:"translatedText"`
		} `json:"translations"`
	} `json:"data"`
}

// TranslationClient talks to a Google Translate v2 compatible API. Its
// configuration is fixed at construction.
type TranslationClient struct {
	cfg        config.TranslationConfig
	httpClient *http.Client
	limiter    *rate.Limiter
	breaker    *gobreaker.CircuitBreaker[string]
}

func NewTranslationClient(cfg config.TranslationConfig) *TranslationClient {
	limit := rate.Inf
	if cfg.RequestsPerSecond > 0 {
		limit = rate.Limit(cfg.RequestsPerSecond)
	}
	burst := cfg.Burst
	if burst <= 0 {
		burst = 1
	}

	return &TranslationClient{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		limiter:    rate.NewLimiter(limit, burst),
		breaker:    newBreaker[string]("translation"),
	}
}

// Translate returns text in targetLang. An empty sourceLang asks the service to
// detect it. Every failure wraps ErrTranslation.
func (client *TranslationClient) Translate(ctx context.Context, text, targetLang, sourceLang string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return text, nil
	}

	err := client.limiter.Wait(ctx)
	if err != nil {
		return "", fmt.Errorf("%w: quota: %v", ErrTranslation, err)
	}

	translated, err := client.breaker.Execute(func() (string, error) {
		return client.doTranslate(ctx, text, targetLang, sourceLang)
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrTranslation, err)
	}

	return translated, nil
}

func (client *TranslationClient) doTranslate(ctx context.Context, text, targetLang, sourceLang string) (string, error) {
	form := url.Values{}
	form.Set("q", text)
	form.Set("target", targetLang)
	form.Set("format", "text")
	if sourceLang != "" {
		form.Set("source", sourceLang)
	}
	if client.cfg.APIKey != "" {
		form.Set("key", client.cfg.APIKey)
	}

	apiUrl := strings.TrimRight(client.cfg.BaseURL, "/") + "/language/translate/v2"
	request, err := http.NewRequestWithContext(ctx, http.MethodPost, apiUrl, strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	request.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := client.httpClient.Do(request)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	// check response status code
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	var response translationResponse
	err = json.Unmarshal(body, &response)
	if err != nil {
		return "", err
	}
	if len(response.Data.Translations) == 0 {
		return "", errors.New("empty translation response")
	}

	return response.Data.Translations[0].TranslatedText, nil
}
