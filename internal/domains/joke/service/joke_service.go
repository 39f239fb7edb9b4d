package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog/log"

	"shopping-backend/internal/domains/joke/model"
	"shopping-backend/internal/infrastructure/cache"
)

// ServiceInterface fetches a random nerdy joke personalized with a name.
type ServiceInterface interface {
	GetJoke(ctx context.Context, first, last string) (string, error)
}

type JokeService struct {
	baseURL string
	client  *http.Client
	cache   cache.Cache
	ttl     time.Duration
}

// NewService creates the joke client. cache may be nil.
func NewService(baseURL string, client *http.Client, c cache.Cache, ttl time.Duration) ServiceInterface {
	return &JokeService{baseURL: baseURL, client: client, cache: c, ttl: ttl}
}

func (s *JokeService) GetJoke(ctx context.Context, first, last string) (string, error) {
	key := fmt.Sprintf("joke:%s:%s", first, last)

	if s.cache != nil {
		var cached string
		found, err := s.cache.Get(ctx, key, &cached)
		if err != nil {
			log.Warn().Err(err).Msg("Joke cache read failed")
		} else if found {
			return cached, nil
		}
	}

	reqURL := fmt.Sprintf("%s&firstName=%s&lastName=%s",
		s.baseURL, url.QueryEscape(first), url.QueryEscape(last))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return "", fmt.Errorf("failed to build joke request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("joke request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("joke service returned status %d", resp.StatusCode)
	}

	var out model.JokeResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("failed to decode joke response: %w", err)
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, out.Value.Joke, s.ttl); err != nil {
			log.Warn().Err(err).Msg("Joke cache write failed")
		}
	}

	return out.Value.Joke, nil
}
