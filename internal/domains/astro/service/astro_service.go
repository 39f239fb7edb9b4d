package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"shopping-backend/internal/domains/astro/model"
	"shopping-backend/internal/infrastructure/cache"
)

const cacheKey = "astro:astronauts"

// ServiceInterface reports who is in space right now.
type ServiceInterface interface {
	GetAstronauts(ctx context.Context) (*model.AstroResponse, error)
}

type AstroService struct {
	url    string
	client *http.Client
	cache  cache.Cache
	ttl    time.Duration
}

// NewService creates the astro client. cache may be nil, in which case
// every call goes over the network.
func NewService(url string, client *http.Client, c cache.Cache, ttl time.Duration) ServiceInterface {
	return &AstroService{url: url, client: client, cache: c, ttl: ttl}
}

func (s *AstroService) GetAstronauts(ctx context.Context) (*model.AstroResponse, error) {
	if s.cache != nil {
		var cached model.AstroResponse
		found, err := s.cache.Get(ctx, cacheKey, &cached)
		if err != nil {
			// A broken cache must not take the endpoint down.
			log.Warn().Err(err).Msg("Astro cache read failed")
		} else if found {
			return &cached, nil
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build astro request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("astro request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("astro service returned status %d", resp.StatusCode)
	}

	var out model.AstroResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("failed to decode astro response: %w", err)
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, cacheKey, &out, s.ttl); err != nil {
			log.Warn().Err(err).Msg("Astro cache write failed")
		}
	}

	log.Info().Int("number", out.Number).Msg("Fetched astronauts in space")
	return &out, nil
}
