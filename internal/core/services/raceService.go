package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/altad3005/bet-cycling-friends-gateway/internal/core/domain"
	"github.com/altad3005/bet-cycling-friends-gateway/internal/core/ports"
)

const (
	raceCacheTTL      = 15 * time.Minute
	startlistCacheTTL = 10 * time.Minute
)

type RaceService struct {
	api    ports.PelotonAPI
	cache  ports.CachePort
	logger ports.LoggerPort
	now    func() time.Time
}

func NewRaceService(api ports.PelotonAPI, cache ports.CachePort, logger ports.LoggerPort) *RaceService {
	return &RaceService{
		api:    api,
		cache:  cache,
		logger: logger,
		now:    time.Now,
	}
}

// Races lists the season's catalog; a zero year means the current season.
func (s *RaceService) Races(ctx context.Context, token string, year int) ([]*domain.Race, error) {
	if year <= 0 {
		year = s.now().Year()
	}
	return s.api.Races(ctx, token, year)
}

// Race returns race detail, cached briefly: the catalog is read-only from
// the gateway's perspective and every bet page fetches it.
func (s *RaceService) Race(ctx context.Context, token string, raceID int) (*domain.Race, error) {
	cacheKey := fmt.Sprintf("race:%d", raceID)
	if cached, err := s.cache.Get(cacheKey); err == nil {
		race := &domain.Race{}
		if err := json.Unmarshal(cached, race); err == nil {
			return race, nil
		}
	}

	race, err := s.api.Race(ctx, token, raceID)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(race); err == nil {
		if err := s.cache.Set(cacheKey, data, raceCacheTTL); err != nil {
			s.logger.Warn("Failed to cache race", map[string]interface{}{
				"race_id": raceID,
				"error":   err.Error(),
			})
		}
	}
	return race, nil
}

func (s *RaceService) Startlist(ctx context.Context, token string, raceID int) (*domain.Startlist, error) {
	cacheKey := fmt.Sprintf("startlist:%d", raceID)
	if cached, err := s.cache.Get(cacheKey); err == nil {
		startlist := &domain.Startlist{}
		if err := json.Unmarshal(cached, startlist); err == nil {
			return startlist, nil
		}
	}

	startlist, err := s.api.Startlist(ctx, token, raceID)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(startlist); err == nil {
		if err := s.cache.Set(cacheKey, data, startlistCacheTTL); err != nil {
			s.logger.Warn("Failed to cache startlist", map[string]interface{}{
				"race_id": raceID,
				"error":   err.Error(),
			})
		}
	}
	return startlist, nil
}

// Import pulls a race from the external race-data source by its
// ProCyclingStats slug.
func (s *RaceService) Import(ctx context.Context, token, slug string) (*domain.Race, error) {
	race, err := s.api.ImportRace(ctx, token, slug)
	if err != nil {
		s.logger.Error("Race import failed", map[string]interface{}{
			"slug":  slug,
			"error": err.Error(),
		})
		return nil, err
	}

	s.logger.Info("Race imported", map[string]interface{}{
		"race_id": race.ID,
		"slug":    slug,
	})
	return race, nil
}
