package services

import (
	"context"

	"github.com/go-playground/validator/v10"
	"golang.org/x/sync/errgroup"

	"github.com/altad3005/bet-cycling-friends-gateway/internal/core/domain"
	"github.com/altad3005/bet-cycling-friends-gateway/internal/core/ports"
)

type LeagueService struct {
	api      ports.PelotonAPI
	logger   ports.LoggerPort
	validate *validator.Validate
}

func NewLeagueService(api ports.PelotonAPI, logger ports.LoggerPort, validate *validator.Validate) *LeagueService {
	return &LeagueService{
		api:      api,
		logger:   logger,
		validate: validate,
	}
}

// LeagueContext is the league detail every page under /leagues/{id} reads:
// metadata plus the member list, fetched together.
type LeagueContext struct {
	League  *domain.League         `json:"league"`
	Members []*domain.LeagueMember `json:"members"`
}

func (s *LeagueService) Directory(ctx context.Context, token string) ([]*domain.LeagueMembership, error) {
	memberships, err := s.api.UserLeagues(ctx, token)
	if err != nil {
		s.logger.Error("Failed to fetch league directory", map[string]interface{}{
			"error": err.Error(),
		})
		return nil, err
	}
	return memberships, nil
}

// Detail fetches league metadata and members concurrently and joins them.
// A failure of either fetch surfaces as one error; the caller renders an
// error state instead of redirecting.
func (s *LeagueService) Detail(ctx context.Context, token string, leagueID int) (*LeagueContext, error) {
	detail := &LeagueContext{}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		league, err := s.api.League(ctx, token, leagueID)
		if err != nil {
			return err
		}
		detail.League = league
		return nil
	})
	g.Go(func() error {
		members, err := s.api.LeagueMembers(ctx, token, leagueID)
		if err != nil {
			return err
		}
		detail.Members = members
		return nil
	})

	if err := g.Wait(); err != nil {
		s.logger.Error("Failed to load league context", map[string]interface{}{
			"league_id": leagueID,
			"error":     err.Error(),
		})
		return nil, err
	}
	return detail, nil
}

func (s *LeagueService) Create(ctx context.Context, token, name, description string) (*domain.League, error) {
	league := &domain.League{Name: name, Description: description}
	if err := s.validate.Struct(league); err != nil {
		return nil, &domain.ValidationError{Message: "league name must be between 3 and 50 characters"}
	}

	created, err := s.api.CreateLeague(ctx, token, name, description)
	if err != nil {
		return nil, err
	}

	s.logger.Info("League created", map[string]interface{}{
		"league_id": created.ID,
		"name":      created.Name,
	})
	return created, nil
}

// Join accepts the composite "leagueId:code" invite string players share
// out-of-band.
func (s *LeagueService) Join(ctx context.Context, token, invite string) (*domain.League, error) {
	leagueID, code, err := domain.ParseInviteString(invite)
	if err != nil {
		return nil, &domain.ValidationError{Message: "invite code must look like 12:CODE"}
	}

	league, err := s.api.JoinLeague(ctx, token, leagueID, code)
	if err != nil {
		return nil, err
	}

	s.logger.Info("User joined league", map[string]interface{}{
		"league_id": league.ID,
	})
	return league, nil
}
