package services

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/altad3005/bet-cycling-friends-gateway/internal/core/domain"
	"github.com/altad3005/bet-cycling-friends-gateway/internal/core/ports"
)

type FantasyService struct {
	api    ports.PelotonAPI
	races  *RaceService
	logger ports.LoggerPort
	now    func() time.Time
}

func NewFantasyService(api ports.PelotonAPI, races *RaceService, logger ports.LoggerPort) *FantasyService {
	return &FantasyService{
		api:    api,
		races:  races,
		logger: logger,
		now:    time.Now,
	}
}

// FantasyPage mirrors BetPage for grand tours: race, startlist and the
// caller's roster builder.
type FantasyPage struct {
	Race    *domain.Race        `json:"race"`
	Riders  []*domain.Rider     `json:"riders"`
	Team    *domain.FantasyTeam `json:"team,omitempty"`
	Builder domain.TeamBuilder  `json:"builder"`
	Closed  bool                `json:"closed"`
}

func (s *FantasyService) Load(ctx context.Context, token string, raceID int) (*FantasyPage, error) {
	page := &FantasyPage{}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		race, err := s.races.Race(gctx, token, raceID)
		if err != nil {
			return err
		}
		page.Race = race
		return nil
	})
	g.Go(func() error {
		startlist, err := s.races.Startlist(gctx, token, raceID)
		if err != nil {
			s.logger.Warn("Startlist unavailable, degrading to empty", map[string]interface{}{
				"race_id": raceID,
				"error":   err.Error(),
			})
			return nil
		}
		page.Riders = startlist.Riders
		return nil
	})
	g.Go(func() error {
		team, err := s.api.MyFantasyTeam(gctx, token, raceID)
		if err != nil {
			s.logger.Warn("Fantasy team fetch failed, treating as none", map[string]interface{}{
				"race_id": raceID,
				"error":   err.Error(),
			})
			return nil
		}
		page.Team = team
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if page.Team != nil {
		page.Builder = domain.BuilderFromTeam(page.Team)
	}
	page.Closed = page.Race.Started(s.now())
	return page, nil
}

func (s *FantasyService) Toggle(ctx context.Context, token string, raceID int, builder domain.TeamBuilder, riderID int) (domain.TeamBuilder, error) {
	race, err := s.races.Race(ctx, token, raceID)
	if err != nil {
		return builder, err
	}
	if race.Started(s.now()) {
		return builder, domain.ErrBettingClosed
	}
	if err := builder.Toggle(riderID); err != nil {
		return builder, err
	}
	return builder, nil
}

// Submit creates or updates the caller's fantasy team. The roster must
// hold exactly 8 distinct startlist riders; the grand tour type check
// keeps predictions and fantasy teams from mixing on the same race.
func (s *FantasyService) Submit(ctx context.Context, token string, raceID int, riderIDs []int) (*domain.FantasyTeam, error) {
	builder := domain.TeamBuilder{}
	for _, id := range riderIDs {
		if err := builder.Toggle(id); err != nil {
			return nil, err
		}
	}
	if !builder.Ready() {
		return nil, domain.ErrIncompleteSelection
	}

	race, err := s.races.Race(ctx, token, raceID)
	if err != nil {
		return nil, err
	}
	if !race.UsesFantasyTeam() {
		return nil, &domain.ValidationError{Message: "fantasy teams are only for grand tours"}
	}
	if race.Started(s.now()) {
		return nil, domain.ErrBettingClosed
	}

	startlist, err := s.races.Startlist(ctx, token, raceID)
	if err == nil {
		for _, id := range builder.Roster {
			if !startlist.Contains(id) {
				return nil, &domain.ValidationError{Message: "all riders must be on the startlist"}
			}
		}
	}

	existing, err := s.api.MyFantasyTeam(ctx, token, raceID)
	if err != nil {
		existing = nil
	}

	var team *domain.FantasyTeam
	if existing != nil {
		team, err = s.api.UpdateFantasyTeam(ctx, token, existing.ID, builder.Roster)
	} else {
		team, err = s.api.CreateFantasyTeam(ctx, token, raceID, builder.Roster)
	}
	if err != nil {
		s.logger.Error("Failed to submit fantasy team", map[string]interface{}{
			"race_id": raceID,
			"error":   err.Error(),
		})
		return nil, err
	}

	s.logger.Info("Fantasy team submitted", map[string]interface{}{
		"race_id": raceID,
		"team_id": team.ID,
		"updated": existing != nil,
	})
	return team, nil
}

func (s *FantasyService) Delete(ctx context.Context, token string, teamID int) error {
	if err := s.api.DeleteFantasyTeam(ctx, token, teamID); err != nil {
		s.logger.Error("Failed to delete fantasy team", map[string]interface{}{
			"team_id": teamID,
			"error":   err.Error(),
		})
		return err
	}
	s.logger.Info("Fantasy team deleted", map[string]interface{}{
		"team_id": teamID,
	})
	return nil
}

func (s *FantasyService) Leaderboard(ctx context.Context, token string, raceID, leagueID int) ([]*domain.FantasyTeam, error) {
	return s.api.RaceFantasyTeams(ctx, token, raceID, leagueID)
}

func (s *FantasyService) Score(ctx context.Context, token string, raceID int) error {
	return s.api.ScoreFantasyTeams(ctx, token, raceID)
}
