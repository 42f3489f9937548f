package services

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/altad3005/bet-cycling-friends-gateway/internal/core/domain"
	"github.com/altad3005/bet-cycling-friends-gateway/internal/core/ports"
)

type PredictionService struct {
	api    ports.PelotonAPI
	races  *RaceService
	logger ports.LoggerPort
	now    func() time.Time
}

func NewPredictionService(api ports.PelotonAPI, races *RaceService, logger ports.LoggerPort) *PredictionService {
	return &PredictionService{
		api:    api,
		races:  races,
		logger: logger,
		now:    time.Now,
	}
}

// BetPage is everything the classic race bet page renders: the race, the
// startlist and the caller's picker, pre-filled and locked when a
// prediction already exists.
type BetPage struct {
	Race       *domain.Race            `json:"race"`
	Riders     []*domain.Rider         `json:"riders"`
	Prediction *domain.Prediction      `json:"prediction,omitempty"`
	Picker     domain.PredictionPicker `json:"picker"`
	Closed     bool                    `json:"closed"`
}

// Load fetches race, startlist and existing prediction in parallel. The
// race fetch is the only fatal one: a missing startlist or prediction
// degrades to an empty value, mirroring the page's per-group catches.
func (s *PredictionService) Load(ctx context.Context, token string, raceID int) (*BetPage, error) {
	page := &BetPage{}

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
		prediction, err := s.api.MyPrediction(gctx, token, raceID)
		if err != nil {
			s.logger.Warn("Prediction fetch failed, treating as none", map[string]interface{}{
				"race_id": raceID,
				"error":   err.Error(),
			})
			return nil
		}
		page.Prediction = prediction
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if page.Prediction != nil {
		page.Picker = domain.PickerFromPrediction(page.Prediction)
	}
	page.Closed = page.Race.Started(s.now())
	return page, nil
}

// Toggle advances the picker state for one rider click. The race-started
// guard lives here so a stale page cannot keep mutating its selection.
func (s *PredictionService) Toggle(ctx context.Context, token string, raceID int, picker domain.PredictionPicker, riderID int) (domain.PredictionPicker, error) {
	race, err := s.races.Race(ctx, token, raceID)
	if err != nil {
		return picker, err
	}
	if race.Started(s.now()) {
		return picker, domain.ErrBettingClosed
	}
	if err := picker.Toggle(riderID); err != nil {
		return picker, err
	}
	return picker, nil
}

// Submit creates or updates the caller's prediction depending on whether
// one already exists. The result is only confirmed after the backend
// accepted it; nothing is applied optimistically.
func (s *PredictionService) Submit(ctx context.Context, token string, raceID, favoriteRiderID, bonusRiderID int) (*domain.Prediction, error) {
	picker := domain.PredictionPicker{Winner: favoriteRiderID, Bonus: bonusRiderID}
	if !picker.Ready() {
		return nil, domain.ErrIncompleteSelection
	}

	race, err := s.races.Race(ctx, token, raceID)
	if err != nil {
		return nil, err
	}
	if race.Started(s.now()) {
		return nil, domain.ErrBettingClosed
	}

	startlist, err := s.races.Startlist(ctx, token, raceID)
	if err == nil {
		if !startlist.Contains(favoriteRiderID) || !startlist.Contains(bonusRiderID) {
			return nil, &domain.ValidationError{Message: "both riders must be on the startlist"}
		}
	}

	existing, err := s.api.MyPrediction(ctx, token, raceID)
	if err != nil {
		existing = nil
	}

	var prediction *domain.Prediction
	if existing != nil {
		prediction, err = s.api.UpdatePrediction(ctx, token, existing.ID, favoriteRiderID, bonusRiderID)
	} else {
		prediction, err = s.api.CreatePrediction(ctx, token, raceID, favoriteRiderID, bonusRiderID)
	}
	if err != nil {
		s.logger.Error("Failed to submit prediction", map[string]interface{}{
			"race_id": raceID,
			"error":   err.Error(),
		})
		return nil, err
	}

	s.logger.Info("Prediction submitted", map[string]interface{}{
		"race_id":       raceID,
		"prediction_id": prediction.ID,
		"updated":       existing != nil,
	})
	return prediction, nil
}

func (s *PredictionService) Delete(ctx context.Context, token string, predictionID int) error {
	if err := s.api.DeletePrediction(ctx, token, predictionID); err != nil {
		s.logger.Error("Failed to delete prediction", map[string]interface{}{
			"prediction_id": predictionID,
			"error":         err.Error(),
		})
		return err
	}
	s.logger.Info("Prediction deleted", map[string]interface{}{
		"prediction_id": predictionID,
	})
	return nil
}

// Leaderboard lists a race's predictions, optionally scoped to a league.
func (s *PredictionService) Leaderboard(ctx context.Context, token string, raceID, leagueID int) ([]*domain.Prediction, error) {
	return s.api.RacePredictions(ctx, token, raceID, leagueID)
}

// Score triggers the backend's scoring run for the race.
func (s *PredictionService) Score(ctx context.Context, token string, raceID int) error {
	return s.api.ScorePredictions(ctx, token, raceID)
}
