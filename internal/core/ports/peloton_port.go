package ports

import (
	"context"

	"github.com/altad3005/bet-cycling-friends-gateway/internal/core/domain"
)

// PelotonAPI is the contract with the remote peloton backend. Every call
// carries the caller's bearer token; the backend stays authoritative for
// all persistence and scoring.
type PelotonAPI interface {
	// Auth
	Login(ctx context.Context, email, password string) (string, error)
	Register(ctx context.Context, pseudo, email, password string) error
	Me(ctx context.Context, token string) (*domain.User, error)

	// Leagues
	UserLeagues(ctx context.Context, token string) ([]*domain.LeagueMembership, error)
	League(ctx context.Context, token string, leagueID int) (*domain.League, error)
	LeagueMembers(ctx context.Context, token string, leagueID int) ([]*domain.LeagueMember, error)
	CreateLeague(ctx context.Context, token, name, description string) (*domain.League, error)
	JoinLeague(ctx context.Context, token string, leagueID int, inviteCode string) (*domain.League, error)

	// Races
	Races(ctx context.Context, token string, year int) ([]*domain.Race, error)
	Race(ctx context.Context, token string, raceID int) (*domain.Race, error)
	ImportRace(ctx context.Context, token, slug string) (*domain.Race, error)
	Startlist(ctx context.Context, token string, raceID int) (*domain.Startlist, error)

	// Predictions (classic races)
	MyPrediction(ctx context.Context, token string, raceID int) (*domain.Prediction, error)
	CreatePrediction(ctx context.Context, token string, raceID, favoriteRiderID, bonusRiderID int) (*domain.Prediction, error)
	UpdatePrediction(ctx context.Context, token string, predictionID, favoriteRiderID, bonusRiderID int) (*domain.Prediction, error)
	DeletePrediction(ctx context.Context, token string, predictionID int) error
	RacePredictions(ctx context.Context, token string, raceID, leagueID int) ([]*domain.Prediction, error)
	ScorePredictions(ctx context.Context, token string, raceID int) error

	// Fantasy teams (grand tours)
	MyFantasyTeam(ctx context.Context, token string, raceID int) (*domain.FantasyTeam, error)
	CreateFantasyTeam(ctx context.Context, token string, raceID int, riderIDs []int) (*domain.FantasyTeam, error)
	UpdateFantasyTeam(ctx context.Context, token string, teamID int, riderIDs []int) (*domain.FantasyTeam, error)
	DeleteFantasyTeam(ctx context.Context, token string, teamID int) error
	RaceFantasyTeams(ctx context.Context, token string, raceID, leagueID int) ([]*domain.FantasyTeam, error)
	ScoreFantasyTeams(ctx context.Context, token string, raceID int) error
}
