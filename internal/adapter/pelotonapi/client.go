package pelotonapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/altad3005/bet-cycling-friends-gateway/internal/core/domain"
	"github.com/altad3005/bet-cycling-friends-gateway/internal/core/ports"
)

// Client is the live JSON-over-HTTP client of the peloton API. Responses
// are wrapped in a {message, data} envelope.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     ports.LoggerPort
}

func NewClient(baseURL string, timeout time.Duration, logger ports.LoggerPort) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

type envelope struct {
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func (c *Client) do(ctx context.Context, method, path, token string, body interface{}, out interface{}) error {
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("Peloton API request failed", map[string]interface{}{
			"method": method,
			"path":   path,
			"error":  err.Error(),
		})
		return fmt.Errorf("peloton api: %w", err)
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil && resp.StatusCode < 400 {
		return fmt.Errorf("decode response: %w", err)
	}

	if resp.StatusCode >= 400 {
		return statusError(resp.StatusCode, env.Message, path)
	}

	if out == nil || len(env.Data) == 0 || string(env.Data) == "null" {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("decode response data: %w", err)
	}
	return nil
}

// Auth

func (c *Client) Login(ctx context.Context, email, password string) (string, error) {
	var data struct {
		Token string `json:"token"`
	}
	err := c.do(ctx, http.MethodPost, "/auth/login", "", map[string]string{
		"email":    email,
		"password": password,
	}, &data)
	if err != nil {
		return "", err
	}
	return data.Token, nil
}

func (c *Client) Register(ctx context.Context, pseudo, email, password string) error {
	return c.do(ctx, http.MethodPost, "/auth/register", "", map[string]string{
		"pseudo":   pseudo,
		"email":    email,
		"password": password,
	}, nil)
}

func (c *Client) Me(ctx context.Context, token string) (*domain.User, error) {
	user := &domain.User{}
	if err := c.do(ctx, http.MethodGet, "/auth/me", token, nil, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Leagues

func (c *Client) UserLeagues(ctx context.Context, token string) ([]*domain.LeagueMembership, error) {
	var memberships []*domain.LeagueMembership
	if err := c.do(ctx, http.MethodGet, "/users/leagues", token, nil, &memberships); err != nil {
		return nil, err
	}
	return memberships, nil
}

func (c *Client) League(ctx context.Context, token string, leagueID int) (*domain.League, error) {
	league := &domain.League{}
	if err := c.do(ctx, http.MethodGet, "/leagues/"+strconv.Itoa(leagueID), token, nil, league); err != nil {
		return nil, err
	}
	return league, nil
}

func (c *Client) LeagueMembers(ctx context.Context, token string, leagueID int) ([]*domain.LeagueMember, error) {
	var members []*domain.LeagueMember
	path := fmt.Sprintf("/leagues/%d/members", leagueID)
	if err := c.do(ctx, http.MethodGet, path, token, nil, &members); err != nil {
		return nil, err
	}
	return members, nil
}

func (c *Client) CreateLeague(ctx context.Context, token, name, description string) (*domain.League, error) {
	league := &domain.League{}
	err := c.do(ctx, http.MethodPost, "/leagues", token, map[string]string{
		"name":        name,
		"description": description,
	}, league)
	if err != nil {
		return nil, err
	}
	return league, nil
}

func (c *Client) JoinLeague(ctx context.Context, token string, leagueID int, inviteCode string) (*domain.League, error) {
	league := &domain.League{}
	err := c.do(ctx, http.MethodPost, "/leagues/join", token, map[string]interface{}{
		"leagueId":   leagueID,
		"inviteCode": inviteCode,
	}, league)
	if err != nil {
		return nil, err
	}
	return league, nil
}

// Races

func (c *Client) Races(ctx context.Context, token string, year int) ([]*domain.Race, error) {
	path := "/races"
	if year > 0 {
		path += "?year=" + url.QueryEscape(strconv.Itoa(year))
	}
	var races []*domain.Race
	if err := c.do(ctx, http.MethodGet, path, token, nil, &races); err != nil {
		return nil, err
	}
	return races, nil
}

func (c *Client) Race(ctx context.Context, token string, raceID int) (*domain.Race, error) {
	race := &domain.Race{}
	if err := c.do(ctx, http.MethodGet, "/races/"+strconv.Itoa(raceID), token, nil, race); err != nil {
		return nil, err
	}
	return race, nil
}

func (c *Client) ImportRace(ctx context.Context, token, slug string) (*domain.Race, error) {
	race := &domain.Race{}
	path := "/races/import/" + url.PathEscape(slug)
	if err := c.do(ctx, http.MethodPost, path, token, nil, race); err != nil {
		return nil, err
	}
	return race, nil
}

func (c *Client) Startlist(ctx context.Context, token string, raceID int) (*domain.Startlist, error) {
	startlist := &domain.Startlist{}
	path := fmt.Sprintf("/races/%d/startlist", raceID)
	if err := c.do(ctx, http.MethodGet, path, token, nil, startlist); err != nil {
		return nil, err
	}
	return startlist, nil
}

// Predictions

func (c *Client) MyPrediction(ctx context.Context, token string, raceID int) (*domain.Prediction, error) {
	prediction := &domain.Prediction{}
	path := fmt.Sprintf("/races/%d/predictions/my", raceID)
	if err := c.do(ctx, http.MethodGet, path, token, nil, prediction); err != nil {
		return nil, err
	}
	if prediction.ID == 0 {
		// The backend answers 200 with a null body when no bet exists yet.
		return nil, nil
	}
	return prediction, nil
}

func (c *Client) CreatePrediction(ctx context.Context, token string, raceID, favoriteRiderID, bonusRiderID int) (*domain.Prediction, error) {
	prediction := &domain.Prediction{}
	path := fmt.Sprintf("/races/%d/predictions", raceID)
	err := c.do(ctx, http.MethodPost, path, token, map[string]int{
		"favoriteRiderId": favoriteRiderID,
		"bonusRiderId":    bonusRiderID,
	}, prediction)
	if err != nil {
		return nil, err
	}
	return prediction, nil
}

func (c *Client) UpdatePrediction(ctx context.Context, token string, predictionID, favoriteRiderID, bonusRiderID int) (*domain.Prediction, error) {
	prediction := &domain.Prediction{}
	err := c.do(ctx, http.MethodPut, "/predictions/"+strconv.Itoa(predictionID), token, map[string]int{
		"favoriteRiderId": favoriteRiderID,
		"bonusRiderId":    bonusRiderID,
	}, prediction)
	if err != nil {
		return nil, err
	}
	return prediction, nil
}

func (c *Client) DeletePrediction(ctx context.Context, token string, predictionID int) error {
	return c.do(ctx, http.MethodDelete, "/predictions/"+strconv.Itoa(predictionID), token, nil, nil)
}

func (c *Client) RacePredictions(ctx context.Context, token string, raceID, leagueID int) ([]*domain.Prediction, error) {
	path := fmt.Sprintf("/races/%d/predictions", raceID)
	if leagueID > 0 {
		path += "?league_id=" + strconv.Itoa(leagueID)
	}
	var predictions []*domain.Prediction
	if err := c.do(ctx, http.MethodGet, path, token, nil, &predictions); err != nil {
		return nil, err
	}
	return predictions, nil
}

func (c *Client) ScorePredictions(ctx context.Context, token string, raceID int) error {
	path := fmt.Sprintf("/races/%d/score-predictions", raceID)
	return c.do(ctx, http.MethodPost, path, token, nil, nil)
}

// Fantasy teams

func (c *Client) MyFantasyTeam(ctx context.Context, token string, raceID int) (*domain.FantasyTeam, error) {
	team := &domain.FantasyTeam{}
	path := fmt.Sprintf("/races/%d/fantasy-teams/my", raceID)
	if err := c.do(ctx, http.MethodGet, path, token, nil, team); err != nil {
		return nil, err
	}
	if team.ID == 0 {
		return nil, nil
	}
	return team, nil
}

func (c *Client) CreateFantasyTeam(ctx context.Context, token string, raceID int, riderIDs []int) (*domain.FantasyTeam, error) {
	team := &domain.FantasyTeam{}
	path := fmt.Sprintf("/races/%d/fantasy-teams", raceID)
	err := c.do(ctx, http.MethodPost, path, token, map[string][]int{
		"riderIds": riderIDs,
	}, team)
	if err != nil {
		return nil, err
	}
	return team, nil
}

func (c *Client) UpdateFantasyTeam(ctx context.Context, token string, teamID int, riderIDs []int) (*domain.FantasyTeam, error) {
	team := &domain.FantasyTeam{}
	err := c.do(ctx, http.MethodPut, "/fantasy-teams/"+strconv.Itoa(teamID), token, map[string][]int{
		"riderIds": riderIDs,
	}, team)
	if err != nil {
		return nil, err
	}
	return team, nil
}

func (c *Client) DeleteFantasyTeam(ctx context.Context, token string, teamID int) error {
	return c.do(ctx, http.MethodDelete, "/fantasy-teams/"+strconv.Itoa(teamID), token, nil, nil)
}

func (c *Client) RaceFantasyTeams(ctx context.Context, token string, raceID, leagueID int) ([]*domain.FantasyTeam, error) {
	path := fmt.Sprintf("/races/%d/fantasy-teams", raceID)
	if leagueID > 0 {
		path += "?league_id=" + strconv.Itoa(leagueID)
	}
	var teams []*domain.FantasyTeam
	if err := c.do(ctx, http.MethodGet, path, token, nil, &teams); err != nil {
		return nil, err
	}
	return teams, nil
}

func (c *Client) ScoreFantasyTeams(ctx context.Context, token string, raceID int) error {
	path := fmt.Sprintf("/races/%d/score-fantasy-teams", raceID)
	return c.do(ctx, http.MethodPost, path, token, nil, nil)
}
