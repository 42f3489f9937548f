package pelotonapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/altad3005/bet-cycling-friends-gateway/internal/core/domain"
)

type nopLogger struct{}

func (nopLogger) Debug(string, map[string]interface{}) {}
func (nopLogger) Info(string, map[string]interface{})  {}
func (nopLogger) Warn(string, map[string]interface{})  {}
func (nopLogger) Error(string, map[string]interface{}) {}

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClient(server.URL, 5*time.Second, nopLogger{})
}

func reply(w http.ResponseWriter, status int, message string, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"message": message,
		"data":    data,
	})
}

func TestLoginUnwrapsEnvelope(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/auth/login", r.URL.Path)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Equal(t, "julien@example.com", body["email"])

		reply(w, http.StatusOK, "Login successful", map[string]string{"token": "jwt-token"})
	})

	token, err := client.Login(context.Background(), "julien@example.com", "password123")
	require.NoError(t, err)
	assert.Equal(t, "jwt-token", token)
}

func TestMeSendsBearerToken(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "Bearer jwt-token", r.Header.Get("Authorization"))
		reply(w, http.StatusOK, "", map[string]interface{}{
			"id": 1, "email": "julien@example.com", "pseudo": "JuJuLaFlèche",
		})
	})

	user, err := client.Me(context.Background(), "jwt-token")
	require.NoError(t, err)
	assert.Equal(t, 1, user.ID)
	assert.Equal(t, "JuJuLaFlèche", user.Pseudo)
}

func TestMyPredictionNullDataMeansNoBet(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/races/1/predictions/my", r.URL.Path)
		reply(w, http.StatusOK, "No prediction", nil)
	})

	prediction, err := client.MyPrediction(context.Background(), "jwt-token", 1)
	require.NoError(t, err)
	assert.Nil(t, prediction)
}

func TestMyFantasyTeamNullDataMeansNoTeam(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		reply(w, http.StatusOK, "No team", nil)
	})

	team, err := client.MyFantasyTeam(context.Background(), "jwt-token", 2)
	require.NoError(t, err)
	assert.Nil(t, team)
}

func TestStartlistDecodesPivotExtras(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		reply(w, http.StatusOK, "", map[string]interface{}{
			"id": 1, "raceId": 1,
			"riders": []map[string]interface{}{
				{
					"id": 7, "fullName": "Wout van Aert", "team": "",
					"$extras": map[string]interface{}{"pivot_bib": 4, "pivot_team_name": "Visma Lease a Bike"},
				},
			},
		})
	})

	startlist, err := client.Startlist(context.Background(), "jwt-token", 1)
	require.NoError(t, err)
	require.Len(t, startlist.Riders, 1)
	rider := startlist.Riders[0]
	require.NotNil(t, rider.Extras)
	assert.Equal(t, 4, rider.Extras.Bib)
	assert.Equal(t, "Visma Lease a Bike", rider.DisplayTeam())
}

func TestStatusErrorMapping(t *testing.T) {
	cases := []struct {
		name   string
		status int
		verify func(t *testing.T, err error)
	}{
		{
			name:   "401 is unauthorized",
			status: http.StatusUnauthorized,
			verify: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, domain.ErrUnauthorized)
			},
		},
		{
			name:   "404 is not found",
			status: http.StatusNotFound,
			verify: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, domain.ErrNotFound)
			},
		},
		{
			name:   "422 surfaces the backend message",
			status: http.StatusUnprocessableEntity,
			verify: func(t *testing.T, err error) {
				var validationErr *domain.ValidationError
				require.ErrorAs(t, err, &validationErr)
				assert.Contains(t, validationErr.Error(), "rider is not on the startlist")
			},
		},
		{
			name:   "500 is a plain error",
			status: http.StatusInternalServerError,
			verify: func(t *testing.T, err error) {
				assert.NotErrorIs(t, err, domain.ErrUnauthorized)
				assert.NotErrorIs(t, err, domain.ErrNotFound)
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				reply(w, tc.status, "rider is not on the startlist", nil)
			})
			_, err := client.Race(context.Background(), "jwt-token", 1)
			require.Error(t, err)
			tc.verify(t, err)
		})
	}
}

func TestRacePredictionsLeagueScope(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "1", r.URL.Query().Get("league_id"))
		reply(w, http.StatusOK, "", []map[string]interface{}{
			{"id": 10, "userId": 1, "raceId": 1, "favoriteRiderId": 1, "bonusRiderId": 2},
		})
	})

	predictions, err := client.RacePredictions(context.Background(), "jwt-token", 1, 1)
	require.NoError(t, err)
	require.Len(t, predictions, 1)
	assert.Equal(t, 10, predictions[0].ID)
}
