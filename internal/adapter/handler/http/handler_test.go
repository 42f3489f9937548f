package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/altad3005/bet-cycling-friends-gateway/internal/adapter/pelotonapi"
	"github.com/altad3005/bet-cycling-friends-gateway/internal/config"
	"github.com/altad3005/bet-cycling-friends-gateway/internal/core/services"
)

type nopMetrics struct{}

func (nopMetrics) RecordMetrics(*gin.Context, time.Time) {}

type memCache struct {
	mu   sync.Mutex
	data map[string][]byte
}

func (c *memCache) Get(key string) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	value, ok := c.data[key]
	if !ok {
		return nil, errors.New("cache miss")
	}
	return value, nil
}

func (c *memCache) Set(key string, value []byte, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = value
	return nil
}

func (c *memCache) Delete(key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.data, key)
	return nil
}

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	api := pelotonapi.NewMock(testSecret)
	cache := &memCache{data: map[string][]byte{}}
	log := nopLogger{}
	metrics := nopMetrics{}
	validate := validator.New()

	tokenService := NewJWTTokenService(testSecret, log)
	sessionService := services.NewSessionService(api, tokenService, cache, log, validate)
	leagueService := services.NewLeagueService(api, log, validate)
	raceService := services.NewRaceService(api, cache, log)
	predictionService := services.NewPredictionService(api, raceService, log)
	fantasyService := services.NewFantasyService(api, raceService, log)

	router, err := NewRouter(
		&config.HTTP{Env: "test", AllowedOrigins: "http://localhost:3000"},
		tokenService,
		NewAuthHandler(sessionService, log, metrics, false),
		NewLeagueHandler(leagueService, log, metrics),
		NewRaceHandler(raceService, log, metrics),
		NewPredictionHandler(predictionService, log, metrics),
		NewFantasyHandler(fantasyService, log, metrics),
	)
	require.NoError(t, err)
	return router.Engine()
}

func doJSON(t *testing.T, router *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func login(t *testing.T, router *gin.Engine) string {
	t.Helper()
	w := doJSON(t, router, http.MethodPost, "/auth/login", "", map[string]string{
		"email":    "julien@example.com",
		"password": "password123",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var resp LoginResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

func TestLoginSetsCookieAndRedirect(t *testing.T) {
	router := newTestRouter(t)

	w := doJSON(t, router, http.MethodPost, "/auth/login", "", map[string]string{
		"email":    "julien@example.com",
		"password": "password123",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var resp LoginResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "/leagues", resp.Redirect)
	assert.Equal(t, "JuJuLaFlèche", resp.User.Pseudo)

	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies)
	var session *http.Cookie
	for _, c := range cookies {
		if c.Name == AuthCookieName {
			session = c
		}
	}
	require.NotNil(t, session, "auth_token cookie missing")
	assert.Equal(t, resp.Token, session.Value)
	assert.True(t, session.HttpOnly)
}

func TestLoginBadCredentials(t *testing.T) {
	router := newTestRouter(t)

	w := doJSON(t, router, http.MethodPost, "/auth/login", "", map[string]string{
		"email":    "julien@example.com",
		"password": "nope-nope-nope",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestMeWithInvalidTokenClearsCookie(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	req.AddCookie(&http.Cookie{Name: AuthCookieName, Value: "stale-garbage"})
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)

	var resp LogoutResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "/", resp.Redirect)

	var cleared bool
	for _, c := range w.Result().Cookies() {
		if c.Name == AuthCookieName && c.MaxAge < 0 {
			cleared = true
		}
	}
	assert.True(t, cleared, "stale cookie should be expired")
}

func TestLeagueDirectoryOverHTTP(t *testing.T) {
	router := newTestRouter(t)
	token := login(t, router)

	w := doJSON(t, router, http.MethodGet, "/leagues", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp DirectoryResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, 1, resp.Count)
	assert.Equal(t, "Les Grimpeurs Fous", resp.Memberships[0].League.Name)
}

func TestPredictionFlowOverHTTP(t *testing.T) {
	router := newTestRouter(t)
	token := login(t, router)

	// Empty bet page first.
	w := doJSON(t, router, http.MethodGet, "/races/1/bet", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var page services.BetPage
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &page))
	assert.Nil(t, page.Prediction)
	assert.Len(t, page.Riders, 8)

	// Two toggles build a complete picker.
	w = doJSON(t, router, http.MethodPost, "/races/1/bet/toggle", token, TogglePickerRequest{RiderID: 1})
	require.Equal(t, http.StatusOK, w.Code)
	var toggled TogglePickerResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &toggled))
	assert.False(t, toggled.Ready)

	w = doJSON(t, router, http.MethodPost, "/races/1/bet/toggle", token, TogglePickerRequest{
		Picker: toggled.Picker, RiderID: 2,
	})
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &toggled))
	assert.True(t, toggled.Ready)

	// Submit and reload: the picker comes back locked.
	w = doJSON(t, router, http.MethodPost, "/races/1/predictions", token, SubmitPredictionRequest{
		FavoriteRiderID: toggled.Picker.Winner,
		BonusRiderID:    toggled.Picker.Bonus,
	})
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, router, http.MethodGet, "/races/1/bet", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &page))
	require.NotNil(t, page.Prediction)
	assert.True(t, page.Picker.Confirmed)
}

func TestDeletePredictionNeedsConfirmFlag(t *testing.T) {
	router := newTestRouter(t)
	token := login(t, router)

	w := doJSON(t, router, http.MethodPost, "/races/1/predictions", token, SubmitPredictionRequest{
		FavoriteRiderID: 1, BonusRiderID: 2,
	})
	require.Equal(t, http.StatusOK, w.Code)
	var prediction struct {
		ID int `json:"id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &prediction))

	w = doJSON(t, router, http.MethodDelete, "/predictions/"+strconv.Itoa(prediction.ID), token, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code, "deletion without confirm flag must fail")

	w = doJSON(t, router, http.MethodDelete, "/predictions/"+strconv.Itoa(prediction.ID)+"?confirm=true", token, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestFantasyFlowOverHTTP(t *testing.T) {
	router := newTestRouter(t)
	token := login(t, router)

	w := doJSON(t, router, http.MethodPost, "/races/2/fantasy-teams", token, SubmitFantasyTeamRequest{
		RiderIDs: []int{1, 2, 3, 4, 5, 6, 7, 8},
	})
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, router, http.MethodGet, "/races/2/fantasy-bet", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var page services.FantasyPage
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &page))
	require.NotNil(t, page.Team)
	assert.True(t, page.Builder.Confirmed)
	assert.Len(t, page.Builder.Roster, 8)

	// A fantasy team on a one day race is rejected.
	w = doJSON(t, router, http.MethodPost, "/races/1/fantasy-teams", token, SubmitFantasyTeamRequest{
		RiderIDs: []int{1, 2, 3, 4, 5, 6, 7, 8},
	})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestStartlistSearchOverHTTP(t *testing.T) {
	router := newTestRouter(t)
	token := login(t, router)

	w := doJSON(t, router, http.MethodGet, "/races/2/startlist?search=visma", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp StartlistResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, 2, resp.Count)
	for _, rider := range resp.Riders {
		assert.Contains(t, rider.DisplayTeam(), "Visma")
	}
}

func TestProtectedRouteWithoutToken(t *testing.T) {
	router := newTestRouter(t)

	w := doJSON(t, router, http.MethodGet, "/races", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
