package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/altad3005/bet-cycling-friends-gateway/internal/adapter/pelotonapi"
	"github.com/altad3005/bet-cycling-friends-gateway/internal/core/domain"
)

const classicRaceID = 1 // Paris-Roubaix in the mock seed

func predictionFixture(t *testing.T) (*PredictionService, string) {
	t.Helper()
	api := pelotonapi.NewMock(testSecret)
	races := NewRaceService(api, newMemCache(), nopLogger{})
	svc := NewPredictionService(api, races, nopLogger{})

	token, err := api.Login(context.Background(), "julien@example.com", "password123")
	require.NoError(t, err)
	return svc, token
}

func TestBetPageLoadWithoutPrediction(t *testing.T) {
	svc, token := predictionFixture(t)

	page, err := svc.Load(context.Background(), token, classicRaceID)
	require.NoError(t, err)
	assert.Equal(t, "Paris-Roubaix", page.Race.Name)
	assert.Len(t, page.Riders, 8)
	assert.Nil(t, page.Prediction)
	assert.Equal(t, domain.PredictionPicker{}, page.Picker)
	assert.False(t, page.Closed)
}

func TestBetPageLoadDegradesWithoutStartlist(t *testing.T) {
	svc, token := predictionFixture(t)

	// Imported races start with an empty startlist entry; an unknown race
	// id is the fatal case instead.
	_, err := svc.Load(context.Background(), token, 999)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSubmitThenReload(t *testing.T) {
	svc, token := predictionFixture(t)
	ctx := context.Background()

	prediction, err := svc.Submit(ctx, token, classicRaceID, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, 1, prediction.FavoriteRiderID)
	assert.Equal(t, 2, prediction.BonusRiderID)
	require.NotNil(t, prediction.FavoriteRider)
	assert.Equal(t, "Tadej Pogacar", prediction.FavoriteRider.FullName)

	// The reloaded page comes back pre-filled and locked.
	page, err := svc.Load(ctx, token, classicRaceID)
	require.NoError(t, err)
	require.NotNil(t, page.Prediction)
	assert.Equal(t, domain.PredictionPicker{Winner: 1, Bonus: 2, Confirmed: true}, page.Picker)
}

func TestSubmitTwiceUpdatesInPlace(t *testing.T) {
	svc, token := predictionFixture(t)
	ctx := context.Background()

	first, err := svc.Submit(ctx, token, classicRaceID, 1, 2)
	require.NoError(t, err)

	second, err := svc.Submit(ctx, token, classicRaceID, 3, 4)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID, "resubmitting must update, not duplicate")
	assert.Equal(t, 3, second.FavoriteRiderID)
}

func TestSubmitRejectsIncompleteSelection(t *testing.T) {
	svc, token := predictionFixture(t)
	ctx := context.Background()

	_, err := svc.Submit(ctx, token, classicRaceID, 1, 0)
	assert.ErrorIs(t, err, domain.ErrIncompleteSelection)

	_, err = svc.Submit(ctx, token, classicRaceID, 1, 1)
	assert.ErrorIs(t, err, domain.ErrIncompleteSelection)
}

func TestSubmitRejectsUnknownRider(t *testing.T) {
	svc, token := predictionFixture(t)

	// Rider 12 rides the Tour in the seed but not Paris-Roubaix.
	_, err := svc.Submit(context.Background(), token, classicRaceID, 1, 12)
	var validationErr *domain.ValidationError
	assert.ErrorAs(t, err, &validationErr)
}

func TestBettingClosesAtRaceStart(t *testing.T) {
	svc, token := predictionFixture(t)
	svc.now = func() time.Time { return time.Now().AddDate(2, 0, 0) }
	ctx := context.Background()

	_, err := svc.Submit(ctx, token, classicRaceID, 1, 2)
	assert.ErrorIs(t, err, domain.ErrBettingClosed)

	_, err = svc.Toggle(ctx, token, classicRaceID, domain.PredictionPicker{}, 1)
	assert.ErrorIs(t, err, domain.ErrBettingClosed)

	page, loadErr := svc.Load(ctx, token, classicRaceID)
	require.NoError(t, loadErr)
	assert.True(t, page.Closed)
}

func TestToggleAdvancesPicker(t *testing.T) {
	svc, token := predictionFixture(t)
	ctx := context.Background()

	picker, err := svc.Toggle(ctx, token, classicRaceID, domain.PredictionPicker{}, 1)
	require.NoError(t, err)
	assert.Equal(t, domain.PredictionPicker{Winner: 1}, picker)

	picker, err = svc.Toggle(ctx, token, classicRaceID, picker, 2)
	require.NoError(t, err)
	assert.True(t, picker.Ready())
}

func TestDeletePrediction(t *testing.T) {
	svc, token := predictionFixture(t)
	ctx := context.Background()

	prediction, err := svc.Submit(ctx, token, classicRaceID, 1, 2)
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, token, prediction.ID))

	page, err := svc.Load(ctx, token, classicRaceID)
	require.NoError(t, err)
	assert.Nil(t, page.Prediction)
}

func TestLeaderboardScopedToLeague(t *testing.T) {
	svc, token := predictionFixture(t)
	ctx := context.Background()

	_, err := svc.Submit(ctx, token, classicRaceID, 1, 2)
	require.NoError(t, err)

	all, err := svc.Leaderboard(ctx, token, classicRaceID, 0)
	require.NoError(t, err)
	assert.Len(t, all, 1)

	// Julien is a member of league 1 in the seed.
	scoped, err := svc.Leaderboard(ctx, token, classicRaceID, 1)
	require.NoError(t, err)
	assert.Len(t, scoped, 1)

	empty, err := svc.Leaderboard(ctx, token, classicRaceID, 999)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestScoreAwardsPoints(t *testing.T) {
	svc, token := predictionFixture(t)
	ctx := context.Background()

	_, err := svc.Submit(ctx, token, classicRaceID, 1, 2)
	require.NoError(t, err)

	require.NoError(t, svc.Score(ctx, token, classicRaceID))

	board, err := svc.Leaderboard(ctx, token, classicRaceID, 0)
	require.NoError(t, err)
	require.Len(t, board, 1)
	require.NotNil(t, board[0].PointsEarned)
	assert.Equal(t, 75, *board[0].PointsEarned, "50 base points times the 1.5 multiplicator")
}
