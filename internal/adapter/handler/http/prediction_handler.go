package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/altad3005/bet-cycling-friends-gateway/internal/core/domain"
	"github.com/altad3005/bet-cycling-friends-gateway/internal/core/ports"
	"github.com/altad3005/bet-cycling-friends-gateway/internal/core/services"
)

type PredictionHandler struct {
	predictions *services.PredictionService
	logger      ports.LoggerPort
	metrics     ports.MetricsPort
}

func NewPredictionHandler(predictions *services.PredictionService, logger ports.LoggerPort, metrics ports.MetricsPort) *PredictionHandler {
	return &PredictionHandler{
		predictions: predictions,
		logger:      logger,
		metrics:     metrics,
	}
}

type TogglePickerRequest struct {
	Picker  domain.PredictionPicker `json:"picker"`
	RiderID int                     `json:"riderId" binding:"required" example:"1"`
}

type TogglePickerResponse struct {
	Picker domain.PredictionPicker `json:"picker"`
	Ready  bool                    `json:"ready"`
}

type SubmitPredictionRequest struct {
	FavoriteRiderID int `json:"favoriteRiderId" binding:"required" example:"1"`
	BonusRiderID    int `json:"bonusRiderId" binding:"required" example:"2"`
}

type PredictionLeaderboardResponse struct {
	Predictions []*domain.Prediction `json:"predictions"`
	Count       int                  `json:"count"`
}

// @Summary Bet page
// @Description Race, startlist and the caller's picker in one parallel load; missing startlist or prediction degrade to empty
// @Tags predictions
// @Security BearerAuth
// @Produce json
// @Param id path int true "Race ID"
// @Success 200 {object} services.BetPage "Bet page"
// @Failure 404 {object} errorResponse "Race not found"
// @Router /races/{id}/bet [get]
func (h *PredictionHandler) BetPage(c *gin.Context) {
	start := time.Now()
	defer func() {
		h.metrics.RecordMetrics(c, start)
	}()

	raceID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		newErrorResponse(c, http.StatusBadRequest, "Invalid race ID")
		return
	}

	page, err := h.predictions.Load(c.Request.Context(), getAuthToken(c), raceID)
	if err != nil {
		apiError(c, err)
		return
	}

	c.JSON(http.StatusOK, page)
}

// @Summary Toggle a rider in the picker
// @Description One rider click: toggles the winner/bonus slots per the bet page rules; rejected once confirmed or once the race started
// @Tags predictions
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Race ID"
// @Param request body TogglePickerRequest true "Current picker state and clicked rider"
// @Success 200 {object} TogglePickerResponse "Next picker state"
// @Failure 409 {object} errorResponse "Selection locked or betting closed"
// @Router /races/{id}/bet/toggle [post]
func (h *PredictionHandler) Toggle(c *gin.Context) {
	start := time.Now()
	defer func() {
		h.metrics.RecordMetrics(c, start)
	}()

	raceID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		newErrorResponse(c, http.StatusBadRequest, "Invalid race ID")
		return
	}

	var req TogglePickerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		newErrorResponse(c, http.StatusBadRequest, "Invalid JSON format")
		return
	}

	picker, err := h.predictions.Toggle(c.Request.Context(), getAuthToken(c), raceID, req.Picker, req.RiderID)
	if err != nil {
		apiError(c, err)
		return
	}

	c.JSON(http.StatusOK, TogglePickerResponse{Picker: picker, Ready: picker.Ready()})
}

// @Summary Submit a prediction
// @Description Creates or updates the caller's winner/bonus bet for a classic race
// @Tags predictions
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Race ID"
// @Param request body SubmitPredictionRequest true "Winner and bonus rider"
// @Success 200 {object} domain.Prediction "Prediction accepted"
// @Failure 400 {object} errorResponse "Selection incomplete"
// @Failure 409 {object} errorResponse "Betting closed"
// @Failure 422 {object} errorResponse "Riders rejected"
// @Router /races/{id}/predictions [post]
func (h *PredictionHandler) Submit(c *gin.Context) {
	start := time.Now()
	defer func() {
		h.metrics.RecordMetrics(c, start)
	}()

	raceID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		newErrorResponse(c, http.StatusBadRequest, "Invalid race ID")
		return
	}

	var req SubmitPredictionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		newErrorResponse(c, http.StatusBadRequest, "Invalid JSON format")
		return
	}

	prediction, err := h.predictions.Submit(c.Request.Context(), getAuthToken(c), raceID, req.FavoriteRiderID, req.BonusRiderID)
	if err != nil {
		apiError(c, err)
		return
	}

	c.JSON(http.StatusOK, prediction)
}

// @Summary Delete a prediction
// @Description Removes the caller's bet; the confirm flag is the UI's confirmation step
// @Tags predictions
// @Security BearerAuth
// @Produce json
// @Param id path int true "Prediction ID"
// @Param confirm query bool true "Must be true"
// @Success 200 {object} MessageResponse "Prediction deleted"
// @Failure 400 {object} errorResponse "Deletion not confirmed"
// @Failure 404 {object} errorResponse "Prediction not found"
// @Router /predictions/{id} [delete]
func (h *PredictionHandler) Delete(c *gin.Context) {
	start := time.Now()
	defer func() {
		h.metrics.RecordMetrics(c, start)
	}()

	predictionID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		newErrorResponse(c, http.StatusBadRequest, "Invalid prediction ID")
		return
	}

	if c.Query("confirm") != "true" {
		newErrorResponse(c, http.StatusBadRequest, "Deletion must be confirmed")
		return
	}

	if err := h.predictions.Delete(c.Request.Context(), getAuthToken(c), predictionID); err != nil {
		apiError(c, err)
		return
	}

	c.JSON(http.StatusOK, MessageResponse{Message: "Prediction deleted"})
}

// @Summary Race predictions
// @Description Everyone's predictions for a race, optionally scoped to a league
// @Tags predictions
// @Security BearerAuth
// @Produce json
// @Param id path int true "Race ID"
// @Param league_id query int false "League scope"
// @Success 200 {object} PredictionLeaderboardResponse "Predictions"
// @Router /races/{id}/predictions [get]
func (h *PredictionHandler) Leaderboard(c *gin.Context) {
	start := time.Now()
	defer func() {
		h.metrics.RecordMetrics(c, start)
	}()

	raceID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		newErrorResponse(c, http.StatusBadRequest, "Invalid race ID")
		return
	}
	leagueID, _ := strconv.Atoi(c.Query("league_id"))

	predictions, err := h.predictions.Leaderboard(c.Request.Context(), getAuthToken(c), raceID, leagueID)
	if err != nil {
		apiError(c, err)
		return
	}

	c.JSON(http.StatusOK, PredictionLeaderboardResponse{
		Predictions: predictions,
		Count:       len(predictions),
	})
}

// @Summary Score a race's predictions
// @Description Triggers the backend scoring run (league admin feature)
// @Tags predictions
// @Security BearerAuth
// @Produce json
// @Param id path int true "Race ID"
// @Success 200 {object} MessageResponse "Scoring triggered"
// @Router /races/{id}/score-predictions [post]
func (h *PredictionHandler) Score(c *gin.Context) {
	start := time.Now()
	defer func() {
		h.metrics.RecordMetrics(c, start)
	}()

	raceID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		newErrorResponse(c, http.StatusBadRequest, "Invalid race ID")
		return
	}

	if err := h.predictions.Score(c.Request.Context(), getAuthToken(c), raceID); err != nil {
		apiError(c, err)
		return
	}

	c.JSON(http.StatusOK, MessageResponse{Message: "Predictions scored"})
}
