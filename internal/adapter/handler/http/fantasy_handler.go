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

type FantasyHandler struct {
	fantasy *services.FantasyService
	logger  ports.LoggerPort
	metrics ports.MetricsPort
}

func NewFantasyHandler(fantasy *services.FantasyService, logger ports.LoggerPort, metrics ports.MetricsPort) *FantasyHandler {
	return &FantasyHandler{
		fantasy: fantasy,
		logger:  logger,
		metrics: metrics,
	}
}

type ToggleBuilderRequest struct {
	Builder domain.TeamBuilder `json:"builder"`
	RiderID int                `json:"riderId" binding:"required" example:"1"`
}

type ToggleBuilderResponse struct {
	Builder domain.TeamBuilder `json:"builder"`
	Ready   bool               `json:"ready"`
	Slots   int                `json:"slots"`
}

type SubmitFantasyTeamRequest struct {
	RiderIDs []int `json:"riderIds" binding:"required" example:"1,2,3,4,5,6,7,8"`
}

type FantasyLeaderboardResponse struct {
	Teams []*domain.FantasyTeam `json:"teams"`
	Count int                   `json:"count"`
}

// @Summary Fantasy bet page
// @Description Race, startlist and the caller's team builder in one parallel load; only grand tours have one
// @Tags fantasy
// @Security BearerAuth
// @Produce json
// @Param id path int true "Race ID"
// @Success 200 {object} services.FantasyPage "Fantasy page"
// @Failure 404 {object} errorResponse "Race not found"
// @Failure 422 {object} errorResponse "Race has no fantasy game"
// @Router /races/{id}/fantasy-bet [get]
func (h *FantasyHandler) FantasyPage(c *gin.Context) {
	start := time.Now()
	defer func() {
		h.metrics.RecordMetrics(c, start)
	}()

	raceID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		newErrorResponse(c, http.StatusBadRequest, "Invalid race ID")
		return
	}

	page, err := h.fantasy.Load(c.Request.Context(), getAuthToken(c), raceID)
	if err != nil {
		apiError(c, err)
		return
	}

	c.JSON(http.StatusOK, page)
}

// @Summary Toggle a rider in the team builder
// @Description One rider click: removes a rostered rider, adds a new one while a slot is free, does nothing on a full roster
// @Tags fantasy
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Race ID"
// @Param request body ToggleBuilderRequest true "Current builder state and clicked rider"
// @Success 200 {object} ToggleBuilderResponse "Next builder state"
// @Failure 409 {object} errorResponse "Selection locked or betting closed"
// @Router /races/{id}/fantasy-bet/toggle [post]
func (h *FantasyHandler) Toggle(c *gin.Context) {
	start := time.Now()
	defer func() {
		h.metrics.RecordMetrics(c, start)
	}()

	raceID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		newErrorResponse(c, http.StatusBadRequest, "Invalid race ID")
		return
	}

	var req ToggleBuilderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		newErrorResponse(c, http.StatusBadRequest, "Invalid JSON format")
		return
	}

	builder, err := h.fantasy.Toggle(c.Request.Context(), getAuthToken(c), raceID, req.Builder, req.RiderID)
	if err != nil {
		apiError(c, err)
		return
	}

	c.JSON(http.StatusOK, ToggleBuilderResponse{
		Builder: builder,
		Ready:   builder.Ready(),
		Slots:   domain.FantasyTeamSize - len(builder.Roster),
	})
}

// @Summary Submit a fantasy team
// @Description Creates or updates the caller's eight rider team for a grand tour
// @Tags fantasy
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Race ID"
// @Param request body SubmitFantasyTeamRequest true "The eight rider IDs"
// @Success 200 {object} domain.FantasyTeam "Team accepted"
// @Failure 400 {object} errorResponse "Roster incomplete"
// @Failure 409 {object} errorResponse "Betting closed"
// @Failure 422 {object} errorResponse "Riders rejected"
// @Router /races/{id}/fantasy-teams [post]
func (h *FantasyHandler) Submit(c *gin.Context) {
	start := time.Now()
	defer func() {
		h.metrics.RecordMetrics(c, start)
	}()

	raceID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		newErrorResponse(c, http.StatusBadRequest, "Invalid race ID")
		return
	}

	var req SubmitFantasyTeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		newErrorResponse(c, http.StatusBadRequest, "Invalid JSON format")
		return
	}

	team, err := h.fantasy.Submit(c.Request.Context(), getAuthToken(c), raceID, req.RiderIDs)
	if err != nil {
		apiError(c, err)
		return
	}

	c.JSON(http.StatusOK, team)
}

// @Summary Delete a fantasy team
// @Description Removes the caller's team; the confirm flag is the UI's confirmation step
// @Tags fantasy
// @Security BearerAuth
// @Produce json
// @Param id path int true "Fantasy team ID"
// @Param confirm query bool true "Must be true"
// @Success 200 {object} MessageResponse "Team deleted"
// @Failure 400 {object} errorResponse "Deletion not confirmed"
// @Failure 404 {object} errorResponse "Team not found"
// @Router /fantasy-teams/{id} [delete]
func (h *FantasyHandler) Delete(c *gin.Context) {
	start := time.Now()
	defer func() {
		h.metrics.RecordMetrics(c, start)
	}()

	teamID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		newErrorResponse(c, http.StatusBadRequest, "Invalid team ID")
		return
	}

	if c.Query("confirm") != "true" {
		newErrorResponse(c, http.StatusBadRequest, "Deletion must be confirmed")
		return
	}

	if err := h.fantasy.Delete(c.Request.Context(), getAuthToken(c), teamID); err != nil {
		apiError(c, err)
		return
	}

	c.JSON(http.StatusOK, MessageResponse{Message: "Fantasy team deleted"})
}

// @Summary Race fantasy teams
// @Description Everyone's fantasy teams for a grand tour, optionally scoped to a league
// @Tags fantasy
// @Security BearerAuth
// @Produce json
// @Param id path int true "Race ID"
// @Param league_id query int false "League scope"
// @Success 200 {object} FantasyLeaderboardResponse "Fantasy teams"
// @Router /races/{id}/fantasy-teams [get]
func (h *FantasyHandler) Leaderboard(c *gin.Context) {
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

	teams, err := h.fantasy.Leaderboard(c.Request.Context(), getAuthToken(c), raceID, leagueID)
	if err != nil {
		apiError(c, err)
		return
	}

	c.JSON(http.StatusOK, FantasyLeaderboardResponse{Teams: teams, Count: len(teams)})
}

// @Summary Score a race's fantasy teams
// @Description Triggers the backend scoring run (league admin feature)
// @Tags fantasy
// @Security BearerAuth
// @Produce json
// @Param id path int true "Race ID"
// @Success 200 {object} MessageResponse "Scoring triggered"
// @Router /races/{id}/score-fantasy-teams [post]
func (h *FantasyHandler) Score(c *gin.Context) {
	start := time.Now()
	defer func() {
		h.metrics.RecordMetrics(c, start)
	}()

	raceID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		newErrorResponse(c, http.StatusBadRequest, "Invalid race ID")
		return
	}

	if err := h.fantasy.Score(c.Request.Context(), getAuthToken(c), raceID); err != nil {
		apiError(c, err)
		return
	}

	c.JSON(http.StatusOK, MessageResponse{Message: "Fantasy teams scored"})
}
