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

type LeagueHandler struct {
	leagues *services.LeagueService
	logger  ports.LoggerPort
	metrics ports.MetricsPort
}

func NewLeagueHandler(leagues *services.LeagueService, logger ports.LoggerPort, metrics ports.MetricsPort) *LeagueHandler {
	return &LeagueHandler{
		leagues: leagues,
		logger:  logger,
		metrics: metrics,
	}
}

type CreateLeagueRequest struct {
	Name        string `json:"name" binding:"required" example:"Les Grimpeurs Fous"`
	Description string `json:"description,omitempty" example:"La ligue des copains du dimanche"`
}

type JoinLeagueRequest struct {
	Invite string `json:"invite" binding:"required" example:"12:GRIMPEURS"`
}

type DirectoryResponse struct {
	Memberships []*domain.LeagueMembership `json:"memberships"`
	Count       int                        `json:"count"`
}

// @Summary My leagues
// @Description Lists the leagues the authenticated user belongs to, with roles
// @Tags leagues
// @Security BearerAuth
// @Produce json
// @Success 200 {object} DirectoryResponse "League directory"
// @Failure 401 {object} errorResponse "Unauthorized"
// @Failure 502 {object} errorResponse "Upstream failure, retry-able"
// @Router /leagues [get]
func (h *LeagueHandler) Directory(c *gin.Context) {
	start := time.Now()
	defer func() {
		h.metrics.RecordMetrics(c, start)
	}()

	memberships, err := h.leagues.Directory(c.Request.Context(), getAuthToken(c))
	if err != nil {
		apiError(c, err)
		return
	}

	c.JSON(http.StatusOK, DirectoryResponse{
		Memberships: memberships,
		Count:       len(memberships),
	})
}

// @Summary League detail
// @Description League metadata and member list, fetched together; pages degrade on error instead of redirecting
// @Tags leagues
// @Security BearerAuth
// @Produce json
// @Param id path int true "League ID"
// @Success 200 {object} services.LeagueContext "League context"
// @Failure 404 {object} errorResponse "League not found"
// @Router /leagues/{id} [get]
func (h *LeagueHandler) Detail(c *gin.Context) {
	start := time.Now()
	defer func() {
		h.metrics.RecordMetrics(c, start)
	}()

	leagueID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		newErrorResponse(c, http.StatusBadRequest, "Invalid league ID")
		return
	}

	detail, err := h.leagues.Detail(c.Request.Context(), getAuthToken(c), leagueID)
	if err != nil {
		apiError(c, err)
		return
	}

	c.JSON(http.StatusOK, detail)
}

// @Summary Create a league
// @Description Creates a league; the creator becomes its admin upstream
// @Tags leagues
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body CreateLeagueRequest true "League data"
// @Success 201 {object} domain.League "League created"
// @Failure 422 {object} errorResponse "Invalid league name"
// @Router /leagues [post]
func (h *LeagueHandler) Create(c *gin.Context) {
	start := time.Now()
	defer func() {
		h.metrics.RecordMetrics(c, start)
	}()

	var req CreateLeagueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		newErrorResponse(c, http.StatusBadRequest, "Invalid JSON format")
		return
	}

	league, err := h.leagues.Create(c.Request.Context(), getAuthToken(c), req.Name, req.Description)
	if err != nil {
		apiError(c, err)
		return
	}

	c.JSON(http.StatusCreated, league)
}

// @Summary Join a league
// @Description Joins a league via the composite "leagueId:code" invite string shared out-of-band
// @Tags leagues
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body JoinLeagueRequest true "Invite string"
// @Success 200 {object} domain.League "League joined"
// @Failure 422 {object} errorResponse "Invalid invite"
// @Router /leagues/join [post]
func (h *LeagueHandler) Join(c *gin.Context) {
	start := time.Now()
	defer func() {
		h.metrics.RecordMetrics(c, start)
	}()

	var req JoinLeagueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		newErrorResponse(c, http.StatusBadRequest, "Invalid JSON format")
		return
	}

	league, err := h.leagues.Join(c.Request.Context(), getAuthToken(c), req.Invite)
	if err != nil {
		apiError(c, err)
		return
	}

	c.JSON(http.StatusOK, league)
}
