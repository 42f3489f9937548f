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

type RaceHandler struct {
	races   *services.RaceService
	logger  ports.LoggerPort
	metrics ports.MetricsPort
}

func NewRaceHandler(races *services.RaceService, logger ports.LoggerPort, metrics ports.MetricsPort) *RaceHandler {
	return &RaceHandler{
		races:   races,
		logger:  logger,
		metrics: metrics,
	}
}

type RacesResponse struct {
	Races []*domain.Race `json:"races"`
	Count int            `json:"count"`
}

type StartlistResponse struct {
	RaceID int             `json:"raceId"`
	Riders []*domain.Rider `json:"riders"`
	Count  int             `json:"count"`
}

// @Summary Season races
// @Description Lists the race catalog for a season; defaults to the current year
// @Tags races
// @Security BearerAuth
// @Produce json
// @Param year query int false "Season year"
// @Success 200 {object} RacesResponse "Races"
// @Failure 401 {object} errorResponse "Unauthorized"
// @Router /races [get]
func (h *RaceHandler) Races(c *gin.Context) {
	start := time.Now()
	defer func() {
		h.metrics.RecordMetrics(c, start)
	}()

	year, _ := strconv.Atoi(c.Query("year"))

	races, err := h.races.Races(c.Request.Context(), getAuthToken(c), year)
	if err != nil {
		apiError(c, err)
		return
	}

	c.JSON(http.StatusOK, RacesResponse{Races: races, Count: len(races)})
}

// @Summary Race detail
// @Description Race metadata including stages for stage races
// @Tags races
// @Security BearerAuth
// @Produce json
// @Param id path int true "Race ID"
// @Success 200 {object} domain.Race "Race"
// @Failure 404 {object} errorResponse "Race not found"
// @Router /races/{id} [get]
func (h *RaceHandler) Race(c *gin.Context) {
	start := time.Now()
	defer func() {
		h.metrics.RecordMetrics(c, start)
	}()

	raceID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		newErrorResponse(c, http.StatusBadRequest, "Invalid race ID")
		return
	}

	race, err := h.races.Race(c.Request.Context(), getAuthToken(c), raceID)
	if err != nil {
		apiError(c, err)
		return
	}

	c.JSON(http.StatusOK, race)
}

// @Summary Race startlist
// @Description Riders registered for the race; the search filter is a pure projection and never touches selection state
// @Tags races
// @Security BearerAuth
// @Produce json
// @Param id path int true "Race ID"
// @Param search query string false "Case-insensitive substring on rider or team name"
// @Success 200 {object} StartlistResponse "Startlist"
// @Failure 404 {object} errorResponse "Startlist not available"
// @Router /races/{id}/startlist [get]
func (h *RaceHandler) Startlist(c *gin.Context) {
	start := time.Now()
	defer func() {
		h.metrics.RecordMetrics(c, start)
	}()

	raceID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		newErrorResponse(c, http.StatusBadRequest, "Invalid race ID")
		return
	}

	startlist, err := h.races.Startlist(c.Request.Context(), getAuthToken(c), raceID)
	if err != nil {
		apiError(c, err)
		return
	}

	riders := startlist.Filter(c.Query("search"))
	c.JSON(http.StatusOK, StartlistResponse{
		RaceID: raceID,
		Riders: riders,
		Count:  len(riders),
	})
}

// @Summary Import a race
// @Description Imports a race from ProCyclingStats by slug (league admin feature)
// @Tags races
// @Security BearerAuth
// @Produce json
// @Param slug path string true "PCS slug" example:"strade-bianche"
// @Success 201 {object} domain.Race "Race imported"
// @Failure 422 {object} errorResponse "Unknown or duplicate slug"
// @Router /races/import/{slug} [post]
func (h *RaceHandler) Import(c *gin.Context) {
	start := time.Now()
	defer func() {
		h.metrics.RecordMetrics(c, start)
	}()

	slug := c.Param("slug")
	if slug == "" {
		newErrorResponse(c, http.StatusBadRequest, "Missing race slug")
		return
	}

	race, err := h.races.Import(c.Request.Context(), getAuthToken(c), slug)
	if err != nil {
		apiError(c, err)
		return
	}

	c.JSON(http.StatusCreated, race)
}
