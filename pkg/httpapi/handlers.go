package httpapi

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/pflegeteam/shiftplan/internal/config"
	"github.com/pflegeteam/shiftplan/pkg/core/services"
	"github.com/pflegeteam/shiftplan/pkg/db"
)

// Handler contains dependencies for the route handlers
type Handler struct {
	DB     db.Database
	Cfg    *config.Config
	Logger *zap.Logger
}

// Health reports that the server is up
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// GeneratePlan generates, validates and stores the plan of a month.
// ?dryRun=true skips storing.
func (h *Handler) GeneratePlan(c *gin.Context) {
	var req services.GeneratePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	dryRun, _ := strconv.ParseBool(c.DefaultQuery("dryRun", "false"))

	result, err := services.GeneratePlan(c.Request.Context(), h.DB, h.Cfg, h.Logger, req, dryRun)
	if err != nil {
		h.respondError(c, err)
		return
	}

	status := http.StatusCreated
	if dryRun {
		status = http.StatusOK
	}
	c.JSON(status, result)
}

// GetPlan returns the stored plan of a month with its violations
func (h *Handler) GetPlan(c *gin.Context) {
	year, month, ok := monthParams(c)
	if !ok {
		return
	}

	stored, err := services.ViewPlan(c.Request.Context(), h.DB, h.Logger, year, month)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, stored)
}

// FinalizePlan marks the stored plan of a month as final
func (h *Handler) FinalizePlan(c *gin.Context) {
	year, month, ok := monthParams(c)
	if !ok {
		return
	}

	id, err := services.FinalizePlan(c.Request.Context(), h.DB, h.Logger, year, month)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"planId": id, "isFinalized": true})
}

func monthParams(c *gin.Context) (int, int, bool) {
	year, err := strconv.Atoi(c.Param("year"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "year must be a number"})
		return 0, 0, false
	}
	month, err := strconv.Atoi(c.Param("month"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "month must be a number"})
		return 0, 0, false
	}
	return year, month, true
}

func (h *Handler) respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, services.ErrInvalidRequest):
		status = http.StatusBadRequest
	case errors.Is(err, services.ErrPlanNotFound):
		status = http.StatusNotFound
	case errors.Is(err, services.ErrPlanFinalized):
		status = http.StatusConflict
	case errors.Is(err, services.ErrNoEmployees):
		status = http.StatusUnprocessableEntity
	}

	if status == http.StatusInternalServerError {
		h.Logger.Error("Request failed", zap.String("path", c.FullPath()), zap.Error(err))
		c.JSON(status, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(status, gin.H{"error": err.Error()})
}
