package timesheet

import (
	"net/http"
	"strconv"
	"time"

	"go-timesheet/internal/shared/apperror"
	"go-timesheet/internal/shared/contextutil"
	"go-timesheet/internal/shared/response"
	timesheeterrors "go-timesheet/internal/timesheet/errors"
	"go-timesheet/internal/workday"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("timesheet.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("timesheet.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("timesheet request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func weekParams(c *gin.Context) (int, int, error) {
	yearStr := c.Param("year")
	weekStr := c.Param("week")
	if yearStr == "" && weekStr == "" {
		year, week, _ := workday.WeekOf(time.Now().UTC())
		return year, week, nil
	}

	year, err := strconv.Atoi(yearStr)
	if err != nil {
		return 0, 0, timesheeterrors.ErrInvalidWeek
	}
	week, err := strconv.Atoi(weekStr)
	if err != nil {
		return 0, 0, timesheeterrors.ErrInvalidWeek
	}
	return year, week, nil
}

// CurrentWeek serves the grid for today's ISO week.
func (h *Handler) CurrentWeek(c *gin.Context) {
	h.week(c)
}

func (h *Handler) Week(c *gin.Context) {
	h.week(c)
}

func (h *Handler) week(c *gin.Context) {
	year, week, err := weekParams(c)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	userID := contextutil.GetUserID(c.Request.Context())
	resp, err := h.service.GetWeek(c.Request.Context(), userID, year, week)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) SaveWeek(c *gin.Context) {
	year, week, err := weekParams(c)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	var req SaveWeekRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("http save week validation failed", zap.Error(err))
		httpErr := apperror.ToHTTP(apperror.MapValidationError(err))
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, nil)
		return
	}

	userID := contextutil.GetUserID(c.Request.Context())
	resp, err := h.service.SaveWeek(c.Request.Context(), userID, year, week, req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) AddRow(c *gin.Context) {
	year, week, err := weekParams(c)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	var req AddRowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpErr := apperror.ToHTTP(apperror.MapValidationError(err))
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, nil)
		return
	}

	userID := contextutil.GetUserID(c.Request.Context())
	resp, err := h.service.AddRow(c.Request.Context(), userID, year, week, req.ProjectID)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

// RemoveRow succeeds even when there is nothing to remove so the grid
// can always drop the row client-side.
func (h *Handler) RemoveRow(c *gin.Context) {
	year, week, err := weekParams(c)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	userID := contextutil.GetUserID(c.Request.Context())
	if err := h.service.RemoveRow(c.Request.Context(), userID, year, week, c.Param("projectId")); err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"removed": true}, nil)
}
