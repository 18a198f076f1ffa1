package entitlement

import (
	"net/http"
	"strconv"
	"time"

	"go-timesheet/internal/shared/apperror"
	"go-timesheet/internal/shared/contextutil"
	"go-timesheet/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("entitlement.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("entitlement.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("entitlement request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func yearParam(c *gin.Context) int {
	if y, err := strconv.Atoi(c.Query("year")); err == nil && y > 0 {
		return y
	}
	return time.Now().UTC().Year()
}

func (h *Handler) Grant(c *gin.Context) {
	var req GrantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("http grant entitlement validation failed", zap.Error(err))
		httpErr := apperror.ToHTTP(apperror.MapValidationError(err))
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, nil)
		return
	}

	resp, err := h.service.Grant(c.Request.Context(), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) UpdateGrant(c *gin.Context) {
	var req UpdateGrantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpErr := apperror.ToHTTP(apperror.MapValidationError(err))
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, nil)
		return
	}

	resp, err := h.service.UpdateGrant(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

// MyBalances serves the caller's own yearly summary.
func (h *Handler) MyBalances(c *gin.Context) {
	userID := contextutil.GetUserID(c.Request.Context())

	resp, err := h.service.Balances(c.Request.Context(), userID, yearParam(c))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) BalancesForUser(c *gin.Context) {
	resp, err := h.service.Balances(c.Request.Context(), c.Param("userId"), yearParam(c))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) ListForUser(c *gin.Context) {
	resp, err := h.service.ListForYear(c.Request.Context(), c.Param("userId"), yearParam(c))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}
