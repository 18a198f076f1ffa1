package leave

import (
	"net/http"

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
	l := zap.L().Named("leave.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leave.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("leave request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateLeaveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("http create leave validation failed", zap.Error(err))
		httpErr := apperror.ToHTTP(apperror.MapValidationError(err))
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, nil)
		return
	}

	userID := contextutil.GetUserID(c.Request.Context())
	resp, warnings, err := h.service.Create(c.Request.Context(), userID, req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	if len(warnings) > 0 {
		response.SuccessWithWarnings(c, http.StatusCreated, resp, warnings)
		return
	}
	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) List(c *gin.Context) {
	var filter ListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		httpErr := apperror.ToHTTP(apperror.MapValidationError(err))
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, nil)
		return
	}

	userID := contextutil.GetUserID(c.Request.Context())
	resp, total, err := h.service.List(c.Request.Context(), userID, filter)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	meta := response.NewPaginationMeta(total, page, DefaultPageSize)
	response.Success(c, http.StatusOK, resp, &meta)
}

func (h *Handler) GetById(c *gin.Context) {
	viewerID := contextutil.GetUserID(c.Request.Context())
	viewerRole := c.GetString("role")

	resp, err := h.service.GetByID(c.Request.Context(), viewerID, viewerRole, c.Param("id"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Approve(c *gin.Context) {
	approverID := contextutil.GetUserID(c.Request.Context())

	resp, warnings, err := h.service.Approve(c.Request.Context(), approverID, c.Param("id"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	if len(warnings) > 0 {
		response.SuccessWithWarnings(c, http.StatusOK, resp, warnings)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Reject(c *gin.Context) {
	var req RejectLeaveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpErr := apperror.ToHTTP(apperror.MapValidationError(err))
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, nil)
		return
	}

	approverID := contextutil.GetUserID(c.Request.Context())
	resp, warnings, err := h.service.Reject(c.Request.Context(), approverID, c.Param("id"), req.Reason)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	if len(warnings) > 0 {
		response.SuccessWithWarnings(c, http.StatusOK, resp, warnings)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Cancel(c *gin.Context) {
	userID := contextutil.GetUserID(c.Request.Context())

	resp, err := h.service.Cancel(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) PendingApprovals(c *gin.Context) {
	managerID := contextutil.GetUserID(c.Request.Context())

	resp, err := h.service.PendingApprovals(c.Request.Context(), managerID)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Dashboard(c *gin.Context) {
	userID := contextutil.GetUserID(c.Request.Context())

	resp, err := h.service.Dashboard(c.Request.Context(), userID)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

// CalculateDays previews the business-day count for a date range
// before the user submits the leave form. A leave_type_id query
// parameter adds a balance warning to the preview.
func (h *Handler) CalculateDays(c *gin.Context) {
	var req CalculateDaysRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		httpErr := apperror.ToHTTP(apperror.MapValidationError(err))
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, nil)
		return
	}

	userID := contextutil.GetUserID(c.Request.Context())
	resp, err := h.service.CalculateDays(c.Request.Context(), userID, req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}
