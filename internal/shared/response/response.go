package response

import (
	"github.com/gin-gonic/gin"
)

type PaginationMeta struct {
	Total      int64 `json:"total,omitempty"`
	TotalPages int   `json:"totalPages,omitempty"`
	Page       int   `json:"page,omitempty"`
	PageSize   int   `json:"pageSize,omitempty"`
}

func NewPaginationMeta(total int64, page, limit int) PaginationMeta {
	totalPages := 0
	if limit > 0 {
		totalPages = int((total + int64(limit) - 1) / int64(limit))
	}

	return PaginationMeta{
		Total:      total,
		TotalPages: totalPages,
		Page:       page,
		PageSize:   limit,
	}
}

type ApiEnvelope struct {
	Ok       bool            `json:"ok"`
	Data     any             `json:"data,omitempty"`
	Meta     *PaginationMeta `json:"meta,omitempty"`
	Warnings []string        `json:"warnings,omitempty"`
	Error    any             `json:"error,omitempty"`
}

func Success(c *gin.Context, status int, data interface{}, meta *PaginationMeta) {
	c.JSON(status, ApiEnvelope{
		Ok:   true,
		Data: data,
		Meta: meta,
	})
}

// SuccessWithWarnings is Success plus soft warnings the client should
// show without treating the request as failed (e.g. a notification that
// could not be delivered).
func SuccessWithWarnings(c *gin.Context, status int, data interface{}, warnings []string) {
	c.JSON(status, ApiEnvelope{
		Ok:       true,
		Data:     data,
		Warnings: warnings,
	})
}

func Error(c *gin.Context, status int, errorCode string, message string, details interface{}) {
	c.JSON(status, ApiEnvelope{
		Ok: false,
		Error: map[string]interface{}{
			"code":    errorCode,
			"message": message,
			"details": details,
		},
	})
}
