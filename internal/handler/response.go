package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/venturebridge/vbs/internal/logic"
)

// Response 通用响应结构
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
}

// Pagination 分页信息结构
type Pagination struct {
	Page      int   `json:"page"`
	PageSize  int   `json:"pageSize"`
	Total     int64 `json:"total"`
	TotalPage int64 `json:"totalPage"`
}

// NewPagination 计算分页信息
func NewPagination(page, pageSize int, total int64) Pagination {
	return Pagination{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: (total + int64(pageSize) - 1) / int64(pageSize),
	}
}

// SuccessResponse 成功响应
func SuccessResponse(c *gin.Context, statusCode int, message string, data interface{}) {
	c.JSON(statusCode, Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// ErrorResponse 错误响应
func ErrorResponse(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, Response{
		Success: false,
		Message: message,
		Data:    nil,
	})
}

// LogicErrorResponse 业务错误按分类映射HTTP状态码
func LogicErrorResponse(c *gin.Context, err error) {
	var validationErr *logic.ValidationError
	var authErr *logic.AuthorizationError
	var stateErr *logic.InvalidStateTransitionError

	switch {
	case errors.As(err, &validationErr):
		ErrorResponse(c, http.StatusBadRequest, err.Error())
	case errors.As(err, &authErr):
		ErrorResponse(c, http.StatusForbidden, err.Error())
	case errors.As(err, &stateErr):
		ErrorResponse(c, http.StatusConflict, err.Error())
	case errors.Is(err, logic.ErrPaymentValidationFailed):
		ErrorResponse(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, logic.ErrNotFound):
		ErrorResponse(c, http.StatusNotFound, err.Error())
	default:
		ErrorResponse(c, http.StatusInternalServerError, err.Error())
	}
}
