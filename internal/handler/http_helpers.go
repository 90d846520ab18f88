package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/notaryweb/internal/resource"
	"go.uber.org/zap"
)

func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"error": message})
}

// bindJSON 解析请求体；类型不匹配时带上字段名，便于前端定位。
func bindJSON(c *gin.Context, dst interface{}, message string) bool {
	err := c.ShouldBindJSON(dst)
	if err == nil {
		return true
	}

	var typeErr *json.UnmarshalTypeError
	switch {
	case errors.As(err, &typeErr) && typeErr.Field != "":
		c.JSON(http.StatusBadRequest, gin.H{
			"error":  "validation failed",
			"fields": gin.H{typeErr.Field: fmt.Sprintf("must be %s", typeErr.Type.String())},
		})
	case errors.Is(err, io.EOF):
		respondError(c, http.StatusBadRequest, "request body is required")
	default:
		respondError(c, http.StatusBadRequest, message)
	}
	return false
}

func parseUintParam(c *gin.Context, key string) (uint, error) {
	raw := c.Param(key)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("invalid %s", key)
	}
	return uint(id), nil
}

func parsePositiveQuery(c *gin.Context, key string, fallback int) int {
	raw := c.Query(key)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value < 1 {
		return fallback
	}
	return value
}

// respondResourceError 将资源层错误映射为 HTTP 状态码，内部错误只写日志。
func respondResourceError(c *gin.Context, log *zap.Logger, err error) {
	var verr *resource.ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation failed", "fields": verr.Fields})
	case errors.Is(err, resource.ErrNotFound):
		respondError(c, http.StatusNotFound, "not found")
	case errors.Is(err, resource.ErrConflict):
		respondError(c, http.StatusConflict, "resource already exists")
	case errors.Is(err, resource.ErrUnauthorized):
		respondError(c, http.StatusUnauthorized, "unauthorized")
	default:
		log.Error("request failed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Error(err),
		)
		_ = c.Error(err)
		respondError(c, http.StatusInternalServerError, "internal server error")
	}
}
