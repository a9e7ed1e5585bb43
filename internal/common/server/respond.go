package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/binduu04/fleet-management-assignment/internal/common/apperr"
)

// 响应统一走 {success, count?, data?, message?} 信封。

// OK 200 + data。
func OK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, gin.H{"success": true, "data": data})
}

// OKCount 200 + 列表与条数。
func OKCount(c *gin.Context, count int, data any) {
	c.JSON(http.StatusOK, gin.H{"success": true, "count": count, "data": data})
}

// OKMessage 200 + 提示文案（如删除成功）。
func OKMessage(c *gin.Context, msg string) {
	c.JSON(http.StatusOK, gin.H{"success": true, "message": msg, "data": gin.H{}})
}

// Created 201 + data。
func Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, gin.H{"success": true, "data": data})
}

// Fail 按错误类型映射状态码：
// ValidationError→400，NotFound→404，Denied→403，其余→500。
func Fail(c *gin.Context, err error) {
	status := http.StatusInternalServerError

	var ve *apperr.ValidationError
	var nf *apperr.NotFoundError
	var de *apperr.DeniedError
	switch {
	case errors.As(err, &ve):
		status = http.StatusBadRequest
	case errors.As(err, &nf):
		status = http.StatusNotFound
	case errors.As(err, &de):
		status = http.StatusForbidden
	}

	body := gin.H{"success": false, "message": err.Error()}
	if ve != nil {
		body["errors"] = ve.Fields
	}
	c.JSON(status, body)
}
