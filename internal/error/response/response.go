package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/FelipeAraujoBS/weather-monitoring-system/internal/error/code"
)

// Response is the envelope returned by every endpoint. Count is present
// only on collection responses.
type Response struct {
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
	Count   *int        `json:"count,omitempty"`
}

// Success writes a 200 envelope.
func Success(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Message: message,
		Data:    data,
	})
}

// Created writes a 201 envelope.
func Created(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusCreated, Response{
		Message: message,
		Data:    data,
	})
}

// Collection writes a 200 envelope with a count field.
func Collection(c *gin.Context, message string, data interface{}, count int) {
	c.JSON(http.StatusOK, Response{
		Message: message,
		Data:    data,
		Count:   &count,
	})
}

// Fail writes the default message for an error code.
func Fail(c *gin.Context, errorCode int) {
	FailWithMessage(c, errorCode, code.GetMessage(errorCode))
}

// FailWithMessage writes an error envelope with a custom message.
func FailWithMessage(c *gin.Context, errorCode int, message string) {
	c.JSON(code.GetStatus(errorCode), Response{
		Message: message,
		Data:    nil,
	})
}
