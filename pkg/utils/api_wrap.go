package utils

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

type APIResponse struct {
	Status  string      `json:"status"`
	Code    int         `json:"code"`
	Message string      `json:"message,omitempty"`
	TraceID string      `json:"trace_id,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

func RespondSuccess(c *gin.Context, data interface{}, message string) {
	c.JSON(http.StatusOK, APIResponse{
		Status:  "success",
		Code:    http.StatusOK,
		Message: message,
		TraceID: c.GetString("trace_id"),
		Data:    data,
	})
}

func RespondError(c *gin.Context, code int, message string) {
	c.JSON(code, APIResponse{
		Status:  "error",
		Code:    code,
		Message: message,
		TraceID: c.GetString("trace_id"),
	})
}

func HandleServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrInvalidDate), errors.Is(err, ErrInvalidDuration), errors.Is(err, ErrInvalidInput):
		RespondError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, RecordNotFound):
		RespondError(c, http.StatusNotFound, "Record not found")
	case errors.Is(err, ErrJobAlreadyRunning):
		RespondError(c, http.StatusConflict, "Itinerary job is already running")
	case errors.Is(err, ErrInvalidConfig):
		RespondError(c, http.StatusUnprocessableEntity, err.Error())
	default:
		RespondError(c, http.StatusInternalServerError, "Internal server error")
	}
}
