package utils

import (
	"errors"
	"log"
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

func traceID(c *gin.Context) string {
	v, _ := c.Get("trace_id")
	s, _ := v.(string)
	return s
}

func RespondSuccess(c *gin.Context, data interface{}, message string) {
	c.JSON(http.StatusOK, APIResponse{
		Status:  "success",
		Code:    http.StatusOK,
		Message: message,
		TraceID: traceID(c),
		Data:    data,
	})
}

func RespondError(c *gin.Context, code int, message string) {
	c.JSON(code, APIResponse{
		Status:  "error",
		Code:    code,
		Message: message,
		TraceID: traceID(c),
	})
}

// HandleServiceError maps the service error taxonomy onto HTTP statuses.
func HandleServiceError(c *gin.Context, err error) {
	var vErr *ValidationError
	if errors.As(err, &vErr) {
		c.JSON(http.StatusUnprocessableEntity, APIResponse{
			Status:  "error",
			Code:    http.StatusUnprocessableEntity,
			Message: "Input validation failed",
			TraceID: traceID(c),
			Data:    gin.H{"fields": vErr.Fields},
		})
		return
	}

	switch {
	case errors.Is(err, ErrSessionNotFound):
		RespondError(c, http.StatusNotFound, "Wizard session not found")
	case errors.Is(err, ErrPlanNotFound):
		RespondError(c, http.StatusNotFound, "Plan not found")
	case errors.Is(err, ErrNoResultsFound):
		RespondError(c, http.StatusNotFound, "No results found for that location")
	case errors.Is(err, ErrStageViolation):
		RespondError(c, http.StatusConflict, "Operation not allowed at the current stage")
	case errors.Is(err, ErrGenerationBusy):
		RespondError(c, http.StatusConflict, "A generation is already in progress")
	case errors.Is(err, ErrQuotaExceeded):
		RespondError(c, http.StatusTooManyRequests, "AI quota exceeded, please retry later")
	case errors.Is(err, ErrGenerationFailed):
		log.Printf("Generation error: %v", err)
		RespondError(c, http.StatusBadGateway, "Plan generation failed, please retry")
	case errors.Is(err, ErrMalformedResponse):
		log.Printf("Malformed AI response: %v", err)
		RespondError(c, http.StatusBadGateway, "AI returned an unusable response, please retry")
	case errors.Is(err, ErrRoutingFailed):
		log.Printf("Routing error: %v", err)
		RespondError(c, http.StatusBadGateway, "Route lookup failed")
	case errors.Is(err, ErrEncodingTooLarge):
		RespondError(c, http.StatusRequestEntityTooLarge, "Plan data is too large to share")
	case errors.Is(err, ErrCorruptShareLink):
		RespondError(c, http.StatusBadRequest, "Share link is corrupt or incomplete")
	case errors.Is(err, ErrStorageError):
		log.Printf("Storage error: %v", err)
		RespondError(c, http.StatusInternalServerError, "Internal server error")
	default:
		log.Printf("Unknown error: %v", err)
		RespondError(c, http.StatusInternalServerError, "Internal server error")
	}
}
