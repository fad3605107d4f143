package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/inventory-stock-ledger/internal/server/middleware"
)

// Response represents a standard API response. Data and Error are mutually
// exclusive except on partial success, where both are present.
type Response struct {
	Data      interface{} `json:"data,omitempty"`
	Error     *ErrorInfo  `json:"error,omitempty"`
	RequestID string      `json:"request_id,omitempty"`
}

// ErrorInfo represents error information in a response
type ErrorInfo struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// NewResponse creates a new response with data
func NewResponse(data interface{}) *Response {
	return &Response{
		Data: data,
	}
}

// NewErrorResponse creates a new error response
func NewErrorResponse(code, message string) *Response {
	return &Response{
		Error: &ErrorInfo{
			Code:    code,
			Message: message,
		},
	}
}

// RespondWithData sends a JSON response with data
func RespondWithData(c *gin.Context, statusCode int, data interface{}) {
	response := NewResponse(data)
	response.RequestID = middleware.GetRequestID(c)
	c.JSON(statusCode, response)
}

// RespondWithError sends a JSON response with an error
func RespondWithError(c *gin.Context, statusCode int, code, message string) {
	response := NewErrorResponse(code, message)
	response.RequestID = middleware.GetRequestID(c)
	c.JSON(statusCode, response)
}

// RespondOK sends a 200 OK response with data
func RespondOK(c *gin.Context, data interface{}) {
	RespondWithData(c, http.StatusOK, data)
}

// RespondCreated sends a 201 Created response with data
func RespondCreated(c *gin.Context, data interface{}) {
	RespondWithData(c, http.StatusCreated, data)
}

// RespondValidationError sends a 400 response for a rejected request body
func RespondValidationError(c *gin.Context, message string) {
	RespondWithError(c, http.StatusBadRequest, "VALIDATION_ERROR", message)
}

// RespondInvalidID sends a 400 response for a malformed path ID
func RespondInvalidID(c *gin.Context, message string) {
	RespondWithError(c, http.StatusBadRequest, "INVALID_ID", message)
}

// RespondNotFound sends a 404 Not Found response with an error
func RespondNotFound(c *gin.Context, message string) {
	if message == "" {
		message = "Resource not found"
	}
	RespondWithError(c, http.StatusNotFound, "NOT_FOUND", message)
}

// RespondCascadeIncomplete sends a 500 partial-success response carrying both
// the committed catalog change and the cascade error
func RespondCascadeIncomplete(c *gin.Context, data interface{}, message string) {
	response := NewResponse(data)
	response.Error = &ErrorInfo{
		Code:    "CASCADE_INCOMPLETE",
		Message: message,
	}
	response.RequestID = middleware.GetRequestID(c)
	c.JSON(http.StatusInternalServerError, response)
}

// RespondInternalError sends a 500 Internal Server Error response with an error
func RespondInternalError(c *gin.Context) {
	RespondWithError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "An internal server error occurred")
}
