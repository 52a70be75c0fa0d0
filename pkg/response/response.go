// Package response writes the JSON envelope shared by every endpoint.
package response

import (
	"encoding/json"
	"net/http"
)

type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   interface{} `json:"error,omitempty"`
	Meta    *Meta       `json:"meta,omitempty"`
}

// Meta describes an offset page of a longer listing
type Meta struct {
	Limit  int   `json:"limit"`
	Offset int   `json:"offset"`
	Total  int64 `json:"total"`
}

func JSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(data)
}

func Success(w http.ResponseWriter, statusCode int, message string, data interface{}) {
	JSON(w, statusCode, Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

func SuccessWithMeta(w http.ResponseWriter, statusCode int, message string, data interface{}, meta *Meta) {
	JSON(w, statusCode, Response{
		Success: true,
		Message: message,
		Data:    data,
		Meta:    meta,
	})
}

func Error(w http.ResponseWriter, statusCode int, message string, err interface{}) {
	JSON(w, statusCode, Response{
		Success: false,
		Message: message,
		Error:   err,
	})
}

// ValidationError carries field -> message pairs keyed by the JSON field name
func ValidationError(w http.ResponseWriter, errors interface{}) {
	Error(w, http.StatusBadRequest, "Validation failed", errors)
}

func withDefault(w http.ResponseWriter, statusCode int, message, fallback string) {
	if message == "" {
		message = fallback
	}
	Error(w, statusCode, message, nil)
}

func BadRequest(w http.ResponseWriter, message string) {
	withDefault(w, http.StatusBadRequest, message, "Bad request")
}

func Unauthorized(w http.ResponseWriter, message string) {
	withDefault(w, http.StatusUnauthorized, message, "Unauthorized")
}

// PaymentRequired signals an organization without an active subscription
func PaymentRequired(w http.ResponseWriter, message string) {
	withDefault(w, http.StatusPaymentRequired, message, "Subscription inactive")
}

func Forbidden(w http.ResponseWriter, message string) {
	withDefault(w, http.StatusForbidden, message, "Forbidden")
}

func NotFound(w http.ResponseWriter, message string) {
	withDefault(w, http.StatusNotFound, message, "Resource not found")
}

func Conflict(w http.ResponseWriter, message string) {
	withDefault(w, http.StatusConflict, message, "Conflict")
}

func InternalServerError(w http.ResponseWriter, message string) {
	withDefault(w, http.StatusInternalServerError, message, "Internal server error")
}

// DatabaseError reports an unexpected persistence failure with the raw driver message
func DatabaseError(w http.ResponseWriter, message string, err error) {
	if message == "" {
		message = "Internal server error"
	}
	var detail interface{}
	if err != nil {
		detail = err.Error()
	}
	Error(w, http.StatusInternalServerError, message, detail)
}
