package api

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"
)

// errorDetail is the client-visible error envelope. Message never carries
// internal error text; the correlation ID is the only handle a client gets
// for server-side investigation.
type errorDetail struct {
	Message       string `json:"message"`
	ErrorCode     string `json:"error_code"`
	CorrelationID string `json:"correlation_id,omitempty"`
}

type errorResponse struct {
	Detail errorDetail `json:"detail"`
}

const internalErrorMessage = "An internal error occurred. Please try again later."

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// writeGeoJSON serializes a geometry-bearing response with the GeoJSON
// media type.
func writeGeoJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/geo+json")
	w.Header().Set("Content-Disposition", "inline")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, r *http.Request, status int, message, code string) {
	writeJSON(w, status, errorResponse{Detail: errorDetail{
		Message:       message,
		ErrorCode:     code,
		CorrelationID: requestCorrelationID(r),
	}})
}

// internalError logs the failure with full detail server-side and sends the
// client a fixed, non-descriptive body.
func internalError(w http.ResponseWriter, r *http.Request, err error) {
	zap.L().Error("internal error",
		zap.String("path", r.URL.Path),
		zap.String("correlation_id", requestCorrelationID(r)),
		zap.Error(err),
	)
	writeError(w, r, http.StatusInternalServerError, internalErrorMessage, "INTERNAL_SERVER_ERROR")
}
