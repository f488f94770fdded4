package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"

	"financequest/src/apperr"
	"financequest/src/model"

	logger "github.com/sirupsen/logrus"
	"gorm.io/datatypes"
)

// ExceptionSink persists unexpected failures for auditing.
type ExceptionSink interface {
	Create(ctx context.Context, exc *model.Exception) error
}

type envelope struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(envelope{Success: true, Data: data}); err != nil {
		logger.WithError(err).Error("failed to encode response")
	}
}

func writeFailure(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(envelope{Success: false, Error: message}); err != nil {
		logger.WithError(err).Error("failed to encode error response")
	}
}

// StatusOf maps a domain error to its HTTP status.
func StatusOf(err error) int {
	switch {
	case apperr.IsConflict(err):
		return http.StatusConflict
	case apperr.IsValidation(err):
		return http.StatusBadRequest
	case apperr.IsNotFound(err):
		return http.StatusNotFound
	case apperr.IsRateLimited(err):
		return http.StatusTooManyRequests
	case apperr.IsExternalAPI(err):
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}

// Provider failures are answered with a fixed message; the cause is only logged.
var providerMessages = map[int]string{
	http.StatusTooManyRequests: "Price provider rate limit reached, please retry later",
	http.StatusBadGateway:      "Price provider unavailable",
}

// writeError answers with the status of err. Domain errors carry their own message;
// anything else is logged, persisted through sink and answered generically.
func writeError(w http.ResponseWriter, r *http.Request, sink ExceptionSink, module string, err error) {
	status := StatusOf(err)
	switch status {
	case http.StatusInternalServerError:
	case http.StatusTooManyRequests, http.StatusBadGateway:
		logger.WithFields(map[string]interface{}{
			"module": module,
			"method": r.Method + " " + r.URL.Path,
			"status": status,
		}).WithError(err).Warn("price provider failure")
		writeFailure(w, status, providerMessages[status])
		return
	default:
		writeFailure(w, status, err.Error())
		return
	}

	method := r.Method + " " + r.URL.Path
	logger.WithFields(map[string]interface{}{
		"module": module,
		"method": method,
	}).WithError(err).Error("request failed")

	if sink != nil {
		exc := &model.Exception{
			Service: "api",
			Module:  module,
			Method:  method,
			Message: err.Error(),
			Level:   "error",
		}
		if raw, mErr := json.Marshal(map[string]string{"query": r.URL.RawQuery}); mErr == nil {
			exc.Context = datatypes.JSON(raw)
		}
		if pErr := sink.Create(context.WithoutCancel(r.Context()), exc); pErr != nil {
			logger.WithError(pErr).Warn("failed to persist exception")
		}
	}
	writeFailure(w, status, "Internal Server Error")
}

// decodeJSON reads a JSON body, refusing unknown fields.
func decodeJSON(r *http.Request, v interface{}) error {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(v); err != nil {
		return apperr.Validation("invalid payload: %v", err)
	}
	return nil
}

// decodeOptionalJSON is decodeJSON for endpoints where an empty body means defaults.
func decodeOptionalJSON(r *http.Request, v interface{}) error {
	raw, err := io.ReadAll(io.LimitReader(r.Body, 1<<20))
	if err != nil {
		return apperr.Validation("invalid payload: %v", err)
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	decoder := json.NewDecoder(bytes.NewReader(raw))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(v); err != nil {
		return apperr.Validation("invalid payload: %v", err)
	}
	return nil
}
