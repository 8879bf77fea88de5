package response

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/LiveKiller/placement-website/internal/common"
)

// Envelope is the uniform response shape: an explicit success flag, a
// human-readable message, and either data or a structured error.
type Envelope struct {
	Success bool       `json:"success"`
	Message string     `json:"message,omitempty"`
	Data    any        `json:"data,omitempty"`
	Error   *ErrorBody `json:"error,omitempty"`
}

type ErrorBody struct {
	Code    string            `json:"code"`
	Reason  string            `json:"reason,omitempty"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
	ErrorID string            `json:"error_id,omitempty"`
}

var logger *slog.Logger

// SetLogger wires the logger used for 5xx responses. Safe to leave unset in
// tests.
func SetLogger(l *slog.Logger) {
	logger = l
}

func JSON(w http.ResponseWriter, status int, data any) {
	write(w, status, Envelope{Success: true, Data: data})
}

func Message(w http.ResponseWriter, status int, message string) {
	write(w, status, Envelope{Success: true, Message: message})
}

func Error(w http.ResponseWriter, err error) {
	var coded *common.Error
	if !errors.As(err, &coded) {
		coded = &common.Error{Code: common.CodeInternal, Message: "internal error", Err: err}
	}
	status := statusFor(coded.Code)
	body := &ErrorBody{
		Code:    string(coded.Code),
		Reason:  string(coded.Reason),
		Message: coded.Message,
		Fields:  coded.Fields,
	}
	if coded.Code == common.CodeInternal {
		// Never leak storage detail; log the cause under an opaque id the
		// client can quote back.
		body.ErrorID = common.NewUUID().String()
		body.Message = "internal error"
		if logger != nil {
			logger.Error("request failed",
				slog.String("error_id", body.ErrorID),
				slog.String("error", err.Error()))
		}
	}
	write(w, status, Envelope{Success: false, Message: body.Message, Error: body})
}

func statusFor(code common.Code) int {
	switch code {
	case common.CodeValidation:
		return http.StatusBadRequest
	case common.CodeUnauthorized:
		return http.StatusUnauthorized
	case common.CodeForbidden:
		return http.StatusForbidden
	case common.CodeNotFound:
		return http.StatusNotFound
	case common.CodeConflict:
		return http.StatusConflict
	case common.CodeRateLimited:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

func write(w http.ResponseWriter, status int, envelope Envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(envelope)
}
