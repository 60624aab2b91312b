package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/mohammad8186/Kubernetes-as-a-Service/internal/domain"
)

type errorBody struct {
	Error string `json:"error"`
}

type messageBody struct {
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func decodeJSON(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return fmt.Errorf("%w: malformed request body: %v", domain.ErrInvalidInput, err)
	}
	return nil
}

// writeError 把领域错误映射为 HTTP 状态码，平台错误统一返回 500。
func writeError(w http.ResponseWriter, err error) {
	writeErrorStatus(w, err, false)
}

// writePlatformError 与 writeError 相同，但平台错误沿用平台返回的状态码。
func writePlatformError(w http.ResponseWriter, err error) {
	writeErrorStatus(w, err, true)
}

func writeErrorStatus(w http.ResponseWriter, err error, propagate bool) {
	status := http.StatusInternalServerError
	var platformErr *domain.PlatformError

	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		status = http.StatusBadRequest
	case errors.Is(err, domain.ErrAlreadyExists):
		status = http.StatusConflict
	case errors.Is(err, domain.ErrHistoryDisabled):
		status = http.StatusServiceUnavailable
	case errors.As(err, &platformErr):
		if propagate {
			status = platformErr.StatusCode()
		}
		slog.Error("platform error", "code", platformErr.Code, "error", err)
	default:
		slog.Error("internal error", "error", err)
	}

	writeJSON(w, status, errorBody{Error: err.Error()})
}
