package handler

import (
	"net/http"
	"strings"

	jsoniter "github.com/json-iterator/go"

	"github.com/flowpilot/portal-go/internal/middleware"
	"github.com/flowpilot/portal-go/internal/model"
	"github.com/flowpilot/portal-go/internal/scope"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const maxBodyBytes = 1 << 20 // 1MB

// actionView is the envelope returned to the browser, plus the notification
// text on failure and the next route when the action moves the browser on.
type actionView[T any] struct {
	model.Response[T]
	Notice   string `json:"notice,omitempty"`
	Redirect string `json:"redirect,omitempty"`
}

// respond writes resp. The status code mirrors the error code; the browser
// branches on success.
func respond[T any](w http.ResponseWriter, resp model.Response[T], redirect string) {
	view := actionView[T]{Response: resp}
	status := http.StatusOK
	if !resp.Success && resp.Error != nil {
		view.Notice = resp.Error.UserMessage()
		status = statusFor(resp.Error.Code)
	}
	if resp.Success {
		view.Redirect = redirect
	}
	writeJSON(w, status, view)
}

func statusFor(code model.ErrorCode) int {
	switch code {
	case model.CodeBadRequest:
		return http.StatusBadRequest
	case model.CodeUnauthorized:
		return http.StatusUnauthorized
	case model.CodeForbidden:
		return http.StatusForbidden
	case model.CodeNotFound:
		return http.StatusNotFound
	case model.CodeConflict:
		return http.StatusConflict
	case model.CodeLimitReached:
		return http.StatusPaymentRequired
	case model.CodeRateLimited:
		return http.StatusTooManyRequests
	case model.CodeNetworkError:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// decode reads the JSON body into dst. On failure it answers with a
// BAD_REQUEST envelope and reports false.
func decode[T any](w http.ResponseWriter, r *http.Request, dst *T) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		msg := "invalid request body"
		if strings.Contains(err.Error(), "http: request body too large") {
			msg = "request body too large"
		}
		respond(w, model.Fail[model.Empty](model.APIError{Code: model.CodeBadRequest, Message: msg}), "")
		return false
	}
	return true
}

// scopeFrom returns the browser scope resolved by the scope middleware.
func scopeFrom(w http.ResponseWriter, r *http.Request) (*scope.Scope, bool) {
	s, ok := middleware.ScopeFromContext(r.Context())
	if !ok {
		respond(w, model.Fail[model.Empty](model.APIError{Code: model.CodeInternalError, Message: "internal server error"}), "")
		return nil, false
	}
	return s, true
}
