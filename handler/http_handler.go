package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// HTTPHandler serves the Lambda handler over plain HTTP for local runs.
type HTTPHandler struct {
	Handler *Handler
	Timeout time.Duration
}

const defaultTimeout = 99 * time.Second

// NewHTTPHandler creates a new instance of HTTPHandler
func NewHTTPHandler(h *Handler, timeout time.Duration) *HTTPHandler {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &HTTPHandler{
		Handler: h,
		Timeout: timeout,
	}
}

// ServeHTTP implements the http.Handler interface for HTTPHandler
func (h *HTTPHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		logAndReturnError(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		logAndReturnError(w, "Bad Request: unable to read body", http.StatusBadRequest, fmt.Sprintf("Error reading body: %s", err))
		return
	}
	r.Body.Close()

	// The body travels as a JSON string, the way API Gateway delivers it.
	encoded, err := json.Marshal(string(body))
	if err != nil {
		logAndReturnError(w, "Bad Request: unable to encode body", http.StatusBadRequest)
		return
	}

	id := r.Header.Get("X-Request-Id")
	if id == "" {
		id = uuid.NewString()
	}
	ctx, cancel := context.WithTimeout(WithRequestID(r.Context(), id), h.Timeout)
	defer cancel()

	resp, _ := h.Handler.Handle(ctx, Event{Body: encoded})
	w.Header().Set("X-Request-Id", id)
	writeResponse(w, resp)
	logRequest(r, resp.StatusCode)
}
