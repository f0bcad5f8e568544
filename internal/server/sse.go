package server

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/google/uuid"

	"github.com/jonathan/career-analyzer/internal/types"
)

// SSE event names
const (
	EventComponent = "component"
	EventComplete  = "complete"
	EventError     = "error"
)

// SSEWriter helps write Server-Sent Events
type SSEWriter struct {
	w       http.ResponseWriter
	flusher http.Flusher
}

// NewSSEWriter creates a new SSE writer
func NewSSEWriter(w http.ResponseWriter) (*SSEWriter, error) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		return nil, fmt.Errorf("streaming not supported")
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	return &SSEWriter{w: w, flusher: flusher}, nil
}

// WriteEvent sends an SSE event
func (s *SSEWriter) WriteEvent(event string, data any) error {
	jsonData, err := json.Marshal(data)
	if err != nil {
		return err
	}

	if _, err := fmt.Fprintf(s.w, "event: %s\ndata: %s\n\n", event, jsonData); err != nil {
		return err
	}
	s.flusher.Flush()
	return nil
}

// WriteError sends an error event with the status the request would have had
func (s *SSEWriter) WriteError(err error) error {
	return s.WriteEvent(EventError, struct {
		ErrorResponse
		Status int `json:"status"`
	}{ErrorResponse: errorBody(err), Status: HTTPStatus(err)})
}

// WriteComplete sends the stored analysis as the final event
func (s *SSEWriter) WriteComplete(id uuid.UUID, analysis *types.CareerAnalysis) error {
	return s.WriteEvent(EventComplete, AnalysisResponse{ID: id, Analysis: analysis})
}
