package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"go.uber.org/zap"

	"github.com/halilcengel/note.verse.backend/services/chat"
	"github.com/halilcengel/note.verse.backend/utils"
)

// ChatRequest is the payload accepted by the chat relay. The raw body is
// forwarded upstream untouched; this struct exists only to reject bad
// requests before a connection is opened.
type ChatRequest struct {
	Message    string `json:"message" validate:"required"`
	ThreadID   string `json:"thread_id" validate:"required"`
	URL        string `json:"url" validate:"required,url"`
	School     string `json:"school" validate:"required"`
	Department string `json:"department" validate:"required"`
}

// ChatHandler relays chat requests to the upstream chat service and
// streams the reply back chunk by chunk.
type ChatHandler struct {
	client *chat.Client
	logger *zap.Logger
}

// NewChatHandler creates a new ChatHandler
func NewChatHandler(client *chat.Client, logger *zap.Logger) *ChatHandler {
	return &ChatHandler{
		client: client,
		logger: logger,
	}
}

// HandleChat handles POST /api/chat.
//
// The request body is forwarded verbatim upstream. While the response is
// streaming, errors cannot be reported in-band: headers are already out,
// so a mid-stream failure terminates the connection and nothing else. A
// client that cares must treat an incomplete stream as failed. The
// upstream request is bound to the inbound request context, so a client
// disconnect cancels the upstream read within one chunk cycle.
func (h *ChatHandler) HandleChat(w http.ResponseWriter, r *http.Request) {
	raw, err := io.ReadAll(r.Body)
	if err != nil {
		_ = utils.WriteBadRequest(w, "Invalid request body", nil)
		return
	}

	var req ChatRequest
	if err := json.Unmarshal(raw, &req); err != nil {
		_ = utils.WriteBadRequest(w, "Invalid request body", nil)
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		HandleValidationError(w, err, h.logger)
		return
	}

	stream, err := h.client.Open(r.Context(), bytes.NewReader(raw))
	if err != nil {
		var upstreamErr *chat.UpstreamError
		if errors.As(err, &upstreamErr) {
			h.logger.Warn("upstream rejected chat request",
				zap.Int("status", upstreamErr.StatusCode))
			_ = utils.WriteError(w, upstreamErr.StatusCode,
				"Chat service error", string(upstreamErr.Body))
			return
		}

		h.logger.Error("failed to reach chat service", zap.Error(err))
		_ = utils.WriteError(w, http.StatusInternalServerError,
			"Failed to communicate with chat service", err.Error())
		return
	}
	defer stream.Close()

	flusher, ok := w.(http.Flusher)
	if !ok {
		h.logger.Error("response writer does not support flushing")
		_ = utils.WriteInternalServerError(w, "Streaming unsupported")
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	for {
		chunk, err := stream.Next()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return
			}
			if errors.Is(err, context.Canceled) {
				h.logger.Debug("client disconnected mid-stream")
				return
			}
			// Headers are sent; the only remaining signal is the close.
			h.logger.Warn("upstream stream broke mid-flight", zap.Error(err))
			return
		}

		if _, err := w.Write(chunk); err != nil {
			h.logger.Debug("downstream write failed", zap.Error(err))
			return
		}
		flusher.Flush()
	}
}
