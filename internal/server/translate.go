package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/example/go-piglatin/internal/config"
	"github.com/example/go-piglatin/internal/piglatin"
	"github.com/example/go-piglatin/internal/text"
)

type translateRequest struct {
	Text       string   `json:"text"`
	Separators []string `json:"separators"`
	Explain    bool     `json:"explain"`
}

type encodeResponse struct {
	Text string `json:"text"`
}

type wordResult struct {
	Input      string               `json:"input"`
	Output     string               `json:"output"`
	Outcome    piglatin.Outcome     `json:"outcome"`
	Candidates []piglatin.Candidate `json:"candidates,omitempty"`
}

type decodeResponse struct {
	Text       string       `json:"text"`
	Unresolved int          `json:"unresolved"`
	Words      []wordResult `json:"words"`
}

type lookupResponse struct {
	Word  string `json:"word"`
	Known bool   `json:"known"`
}

func (h *handler) handleLookup(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	word := r.URL.Query().Get("word")
	if word == "" {
		writeError(w, http.StatusBadRequest, "word query parameter is required")
		return
	}
	writeJSON(w, http.StatusOK, lookupResponse{
		Word:  word,
		Known: h.tr.Dictionary().Contains(word),
	})
}

func (h *handler) handleEncode(w http.ResponseWriter, r *http.Request) {
	req, tr, ok := h.readRequest(w, r)
	if !ok {
		return
	}

	var out string
	start := time.Now()
	err := h.run(r.Context(), func() {
		out = text.MapLines(req.Text, tr.Encode)
	})
	durationMS := time.Since(start).Milliseconds()
	if err != nil {
		h.runFailed(w, r, "encode", req, durationMS, err)
		return
	}

	h.log.InfoContext(r.Context(), "encode complete",
		slog.String("request_id", requestID(r.Context())),
		slog.Int("text_len", len(req.Text)),
		slog.Int64("duration_ms", durationMS),
	)
	writeJSON(w, http.StatusOK, encodeResponse{Text: out})
}

func (h *handler) handleDecode(w http.ResponseWriter, r *http.Request) {
	req, tr, ok := h.readRequest(w, r)
	if !ok {
		return
	}

	var resp decodeResponse
	start := time.Now()
	err := h.run(r.Context(), func() {
		resp = buildDecodeResponse(text.DecodeLines(tr, req.Text), req.Explain)
	})
	durationMS := time.Since(start).Milliseconds()
	if err != nil {
		h.runFailed(w, r, "decode", req, durationMS, err)
		return
	}

	h.log.InfoContext(r.Context(), "decode complete",
		slog.String("request_id", requestID(r.Context())),
		slog.Int("text_len", len(req.Text)),
		slog.Int("words", len(resp.Words)),
		slog.Int("unresolved", resp.Unresolved),
		slog.Int64("duration_ms", durationMS),
	)
	writeJSON(w, http.StatusOK, resp)
}

func buildDecodeResponse(pieces []piglatin.Piece, explain bool) decodeResponse {
	resp := decodeResponse{
		Text:       piglatin.Render(pieces),
		Unresolved: piglatin.CountUnresolved(pieces),
		Words:      []wordResult{},
	}
	for _, p := range pieces {
		if p.Separator {
			continue
		}
		wr := wordResult{
			Input:   p.Result.Input,
			Output:  p.Result.Output,
			Outcome: p.Result.Outcome,
		}
		if explain {
			wr.Candidates = p.Result.Candidates
		}
		resp.Words = append(resp.Words, wr)
	}
	return resp
}

// readRequest decodes and validates a translation request. It returns the
// translator to use, derived from the request separators when given.
func (h *handler) readRequest(w http.ResponseWriter, r *http.Request) (translateRequest, *piglatin.Translator, bool) {
	var req translateRequest

	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return req, nil, false
	}

	if r.Body == nil {
		writeError(w, http.StatusBadRequest, "request body is required")
		return req, nil, false
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return req, nil, false
	}

	if req.Text == "" {
		writeError(w, http.StatusBadRequest, "text field is required")
		return req, nil, false
	}

	if len(req.Text) > h.opts.maxTextBytes {
		writeError(w, http.StatusRequestEntityTooLarge,
			fmt.Sprintf("text exceeds maximum size of %d bytes", h.opts.maxTextBytes))
		return req, nil, false
	}

	tr := h.tr
	if len(req.Separators) > 0 {
		seps, err := config.NormalizeSeparators(req.Separators)
		if err == nil {
			tr, err = h.tr.WithSeparators(seps)
		}
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return req, nil, false
		}
	}

	if h.opts.normalizeUnicode {
		req.Text = text.ComposeNFC(req.Text)
	}
	return req, tr, true
}

// run executes fn on a worker slot under the request deadline. It returns
// the context error when the slot or the result does not arrive in time.
func (h *handler) run(ctx context.Context, fn func()) error {
	// Acquire a worker slot, honouring context cancellation while waiting.
	if h.sem != nil {
		if err := h.sem.Acquire(ctx, 1); err != nil {
			return errWorkerWait
		}
	}

	if h.opts.requestTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.opts.requestTimeout)
		defer cancel()
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		if h.sem != nil {
			defer h.sem.Release(1)
		}
		fn()
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

var errWorkerWait = errors.New("request cancelled while waiting for worker")

// runFailed maps an error from run to a response. Only an expired request
// deadline is reported as a timeout.
func (h *handler) runFailed(w http.ResponseWriter, r *http.Request, op string, req translateRequest, durationMS int64, err error) {
	if errors.Is(err, errWorkerWait) {
		writeError(w, http.StatusServiceUnavailable, err.Error())
		return
	}
	if !errors.Is(err, context.DeadlineExceeded) {
		h.log.InfoContext(r.Context(), op+" cancelled",
			slog.String("request_id", requestID(r.Context())),
			slog.Int64("duration_ms", durationMS),
			slog.String("error", err.Error()),
		)
		writeError(w, http.StatusServiceUnavailable, "request cancelled")
		return
	}
	h.log.WarnContext(r.Context(), op+" timed out",
		slog.String("request_id", requestID(r.Context())),
		slog.Int("text_len", len(req.Text)),
		slog.Int64("duration_ms", durationMS),
		slog.String("error", err.Error()),
	)
	writeError(w, http.StatusGatewayTimeout, "translation timed out")
}
