package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/matzehuels/bracketgen/pkg/bracket"
	"github.com/matzehuels/bracketgen/pkg/buildinfo"
	errs "github.com/matzehuels/bracketgen/pkg/errors"
	"github.com/matzehuels/bracketgen/pkg/pipeline"
)

// MsgNoPicks is the error body for a render request without picks.
const MsgNoPicks = "No picks provided"

// renderRequest is the body accepted by the render routes.
type renderRequest struct {
	Picks bracket.Picks `json:"picks"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, buildinfo.Get())
}

// handleGeneratePDF renders submitted picks as a PDF attachment.
func (s *Server) handleGeneratePDF(w http.ResponseWriter, r *http.Request) {
	picks, ok := s.decodePicks(w, r)
	if !ok {
		return
	}
	data, ok := s.render(w, r, picks, pipeline.FormatPDF)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", pipeline.PDFContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", pipeline.PDFFilename))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// handleRender renders submitted picks in the format named by ?format=
// (pdf by default). PDFs are sent as attachments; other formats inline.
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	format := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("format")))
	if format == "" {
		format = pipeline.FormatPDF
	}
	if err := pipeline.ValidateFormat(format); err != nil {
		writeError(w, http.StatusBadRequest, errs.UserMessage(err))
		return
	}

	picks, ok := s.decodePicks(w, r)
	if !ok {
		return
	}
	data, ok := s.render(w, r, picks, format)
	if !ok {
		return
	}

	w.Header().Set("Content-Type", pipeline.ContentTypes[format])
	if format == pipeline.FormatPDF {
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", pipeline.PDFFilename))
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// decodePicks reads the request body. It writes the error response and
// returns false when the body is unusable or carries no picks.
func (s *Server) decodePicks(w http.ResponseWriter, r *http.Request) (bracket.Picks, bool) {
	var req renderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		switch {
		case errors.As(err, &tooLarge):
			writeError(w, http.StatusRequestEntityTooLarge, "Request body too large")
		case errors.Is(err, io.EOF):
			writeError(w, http.StatusBadRequest, MsgNoPicks)
		default:
			writeError(w, http.StatusBadRequest, "Malformed request: "+err.Error())
		}
		return nil, false
	}
	if req.Picks.Empty() {
		writeError(w, http.StatusBadRequest, MsgNoPicks)
		return nil, false
	}
	return req.Picks, true
}

// render runs the pipeline for one format. Client errors are echoed back
// with their code's status; anything else is logged and hidden.
func (s *Server) render(w http.ResponseWriter, r *http.Request, picks bracket.Picks, format string) ([]byte, bool) {
	opts := s.defaults
	opts.Teams = nil
	opts.Picks = picks
	opts.Formats = []string{format}

	res, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		status := errs.HTTPStatus(err)
		if !errs.IsClientError(err) {
			s.logger.Error("render failed", "format", format, "request_id", RequestID(r.Context()), "error", err)
			writeError(w, status, "Render failed")
			return nil, false
		}
		msg := errs.UserMessage(err)
		if errs.Is(err, errs.ErrCodeNoPicks) {
			msg = MsgNoPicks
		}
		writeError(w, status, msg)
		return nil, false
	}

	s.logger.Debug("rendered",
		"format", format,
		"decided", res.Stats.Decided,
		"cache_hit", res.CacheInfo.RenderHit,
		"request_id", RequestID(r.Context()))
	return res.Artifacts[format], true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}
