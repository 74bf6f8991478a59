package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	deckgen "github.com/alnah/go-deckgen"
)

// errorResponse is the JSON body of every failed request.
type errorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_, _ = io.WriteString(w, `{"status":"ok"}`)
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	logger := loggerFromContext(r.Context(), s.logger)

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, s.maxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, msgBodyTooLarge,
				fmt.Sprintf("limit is %d bytes", tooLarge.Limit))
			return
		}
		writeError(w, http.StatusBadRequest, msgInvalidStructure, err.Error())
		return
	}

	req, err := deckgen.DecodeRequest(body)
	if err != nil {
		logger.Warn("rejected request", "err", err)
		writeError(w, http.StatusBadRequest, msgInvalidStructure, err.Error())
		return
	}
	logger.Info("generating", "title", req.Title, "slides", len(req.Slides), "format", req.Format)

	res, err := s.gen.Generate(r.Context(), req)
	if err != nil {
		if errors.Is(err, deckgen.ErrInvalidStructure) {
			writeError(w, http.StatusBadRequest, msgInvalidStructure, err.Error())
			return
		}
		logger.Error("generation failed", "err", err)
		writeError(w, http.StatusInternalServerError, msgGenerateFailed, err.Error())
		return
	}

	h := w.Header()
	h.Set("Content-Type", res.MediaType)
	h.Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", res.Filename))
	h.Set("Content-Length", strconv.Itoa(len(res.Data)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(res.Data)
}

// writeError sends a JSON error body with the given status.
func writeError(w http.ResponseWriter, status int, msg, details string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(errorResponse{Error: msg, Details: details})
}
