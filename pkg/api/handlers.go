package api

import (
	"encoding/json"
	"net/http"

	"github.com/skylinelab/watertower/pkg/errors"
	"github.com/skylinelab/watertower/pkg/pipeline"
)

// solveRequest is the body of POST /v1/solve.
type solveRequest struct {
	Heights []int    `json:"heights"`
	Name    string   `json:"name,omitempty"`
	Trace   bool     `json:"trace,omitempty"`
	Styles  []string `json:"styles,omitempty"`
	Refresh bool     `json:"refresh,omitempty"`
}

// solveResponse is the body of a successful solve.
type solveResponse struct {
	Water       int               `json:"water"`
	ProfileHash string            `json:"profile_hash"`
	Buildings   int               `json:"buildings"`
	Cached      bool              `json:"cached"`
	Steps       []stepJSON        `json:"steps,omitempty"`
	Artifacts   map[string]string `json:"artifacts,omitempty"`
	RequestID   string            `json:"request_id"`
}

// stepJSON is the wire form of a trace step.
type stepJSON struct {
	Rule   string `json:"rule"`
	Index  int    `json:"index"`
	Water  int    `json:"water,omitempty"`
	Height int    `json:"height"`
	Width  int    `json:"width"`
}

// errorResponse is the body of any failed request.
type errorResponse struct {
	Error     string `json:"error"`
	Code      string `json:"code,omitempty"`
	RequestID string `json:"request_id"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleSolve(w http.ResponseWriter, r *http.Request) {
	var req solveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode request body"))
		return
	}

	result, err := s.runner.Execute(r.Context(), pipeline.Options{
		Heights: req.Heights,
		Name:    req.Name,
		Trace:   req.Trace,
		Styles:  req.Styles,
		Refresh: req.Refresh,
		Logger:  s.logger,
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	resp := solveResponse{
		Water:       result.Water,
		ProfileHash: result.ProfileHash,
		Buildings:   result.Stats.Buildings,
		Cached:      result.CacheInfo.Hit,
		RequestID:   RequestID(r.Context()),
	}
	for _, st := range result.Steps {
		resp.Steps = append(resp.Steps, stepJSON{
			Rule:   st.Rule,
			Index:  st.Index,
			Water:  st.Water,
			Height: st.Height,
			Width:  st.Width,
		})
	}
	if len(result.Artifacts) > 0 {
		resp.Artifacts = make(map[string]string, len(result.Artifacts))
		for style, data := range result.Artifacts {
			resp.Artifacts[style] = string(data)
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

// writeError maps error codes to HTTP statuses and emits a JSON error body.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	switch errors.GetCode(err) {
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidHeight,
		errors.ErrCodeInvalidFormat, errors.ErrCodeInvalidStyle:
		status = http.StatusBadRequest
	case errors.ErrCodeNotFound, errors.ErrCodeFileNotFound:
		status = http.StatusNotFound
	case errors.ErrCodeUnsupported:
		status = http.StatusUnprocessableEntity
	}

	if status >= 500 {
		s.logger.Error("request failed", "error", err, "request_id", RequestID(r.Context()))
	}
	writeJSON(w, status, errorResponse{
		Error:     errors.UserMessage(err),
		Code:      string(errors.GetCode(err)),
		RequestID: RequestID(r.Context()),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
