package ui

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/robwalker-codes/granite-db/internal/granitectl"
)

type openRequest struct {
	Path string `json:"path"`
}

type execRequest struct {
	Path   string `json:"path"`
	SQL    string `json:"sql"`
	Format string `json:"format"`
}

type exportRequest struct {
	Path        string `json:"path"`
	SQL         string `json:"sql"`
	Destination string `json:"destination"`
}

func (s *Server) handleOpen(w http.ResponseWriter, req *http.Request) {
	var in openRequest
	if !s.decode(w, req, &in) {
		return
	}
	if err := s.adapter.VerifyOpenable(in.Path); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleCreate(w http.ResponseWriter, req *http.Request) {
	var in openRequest
	if !s.decode(w, req, &in) {
		return
	}
	if err := s.adapter.CreateDatabase(req.Context(), in.Path); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
}

func (s *Server) handleExec(w http.ResponseWriter, req *http.Request) {
	var in execRequest
	if !s.decode(w, req, &in) {
		return
	}
	resp, err := s.adapter.Execute(req.Context(), in.Path, in.SQL, in.Format)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleExplain(w http.ResponseWriter, req *http.Request) {
	var in execRequest
	if !s.decode(w, req, &in) {
		return
	}
	plan, err := s.adapter.Explain(req.Context(), in.Path, in.SQL)
	if err != nil {
		s.writeError(w, err)
		return
	}
	// The engine already emits plan JSON; pass it through untouched.
	w.Header().Set("Content-Type", "application/json")
	_, _ = io.WriteString(w, plan)
}

func (s *Server) handleExport(w http.ResponseWriter, req *http.Request) {
	var in exportRequest
	if !s.decode(w, req, &in) {
		return
	}
	if err := s.adapter.ExportCSV(req.Context(), in.Path, in.SQL, in.Destination); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleSchema(w http.ResponseWriter, req *http.Request) {
	schema, err := s.adapter.Schema(req.Context(), req.URL.Query().Get("path"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, schema)
}

func (s *Server) handleTool(w http.ResponseWriter, req *http.Request) {
	s.writeJSON(w, http.StatusOK, s.adapter.Describe(req.Context()))
}

// decode reads a JSON request body into v, reporting a bad-request error and
// returning false when the body is malformed.
func (s *Server) decode(w http.ResponseWriter, req *http.Request, v any) bool {
	if err := json.NewDecoder(req.Body).Decode(v); err != nil {
		s.writeError(w, &granitectl.ValidationError{Msg: "invalid request body: " + err.Error()})
		return false
	}
	return true
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("failed to encode response", "error", err)
	}
}

// writeError maps adapter error kinds to HTTP statuses. The body carries the
// single user-facing message; kinds the frontend cannot act on specifically
// collapse to 500.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError

	var (
		validationErr *granitectl.ValidationError
		notFoundErr   *granitectl.NotFoundError
		exitErr       *granitectl.ExitError
		parseErr      *granitectl.ParseError
		timeoutErr    *granitectl.TimeoutError
	)
	switch {
	case errors.As(err, &validationErr):
		status = http.StatusBadRequest
	case errors.As(err, &notFoundErr):
		status = http.StatusNotFound
	case errors.As(err, &exitErr):
		status = http.StatusUnprocessableEntity
	case errors.As(err, &parseErr):
		status = http.StatusBadGateway
	case errors.As(err, &timeoutErr):
		status = http.StatusGatewayTimeout
	}

	s.writeJSON(w, status, map[string]string{"error": err.Error()})
}
