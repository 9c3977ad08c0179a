package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/jonathan/jobfit/internal/ingestion"
	"github.com/jonathan/jobfit/internal/library"
	"github.com/jonathan/jobfit/internal/types"
)

// decodeJSON reads a size-limited JSON body into v
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return &types.InputError{Message: fmt.Sprintf("request body larger than %d bytes", maxErr.Limit)}
		}
		return &types.InputError{Message: fmt.Sprintf("invalid JSON body: %v", err)}
	}
	return nil
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"status":        "ok",
		"model_enabled": s.engine.ModelEnabled(),
	})
}

func (s *Server) handleAssess(w http.ResponseWriter, r *http.Request) {
	var req types.AssessRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	result, err := s.engine.Assess(r.Context(), req)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, result)
}

func (s *Server) handleStage(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Text string `json:"text"`
	}
	if err := decodeJSON(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	rec, err := s.engine.SuggestStage(req.Text)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, rec)
}

// handleExtract turns an uploaded .txt, .md or .html file into text
func (s *Server) handleExtract(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, ingestion.MaxFileSize+(64<<10))
	file, header, err := r.FormFile("file")
	if err != nil {
		s.writeError(w, r, &types.InputError{Field: "file", Message: fmt.Sprintf("multipart file required: %v", err)})
		return
	}
	defer file.Close() //nolint:errcheck

	content, err := io.ReadAll(file)
	if err != nil {
		s.writeError(w, r, &types.InputError{Field: "file", Message: err.Error()})
		return
	}
	format := r.FormValue("format")
	if format == "" {
		format = strings.TrimPrefix(filepath.Ext(header.Filename), ".")
	}
	doc, err := ingestion.Extract(header.Filename, format, content)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{"text": doc.Text, "metadata": doc.Metadata})
}

type analyzeRequest struct {
	Statement  *types.SixPartStatement `json:"statement,omitempty"`
	Statements []types.SixPartStatement `json:"statements,omitempty"`
}

// handleAnalyzeBullets validates one statement, or a batch when "statements" is set
func (s *Server) handleAnalyzeBullets(w http.ResponseWriter, r *http.Request) {
	var req analyzeRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	switch {
	case req.Statement != nil:
		s.jsonResponse(w, http.StatusOK, s.engine.AnalyzeBullet(*req.Statement))
	case len(req.Statements) > 0:
		results, err := s.engine.AnalyzeBullets(r.Context(), req.Statements)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		s.jsonResponse(w, http.StatusOK, map[string]any{"results": results})
	default:
		s.writeError(w, r, &types.InputError{Field: "statement", Message: "statement or statements is required"})
	}
}

func (s *Server) handleAnalyzeSet(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Statements []string `json:"statements"`
	}
	if err := decodeJSON(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	if len(req.Statements) == 0 {
		s.writeError(w, r, &types.InputError{Field: "statements", Message: "at least one statement is required"})
		return
	}
	s.jsonResponse(w, http.StatusOK, s.engine.AnalyzeSet(req.Statements))
}

func (s *Server) handleAutoFix(w http.ResponseWriter, r *http.Request) {
	var req analyzeRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	if req.Statement == nil {
		s.writeError(w, r, &types.InputError{Field: "statement", Message: "statement is required"})
		return
	}
	s.jsonResponse(w, http.StatusOK, s.engine.AutoFix(*req.Statement))
}

type selectRequest struct {
	types.SelectRequest
	Pool []types.LibraryItem `json:"pool,omitempty"`
}

// handleSelect allocates from the library, or from "pool" without recording usage
func (s *Server) handleSelect(w http.ResponseWriter, r *http.Request) {
	var req selectRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	var (
		result *types.SelectionResult
		err    error
	)
	if req.Pool != nil {
		result, err = s.engine.SelectFromPool(req.Pool, req.SelectRequest)
	} else {
		result, err = s.engine.Select(r.Context(), req.SelectRequest)
	}
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, result)
}

func (s *Server) handleVerify(w http.ResponseWriter, r *http.Request) {
	var req types.VerifyRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	report, err := s.engine.Verify(r.Context(), req)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, report)
}

func (s *Server) handleSpin(w http.ResponseWriter, r *http.Request) {
	var req types.SpinRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	result, err := s.engine.Spin(r.Context(), req)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, result)
}

func (s *Server) handleSpinExamples(w http.ResponseWriter, r *http.Request) {
	stage, err := types.ParseStage(r.PathValue("stage"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{"stage": stage, "examples": s.engine.SpinExamples(stage)})
}

// libraryFilter reads ?competency=&stage=&min_quality=&tag=a&tag=b
func libraryFilter(r *http.Request) (library.Filter, error) {
	q := r.URL.Query()
	f := library.Filter{Competency: q.Get("competency"), Tags: q["tag"]}
	if raw := q.Get("stage"); raw != "" {
		stage, err := types.ParseStage(raw)
		if err != nil {
			return f, err
		}
		f.CompanyStage = stage
	}
	if raw := q.Get("min_quality"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 || n > 100 {
			return f, &types.InputError{Field: "min_quality", Message: "must be an integer between 0 and 100"}
		}
		f.MinQuality = n
	}
	return f, nil
}

func (s *Server) handleListLibrary(w http.ResponseWriter, r *http.Request) {
	f, err := libraryFilter(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	items, err := s.engine.Library().List(r.Context(), f)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{"items": items, "count": len(items)})
}

type libraryItemRequest struct {
	ID        string                 `json:"id,omitempty"`
	Statement types.SixPartStatement `json:"statement"`
}

func (s *Server) handleCreateLibraryItem(w http.ResponseWriter, r *http.Request) {
	var req libraryItemRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	item, err := s.engine.Library().Add(r.Context(), req.Statement, req.ID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusCreated, item)
}

func (s *Server) handleImportLibrary(w http.ResponseWriter, r *http.Request) {
	raw, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		s.writeError(w, r, &types.InputError{Message: err.Error()})
		return
	}
	report, err := s.engine.Library().Import(r.Context(), raw)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, report)
}

func (s *Server) handleLibraryStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.engine.Library().Stats(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, stats)
}

func (s *Server) handleGetLibraryItem(w http.ResponseWriter, r *http.Request) {
	item, err := s.engine.Library().Get(r.Context(), r.PathValue("id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, item)
}

func (s *Server) handleUpdateLibraryItem(w http.ResponseWriter, r *http.Request) {
	var req libraryItemRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	item, err := s.engine.Library().Update(r.Context(), r.PathValue("id"), req.Statement)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, item)
}

func (s *Server) handleDeleteLibraryItem(w http.ResponseWriter, r *http.Request) {
	if err := s.engine.Library().Delete(r.Context(), r.PathValue("id")); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
