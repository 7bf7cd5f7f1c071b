package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/jonathan/resume-optimizer/internal/parsing"
	"github.com/jonathan/resume-optimizer/internal/pipeline"
	"github.com/jonathan/resume-optimizer/internal/types"
)

// HealthResponse is the body of GET /api/health
type HealthResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// optimizeEnvelope flattens the optimize result next to the success flag
type optimizeEnvelope struct {
	Success bool `json:"success"`
	*types.OptimizeResponse
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, HealthResponse{Status: "ok", Message: "GoBot API is running"})
}

func (s *Server) handleExtractKeywords(w http.ResponseWriter, r *http.Request) {
	var req types.ExtractKeywordsRequest
	if err := s.decodeJSON(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		s.writeError(w, r, &ErrValidation{Field: "jobDescription", Message: "Job description is too long"})
		return
	}

	ks := s.analyzer.ExtractKeywords(r.Context(), req.JobDescription)
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"success":  true,
		"keywords": ks,
	})
}

func (s *Server) handleCalculateScore(w http.ResponseWriter, r *http.Request) {
	var req types.ScoreRequest
	if err := s.decodeJSON(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	score := s.analyzer.CalculateScore(req.ResumeOrEmpty(), req.JobKeywords)
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"success": true,
		"score":   score,
	})
}

func (s *Server) handleOptimizeResume(w http.ResponseWriter, r *http.Request) {
	var req types.ScoreRequest
	if err := s.decodeJSON(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	result, err := s.analyzer.OptimizeResume(r.Context(), req.ResumeOrEmpty(), req.JobKeywords)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, optimizeEnvelope{Success: true, OptimizeResponse: result})
}

// handleOptimizeResumeStream runs an optimization and reports each step as an
// SSE "progress" event, followed by a "complete" or "error" event
func (s *Server) handleOptimizeResumeStream(w http.ResponseWriter, r *http.Request) {
	var req types.ScoreRequest
	if err := s.decodeJSON(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	sse, err := NewSSEWriter(w)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Streaming not supported")
		return
	}

	analyzer := s.analyzer.WithProgress(func(event pipeline.ProgressEvent) {
		sse.WriteEvent(eventProgress, event) //nolint:errcheck
	})

	result, err := analyzer.OptimizeResume(r.Context(), req.ResumeOrEmpty(), req.JobKeywords)
	if err != nil {
		sse.WriteError(err.Error())
		return
	}
	sse.WriteComplete(optimizeEnvelope{Success: true, OptimizeResponse: result})
}

func (s *Server) handleResumeVariations(w http.ResponseWriter, r *http.Request) {
	var req types.VariationsRequest
	if err := s.decodeJSON(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		s.writeError(w, r, &ErrValidation{Field: "count", Message: "count must be between 0 and 10"})
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"success":    true,
		"variations": s.analyzer.Variations(req.ResumeOrEmpty(), req.JobKeywords, req.Count),
	})
}

func (s *Server) handleUploadResume(w http.ResponseWriter, r *http.Request) {
	if r.ContentLength > s.maxUploadBytes {
		s.writeError(w, r, &ErrPayloadTooLarge{Limit: s.maxUploadBytes})
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, s.maxUploadBytes)
	if err := r.ParseMultipartForm(s.maxUploadBytes); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			s.writeError(w, r, &ErrPayloadTooLarge{Limit: s.maxUploadBytes})
			return
		}
		s.writeError(w, r, &ErrValidation{Field: "file", Message: "No file uploaded"})
		return
	}
	defer r.MultipartForm.RemoveAll() //nolint:errcheck

	file, header, err := r.FormFile("file")
	if err != nil {
		s.writeError(w, r, &ErrValidation{Field: "file", Message: "No file uploaded"})
		return
	}
	defer file.Close()

	if header.Filename == "" {
		s.writeError(w, r, &ErrValidation{Field: "file", Message: "No file selected"})
		return
	}
	if !parsing.AllowedExtension(header.Filename) {
		s.writeError(w, r, &ErrInvalidFileType{
			Extension: parsing.Extension(header.Filename),
			Allowed:   parsing.AllowedExtensions(),
		})
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	result := s.analyzer.ParseFile(header.Filename, data)
	if result.Failed() {
		s.errorResponse(w, http.StatusInternalServerError, result.Error)
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"success":      true,
		"parsedResume": result.Resume,
	})
}

func (s *Server) handleParseText(w http.ResponseWriter, r *http.Request) {
	var req types.ParseTextRequest
	if err := s.decodeJSON(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		s.writeError(w, r, &ErrValidation{Field: "text", Message: "No text provided"})
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"success":      true,
		"parsedResume": s.analyzer.ParseText(req.Text),
	})
}

func (s *Server) handleSuggestions(w http.ResponseWriter, r *http.Request) {
	var req types.SuggestionsRequest
	if err := s.decodeJSON(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		s.writeError(w, r, &ErrValidation{Field: "resumeSkills", Message: "Too many résumé skills"})
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"success":     true,
		"suggestions": s.analyzer.Suggestions(req.ResumeSkills, req.JobKeywords),
	})
}

func (s *Server) handleMatch(w http.ResponseWriter, r *http.Request) {
	var req types.ScoreRequest
	if err := s.decodeJSON(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"success": true,
		"matches": s.analyzer.Matches(req.ResumeOrEmpty(), req.JobKeywords),
	})
}

func (s *Server) handleGetAnalysis(w http.ResponseWriter, r *http.Request) {
	idStr := r.PathValue("id")
	id, err := uuid.Parse(idStr)
	if err != nil {
		s.writeError(w, r, &ErrValidation{Field: "id", Message: "Invalid analysis ID"})
		return
	}

	analysis, err := s.analyzer.Analysis(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if analysis == nil {
		s.writeError(w, r, &ErrNotFound{Resource: "analysis", ID: idStr})
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"success":  true,
		"analysis": analysis,
	})
}

func (s *Server) handleListAnalyses(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			s.writeError(w, r, &ErrValidation{Field: "limit", Message: "limit must be a non-negative integer"})
			return
		}
		limit = n
	}

	analyses, err := s.analyzer.RecentAnalyses(r.Context(), limit)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"success":  true,
		"analyses": analyses,
	})
}

// decodeJSON reads a JSON body of at most maxUploadBytes into dst.
// An empty body leaves dst at its zero value.
func (s *Server) decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxUploadBytes)
	err := json.NewDecoder(r.Body).Decode(dst)
	switch {
	case err == nil, errors.Is(err, io.EOF):
		return nil
	default:
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return &ErrPayloadTooLarge{Limit: s.maxUploadBytes}
		}
		return &ErrValidation{Field: "body", Message: "Invalid JSON body"}
	}
}
