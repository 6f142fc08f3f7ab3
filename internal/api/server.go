package api

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"github.com/mmshah/job-apply-agent/internal/agent"
	"github.com/mmshah/job-apply-agent/internal/models"
)

// Server handles HTTP requests. It is a thin shell over the agent: parsing,
// routing and response encoding only.
type Server struct {
	agent *agent.Agent
}

// NewServer creates a new API server
func NewServer(agent *agent.Agent) *Server {
	return &Server{
		agent: agent,
	}
}

// Router returns the HTTP router
func (s *Server) Router() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /prepare", s.handlePrepare)
	mux.HandleFunc("POST /send", s.handleSend)
	mux.HandleFunc("GET /session/{id}/draft.txt", s.handleDraftDownload)
	mux.HandleFunc("GET /resumes", s.handleResumes)
	mux.HandleFunc("GET /tracker/download", s.handleTrackerDownload)
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /", s.handleRoot)

	return s.loggingMiddleware(mux)
}

// handleRoot provides API information
func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"service": "Job Application Assistant",
		"version": "1.0.0",
		"endpoints": map[string]string{
			"POST /prepare":               "Match resumes against a job description and generate an email draft",
			"POST /send":                  "Send the reviewed email via browser, smtp or desktop transport",
			"GET /session/{id}/draft.txt": "Download the generated draft as plain text",
			"GET /resumes":                "List stored resume files",
			"GET /tracker/download":       "Download the application tracker workbook",
			"GET /health":                 "Health check",
		},
	})
}

// handleHealth provides a health check endpoint
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{
		"status": "healthy",
	})
}

// handlePrepare runs resume selection and email composition
func (s *Server) handlePrepare(w http.ResponseWriter, r *http.Request) {
	var req models.PrepareRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, fmt.Sprintf("Failed to parse request: %v", err))
		return
	}

	resp, err := s.agent.Prepare(r.Context(), req)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	s.respondJSON(w, http.StatusOK, resp)
}

// handleSend dispatches the reviewed email
func (s *Server) handleSend(w http.ResponseWriter, r *http.Request) {
	var payload models.SendPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		s.respondError(w, http.StatusBadRequest, fmt.Sprintf("Failed to parse request: %v", err))
		return
	}

	result, err := s.agent.Send(payload)
	if err != nil {
		s.respondError(w, http.StatusNotFound, err.Error())
		return
	}

	s.respondJSON(w, http.StatusOK, models.SendResponse{
		Status:        string(result.Status),
		Message:       result.Message,
		Recorded:      result.Recorded,
		RecordMessage: result.RecordMessage,
	})
}

// handleDraftDownload returns the draft as a plain-text file
func (s *Server) handleDraftDownload(w http.ResponseWriter, r *http.Request) {
	text, err := s.agent.DraftText(r.PathValue("id"))
	if err != nil {
		s.respondError(w, http.StatusNotFound, err.Error())
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="email_draft.txt"`)
	w.WriteHeader(http.StatusOK)
	fmt.Fprint(w, text)
}

// handleResumes lists the stored resume files
func (s *Server) handleResumes(w http.ResponseWriter, r *http.Request) {
	names, err := s.agent.ListResumes()
	if err != nil {
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.respondJSON(w, http.StatusOK, map[string]interface{}{
		"resumes": names,
	})
}

// handleTrackerDownload streams the tracker workbook
func (s *Server) handleTrackerDownload(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="job_applications.xlsx"`)
	http.ServeFile(w, r, s.agent.TrackerPath())
}

// respondJSON sends a JSON response
func (s *Server) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("Failed to encode JSON response: %v", err)
	}
}

// respondError sends an error response
func (s *Server) respondError(w http.ResponseWriter, status int, message string) {
	s.respondJSON(w, status, map[string]string{
		"error": message,
	})
}

// loggingMiddleware logs HTTP requests
func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log.Printf("%s %s %s", r.Method, r.URL.Path, r.RemoteAddr)
		next.ServeHTTP(w, r)
	})
}
