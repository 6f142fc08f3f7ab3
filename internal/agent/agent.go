// Package agent orchestrates the application pipeline: resume selection,
// email composition, dispatch and tracking.
package agent

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"path/filepath"
	"strings"

	"github.com/mmshah/job-apply-agent/internal/compose"
	"github.com/mmshah/job-apply-agent/internal/config"
	"github.com/mmshah/job-apply-agent/internal/dispatch"
	"github.com/mmshah/job-apply-agent/internal/ingestion"
	"github.com/mmshah/job-apply-agent/internal/llm"
	"github.com/mmshah/job-apply-agent/internal/mailutil"
	"github.com/mmshah/job-apply-agent/internal/matching"
	"github.com/mmshah/job-apply-agent/internal/models"
	"github.com/mmshah/job-apply-agent/internal/session"
	"github.com/mmshah/job-apply-agent/internal/tracker"
	"github.com/mmshah/job-apply-agent/internal/transport"
)

// Agent wires the pipeline components together
type Agent struct {
	config     *config.Config
	generator  llm.Generator
	selector   *matching.Selector
	composer   *compose.Composer
	dispatcher *dispatch.Dispatcher
	sessions   *session.Store
	resumes    *ingestion.ResumeStore
	excel      *tracker.ExcelTracker
}

// New creates the agent from configuration. A missing or misconfigured model
// credential does not prevent startup: selection and composition degrade to
// their deterministic fallbacks so the user still gets actionable output.
func New(ctx context.Context, cfg *config.Config) *Agent {
	var generator llm.Generator
	client, err := llm.NewVertexAIClient(ctx)
	if err != nil {
		log.Printf("Language model client unavailable: %v", err)
	} else {
		generator = client
	}

	excel := tracker.NewExcelTracker(cfg.TrackerPath)

	var sheetsMirror *tracker.SheetsMirror
	if creds, err := cfg.SheetsCredentials(); err != nil {
		log.Printf("Google Sheets mirror disabled: %v", err)
	} else if creds != nil && cfg.SpreadsheetID != "" {
		sheetsMirror, err = tracker.NewSheetsMirror(ctx, creds, cfg.SpreadsheetID)
		if err != nil {
			log.Printf("Google Sheets mirror disabled: %v", err)
		}
	}

	return &Agent{
		config:    cfg,
		generator: generator,
		selector:  matching.NewSelector(generator),
		composer:  compose.NewComposer(generator, cfg.LinkedInURL, cfg.GitHubURL),
		dispatcher: dispatch.NewDispatcher(
			transport.NewSMTPSender(cfg.SMTPService),
			transport.NewOutlookDesktop(),
			tracker.NewRecorder(excel, sheetsMirror),
		),
		sessions: session.NewStore(),
		resumes:  ingestion.NewResumeStore(cfg.ResumesDir),
		excel:    excel,
	}
}

// Prepare runs the per-submission pipeline: persist incoming resume files,
// extract the recruiter email, select the best resume, compose the draft,
// and stash everything in a new session for the review step.
func (a *Agent) Prepare(ctx context.Context, req models.PrepareRequest) (*models.PrepareResponse, error) {
	if strings.TrimSpace(req.JobDescription) == "" {
		return nil, fmt.Errorf("job description is required")
	}

	set := models.NewResumeSet()
	fileBytes := make(map[string][]byte)

	for _, resume := range req.Resumes {
		name := filepath.Base(resume.Name)
		set.Add(name, resume.Text)
		if len(resume.Data) > 0 {
			fileBytes[name] = resume.Data
			if _, err := a.resumes.Save(name, bytes.NewReader(resume.Data)); err != nil {
				log.Printf("Failed to persist resume %s: %v", name, err)
			}
		}
	}

	verdict, err := a.selector.Select(ctx, req.JobDescription, set)
	if err != nil {
		return nil, fmt.Errorf("resume selection failed: %w", err)
	}
	log.Printf("Selected resume %s: %s", verdict.ResumeName, verdict.Reason)

	recruiterEmail, _ := mailutil.ExtractEmail(req.JobDescription)

	resumeText, _ := set.Text(verdict.ResumeName)
	draft := a.composer.Compose(ctx, req.JobDescription, resumeText)

	resumeBytes := fileBytes[verdict.ResumeName]
	if resumeBytes == nil {
		// Fall back to a previously stored copy of the chosen resume
		if data, err := a.resumes.Read(verdict.ResumeName); err == nil {
			resumeBytes = data
		}
	}

	sessionID := a.sessions.Put(&session.Draft{
		RecruiterEmail: recruiterEmail,
		Selection:      verdict,
		Email:          draft,
		ResumeName:     verdict.ResumeName,
		ResumeBytes:    resumeBytes,
	})

	return &models.PrepareResponse{
		SessionID:      sessionID,
		RecruiterEmail: recruiterEmail,
		Selection:      verdict,
		Draft:          draft,
		GmailURL:       mailutil.GmailComposeURL(recruiterEmail, draft.Subject, draft.Body),
	}, nil
}

// Send builds a fresh SendRequest from the session and the user's edited
// fields, then dispatches it. SMTP credentials from the payload win over the
// configured ones.
func (a *Agent) Send(payload models.SendPayload) (dispatch.Result, error) {
	sess, ok := a.sessions.Get(payload.SessionID)
	if !ok {
		return dispatch.Result{}, fmt.Errorf("unknown session %q", payload.SessionID)
	}

	var creds *models.SMTPCredentials
	username, password := payload.SMTPUsername, payload.SMTPPassword
	if username == "" {
		username, password = a.config.SMTPUsername, a.config.SMTPPassword
	}
	if username != "" && password != "" {
		creds = &models.SMTPCredentials{Username: username, Password: password}
	}

	req := models.SendRequest{
		RecipientEmail:  payload.RecipientEmail,
		Subject:         payload.Subject,
		Body:            payload.Body,
		JobTitle:        sess.Email.JobTitle,
		AttachmentName:  sess.ResumeName,
		AttachmentBytes: sess.ResumeBytes,
		Transport:       payload.Transport,
		Credentials:     creds,
	}

	return a.dispatcher.Dispatch(req), nil
}

// DraftText renders the session's draft in the downloadable plain-text form
func (a *Agent) DraftText(sessionID string) (string, error) {
	sess, ok := a.sessions.Get(sessionID)
	if !ok {
		return "", fmt.Errorf("unknown session %q", sessionID)
	}
	return fmt.Sprintf("Subject: %s\n\n%s", sess.Email.Subject, sess.Email.Body), nil
}

// ListResumes returns the resume files currently in the store
func (a *Agent) ListResumes() ([]string, error) {
	return a.resumes.List()
}

// TrackerPath returns the tracker workbook location for download
func (a *Agent) TrackerPath() string {
	return a.excel.Path()
}

// Close cleans up resources
func (a *Agent) Close() error {
	if a.generator != nil {
		return a.generator.Close()
	}
	return nil
}
