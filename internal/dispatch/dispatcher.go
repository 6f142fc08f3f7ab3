// Package dispatch routes an approved email draft to a concrete transport
// and records successful sends to the application tracker.
package dispatch

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/mmshah/job-apply-agent/internal/mailutil"
	"github.com/mmshah/job-apply-agent/internal/models"
)

// Status is the terminal state of one send attempt
type Status string

// Terminal states. Deferred means the send was handed to the user's browser
// mail client and its outcome is outside this system's observability.
const (
	StatusSent     Status = "sent"
	StatusFailed   Status = "failed"
	StatusDeferred Status = "deferred"
)

// Result is the outcome of a dispatch, including the recording side effect
type Result struct {
	Status        Status
	Message       string
	Recorded      bool
	RecordMessage string
}

// SMTPSender delivers mail over a provider's SMTP endpoint
type SMTPSender interface {
	Send(recipient, subject, body string, attachment []byte, attachmentName, username, password string) (bool, string)
}

// DesktopSender drives a locally installed mail client. It needs a
// disk-resident attachment path rather than bytes.
type DesktopSender interface {
	Available() bool
	Send(recipient, subject, body, attachmentPath string) (bool, string)
}

// Recorder appends one tracker row per successful send
type Recorder interface {
	Record(jobTitle, recipient string) (bool, string)
}

// Dispatcher routes send requests to transports. Dispatch is intentionally
// not idempotent: resubmitting an identical request sends a second physical
// email and appends a second tracker row.
type Dispatcher struct {
	smtp     SMTPSender
	desktop  DesktopSender
	recorder Recorder
}

// NewDispatcher creates a dispatcher over the given collaborators
func NewDispatcher(smtp SMTPSender, desktop DesktopSender, recorder Recorder) *Dispatcher {
	return &Dispatcher{
		smtp:     smtp,
		desktop:  desktop,
		recorder: recorder,
	}
}

// Dispatch validates the request, routes it to the chosen transport and, on
// success, triggers exactly one tracker record. Failed and deferred attempts
// record nothing and are never retried automatically.
func (d *Dispatcher) Dispatch(req models.SendRequest) Result {
	if strings.TrimSpace(req.RecipientEmail) == "" {
		return Result{
			Status:  StatusFailed,
			Message: "Missing recipient: please enter a recipient email address.",
		}
	}

	switch req.Transport {
	case models.TransportBrowser:
		// No network I/O here; the user sends from their own mail client
		return Result{
			Status:  StatusDeferred,
			Message: mailutil.GmailComposeURL(req.RecipientEmail, req.Subject, req.Body),
		}

	case models.TransportSMTP:
		if req.Credentials == nil || req.Credentials.Username == "" || req.Credentials.Password == "" {
			return Result{
				Status:  StatusFailed,
				Message: "Missing credentials: SMTP sending requires a username and password.",
			}
		}
		ok, msg := d.smtp.Send(req.RecipientEmail, req.Subject, req.Body,
			req.AttachmentBytes, req.AttachmentName,
			req.Credentials.Username, req.Credentials.Password)
		if !ok {
			return Result{Status: StatusFailed, Message: msg}
		}
		return d.sent(req, msg)

	case models.TransportDesktop:
		return d.dispatchDesktop(req)

	default:
		return Result{
			Status:  StatusFailed,
			Message: fmt.Sprintf("Unknown transport %q", req.Transport),
		}
	}
}

// dispatchDesktop materializes the attachment to a temp file for the desktop
// client, which reads attachments by path. Unavailability is decided before
// any file is staged.
func (d *Dispatcher) dispatchDesktop(req models.SendRequest) Result {
	if !d.desktop.Available() {
		return Result{
			Status:  StatusFailed,
			Message: "Outlook Desktop is not available on this host. Use the browser or SMTP transport instead.",
		}
	}

	attachmentPath := ""
	if len(req.AttachmentBytes) > 0 {
		tmp, err := os.CreateTemp("", "attachment-*"+filepath.Ext(req.AttachmentName))
		if err != nil {
			return Result{Status: StatusFailed, Message: fmt.Sprintf("Failed to stage attachment: %v", err)}
		}
		if _, err := tmp.Write(req.AttachmentBytes); err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
			return Result{Status: StatusFailed, Message: fmt.Sprintf("Failed to stage attachment: %v", err)}
		}
		tmp.Close()
		attachmentPath = tmp.Name()
		defer os.Remove(attachmentPath)
	}

	// Desktop diagnostics are surfaced verbatim
	ok, msg := d.desktop.Send(req.RecipientEmail, req.Subject, req.Body, attachmentPath)
	if !ok {
		return Result{Status: StatusFailed, Message: msg}
	}
	return d.sent(req, msg)
}

// sent records the send. A recording failure is reported but does not revert
// the sent status: the email already left the system.
func (d *Dispatcher) sent(req models.SendRequest, msg string) Result {
	result := Result{
		Status:  StatusSent,
		Message: msg,
	}

	if d.recorder != nil {
		ok, recordMsg := d.recorder.Record(req.JobTitle, req.RecipientEmail)
		result.Recorded = ok
		result.RecordMessage = recordMsg
		if !ok {
			log.Printf("Send succeeded but recording failed: %s", recordMsg)
		}
	}

	return result
}
