package models

// ResumeSet holds candidate resumes keyed by name. Insertion order is
// preserved because the selection fallback is defined as "first resume
// added". Resumes with empty extracted text are dropped on Add.
type ResumeSet struct {
	names []string
	texts map[string]string
}

// NewResumeSet creates an empty resume set
func NewResumeSet() *ResumeSet {
	return &ResumeSet{
		texts: make(map[string]string),
	}
}

// Add registers a resume under the given name. Empty text and duplicate
// names are ignored.
func (s *ResumeSet) Add(name, text string) {
	if name == "" || text == "" {
		return
	}
	if _, exists := s.texts[name]; exists {
		return
	}
	s.names = append(s.names, name)
	s.texts[name] = text
}

// Len returns the number of resumes in the set
func (s *ResumeSet) Len() int {
	return len(s.names)
}

// Names returns resume names in insertion order
func (s *ResumeSet) Names() []string {
	out := make([]string, len(s.names))
	copy(out, s.names)
	return out
}

// Text returns the extracted text for a resume name
func (s *ResumeSet) Text(name string) (string, bool) {
	text, ok := s.texts[name]
	return text, ok
}

// Has reports whether the set contains the given resume name
func (s *ResumeSet) Has(name string) bool {
	_, ok := s.texts[name]
	return ok
}

// First returns the first resume name added to the set, or "" if empty
func (s *ResumeSet) First() string {
	if len(s.names) == 0 {
		return ""
	}
	return s.names[0]
}

// SelectionVerdict is the outcome of matching resumes against a job description
type SelectionVerdict struct {
	ResumeName string `json:"resume_name"`
	Reason     string `json:"reason"`
}

// EmailDraft is the generated application email content
type EmailDraft struct {
	Subject  string `json:"subject"`
	Body     string `json:"body"`
	JobTitle string `json:"job_title"`
}

// Transport identifies a concrete email delivery mechanism
type Transport string

// Supported transports
const (
	TransportBrowser Transport = "browser" // Gmail compose link, sent from the user's browser
	TransportSMTP    Transport = "smtp"    // direct SMTP with user credentials
	TransportDesktop Transport = "desktop" // local Outlook desktop client
)

// SMTPCredentials are the sender's SMTP login details
type SMTPCredentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// SendRequest carries everything needed for one send attempt. It is built
// fresh per attempt from the user-edited draft and never persisted.
type SendRequest struct {
	RecipientEmail  string
	Subject         string
	Body            string
	JobTitle        string
	AttachmentName  string
	AttachmentBytes []byte
	Transport       Transport
	Credentials     *SMTPCredentials
}

// TrackerRow is one application log entry
type TrackerRow struct {
	JobTitle     string
	EmailAddress string
	DateApplied  string
	Status       string
}

// ResumePayload is one resume in a prepare request. Text is the already
// extracted plain text; Data carries the original file bytes for the
// attachment (base64 on the wire).
type ResumePayload struct {
	Name string `json:"name"`
	Text string `json:"text"`
	Data []byte `json:"data,omitempty"`
}

// PrepareRequest is the payload for draft preparation
type PrepareRequest struct {
	JobDescription string          `json:"job_description"`
	Resumes        []ResumePayload `json:"resumes"`
}

// PrepareResponse returns the prepared draft and session handle
type PrepareResponse struct {
	SessionID      string           `json:"session_id"`
	RecruiterEmail string           `json:"recruiter_email,omitempty"`
	Selection      SelectionVerdict `json:"selection"`
	Draft          EmailDraft       `json:"draft"`
	GmailURL       string           `json:"gmail_url,omitempty"`
}

// SendPayload is the payload for a send action
type SendPayload struct {
	SessionID      string    `json:"session_id"`
	RecipientEmail string    `json:"recipient_email"`
	Subject        string    `json:"subject"`
	Body           string    `json:"body"`
	Transport      Transport `json:"transport"`
	SMTPUsername   string    `json:"smtp_username,omitempty"`
	SMTPPassword   string    `json:"smtp_password,omitempty"`
}

// SendResponse reports the dispatch outcome
type SendResponse struct {
	Status        string `json:"status"`
	Message       string `json:"message"`
	Recorded      bool   `json:"recorded"`
	RecordMessage string `json:"record_message,omitempty"`
}
