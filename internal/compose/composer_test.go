package compose

import (
	"context"
	"errors"
	"strings"
	"testing"
)

// fakeGenerator returns a canned response or error and records prompts
type fakeGenerator struct {
	response string
	err      error
	calls    int
	system   string
	user     string
}

func (f *fakeGenerator) GenerateJSON(ctx context.Context, system, user string) (string, error) {
	f.calls++
	f.system = system
	f.user = user
	return f.response, f.err
}

func (f *fakeGenerator) Close() error { return nil }

// TestCompose_Success tests a well-formed model response
func TestCompose_Success(t *testing.T) {
	gen := &fakeGenerator{
		response: `{"subject": "Application for Go Engineer", "body": "Dear Hiring Manager,\n\nI am applying.", "job_title": "Go Engineer"}`,
	}
	composer := NewComposer(gen, "", "")

	draft := composer.Compose(context.Background(), "Go engineer wanted", "Go developer resume")

	if draft.Subject != "Application for Go Engineer" {
		t.Errorf("Subject = %q", draft.Subject)
	}
	if !strings.Contains(draft.Body, "Dear Hiring Manager") {
		t.Errorf("Body = %q", draft.Body)
	}
	if draft.JobTitle != "Go Engineer" {
		t.Errorf("JobTitle = %q", draft.JobTitle)
	}
	if gen.calls != 1 {
		t.Errorf("Compose() made %d model calls, want 1", gen.calls)
	}
}

// TestCompose_NeverEmptyFields tests that every outcome carries renderable
// subject, body and job title, whatever the failure.
func TestCompose_NeverEmptyFields(t *testing.T) {
	tests := []struct {
		name     string
		composer *Composer
	}{
		{
			name:     "Missing model client",
			composer: NewComposer(nil, "", ""),
		},
		{
			name:     "Model call fails",
			composer: NewComposer(&fakeGenerator{err: errors.New("deadline exceeded")}, "", ""),
		},
		{
			name:     "Unparseable response",
			composer: NewComposer(&fakeGenerator{response: "sorry, I cannot help"}, "", ""),
		},
		{
			name:     "Response missing body",
			composer: NewComposer(&fakeGenerator{response: `{"subject": "x"}`}, "", ""),
		},
		{
			name:     "Response missing job title",
			composer: NewComposer(&fakeGenerator{response: `{"subject": "x", "body": "y"}`}, "", ""),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			draft := tt.composer.Compose(context.Background(), "jd", "resume")
			if draft.Subject == "" {
				t.Error("Subject is empty")
			}
			if draft.Body == "" {
				t.Error("Body is empty")
			}
			if draft.JobTitle == "" {
				t.Error("JobTitle is empty")
			}
		})
	}
}

// TestCompose_MissingClientExplainsConfiguration tests the configuration-error draft
func TestCompose_MissingClientExplainsConfiguration(t *testing.T) {
	composer := NewComposer(nil, "", "")

	draft := composer.Compose(context.Background(), "jd", "resume")
	if draft.Subject != "Configuration Error" {
		t.Errorf("Subject = %q, want %q", draft.Subject, "Configuration Error")
	}
	if !strings.Contains(draft.Body, "GOOGLE_CLOUD_PROJECT") {
		t.Errorf("Body = %q, should name the missing setting", draft.Body)
	}
}

// TestCompose_ErrorEmbeddedInBody tests that the raw failure is visible for diagnosis
func TestCompose_ErrorEmbeddedInBody(t *testing.T) {
	gen := &fakeGenerator{err: errors.New("quota exceeded for project")}
	composer := NewComposer(gen, "", "")

	draft := composer.Compose(context.Background(), "jd", "resume")
	if !strings.Contains(draft.Body, "quota exceeded for project") {
		t.Errorf("Body = %q, should embed the raw error", draft.Body)
	}
}

// TestCompose_PromptContents tests the structural constraints and inputs in the prompts
func TestCompose_PromptContents(t *testing.T) {
	gen := &fakeGenerator{
		response: `{"subject": "s", "body": "b", "job_title": "t"}`,
	}
	composer := NewComposer(gen, "https://linkedin.example/in/me", "https://github.example/me")

	composer.Compose(context.Background(), "the job description", "the resume text")

	for _, want := range []string{
		"ONLY USE INFORMATION FROM THE RESUME",
		"100-150 words MAXIMUM",
		"NO asterisks (*) anywhere",
		"Dear Hiring Manager,",
		"https://linkedin.example/in/me",
		"https://github.example/me",
		`"subject", "body", and "job_title"`,
	} {
		if !strings.Contains(gen.system, want) {
			t.Errorf("system prompt missing %q", want)
		}
	}

	for _, want := range []string{
		"JOB DESCRIPTION:",
		"the job description",
		"RESUME CONTENT:",
		"the resume text",
	} {
		if !strings.Contains(gen.user, want) {
			t.Errorf("user prompt missing %q", want)
		}
	}
}

// TestCompose_NoSignatureLinksWhenUnset tests that unset links stay out of the prompt
func TestCompose_NoSignatureLinksWhenUnset(t *testing.T) {
	gen := &fakeGenerator{
		response: `{"subject": "s", "body": "b", "job_title": "t"}`,
	}
	composer := NewComposer(gen, "", "")

	composer.Compose(context.Background(), "jd", "resume")

	if strings.Contains(gen.system, "LinkedIn:") || strings.Contains(gen.system, "GitHub:") {
		t.Errorf("system prompt should not mention unset signature links")
	}
}
