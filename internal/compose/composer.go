// Package compose generates the application email draft from a job
// description and the selected resume's text.
package compose

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/mmshah/job-apply-agent/internal/llm"
	"github.com/mmshah/job-apply-agent/internal/models"
)

// defaultJobTitle is used when the model omits the inferred title. Every
// draft leaving this package carries a non-empty job title.
const defaultJobTitle = "Job Application"

// Composer generates email drafts using an LLM
type Composer struct {
	generator   llm.Generator
	linkedInURL string
	gitHubURL   string
}

// NewComposer creates a new composer. The profile links are appended to the
// email signature when set. A nil generator is allowed; composition then
// returns a configuration-error draft instead of calling out.
func NewComposer(generator llm.Generator, linkedInURL, gitHubURL string) *Composer {
	return &Composer{
		generator:   generator,
		linkedInURL: linkedInURL,
		gitHubURL:   gitHubURL,
	}
}

// Compose generates an email draft for the job description and resume text.
// It never returns an error: configuration problems, transport failures and
// unparseable responses all come back as a renderable draft whose subject and
// body describe the problem, so the review step always has something to show.
// One model call at most, no retries, no caching.
func (c *Composer) Compose(ctx context.Context, jobDescription, resumeText string) models.EmailDraft {
	if c.generator == nil {
		return models.EmailDraft{
			Subject:  "Configuration Error",
			Body:     "The language model client is not configured. Set GOOGLE_CLOUD_PROJECT (and optionally GOOGLE_CLOUD_LOCATION) and restart the service.",
			JobTitle: defaultJobTitle,
		}
	}

	response, err := c.generator.GenerateJSON(ctx, c.buildSystemPrompt(), buildUserPrompt(jobDescription, resumeText))
	if err != nil {
		log.Printf("Error generating email: %v", err)
		return errorDraft(err)
	}

	draft, err := parseDraft(response)
	if err != nil {
		log.Printf("Error parsing generated email: %v", err)
		return errorDraft(err)
	}

	return draft
}

// errorDraft embeds the raw failure in the draft body for user diagnosis
func errorDraft(cause error) models.EmailDraft {
	return models.EmailDraft{
		Subject:  "Error generating email",
		Body:     fmt.Sprintf("An error occurred while generating the email. Please check your logs or try again.\nError: %v", cause),
		JobTitle: defaultJobTitle,
	}
}

// buildSystemPrompt fixes the tone, length bounds, five-part structure and
// formatting prohibitions the draft must follow.
func (c *Composer) buildSystemPrompt() string {
	var sb strings.Builder

	sb.WriteString("You are a professional career coach and expert copywriter.\n")
	sb.WriteString("Your task is to write a SHORT, IMPACTFUL job application email based on a candidate's resume and a job description.\n\n")

	sb.WriteString("CRITICAL RULES:\n")
	sb.WriteString("1. ONLY USE INFORMATION FROM THE RESUME - Do NOT invent or add any skills, projects, technologies, or experience that is NOT explicitly mentioned in the resume.\n")
	sb.WriteString("2. Match JD with Resume - Identify which skills/projects from the RESUME align with the Job Description. Only highlight those.\n")
	sb.WriteString("3. If a JD requirement is NOT in the resume - Do NOT mention it. Do NOT pretend the candidate has that skill.\n\n")

	sb.WriteString("Follow these rules strictly:\n")
	sb.WriteString("1. Tone: Professional, confident, concise. HR-friendly and attention-grabbing.\n")
	sb.WriteString("2. Length: 100-150 words MAXIMUM. Short and crisp. No fluff.\n")
	sb.WriteString("3. Structure:\n")
	sb.WriteString("   - Salutation: \"Dear Hiring Manager,\" (or name if found in JD)\n")
	sb.WriteString("   - Opening: One line stating the role you're applying for.\n")
	sb.WriteString("   - Value Proposition: 2-3 sentences highlighting ONLY relevant skills/experience FROM THE RESUME that match the JD.\n")
	sb.WriteString("   - Key Project: Mention 1-2 relevant projects FROM THE RESUME only. Keep it brief.\n")
	sb.WriteString("   - Closing: One line about attached resume + call to action.\n")
	sb.WriteString("   - Sign-off: Professional closing.\n")
	sb.WriteString("4. Formatting:\n")
	sb.WriteString("   - NO asterisks (*) anywhere.\n")
	sb.WriteString("   - No emojis.\n")
	sb.WriteString("   - Short paragraphs.\n")
	if c.linkedInURL != "" || c.gitHubURL != "" {
		sb.WriteString("   - Signature: Include these links:\n")
		if c.linkedInURL != "" {
			sb.WriteString(fmt.Sprintf("     LinkedIn: %s\n", c.linkedInURL))
		}
		if c.gitHubURL != "" {
			sb.WriteString(fmt.Sprintf("     GitHub: %s\n", c.gitHubURL))
		}
	}
	sb.WriteString("\n5. Output Format: Return valid JSON with three keys: \"subject\", \"body\", and \"job_title\".\n")
	sb.WriteString("   - \"subject\": Short, professional subject line (max 10 words).\n")
	sb.WriteString("   - \"body\": The plain text body of the email.\n")
	sb.WriteString("   - \"job_title\": The Job Title from the JD.\n")

	return sb.String()
}

func buildUserPrompt(jobDescription, resumeText string) string {
	var sb strings.Builder

	sb.WriteString("JOB DESCRIPTION:\n")
	sb.WriteString(jobDescription)
	sb.WriteString("\n\nRESUME CONTENT:\n")
	sb.WriteString(resumeText)
	sb.WriteString("\n\nGenerate the email in JSON format.\n")

	return sb.String()
}

// parseDraft extracts the draft from the model response
func parseDraft(response string) (models.EmailDraft, error) {
	startIdx := strings.Index(response, "{")
	endIdx := strings.LastIndex(response, "}")

	if startIdx == -1 || endIdx == -1 {
		return models.EmailDraft{}, fmt.Errorf("no JSON found in response")
	}

	var draft models.EmailDraft
	if err := json.Unmarshal([]byte(response[startIdx:endIdx+1]), &draft); err != nil {
		return models.EmailDraft{}, fmt.Errorf("failed to unmarshal JSON: %w", err)
	}

	if draft.Subject == "" || draft.Body == "" {
		return models.EmailDraft{}, fmt.Errorf("response is missing subject or body")
	}
	if draft.JobTitle == "" {
		draft.JobTitle = defaultJobTitle
	}

	return draft, nil
}
