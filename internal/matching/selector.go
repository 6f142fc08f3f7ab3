// Package matching selects the best-fit resume for a job description.
package matching

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/mmshah/job-apply-agent/internal/llm"
	"github.com/mmshah/job-apply-agent/internal/models"
)

// ErrEmptyResumeSet signals a caller error: selection needs at least one resume.
var ErrEmptyResumeSet = errors.New("resume set is empty")

// Selector ranks resumes against a job description using an LLM
type Selector struct {
	generator llm.Generator
}

// NewSelector creates a new selector. A nil generator is allowed; selection
// then always takes the deterministic fallback path.
func NewSelector(generator llm.Generator) *Selector {
	return &Selector{
		generator: generator,
	}
}

// Select chooses the best resume for the job description. With a single
// candidate no model call is made. With several, one ranking call is issued;
// any failure (transport, parsing, unknown resume name) degrades to the first
// resume in insertion order with the failure embedded in the reason. The only
// error returned is ErrEmptyResumeSet.
func (s *Selector) Select(ctx context.Context, jobDescription string, resumes *models.ResumeSet) (models.SelectionVerdict, error) {
	if resumes == nil || resumes.Len() == 0 {
		return models.SelectionVerdict{}, ErrEmptyResumeSet
	}

	names := resumes.Names()
	if len(names) == 1 {
		return models.SelectionVerdict{
			ResumeName: names[0],
			Reason:     "only candidate",
		}, nil
	}

	if s.generator == nil {
		return s.fallback(resumes, fmt.Errorf("model client not configured")), nil
	}

	response, err := s.generator.GenerateJSON(ctx, selectionSystemPrompt, s.buildSelectionPrompt(jobDescription, resumes))
	if err != nil {
		return s.fallback(resumes, err), nil
	}

	verdict, err := parseVerdict(response)
	if err != nil {
		return s.fallback(resumes, err), nil
	}

	if !resumes.Has(verdict.ResumeName) {
		return s.fallback(resumes, fmt.Errorf("model selected unknown resume %q", verdict.ResumeName)), nil
	}

	return verdict, nil
}

// fallback returns the first resume in insertion order with the failure
// disclosed in the reason. Selection must always yield a valid verdict.
func (s *Selector) fallback(resumes *models.ResumeSet, cause error) models.SelectionVerdict {
	log.Printf("Resume matching failed, defaulting to first resume: %v", cause)
	return models.SelectionVerdict{
		ResumeName: resumes.First(),
		Reason:     fmt.Sprintf("Error in resume matching: %v. Defaulted to first resume.", cause),
	}
}

const selectionSystemPrompt = `You are an expert HR recruiter and technical hiring manager.
Your task is to analyze a Job Description and a list of candidate resumes.
You must determine which resume is the BEST fit for the job description based on skills, experience, and keywords.

Output Format:
Return strictly a JSON object with the following keys:
- "best_resume_name": The exact name of the selected resume.
- "reason": A short explanation of why this resume was chosen.`

// buildSelectionPrompt concatenates the job description with every resume,
// each delimited by its name so the model can reference them exactly.
func (s *Selector) buildSelectionPrompt(jobDescription string, resumes *models.ResumeSet) string {
	var sb strings.Builder

	sb.WriteString("JOB DESCRIPTION:\n")
	sb.WriteString(jobDescription)
	sb.WriteString("\n\nCANDIDATE RESUMES:\n")

	for _, name := range resumes.Names() {
		text, _ := resumes.Text(name)
		sb.WriteString(fmt.Sprintf("--- RESUME: %s ---\n", name))
		sb.WriteString(text)
		sb.WriteString("\n\n")
	}

	sb.WriteString("Analyze and return the JSON.\n")

	return sb.String()
}

// parseVerdict extracts the selection verdict from the model response
func parseVerdict(response string) (models.SelectionVerdict, error) {
	// Find JSON in response (in case there's extra text)
	startIdx := strings.Index(response, "{")
	endIdx := strings.LastIndex(response, "}")

	if startIdx == -1 || endIdx == -1 {
		return models.SelectionVerdict{}, fmt.Errorf("no JSON found in response")
	}

	var parsed struct {
		BestResumeName string `json:"best_resume_name"`
		Reason         string `json:"reason"`
	}
	if err := json.Unmarshal([]byte(response[startIdx:endIdx+1]), &parsed); err != nil {
		return models.SelectionVerdict{}, fmt.Errorf("failed to unmarshal JSON: %w", err)
	}

	return models.SelectionVerdict{
		ResumeName: parsed.BestResumeName,
		Reason:     parsed.Reason,
	}, nil
}
