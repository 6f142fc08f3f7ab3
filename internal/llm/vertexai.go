package llm

import (
	"context"
	"fmt"
	"os"

	"cloud.google.com/go/vertexai/genai"
)

// Generator is the text-generation contract the pipeline depends on.
// Implementations take a system instruction plus a user payload and return
// the raw JSON text of the model's reply.
type Generator interface {
	GenerateJSON(ctx context.Context, system, user string) (string, error)
	Close() error
}

// VertexAIClient wraps the Vertex AI Gemini API
type VertexAIClient struct {
	client    *genai.Client
	projectID string
	location  string
	modelName string
}

// NewVertexAIClient creates a new Vertex AI client. Project and location are
// taken from GOOGLE_CLOUD_PROJECT / GOOGLE_CLOUD_LOCATION.
func NewVertexAIClient(ctx context.Context) (*VertexAIClient, error) {
	projectID := os.Getenv("GOOGLE_CLOUD_PROJECT")
	if projectID == "" {
		return nil, fmt.Errorf("GOOGLE_CLOUD_PROJECT environment variable not set")
	}

	location := os.Getenv("GOOGLE_CLOUD_LOCATION")
	if location == "" {
		location = "us-central1" // Default location
	}

	client, err := genai.NewClient(ctx, projectID, location)
	if err != nil {
		return nil, fmt.Errorf("failed to create Vertex AI client: %w", err)
	}

	return &VertexAIClient{
		client:    client,
		projectID: projectID,
		location:  location,
		modelName: "gemini-1.5-flash",
	}, nil
}

// GenerateJSON sends a system instruction and user payload to the model and
// returns the response text with any markdown code fences stripped.
func (v *VertexAIClient) GenerateJSON(ctx context.Context, system, user string) (string, error) {
	model := v.client.GenerativeModel(v.modelName)

	// Low temperature for consistent structured output
	model.SetTemperature(0.2)
	model.SetTopK(40)
	model.SetTopP(0.95)
	model.SetMaxOutputTokens(2048)
	model.GenerationConfig.ResponseMIMEType = "application/json"

	if system != "" {
		model.SystemInstruction = &genai.Content{
			Parts: []genai.Part{genai.Text(system)},
		}
	}

	resp, err := model.GenerateContent(ctx, genai.Text(user))
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}

	result, err := candidateText(resp)
	if err != nil {
		return "", err
	}

	return CleanJSONBlock(result), nil
}

// candidateText concatenates the text parts of the first candidate. A
// safety-blocked candidate carries no content at all; that comes back as an
// error, not a panic, so callers can take their degradation paths.
func candidateText(resp *genai.GenerateContentResponse) (string, error) {
	if len(resp.Candidates) == 0 {
		return "", fmt.Errorf("no response candidates returned")
	}

	candidate := resp.Candidates[0]
	if candidate.Content == nil {
		return "", fmt.Errorf("response candidate has no content (finish reason %v)", candidate.FinishReason)
	}

	var result string
	for _, part := range candidate.Content.Parts {
		if text, ok := part.(genai.Text); ok {
			result += string(text)
		}
	}

	return result, nil
}

// Close closes the Vertex AI client
func (v *VertexAIClient) Close() error {
	return v.client.Close()
}
