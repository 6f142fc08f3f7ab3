package llm

import (
	"testing"

	"cloud.google.com/go/vertexai/genai"
)

func TestCandidateText(t *testing.T) {
	tests := []struct {
		name    string
		resp    *genai.GenerateContentResponse
		want    string
		wantErr bool
	}{
		{
			name:    "No candidates",
			resp:    &genai.GenerateContentResponse{},
			wantErr: true,
		},
		{
			name: "Safety-blocked candidate has nil content",
			resp: &genai.GenerateContentResponse{
				Candidates: []*genai.Candidate{
					{FinishReason: genai.FinishReasonSafety},
				},
			},
			wantErr: true,
		},
		{
			name: "Text parts concatenated",
			resp: &genai.GenerateContentResponse{
				Candidates: []*genai.Candidate{
					{
						Content: &genai.Content{
							Parts: []genai.Part{genai.Text(`{"subject":`), genai.Text(`"Hi"}`)},
						},
					},
				},
			},
			want: `{"subject":"Hi"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := candidateText(tt.resp)
			if (err != nil) != tt.wantErr {
				t.Fatalf("candidateText() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("candidateText() = %q, want %q", got, tt.want)
			}
		})
	}
}
