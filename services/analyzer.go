package services

import (
	"context"
	"fmt"

	"github.com/VineethSendilraj/COPilot/models"
	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// AnalyzerService produces a free-text narrative for an incident via the
// language model. Its output is advisory only: the deterministic insight
// rules never depend on it and its failure must not suppress them.
type AnalyzerService struct {
	client *genai.Client
}

func NewAnalyzerService(ctx context.Context, apiKey string) (*AnalyzerService, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("analyzer requires an API key")
	}
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}
	return &AnalyzerService{client: client}, nil
}

func (s *AnalyzerService) Close() error {
	return s.client.Close()
}

// AnalyzeIncident asks the model for a risk assessment and recommendations
// for one incident.
func (s *AnalyzerService) AnalyzeIncident(ctx context.Context, incident *models.Incident) (string, error) {
	officerName := "Unknown"
	if incident.Officer != nil {
		officerName = incident.Officer.Name
	}
	description := incident.Description
	if description == "" {
		description = "No description"
	}

	prompt := fmt.Sprintf(`Analyze this incident and provide recommendations:

Incident ID: %s
Officer: %s
Escalation Type: %s
Risk Level: %s
Description: %s
Created: %s

Please provide:
1. Risk assessment
2. Recommended actions
3. Resource requirements
4. Safety considerations`,
		incident.ID, officerName, incident.EscalationType,
		incident.RiskLevel, description, incident.CreatedAt.Format("2006-01-02T15:04:05Z07:00"))

	model := s.client.GenerativeModel("gemini-1.5-flash")
	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("generation failed: %w", err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("generation returned no candidates")
	}

	var out string
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			out += string(text)
		}
	}
	if out == "" {
		return "", fmt.Errorf("generation returned no text")
	}
	return out, nil
}
