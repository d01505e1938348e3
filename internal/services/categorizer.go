package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/maxaizer/jobhub-importer/internal/domain/models"
)

const maxPromptDescriptionLength = 3000

// CategorizerInstruction frames the model for Categorizer prompts.
const CategorizerInstruction = "You are a professional technical recruiter and data analyst. " +
	"You answer with a single JSON object and nothing else."

type aiClient interface {
	GenerateResponse(ctx context.Context, request string) (string, error)
}

// Categorizer asks the AI model for the structured attributes of a posting.
type Categorizer struct {
	aiClient aiClient
}

func NewCategorizer(aiClient aiClient) *Categorizer {
	return &Categorizer{aiClient: aiClient}
}

func (c *Categorizer) Categorize(ctx context.Context, title, description string) (*models.RawCategorization, error) {
	response, err := c.aiClient.GenerateResponse(ctx, categorizationRequest(title, description))
	if err != nil {
		return nil, err
	}

	var result models.RawCategorization
	if err := json.Unmarshal([]byte(stripCodeFence(response)), &result); err != nil {
		return nil, fmt.Errorf("unexpected response %q: %w", truncate(response, 200), err)
	}
	return &result, nil
}

func categorizationRequest(title, description string) string {
	return "Analyze the following job posting and extract the required information in JSON format.\n\n" +
		"Job Title: " + title + "\n" +
		"Job Description: " + truncate(description, maxPromptDescriptionLength) + "\n\n" +
		"Extract the following fields:\n" +
		"- language: The primary language of the job posting as an ISO 639-1 code (e.g. \"en\", \"it\", \"es\", \"fr\", \"de\")\n" +
		"- technical_skills: A list of mandatory technical skills (languages, frameworks, tools)\n" +
		"- requirements: A list of other mandatory requirements (education, years of experience, soft skills)\n" +
		"- benefits: A list of benefits provided (e.g. \"health insurance\", \"remote work\", \"bonus\")\n" +
		"- salary_min: Estimate of minimum annual salary in EUR (integer), or null if not available\n" +
		"- salary_max: Estimate of maximum annual salary in EUR (integer), or null if not available\n" +
		"- seniority: The required seniority level: \"Intern\", \"Junior\", \"Mid\", \"Senior\", \"Lead\", \"Principal\" or \"Unknown\"\n" +
		"- employment_type: \"Full-time\", \"Part-time\", \"Contract\", \"Freelance\", \"Internship\" or \"Unknown\"\n" +
		"- remote: Boolean, true if the job is remote or hybrid\n" +
		"- formatted_address: The full address of the job location if available, otherwise null\n" +
		"- city: The city of the job location as a single string if available, otherwise null\n" +
		"- country: The country of the job location if available, otherwise null\n\n" +
		"Return ONLY valid JSON."
}

// stripCodeFence removes the ```json fence some models wrap around their answer.
func stripCodeFence(response string) string {
	response = strings.TrimSpace(response)
	if !strings.HasPrefix(response, "```") {
		return response
	}
	response = strings.TrimPrefix(response, "```")
	if newline := strings.IndexByte(response, '\n'); newline >= 0 {
		response = response[newline+1:]
	}
	return strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(response), "```"))
}

func truncate(text string, maxRunes int) string {
	runes := []rune(text)
	if len(runes) <= maxRunes {
		return text
	}
	return string(runes[:maxRunes])
}
