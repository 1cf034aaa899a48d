package ai_services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"task-allocator/models"
	"task-allocator/utilities"
)

const codeFence = "```"

const milestonesServiceType = "generate_milestones"

// MilestoneGenerator monta o prompt, chama o modelo e interpreta o JSON.
type MilestoneGenerator struct {
	model   TextGenerator
	history HistoryLogger
}

func NewMilestoneGenerator(model TextGenerator, history HistoryLogger) *MilestoneGenerator {
	if history == nil {
		history = NopHistoryLogger{}
	}
	return &MilestoneGenerator{model: model, history: history}
}

// BuildMilestonesPrompt monta a instrução enviada ao modelo.
func BuildMilestonesPrompt(titles []string, description string) string {
	var sb strings.Builder
	sb.WriteString("You are an expert AI assistant specializing in project management and technical task analysis. ")
	sb.WriteString("Your role is to process the following task titles and description, and structure them for a project management system.\n\n")
	fmt.Fprintf(&sb, "Task Titles: %s\n", strings.Join(titles, ", "))
	fmt.Fprintf(&sb, "Task Description: %s\n\n", description)
	sb.WriteString("You must output a valid, raw JSON object that conforms to the following schema:\n\n")
	sb.WriteString(`{
  "projectSummary": {
    "title": "A concise summary of the task title.",
    "problem": "A brief description of the core problem to be solved.",
    "objective": "The primary goal of completing this task."
  },
  "taskAllocation": {
    "priority": "'Low', 'Medium', 'High', or 'Urgent'",
    "estimated_time_hours": "A numerical estimate of the hours required.",
    "required_skills": ["An array of strings listing relevant technical skills."],
    "suggested_assignee_profile": "A brief description of the ideal team member profile for this task."
  },
  "technicalNotes": {
    "implementation_hints": ["A list of suggestions or steps for implementation."],
    "resource_links": ["An array of relevant documentation or resource URLs."]
  }
}
`)
	return sb.String()
}

// StripCodeFence remove o bloco ``` em volta da resposta, se houver: a primeira
// e a última linha são descartadas.
func StripCodeFence(text string) string {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, codeFence) {
		return text
	}
	lines := strings.Split(text, "\n")
	if len(lines) < 2 {
		return ""
	}
	return strings.Join(lines[1:len(lines)-1], "\n")
}

// ParseMilestones interpreta o texto do modelo. Devolve também o texto limpo.
func ParseMilestones(text string) (*models.Milestones, string, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil, "", utilities.NewError(utilities.KindUpstreamEmpty, "Gemini API returned an empty response.")
	}

	cleaned := StripCodeFence(trimmed)
	var milestones models.Milestones
	if err := json.Unmarshal([]byte(cleaned), &milestones); err != nil {
		return nil, cleaned, utilities.WrapError(utilities.KindInvalidUpstreamFormat, "Invalid JSON response", err)
	}
	return &milestones, cleaned, nil
}

// GenerateMilestones chama o modelo uma vez. Duas chamadas iguais podem dar
// respostas diferentes.
func (g *MilestoneGenerator) GenerateMilestones(ctx context.Context, projectID string, titles []string, description string) (*models.Milestones, error) {
	prompt := BuildMilestonesPrompt(titles, description)
	utilities.LogDebug("GenerateMilestones: prompt enviado ao modelo:\n%s", prompt)

	entry := models.AIRequestHistoryEntry{
		AIServiceType: milestonesServiceType,
		ProjectID:     projectID,
		Timestamp:     time.Now(),
		Prompt:        prompt,
	}

	milestones, err := g.generate(ctx, prompt, &entry)
	if err != nil {
		entry.AIError = err.Error()
		entry.ErrorKind = string(utilities.KindOf(err))
	}
	g.history.LogAIInteraction(ctx, entry)
	return milestones, err
}

func (g *MilestoneGenerator) generate(ctx context.Context, prompt string, entry *models.AIRequestHistoryEntry) (*models.Milestones, error) {
	text, ok, err := g.model.GenerateText(ctx, prompt)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, utilities.NewError(utilities.KindUpstreamEmpty, "Gemini API returned an invalid response.")
	}
	entry.RawResponse = text
	utilities.LogDebug("GenerateMilestones: resposta bruta do modelo:\n%s", text)

	milestones, _, err := ParseMilestones(text)
	return milestones, err
}
