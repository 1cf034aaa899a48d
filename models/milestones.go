package models

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Milestones é o objeto JSON que a IA deve devolver.
type Milestones struct {
	ProjectSummary ProjectSummary `json:"projectSummary"`
	TaskAllocation TaskAllocation `json:"taskAllocation"`
	TechnicalNotes TechnicalNotes `json:"technicalNotes"`
}

type ProjectSummary struct {
	Title     string `json:"title"`
	Problem   string `json:"problem"`
	Objective string `json:"objective"`
}

type TaskAllocation struct {
	Priority string `json:"priority"`
	// A IA às vezes devolve número, às vezes string
	EstimatedTimeHours       interface{} `json:"estimated_time_hours"`
	RequiredSkills           []string    `json:"required_skills"`
	SuggestedAssigneeProfile string      `json:"suggested_assignee_profile"`
}

type TechnicalNotes struct {
	ImplementationHints []string `json:"implementation_hints"`
	ResourceLinks       []string `json:"resource_links"`
}

const defaultSummary = "No summary provided by AI."

// Summary escolhe o texto de resumo da tarefa.
func (m *Milestones) Summary() string {
	if s := strings.TrimSpace(m.ProjectSummary.Objective); s != "" {
		return s
	}
	if s := strings.TrimSpace(m.ProjectSummary.Title); s != "" {
		return s
	}
	return defaultSummary
}

// Priority devolve a prioridade normalizada ("medium" se ausente).
func (m *Milestones) Priority() string {
	return NormalizePriority(m.TaskAllocation.Priority)
}

// Skills nunca devolve nil.
func (m *Milestones) Skills() []string {
	skills := make([]string, 0, len(m.TaskAllocation.RequiredSkills))
	for _, s := range m.TaskAllocation.RequiredSkills {
		if s = strings.TrimSpace(s); s != "" {
			skills = append(skills, s)
		}
	}
	return skills
}

// Notes junta as dicas de implementação em texto livre.
func (m *Milestones) Notes() string {
	return strings.Join(m.TechnicalNotes.ImplementationHints, "\n")
}

// Titles aceita tanto uma string quanto uma lista de strings no JSON.
type Titles []string

func (t *Titles) UnmarshalJSON(data []byte) error {
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		if strings.TrimSpace(single) == "" {
			*t = nil
		} else {
			*t = Titles{single}
		}
		return nil
	}
	var many []string
	if err := json.Unmarshal(data, &many); err != nil {
		return fmt.Errorf("titles deve ser string ou lista de strings: %w", err)
	}
	*t = Titles(many)
	return nil
}

// GenerateMilestonesRequest é o corpo de POST /generate-milestones.
// ProjectID vem primeiro para ser o primeiro campo validado.
type GenerateMilestonesRequest struct {
	ProjectID   string `json:"project_id" validate:"required,hexadecimal,len=24"`
	Titles      Titles `json:"titles" validate:"required,min=1"`
	Description string `json:"description" validate:"required"`
}

// GenerateMilestonesResponse é a resposta de sucesso de POST /generate-milestones.
type GenerateMilestonesResponse struct {
	Summary                  string     `json:"summary"`
	Priority                 string     `json:"priority"`
	Notes                    string     `json:"notes"`
	TechnicalSkills          []string   `json:"technical_skills"`
	SuggestedAssigneeProfile string     `json:"suggested_assignee_profile"`
	MilestonesRaw            Milestones `json:"milestones_raw"`
	TaskID                   string     `json:"task_id"`
	AssignedTo               string     `json:"assigned_to"`
}
