// Package assignment escolhe o responsável por uma nova tarefa.
package assignment

import (
	"sort"
	"strings"

	"task-allocator/models"
)

// MaxOpenTasks é o limite de tarefas atribuídas; quem já tem esse número fica de fora.
const MaxOpenTasks = 3

// Candidate é um membro com a contagem de tarefas e o resultado do filtro de skills.
type Candidate struct {
	User             models.User
	OpenTaskCount    int
	HasMatchingSkill bool
}

// BuildCandidates monta a lista de candidatos na ordem de members.
// Membros com cargo de project manager são descartados aqui também.
// Sem requiredSkills o filtro de skills não se aplica.
func BuildCandidates(members []models.User, requiredSkills []string, openTasks func(models.User) int) []Candidate {
	candidates := make([]Candidate, 0, len(members))
	for _, m := range members {
		if m.IsProjectManager() {
			continue
		}
		candidates = append(candidates, Candidate{
			User:             m,
			OpenTaskCount:    openTasks(m),
			HasMatchingSkill: len(requiredSkills) == 0 || matchesSkill(m.Skills, requiredSkills),
		})
	}
	return candidates
}

// matchesSkill compara sem diferenciar maiúsculas, sem outra normalização.
func matchesSkill(skills, required []string) bool {
	for _, s := range skills {
		for _, r := range required {
			if strings.EqualFold(s, r) {
				return true
			}
		}
	}
	return false
}

// Eligible diz se o candidato pode receber a tarefa.
func (c Candidate) Eligible() bool {
	return c.OpenTaskCount < MaxOpenTasks && c.HasMatchingSkill
}

// Pick devolve o candidato elegível com menos tarefas. Empates ficam com o
// primeiro na ordem de entrada.
func Pick(candidates []Candidate) (*Candidate, bool) {
	eligible := make([]Candidate, 0, len(candidates))
	for _, c := range candidates {
		if c.Eligible() {
			eligible = append(eligible, c)
		}
	}
	if len(eligible) == 0 {
		return nil, false
	}
	sort.SliceStable(eligible, func(i, j int) bool {
		return eligible[i].OpenTaskCount < eligible[j].OpenTaskCount
	})
	return &eligible[0], true
}

// SelectAssignee combina BuildCandidates e Pick. Retorna false quando ninguém
// é elegível.
func SelectAssignee(members []models.User, requiredSkills []string, openTasks func(models.User) int) (*models.User, bool) {
	chosen, ok := Pick(BuildCandidates(members, requiredSkills, openTasks))
	if !ok {
		return nil, false
	}
	user := chosen.User
	return &user, true
}
