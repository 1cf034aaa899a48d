package assignment

import (
	"testing"

	"task-allocator/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func newUser(name, position string, skills ...string) models.User {
	return models.User{ID: primitive.NewObjectID(), Name: name, Position: position, Skills: skills}
}

func countsByName(counts map[string]int) func(models.User) int {
	return func(u models.User) int { return counts[u.Name] }
}

func TestSelectAssignee_LowerCountWins(t *testing.T) {
	a := newUser("A", "developer", "python")
	b := newUser("B", "developer", "python")

	got, ok := SelectAssignee([]models.User{a, b}, []string{"python"}, countsByName(map[string]int{"A": 2, "B": 1}))
	if !ok {
		t.Fatal("expected an assignee")
	}
	if got.Name != "B" {
		t.Errorf("expected B, got %s", got.Name)
	}
}

func TestSelectAssignee_TieKeepsInputOrder(t *testing.T) {
	members := []models.User{
		newUser("first", "developer", "go"),
		newUser("second", "developer", "go"),
		newUser("third", "developer", "go"),
	}
	got, ok := SelectAssignee(members, []string{"go"}, func(models.User) int { return 1 })
	if !ok {
		t.Fatal("expected an assignee")
	}
	if got.Name != "first" {
		t.Errorf("expected first, got %s", got.Name)
	}
}

func TestSelectAssignee_NeverPicksProjectManager(t *testing.T) {
	members := []models.User{
		newUser("pm", "Project Manager", "python"),
		newUser("dev", "developer", "python"),
	}
	counts := map[string]int{"pm": 0, "dev": 2}

	got, ok := SelectAssignee(members, []string{"python"}, countsByName(counts))
	if !ok {
		t.Fatal("expected an assignee")
	}
	if got.Name != "dev" {
		t.Errorf("expected dev, got %s", got.Name)
	}

	if _, ok := SelectAssignee(members[:1], nil, countsByName(counts)); ok {
		t.Error("project manager must not be selected")
	}
}

func TestSelectAssignee_NoEligible(t *testing.T) {
	tests := []struct {
		name    string
		members []models.User
		skills  []string
		counts  map[string]int
	}{
		{
			name:    "all at threshold",
			members: []models.User{newUser("A", "dev", "python"), newUser("B", "dev", "python")},
			skills:  []string{"python"},
			counts:  map[string]int{"A": 3, "B": 4},
		},
		{
			name:    "no matching skill",
			members: []models.User{newUser("A", "dev", "java")},
			skills:  []string{"python"},
			counts:  map[string]int{"A": 0},
		},
		{
			name:    "empty member list",
			members: nil,
			skills:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got, ok := SelectAssignee(tt.members, tt.skills, countsByName(tt.counts)); ok {
				t.Errorf("expected no assignee, got %s", got.Name)
			}
		})
	}
}

func TestSelectAssignee_EmptySkillsMatchesEveryone(t *testing.T) {
	members := []models.User{newUser("noskills", "dev"), newUser("other", "dev", "rust")}
	got, ok := SelectAssignee(members, []string{}, countsByName(map[string]int{"noskills": 2, "other": 0}))
	if !ok {
		t.Fatal("expected an assignee")
	}
	if got.Name != "other" {
		t.Errorf("expected other, got %s", got.Name)
	}

	cands := BuildCandidates(members, nil, countsByName(nil))
	for _, c := range cands {
		if !c.HasMatchingSkill {
			t.Errorf("%s should match when no skills are required", c.User.Name)
		}
	}
}

func TestSelectAssignee_CaseInsensitiveSkills(t *testing.T) {
	members := []models.User{newUser("A", "dev", "Python")}
	if _, ok := SelectAssignee(members, []string{"python"}, countsByName(nil)); !ok {
		t.Error("expected Python to match python")
	}
	if _, ok := SelectAssignee(members, []string{"PYTHON", "go"}, countsByName(nil)); !ok {
		t.Error("expected Python to match PYTHON")
	}
}

func TestPick_SkipsIneligibleEvenWithLowerCount(t *testing.T) {
	cands := []Candidate{
		{User: models.User{Name: "noskill"}, OpenTaskCount: 0, HasMatchingSkill: false},
		{User: models.User{Name: "busy"}, OpenTaskCount: 3, HasMatchingSkill: true},
		{User: models.User{Name: "ok"}, OpenTaskCount: 2, HasMatchingSkill: true},
	}
	got, ok := Pick(cands)
	if !ok || got.User.Name != "ok" {
		t.Fatalf("expected ok, got %+v", got)
	}
}

func TestSelectAssignee_BlankRequiredSkillStillFilters(t *testing.T) {
	members := []models.User{newUser("dev", "developer", "java")}

	if _, ok := SelectAssignee(members, []string{""}, func(models.User) int { return 0 }); ok {
		t.Error("a blank required skill must not disable the skill filter")
	}
}

func TestSelectAssignee_SkillMatchIsExactApartFromCase(t *testing.T) {
	members := []models.User{newUser("dev", "developer", "python")}
	none := func(models.User) int { return 0 }

	if _, ok := SelectAssignee(members, []string{" python "}, none); ok {
		t.Error("padded skill should not match")
	}
	if _, ok := SelectAssignee(members, []string{"PYTHON"}, none); !ok {
		t.Error("case-insensitive match expected")
	}
}
