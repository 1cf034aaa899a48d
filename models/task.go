package models

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type TaskStatus string

const (
	StatusPending   TaskStatus = "pending"
	StatusCompleted TaskStatus = "completed"
)

type Task struct {
	ID          primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name        string             `json:"name" bson:"name"`
	Description string             `json:"description" bson:"description"`
	ProjectID   primitive.ObjectID `json:"projectId" bson:"projectId"`
	Summary     string             `json:"summary" bson:"summary"`
	Priority    string             `json:"priority" bson:"priority"`
	Notes       string             `json:"notes" bson:"notes"`
	Skills      []string           `json:"skills" bson:"skills"`
	AssignedTo  primitive.ObjectID `json:"assignedTo" bson:"assignedTo"`
	Status      TaskStatus         `json:"status" bson:"status"`
	CreatedAt   time.Time          `json:"createdAt" bson:"createdAt"`
}

var validPriorities = map[string]bool{"low": true, "medium": true, "high": true, "urgent": true}

// NormalizePriority devolve a prioridade em minúsculas, ou "medium" se for
// vazia ou desconhecida.
func NormalizePriority(p string) string {
	p = strings.ToLower(strings.TrimSpace(p))
	if !validPriorities[p] {
		return "medium"
	}
	return p
}
