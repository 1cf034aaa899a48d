package models

import (
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PositionProjectManager é o cargo que nunca recebe tarefas automaticamente.
const PositionProjectManager = "project manager"

type User struct {
	ID         primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name       string             `json:"name" bson:"name"`
	Email      string             `json:"email" bson:"email"`
	CompanyID  string             `json:"companyId,omitempty" bson:"companyId,omitempty"`
	Skills     []string           `json:"skills" bson:"skills"`
	Position   string             `json:"position" bson:"position"`
	Experience int                `json:"experience,omitempty" bson:"experience,omitempty"`
}

// IsProjectManager compara o cargo sem diferenciar maiúsculas.
func (u User) IsProjectManager() bool {
	return strings.EqualFold(strings.TrimSpace(u.Position), PositionProjectManager)
}
