package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Project struct {
	ID          primitive.ObjectID   `json:"id" bson:"_id,omitempty"`
	Name        string               `json:"name" bson:"name"`
	Description string               `json:"description" bson:"description"`
	CompanyID   string               `json:"companyId,omitempty" bson:"companyId,omitempty"`
	Admin       primitive.ObjectID   `json:"admin,omitempty" bson:"Admin,omitempty"`
	DeadLine    time.Time            `json:"deadLine,omitempty" bson:"deadLine,omitempty"`
	Members     []primitive.ObjectID `json:"members" bson:"members"`
}
