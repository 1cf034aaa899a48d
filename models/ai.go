package models

import "time"

// AIRequestHistoryEntry representa um registro de requisição à IA no Firestore.
type AIRequestHistoryEntry struct {
	AIServiceType string    `firestore:"ai_service_type"` // ex: "generate_milestones"
	ProjectID     string    `firestore:"project_id,omitempty"`
	Timestamp     time.Time `firestore:"timestamp"`
	Prompt        string    `firestore:"prompt"`
	RawResponse   string    `firestore:"raw_response,omitempty"`
	AIError       string    `firestore:"ai_error,omitempty"`
	ErrorKind     string    `firestore:"error_kind,omitempty"`
}

// DatabaseDump é a resposta de GET /print-db.
type DatabaseDump struct {
	Projects []Project `json:"projects"`
	Users    []User    `json:"users"`
	Tasks    []Task    `json:"tasks"`
}
