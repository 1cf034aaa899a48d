package ai_services

import (
	"context"

	"task-allocator/models"
	"task-allocator/utilities"

	"cloud.google.com/go/firestore"
)

const aiHistoryCollection = "ai_request_history"

// HistoryLogger registra cada interação com a IA. Falhas nunca interrompem o fluxo.
type HistoryLogger interface {
	LogAIInteraction(ctx context.Context, entry models.AIRequestHistoryEntry)
}

// NopHistoryLogger é usado quando o Firestore não está configurado.
type NopHistoryLogger struct{}

func (NopHistoryLogger) LogAIInteraction(context.Context, models.AIRequestHistoryEntry) {}

// FirestoreHistoryLogger grava o histórico na coleção ai_request_history.
type FirestoreHistoryLogger struct {
	client *firestore.Client
}

func NewFirestoreHistoryLogger(client *firestore.Client) *FirestoreHistoryLogger {
	return &FirestoreHistoryLogger{client: client}
}

// LogAIInteraction registra uma interação com a API de IA no Firestore.
func (l *FirestoreHistoryLogger) LogAIInteraction(ctx context.Context, entry models.AIRequestHistoryEntry) {
	docRef, _, err := l.client.Collection(aiHistoryCollection).Add(ctx, entry)
	if err != nil {
		utilities.LogError(err, "LogAIInteraction: Falha ao salvar histórico de IA para o projeto "+entry.ProjectID)
		return
	}
	utilities.LogDebug("LogAIInteraction: Histórico de IA salvo com ID %s", docRef.ID)
}
