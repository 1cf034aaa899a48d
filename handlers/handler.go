package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"task-allocator/models"
	"task-allocator/services"
	"task-allocator/utilities"
)

type TaskOperations interface {
	GenerateAndAssign(ctx context.Context, req models.GenerateMilestonesRequest) (*services.CreateTaskResult, error)
	ListProjectTasks(ctx context.Context, projectID string) ([]models.Task, error)
	CompleteTask(ctx context.Context, taskID string) (*models.Task, error)
	DumpDatabase(ctx context.Context) (*models.DatabaseDump, error)
}

type MeetingOperations interface {
	SendInvitation(ctx context.Context, req models.MeetingInvitationRequest) error
}

type Transcriber interface {
	Transcribe(ctx context.Context, audio []byte) (string, error)
}

// Handler agrupa as dependências de todas as rotas.
type Handler struct {
	tasks       TaskOperations
	meetings    MeetingOperations
	transcriber Transcriber
}

func New(tasks TaskOperations, meetings MeetingOperations, transcriber Transcriber) *Handler {
	return &Handler{tasks: tasks, meetings: meetings, transcriber: transcriber}
}

type errorResponse struct {
	Detail string `json:"detail"`
}

type messageResponse struct {
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		utilities.LogError(err, "Erro ao codificar resposta JSON")
	}
}

// writeError converte o erro em status HTTP pelo seu tipo.
func writeError(w http.ResponseWriter, err error, context string) {
	status, detail := utilities.StatusAndDetail(err)
	if status >= http.StatusInternalServerError {
		utilities.LogError(err, context)
	} else {
		utilities.LogDebug("%s: %v", context, err)
	}
	writeJSON(w, status, errorResponse{Detail: detail})
}

func writeBadRequest(w http.ResponseWriter, detail string) {
	writeJSON(w, http.StatusBadRequest, errorResponse{Detail: detail})
}

// Health responde ao probe de liveness.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
