package handlers

import (
	"net/http"

	"task-allocator/models"

	"github.com/gorilla/mux"
)

type completeTaskResponse struct {
	Message string      `json:"message"`
	Task    models.Task `json:"task"`
}

// ListProjectTasksHandler lista as tarefas de um projeto.
// Rota: GET /projects/{project_id}/tasks
func (h *Handler) ListProjectTasksHandler(w http.ResponseWriter, r *http.Request) {
	tasks, err := h.tasks.ListProjectTasks(r.Context(), mux.Vars(r)["project_id"])
	if err != nil {
		writeError(w, err, "ListProjectTasksHandler: falha ao listar tarefas")
		return
	}
	writeJSON(w, http.StatusOK, tasks)
}

// CompleteTaskHandler marca uma tarefa como concluída.
// Rota: PUT /tasks/{task_id}/complete
func (h *Handler) CompleteTaskHandler(w http.ResponseWriter, r *http.Request) {
	task, err := h.tasks.CompleteTask(r.Context(), mux.Vars(r)["task_id"])
	if err != nil {
		writeError(w, err, "CompleteTaskHandler: falha ao concluir tarefa")
		return
	}
	writeJSON(w, http.StatusOK, completeTaskResponse{Message: "Task marked as completed.", Task: *task})
}

// PrintDBHandler devolve todos os documentos. Só para debug: sem paginação e sem auth.
// Rota: GET /print-db
func (h *Handler) PrintDBHandler(w http.ResponseWriter, r *http.Request) {
	dump, err := h.tasks.DumpDatabase(r.Context())
	if err != nil {
		writeError(w, err, "PrintDBHandler: falha ao ler o banco")
		return
	}
	writeJSON(w, http.StatusOK, dump)
}
