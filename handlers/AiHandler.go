package handlers

import (
	"encoding/json"
	"net/http"

	"task-allocator/models"
	"task-allocator/utilities"
)

// GenerateMilestonesHandler analisa a tarefa com a IA, atribui a um membro e grava.
// Rota: POST /generate-milestones
func (h *Handler) GenerateMilestonesHandler(w http.ResponseWriter, r *http.Request) {
	var input models.GenerateMilestonesRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utilities.LogError(err, "GenerateMilestonesHandler: Erro ao decodificar JSON de entrada")
		writeBadRequest(w, "Invalid request body.")
		return
	}

	utilities.LogInfo("GenerateMilestonesHandler: gerando milestones para o projeto %s", input.ProjectID)

	result, err := h.tasks.GenerateAndAssign(r.Context(), input)
	if err != nil {
		writeError(w, err, "GenerateMilestonesHandler: falha ao gerar e atribuir tarefa")
		return
	}

	m := result.Milestones
	writeJSON(w, http.StatusOK, models.GenerateMilestonesResponse{
		Summary:                  result.Task.Summary,
		Priority:                 result.Task.Priority,
		Notes:                    result.Task.Notes,
		TechnicalSkills:          result.Task.Skills,
		SuggestedAssigneeProfile: m.TaskAllocation.SuggestedAssigneeProfile,
		MilestonesRaw:            *m,
		TaskID:                   result.Task.ID.Hex(),
		AssignedTo:               result.Assignee.ID.Hex(),
	})
}
