package handlers

import (
	"encoding/json"
	"net/http"

	"task-allocator/models"
	"task-allocator/utilities"
)

// SendMeetingInvitationHandler envia o convite de reunião por e-mail.
// Rota: POST /send-meeting-invitation
func (h *Handler) SendMeetingInvitationHandler(w http.ResponseWriter, r *http.Request) {
	var input models.MeetingInvitationRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utilities.LogError(err, "SendMeetingInvitationHandler: Erro ao decodificar JSON de entrada")
		writeBadRequest(w, "Invalid request body.")
		return
	}

	if err := h.meetings.SendInvitation(r.Context(), input); err != nil {
		writeError(w, err, "SendMeetingInvitationHandler: falha ao enviar convite")
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Message: "Meeting invitation sent successfully!"})
}
