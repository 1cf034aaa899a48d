package handlers

import (
	"io"
	"net/http"

	"task-allocator/utilities"
)

const maxAudioUpload = 32 << 20

type transcribeResponse struct {
	Text string `json:"text"`
}

// TranscribeHandler recebe um arquivo de áudio e devolve o texto reconhecido.
// Rota: POST /transcribe
func (h *Handler) TranscribeHandler(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxAudioUpload)
	if err := r.ParseMultipartForm(maxAudioUpload); err != nil {
		utilities.LogError(err, "TranscribeHandler: Erro ao ler formulário multipart")
		writeBadRequest(w, "Invalid multipart upload.")
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		writeBadRequest(w, "Field 'file' is required.")
		return
	}
	defer file.Close()

	audio, err := io.ReadAll(file)
	if err != nil {
		writeError(w, err, "TranscribeHandler: Erro ao ler arquivo enviado")
		return
	}
	utilities.LogDebug("TranscribeHandler: recebido %s (%d bytes)", header.Filename, len(audio))

	text, err := h.transcriber.Transcribe(r.Context(), audio)
	if err != nil {
		writeError(w, err, "TranscribeHandler: falha na transcrição")
		return
	}
	writeJSON(w, http.StatusOK, transcribeResponse{Text: text})
}
