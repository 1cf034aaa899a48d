package main

import (
	"net/http"

	"task-allocator/handlers"
	"task-allocator/utilities"

	gorillahandlers "github.com/gorilla/handlers"
	"github.com/gorilla/mux"
)

// NewRouter registra as rotas e aplica CORS.
func NewRouter(h *handlers.Handler, allowedOrigins []string) http.Handler {
	r := mux.NewRouter()

	r.Use(handlers.RecoveryMiddleware)
	r.Use(handlers.LoggingMiddleware)

	// --- Transcrição e IA ---
	r.HandleFunc("/transcribe", h.TranscribeHandler).Methods("POST")
	r.HandleFunc("/generate-milestones", h.GenerateMilestonesHandler).Methods("POST")

	// --- Reuniões ---
	r.HandleFunc("/send-meeting-invitation", h.SendMeetingInvitationHandler).Methods("POST")

	// --- Tarefas ---
	r.HandleFunc("/projects/{project_id}/tasks", h.ListProjectTasksHandler).Methods("GET")
	r.HandleFunc("/tasks/{task_id}/complete", h.CompleteTaskHandler).Methods("PUT")

	// --- Debug e saúde ---
	r.HandleFunc("/print-db", h.PrintDBHandler).Methods("GET")
	r.HandleFunc("/health", h.Health).Methods("GET")

	// Configuração do CORS
	headers := gorillahandlers.AllowedHeaders([]string{"X-Requested-With", "Content-Type", "Authorization"})
	methods := gorillahandlers.AllowedMethods([]string{"GET", "POST", "PUT", "OPTIONS"})

	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"*"}
		utilities.LogInfo("CORS_ALLOWED_ORIGINS não definida, permitindo todas as origens ('*'). Defina para maior segurança em produção.")
	}
	origins := gorillahandlers.AllowedOrigins(allowedOrigins)
	utilities.LogInfo("Configurando CORS com origens permitidas: %v", allowedOrigins)

	return gorillahandlers.CORS(headers, methods, origins)(r)
}
