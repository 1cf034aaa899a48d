package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"task-allocator/ai_services"
	"task-allocator/database"
	"task-allocator/firebase"
	"task-allocator/handlers"
	"task-allocator/mailer"
	"task-allocator/services"
	"task-allocator/transcription"
	"task-allocator/utilities"
)

func main() {
	cfg, err := utilities.LoadConfig()
	if err != nil {
		log.Fatalf("Erro ao carregar configuração: %v", err)
	}
	utilities.InitLogger(cfg.LogLevel, cfg.LogFile)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	mongoClient, err := database.ConnectMongo(ctx, cfg.MongoURI)
	if err != nil {
		log.Fatalf("Erro ao conectar ao MongoDB: %v", err)
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := mongoClient.Disconnect(disconnectCtx); err != nil {
			utilities.LogError(err, "Erro ao desconectar do MongoDB")
		}
	}()
	store := database.NewMongoStore(mongoClient.Database(cfg.MongoDBName))

	gemini, err := ai_services.NewGeminiClient(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
	if err != nil {
		log.Fatalf("Erro ao criar cliente Gemini: %v", err)
	}

	// Histórico de IA só é gravado com credenciais do Firebase.
	var history ai_services.HistoryLogger = ai_services.NopHistoryLogger{}
	if cfg.FirebaseCredentialsPath != "" {
		fsClient, err := firebase.GetFirestoreClient(ctx, cfg.FirebaseCredentialsPath)
		if err != nil {
			utilities.LogError(err, "Firestore indisponível, histórico de IA desativado")
		} else {
			defer fsClient.Close()
			history = ai_services.NewFirestoreHistoryLogger(fsClient)
		}
	}

	var recorder services.InvitationRecorder
	if cfg.PostgresEnabled {
		db, err := database.ConnectPostgres()
		if err != nil {
			log.Fatalf("Erro ao conectar ao banco de dados: %v", err)
		}
		defer db.Close()
		invitations, err := database.NewInvitationLog(ctx, db)
		if err != nil {
			log.Fatalf("Erro ao preparar tabela de convites: %v", err)
		}
		recorder = invitations
	}

	mail := mailer.New(mailer.Config{
		Host:     cfg.SMTPHost,
		Port:     cfg.SMTPPort,
		Username: cfg.EmailUser,
		Password: cfg.EmailPassword,
	})
	whisper := transcription.NewWhisper(transcription.Config{
		URL:      cfg.WhisperURL,
		TempPath: cfg.WhisperTempPath,
		Timeout:  cfg.WhisperTimeout,
	})

	taskService := services.NewTaskService(store, ai_services.NewMilestoneGenerator(gemini, history), mail)
	meetingService := services.NewMeetingService(mail, recorder)
	h := handlers.New(taskService, meetingService, whisper)

	srv := &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           NewRouter(h, cfg.CORSAllowedOrigins),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		utilities.LogInfo("Servidor iniciado na porta %s", cfg.ServerPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			utilities.LogError(err, "Erro no servidor HTTP")
			stop()
		}
	}()

	<-ctx.Done()
	utilities.LogInfo("Encerrando servidor...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		utilities.LogError(err, "Erro ao encerrar servidor")
	}
}
