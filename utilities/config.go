package utilities

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// ErrMissingAIKey é retornado quando GEMINI_API_KEY não está definida.
var ErrMissingAIKey = errors.New("GEMINI_API_KEY não está definida nas variáveis de ambiente")

// Config reúne todas as configurações lidas do ambiente.
type Config struct {
	ServerPort         string
	CORSAllowedOrigins []string

	GeminiAPIKey string
	GeminiModel  string

	MongoURI    string
	MongoDBName string

	SMTPHost      string
	SMTPPort      string
	EmailUser     string
	EmailPassword string

	WhisperURL      string
	WhisperTempPath string
	WhisperTimeout  time.Duration

	FirebaseCredentialsPath string

	// PostgreSQL é opcional; sem DB_HOST o registro de convites fica desligado.
	PostgresEnabled bool

	LogLevel string
	LogFile  string
}

// LoadConfig carrega o .env (se existir) e monta a Config.
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, err
	}
	return ConfigFromEnv()
}

// ConfigFromEnv lê a configuração apenas das variáveis de ambiente.
func ConfigFromEnv() (*Config, error) {
	cfg := &Config{
		ServerPort:              getEnv("SERVER_PORT", "8080"),
		GeminiAPIKey:            os.Getenv("GEMINI_API_KEY"),
		GeminiModel:             getEnv("GEMINI_MODEL", "gemini-1.5-flash"),
		MongoURI:                getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDBName:             getEnv("MONGO_DB_NAME", "task_allocator"),
		SMTPHost:                getEnv("SMTP_HOST", "smtp.gmail.com"),
		SMTPPort:                getEnv("SMTP_PORT", "465"),
		EmailUser:               os.Getenv("EMAIL_USER"),
		EmailPassword:           os.Getenv("EMAIL_PASSWORD"),
		WhisperURL:              getEnv("WHISPER_URL", "http://localhost:8387"),
		WhisperTempPath:         getEnv("WHISPER_TEMP_PATH", "temp.wav"),
		WhisperTimeout:          getDuration("WHISPER_TIMEOUT", 120*time.Second),
		FirebaseCredentialsPath: os.Getenv("FIREBASE_CREDENTIALS_PATH"),
		PostgresEnabled:         os.Getenv("DB_HOST") != "",
		LogLevel:                getEnv("LOG_LEVEL", "info"),
		LogFile:                 os.Getenv("LOG_FILE"),
	}

	if origins := os.Getenv("CORS_ALLOWED_ORIGINS"); origins != "" {
		for _, o := range strings.Split(origins, ",") {
			if o = strings.TrimSpace(o); o != "" {
				cfg.CORSAllowedOrigins = append(cfg.CORSAllowedOrigins, o)
			}
		}
	}

	if cfg.GeminiAPIKey == "" {
		return nil, ErrMissingAIKey
	}
	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	if d, err := time.ParseDuration(v); err == nil {
		return d
	}
	// aceita também segundos inteiros
	if secs, err := strconv.Atoi(v); err == nil {
		return time.Duration(secs) * time.Second
	}
	return fallback
}
