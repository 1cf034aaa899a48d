package utilities

import (
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Logger é a instância global usada pelos helpers abaixo.
var Logger = logrus.New()

var once sync.Once

// eventIDHook adiciona um event_id único em cada entrada de log
type eventIDHook struct{}

func (eventIDHook) Levels() []logrus.Level { return logrus.AllLevels }

func (eventIDHook) Fire(entry *logrus.Entry) error {
	entry.Data["event_id"] = uuid.New().String()
	return nil
}

// InitLogger inicializa o logger. Se logFile for informado, a saída também vai
// para um arquivo com rotação.
func InitLogger(level, logFile string) {
	once.Do(func() {
		Logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: "2006-01-02 15:04:05.000000",
		})
		Logger.AddHook(eventIDHook{})

		parsed, err := logrus.ParseLevel(strings.ToLower(level))
		if err != nil {
			parsed = logrus.InfoLevel
		}
		Logger.SetLevel(parsed)

		if logFile != "" {
			rotator := &lumberjack.Logger{
				Filename:   logFile,
				MaxSize:    10, // megabytes
				MaxBackups: 3,
				MaxAge:     28, // dias
				Compress:   true,
			}
			Logger.SetOutput(io.MultiWriter(os.Stdout, rotator))
		} else {
			Logger.SetOutput(os.Stdout)
		}

		Logger.Debugf("Logger inicializado (nível %s, arquivo %q)", parsed, logFile)
	})
}

// LogRequest registra informações sobre a requisição HTTP
func LogRequest(method, path, remoteAddr string, status int, duration time.Duration) {
	Logger.WithFields(logrus.Fields{
		"method":   method,
		"path":     path,
		"remote":   remoteAddr,
		"status":   status,
		"duration": duration.String(),
	}).Info("request")
}

// LogError registra erros com o contexto em que ocorreram
func LogError(err error, context string) {
	Logger.WithError(err).Error(context)
}

// LogDebug registra informações de debug
func LogDebug(format string, v ...interface{}) {
	Logger.Debugf(format, v...)
}

// LogInfo registra informações gerais
func LogInfo(format string, v ...interface{}) {
	Logger.Infof(format, v...)
}

// LogWarn registra avisos que não interrompem o fluxo
func LogWarn(format string, v ...interface{}) {
	Logger.Warnf(format, v...)
}
