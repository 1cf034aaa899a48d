// Package transcription converte áudio em texto usando um sidecar local do
// Whisper acessado por HTTP.
package transcription

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"time"

	"task-allocator/utilities"
)

const (
	defaultWhisperURL     = "http://localhost:8387"
	defaultWhisperModel   = "base"
	defaultTempPath       = "temp.wav"
	defaultWhisperTimeout = 120 * time.Second
)

type Config struct {
	URL      string
	Model    string
	TempPath string
	Timeout  time.Duration
}

// Whisper implementa a transcrição. O arquivo temporário tem caminho fixo,
// então as chamadas são serializadas.
type Whisper struct {
	cfg    Config
	client *http.Client
	mu     sync.Mutex
}

func NewWhisper(cfg Config) *Whisper {
	if cfg.URL == "" {
		cfg.URL = defaultWhisperURL
	}
	if cfg.Model == "" {
		cfg.Model = defaultWhisperModel
	}
	if cfg.TempPath == "" {
		cfg.TempPath = defaultTempPath
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = defaultWhisperTimeout
	}
	return &Whisper{cfg: cfg, client: &http.Client{Timeout: cfg.Timeout}}
}

type whisperResponse struct {
	Text string `json:"text"`
}

// Transcribe grava o áudio no caminho temporário, envia ao Whisper e devolve o texto.
func (w *Whisper) Transcribe(ctx context.Context, audio []byte) (string, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if dir := filepath.Dir(w.cfg.TempPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", fmt.Errorf("criar diretório temporário: %w", err)
		}
	}
	if err := os.WriteFile(w.cfg.TempPath, audio, 0o600); err != nil {
		return "", fmt.Errorf("gravar áudio temporário: %w", err)
	}
	defer func() {
		if err := os.Remove(w.cfg.TempPath); err != nil && !os.IsNotExist(err) {
			utilities.LogError(err, "Transcribe: falha ao remover arquivo temporário")
		}
	}()

	body, contentType, err := w.buildForm()
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.cfg.URL+"/transcribe", body)
	if err != nil {
		return "", fmt.Errorf("criar requisição: %w", err)
	}
	req.Header.Set("Content-Type", contentType)

	resp, err := w.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("requisição ao whisper: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("erro do whisper (status %d): %s", resp.StatusCode, string(msg))
	}

	var result whisperResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("decodificar resposta do whisper: %w", err)
	}
	utilities.LogDebug("Transcribe: %d bytes de áudio transcritos", len(audio))
	return result.Text, nil
}

func (w *Whisper) buildForm() (io.Reader, string, error) {
	f, err := os.Open(w.cfg.TempPath)
	if err != nil {
		return nil, "", fmt.Errorf("abrir áudio temporário: %w", err)
	}
	defer f.Close()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("audio", filepath.Base(w.cfg.TempPath))
	if err != nil {
		return nil, "", fmt.Errorf("criar campo de arquivo: %w", err)
	}
	if _, err := io.Copy(part, f); err != nil {
		return nil, "", fmt.Errorf("copiar áudio: %w", err)
	}
	_ = writer.WriteField("model", w.cfg.Model)
	if err := writer.Close(); err != nil {
		return nil, "", fmt.Errorf("fechar formulário: %w", err)
	}
	return &buf, writer.FormDataContentType(), nil
}
