// Package mailer envia e-mails de texto por um relay SMTP.
package mailer

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"mime"
	"net"
	"net/smtp"
	"strings"
	"time"

	"task-allocator/models"
	"task-allocator/utilities"

	"github.com/sony/gobreaker"
)

// ErrNotConfigured indica que EMAIL_USER/EMAIL_PASSWORD não foram definidos.
var ErrNotConfigured = errors.New("credenciais de e-mail não configuradas")

type Config struct {
	Host     string
	Port     string
	Username string
	Password string
}

// Message é um e-mail text/plain.
type Message struct {
	From    string
	To      string
	Subject string
	Body    string
}

// Bytes monta a mensagem MIME.
func (m Message) Bytes() []byte {
	var sb strings.Builder
	sb.WriteString("From: " + m.From + "\r\n")
	sb.WriteString("To: " + m.To + "\r\n")
	sb.WriteString("Subject: " + mime.QEncoding.Encode("utf-8", m.Subject) + "\r\n")
	sb.WriteString("MIME-Version: 1.0\r\n")
	sb.WriteString("Content-Type: text/plain; charset=\"UTF-8\"\r\n")
	sb.WriteString("Date: " + time.Now().Format(time.RFC1123Z) + "\r\n")
	sb.WriteString("\r\n")
	sb.WriteString(strings.ReplaceAll(m.Body, "\n", "\r\n"))
	sb.WriteString("\r\n")
	return []byte(sb.String())
}

type sendFunc func(ctx context.Context, cfg Config, msg Message) error

// Mailer envia mensagens sem retry.
type Mailer struct {
	cfg     Config
	breaker *gobreaker.CircuitBreaker
	send    sendFunc
}

func New(cfg Config) *Mailer {
	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "smtp",
		MaxRequests: 1,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures > 3
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			utilities.LogInfo("Circuit breaker '%s' mudou de %s para %s", name, from.String(), to.String())
		},
	})
	return &Mailer{cfg: cfg, breaker: breaker, send: sendSMTP}
}

// Send envia a mensagem; From é preenchido com o usuário configurado.
func (m *Mailer) Send(ctx context.Context, msg Message) error {
	if m.cfg.Username == "" || m.cfg.Password == "" {
		return ErrNotConfigured
	}
	msg.From = m.cfg.Username
	_, err := m.breaker.Execute(func() (interface{}, error) {
		return nil, m.send(ctx, m.cfg, msg)
	})
	if err != nil {
		return fmt.Errorf("falha ao enviar e-mail para %s: %w", msg.To, err)
	}
	utilities.LogInfo("E-mail '%s' enviado para %s", msg.Subject, msg.To)
	return nil
}

// SendMeetingInvitation envia o convite de reunião.
func (m *Mailer) SendMeetingInvitation(ctx context.Context, to string, details models.MeetingDetails) error {
	return m.Send(ctx, MeetingInvitationMessage(to, details))
}

// SendTaskAssigned avisa o membro escolhido sobre a nova tarefa.
func (m *Mailer) SendTaskAssigned(ctx context.Context, to, taskName string) error {
	return m.Send(ctx, TaskAssignedMessage(to, taskName))
}

func MeetingInvitationMessage(to string, d models.MeetingDetails) Message {
	subject := d.Subject
	if subject == "" {
		subject = "Meeting Invitation"
	}
	body := fmt.Sprintf("Hello,\n\nYou are invited to a meeting.\n\nSubject: %s\nDate: %s\nTime: %s\nLocation: %s\n\nAgenda:\n%s\n\nBest regards,\nThe Team",
		d.Subject, d.Date, d.Time, d.Location, d.Agenda)
	return Message{To: to, Subject: subject, Body: body}
}

func TaskAssignedMessage(to, taskName string) Message {
	body := fmt.Sprintf("Hello,\n\nA new task has been assigned to you: %s\n\nPlease check the dashboard for details.\n\nBest regards,\nThe Team", taskName)
	return Message{To: to, Subject: "New Task Assigned: " + taskName, Body: body}
}

// sendSMTP abre a conexão TLS, autentica e envia.
func sendSMTP(ctx context.Context, cfg Config, msg Message) error {
	addr := net.JoinHostPort(cfg.Host, cfg.Port)
	tlsConfig := &tls.Config{ServerName: cfg.Host}

	dialer := &tls.Dialer{NetDialer: &net.Dialer{Timeout: 30 * time.Second}, Config: tlsConfig}
	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return fmt.Errorf("conectar ao SMTP %s: %w", addr, err)
	}

	client, err := smtp.NewClient(conn, cfg.Host)
	if err != nil {
		conn.Close()
		return fmt.Errorf("iniciar cliente SMTP: %w", err)
	}
	defer client.Close()

	if err := client.Auth(smtp.PlainAuth("", cfg.Username, cfg.Password, cfg.Host)); err != nil {
		return fmt.Errorf("autenticação SMTP: %w", err)
	}
	if err := client.Mail(msg.From); err != nil {
		return err
	}
	if err := client.Rcpt(msg.To); err != nil {
		return err
	}
	wc, err := client.Data()
	if err != nil {
		return err
	}
	if _, err := wc.Write(msg.Bytes()); err != nil {
		wc.Close()
		return err
	}
	if err := wc.Close(); err != nil {
		return err
	}
	return client.Quit()
}
