package services

import (
	"context"
	"net/mail"
	"strings"

	"task-allocator/models"
	"task-allocator/utilities"
)

type MeetingSender interface {
	SendMeetingInvitation(ctx context.Context, to string, details models.MeetingDetails) error
}

// InvitationRecorder é opcional; sem PostgreSQL fica nil.
type InvitationRecorder interface {
	RecordInvitation(ctx context.Context, rec models.MeetingInvitationRecord) (int64, error)
}

type MeetingService struct {
	sender   MeetingSender
	recorder InvitationRecorder
}

func NewMeetingService(sender MeetingSender, recorder InvitationRecorder) *MeetingService {
	return &MeetingService{sender: sender, recorder: recorder}
}

var invitationMessages = map[string]string{
	"email": "Invalid email address.",
}

// SendInvitation envia o convite e, se houver, registra o envio.
func (s *MeetingService) SendInvitation(ctx context.Context, req models.MeetingInvitationRequest) error {
	// "Nome <a@b.com>" vira só o endereço, que é o que o RCPT TO aceita.
	req.Email = strings.TrimSpace(req.Email)
	if addr, err := mail.ParseAddress(req.Email); err == nil {
		req.Email = addr.Address
	}
	if err := utilities.ValidateStruct(req, invitationMessages); err != nil {
		return err
	}
	email := req.Email

	sendErr := s.sender.SendMeetingInvitation(ctx, email, req.MeetingDetails)

	if s.recorder != nil {
		rec := models.MeetingInvitationRecord{
			Email:    email,
			Subject:  req.MeetingDetails.Subject,
			Date:     req.MeetingDetails.Date,
			Time:     req.MeetingDetails.Time,
			Location: req.MeetingDetails.Location,
		}
		if sendErr != nil {
			rec.SendError = sendErr.Error()
		}
		if _, err := s.recorder.RecordInvitation(ctx, rec); err != nil {
			utilities.LogError(err, "Falha ao registrar convite de reunião")
		}
	}

	if sendErr != nil {
		return utilities.WrapError(utilities.KindInternal, "Failed to send meeting invitation", sendErr)
	}
	return nil
}
