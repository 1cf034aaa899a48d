package models

import "time"

type MeetingDetails struct {
	Subject  string `json:"subject"`
	Date     string `json:"date"`
	Time     string `json:"time"`
	Location string `json:"location"`
	Agenda   string `json:"agenda"`
}

// MeetingInvitationRequest é o corpo de POST /send-meeting-invitation.
type MeetingInvitationRequest struct {
	Email          string         `json:"email" validate:"required,email"`
	MeetingDetails MeetingDetails `json:"meetingDetails"`
}

// MeetingInvitationRecord é o registro do convite enviado, guardado no PostgreSQL.
type MeetingInvitationRecord struct {
	ID        int64
	Email     string
	Subject   string
	Date      string
	Time      string
	Location  string
	SentAt    time.Time
	SendError string
}
