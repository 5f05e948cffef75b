package jobs

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/hibiken/asynq"
)

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"
	// TaskTypeSendEmail is the task type for sending transactional emails.
	TaskTypeSendEmail = "mail:send"
	// TaskTypeSuratSubmitted is the task type fired when a letter is submitted.
	TaskTypeSuratSubmitted = "surat:submitted"
)

// SendEmailPayload describes the information required to send an email.
type SendEmailPayload struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// NewSendEmailTask constructs an Asynq task.
func NewSendEmailTask(payload SendEmailPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskTypeSendEmail, data), nil
}

// HandleSendEmailTask processes TaskTypeSendEmail tasks.
func HandleSendEmailTask(ctx context.Context, t *asynq.Task) error {
	var payload SendEmailPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return asynq.SkipRetry
	}
	// TODO: deliver through the SMTP relay once one is provisioned; until then
	// the payload is only logged.
	slog.Default().Info("send email",
		slog.String("to", payload.To),
		slog.String("subject", payload.Subject),
	)
	return nil
}

// SuratSubmittedPayload identifies a newly submitted letter.
type SuratSubmittedPayload struct {
	SuratID string `json:"surat_id"`
	Judul   string `json:"judul"`
	UserID  string `json:"user_id"`
}

// NewSuratSubmittedTask constructs an Asynq task.
func NewSuratSubmittedTask(payload SuratSubmittedPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskTypeSuratSubmitted, data), nil
}

// HandleSuratSubmittedTask processes TaskTypeSuratSubmitted tasks.
func HandleSuratSubmittedTask(ctx context.Context, t *asynq.Task) error {
	var payload SuratSubmittedPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return asynq.SkipRetry
	}
	slog.Default().Info("surat submitted",
		slog.String("surat_id", payload.SuratID),
		slog.String("judul", payload.Judul),
		slog.String("user_id", payload.UserID),
	)
	return nil
}
