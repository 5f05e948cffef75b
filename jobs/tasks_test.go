package jobs

import (
	"context"
	"errors"
	"testing"

	"github.com/hibiken/asynq"
)

func TestHandleSendEmailTaskRejectsMalformedPayload(t *testing.T) {
	task := asynq.NewTask(TaskTypeSendEmail, []byte("not-json"))

	err := HandleSendEmailTask(context.Background(), task)
	if !errors.Is(err, asynq.SkipRetry) {
		t.Fatalf("expected SkipRetry, got %v", err)
	}
}

func TestHandleSuratSubmittedTask(t *testing.T) {
	task, err := NewSuratSubmittedTask(SuratSubmittedPayload{SuratID: "s1", Judul: "Kerjasama", UserID: "u1"})
	if err != nil {
		t.Fatalf("build task: %v", err)
	}
	if task.Type() != TaskTypeSuratSubmitted {
		t.Fatalf("unexpected task type %q", task.Type())
	}
	if err := HandleSuratSubmittedTask(context.Background(), task); err != nil {
		t.Fatalf("handle: %v", err)
	}
}
