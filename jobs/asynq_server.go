package jobs

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/hibiken/asynq"
)

// Client enqueues background tasks over redis.
type Client struct {
	inner  *asynq.Client
	logger *slog.Logger
}

// NewClient builds an enqueue-only client.
func NewClient(redisAddr string, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		inner:  asynq.NewClient(asynq.RedisClientOpt{Addr: redisAddr}),
		logger: logger,
	}
}

// Close releases the underlying redis connection.
func (c *Client) Close() error {
	if c == nil || c.inner == nil {
		return nil
	}
	return c.inner.Close()
}

// EnqueueWelcomeEmail schedules the welcome email for a freshly registered
// account.
func (c *Client) EnqueueWelcomeEmail(ctx context.Context, to, name string) error {
	task, err := NewSendEmailTask(SendEmailPayload{
		To:      to,
		Subject: "Selamat datang di Portal Mitra",
		Body:    fmt.Sprintf("Halo %s, akun Anda sudah aktif dan siap digunakan.", name),
	})
	if err != nil {
		return err
	}
	info, err := c.inner.EnqueueContext(ctx, task, asynq.Queue(QueueDefault))
	if err != nil {
		return err
	}
	c.logger.Info("task enqueued", slog.String("type", task.Type()), slog.String("id", info.ID))
	return nil
}

// EnqueueSuratSubmitted schedules follow-up processing for a submitted letter.
func (c *Client) EnqueueSuratSubmitted(ctx context.Context, suratID, judul, userID string) error {
	task, err := NewSuratSubmittedTask(SuratSubmittedPayload{
		SuratID: suratID,
		Judul:   judul,
		UserID:  userID,
	})
	if err != nil {
		return err
	}
	info, err := c.inner.EnqueueContext(ctx, task, asynq.Queue(QueueDefault))
	if err != nil {
		return err
	}
	c.logger.Info("task enqueued", slog.String("type", task.Type()), slog.String("id", info.ID))
	return nil
}

// Worker runs the background task server.
type Worker struct {
	server *asynq.Server
	mux    *asynq.ServeMux
	logger *slog.Logger
}

// NewWorker wires the task handlers onto an asynq server.
func NewWorker(redisAddr string, concurrency int, logger *slog.Logger) *Worker {
	if logger == nil {
		logger = slog.Default()
	}
	if concurrency <= 0 {
		concurrency = 10
	}
	server := asynq.NewServer(
		asynq.RedisClientOpt{Addr: redisAddr},
		asynq.Config{
			Concurrency: concurrency,
			Queues:      map[string]int{QueueDefault: 1},
		},
	)
	mux := asynq.NewServeMux()
	mux.HandleFunc(TaskTypeSendEmail, HandleSendEmailTask)
	mux.HandleFunc(TaskTypeSuratSubmitted, HandleSuratSubmittedTask)
	return &Worker{server: server, mux: mux, logger: logger}
}

// Run blocks until the context is canceled, then shuts the server down.
func (w *Worker) Run(ctx context.Context) error {
	if err := w.server.Start(w.mux); err != nil {
		return err
	}
	<-ctx.Done()
	w.logger.Info("worker shutting down")
	w.server.Shutdown()
	return nil
}
