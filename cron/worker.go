package cron

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"commit/config"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

const TypeExpireChatSessions = "chat:sessions:expire"

// ExpirePayload is the body of a TypeExpireChatSessions task.
type ExpirePayload struct {
	IdleSeconds int64 `json:"idle_seconds"`
}

// SessionExpirer is satisfied by the chat service.
type SessionExpirer interface {
	ExpireIdle(ctx context.Context, idle time.Duration) (int64, error)
}

// Worker periodically ends idle chat sessions. The scheduler enqueues the
// task into Redis and a single-slot server consumes it.
type Worker struct {
	server    *asynq.Server
	scheduler *asynq.Scheduler
	mux       *asynq.ServeMux
	logger    *zap.Logger
}

func NewExpireTask(idle time.Duration) (*asynq.Task, error) {
	payload, err := json.Marshal(ExpirePayload{IdleSeconds: int64(idle / time.Second)})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeExpireChatSessions, payload), nil
}

func NewWorker(cfg *config.Config, chats SessionExpirer, logger *zap.Logger) (*Worker, error) {
	redisOpts := asynq.RedisClientOpt{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisQueueDB,
	}

	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: 1,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(TypeExpireChatSessions, handleExpireTask(chats, logger))

	task, err := NewExpireTask(cfg.ChatSessionIdleTTL)
	if err != nil {
		return nil, err
	}
	scheduler := asynq.NewScheduler(redisOpts, &asynq.SchedulerOpts{})
	cronspec := fmt.Sprintf("@every %s", cfg.ChatExpireInterval)
	if _, err := scheduler.Register(cronspec, task); err != nil {
		return nil, fmt.Errorf("register %s: %w", TypeExpireChatSessions, err)
	}

	return &Worker{server: srv, scheduler: scheduler, mux: mux, logger: logger}, nil
}

// Start runs the server and scheduler in the background, retrying while
// Redis is unreachable.
func (w *Worker) Start() {
	go func() {
		w.logger.Info("Starting chat housekeeping worker")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			err := w.server.Start(w.mux)
			if err == nil {
				break
			}
			w.logger.Warn("Worker failed to start",
				zap.Int("attempt", attempts), zap.Int("max", maxAttempts), zap.Error(err))
			if attempts == maxAttempts {
				w.logger.Error("Worker gave up; idle chat sessions will not expire")
				return
			}
			time.Sleep(time.Duration(attempts*2) * time.Second)
		}

		if err := w.scheduler.Start(); err != nil {
			w.logger.Error("Scheduler failed to start", zap.Error(err))
		}
	}()
}

func (w *Worker) Shutdown() {
	w.scheduler.Shutdown()
	w.server.Shutdown()
}

func handleExpireTask(chats SessionExpirer, logger *zap.Logger) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p ExpirePayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			logger.Error("Invalid expire payload", zap.Error(err))
			return fmt.Errorf("%v: %w", err, asynq.SkipRetry)
		}
		if p.IdleSeconds <= 0 {
			return fmt.Errorf("idle_seconds must be positive: %w", asynq.SkipRetry)
		}

		n, err := chats.ExpireIdle(ctx, time.Duration(p.IdleSeconds)*time.Second)
		if err != nil {
			logger.Error("Expiring idle chat sessions failed", zap.Error(err))
			return err
		}
		if n > 0 {
			logger.Info("Expired idle chat sessions", zap.Int64("count", n))
		}
		return nil
	}
}
