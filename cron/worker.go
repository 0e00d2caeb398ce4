package cron

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"autoslot/config"
	auditRepo "autoslot/database/repository/audit"
	"autoslot/models"

	"github.com/hibiken/asynq"
)

const TypeAuditRecord = "audit:record"

// AsynqRecorder enqueues commit-audit entries onto the async queue. It
// satisfies slots.CommitRecorder.
type AsynqRecorder struct {
	client *asynq.Client
}

// NewAsynqRecorder builds the producer side of the audit queue.
func NewAsynqRecorder() *AsynqRecorder {
	return &AsynqRecorder{
		client: asynq.NewClient(redisOpts()),
	}
}

func (r *AsynqRecorder) Record(rec models.CommitRecord) error {
	payload, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal commit record: %w", err)
	}
	task := asynq.NewTask(TypeAuditRecord, payload, asynq.MaxRetry(5))
	if _, err := r.client.Enqueue(task); err != nil {
		return fmt.Errorf("enqueue commit record: %w", err)
	}
	return nil
}

// Close releases the queue connection.
func (r *AsynqRecorder) Close() error {
	return r.client.Close()
}

// InitAuditWorker runs the async worker in background, draining the audit
// queue into the Mongo repository.
func InitAuditWorker(repo auditRepo.CommitAuditRepository) {
	srv := asynq.NewServer(
		redisOpts(),
		asynq.Config{
			Concurrency: 5,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(TypeAuditRecord, handleAuditTask(repo))

	// Start async worker with retry logic
	go func() {
		log.Println("[AuditWorker] Starting async worker...")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[AuditWorker] Attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)

				if attempts == maxAttempts {
					log.Fatal("[AuditWorker] Max retry attempts reached. Exiting.")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second) // Exponential backoff
			} else {
				break
			}
		}
	}()
}

func handleAuditTask(repo auditRepo.CommitAuditRepository) asynq.HandlerFunc {
	return func(ctx context.Context, t *asynq.Task) error {
		var rec models.CommitRecord
		if err := json.Unmarshal(t.Payload(), &rec); err != nil {
			return fmt.Errorf("unmarshal commit record: %w", err)
		}
		if err := repo.Insert(ctx, rec); err != nil {
			return fmt.Errorf("persist commit record: %w", err)
		}
		return nil
	}
}

func redisOpts() asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}
}
