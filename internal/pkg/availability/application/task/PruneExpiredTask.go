package task

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/FlintShadey/huddleuptime/internal/caldate"
	queueAdapter "github.com/FlintShadey/huddleuptime/internal/infrastructure/queue/adapter"
	qport "github.com/FlintShadey/huddleuptime/internal/infrastructure/queue/port"
	appLog "github.com/FlintShadey/huddleuptime/internal/log"
	"github.com/FlintShadey/huddleuptime/internal/pkg/availability/application/usecase"
)

// PruneExpiredTaskType is the queue task name for pruning stale availability.
const PruneExpiredTaskType = "availability:prune_expired"

// PruneExpiredTaskPayload is the JSON payload transported via the queue.
// An empty Before means "start of the range at execution time".
type PruneExpiredTaskPayload struct {
	Before string `json:"before,omitempty"`
}

// RegisterPruneExpiredTask binds the handler to srv.
func RegisterPruneExpiredTask(srv qport.Server, uc *usecase.PruneExpiredUseCase) {
	srv.Register(PruneExpiredTaskType, func(ctx context.Context, t qport.Task) error {
		var p PruneExpiredTaskPayload
		if len(t.Payload) > 0 {
			if err := json.Unmarshal(t.Payload, &p); err != nil {
				return fmt.Errorf("prune task payload: %w", err)
			}
		}

		var in usecase.PruneExpiredInput
		if p.Before != "" {
			d, err := caldate.Parse(p.Before)
			if err != nil {
				return err
			}
			in.Before = d
		}

		ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
		defer cancel()

		n, err := uc.Execute(ctx, in)
		if err != nil {
			return err
		}
		appLog.Info("pruned expired availability", "removed", n)
		return nil
	})
}

// EnqueuePruneExpired schedules one prune run. Retries are disabled: the next
// scheduled run covers a failure.
func EnqueuePruneExpired(ctx context.Context, client qport.Client, p PruneExpiredTaskPayload) (string, error) {
	b, err := json.Marshal(p)
	if err != nil {
		return "", err
	}
	return client.Enqueue(ctx, qport.Task{Type: PruneExpiredTaskType, Payload: b}, qport.EnqueueOption{
		Queue:     queueAdapter.QueueMaintenance,
		MaxRetry:  -1,
		UniqueTTL: time.Hour,
		Timeout:   time.Minute,
	})
}
