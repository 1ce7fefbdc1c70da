package queue

import (
	"context"
	"hash/fnv"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/taskforge/task-api/internal/api/metrics"
	"github.com/taskforge/task-api/internal/core/domain"
	"github.com/taskforge/task-api/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
)

// Recorder persists task activity records asynchronously. Records are
// routed to a fixed set of workers using consistent hashing on the task id,
// guaranteeing per-task ordering of the activity trail.
type Recorder struct {
	workers []chan domain.TaskActivity
	repo    ports.ActivityRepository
	log     zerolog.Logger
}

// NewRecorder creates a Recorder with numWorkers sharded workers. If
// numWorkers <= 0, defaultWorkers is used.
func NewRecorder(numWorkers int, repo ports.ActivityRepository, log zerolog.Logger) *Recorder {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	r := &Recorder{
		workers: make([]chan domain.TaskActivity, numWorkers),
		repo:    repo,
		log:     log,
	}
	for i := range r.workers {
		r.workers[i] = make(chan domain.TaskActivity, channelBuffer)
	}
	return r
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (r *Recorder) Start(ctx context.Context) {
	for i, ch := range r.workers {
		go r.runWorker(ctx, i, ch)
	}
}

// Record enqueues an activity record. When the responsible worker's buffer
// is full the record is dropped rather than blocking the mutation path.
func (r *Recorder) Record(a domain.TaskActivity) {
	ch := r.workers[r.shardIndex(a.TaskID)]
	select {
	case ch <- a:
	default:
		metrics.ActivityWriteFailuresTotal.Inc()
		r.log.Warn().Str("task_id", a.TaskID).Str("action", a.Action).Msg("activity queue full, record dropped")
	}
}

// shardIndex maps a task id deterministically to a worker index.
func (r *Recorder) shardIndex(taskID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(taskID))
	return int(h.Sum32()) % len(r.workers)
}

func (r *Recorder) runWorker(ctx context.Context, id int, ch <-chan domain.TaskActivity) {
	depth := metrics.ActivityQueueDepth.WithLabelValues(strconv.Itoa(id))
	for {
		select {
		case <-ctx.Done():
			return
		case a, ok := <-ch:
			if !ok {
				return
			}
			depth.Set(float64(len(ch)))
			if err := r.repo.Insert(ctx, &a); err != nil {
				metrics.ActivityWriteFailuresTotal.Inc()
				r.log.Error().Err(err).
					Str("task_id", a.TaskID).
					Int("worker_id", id).
					Msg("activity write failed")
			}
		}
	}
}
