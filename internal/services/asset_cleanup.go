package services

import (
	"context"
	"errors"
	"log"
	"time"
)

const (
	cleanupJobTimeout  = 30 * time.Second
	cleanupErrorPause  = time.Second
	defaultQueueLength = 256
)

var ErrQueueFull = errors.New("cleanup queue is full")

// CleanupJob asks for a superseded media asset to be deleted.
type CleanupJob struct {
	PublicID string    `json:"publicId"`
	Reason   string    `json:"reason"`
	QueuedAt time.Time `json:"queuedAt"`
}

// CleanupQueue hands cleanup jobs from request handlers to the worker.
type CleanupQueue interface {
	Push(ctx context.Context, job CleanupJob) error
	// Pop blocks until a job is available or ctx is done.
	Pop(ctx context.Context) (CleanupJob, error)
}

// MemoryCleanupQueue is an in-process queue used when Redis is not configured.
// Pending jobs are lost on restart.
type MemoryCleanupQueue struct {
	jobs chan CleanupJob
}

func NewMemoryCleanupQueue(size int) *MemoryCleanupQueue {
	if size <= 0 {
		size = defaultQueueLength
	}
	return &MemoryCleanupQueue{jobs: make(chan CleanupJob, size)}
}

func (q *MemoryCleanupQueue) Push(ctx context.Context, job CleanupJob) error {
	select {
	case q.jobs <- job:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	default:
		return ErrQueueFull
	}
}

func (q *MemoryCleanupQueue) Pop(ctx context.Context) (CleanupJob, error) {
	select {
	case job := <-q.jobs:
		return job, nil
	case <-ctx.Done():
		return CleanupJob{}, ctx.Err()
	}
}

// AssetCleaner deletes superseded assets off the request path. Each job is
// attempted once and its outcome logged; failures never reach the caller.
type AssetCleaner struct {
	media MediaHost
	queue CleanupQueue

	// Observer, if set, is called after every attempt. Set it before Run.
	Observer func(job CleanupJob, err error)
}

func NewAssetCleaner(media MediaHost, queue CleanupQueue) *AssetCleaner {
	return &AssetCleaner{media: media, queue: queue}
}

// Enqueue schedules deletion of publicID. Empty ids are ignored.
func (c *AssetCleaner) Enqueue(ctx context.Context, publicID, reason string) {
	if publicID == "" {
		return
	}
	job := CleanupJob{PublicID: publicID, Reason: reason, QueuedAt: time.Now().UTC()}
	if err := c.queue.Push(ctx, job); err != nil {
		log.Printf("ERROR [services.AssetCleaner] could not queue delete of %s (%s), asset left on media host: %v", publicID, reason, err)
	}
}

// Run processes jobs until ctx is cancelled.
func (c *AssetCleaner) Run(ctx context.Context) {
	log.Println("✅ Asset cleanup worker started")
	for {
		job, err := c.queue.Pop(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Println("Asset cleanup worker stopped")
				return
			}
			log.Printf("ERROR [services.AssetCleaner] reading queue: %v", err)
			select {
			case <-time.After(cleanupErrorPause):
			case <-ctx.Done():
				return
			}
			continue
		}
		c.process(ctx, job)
	}
}

func (c *AssetCleaner) process(ctx context.Context, job CleanupJob) {
	jobCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), cleanupJobTimeout)
	defer cancel()

	err := c.media.Destroy(jobCtx, job.PublicID)
	if err != nil {
		log.Printf("ERROR [services.AssetCleaner] failed to delete old %s %s: %v", job.Reason, job.PublicID, err)
	} else {
		log.Printf("Deleted old %s %s", job.Reason, job.PublicID)
	}

	if c.Observer != nil {
		c.Observer(job, err)
	}
}
