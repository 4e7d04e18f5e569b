package jobs

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/ziptechlabs/cohort-server-go/internal/repository"
)

// CleanupJob reaps chat messages past their retention window. Messages expire
// seven days after sending by default; the interval is how often the sweep
// runs, not how precise expiry is.
type CleanupJob struct {
	messageRepo repository.MessageRepository
	interval    time.Duration
	done        chan struct{}
}

func NewCleanupJob(messageRepo repository.MessageRepository, interval time.Duration) *CleanupJob {
	return &CleanupJob{
		messageRepo: messageRepo,
		interval:    interval,
		done:        make(chan struct{}),
	}
}

func (j *CleanupJob) Start() {
	go j.run()
	log.Info().Dur("interval", j.interval).Msg("cleanup job started")
}

func (j *CleanupJob) Stop() {
	close(j.done)
	log.Info().Msg("cleanup job stopped")
}

func (j *CleanupJob) run() {
	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	j.cleanup()

	for {
		select {
		case <-j.done:
			return
		case <-ticker.C:
			j.cleanup()
		}
	}
}

func (j *CleanupJob) cleanup() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	j.runCleanup(ctx, "expired messages", j.messageRepo.DeleteExpired)
}

func (j *CleanupJob) runCleanup(ctx context.Context, name string, fn func(context.Context) (int64, error)) {
	count, err := fn(ctx)
	if err != nil {
		log.Error().Err(err).Msgf("failed to cleanup %s", name)
	} else if count > 0 {
		log.Info().Int64("count", count).Msgf("cleaned up %s", name)
	}
}
