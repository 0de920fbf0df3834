package services

import (
	"context"
	"database/sql"
	"sync"
	"time"

	"github.com/dmitrijs2005/bookmarks/internal/logging"
	"github.com/dmitrijs2005/bookmarks/internal/server/models"
	"github.com/dmitrijs2005/bookmarks/internal/server/repositories/repomanager"
)

type attemptJob struct {
	ctx     context.Context
	attempt models.LoginAttempt
}

// AttemptLog writes login attempts in the background. Record never blocks
// the login path: when the queue is full or the log is closed the attempt
// is dropped with a warning, and write failures are only logged.
type AttemptLog struct {
	db           *sql.DB
	repomanager  repomanager.RepositoryManager
	logger       logging.Logger
	storeTimeout time.Duration
	now          func() time.Time

	mu     sync.RWMutex
	closed bool
	queue  chan attemptJob
	wg     sync.WaitGroup
}

func NewAttemptLog(db *sql.DB, m repomanager.RepositoryManager, logger logging.Logger, buffer int, storeTimeout time.Duration) *AttemptLog {
	if buffer < 1 {
		buffer = 1
	}
	return &AttemptLog{
		db:           db,
		repomanager:  m,
		logger:       logger,
		storeTimeout: storeTimeout,
		now:          time.Now,
		queue:        make(chan attemptJob, buffer),
	}
}

// Start launches the writer goroutine. Call Close to drain and stop it.
func (l *AttemptLog) Start() {
	l.wg.Add(1)
	go func() {
		defer l.wg.Done()
		for job := range l.queue {
			l.write(job)
		}
	}()
}

// Record enqueues an attempt. The request context is only used for its
// values; cancellation of the request does not cancel the write.
func (l *AttemptLog) Record(ctx context.Context, userID *string, status models.AttemptStatus) {
	job := attemptJob{
		ctx: context.WithoutCancel(ctx),
		attempt: models.LoginAttempt{
			UserID:      userID,
			AttemptedAt: l.now().UTC(),
			Status:      status,
		},
	}

	l.mu.RLock()
	defer l.mu.RUnlock()

	if l.closed {
		l.logger.Warn(ctx, "login attempt dropped: log closed", "status", status)
		return
	}

	select {
	case l.queue <- job:
	default:
		l.logger.Warn(ctx, "login attempt dropped: queue full", "status", status)
	}
}

// Close stops accepting attempts and waits until the queued ones are
// written or ctx is done.
func (l *AttemptLog) Close(ctx context.Context) error {
	l.mu.Lock()
	if !l.closed {
		l.closed = true
		close(l.queue)
	}
	l.mu.Unlock()

	done := make(chan struct{})
	go func() {
		l.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (l *AttemptLog) write(job attemptJob) {
	ctx, cancel := withStoreTimeout(job.ctx, l.storeTimeout)
	defer cancel()

	a := job.attempt
	if err := l.repomanager.LoginAttempts(l.db).Create(ctx, &a); err != nil {
		l.logger.Error(ctx, "login attempt not recorded", "status", a.Status, "error", err)
		return
	}
	l.logger.Debug(ctx, "login attempt recorded", "id", a.ID, "status", a.Status)
}
