package schedule

import (
	"context"
	"errors"
	"time"
	"todo-api/pkg/log"
	"todo-api/pkg/redis"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

const defaultLockTTL = 5 * time.Minute

// Job is one scheduled task
type Job struct {
	Name string
	// Cron is a standard five-field expression evaluated in the scheduler's location
	Cron string
	// LockTTL bounds a single run
	LockTTL time.Duration
	// HoldLock keeps the lock until LockTTL expires instead of releasing it after the run,
	// so instances whose clocks fire slightly later skip the same tick
	HoldLock bool
	Task     func(ctx context.Context) error
}

// Scheduler runs cron jobs. With a Redis client each run is guarded by a distributed lock so
// only one instance executes it.
type Scheduler struct {
	cron        *cron.Cron
	redisClient *redis.Client
}

func NewScheduler(redisClient *redis.Client, location *time.Location) *Scheduler {
	if location == nil {
		location = time.Local
	}
	return &Scheduler{
		cron:        cron.New(cron.WithLocation(location)),
		redisClient: redisClient,
	}
}

func (s *Scheduler) AddJob(job Job) error {
	if job.LockTTL <= 0 {
		job.LockTTL = defaultLockTTL
	}

	_, err := s.cron.AddFunc(job.Cron, func() {
		s.run(job)
	})
	if err != nil {
		return err
	}

	log.Info("Scheduled job registered", zap.String("job", job.Name), zap.String("cron", job.Cron))
	return nil
}

func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop waits for running jobs to finish
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}

func (s *Scheduler) run(job Job) {
	requestID := uuid.New().String()
	ctx, cancel := context.WithTimeout(context.Background(), job.LockTTL)
	defer cancel()

	err := s.execute(ctx, job)

	switch {
	case errors.Is(err, redis.ErrLockNotAcquired):
		log.Debug("Scheduled job already running on another instance", zap.String("job", job.Name), zap.String("request_id", requestID))
	case err != nil:
		log.Error("Scheduled job failed", zap.String("job", job.Name), zap.String("request_id", requestID), zap.Error(err))
	default:
		log.Debug("Scheduled job completed", zap.String("job", job.Name), zap.String("request_id", requestID))
	}
}

func (s *Scheduler) execute(ctx context.Context, job Job) error {
	if s.redisClient == nil {
		return job.Task(ctx)
	}

	lockKey := "schedule:" + job.Name
	options := redis.NewScheduledTaskLock(job.LockTTL)
	if !job.HoldLock {
		return redis.LockWithFunc(ctx, s.redisClient, lockKey, options, func() error {
			return job.Task(ctx)
		})
	}

	if err := redis.NewLock(s.redisClient, lockKey, options).Lock(ctx); err != nil {
		return err
	}
	return job.Task(ctx)
}
