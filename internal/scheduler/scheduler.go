package scheduler

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Task는 스케줄러가 실행할 작업을 정의하는 인터페이스입니다
type Task interface {
	Execute(ctx context.Context) error
}

// TaskFunc는 함수를 Task로 사용하기 위한 어댑터입니다
type TaskFunc func(ctx context.Context) error

// Execute는 Task 인터페이스를 구현합니다
func (f TaskFunc) Execute(ctx context.Context) error {
	return f(ctx)
}

// Scheduler는 정해진 간격으로 작업을 실행하는 스케줄러입니다
type Scheduler struct {
	interval  time.Duration
	task      Task
	immediate bool
	logger    *zap.Logger
	stopCh    chan struct{}
	stopOnce  sync.Once
}

// Option은 스케줄러 옵션입니다
type Option func(*Scheduler)

// WithImmediate는 첫 실행을 간격 경계까지 기다리지 않고 바로 수행하게 합니다
func WithImmediate() Option {
	return func(s *Scheduler) {
		s.immediate = true
	}
}

// WithLogger는 로거를 설정합니다
func WithLogger(logger *zap.Logger) Option {
	return func(s *Scheduler) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewScheduler는 새로운 스케줄러를 생성합니다
func NewScheduler(interval time.Duration, task Task, opts ...Option) *Scheduler {
	s := &Scheduler{
		interval: interval,
		task:     task,
		logger:   zap.NewNop(),
		stopCh:   make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start는 ctx가 취소되거나 Stop이 호출될 때까지 작업을 반복 실행합니다.
// 작업이 실패해도 다음 주기는 계속 실행됩니다.
func (s *Scheduler) Start(ctx context.Context) error {
	wait := s.untilNext(time.Now())
	if s.immediate {
		wait = 0
	}

	timer := time.NewTimer(wait)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case <-s.stopCh:
			return nil

		case <-timer.C:
			// 작업 실행
			if err := s.task.Execute(ctx); err != nil {
				s.logger.Warn("작업 실행 실패", zap.Error(err))
			}

			// 다음 실행 시간 계산
			now := time.Now()
			wait = s.untilNext(now)
			s.logger.Debug("다음 실행 대기",
				zap.Duration("wait", wait.Round(time.Millisecond)),
				zap.Time("next", now.Add(wait)),
			)

			timer.Reset(wait)
		}
	}
}

// Stop은 스케줄러를 중지합니다. 여러 번 호출해도 안전합니다.
func (s *Scheduler) Stop() {
	s.stopOnce.Do(func() {
		close(s.stopCh)
	})
}

// untilNext는 다음 간격 경계까지 남은 시간을 반환합니다
func (s *Scheduler) untilNext(now time.Time) time.Duration {
	next := now.Truncate(s.interval).Add(s.interval)
	return next.Sub(now)
}
