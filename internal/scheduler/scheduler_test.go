package scheduler

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestScheduler_ImmediateRunAndStop(t *testing.T) {
	var runs atomic.Int32
	ran := make(chan struct{}, 1)

	task := TaskFunc(func(ctx context.Context) error {
		runs.Add(1)
		select {
		case ran <- struct{}{}:
		default:
		}
		return errors.New("실패해도 계속 실행")
	})

	s := NewScheduler(time.Hour, task, WithImmediate())

	done := make(chan error, 1)
	go func() { done <- s.Start(context.Background()) }()

	select {
	case <-ran:
	case <-time.After(5 * time.Second):
		t.Fatal("작업이 즉시 실행되지 않았습니다")
	}

	s.Stop()
	s.Stop()

	assert.NoError(t, <-done)
	assert.EqualValues(t, 1, runs.Load())
}

func TestScheduler_KeepsRunningAfterTaskError(t *testing.T) {
	const wantRuns = 3

	var runs atomic.Int32
	reached := make(chan struct{})

	task := TaskFunc(func(ctx context.Context) error {
		if runs.Add(1) == wantRuns {
			close(reached)
		}
		return errors.New("일시적 실패")
	})

	s := NewScheduler(10*time.Millisecond, task, WithImmediate())

	done := make(chan error, 1)
	go func() { done <- s.Start(context.Background()) }()

	select {
	case <-reached:
	case <-time.After(5 * time.Second):
		t.Fatalf("실패 후 재실행되지 않았습니다 (실행 횟수: %d)", runs.Load())
	}

	s.Stop()
	assert.NoError(t, <-done)
	assert.GreaterOrEqual(t, runs.Load(), int32(wantRuns))
}

func TestScheduler_ContextCancel(t *testing.T) {
	s := NewScheduler(time.Hour, TaskFunc(func(context.Context) error { return nil }))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, s.Start(ctx), context.Canceled)
}

func TestScheduler_UntilNextAlignsToInterval(t *testing.T) {
	s := NewScheduler(15*time.Minute, nil)
	now := time.Date(2024, 1, 1, 10, 7, 30, 0, time.UTC)

	assert.Equal(t, 7*time.Minute+30*time.Second, s.untilNext(now))
}
