package scheduler

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"financequest/src/market"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingJob struct {
	runs atomic.Int32
	err  error
}

func (j *countingJob) Name() string { return "counting" }

func (j *countingJob) Run(ctx context.Context) error {
	j.runs.Add(1)
	return j.err
}

type fakeUpdater struct{ res market.PrefetchResult }

func (f fakeUpdater) DailyUpdate(context.Context) market.PrefetchResult { return f.res }

type fakeCleaner struct {
	deleted int64
	err     error
	called  bool
}

func (f *fakeCleaner) CleanupInactive(context.Context) (int64, error) {
	f.called = true
	return f.deleted, f.err
}

func TestScheduler_RunsRegisteredJob(t *testing.T) {
	s := New(time.Second)
	job := &countingJob{}
	require.NoError(t, s.AddJob("@every 1s", job))
	assert.Len(t, s.Entries(), 1)

	s.Start()
	defer s.Stop()

	require.Eventually(t, func() bool { return job.runs.Load() >= 1 }, 3*time.Second, 50*time.Millisecond)
}

func TestScheduler_RejectsBadSpec(t *testing.T) {
	s := New(0)
	assert.Error(t, s.AddJob("every tuesday", &countingJob{}))
	assert.Empty(t, s.Entries())
}

func TestScheduler_RunNowReturnsJobError(t *testing.T) {
	s := New(0)
	job := &countingJob{err: errors.New("boom")}
	assert.EqualError(t, s.RunNow(context.Background(), job), "boom")
	assert.Equal(t, int32(1), job.runs.Load())
}

func TestUpdateCacheJob(t *testing.T) {
	ok := UpdateCacheJob{Prefetcher: fakeUpdater{res: market.PrefetchResult{Success: true, RecordsStored: 12}}}
	assert.NoError(t, ok.Run(context.Background()))

	failed := UpdateCacheJob{Prefetcher: fakeUpdater{res: market.PrefetchResult{Error: "quota exhausted"}}}
	assert.EqualError(t, failed.Run(context.Background()), "quota exhausted")
}

func TestCleanupGamesJob(t *testing.T) {
	c := &fakeCleaner{deleted: 3}
	require.NoError(t, CleanupGamesJob{Games: c}.Run(context.Background()))
	assert.True(t, c.called)

	c = &fakeCleaner{err: errors.New("db down")}
	assert.Error(t, CleanupGamesJob{Games: c}.Run(context.Background()))
}
