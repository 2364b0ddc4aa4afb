package scheduler

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/mikestefanello/backlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/bookshelf/internal/tasks"
)

type fakeQueue struct {
	mu    sync.Mutex
	tasks []backlite.Task
	err   error
}

func (q *fakeQueue) Enqueue(_ context.Context, ts ...backlite.Task) ([]string, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.err != nil {
		return nil, q.err
	}
	q.tasks = append(q.tasks, ts...)
	return []string{"id"}, nil
}

func TestCoverPruneScheduler_Disabled(t *testing.T) {
	s := NewCoverPruneScheduler(&fakeQueue{}, "")

	require.NoError(t, s.Start(context.Background()))
	assert.False(t, s.IsRunning())
	assert.Nil(t, s.NextRunTime())
}

func TestCoverPruneScheduler_InvalidSchedule(t *testing.T) {
	s := NewCoverPruneScheduler(&fakeQueue{}, "every tuesday")

	err := s.Start(context.Background())
	assert.Error(t, err)
	assert.False(t, s.IsRunning())
}

func TestCoverPruneScheduler_StartStop(t *testing.T) {
	s := NewCoverPruneScheduler(&fakeQueue{}, "0 3 * * *")
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	require.NoError(t, s.Start(ctx))
	assert.True(t, s.IsRunning())
	require.NoError(t, s.Start(ctx), "starting twice is a no-op")

	next := s.NextRunTime()
	require.NotNil(t, next)
	assert.Equal(t, 3, next.Hour())
	assert.True(t, next.After(time.Now()))

	s.Stop()
	assert.False(t, s.IsRunning())
	assert.Nil(t, s.NextRunTime())
	s.Stop()
}

func TestCoverPruneScheduler_StopsOnContextCancel(t *testing.T) {
	s := NewCoverPruneScheduler(&fakeQueue{}, "*/15 * * * *")
	ctx, cancel := context.WithCancel(context.Background())

	require.NoError(t, s.Start(ctx))
	cancel()

	assert.Eventually(t, func() bool { return !s.IsRunning() }, 2*time.Second, 10*time.Millisecond)
}

func TestCoverPruneScheduler_RunNow(t *testing.T) {
	queue := &fakeQueue{}
	s := NewCoverPruneScheduler(queue, "")

	require.NoError(t, s.RunNow(context.Background()))
	require.Len(t, queue.tasks, 1)
	assert.IsType(t, tasks.PruneCoversTask{}, queue.tasks[0])

	queue.err = errors.New("queue closed")
	assert.Error(t, s.RunNow(context.Background()))
}

func TestValidateSchedule(t *testing.T) {
	valid := []string{"0 * * * *", "*/15 * * * *", "0 3 * * *", "0 0 * * 0"}
	for _, schedule := range valid {
		assert.NoError(t, ValidateSchedule(schedule), schedule)
	}

	invalid := []string{"", "* * *", "61 * * * *", "@daily"}
	for _, schedule := range invalid {
		assert.Error(t, ValidateSchedule(schedule), schedule)
	}
}

func TestDescribe(t *testing.T) {
	assert.Equal(t, "Daily at 03:00", Describe("0 3 * * *"))
	assert.Equal(t, "Custom schedule: 5 4 * * *", Describe("5 4 * * *"))
}

func TestNextRun(t *testing.T) {
	from := time.Date(2024, 5, 1, 10, 30, 0, 0, time.UTC)

	next, err := NextRun("0 * * * *", from)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 5, 1, 11, 0, 0, 0, time.UTC), next)

	_, err = NextRun("bogus", from)
	assert.Error(t, err)
}
