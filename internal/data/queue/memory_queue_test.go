package queue

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryQueue_EnqueueDequeue(t *testing.T) {
	q := NewMemoryQueue[string](2)
	t.Cleanup(func() { _ = q.Close() })

	assert.Equal(t, EnqueueAccepted, q.Enqueue("a.py"))
	assert.Equal(t, EnqueueAccepted, q.Enqueue("b.py"))
	assert.Equal(t, 2, q.Len())

	batch, err := q.DequeueBatch(context.Background(), 2, time.Millisecond)
	require.NoError(t, err)
	assert.Equal(t, []string{"a.py", "b.py"}, batch)
}

func TestMemoryQueue_FullQueueDrops(t *testing.T) {
	q := NewMemoryQueue[string](1)
	t.Cleanup(func() { _ = q.Close() })

	assert.Equal(t, EnqueueAccepted, q.Enqueue("a.py"))
	assert.Equal(t, EnqueueDropped, q.Enqueue("b.py"))
}

func TestMemoryQueue_EmptyReturnsImmediately(t *testing.T) {
	q := NewMemoryQueue[int](1)
	t.Cleanup(func() { _ = q.Close() })

	batch, err := q.DequeueBatch(context.Background(), 1, 0)
	require.NoError(t, err)
	assert.Empty(t, batch)

	batch, err = q.DequeueBatch(context.Background(), 1, 5*time.Millisecond)
	require.NoError(t, err)
	assert.Empty(t, batch)
}

func TestMemoryQueue_BlockingWait(t *testing.T) {
	q := NewMemoryQueue[int](1)
	t.Cleanup(func() { _ = q.Close() })

	go func() {
		time.Sleep(10 * time.Millisecond)
		q.Enqueue(7)
	}()
	batch, err := q.DequeueBatch(context.Background(), 4, -1)
	require.NoError(t, err)
	assert.Equal(t, []int{7}, batch)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	_, err = q.DequeueBatch(ctx, 1, -1)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestMemoryQueue_CloseReturnsEOFWhenDrained(t *testing.T) {
	q := NewMemoryQueue[string](1)
	assert.Equal(t, EnqueueAccepted, q.Enqueue("a.py"))
	require.NoError(t, q.Close())
	require.NoError(t, q.Close())
	assert.Equal(t, EnqueueDropped, q.Enqueue("b.py"))

	batch, err := q.DequeueBatch(context.Background(), 2, 0)
	assert.Equal(t, []string{"a.py"}, batch)
	assert.ErrorIs(t, err, io.EOF)

	batch, err = q.DequeueBatch(context.Background(), 1, -1)
	assert.ErrorIs(t, err, io.EOF)
	assert.Empty(t, batch)
}
