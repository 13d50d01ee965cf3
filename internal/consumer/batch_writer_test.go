package consumer

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"github.com/Saifeldin2401/prime-hotels-intranet-sub003/internal/domain"
)

const testTimestamp int64 = 1766702551

// MockEventRepository is a mock implementation of repository.EventRepository
type MockEventRepository struct {
	mock.Mock
}

func (m *MockEventRepository) InsertBatch(ctx context.Context, events []*domain.Event) (int, error) {
	args := m.Called(ctx, events)
	return args.Int(0), args.Error(1)
}

func (m *MockEventRepository) InitSchema(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockEventRepository) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockEventRepository) Close() error {
	args := m.Called()
	return args.Error(0)
}

// ackCounter tracks how many envelopes were acked and nacked
type ackCounter struct {
	acked  atomic.Int32
	nacked atomic.Int32
}

func (c *ackCounter) envelope(eventID string) *Envelope {
	event := &domain.Event{
		EventID:   eventID,
		EventName: "page_view",
		Category:  "engagement",
		SessionID: "a2f1c9e0-4b7d-4f6e-9a1b-3c5d7e9f1a2b",
		UserID:    "user123",
		Timestamp: testTimestamp,
		PagePath:  "/dashboard",
	}

	ack := func(ctx context.Context) error {
		c.acked.Add(1)
		return nil
	}

	nack := func(ctx context.Context) error {
		c.nacked.Add(1)
		return nil
	}

	return NewEnvelope(event, ack, nack)
}

func TestBatchWriter_Start_BatchSizeThreshold(t *testing.T) {
	mockRepo := new(MockEventRepository)
	log := zap.NewNop()

	config := BatchWriterConfig{
		MaxBatchSize: 3,
		FlushTimeout: 10 * time.Second,
	}

	writer := NewBatchWriter(mockRepo, config, log)

	mockRepo.On("InsertBatch", mock.Anything, mock.MatchedBy(func(events []*domain.Event) bool {
		return len(events) == 3
	})).Return(3, nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	counter := &ackCounter{}
	in := make(chan *Envelope, 5)
	go writer.Start(ctx, in)

	in <- counter.envelope("1")
	in <- counter.envelope("2")
	in <- counter.envelope("3")

	assert.Eventually(t, func() bool {
		return counter.acked.Load() == 3
	}, time.Second, 10*time.Millisecond)

	mockRepo.AssertExpectations(t)
	assert.Equal(t, int32(0), counter.nacked.Load())
}

func TestBatchWriter_Start_TimeoutFlush(t *testing.T) {
	mockRepo := new(MockEventRepository)
	log := zap.NewNop()

	config := BatchWriterConfig{
		MaxBatchSize: 10,
		FlushTimeout: 50 * time.Millisecond,
	}

	writer := NewBatchWriter(mockRepo, config, log)

	mockRepo.On("InsertBatch", mock.Anything, mock.MatchedBy(func(events []*domain.Event) bool {
		return len(events) == 2
	})).Return(2, nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	counter := &ackCounter{}
	in := make(chan *Envelope, 5)
	go writer.Start(ctx, in)

	// Fewer envelopes than the batch threshold; the timer has to flush them.
	in <- counter.envelope("1")
	in <- counter.envelope("2")

	assert.Eventually(t, func() bool {
		return counter.acked.Load() == 2
	}, time.Second, 10*time.Millisecond)

	mockRepo.AssertExpectations(t)
}

func TestBatchWriter_Start_InsertFailureNacksBatch(t *testing.T) {
	mockRepo := new(MockEventRepository)
	log := zap.NewNop()

	config := BatchWriterConfig{
		MaxBatchSize: 2,
		FlushTimeout: 10 * time.Second,
	}

	writer := NewBatchWriter(mockRepo, config, log)

	insertErr := errors.New("database connection error")
	mockRepo.On("InsertBatch", mock.Anything, mock.Anything).Return(0, insertErr)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	counter := &ackCounter{}
	in := make(chan *Envelope, 5)
	go writer.Start(ctx, in)

	in <- counter.envelope("1")
	in <- counter.envelope("2")

	assert.Eventually(t, func() bool {
		return counter.nacked.Load() == 2
	}, time.Second, 10*time.Millisecond)

	mockRepo.AssertExpectations(t)
	assert.Equal(t, int32(0), counter.acked.Load())
}

func TestBatchWriter_Start_PartialInsertNacksBatch(t *testing.T) {
	mockRepo := new(MockEventRepository)
	log := zap.NewNop()

	config := BatchWriterConfig{
		MaxBatchSize: 3,
		FlushTimeout: 10 * time.Second,
	}

	writer := NewBatchWriter(mockRepo, config, log)

	// Repository reports fewer rows than it was given.
	mockRepo.On("InsertBatch", mock.Anything, mock.MatchedBy(func(events []*domain.Event) bool {
		return len(events) == 3
	})).Return(2, nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	counter := &ackCounter{}
	in := make(chan *Envelope, 5)
	go writer.Start(ctx, in)

	in <- counter.envelope("1")
	in <- counter.envelope("2")
	in <- counter.envelope("3")

	assert.Eventually(t, func() bool {
		return counter.nacked.Load() == 3
	}, time.Second, 10*time.Millisecond)

	mockRepo.AssertExpectations(t)
}

func TestBatchWriter_Start_GracefulShutdownFlushesRemainder(t *testing.T) {
	mockRepo := new(MockEventRepository)
	log := zap.NewNop()

	config := BatchWriterConfig{
		MaxBatchSize: 10,
		FlushTimeout: 10 * time.Second,
	}

	writer := NewBatchWriter(mockRepo, config, log)

	mockRepo.On("InsertBatch", mock.Anything, mock.MatchedBy(func(events []*domain.Event) bool {
		return len(events) == 2
	})).Return(2, nil)

	ctx, cancel := context.WithCancel(context.Background())

	counter := &ackCounter{}
	in := make(chan *Envelope, 5)
	done := make(chan bool)

	go func() {
		writer.Start(ctx, in)
		done <- true
	}()

	in <- counter.envelope("1")
	in <- counter.envelope("2")

	// Give time for messages to be received
	time.Sleep(10 * time.Millisecond)

	cancel()

	select {
	case <-done:
	case <-time.After(200 * time.Millisecond):
		t.Fatal("Graceful shutdown took too long")
	}

	mockRepo.AssertExpectations(t)
	assert.Equal(t, int32(2), counter.acked.Load())
}

func TestBatchWriter_Start_InputChannelClosed(t *testing.T) {
	mockRepo := new(MockEventRepository)
	log := zap.NewNop()

	config := BatchWriterConfig{
		MaxBatchSize: 10,
		FlushTimeout: 10 * time.Second,
	}

	writer := NewBatchWriter(mockRepo, config, log)

	mockRepo.On("InsertBatch", mock.Anything, mock.MatchedBy(func(events []*domain.Event) bool {
		return len(events) == 2
	})).Return(2, nil)

	ctx := context.Background()

	counter := &ackCounter{}
	in := make(chan *Envelope, 5)
	done := make(chan bool)

	go func() {
		writer.Start(ctx, in)
		done <- true
	}()

	in <- counter.envelope("1")
	in <- counter.envelope("2")

	close(in)

	select {
	case <-done:
	case <-time.After(200 * time.Millisecond):
		t.Fatal("Shutdown took too long after input channel closed")
	}

	mockRepo.AssertExpectations(t)
}

func TestBatchWriter_Start_EmptyBatchNotFlushed(t *testing.T) {
	mockRepo := new(MockEventRepository)
	log := zap.NewNop()

	config := BatchWriterConfig{
		MaxBatchSize: 10,
		FlushTimeout: 50 * time.Millisecond,
	}

	writer := NewBatchWriter(mockRepo, config, log)

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	in := make(chan *Envelope, 5)
	go writer.Start(ctx, in)

	// Don't send any envelopes
	<-ctx.Done()

	mockRepo.AssertNotCalled(t, "InsertBatch")
}

func TestBatchWriter_Start_MultipleBatches(t *testing.T) {
	mockRepo := new(MockEventRepository)
	log := zap.NewNop()

	config := BatchWriterConfig{
		MaxBatchSize: 2,
		FlushTimeout: 10 * time.Second,
	}

	writer := NewBatchWriter(mockRepo, config, log)

	mockRepo.On("InsertBatch", mock.Anything, mock.MatchedBy(func(events []*domain.Event) bool {
		return len(events) == 2
	})).Return(2, nil).Times(2)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	counter := &ackCounter{}
	in := make(chan *Envelope, 10)
	go writer.Start(ctx, in)

	in <- counter.envelope("1")
	in <- counter.envelope("2")
	in <- counter.envelope("3")
	in <- counter.envelope("4")

	assert.Eventually(t, func() bool {
		return counter.acked.Load() == 4
	}, time.Second, 10*time.Millisecond)

	mockRepo.AssertExpectations(t)
	mockRepo.AssertNumberOfCalls(t, "InsertBatch", 2)
}
