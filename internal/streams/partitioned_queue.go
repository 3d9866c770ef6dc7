package streams

import (
	"encoding/binary"
	"errors"
	"hash/fnv"
	"sync"
)

var (
	ErrQueueClosed = errors.New("queue closed")
	ErrQueueFull   = errors.New("queue partition full")
)

// PartitionedQueue routes messages to a fixed set of buffered channels by key.
// Messages with the same key always land on the same partition.
type PartitionedQueue[T any] struct {
	partitions []chan T

	mu     sync.RWMutex
	closed bool
}

const (
	defaultNumPartitions = 8
	defaultBuffer        = 64
)

// NewPartitionedQueue creates a queue with numPartitions channels of the given buffer size.
// Non-positive arguments fall back to the defaults.
func NewPartitionedQueue[T any](numPartitions, buffer int) *PartitionedQueue[T] {
	if numPartitions <= 0 {
		numPartitions = defaultNumPartitions
	}
	if buffer < 0 {
		buffer = defaultBuffer
	}
	channels := make([]chan T, numPartitions)
	for i := range channels {
		channels[i] = make(chan T, buffer)
	}
	return &PartitionedQueue[T]{partitions: channels}
}

func (queue *PartitionedQueue[T]) PartitionCount() int { return len(queue.partitions) }

// TryPublish enqueues msg without blocking. It fails with ErrQueueFull when the
// target partition has no free slot and with ErrQueueClosed after Close.
func (queue *PartitionedQueue[T]) TryPublish(partitionKey string, msg T) error {
	queue.mu.RLock()
	defer queue.mu.RUnlock()

	if queue.closed {
		return ErrQueueClosed
	}

	idx := partitionIndex(partitionKey, len(queue.partitions))
	select {
	case queue.partitions[idx] <- msg:
		return nil
	default:
		return ErrQueueFull
	}
}

// Close stops accepting messages. Consumers drain what is already buffered.
func (queue *PartitionedQueue[T]) Close() {
	queue.mu.Lock()
	defer queue.mu.Unlock()

	if queue.closed {
		return
	}
	queue.closed = true
	for _, ch := range queue.partitions {
		close(ch)
	}
}

func (queue *PartitionedQueue[T]) partition(idx int) <-chan T {
	return queue.partitions[idx]
}

func partitionIndex(key string, n int) int {
	hash := fnv.New32a()
	_, _ = hash.Write([]byte(key))
	sum := hash.Sum(nil)
	v := binary.LittleEndian.Uint32(sum)
	return int(v % uint32(n))
}
