package service

import (
	"sync"
	"sync/atomic"
	"time"

	"appointment-scheduling-service/internal/domain/entity"

	"github.com/sirupsen/logrus"
)

const (
	// Interval for cleaning up stale slot mutexes
	slotMutexCleanupInterval = 10 * time.Minute

	// How long a mutex must be unused before cleanup
	slotMutexStaleThreshold = 10 * time.Minute
)

// SlotLocker serializes schedule mutations per doctor and calendar day.
//
// Create runs validate -> conflict check -> insert as one critical section
// under the lock for (doctorName, date). Different doctors or days never
// contend with each other.
//
// Mutexes are created lazily and evicted by a background loop once unused
// for slotMutexStaleThreshold. Call Stop() during graceful shutdown.
type SlotLocker struct {
	log *logrus.Logger

	slotMu sync.Map // map[string]*mutexWithTimestamp

	stopChan chan struct{}
	wg       sync.WaitGroup
	stopped  atomic.Bool
}

// mutexWithTimestamp tracks mutex usage for cleanup
type mutexWithTimestamp struct {
	mu       sync.Mutex
	lastUsed atomic.Int64 // Unix timestamp
}

func NewSlotLocker(log *logrus.Logger) *SlotLocker {
	s := &SlotLocker{
		log:      log,
		stopChan: make(chan struct{}),
	}

	s.wg.Add(1)
	go s.cleanupMutexMapLoop()

	return s
}

// Stop gracefully shuts down the cleanup loop.
// Safe to call multiple times.
func (s *SlotLocker) Stop() {
	if s.stopped.CompareAndSwap(false, true) {
		close(s.stopChan)
		s.wg.Wait()
		s.log.Info("SlotLocker stopped")
	}
}

// Lock blocks until the caller owns the schedule of doctorName on date and
// returns the matching unlock function.
func (s *SlotLocker) Lock(doctorName string, date time.Time) func() {
	key := slotKey(doctorName, date)

	for {
		mt := s.getSlotMutex(key)
		mt.mu.Lock()

		// The cleanup loop may have evicted this mutex between lookup and
		// Lock. Only the mutex currently registered for key is authoritative.
		if current, ok := s.slotMu.Load(key); ok && current.(*mutexWithTimestamp) == mt {
			mt.lastUsed.Store(time.Now().Unix())
			return mt.mu.Unlock
		}
		mt.mu.Unlock()
	}
}

func slotKey(doctorName string, date time.Time) string {
	return date.Format(entity.DateLayout) + "|" + doctorName
}

// getSlotMutex returns mutex for a specific slot key
func (s *SlotLocker) getSlotMutex(key string) *mutexWithTimestamp {
	mt, _ := s.slotMu.LoadOrStore(key, &mutexWithTimestamp{})
	result := mt.(*mutexWithTimestamp)
	result.lastUsed.Store(time.Now().Unix())
	return result
}

// cleanupMutexMapLoop runs in background to clean stale mutexes
func (s *SlotLocker) cleanupMutexMapLoop() {
	defer s.wg.Done()

	ticker := time.NewTicker(slotMutexCleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stopChan:
			s.log.Debug("Slot mutex cleanup goroutine stopping")
			return
		case <-ticker.C:
			s.cleanupStaleMutexes(time.Now())
		}
	}
}

// cleanupStaleMutexes removes mutexes unused since now-slotMutexStaleThreshold.
// lastUsed is checked while holding the mutex so an active holder is never evicted.
func (s *SlotLocker) cleanupStaleMutexes(now time.Time) int {
	cutoffTime := now.Add(-slotMutexStaleThreshold).Unix()
	var cleaned int

	s.slotMu.Range(func(key, value any) bool {
		mt, ok := value.(*mutexWithTimestamp)
		if !ok {
			return true
		}

		if mt.mu.TryLock() {
			if mt.lastUsed.Load() < cutoffTime {
				s.slotMu.Delete(key)
				cleaned++
			}
			mt.mu.Unlock()
		}
		return true
	})

	if cleaned > 0 {
		s.log.Debugf("Cleaned up %d stale slot mutexes", cleaned)
	}
	return cleaned
}
