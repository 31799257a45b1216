package dectmac

import "sync"

// scratchBufferCapacity is sized for ten full RSSI runs of 240 samples,
// matching the bump-allocator sizing of the reference scratch buffer.
const scratchBufferCapacity = 2400

// scratchBuffer is the single shared byte buffer written by the event
// handler (standing in for interrupt context) and read by the operation
// currently holding a result guard. Writer and reader never need the lock
// at the same time for long: the handler takes it only for the duration
// of a single append, and an operation takes it either briefly (to clear
// the buffer) or for the lifetime of a returned guard.
type scratchBuffer struct {
	mu  sync.Mutex
	buf []byte
}

func newScratchBuffer() *scratchBuffer {
	return &scratchBuffer{buf: make([]byte, 0, scratchBufferCapacity)}
}

// clear resets the buffer to empty at the start of an operation. Failing
// to acquire the lock here means a previous result guard was never
// released or a suspended operation was abandoned mid-flight — both are
// unrecoverable per the driver's cancellation policy.
func (s *scratchBuffer) clear() {
	if !s.mu.TryLock() {
		sequenceViolation("scratch buffer in use; guard leaked or an operation was abandoned")
	}
	s.buf = s.buf[:0]
	s.mu.Unlock()
}

// tryAppend is called from the event handler to copy event payload bytes
// into the buffer. ok is false when the lock is held (a guard from a
// previous operation is somehow still live) or the buffer has no room for
// data; callers on the hot path treat that as "no room" rather than fatal,
// except where the protocol guarantees room (see phy.go's PCC handling).
func (s *scratchBuffer) tryAppend(data []byte) (start int, ok bool) {
	if !s.mu.TryLock() {
		return 0, false
	}
	defer s.mu.Unlock()
	start = len(s.buf)
	if cap(s.buf)-len(s.buf) < len(data) {
		return start, false
	}
	s.buf = append(s.buf, data...)
	return start, true
}

// lockForResult acquires the buffer for a result guard that outlives the
// enclosing method call. The event handler always releases its own
// transient locks before the operation's event loop terminates, so this
// must succeed; failure is a sequencing bug.
func (s *scratchBuffer) lockForResult() {
	if !s.mu.TryLock() {
		sequenceViolation("scratch buffer unexpectedly locked when building result guard")
	}
}

func (s *scratchBuffer) unlock() {
	s.mu.Unlock()
}

func (s *scratchBuffer) slice(start, end int) []byte {
	return s.buf[start:end]
}
