package appointment

import "sync"

// SlotLocker serializes booking writes per barber inside this process.
// The partial unique index on (barber_id, starts_at) still guards writes
// coming from other processes.
type SlotLocker struct {
	mu    sync.Mutex
	locks map[uint]*slotLock
}

type slotLock struct {
	mu   sync.Mutex
	refs int
}

func NewSlotLocker() *SlotLocker {
	return &SlotLocker{locks: make(map[uint]*slotLock)}
}

// Lock blocks until the barber's lock is held and returns its release.
// Bookings without a barber share key 0.
func (l *SlotLocker) Lock(barberID uint) func() {
	l.mu.Lock()
	sl, ok := l.locks[barberID]
	if !ok {
		sl = &slotLock{}
		l.locks[barberID] = sl
	}
	sl.refs++
	l.mu.Unlock()

	sl.mu.Lock()

	return func() {
		sl.mu.Unlock()

		l.mu.Lock()
		sl.refs--
		if sl.refs == 0 {
			delete(l.locks, barberID)
		}
		l.mu.Unlock()
	}
}
