package lock

import "sync"

// Keyed hands out one mutex per key. It serializes in-process work on the
// same entity, e.g. mutations of a single user's cart.
type Keyed struct {
	locks sync.Map
}

// Acquire locks the mutex bound to key and returns its release func.
func (k *Keyed) Acquire(key string) func() {
	if v, ok := k.locks.Load(key); ok {
		m := v.(*sync.Mutex)
		m.Lock()
		return m.Unlock
	}

	m := &sync.Mutex{}
	actual, _ := k.locks.LoadOrStore(key, m)
	mtx := actual.(*sync.Mutex)
	mtx.Lock()
	return mtx.Unlock
}
