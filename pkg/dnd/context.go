package dnd

import (
	"sync"
)

type globalKey struct{}

// GlobalContext is the key of the process-wide default manager.
var GlobalContext any = globalKey{}

type sharedManager struct {
	manager *Manager
	refs    int
}

var (
	sharedMu sync.Mutex
	shared   = make(map[any]*sharedManager)
)

// Acquire returns the manager stored under key, creating it with factory on
// first use. Every call must be paired with a call to the returned release;
// the last release tears the manager down and clears the slot. A nil key
// means GlobalContext. Keys must be comparable.
func Acquire(key any, factory BackendFactory, opts ...Option) (*Manager, Unsubscribe) {
	if key == nil {
		key = GlobalContext
	}

	sharedMu.Lock()
	defer sharedMu.Unlock()

	slot, ok := shared[key]
	if !ok {
		slot = &sharedManager{manager: NewManager(factory, opts...)}
		shared[key] = slot
	}
	slot.refs++

	return slot.manager, OnceUnsubscribe(func() {
		sharedMu.Lock()
		defer sharedMu.Unlock()

		slot.refs--
		if slot.refs > 0 {
			return
		}
		slot.manager.Teardown()
		if shared[key] == slot {
			delete(shared, key)
		}
	})
}
