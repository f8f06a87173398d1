package dnd

import (
	"sync"

	"github.com/grovetools/dragdrop/errors"
)

// Backend translates a native input modality into manager actions and owns
// the attachment of handlers to native nodes.
type Backend interface {
	// Setup installs the backend's global listeners. It is called when the
	// first handler registers.
	Setup() error
	// Teardown removes everything Setup installed.
	Teardown()

	ConnectDragSource(id Identifier, node any) (Unsubscribe, error)
	ConnectDragPreview(id Identifier, node any, options any) (Unsubscribe, error)
	ConnectDropTarget(id Identifier, node any) (Unsubscribe, error)
}

// BackendFactory builds a backend bound to m.
type BackendFactory func(m *Manager) Backend

var (
	modalityMu sync.Mutex
	modalities = make(map[string]struct{})
)

// ClaimModality reserves a native input modality for the calling backend.
// Only one backend per modality may be set up in the process at a time.
func ClaimModality(name string) (func(), error) {
	modalityMu.Lock()
	defer modalityMu.Unlock()

	if _, taken := modalities[name]; taken {
		return nil, errors.BackendAlreadyActive(name)
	}
	modalities[name] = struct{}{}

	return OnceUnsubscribe(func() {
		modalityMu.Lock()
		delete(modalities, name)
		modalityMu.Unlock()
	}), nil
}

// OnceUnsubscribe wraps fn so that repeated calls run it once.
func OnceUnsubscribe(fn func()) Unsubscribe {
	var once sync.Once
	return func() {
		once.Do(fn)
	}
}
