package dnd

import (
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/grovetools/dragdrop/logging"
)

// Option configures a Manager.
type Option func(*Manager)

// WithLogger replaces the default "dnd" component logger.
func WithLogger(log *logrus.Entry) Option {
	return func(m *Manager) {
		m.log = log
	}
}

// WithEagerSetup sets the backend up at construction instead of on the first
// registration. A setup failure is logged and retried on registration.
func WithEagerSetup() Option {
	return func(m *Manager) {
		m.eager = true
	}
}

// Manager owns one store, registry, monitor and backend.
type Manager struct {
	id       uuid.UUID
	store    *Store
	registry *Registry
	monitor  *monitor
	actions  *Actions
	backend  Backend
	log      *logrus.Entry

	eager   bool
	isSetUp bool
}

// NewManager builds a manager and its backend. A nil factory yields a
// manager without native input, driven only through GetActions.
func NewManager(factory BackendFactory, opts ...Option) *Manager {
	m := &Manager{
		id:       uuid.New(),
		store:    NewStore(),
		registry: newRegistry(),
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.log == nil {
		m.log = logging.NewLogger("dnd")
	}
	m.log = m.log.WithField("manager", m.id.String())

	m.monitor = &monitor{store: m.store, registry: m.registry}
	m.actions = &Actions{store: m.store, registry: m.registry, monitor: m.monitor, log: m.log}
	m.registry.onCountChange = m.handleCountChange

	if factory != nil {
		m.backend = factory(m)
	}
	if m.eager {
		if err := m.Setup(); err != nil {
			m.log.WithError(err).Warn("Eager backend setup failed")
		}
	}
	return m
}

func (m *Manager) handleCountChange(count int) error {
	switch {
	case count > 0 && !m.isSetUp:
		return m.Setup()
	case count == 0 && m.isSetUp && !m.eager:
		m.Teardown()
	}
	return nil
}

// ID identifies the manager in logs.
func (m *Manager) ID() uuid.UUID { return m.id }

func (m *Manager) GetMonitor() Monitor    { return m.monitor }
func (m *Manager) GetRegistry() *Registry { return m.registry }
func (m *Manager) GetActions() *Actions   { return m.actions }
func (m *Manager) GetBackend() Backend    { return m.backend }

// Logger returns the manager's logger, tagged with its id. Backends derive
// their loggers from it.
func (m *Manager) Logger() *logrus.Entry { return m.log }

// GetState returns a copy of the store snapshot.
func (m *Manager) GetState() State { return m.store.GetState() }

// Subscribe is notified after every dispatch that changed the state.
func (m *Manager) Subscribe(fn func()) Unsubscribe {
	return m.store.Subscribe(fn)
}

// IsSetUp reports whether the backend is currently set up.
func (m *Manager) IsSetUp() bool { return m.isSetUp }

// Setup sets the backend up if it is not already.
func (m *Manager) Setup() error {
	if m.isSetUp || m.backend == nil {
		return nil
	}
	if err := m.backend.Setup(); err != nil {
		return err
	}
	m.isSetUp = true
	m.log.Debug("Backend set up")
	return nil
}

// Teardown releases the backend. The drag state is left untouched.
func (m *Manager) Teardown() {
	if !m.isSetUp {
		return
	}
	m.backend.Teardown()
	m.isSetUp = false
	m.log.Debug("Backend torn down")
}
