package remote

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"github.com/grovetools/dragdrop/config"
	"github.com/grovetools/dragdrop/errors"
	"github.com/grovetools/dragdrop/pkg/backend/pointer"
	"github.com/grovetools/dragdrop/pkg/dnd"
)

const (
	writeWait    = 5 * time.Second
	sendBuffer   = 32
	shutdownWait = 3 * time.Second
)

// Server feeds websocket pointer events into a manager's pointer backend.
//
// The engine is single-threaded; the server holds one lock around every
// call into it, including the delayed messages returned by the backend.
type Server struct {
	manager *dnd.Manager
	backend *pointer.Backend
	cfg     config.RemoteConfig
	log     *logrus.Entry

	upgrader websocket.Upgrader

	engineMu sync.Mutex

	clientsMu sync.Mutex
	clients   map[*client]struct{}

	unsubscribe dnd.Unsubscribe
	pending     sync.WaitGroup
}

type client struct {
	conn *websocket.Conn
	send chan Message
	done chan struct{}
	once sync.Once
}

func (c *client) close() {
	c.once.Do(func() {
		close(c.done)
		c.conn.Close()
	})
}

// NewServer wires a server to m, which must use the pointer backend.
func NewServer(m *dnd.Manager, cfg config.RemoteConfig, log *logrus.Entry) (*Server, error) {
	backend, ok := pointer.From(m)
	if !ok {
		return nil, errors.New(errors.ErrCodeInvalidInput, "remote input requires a manager with the pointer backend")
	}
	if cfg.Path == "" {
		cfg.Path = config.DefaultRemotePath
	}
	if log == nil {
		log = m.Logger()
	}

	s := &Server{
		manager: m,
		backend: backend,
		cfg:     cfg,
		log:     log.WithField("listen", cfg.Listen),
		clients: make(map[*client]struct{}),
	}
	s.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     s.checkOrigin(),
	}

	s.engineMu.Lock()
	s.unsubscribe = m.Subscribe(s.broadcastSnapshot)
	s.engineMu.Unlock()
	return s, nil
}

// checkOrigin returns nil, which selects gorilla's same-origin check, unless
// origins are configured.
func (s *Server) checkOrigin() func(r *http.Request) bool {
	if len(s.cfg.AllowedOrigins) == 0 {
		return nil
	}
	allowed := make(map[string]bool, len(s.cfg.AllowedOrigins))
	for _, o := range s.cfg.AllowedOrigins {
		allowed[o] = true
	}
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		return origin == "" || allowed["*"] || allowed[origin]
	}
}

// Handler serves the websocket endpoint at the configured path.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle(s.cfg.Path, s)
	return mux
}

// ServeHTTP upgrades the request and serves one client until it leaves.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.WithError(err).Debug("Websocket upgrade failed")
		return
	}
	if s.cfg.ReadLimit > 0 {
		conn.SetReadLimit(s.cfg.ReadLimit)
	}

	c := &client{conn: conn, send: make(chan Message, sendBuffer), done: make(chan struct{})}
	s.clientsMu.Lock()
	s.clients[c] = struct{}{}
	s.clientsMu.Unlock()

	log := s.log.WithField("remote", r.RemoteAddr)
	log.Info("Pointer client connected")

	go s.writeLoop(c)

	s.engineMu.Lock()
	snap := s.manager.Snapshot()
	s.engineMu.Unlock()
	s.enqueue(c, Message{Type: MessageSnapshot, Snapshot: &snap})

	s.readLoop(c, log)

	s.clientsMu.Lock()
	delete(s.clients, c)
	s.clientsMu.Unlock()
	c.close()
	log.Info("Pointer client disconnected")
}

func (s *Server) readLoop(c *client, log *logrus.Entry) {
	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.WithError(err).Warn("Pointer client read failed")
			}
			return
		}

		var ev Event
		if err := json.Unmarshal(data, &ev); err != nil {
			s.enqueue(c, Message{Type: MessageError, Error: errors.Wrap(err, errors.ErrCodeInvalidInput, "malformed pointer event")})
			continue
		}
		if err := s.Dispatch(ev); err != nil {
			log.WithError(err).Debug("Rejected pointer event")
			s.enqueue(c, Message{Type: MessageError, Error: asDragError(err)})
		}
	}
}

func (s *Server) writeLoop(c *client) {
	for {
		select {
		case msg := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteJSON(msg); err != nil {
				c.close()
				return
			}
		case <-c.done:
			return
		}
	}
}

func (s *Server) enqueue(c *client, msg Message) {
	select {
	case c.send <- msg:
	case <-c.done:
	default:
		s.log.Warn("Pointer client is not keeping up, dropping message")
	}
}

// broadcastSnapshot runs inside a dispatch, with engineMu held.
func (s *Server) broadcastSnapshot() {
	snap := s.manager.Snapshot()
	s.clientsMu.Lock()
	defer s.clientsMu.Unlock()
	for c := range s.clients {
		s.enqueue(c, Message{Type: MessageSnapshot, Snapshot: &snap})
	}
}

// Dispatch applies one event to the backend.
func (s *Server) Dispatch(ev Event) error {
	msg, err := ev.toMsg()
	if err != nil {
		return err
	}

	s.engineMu.Lock()
	defer s.engineMu.Unlock()
	if ev.Type == EventCancel {
		s.backend.Cancel()
		return nil
	}
	s.run(s.backend.Update(msg))
	return nil
}

// run executes a backend command off the lock and feeds its message back.
// Called with engineMu held.
func (s *Server) run(cmd tea.Cmd) {
	if cmd == nil {
		return
	}
	s.pending.Add(1)
	go func() {
		defer s.pending.Done()
		msg := cmd()
		if msg == nil {
			return
		}
		s.engineMu.Lock()
		defer s.engineMu.Unlock()
		s.run(s.backend.Update(msg))
	}()
}

// Wait blocks until every command started by the backend has reported back.
func (s *Server) Wait() {
	s.pending.Wait()
}

// ListenAndServe serves on the configured address until ctx is done.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Listen,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownWait)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	s.log.WithField("path", s.cfg.Path).Info("Serving pointer input")
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	s.Close()
	return nil
}

// Close disconnects every client and stops broadcasting.
func (s *Server) Close() {
	s.engineMu.Lock()
	if s.unsubscribe != nil {
		s.unsubscribe()
	}
	s.engineMu.Unlock()

	s.clientsMu.Lock()
	for c := range s.clients {
		c.close()
	}
	s.clientsMu.Unlock()
}

func asDragError(err error) *errors.DragError {
	if de, ok := err.(*errors.DragError); ok {
		return de
	}
	return errors.Wrap(err, errors.ErrCodeInternal, err.Error())
}
