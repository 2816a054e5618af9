package routing

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/nebulavoice/translate-core/core/telemetry"
)

// Registry tracks the live controllers, one per session. All methods are safe
// for concurrent use.
type Registry struct {
	mu          sync.RWMutex
	controllers map[string]*Controller

	metrics *telemetry.Metrics
}

// NewRegistry creates an empty session registry.
func NewRegistry(opts ...RegistryOption) *Registry {
	r := &Registry{
		controllers: map[string]*Controller{},
		metrics:     telemetry.Default(),
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

type RegistryOption func(*Registry)

// WithRegistryMetrics overrides the instrument set; defaults to
// [telemetry.Default].
func WithRegistryMetrics(metrics *telemetry.Metrics) RegistryOption {
	return func(r *Registry) {
		r.metrics = metrics
	}
}

// Open creates and starts a controller for the session. An empty session id
// is replaced with a generated one. Opening an id that is already live
// returns the existing controller untouched.
func (r *Registry) Open(ctx context.Context, sessionID string, opts ...ControllerOption) *Controller {
	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	r.mu.Lock()
	if existing, ok := r.controllers[sessionID]; ok {
		r.mu.Unlock()
		logger.Debug("session already open", "session_id", sessionID)
		return existing
	}

	controller := NewController(sessionID, opts...)
	r.controllers[sessionID] = controller
	r.mu.Unlock()

	controller.Start(ctx)
	r.metrics.SessionOpened(ctx)
	logger.Info("session opened", "session_id", sessionID)
	return controller
}

// Get returns the live controller for the session, if any.
func (r *Registry) Get(sessionID string) (*Controller, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	controller, ok := r.controllers[sessionID]
	return controller, ok
}

// Close tears down one session, flushing its open turn. Closing an unknown
// session is a no-op.
func (r *Registry) Close(ctx context.Context, sessionID string) {
	r.mu.Lock()
	controller, ok := r.controllers[sessionID]
	delete(r.controllers, sessionID)
	r.mu.Unlock()

	if !ok {
		return
	}

	controller.Close()
	r.metrics.SessionClosed(ctx)
	logger.Info("session closed", "session_id", sessionID)
}

// CloseAll tears down every live session.
func (r *Registry) CloseAll(ctx context.Context) {
	r.mu.Lock()
	controllers := r.controllers
	r.controllers = map[string]*Controller{}
	r.mu.Unlock()

	for sessionID, controller := range controllers {
		controller.Close()
		r.metrics.SessionClosed(ctx)
		logger.Info("session closed", "session_id", sessionID)
	}
}

// Len returns the number of live sessions.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.controllers)
}
