package handlers

import (
	"github.com/oskarw/mellovote/internal/errors"
	"github.com/oskarw/mellovote/internal/logger"
	"github.com/oskarw/mellovote/internal/session"
	"github.com/oskarw/mellovote/internal/websocket"
)

// DefaultClientPort is where the participant web client is served
const DefaultClientPort = 3003

// Handlers holds all HTTP handler dependencies
type Handlers struct {
	Session    session.Servicer
	Hub        *websocket.Hub
	Log        logger.Logger
	LocalIP    func() string
	ClientPort int
}

// New creates a new Handlers instance with all dependencies
func New(svc session.Servicer, hub *websocket.Hub, log logger.Logger, localIP func() string) *Handlers {
	return &Handlers{
		Session:    svc,
		Hub:        hub,
		Log:        log,
		LocalIP:    localIP,
		ClientPort: DefaultClientPort,
	}
}

// warned filters a persistence warning out of an operation result. The
// operation itself succeeded; the warning is logged and the divergence
// between memory and disk stands until the next successful snapshot.
func (h *Handlers) warned(err error) error {
	if err == nil {
		return nil
	}
	if errors.IsPersistenceWarning(err) {
		h.Log.Warn("Operation succeeded but snapshot failed", "error", err)
		return nil
	}
	return err
}
