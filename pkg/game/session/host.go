// Package session shares one generated layout with every participant of a
// websocket session. The host runs generation once, off the request path,
// and replays the published layout to participants that join later.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"sync"

	"github.com/coder/websocket"

	"gallerymaze/pkg/game/generator"
	"gallerymaze/pkg/game/instantiate"
)

var (
	// ErrAlreadyStarted is returned by Start after the first call
	ErrAlreadyStarted = errors.New("layout generation already started")

	// ErrUnknownParticipant is returned by Hub.Send for ids not connected
	ErrUnknownParticipant = errors.New("unknown participant")
)

// Option customises a Host
type Option func(*Host)

// WithLogger replaces the default standard logger
func WithLogger(l generator.Logger) Option {
	return func(h *Host) {
		if l != nil {
			h.logger = l
		}
	}
}

// WithSpacing sets the world spacing used to instantiate rooms
func WithSpacing(s instantiate.Spacing) Option {
	return func(h *Host) {
		h.spacing = s
	}
}

// Host owns the generator for one session and distributes its result
type Host struct {
	gen      *generator.Generator
	hub      *Hub
	registry *instantiate.Registry
	spacing  instantiate.Spacing
	logger   generator.Logger

	mu       sync.Mutex
	started  bool
	sequence uint64
	latest   []byte
	outcome  generator.Outcome
	done     chan struct{}
}

// NewHost creates a host that publishes gen's layout to hub
func NewHost(gen *generator.Generator, hub *Hub, opts ...Option) *Host {
	h := &Host{
		gen:      gen,
		hub:      hub,
		registry: instantiate.NewRegistry(gen.Catalog()),
		spacing:  instantiate.DefaultSpacing,
		logger:   log.Default(),
		done:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Start begins generation in the background. It may be called once.
func (h *Host) Start(ctx context.Context) error {
	h.mu.Lock()
	if h.started {
		h.mu.Unlock()
		return ErrAlreadyStarted
	}
	h.started = true
	h.mu.Unlock()

	results := h.gen.GenerateAsync(ctx)
	go func() {
		defer close(h.done)
		h.publish(<-results)
	}()
	return nil
}

// Done is closed once the layout (or its failure) has been published
func (h *Host) Done() <-chan struct{} {
	return h.done
}

// Outcome returns the generation outcome. Valid after Done is closed.
func (h *Host) Outcome() generator.Outcome {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.outcome
}

// publish stores and broadcasts the outcome. The host lock is held while
// broadcasting so a joining participant gets either the broadcast or the
// replay, never both.
func (h *Host) publish(out generator.Outcome) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.outcome = out
	msg, err := h.envelope(h.layoutMessage(out))
	if err != nil {
		h.logger.Printf("session: encode layout: %v", err)
		return
	}
	h.latest = msg
	h.hub.Broadcast(msg)
	h.logger.Printf("session: layout published to %d participant(s)", h.hub.Count())
}

func (h *Host) layoutMessage(out generator.Outcome) (string, any) {
	if out.Err != nil {
		attempts := 0
		if out.Result != nil {
			attempts = out.Result.Attempts
		}
		return TypeLayoutFailed, LayoutFailed{Attempts: attempts, Error: out.Err.Error()}
	}

	h.registry.Clear()
	if _, err := instantiate.Build(out.Result, h.registry, h.spacing); err != nil {
		return TypeLayoutFailed, LayoutFailed{Attempts: out.Result.Attempts, Error: err.Error()}
	}
	return TypeLayoutGenerated, LayoutGenerated{Layout: out.Result, Rooms: h.registry.Instances()}
}

// envelope encodes the next message in sequence. Callers hold h.mu.
func (h *Host) envelope(typ string, payload any) ([]byte, error) {
	h.sequence++
	return json.Marshal(Envelope{Sequence: h.sequence, Type: typ, Payload: payload})
}

// ServeHTTP upgrades the request to a websocket participant connection
func (h *Host) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{InsecureSkipVerify: true})
	if err != nil {
		return
	}
	defer conn.Close(websocket.StatusNormalClosure, "")

	id, err := h.join(conn)
	defer h.hub.Remove(id)
	if err != nil {
		h.logger.Printf("session: welcome failed: %v", err)
		return
	}

	for {
		_, data, err := conn.Read(r.Context())
		if err != nil {
			return
		}
		var intent Intent
		if err := json.Unmarshal(data, &intent); err != nil {
			continue
		}
		switch intent.Type {
		case IntentRequestLayout:
			h.mu.Lock()
			latest := h.latest
			h.mu.Unlock()
			if latest != nil {
				_ = h.hub.Send(id, latest)
			}
		}
	}
}

// join registers the participant, sends the welcome and replays any published layout
func (h *Host) join(conn *websocket.Conn) (string, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	id := h.hub.Add(conn)
	welcome, err := h.envelope(TypeWelcome, Welcome{Participant: id, Ready: h.latest != nil})
	if err != nil {
		return id, err
	}
	if err := write(conn, welcome); err != nil {
		return id, err
	}
	if h.latest != nil {
		if err := write(conn, h.latest); err != nil {
			return id, err
		}
	}
	return id, nil
}
