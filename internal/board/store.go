package board

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/idilsaglam/todo/internal/itemsvc"
)

// ErrClosed is returned by Store operations after Close.
var ErrClosed = errors.New("board closed")

// Store drives Update without a render loop. Commands run synchronously
// under the caller's context and under the store's own lifetime; Close
// cancels whatever is still in flight.
type Store struct {
	svc    itemsvc.Service
	logger *log.Logger

	mu     sync.Mutex
	state  State
	ctx    context.Context
	cancel context.CancelFunc
}

// NewStore creates a Store that is not yet mounted.
func NewStore(svc itemsvc.Service, logger *log.Logger) *Store {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Store{svc: svc, logger: logger, ctx: ctx, cancel: cancel}
}

// Initialize mounts the store and loads the item list once.
func (s *Store) Initialize(ctx context.Context) error {
	if s.ctx.Err() != nil {
		return ErrClosed
	}
	return s.dispatch(ctx, Mounted{})
}

// UpdateDraft replaces the draft text verbatim.
func (s *Store) UpdateDraft(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state, _ = Update(s.state, DraftChanged{Text: text})
}

// SubmitDraft creates an item from the draft. A blank draft is a no-op
// and returns nil without contacting the server.
func (s *Store) SubmitDraft(ctx context.Context) error {
	if s.ctx.Err() != nil {
		return ErrClosed
	}
	return s.dispatch(ctx, SubmitRequested{})
}

// Snapshot returns a copy of the current state.
func (s *Store) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := s.state
	st.Items = append(st.Items[:0:0], s.state.Items...)
	return st
}

// Close unmounts the store. Requests still running are canceled and their
// results are discarded.
func (s *Store) Close() {
	s.mu.Lock()
	s.state, _ = Update(s.state, Unmounted{})
	s.mu.Unlock()
	s.cancel()
}

func (s *Store) dispatch(ctx context.Context, ev Event) error {
	s.mu.Lock()
	var cmds []Command
	s.state, cmds = Update(s.state, ev)
	s.mu.Unlock()

	var errs []error
	for _, cmd := range cmds {
		res := s.run(ctx, cmd)
		if err := resultErr(res); err != nil {
			errs = append(errs, err)
		}

		s.mu.Lock()
		s.state, _ = Update(s.state, res)
		s.mu.Unlock()
	}
	return errors.Join(errs...)
}

func (s *Store) run(ctx context.Context, cmd Command) Event {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	stop := context.AfterFunc(s.ctx, cancel)
	defer stop()

	res := Execute(ctx, s.svc, cmd)
	if err := resultErr(res); err != nil {
		s.logger.Debug("board command failed", "command", fmt.Sprintf("%T", cmd), "err", err)
	}
	return res
}

func resultErr(ev Event) error {
	switch e := ev.(type) {
	case ItemsFetched:
		if e.Err != nil {
			return fmt.Errorf("fetch items: %w", e.Err)
		}
	case ItemCreated:
		if e.Err != nil {
			return fmt.Errorf("create item: %w", e.Err)
		}
	}
	return nil
}
