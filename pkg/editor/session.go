package editor

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/expr-lang/expr/vm"
	"github.com/google/uuid"

	"github.com/nksaraf/magiql/pkg/cell"
	"github.com/nksaraf/magiql/pkg/gqlast"
	"github.com/nksaraf/magiql/pkg/logging"
	"github.com/nksaraf/magiql/pkg/projection"
)

// Session keeps one GraphQL document in a reactive store rooted at a path and
// offers the editing operations a query builder needs.
type Session struct {
	// ID identifies the session in logs.
	ID string

	root   string
	indent string
	store  *cell.Store
	proj   *projection.Projection
	logger *slog.Logger

	programMu    sync.RWMutex
	programCache map[string]*vm.Program
}

// Option configures a Session.
type Option func(*sessionConfig)

type sessionConfig struct {
	logger   *slog.Logger
	observer cell.Observer
	indent   string
}

// WithLogger sets the session logger. The store logs through it too.
func WithLogger(l *slog.Logger) Option {
	return func(c *sessionConfig) {
		c.logger = l
	}
}

// WithObserver installs store observability hooks.
func WithObserver(o cell.Observer) Option {
	return func(c *sessionConfig) {
		c.observer = o
	}
}

// WithIndent sets the indentation used by Text.
func WithIndent(indent string) Option {
	return func(c *sessionConfig) {
		c.indent = indent
	}
}

// New creates an empty session whose document lives at root, typically the
// operation name.
func New(root string, opts ...Option) *Session {
	cfg := sessionConfig{
		logger: logging.Nop(),
		indent: gqlast.DefaultIndent,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.logger == nil {
		cfg.logger = logging.Nop()
	}

	id := uuid.New().String()
	logger := cfg.logger.With("session", id, "root", root)

	storeOpts := []cell.StoreOption{cell.WithLogger(logger)}
	if cfg.observer != nil {
		storeOpts = append(storeOpts, cell.WithObserver(cfg.observer))
	}
	store := cell.NewStore(storeOpts...)

	return &Session{
		ID:           id,
		root:         root,
		indent:       cfg.indent,
		store:        store,
		proj:         projection.New(store),
		logger:       logger,
		programCache: make(map[string]*vm.Program),
	}
}

// Root returns the path the document is stored at.
func (s *Session) Root() string {
	return s.root
}

// Projection exposes the underlying per-path cells.
func (s *Session) Projection() *projection.Projection {
	return s.proj
}

// Decompose stores doc at the session root, writing one cell per field.
func (s *Session) Decompose(doc *gqlast.Document) error {
	if err := cell.Set(s.store, s.proj.Document(s.root), doc); err != nil {
		return fmt.Errorf("decompose: %w", err)
	}
	s.logger.Debug("document decomposed", "cells", s.store.Len())
	return nil
}

// Reconstruct reads the document back from the store. It is nil until a
// document has been decomposed. The result is shared with the store and must
// not be modified.
func (s *Session) Reconstruct() (*gqlast.Document, error) {
	return cell.Get(s.store, s.proj.Document(s.root))
}

// SetText parses text and decomposes it. On a syntax error the store is left
// as it was and a *gqlast.SyntaxError is returned.
func (s *Session) SetText(text string) error {
	doc, err := gqlast.Parse(text, s.root)
	if err != nil {
		s.logger.Debug("parse failed", "error", err)
		return err
	}
	return s.Decompose(doc)
}

// Text prints the current document. It returns "" when there is none.
func (s *Session) Text() (string, error) {
	doc, err := s.Reconstruct()
	if err != nil || doc == nil {
		return "", err
	}
	return gqlast.Print(doc, gqlast.WithIndent(s.indent))
}

// Subscribe calls fn with the document after every change to it.
func (s *Session) Subscribe(fn func(doc *gqlast.Document)) (unsubscribe func()) {
	return cell.Subscribe(s.store, s.proj.Document(s.root), fn)
}

// SubscribeNode calls fn with the node at path after every change to it.
func (s *Session) SubscribeNode(path string, fn func(n gqlast.Node)) (unsubscribe func()) {
	return s.proj.Subscribe(path, fn)
}

// Node returns the node at path, or nil if it is absent or unselected.
func (s *Session) Node(path string) (gqlast.Node, error) {
	return s.proj.Get(path)
}

// SetSelected toggles whether the node at path is part of the document.
func (s *Session) SetSelected(path string, selected bool) error {
	if err := s.proj.SetSelected(path, selected); err != nil {
		return err
	}
	s.logger.Debug("selection changed", "path", path, "selected", selected)
	return nil
}

// Compact releases the cells of nodes removed from the document.
func (s *Session) Compact() (int, error) {
	n, err := s.proj.Compact(s.root)
	if err != nil {
		return 0, err
	}
	s.logger.Debug("store compacted", "dropped", n, "cells", s.store.Len())
	return n, nil
}
