// Package multiformat exposes the serializable document store: an in-memory
// reference graph plus a configurable wire format and verbosity.
//
// A Store instance may be shared by multiple goroutines. Configuration reads
// and writes and the serialize/deserialize entry points are serialized
// through one mutex per instance, so an in-flight call always runs under
// one consistent (format, verbosity, codec) triple even if another
// goroutine reconfigures the store mid-call. Namespace admission during
// deserialization additionally runs under the graph store's per-namespace
// critical section.
package multiformat

import (
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/sbomstore/pkg/errors"
	"github.com/matzehuels/sbomstore/pkg/observability"
	"github.com/matzehuels/sbomstore/pkg/serial"
	"github.com/matzehuels/sbomstore/pkg/store"
	"github.com/matzehuels/sbomstore/pkg/tree"
)

// Config is the immutable (format, verbosity) pair a call runs under. The
// codec for a Config is a pure function of its Format, so a config snapshot
// and its codec can never diverge.
type Config struct {
	Format  tree.Format
	Verbose serial.Verbose
}

// Store is the multi-format document store facade.
type Store struct {
	mu     sync.Mutex // serializes configuration access and serialize/deserialize calls
	cfg    Config
	graph  *store.Store
	logger *log.Logger
}

// Option customizes a Store.
type Option func(*Store)

// WithLogger attaches a logger for per-operation debug lines.
// Without it the store logs nowhere.
func WithLogger(l *log.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithGraph shares an existing reference-graph store instead of creating a
// fresh empty one.
func WithGraph(g *store.Store) Option {
	return func(s *Store) {
		if g != nil {
			s.graph = g
		}
	}
}

// New creates a store with the given format and verbosity.
func New(format tree.Format, verbose serial.Verbose, opts ...Option) *Store {
	s := &Store{
		cfg:    Config{Format: format, Verbose: verbose},
		graph:  store.New(),
		logger: log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NewCompact creates a store with the given format and COMPACT verbosity.
func NewCompact(format tree.Format, opts ...Option) *Store {
	return New(format, serial.VerboseCompact, opts...)
}

// Graph returns the underlying reference-graph store, for callers building
// or inspecting documents directly.
func (s *Store) Graph() *store.Store {
	return s.graph
}

// Config returns the current configuration.
func (s *Store) Config() Config {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cfg
}

// Format returns the current wire format.
func (s *Store) Format() tree.Format {
	return s.Config().Format
}

// SetFormat changes the wire format for subsequent calls. An in-flight
// serialize or deserialize call is never affected.
func (s *Store) SetFormat(f tree.Format) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cfg.Format = f
}

// Verbose returns the current verbosity.
func (s *Store) Verbose() serial.Verbose {
	return s.Config().Verbose
}

// SetVerbose changes the verbosity for subsequent calls.
func (s *Store) SetVerbose(v serial.Verbose) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cfg.Verbose = v
}

// Serialize writes the configured format's encoding of the namespace's
// document graph to w. It fails with MISSING_NAMESPACE if the namespace is
// unknown. On failure the bytes already written to w are incomplete and the
// caller should discard them.
func (s *Store) Serialize(namespace string, w io.Writer) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cfg := s.cfg

	op := uuid.NewString()
	start := time.Now()
	s.logger.Debug("serialize", "op", op, "namespace", namespace,
		"format", cfg.Format.String(), "verbosity", cfg.Verbose.String())
	observability.Serialization().OnSerializeStart(namespace, cfg.Format.String(), cfg.Verbose.String())

	err := s.serialize(cfg, namespace, w)
	observability.Serialization().OnSerializeComplete(namespace, cfg.Format.String(), cfg.Verbose.String(), time.Since(start), err)
	if err != nil {
		s.logger.Debug("serialize failed", "op", op, "err", err)
		return err
	}
	s.logger.Debug("serialize done", "op", op, "elapsed", time.Since(start).Round(time.Millisecond))
	return nil
}

func (s *Store) serialize(cfg Config, namespace string, w io.Writer) error {
	root, err := serial.Serialize(s.graph, namespace, cfg.Verbose)
	if err != nil {
		return err
	}
	return tree.CodecFor(cfg.Format).Encode(w, root)
}

// Deserialize reads one document from r in the configured format, installs
// it through the namespace admission protocol, and returns the discovered
// namespace. Only COMPACT verbosity supports deserialization; with
// overwrite false an existing namespace fails with NAMESPACE_EXISTS.
func (s *Store) Deserialize(r io.Reader, overwrite bool) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cfg := s.cfg

	op := uuid.NewString()
	start := time.Now()
	s.logger.Debug("deserialize", "op", op, "format", cfg.Format.String(), "overwrite", overwrite)
	observability.Serialization().OnDeserializeStart(cfg.Format.String())

	namespace, err := s.deserialize(cfg, r, overwrite)
	observability.Serialization().OnDeserializeComplete(namespace, cfg.Format.String(), time.Since(start), err)
	if err != nil {
		s.logger.Debug("deserialize failed", "op", op, "err", err)
		return "", err
	}
	s.logger.Debug("deserialize done", "op", op, "namespace", namespace,
		"elapsed", time.Since(start).Round(time.Millisecond))
	return namespace, nil
}

func (s *Store) deserialize(cfg Config, r io.Reader, overwrite bool) (string, error) {
	if cfg.Verbose != serial.VerboseCompact {
		return "", errors.New(errors.ErrCodeUnsupportedVerbosity,
			"only compact verbosity is supported for deserialization, store is configured for %s", cfg.Verbose)
	}
	root, err := tree.CodecFor(cfg.Format).Decode(r)
	if err != nil {
		return "", err
	}
	return serial.Deserialize(s.graph, root, overwrite)
}
