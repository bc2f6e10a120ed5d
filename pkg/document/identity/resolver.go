package identity

import (
	"io"
	"strings"
	"sync"
	"time"

	"github.com/stateful/qedit/internal/ulid"
)

// Mode determines whether identifiers found in the input are kept.
//
// The following modes are supported:
// - FreshIdentity: every node receives a newly generated identifier.
// - PreserveIdentity: a valid identifier from the input is kept the first
// time it is seen; duplicates and invalid identifiers are replaced.
type Mode int

const (
	FreshIdentity Mode = iota
	PreserveIdentity
)

// Generator hands out node identifiers.
type Generator interface {
	NewID() string
}

// Resolver is the identifier service shared by the deserializer and the
// editing plugins. It is constructed once per editing session with a
// namespace seed and never reads ambient state.
type Resolver struct {
	namespace string
	mode      Mode
	entropy   io.Reader
	clock     func() time.Time

	mu     sync.Mutex
	issued map[string]struct{}
}

var _ Generator = (*Resolver)(nil)

type Option func(*Resolver)

// WithMode sets how Resolve treats identifiers found in the input.
func WithMode(mode Mode) Option {
	return func(r *Resolver) {
		r.mode = mode
	}
}

// WithSeed makes the generated sequence reproducible for a given clock.
func WithSeed(seed int64) Option {
	return func(r *Resolver) {
		r.entropy = ulid.SeededEntropy(seed)
	}
}

// WithEntropy sets the entropy source used for the random part of identifiers.
func WithEntropy(entropy io.Reader) Option {
	return func(r *Resolver) {
		r.entropy = entropy
	}
}

// WithClock sets the time source used for the timestamp part of identifiers.
func WithClock(clock func() time.Time) Option {
	return func(r *Resolver) {
		r.clock = clock
	}
}

// NewResolver creates a Resolver. A non-empty namespace is prepended to
// every generated identifier, separated by a dash.
func NewResolver(namespace string, opts ...Option) *Resolver {
	r := &Resolver{
		namespace: strings.TrimSpace(namespace),
		issued:    make(map[string]struct{}),
	}

	for _, opt := range opts {
		opt(r)
	}

	if r.entropy == nil {
		r.entropy = ulid.DefaultEntropy()
	}
	if r.clock == nil {
		r.clock = time.Now
	}

	return r
}

// Namespace returns the namespace seed of the resolver.
func (r *Resolver) Namespace() string { return r.namespace }

// Mode returns the identity mode of the resolver.
func (r *Resolver) Mode() Mode { return r.mode }

// NewID returns an identifier that this resolver has not handed out before.
func (r *Resolver) NewID() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.newIDLocked()
}

func (r *Resolver) newIDLocked() string {
	for {
		id := r.format(ulid.Make(r.clock(), r.entropy))
		if _, ok := r.issued[id]; ok {
			continue
		}
		r.issued[id] = struct{}{}
		return id
	}
}

// Resolve returns an identifier for a node whose input carried existing.
// The boolean reports whether existing was kept.
func (r *Resolver) Resolve(existing string) (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.mode == PreserveIdentity && r.validLocked(existing) {
		if _, seen := r.issued[existing]; !seen {
			r.issued[existing] = struct{}{}
			return existing, true
		}
	}

	return r.newIDLocked(), false
}

// Valid reports whether id has the shape of an identifier from this resolver.
func (r *Resolver) Valid(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.validLocked(id)
}

func (r *Resolver) validLocked(id string) bool {
	if r.namespace != "" {
		rest, ok := strings.CutPrefix(id, r.namespace+"-")
		if !ok {
			return false
		}
		id = rest
	}
	return ulid.ValidID(id)
}

func (r *Resolver) format(id string) string {
	if r.namespace == "" {
		return id
	}
	return r.namespace + "-" + id
}
