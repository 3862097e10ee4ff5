// Package ids generates the identifying handles that link an overlay to its
// trigger.
package ids

import (
	"crypto/rand"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
)

// Prefix is prepended to every generated handle.
const Prefix = "tooltip-"

// Generator produces unique handles.
type Generator interface {
	Next() string
}

// GeneratorFunc adapts a function to Generator.
type GeneratorFunc func() string

// Next calls f.
func (f GeneratorFunc) Next() string { return f() }

// ULID returns a generator of time-ordered ULID handles.
func ULID() Generator {
	return GeneratorFunc(func() string {
		id, err := ulid.New(ulid.Timestamp(time.Now()), rand.Reader)
		if err != nil {
			// ulid.Make uses its own entropy source.
			return Prefix + strings.ToLower(ulid.Make().String())
		}
		return Prefix + strings.ToLower(id.String())
	})
}

// UUID returns a generator of random (version 4) UUID handles.
func UUID() Generator {
	return GeneratorFunc(func() string {
		return Prefix + uuid.NewString()
	})
}

// Sequence is a deterministic generator yielding prefix-1, prefix-2, ...
// It is safe for concurrent use.
type Sequence struct {
	mu     sync.Mutex
	prefix string
	n      int
}

// NewSequence creates a counter-based generator. An empty prefix uses
// Prefix.
func NewSequence(prefix string) *Sequence {
	if prefix == "" {
		prefix = Prefix
	}
	return &Sequence{prefix: prefix}
}

// Next returns the next handle.
func (s *Sequence) Next() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.n++
	return fmt.Sprintf("%s%d", s.prefix, s.n)
}

// ByName returns the generator called name ("ulid", "uuid" or "sequence").
func ByName(name string) (Generator, error) {
	switch strings.ToLower(name) {
	case "", "ulid":
		return ULID(), nil
	case "uuid":
		return UUID(), nil
	case "sequence", "seq":
		return NewSequence(""), nil
	default:
		return nil, fmt.Errorf("unknown id generator %q", name)
	}
}
