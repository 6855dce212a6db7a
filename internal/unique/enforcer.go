// Package unique rejects repeated combinations so that every NFT of a run is
// distinct in at least one layer.
package unique

import (
	"errors"
	"fmt"

	"github.com/xtding233/nftgen/internal/rarity"
)

var ErrCombinationSpaceExhausted = errors.New("combination space exhausted")

// CombinationSampler produces candidate combinations. *rarity.Sampler
// satisfies it.
type CombinationSampler interface {
	SampleCombination() rarity.Combination
}

// Option configures an Enforcer.
type Option func(*Enforcer)

// WithMaxRetries caps the number of draws Next may spend on one call.
// n <= 0 means unbounded, which never returns once the space is used up.
func WithMaxRetries(n int) Option {
	return func(e *Enforcer) {
		if n < 0 {
			n = 0
		}
		e.maxRetries = n
	}
}

// WithCapacity tells the Enforcer how many distinct combinations exist, so
// Next can fail immediately instead of drawing once all are used.
func WithCapacity(n int) Option {
	return func(e *Enforcer) {
		e.capacity = n
	}
}

// Enforcer owns the set of combinations accepted during one run.
// It is not safe for concurrent use.
type Enforcer struct {
	sampler    CombinationSampler
	used       map[string]struct{}
	accepted   []rarity.Combination
	maxRetries int
	capacity   int
	attempts   int
}

func NewEnforcer(s CombinationSampler, opts ...Option) *Enforcer {
	e := &Enforcer{
		sampler: s,
		used:    make(map[string]struct{}),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Next draws until it finds a combination not accepted before, records it and
// returns it. Collisions are discarded and redrawn.
func (e *Enforcer) Next() (rarity.Combination, error) {
	if e.capacity > 0 && len(e.used) >= e.capacity {
		return nil, fmt.Errorf("%w: all %d combinations used", ErrCombinationSpaceExhausted, e.capacity)
	}
	for tries := 1; ; tries++ {
		c := e.sampler.SampleCombination()
		e.attempts++
		key := c.Key()
		if _, dup := e.used[key]; !dup {
			e.used[key] = struct{}{}
			e.accepted = append(e.accepted, c)
			return c, nil
		}
		if e.maxRetries > 0 && tries >= e.maxRetries {
			return nil, fmt.Errorf("%w: no new combination after %d draws (%d accepted)",
				ErrCombinationSpaceExhausted, tries, len(e.used))
		}
	}
}

// Contains reports whether c was already accepted.
func (e *Enforcer) Contains(c rarity.Combination) bool {
	_, ok := e.used[c.Key()]
	return ok
}

// Len is the number of accepted combinations.
func (e *Enforcer) Len() int { return len(e.used) }

// Attempts is the number of candidate combinations drawn, including rejects.
func (e *Enforcer) Attempts() int { return e.attempts }

// Accepted returns the accepted combinations in acceptance order.
func (e *Enforcer) Accepted() []rarity.Combination {
	return append([]rarity.Combination(nil), e.accepted...)
}
