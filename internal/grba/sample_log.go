package grba

import (
	"errors"
	"sync"
)

type Category uint8

const (
	Evaluated   Category = iota // sample computed
	DomainFault                 // sample rejected by argument checks
	NoConverge                  // boundary root search failed
	EmptyDomain                 // r0_max <= 0, zero contribution
	OtherFault                  // any other error
)

func (c Category) String() string {
	switch c {
	case Evaluated:
		return "evaluated"
	case DomainFault:
		return "domain"
	case NoConverge:
		return "no-converge"
	case EmptyDomain:
		return "empty-domain"
	}
	return "other"
}

func categorize(err error) Category {
	switch {
	case err == nil:
		return Evaluated
	case errors.Is(err, ErrDomain):
		return DomainFault
	case errors.Is(err, ErrNoConverge):
		return NoConverge
	}
	return OtherFault
}

// Sample is one recorded integration node that did not evaluate cleanly.
type Sample struct {
	Op       string
	Category Category
	X        Real // node location (r0 or y)
	Y        Real // observer coordinate of the enclosing integral
	Err      error
}

// SampleLog counts every node and keeps the ones that were skipped.
type SampleLog struct {
	mu      sync.Mutex
	counts  map[Category]int
	skipped []Sample
}

func NewSampleLog() *SampleLog {
	return &SampleLog{counts: make(map[Category]int)}
}

func (l *SampleLog) record(op string, x, y Real, err error) Category {
	c := categorize(err)
	if l == nil {
		return c
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.counts[c]++
	if c != Evaluated {
		l.skipped = append(l.skipped, Sample{Op: op, Category: c, X: x, Y: y, Err: err})
	}
	return c
}

func (l *SampleLog) empty(y, r0max Real) {
	if l == nil {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.counts[EmptyDomain]++
	l.skipped = append(l.skipped, Sample{Op: "r0_max", Category: EmptyDomain, X: r0max, Y: y})
}

// Count returns how many samples fell into c.
func (l *SampleLog) Count(c Category) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.counts[c]
}

// Skipped returns a copy of the non-evaluated samples.
func (l *SampleLog) Skipped() []Sample {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]Sample(nil), l.skipped...)
}

func (l *SampleLog) Stats() {
	l.mu.Lock()
	defer l.mu.Unlock()
	for c := Evaluated; c <= OtherFault; c++ {
		if n := l.counts[c]; n > 0 {
			Logf("samples %s: %d", c, n)
		}
	}
}
