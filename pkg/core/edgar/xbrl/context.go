package xbrl

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// Dimension is an axis/member pair qualifying a fact beyond period
// (spec.md glossary "Dimension/Member").
type Dimension struct {
	Axis   ConceptID
	Member ConceptID
}

// ContextID is the raw id attribute from the XBRL context element,
// used only to resolve facts to their Context during a single
// document's load; once interned, facts reference the canonical
// *Context by identity.
type ContextID string

// Context is the (entity, period, dimensions) tuple that scopes a
// fact (spec.md §3, glossary). Two contexts are equal iff entity,
// period, and the full dimension set match.
type Context struct {
	Entity     string
	Period     Period
	Dimensions []Dimension // in document order; key() sorts a copy by Axis for deterministic equality/hash
}

// key returns a stable string encoding used both for equality and for
// the intern pool's map key.
func (c *Context) key() string {
	var b strings.Builder
	b.WriteString(c.Entity)
	b.WriteByte('|')
	if c.Period.Instant {
		b.WriteString("I:")
		b.WriteString(c.Period.End.Format("2006-01-02"))
	} else {
		b.WriteString("D:")
		b.WriteString(c.Period.Start.Format("2006-01-02"))
		b.WriteByte('-')
		b.WriteString(c.Period.End.Format("2006-01-02"))
	}
	dims := append([]Dimension(nil), c.Dimensions...)
	sort.Slice(dims, func(i, j int) bool { return dims[i].Axis < dims[j].Axis })
	for _, d := range dims {
		fmt.Fprintf(&b, "|%s=%s", d.Axis, d.Member)
	}
	return b.String()
}

// Equal reports structural equality per spec.md §3's Context equality
// invariant.
func (c *Context) Equal(o *Context) bool {
	if c == o {
		return true
	}
	if c == nil || o == nil {
		return false
	}
	return c.key() == o.key()
}

// IsDefault reports whether this context carries no dimensional
// qualification (the "default member" the Statement Assembler
// projects by default).
func (c *Context) IsDefault() bool { return len(c.Dimensions) == 0 }

// Dimension looks up the member for a given axis, if present.
func (c *Context) Dimension(axis ConceptID) (ConceptID, bool) {
	for _, d := range c.Dimensions {
		if d.Axis == axis {
			return d.Member, true
		}
	}
	return "", false
}

// ContextPool interns contexts within a single XBRL document so that
// logically equal contexts share identity (spec.md §3 invariant:
// "Context interning: logically equal contexts share identity within a
// single XBRL document"). Pools are document-scoped, never shared
// across filings, and require no locking once a document's load phase
// has completed — but the load phase itself may run in parallel with
// other filings' loads (never within one filing, per spec.md §5), so
// the pool guards its map with a mutex to be safe for a loader that
// chooses to parallelize sub-steps within one document in the future.
type ContextPool struct {
	mu   sync.Mutex
	byID map[ContextID]*Context
	byKey map[string]*Context
}

// NewContextPool creates an empty, document-scoped context pool.
func NewContextPool() *ContextPool {
	return &ContextPool{
		byID:  make(map[ContextID]*Context),
		byKey: make(map[string]*Context),
	}
}

// Intern registers a context under its raw XBRL id and returns the
// canonical *Context for its (entity, period, dimensions) triple,
// reusing an existing instance when one is already structurally equal.
func (p *ContextPool) Intern(id ContextID, c *Context) *Context {
	p.mu.Lock()
	defer p.mu.Unlock()
	key := c.key()
	if canonical, ok := p.byKey[key]; ok {
		p.byID[id] = canonical
		return canonical
	}
	p.byKey[key] = c
	p.byID[id] = c
	return c
}

// Lookup resolves a raw context id to its canonical *Context.
func (p *ContextPool) Lookup(id ContextID) (*Context, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	c, ok := p.byID[id]
	return c, ok
}

// Len returns the number of distinct canonical contexts interned.
func (p *ContextPool) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.byKey)
}
