package ast

import (
	"lunar/internal/source"
)

// Hints sizes the initial arenas. MaxNodes caps the total number of arena
// slots a single Builder may hand out (0 = unlimited).
type Hints struct {
	Fns, Stmts, Exprs uint
	MaxNodes          uint32
}

// Builder owns every arena of one parse. Handles it returns are valid until
// Release; one Builder must not be shared between concurrent parses.
type Builder struct {
	Programs        *Programs
	Fns             *Fns
	Stmts           *Stmts
	Exprs           *Exprs
	StringsInterner *source.Interner

	budget *Budget
}

func NewBuilder(hints Hints, stringsInterner *source.Interner) *Builder {
	if hints.Fns == 0 {
		hints.Fns = 1 << 5
	}
	if hints.Stmts == 0 {
		hints.Stmts = 1 << 7
	}
	if hints.Exprs == 0 {
		hints.Exprs = 1 << 8
	}
	if stringsInterner == nil {
		stringsInterner = source.NewInterner()
	}
	budget := NewBudget(hints.MaxNodes)
	return &Builder{
		Programs:        newPrograms(1, budget),
		Fns:             newFns(hints.Fns, budget),
		Stmts:           newStmts(hints.Stmts, budget),
		Exprs:           newExprs(hints.Exprs, budget),
		StringsInterner: stringsInterner,
		budget:          budget,
	}
}

// Err returns ErrArenaExhausted once any allocation was refused.
func (b *Builder) Err() error {
	if b.budget.Exhausted() {
		return ErrArenaExhausted
	}
	return nil
}

// NodesUsed returns how many arena slots were handed out.
func (b *Builder) NodesUsed() uint32 {
	return b.budget.Used()
}

func (b *Builder) NewProgram(sp source.Span) ProgramID {
	return b.Programs.New(sp)
}

func (b *Builder) PushFn(prog ProgramID, fn FnID) {
	if p := b.Programs.Get(prog); p != nil {
		p.Fns = append(p.Fns, fn)
	}
}

// Intern copies s into the builder-owned string table.
func (b *Builder) Intern(s string) source.StringID {
	return b.StringsInterner.Intern(s)
}

// Lookup returns the text of an interned string, "" for NoStringID.
func (b *Builder) Lookup(id source.StringID) string {
	s, _ := b.StringsInterner.Lookup(id)
	return s
}

// Release frees every arena at once. All handles become invalid.
func (b *Builder) Release() {
	b.Programs.Arena.Release()
	b.Fns.release()
	b.Stmts.release()
	b.Exprs.release()
}
