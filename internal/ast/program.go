package ast

import (
	"lunar/internal/source"
)

// Program is one compilation unit: the functions of a file in source order.
type Program struct {
	Span source.Span
	Fns  []FnID
}

type Programs struct {
	Arena *Arena[Program]
}

func newPrograms(capHint uint, budget *Budget) *Programs {
	if capHint == 0 {
		capHint = 1
	}
	return &Programs{
		Arena: newBudgetedArena[Program](capHint, budget),
	}
}

func (p *Programs) New(sp source.Span) ProgramID {
	return ProgramID(p.Arena.Allocate(Program{
		Span: sp,
		Fns:  make([]FnID, 0),
	}))
}

func (p *Programs) Get(id ProgramID) *Program {
	return p.Arena.Get(uint32(id))
}
