package ast

import "lunar/internal/source"

type Param struct {
	Name source.StringID
	Type source.StringID // NoStringID if omitted
	Span source.Span
}

// FnDecl: parameters live contiguously in Fns.Params starting at ParamStart.
type FnDecl struct {
	Name       source.StringID
	ReturnType source.StringID
	ParamStart ParamID
	ParamCount uint32
	Body       []StmtID
	Span       source.Span
}

type Fns struct {
	Arena  *Arena[FnDecl]
	Params *Arena[Param]
}

func newFns(capHint uint, budget *Budget) *Fns {
	if capHint == 0 {
		capHint = 1 << 5
	}
	return &Fns{
		Arena:  newBudgetedArena[FnDecl](capHint, budget),
		Params: newBudgetedArena[Param](capHint*2, budget),
	}
}

// New stores a function declaration. params and body are copied.
// Returns NoFnID if any allocation fails.
func (f *Fns) New(span source.Span, name source.StringID, params []Param, ret source.StringID, body []StmtID) FnID {
	start := NoParamID
	for i, p := range params {
		id := ParamID(f.Params.Allocate(p))
		if id == NoParamID {
			return NoFnID
		}
		if i == 0 {
			start = id
		}
	}
	count := uint32(len(params)) // #nosec G115 -- bounded by Params arena
	return FnID(f.Arena.Allocate(FnDecl{
		Name:       name,
		ReturnType: ret,
		ParamStart: start,
		ParamCount: count,
		Body:       append([]StmtID(nil), body...),
		Span:       span,
	}))
}

func (f *Fns) Get(id FnID) *FnDecl {
	return f.Arena.Get(uint32(id))
}

// ParamsOf returns the parameters of fn in declaration order. READONLY.
func (f *Fns) ParamsOf(id FnID) []Param {
	fn := f.Get(id)
	if fn == nil {
		return nil
	}
	return f.Params.Range(uint32(fn.ParamStart), fn.ParamCount)
}

func (f *Fns) release() {
	f.Arena.Release()
	f.Params.Release()
}
