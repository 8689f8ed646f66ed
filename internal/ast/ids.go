package ast

type (
	// главные сущности
	ProgramID uint32
	FnID      uint32
	StmtID    uint32
	ExprID    uint32
	// подсущности
	PayloadID uint32
	ParamID   uint32
)

const (
	NoProgramID ProgramID = 0
	NoFnID      FnID      = 0
	NoStmtID    StmtID    = 0
	NoExprID    ExprID    = 0
	NoPayloadID PayloadID = 0
	NoParamID   ParamID   = 0
)

func (id ProgramID) IsValid() bool { return id != NoProgramID }
func (id FnID) IsValid() bool      { return id != NoFnID }
func (id StmtID) IsValid() bool    { return id != NoStmtID }
func (id ExprID) IsValid() bool    { return id != NoExprID }
func (id PayloadID) IsValid() bool { return id != NoPayloadID }
func (id ParamID) IsValid() bool   { return id != NoParamID }
