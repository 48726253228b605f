package parser

// Statement is the root interface for all SQL statements.
type Statement interface {
	stmtNode()
}

// ----- CREATE TABLE -----
type ColumnDef struct {
	Name string
	Type string // upper-cased SQL type name, mapped by the planner
}

type CreateTableStmt struct {
	TableName string
	Columns   []ColumnDef
}

func (*CreateTableStmt) stmtNode() {}

// ----- SELECT -----

// ColumnRef is a column reference, optionally qualified by a table name.
type ColumnRef struct {
	Table string // "" when unqualified
	Name  string
}

func (c ColumnRef) String() string {
	if c.Table == "" {
		return c.Name
	}
	return c.Table + "." + c.Name
}

type SelectStmt struct {
	Columns []ColumnRef // nil means '*'
	From    string
	Joins   []string // cross joins, left to right
}

func (*SelectStmt) stmtNode() {}

// ----- UNION -----
type UnionStmt struct {
	Left, Right *SelectStmt
}

func (*UnionStmt) stmtNode() {}
