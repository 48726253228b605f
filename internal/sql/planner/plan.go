package planner

import (
	"github.com/tuannm99/tupledesc/internal/record"
)

// Plan is the interface for plan nodes. Desc describes the rows the node
// produces.
type Plan interface {
	Desc() *record.TupleDesc
	planNode()
}

// ----- Plan nodes -----

type CreateTablePlan struct {
	TableName string
	Schema    *record.TupleDesc
}

func (p *CreateTablePlan) Desc() *record.TupleDesc { return p.Schema }
func (*CreateTablePlan) planNode()                 {}

type SeqScanPlan struct {
	TableName string
	Schema    *record.TupleDesc
}

func (p *SeqScanPlan) Desc() *record.TupleDesc { return p.Schema }
func (*SeqScanPlan) planNode()                 {}

// JoinPlan is a cross join; its rows are the left row followed by the right row.
type JoinPlan struct {
	Left, Right Plan
	Schema      *record.TupleDesc
}

func (p *JoinPlan) Desc() *record.TupleDesc { return p.Schema }
func (*JoinPlan) planNode()                 {}

// ProjectPlan keeps the child's fields at Indexes, in that order.
type ProjectPlan struct {
	Child   Plan
	Indexes []int
	Schema  *record.TupleDesc
}

func (p *ProjectPlan) Desc() *record.TupleDesc { return p.Schema }
func (*ProjectPlan) planNode()                 {}

// UnionPlan concatenates two streams of the same shape. Output names come
// from the left side.
type UnionPlan struct {
	Left, Right Plan
}

func (p *UnionPlan) Desc() *record.TupleDesc { return p.Left.Desc() }
func (*UnionPlan) planNode()                 {}
