package planner

import (
	"errors"
	"fmt"

	"github.com/tuannm99/tupledesc/internal/catalog"
	"github.com/tuannm99/tupledesc/internal/record"
	"github.com/tuannm99/tupledesc/internal/sql/parser"
	"github.com/tuannm99/tupledesc/internal/types"
)

var (
	ErrIncompatibleSchemas = errors.New("planner: incompatible schemas")
	ErrUnknownTable        = errors.New("planner: table not in FROM clause")
	ErrNoCatalog           = errors.New("planner: statement needs a catalog")
)

// Catalog is what the planner needs from the table registry.
type Catalog interface {
	Lookup(name string) (*catalog.TableMeta, error)
}

// BuildPlan builds a plan from an AST Statement. cat may be nil for
// statements that do not read tables.
func BuildPlan(stmt parser.Statement, cat Catalog) (Plan, error) {
	switch s := stmt.(type) {
	case *parser.CreateTableStmt:
		return buildCreateTablePlan(s)
	case *parser.SelectStmt:
		return buildSelectPlan(s, cat)
	case *parser.UnionStmt:
		return buildUnionPlan(s, cat)
	default:
		return nil, fmt.Errorf("planner: unsupported statement type %T", stmt)
	}
}

func buildCreateTablePlan(s *parser.CreateTableStmt) (Plan, error) {
	ts := make([]types.Type, len(s.Columns))
	names := make([]string, len(s.Columns))
	for i, c := range s.Columns {
		t, err := types.Parse(c.Type)
		if err != nil {
			return nil, fmt.Errorf("planner: column %s: %w", c.Name, err)
		}
		ts[i] = t
		names[i] = c.Name
	}

	desc, err := record.New(ts, names)
	if err != nil {
		return nil, fmt.Errorf("planner: create table %s: %w", s.TableName, err)
	}
	return &CreateTablePlan{TableName: s.TableName, Schema: desc}, nil
}

// source is one table of a FROM clause and where its fields start in the
// joined row.
type source struct {
	table string
	start int
	desc  *record.TupleDesc
}

func buildSelectPlan(s *parser.SelectStmt, cat Catalog) (Plan, error) {
	if cat == nil {
		return nil, ErrNoCatalog
	}

	scan, err := scanPlan(s.From, cat)
	if err != nil {
		return nil, err
	}
	var plan Plan = scan
	sources := []source{{table: s.From, desc: scan.Schema}}

	for _, name := range s.Joins {
		right, err := scanPlan(name, cat)
		if err != nil {
			return nil, err
		}
		sources = append(sources, source{
			table: name,
			start: plan.Desc().NumFields(),
			desc:  right.Schema,
		})
		plan = &JoinPlan{
			Left:   plan,
			Right:  right,
			Schema: record.Merge(plan.Desc(), right.Schema),
		}
	}

	if s.Columns == nil {
		return plan, nil
	}

	idx := make([]int, len(s.Columns))
	for i, ref := range s.Columns {
		n, err := resolve(ref, plan.Desc(), sources)
		if err != nil {
			return nil, err
		}
		idx[i] = n
	}

	desc, err := record.Project(plan.Desc(), idx)
	if err != nil {
		return nil, fmt.Errorf("planner: projection: %w", err)
	}
	return &ProjectPlan{Child: plan, Indexes: idx, Schema: desc}, nil
}

func scanPlan(table string, cat Catalog) (*SeqScanPlan, error) {
	tm, err := cat.Lookup(table)
	if err != nil {
		return nil, err
	}
	return &SeqScanPlan{TableName: tm.Name, Schema: tm.Desc}, nil
}

// resolve maps a column reference to a position in the joined row.
// Unqualified names take the first match, i.e. the leftmost table wins.
func resolve(ref parser.ColumnRef, row *record.TupleDesc, sources []source) (int, error) {
	if ref.Table == "" {
		i, err := row.IndexOf(ref.Name)
		if err != nil {
			return 0, fmt.Errorf("planner: column %s: %w", ref, err)
		}
		return i, nil
	}

	for _, src := range sources {
		if src.table != ref.Table {
			continue
		}
		i, err := src.desc.IndexOf(ref.Name)
		if err != nil {
			return 0, fmt.Errorf("planner: column %s: %w", ref, err)
		}
		return src.start + i, nil
	}
	return 0, fmt.Errorf("%w: %s", ErrUnknownTable, ref.Table)
}

func buildUnionPlan(s *parser.UnionStmt, cat Catalog) (Plan, error) {
	left, err := buildSelectPlan(s.Left, cat)
	if err != nil {
		return nil, err
	}
	right, err := buildSelectPlan(s.Right, cat)
	if err != nil {
		return nil, err
	}
	if !left.Desc().Equal(right.Desc()) {
		return nil, fmt.Errorf("%w: %s vs %s", ErrIncompatibleSchemas, left.Desc(), right.Desc())
	}
	return &UnionPlan{Left: left, Right: right}, nil
}

// Apply runs the side effects of a plan against the catalog. Read-only
// plans are a no-op.
func Apply(p Plan, cat *catalog.Catalog) error {
	ct, ok := p.(*CreateTablePlan)
	if !ok {
		return nil
	}
	_, err := cat.Create(ct.TableName, ct.Schema)
	return err
}
