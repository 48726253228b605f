package catalog

import (
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"github.com/tuannm99/tupledesc/internal/record"
)

var (
	ErrTableExists   = errors.New("catalog: table already exists")
	ErrTableNotFound = errors.New("catalog: table not found")
)

// TableMeta is a registered table.
//
// Desc carries the table's own column names. Layout is the interned
// descriptor shared by every table of the same shape; only its types and
// offsets are meaningful to the table.
type TableMeta struct {
	Name   string
	Desc   *record.TupleDesc
	Layout *record.TupleDesc
}

// Catalog is an in-memory table registry.
type Catalog struct {
	mu      sync.RWMutex
	tables  map[string]*TableMeta
	layouts *record.Interner
}

func New() *Catalog {
	return &Catalog{
		tables:  make(map[string]*TableMeta),
		layouts: record.NewInterner(),
	}
}

func (c *Catalog) Create(name string, desc *record.TupleDesc) (*TableMeta, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.tables[name]; ok {
		return nil, fmt.Errorf("%w: %s", ErrTableExists, name)
	}

	tm := &TableMeta{
		Name:   name,
		Desc:   desc,
		Layout: c.layouts.Intern(desc),
	}
	c.tables[name] = tm

	slog.Debug("catalog: table created",
		"table", name,
		"fields", desc.NumFields(),
		"size", desc.Size(),
		"shared_layout", tm.Layout != desc,
	)
	return tm, nil
}

func (c *Catalog) Lookup(name string) (*TableMeta, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	tm, ok := c.tables[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrTableNotFound, name)
	}
	return tm, nil
}

// Tables returns the table names, sorted.
func (c *Catalog) Tables() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]string, 0, len(c.tables))
	for name := range c.tables {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Layouts returns the number of distinct tuple shapes across all tables.
func (c *Catalog) Layouts() int { return c.layouts.Len() }
