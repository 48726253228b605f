package parser

import (
	"fmt"
	"strings"
	"unicode"
)

// parseIdent validates an identifier (table/column name).
// Rules (simple):
//   - must be exactly one token (no spaces)
//   - first char: letter or '_'
//   - rest: letter/digit/'_'
func parseIdent(s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", fmt.Errorf("missing identifier")
	}

	parts := strings.Fields(s)
	if len(parts) != 1 {
		return "", fmt.Errorf("invalid identifier %q", s)
	}
	id := parts[0]

	for i, r := range id {
		if i == 0 {
			if !unicode.IsLetter(r) && r != '_' {
				return "", fmt.Errorf("invalid identifier %q", id)
			}
			continue
		}

		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_' {
			return "", fmt.Errorf("invalid identifier %q", id)
		}
	}

	return id, nil
}

// parseColumnRef accepts "col" or "table.col".
func parseColumnRef(s string) (ColumnRef, error) {
	s = strings.TrimSpace(s)
	table, col, qualified := strings.Cut(s, ".")
	if !qualified {
		name, err := parseIdent(s)
		if err != nil {
			return ColumnRef{}, err
		}
		return ColumnRef{Name: name}, nil
	}

	t, err := parseIdent(table)
	if err != nil {
		return ColumnRef{}, err
	}
	c, err := parseIdent(col)
	if err != nil {
		return ColumnRef{}, err
	}
	return ColumnRef{Table: t, Name: c}, nil
}

// Parse parses a single SQL statement into an AST.
// Policy: statement MUST end with ';'
func Parse(sql string) (Statement, error) {
	s := strings.TrimSpace(sql)
	if s == "" {
		return nil, fmt.Errorf("empty statement")
	}

	if !strings.HasSuffix(s, ";") {
		return nil, fmt.Errorf("missing ';' terminator")
	}

	s = strings.TrimSpace(strings.TrimSuffix(s, ";"))
	if s == "" {
		return nil, fmt.Errorf("empty statement")
	}

	up := strings.ToUpper(s)

	switch {
	case strings.HasPrefix(up, "CREATE TABLE"):
		return parseCreateTable(s)
	case strings.HasPrefix(up, "SELECT"):
		left, right := splitKeyword(s, "UNION")
		if right == "" {
			sel, err := parseSelect(s)
			if err != nil {
				return nil, err
			}
			return sel, nil
		}
		return parseUnion(left, right)
	default:
		return nil, fmt.Errorf("unsupported statement: %q", sql)
	}
}

func parseCreateTable(sql string) (Statement, error) {
	// Very naive: "CREATE TABLE users (id INT, name TEXT, active BOOL)"
	withoutPrefix := strings.TrimSpace(sql[len("CREATE TABLE"):])
	parts := strings.SplitN(withoutPrefix, "(", 2)
	if len(parts) != 2 {
		return nil, fmt.Errorf("invalid CREATE TABLE syntax")
	}

	tableName, err := parseIdent(parts[0])
	if err != nil {
		return nil, fmt.Errorf("invalid CREATE TABLE syntax: %w", err)
	}

	defPart := strings.TrimSpace(parts[1])
	if !strings.HasSuffix(defPart, ")") {
		return nil, fmt.Errorf("invalid CREATE TABLE syntax: missing ')'")
	}
	defPart = strings.TrimSpace(strings.TrimSuffix(defPart, ")"))
	if defPart == "" {
		return nil, fmt.Errorf("invalid CREATE TABLE syntax: empty column list")
	}

	var cols []ColumnDef
	for _, def := range strings.Split(defPart, ",") {
		toks := strings.Fields(def)
		if len(toks) != 2 {
			return nil, fmt.Errorf("invalid column def: %q", strings.TrimSpace(def))
		}

		colName, err := parseIdent(toks[0])
		if err != nil {
			return nil, fmt.Errorf("invalid column name: %w", err)
		}

		cols = append(cols, ColumnDef{
			Name: colName,
			Type: strings.ToUpper(toks[1]),
		})
	}

	return &CreateTableStmt{
		TableName: tableName,
		Columns:   cols,
	}, nil
}

func parseSelect(sql string) (*SelectStmt, error) {
	// "SELECT <*|a, t.b> FROM t [JOIN u [JOIN v]]"
	up := strings.ToUpper(sql)
	if !strings.HasPrefix(up, "SELECT ") {
		return nil, fmt.Errorf("invalid SELECT syntax")
	}

	rest := strings.TrimSpace(sql[len("SELECT "):])
	projPart, fromPart := splitKeyword(" "+rest, "FROM")
	projPart = strings.TrimSpace(projPart)
	if fromPart == "" || projPart == "" {
		return nil, fmt.Errorf("invalid SELECT syntax: expected SELECT <cols> FROM <table>")
	}

	var cols []ColumnRef
	if projPart != "*" {
		for _, raw := range strings.Split(projPart, ",") {
			ref, err := parseColumnRef(raw)
			if err != nil {
				return nil, fmt.Errorf("invalid SELECT column: %w", err)
			}
			cols = append(cols, ref)
		}
	}

	tables := splitAllKeyword(fromPart, "JOIN")
	from, err := parseIdent(tables[0])
	if err != nil {
		return nil, fmt.Errorf("invalid SELECT syntax: %w", err)
	}

	var joins []string
	for _, raw := range tables[1:] {
		name, err := parseIdent(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid JOIN syntax: %w", err)
		}
		joins = append(joins, name)
	}

	return &SelectStmt{Columns: cols, From: from, Joins: joins}, nil
}

func parseUnion(left, right string) (Statement, error) {
	l, err := parseSelect(left)
	if err != nil {
		return nil, fmt.Errorf("invalid UNION left side: %w", err)
	}
	r, err := parseSelect(right)
	if err != nil {
		return nil, fmt.Errorf("invalid UNION right side: %w", err)
	}
	return &UnionStmt{Left: l, Right: r}, nil
}

// splitKeyword splits "X <keyword> Y" case-insensitively at the first keyword.
// returns (X, Y). If keyword not present => (s, "").
//
// NOTE: requires spaces around keyword (" JOIN ").
func splitKeyword(s, keyword string) (string, string) {
	up := strings.ToUpper(s)
	k := " " + strings.ToUpper(keyword) + " "
	idx := strings.Index(up, k)
	if idx < 0 {
		return s, ""
	}
	left := strings.TrimSpace(s[:idx])
	right := strings.TrimSpace(s[idx+len(k):])
	return left, right
}

// splitAllKeyword splits on every occurrence of keyword.
func splitAllKeyword(s, keyword string) []string {
	var out []string
	for {
		left, right := splitKeyword(s, keyword)
		if right == "" {
			return append(out, strings.TrimSpace(left))
		}
		out = append(out, left)
		s = " " + right
	}
}
