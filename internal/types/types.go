package types

import (
	"errors"
	"fmt"
	"strings"
)

// Type is a primitive storage type. Every variant has a fixed serialized length.
type Type uint8

const (
	Int32 Type = iota
	Int64
	Bool
	Float64
	Text // fixed-width UTF-8, see TextLen
)

// TextLen is the on-page width of a Text field.
const TextLen = 128

var ErrUnknownType = errors.New("types: unknown type")

// Len returns the fixed serialized length in bytes.
// It panics on a value outside the enumeration.
func (t Type) Len() int {
	switch t {
	case Int32:
		return 4
	case Int64:
		return 8
	case Bool:
		return 1
	case Float64:
		return 8
	case Text:
		return TextLen
	default:
		panic(fmt.Sprintf("types: unknown type %d", uint8(t)))
	}
}

func (t Type) Valid() bool { return t <= Text }

func (t Type) String() string {
	switch t {
	case Int32:
		return "Int32"
	case Int64:
		return "Int64"
	case Bool:
		return "Bool"
	case Float64:
		return "Float64"
	case Text:
		return "Text"
	default:
		return fmt.Sprintf("Type(%d)", uint8(t))
	}
}

// Parse maps a SQL type name (case-insensitive) to a Type.
func Parse(name string) (Type, error) {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "INT", "INTEGER", "INT4":
		return Int32, nil
	case "BIGINT", "INT8", "LONG":
		return Int64, nil
	case "BOOL", "BOOLEAN":
		return Bool, nil
	case "FLOAT", "DOUBLE", "REAL", "FLOAT8":
		return Float64, nil
	case "TEXT", "VARCHAR", "STRING":
		return Text, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownType, name)
	}
}
