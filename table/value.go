package table

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// Kind discriminates the scalar variants a Table cell can hold.
type Kind int

const (
	KindNull Kind = iota
	KindString
	KindNumber
	KindBool
	KindMol
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindBool:
		return "bool"
	case KindMol:
		return "mol"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Mol is the opaque molecular-structure handle carried by structured-record
// columns: the record title plus the raw molblock text. No chemistry is
// interpreted here.
type Mol struct {
	name     string
	molblock string
}

func NewMol(name, molblock string) *Mol {
	return &Mol{name: name, molblock: molblock}
}

func (m *Mol) Name() string     { return m.name }
func (m *Mol) Molblock() string { return m.molblock }

// Value is one Table cell, a tagged scalar. The zero value is the null cell.
type Value struct {
	kind Kind
	s    string
	f    float64
	b    bool
	mol  *Mol
}

func Null() Value            { return Value{kind: KindNull} }
func String(s string) Value  { return Value{kind: KindString, s: s} }
func Number(f float64) Value { return Value{kind: KindNumber, f: f} }
func Bool(b bool) Value      { return Value{kind: KindBool, b: b} }

// MolHandle wraps a molecular handle into a cell. A nil handle is the null cell.
func MolHandle(m *Mol) Value {
	if m == nil {
		return Null()
	}
	return Value{kind: KindMol, mol: m}
}

func (v Value) Kind() Kind   { return v.kind }
func (v Value) IsNull() bool { return v.kind == KindNull }

func (v Value) AsString() (string, bool)  { return v.s, v.kind == KindString }
func (v Value) AsNumber() (float64, bool) { return v.f, v.kind == KindNumber }
func (v Value) AsBool() (bool, bool)      { return v.b, v.kind == KindBool }
func (v Value) AsMol() (*Mol, bool)       { return v.mol, v.kind == KindMol }

// Equal reports native scalar equality: kinds must match exactly, no coercion
// between kinds. Null equals null; molecular handles compare by name and
// molblock text.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindNull:
		return true
	case KindString:
		return v.s == o.s
	case KindNumber:
		return v.f == o.f
	case KindBool:
		return v.b == o.b
	case KindMol:
		return v.mol.name == o.mol.name && v.mol.molblock == o.mol.molblock
	}
	return false
}

func (v Value) String() string {
	switch v.kind {
	case KindNull:
		return "null"
	case KindString:
		return v.s
	case KindNumber:
		return strconv.FormatFloat(v.f, 'g', -1, 64)
	case KindBool:
		return strconv.FormatBool(v.b)
	case KindMol:
		if v.mol.name != "" {
			return "mol:" + v.mol.name
		}
		return "mol"
	default:
		return fmt.Sprintf("value(kind=%d)", int(v.kind))
	}
}

// ValueOf normalizes a plain Go scalar into a Value. nil is the null marker.
// Values that are not representable as a table scalar are rejected.
func ValueOf(value any) (Value, error) {
	switch t := value.(type) {
	case nil:
		return Null(), nil
	case Value:
		return t, nil
	case string:
		return String(t), nil
	case bool:
		return Bool(t), nil
	case float64:
		return Number(t), nil
	case float32:
		return Number(float64(t)), nil
	case int:
		return Number(float64(t)), nil
	case int8:
		return Number(float64(t)), nil
	case int16:
		return Number(float64(t)), nil
	case int32:
		return Number(float64(t)), nil
	case int64:
		return Number(float64(t)), nil
	case uint:
		return Number(float64(t)), nil
	case uint8:
		return Number(float64(t)), nil
	case uint16:
		return Number(float64(t)), nil
	case uint32:
		return Number(float64(t)), nil
	case uint64:
		return Number(float64(t)), nil
	case *Mol:
		return MolHandle(t), nil
	default:
		return Value{}, fmt.Errorf("unsupported scalar type %T", value)
	}
}

type molJSON struct {
	Name     string `json:"name"`
	Molblock string `json:"molblock"`
}

// MarshalJSON encodes cells as their natural JSON counterparts: null, string,
// number, bool, or an object carrying the molecular handle.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindNull:
		return []byte("null"), nil
	case KindString:
		return json.Marshal(v.s)
	case KindNumber:
		return json.Marshal(v.f)
	case KindBool:
		return json.Marshal(v.b)
	case KindMol:
		return json.Marshal(molJSON{Name: v.mol.name, Molblock: v.mol.molblock})
	default:
		return nil, fmt.Errorf("marshal value of kind %s", v.kind)
	}
}

func (v *Value) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return fmt.Errorf("unmarshal empty value")
	}
	if bytes.Equal(data, []byte("null")) {
		*v = Null()
		return nil
	}
	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*v = String(s)
	case 't', 'f':
		var b bool
		if err := json.Unmarshal(data, &b); err != nil {
			return err
		}
		*v = Bool(b)
	case '{':
		var m molJSON
		if err := json.Unmarshal(data, &m); err != nil {
			return err
		}
		*v = MolHandle(NewMol(m.Name, m.Molblock))
	default:
		var f float64
		if err := json.Unmarshal(data, &f); err != nil {
			return err
		}
		*v = Number(f)
	}
	return nil
}
