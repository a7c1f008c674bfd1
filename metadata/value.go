// Package metadata locates and decodes the geotagging and descriptive
// fields embedded in photograph files. Raw tag values arrive as a closed
// set of variants; every extraction site handles each arm explicitly
// instead of falling back to a catch-all.
package metadata

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

type Kind int

const (
	KindText Kind = iota + 1
	KindBytes
	KindInt
	KindFloat
	KindRational
)

// Rational is an unreduced numerator/denominator pair as stored in the
// file. A zero denominator yields +Inf/NaN from Float, which callers
// must reject via finiteness checks.
type Rational struct {
	Num, Den int64
}

func (r Rational) Float() float64 {
	return float64(r.Num) / float64(r.Den)
}

// Value is one raw tag value.
type Value struct {
	Kind   Kind
	Text   string
	Bytes  []byte
	Ints   []int64
	Floats []float64
	Rats   []Rational
}

func TextValue(s string) Value       { return Value{Kind: KindText, Text: s} }
func BytesValue(b []byte) Value      { return Value{Kind: KindBytes, Bytes: b} }
func IntValue(ns ...int64) Value     { return Value{Kind: KindInt, Ints: ns} }
func FloatValue(fs ...float64) Value { return Value{Kind: KindFloat, Floats: fs} }
func RatValue(rs ...Rational) Value  { return Value{Kind: KindRational, Rats: rs} }

// Count reports the number of components carried by numeric kinds.
func (v Value) Count() int {
	switch v.Kind {
	case KindInt:
		return len(v.Ints)
	case KindFloat:
		return len(v.Floats)
	case KindRational:
		return len(v.Rats)
	default:
		return 0
	}
}

// Component returns the i-th component as a float64. Text and byte
// values have no numeric view.
func (v Value) Component(i int) (float64, bool) {
	if i < 0 || i >= v.Count() {
		return 0, false
	}
	switch v.Kind {
	case KindInt:
		return float64(v.Ints[i]), true
	case KindFloat:
		return v.Floats[i], true
	case KindRational:
		return v.Rats[i].Float(), true
	default:
		return 0, false
	}
}

// FiniteComponents returns all components as floats when every one of
// them is finite.
func (v Value) FiniteComponents() ([]float64, bool) {
	n := v.Count()
	if n == 0 {
		return nil, false
	}
	out := make([]float64, n)
	for i := 0; i < n; i++ {
		f, ok := v.Component(i)
		if !ok || math.IsInf(f, 0) || math.IsNaN(f) {
			return nil, false
		}
		out[i] = f
	}
	return out, true
}

// Display renders the value for listings and diagnostics.
func (v Value) Display() string {
	switch v.Kind {
	case KindText:
		return v.Text
	case KindBytes:
		return fmt.Sprintf("%q", v.Bytes)
	case KindInt:
		if len(v.Ints) == 1 {
			return fmt.Sprintf("%d", v.Ints[0])
		}
		parts := make([]string, len(v.Ints))
		for i, n := range v.Ints {
			parts[i] = fmt.Sprintf("%d", n)
		}
		return "(" + strings.Join(parts, ", ") + ")"
	case KindFloat:
		if len(v.Floats) == 1 {
			return fmt.Sprintf("%g", v.Floats[0])
		}
		parts := make([]string, len(v.Floats))
		for i, f := range v.Floats {
			parts[i] = fmt.Sprintf("%g", f)
		}
		return "(" + strings.Join(parts, ", ") + ")"
	case KindRational:
		parts := make([]string, len(v.Rats))
		for i, r := range v.Rats {
			parts[i] = fmt.Sprintf("%d/%d", r.Num, r.Den)
		}
		if len(parts) == 1 {
			return parts[0]
		}
		return "(" + strings.Join(parts, ", ") + ")"
	default:
		return ""
	}
}

// Table is a read-only view of one image's decoded tag table, keyed by
// numeric tag identifier. The GPS sub-block is reachable through Nested.
type Table interface {
	Get(id uint16) (Value, bool)
	Nested(id uint16) (Table, bool)
	IDs() []uint16
}

// MapTable is the plain in-memory Table used by the goexif provider and
// by tests.
type MapTable struct {
	Values map[uint16]Value
	Tables map[uint16]*MapTable
}

func NewMapTable() *MapTable {
	return &MapTable{
		Values: make(map[uint16]Value),
		Tables: make(map[uint16]*MapTable),
	}
}

func (t *MapTable) Get(id uint16) (Value, bool) {
	v, ok := t.Values[id]
	return v, ok
}

func (t *MapTable) Nested(id uint16) (Table, bool) {
	n, ok := t.Tables[id]
	if !ok || n == nil {
		return nil, false
	}
	return n, true
}

// IDs returns the value keys in ascending order so that iteration over
// pass-through tags is deterministic.
func (t *MapTable) IDs() []uint16 {
	ids := make([]uint16, 0, len(t.Values))
	for id := range t.Values {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
