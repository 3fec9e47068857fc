package sortable

import "cmp"

// Int is a sortable wrapper type for the built-in int type.
//
// To convert back to a regular int, use a type conversion:
//
//	var s sortable.Int = 42
//	regularInt := int(s)
type Int int

// Byte is a sortable wrapper type for the built-in byte type.
type Byte byte

// Float is a sortable wrapper type for float64. NaN sorts before every other value.
type Float float64

// String is a sortable wrapper type for string, ordered byte-wise.
type String string

var (
	_ Sortable[Int]    = Int(0)
	_ Sortable[Byte]   = Byte(0)
	_ Sortable[Float]  = Float(0)
	_ Sortable[String] = String("")
)

func (i Int) Equals(other Int) bool { return i == other }
func (i Int) LessThan(other Int) bool { return i < other }
func (i Int) Compare(other Int) int { return cmp.Compare(i, other) }

func (b Byte) Equals(other Byte) bool { return b == other }
func (b Byte) LessThan(other Byte) bool { return b < other }
func (b Byte) Compare(other Byte) int { return cmp.Compare(b, other) }

// Equals treats two NaNs as equal so that Equals agrees with Compare.
func (f Float) Equals(other Float) bool { return cmp.Compare(f, other) == 0 }
func (f Float) LessThan(other Float) bool { return cmp.Less(f, other) }
func (f Float) Compare(other Float) int { return cmp.Compare(f, other) }

func (s String) Equals(other String) bool { return s == other }
func (s String) LessThan(other String) bool { return s < other }
func (s String) Compare(other String) int { return cmp.Compare(s, other) }
