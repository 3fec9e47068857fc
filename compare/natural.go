package compare

import (
	"bytes"
	"cmp"
	"fmt"
	"hash"
	"reflect"

	"github.com/astrapi69/jobj-compare/errors"
	"github.com/astrapi69/jobj-compare/hashing"
)

// NaturalOrder is the default fallback ordering. It applies the null rule and
// then the natural order of the values' shared type (see Natural).
//
//nolint:gochecknoglobals
var NaturalOrder Ordering = &naturalOrdering{name: "natural", strings: Strings}

// Natural compares two values by their natural order.
//
// Absent values follow the null rule (see NullCheck). Present values must share
// a dynamic type once pointers are dereferenced. The order used is, in turn:
//   - a method Compare(T) int or Cmp(T) int on the type, such as time.Time.Compare
//     or (*big.Int).Cmp;
//   - a LessThan(T) bool / Equals(T) bool pair, as implemented by the sortable package;
//   - strings by code-point distance (see Strings);
//   - integers, unsigned integers and floats by sign (-1, 0, 1);
//   - booleans with false before true;
//   - byte slices and byte arrays byte-wise, other slices and arrays element-wise
//     and then by length.
//
// Anything else is a contract violation and Natural panics with an error
// wrapping errors.ErrNotOrderable. Use TryNatural to get the error instead.
func Natural(a, b any) int {
	result, err := TryNatural(a, b)
	if err != nil {
		panic(err)
	}

	return result
}

// TryNatural is Natural without the panic: values that cannot be ordered
// produce an error wrapping errors.ErrNotOrderable.
func TryNatural(a, b any) (int, error) {
	return naturalOf(NaturalOrder).try(a, b)
}

// IsNaturallyOrderable reports whether Natural can order a and b without
// violating its contract. Absent values are always orderable.
func IsNaturallyOrderable(a, b any) bool {
	_, err := TryNatural(a, b)

	return err == nil
}

// NaturalWith returns a natural ordering that compares strings with the given
// function instead of Strings. The name identifies the ordering: two orderings
// built with the same name are considered equal and hash identically.
func NaturalWith(name string, strings Func[string]) Ordering {
	if strings == nil {
		strings = Strings
	}

	return &naturalOrdering{name: name, strings: strings}
}

type naturalOrdering struct {
	name    string
	strings Func[string]
}

var (
	_ Ordering             = (*naturalOrdering)(nil)
	_ Comparable[Ordering] = (*naturalOrdering)(nil)
	_ hashing.Hashable     = (*naturalOrdering)(nil)
)

func naturalOf(o Ordering) *naturalOrdering {
	n, _ := o.(*naturalOrdering)

	return n
}

func (n *naturalOrdering) Compare(a, b any) int {
	result, err := n.try(a, b)
	if err != nil {
		panic(err)
	}

	return result
}

func (n *naturalOrdering) Equals(other Ordering) bool {
	o, ok := other.(*naturalOrdering)

	return ok && o.name == n.name
}

func (n *naturalOrdering) UpdateHash(h hash.Hash) error {
	_, err := h.Write([]byte("natural:" + n.name))

	return err
}

func (n *naturalOrdering) String() string {
	return n.name
}

func (n *naturalOrdering) try(a, b any) (int, error) {
	if result, decided := NullCheck(a, b); decided {
		return result, nil
	}

	return n.values(reflect.ValueOf(a), reflect.ValueOf(b))
}

func (n *naturalOrdering) values(va, vb reflect.Value) (int, error) {
	if va.Type() != vb.Type() {
		return 0, notOrderable(va, vb)
	}

	if result, ok := methodOrder(va, vb); ok {
		return result, nil
	}

	switch va.Kind() { //nolint:exhaustive
	case reflect.Pointer, reflect.Interface:
		if va.IsNil() || vb.IsNil() {
			return nilOrder(va.IsNil(), vb.IsNil()), nil
		}

		if va.Kind() == reflect.Interface {
			return n.try(va.Interface(), vb.Interface())
		}

		return n.values(va.Elem(), vb.Elem())
	case reflect.String:
		return n.strings(va.String(), vb.String()), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return cmp.Compare(va.Int(), vb.Int()), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return cmp.Compare(va.Uint(), vb.Uint()), nil
	case reflect.Float32, reflect.Float64:
		return cmp.Compare(va.Float(), vb.Float()), nil
	case reflect.Bool:
		return boolOrder(va.Bool(), vb.Bool()), nil
	case reflect.Slice, reflect.Array:
		if va.Kind() == reflect.Slice && (va.IsNil() || vb.IsNil()) {
			return nilOrder(va.IsNil(), vb.IsNil()), nil
		}

		if va.Type().Elem() == byteType {
			return bytes.Compare(bytesOf(va), bytesOf(vb)), nil
		}

		return n.sequences(va, vb)
	default:
		return 0, notOrderable(va, vb)
	}
}

func (n *naturalOrdering) sequences(va, vb reflect.Value) (int, error) {
	for i := 0; i < va.Len() && i < vb.Len(); i++ {
		result, err := n.values(va.Index(i), vb.Index(i))
		if err != nil {
			return 0, err
		}

		if result != 0 {
			return result, nil
		}
	}

	return cmp.Compare(va.Len(), vb.Len()), nil
}

//nolint:gochecknoglobals
var (
	byteType = reflect.TypeFor[byte]()
	intType  = reflect.TypeFor[int]()
	boolType = reflect.TypeFor[bool]()
)

// methodOrder consults Compare, Cmp or LessThan/Equals methods declared on
// the value's type. The argument type must be the receiver type itself.
func methodOrder(va, vb reflect.Value) (int, bool) {
	if !va.CanInterface() || !vb.CanInterface() || va.Kind() == reflect.Interface {
		return 0, false
	}

	if va.Kind() == reflect.Pointer && (va.IsNil() || vb.IsNil()) {
		return 0, false
	}

	for _, name := range []string{"Compare", "Cmp"} {
		if method, ok := unaryMethod(va, name, intType); ok {
			return int(method.Call([]reflect.Value{vb})[0].Int()), true
		}
	}

	less, hasLess := unaryMethod(va, "LessThan", boolType)
	equals, hasEquals := unaryMethod(va, "Equals", boolType)

	if hasLess && hasEquals {
		switch {
		case less.Call([]reflect.Value{vb})[0].Bool():
			return -1, true
		case equals.Call([]reflect.Value{vb})[0].Bool():
			return 0, true
		default:
			return 1, true
		}
	}

	return 0, false
}

func unaryMethod(v reflect.Value, name string, out reflect.Type) (reflect.Value, bool) {
	method, ok := v.Type().MethodByName(name)
	if !ok {
		return reflect.Value{}, false
	}

	// method.Type includes the receiver as its first input.
	if method.Type.NumIn() != 2 || method.Type.In(1) != v.Type() ||
		method.Type.NumOut() != 1 || method.Type.Out(0) != out {
		return reflect.Value{}, false
	}

	return v.Method(method.Index), true
}

func nilOrder(nilA, nilB bool) int {
	switch {
	case nilA == nilB:
		return 0
	case nilA:
		return -1
	default:
		return 1
	}
}

func boolOrder(a, b bool) int {
	switch {
	case a == b:
		return 0
	case a:
		return 1
	default:
		return -1
	}
}

func bytesOf(v reflect.Value) []byte {
	if v.Kind() == reflect.Slice {
		return v.Bytes()
	}

	out := make([]byte, v.Len())
	reflect.Copy(reflect.ValueOf(out), v)

	return out
}

func notOrderable(va, vb reflect.Value) error {
	return fmt.Errorf("%w: %s and %s", errors.ErrNotOrderable, va.Type(), vb.Type())
}
