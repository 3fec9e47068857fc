package property

import (
	"fmt"
	"maps"
	"reflect"
	"slices"
	"strings"
	"sync"
	"unicode"
	"unicode/utf8"

	"github.com/astrapi69/jobj-compare/compare"
	"github.com/astrapi69/jobj-compare/errors"
)

// DefaultTag is the struct tag key consulted for property names.
const DefaultTag = "compare"

// Default is the shared reflective accessor used when none is configured.
var Default = NewReflector() //nolint:gochecknoglobals

// Reflector is an Accessor backed by reflection.
//
// Struct properties are the exported fields, promoted fields included, named
// by the struct tag (`compare:"name"`, `compare:"-"` to exclude) or else by
// the field name with its first letter lowered ("Name" becomes "name", "URL"
// stays "URL"). When getters are enabled, methods GetX() and IsX() returning
// V or (V, error) contribute property "x"; fields take precedence. Maps with
// string keys expose their entries. A dotted name such as "address.city"
// reads nested properties; an absent value along the path yields nil.
//
// Per-type metadata is computed once and cached; a Reflector is safe for
// concurrent use.
type Reflector struct {
	tag     string
	getters bool
	types   sync.Map // reflect.Type -> *typeInfo
}

// Option configures a Reflector.
type Option func(*Reflector)

// WithTag sets the struct tag key consulted for property names.
func WithTag(key string) Option {
	return func(r *Reflector) {
		if key != "" {
			r.tag = key
		}
	}
}

// WithGetters toggles getter-method discovery. It is enabled by default.
func WithGetters(enabled bool) Option {
	return func(r *Reflector) {
		r.getters = enabled
	}
}

// NewReflector creates a reflective accessor.
func NewReflector(opts ...Option) *Reflector {
	r := &Reflector{tag: DefaultTag, getters: true}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

var _ Accessor = (*Reflector)(nil)

// Names implements Accessor. Values other than structs and string-keyed maps
// have no properties.
func (r *Reflector) Names(obj any) ([]string, error) {
	v, ok := base(reflect.ValueOf(obj))
	if !ok {
		return nil, fmt.Errorf("%w: cannot list properties of an absent value", errors.ErrInvalidArgument)
	}

	switch v.Kind() { //nolint:exhaustive
	case reflect.Struct:
		return slices.Clone(r.typeInfo(v.Type()).names), nil
	case reflect.Map:
		if v.Type().Key().Kind() != reflect.String {
			return nil, nil
		}

		names := make([]string, 0, v.Len())

		for _, key := range v.MapKeys() {
			if key.String() != TypeProperty {
				names = append(names, key.String())
			}
		}

		slices.Sort(names)

		return names, nil
	default:
		return nil, nil
	}
}

// Get implements Accessor.
func (r *Reflector) Get(obj any, name string) (any, error) {
	if name == TypeProperty {
		return TypeName(obj), nil
	}

	v, ok := base(reflect.ValueOf(obj))
	if !ok {
		return nil, fmt.Errorf("%w: cannot read property %q of an absent value", errors.ErrInvalidArgument, name)
	}

	value, err := r.get(obj, v, name)
	if err == nil || !errors.Is(err, errors.ErrNoSuchProperty) {
		return value, err
	}

	head, rest, dotted := strings.Cut(name, ".")
	if !dotted {
		return nil, err
	}

	parent, err := r.get(obj, v, head)
	if err != nil {
		return nil, wholePath(obj, name, err)
	}

	if compare.IsAbsent(parent) {
		return nil, nil
	}

	value, err = r.Get(parent, rest)

	return value, wholePath(obj, name, err)
}

// wholePath reports a missing segment of a dotted path as the whole path
// missing on obj.
func wholePath(obj any, name string, err error) error {
	if errors.Is(err, errors.ErrNoSuchProperty) {
		return NoSuchProperty(obj, name)
	}

	return err
}

func (r *Reflector) get(obj any, v reflect.Value, name string) (any, error) {
	switch v.Kind() { //nolint:exhaustive
	case reflect.Struct:
		info := r.typeInfo(v.Type())

		prop, ok := info.props[name]
		if ok {
			return prop.read(obj, v, name)
		}

		if _, hidden := info.hidden[name]; hidden {
			return nil, IllegalAccess(obj, name)
		}
	case reflect.Map:
		keyType := v.Type().Key()
		if keyType.Kind() != reflect.String {
			break
		}

		elem := v.MapIndex(reflect.ValueOf(name).Convert(keyType))
		if elem.IsValid() {
			return elem.Interface(), nil
		}
	}

	return nil, NoSuchProperty(obj, name)
}

// base strips pointers and interfaces. It reports false for absent values.
func base(v reflect.Value) (reflect.Value, bool) {
	for v.IsValid() && (v.Kind() == reflect.Pointer || v.Kind() == reflect.Interface) {
		if v.IsNil() {
			return reflect.Value{}, false
		}

		v = v.Elem()
	}

	return v, v.IsValid()
}

type typeInfo struct {
	names  []string
	props  map[string]prop
	hidden map[string]struct{}
}

type prop struct {
	index     []int  // field path, for fields
	method    string // method name, for getters
	withError bool
}

func (r *Reflector) typeInfo(t reflect.Type) *typeInfo {
	if cached, ok := r.types.Load(t); ok {
		return cached.(*typeInfo) //nolint:forcetypeassert
	}

	actual, _ := r.types.LoadOrStore(t, r.inspect(t))

	return actual.(*typeInfo) //nolint:forcetypeassert
}

func (r *Reflector) inspect(t reflect.Type) *typeInfo {
	info := &typeInfo{
		props:  make(map[string]prop),
		hidden: make(map[string]struct{}),
	}

	for _, field := range reflect.VisibleFields(t) {
		if field.Anonymous && isStruct(field.Type) {
			// Its promoted fields are visited on their own.
			continue
		}

		tag, _, _ := strings.Cut(field.Tag.Get(r.tag), ",")

		name := tag
		if name == "" || name == "-" {
			name = Decapitalize(field.Name)
		}

		switch {
		case name == TypeProperty:
		case tag == "-" || !field.IsExported():
			info.hidden[name] = struct{}{}
		default:
			if _, dup := info.props[name]; !dup {
				info.props[name] = prop{index: field.Index}
			}
		}
	}

	if r.getters {
		ptr := reflect.PointerTo(t)

		for i := range ptr.NumMethod() {
			method := ptr.Method(i)

			name, ok := getterName(method)
			if !ok || name == TypeProperty {
				continue
			}

			if _, exists := info.props[name]; !exists {
				info.props[name] = prop{method: method.Name, withError: method.Type.NumOut() == 2}
			}
		}
	}

	info.names = slices.Sorted(maps.Keys(info.props))

	return info
}

func (p prop) read(obj any, v reflect.Value, name string) (any, error) {
	if p.method != "" {
		return p.call(obj, v, name)
	}

	field, err := v.FieldByIndexErr(p.index)
	if err != nil {
		// A nil embedded pointer: the promoted field is absent.
		return nil, nil //nolint:nilerr
	}

	if !field.CanInterface() {
		return nil, IllegalAccess(obj, name)
	}

	return field.Interface(), nil
}

func (p prop) call(obj any, v reflect.Value, name string) (result any, err error) {
	var recv reflect.Value

	if v.CanAddr() {
		recv = v.Addr()
	} else {
		recv = reflect.New(v.Type())
		recv.Elem().Set(v)
	}

	defer func() {
		if recovered := recover(); recovered != nil {
			cause, ok := recovered.(error)
			if !ok {
				cause = fmt.Errorf("%v", recovered) //nolint:err113
			}

			result, err = nil, Invocation(obj, name, fmt.Errorf("%s panicked: %w", p.method, cause))
		}
	}()

	out := recv.MethodByName(p.method).Call(nil)

	if p.withError && !out[1].IsNil() {
		cause, _ := out[1].Interface().(error)

		return nil, Invocation(obj, name, cause)
	}

	return out[0].Interface(), nil
}

//nolint:gochecknoglobals
var errorType = reflect.TypeFor[error]()

// getterName derives the property name of a GetX or IsX method. IsX must
// return bool.
func getterName(method reflect.Method) (string, bool) {
	mt := method.Type

	// The receiver is the first input.
	if mt.NumIn() != 1 || mt.NumOut() < 1 || mt.NumOut() > 2 {
		return "", false
	}

	if mt.NumOut() == 2 && mt.Out(1) != errorType {
		return "", false
	}

	var rest string

	switch {
	case strings.HasPrefix(method.Name, "Get"):
		rest = method.Name[len("Get"):]
	case strings.HasPrefix(method.Name, "Is") && mt.Out(0).Kind() == reflect.Bool:
		rest = method.Name[len("Is"):]
	default:
		return "", false
	}

	first, _ := utf8.DecodeRuneInString(rest)
	if !unicode.IsUpper(first) {
		return "", false
	}

	return Decapitalize(rest), true
}

// Decapitalize lowers the first letter of a name unless the first two letters
// are both upper case, so "Name" becomes "name" and "URL" stays "URL".
func Decapitalize(name string) string {
	first, size := utf8.DecodeRuneInString(name)
	if size == 0 {
		return name
	}

	second, _ := utf8.DecodeRuneInString(name[size:])
	if unicode.IsUpper(first) && unicode.IsUpper(second) {
		return name
	}

	return string(unicode.ToLower(first)) + name[size:]
}

func isStruct(t reflect.Type) bool {
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	return t.Kind() == reflect.Struct
}
