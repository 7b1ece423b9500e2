// Package schema maps the type names used in declarations to Go types, and
// holds what the builder needs to know about those types beyond reflection:
// substitute wrappers for interfaces, case names of enums and literal
// converters.
package schema

import (
	"errors"
	"fmt"
	"math/big"
	"net/netip"
	"net/url"
	"reflect"
	"slices"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"mockgraph/internal/common"
	"mockgraph/stub"
)

var (
	ErrTypeAlreadyExists = errors.New("type name already registered")
	ErrNotAnInterface    = errors.New("substitutes can only stand in for interfaces")
	ErrNotAnEnum         = errors.New("enum values must implement fmt.Stringer")
)

// DefaultNamespaces are searched after the bare name and before any
// configured namespace.
var DefaultNamespaces = []string{"time", "big", "netip", "uuid"}

// Registry is safe for concurrent use. Registrations normally happen once,
// before the first build.
type Registry struct {
	mu         sync.RWMutex
	types      map[string]reflect.Type
	wrappers   map[reflect.Type]reflect.Value
	enums      map[reflect.Type]map[string]reflect.Value
	converters map[reflect.Type]Converter
}

// New returns a registry knowing the predeclared types, time.Time,
// time.Duration, *big.Int, *big.Float, *big.Rat, netip.Addr, *url.URL and
// uuid.UUID.
func New() *Registry {
	r := &Registry{
		types:      make(map[string]reflect.Type),
		wrappers:   make(map[reflect.Type]reflect.Value),
		enums:      make(map[reflect.Type]map[string]reflect.Value),
		converters: make(map[reflect.Type]Converter),
	}

	builtins := map[string]reflect.Type{
		"bool":          reflect.TypeFor[bool](),
		"string":        reflect.TypeFor[string](),
		"int":           reflect.TypeFor[int](),
		"int8":          reflect.TypeFor[int8](),
		"int16":         reflect.TypeFor[int16](),
		"int32":         reflect.TypeFor[int32](),
		"int64":         reflect.TypeFor[int64](),
		"uint":          reflect.TypeFor[uint](),
		"uint8":         reflect.TypeFor[uint8](),
		"uint16":        reflect.TypeFor[uint16](),
		"uint32":        reflect.TypeFor[uint32](),
		"uint64":        reflect.TypeFor[uint64](),
		"uintptr":       reflect.TypeFor[uintptr](),
		"byte":          reflect.TypeFor[byte](),
		"rune":          reflect.TypeFor[rune](),
		"float32":       reflect.TypeFor[float32](),
		"float64":       reflect.TypeFor[float64](),
		"any":           reflect.TypeFor[any](),
		"error":         reflect.TypeFor[error](),
		"time.Time":     reflect.TypeFor[time.Time](),
		"time.Duration": reflect.TypeFor[time.Duration](),
		"big.Int":       reflect.TypeFor[*big.Int](),
		"big.Float":     reflect.TypeFor[*big.Float](),
		"big.Rat":       reflect.TypeFor[*big.Rat](),
		"netip.Addr":    reflect.TypeFor[netip.Addr](),
		"url.URL":       reflect.TypeFor[*url.URL](),
		"uuid.UUID":     reflect.TypeFor[uuid.UUID](),
	}
	for name, t := range builtins {
		r.types[name] = t
	}

	r.converters[reflect.TypeFor[*url.URL]()], _ = ParseConverter(url.Parse)
	r.converters[reflect.TypeFor[uuid.UUID]()], _ = ParseConverter(uuid.Parse)

	return r
}

// QualifiedName is the name t is registered under by default: package alias
// and type name, "fixture.Point".
func QualifiedName(t reflect.Type) string {
	for t.Kind() == reflect.Pointer && t.Name() == "" {
		t = t.Elem()
	}

	alias := common.PkgAlias(t.PkgPath())
	if alias == "" {
		return t.String()
	}

	return alias + "." + t.Name()
}

// Register makes t resolvable under its qualified name and the given aliases.
func (r *Registry) Register(t reflect.Type, aliases ...string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.register(t, aliases...)
}

func (r *Registry) register(t reflect.Type, aliases ...string) error {
	names := append([]string{QualifiedName(t)}, aliases...)

	for _, name := range names {
		if prev, ok := r.types[name]; ok && prev != t {
			return fmt.Errorf("%w: %s is %s", ErrTypeAlreadyExists, name, prev)
		}
	}

	for _, name := range names {
		r.types[name] = t
	}

	return nil
}

// Substitute registers the interface T together with the constructor of its
// wrapper.
func Substitute[T any](r *Registry, wrap func(*stub.Substitute) T, aliases ...string) error {
	t := reflect.TypeFor[T]()
	if t.Kind() != reflect.Interface {
		return fmt.Errorf("%w: %s", ErrNotAnInterface, t)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.register(t, aliases...); err != nil {
		return err
	}

	r.wrappers[t] = reflect.ValueOf(wrap)

	return nil
}

// Enum registers E with its values, looked up by their String() names.
func Enum[E comparable](r *Registry, values ...E) error {
	t := reflect.TypeFor[E]()

	byName := make(map[string]reflect.Value, len(values))
	for _, v := range values {
		s, ok := any(v).(fmt.Stringer)
		if !ok {
			return fmt.Errorf("%w: %s", ErrNotAnEnum, t)
		}

		byName[s.String()] = reflect.ValueOf(v)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.register(t); err != nil {
		return err
	}

	r.enums[t] = byName

	return nil
}

// RegisterConverter registers fn as the literal constructor of its result type.
func (r *Registry) RegisterConverter(fn any, aliases ...string) error {
	conv, err := ParseConverter(fn)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.register(conv.Dst, aliases...); err != nil {
		return err
	}

	r.converters[conv.Dst] = conv

	return nil
}

// Resolve finds the type of name. A bare name is tried as is and then in
// each namespace in order. Composite names are supported with "*T", "[]T",
// "[N]T" and "map[K]V".
func (r *Registry) Resolve(name string, namespaces []string) (reflect.Type, bool) {
	name = strings.TrimSpace(name)

	switch {
	case strings.HasPrefix(name, "*"):
		elem, ok := r.Resolve(name[1:], namespaces)
		if !ok {
			return nil, false
		}
		return reflect.PointerTo(elem), true

	case strings.HasPrefix(name, "[]"):
		elem, ok := r.Resolve(name[2:], namespaces)
		if !ok {
			return nil, false
		}
		return reflect.SliceOf(elem), true

	case strings.HasPrefix(name, "["):
		end := strings.IndexByte(name, ']')
		if end < 0 {
			return nil, false
		}

		n, err := strconv.Atoi(name[1:end])
		if err != nil || n < 0 {
			return nil, false
		}

		elem, ok := r.Resolve(name[end+1:], namespaces)
		if !ok {
			return nil, false
		}
		return reflect.ArrayOf(n, elem), true

	case strings.HasPrefix(name, "map["):
		key, value, ok := splitMap(name)
		if !ok {
			return nil, false
		}

		kt, ok := r.Resolve(key, namespaces)
		if !ok || !kt.Comparable() {
			return nil, false
		}

		vt, ok := r.Resolve(value, namespaces)
		if !ok {
			return nil, false
		}
		return reflect.MapOf(kt, vt), true
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, ns := range r.namespaces(namespaces) {
		candidate := name
		if ns != "" {
			candidate = ns + "." + name
		}

		if t, ok := r.types[candidate]; ok {
			return t, true
		}
	}

	return nil, false
}

// Names returns every registered name, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.types))
	for name := range r.types {
		names = append(names, name)
	}
	slices.Sort(names)

	return names
}

// Wrap creates the wrapper of the interface t around s.
func (r *Registry) Wrap(t reflect.Type, s *stub.Substitute) (reflect.Value, bool) {
	r.mu.RLock()
	wrap, ok := r.wrappers[t]
	r.mu.RUnlock()

	if !ok {
		return reflect.Value{}, false
	}

	return wrap.Call([]reflect.Value{reflect.ValueOf(s)})[0], true
}

// IsEnum reports whether t was registered with Enum.
func (r *Registry) IsEnum(t reflect.Type) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.enums[t]
	return ok
}

// EnumValue returns the value of the enum t named name.
func (r *Registry) EnumValue(t reflect.Type, name string) (reflect.Value, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	v, ok := r.enums[t][name]
	return v, ok
}

// EnumNames returns the case names of the enum t, sorted.
func (r *Registry) EnumNames(t reflect.Type) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.enums[t]))
	for name := range r.enums[t] {
		names = append(names, name)
	}
	slices.Sort(names)

	return names
}

// ConverterOf returns the converter producing t.
func (r *Registry) ConverterOf(t reflect.Type) (Converter, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.converters[t]
	return c, ok
}

func (r *Registry) namespaces(extra []string) []string {
	all := make([]string, 0, 1+len(DefaultNamespaces)+len(extra))
	all = append(all, "")
	all = append(all, DefaultNamespaces...)

	for _, ns := range extra {
		if !slices.Contains(all, ns) {
			all = append(all, ns)
		}
	}

	return all
}

// splitMap splits "map[K]V" into K and V, K may contain brackets itself.
func splitMap(name string) (key, value string, ok bool) {
	rest := strings.TrimPrefix(name, "map[")

	depth := 1
	for i, r := range rest {
		switch r {
		case '[':
			depth++
		case ']':
			depth--
			if depth == 0 {
				return rest[:i], rest[i+1:], i > 0 && i+1 < len(rest)
			}
		}
	}

	return "", "", false
}
