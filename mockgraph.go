package mockgraph

import (
	"fmt"
	"reflect"

	"mockgraph/internal/build"
	"mockgraph/internal/coerce"
	"mockgraph/internal/compile"
	"mockgraph/internal/diagnostic"
	"mockgraph/internal/introspect"
	"mockgraph/internal/verify"
	"mockgraph/node"
	"mockgraph/options"
	"mockgraph/schema"
)

var (
	ErrGrammar      = diagnostic.ErrGrammar
	ErrResolution   = diagnostic.ErrResolution
	ErrPolicy       = diagnostic.ErrPolicy
	ErrCoercion     = diagnostic.ErrCoercion
	ErrVerification = diagnostic.ErrVerification
)

// Mode selects what Verify compares declarations with.
type Mode = verify.Mode

const (
	// Getters compares each declared value with what its accessor returns.
	Getters = verify.Getters
	// Setters expects each declared value to have been passed to its mutator.
	Setters = verify.Setters
)

// Builder compiles declarations and builds or verifies object graphs. It
// holds no per-call state and is safe for concurrent use once the registry is
// fully populated.
type Builder struct {
	cfg      options.Config
	registry *schema.Registry
	coercer  *coerce.Coercer
	builder  *build.Builder
	verifier *verify.Verifier
}

// New returns a Builder resolving type names through reg.
func New(reg *schema.Registry, opts ...options.Option) *Builder {
	cfg := options.Apply(opts...)

	f := &factory{registry: reg, maxSuggestions: cfg.MaxSuggestions}
	in := introspect.New()
	co := coerce.New(reg, cfg.Namespaces, f).WithMaxSuggestions(cfg.MaxSuggestions)

	return &Builder{
		cfg:      cfg,
		registry: reg,
		coercer:  co,
		builder:  build.New(f, in, co, cfg.Logger),
		verifier: verify.New(in, co, cfg.Logger),
	}
}

// Compile compiles the declaration lists, in order, into one tree rooted at
// t. Later lists extend and override earlier ones, which is how shared
// defaults are combined with per-test declarations.
func (b *Builder) Compile(t reflect.Type, lists [][]string, extra ...reflect.Type) (*node.Node, error) {
	if t == nil {
		return nil, diagnostic.Resolution("", "no root type")
	}

	c := compile.New(b.cfg.Logger)
	for _, lines := range lists {
		if err := c.DeclareAll(t, lines, extra...); err != nil {
			return nil, err
		}
	}

	if len(lists) == 0 {
		if err := c.DeclareAll(t, nil, extra...); err != nil {
			return nil, err
		}
	}

	return c.RootOf(t), nil
}

// Build compiles the declaration lists and materializes the graph rooted
// at t. The result implements every extra capability.
func (b *Builder) Build(t reflect.Type, lists [][]string, extra ...reflect.Type) (any, error) {
	root, err := b.Compile(t, lists, extra...)
	if err != nil {
		return nil, err
	}

	v, err := b.builder.Build(root)
	if err != nil {
		return nil, err
	}

	if !v.IsValid() {
		return nil, nil
	}

	return v.Interface(), nil
}

// Build builds a T from decls, followed by more declaration lists.
func Build[T any](b *Builder, decls []string, more ...[]string) (T, error) {
	var zero T

	lists := append([][]string{decls}, more...)

	v, err := b.Build(reflect.TypeFor[T](), lists)
	if err != nil {
		return zero, err
	}

	if v == nil {
		return zero, nil
	}

	out, ok := v.(T)
	if !ok {
		return zero, fmt.Errorf("built %T, want %s", v, reflect.TypeFor[T]())
	}

	return out, nil
}

// Verify checks root against decls. Paths are resolved on the dynamic types
// of the graph, so root may be a substitute built by this package or any
// other value. A mismatch is reported as ErrVerification.
func (b *Builder) Verify(mode Mode, root any, decls ...string) error {
	if root == nil {
		return diagnostic.Verification("", "nothing to verify: root is nil")
	}

	v := reflect.ValueOf(root)

	tree, err := b.Compile(v.Type(), [][]string{decls})
	if err != nil {
		return err
	}

	return b.verifier.Verify(mode, v, tree)
}

// Resolve finds the type named name in the registry and the configured
// namespaces.
func (b *Builder) Resolve(name string) (reflect.Type, error) {
	return b.coercer.Resolve(name)
}

// Registry returns the registry type names are resolved through.
func (b *Builder) Registry() *schema.Registry { return b.registry }

// Config returns the configuration of b.
func (b *Builder) Config() options.Config { return b.cfg }
