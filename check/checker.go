package check

import (
	"strings"

	. "github.com/garciat/roto/common"
	"github.com/garciat/roto/ir"
	"github.com/garciat/roto/source"
	"github.com/garciat/roto/tree"
)

type Options struct {
	// MaxDepth bounds how many instantiations may be in flight at once.
	MaxDepth int
	// MaxInstances bounds the number of entries in one table.
	MaxInstances int
	// MaxArgSize bounds the node count of one type argument.
	MaxArgSize int
	// Parallelism bounds concurrent resolutions in ResolveAll. Zero means no limit.
	Parallelism int
}

const (
	DefaultMaxDepth     = 1000
	DefaultMaxInstances = 100000
	DefaultMaxArgSize   = 500
)

func DefaultOptions() Options {
	return Options{
		MaxDepth:     DefaultMaxDepth,
		MaxInstances: DefaultMaxInstances,
		MaxArgSize:   DefaultMaxArgSize,
	}
}

func (o Options) withDefaults() Options {
	if o.MaxDepth <= 0 {
		o.MaxDepth = DefaultMaxDepth
	}
	if o.MaxInstances <= 0 {
		o.MaxInstances = DefaultMaxInstances
	}
	if o.MaxArgSize <= 0 {
		o.MaxArgSize = DefaultMaxArgSize
	}
	return o
}

// ========================

// Checker lowers surface type expressions into an ir.Table. Each call to
// Resolve starts from an empty table and memo; a Checker must not be used
// from more than one goroutine at a time.
type Checker struct {
	Env     *source.Environment
	Options Options

	Table *ir.Table
	seen  map[InstanceKey]ir.ID
	trail []ir.Label
}

func NewChecker(env *source.Environment, opts Options) *Checker {
	return &Checker{
		Env:     env,
		Options: opts.withDefaults(),
	}
}

func (c *Checker) reset() {
	c.Table = ir.NewTable()
	c.seen = map[InstanceKey]ir.ID{}
	c.trail = nil
}

// Resolve lowers every root into one shared table. The table's Root is the
// first root's ref. On failure no table is returned.
func (c *Checker) Resolve(roots ...tree.TypeExpr) (*ir.Table, error) {
	c.reset()

	_, err := Try(func() struct{} {
		for i, root := range roots {
			ref := c.ResolveRef(root)
			if i == 0 {
				c.Table.Root = ref
			}
		}
		return struct{}{}
	})
	if err != nil {
		trail := append([]ir.Label(nil), c.trail...)
		c.Table, c.seen = nil, nil
		return nil, &ResolutionError{Trail: trail, Err: err}
	}

	table := c.Table
	c.Table, c.seen = nil, nil
	if err := table.Validate(); err != nil {
		return nil, &ResolutionError{Err: err}
	}
	return table, nil
}

func (c *Checker) depth() int {
	return len(c.trail)
}

func (c *Checker) indent() string {
	return strings.Repeat("  ", c.depth())
}

func (c *Checker) checkLimits() {
	if c.depth() >= c.Options.MaxDepth {
		panic(&ResolutionLimitExceededError{What: "instantiation depth", Limit: c.Options.MaxDepth})
	}
	if c.Table.Len() >= c.Options.MaxInstances {
		panic(&ResolutionLimitExceededError{What: "table entries", Limit: c.Options.MaxInstances})
	}
}

// ========================

func Resolve(root tree.TypeExpr, env *source.Environment, opts Options) (*ir.Table, error) {
	return NewChecker(env, opts).Resolve(root)
}

func ResolveName(name string, env *source.Environment, opts Options) (*ir.Table, error) {
	return Resolve(tree.Name(name), env, opts)
}

// ResolveGlobals resolves every declaration without type parameters into one
// table, in declaration order.
func ResolveGlobals(env *source.Environment, opts Options) (*ir.Table, error) {
	roots := MapSlice(env.Globals(), func(decl *tree.TypeDecl) tree.TypeExpr {
		return &tree.TypeName{Name: decl.Name}
	})
	return NewChecker(env, opts).Resolve(roots...)
}
