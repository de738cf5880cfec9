package check

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/garciat/roto/ir"
	"github.com/garciat/roto/source"
	"github.com/garciat/roto/tree"
)

// ResolveAll resolves each root into its own table, in parallel. Every root
// gets a private Checker; only the read-only environment is shared. The
// first failure cancels roots that have not started yet.
func ResolveAll(ctx context.Context, env *source.Environment, roots []tree.TypeExpr, opts Options) ([]*ir.Table, error) {
	tables := make([]*ir.Table, len(roots))

	g, gctx := errgroup.WithContext(ctx)
	if opts.Parallelism > 0 {
		g.SetLimit(opts.Parallelism)
	}

	for i, root := range roots {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			table, err := Resolve(root, env, opts)
			if err != nil {
				return err
			}
			tables[i] = table
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return tables, nil
}
