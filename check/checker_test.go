package check

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/davecgh/go-spew/spew"

	"github.com/garciat/roto/ir"
	"github.com/garciat/roto/source"
	"github.com/garciat/roto/tree"
)

func mustEnv(t *testing.T, decls ...*tree.TypeDecl) *source.Environment {
	t.Helper()
	env, err := source.NewEnvironment(decls)
	if err != nil {
		t.Fatalf("NewEnvironment: %v", err)
	}
	return env
}

func mustResolve(t *testing.T, env *source.Environment, root string) *ir.Table {
	t.Helper()
	table, err := ResolveName(root, env, DefaultOptions())
	if err != nil {
		t.Fatalf("ResolveName(%s): %v", root, err)
	}
	return table
}

func assertTable(t *testing.T, table *ir.Table, want string) {
	t.Helper()
	if got := table.String(); got != want {
		t.Fatalf("unexpected table:\n--- got ---\n%s--- want ---\n%s", got, want)
	}
}

func userDecls() []*tree.TypeDecl {
	return []*tree.TypeDecl{
		tree.GenericDecl("Identified", []string{"T"},
			tree.Intersect(tree.Name("T"), tree.Struct(tree.Field("id", tree.BuiltinTypeString)))),
		tree.GenericDecl("CollectionResponse", []string{"T"},
			tree.Struct(
				tree.Field("items", tree.Name("T")),
				tree.Field("total", tree.BuiltinTypeInt),
			)),
		tree.Decl("UserStatus", tree.Enum(
			tree.UnitVariant("Active"),
			tree.UnitVariant("Inactive"),
			tree.UnitVariant("Banned"),
		)),
		tree.Decl("UserProperties", tree.Struct(
			tree.Field("name", tree.BuiltinTypeString),
			tree.Field("status", tree.Name("UserStatus")),
		)),
		tree.Decl("User", tree.Apply("Identified", tree.Arg("T", tree.Name("UserProperties")))),
		tree.Decl("UserCollectionResponse", tree.Apply("CollectionResponse", tree.Arg("T", tree.Name("User")))),
		tree.Decl("X", tree.Name("UserCollectionResponse")),
	}
}

const userTable = `type X#0 = reference 1
type UserCollectionResponse#1 = reference 2
type CollectionResponse<T=User>#2 = struct {
  items: reference 3,
  total: int,
}
type User#3 = reference 4
type Identified<T=UserProperties>#4 = struct {
  name: string,
  status: reference 6,
  id: string,
}
type UserProperties#5 = struct {
  name: string,
  status: reference 6,
}
type UserStatus#6 = enum {
  Active(unit),
  Inactive(unit),
  Banned(unit),
}
`

func TestResolveUserCollection(t *testing.T) {
	env := mustEnv(t, userDecls()...)
	table := mustResolve(t, env, "X")

	assertTable(t, table, userTable)

	if table.Len() != 7 {
		t.Fatalf("expected 7 entries, got %d", table.Len())
	}
	if !ir.SameRef(table.Root, ir.RefTo(0)) {
		t.Fatalf("expected root reference 0, got %v", table.Root)
	}

	identified := table.Entry(4).Shape.(*ir.StructShape)
	props := table.Entry(5).Shape.(*ir.StructShape)
	a, _ := identified.Field("status")
	b, _ := props.Field("status")
	if !ir.SameRef(a.Type, ir.RefTo(6)) || !ir.SameRef(b.Type, ir.RefTo(6)) {
		t.Fatalf("status fields should share entry 6: %v, %v", a.Type, b.Type)
	}
}

func TestResolveAlias(t *testing.T) {
	env := mustEnv(t,
		tree.Decl("A", tree.Name("B")),
		tree.Decl("B", tree.Struct(tree.Field("x", tree.BuiltinTypeInt))),
	)
	assertTable(t, mustResolve(t, env, "A"), `type A#0 = reference 1
type B#1 = struct {
  x: int,
}
`)
}

func TestResolveBuiltinBody(t *testing.T) {
	env := mustEnv(t,
		tree.Decl("Id", tree.BuiltinTypeString),
		tree.Decl("Ref", tree.Struct(tree.Field("id", tree.Name("Id")))),
	)
	assertTable(t, mustResolve(t, env, "Ref"), `type Ref#0 = struct {
  id: reference 1,
}
type Id#1 = string
`)
}

func TestResolveBuiltinRoot(t *testing.T) {
	env := mustEnv(t)
	table, err := Resolve(tree.BuiltinTypeInt, env, DefaultOptions())
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if table.Len() != 0 {
		t.Fatalf("expected empty table, got:\n%s", table)
	}
	if !ir.SameRef(table.Root, ir.BuiltinOf(tree.BuiltinKindInt)) {
		t.Fatalf("expected int root, got %v", table.Root)
	}
}

func TestResolveSharing(t *testing.T) {
	env := mustEnv(t,
		tree.GenericDecl("Box", []string{"T"}, tree.Struct(tree.Field("value", tree.Name("T")))),
		tree.Decl("Pair", tree.Struct(
			tree.Field("a", tree.Apply("Box", tree.Arg("T", tree.BuiltinTypeString))),
			tree.Field("b", tree.Apply("Box", tree.PosArg(tree.BuiltinTypeString))),
			tree.Field("c", tree.Apply("Box", tree.Arg("T", tree.BuiltinTypeInt))),
		)),
	)
	assertTable(t, mustResolve(t, env, "Pair"), `type Pair#0 = struct {
  a: reference 1,
  b: reference 1,
  c: reference 2,
}
type Box<T=string>#1 = struct {
  value: string,
}
type Box<T=int>#2 = struct {
  value: int,
}
`)
}

func TestResolveNestedArgumentsShare(t *testing.T) {
	env := mustEnv(t,
		tree.GenericDecl("Box", []string{"T"}, tree.Struct(tree.Field("value", tree.Name("T")))),
		tree.Decl("Pair", tree.Struct(
			tree.Field("a", tree.Apply("Box", tree.Arg("T", tree.Apply("Box", tree.PosArg(tree.BuiltinTypeInt))))),
			tree.Field("b", tree.Apply("Box", tree.PosArg(tree.Apply("Box", tree.Arg("T", tree.BuiltinTypeInt))))),
		)),
	)
	table := mustResolve(t, env, "Pair")
	pair := table.Entry(0).Shape.(*ir.StructShape)
	if !ir.SameRef(pair.Fields[0].Type, pair.Fields[1].Type) {
		t.Fatalf("expected shared instantiation:\n%s", table)
	}
	if table.Len() != 3 {
		t.Fatalf("expected 3 entries:\n%s", table)
	}
}

func TestResolveRecursive(t *testing.T) {
	env := mustEnv(t,
		tree.Decl("Tree", tree.Enum(
			tree.UnitVariant("Leaf"),
			tree.Variant("Node", tree.Struct(
				tree.Field("value", tree.BuiltinTypeInt),
				tree.Field("left", tree.Name("Tree")),
				tree.Field("right", tree.Name("Tree")),
			)),
		)),
	)
	assertTable(t, mustResolve(t, env, "Tree"), `type Tree#0 = enum {
  Leaf(unit),
  Node(reference 1),
}
type T0#1 = struct {
  value: int,
  left: reference 0,
  right: reference 0,
}
`)
}

func TestResolveRecursiveGeneric(t *testing.T) {
	env := mustEnv(t,
		tree.GenericDecl("List", []string{"T"}, tree.Enum(
			tree.UnitVariant("Nil"),
			tree.Variant("Cons", tree.Struct(
				tree.Field("head", tree.Name("T")),
				tree.Field("tail", tree.Apply("List", tree.Arg("T", tree.Name("T")))),
			)),
		)),
		tree.Decl("Ints", tree.Apply("List", tree.PosArg(tree.BuiltinTypeInt))),
	)
	assertTable(t, mustResolve(t, env, "Ints"), `type Ints#0 = reference 1
type List<T=int>#1 = enum {
  Nil(unit),
  Cons(reference 2),
}
type T0#2 = struct {
  head: int,
  tail: reference 1,
}
`)
}

func TestResolveTemporaries(t *testing.T) {
	env := mustEnv(t,
		tree.Decl("Outer", tree.Struct(
			tree.Field("inner", tree.Struct(tree.Field("x", tree.BuiltinTypeInt))),
			tree.Field("choice", tree.Enum(tree.UnitVariant("A"))),
		)),
	)
	assertTable(t, mustResolve(t, env, "Outer"), `type Outer#0 = struct {
  inner: reference 1,
  choice: reference 2,
}
type T0#1 = struct {
  x: int,
}
type T1#2 = enum {
  A(unit),
}
`)
}

func TestResolveParamHead(t *testing.T) {
	env := mustEnv(t,
		tree.GenericDecl("Box", []string{"T"}, tree.Struct(tree.Field("value", tree.Name("T")))),
		tree.GenericDecl("Wrap", []string{"F"}, tree.Apply("F", tree.Arg("T", tree.BuiltinTypeInt))),
		tree.Decl("W", tree.Apply("Wrap", tree.Arg("F", tree.Name("Box")))),
	)
	assertTable(t, mustResolve(t, env, "W"), `type W#0 = reference 1
type Wrap<F=Box>#1 = reference 2
type Box<T=int>#2 = struct {
  value: int,
}
`)
}

func TestResolveIntersectionChain(t *testing.T) {
	env := mustEnv(t,
		tree.Decl("Named", tree.Struct(tree.Field("name", tree.BuiltinTypeString))),
		tree.Decl("Labelled", tree.Struct(
			tree.Field("name", tree.BuiltinTypeString),
			tree.Field("label", tree.BuiltinTypeString),
		)),
		tree.Decl("Merged", tree.Intersect(
			tree.Name("Named"),
			tree.Name("Labelled"),
			tree.Struct(tree.Field("extra", tree.BuiltinTypeBool)),
		)),
	)
	assertTable(t, mustResolve(t, env, "Merged"), `type Merged#0 = struct {
  name: string,
  label: string,
  extra: bool,
}
type Named#1 = struct {
  name: string,
}
type Labelled#2 = struct {
  name: string,
  label: string,
}
`)
}

func TestResolveIntersectionStructurallyEqualFields(t *testing.T) {
	env := mustEnv(t,
		tree.Decl("P1", tree.Struct(tree.Field("x", tree.BuiltinTypeInt))),
		tree.Decl("P2", tree.Struct(tree.Field("x", tree.BuiltinTypeInt))),
		tree.Decl("A", tree.Struct(tree.Field("p", tree.Name("P1")))),
		tree.Decl("B", tree.Struct(tree.Field("p", tree.Name("P2")))),
		tree.Decl("AB", tree.Intersect(tree.Name("A"), tree.Name("B"))),
	)
	table := mustResolve(t, env, "AB")
	merged := table.Entry(0).Shape.(*ir.StructShape)
	if len(merged.Fields) != 1 {
		t.Fatalf("expected one field:\n%s", table)
	}
}

func TestResolveCarriesAnnotations(t *testing.T) {
	person := tree.Decl("Person", tree.Struct(tree.Field("name", tree.BuiltinTypeString)))
	person.Comment = "A person."
	person.Annotations = []*tree.Annotation{{Name: "table", Args: []tree.AnnotationArg{{Key: "name", Value: "people"}}}}

	env := mustEnv(t, person)
	entry := mustResolve(t, env, "Person").Entry(0)
	if entry.Comment != "A person." {
		t.Fatalf("unexpected comment %q", entry.Comment)
	}
	if len(entry.Annotations) != 1 {
		t.Fatalf("unexpected annotations: %s", spew.Sdump(entry.Annotations))
	}
	if v, ok := entry.Annotations[0].Arg("name"); !ok || v != "people" {
		t.Fatalf("unexpected annotation arg %q", v)
	}
}

func TestResolveDeterministic(t *testing.T) {
	env := mustEnv(t, userDecls()...)
	first := mustResolve(t, env, "X").String()
	for i := 0; i < 10; i++ {
		if got := mustResolve(t, env, "X").String(); got != first {
			t.Fatalf("run %d differs:\n%s\nvs\n%s", i, got, first)
		}
	}
}

func TestCheckerReuse(t *testing.T) {
	env := mustEnv(t, userDecls()...)
	c := NewChecker(env, DefaultOptions())
	a, err := c.Resolve(tree.Name("X"))
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	b, err := c.Resolve(tree.Name("X"))
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if a == b || a.String() != b.String() {
		t.Fatalf("expected fresh, equal tables")
	}
}

func TestResolveMultipleRoots(t *testing.T) {
	env := mustEnv(t, userDecls()...)
	table, err := NewChecker(env, DefaultOptions()).Resolve(tree.Name("UserStatus"), tree.Name("X"))
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if table.Len() != 7 {
		t.Fatalf("expected 7 entries:\n%s", table)
	}
	if table.Entry(0).Label.String() != "UserStatus" {
		t.Fatalf("expected UserStatus first:\n%s", table)
	}
	if !ir.SameRef(table.Root, ir.RefTo(0)) {
		t.Fatalf("unexpected root %v", table.Root)
	}
}

func TestResolveGlobals(t *testing.T) {
	env := mustEnv(t, userDecls()...)
	table, err := ResolveGlobals(env, DefaultOptions())
	if err != nil {
		t.Fatalf("ResolveGlobals: %v", err)
	}
	var labels []string
	for _, entry := range table.Entries {
		labels = append(labels, entry.Label.String())
	}
	want := "UserStatus UserProperties User Identified<T=UserProperties> UserCollectionResponse CollectionResponse<T=User> X"
	if got := strings.Join(labels, " "); got != want {
		t.Fatalf("unexpected order:\ngot  %s\nwant %s", got, want)
	}
}

func TestResolveAll(t *testing.T) {
	env := mustEnv(t, userDecls()...)
	names := []string{"X", "User", "UserStatus", "UserCollectionResponse"}
	roots := make([]tree.TypeExpr, len(names))
	for i, name := range names {
		roots[i] = tree.Name(name)
	}

	tables, err := ResolveAll(context.Background(), env, roots, Options{Parallelism: 2})
	if err != nil {
		t.Fatalf("ResolveAll: %v", err)
	}
	for i, name := range names {
		if want := mustResolve(t, env, name).String(); tables[i].String() != want {
			t.Fatalf("%s: parallel result differs:\n%s\nvs\n%s", name, tables[i], want)
		}
	}
}

func TestResolveAllError(t *testing.T) {
	env := mustEnv(t, userDecls()...)
	roots := []tree.TypeExpr{tree.Name("X"), tree.Name("Nope")}
	_, err := ResolveAll(context.Background(), env, roots, DefaultOptions())
	var unknown *source.UnknownTypeNameError
	if !errors.As(err, &unknown) || unknown.Name.Value != "Nope" {
		t.Fatalf("expected unknown type name error, got %v", err)
	}
}

func TestResolveErrors(t *testing.T) {
	box := tree.GenericDecl("Box", []string{"T"}, tree.Struct(tree.Field("value", tree.Name("T"))))
	grow := tree.GenericDecl("Grow", []string{"T"}, tree.Struct(
		tree.Field("next", tree.Apply("Grow", tree.Arg("T", tree.Apply("Grow", tree.Arg("T", tree.Name("T")))))),
	))
	double := tree.GenericDecl("D", []string{"T"}, tree.Struct(
		tree.Field("next", tree.Apply("D", tree.Arg("T", tree.Struct(
			tree.Field("a", tree.Name("T")),
			tree.Field("b", tree.Name("T")),
		)))),
	))

	tests := []struct {
		name   string
		decls  []*tree.TypeDecl
		root   string
		opts   Options
		target any
	}{
		{
			name:   "unknown name",
			decls:  []*tree.TypeDecl{tree.Decl("A", tree.Struct(tree.Field("b", tree.Name("B"))))},
			root:   "A",
			target: new(*source.UnknownTypeNameError),
		},
		{
			name:   "unknown root",
			root:   "Missing",
			target: new(*source.UnknownTypeNameError),
		},
		{
			name:   "too few arguments",
			decls:  []*tree.TypeDecl{box, tree.Decl("A", tree.Name("Box"))},
			root:   "A",
			target: new(*GenericArityError),
		},
		{
			name: "too many arguments",
			decls: []*tree.TypeDecl{box, tree.Decl("A", tree.Apply("Box",
				tree.PosArg(tree.BuiltinTypeInt), tree.PosArg(tree.BuiltinTypeInt)))},
			root:   "A",
			target: new(*GenericArityError),
		},
		{
			name:   "arguments to non-generic",
			decls:  []*tree.TypeDecl{tree.Decl("A", tree.BuiltinTypeInt), tree.Decl("B", tree.Apply("A", tree.PosArg(tree.BuiltinTypeInt)))},
			root:   "B",
			target: new(*GenericArityError),
		},
		{
			name:   "no such parameter",
			decls:  []*tree.TypeDecl{box, tree.Decl("A", tree.Apply("Box", tree.Arg("U", tree.BuiltinTypeInt)))},
			root:   "A",
			target: new(*GenericParamError),
		},
		{
			name: "field conflict",
			decls: []*tree.TypeDecl{
				tree.Decl("A", tree.Struct(tree.Field("name", tree.BuiltinTypeString))),
				tree.Decl("B", tree.Struct(tree.Field("name", tree.BuiltinTypeInt))),
				tree.Decl("AB", tree.Intersect(tree.Name("A"), tree.Name("B"))),
			},
			root:   "AB",
			target: new(*FieldConflictError),
		},
		{
			name: "enum intersection",
			decls: []*tree.TypeDecl{
				tree.Decl("E", tree.Enum(tree.UnitVariant("A"))),
				tree.Decl("S", tree.Intersect(tree.Name("E"), tree.Struct(tree.Field("x", tree.BuiltinTypeInt)))),
			},
			root:   "S",
			target: new(*UnsupportedIntersectionError),
		},
		{
			name: "builtin intersection",
			decls: []*tree.TypeDecl{
				tree.Decl("S", tree.Intersect(tree.BuiltinTypeInt, tree.Struct(tree.Field("x", tree.BuiltinTypeInt)))),
			},
			root:   "S",
			target: new(*UnsupportedIntersectionError),
		},
		{
			name: "self intersection",
			decls: []*tree.TypeDecl{
				tree.Decl("S", tree.Intersect(tree.Name("S"), tree.Struct(tree.Field("x", tree.BuiltinTypeInt)))),
			},
			root:   "S",
			target: new(*CyclicIntersectionError),
		},
		{
			name: "parameter applied to arguments",
			decls: []*tree.TypeDecl{
				box,
				tree.GenericDecl("Wrap", []string{"F"}, tree.Apply("F", tree.Arg("T", tree.BuiltinTypeInt))),
				tree.Decl("W", tree.Apply("Wrap", tree.Arg("F", tree.Apply("Box", tree.Arg("T", tree.BuiltinTypeString))))),
			},
			root:   "W",
			target: new(*ParamApplicationError),
		},
		{
			name: "reference cycle",
			decls: []*tree.TypeDecl{
				tree.Decl("A", tree.Name("B")),
				tree.Decl("B", tree.Name("A")),
			},
			root:   "A",
			target: new(*ir.ReferenceCycleError),
		},
		{
			name:   "depth limit",
			decls:  []*tree.TypeDecl{grow, tree.Decl("Start", tree.Apply("Grow", tree.PosArg(tree.BuiltinTypeInt)))},
			root:   "Start",
			opts:   Options{MaxDepth: 50},
			target: new(*ResolutionLimitExceededError),
		},
		{
			name:   "instance limit",
			decls:  userDecls(),
			root:   "X",
			opts:   Options{MaxInstances: 3},
			target: new(*ResolutionLimitExceededError),
		},
		{
			name:   "doubling argument",
			decls:  []*tree.TypeDecl{double, tree.Decl("Start", tree.Apply("D", tree.Arg("T", tree.BuiltinTypeInt)))},
			root:   "Start",
			target: new(*ResolutionLimitExceededError),
		},
		{
			name: "unknown name in unused argument",
			decls: []*tree.TypeDecl{
				tree.GenericDecl("P", []string{"T"}, tree.Struct(tree.Field("x", tree.BuiltinTypeInt))),
				tree.Decl("R", tree.Apply("P", tree.Arg("T", tree.Name("Nope")))),
			},
			root:   "R",
			target: new(*source.UnknownTypeNameError),
		},
		{
			name: "unknown application in unused argument",
			decls: []*tree.TypeDecl{
				tree.GenericDecl("P", []string{"T"}, tree.Struct(tree.Field("x", tree.BuiltinTypeInt))),
				tree.Decl("R", tree.Apply("P", tree.Arg("T", tree.Struct(
					tree.Field("y", tree.Apply("Nope", tree.PosArg(tree.BuiltinTypeInt))),
				)))),
			},
			root:   "R",
			target: new(*source.UnknownTypeNameError),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := mustEnv(t, tt.decls...)
			table, err := ResolveName(tt.root, env, tt.opts)
			if err == nil {
				t.Fatalf("expected error, got table:\n%s", table)
			}
			if table != nil {
				t.Fatalf("expected no table on error")
			}
			if !errors.As(err, tt.target) {
				t.Fatalf("unexpected error type: %v\n%s", err, spew.Sdump(err))
			}
		})
	}
}

func TestResolutionErrorTrail(t *testing.T) {
	env := mustEnv(t,
		tree.Decl("Order", tree.Struct(tree.Field("line", tree.Name("Line")))),
		tree.Decl("Line", tree.Struct(tree.Field("customer", tree.Name("Customer")))),
	)
	_, err := ResolveName("Order", env, DefaultOptions())

	var resErr *ResolutionError
	if !errors.As(err, &resErr) {
		t.Fatalf("expected ResolutionError, got %v", err)
	}
	if len(resErr.Trail) != 2 || resErr.Trail[0].String() != "Order" || resErr.Trail[1].String() != "Line" {
		t.Fatalf("unexpected trail: %s", spew.Sdump(resErr.Trail))
	}
	if want := "unknown type name: Customer (in Order -> Line)"; err.Error() != want {
		t.Fatalf("unexpected message:\ngot  %s\nwant %s", err, want)
	}
}

func TestResolveLimitMessage(t *testing.T) {
	env := mustEnv(t, userDecls()...)
	_, err := ResolveName("X", env, Options{MaxInstances: 2})
	var limit *ResolutionLimitExceededError
	if !errors.As(err, &limit) {
		t.Fatalf("expected limit error, got %v", err)
	}
	if limit.What != "table entries" || limit.Limit != 2 {
		t.Fatalf("unexpected limit: %s", spew.Sdump(limit))
	}
}

func TestResolveArgSizeLimit(t *testing.T) {
	env := mustEnv(t,
		tree.GenericDecl("D", []string{"T"}, tree.Struct(
			tree.Field("next", tree.Apply("D", tree.Arg("T", tree.Struct(
				tree.Field("a", tree.Name("T")),
				tree.Field("b", tree.Name("T")),
			)))),
		)),
		tree.Decl("Start", tree.Apply("D", tree.Arg("T", tree.BuiltinTypeInt))),
	)
	_, err := ResolveName("Start", env, Options{MaxArgSize: 20})
	var limit *ResolutionLimitExceededError
	if !errors.As(err, &limit) {
		t.Fatalf("expected limit error, got %v", err)
	}
	if limit.What != "type argument size" || limit.Limit != 20 {
		t.Fatalf("unexpected limit: %s", spew.Sdump(limit))
	}

	// Argument sizes run 1, 3, 7, 15, 31; the fifth D is refused.
	var resErr *ResolutionError
	if !errors.As(err, &resErr) || len(resErr.Trail) != 5 {
		t.Fatalf("unexpected trail: %v", err)
	}
}

func TestResolveUnusedArgumentKey(t *testing.T) {
	env := mustEnv(t,
		tree.Decl("Email", tree.BuiltinTypeString),
		tree.GenericDecl("P", []string{"T"}, tree.Struct(tree.Field("x", tree.BuiltinTypeInt))),
		tree.Decl("R", tree.Apply("P", tree.Arg("T", tree.Name("Email")))),
	)
	assertTable(t, mustResolve(t, env, "R"), `type R#0 = reference 1
type P<T=Email>#1 = struct {
  x: int,
}
`)
}

func TestResolveIntersectionRootOrder(t *testing.T) {
	env := mustEnv(t,
		tree.Decl("A", tree.Struct(tree.Field("b", tree.Name("B")))),
		tree.Decl("B", tree.Intersect(tree.Name("A"), tree.Struct(tree.Field("x", tree.BuiltinTypeInt)))),
	)

	assertTable(t, mustResolve(t, env, "B"), `type B#0 = struct {
  b: reference 0,
  x: int,
}
type A#1 = struct {
  b: reference 0,
}
`)

	for _, resolve := range []func() (*ir.Table, error){
		func() (*ir.Table, error) { return ResolveName("A", env, DefaultOptions()) },
		func() (*ir.Table, error) { return ResolveGlobals(env, DefaultOptions()) },
	} {
		_, err := resolve()
		var cyclic *CyclicIntersectionError
		if !errors.As(err, &cyclic) || cyclic.Label.String() != "A" {
			t.Fatalf("expected cyclic intersection on A, got %v", err)
		}
		if want := "intersection operand A is still being resolved (in A -> B)"; err.Error() != want {
			t.Fatalf("unexpected message:\ngot  %s\nwant %s", err, want)
		}
	}
}

func TestCheckerDropsTableOnError(t *testing.T) {
	env := mustEnv(t, tree.Decl("A", tree.Struct(tree.Field("b", tree.Name("B")))))
	c := NewChecker(env, DefaultOptions())
	if _, err := c.Resolve(tree.Name("A")); err == nil {
		t.Fatalf("expected error")
	}
	if c.Table != nil || c.seen != nil {
		t.Fatalf("expected partial table to be released")
	}
}
