package parse

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"

	. "github.com/garciat/roto/common"
	"github.com/garciat/roto/source"
	"github.com/garciat/roto/tree"
)

type fileJSON struct {
	Roots        []string   `json:"roots,omitempty"`
	Declarations []declJSON `json:"declarations"`
	Expect       *string    `json:"expect,omitempty"`
}

type declJSON struct {
	Name        string           `json:"name"`
	Params      []string         `json:"params,omitempty"`
	Type        *typeJSON        `json:"type"`
	Comment     string           `json:"comment,omitempty"`
	Annotations []annotationJSON `json:"annotations,omitempty"`
}

type annotationJSON struct {
	Name string            `json:"name"`
	Args map[string]string `json:"args,omitempty"`
}

// typeJSON is a type expression; exactly one member is set.
type typeJSON struct {
	Builtin      *string       `json:"builtin,omitempty"`
	Named        *string       `json:"named,omitempty"`
	Generic      *genericJSON  `json:"generic,omitempty"`
	Struct       *[]memberJSON `json:"struct,omitempty"`
	Enum         *[]memberJSON `json:"enum,omitempty"`
	Intersection []*typeJSON   `json:"intersection,omitempty"`
}

type genericJSON struct {
	Name string    `json:"name"`
	Args []argJSON `json:"args"`
}

type argJSON struct {
	Param string    `json:"param,omitempty"`
	Type  *typeJSON `json:"type"`
}

type memberJSON struct {
	Name    string    `json:"name"`
	Type    *typeJSON `json:"type"`
	Comment string    `json:"comment,omitempty"`
}

// ========================

func readFile(path string, text []byte) (*source.FileDef, error) {
	var raw fileJSON
	dec := json.NewDecoder(bytes.NewReader(text))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&raw); err != nil {
		return nil, &SyntaxError{Path: path, Msg: err.Error()}
	}

	r := &reader{path: path}
	file, err := Try(func() *source.FileDef {
		return r.readFile(&raw)
	})
	if err != nil {
		return nil, err
	}
	return file, nil
}

type reader struct {
	path string
}

func (r *reader) fail(where string, format string, args ...interface{}) {
	panic(&SyntaxError{Path: r.path, Msg: fmt.Sprintf("%s: %s", where, fmt.Sprintf(format, args...))})
}

func (r *reader) readFile(raw *fileJSON) *source.FileDef {
	file := &source.FileDef{Path: r.path, Roots: raw.Roots}
	if raw.Expect != nil {
		file.Expect = *raw.Expect
		file.HasExpect = true
	}
	for i, decl := range raw.Declarations {
		file.Decls = append(file.Decls, r.readDecl(fmt.Sprintf("declarations[%d]", i), &decl))
	}
	return file
}

func (r *reader) readDecl(where string, raw *declJSON) *tree.TypeDecl {
	if raw.Name == "" {
		r.fail(where, "missing name")
	}
	where = fmt.Sprintf("%s (%s)", where, raw.Name)
	decl := &tree.TypeDecl{
		Name:    NewIdentifier(raw.Name),
		Params:  NewIdentifiers(raw.Params...),
		Type:    r.readType(where+".type", raw.Type),
		Comment: raw.Comment,
	}
	for _, ann := range raw.Annotations {
		decl.Annotations = append(decl.Annotations, readAnnotation(ann))
	}
	return decl
}

func readAnnotation(raw annotationJSON) *tree.Annotation {
	keys := make([]string, 0, len(raw.Args))
	for k := range raw.Args {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	ann := &tree.Annotation{Name: raw.Name}
	for _, k := range keys {
		ann.Args = append(ann.Args, tree.AnnotationArg{Key: k, Value: raw.Args[k]})
	}
	return ann
}

func (r *reader) readType(where string, raw *typeJSON) tree.TypeExpr {
	if raw == nil {
		r.fail(where, "missing type")
	}

	set := 0
	for _, ok := range []bool{
		raw.Builtin != nil,
		raw.Named != nil,
		raw.Generic != nil,
		raw.Struct != nil,
		raw.Enum != nil,
		raw.Intersection != nil,
	} {
		if ok {
			set++
		}
	}
	if set != 1 {
		r.fail(where, "type expression must have exactly one of builtin, named, generic, struct, enum, intersection")
	}

	switch {
	case raw.Builtin != nil:
		kind, ok := tree.LookupBuiltinKind(*raw.Builtin)
		if !ok {
			r.fail(where, "unknown builtin %q", *raw.Builtin)
		}
		return &tree.BuiltinType{Kind: kind}
	case raw.Named != nil:
		if *raw.Named == "" {
			r.fail(where, "empty type name")
		}
		return &tree.TypeName{Name: NewIdentifier(*raw.Named)}
	case raw.Generic != nil:
		if raw.Generic.Name == "" {
			r.fail(where, "empty generic name")
		}
		app := &tree.TypeApplication{Name: NewIdentifier(raw.Generic.Name)}
		for i, arg := range raw.Generic.Args {
			app.Args = append(app.Args, &tree.TypeArg{
				Param: NewIdentifier(arg.Param),
				Type:  r.readType(fmt.Sprintf("%s.args[%d]", where, i), arg.Type),
			})
		}
		return app
	case raw.Struct != nil:
		st := &tree.StructType{}
		for i, m := range *raw.Struct {
			at := fmt.Sprintf("%s.struct[%d]", where, i)
			st.Fields = append(st.Fields, &tree.FieldDecl{
				Name:    r.memberName(at, m.Name),
				Type:    r.readType(at, m.Type),
				Comment: m.Comment,
			})
		}
		return st
	case raw.Enum != nil:
		en := &tree.EnumType{}
		for i, m := range *raw.Enum {
			at := fmt.Sprintf("%s.enum[%d]", where, i)
			ty := tree.TypeExpr(tree.BuiltinTypeUnit)
			if m.Type != nil {
				ty = r.readType(at, m.Type)
			}
			en.Variants = append(en.Variants, &tree.VariantDecl{
				Name:    r.memberName(at, m.Name),
				Type:    ty,
				Comment: m.Comment,
			})
		}
		return en
	default:
		if len(raw.Intersection) < 2 {
			r.fail(where, "intersection needs at least two operands")
		}
		operands := make([]tree.TypeExpr, len(raw.Intersection))
		for i, op := range raw.Intersection {
			operands[i] = r.readType(fmt.Sprintf("%s.intersection[%d]", where, i), op)
		}
		return tree.Intersect(operands[0], operands[1:]...)
	}
}

func (r *reader) memberName(where, name string) Identifier {
	if name == "" {
		r.fail(where, "missing name")
	}
	return NewIdentifier(name)
}
