package check

import (
	"fmt"
	"strings"

	. "github.com/garciat/roto/common"
	"github.com/garciat/roto/ir"
	"github.com/garciat/roto/tree"
)

// ResolutionError is what Resolve returns on failure. Trail lists the
// instantiations that were being resolved, outermost first.
type ResolutionError struct {
	Trail []ir.Label
	Err   error
}

func (e *ResolutionError) Error() string {
	if len(e.Trail) == 0 {
		return e.Err.Error()
	}
	parts := MapSlice(e.Trail, ir.Label.String)
	return fmt.Sprintf("%v (in %s)", e.Err, strings.Join(parts, " -> "))
}

func (e *ResolutionError) Unwrap() error {
	return e.Err
}

// ========================

type GenericArityError struct {
	Name     Identifier
	Expected int
	Got      int
}

func (e *GenericArityError) Error() string {
	return fmt.Sprintf("wrong number of type arguments for %v: expected %d, got %d", e.Name, e.Expected, e.Got)
}

type GenericParamError struct {
	Name   Identifier
	Param  Identifier
	Reason string
}

func (e *GenericParamError) Error() string {
	return fmt.Sprintf("type argument %v for %v: %s", e.Param, e.Name, e.Reason)
}

type ParamApplicationError struct {
	Param Identifier
	Bound tree.TypeExpr
}

func (e *ParamApplicationError) Error() string {
	return fmt.Sprintf("cannot apply type arguments to parameter %v bound to %v", e.Param, e.Bound)
}

type FieldConflictError struct {
	Field string
	Left  ir.Ref
	Right ir.Ref
}

func (e *FieldConflictError) Error() string {
	return fmt.Sprintf("conflicting types for field %s: %v vs %v", e.Field, e.Left, e.Right)
}

type UnsupportedIntersectionError struct {
	Left  ir.ShapeKind
	Right ir.ShapeKind
}

func (e *UnsupportedIntersectionError) Error() string {
	return fmt.Sprintf("unsupported intersection: %v & %v", e.Left, e.Right)
}

// CyclicIntersectionError means an intersection operand needs the shape of
// an entry that is itself still being resolved.
type CyclicIntersectionError struct {
	Label ir.Label
}

func (e *CyclicIntersectionError) Error() string {
	return fmt.Sprintf("intersection operand %v is still being resolved", e.Label)
}

type ResolutionLimitExceededError struct {
	What  string
	Limit int
}

func (e *ResolutionLimitExceededError) Error() string {
	return fmt.Sprintf("resolution limit exceeded: %s > %d", e.What, e.Limit)
}
