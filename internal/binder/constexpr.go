package binder

import (
	"strconv"
	"strings"

	"github.com/arcbound/jhdrc/internal/ast"
	"github.com/arcbound/jhdrc/internal/errors"
	"github.com/arcbound/jhdrc/internal/types"
)

// constCycleGuard threads cyclic-constant detection through a chain of
// constant-field evaluations within one runConstantEval pass (§4.3.3 step
// 5). A fresh guard is created per top-level Bind call's constant-eval
// phase; cache memoizes already-evaluated fields so shared dependency
// chains aren't re-walked.
type constCycleGuard struct {
	env      Environment
	prelim   *preliminaryResult
	visiting map[types.FieldSymbol]bool
	cache    map[types.FieldSymbol]types.ConstValue
}

func newConstCycleGuard(env Environment, prelim *preliminaryResult) *constCycleGuard {
	return &constCycleGuard{env: env, prelim: prelim, visiting: map[types.FieldSymbol]bool{}, cache: map[types.FieldSymbol]types.ConstValue{}}
}

// evalConst folds a constant expression (§3.4) into a types.ConstValue.
// guard may be nil — annotation-argument evaluation at member-binding
// time (phase 4) has no cyclic-field concern worth tracking since it
// only runs once per annotation site — in which case a reference to a
// constant field (simple or qualified name) is not followed and folds to
// MissingConst; literals and expressions built only from them still fold.
func (b *Binder) evalConst(expr ast.Expression, scope Scope, decl *classDecl, guard *constCycleGuard) types.ConstValue {
	switch e := expr.(type) {
	case nil:
		return types.MissingConst{}
	case *ast.IntLiteral:
		v, _ := strconv.ParseInt(trimNumericSuffix(e.Token.Literal), 0, 64)
		return types.IntConst(int32(v))
	case *ast.LongLiteral:
		v, _ := strconv.ParseInt(trimNumericSuffix(e.Token.Literal), 0, 64)
		return types.LongConst(v)
	case *ast.FloatLiteral:
		v, _ := strconv.ParseFloat(trimNumericSuffix(e.Token.Literal), 32)
		return types.FloatConst(float32(v))
	case *ast.DoubleLiteral:
		v, _ := strconv.ParseFloat(trimNumericSuffix(e.Token.Literal), 64)
		return types.DoubleConst(v)
	case *ast.CharLiteral:
		return types.IntConst(int32(e.Value))
	case *ast.StringLiteral:
		return types.StringConst(e.Value)
	case *ast.TextBlockLiteral:
		return types.StringConst(e.Value)
	case *ast.BoolLiteral:
		return types.BoolConst(e.Value)
	case *ast.NullLiteral:
		return types.MissingConst{}
	case *ast.UnaryExpr:
		return b.evalUnary(e, scope, decl, guard)
	case *ast.BinaryExpr:
		return b.evalBinary(e, scope, decl, guard)
	case *ast.TernaryExpr:
		cond := b.evalConst(e.Condition, scope, decl, guard)
		if bv, ok := cond.(types.BoolConst); ok {
			if bool(bv) {
				return b.evalConst(e.Then, scope, decl, guard)
			}
			return b.evalConst(e.Else, scope, decl, guard)
		}
		return types.MissingConst{}
	case *ast.CastExpr:
		return b.evalCast(e, scope, decl, guard)
	case *ast.ClassLiteralExpr:
		return types.ClassLiteralConst{Of: b.resolveTypeRef(e.Type, scope, decl)}
	case *ast.ArrayInitExpr:
		elems := make([]types.ConstValue, 0, len(e.Elements))
		for _, el := range e.Elements {
			elems = append(elems, b.evalConst(el, scope, decl, guard))
		}
		return types.ArrayConst{Elements: elems}
	case *ast.AnnotationExpr:
		sym, ok := b.resolveAnnotationType(e, scope, decl)
		if !ok {
			return types.MissingConst{}
		}
		var elems []types.AnnotationElement
		for _, el := range e.Elements {
			elems = append(elems, types.AnnotationElement{Name: el.Name, Value: b.evalConst(el.Value, scope, decl, guard)})
		}
		return types.AnnotationConst{Annotation: types.Annotation{Type: sym, Elements: elems}}
	case *ast.NameExpr:
		return b.evalName(e, scope, decl, guard)
	}
	return types.MissingConst{}
}

func trimNumericSuffix(s string) string {
	s = strings.ReplaceAll(s, "_", "")
	if n := len(s); n > 0 {
		switch s[n-1] {
		case 'l', 'L', 'f', 'F', 'd', 'D':
			return s[:n-1]
		}
	}
	return s
}

func (b *Binder) evalUnary(e *ast.UnaryExpr, scope Scope, decl *classDecl, guard *constCycleGuard) types.ConstValue {
	v := b.evalConst(e.Operand, scope, decl, guard)
	switch e.Operator {
	case "-":
		return negateConst(v)
	case "+":
		return v
	case "!":
		if bv, ok := v.(types.BoolConst); ok {
			return types.BoolConst(!bool(bv))
		}
	case "~":
		switch n := v.(type) {
		case types.IntConst:
			return types.IntConst(^int32(n))
		case types.LongConst:
			return types.LongConst(^int64(n))
		}
	}
	return types.MissingConst{}
}

func negateConst(v types.ConstValue) types.ConstValue {
	switch n := v.(type) {
	case types.IntConst:
		return types.IntConst(-int32(n))
	case types.LongConst:
		return types.LongConst(-int64(n))
	case types.FloatConst:
		return types.FloatConst(-float32(n))
	case types.DoubleConst:
		return types.DoubleConst(-float64(n))
	}
	return types.MissingConst{}
}

// evalBinary folds a binary constant expression with JLS binary numeric
// promotion (§3.4): double beats float beats long beats int, a `+` with
// either operand a String concatenates.
func (b *Binder) evalBinary(e *ast.BinaryExpr, scope Scope, decl *classDecl, guard *constCycleGuard) types.ConstValue {
	l := b.evalConst(e.Left, scope, decl, guard)
	r := b.evalConst(e.Right, scope, decl, guard)

	if e.Operator == "+" {
		if ls, ok := l.(types.StringConst); ok {
			return types.StringConst(string(ls) + constToString(r))
		}
		if rs, ok := r.(types.StringConst); ok {
			return types.StringConst(constToString(l) + string(rs))
		}
	}

	// Boolean operands never pass asFloat64 below, so && and || fold here.
	if lb, ok := l.(types.BoolConst); ok {
		if rb, ok := r.(types.BoolConst); ok {
			switch e.Operator {
			case "&&":
				return types.BoolConst(bool(lb) && bool(rb))
			case "||":
				return types.BoolConst(bool(lb) || bool(rb))
			}
		}
		return types.MissingConst{}
	}

	lf, lok := asFloat64(l)
	rf, rok := asFloat64(r)
	if !lok || !rok {
		return types.MissingConst{}
	}

	switch e.Operator {
	case "==":
		return types.BoolConst(lf == rf)
	case "!=":
		return types.BoolConst(lf != rf)
	case "<":
		return types.BoolConst(lf < rf)
	case "<=":
		return types.BoolConst(lf <= rf)
	case ">":
		return types.BoolConst(lf > rf)
	case ">=":
		return types.BoolConst(lf >= rf)
	case "&&":
		lb, lok := l.(types.BoolConst)
		rb, rok := r.(types.BoolConst)
		if lok && rok {
			return types.BoolConst(bool(lb) && bool(rb))
		}
		return types.MissingConst{}
	case "||":
		lb, lok := l.(types.BoolConst)
		rb, rok := r.(types.BoolConst)
		if lok && rok {
			return types.BoolConst(bool(lb) || bool(rb))
		}
		return types.MissingConst{}
	}

	result := 0.0
	switch e.Operator {
	case "+":
		result = lf + rf
	case "-":
		result = lf - rf
	case "*":
		result = lf * rf
	case "/":
		if rf == 0 {
			return types.MissingConst{}
		}
		result = lf / rf
	case "%":
		if rf == 0 {
			return types.MissingConst{}
		}
		result = float64(int64(lf) % int64(rf))
	default:
		return types.MissingConst{}
	}
	return narrowToWidestKind(l, r, result)
}

func constToString(v types.ConstValue) string {
	switch n := v.(type) {
	case types.StringConst:
		return string(n)
	case types.IntConst:
		return strconv.FormatInt(int64(n), 10)
	case types.LongConst:
		return strconv.FormatInt(int64(n), 10)
	case types.FloatConst:
		return strconv.FormatFloat(float64(n), 'g', -1, 32)
	case types.DoubleConst:
		return strconv.FormatFloat(float64(n), 'g', -1, 64)
	case types.BoolConst:
		return strconv.FormatBool(bool(n))
	}
	return ""
}

func asFloat64(v types.ConstValue) (float64, bool) {
	switch n := v.(type) {
	case types.IntConst:
		return float64(n), true
	case types.LongConst:
		return float64(n), true
	case types.FloatConst:
		return float64(n), true
	case types.DoubleConst:
		return float64(n), true
	}
	return 0, false
}

func constRank(v types.ConstValue) int {
	switch v.(type) {
	case types.DoubleConst:
		return 4
	case types.FloatConst:
		return 3
	case types.LongConst:
		return 2
	case types.IntConst:
		return 1
	}
	return 0
}

func narrowToWidestKind(l, r types.ConstValue, result float64) types.ConstValue {
	rank := constRank(l)
	if rr := constRank(r); rr > rank {
		rank = rr
	}
	switch rank {
	case 4:
		return types.DoubleConst(result)
	case 3:
		return types.FloatConst(float32(result))
	case 2:
		return types.LongConst(int64(result))
	default:
		return types.IntConst(int32(result))
	}
}

func (b *Binder) evalCast(e *ast.CastExpr, scope Scope, decl *classDecl, guard *constCycleGuard) types.ConstValue {
	v := b.evalConst(e.Operand, scope, decl, guard)
	prim, ok := e.Type.(*ast.PrimitiveTypeRef)
	if !ok {
		return v
	}
	f, ok := asFloat64(v)
	if !ok {
		return v
	}
	switch prim.Name {
	case "int":
		return types.IntConst(int32(f))
	case "long":
		return types.LongConst(int64(f))
	case "float":
		return types.FloatConst(float32(f))
	case "double":
		return types.DoubleConst(f)
	case "short":
		return types.IntConst(int32(int16(f)))
	case "byte":
		return types.IntConst(int32(int8(f)))
	case "char":
		return types.IntConst(int32(uint16(f)))
	}
	return v
}

// evalName resolves a NameExpr appearing in a constant expression: a
// simple name is a constant field of the current class or of an
// enclosing class (inherited and imported fields are not searched); a
// multi-part name's leading segments are resolved as a type, with the
// final segment its field. A field with no source initializer, such as
// an enum constant, folds to MissingConst, as does any name when guard
// is nil.
func (b *Binder) evalName(e *ast.NameExpr, scope Scope, decl *classDecl, guard *constCycleGuard) types.ConstValue {
	if len(e.Parts) == 0 {
		return types.MissingConst{}
	}
	if len(e.Parts) == 1 {
		return b.resolveFieldConstByOwnerChain(guard, scope, decl, e.Parts[0])
	}

	ownerName := strings.Join(e.Parts[:len(e.Parts)-1], ".")
	fieldName := e.Parts[len(e.Parts)-1]
	if sym, _, ok := b.Index.ResolveDottedName(ownerName); ok {
		if guard != nil {
			return b.evalFieldConst(guard, types.FieldSymbol{Owner: sym, Name: fieldName})
		}
	}
	return types.MissingConst{}
}

// resolveFieldConstByOwnerChain looks for name as a field of decl's own
// class, then of each enclosing class outward (supertypes are not
// searched), evaluating it through guard if found.
func (b *Binder) resolveFieldConstByOwnerChain(guard *constCycleGuard, scope Scope, decl *classDecl, name string) types.ConstValue {
	if guard == nil {
		return types.MissingConst{}
	}
	for cur := decl.Symbol; cur.Valid(); {
		if bc, ok := guard.env.Lookup(cur); ok {
			for _, f := range bc.Fields {
				if f.Symbol.Name == name {
					return b.evalFieldConst(guard, f.Symbol)
				}
			}
			cur = bc.Enclosing
			continue
		}
		break
	}
	return types.MissingConst{}
}

// evalFieldConst evaluates field's initializer with cycle detection,
// reporting CyclicConstant and returning MissingConst on a self-
// referential chain (§4.3.3 step 5).
func (b *Binder) evalFieldConst(guard *constCycleGuard, field types.FieldSymbol) types.ConstValue {
	if v, ok := guard.cache[field]; ok {
		return v
	}
	decl, ok := b.prelimDeclFor(guard.prelim, field.Owner)
	if !ok {
		return types.MissingConst{}
	}

	if guard.visiting[field] {
		b.report(errors.CyclicConstant, decl.CompUnit.unit.Filename, decl.Node.Pos(), "cyclic constant reference involving %s.%s",
			b.Interner.Name(field.Owner), field.Name)
		return types.MissingConst{}
	}

	var fieldDecl *ast.FieldDecl
	for _, f := range decl.Node.Fields {
		if f.Name == field.Name {
			fieldDecl = f
			break
		}
	}
	if fieldDecl == nil || fieldDecl.Initializer == nil {
		guard.cache[field] = types.MissingConst{}
		return types.MissingConst{}
	}

	guard.visiting[field] = true
	scope := b.fullScope(guard.env, decl)
	v := b.evalConst(fieldDecl.Initializer, scope, decl, guard)
	delete(guard.visiting, field)
	guard.cache[field] = v
	return v
}

func (b *Binder) prelimDeclFor(prelim *preliminaryResult, sym types.ClassSymbol) (*classDecl, bool) {
	d, ok := prelim.classes[sym]
	return d, ok
}
