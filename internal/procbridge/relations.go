package procbridge

import (
	"github.com/arcbound/jhdrc/internal/types"
)

// Relations implements the Turing-tarpit-proof subset of type-relation
// predicates the bridge exposes to processors (§4.3.6): isSameType,
// isSubtype, isAssignable, isSubsignature, contains, erasure, asMemberOf,
// directSupertypes, capture, boxedClass, unboxedType. Every predicate is
// resolved against one round's RoundEnvironment, so results never see
// classes from a later round.
type Relations struct {
	env *RoundEnvironment
}

func newRelations(env *RoundEnvironment) *Relations { return &Relations{env: env} }

// IsSameType mirrors javax.lang.model.util.Types.isSameType: structural
// equality, ignoring annotations (types.Equal already implements this).
func (r *Relations) IsSameType(a, b types.Type) bool { return types.Equal(a, b) }

// DirectSupertypes returns t's immediate supertypes: for a class type,
// its declared (or inferred java.lang.Object) superclass followed by its
// declared interfaces; a primitive or void type has none.
func (r *Relations) DirectSupertypes(t types.Type) []types.Type {
	ct, ok := t.(types.ClassType)
	if !ok {
		return nil
	}
	bc, ok := r.env.lookup(ct.Symbol())
	if !ok {
		return nil
	}
	var out []types.Type
	if len(bc.Supertype.Path) > 0 {
		out = append(out, bc.Supertype)
	}
	for _, iface := range bc.Interfaces {
		out = append(out, iface)
	}
	return out
}

// IsSubtype reports whether sub <: super, per the reference language's
// reflexive-transitive subtyping relation over class/interface hierarchy,
// arrays (covariant on reference element types), and primitive widening.
func (r *Relations) IsSubtype(sub, super types.Type) bool {
	if types.Equal(sub, super) {
		return true
	}
	switch subv := sub.(type) {
	case types.Primitive:
		superv, ok := super.(types.Primitive)
		return ok && primitiveWidens(subv.Kind, superv.Kind)
	case types.Array:
		superv, ok := super.(types.Array)
		if !ok {
			return isObjectType(r.env, super)
		}
		if _, isPrim := subv.Element.(types.Primitive); isPrim {
			return types.Equal(subv.Element, superv.Element)
		}
		return r.IsSubtype(subv.Element, superv.Element)
	case types.ClassType:
		return r.classIsSubtype(subv, super)
	case types.TypeVariable:
		bc := r.env.boundOf(subv.Symbol)
		for _, b := range bc.Bounds {
			if r.IsSubtype(b, super) {
				return true
			}
		}
		return isObjectType(r.env, super)
	}
	return false
}

func (r *Relations) classIsSubtype(sub types.ClassType, super types.Type) bool {
	visited := map[types.ClassSymbol]bool{}
	var walk func(c types.ClassType) bool
	walk = func(c types.ClassType) bool {
		sym := c.Symbol()
		if visited[sym] {
			return false
		}
		visited[sym] = true
		if types.Equal(c, super) {
			return true
		}
		bc, ok := r.env.lookup(sym)
		if !ok {
			return isObjectType(r.env, super)
		}
		if len(bc.Supertype.Path) > 0 && walk(bc.Supertype) {
			return true
		}
		for _, iface := range bc.Interfaces {
			if walk(iface) {
				return true
			}
		}
		return false
	}
	return walk(sub)
}

// IsAssignable reports whether a value of type from may be assigned to a
// variable of type to: identity conversion, widening reference/primitive
// conversion, or (for the primitive/box pair) boxing/unboxing conversion.
func (r *Relations) IsAssignable(from, to types.Type) bool {
	if r.IsSubtype(from, to) {
		return true
	}
	if fp, ok := from.(types.Primitive); ok {
		if boxed := r.BoxedClass(fp); boxed != nil {
			return r.IsSubtype(boxed, to)
		}
	}
	if tp, ok := to.(types.Primitive); ok {
		if unboxed := r.UnboxedType(from); unboxed != nil {
			return types.Equal(unboxed, tp)
		}
	}
	return false
}

// IsSubsignature reports whether sub is a subsignature of super per the
// reference language's override-compatibility rule: same name is assumed
// (callers compare method symbols by name separately), and either the
// erased parameter descriptors match exactly, or super is generic and sub
// is its erasure.
func (r *Relations) IsSubsignature(subParams, superParams []types.Type) bool {
	if len(subParams) != len(superParams) {
		return false
	}
	for i := range subParams {
		subErased := r.Erasure(subParams[i])
		superErased := r.Erasure(superParams[i])
		if !types.Equal(subErased, superErased) {
			return false
		}
	}
	return true
}

// Contains reports wildcard containment: T1 contains T2 when T2's value
// set is a subset of T1's, per the three JLS-style cases (unbounded
// containment, upper/lower bound containment).
func (r *Relations) Contains(t1, t2 types.Type) bool {
	w1, ok1 := t1.(types.Wildcard)
	if !ok1 {
		return types.Equal(t1, t2)
	}
	switch w1.Bound {
	case types.BoundNone:
		return true
	case types.BoundUpper:
		if w2, ok := t2.(types.Wildcard); ok && w2.Bound == types.BoundUpper {
			return r.IsSubtype(w2.BoundType, w1.BoundType)
		}
		return r.IsSubtype(t2, w1.BoundType)
	case types.BoundLower:
		if w2, ok := t2.(types.Wildcard); ok && w2.Bound == types.BoundLower {
			return r.IsSubtype(w1.BoundType, w2.BoundType)
		}
		return r.IsSubtype(w1.BoundType, t2)
	}
	return false
}

// Erasure computes t's erasure (§4.4's erasure rule, exposed here as a
// Type-valued operation rather than lower.Descriptor's string form).
func (r *Relations) Erasure(t types.Type) types.Type {
	switch v := t.(type) {
	case types.Array:
		return types.Array{Element: r.Erasure(v.Element)}
	case types.ClassType:
		last := v.Innermost()
		return types.NewClassType(last.Symbol)
	case types.TypeVariable:
		bc := r.env.boundOf(v.Symbol)
		if len(bc.Bounds) == 0 {
			return types.ObjectType(r.env.interner)
		}
		return r.Erasure(bc.Bounds[0])
	case types.Wildcard:
		if v.BoundType != nil {
			return r.Erasure(v.BoundType)
		}
		return types.ObjectType(r.env.interner)
	}
	return t
}

// Capture approximates wildcard capture conversion: each wildcard type
// argument in t is replaced by the wildcard's upper bound, or by Object if
// it is unbounded or lower-bounded. No fresh type variable is created, so
// two captures of the same wildcard compare equal.
func (r *Relations) Capture(t types.ClassType) types.ClassType {
	out := types.ClassType{Path: make([]types.SimpleClass, len(t.Path))}
	for i, seg := range t.Path {
		args := make([]types.Type, len(seg.TypeArgs))
		for j, arg := range seg.TypeArgs {
			w, ok := arg.(types.Wildcard)
			if !ok {
				args[j] = arg
				continue
			}
			switch w.Bound {
			case types.BoundUpper:
				args[j] = w.BoundType
			default:
				args[j] = types.ObjectType(r.env.interner)
			}
		}
		out.Path[i] = types.SimpleClass{Symbol: seg.Symbol, TypeArgs: args, Annos: seg.Annos}
	}
	return out
}

// AsMemberOf computes the type a member el has when viewed as a member of
// containing (substituting containing's actual type arguments for the
// declaring class's own type parameters). Type-parameter substitution is
// intentionally conservative here: a member whose type mentions a type
// variable not directly bound by containing's own declaring class is
// returned unsubstituted (erased generics over enclosing-class and
// method type parameters are out of scope for this bridge, per spec.md
// §4.3.6's "Turing-tarpit-proof subset").
func (r *Relations) AsMemberOf(containing types.ClassType, el Element) types.Type {
	var declared types.Type
	var owner types.ClassSymbol
	switch e := el.(type) {
	case VariableElement:
		declared, owner = e.bf.Type, e.owner
	case ExecutableElement:
		declared, owner = e.bm.Return, e.owner
	default:
		return nil
	}
	bc, ok := r.env.lookup(owner)
	if !ok || declared == nil {
		return declared
	}
	subst := map[types.TypeVariableSymbol]types.Type{}
	for i, tp := range bc.TypeParams {
		for _, seg := range containing.Path {
			if seg.Symbol == owner && i < len(seg.TypeArgs) {
				subst[tp.Symbol] = seg.TypeArgs[i]
			}
		}
	}
	return substitute(declared, subst)
}

func substitute(t types.Type, subst map[types.TypeVariableSymbol]types.Type) types.Type {
	switch v := t.(type) {
	case types.TypeVariable:
		if repl, ok := subst[v.Symbol]; ok {
			return repl
		}
		return v
	case types.Array:
		return types.Array{Element: substitute(v.Element, subst), Annos: v.Annos}
	case types.ClassType:
		out := types.ClassType{Path: make([]types.SimpleClass, len(v.Path))}
		for i, seg := range v.Path {
			args := make([]types.Type, len(seg.TypeArgs))
			for j, arg := range seg.TypeArgs {
				args[j] = substitute(arg, subst)
			}
			out.Path[i] = types.SimpleClass{Symbol: seg.Symbol, TypeArgs: args, Annos: seg.Annos}
		}
		return out
	}
	return t
}

// boxedNames maps each primitive kind to its well-known wrapper class's
// binary name (java.lang.Boolean, .Integer, and so on).
var boxedNames = map[types.PrimitiveKind]string{
	types.Boolean: "java/lang/Boolean",
	types.Byte:    "java/lang/Byte",
	types.Short:   "java/lang/Short",
	types.Int:     "java/lang/Integer",
	types.Long:    "java/lang/Long",
	types.Char:    "java/lang/Character",
	types.Float:   "java/lang/Float",
	types.Double:  "java/lang/Double",
}

var unboxedKinds = map[string]types.PrimitiveKind{
	"java/lang/Boolean":   types.Boolean,
	"java/lang/Byte":      types.Byte,
	"java/lang/Short":     types.Short,
	"java/lang/Integer":   types.Int,
	"java/lang/Long":      types.Long,
	"java/lang/Character": types.Char,
	"java/lang/Float":     types.Float,
	"java/lang/Double":    types.Double,
}

// BoxedClass returns p's wrapper class type (e.g. int -> java.lang.Integer).
func (r *Relations) BoxedClass(p types.Primitive) types.Type {
	name, ok := boxedNames[p.Kind]
	if !ok {
		return nil
	}
	return types.NewClassType(r.env.interner.Intern(name))
}

// UnboxedType returns t's primitive counterpart if t is one of the eight
// well-known wrapper classes, or nil if t is not a box type.
func (r *Relations) UnboxedType(t types.Type) types.Type {
	ct, ok := t.(types.ClassType)
	if !ok {
		return nil
	}
	name := r.env.interner.Name(ct.Symbol())
	kind, ok := unboxedKinds[name]
	if !ok {
		return nil
	}
	return types.Primitive{Kind: kind}
}

func isObjectType(env *RoundEnvironment, t types.Type) bool {
	ct, ok := t.(types.ClassType)
	return ok && env.interner.Name(ct.Symbol()) == types.ObjectBinaryName
}

// primitiveWidens reports whether sub widens to super per JLS §5.1.2's
// widening primitive conversion table.
func primitiveWidens(sub, super types.PrimitiveKind) bool {
	if sub == super {
		return true
	}
	widensTo := map[types.PrimitiveKind][]types.PrimitiveKind{
		types.Byte:  {types.Short, types.Int, types.Long, types.Float, types.Double},
		types.Short: {types.Int, types.Long, types.Float, types.Double},
		types.Char:  {types.Int, types.Long, types.Float, types.Double},
		types.Int:   {types.Long, types.Float, types.Double},
		types.Long:  {types.Float, types.Double},
		types.Float: {types.Double},
	}
	for _, to := range widensTo[sub] {
		if to == super {
			return true
		}
	}
	return false
}
