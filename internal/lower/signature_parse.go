package lower

import (
	"fmt"

	"github.com/arcbound/jhdrc/internal/types"
)

// ParsedTypeParam pairs a minted TypeVariableSymbol with its parsed upper
// bound — the read-side counterpart of TypeParamInfo, which only carries a
// name because the writer never needs to mint a symbol.
type ParsedTypeParam struct {
	Symbol types.TypeVariableSymbol
	Bound  types.Intersection
}

// ParsedClassSignature is the decoded form of a ClassSignature attribute.
type ParsedClassSignature struct {
	TypeParams []ParsedTypeParam
	Super      types.ClassType
	Interfaces []types.ClassType
}

// ParsedMethodSignature is the decoded form of a MethodSignature attribute.
type ParsedMethodSignature struct {
	TypeParams []ParsedTypeParam
	Params     []types.Type
	Return     types.Type
	Throws     []types.Type
}

// ParseClassSignature decodes sig (a ClassSignature attribute body string,
// JVMS §4.7.9.1), minting a TypeVariableSymbol owned by self for each
// formal type parameter. enclosing supplies type variables already in
// lexical scope — an outer class's own type parameters — so a bound or
// supertype referencing one resolves to that symbol rather than a bare,
// ownerless placeholder.
func ParseClassSignature(interner *types.Interner, self types.ClassSymbol, enclosing []ParsedTypeParam, sig string) (ParsedClassSignature, error) {
	p := &sigParser{s: sig}
	scope := scopeOf(enclosing)

	typeParams, err := p.parseTypeParameters(interner, scope, func(name string, idx int) types.TypeVariableSymbol {
		return types.TypeVariableSymbol{Owner: self, Name: name, Index: idx}
	})
	if err != nil {
		return ParsedClassSignature{}, fmt.Errorf("lower: parsing class signature %q: %w", sig, err)
	}

	super, err := p.parseClassTypeSignature(interner, scope)
	if err != nil {
		return ParsedClassSignature{}, fmt.Errorf("lower: parsing class signature %q superclass: %w", sig, err)
	}

	var ifaces []types.ClassType
	for p.pos < len(p.s) {
		iface, err := p.parseClassTypeSignature(interner, scope)
		if err != nil {
			return ParsedClassSignature{}, fmt.Errorf("lower: parsing class signature %q interface: %w", sig, err)
		}
		ifaces = append(ifaces, iface)
	}

	return ParsedClassSignature{TypeParams: typeParams, Super: super, Interfaces: ifaces}, nil
}

// ParseMethodSignature decodes sig (a MethodSignature attribute body
// string) for owner, minting a TypeVariableSymbol for each of the method's
// own formal type parameters; enclosing supplies the declaring class's own
// type parameters, in scope for parameter/return/throws types.
func ParseMethodSignature(interner *types.Interner, owner types.MethodSymbol, enclosing []ParsedTypeParam, sig string) (ParsedMethodSignature, error) {
	p := &sigParser{s: sig}
	scope := scopeOf(enclosing)

	typeParams, err := p.parseTypeParameters(interner, scope, func(name string, idx int) types.TypeVariableSymbol {
		return types.TypeVariableSymbol{Owner: owner, Name: name, Index: idx}
	})
	if err != nil {
		return ParsedMethodSignature{}, fmt.Errorf("lower: parsing method signature %q: %w", sig, err)
	}

	if err := p.expect('('); err != nil {
		return ParsedMethodSignature{}, fmt.Errorf("lower: parsing method signature %q: %w", sig, err)
	}
	var params []types.Type
	for p.peek() != ')' {
		t, err := p.parseTypeSignature(interner, scope)
		if err != nil {
			return ParsedMethodSignature{}, fmt.Errorf("lower: parsing method signature %q parameter: %w", sig, err)
		}
		params = append(params, t)
	}
	if err := p.expect(')'); err != nil {
		return ParsedMethodSignature{}, fmt.Errorf("lower: parsing method signature %q: %w", sig, err)
	}

	ret, err := p.parseTypeSignature(interner, scope)
	if err != nil {
		return ParsedMethodSignature{}, fmt.Errorf("lower: parsing method signature %q return type: %w", sig, err)
	}

	var throws []types.Type
	for p.peek() == '^' {
		p.next()
		th, err := p.parseTypeSignature(interner, scope)
		if err != nil {
			return ParsedMethodSignature{}, fmt.Errorf("lower: parsing method signature %q throws clause: %w", sig, err)
		}
		throws = append(throws, th)
	}

	return ParsedMethodSignature{TypeParams: typeParams, Params: params, Return: ret, Throws: throws}, nil
}

// ParseTypeSignature decodes a bare field or record-component TypeSignature
// string, resolving any free type variable against scope (the declaring
// class's, and for a method's local variables the declaring method's, own
// type parameters).
func ParseTypeSignature(interner *types.Interner, scope []ParsedTypeParam, sig string) (types.Type, error) {
	p := &sigParser{s: sig}
	t, err := p.parseTypeSignature(interner, scopeOf(scope))
	if err != nil {
		return nil, fmt.Errorf("lower: parsing type signature %q: %w", sig, err)
	}
	return t, nil
}

func scopeOf(params []ParsedTypeParam) map[string]types.TypeVariableSymbol {
	scope := make(map[string]types.TypeVariableSymbol, len(params))
	for _, p := range params {
		scope[p.Symbol.Name] = p.Symbol
	}
	return scope
}

// sigParser is a recursive-descent parser over one JVMS §4.7.9.1 signature
// string — the structural inverse of signature.go's write* functions.
type sigParser struct {
	s   string
	pos int
}

func (p *sigParser) peek() byte {
	if p.pos >= len(p.s) {
		return 0
	}
	return p.s[p.pos]
}

func (p *sigParser) next() byte {
	c := p.peek()
	p.pos++
	return c
}

func (p *sigParser) expect(c byte) error {
	if p.peek() != c {
		return fmt.Errorf("expected %q at offset %d, got %q", c, p.pos, p.peek())
	}
	p.pos++
	return nil
}

func (p *sigParser) scanUntil(stop ...byte) string {
	start := p.pos
	for p.pos < len(p.s) && !containsByte(stop, p.s[p.pos]) {
		p.pos++
	}
	return p.s[start:p.pos]
}

func containsByte(set []byte, b byte) bool {
	for _, s := range set {
		if s == b {
			return true
		}
	}
	return false
}

// parseTypeParameters parses an optional `<...>` TypeParameters clause,
// present at the head of a ClassSignature or MethodSignature. mint
// produces this type parameter's symbol given its declared name and
// position; each parsed name is added to scope immediately (before its own
// bound is parsed) so a self-referential bound like `T extends
// Comparable<T>` resolves against the symbol being declared.
func (p *sigParser) parseTypeParameters(interner *types.Interner, scope map[string]types.TypeVariableSymbol, mint func(name string, idx int) types.TypeVariableSymbol) ([]ParsedTypeParam, error) {
	if p.peek() != '<' {
		return nil, nil
	}
	p.next()

	var out []ParsedTypeParam
	idx := 0
	for p.peek() != '>' {
		name := p.scanUntil(':')
		if err := p.expect(':'); err != nil {
			return nil, err
		}
		sym := mint(name, idx)
		scope[name] = sym

		// ClassBound is `: [ReferenceTypeSignature]` — the type is absent
		// exactly when the type parameter's only written bound is an
		// interface (§4.4's bound-index-0 rule), signaled here by the
		// ClassBound's colon being immediately followed by another colon.
		var bounds []types.Type
		firstIsInterface := false
		if p.peek() != ':' {
			t, err := p.parseTypeSignature(interner, scope)
			if err != nil {
				return nil, err
			}
			bounds = append(bounds, t)
		} else {
			firstIsInterface = true
		}
		for p.peek() == ':' {
			p.next()
			t, err := p.parseTypeSignature(interner, scope)
			if err != nil {
				return nil, err
			}
			bounds = append(bounds, t)
		}

		out = append(out, ParsedTypeParam{Symbol: sym, Bound: types.Intersection{Bounds: bounds, FirstIsInterface: firstIsInterface}})
		idx++
	}
	if err := p.expect('>'); err != nil {
		return nil, err
	}
	return out, nil
}

// parseTypeSignature parses one TypeSignature: a primitive descriptor
// char, 'V' (only legal as a method return type, accepted anywhere for
// simplicity since callers never feed this malformed input), a class type,
// a type variable, or an array.
func (p *sigParser) parseTypeSignature(interner *types.Interner, scope map[string]types.TypeVariableSymbol) (types.Type, error) {
	switch p.peek() {
	case 'Z':
		p.next()
		return types.Primitive{Kind: types.Boolean}, nil
	case 'B':
		p.next()
		return types.Primitive{Kind: types.Byte}, nil
	case 'C':
		p.next()
		return types.Primitive{Kind: types.Char}, nil
	case 'D':
		p.next()
		return types.Primitive{Kind: types.Double}, nil
	case 'F':
		p.next()
		return types.Primitive{Kind: types.Float}, nil
	case 'I':
		p.next()
		return types.Primitive{Kind: types.Int}, nil
	case 'J':
		p.next()
		return types.Primitive{Kind: types.Long}, nil
	case 'S':
		p.next()
		return types.Primitive{Kind: types.Short}, nil
	case 'V':
		p.next()
		return types.VoidType{}, nil
	case '[':
		p.next()
		elem, err := p.parseTypeSignature(interner, scope)
		if err != nil {
			return nil, err
		}
		return types.Array{Element: elem}, nil
	case 'T':
		return p.parseTypeVariable(scope)
	case 'L':
		ct, err := p.parseClassTypeSignature(interner, scope)
		if err != nil {
			return nil, err
		}
		return ct, nil
	}
	return nil, fmt.Errorf("unexpected char %q at offset %d", p.peek(), p.pos)
}

func (p *sigParser) parseTypeVariable(scope map[string]types.TypeVariableSymbol) (types.Type, error) {
	if err := p.expect('T'); err != nil {
		return nil, err
	}
	name := p.scanUntil(';')
	if err := p.expect(';'); err != nil {
		return nil, err
	}
	sym, ok := scope[name]
	if !ok {
		// The declaring class/method's own type-parameter list wasn't in
		// scope here (e.g. a signature read in isolation) — mint a bare,
		// ownerless symbol rather than failing, since the name alone is
		// still enough to erase or re-render this reference.
		sym = types.TypeVariableSymbol{Name: name}
	}
	return types.TypeVariable{Symbol: sym}, nil
}

func (p *sigParser) parseClassTypeSignature(interner *types.Interner, scope map[string]types.TypeVariableSymbol) (types.ClassType, error) {
	if err := p.expect('L'); err != nil {
		return types.ClassType{}, err
	}
	binaryName := p.scanUntil('<', '.', ';')
	typeArgs, err := p.parseOptionalTypeArguments(interner, scope)
	if err != nil {
		return types.ClassType{}, err
	}
	sym := interner.Intern(binaryName)
	path := []types.SimpleClass{{Symbol: sym, TypeArgs: typeArgs}}

	for p.peek() == '.' {
		p.next()
		simpleName := p.scanUntil('<', '.', ';')
		nestedArgs, err := p.parseOptionalTypeArguments(interner, scope)
		if err != nil {
			return types.ClassType{}, err
		}
		sym = interner.Intern(interner.Name(sym) + "$" + simpleName)
		path = append(path, types.SimpleClass{Symbol: sym, TypeArgs: nestedArgs})
	}

	if err := p.expect(';'); err != nil {
		return types.ClassType{}, err
	}
	return types.ClassType{Path: path}, nil
}

func (p *sigParser) parseOptionalTypeArguments(interner *types.Interner, scope map[string]types.TypeVariableSymbol) ([]types.Type, error) {
	if p.peek() != '<' {
		return nil, nil
	}
	p.next()
	var args []types.Type
	for p.peek() != '>' {
		arg, err := p.parseTypeArgument(interner, scope)
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
	}
	if err := p.expect('>'); err != nil {
		return nil, err
	}
	return args, nil
}

func (p *sigParser) parseTypeArgument(interner *types.Interner, scope map[string]types.TypeVariableSymbol) (types.Type, error) {
	switch p.peek() {
	case '*':
		p.next()
		return types.Wildcard{Bound: types.BoundNone}, nil
	case '+':
		p.next()
		b, err := p.parseTypeSignature(interner, scope)
		if err != nil {
			return nil, err
		}
		return types.Wildcard{Bound: types.BoundUpper, BoundType: b}, nil
	case '-':
		p.next()
		b, err := p.parseTypeSignature(interner, scope)
		if err != nil {
			return nil, err
		}
		return types.Wildcard{Bound: types.BoundLower, BoundType: b}, nil
	}
	return p.parseTypeSignature(interner, scope)
}
