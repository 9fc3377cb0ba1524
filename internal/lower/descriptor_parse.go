package lower

import (
	"fmt"
	"strings"

	"github.com/arcbound/jhdrc/internal/types"
)

// ParseDescriptor decodes a single erased field/parameter/return
// descriptor (JVMS §4.3.2) into a raw, non-generic types.Type — the shape
// a classpath class's field or method gets when no Signature attribute
// accompanies its descriptor (§4.4: Signature is only emitted when a
// member carries information beyond its descriptor).
func ParseDescriptor(interner *types.Interner, d string) (types.Type, error) {
	t, rest, err := parseOneDescriptor(interner, d)
	if err != nil {
		return nil, fmt.Errorf("lower: parsing descriptor %q: %w", d, err)
	}
	if rest != "" {
		return nil, fmt.Errorf("lower: parsing descriptor %q: trailing data %q", d, rest)
	}
	return t, nil
}

// ParseMethodDescriptor decodes a full method descriptor `(params)ret`.
func ParseMethodDescriptor(interner *types.Interner, d string) (params []types.Type, ret types.Type, err error) {
	if len(d) == 0 || d[0] != '(' {
		return nil, nil, fmt.Errorf("lower: parsing method descriptor %q: missing '('", d)
	}
	rest := d[1:]
	for len(rest) > 0 && rest[0] != ')' {
		var t types.Type
		t, rest, err = parseOneDescriptor(interner, rest)
		if err != nil {
			return nil, nil, fmt.Errorf("lower: parsing method descriptor %q: %w", d, err)
		}
		params = append(params, t)
	}
	if len(rest) == 0 || rest[0] != ')' {
		return nil, nil, fmt.Errorf("lower: parsing method descriptor %q: missing ')'", d)
	}
	rest = rest[1:]
	ret, rest, err = parseOneDescriptor(interner, rest)
	if err != nil {
		return nil, nil, fmt.Errorf("lower: parsing method descriptor %q: %w", d, err)
	}
	if rest != "" {
		return nil, nil, fmt.Errorf("lower: parsing method descriptor %q: trailing data %q", d, rest)
	}
	return params, ret, nil
}

func parseOneDescriptor(interner *types.Interner, d string) (types.Type, string, error) {
	if d == "" {
		return nil, "", fmt.Errorf("empty descriptor")
	}
	switch d[0] {
	case 'Z':
		return types.Primitive{Kind: types.Boolean}, d[1:], nil
	case 'B':
		return types.Primitive{Kind: types.Byte}, d[1:], nil
	case 'C':
		return types.Primitive{Kind: types.Char}, d[1:], nil
	case 'D':
		return types.Primitive{Kind: types.Double}, d[1:], nil
	case 'F':
		return types.Primitive{Kind: types.Float}, d[1:], nil
	case 'I':
		return types.Primitive{Kind: types.Int}, d[1:], nil
	case 'J':
		return types.Primitive{Kind: types.Long}, d[1:], nil
	case 'S':
		return types.Primitive{Kind: types.Short}, d[1:], nil
	case 'V':
		return types.VoidType{}, d[1:], nil
	case '[':
		elem, rest, err := parseOneDescriptor(interner, d[1:])
		if err != nil {
			return nil, "", err
		}
		return types.Array{Element: elem}, rest, nil
	case 'L':
		idx := strings.IndexByte(d, ';')
		if idx < 0 {
			return nil, "", fmt.Errorf("unterminated class descriptor %q", d)
		}
		sym := interner.Intern(d[1:idx])
		return types.NewClassType(sym), d[idx+1:], nil
	}
	return nil, "", fmt.Errorf("unexpected char %q", d[0])
}
