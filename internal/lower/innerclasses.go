package lower

import "github.com/arcbound/jhdrc/internal/types"

// InnerClassRow is the erasure-level shape of one InnerClasses attribute
// entry (classfile.InnerClassEntry carries the binary-name strings once
// resolved through an interner).
type InnerClassRow struct {
	Inner          types.ClassSymbol
	Outer          types.ClassSymbol // zero value if Inner has no enclosing class (local/top-level)
	OriginalAccess types.AccessFlags // pre-promotion flags, per §4.4
}

// ClassLookup is the minimal view of bound classes the collector needs:
// a class's member (nested) classes and every class symbol its own
// descriptors/signatures reference.
type ClassLookup interface {
	Enclosing(types.ClassSymbol) (types.ClassSymbol, bool)
	NestedMembers(types.ClassSymbol) []types.ClassSymbol
	AccessFlags(types.ClassSymbol) types.AccessFlags
}

// CollectInnerClasses walks, per §4.4: the class itself, every class
// nested anywhere inside it (transitively — a grandchild nested class
// belongs in self's table too, not just self's direct members), and
// every class symbol referenced by a descriptor or signature emitted in
// this class (referenced, the caller-supplied set) — for each, every
// enclosing class transitively — emitting in outer-before-inner order
// with no duplicate rows.
func CollectInnerClasses(lookup ClassLookup, self types.ClassSymbol, referenced []types.ClassSymbol) []InnerClassRow {
	var seeds []types.ClassSymbol
	seeds = append(seeds, self)
	seeds = append(seeds, transitiveMembers(lookup, self)...)
	seeds = append(seeds, referenced...)

	seen := make(map[types.ClassSymbol]bool)
	var ordered []types.ClassSymbol // accumulate outer-before-inner: addChain adds each seed's enclosing class before the seed

	var addChain func(types.ClassSymbol)
	addChain = func(sym types.ClassSymbol) {
		if seen[sym] {
			return
		}
		if enclosing, ok := lookup.Enclosing(sym); ok {
			addChain(enclosing) // ensure the outer class is added first
		}
		if !seen[sym] {
			seen[sym] = true
			ordered = append(ordered, sym)
		}
	}

	for _, seed := range seeds {
		addChain(seed)
	}

	var rows []InnerClassRow
	for _, sym := range ordered {
		enclosing, ok := lookup.Enclosing(sym)
		if !ok {
			// A top-level class reached only as a referenced symbol (not
			// itself nested) doesn't belong in InnerClasses at all.
			continue
		}
		rows = append(rows, InnerClassRow{
			Inner:          sym,
			Outer:          enclosing,
			OriginalAccess: lookup.AccessFlags(sym),
		})
	}
	return rows
}

// transitiveMembers returns every class nested anywhere inside self, at
// any depth — not just its direct NestedMembers.
func transitiveMembers(lookup ClassLookup, self types.ClassSymbol) []types.ClassSymbol {
	var out []types.ClassSymbol
	seen := make(map[types.ClassSymbol]bool)
	var walk func(types.ClassSymbol)
	walk = func(sym types.ClassSymbol) {
		for _, member := range lookup.NestedMembers(sym) {
			if seen[member] {
				continue
			}
			seen[member] = true
			out = append(out, member)
			walk(member)
		}
	}
	walk(self)
	return out
}
