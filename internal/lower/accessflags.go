package lower

import "github.com/arcbound/jhdrc/internal/types"

// PromoteNestedAccess implements §4.4's nested-class access-flag
// post-processing: strip `static`, `private`, and `strictfp` at the
// class level and promote `protected` to `public` — these are recorded
// at the original value in the InnerClasses attribute's own access_flags
// column instead (InnerClassRow.OriginalAccess carries the pre-promotion
// value for that purpose). Only called for classes that have an
// enclosing class; top-level classes are emitted unmodified.
//
// strictfp (see DESIGN.md) is stripped at the class level the same way
// static/private are, and like them it stays in the InnerClasses entry,
// which is built from the unpromoted flags.
func PromoteNestedAccess(flags types.AccessFlags) types.AccessFlags {
	flags = flags.Without(types.AccStatic | types.AccPrivate | types.AccStrict)
	if flags.Has(types.AccProtected) {
		flags = flags.Without(types.AccProtected).With(types.AccPublic)
	}
	return flags
}
