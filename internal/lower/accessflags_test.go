package lower

import (
	"testing"

	"github.com/arcbound/jhdrc/internal/types"
)

func TestPromoteNestedAccessStripsStaticPrivateStrictfp(t *testing.T) {
	in := types.AccPublic | types.AccStatic | types.AccPrivate | types.AccStrict | types.AccFinal
	got := PromoteNestedAccess(in)
	if got.Has(types.AccStatic) || got.Has(types.AccPrivate) || got.Has(types.AccStrict) {
		t.Errorf("PromoteNestedAccess(%v) = %v, should strip static/private/strictfp", in, got)
	}
	if !got.Has(types.AccPublic) || !got.Has(types.AccFinal) {
		t.Errorf("PromoteNestedAccess(%v) = %v, should keep public/final", in, got)
	}
}

func TestPromoteNestedAccessPromotesProtectedToPublic(t *testing.T) {
	got := PromoteNestedAccess(types.AccProtected)
	if got.Has(types.AccProtected) {
		t.Error("protected should be stripped")
	}
	if !got.Has(types.AccPublic) {
		t.Error("protected should be promoted to public")
	}
}

func TestPromoteNestedAccessLeavesPackagePrivateAlone(t *testing.T) {
	got := PromoteNestedAccess(types.AccFinal)
	if got != types.AccFinal {
		t.Errorf("PromoteNestedAccess(final) = %v, want unchanged", got)
	}
}
