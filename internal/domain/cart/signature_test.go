package cart

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSignature_SimpleProduct(t *testing.T) {
	sig := Signature("s1", "p1", nil, nil)
	assert.Equal(t, "s1:p1", sig)
}

func TestSignature_DefaultsShopID(t *testing.T) {
	sig := Signature("", "p1", nil, nil)
	assert.Equal(t, "unknown:p1", sig)
}

func TestSignature_WithVariant(t *testing.T) {
	variant := &VariantSelection{TypeID: "hot", SizeID: "large"}
	sig := Signature("s1", "p1", variant, nil)
	assert.Equal(t, "s1:p1:v:hot-large", sig)
}

func TestSignature_IncompleteVariantContributesNothing(t *testing.T) {
	missingSize := &VariantSelection{TypeID: "hot"}
	missingType := &VariantSelection{SizeID: "large"}

	assert.Equal(t, "s1:p1", Signature("s1", "p1", missingSize, nil))
	assert.Equal(t, "s1:p1", Signature("s1", "p1", missingType, nil))
}

func TestSignature_AddonOrderInvariance(t *testing.T) {
	a := Addon{OptionID: "sauce", VariantID: "garlic"}
	b := Addon{OptionID: "cheese", VariantID: "extra"}

	sigAB := Signature("s1", "p1", nil, []Addon{a, b})
	sigBA := Signature("s1", "p1", nil, []Addon{b, a})

	assert.Equal(t, sigAB, sigBA)
	assert.Equal(t, "s1:p1:a:cheese:extra+sauce:garlic", sigAB)
}

func TestSignature_AddonsMissingIDsDropped(t *testing.T) {
	addons := []Addon{
		{OptionID: "sauce"},              // no variant id
		{VariantID: "extra"},             // no option id
		{OptionID: "", VariantID: ""},    // neither
		{OptionID: "a", VariantID: "b"},  // kept
	}
	assert.Equal(t, "s1:p1:a:a:b", Signature("s1", "p1", nil, addons))
}

func TestSignature_DistinctSelectionsDistinctIDs(t *testing.T) {
	small := &VariantSelection{TypeID: "iced", SizeID: "small"}
	large := &VariantSelection{TypeID: "iced", SizeID: "large"}

	assert.NotEqual(t,
		Signature("s1", "p1", small, nil),
		Signature("s1", "p1", large, nil),
	)
	assert.NotEqual(t,
		Signature("s1", "p1", nil, nil),
		Signature("s2", "p1", nil, nil),
	)
	assert.NotEqual(t,
		Signature("s1", "p1", nil, nil),
		Signature("s1", "p1", nil, []Addon{{OptionID: "a", VariantID: "b"}}),
	)
}
