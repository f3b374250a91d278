package cart

import (
	"sort"
	"strings"
)

// Signature derives the canonical line identity for a product selection.
//
// Two add-to-cart requests collapse into the same line iff shop, product,
// variant selection and add-on set are all equal. Add-on pairs are sorted
// before joining so the order they were picked in does not matter. The
// format is:
//
//	<shopID>:<productID>[:v:<typeID>-<sizeID>][:a:<optA:varA>+<optB:varB>]
//
// with the variant and add-on segments omitted entirely when empty. This is
// the single place identity is computed; every mutation path goes through it.
func Signature(shopID, productID string, variant *VariantSelection, addons []Addon) string {
	if shopID == "" {
		shopID = UnknownShopID
	}

	var b strings.Builder
	b.WriteString(shopID)
	b.WriteByte(':')
	b.WriteString(productID)

	if variant != nil && variant.IsComplete() {
		b.WriteString(":v:")
		b.WriteString(variant.TypeID)
		b.WriteByte('-')
		b.WriteString(variant.SizeID)
	}

	if sig := addonSignature(addons); sig != "" {
		b.WriteString(":a:")
		b.WriteString(sig)
	}

	return b.String()
}

// addonSignature reduces each add-on to "optionID:variantID", drops pairs
// missing either id, sorts the remainder lexicographically and joins them.
func addonSignature(addons []Addon) string {
	pairs := make([]string, 0, len(addons))
	for _, a := range addons {
		if a.OptionID == "" || a.VariantID == "" {
			continue
		}
		pairs = append(pairs, a.OptionID+":"+a.VariantID)
	}
	if len(pairs) == 0 {
		return ""
	}
	sort.Strings(pairs)
	return strings.Join(pairs, "+")
}
