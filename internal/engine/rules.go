package engine

import "sort"

// LabelRule recognizes one field kind by the literal label spellings
// that may precede its value. Rules are immutable configuration; exactly
// one rule exists per field kind.
type LabelRule struct {
	Kind      FieldKind
	Spellings []string
	Multiline bool
}

// defaultRules returns the label rules in priority order. Spellings are
// stored lower-case and longest-first so that "Phone Number" is never
// consumed as "Phone" with a leftover "Number".
func defaultRules() []LabelRule {
	rules := []LabelRule{
		{
			Kind: FieldName,
			Spellings: []string{
				"name",
				"full name",
				"customer name",
				"client name",
				"first name",
			},
		},
		{
			Kind: FieldPhone,
			Spellings: []string{
				"phone",
				"phone number",
				"telephone",
				"tel",
				"contact",
				"mobile",
			},
		},
		{
			Kind: FieldAddress,
			Spellings: []string{
				"address",
				"mailing address",
				"location",
				"residence",
			},
			Multiline: true,
		},
	}

	for i := range rules {
		sort.Slice(rules[i].Spellings, func(a, b int) bool {
			return len(rules[i].Spellings[a]) > len(rules[i].Spellings[b])
		})
	}
	return rules
}
