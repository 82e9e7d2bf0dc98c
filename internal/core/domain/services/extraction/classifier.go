package extraction

import "sort"

// field identifies one of the three free-text fields the classifier can
// assign. Priority order for tie-breaks and fallback fill is name, then
// address, then items.
type field int

const (
	fieldName field = iota
	fieldAddress
	fieldItems
)

var fieldPriority = []field{fieldName, fieldAddress, fieldItems}

// lineScore holds the per-family match counts for one unclaimed line.
type lineScore struct {
	index   int
	text    string
	scores  [3]int
	claimed bool
}

// bestType returns the field with the highest score, breaking ties in
// priority order name > address > items.
func (s lineScore) bestType() field {
	best := fieldName
	for _, f := range []field{fieldAddress, fieldItems} {
		if s.scores[f] > s.scores[best] {
			best = f
		}
	}
	return best
}

func (s lineScore) maxScore() int {
	best := s.scores[0]
	for _, score := range s.scores[1:] {
		if score > best {
			best = score
		}
	}
	return best
}

// classify assigns unclaimed lines to fields the labeled pass left empty.
//
// Steps, in order:
//  1. When the phone number is missing, the first line whose digits look
//     like a phone number is taken and removed from the pool.
//  2. When exactly three lines remain and all of name, address, and items
//     are missing, assignment is positional: first line is the name, second
//     the address, third the items.
//  3. Otherwise each remaining line is scored against the pattern families,
//     lines are walked in descending best-score order (stable, so ties keep
//     message order), and each is assigned to its best field only if that
//     field is still open. A line whose best field is taken is skipped, not
//     reassigned. Any field still open afterwards receives the first unused
//     line, in priority order.
func classify(lines []string, claimed []bool, fields fieldSet) fieldSet {
	pool := make([]lineScore, 0, len(lines))
	for i, line := range lines {
		if !claimed[i] {
			pool = append(pool, lineScore{index: i, text: line})
		}
	}

	if fields.phone == nil {
		for i := range pool {
			if isPhoneCandidate(pool[i].text) {
				phone := pool[i].text
				fields.phone = &phone
				pool = append(pool[:i], pool[i+1:]...)
				break
			}
		}
	}

	missing := missingFields(fields)
	if len(missing) == 0 {
		return fields
	}

	if len(pool) == 3 && len(missing) == 3 {
		fields.name = &pool[0].text
		fields.address = &pool[1].text
		fields.items = &pool[2].text
		return fields
	}

	return scoreAndAssign(pool, fields)
}

// scoreAndAssign runs the scoring procedure over the pool for every field
// still missing from the set.
func scoreAndAssign(pool []lineScore, fields fieldSet) fieldSet {
	for i := range pool {
		pool[i].scores[fieldName] = countMatches(pool[i].text, namePatterns)
		pool[i].scores[fieldAddress] = countMatches(pool[i].text, addressPatterns)
		pool[i].scores[fieldItems] = countMatches(pool[i].text, itemPatterns)
	}

	ranked := make([]*lineScore, len(pool))
	for i := range pool {
		ranked[i] = &pool[i]
	}
	sort.SliceStable(ranked, func(a, b int) bool {
		return ranked[a].maxScore() > ranked[b].maxScore()
	})

	for _, line := range ranked {
		best := line.bestType()
		if fieldValue(fields, best) == nil {
			fields = assignField(fields, best, &line.text)
			line.claimed = true
		}
	}

	// Fallback fill: leftover fields take the first unused lines, in
	// priority order.
	for _, f := range fieldPriority {
		if fieldValue(fields, f) != nil {
			continue
		}
		for i := range pool {
			if !pool[i].claimed {
				fields = assignField(fields, f, &pool[i].text)
				pool[i].claimed = true
				break
			}
		}
	}

	return fields
}

func missingFields(fields fieldSet) []field {
	var missing []field
	for _, f := range fieldPriority {
		if fieldValue(fields, f) == nil {
			missing = append(missing, f)
		}
	}
	return missing
}

func fieldValue(fields fieldSet, f field) *string {
	switch f {
	case fieldAddress:
		return fields.address
	case fieldItems:
		return fields.items
	default:
		return fields.name
	}
}

func assignField(fields fieldSet, f field, value *string) fieldSet {
	switch f {
	case fieldAddress:
		fields.address = value
	case fieldItems:
		fields.items = value
	default:
		fields.name = value
	}
	return fields
}
