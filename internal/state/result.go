package state

// Result reports what a mutation did. Domain misses are results, not errors:
// callers never need recovery logic for an absent product or a bad quantity.
type Result string

const (
	// ResultApplied means the entity changed and was written through.
	ResultApplied Result = "applied"
	// ResultRemoved means the targeted entry (or the whole per-user mapping)
	// was deleted and the entity was written through.
	ResultRemoved Result = "removed"
	// ResultNotFound means the operation referenced an absent product, review
	// or index; nothing changed.
	ResultNotFound Result = "not_found"
	// ResultInvalid means the input failed validation; nothing changed.
	ResultInvalid Result = "invalid"
)

// Changed reports whether the mutation altered state.
func (r Result) Changed() bool {
	return r == ResultApplied || r == ResultRemoved
}

const (
	noopReasonNotFound = "not_found"
	noopReasonInvalid  = "invalid"
)
