package domain

// Filters is the active query configuration of a resource list: search
// term, category, status, sort, page and page size. A key that is not
// present means "filter unset"; present false/0/"" values are real
// filter values and are serialized as-is.
type Filters map[string]any

// Merge returns a copy of f with the partial set layered on top.
// New keys override old ones, disjoint keys coexist, and f itself is
// never mutated, so sequential independent filter changes (search
// term, then category) do not erase each other.
func (f Filters) Merge(partial Filters) Filters {
	merged := make(Filters, len(f)+len(partial))
	for k, v := range f {
		merged[k] = v
	}
	for k, v := range partial {
		merged[k] = v
	}
	return merged
}

// Clone returns a shallow copy safe to hand out of a store.
func (f Filters) Clone() Filters {
	return Filters(nil).Merge(f)
}
