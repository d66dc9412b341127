package pagination

// CleanFilters returns the filter criteria to submit: nil values and empty
// strings are dropped because an absent key already means "no filter".
// Returns nil when nothing remains.
func CleanFilters(filters map[string]any) map[string]any {
	var out map[string]any
	for k, v := range filters {
		if v == nil {
			continue
		}
		if s, ok := v.(string); ok && s == "" {
			continue
		}
		if out == nil {
			out = make(map[string]any, len(filters))
		}
		out[k] = v
	}
	return out
}
