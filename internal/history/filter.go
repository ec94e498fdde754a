package history

// newestDistinct walks records newest first and keeps the first occurrence
// of each record. The result is newest first. A limit <= 0 means no limit.
func newestDistinct(records []string, limit int) []string {
	var result []string
	seen := make(map[string]struct{})

	for i := len(records) - 1; i >= 0; i-- {
		r := records[i]
		if r == "" {
			continue
		}
		if _, ok := seen[r]; ok {
			continue
		}
		seen[r] = struct{}{}
		result = append(result, r)

		if limit > 0 && len(result) >= limit {
			break
		}
	}

	return result
}

// reversed returns a reversed copy of records.
func reversed(records []string) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[len(records)-1-i] = r
	}
	return out
}

// filterRecords keeps records for which keep returns true, preserving order.
func filterRecords(records []string, keep func(string) bool) []string {
	result := make([]string, 0, len(records))
	for _, r := range records {
		if r != "" && keep(r) {
			result = append(result, r)
		}
	}
	return result
}
