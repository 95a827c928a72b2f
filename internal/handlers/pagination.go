package handlers

import "strconv"

// parseHistoryLimit returns 0, meaning "use the service default", for anything that
// is not a positive integer. Larger values are passed through unchanged.
func parseHistoryLimit(raw string) int {
	limit, err := strconv.Atoi(raw)
	if err != nil || limit <= 0 {
		return 0
	}
	return limit
}
