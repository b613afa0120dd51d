package utils

// Min returns the minimum of two integers.
func Min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// BatchSize returns how many of the remaining units fit in one transaction.
// A limit of zero or less means no limit.
func BatchSize(remaining, limit int) int {
	if limit <= 0 {
		return remaining
	}
	return Min(remaining, limit)
}
