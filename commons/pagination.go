// SPDX-License-Identifier: GPL-3.0-only

package commons

const (
	DefaultSkip  = 0
	DefaultLimit = 100
	MaxLimit     = 1000
)

// ValidatePage enforces skip >= 0 and 1 <= limit <= MaxLimit.
func ValidatePage(skip, limit int) error {
	if skip < 0 {
		return &InvalidInputError{Field: "skip", Message: "skip must be a non-negative integer"}
	}
	if limit < 1 || limit > MaxLimit {
		return &InvalidInputError{Field: "limit", Message: "limit must be between 1 and 1000"}
	}
	return nil
}
