// SPDX-License-Identifier: GPL-3.0-only

package crypto

const (
	// APIKeyEntropyBytes is the amount of randomness in every generated key.
	APIKeyEntropyBytes = 32
	// DisplayPrefixLength is how much of the plaintext is kept for display.
	DisplayPrefixLength = 12
	truncationMarker    = "..."
)

// GenerateAPIKey returns "<prefix>_<base64url(32 random bytes)>".
func GenerateAPIKey(prefix string) (string, error) {
	return GenerateRandomString(prefix+"_", APIKeyEntropyBytes, "base64url")
}

// DisplayPrefix returns the non-secret head of a key followed by "...".
func DisplayPrefix(apiKey string) string {
	if len(apiKey) < DisplayPrefixLength {
		return apiKey + truncationMarker
	}
	return apiKey[:DisplayPrefixLength] + truncationMarker
}
