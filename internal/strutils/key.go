package strutils

import (
	"fmt"
	"strings"
)

// Characters that are not allowed in realtime database path segments
const FORBIDDEN_KEY_CHARACTERS = ".$#[]/"

const MAX_KEY_LENGTH = 768

// ValidateKey checks that key can be used as a single path segment in the backing store
func ValidateKey(key string) error {
	if key == "" {
		return fmt.Errorf("key is empty")
	}
	if len(key) > MAX_KEY_LENGTH {
		return fmt.Errorf("key is too long. length: %d", len(key))
	}
	for _, char := range key {
		if strings.ContainsRune(FORBIDDEN_KEY_CHARACTERS, char) {
			return fmt.Errorf("invalid character in key. input: '%.50s'", key)
		}
		if char < 0x20 || char == 0x7f {
			return fmt.Errorf("control character in key. input: '%.50q'", key)
		}
	}
	return nil
}
