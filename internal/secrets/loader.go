package secrets

import (
	"fmt"
	"os"
	"strings"
)

// Source describes how to load a credential value.
type Source struct {
	// Name is used in error messages to give more context about the secret.
	Name string
	// Value is an inline value provided via configuration, flags, or a
	// bound environment variable.
	Value string
	// File points to a file containing the value. When set it takes
	// precedence over Value.
	File string
}

// Load resolves the credential from the source, trimmed. It fails when
// neither File nor Value yield a usable value.
func Load(src Source) (string, error) {
	secret, ok, err := LoadOptional(src)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", fmt.Errorf("%s is not configured", name(src))
	}
	return secret, nil
}

// LoadOptional resolves like Load but reports plain absence as ok=false
// instead of an error. Provider sources use it to fall back to sample mode
// when no credentials are configured. A configured-but-unreadable or empty
// file is still an error: it points at a broken setup, not an absent one.
func LoadOptional(src Source) (string, bool, error) {
	value := strings.TrimSpace(src.Value)

	if file := strings.TrimSpace(src.File); file != "" {
		data, err := os.ReadFile(file)
		if err != nil {
			return "", false, fmt.Errorf("reading %s from file %q: %w", name(src), file, err)
		}
		value = strings.TrimSpace(string(data))
		if value == "" {
			return "", false, fmt.Errorf("%s file %q is empty", name(src), file)
		}
	}

	if value == "" {
		return "", false, nil
	}

	return value, true, nil
}

func name(src Source) string {
	if n := strings.TrimSpace(src.Name); n != "" {
		return n
	}
	return "secret"
}
