package file

import (
	"fmt"
	"os"
	"strings"

	"github.com/ioremap/wpmigrate/internal/core/domain"
)

// ReadPasswordFile returns the contents of path with a single trailing
// newline removed. Other whitespace is part of the password.
func ReadPasswordFile(path string) (string, error) {
	if path == "" {
		return "", fmt.Errorf("%w: empty password file path", domain.ErrConfiguration)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("%w: reading password file '%s': %w", domain.ErrConfiguration, path, err)
	}

	password := string(data)
	if p, ok := strings.CutSuffix(password, "\n"); ok {
		password = strings.TrimSuffix(p, "\r")
	}
	return password, nil
}
