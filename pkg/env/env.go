// Package env reads ambient process variables that sit outside the
// MEDIPAY_ config tree, such as platform-injected PORT and LOG_FORMAT.
package env

import (
	"os"
	"strings"
)

// Get returns the trimmed value of the variable, or the fallback when it
// is unset or blank.
func Get(key, fallback string) string {
	if val := strings.TrimSpace(os.Getenv(key)); val != "" {
		return val
	}
	return fallback
}
