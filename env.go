package sonar

import (
	"os"
)

// GetEnv returns the named environment variable, or defaultValue if it is
// not set
func GetEnv(name string, defaultValue string) string {
	value, ok := os.LookupEnv(name)
	if !ok {
		return defaultValue
	}
	return value
}
