package pkg

import "os"

// Getenv returns the value of the environment variable or defaultValue when it
// is not set. An empty but present variable is returned as is.
func Getenv(key, defaultValue string) string {
	value, ok := os.LookupEnv(key)
	if !ok {
		return defaultValue
	}
	return value
}
