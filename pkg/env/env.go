package env

import "os"

// Get reads an environment variable, falling back when it is unset or empty.
// Used for knobs read outside the envconfig-managed configuration, like the
// log output format.
func Get(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}
