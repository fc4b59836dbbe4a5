package instance

import "github.com/mt-arl/kairosMIxFront/pkg/env"

// GetID returns the process instance identifier used to tag startup logs.
func GetID() string {
	if id := env.Get("KAIROSMIX_INSTANCE_ID", ""); id != "" {
		return id
	}
	return env.Get("DYNO", "local")
}
