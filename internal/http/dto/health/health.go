// Package health contiene DTOs de los probes.
package health

import "time"

type HealthResponse struct {
	Status     string            `json:"status"` // ok | degraded | unavailable
	Version    string            `json:"version,omitempty"`
	Store      string            `json:"store"`
	Durable    bool              `json:"durable"`
	Components map[string]string `json:"components"`
	Timestamp  time.Time         `json:"timestamp"`
}
