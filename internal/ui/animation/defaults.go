package animation

import "time"

// DefaultConfig returns a one second fade between full and half opacity.
func DefaultConfig() Config {
	return Config{
		Period:     2 * time.Second,
		Frame:      50 * time.Millisecond,
		MinOpacity: 0.5,
		MaxOpacity: 1.0,
	}
}
