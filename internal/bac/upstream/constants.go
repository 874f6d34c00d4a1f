package upstream

import "time"

const (
	// DefaultTimeout bounds every upstream round-trip
	DefaultTimeout = 30 * time.Second

	// maxBodyBytes caps how much of an upstream body is read
	maxBodyBytes = 16 << 20

	// IDPrefix is the system prefix publication ids may carry
	IDPrefix = "alma"
)
