package utils

import "time"

// Now returns the current UTC time truncated to microseconds, the finest
// precision every store keeps, so values read back compare equal.
func Now() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}
