package calculation

import "time"

// nowFunc returns the current time (override in tests for determinism).
// Used to derive ages from birth dates.
var nowFunc = time.Now

// SetNowFunc overrides the time provider (use only in tests).
func SetNowFunc(f func() time.Time) { nowFunc = f }
