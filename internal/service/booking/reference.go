package booking

import (
	"fmt"
	"math/rand/v2"
)

const (
	referencePrefix = "SKY"
	referenceMin    = 1000
	referenceMax    = 9999
)

// ReferenceGenerator returns a candidate booking reference. Candidates may
// collide; the registry rejects duplicates and the service asks again.
type ReferenceGenerator func() string

// RandomReference draws from SKY1000..SKY9999. The space holds 9000 values,
// so collisions become frequent once a few thousand bookings exist.
func RandomReference() string {
	return fmt.Sprintf("%s%d", referencePrefix, referenceMin+rand.IntN(referenceMax-referenceMin+1))
}
