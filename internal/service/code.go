package service

import (
	"crypto/rand"
	"math/big"
	"strconv"
	"time"
)

// GenerateResetCode returns a 6-digit numeric code in [100000, 999999].
// Codes are scoped per email, so collisions across emails are harmless.
func GenerateResetCode() string {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		// fallback, still 6 digits
		return strconv.FormatInt(100000+time.Now().UnixNano()%900000, 10)
	}
	return strconv.FormatInt(100000+n.Int64(), 10)
}
