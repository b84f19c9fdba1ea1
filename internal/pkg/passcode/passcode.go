package passcode

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strconv"
)

// Length is the number of digits in a generated passcode.
const Length = 5

// Generate returns a fresh passcode of exactly Length digits, uniform over
// [10000, 99999]. The lower bound keeps the first digit nonzero so every
// value prints at full width without padding.
func Generate() (string, error) {
	low := int64(1)
	for i := 1; i < Length; i++ {
		low *= 10
	}
	// 9*low values in [low, 10*low).
	n, err := rand.Int(rand.Reader, big.NewInt(9*low))
	if err != nil {
		return "", fmt.Errorf("generate passcode: %w", err)
	}
	return strconv.FormatInt(low+n.Int64(), 10), nil
}
