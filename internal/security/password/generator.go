package password

import (
	"crypto/rand"
	"math/big"
)

const (
	DefaultLength = 12

	Upper  = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	Lower  = "abcdefghijklmnopqrstuvwxyz"
	Digits = "0123456789"

	// Pool is every character a generated password may contain.
	Pool = Upper + Lower + Digits + Specials
)

// Generate draws length characters independently and uniformly from Pool.
// It does not guarantee every class is present; use GenerateStrong for that.
func Generate(length int) string {
	if length <= 0 {
		return ""
	}
	b := make([]byte, length)
	for i := range b {
		b[i] = pick(Pool)
	}
	return string(b)
}

// GenerateStrong places one character from each class, fills the rest from Pool
// and shuffles. Below 4 characters it falls back to Generate.
func GenerateStrong(length int) string {
	if length < MaxScore {
		return Generate(length)
	}
	b := make([]byte, length)
	b[0] = pick(Upper)
	b[1] = pick(Lower)
	b[2] = pick(Digits)
	b[3] = pick(Specials)
	for i := MaxScore; i < length; i++ {
		b[i] = pick(Pool)
	}
	shuffle(b)
	return string(b)
}

func pick(set string) byte {
	return set[randIntN(len(set))]
}

// shuffle is a Fisher-Yates pass so the forced characters don't sit at fixed positions.
func shuffle(b []byte) {
	for i := len(b) - 1; i > 0; i-- {
		j := randIntN(i + 1)
		b[i], b[j] = b[j], b[i]
	}
}

func randIntN(n int) int {
	v, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		// crypto/rand does not fail on supported platforms
		return 0
	}
	return int(v.Int64())
}
