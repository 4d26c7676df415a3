package otpcode

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

const (
	min = 100000
	max = 999999
)

// Generate returns a uniformly distributed 6-digit decimal code in
// [100000, 999999]. It draws from crypto/rand; an exhausted entropy source
// is not recoverable, so it panics rather than returning an error.
func Generate() string {
	n, err := rand.Int(rand.Reader, big.NewInt(max-min+1))
	if err != nil {
		panic("otpcode: entropy source failed: " + err.Error())
	}
	return fmt.Sprintf("%06d", n.Int64()+min)
}
