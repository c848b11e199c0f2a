package registry

import (
	"crypto/rand"
	"math/big"
	"strings"
)

const (
	// CodeAlphabet is the full upper-case alphanumeric set; every character
	// is drawn independently and uniformly from it.
	CodeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

	DefaultCodeLength = 6
)

// Generator produces random visit codes. It makes no uniqueness guarantee;
// the lifecycle engine tolerates collisions by resolving validation to the
// first matching row in scan order.
type Generator struct {
	length int
}

func NewGenerator(length int) Generator {
	if length <= 0 {
		length = DefaultCodeLength
	}
	return Generator{length: length}
}

func (g Generator) Length() int {
	return g.length
}

func (g Generator) Generate() (string, error) {
	max := big.NewInt(int64(len(CodeAlphabet)))

	var builder strings.Builder
	builder.Grow(g.length)

	for i := 0; i < g.length; i++ {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		builder.WriteByte(CodeAlphabet[n.Int64()])
	}

	return builder.String(), nil
}
