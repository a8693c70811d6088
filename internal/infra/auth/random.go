package auth

import (
	"crypto/rand"
	"encoding/base64"

	"github.com/pkg/errors"
)

const tokenEntropyBytes = 32

// randomToken returns n random bytes encoded as unpadded base64url.
func randomToken(n int) (string, error) {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return "", errors.Wrap(err, "read random bytes")
	}

	return base64.RawURLEncoding.EncodeToString(buf), nil
}
