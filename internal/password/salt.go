package password

import (
	"crypto/rand"
	"crypto/sha512"
	"encoding/hex"
	"fmt"
)

// saltBytes is the amount of random input folded into each generated salt.
const saltBytes = 24

// GenerateSalt produces a salt for externally salted algorithms: the hex of
// SHA-512 over the deployment pepper concatenated with fresh random bytes.
// The pepper is a config secret that never reaches the database, so a leaked
// users table alone is not enough to start cracking.
//
// A salt is generated once at credential creation and regenerated only on
// password change.
func GenerateSalt(pepper string) (string, error) {
	buf := make([]byte, saltBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generating salt: %w", err)
	}

	sum := sha512.Sum512(append([]byte(pepper), buf...))
	return hex.EncodeToString(sum[:]), nil
}
