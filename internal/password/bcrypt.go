package password

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// bcryptCost is the default bcrypt work factor. 2^14 rounds takes roughly a
// second on current server hardware, which is what login latency budgets for.
const bcryptCost = 14

// hashBcrypt produces a bcrypt hash in its native self-describing format
// ($2a$<cost>$<salt+digest>). bcrypt generates and embeds its own salt.
func hashBcrypt(raw []byte, cost int) (string, error) {
	hash, err := bcrypt.GenerateFromPassword(raw, cost)
	if err != nil {
		return "", fmt.Errorf("hashing with bcrypt: %w", err)
	}
	return string(hash), nil
}

// verifyBcrypt checks an attempt against a stored bcrypt hash. The cost and
// salt come out of the stored hash itself, and the library's comparison is
// constant time internally.
func verifyBcrypt(stored string, raw []byte) bool {
	return bcrypt.CompareHashAndPassword([]byte(stored), raw) == nil
}
