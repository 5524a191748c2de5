package password

import (
	"crypto/sha512"
	"errors"
	"testing"

	"golang.org/x/crypto/bcrypt"
	"golang.org/x/crypto/pbkdf2"
)

// testHasher returns a Hasher for the given algorithm with a cheap bcrypt
// cost so the bcrypt cases don't dominate test runtime.
func testHasher(alg Algorithm) *Hasher {
	return NewHasher(alg, WithBcryptCost(bcrypt.MinCost))
}

func TestHashVerify_AllAlgorithms(t *testing.T) {
	const pass = "abcdeEF1234579"
	const salt = "0a1b2c3d4e5f60718293a4b5c6d7e8f9"

	for _, alg := range []Algorithm{
		AlgorithmBcrypt, AlgorithmArgon2id, AlgorithmPBKDF2, AlgorithmScrypt, AlgorithmSHA512,
	} {
		t.Run(string(alg), func(t *testing.T) {
			h := testHasher(alg)

			stored, err := h.Hash(pass, salt)
			if err != nil {
				t.Fatalf("Hash: %v", err)
			}

			ok, err := h.Verify(stored, salt, pass)
			if err != nil {
				t.Fatalf("Verify: %v", err)
			}
			if !ok {
				t.Error("correct password rejected")
			}

			ok, err = h.Verify(stored, salt, "abcdeEF1234578")
			if err != nil {
				t.Fatalf("Verify (wrong password): %v", err)
			}
			if ok {
				t.Error("wrong password accepted")
			}
		})
	}
}

func TestHash_RequiresSaltForExternallySalted(t *testing.T) {
	for _, alg := range []Algorithm{AlgorithmPBKDF2, AlgorithmScrypt, AlgorithmSHA512} {
		if _, err := testHasher(alg).Hash("hunter22", ""); err == nil {
			t.Errorf("%s: expected error for empty salt", alg)
		}
	}

	// Self-salting algorithms must not care.
	for _, alg := range []Algorithm{AlgorithmBcrypt, AlgorithmArgon2id} {
		if _, err := testHasher(alg).Hash("hunter22", ""); err != nil {
			t.Errorf("%s: unexpected error without salt: %v", alg, err)
		}
	}
}

func TestVerify_AlgorithmAgility(t *testing.T) {
	// A credential hashed while pbkdf2 was the default must keep verifying
	// after the deployment switches its default to argon2id.
	const pass = "correct horse battery staple"
	const salt = "feedfacefeedface"

	old := testHasher(AlgorithmPBKDF2)
	stored, err := old.Hash(pass, salt)
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}

	current := testHasher(AlgorithmArgon2id)
	ok, err := current.Verify(stored, salt, pass)
	if err != nil {
		t.Fatalf("Verify under new default: %v", err)
	}
	if !ok {
		t.Error("pbkdf2 hash no longer verifies after default changed to argon2id")
	}
}

func TestVerify_UsesEmbeddedParameters(t *testing.T) {
	// Simulate a record created when the iteration count was lower than
	// today's constant. Verification must re-derive with the recorded count.
	const pass = "legacy-password"
	const salt = "00ff00ff00ff00ff"
	const legacyIterations = 1_000

	key := pbkdf2.Key(normalize(pass), []byte(salt), legacyIterations, 64, sha512.New)
	stored := Encode(EncodedHash{
		Algorithm: AlgorithmPBKDF2,
		Params:    []int{legacyIterations, 64},
		Digest:    key,
	})

	ok, err := testHasher(AlgorithmPBKDF2).Verify(stored, salt, pass)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if !ok {
		t.Error("hash with legacy iteration count rejected")
	}
}

func TestVerify_UnicodeNormalization(t *testing.T) {
	// U+00E9 (precomposed) vs U+0065 U+0301 (decomposed) are the same
	// password to the user and must hash identically.
	const composed = "café"
	const decomposed = "café"
	const salt = "0123456789abcdef"

	h := testHasher(AlgorithmPBKDF2)
	stored, err := h.Hash(composed, salt)
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}

	ok, err := h.Verify(stored, salt, decomposed)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if !ok {
		t.Error("decomposed form of the same password rejected")
	}
}

func TestVerify_MalformedRecord(t *testing.T) {
	h := testHasher(AlgorithmArgon2id)

	for _, stored := range []string{
		"",
		"not-a-hash",
		"$pbkdf2$0$64$abcd",
		"$argon2id$v=19$garbage",
		"$argon2id$v=19$m=0,t=0,p=0$c2FsdA$aGFzaA",
	} {
		if _, err := h.Verify(stored, "salt", "whatever"); !errors.Is(err, ErrMalformedHash) {
			t.Errorf("Verify(%q): expected ErrMalformedHash, got %v", stored, err)
		}
	}
}

func TestParseAlgorithm(t *testing.T) {
	for _, s := range []string{"bcrypt", "argon2id", "pbkdf2", "scrypt", "sha512"} {
		if _, err := ParseAlgorithm(s); err != nil {
			t.Errorf("ParseAlgorithm(%q): %v", s, err)
		}
	}
	if _, err := ParseAlgorithm("md5"); err == nil {
		t.Error("expected error for unsupported algorithm")
	}
	if _, err := ParseAlgorithm(""); err == nil {
		t.Error("expected error for empty algorithm")
	}
}

func TestConstantTimeEqual(t *testing.T) {
	if !ConstantTimeEqual([]byte("same"), []byte("same")) {
		t.Error("equal slices reported unequal")
	}
	if ConstantTimeEqual([]byte("same"), []byte("sbme")) {
		t.Error("unequal slices reported equal")
	}
	if ConstantTimeEqual([]byte("short"), []byte("a longer value")) {
		t.Error("differing lengths reported equal")
	}
	if !ConstantTimeEqual(nil, []byte{}) {
		t.Error("nil and empty must compare equal")
	}
}

func TestGenerateSalt(t *testing.T) {
	a, err := GenerateSalt("pepper")
	if err != nil {
		t.Fatalf("GenerateSalt: %v", err)
	}
	b, err := GenerateSalt("pepper")
	if err != nil {
		t.Fatalf("GenerateSalt: %v", err)
	}

	// hex(SHA-512) is 128 characters.
	if len(a) != 128 {
		t.Errorf("salt length: got %d, want 128", len(a))
	}
	if a == b {
		t.Error("two generated salts are identical")
	}
}
