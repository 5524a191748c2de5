package password

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestEncodeDecode_RoundTrip(t *testing.T) {
	cases := []struct {
		name string
		hash EncodedHash
	}{
		{
			name: "pbkdf2",
			hash: EncodedHash{
				Algorithm: AlgorithmPBKDF2,
				Params:    []int{50_000, 64},
				Digest:    bytes.Repeat([]byte{0xab}, 64),
			},
		},
		{
			name: "scrypt",
			hash: EncodedHash{
				Algorithm: AlgorithmScrypt,
				Params:    []int{16_384, 8, 1, 64},
				Digest:    bytes.Repeat([]byte{0x01}, 64),
			},
		},
		{
			name: "sha512",
			hash: EncodedHash{
				Algorithm: AlgorithmSHA512,
				Digest:    bytes.Repeat([]byte{0xff}, 64),
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			encoded := Encode(tc.hash)
			decoded, err := Decode(encoded)
			if err != nil {
				t.Fatalf("decoding %q: %v", encoded, err)
			}
			if decoded.Algorithm != tc.hash.Algorithm {
				t.Errorf("algorithm: got %s, want %s", decoded.Algorithm, tc.hash.Algorithm)
			}
			if len(decoded.Params) != len(tc.hash.Params) {
				t.Fatalf("params: got %v, want %v", decoded.Params, tc.hash.Params)
			}
			for i, p := range tc.hash.Params {
				if decoded.Params[i] != p {
					t.Errorf("param %d: got %d, want %d", i, decoded.Params[i], p)
				}
			}
			if !bytes.Equal(decoded.Digest, tc.hash.Digest) {
				t.Error("digest does not survive round trip")
			}
		})
	}
}

func TestDecode_Malformed(t *testing.T) {
	cases := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"no leading delimiter", "pbkdf2$50000$64$abcd"},
		{"unknown tag", "$md5$abcd"},
		{"missing segments", "$pbkdf2$50000$abcd"},
		{"extra segments", "$sha512$1$abcd"},
		{"zero iterations", "$pbkdf2$0$64$abcd"},
		{"negative iterations", "$pbkdf2$-1$64$abcd"},
		{"zero key length", "$pbkdf2$50000$0$abcd"},
		{"non-numeric parameter", "$pbkdf2$lots$64$abcd"},
		{"invalid digest hex", "$sha512$zzzz"},
		{"truncated digest", "$sha512$abc"},
		{"empty digest", "$sha512$"},
		{"bare tag", "$pbkdf2"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Decode(tc.input)
			if !errors.Is(err, ErrMalformedHash) {
				t.Fatalf("expected ErrMalformedHash, got %v", err)
			}
		})
	}
}

func TestDecode_ErrorNeverContainsDigest(t *testing.T) {
	// The digest segment is the closest thing to secret material in a stored
	// hash. Decode failures must not echo it back.
	input := "$pbkdf2$0$64$deadbeefcafe"
	_, err := Decode(input)
	if err == nil {
		t.Fatal("expected decode error")
	}
	if strings.Contains(err.Error(), "deadbeefcafe") {
		t.Errorf("error message leaks digest: %q", err)
	}
}

func TestDetectAlgorithm(t *testing.T) {
	cases := []struct {
		input string
		want  Algorithm
	}{
		{"$2a$14$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy", AlgorithmBcrypt},
		{"$2b$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy", AlgorithmBcrypt},
		{"$argon2id$v=19$m=65536,t=3,p=4$c2FsdHNhbHQ$aGFzaGhhc2g", AlgorithmArgon2id},
		{"$pbkdf2$50000$2$abcd", AlgorithmPBKDF2},
		{"$scrypt$16384$8$1$2$abcd", AlgorithmScrypt},
		{"$sha512$abcd", AlgorithmSHA512},
	}

	for _, tc := range cases {
		got, err := DetectAlgorithm(tc.input)
		if err != nil {
			t.Errorf("DetectAlgorithm(%q): %v", tc.input, err)
			continue
		}
		if got != tc.want {
			t.Errorf("DetectAlgorithm(%q) = %s, want %s", tc.input, got, tc.want)
		}
	}

	if _, err := DetectAlgorithm("plaintext-not-a-hash"); !errors.Is(err, ErrMalformedHash) {
		t.Errorf("expected ErrMalformedHash for unrecognized input, got %v", err)
	}
}
