package auth

import "testing"

func TestHashAndVerifyPassword(t *testing.T) {
	t.Parallel()

	digest, err := HashPassword("correct horse battery staple")
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}
	if digest == "correct horse battery staple" {
		t.Fatalf("digest must not equal the plaintext")
	}

	if !VerifyPassword("correct horse battery staple", digest) {
		t.Fatalf("expected digest to verify against its own plaintext")
	}
	if VerifyPassword("wrong password", digest) {
		t.Fatalf("expected mismatched plaintext to fail verification")
	}
}

func TestHashPassword_SaltRandomization(t *testing.T) {
	t.Parallel()

	first, err := HashPassword("secret1")
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}
	second, err := HashPassword("secret1")
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}

	if first == second {
		t.Fatalf("two hashes of the same password must differ")
	}
	if !VerifyPassword("secret1", first) || !VerifyPassword("secret1", second) {
		t.Fatalf("both digests must still verify against the password")
	}
}

func TestVerifyPassword_MalformedDigest(t *testing.T) {
	t.Parallel()

	if VerifyPassword("anything", "not-a-bcrypt-digest") {
		t.Fatalf("malformed digest must verify as false, not panic or succeed")
	}
	if VerifyPassword("anything", "") {
		t.Fatalf("empty digest must verify as false")
	}
}
