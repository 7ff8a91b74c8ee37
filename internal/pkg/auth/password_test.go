package auth

import "testing"

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("s3cret")
	if err != nil {
		t.Fatal(err)
	}
	if hash == "s3cret" {
		t.Fatal("hash must not equal the plaintext")
	}

	if !CheckPassword(hash, "s3cret") {
		t.Error("expected the set password to verify")
	}
	if CheckPassword(hash, "S3cret") {
		t.Error("case-variant password must not verify")
	}
	if CheckPassword(hash, "") {
		t.Error("empty password must not verify")
	}
}

func TestHashPassword_FreshSaltPerCall(t *testing.T) {
	h1, err := HashPassword("same-input")
	if err != nil {
		t.Fatal(err)
	}
	h2, err := HashPassword("same-input")
	if err != nil {
		t.Fatal(err)
	}
	if h1 == h2 {
		t.Error("two hashes of the same password must differ (fresh salt)")
	}
	if !CheckPassword(h1, "same-input") || !CheckPassword(h2, "same-input") {
		t.Error("both hashes must verify the original password")
	}
}

func TestCheckPassword_MalformedHash(t *testing.T) {
	if CheckPassword("", "anything") {
		t.Error("empty hash must not verify")
	}
	if CheckPassword("not-a-bcrypt-hash", "anything") {
		t.Error("malformed hash must not verify")
	}
}
