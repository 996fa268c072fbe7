package hash

// Hasher defines one-way hashing and verification of plaintext secrets.
type Hasher interface {
	Hash(plain string) (string, error)
	Verify(plain, hashed string) (bool, error)
}

// Signer produces a keyed MAC over a short code so the code can be validated
// later without being stored in recoverable form.
type Signer interface {
	Sign(code string) string
}
