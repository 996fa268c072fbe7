package hash

import "errors"

type StubHasher struct {
	HashFunc   func(plain string) (string, error)
	VerifyFunc func(plain, hashed string) (bool, error)
}

func (h *StubHasher) Hash(plain string) (string, error) {
	if h.HashFunc == nil {
		return "", errors.New("Hash not implemented by stub")
	}
	return h.HashFunc(plain)
}

func (h *StubHasher) Verify(plain, hashed string) (bool, error) {
	if h.VerifyFunc == nil {
		return false, errors.New("Verify not implemented by stub")
	}
	return h.VerifyFunc(plain, hashed)
}

type StubSigner struct {
	SignFunc func(code string) string
}

func (s *StubSigner) Sign(code string) string {
	if s.SignFunc == nil {
		return "signed:" + code
	}
	return s.SignFunc(code)
}
