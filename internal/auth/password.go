package auth

import "golang.org/x/crypto/bcrypt"

// PasswordHasher wraps bcrypt with a fixed cost and keeps a precomputed dummy
// hash so failed lookups can burn the same amount of work as a real
// verification.
type PasswordHasher struct {
	cost      int
	dummyHash string
}

// NewPasswordHasher builds a hasher. Costs below 12 are raised to 12.
func NewPasswordHasher(cost int) (*PasswordHasher, error) {
	if cost < 12 {
		cost = 12
	}
	dummy, err := bcrypt.GenerateFromPassword([]byte("timing-equalizer"), cost)
	if err != nil {
		return nil, err
	}
	return &PasswordHasher{cost: cost, dummyHash: string(dummy)}, nil
}

// Hash hashes a plaintext password with the configured cost.
func (h *PasswordHasher) Hash(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// Verify reports whether the password matches the stored hash.
func (h *PasswordHasher) Verify(hashed, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(password)) == nil
}

// VerifyDummy runs a comparison against the dummy hash and discards the
// result. Called when no user record exists, so that the wall-clock time of
// "unknown email" matches "wrong password" and account existence cannot be
// probed through latency.
func (h *PasswordHasher) VerifyDummy(password string) {
	_ = bcrypt.CompareHashAndPassword([]byte(h.dummyHash), []byte(password))
}

// Cost returns the configured bcrypt cost.
func (h *PasswordHasher) Cost() int {
	return h.cost
}
