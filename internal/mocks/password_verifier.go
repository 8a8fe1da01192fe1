package mocks

import "golang.org/x/crypto/bcrypt"

// MockPasswordVerifier implements auth.PasswordVerifier for testing.
type MockPasswordVerifier struct {
	// ShouldSucceed is the result when CompareFn is nil
	ShouldSucceed bool

	// CompareFn overrides the default behaviour
	CompareFn func(hashedPassword, password string) error

	// Arguments of the most recent call
	CompareCalledWith struct {
		HashedPassword string
		Password       string
	}

	CompareCallCount int
}

// Compare implements auth.PasswordVerifier. A failed comparison returns the
// same error bcrypt reports for a mismatch.
func (m *MockPasswordVerifier) Compare(hashedPassword, password string) error {
	m.CompareCalledWith.HashedPassword = hashedPassword
	m.CompareCalledWith.Password = password
	m.CompareCallCount++

	if m.CompareFn != nil {
		return m.CompareFn(hashedPassword, password)
	}
	if m.ShouldSucceed {
		return nil
	}
	return bcrypt.ErrMismatchedHashAndPassword
}
