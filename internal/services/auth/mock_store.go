package auth

// MockStore is an in-memory auth store for testing.
type MockStore struct {
	passwords map[string]string
}

func NewMockStore() *MockStore {
	return &MockStore{passwords: make(map[string]string)}
}

func (m *MockStore) SetPassword(account string, password string) error {
	m.passwords[account] = password
	return nil
}

func (m *MockStore) GetPassword(account string) (string, error) {
	password, ok := m.passwords[account]
	if !ok {
		return "", ErrPasswordNotFound
	}
	return password, nil
}

func (m *MockStore) DeletePassword(account string) error {
	if _, ok := m.passwords[account]; !ok {
		return ErrPasswordNotFound
	}
	delete(m.passwords, account)
	return nil
}
