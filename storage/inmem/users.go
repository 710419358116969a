package inmemdb

import (
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// Authenticate returns the user whose email matches username and whose password matches.
func (db *DB) Authenticate(username, password string) (User, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	username = strings.ToLower(strings.TrimSpace(username))
	for _, usr := range db.t.users {
		if strings.ToLower(usr.Email) != username {
			continue
		}
		if bcrypt.CompareHashAndPassword(usr.PasswordHash, []byte(password)) != nil {
			return User{}, ErrNotFound
		}
		return usr, nil
	}
	return User{}, ErrNotFound
}

func (db *DB) GetUser(id int) (User, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()
	if usr, ok := db.t.users[id]; ok {
		return usr, nil
	}
	return User{}, ErrNotFound
}

// SaveRefreshToken registers a refresh token id for userID.
func (db *DB) SaveRefreshToken(tokenID string, userID int) {
	db.mu.Lock()
	defer db.mu.Unlock()
	db.t.refreshTokens[tokenID] = userID
}

// UseRefreshToken consumes a refresh token id: each one is valid once.
func (db *DB) UseRefreshToken(tokenID string) (int, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	userID, ok := db.t.refreshTokens[tokenID]
	if !ok {
		return 0, ErrNotFound
	}
	delete(db.t.refreshTokens, tokenID)
	return userID, nil
}
