package inmemdb

func (db *DB) GetClient() (Client, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()
	if db.t.client == nil {
		return Client{}, ErrNotFound
	}
	return *db.t.client, nil
}

// CreateClient sets the tenant's client; there is at most one.
func (db *DB) CreateClient(c Client) (Client, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	if db.t.client != nil {
		return Client{}, ErrConflict
	}
	c.ID = db.t.nextID()
	db.t.client = &c
	return c, nil
}

func (db *DB) UpdateClient(c Client) (Client, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	if db.t.client == nil {
		return Client{}, ErrNotFound
	}
	c.ID = db.t.client.ID
	db.t.client = &c
	return c, nil
}
