package inmemdb

import "sort"

func (db *DB) ListEvents() []Event {
	db.mu.RLock()
	defer db.mu.RUnlock()
	events := make([]Event, 0, len(db.t.events))
	for _, ev := range db.t.events {
		events = append(events, ev)
	}
	sort.Slice(events, func(i, j int) bool { return events[i].ID < events[j].ID })
	return events
}

func (db *DB) GetEvent(id int64) (Event, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()
	if ev, ok := db.t.events[id]; ok {
		return ev, nil
	}
	return Event{}, ErrNotFound
}

func (db *DB) CreateEvent(ev Event) Event {
	db.mu.Lock()
	defer db.mu.Unlock()
	ev.ID = db.t.nextID()
	if db.t.client != nil {
		ev.ClientID = db.t.client.ID
	}
	db.t.events[ev.ID] = ev
	return ev
}

// UpdateEvent stores ev in place of the event with the same id.
func (db *DB) UpdateEvent(ev Event) (Event, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	if _, ok := db.t.events[ev.ID]; !ok {
		return Event{}, ErrNotFound
	}
	db.t.events[ev.ID] = ev
	return ev, nil
}

// DeleteEvent refuses with ErrConflict while the event still has days. Its enrollments go with it.
func (db *DB) DeleteEvent(id int64) error {
	db.mu.Lock()
	defer db.mu.Unlock()
	if _, ok := db.t.events[id]; !ok {
		return ErrNotFound
	}
	for _, d := range db.t.days {
		if d.EventID == id {
			return ErrConflict
		}
	}
	delete(db.t.events, id)
	for eid, e := range db.t.enrollments {
		if e.EventID == id {
			delete(db.t.enrollments, eid)
		}
	}
	return nil
}

func (db *DB) ListDays(eventID int64) ([]EventDay, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()
	if _, ok := db.t.events[eventID]; !ok {
		return nil, ErrNotFound
	}
	days := make([]EventDay, 0)
	for _, d := range db.t.days {
		if d.EventID == eventID {
			days = append(days, d)
		}
	}
	sort.Slice(days, func(i, j int) bool {
		if days[i].Date != days[j].Date {
			return days[i].Date < days[j].Date
		}
		if days[i].StartTime != days[j].StartTime {
			return days[i].StartTime < days[j].StartTime
		}
		return days[i].ID < days[j].ID
	})
	return days, nil
}

func (db *DB) GetDay(eventID, dayID int64) (EventDay, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()
	if d, ok := db.t.days[dayID]; ok && d.EventID == eventID {
		return d, nil
	}
	return EventDay{}, ErrNotFound
}

func (db *DB) CreateDay(d EventDay) (EventDay, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	if _, ok := db.t.events[d.EventID]; !ok {
		return EventDay{}, ErrNotFound
	}
	d.ID = db.t.nextID()
	db.t.days[d.ID] = d
	return d, nil
}

func (db *DB) UpdateDay(d EventDay) (EventDay, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	if cur, ok := db.t.days[d.ID]; !ok || cur.EventID != d.EventID {
		return EventDay{}, ErrNotFound
	}
	db.t.days[d.ID] = d
	return d, nil
}

func (db *DB) DeleteDay(eventID, dayID int64) error {
	db.mu.Lock()
	defer db.mu.Unlock()
	if d, ok := db.t.days[dayID]; !ok || d.EventID != eventID {
		return ErrNotFound
	}
	delete(db.t.days, dayID)
	return nil
}
