package inmemdb

import (
	"sort"
	"strings"

	"github.com/pmezard/go-difflib/difflib"
)

// fuzzyRatio is the minimum similarity between the query and a name word for a typo tolerant match.
const fuzzyRatio = 0.75

func similarity(a, b string) float64 {
	return difflib.NewMatcher(strings.Split(a, ""), strings.Split(b, "")).Ratio()
}

func (s Student) matches(query string) bool {
	if query == "" {
		return true
	}
	name := strings.ToLower(s.Name)
	if strings.Contains(name, query) || strings.Contains(s.CPF, query) || strings.Contains(strings.ToLower(s.RA), query) {
		return true
	}
	for _, word := range strings.Fields(name) {
		if similarity(word, query) >= fuzzyRatio {
			return true
		}
	}
	return false
}

// SearchStudents returns one page (1-based) of the students matching query, ordered by name, and the
// number of matches. A size below 1 puts every match on the first page.
func (db *DB) SearchStudents(query string, page, size int) ([]Student, int) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	query = strings.ToLower(strings.TrimSpace(query))
	found := make([]Student, 0)
	for _, s := range db.t.students {
		if s.matches(query) {
			found = append(found, s)
		}
	}
	sort.Slice(found, func(i, j int) bool {
		if found[i].Name != found[j].Name {
			return found[i].Name < found[j].Name
		}
		return found[i].ID < found[j].ID
	})

	if page < 1 {
		page = 1
	}
	if size < 1 {
		size = len(found)
	}
	start := (page - 1) * size
	if start >= len(found) {
		return []Student{}, len(found)
	}
	end := start + size
	if end > len(found) {
		end = len(found)
	}
	return found[start:end], len(found)
}

func (db *DB) GetStudent(id int64) (Student, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()
	if s, ok := db.t.students[id]; ok {
		return s, nil
	}
	return Student{}, ErrNotFound
}

// CreateStudent refuses a CPF already registered with ErrConflict.
func (db *DB) CreateStudent(s Student) (Student, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	for _, other := range db.t.students {
		if other.CPF == s.CPF {
			return Student{}, ErrConflict
		}
	}
	s.ID = db.t.nextID()
	if db.t.client != nil {
		s.ClientID = db.t.client.ID
	}
	db.t.students[s.ID] = s
	return s, nil
}

func (db *DB) UpdateStudent(s Student) (Student, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	if _, ok := db.t.students[s.ID]; !ok {
		return Student{}, ErrNotFound
	}
	for _, other := range db.t.students {
		if other.ID != s.ID && other.CPF == s.CPF {
			return Student{}, ErrConflict
		}
	}
	db.t.students[s.ID] = s
	return s, nil
}

func (db *DB) DeleteStudent(id int64) error {
	db.mu.Lock()
	defer db.mu.Unlock()
	if _, ok := db.t.students[id]; !ok {
		return ErrNotFound
	}
	delete(db.t.students, id)
	return nil
}
