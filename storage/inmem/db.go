package inmemdb

import (
	"sync"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/crypto/bcrypt"
)

var (
	// errors
	ErrNotFound = errors.New("not found")
	ErrConflict = errors.New("conflict")
)

// SeedUser is a user created with a plain text password.
type SeedUser struct {
	Name     string
	Email    string
	Password string
	Role     string
}

// Seed is the initial content of a DB. Ids are assigned in order, starting at 1.
type Seed struct {
	Users        []SeedUser
	Client       *Client
	Events       []Event
	Days         []EventDay
	Students     []Student
	Enrollments  []Enrollment
	PasswordCost int // bcrypt cost; 0 means bcrypt.DefaultCost
}

type tables struct {
	users         map[int]User
	events        map[int64]Event
	days          map[int64]EventDay
	students      map[int64]Student
	enrollments   map[int64]Enrollment
	client        *Client
	refreshTokens map[string]int // token id -> user id
	seq           int64
}

func (t *tables) nextID() int64 {
	t.seq++
	return t.seq
}

func (t *tables) clone() *tables {
	c := &tables{
		users:         make(map[int]User, len(t.users)),
		events:        make(map[int64]Event, len(t.events)),
		days:          make(map[int64]EventDay, len(t.days)),
		students:      make(map[int64]Student, len(t.students)),
		enrollments:   make(map[int64]Enrollment, len(t.enrollments)),
		refreshTokens: make(map[string]int, len(t.refreshTokens)),
		seq:           t.seq,
	}
	for k, v := range t.users {
		c.users[k] = v
	}
	for k, v := range t.events {
		c.events[k] = v
	}
	for k, v := range t.days {
		c.days[k] = v
	}
	for k, v := range t.students {
		c.students[k] = v
	}
	for k, v := range t.enrollments {
		c.enrollments[k] = v
	}
	for k, v := range t.refreshTokens {
		c.refreshTokens[k] = v
	}
	if t.client != nil {
		cl := *t.client
		c.client = &cl
	}
	return c
}

// DB is the backend state of the mock API. Every method is safe for concurrent use.
type DB struct {
	mu      sync.RWMutex
	initial *tables
	t       *tables
	now     func() time.Time
}

// New builds a DB from seed. Reset returns it to exactly this state.
func New(seed Seed) (*DB, error) {
	cost := seed.PasswordCost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}

	t := &tables{
		users:         make(map[int]User),
		events:        make(map[int64]Event),
		days:          make(map[int64]EventDay),
		students:      make(map[int64]Student),
		enrollments:   make(map[int64]Enrollment),
		refreshTokens: make(map[string]int),
	}
	for _, su := range seed.Users {
		hash, err := bcrypt.GenerateFromPassword([]byte(su.Password), cost)
		if err != nil {
			return nil, errors.Wrap(err, "hashing seed password")
		}
		id := int(t.nextID())
		t.users[id] = User{ID: id, Name: su.Name, Email: su.Email, Status: "active", Role: su.Role, Roles: []string{su.Role}, PasswordHash: hash}
	}
	if seed.Client != nil {
		cl := *seed.Client
		cl.ID = t.nextID()
		t.client = &cl
	}

	// seed records reference each other by position (1-based) in their slice
	eventIDs := make(map[int64]int64)
	for i, ev := range seed.Events {
		ev.ID = t.nextID()
		eventIDs[int64(i+1)] = ev.ID
		t.events[ev.ID] = ev
	}
	for _, d := range seed.Days {
		d.ID = t.nextID()
		d.EventID = eventIDs[d.EventID]
		t.days[d.ID] = d
	}
	studentIDs := make(map[int64]int64)
	for i, s := range seed.Students {
		s.ID = t.nextID()
		studentIDs[int64(i+1)] = s.ID
		t.students[s.ID] = s
	}
	for _, e := range seed.Enrollments {
		e.ID = t.nextID()
		e.EventID = eventIDs[e.EventID]
		e.StudentID = studentIDs[e.StudentID]
		if e.QRCode == "" {
			e.QRCode = qrCode(e.ID)
		}
		t.enrollments[e.ID] = e
	}

	return &DB{initial: t, t: t.clone(), now: time.Now}, nil
}

// Reset drops every change made since New.
func (db *DB) Reset() {
	db.mu.Lock()
	defer db.mu.Unlock()
	db.t = db.initial.clone()
}
