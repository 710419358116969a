package event

import (
	"context"
	"net/http"
	"regexp"
	"strings"
	"sync"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"github.com/SotorivaXL/academic-event-manag-main/core"
)

var (
	// errors
	ErrEventHasDays = errors.New("the event still has days: delete its days first and try again")

	conflictRegex = regexp.MustCompile(`(?i)\b409\b|conflict|existing\s+days|has\s+days|children|foreign\s+key|constraint|cannot\s+delete`)
)

// Repository is the remote store of events and their days.
type Repository interface {
	ListEvents(ctx context.Context) ([]Event, error)
	GetEvent(ctx context.Context, id string) (Event, error)
	CreateEvent(ctx context.Context, ne NewEvent) (Event, error)
	UpdateEvent(ctx context.Context, id string, ue UpdateEvent) (Event, error)
	DeleteEvent(ctx context.Context, id string) error

	ListDays(ctx context.Context, eventID string) ([]Day, error)
	GetDay(ctx context.Context, eventID, dayID string) (Day, error)
	CreateDay(ctx context.Context, eventID string, nd NewDay) (Day, error)
	UpdateDay(ctx context.Context, eventID, dayID string, ud UpdateDay) (Day, error)
	DeleteDay(ctx context.Context, eventID, dayID string) error
}

// DaysError is returned by Service.Create when the event was created but some of its days were not.
// The returned Event is valid and carries the days that were created.
type DaysError struct {
	Errs []error
}

func (err DaysError) Error() string {
	msgs := make([]string, len(err.Errs))
	for i, e := range err.Errs {
		msgs[i] = e.Error()
	}
	return "creating event days: " + strings.Join(msgs, "; ")
}

type Service struct {
	repo       Repository
	validate   *validator.Validate
	translator ut.Translator
	logger     core.Logger
}

func NewService(repo Repository, validate *validator.Validate, translator ut.Translator, logger core.Logger) *Service {
	return &Service{repo: repo, validate: validate, translator: translator, logger: logger}
}

func (svc *Service) check(v interface{}) error {
	return core.NewFieldErrors(svc.validate.Struct(v), svc.translator)
}

// List returns every event with its days. An event whose days cannot be listed is kept with no days.
func (svc *Service) List(ctx context.Context) ([]Event, error) {
	events, err := svc.repo.ListEvents(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "listing events")
	}

	var wg sync.WaitGroup
	for i := range events {
		wg.Add(1)
		go func(ev *Event) {
			defer wg.Done()
			days, err := svc.repo.ListDays(ctx, ev.ID)
			if err != nil {
				svc.logger.Warn("listing days of event "+ev.ID, err)
				ev.Days = []Day{}
				return
			}
			ev.Days = days
		}(&events[i])
	}
	wg.Wait()
	return events, nil
}

// Get returns an event with its days; a failure listing days leaves the event with no days.
func (svc *Service) Get(ctx context.Context, id string) (Event, error) {
	ev, err := svc.repo.GetEvent(ctx, id)
	if err != nil {
		if core.APIStatus(err) == http.StatusNotFound {
			return Event{}, core.NewNotFoundError("event", id)
		}
		return Event{}, errors.Wrap(err, "getting event")
	}
	days, err := svc.repo.ListDays(ctx, id)
	if err != nil {
		svc.logger.Warn("listing days of event "+id, err)
		days = []Day{}
	}
	ev.Days = days
	return ev, nil
}

// Create validates the event and every declared day before any network call, creates the event, then
// its days one by one. Day failures do not abort the remaining days; they are reported as a *DaysError.
func (svc *Service) Create(ctx context.Context, ne NewEvent) (Event, error) {
	ne.Clean()
	if err := svc.check(ne); err != nil {
		return Event{}, err
	}
	if err := CheckCapacity(ne.Capacity, newDayCapacities(ne.Days)...); err != nil {
		return Event{}, err
	}

	ev, err := svc.repo.CreateEvent(ctx, ne)
	if err != nil {
		return Event{}, errors.Wrap(err, "creating event")
	}
	ev.Days = make([]Day, 0, len(ne.Days))

	var dayErrs []error
	for _, nd := range ne.Days {
		day, err := svc.repo.CreateDay(ctx, ev.ID, nd)
		if err != nil {
			svc.logger.Error("creating day of event "+ev.ID, err)
			dayErrs = append(dayErrs, err)
			continue
		}
		ev.Days = append(ev.Days, day)
	}
	if len(dayErrs) > 0 {
		return ev, &DaysError{Errs: dayErrs}
	}
	return ev, nil
}

// Update checks the resulting capacity against the supplied days (or the current ones) before writing.
// Days are managed through the day methods; the current days are kept on the returned event.
func (svc *Service) Update(ctx context.Context, current Event, ue UpdateEvent) (Event, error) {
	ue.Title = core.CleanString(ue.Title)
	ue.Location = core.CleanString(ue.Location)
	if err := svc.check(ue); err != nil {
		return Event{}, err
	}

	capacity := current.Capacity
	if ue.Capacity != 0 {
		capacity = ue.Capacity
	}
	caps := dayCapacities(current.Days)
	if ue.Days != nil {
		caps = newDayCapacities(ue.Days)
	}
	if err := CheckCapacity(capacity, caps...); err != nil {
		return Event{}, err
	}

	ev, err := svc.repo.UpdateEvent(ctx, current.ID, ue)
	if err != nil {
		return Event{}, errors.Wrap(err, "updating event")
	}
	ev.Days = current.Days
	return ev, nil
}

// Delete removes the event. A refusal because the event still has days becomes ErrEventHasDays.
func (svc *Service) Delete(ctx context.Context, id string) error {
	err := svc.repo.DeleteEvent(ctx, id)
	if err == nil {
		return nil
	}
	if core.APIStatus(err) == http.StatusConflict || (core.APIStatus(err) != 0 && conflictRegex.MatchString(err.Error())) {
		return ErrEventHasDays
	}
	return errors.Wrap(err, "deleting event")
}

func (svc *Service) ListDays(ctx context.Context, eventID string) ([]Day, error) {
	days, err := svc.repo.ListDays(ctx, eventID)
	return days, errors.Wrap(err, "listing event days")
}

func (svc *Service) GetDay(ctx context.Context, eventID, dayID string) (Day, error) {
	day, err := svc.repo.GetDay(ctx, eventID, dayID)
	if err != nil {
		if core.APIStatus(err) == http.StatusNotFound {
			return Day{}, core.NewNotFoundError("event day", dayID)
		}
		return Day{}, errors.Wrap(err, "getting event day")
	}
	return day, nil
}

// CreateDay rejects a day whose capacity exceeds the event's before reaching the backend.
func (svc *Service) CreateDay(ctx context.Context, ev Event, nd NewDay) (Day, error) {
	if ev.ID == "" {
		return Day{}, core.NewNotFoundError("event", "")
	}
	nd.Room = core.CleanString(nd.Room)
	if err := svc.check(nd); err != nil {
		return Day{}, err
	}
	if err := CheckCapacity(ev.Capacity, nd.Capacity); err != nil {
		return Day{}, err
	}
	day, err := svc.repo.CreateDay(ctx, ev.ID, nd)
	return day, errors.Wrap(err, "creating event day")
}

func (svc *Service) UpdateDay(ctx context.Context, ev Event, dayID string, ud UpdateDay) (Day, error) {
	if _, ok := ev.Day(dayID); !ok {
		return Day{}, core.NewNotFoundError("event day", dayID)
	}
	ud.Room = core.CleanString(ud.Room)
	if err := svc.check(ud); err != nil {
		return Day{}, err
	}
	if ud.Capacity != 0 {
		if err := CheckCapacity(ev.Capacity, ud.Capacity); err != nil {
			return Day{}, err
		}
	}
	day, err := svc.repo.UpdateDay(ctx, ev.ID, dayID, ud)
	return day, errors.Wrap(err, "updating event day")
}

func (svc *Service) DeleteDay(ctx context.Context, eventID, dayID string) error {
	return errors.Wrap(svc.repo.DeleteDay(ctx, eventID, dayID), "deleting event day")
}
