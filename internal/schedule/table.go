// Marquee - Deterministic Daily Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package schedule

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
)

var (
	// ErrIncompleteWeek means the table does not define all seven weekly themes.
	ErrIncompleteWeek = errors.New("schedule: weekly themes must cover all 7 weekdays")

	// ErrInvalidKey means an event or override key is not a valid MM-DD or MM.
	ErrInvalidKey = errors.New("schedule: invalid date key")

	// ErrDuplicateKey means two rules of the same kind share a key.
	ErrDuplicateKey = errors.New("schedule: duplicate key")
)

// Table is a complete, validated rule set. Build one with Parse, Load or
// Default; the zero value is not usable.
type Table struct {
	Weekly         []Theme    `koanf:"weekly" json:"weekly"`
	Events         []Event    `koanf:"events" json:"events" validate:"dive"`
	Overrides      []Override `koanf:"overrides" json:"overrides" validate:"dive"`
	EventPoolSize  int        `koanf:"event_pool_size" json:"event_pool_size" validate:"gte=1,lte=10000"`
	WeeklyPoolSize int        `koanf:"weekly_pool_size" json:"weekly_pool_size" validate:"gte=1,lte=10000"`

	events    map[string]*Event
	overrides map[string]*Override
}

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func getValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		_ = validate.RegisterValidation("day_key", func(fl validator.FieldLevel) bool {
			return validDayKey(fl.Field().String())
		})
		_ = validate.RegisterValidation("event_key", func(fl validator.FieldLevel) bool {
			k := fl.Field().String()
			return validDayKey(k) || validMonthKey(k)
		})
	})
	return validate
}

// compile validates t and builds the lookup indexes Resolve relies on.
func (t *Table) compile() error {
	if len(t.Weekly) != 7 {
		return fmt.Errorf("%w: got %d", ErrIncompleteWeek, len(t.Weekly))
	}

	if err := getValidator().Struct(t); err != nil {
		return translateValidation(err)
	}
	for i := range t.Weekly {
		if err := getValidator().Struct(&t.Weekly[i]); err != nil {
			return fmt.Errorf("weekly[%d] (%s): %w", i, time.Weekday(i), translateValidation(err))
		}
	}

	events := make(map[string]*Event, len(t.Events))
	for i := range t.Events {
		e := &t.Events[i]
		if _, dup := events[e.Key]; dup {
			return fmt.Errorf("%w: event %q", ErrDuplicateKey, e.Key)
		}
		events[e.Key] = e
	}

	overrides := make(map[string]*Override, len(t.Overrides))
	for i := range t.Overrides {
		o := &t.Overrides[i]
		if _, dup := overrides[o.Key]; dup {
			return fmt.Errorf("%w: override %q", ErrDuplicateKey, o.Key)
		}
		overrides[o.Key] = o
	}

	t.events = events
	t.overrides = overrides
	return nil
}

func translateValidation(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		if fe.Tag() == "day_key" || fe.Tag() == "event_key" {
			return fmt.Errorf("%w: %s=%q", ErrInvalidKey, fe.Namespace(), fe.Value())
		}
		msgs = append(msgs, fmt.Sprintf("%s failed %s", fe.Namespace(), fe.Tag()))
	}
	return fmt.Errorf("schedule: invalid table: %s", strings.Join(msgs, "; "))
}

// Resolve returns the rule governing date. Precedence: override for the
// exact day, event for the exact day, event for the month, weekly theme.
func (t *Table) Resolve(date time.Time) Resolution {
	if t.events == nil || len(t.Weekly) != 7 {
		panic("schedule: Resolve called on an uncompiled table")
	}

	u := date.UTC()
	day := DayKey(u)
	month := MonthKey(u)
	res := Resolution{Date: time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)}

	if o, ok := t.overrides[day]; ok {
		name := o.Name
		if name == "" {
			name = DefaultOverrideName
		}
		res.Kind = KindManual
		res.MatchedKey = day
		res.Override = o
		res.Context = Context{Name: name, Description: o.Description}
		return res
	}

	for _, key := range []string{day, month} {
		if e, ok := t.events[key]; ok {
			res.Kind = KindEvent
			res.MatchedKey = key
			res.Theme = &e.Theme
			res.PoolSize = poolSizeOr(e.Theme.PoolSize, t.EventPoolSize)
			res.Context = Context{Name: e.Theme.Name, Description: e.Theme.Description}
			return res
		}
	}

	wd := u.Weekday()
	theme := &t.Weekly[wd]
	res.Kind = KindWeekly
	res.MatchedKey = strings.ToLower(wd.String())
	res.Theme = theme
	res.PoolSize = poolSizeOr(theme.PoolSize, t.WeeklyPoolSize)
	res.Context = Context{Name: theme.Name, Description: theme.Description}
	return res
}

// Stats returns the number of weekly, event and override rules.
func (t *Table) Stats() (weekly, events, overrides int) {
	return len(t.Weekly), len(t.Events), len(t.Overrides)
}

func poolSizeOr(size, fallback int) int {
	if size > 0 {
		return size
	}
	return fallback
}

// DayKey formats the UTC month and day of t as "MM-DD".
func DayKey(t time.Time) string {
	u := t.UTC()
	return fmt.Sprintf("%02d-%02d", int(u.Month()), u.Day())
}

// MonthKey formats the UTC month of t as "MM".
func MonthKey(t time.Time) string {
	return fmt.Sprintf("%02d", int(t.UTC().Month()))
}

// daysInMonth allows Feb 29 so leap-day rules are accepted.
var daysInMonth = [13]int{0, 31, 29, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}

func validMonthKey(k string) bool {
	if len(k) != 2 {
		return false
	}
	m, err := strconv.Atoi(k)
	return err == nil && m >= 1 && m <= 12
}

func validDayKey(k string) bool {
	if len(k) != 5 || k[2] != '-' || !validMonthKey(k[:2]) {
		return false
	}
	m, _ := strconv.Atoi(k[:2])
	d, err := strconv.Atoi(k[3:])
	return err == nil && d >= 1 && d <= daysInMonth[m]
}
