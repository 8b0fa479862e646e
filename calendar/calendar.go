// Package calendar generates service-visit time slots in the workshop's
// local timezone and matches them against occupied calendar entries.
package calendar

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

var log = logrus.New()

const (
	// DisplayLayout is the user-facing date format.
	DisplayLayout = "02.01.2006 15:04"

	workDayStart = 8
	workDayEnd   = 18 // exclusive, last slot starts at 17:00

	horizonDays = 10
)

var weekdaysPL = map[time.Weekday]string{
	time.Monday:    "Poniedziałek",
	time.Tuesday:   "Wtorek",
	time.Wednesday: "Środa",
	time.Thursday:  "Czwartek",
	time.Friday:    "Piątek",
	time.Saturday:  "Sobota",
	time.Sunday:    "Niedziela",
}

var preferredDayNumbers = map[string]time.Weekday{
	"poniedziałek": time.Monday,
	"wtorek":       time.Tuesday,
	"środa":        time.Wednesday,
	"czwartek":     time.Thursday,
	"piątek":       time.Friday,
	"sobota":       time.Saturday,
	"niedziela":    time.Sunday,
}

var (
	dayMonthTimePattern = regexp.MustCompile(`^(\d{2})\.(\d{2})\s+(\d{2}):(\d{2})`)
	clockPattern        = regexp.MustCompile(`\d{2}:\d{2}`)
)

// Scheduler produces visit slots. The zero value is unusable, build one
// with New so the workshop timezone is loaded.
type Scheduler struct {
	Location *time.Location
	Logger   *logrus.Logger
	// Now is overridable for tests.
	Now func() time.Time
}

// New returns a Scheduler anchored to the Europe/Warsaw timezone.
func New(logger *logrus.Logger) (*Scheduler, error) {
	if logger == nil {
		logger = log
	}
	loc, err := time.LoadLocation("Europe/Warsaw")
	if err != nil {
		return nil, fmt.Errorf("calendar: load timezone: %w", err)
	}
	return &Scheduler{Location: loc, Logger: logger, Now: time.Now}, nil
}

func (s *Scheduler) now() time.Time {
	return s.Now().In(s.Location)
}

// AvailableSlots generates hourly slots for the next ten days starting
// tomorrow, working days only, excluding any slot already occupied.
func (s *Scheduler) AvailableSlots(occupied []time.Time) []time.Time {
	start := s.now().AddDate(0, 0, 1)
	start = time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, s.Location)

	var slots []time.Time
	for day := 0; day < horizonDays; day++ {
		date := start.AddDate(0, 0, day)
		if date.Weekday() == time.Saturday || date.Weekday() == time.Sunday {
			continue
		}
		for hour := workDayStart; hour < workDayEnd; hour++ {
			slot := time.Date(date.Year(), date.Month(), date.Day(), hour, 0, 0, 0, s.Location)
			if !IsOccupied(slot, occupied) {
				slots = append(slots, slot)
			}
		}
	}
	return slots
}

// SlotsAround returns hourly slots within the given range around the
// preferred time, restricted to 9:00-17:00, excluding occupied ones.
func (s *Scheduler) SlotsAround(preferred time.Time, hoursRange int, occupied []time.Time) []time.Time {
	preferred = preferred.In(s.Location)
	start := preferred.Add(-time.Duration(hoursRange) * time.Hour).Truncate(time.Hour)
	end := preferred.Add(time.Duration(hoursRange) * time.Hour)

	var slots []time.Time
	for current := start; !current.After(end); current = current.Add(time.Hour) {
		if current.Hour() < 9 || current.Hour() >= 17 {
			continue
		}
		if !IsOccupied(current, occupied) {
			slots = append(slots, current)
		}
	}
	return slots
}

// IsOccupied reports whether the slot collides with an occupied entry.
// Entries match on calendar date and hour, minutes are ignored.
func IsOccupied(slot time.Time, occupied []time.Time) bool {
	for _, o := range occupied {
		o = o.In(slot.Location())
		if slot.Year() == o.Year() && slot.Month() == o.Month() &&
			slot.Day() == o.Day() && slot.Hour() == o.Hour() {
			return true
		}
	}
	return false
}

// FormatSlot renders a slot as "Poniedziałek, 02.06.2025 09:00".
func FormatSlot(slot time.Time) string {
	return fmt.Sprintf("%s, %s", weekdaysPL[slot.Weekday()], slot.Format(DisplayLayout))
}

// FormatSlots renders a numbered list of slots for the chat reply.
func FormatSlots(slots []time.Time) []string {
	formatted := make([]string, 0, len(slots))
	for i, slot := range slots {
		formatted = append(formatted, fmt.Sprintf("%d. %s", i+1, FormatSlot(slot)))
	}
	return formatted
}

// ParsePreferredTime understands two shapes of user input: "DD.MM HH:MM"
// (this year's date) and a Polish weekday name with "HH:MM" (next such
// weekday; a week later when that time already passed today). It returns
// the zero time when the input matches neither.
func (s *Scheduler) ParsePreferredTime(input string) (time.Time, bool) {
	if m := dayMonthTimePattern.FindStringSubmatch(input); m != nil {
		parsed, err := time.ParseInLocation("2006.02.01 15:04",
			fmt.Sprintf("%d.%s.%s %s:%s", s.now().Year(), m[1], m[2], m[3], m[4]), s.Location)
		if err != nil {
			s.Logger.WithFields(logrus.Fields{"input": input, "error": err.Error()}).Debug("preferred time not parsed")
			return time.Time{}, false
		}
		return parsed, true
	}

	lowered := strings.ToLower(input)
	for name, weekday := range preferredDayNumbers {
		if !strings.Contains(lowered, name) {
			continue
		}
		clock := clockPattern.FindString(input)
		if clock == "" {
			continue
		}
		var hour, minute int
		if _, err := fmt.Sscanf(clock, "%d:%d", &hour, &minute); err != nil {
			continue
		}
		now := s.now()
		daysAhead := (int(weekday) - int(now.Weekday()) + 7) % 7
		if daysAhead == 0 && now.Hour() >= hour {
			daysAhead = 7
		}
		target := now.AddDate(0, 0, daysAhead)
		return time.Date(target.Year(), target.Month(), target.Day(), hour, minute, 0, 0, s.Location), true
	}
	return time.Time{}, false
}
