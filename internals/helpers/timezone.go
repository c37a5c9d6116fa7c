package helper

import (
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"jbh_backend/internals/configs"
)

// All timetable math happens in the institution's local timezone (IST by
// default). This is the only place that zone is resolved.

var (
	classLocOnce sync.Once
	classLoc     *time.Location
)

func ClassLocation() *time.Location {
	classLocOnce.Do(func() {
		name := configs.ClassTimezone
		if name == "" {
			name = "Asia/Kolkata"
		}
		loc, err := time.LoadLocation(name)
		if err != nil {
			log.Printf("[ERROR] invalid CLASS_TIMEZONE %q, falling back to UTC: %v", name, err)
			loc = time.UTC
		}
		classLoc = loc
	})
	return classLoc
}

func NowLocal() time.Time {
	return time.Now().In(ClassLocation())
}

// LocalDayName returns the weekday name ("Monday"...) of t in class-local time.
func LocalDayName(t time.Time) string {
	return t.In(ClassLocation()).Weekday().String()
}

// LocalDayBounds returns [00:00:00, 23:59:59.999999999] of t's class-local day.
func LocalDayBounds(t time.Time) (time.Time, time.Time) {
	lt := t.In(ClassLocation())
	start := time.Date(lt.Year(), lt.Month(), lt.Day(), 0, 0, 0, 0, ClassLocation())
	end := start.Add(24*time.Hour - time.Nanosecond)
	return start, end
}

func SameLocalDay(a, b time.Time) bool {
	la, lb := a.In(ClassLocation()), b.In(ClassLocation())
	return la.Year() == lb.Year() && la.YearDay() == lb.YearDay()
}

// ParseLocalDate parses "YYYY-MM-DD" anchored at class-local midnight.
func ParseLocalDate(s string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, ClassLocation()), nil
}

// ProjectWallClock places a wall-clock "HH:MM" string onto the class-local
// calendar day of anchor. Used to compare a scheduled slot time against a
// concrete session start.
func ProjectWallClock(hhmm string, anchor time.Time) (time.Time, error) {
	wc, err := time.Parse("15:04", strings.TrimSpace(hhmm))
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid wall-clock time %q: %w", hhmm, err)
	}
	la := anchor.In(ClassLocation())
	return time.Date(la.Year(), la.Month(), la.Day(), wc.Hour(), wc.Minute(), 0, 0, ClassLocation()), nil
}
