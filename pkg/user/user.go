package user

import (
	"fmt"
	"strings"
	"time"
)

type User struct {
	Id          int
	Uid         string
	Username    string
	DisplayName string
	Settings    Settings
}

type Settings struct {
	Timezone     string
	WeekFirstDay time.Weekday
	// Currency is the ISO 4217 code used for new wallets.
	Currency string
}

// Location resolves the configured timezone, falling back to UTC.
func (s Settings) Location() *time.Location {
	if s.Timezone == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(s.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// ParseWeekday accepts English day names ("monday", "Sun") case-insensitively.
func ParseWeekday(name string) (time.Weekday, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if len(name) >= 3 {
		for day := time.Sunday; day <= time.Saturday; day++ {
			dayName := strings.ToLower(day.String())
			if name == dayName || name == dayName[:3] {
				return day, nil
			}
		}
	}
	return time.Monday, fmt.Errorf("unknown weekday: %q", name)
}
