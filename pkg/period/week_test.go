package period

import (
	"reflect"
	"testing"
	"time"
)

var location, _ = time.LoadLocation("Europe/Warsaw")

func TestWeekNumberFromDate(t *testing.T) {
	type args struct {
		date         time.Time
		weekStartDay time.Weekday
	}

	sundayStart := time.Date(2024, time.December, 29, 0, 0, 0, 0, time.UTC)
	sundayYear, sundayWeek := sundayStart.ISOWeek()

	saturdayStart := time.Date(2024, time.December, 28, 0, 0, 0, 0, time.UTC)
	saturdayYear, saturdayWeek := saturdayStart.ISOWeek()

	tests := []struct {
		name string
		args args
		want WeekNumber
	}{
		{
			name: "default week start day is Monday",
			args: args{time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), time.Monday},
			want: WeekNumber{Year: 2025, Week: 1},
		},
		{
			name: "week start day is Sunday - include previous Sunday",
			args: args{time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), time.Sunday},
			want: WeekNumber{Year: sundayYear, Week: sundayWeek},
		},
		{
			name: "week start day is Saturday - include previous Saturday",
			args: args{time.Date(2025, 1, 3, 0, 0, 0, 0, time.UTC), time.Saturday},
			want: WeekNumber{Year: saturdayYear, Week: saturdayWeek},
		},
		{
			name: "invalid week start day defaults to Monday",
			args: args{time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC), time.Weekday(42)},
			want: WeekNumber{Year: 2025, Week: 5},
		},
		{
			name: "first week of the year is the week containing January 4th",
			args: args{time.Date(2025, 12, 29, 0, 0, 0, 0, location), time.Monday},
			want: WeekNumber{Year: 2026, Week: 1},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := WeekNumberFromDate(tt.args.date, tt.args.weekStartDay); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("WeekNumberFromDate() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestWeekNumberFromString(t *testing.T) {
	tests := []struct {
		input   string
		want    WeekNumber
		wantErr bool
	}{
		{"2025-W03", WeekNumber{Year: 2025, Week: 3}, false},
		{"2026-W01", WeekNumber{Year: 2026, Week: 1}, false},
		{"2025-03", WeekNumber{}, true},
		{"2025", WeekNumber{}, true},
		{"abcd-W01", WeekNumber{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := WeekNumberFromString(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("WeekNumberFromString(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("WeekNumberFromString(%q) = %v, want %v", tt.input, got, tt.want)
			}
			if !tt.wantErr && got.String() != tt.input {
				t.Errorf("String() = %q, want %q", got.String(), tt.input)
			}
		})
	}
}

func TestWeekDays(t *testing.T) {
	// Thursday, evening in Warsaw
	date := time.Date(2025, time.January, 9, 21, 15, 0, 0, location)

	days := WeekDays(date, time.Monday)

	if len(days) != 7 {
		t.Fatalf("WeekDays() returned %d days, want 7", len(days))
	}
	want := time.Date(2025, time.January, 6, 0, 0, 0, 0, location)
	for i, day := range days {
		if !day.Equal(want.AddDate(0, 0, i)) {
			t.Errorf("day %d = %v, want %v", i, day, want.AddDate(0, 0, i))
		}
	}

	sundayWeek := WeekDays(date, time.Sunday)
	if !sundayWeek[0].Equal(time.Date(2025, time.January, 5, 0, 0, 0, 0, location)) {
		t.Errorf("Sunday week starts at %v", sundayWeek[0])
	}
}

func TestEndOfDay(t *testing.T) {
	// day of the DST switch in Warsaw is only 23 hours long
	date := time.Date(2025, time.March, 30, 12, 0, 0, 0, location)

	got := EndOfDay(date)

	want := time.Date(2025, time.March, 30, 23, 59, 59, int(time.Second-time.Nanosecond), location)
	if !got.Equal(want) {
		t.Errorf("EndOfDay() = %v, want %v", got, want)
	}
}
