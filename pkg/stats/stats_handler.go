package stats

import (
	"errors"
	"net/http"
	"time"

	"github.com/pocketly/pocketly/internal/money"
	"github.com/pocketly/pocketly/internal/rest"
	"github.com/pocketly/pocketly/pkg/user"
	log "github.com/sirupsen/logrus"
)

type DailyStatsDTO struct {
	Date       time.Time          `json:"date"`
	Categories []CategoryStatsDTO `json:"categories"`
	Income     string             `json:"income"`
	Expense    string             `json:"expense"`
	Count      int                `json:"count"`
}

type CategoryStatsDTO struct {
	CategoryId int    `json:"categoryId"`
	Name       string `json:"name"`
	Type       string `json:"type"`
	Amount     string `json:"amount"`
	Count      int    `json:"count"`
}

type WeekStatsDTO struct {
	Week          string             `json:"week"`
	StartDate     time.Time          `json:"startDate"`
	EndDate       time.Time          `json:"endDate"`
	Days          []DailyStatsDTO    `json:"days"`
	Categories    []CategoryStatsDTO `json:"categories"`
	TotalIncome   string             `json:"totalIncome"`
	TotalExpense  string             `json:"totalExpense"`
	Balance       string             `json:"balance"`
	Count         int                `json:"count"`
	WeekStreak    int                `json:"weekStreak"`
	CurrentStreak int                `json:"currentStreak"`
	LongestStreak int                `json:"longestStreak"`
}

type StatsHandler struct {
	statsService     StatsService
	csvStatsRenderer StatsRenderer
}

func NewStatsHandler(statsService StatsService, csvStatsRenderer StatsRenderer) *StatsHandler {
	return &StatsHandler{statsService, csvStatsRenderer}
}

// GetWeeklyStats serves the week containing the date query parameter. Without a date the current
// week is used.
func (handler *StatsHandler) GetWeeklyStats(w http.ResponseWriter, r *http.Request) {
	var date time.Time
	if r.URL.Query().Get("date") != "" {
		var ok bool
		date, ok = rest.QueryTime(w, r, "date")
		if !ok {
			return
		}
	}
	stats, err := handler.statsService.GetWeekStats(r.Context(), date)
	if err != nil {
		if errors.Is(err, user.ErrNoUser) {
			rest.WriteError(w, http.StatusForbidden, "No user", "")
			return
		}
		log.Errorf("failed to get week stats: %v", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	if r.Header.Get("Accept") == "text/csv" {
		csv, err := handler.csvStatsRenderer.RenderStats(stats)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte(csv)); err != nil {
			log.Errorf("failed to write csv stats: %v", err)
		}
		return
	}
	rest.WriteJSON(w, http.StatusOK, convertToJsonResponse(stats))
}

func convertToJsonResponse(stats WeekStats) WeekStatsDTO {
	days := make([]DailyStatsDTO, 0, len(stats.Days))
	for _, day := range stats.Days {
		days = append(days, DailyStatsDTO{
			Date:       day.Date,
			Categories: categoryStatsToDTO(day.Categories),
			Income:     money.Format(day.Income),
			Expense:    money.Format(day.Expense),
			Count:      day.Count,
		})
	}
	return WeekStatsDTO{
		Week:          stats.Week.String(),
		StartDate:     stats.StartDate,
		EndDate:       stats.EndDate,
		Days:          days,
		Categories:    categoryStatsToDTO(stats.Categories),
		TotalIncome:   money.Format(stats.TotalIncome),
		TotalExpense:  money.Format(stats.TotalExpense),
		Balance:       money.Format(stats.Balance()),
		Count:         stats.Count,
		WeekStreak:    stats.WeekStreak,
		CurrentStreak: stats.CurrentStreak,
		LongestStreak: stats.LongestStreak,
	}
}

func categoryStatsToDTO(categories []CategoryStats) []CategoryStatsDTO {
	result := make([]CategoryStatsDTO, 0, len(categories))
	for _, c := range categories {
		result = append(result, CategoryStatsDTO{
			CategoryId: c.Category.Id,
			Name:       c.Category.Name,
			Type:       string(c.Category.Type),
			Amount:     money.Format(c.Amount),
			Count:      c.Count,
		})
	}
	return result
}
