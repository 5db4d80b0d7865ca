package stats

import (
	"bytes"
	"encoding/csv"
	"strconv"

	"github.com/pocketly/pocketly/internal/money"
	log "github.com/sirupsen/logrus"
)

type StatsRenderer interface {
	RenderStats(stats WeekStats) (string, error)
}

type CsvStatsRendererImpl struct {
}

func NewCsvStatsRenderer() *CsvStatsRendererImpl {
	return &CsvStatsRendererImpl{}
}

// RenderStats writes one row per day with an amount column per category, followed by the week
// totals and the streak counters.
func (t *CsvStatsRendererImpl) RenderStats(stats WeekStats) (string, error) {
	header := make([]string, 0, len(stats.Categories)+4)
	header = append(header, stats.Week.String())
	for _, categoryStats := range stats.Categories {
		header = append(header, categoryStats.Category.Name)
	}
	header = append(header, "Income", "Expense", "Count")

	data := make([][]string, 0, len(stats.Days)+5)
	data = append(data, header)
	for _, day := range stats.Days {
		row := make([]string, 0, len(header))
		row = append(row, day.Date.Format("02/01/2006"))
		for _, categoryStats := range day.Categories {
			row = append(row, money.Format(categoryStats.Amount))
		}
		row = append(row, money.Format(day.Income), money.Format(day.Expense), strconv.Itoa(day.Count))
		data = append(data, row)
	}

	total := make([]string, 0, len(header))
	total = append(total, "Total")
	for _, categoryStats := range stats.Categories {
		total = append(total, money.Format(categoryStats.Amount))
	}
	total = append(total, money.Format(stats.TotalIncome), money.Format(stats.TotalExpense), strconv.Itoa(stats.Count))
	data = append(data,
		total,
		[]string{"Balance", money.Format(stats.Balance())},
		[]string{"Week streak", strconv.Itoa(stats.WeekStreak)},
		[]string{"Current streak", strconv.Itoa(stats.CurrentStreak)},
		[]string{"Longest streak", strconv.Itoa(stats.LongestStreak)},
	)

	var b bytes.Buffer
	writer := csv.NewWriter(&b)
	for _, row := range data {
		if err := writer.Write(row); err != nil {
			log.Errorf("Error writing to csv: %v", err)
			return "", err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		log.Errorf("Error writing to csv: %v", err)
		return "", err
	}

	return b.String(), nil
}
