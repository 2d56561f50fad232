package reports

import (
	"sort"

	"church_backend/internal/models"
)

// mergeStrategy decides how the records of a special service category are reported.
type mergeStrategy int

const (
	// mergeByDate folds every record sharing a calendar date into one entry and,
	// across a period, into a single average.
	mergeByDate mergeStrategy = iota
	// listEach reports every record on its own with the church it belongs to.
	listEach
)

type specialCategory struct {
	category models.SpecialServiceCategory
	strategy mergeStrategy
}

// Seminars are never merged: each one is a distinct event of a distinct church.
var specialCategories = []specialCategory{
	{category: models.SpecialGCK, strategy: mergeByDate},
	{category: models.SpecialHomeCaringFellowship, strategy: mergeByDate},
	{category: models.SpecialSeminar, strategy: listEach},
}

func filterCategory(records []models.SpecialServiceRecord, category models.SpecialServiceCategory) []models.SpecialServiceRecord {
	out := make([]models.SpecialServiceRecord, 0, len(records))
	for _, r := range records {
		if r.Category == category {
			out = append(out, r)
		}
	}
	return out
}

// mergeSpecialByDate sums adults, youths and children per calendar date, oldest first.
func mergeSpecialByDate(records []models.SpecialServiceRecord) []models.SpecialServiceEntry {
	index := make(map[string]int)
	entries := make([]models.SpecialServiceEntry, 0)
	for _, r := range records {
		day := civilDay(r.Date)
		key := day.Format(models.DateLayout)
		i, ok := index[key]
		if !ok {
			entries = append(entries, models.SpecialServiceEntry{Date: models.ReportDate(day)})
			i = len(entries) - 1
			index[key] = i
		}
		entries[i].Adults += r.Adults
		entries[i].Youths += r.Youths
		entries[i].Children += r.Children
		entries[i].Total += r.Total()
	}
	sortEntries(entries)
	return entries
}

// listSpecial maps every record to its own entry, oldest first.
func listSpecial(records []models.SpecialServiceRecord) []models.SpecialServiceEntry {
	entries := make([]models.SpecialServiceEntry, 0, len(records))
	for _, r := range records {
		churchID := r.ChurchID
		entries = append(entries, models.SpecialServiceEntry{
			Date:       models.ReportDate(civilDay(r.Date)),
			Adults:     r.Adults,
			Youths:     r.Youths,
			Children:   r.Children,
			Total:      r.Total(),
			ChurchID:   &churchID,
			ChurchName: r.ChurchName,
		})
	}
	sortEntries(entries)
	return entries
}

// averageSpecial averages a category over every record of a period. The total is
// computed from the combined sum so rounding is applied once.
func averageSpecial(records []models.SpecialServiceRecord) models.SpecialAverage {
	n := divisor(len(records))
	var a, y, c int
	for _, r := range records {
		a += r.Adults
		y += r.Youths
		c += r.Children
	}
	return models.SpecialAverage{
		Services: len(records),
		A:        ceilDiv(a, n),
		Y:        ceilDiv(y, n),
		C:        ceilDiv(c, n),
		T:        ceilDiv(a+y+c, n),
	}
}

func sortEntries(entries []models.SpecialServiceEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Date.Time().Before(entries[j].Date.Time())
	})
}
