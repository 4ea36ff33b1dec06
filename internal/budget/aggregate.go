package budget

import "time"

// SumForRange sums spending between start and end inclusive. Entries
// tagged as income never count, regardless of range.
func SumForRange(txns []Transaction, start, end time.Time) float64 {
	var sum float64
	for _, t := range txns {
		if t.IsIncome() {
			continue
		}
		if t.Date.Before(start) || t.Date.After(end) {
			continue
		}
		sum += t.Amount
	}
	return sum
}

// SumForDay sums spending inside one local-day window. The caller
// supplies the UTC bounds of the day (see timeutil.DayBoundsUTC) so
// the same window is used everywhere a "today" figure is produced.
func SumForDay(txns []Transaction, dayStart, dayEnd time.Time) float64 {
	return SumForRange(txns, dayStart, dayEnd)
}
