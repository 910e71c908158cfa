package core

import "time"

// DaySummary is one daily record projected into the monthly view.
type DaySummary struct {
	Record   DailyRecord
	Income   Money
	Variance Money
}

// MonthSummary aggregates all daily records of a specific year+month.
type MonthSummary struct {
	Year        int
	Month       int // 1-12
	Days        []DaySummary
	Cash        Money
	Network     Money
	Transfer    Money
	Withdrawals Money
	DrawerCash  Money
	Income      Money
	Variance    Money
}

// SummarizeMonth folds the records dated in the given year and month
// into totals, preserving insertion order in the day rows. Records with
// unparseable dates are skipped rather than failing the whole view.
func SummarizeMonth(records []DailyRecord, year, month int) MonthSummary {
	out := MonthSummary{Year: year, Month: month}
	for _, r := range records {
		d, err := time.Parse(DateLayout, r.Date)
		if err != nil {
			continue
		}
		if d.Year() != year || int(d.Month()) != month {
			continue
		}
		income := r.IncomeTotal()
		variance := r.Variance()
		out.Days = append(out.Days, DaySummary{Record: r, Income: income, Variance: variance})
		out.Cash.Cents += r.Cash.Cents
		out.Network.Cents += r.Network.Cents
		out.Transfer.Cents += r.Transfer.Cents
		out.Withdrawals.Cents += r.Withdrawals.Cents
		out.DrawerCash.Cents += r.DrawerCash.Cents
		out.Income.Cents += income.Cents
		out.Variance.Cents += variance.Cents
	}
	return out
}
