// Package message renders share messages from placeholder templates and
// composes WhatsApp deep links.
package message

import (
	"strings"
	"time"

	"mawazna/internal/core"
)

// Recognized placeholder tokens. Substitution is literal text
// replacement, all occurrences, in a single simultaneous pass.
const (
	TokenOfficeName  = "{{office_name}}"
	TokenDate        = "{{date}}"
	TokenCash        = "{{cash}}"
	TokenNetwork     = "{{network}}"
	TokenTransfer    = "{{transfer}}"
	TokenWithdrawals = "{{withdrawals}}"
	TokenDrawerTotal = "{{drawer_total}}"
	TokenIncomeTotal = "{{income_total}}"
	TokenClientName  = "{{client_name}}"
	TokenDebtBalance = "{{debt_balance}}"
)

// Data carries the values substituted into a template. Absent numeric
// fields render as 0, absent text fields as the empty string, and an
// empty Date as today in the application date format.
type Data struct {
	OfficeName  string
	Date        string
	Cash        core.Money
	Network     core.Money
	Transfer    core.Money
	Withdrawals core.Money
	DrawerCash  core.Money
	ClientName  string
	Balance     core.Money
}

// Format substitutes every recognized token in the template with its
// value from d. strings.Replacer scans the input once, so a replacement
// value that happens to contain token-like syntax is never re-expanded.
// Templates without recognized tokens pass through unchanged.
func Format(template string, d Data) string {
	date := d.Date
	if date == "" {
		date = time.Now().Format(core.DateLayout)
	}
	income := core.Money{Cents: d.Cash.Cents + d.Network.Cents + d.Transfer.Cents}

	r := strings.NewReplacer(
		TokenOfficeName, d.OfficeName,
		TokenDate, date,
		TokenCash, d.Cash.String(),
		TokenNetwork, d.Network.String(),
		TokenTransfer, d.Transfer.String(),
		TokenWithdrawals, d.Withdrawals.String(),
		TokenDrawerTotal, d.DrawerCash.String(),
		TokenIncomeTotal, income.String(),
		TokenClientName, d.ClientName,
		TokenDebtBalance, d.Balance.String(),
	)
	return r.Replace(template)
}

// FromDailyRecord builds substitution data for the daily template.
func FromDailyRecord(officeName string, rec core.DailyRecord) Data {
	return Data{
		OfficeName:  officeName,
		Date:        rec.Date,
		Cash:        rec.Cash,
		Network:     rec.Network,
		Transfer:    rec.Transfer,
		Withdrawals: rec.Withdrawals,
		DrawerCash:  rec.DrawerCash,
	}
}

// FromMonthSummary builds substitution data for the monthly template.
// The date token carries the year-month the summary covers.
func FromMonthSummary(officeName string, sum core.MonthSummary) Data {
	return Data{
		OfficeName:  officeName,
		Date:        monthLabel(sum.Year, sum.Month),
		Cash:        sum.Cash,
		Network:     sum.Network,
		Transfer:    sum.Transfer,
		Withdrawals: sum.Withdrawals,
		DrawerCash:  sum.DrawerCash,
	}
}

// FromClient builds substitution data for the debt template.
func FromClient(officeName string, c core.Client) Data {
	return Data{
		OfficeName: officeName,
		ClientName: c.Name,
		Balance:    c.Balance,
	}
}

func monthLabel(year, month int) string {
	return time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC).Format("2006-01")
}
