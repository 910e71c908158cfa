package message

import (
	"strings"
	"testing"
	"time"

	"mawazna/internal/core"
)

func TestFormatSubstitutesAllTokens(t *testing.T) {
	d := Data{
		OfficeName:  "مكتب النور",
		Date:        "2024-01-15",
		Cash:        core.Money{Cents: 10000},
		Network:     core.Money{Cents: 5000},
		Transfer:    core.Money{Cents: 0},
		Withdrawals: core.Money{Cents: 2500},
		DrawerCash:  core.Money{Cents: 12500},
		ClientName:  "Ali",
		Balance:     core.Money{Cents: -7550},
	}
	tpl := "{{office_name}} {{date}} {{cash}} {{network}} {{transfer}} " +
		"{{withdrawals}} {{drawer_total}} {{income_total}} {{client_name}} {{debt_balance}}"

	got := Format(tpl, d)
	want := "مكتب النور 2024-01-15 100 50 0 25 125 150 Ali -75.50"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
	if strings.Contains(got, "{{") {
		t.Fatalf("unsubstituted token remains: %q", got)
	}
}

func TestFormatDerivedIncomeTotal(t *testing.T) {
	got := Format("الدخل: {{income_total}}", Data{
		Cash:    core.Money{Cents: 10000},
		Network: core.Money{Cents: 5000},
	})
	if got != "الدخل: 150" {
		t.Fatalf("got %q", got)
	}
}

func TestFormatNoTokensPassThrough(t *testing.T) {
	tpl := "plain text, no tokens at all"
	if got := Format(tpl, Data{}); got != tpl {
		t.Fatalf("template altered: %q", got)
	}
	// idempotent: formatting the output again changes nothing
	if got := Format(Format(tpl, Data{}), Data{}); got != tpl {
		t.Fatalf("second pass altered template: %q", got)
	}
}

func TestFormatReplacesEveryOccurrence(t *testing.T) {
	got := Format("{{cash}}+{{cash}}+{{cash}}", Data{Cash: core.Money{Cents: 100}})
	if got != "1+1+1" {
		t.Fatalf("got %q", got)
	}
}

func TestFormatDefaults(t *testing.T) {
	got := Format("{{cash}}|{{client_name}}|{{date}}", Data{})
	today := time.Now().Format(core.DateLayout)
	if got != "0||"+today {
		t.Fatalf("got %q, want %q", got, "0||"+today)
	}
}

func TestFormatNoResubstitution(t *testing.T) {
	// a value containing token syntax must come through literally
	got := Format("{{client_name}}: {{cash}}", Data{
		ClientName: "{{cash}}",
		Cash:       core.Money{Cents: 500},
	})
	if got != "{{cash}}: 5" {
		t.Fatalf("replacement value was re-expanded: %q", got)
	}
}

func TestShareLink(t *testing.T) {
	link := ShareLink("", "+966 50-123", "مرحبا 150")
	if !strings.HasPrefix(link, "https://wa.me/96650123?text=") {
		t.Fatalf("unexpected link prefix: %q", link)
	}
	if strings.ContainsAny(strings.TrimPrefix(link, "https://wa.me/96650123?text="), " \n") {
		t.Fatalf("body not encoded: %q", link)
	}

	custom := ShareLink("https://api.whatsapp.com/send", "123", "hi")
	if !strings.HasPrefix(custom, "https://api.whatsapp.com/send/123?text=hi") {
		t.Fatalf("custom base ignored: %q", custom)
	}
}

func TestDefaultTemplatesFullySubstitute(t *testing.T) {
	st := core.DefaultState()
	rec := core.DailyRecord{
		ID: "r1", Date: "2024-02-01",
		Cash: core.Money{Cents: 100}, Network: core.Money{Cents: 200},
		Transfer: core.Money{Cents: 300}, Withdrawals: core.Money{Cents: 50},
		DrawerCash: core.Money{Cents: 550},
	}
	for name, tpl := range map[string]string{
		"daily":   st.Templates.Daily,
		"monthly": st.Templates.Monthly,
	} {
		out := Format(tpl, FromDailyRecord("Office", rec))
		if strings.Contains(out, "{{") {
			t.Fatalf("%s template left tokens: %q", name, out)
		}
	}
	out := Format(st.Templates.Debt, FromClient("Office", core.Client{Name: "Ali", Balance: core.Money{Cents: 100}}))
	if strings.Contains(out, "{{") {
		t.Fatalf("debt template left tokens: %q", out)
	}
}
