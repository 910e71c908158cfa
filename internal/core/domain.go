package core

import (
	"errors"
	"strings"
)

const (
	// Creditor means the office owed the client money when the account
	// was opened; Debtor means the client owed the office.
	Creditor DebtType = "CREDITOR"
	Debtor   DebtType = "DEBTOR"
)

// DateLayout is the application-wide format for record dates.
const DateLayout = "2006-01-02"

type (
	// DebtType tags how a client account started. Informational only:
	// it never constrains the sign of the running balance.
	DebtType string

	// UserProfile is the office identity and contact record.
	UserProfile struct {
		Email        string `json:"email"`
		Mobile       string `json:"mobile"`
		OfficeName   string `json:"officeName"`
		OfficeMobile string `json:"officeMobile"`
		WhatsApp     string `json:"whatsapp"`
		Address      string `json:"address,omitempty"`
		LogoURL      string `json:"logoUrl,omitempty"`
	}

	// MessageTemplates holds the three share-message templates with
	// their placeholder tokens.
	MessageTemplates struct {
		Daily   string `json:"daily"`
		Monthly string `json:"monthly"`
		Debt    string `json:"debt"`
	}

	// DailyRecord is an immutable cash-drawer reconciliation entry.
	// Created once, never mutated, only deletable as a whole.
	DailyRecord struct {
		ID          string `json:"id"`
		Date        string `json:"date"` // DateLayout
		Cash        Money  `json:"cash"`
		Network     Money  `json:"network"`
		Transfer    Money  `json:"transfer"`
		Withdrawals Money  `json:"withdrawals"`
		DrawerCash  Money  `json:"drawerCash"`
		Note        string `json:"note,omitempty"`
	}

	// DebtTransaction is an immutable ledger entry. Positive amounts
	// increase the client balance, negative amounts decrease it.
	DebtTransaction struct {
		ID     string `json:"id"`
		Amount Money  `json:"amount"`
		Date   string `json:"date"`
		Note   string `json:"note"`
	}

	// Client is a debt/credit account with an append-only ledger.
	// Balance must always equal the balance at creation plus the sum
	// of all transaction amounts.
	Client struct {
		ID           string            `json:"id"`
		Name         string            `json:"name"`
		Phone        string            `json:"phone"`
		Balance      Money             `json:"balance"`
		Transactions []DebtTransaction `json:"transactions"`
		InitialType  DebtType          `json:"initialType"`
	}

	// AppState is the root aggregate and the single persisted unit.
	AppState struct {
		Profile      UserProfile      `json:"profile"`
		Templates    MessageTemplates `json:"templates"`
		DailyRecords []DailyRecord    `json:"dailyRecords"`
		Clients      []Client         `json:"clients"`
		IsLoggedIn   bool             `json:"isLoggedIn"`
	}
)

var (
	ErrInvalidAmount = errors.New("invalid amount")
	ErrEmptyName     = errors.New("empty name")
	ErrEmptyEmail    = errors.New("empty email")
	ErrEmptyPassword = errors.New("empty password")
	ErrInvalidDate   = errors.New("invalid date")
)

// IncomeTotal is cash + network + transfer for one reconciliation entry.
func (r DailyRecord) IncomeTotal() Money {
	return Money{Cents: r.Cash.Cents + r.Network.Cents + r.Transfer.Cents}
}

// Variance is the counted drawer cash minus the computed expectation
// (income minus withdrawals). Zero means the drawer reconciles.
func (r DailyRecord) Variance() Money {
	expected := r.IncomeTotal().Cents - r.Withdrawals.Cents
	return Money{Cents: r.DrawerCash.Cents - expected}
}

// LedgerSum returns the sum of all transaction amounts in the ledger.
func (c Client) LedgerSum() Money {
	var total int64
	for _, t := range c.Transactions {
		total += t.Amount.Cents
	}
	return Money{Cents: total}
}

func (dt DebtType) IsValid() bool {
	return dt == Creditor || dt == Debtor
}

// Validate checks a client record for presentation-layer feedback.
// The state layer itself accepts any well-typed input.
func (c Client) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return ErrEmptyName
	}
	if !c.InitialType.IsValid() {
		return errors.New("invalid client type")
	}
	return nil
}

// Clone returns a deep copy sharing no slices with the receiver.
func (s AppState) Clone() AppState {
	out := s
	if s.DailyRecords != nil {
		out.DailyRecords = make([]DailyRecord, len(s.DailyRecords))
		copy(out.DailyRecords, s.DailyRecords)
	}
	if s.Clients != nil {
		out.Clients = make([]Client, len(s.Clients))
		for i, c := range s.Clients {
			out.Clients[i] = c.Clone()
		}
	}
	return out
}

// Clone returns a deep copy of the client including its ledger.
func (c Client) Clone() Client {
	out := c
	if c.Transactions != nil {
		out.Transactions = make([]DebtTransaction, len(c.Transactions))
		copy(out.Transactions, c.Transactions)
	}
	return out
}

// DefaultState is the well-defined fallback used when no prior state
// exists or the stored payload cannot be parsed: logged out, no records,
// no clients, placeholder profile, templates carrying every token.
func DefaultState() AppState {
	return AppState{
		Profile: UserProfile{
			OfficeName: "مكتبي",
			Email:      "office@example.com",
		},
		Templates: MessageTemplates{
			Daily: "*{{office_name}}*\n" +
				"موازنة يوم {{date}}\n" +
				"الكاش: {{cash}}\n" +
				"الشبكة: {{network}}\n" +
				"التحويل: {{transfer}}\n" +
				"السحبيات: {{withdrawals}}\n" +
				"إجمالي الدرج: {{drawer_total}}\n" +
				"إجمالي الدخل: {{income_total}}",
			Monthly: "*{{office_name}}*\n" +
				"ملخص شهر {{date}}\n" +
				"الكاش: {{cash}}\n" +
				"الشبكة: {{network}}\n" +
				"التحويل: {{transfer}}\n" +
				"السحبيات: {{withdrawals}}\n" +
				"إجمالي الدخل: {{income_total}}",
			Debt: "*{{office_name}}*\n" +
				"العميل: {{client_name}}\n" +
				"رصيد الدين: {{debt_balance}}\n" +
				"بتاريخ {{date}}",
		},
		DailyRecords: []DailyRecord{},
		Clients:      []Client{},
		IsLoggedIn:   false,
	}
}
