// Package state implements the mutation operations over AppState
// snapshots as pure reducers: every operation takes the current
// snapshot and returns a new one sharing no slices with its input.
// Callers own persistence as a separate effect after each transition.
package state

import "mawazna/internal/core"

// Outcome reports whether an id-targeting operation found its target.
// The snapshot is returned unchanged on NotFound.
type Outcome int

const (
	Applied Outcome = iota
	NotFound
)

func (o Outcome) String() string {
	if o == Applied {
		return "applied"
	}
	return "not_found"
}

// Login flips the logged-in flag and merges the email and optional
// mobile into the profile. Credentials are never verified or stored.
func Login(s core.AppState, email, mobile string) core.AppState {
	next := s.Clone()
	next.IsLoggedIn = true
	next.Profile.Email = email
	if mobile != "" {
		next.Profile.Mobile = mobile
	}
	return next
}

// Logout clears the logged-in flag and nothing else.
func Logout(s core.AppState) core.AppState {
	next := s.Clone()
	next.IsLoggedIn = false
	return next
}

// AddDailyRecord appends a fully-formed record to the end of the
// sequence. The caller is responsible for assigning a fresh unique id.
func AddDailyRecord(s core.AppState, r core.DailyRecord) core.AppState {
	next := s.Clone()
	next.DailyRecords = append(next.DailyRecords, r)
	return next
}

// DeleteDailyRecord removes the record with the given id, preserving
// the order of the rest.
func DeleteDailyRecord(s core.AppState, id string) (core.AppState, Outcome) {
	idx := -1
	for i, r := range s.DailyRecords {
		if r.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return s, NotFound
	}
	next := s.Clone()
	next.DailyRecords = append(next.DailyRecords[:idx], next.DailyRecords[idx+1:]...)
	return next, Applied
}

// AddClient appends a fully-formed client account to the end of the
// clients sequence.
func AddClient(s core.AppState, c core.Client) core.AppState {
	next := s.Clone()
	next.Clients = append(next.Clients, c.Clone())
	return next
}

// DeleteClient removes the client and its entire ledger. Transactions
// are discarded with the client; ids are never reused.
func DeleteClient(s core.AppState, id string) (core.AppState, Outcome) {
	idx := -1
	for i, c := range s.Clients {
		if c.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return s, NotFound
	}
	next := s.Clone()
	next.Clients = append(next.Clients[:idx], next.Clients[idx+1:]...)
	return next, Applied
}

// AddDebtTransaction appends the transaction to the client's ledger and
// moves the balance by the signed amount in the same step, keeping
// balance == initial + sum(amounts) after every call. An unknown
// clientID leaves the snapshot untouched and reports NotFound.
func AddDebtTransaction(s core.AppState, clientID string, tx core.DebtTransaction) (core.AppState, Outcome) {
	idx := -1
	for i, c := range s.Clients {
		if c.ID == clientID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return s, NotFound
	}
	next := s.Clone()
	c := &next.Clients[idx]
	c.Transactions = append(c.Transactions, tx)
	c.Balance.Cents += tx.Amount.Cents
	return next, Applied
}

// UpdateProfile replaces the profile wholesale.
func UpdateProfile(s core.AppState, p core.UserProfile) core.AppState {
	next := s.Clone()
	next.Profile = p
	return next
}

// UpdateTemplates replaces the message templates wholesale.
func UpdateTemplates(s core.AppState, t core.MessageTemplates) core.AppState {
	next := s.Clone()
	next.Templates = t
	return next
}
