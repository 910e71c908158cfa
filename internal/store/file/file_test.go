package file

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"mawazna/internal/core"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	s, err := New(filepath.Join(t.TempDir(), "state.json"))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	st, err := s.Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if st.IsLoggedIn || len(st.DailyRecords) != 0 {
		t.Fatalf("expected default state, got %+v", st)
	}
}

func TestSaveLoadRoundtrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	s, err := New(path)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	st := core.DefaultState()
	st.IsLoggedIn = true
	st.Profile.OfficeName = "مكتب النور"
	st.DailyRecords = append(st.DailyRecords, core.DailyRecord{
		ID: "r1", Date: "2024-01-01", Cash: core.Money{Cents: 15000},
	})
	st.Clients = append(st.Clients, core.Client{
		ID: "c1", Name: "Ali", Balance: core.Money{Cents: -500},
		Transactions: []core.DebtTransaction{{ID: "t1", Amount: core.Money{Cents: -500}, Date: "2024-01-02"}},
		InitialType:  core.Creditor,
	})

	if err := s.Save(context.Background(), st); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := s.Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !got.IsLoggedIn || got.Profile.OfficeName != "مكتب النور" {
		t.Fatalf("profile lost in roundtrip: %+v", got.Profile)
	}
	if len(got.DailyRecords) != 1 || got.DailyRecords[0].Cash.Cents != 15000 {
		t.Fatalf("records lost in roundtrip: %+v", got.DailyRecords)
	}
	if len(got.Clients) != 1 || got.Clients[0].Balance.Cents != -500 {
		t.Fatalf("clients lost in roundtrip: %+v", got.Clients)
	}
	if got.Clients[0].Transactions[0].ID != "t1" {
		t.Fatalf("ledger lost in roundtrip: %+v", got.Clients[0].Transactions)
	}
}

func TestLoadCorruptFileFallsBackToDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	s, err := New(path)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	st, err := s.Load(context.Background())
	if err != nil {
		t.Fatalf("Load should not fail on corruption: %v", err)
	}
	if st.IsLoggedIn || len(st.DailyRecords) != 0 || len(st.Clients) != 0 {
		t.Fatalf("expected defaults after corruption, got %+v", st)
	}
}

func TestLoadNormalizesNilCollections(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	payload := `{"isLoggedIn":true,"clients":[{"id":"c1","name":"Ali","initialType":"DEBTOR"}]}`
	if err := os.WriteFile(path, []byte(payload), 0644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	s, err := New(path)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	st, err := s.Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if st.DailyRecords == nil {
		t.Fatalf("dailyRecords left nil")
	}
	if st.Clients[0].Transactions == nil {
		t.Fatalf("transactions left nil")
	}
}
