package memory

import (
	"context"
	"testing"

	"mawazna/internal/core"
)

func TestUnseededLoadReturnsDefaults(t *testing.T) {
	st, err := New().Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if st.IsLoggedIn || len(st.DailyRecords) != 0 {
		t.Fatalf("expected default state, got %+v", st)
	}
}

func TestSaveThenLoad(t *testing.T) {
	m := New()
	st := core.DefaultState()
	st.IsLoggedIn = true
	st.DailyRecords = append(st.DailyRecords, core.DailyRecord{ID: "r1"})

	if err := m.Save(context.Background(), st); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := m.Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !got.IsLoggedIn || len(got.DailyRecords) != 1 {
		t.Fatalf("snapshot lost: %+v", got)
	}
}

func TestStoreDoesNotAliasCallers(t *testing.T) {
	st := core.DefaultState()
	st.DailyRecords = append(st.DailyRecords, core.DailyRecord{ID: "r1"})
	m := Seed(st)

	// mutating the seed value must not reach the store
	st.DailyRecords[0].ID = "changed"
	got, _ := m.Load(context.Background())
	if got.DailyRecords[0].ID != "r1" {
		t.Fatalf("store aliases seed value")
	}

	// mutating a loaded copy must not reach the store either
	got.DailyRecords[0].ID = "changed"
	again, _ := m.Load(context.Background())
	if again.DailyRecords[0].ID != "r1" {
		t.Fatalf("store aliases loaded value")
	}
}
