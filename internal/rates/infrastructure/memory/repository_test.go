package memory

import (
	"context"
	"errors"
	"testing"

	rates "tariffscope/internal/rates/domain"
)

func testRecord(id, zip string, tags ...string) *rates.PlanRecord {
	return &rates.PlanRecord{
		ID:              id,
		Name:            "Plan " + id,
		Provider:        "TestCo",
		ZipCode:         zip,
		RateModel:       rates.RateModel{PlanKind: rates.PlanKindFixed},
		Classifications: tags,
	}
}

func TestSaveAndGetByID(t *testing.T) {
	repo := NewPlanRepository()
	ctx := context.Background()

	record := testRecord("a1", "75001", "fixed_rate")
	if err := repo.Save(ctx, record); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := repo.GetByID(ctx, "a1")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Name != "Plan a1" || got.ZipCode != "75001" {
		t.Errorf("got = %+v", got)
	}

	// The stored copy is detached from the caller's record.
	record.Name = "mutated"
	again, _ := repo.GetByID(ctx, "a1")
	if again.Name != "Plan a1" {
		t.Errorf("stored record shares memory with caller: %q", again.Name)
	}
}

func TestGetByIDNotFound(t *testing.T) {
	repo := NewPlanRepository()
	if _, err := repo.GetByID(context.Background(), "nope"); !errors.Is(err, rates.ErrPlanNotFound) {
		t.Fatalf("err = %v, want ErrPlanNotFound", err)
	}
}

func TestSaveNilRecord(t *testing.T) {
	repo := NewPlanRepository()
	if err := repo.Save(context.Background(), nil); !errors.Is(err, rates.ErrNilRecord) {
		t.Fatalf("err = %v, want ErrNilRecord", err)
	}
}

func TestSaveOverwrites(t *testing.T) {
	repo := NewPlanRepository()
	ctx := context.Background()

	_ = repo.Save(ctx, testRecord("a1", "75001"))
	updated := testRecord("a1", "75001")
	updated.Name = "Renamed"
	_ = repo.Save(ctx, updated)

	got, err := repo.GetByID(ctx, "a1")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Name != "Renamed" {
		t.Errorf("name = %q, want overwrite to win", got.Name)
	}
}

func TestListByZip(t *testing.T) {
	repo := NewPlanRepository()
	ctx := context.Background()

	_ = repo.Save(ctx, testRecord("a1", "75001", "green", "fixed_rate"))
	_ = repo.Save(ctx, testRecord("a2", "75001", "fixed_rate"))
	_ = repo.Save(ctx, testRecord("b1", "78701", "green"))

	all, err := repo.ListByZip(ctx, "75001", "", 0)
	if err != nil {
		t.Fatalf("ListByZip: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("list = %+v, want the two 75001 plans", all)
	}

	green, err := repo.ListByZip(ctx, "75001", "green", 0)
	if err != nil {
		t.Fatalf("ListByZip: %v", err)
	}
	if len(green) != 1 || green[0].ID != "a1" {
		t.Errorf("green list = %+v, want only a1", green)
	}

	none, err := repo.ListByZip(ctx, "00000", "", 0)
	if err != nil {
		t.Fatalf("ListByZip: %v", err)
	}
	if len(none) != 0 {
		t.Errorf("list = %+v, want empty for unknown zip", none)
	}
}

func TestListByZipLimit(t *testing.T) {
	repo := NewPlanRepository()
	ctx := context.Background()

	_ = repo.Save(ctx, testRecord("a1", "75001"))
	_ = repo.Save(ctx, testRecord("a2", "75001"))
	_ = repo.Save(ctx, testRecord("a3", "75001"))

	limited, err := repo.ListByZip(ctx, "75001", "", 2)
	if err != nil {
		t.Fatalf("ListByZip: %v", err)
	}
	if len(limited) != 2 {
		t.Errorf("list has %d records, want limit of 2", len(limited))
	}
}
