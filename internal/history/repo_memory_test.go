package history

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"
)

func TestMemoryRepoRoundTrip(t *testing.T) {
	repo := NewMemoryRepo()
	ctx := context.Background()

	record := Record{
		ID:         "det-1",
		Kind:       "text",
		Label:      "ai",
		Confidence: 0.87,
		CreatedAt:  time.Now().UTC(),
	}
	if err := repo.Create(ctx, record); err != nil {
		t.Fatalf("Create: %v", err)
	}

	got, err := repo.GetByID(ctx, "det-1")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Label != "ai" || got.Confidence != 0.87 {
		t.Fatalf("unexpected record: %+v", got)
	}
}

func TestMemoryRepoGetMissing(t *testing.T) {
	repo := NewMemoryRepo()
	if _, err := repo.GetByID(context.Background(), "absent"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestMemoryRepoListNewestFirst(t *testing.T) {
	repo := NewMemoryRepo()
	ctx := context.Background()
	base := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	for i := 0; i < 5; i++ {
		record := Record{
			ID:        fmt.Sprintf("det-%d", i),
			Kind:      "text",
			Label:     "human",
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}
		if err := repo.Create(ctx, record); err != nil {
			t.Fatalf("Create %d: %v", i, err)
		}
	}

	records, err := repo.List(ctx, 3, 0)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("expected 3 records, got %d", len(records))
	}
	if records[0].ID != "det-4" || records[2].ID != "det-2" {
		t.Fatalf("expected newest-first ordering, got %s..%s", records[0].ID, records[2].ID)
	}

	page2, err := repo.List(ctx, 3, 3)
	if err != nil {
		t.Fatalf("List page 2: %v", err)
	}
	if len(page2) != 2 {
		t.Fatalf("expected 2 records on page 2, got %d", len(page2))
	}

	empty, err := repo.List(ctx, 3, 50)
	if err != nil {
		t.Fatalf("List past end: %v", err)
	}
	if len(empty) != 0 {
		t.Fatalf("expected empty page past end, got %d", len(empty))
	}
}

func TestMemoryRepoCreateIsIdempotentOnID(t *testing.T) {
	repo := NewMemoryRepo()
	ctx := context.Background()

	_ = repo.Create(ctx, Record{ID: "det-1", Label: "ai"})
	_ = repo.Create(ctx, Record{ID: "det-1", Label: "human"})

	records, err := repo.List(ctx, 10, 0)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 record after duplicate create, got %d", len(records))
	}
}
