package models

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/mmdatafocus/blending_backend/utils"
)

func TestCreateAssignsMonotonicIds(t *testing.T) {
	ctx := context.Background()
	store := NewStore()

	first, err := store.CreateUOM(ctx, &NewUOM{Name: strPtr("Metric Ton")})
	if err != nil {
		t.Fatalf("CreateUOM error: %v", err)
	}
	second, err := store.CreateUOM(ctx, &NewUOM{Name: strPtr("Barrel")})
	if err != nil {
		t.Fatalf("CreateUOM error: %v", err)
	}
	if first.ID != 1 || second.ID != 2 {
		t.Fatalf("expected ids 1 and 2, got %d and %d", first.ID, second.ID)
	}

	// An id must never be reused, even after its record is deleted.
	if err := store.DeleteUOM(ctx, second.ID); err != nil {
		t.Fatalf("DeleteUOM error: %v", err)
	}
	third, err := store.CreateUOM(ctx, &NewUOM{Name: strPtr("Gallon")})
	if err != nil {
		t.Fatalf("CreateUOM error: %v", err)
	}
	if third.ID != 3 {
		t.Fatalf("expected id 3 after delete, got %d", third.ID)
	}
}

func TestCreateDefaultsIsActiveTrue(t *testing.T) {
	ctx := context.Background()
	store := NewStore()

	uom, err := store.CreateUOM(ctx, &NewUOM{Name: strPtr("Litre")})
	if err != nil {
		t.Fatalf("CreateUOM error: %v", err)
	}
	if uom.IsActive == nil || !*uom.IsActive {
		t.Fatalf("expected is_active to default to true, got %v", uom.IsActive)
	}

	inactive, err := store.CreateUOM(ctx, &NewUOM{Name: strPtr("Old Unit"), IsActive: utils.NewFalse()})
	if err != nil {
		t.Fatalf("CreateUOM error: %v", err)
	}
	if inactive.IsActive == nil || *inactive.IsActive {
		t.Fatalf("expected explicit is_active=false to be honored, got %v", inactive.IsActive)
	}
}

func TestGetMissingRecordReturnsNotFound(t *testing.T) {
	ctx := context.Background()
	store := NewStore()

	if _, err := store.GetUOM(ctx, 42); !errors.Is(err, utils.ErrorRecordNotFound) {
		t.Fatalf("expected ErrorRecordNotFound, got %v", err)
	}
	if _, err := store.GetCommodity(ctx, 42); !errors.Is(err, utils.ErrorRecordNotFound) {
		t.Fatalf("expected ErrorRecordNotFound, got %v", err)
	}
}

func TestUpdateMissingRecordReturnsNotFound(t *testing.T) {
	ctx := context.Background()
	store := NewStore()

	if _, err := store.UpdateUOM(ctx, 42, &NewUOM{Name: strPtr("x")}); !errors.Is(err, utils.ErrorRecordNotFound) {
		t.Fatalf("expected ErrorRecordNotFound, got %v", err)
	}
	if _, err := store.UpdateBlendComponent(ctx, 42, &NewBlendComponent{}); !errors.Is(err, utils.ErrorRecordNotFound) {
		t.Fatalf("expected ErrorRecordNotFound, got %v", err)
	}
}

func TestUpdateMergesPartialFields(t *testing.T) {
	ctx := context.Background()
	store := NewStore()

	created, err := store.CreateCounterParty(ctx, &NewCounterParty{
		Name:        strPtr("Harbor Trading Co"),
		Type:        strPtr("supplier"),
		ContactInfo: strPtr("ops@harbortrading.example"),
	})
	if err != nil {
		t.Fatalf("CreateCounterParty error: %v", err)
	}
	if created.CreditStatus != CreditStatusUnset {
		t.Fatalf("expected default credit_status unset, got %q", created.CreditStatus)
	}

	approved := CreditStatusApproved
	updated, err := store.UpdateCounterParty(ctx, created.ID, &NewCounterParty{CreditStatus: &approved})
	if err != nil {
		t.Fatalf("UpdateCounterParty error: %v", err)
	}
	if updated.CreditStatus != CreditStatusApproved {
		t.Fatalf("expected credit_status approved, got %q", updated.CreditStatus)
	}
	// Omitted fields keep their prior values.
	if updated.Name != "Harbor Trading Co" || updated.Type != "supplier" || updated.ContactInfo != "ops@harbortrading.example" {
		t.Fatalf("omitted fields were clobbered: %+v", updated)
	}
	if updated.UpdatedAt == nil {
		t.Fatal("expected updated_at to be stamped")
	}
}

func TestDeleteIsIdempotent(t *testing.T) {
	ctx := context.Background()
	store := NewStore()

	location, err := store.CreateLocation(ctx, &NewLocation{Name: strPtr("North Terminal")})
	if err != nil {
		t.Fatalf("CreateLocation error: %v", err)
	}

	if err := store.DeleteLocation(ctx, location.ID); err != nil {
		t.Fatalf("first delete error: %v", err)
	}
	if err := store.DeleteLocation(ctx, location.ID); err != nil {
		t.Fatalf("second delete should be a no-op, got %v", err)
	}
	locations, err := store.GetLocations(ctx)
	if err != nil {
		t.Fatalf("GetLocations error: %v", err)
	}
	if len(locations) != 0 {
		t.Fatalf("expected empty collection, got %d records", len(locations))
	}
}

func TestGetAllPreservesInsertionOrder(t *testing.T) {
	ctx := context.Background()
	store := NewStore()

	names := []string{"Gamma", "Alpha", "Beta"}
	for _, name := range names {
		if _, err := store.CreateBlend(ctx, &NewBlend{Name: strPtr(name)}); err != nil {
			t.Fatalf("CreateBlend error: %v", err)
		}
	}

	blends, err := store.GetBlends(ctx)
	if err != nil {
		t.Fatalf("GetBlends error: %v", err)
	}
	if len(blends) != len(names) {
		t.Fatalf("expected %d blends, got %d", len(names), len(blends))
	}
	for i, name := range names {
		if blends[i].Name != name {
			t.Fatalf("expected %q at position %d, got %q", name, i, blends[i].Name)
		}
	}
}

func TestIdempotentCreateRegistry(t *testing.T) {
	store := NewStore()

	if _, ok := store.LookupIdempotentCreate(EntityKeyBlends, "key-1"); ok {
		t.Fatal("unexpected hit for unseen key")
	}
	store.RememberIdempotentCreate(EntityKeyBlends, "key-1", &Blend{ID: 7})
	record, ok := store.LookupIdempotentCreate(EntityKeyBlends, "key-1")
	if !ok {
		t.Fatal("expected remembered record")
	}
	if record.(*Blend).ID != 7 {
		t.Fatalf("expected blend 7, got %+v", record)
	}

	// The same key under another entity type is distinct.
	if _, ok := store.LookupIdempotentCreate(EntityKeyUOMs, "key-1"); ok {
		t.Fatal("key must be scoped per entity")
	}
	// Empty keys are never remembered.
	store.RememberIdempotentCreate(EntityKeyBlends, "", &Blend{ID: 8})
	if _, ok := store.LookupIdempotentCreate(EntityKeyBlends, ""); ok {
		t.Fatal("empty key must not be remembered")
	}
}

func TestIdempotentCreateReplaysFirstRecord(t *testing.T) {
	ctx := context.Background()
	store := NewStore()

	create := func() (any, error) {
		return store.CreateBlend(ctx, &NewBlend{Name: strPtr("B7 Diesel")})
	}
	first, err := store.IdempotentCreate(EntityKeyBlends, "retry-key", create)
	if err != nil {
		t.Fatalf("IdempotentCreate error: %v", err)
	}
	second, err := store.IdempotentCreate(EntityKeyBlends, "retry-key", create)
	if err != nil {
		t.Fatalf("IdempotentCreate error: %v", err)
	}
	if first.(*Blend).ID != second.(*Blend).ID {
		t.Fatalf("retry created a new record: %d vs %d", first.(*Blend).ID, second.(*Blend).ID)
	}

	blends, _ := store.GetBlends(ctx)
	if len(blends) != 1 {
		t.Fatalf("expected 1 blend, got %d", len(blends))
	}

	// A failed create is not remembered; the key stays usable.
	sentinel := errors.New("boom")
	if _, err := store.IdempotentCreate(EntityKeyBlends, "failing-key", func() (any, error) {
		return nil, sentinel
	}); !errors.Is(err, sentinel) {
		t.Fatalf("expected create error to surface, got %v", err)
	}
	if _, ok := store.LookupIdempotentCreate(EntityKeyBlends, "failing-key"); ok {
		t.Fatal("failed create must not be remembered")
	}
}

func TestIdempotentCreateConcurrentRetries(t *testing.T) {
	ctx := context.Background()
	store := NewStore()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := store.IdempotentCreate(EntityKeyBlends, "retry-key", func() (any, error) {
				return store.CreateBlend(ctx, &NewBlend{Name: strPtr("B7 Diesel")})
			})
			if err != nil {
				t.Errorf("IdempotentCreate error: %v", err)
			}
		}()
	}
	wg.Wait()

	blends, err := store.GetBlends(ctx)
	if err != nil {
		t.Fatalf("GetBlends error: %v", err)
	}
	if len(blends) != 1 {
		t.Fatalf("concurrent retries must create exactly one record, got %d", len(blends))
	}
}
