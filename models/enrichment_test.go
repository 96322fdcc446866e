package models

import (
	"context"
	"testing"
)

func TestCommodityEmbedsUOMSnapshotAtCreate(t *testing.T) {
	ctx := context.Background()
	store := NewStore()

	uom, _ := store.CreateUOM(ctx, &NewUOM{Name: strPtr("Barrel")})
	commodity, err := store.CreateCommodity(ctx, &NewCommodity{Name: strPtr("ULSD"), UomId: &uom.ID})
	if err != nil {
		t.Fatalf("CreateCommodity error: %v", err)
	}
	if commodity.Uom == nil || commodity.Uom.ID != uom.ID || commodity.Uom.Name != "Barrel" {
		t.Fatalf("expected embedded uom snapshot, got %+v", commodity.Uom)
	}

	// A dangling reference embeds nothing.
	missing := 999
	orphan, _ := store.CreateCommodity(ctx, &NewCommodity{Name: strPtr("FAME"), UomId: &missing})
	if orphan.Uom != nil {
		t.Fatalf("expected nil snapshot for unresolvable reference, got %+v", orphan.Uom)
	}
}

func TestSnapshotIsPointInTime(t *testing.T) {
	ctx := context.Background()
	store := NewStore()

	uom, _ := store.CreateUOM(ctx, &NewUOM{Name: strPtr("Barrel")})
	commodity, _ := store.CreateCommodity(ctx, &NewCommodity{Name: strPtr("ULSD"), UomId: &uom.ID})

	// Renaming the unit must not rewrite the snapshot embedded earlier.
	if _, err := store.UpdateUOM(ctx, uom.ID, &NewUOM{Name: strPtr("US Barrel")}); err != nil {
		t.Fatalf("UpdateUOM error: %v", err)
	}

	stored, err := store.GetCommodity(ctx, commodity.ID)
	if err != nil {
		t.Fatalf("GetCommodity error: %v", err)
	}
	if stored.Uom.Name != "Barrel" {
		t.Fatalf("stored snapshot should be stale, got %q", stored.Uom.Name)
	}

	// The details read re-resolves live.
	details, err := store.GetCommodityDetails(ctx, commodity.ID)
	if err != nil {
		t.Fatalf("GetCommodityDetails error: %v", err)
	}
	if details.Uom.Name != "US Barrel" {
		t.Fatalf("details read should resolve live, got %q", details.Uom.Name)
	}
}

func TestUpdatePreservesStaleSnapshotOnLookupMiss(t *testing.T) {
	ctx := context.Background()
	store := NewStore()

	uom, _ := store.CreateUOM(ctx, &NewUOM{Name: strPtr("Barrel")})
	commodity, _ := store.CreateCommodity(ctx, &NewCommodity{Name: strPtr("ULSD"), UomId: &uom.ID})

	missing := 999
	updated, err := store.UpdateCommodity(ctx, commodity.ID, &NewCommodity{UomId: &missing})
	if err != nil {
		t.Fatalf("UpdateCommodity error: %v", err)
	}
	if updated.UomId != missing {
		t.Fatalf("foreign key should update, got %d", updated.UomId)
	}
	if updated.Uom == nil || updated.Uom.Name != "Barrel" {
		t.Fatalf("previous snapshot should be preserved on lookup miss, got %+v", updated.Uom)
	}
}

func TestDeleteReferencedEntityDoesNotCascade(t *testing.T) {
	ctx := context.Background()
	store := NewStore()

	uom, _ := store.CreateUOM(ctx, &NewUOM{Name: strPtr("Barrel")})
	commodity, _ := store.CreateCommodity(ctx, &NewCommodity{Name: strPtr("ULSD"), UomId: &uom.ID})

	if err := store.DeleteUOM(ctx, uom.ID); err != nil {
		t.Fatalf("DeleteUOM error: %v", err)
	}

	stored, err := store.GetCommodity(ctx, commodity.ID)
	if err != nil {
		t.Fatalf("commodity must survive unit deletion: %v", err)
	}
	if stored.UomId != uom.ID {
		t.Fatalf("dangling reference should be kept, got %d", stored.UomId)
	}
	// The live details read now finds nothing for the reference.
	details, _ := store.GetCommodityDetails(ctx, commodity.ID)
	if details.Uom != nil {
		t.Fatalf("live resolution of a deleted unit should be nil, got %+v", details.Uom)
	}
}

func TestCapacityEmbedsCommodityAndLocation(t *testing.T) {
	ctx := context.Background()
	store := NewStore()

	commodity, _ := store.CreateCommodity(ctx, &NewCommodity{Name: strPtr("ULSD")})
	location, _ := store.CreateLocation(ctx, &NewLocation{Name: strPtr("North Terminal")})

	capacity, err := store.CreateCapacity(ctx, &NewCapacity{
		CommodityId:  &commodity.ID,
		LocationId:   &location.ID,
		CapacityType: strPtr("storage"),
		Quantity:     decPtr("50000"),
	})
	if err != nil {
		t.Fatalf("CreateCapacity error: %v", err)
	}
	if capacity.Commodity == nil || capacity.Commodity.Name != "ULSD" {
		t.Fatalf("expected commodity snapshot, got %+v", capacity.Commodity)
	}
	if capacity.Location == nil || capacity.Location.Name != "North Terminal" {
		t.Fatalf("expected location snapshot, got %+v", capacity.Location)
	}

	// A lookup miss on update keeps both prior snapshots.
	missing := 999
	updated, err := store.UpdateCapacity(ctx, capacity.ID, &NewCapacity{CommodityId: &missing, LocationId: &missing})
	if err != nil {
		t.Fatalf("UpdateCapacity error: %v", err)
	}
	if updated.Commodity == nil || updated.Location == nil {
		t.Fatalf("stale snapshots should be preserved, got %+v", updated)
	}
}

func TestBlendComponentToleratesAbsentKeys(t *testing.T) {
	ctx := context.Background()
	store := NewStore()

	component, err := store.CreateBlendComponent(ctx, &NewBlendComponent{})
	if err != nil {
		t.Fatalf("CreateBlendComponent error: %v", err)
	}
	if component.BlendId != 0 || component.ComponentCommodityId != 0 {
		t.Fatalf("absent keys should default to zero, got %+v", component)
	}
	if component.Blend != nil || component.Commodity != nil {
		t.Fatalf("zero keys must embed nothing, got %+v", component)
	}
	if !component.Percentage.IsZero() {
		t.Fatalf("absent percentage should default to zero, got %s", component.Percentage.String())
	}
}
