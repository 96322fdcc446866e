package transfer

import (
	"context"
	"strings"
	"testing"

	"github.com/mmdatafocus/blending_backend/models"
	"github.com/shopspring/decimal"
)

func strPtr(s string) *string { return &s }

func decPtr(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func TestExportQuotesCellsContainingDelimiter(t *testing.T) {
	ctx := context.Background()
	store := models.NewStore()

	status := models.CreditStatusApproved
	if _, err := store.CreateCounterParty(ctx, &models.NewCounterParty{
		Name:         strPtr("Bob, Inc."),
		Type:         strPtr("supplier"),
		ContactInfo:  strPtr("bob@example.com"),
		CreditStatus: &status,
	}); err != nil {
		t.Fatalf("CreateCounterParty error: %v", err)
	}

	blob, err := Export(ctx, store, models.EntityKeyCounterParties)
	if err != nil {
		t.Fatalf("Export error: %v", err)
	}

	lines := strings.Split(blob, "\n")
	if len(lines) != 2 {
		t.Fatalf("expected header plus one row, got %d lines", len(lines))
	}
	if lines[0] != "name,type,contact_info,credit_status,is_active" {
		t.Fatalf("unexpected header: %q", lines[0])
	}
	if lines[1] != `"Bob, Inc.",supplier,bob@example.com,approved,true` {
		t.Fatalf("unexpected row: %q", lines[1])
	}
}

func TestExportRendersUnsetReferencesAsEmpty(t *testing.T) {
	ctx := context.Background()
	store := models.NewStore()

	if _, err := store.CreateBlend(ctx, &models.NewBlend{Name: strPtr("Unlinked")}); err != nil {
		t.Fatalf("CreateBlend error: %v", err)
	}

	blob, err := Export(ctx, store, models.EntityKeyBlends)
	if err != nil {
		t.Fatalf("Export error: %v", err)
	}
	lines := strings.Split(blob, "\n")
	if lines[1] != "Unlinked,,,true" {
		t.Fatalf("expected empty commodity_id and description cells, got %q", lines[1])
	}
}

func TestExportColumnOrders(t *testing.T) {
	cases := []struct {
		entityKey string
		header    string
	}{
		{models.EntityKeyCommodities, "name,description,uom_id,density,energy_uom,is_active"},
		{models.EntityKeyUOMs, "name,description,type,base_uom,is_active"},
		{models.EntityKeyLocations, "name,location_type,address,counterparty_id,is_active"},
		{models.EntityKeyCounterParties, "name,type,contact_info,credit_status,is_active"},
		{models.EntityKeyBlends, "name,commodity_id,description,is_active"},
		{models.EntityKeyBlendComponents, "blend_id,component_commodity_id,percentage,is_active"},
		{models.EntityKeyCapacity, "commodity_id,location_id,capacity_type,quantity,start_date,end_date,is_active"},
	}

	ctx := context.Background()
	store := models.NewStore()
	for _, tc := range cases {
		blob, err := Export(ctx, store, tc.entityKey)
		if err != nil {
			t.Fatalf("Export(%s) error: %v", tc.entityKey, err)
		}
		if blob != tc.header {
			t.Fatalf("Export(%s) header mismatch: %q", tc.entityKey, blob)
		}
		if got := Template(tc.entityKey); got != tc.header {
			t.Fatalf("Template(%s) mismatch: %q", tc.entityKey, got)
		}
	}
}

func TestTemplateUnknownKeyFallsBack(t *testing.T) {
	if got := Template("widgets"); got != "column1,column2" {
		t.Fatalf("expected generic fallback template, got %q", got)
	}
}

func TestExportUnknownKeyFails(t *testing.T) {
	if _, err := Export(context.Background(), models.NewStore(), "widgets"); err == nil {
		t.Fatal("expected error for unknown entity key")
	}
}

func TestExportCapacityRow(t *testing.T) {
	ctx := context.Background()
	store := models.NewStore()

	commodity, _ := store.CreateCommodity(ctx, &models.NewCommodity{Name: strPtr("ULSD")})
	if _, err := store.CreateCapacity(ctx, &models.NewCapacity{
		CommodityId:  &commodity.ID,
		CapacityType: strPtr("storage"),
		Quantity:     decPtr("50000.5"),
		StartDate:    strPtr("2026-01-01"),
		EndDate:      strPtr("2026-12-31"),
	}); err != nil {
		t.Fatalf("CreateCapacity error: %v", err)
	}

	blob, err := Export(ctx, store, models.EntityKeyCapacity)
	if err != nil {
		t.Fatalf("Export error: %v", err)
	}
	lines := strings.Split(blob, "\n")
	if lines[1] != "1,,storage,50000.5,2026-01-01,2026-12-31,true" {
		t.Fatalf("unexpected capacity row: %q", lines[1])
	}
}

func TestTemplateXlsxWritesHeaderRow(t *testing.T) {
	f, err := TemplateXlsx(models.EntityKeyCapacity)
	if err != nil {
		t.Fatalf("TemplateXlsx error: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows(sheetName)
	if err != nil {
		t.Fatalf("GetRows error: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected a header-only sheet, got %d rows", len(rows))
	}
	want := Columns(models.EntityKeyCapacity)
	if len(rows[0]) != len(want) {
		t.Fatalf("expected %d header cells, got %v", len(want), rows[0])
	}
	for i, column := range want {
		if rows[0][i] != column {
			t.Fatalf("expected %q at column %d, got %q", column, i, rows[0][i])
		}
	}
}

func TestExportXlsxWritesHeaderAndRows(t *testing.T) {
	ctx := context.Background()
	store := models.NewStore()

	if _, err := store.CreateUOM(ctx, &models.NewUOM{Name: strPtr("Barrel"), Type: strPtr("volume"), BaseUom: decPtr("158.987")}); err != nil {
		t.Fatalf("CreateUOM error: %v", err)
	}

	f, err := ExportXlsx(ctx, store, models.EntityKeyUOMs)
	if err != nil {
		t.Fatalf("ExportXlsx error: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows(sheetName)
	if err != nil {
		t.Fatalf("GetRows error: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected header plus one row, got %d", len(rows))
	}
	if rows[0][0] != "name" || rows[1][0] != "Barrel" {
		t.Fatalf("unexpected sheet contents: %v", rows)
	}
}
