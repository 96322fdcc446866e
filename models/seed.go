package models

import (
	"context"

	"github.com/shopspring/decimal"
)

// SeedSampleData loads a small consistent fixture set for local development.
// Intended for an empty store; ids line up with the references below.
func (s *Store) SeedSampleData(ctx context.Context) {
	mt, _ := s.CreateUOM(ctx, &NewUOM{
		Name:        strPtr("Metric Ton"),
		Description: strPtr("1000 kilograms"),
		Type:        strPtr("mass"),
		BaseUom:     decPtr("1000"),
	})
	bbl, _ := s.CreateUOM(ctx, &NewUOM{
		Name:        strPtr("Barrel"),
		Description: strPtr("42 US gallons"),
		Type:        strPtr("volume"),
		BaseUom:     decPtr("158.987"),
	})

	ulsd, _ := s.CreateCommodity(ctx, &NewCommodity{
		Name:      strPtr("ULSD"),
		UomId:     &bbl.ID,
		Density:   decPtr("0.84"),
		EnergyUom: strPtr("MJ/kg"),
	})
	fame, _ := s.CreateCommodity(ctx, &NewCommodity{
		Name:      strPtr("FAME"),
		UomId:     &mt.ID,
		Density:   decPtr("0.88"),
		EnergyUom: strPtr("MJ/kg"),
	})

	supplier, _ := s.CreateCounterParty(ctx, &NewCounterParty{
		Name:         strPtr("Harbor Trading Co"),
		Type:         strPtr("supplier"),
		ContactInfo:  strPtr("ops@harbortrading.example"),
		CreditStatus: creditStatusPtr(CreditStatusApproved),
	})

	terminal, _ := s.CreateLocation(ctx, &NewLocation{
		Name:           strPtr("North Terminal"),
		LocationType:   strPtr("terminal"),
		Address:        strPtr("1 Dock Road"),
		CounterPartyId: &supplier.ID,
	})

	s.CreateBlendWithComponents(ctx, &NewBlendWithComponents{
		Name:        "B7 Diesel",
		CommodityId: &ulsd.ID,
		Description: strPtr("7% FAME diesel blend"),
		Components: []NewBlendComponentInput{
			{ComponentCommodityId: ulsd.ID, Percentage: decimal.RequireFromString("93")},
			{ComponentCommodityId: fame.ID, Percentage: decimal.RequireFromString("7")},
		},
	})

	s.CreateCapacity(ctx, &NewCapacity{
		CommodityId:  &ulsd.ID,
		LocationId:   &terminal.ID,
		CapacityType: strPtr("storage"),
		Quantity:     decPtr("50000"),
		StartDate:    strPtr("2026-01-01"),
		EndDate:      strPtr("2026-12-31"),
	})
}

func strPtr(s string) *string { return &s }

func decPtr(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func creditStatusPtr(cs CreditStatus) *CreditStatus { return &cs }
