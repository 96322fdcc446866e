package models

import (
	"context"
	"time"

	"github.com/mmdatafocus/blending_backend/utils"
	"github.com/shopspring/decimal"
)

// UOMRef is the shallow snapshot of a unit embedded into a commodity at
// write time. It is a point-in-time copy, not a live reference.
type UOMRef struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type Commodity struct {
	ID          int             `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	UomId       int             `json:"uom_id"`
	Density     decimal.Decimal `json:"density"`
	EnergyUom   string          `json:"energy_uom"`
	IsActive    *bool           `json:"is_active"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   *time.Time      `json:"updated_at,omitempty"`
	Uom         *UOMRef         `json:"uom,omitempty"`
}

type NewCommodity struct {
	Name        *string          `json:"name"`
	Description *string          `json:"description"`
	UomId       *int             `json:"uom_id"`
	Density     *decimal.Decimal `json:"density"`
	EnergyUom   *string          `json:"energy_uom"`
	IsActive    *bool            `json:"is_active"`
}

func (s *Store) CreateCommodity(ctx context.Context, input *NewCommodity) (*Commodity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	commodity := Commodity{
		ID:          s.nextCommodityId,
		Name:        utils.DereferencePtr(input.Name),
		Description: utils.DereferencePtr(input.Description),
		UomId:       utils.DereferencePtr(input.UomId),
		Density:     utils.DereferencePtr(input.Density, decimal.Zero),
		EnergyUom:   utils.DereferencePtr(input.EnergyUom),
		IsActive:    utils.NewTrue(),
		CreatedAt:   now(),
		Uom:         s.resolveUOMRef(utils.DereferencePtr(input.UomId)),
	}
	if input.IsActive != nil {
		commodity.IsActive = input.IsActive
	}
	s.nextCommodityId++
	s.commodities = append(s.commodities, commodity)

	result := commodity
	return &result, nil
}

func (s *Store) GetCommodity(ctx context.Context, id int) (*Commodity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	commodity := s.findCommodity(id)
	if commodity == nil {
		return nil, utils.ErrorRecordNotFound
	}
	result := *commodity
	return &result, nil
}

// GetCommodityDetails re-resolves the unit reference live instead of
// returning the stored write-time snapshot.
func (s *Store) GetCommodityDetails(ctx context.Context, id int) (*Commodity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	commodity := s.findCommodity(id)
	if commodity == nil {
		return nil, utils.ErrorRecordNotFound
	}
	result := *commodity
	result.Uom = s.resolveUOMRef(result.UomId)
	return &result, nil
}

func (s *Store) GetCommodities(ctx context.Context) ([]Commodity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	results := make([]Commodity, len(s.commodities))
	copy(results, s.commodities)
	return results, nil
}

func (s *Store) UpdateCommodity(ctx context.Context, id int, input *NewCommodity) (*Commodity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	commodity := s.findCommodity(id)
	if commodity == nil {
		return nil, utils.ErrorRecordNotFound
	}

	if input.Name != nil {
		commodity.Name = *input.Name
	}
	if input.Description != nil {
		commodity.Description = *input.Description
	}
	if input.UomId != nil {
		commodity.UomId = *input.UomId
		// Stale-preserving: a lookup miss keeps the previous snapshot
		// rather than clobbering embedded data.
		if ref := s.resolveUOMRef(*input.UomId); ref != nil {
			commodity.Uom = ref
		}
	}
	if input.Density != nil {
		commodity.Density = *input.Density
	}
	if input.EnergyUom != nil {
		commodity.EnergyUom = *input.EnergyUom
	}
	if input.IsActive != nil {
		commodity.IsActive = input.IsActive
	}
	commodity.UpdatedAt = nowPtr()

	result := *commodity
	return &result, nil
}

func (s *Store) DeleteCommodity(ctx context.Context, id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.commodities {
		if s.commodities[i].ID == id {
			s.commodities = append(s.commodities[:i], s.commodities[i+1:]...)
			return nil
		}
	}
	return nil
}

// caller must hold s.mu
func (s *Store) findCommodity(id int) *Commodity {
	for i := range s.commodities {
		if s.commodities[i].ID == id {
			return &s.commodities[i]
		}
	}
	return nil
}

// caller must hold s.mu
func (s *Store) resolveUOMRef(uomId int) *UOMRef {
	uom := s.findUOM(uomId)
	if uom == nil {
		return nil
	}
	return &UOMRef{ID: uom.ID, Name: uom.Name}
}

// caller must hold s.mu
func (s *Store) resolveCommoditySnapshot(commodityId int) *Commodity {
	commodity := s.findCommodity(commodityId)
	if commodity == nil {
		return nil
	}
	snapshot := *commodity
	return &snapshot
}
