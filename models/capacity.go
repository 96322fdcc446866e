package models

import (
	"context"
	"time"

	"github.com/mmdatafocus/blending_backend/utils"
	"github.com/shopspring/decimal"
)

type Capacity struct {
	ID           int             `json:"id"`
	CommodityId  int             `json:"commodity_id"`
	LocationId   int             `json:"location_id"`
	CapacityType string          `json:"capacity_type"`
	Quantity     decimal.Decimal `json:"quantity"`
	StartDate    string          `json:"start_date"`
	EndDate      string          `json:"end_date"`
	IsActive     *bool           `json:"is_active"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    *time.Time      `json:"updated_at,omitempty"`
	Commodity    *Commodity      `json:"commodity,omitempty"`
	Location     *Location       `json:"location,omitempty"`
}

type NewCapacity struct {
	CommodityId  *int             `json:"commodity_id"`
	LocationId   *int             `json:"location_id"`
	CapacityType *string          `json:"capacity_type"`
	Quantity     *decimal.Decimal `json:"quantity"`
	StartDate    *string          `json:"start_date"`
	EndDate      *string          `json:"end_date"`
	IsActive     *bool            `json:"is_active"`
}

func (s *Store) CreateCapacity(ctx context.Context, input *NewCapacity) (*Capacity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	commodityId := utils.DereferencePtr(input.CommodityId)
	locationId := utils.DereferencePtr(input.LocationId)

	capacity := Capacity{
		ID:           s.nextCapacityId,
		CommodityId:  commodityId,
		LocationId:   locationId,
		CapacityType: utils.DereferencePtr(input.CapacityType),
		Quantity:     utils.DereferencePtr(input.Quantity, decimal.Zero),
		StartDate:    utils.DereferencePtr(input.StartDate),
		EndDate:      utils.DereferencePtr(input.EndDate),
		IsActive:     utils.NewTrue(),
		CreatedAt:    now(),
		Commodity:    s.resolveCommoditySnapshot(commodityId),
		Location:     s.resolveLocationSnapshot(locationId),
	}
	if input.IsActive != nil {
		capacity.IsActive = input.IsActive
	}
	s.nextCapacityId++
	s.capacities = append(s.capacities, capacity)

	result := capacity
	return &result, nil
}

func (s *Store) GetCapacity(ctx context.Context, id int) (*Capacity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	capacity := s.findCapacity(id)
	if capacity == nil {
		return nil, utils.ErrorRecordNotFound
	}
	result := *capacity
	return &result, nil
}

func (s *Store) GetCapacities(ctx context.Context) ([]Capacity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	results := make([]Capacity, len(s.capacities))
	copy(results, s.capacities)
	return results, nil
}

func (s *Store) UpdateCapacity(ctx context.Context, id int, input *NewCapacity) (*Capacity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	capacity := s.findCapacity(id)
	if capacity == nil {
		return nil, utils.ErrorRecordNotFound
	}

	if input.CommodityId != nil {
		capacity.CommodityId = *input.CommodityId
		if snapshot := s.resolveCommoditySnapshot(*input.CommodityId); snapshot != nil {
			capacity.Commodity = snapshot
		}
	}
	if input.LocationId != nil {
		capacity.LocationId = *input.LocationId
		if snapshot := s.resolveLocationSnapshot(*input.LocationId); snapshot != nil {
			capacity.Location = snapshot
		}
	}
	if input.CapacityType != nil {
		capacity.CapacityType = *input.CapacityType
	}
	if input.Quantity != nil {
		capacity.Quantity = *input.Quantity
	}
	if input.StartDate != nil {
		capacity.StartDate = *input.StartDate
	}
	if input.EndDate != nil {
		capacity.EndDate = *input.EndDate
	}
	if input.IsActive != nil {
		capacity.IsActive = input.IsActive
	}
	capacity.UpdatedAt = nowPtr()

	result := *capacity
	return &result, nil
}

func (s *Store) DeleteCapacity(ctx context.Context, id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.capacities {
		if s.capacities[i].ID == id {
			s.capacities = append(s.capacities[:i], s.capacities[i+1:]...)
			return nil
		}
	}
	return nil
}

// caller must hold s.mu
func (s *Store) findCapacity(id int) *Capacity {
	for i := range s.capacities {
		if s.capacities[i].ID == id {
			return &s.capacities[i]
		}
	}
	return nil
}
