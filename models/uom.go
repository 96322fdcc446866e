package models

import (
	"context"
	"time"

	"github.com/mmdatafocus/blending_backend/utils"
	"github.com/shopspring/decimal"
)

type UOM struct {
	ID          int             `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Type        string          `json:"type"`
	BaseUom     decimal.Decimal `json:"base_uom"`
	IsActive    *bool           `json:"is_active"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   *time.Time      `json:"updated_at,omitempty"`
}

// NewUOM carries a partial record: nil fields are defaulted on create and
// left untouched on update.
type NewUOM struct {
	Name        *string          `json:"name"`
	Description *string          `json:"description"`
	Type        *string          `json:"type"`
	BaseUom     *decimal.Decimal `json:"base_uom"`
	IsActive    *bool            `json:"is_active"`
}

func (s *Store) CreateUOM(ctx context.Context, input *NewUOM) (*UOM, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	uom := UOM{
		ID:          s.nextUOMId,
		Name:        utils.DereferencePtr(input.Name),
		Description: utils.DereferencePtr(input.Description),
		Type:        utils.DereferencePtr(input.Type),
		BaseUom:     utils.DereferencePtr(input.BaseUom, decimal.Zero),
		IsActive:    utils.NewTrue(),
		CreatedAt:   now(),
	}
	if input.IsActive != nil {
		uom.IsActive = input.IsActive
	}
	s.nextUOMId++
	s.uoms = append(s.uoms, uom)

	result := uom
	return &result, nil
}

func (s *Store) GetUOM(ctx context.Context, id int) (*UOM, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	uom := s.findUOM(id)
	if uom == nil {
		return nil, utils.ErrorRecordNotFound
	}
	result := *uom
	return &result, nil
}

func (s *Store) GetUOMs(ctx context.Context) ([]UOM, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	results := make([]UOM, len(s.uoms))
	copy(results, s.uoms)
	return results, nil
}

func (s *Store) UpdateUOM(ctx context.Context, id int, input *NewUOM) (*UOM, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	uom := s.findUOM(id)
	if uom == nil {
		return nil, utils.ErrorRecordNotFound
	}

	if input.Name != nil {
		uom.Name = *input.Name
	}
	if input.Description != nil {
		uom.Description = *input.Description
	}
	if input.Type != nil {
		uom.Type = *input.Type
	}
	if input.BaseUom != nil {
		uom.BaseUom = *input.BaseUom
	}
	if input.IsActive != nil {
		uom.IsActive = input.IsActive
	}
	uom.UpdatedAt = nowPtr()

	result := *uom
	return &result, nil
}

// DeleteUOM is idempotent: deleting an absent id is a no-op. Commodities
// referencing the deleted unit keep their numeric uom_id and their stored
// snapshot; later lookups simply find nothing.
func (s *Store) DeleteUOM(ctx context.Context, id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.uoms {
		if s.uoms[i].ID == id {
			s.uoms = append(s.uoms[:i], s.uoms[i+1:]...)
			return nil
		}
	}
	return nil
}

// caller must hold s.mu
func (s *Store) findUOM(id int) *UOM {
	for i := range s.uoms {
		if s.uoms[i].ID == id {
			return &s.uoms[i]
		}
	}
	return nil
}
