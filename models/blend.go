package models

import (
	"context"
	"time"

	"github.com/mmdatafocus/blending_backend/utils"
	"github.com/shopspring/decimal"
)

type Blend struct {
	ID          int        `json:"id"`
	Name        string     `json:"name"`
	CommodityId int        `json:"commodity_id"`
	Description string     `json:"description"`
	IsActive    *bool      `json:"is_active"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty"`
}

type NewBlend struct {
	Name        *string `json:"name"`
	CommodityId *int    `json:"commodity_id"`
	Description *string `json:"description"`
	IsActive    *bool   `json:"is_active"`
}

// NewBlendComponentInput is one (commodity, percentage) pair of a composite
// blend create.
type NewBlendComponentInput struct {
	ComponentCommodityId int             `json:"component_commodity_id"`
	Percentage           decimal.Decimal `json:"percentage"`
}

type NewBlendWithComponents struct {
	Name        string                   `json:"name"`
	CommodityId *int                     `json:"commodity_id"`
	Description *string                  `json:"description"`
	IsActive    *bool                    `json:"is_active"`
	Components  []NewBlendComponentInput `json:"components"`
}

func (s *Store) CreateBlend(ctx context.Context, input *NewBlend) (*Blend, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	blend := s.createBlendLocked(input)
	result := blend
	return &result, nil
}

// CreateBlendWithComponents creates the blend, then one component per list
// entry linked to the new blend id. The operation is not atomic: components
// created before a failure stay committed.
func (s *Store) CreateBlendWithComponents(ctx context.Context, input *NewBlendWithComponents) (*Blend, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	blend := s.createBlendLocked(&NewBlend{
		Name:        &input.Name,
		CommodityId: input.CommodityId,
		Description: input.Description,
		IsActive:    input.IsActive,
	})

	for _, comp := range input.Components {
		s.createBlendComponentLocked(&NewBlendComponent{
			BlendId:              &blend.ID,
			ComponentCommodityId: &comp.ComponentCommodityId,
			Percentage:           &comp.Percentage,
		})
	}

	result := blend
	return &result, nil
}

// caller must hold s.mu
func (s *Store) createBlendLocked(input *NewBlend) Blend {
	blend := Blend{
		ID:          s.nextBlendId,
		Name:        utils.DereferencePtr(input.Name),
		CommodityId: utils.DereferencePtr(input.CommodityId),
		Description: utils.DereferencePtr(input.Description),
		IsActive:    utils.NewTrue(),
		CreatedAt:   now(),
	}
	if input.IsActive != nil {
		blend.IsActive = input.IsActive
	}
	s.nextBlendId++
	s.blends = append(s.blends, blend)
	return blend
}

func (s *Store) GetBlend(ctx context.Context, id int) (*Blend, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	blend := s.findBlend(id)
	if blend == nil {
		return nil, utils.ErrorRecordNotFound
	}
	result := *blend
	return &result, nil
}

func (s *Store) GetBlends(ctx context.Context) ([]Blend, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	results := make([]Blend, len(s.blends))
	copy(results, s.blends)
	return results, nil
}

func (s *Store) UpdateBlend(ctx context.Context, id int, input *NewBlend) (*Blend, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	blend := s.findBlend(id)
	if blend == nil {
		return nil, utils.ErrorRecordNotFound
	}

	if input.Name != nil {
		blend.Name = *input.Name
	}
	if input.CommodityId != nil {
		blend.CommodityId = *input.CommodityId
	}
	if input.Description != nil {
		blend.Description = *input.Description
	}
	if input.IsActive != nil {
		blend.IsActive = input.IsActive
	}
	blend.UpdatedAt = nowPtr()

	result := *blend
	return &result, nil
}

// DeleteBlend cascades: every component referencing the blend is removed in
// the same operation so no orphan components remain.
func (s *Store) DeleteBlend(ctx context.Context, id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.blends {
		if s.blends[i].ID == id {
			s.blends = append(s.blends[:i], s.blends[i+1:]...)
			break
		}
	}

	kept := s.blendComponents[:0]
	for _, comp := range s.blendComponents {
		if comp.BlendId != id {
			kept = append(kept, comp)
		}
	}
	s.blendComponents = kept
	return nil
}

// caller must hold s.mu
func (s *Store) findBlend(id int) *Blend {
	for i := range s.blends {
		if s.blends[i].ID == id {
			return &s.blends[i]
		}
	}
	return nil
}

// caller must hold s.mu
func (s *Store) resolveBlendSnapshot(blendId int) *Blend {
	blend := s.findBlend(blendId)
	if blend == nil {
		return nil
	}
	snapshot := *blend
	return &snapshot
}
