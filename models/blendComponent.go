package models

import (
	"context"
	"time"

	"github.com/mmdatafocus/blending_backend/utils"
	"github.com/shopspring/decimal"
)

type BlendComponent struct {
	ID                   int             `json:"id"`
	BlendId              int             `json:"blend_id"`
	ComponentCommodityId int             `json:"component_commodity_id"`
	Percentage           decimal.Decimal `json:"percentage"`
	IsActive             *bool           `json:"is_active"`
	CreatedAt            time.Time       `json:"created_at"`
	UpdatedAt            *time.Time      `json:"updated_at,omitempty"`
	Commodity            *Commodity      `json:"commodity,omitempty"`
	Blend                *Blend          `json:"blend,omitempty"`
}

type NewBlendComponent struct {
	BlendId              *int             `json:"blend_id"`
	ComponentCommodityId *int             `json:"component_commodity_id"`
	Percentage           *decimal.Decimal `json:"percentage"`
	IsActive             *bool            `json:"is_active"`
}

// CreateBlendComponent tolerates absent foreign keys by defaulting them to
// zero; enrichment then finds nothing and the snapshots stay nil. Callers
// wanting hard guarantees validate the keys before calling.
func (s *Store) CreateBlendComponent(ctx context.Context, input *NewBlendComponent) (*BlendComponent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	component := s.createBlendComponentLocked(input)
	result := component
	return &result, nil
}

// caller must hold s.mu
func (s *Store) createBlendComponentLocked(input *NewBlendComponent) BlendComponent {
	blendId := utils.DereferencePtr(input.BlendId)
	commodityId := utils.DereferencePtr(input.ComponentCommodityId)

	component := BlendComponent{
		ID:                   s.nextBlendComponentId,
		BlendId:              blendId,
		ComponentCommodityId: commodityId,
		Percentage:           utils.DereferencePtr(input.Percentage, decimal.Zero),
		IsActive:             utils.NewTrue(),
		CreatedAt:            now(),
		Commodity:            s.resolveCommoditySnapshot(commodityId),
		Blend:                s.resolveBlendSnapshot(blendId),
	}
	if input.IsActive != nil {
		component.IsActive = input.IsActive
	}
	s.nextBlendComponentId++
	s.blendComponents = append(s.blendComponents, component)
	return component
}

func (s *Store) GetBlendComponent(ctx context.Context, id int) (*BlendComponent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	component := s.findBlendComponent(id)
	if component == nil {
		return nil, utils.ErrorRecordNotFound
	}
	result := *component
	return &result, nil
}

func (s *Store) GetBlendComponents(ctx context.Context) ([]BlendComponent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	results := make([]BlendComponent, len(s.blendComponents))
	copy(results, s.blendComponents)
	return results, nil
}

// GetBlendComponentsByBlend returns the blend's components in insertion order.
func (s *Store) GetBlendComponentsByBlend(ctx context.Context, blendId int) ([]BlendComponent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var results []BlendComponent
	for _, comp := range s.blendComponents {
		if comp.BlendId == blendId {
			results = append(results, comp)
		}
	}
	return results, nil
}

func (s *Store) UpdateBlendComponent(ctx context.Context, id int, input *NewBlendComponent) (*BlendComponent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	component := s.findBlendComponent(id)
	if component == nil {
		return nil, utils.ErrorRecordNotFound
	}

	if input.BlendId != nil {
		component.BlendId = *input.BlendId
		if snapshot := s.resolveBlendSnapshot(*input.BlendId); snapshot != nil {
			component.Blend = snapshot
		}
	}
	if input.ComponentCommodityId != nil {
		component.ComponentCommodityId = *input.ComponentCommodityId
		if snapshot := s.resolveCommoditySnapshot(*input.ComponentCommodityId); snapshot != nil {
			component.Commodity = snapshot
		}
	}
	if input.Percentage != nil {
		component.Percentage = *input.Percentage
	}
	if input.IsActive != nil {
		component.IsActive = input.IsActive
	}
	component.UpdatedAt = nowPtr()

	result := *component
	return &result, nil
}

func (s *Store) DeleteBlendComponent(ctx context.Context, id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.blendComponents {
		if s.blendComponents[i].ID == id {
			s.blendComponents = append(s.blendComponents[:i], s.blendComponents[i+1:]...)
			return nil
		}
	}
	return nil
}

// caller must hold s.mu
func (s *Store) findBlendComponent(id int) *BlendComponent {
	for i := range s.blendComponents {
		if s.blendComponents[i].ID == id {
			return &s.blendComponents[i]
		}
	}
	return nil
}
