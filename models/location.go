package models

import (
	"context"
	"time"

	"github.com/mmdatafocus/blending_backend/utils"
)

type Location struct {
	ID             int        `json:"id"`
	Name           string     `json:"name"`
	LocationType   string     `json:"location_type"`
	Address        string     `json:"address"`
	CounterPartyId int        `json:"counterparty_id"`
	IsActive       *bool      `json:"is_active"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      *time.Time `json:"updated_at,omitempty"`
}

type NewLocation struct {
	Name           *string `json:"name"`
	LocationType   *string `json:"location_type"`
	Address        *string `json:"address"`
	CounterPartyId *int    `json:"counterparty_id"`
	IsActive       *bool   `json:"is_active"`
}

func (s *Store) CreateLocation(ctx context.Context, input *NewLocation) (*Location, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	location := Location{
		ID:             s.nextLocationId,
		Name:           utils.DereferencePtr(input.Name),
		LocationType:   utils.DereferencePtr(input.LocationType),
		Address:        utils.DereferencePtr(input.Address),
		CounterPartyId: utils.DereferencePtr(input.CounterPartyId),
		IsActive:       utils.NewTrue(),
		CreatedAt:      now(),
	}
	if input.IsActive != nil {
		location.IsActive = input.IsActive
	}
	s.nextLocationId++
	s.locations = append(s.locations, location)

	result := location
	return &result, nil
}

func (s *Store) GetLocation(ctx context.Context, id int) (*Location, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	location := s.findLocation(id)
	if location == nil {
		return nil, utils.ErrorRecordNotFound
	}
	result := *location
	return &result, nil
}

// GetLocationDetails exists alongside GetLocation for parity with the
// commodity details read; locations carry no embedded snapshot today, so
// the live view is the record itself.
func (s *Store) GetLocationDetails(ctx context.Context, id int) (*Location, error) {
	return s.GetLocation(ctx, id)
}

func (s *Store) GetLocations(ctx context.Context) ([]Location, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	results := make([]Location, len(s.locations))
	copy(results, s.locations)
	return results, nil
}

func (s *Store) UpdateLocation(ctx context.Context, id int, input *NewLocation) (*Location, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	location := s.findLocation(id)
	if location == nil {
		return nil, utils.ErrorRecordNotFound
	}

	if input.Name != nil {
		location.Name = *input.Name
	}
	if input.LocationType != nil {
		location.LocationType = *input.LocationType
	}
	if input.Address != nil {
		location.Address = *input.Address
	}
	if input.CounterPartyId != nil {
		location.CounterPartyId = *input.CounterPartyId
	}
	if input.IsActive != nil {
		location.IsActive = input.IsActive
	}
	location.UpdatedAt = nowPtr()

	result := *location
	return &result, nil
}

func (s *Store) DeleteLocation(ctx context.Context, id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.locations {
		if s.locations[i].ID == id {
			s.locations = append(s.locations[:i], s.locations[i+1:]...)
			return nil
		}
	}
	return nil
}

// caller must hold s.mu
func (s *Store) findLocation(id int) *Location {
	for i := range s.locations {
		if s.locations[i].ID == id {
			return &s.locations[i]
		}
	}
	return nil
}

// caller must hold s.mu
func (s *Store) resolveLocationSnapshot(locationId int) *Location {
	location := s.findLocation(locationId)
	if location == nil {
		return nil
	}
	snapshot := *location
	return &snapshot
}
