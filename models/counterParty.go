package models

import (
	"context"
	"time"

	"github.com/mmdatafocus/blending_backend/utils"
)

type CounterParty struct {
	ID           int          `json:"id"`
	Name         string       `json:"name"`
	Type         string       `json:"type"`
	ContactInfo  string       `json:"contact_info"`
	CreditStatus CreditStatus `json:"credit_status"`
	IsActive     *bool        `json:"is_active"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    *time.Time   `json:"updated_at,omitempty"`
}

type NewCounterParty struct {
	Name         *string       `json:"name"`
	Type         *string       `json:"type"`
	ContactInfo  *string       `json:"contact_info"`
	CreditStatus *CreditStatus `json:"credit_status"`
	IsActive     *bool         `json:"is_active"`
}

func (s *Store) CreateCounterParty(ctx context.Context, input *NewCounterParty) (*CounterParty, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	counterParty := CounterParty{
		ID:           s.nextCounterPartyId,
		Name:         utils.DereferencePtr(input.Name),
		Type:         utils.DereferencePtr(input.Type),
		ContactInfo:  utils.DereferencePtr(input.ContactInfo),
		CreditStatus: utils.DereferencePtr(input.CreditStatus, CreditStatusUnset),
		IsActive:     utils.NewTrue(),
		CreatedAt:    now(),
	}
	if input.IsActive != nil {
		counterParty.IsActive = input.IsActive
	}
	s.nextCounterPartyId++
	s.counterParties = append(s.counterParties, counterParty)

	result := counterParty
	return &result, nil
}

func (s *Store) GetCounterParty(ctx context.Context, id int) (*CounterParty, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	counterParty := s.findCounterParty(id)
	if counterParty == nil {
		return nil, utils.ErrorRecordNotFound
	}
	result := *counterParty
	return &result, nil
}

func (s *Store) GetCounterParties(ctx context.Context) ([]CounterParty, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	results := make([]CounterParty, len(s.counterParties))
	copy(results, s.counterParties)
	return results, nil
}

func (s *Store) UpdateCounterParty(ctx context.Context, id int, input *NewCounterParty) (*CounterParty, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	counterParty := s.findCounterParty(id)
	if counterParty == nil {
		return nil, utils.ErrorRecordNotFound
	}

	if input.Name != nil {
		counterParty.Name = *input.Name
	}
	if input.Type != nil {
		counterParty.Type = *input.Type
	}
	if input.ContactInfo != nil {
		counterParty.ContactInfo = *input.ContactInfo
	}
	if input.CreditStatus != nil {
		counterParty.CreditStatus = *input.CreditStatus
	}
	if input.IsActive != nil {
		counterParty.IsActive = input.IsActive
	}
	counterParty.UpdatedAt = nowPtr()

	result := *counterParty
	return &result, nil
}

func (s *Store) DeleteCounterParty(ctx context.Context, id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.counterParties {
		if s.counterParties[i].ID == id {
			s.counterParties = append(s.counterParties[:i], s.counterParties[i+1:]...)
			return nil
		}
	}
	return nil
}

// caller must hold s.mu
func (s *Store) findCounterParty(id int) *CounterParty {
	for i := range s.counterParties {
		if s.counterParties[i].ID == id {
			return &s.counterParties[i]
		}
	}
	return nil
}
