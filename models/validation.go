package models

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
)

type BlendProportionResult struct {
	Valid   bool            `json:"valid"`
	Total   decimal.Decimal `json:"total"`
	Message string          `json:"message"`
}

type CapacityValidationResult struct {
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors"`
}

var oneHundred = decimal.NewFromInt(100)

// ValidateBlendProportion reports whether the blend's component percentages
// sum to exactly 100. Percentages are decimals, so sets like
// 33.33 + 33.33 + 33.34 compare exactly without an epsilon. Read-only: the
// check never mutates components to force them into balance.
func (s *Store) ValidateBlendProportion(ctx context.Context, blendId int) (*BlendProportionResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	total := decimal.Zero
	for _, comp := range s.blendComponents {
		if comp.BlendId == blendId {
			total = total.Add(comp.Percentage)
		}
	}

	result := BlendProportionResult{
		Valid: total.Equal(oneHundred),
		Total: total,
	}
	if result.Valid {
		result.Message = "Valid"
	} else {
		result.Message = fmt.Sprintf("Total is %s%%, should be 100%%", total.String())
	}
	return &result, nil
}

// ValidateCapacity evaluates no constraint yet; it is kept as the extension
// point for capacity overlap checks.
func (s *Store) ValidateCapacity(ctx context.Context, input *NewCapacity) (*CapacityValidationResult, error) {
	return &CapacityValidationResult{Valid: true, Errors: []string{}}, nil
}
