package models

type CreditStatus string

const (
	CreditStatusApproved CreditStatus = "approved"
	CreditStatusPending  CreditStatus = "pending"
	CreditStatusRejected CreditStatus = "rejected"
	CreditStatusUnset    CreditStatus = "unset"
)

func (cs CreditStatus) IsValid() bool {
	switch cs {
	case CreditStatusApproved, CreditStatusPending, CreditStatusRejected, CreditStatusUnset:
		return true
	}
	return false
}

// Entity keys used by the export/template/import endpoints.
const (
	EntityKeyCommodities     = "commodities"
	EntityKeyUOMs            = "uoms"
	EntityKeyLocations       = "locations"
	EntityKeyCounterParties  = "counter_parties"
	EntityKeyBlends          = "blends"
	EntityKeyBlendComponents = "blend_components"
	EntityKeyCapacity        = "capacity"
)
