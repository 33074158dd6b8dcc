// internal/customer/domain.go
package customer

import (
	"time"

	"github.com/google/uuid"
)

// Membership tiers.
const (
	MembershipBronze = "bronze"
	MembershipSilver = "silver"
	MembershipGold   = "gold"
)

// ValidMembership reports whether tier is a known membership tier.
func ValidMembership(tier string) bool {
	switch tier {
	case MembershipBronze, MembershipSilver, MembershipGold:
		return true
	}
	return false
}

// Customer is the shop profile linked 1:1 to a user principal.
type Customer struct {
	ID         uuid.UUID  `json:"id"`
	UserID     uuid.UUID  `json:"user_id"`
	Phone      string     `json:"phone"`
	BirthDate  *time.Time `json:"birth_date,omitempty"`
	Membership string     `json:"membership"`
}
