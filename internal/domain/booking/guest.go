package booking

import (
	"strings"

	"github.com/wrnass1/hotelbooking/internal/domain"
)

// Guest is an immutable value object identifying the person a booking is
// held for. Phone is optional.
type Guest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone,omitempty"`
}

// Validate checks the required guest identity fields.
func (g Guest) Validate() error {
	if strings.TrimSpace(g.Name) == "" {
		return domain.NewValidationError("guest name is required")
	}
	if !strings.Contains(g.Email, "@") {
		return domain.NewValidationError("guest email is invalid")
	}
	return nil
}
