package export

import (
	"strconv"
	"time"

	"github.com/regdesk/regdesk-backend/internal/domain"
)

// Column sets are fixed and ordered per entity type; callers never influence
// them. Sorting and filtering happen before the rows reach this package.

var registrationHeader = []string{"ID", "Name", "Email", "Phone", "Organization", "Status", "Amount", "Created At"}

var paymentHeader = []string{"ID", "Registration ID", "Reference", "Method", "Status", "Amount", "Created At"}

func Registrations(rows []*domain.Registration, format Format, now time.Time) (*Artifact, error) {
	records := make([][]string, 0, len(rows))
	for _, r := range rows {
		if r == nil {
			continue
		}
		records = append(records, []string{
			r.ID.String(),
			r.Name,
			r.Email,
			r.Phone,
			r.Organization,
			r.Status,
			strconv.FormatInt(r.Amount, 10),
			formatTime(r.CreatedAt),
		})
	}
	return encode("registrations", registrationHeader, records, format, now)
}

func Payments(rows []*domain.Payment, format Format, now time.Time) (*Artifact, error) {
	records := make([][]string, 0, len(rows))
	for _, p := range rows {
		if p == nil {
			continue
		}
		records = append(records, []string{
			p.ID.String(),
			p.RegistrationID.String(),
			p.Reference,
			p.Method,
			p.Status,
			strconv.FormatInt(p.Amount, 10),
			formatTime(p.CreatedAt),
		})
	}
	return encode("payments", paymentHeader, records, format, now)
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.RFC3339)
}
