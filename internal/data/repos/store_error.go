package repos

import (
	"github.com/regdesk/regdesk-backend/internal/pkg/apierr"
)

// storeErr wraps any persistence failure into the uniform store-error kind.
// Repositories never translate store failures into domain semantics.
func storeErr(err error) error {
	if err == nil {
		return nil
	}
	return apierr.Store(err)
}
