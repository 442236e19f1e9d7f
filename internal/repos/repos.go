// Package repos is the persistence layer. Every method takes an optional
// *gorm.DB transaction; nil means the repo's own handle. Driver failures are
// wrapped as ErrStoreUnavailable and never retried here; missing rows map to
// ErrNotFound.
package repos

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	pkgerrors "github.com/yungbote/lumina-backend/internal/pkg/errors"
)

func storeErr(err error) error {
	return fmt.Errorf("%w: %v", pkgerrors.ErrStoreUnavailable, err)
}

func notFoundOrStoreErr(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return pkgerrors.ErrNotFound
	}
	return storeErr(err)
}
