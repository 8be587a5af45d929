package services

import (
	"github.com/pkg/errors"
	apiError "github.com/techagentng/studyfocus/errors"
	"gorm.io/gorm"
)

// notFoundAs reports a missing row as the given business error and passes every other failure through.
func notFoundAs(err error, businessErr *apiError.Error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return businessErr
	}
	return err
}
