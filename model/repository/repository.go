package repository

import (
	"context"
	"fmt"

	"github.com/go-faster/errors"
	"gorm.io/gorm"

	"shopzone.GO/core/apperr"
)

// Err maps a gorm error to an apperr kind. Missing rows become NotFound
// (what names the entity), anything else is treated as Transient.
func Err(op, what string, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return apperr.NotFound(op, what)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return err
	}
	if apperr.KindOf(err) != apperr.KindUnknown {
		return err
	}
	return apperr.Transient(op, err)
}

// Describe formats an entity reference for NotFound messages.
func Describe(entity string, id interface{}) string {
	return fmt.Sprintf("%s %v", entity, id)
}
