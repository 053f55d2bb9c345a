package services

import (
	"errors"
	"time"

	apperrors "hotelhub/errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Clock returns the current time. Tests inject a fixed one.
type Clock func() time.Time

func defaultClock(c Clock) Clock {
	if c == nil {
		return func() time.Time { return time.Now().UTC() }
	}
	return c
}

// lockForUpdate adds SELECT ... FOR UPDATE where the dialect has row locks.
// SQLite serializes writers on its own.
func lockForUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "postgres" {
		return tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return tx
}

// findOr404 loads dest by primary key, mapping a miss to NotFound.
func findOr404(tx *gorm.DB, dest interface{}, id uint, notFound string) error {
	err := tx.First(dest, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperrors.NotFound(notFound)
	}
	if err != nil {
		return apperrors.Internal(err)
	}
	return nil
}

// asAppError passes AppErrors through and wraps anything else as internal.
func asAppError(err error) error {
	if err == nil || apperrors.IsAppError(err) {
		return err
	}
	return apperrors.Internal(err)
}

func isDuplicate(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey)
}

// Page is a 1-based page request.
type Page struct {
	Page  int
	Limit int
}

// Normalize defaults the page to 1 and the limit to 20 (max 100).
func (p Page) Normalize() Page {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Limit < 1 || p.Limit > 100 {
		p.Limit = 20
	}
	return p
}

func (p Page) apply(tx *gorm.DB) *gorm.DB {
	p = p.Normalize()
	return tx.Offset((p.Page - 1) * p.Limit).Limit(p.Limit)
}
