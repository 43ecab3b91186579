package services

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	apperrors "fintrack/internal/errors"
	"fintrack/internal/pagination"
)

// Scope selects which rows a listing may return.
type Scope int

const (
	// ActiveOnly excludes soft-deleted rows. Every default path uses it.
	ActiveOnly Scope = iota
	// IncludeDeleted is reserved for the explicit history listings.
	IncludeDeleted
)

// activeScope is the soft-delete predicate. It is applied explicitly where
// queries are built; there is no default scope on the models.
func activeScope(db *gorm.DB) *gorm.DB {
	return db.Where("is_deleted = ?", false)
}

func ownedBy(userID string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("user_id = ?", userID)
	}
}

func scoped(db *gorm.DB, userID string, scope Scope) *gorm.DB {
	q := db.Scopes(ownedBy(userID))
	if scope == ActiveOnly {
		q = q.Scopes(activeScope)
	}
	return q
}

// listByUser loads every row of T owned by userID.
func listByUser[T any](db *gorm.DB, userID string, scope Scope, extra ...func(*gorm.DB) *gorm.DB) ([]T, error) {
	var out []T
	if err := scoped(db, userID, scope).Scopes(extra...).Find(&out).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return out, nil
}

// findOwned loads one active row of T. Rows owned by another user are
// reported exactly like missing rows.
func findOwned[T any](db *gorm.DB, userID, id string, notFound *apperrors.AppError) (*T, error) {
	var out T
	err := scoped(db, userID, ActiveOnly).Where("id = ?", id).First(&out).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &out, nil
}

// softDelete flags one active row of T as deleted.
func softDelete[T any](db *gorm.DB, userID, id string, notFound *apperrors.AppError) error {
	var model T
	res := scoped(db.Model(&model), userID, ActiveOnly).
		Where("id = ?", id).
		UpdateColumns(map[string]interface{}{"is_deleted": true, "updated_at": gorm.Expr("CURRENT_TIMESTAMP")})
	if res.Error != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, res.Error)
	}
	if res.RowsAffected == 0 {
		return notFound
	}
	return nil
}

// history pages through every row of T, deleted or not, newest first.
func history[T any](db *gorm.DB, userID string, page pagination.PageRequest) (*pagination.PageResponse[T], error) {
	page.Defaults()

	var model T
	base := scoped(db.Model(&model), userID, IncludeDeleted).Session(&gorm.Session{})

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var rows []T
	if err := base.Scopes(pagination.Paginate(page)).
		Order(clause.OrderByColumn{Column: clause.Column{Name: "date"}, Desc: true}).
		Order(clause.OrderByColumn{Column: clause.Column{Name: "created_at"}, Desc: true}).
		Find(&rows).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(rows, page.Page, page.PageSize, total)
	return &result, nil
}

// insertMany writes records in batches inside tx and returns the count.
func insertMany[T any](tx *gorm.DB, records []T) (int, error) {
	if len(records) == 0 {
		return 0, nil
	}
	if err := tx.CreateInBatches(records, 100).Error; err != nil {
		return 0, err
	}
	return len(records), nil
}
