package repository

import (
	"context"

	"court-booking/internal/domain/court"
	"court-booking/internal/infra"
	"court-booking/internal/infra/db"
)

// CatalogRepository reads the seeded courts and entry types.
type CatalogRepository struct {
	db db.DBTX
}

func NewCatalogRepository(db db.DBTX) *CatalogRepository {
	return &CatalogRepository{db: db}
}

func (r *CatalogRepository) CourtExists(ctx context.Context, id int64) (bool, error) {
	return r.exists(ctx, `SELECT EXISTS (SELECT 1 FROM courts WHERE id = $1)`, id)
}

func (r *CatalogRepository) EntryTypeExists(ctx context.Context, id int64) (bool, error) {
	return r.exists(ctx, `SELECT EXISTS (SELECT 1 FROM entry_types WHERE id = $1)`, id)
}

func (r *CatalogRepository) ListCourts(ctx context.Context) ([]court.Court, error) {
	rows, err := r.db.Query(ctx, `SELECT id, name FROM courts ORDER BY id`)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list courts", err)
	}
	defer rows.Close()

	var courts []court.Court
	for rows.Next() {
		var c court.Court
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, infra.WrapRepoErr("failed to scan court", err)
		}
		courts = append(courts, c)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate courts", err)
	}
	return courts, nil
}

func (r *CatalogRepository) ListEntryTypes(ctx context.Context) ([]court.EntryType, error) {
	rows, err := r.db.Query(ctx, `SELECT id, name FROM entry_types ORDER BY id`)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list entry types", err)
	}
	defer rows.Close()

	var types []court.EntryType
	for rows.Next() {
		var t court.EntryType
		if err := rows.Scan(&t.ID, &t.Name); err != nil {
			return nil, infra.WrapRepoErr("failed to scan entry type", err)
		}
		types = append(types, t)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate entry types", err)
	}
	return types, nil
}

func (r *CatalogRepository) exists(ctx context.Context, query string, id int64) (bool, error) {
	if id <= 0 {
		return false, nil
	}
	var ok bool
	if err := r.db.QueryRow(ctx, query, id).Scan(&ok); err != nil {
		return false, infra.WrapRepoErr("failed to check catalog entry", err)
	}
	return ok, nil
}
