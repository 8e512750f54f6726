package queries

import (
	"context"

	"court-booking/internal/usecase/shared"
)

type CatalogQueries interface {
	ListCourts(ctx context.Context) ([]*CourtView, error)
	ListEntryTypes(ctx context.Context) ([]*EntryTypeView, error)
}

type catalogQueriesImpl struct {
	catalog shared.Catalog
}

func NewCatalogQueries(catalog shared.Catalog) CatalogQueries {
	return &catalogQueriesImpl{catalog: catalog}
}

func (q *catalogQueriesImpl) ListCourts(ctx context.Context) ([]*CourtView, error) {
	courts, err := q.catalog.ListCourts(ctx)
	if err != nil {
		return nil, err
	}
	views := make([]*CourtView, 0, len(courts))
	for _, c := range courts {
		views = append(views, &CourtView{ID: c.ID, Name: c.Name})
	}
	return views, nil
}

func (q *catalogQueriesImpl) ListEntryTypes(ctx context.Context) ([]*EntryTypeView, error) {
	types, err := q.catalog.ListEntryTypes(ctx)
	if err != nil {
		return nil, err
	}
	views := make([]*EntryTypeView, 0, len(types))
	for _, t := range types {
		views = append(views, &EntryTypeView{ID: t.ID, Name: t.Name})
	}
	return views, nil
}
