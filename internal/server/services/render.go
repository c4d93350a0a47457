package services

import (
	"context"

	"github.com/dmitrijs2005/fitlog/internal/dbx"
	"github.com/dmitrijs2005/fitlog/internal/server/models"
)

func (s *FoodService) renderAll(ctx context.Context, db dbx.DBTX, list []*models.Food, opts models.RenderOptions) ([]models.FoodView, error) {
	out := make([]models.FoodView, 0, len(list))
	for _, f := range list {
		v, err := s.render(ctx, db, f, opts)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

func (s *FoodService) render(ctx context.Context, db dbx.DBTX, f *models.Food, opts models.RenderOptions) (models.FoodView, error) {
	return s.renderDepth(ctx, db, f, opts, 0)
}

func (s *FoodService) renderDepth(ctx context.Context, db dbx.DBTX, f *models.Food, opts models.RenderOptions, depth int) (models.FoodView, error) {
	v := models.FoodView{Food: *f, Options: opts}

	if opts.Photos {
		ids, err := s.photoIDs(ctx, db, f)
		if err != nil {
			return v, err
		}
		v.PhotoIDs = ids
	}

	if !opts.ChildrenIDs && !opts.Children {
		return v, nil
	}
	children, err := s.repomanager.Foods(db).ListChildren(ctx, f.UserID, f.ID)
	if err != nil {
		return v, err
	}
	if opts.ChildrenIDs {
		v.ChildrenIDs = make([]int64, len(children))
		for i, c := range children {
			v.ChildrenIDs[i] = c.ID
		}
	}
	// Stored trees never exceed MaxTreeDepth, so deeper levels can only come
	// from a corrupted parent chain.
	if opts.Children && depth < MaxTreeDepth {
		v.Children = make([]models.FoodView, 0, len(children))
		for _, c := range children {
			cv, err := s.renderDepth(ctx, db, c, opts, depth+1)
			if err != nil {
				return v, err
			}
			v.Children = append(v.Children, cv)
		}
	}
	return v, nil
}

// photoIDs lists the photos of an entry: the group's photos when grouped,
// else the single linked photo.
func (s *FoodService) photoIDs(ctx context.Context, db dbx.DBTX, f *models.Food) ([]int64, error) {
	switch {
	case f.PhotoGroupID != nil:
		photos, err := s.repomanager.Photos(db).ListByGroup(ctx, f.UserID, *f.PhotoGroupID)
		if err != nil {
			return nil, err
		}
		ids := make([]int64, len(photos))
		for i, p := range photos {
			ids[i] = p.ID
		}
		return ids, nil
	case f.PhotoID != nil:
		return []int64{*f.PhotoID}, nil
	default:
		return []int64{}, nil
	}
}
