// Package services contains server-side business logic. Every operation is
// scoped to the calling user's id; rows of other users behave as absent.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/fitlog/internal/common"
	"github.com/dmitrijs2005/fitlog/internal/dbx"
	"github.com/dmitrijs2005/fitlog/internal/logging"
	"github.com/dmitrijs2005/fitlog/internal/server/models"
	"github.com/dmitrijs2005/fitlog/internal/server/repositories/foods"
	"github.com/dmitrijs2005/fitlog/internal/server/repositories/repomanager"
)

// MaxTreeDepth bounds how deeply food entries may nest in one payload.
const MaxTreeDepth = 16

// FoodService maintains food trees and their photo links.
type FoodService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	summaries   *SummaryCache
	log         logging.Logger
	now         func() time.Time
}

func NewFoodService(db *sql.DB, m repomanager.RepositoryManager, summaries *SummaryCache, log logging.Logger) *FoodService {
	return &FoodService{
		db:          db,
		repomanager: m,
		summaries:   summaries,
		log:         log.With("module", "foods"),
		now:         time.Now,
	}
}

// Save creates or updates the tree rooted at in and returns the ids of
// every saved entry, root first, then children depth-first in payload order.
func (s *FoodService) Save(ctx context.Context, userID int64, in models.FoodInput) ([]int64, error) {
	var ids []int64
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		var err error
		ids, err = s.saveTree(ctx, tx, userID, &in, nil, map[int64]bool{}, 0)
		return err
	})
	if err != nil {
		return nil, err
	}
	s.summaries.Invalidate(userID)
	s.log.Info(ctx, "food saved", "user_id", userID, "ids", ids)
	return ids, nil
}

// Update saves in over the existing entry id, which must belong to the user.
func (s *FoodService) Update(ctx context.Context, userID, id int64, in models.FoodInput) ([]int64, error) {
	in.ID = &id
	var ids []int64
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if _, err := s.repomanager.Foods(tx).Get(ctx, userID, id); err != nil {
			return err
		}
		var err error
		ids, err = s.saveTree(ctx, tx, userID, &in, nil, map[int64]bool{}, 0)
		return err
	})
	if err != nil {
		return nil, err
	}
	s.summaries.Invalidate(userID)
	s.log.Info(ctx, "food updated", "user_id", userID, "ids", ids)
	return ids, nil
}

func (s *FoodService) saveTree(ctx context.Context, tx dbx.DBTX, userID int64, in *models.FoodInput, parent *models.Food, seen map[int64]bool, depth int) ([]int64, error) {
	if depth >= MaxTreeDepth {
		return nil, common.Validationf("Food entries may not be nested more than %d levels deep.", MaxTreeDepth)
	}
	repo := s.repomanager.Foods(tx)

	var f *models.Food
	if in.ID != nil {
		existing, err := repo.Get(ctx, userID, *in.ID)
		switch {
		case err == nil:
			f = existing
		case !errors.Is(err, common.ErrorNotFound):
			return nil, err
		}
	}
	creating := f == nil
	if creating {
		f = &models.Food{UserID: userID}
	}
	if !creating && seen[f.ID] {
		return nil, common.Validationf("Food entry %d appears more than once in the tree.", f.ID)
	}
	oldDate := f.Date
	linked := f.PhotoID != nil || f.PhotoGroupID != nil

	in.ApplyTo(f)
	t, err := normalizeTime(in.Time)
	if err != nil {
		return nil, err
	}
	if in.Time != nil {
		f.Time = t
	}
	f.Name = strings.TrimSpace(f.Name)
	if f.Name == "" {
		return nil, common.Validationf("A food entry needs a name.")
	}

	switch {
	case parent != nil:
		if !creating {
			if err := checkNotAncestor(ctx, repo, userID, f.ID, parent); err != nil {
				return nil, err
			}
		}
		f.ParentID = &parent.ID
		f.Date = parent.Date
	case f.ParentID != nil:
		// a stored child saved on its own keeps its parent's date
		p, err := repo.Get(ctx, userID, *f.ParentID)
		if err != nil {
			return nil, err
		}
		f.Date = p.Date
	case f.Date.IsZero():
		f.Date = models.DateOf(s.now())
	}

	moved := !creating && !f.Date.Equal(oldDate)
	if moved && linked && in.PhotoIDs == nil {
		return nil, common.Validationf("Food entry %d has photos from %s; link photos of %s before moving it.", f.ID, oldDate, f.Date)
	}

	var plan *photoLink
	if in.PhotoIDs != nil {
		if plan, err = s.planPhotoLink(ctx, tx, userID, f.Date, *in.PhotoIDs); err != nil {
			return nil, err
		}
	}

	if creating {
		if _, err := repo.Create(ctx, f); err != nil {
			return nil, err
		}
	} else if err := repo.Update(ctx, f); err != nil {
		return nil, err
	}
	seen[f.ID] = true

	if plan != nil {
		if err := s.linkPhotos(ctx, tx, userID, f, plan); err != nil {
			return nil, err
		}
	}

	ids := []int64{f.ID}
	for i := range in.Children {
		childIDs, err := s.saveTree(ctx, tx, userID, &in.Children[i], f, seen, depth+1)
		if err != nil {
			return nil, err
		}
		ids = append(ids, childIDs...)
	}

	if moved {
		if err := moveDescendants(ctx, repo, userID, f); err != nil {
			return nil, err
		}
	}
	return ids, nil
}

// checkNotAncestor fails when id is parent itself or one of its ancestors.
func checkNotAncestor(ctx context.Context, repo foods.Repository, userID, id int64, parent *models.Food) error {
	visited := map[int64]bool{}
	for cur := parent; ; {
		if cur.ID == id {
			return common.Validationf("Food entry %d cannot be nested inside its own subtree.", id)
		}
		if cur.ParentID == nil || visited[cur.ID] {
			return nil
		}
		visited[cur.ID] = true

		next, err := repo.Get(ctx, userID, *cur.ParentID)
		if errors.Is(err, common.ErrorNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		cur = next
	}
}

// moveDescendants puts every stored row below f on f's date. A row linked
// to photos of another date stops the move.
func moveDescendants(ctx context.Context, repo foods.Repository, userID int64, f *models.Food) error {
	rows, err := repo.ListDescendants(ctx, userID, f.ID)
	if err != nil {
		return err
	}
	for _, d := range rows {
		if d.Date.Equal(f.Date) {
			continue
		}
		if d.PhotoID != nil || d.PhotoGroupID != nil {
			return common.Validationf("Food entry %d has photos from %s; link photos of %s before moving it.", d.ID, d.Date, f.Date)
		}
	}
	return repo.SetSubtreeDate(ctx, userID, f.ID, f.Date)
}

// Delete removes the entry and its whole subtree. The ids of the removed
// rows are returned children first.
func (s *FoodService) Delete(ctx context.Context, userID, id int64) ([]int64, error) {
	return s.DeleteMany(ctx, userID, []int64{id})
}

// DeleteMany removes several subtrees in one transaction. If any id does not
// resolve nothing is deleted.
func (s *FoodService) DeleteMany(ctx context.Context, userID int64, ids []int64) ([]int64, error) {
	var deleted []int64
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Foods(tx)
		removed := map[int64]bool{}
		for _, id := range ids {
			if removed[id] {
				continue
			}
			if _, err := repo.Get(ctx, userID, id); err != nil {
				return err
			}
			subtree, err := deleteSubtree(ctx, repo, userID, id, removed)
			if err != nil {
				return err
			}
			deleted = append(deleted, subtree...)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.summaries.Invalidate(userID)
	s.log.Info(ctx, "food deleted", "user_id", userID, "ids", deleted)
	return deleted, nil
}

// deleteSubtree deletes in post-order using an explicit stack.
func deleteSubtree(ctx context.Context, repo foods.Repository, userID, rootID int64, removed map[int64]bool) ([]int64, error) {
	type frame struct {
		id       int64
		expanded bool
	}
	var deleted []int64
	visited := map[int64]bool{rootID: true}
	stack := []frame{{id: rootID}}

	for len(stack) > 0 {
		top := len(stack) - 1
		id := stack[top].id

		if !stack[top].expanded {
			stack[top].expanded = true
			children, err := repo.ListChildren(ctx, userID, id)
			if err != nil {
				return nil, err
			}
			for i := len(children) - 1; i >= 0; i-- {
				c := children[i].ID
				if visited[c] {
					return nil, fmt.Errorf("food %d: parent cycle through %d", rootID, c)
				}
				visited[c] = true
				stack = append(stack, frame{id: c})
			}
			continue
		}

		stack = stack[:top]
		if err := repo.Delete(ctx, userID, id); err != nil {
			return nil, err
		}
		removed[id] = true
		deleted = append(deleted, id)
	}
	return deleted, nil
}

func (s *FoodService) Get(ctx context.Context, userID, id int64, opts models.RenderOptions) (*models.FoodView, error) {
	f, err := s.repomanager.Foods(s.db).Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	v, err := s.render(ctx, s.db, f, opts)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// ListByDate returns every entry of the date, children included.
func (s *FoodService) ListByDate(ctx context.Context, userID int64, date models.Date, opts models.RenderOptions) ([]models.FoodView, error) {
	list, err := s.repomanager.Foods(s.db).ListByDate(ctx, userID, date)
	if err != nil {
		return nil, err
	}
	return s.renderAll(ctx, s.db, list, opts)
}

// ListByPhoto returns top-level entries that show the photo, directly or
// through its group.
func (s *FoodService) ListByPhoto(ctx context.Context, userID, photoID int64) ([]models.FoodView, error) {
	photo, err := s.repomanager.Photos(s.db).Get(ctx, userID, photoID)
	if err != nil {
		return nil, err
	}
	list, err := s.repomanager.Foods(s.db).ListRootsByPhoto(ctx, userID, photo.ID, photo.GroupID)
	if err != nil {
		return nil, err
	}
	return s.renderAll(ctx, s.db, list, models.RenderOptions{Photos: true, Children: true})
}

// CreateFromPhotos logs a placeholder entry for a set of photos taken on
// one date and links the photos to it.
func (s *FoodService) CreateFromPhotos(ctx context.Context, userID int64, photoIDs []int64) (int64, error) {
	if len(photoIDs) == 0 {
		return 0, common.Validationf("No photos provided.")
	}
	var id int64
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		photos, err := s.resolvePhotos(ctx, tx, userID, photoIDs)
		if err != nil {
			return err
		}
		date := photos[0].Date
		for _, p := range photos[1:] {
			if !p.Date.Equal(date) {
				return common.Validationf("Photos were not taken on the same date.")
			}
		}

		name := "Unknown"
		ids, err := s.saveTree(ctx, tx, userID, &models.FoodInput{
			Name:     &name,
			Date:     &date,
			PhotoIDs: &photoIDs,
		}, nil, map[int64]bool{}, 0)
		if err != nil {
			return err
		}
		id = ids[0]
		return nil
	})
	if err != nil {
		return 0, err
	}
	s.summaries.Invalidate(userID)
	s.log.Info(ctx, "food created from photos", "user_id", userID, "id", id, "photos", photoIDs)
	return id, nil
}
