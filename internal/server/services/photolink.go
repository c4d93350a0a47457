package services

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/fitlog/internal/common"
	"github.com/dmitrijs2005/fitlog/internal/dbx"
	"github.com/dmitrijs2005/fitlog/internal/server/models"
)

// resolvePhotos loads the photos in the order given. Every id must belong
// to the user.
func (s *FoodService) resolvePhotos(ctx context.Context, tx dbx.DBTX, userID int64, ids []int64) ([]*models.Photo, error) {
	unique := make(map[int64]bool, len(ids))
	for _, id := range ids {
		unique[id] = true
	}
	photos, err := s.repomanager.Photos(tx).GetMany(ctx, userID, ids)
	if err != nil {
		return nil, err
	}
	if len(photos) != len(unique) {
		found := make(map[int64]bool, len(photos))
		for _, p := range photos {
			found[p.ID] = true
		}
		for _, id := range ids {
			if !found[id] {
				return nil, fmt.Errorf("photo %d: %w", id, common.ErrorNotFound)
			}
		}
	}
	return photos, nil
}

// photoLink is a checked plan for linking a food entry to photos.
type photoLink struct {
	photos    []*models.Photo
	ungrouped []int64
	group     *models.PhotoGroup // the one existing group, reused
}

// planPhotoLink resolves the photos and checks every date against date. It
// only reads.
func (s *FoodService) planPhotoLink(ctx context.Context, tx dbx.DBTX, userID int64, date models.Date, photoIDs []int64) (*photoLink, error) {
	photos, err := s.resolvePhotos(ctx, tx, userID, photoIDs)
	if err != nil {
		return nil, err
	}
	for _, p := range photos {
		if !p.Date.Equal(date) {
			return nil, common.Validationf("Photo %d was taken on %s but the entry is dated %s.", p.ID, p.Date, date)
		}
	}

	plan := &photoLink{photos: photos}
	var groupIDs []int64
	inGroup := map[int64]bool{}
	for _, p := range photos {
		if p.GroupID == nil {
			plan.ungrouped = append(plan.ungrouped, p.ID)
			continue
		}
		if !inGroup[*p.GroupID] {
			inGroup[*p.GroupID] = true
			groupIDs = append(groupIDs, *p.GroupID)
		}
	}

	if len(groupIDs) == 1 {
		g, err := s.repomanager.PhotoGroups(tx).Get(ctx, userID, groupIDs[0])
		if err != nil {
			return nil, err
		}
		if !g.Date.Equal(date) {
			return nil, common.Validationf("Photo group %d is dated %s but the entry is dated %s.", g.ID, g.Date, date)
		}
		plan.group = g
	}
	return plan, nil
}

// linkPhotos points f at the planned photos, either directly (one
// ungrouped photo) or through a photo group, and saves f.
func (s *FoodService) linkPhotos(ctx context.Context, tx dbx.DBTX, userID int64, f *models.Food, plan *photoLink) error {
	photoRepo := s.repomanager.Photos(tx)

	switch {
	case len(plan.photos) == 0:
		f.PhotoID = nil
		f.PhotoGroupID = nil

	case plan.group != nil:
		if err := photoRepo.SetGroup(ctx, userID, plan.ungrouped, plan.group.ID); err != nil {
			return err
		}
		f.PhotoID = nil
		f.PhotoGroupID = &plan.group.ID

	case len(plan.photos) > 1:
		// Photos from different groups are merged into a fresh group. The
		// groups they leave behind are kept as they are.
		g, err := s.repomanager.PhotoGroups(tx).Create(ctx, &models.PhotoGroup{UserID: userID, Date: f.Date})
		if err != nil {
			return err
		}
		ids := make([]int64, len(plan.photos))
		for i, p := range plan.photos {
			ids[i] = p.ID
		}
		if err := photoRepo.SetGroup(ctx, userID, ids, g.ID); err != nil {
			return err
		}
		f.PhotoID = nil
		f.PhotoGroupID = &g.ID

	default:
		f.PhotoID = &plan.photos[0].ID
		f.PhotoGroupID = nil
	}

	return s.repomanager.Foods(tx).Update(ctx, f)
}
