package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"showlog/internal/models"
	"showlog/internal/repository"
)

// ListService owns all mutation and query logic for lists and their
// items. Every mutating operation verifies that the supplied owner
// actually owns the affected list instead of trusting the caller's
// lookup scoping.
type ListService struct {
	lists  repository.ListRepository
	logger *logrus.Logger
}

func NewListService(lists repository.ListRepository, logger *logrus.Logger) *ListService {
	return &ListService{lists: lists, logger: logger}
}

// ListUpdate carries a partial update; nil fields are left unchanged.
type ListUpdate struct {
	Name     *string
	IsPublic *bool
}

func (s *ListService) CreateList(ctx context.Context, ownerID, name string, isPublic bool) (*models.List, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("list name cannot be empty")
	}

	list, err := s.lists.Create(ctx, ownerID, name, isPublic)
	if err != nil {
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"list_id": list.ID,
		"user_id": ownerID,
	}).Info("List created")
	return list, nil
}

func (s *ListService) UpdateList(ctx context.Context, ownerID string, listID int, update ListUpdate) (*models.List, error) {
	list, err := s.ownedList(ctx, ownerID, listID)
	if err != nil {
		return nil, err
	}

	if update.Name != nil {
		if strings.TrimSpace(*update.Name) == "" {
			return nil, fmt.Errorf("list name cannot be empty")
		}
		list.Name = *update.Name
	}
	if update.IsPublic != nil {
		list.IsPublic = *update.IsPublic
	}

	if err := s.lists.Update(ctx, list); err != nil {
		return nil, err
	}
	return list, nil
}

// DeleteList removes the list and, through the storage cascade, all of
// its items.
func (s *ListService) DeleteList(ctx context.Context, ownerID string, listID int) error {
	if _, err := s.ownedList(ctx, ownerID, listID); err != nil {
		return err
	}

	if err := s.lists.Delete(ctx, listID); err != nil {
		return err
	}

	s.logger.WithFields(logrus.Fields{
		"list_id": listID,
		"user_id": ownerID,
	}).Info("List deleted")
	return nil
}

// AddMediaToList appends media to the list with status PLANNED and a
// position one past the current maximum. Adding media already in the
// list returns models.ErrDuplicateEntry.
func (s *ListService) AddMediaToList(ctx context.Context, ownerID string, listID, mediaID int) (*models.ListItem, error) {
	if _, err := s.ownedList(ctx, ownerID, listID); err != nil {
		return nil, err
	}

	item, err := s.lists.InsertItem(ctx, listID, mediaID)
	if err != nil {
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"list_id":  listID,
		"media_id": mediaID,
		"position": item.Position,
	}).Info("Media added to list")
	return item, nil
}

// RemoveMediaFromList deletes the matching item if present and reports
// whether anything was removed. Absence is not an error.
func (s *ListService) RemoveMediaFromList(ctx context.Context, ownerID string, listID, mediaID int) (bool, error) {
	if _, err := s.ownedList(ctx, ownerID, listID); err != nil {
		return false, err
	}
	return s.lists.DeleteItemByMedia(ctx, listID, mediaID)
}

// MoveItemToList re-parents the item to the target list with a fresh
// trailing position. Both lists must belong to the same user; the move
// is rejected with models.ErrCrossOwnerViolation otherwise, and with
// models.ErrDuplicateEntry when the media already exists in the target.
func (s *ListService) MoveItemToList(ctx context.Context, ownerID string, itemID, targetListID int) (*models.ListItem, error) {
	item, err := s.lists.GetItem(ctx, itemID)
	if err != nil {
		return nil, err
	}

	source, err := s.ownedList(ctx, ownerID, item.ListID)
	if err != nil {
		return nil, err
	}

	target, err := s.lists.GetByID(ctx, targetListID)
	if err != nil {
		return nil, err
	}
	if target.UserID != source.UserID {
		return nil, models.ErrCrossOwnerViolation
	}

	moved, err := s.lists.MoveItem(ctx, itemID, targetListID)
	if err != nil {
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"item_id":     itemID,
		"source_list": source.ID,
		"target_list": targetListID,
	}).Info("Item moved between lists")
	return moved, nil
}

// ReorderItems assigns positions from the 1-based index of each id in
// the supplied order. Ids that do not belong to the list are silently
// ignored; items omitted from the order keep their old positions.
func (s *ListService) ReorderItems(ctx context.Context, ownerID string, listID int, orderedIDs []int) error {
	if _, err := s.ownedList(ctx, ownerID, listID); err != nil {
		return err
	}
	return s.lists.ReorderItems(ctx, listID, orderedIDs)
}

// UpdateItemStatus sets the watch-status tag directly; no transition
// order is enforced.
func (s *ListService) UpdateItemStatus(ctx context.Context, ownerID string, itemID int, status models.WatchStatus) (*models.ListItem, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("invalid watch status %q", status)
	}

	item, err := s.lists.GetItem(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if _, err := s.ownedList(ctx, ownerID, item.ListID); err != nil {
		return nil, err
	}

	return s.lists.UpdateItemStatus(ctx, itemID, status)
}

// GetUserLists returns the owner's lists, newest first. With
// includePrivate false only public lists are returned.
func (s *ListService) GetUserLists(ctx context.Context, ownerID string, includePrivate bool) ([]models.List, error) {
	return s.lists.ListByUser(ctx, ownerID, includePrivate)
}

// GetListItems returns the list's items ordered by position with their
// media rows already joined.
func (s *ListService) GetListItems(ctx context.Context, ownerID string, listID int) ([]models.ListItemWithMedia, error) {
	if _, err := s.ownedList(ctx, ownerID, listID); err != nil {
		return nil, err
	}
	return s.lists.ItemsByList(ctx, listID)
}

// ownedList loads a list and hides it behind ErrNotFound when it belongs
// to a different user, so foreign list ids are indistinguishable from
// missing ones.
func (s *ListService) ownedList(ctx context.Context, ownerID string, listID int) (*models.List, error) {
	list, err := s.lists.GetByID(ctx, listID)
	if err != nil {
		return nil, err
	}
	if list.UserID != ownerID {
		return nil, models.ErrNotFound
	}
	return list, nil
}
