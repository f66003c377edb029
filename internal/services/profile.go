package services

import (
	"context"

	"github.com/sirupsen/logrus"

	"showlog/internal/models"
	"showlog/internal/repository"
)

const recentHistoryLimit = 100

// ProfileService manages the nickname-addressed public profile pages.
type ProfileService struct {
	profiles repository.ProfileRepository
	users    repository.UserRepository
	lists    repository.ListRepository
	episodes repository.EpisodeRepository
	logger   *logrus.Logger
}

func NewProfileService(
	profiles repository.ProfileRepository,
	users repository.UserRepository,
	lists repository.ListRepository,
	episodes repository.EpisodeRepository,
	logger *logrus.Logger,
) *ProfileService {
	return &ProfileService{
		profiles: profiles,
		users:    users,
		lists:    lists,
		episodes: episodes,
		logger:   logger,
	}
}

// ProfileUpdate carries a partial update; nil fields are left unchanged.
type ProfileUpdate struct {
	Bio                 *string
	AvatarURL           *string
	IsVisible           *bool
	ShowWatchedEpisodes *bool
	ShowLists           *bool
}

// CreateProfile creates the one profile a user gets. A second create
// returns models.ErrDuplicateEntry.
func (s *ProfileService) CreateProfile(ctx context.Context, userID string) (*models.PublicProfile, error) {
	profile, err := s.profiles.Create(ctx, userID)
	if err != nil {
		return nil, err
	}

	s.logger.WithField("user_id", userID).Info("Public profile created")
	return profile, nil
}

func (s *ProfileService) GetProfile(ctx context.Context, userID string) (*models.PublicProfile, error) {
	return s.profiles.GetByUserID(ctx, userID)
}

func (s *ProfileService) UpdateProfile(ctx context.Context, userID string, update ProfileUpdate) (*models.PublicProfile, error) {
	profile, err := s.profiles.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if update.Bio != nil {
		profile.Bio = *update.Bio
	}
	if update.AvatarURL != nil {
		profile.AvatarURL = *update.AvatarURL
	}
	if update.IsVisible != nil {
		profile.IsVisible = *update.IsVisible
	}
	if update.ShowWatchedEpisodes != nil {
		profile.ShowWatchedEpisodes = *update.ShowWatchedEpisodes
	}
	if update.ShowLists != nil {
		profile.ShowLists = *update.ShowLists
	}

	if err := s.profiles.Update(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

// GetPublicView assembles the page a viewer sees for a nickname. Hidden
// and missing profiles are both ErrNotFound. Each section appears only
// when its toggle allows it, and only public lists are ever shown.
func (s *ProfileService) GetPublicView(ctx context.Context, nickname string) (*models.PublicProfileView, error) {
	user, err := s.users.GetByNickname(ctx, nickname)
	if err != nil {
		return nil, err
	}

	profile, err := s.profiles.GetByUserID(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	if !profile.IsVisible {
		return nil, models.ErrNotFound
	}

	view := &models.PublicProfileView{
		Nickname:  user.Nickname,
		Bio:       profile.Bio,
		AvatarURL: profile.AvatarURL,
	}

	if profile.ShowLists {
		lists, err := s.lists.ListByUser(ctx, user.ID, false)
		if err != nil {
			return nil, err
		}
		view.Lists = lists
	}

	if profile.ShowWatchedEpisodes {
		episodes, err := s.episodes.ListByUser(ctx, user.ID, recentHistoryLimit)
		if err != nil {
			return nil, err
		}
		view.WatchedEpisodes = episodes
	}

	return view, nil
}
