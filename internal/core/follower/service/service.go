package followerapp

import (
	"context"
	"time"

	"inkwell/internal/config"
	"inkwell/internal/core/apperr"
	"inkwell/internal/ports/events"
	followerPort "inkwell/internal/ports/follower"
	userPort "inkwell/internal/ports/user"

	"github.com/gofrs/uuid"
	"go.uber.org/zap"
)

type FollowerService struct {
	FollowerRepository followerPort.FollowerRepository
	UserRepository     userPort.UserRepository
	Events             events.Publisher
}

func NewFollowerService(repo followerPort.FollowerRepository, userRepo userPort.UserRepository, publisher events.Publisher) *FollowerService {
	if publisher == nil {
		publisher = events.Nop{}
	}
	return &FollowerService{
		FollowerRepository: repo,
		UserRepository:     userRepo,
		Events:             publisher,
	}
}

// FollowUser adds the edge followerID -> followeeID.
func (s *FollowerService) FollowUser(ctx context.Context, followerID, followeeID string) (*followerPort.FollowStatusDTO, error) {
	followerID, followeeID, err := canonicalPair(followerID, followeeID)
	if err != nil {
		return nil, err
	}
	if followerID == followeeID {
		config.Logger.Warn("Cannot follow yourself", zap.String("userID", followerID))
		return nil, apperr.ErrSelfFollow
	}
	if _, err := s.UserRepository.FindByID(ctx, followeeID); err != nil {
		return nil, err
	}

	created, err := s.FollowerRepository.Follow(ctx, followerID, followeeID)
	if err != nil {
		return nil, err
	}
	if !created {
		return nil, apperr.ErrAlreadyFollowing
	}

	e := events.Event{
		Type:      events.TypeUserFollowed,
		ActorID:   followerID,
		TargetID:  followeeID,
		OwnerID:   followeeID,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.Events.Publish(ctx, e); err != nil {
		config.Logger.Warn("Could not publish event", zap.String("type", e.Type), zap.Error(err))
	}

	return s.status(ctx, followeeID, true)
}

func (s *FollowerService) UnfollowUser(ctx context.Context, followerID, followeeID string) (*followerPort.FollowStatusDTO, error) {
	followerID, followeeID, err := canonicalPair(followerID, followeeID)
	if err != nil {
		return nil, err
	}
	if followerID == followeeID {
		return nil, apperr.ErrSelfFollow
	}
	if _, err := s.UserRepository.FindByID(ctx, followeeID); err != nil {
		return nil, err
	}

	removed, err := s.FollowerRepository.Unfollow(ctx, followerID, followeeID)
	if err != nil {
		return nil, err
	}
	if !removed {
		return nil, apperr.ErrNotFollowing
	}
	return s.status(ctx, followeeID, false)
}

// GetFollowers lists the users following userID, most recent first.
func (s *FollowerService) GetFollowers(ctx context.Context, userID string) ([]*userPort.UserDTO, error) {
	if _, err := s.UserRepository.FindByID(ctx, userID); err != nil {
		return nil, err
	}
	users, err := s.FollowerRepository.FollowersOf(ctx, userID)
	if err != nil {
		return nil, err
	}
	return userPort.ToUserDTOs(users), nil
}

// GetFollowing lists the users userID follows, most recent first.
func (s *FollowerService) GetFollowing(ctx context.Context, userID string) ([]*userPort.UserDTO, error) {
	if _, err := s.UserRepository.FindByID(ctx, userID); err != nil {
		return nil, err
	}
	users, err := s.FollowerRepository.FollowingOf(ctx, userID)
	if err != nil {
		return nil, err
	}
	return userPort.ToUserDTOs(users), nil
}

func (s *FollowerService) status(ctx context.Context, userID string, following bool) (*followerPort.FollowStatusDTO, error) {
	count, err := s.FollowerRepository.CountFollowers(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &followerPort.FollowStatusDTO{UserID: userID, IsFollowing: following, FollowersCount: count}, nil
}

// canonicalPair parses both ids so the self-follow check is not fooled by letter case.
func canonicalPair(followerID, followeeID string) (string, string, error) {
	actor, err := uuid.FromString(followerID)
	if err != nil {
		return "", "", apperr.ErrUnauthorized
	}
	target, err := uuid.FromString(followeeID)
	if err != nil {
		return "", "", apperr.NotFound("User")
	}
	return actor.String(), target.String(), nil
}
