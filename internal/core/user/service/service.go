package userapp

import (
	"context"
	"net/mail"
	"strings"
	"time"

	"inkwell/internal/config"
	"inkwell/internal/core/apperr"
	"inkwell/internal/core/media"
	userEntity "inkwell/internal/core/user"
	followerPort "inkwell/internal/ports/follower"
	"inkwell/internal/ports/storage"
	userPort "inkwell/internal/ports/user"

	"github.com/gofrs/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const minPasswordLen = 6

// UserService manages accounts, profiles, tokens and social links.
type UserService struct {
	UserRepository       userPort.UserRepository
	SocialLinkRepository userPort.SocialLinkRepository
	FollowerRepository   followerPort.FollowerRepository
	Blacklist            userPort.TokenBlacklist
	ObjectStore          storage.ObjectStore
	tokens               TokenConfig
}

func NewUserService(
	userRepo userPort.UserRepository,
	linkRepo userPort.SocialLinkRepository,
	followerRepo followerPort.FollowerRepository,
	blacklist userPort.TokenBlacklist,
	store storage.ObjectStore,
	tokens TokenConfig,
) *UserService {
	return &UserService{
		UserRepository:       userRepo,
		SocialLinkRepository: linkRepo,
		FollowerRepository:   followerRepo,
		Blacklist:            blacklist,
		ObjectStore:          store,
		tokens:               tokens.withDefaults(),
	}
}

// RegisterUser creates an active account and signs the user in.
func (s *UserService) RegisterUser(ctx context.Context, req userPort.RegisterRequest) (*userPort.LoginResponse, error) {
	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.TrimSpace(strings.ToLower(req.Email))

	fields := map[string]string{}
	if req.Username == "" {
		fields["username"] = "This field is required."
	}
	if _, err := mail.ParseAddress(req.Email); err != nil {
		fields["email"] = "Enter a valid email address."
	}
	if len(req.Password) < minPasswordLen {
		fields["password"] = "Ensure this field has at least 6 characters."
	}
	if len(fields) > 0 {
		return nil, apperr.Validation("Validation error", fields)
	}

	existing, err := s.UserRepository.FindByUsernameOrEmail(ctx, req.Username, req.Email)
	if err != nil && apperr.KindOf(err) != apperr.KindNotFound {
		return nil, err
	}
	if existing != nil {
		if existing.Username == req.Username {
			fields["username"] = "A user with that username already exists."
		}
		if existing.Email == req.Email {
			fields["email"] = "A user with that email already exists."
		}
		return nil, apperr.Validation("Validation error", fields)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	u, err := s.UserRepository.Create(ctx, &userEntity.User{
		ID:        uuid.Must(uuid.NewV4()),
		Username:  req.Username,
		FirstName: strings.TrimSpace(req.FirstName),
		LastName:  strings.TrimSpace(req.LastName),
		Email:     req.Email,
		Password:  string(hashed),
		IsActive:  true,
	})
	if err != nil {
		return nil, err
	}
	config.Logger.Info("User registered", zap.String("userID", u.ID.String()))

	return s.issuePair(u)
}

// LoginUser checks credentials and returns an access/refresh token pair.
func (s *UserService) LoginUser(ctx context.Context, username, password string) (*userPort.LoginResponse, error) {
	u, err := s.UserRepository.FindByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if apperr.KindOf(err) == apperr.KindNotFound {
			return nil, apperr.New(apperr.KindUnauthorized, "Invalid username or password")
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)); err != nil {
		return nil, apperr.New(apperr.KindUnauthorized, "Invalid username or password")
	}
	if !u.IsActive {
		return nil, apperr.New(apperr.KindUnauthorized, "User account is disabled")
	}

	now := time.Now()
	if err := s.UserRepository.Update(ctx, u.ID.String(), map[string]interface{}{"last_login": now}); err != nil {
		config.Logger.Warn("Could not record last login", zap.String("userID", u.ID.String()), zap.Error(err))
	} else {
		u.LastLogin = &now
	}

	return s.issuePair(u)
}

// GetUser returns a profile as seen by viewerID.
func (s *UserService) GetUser(ctx context.Context, viewerID, id string) (*userPort.ProfileDTO, error) {
	u, err := s.UserRepository.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.profile(ctx, viewerID, u)
}

func (s *UserService) ListUsers(ctx context.Context, username string) ([]*userPort.UserDTO, error) {
	users, err := s.UserRepository.List(ctx, strings.TrimSpace(username))
	if err != nil {
		return nil, err
	}
	return userPort.ToUserDTOs(users), nil
}

func (s *UserService) UpdateProfile(ctx context.Context, actorID string, in userPort.ProfileUpdate) (*userPort.ProfileDTO, error) {
	if actorID == "" {
		return nil, apperr.ErrUnauthorized
	}

	fields := map[string]interface{}{}
	if in.FirstName != nil {
		fields["first_name"] = strings.TrimSpace(*in.FirstName)
	}
	if in.LastName != nil {
		fields["last_name"] = strings.TrimSpace(*in.LastName)
	}
	if in.Bio != nil {
		fields["bio"] = strings.TrimSpace(*in.Bio)
	}
	if in.Email != nil {
		email := strings.TrimSpace(strings.ToLower(*in.Email))
		if _, err := mail.ParseAddress(email); err != nil {
			return nil, apperr.Validation("Validation error", map[string]string{"email": "Enter a valid email address."})
		}
		other, err := s.UserRepository.FindByUsernameOrEmail(ctx, "", email)
		if err != nil && apperr.KindOf(err) != apperr.KindNotFound {
			return nil, err
		}
		if other != nil && other.ID.String() != actorID {
			return nil, apperr.Validation("Validation error", map[string]string{"email": "A user with that email already exists."})
		}
		fields["email"] = email
	}

	if len(fields) > 0 {
		if err := s.UserRepository.Update(ctx, actorID, fields); err != nil {
			return nil, err
		}
	}
	return s.GetUser(ctx, actorID, actorID)
}

func (s *UserService) ChangePassword(ctx context.Context, actorID, oldPassword, newPassword string) error {
	if actorID == "" {
		return apperr.ErrUnauthorized
	}
	u, err := s.UserRepository.FindByID(ctx, actorID)
	if err != nil {
		return err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(oldPassword)); err != nil {
		return apperr.Validation("Validation error", map[string]string{"old_password": "Wrong password."})
	}
	if len(newPassword) < minPasswordLen {
		return apperr.Validation("Validation error", map[string]string{"new_password": "Ensure this field has at least 6 characters."})
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return s.UserRepository.Update(ctx, actorID, map[string]interface{}{"password": string(hashed)})
}

// DeleteAccount removes the actor and everything the actor owns.
func (s *UserService) DeleteAccount(ctx context.Context, actorID string) error {
	if actorID == "" {
		return apperr.ErrUnauthorized
	}
	if err := s.UserRepository.Delete(ctx, actorID); err != nil {
		return err
	}
	config.Logger.Info("User deleted", zap.String("userID", actorID))
	return nil
}

func (s *UserService) UploadAvatar(ctx context.Context, actorID string, file storage.Upload) (*userPort.ProfileDTO, error) {
	if actorID == "" {
		return nil, apperr.ErrUnauthorized
	}
	ext, err := media.ValidateImage(file.ContentType, file.Size)
	if err != nil {
		return nil, err
	}
	if _, err := s.UserRepository.FindByID(ctx, actorID); err != nil {
		return nil, err
	}

	url, err := s.ObjectStore.Put(ctx, media.ObjectName("avatars", actorID, ext), file.Body, file.Size, file.ContentType)
	if err != nil {
		return nil, err
	}
	if err := s.UserRepository.Update(ctx, actorID, map[string]interface{}{"avatar": url}); err != nil {
		return nil, err
	}
	return s.GetUser(ctx, actorID, actorID)
}

func (s *UserService) profile(ctx context.Context, viewerID string, u *userEntity.User) (*userPort.ProfileDTO, error) {
	id := u.ID.String()
	followers, err := s.FollowerRepository.CountFollowers(ctx, id)
	if err != nil {
		return nil, err
	}
	following, err := s.FollowerRepository.CountFollowing(ctx, id)
	if err != nil {
		return nil, err
	}

	dto := &userPort.ProfileDTO{
		UserDTO:        userPort.ToUserDTO(u),
		FollowersCount: followers,
		FollowingCount: following,
		SocialLinks:    make([]*userPort.SocialLinkDTO, 0, len(u.SocialLinks)),
	}
	for i := range u.SocialLinks {
		dto.SocialLinks = append(dto.SocialLinks, userPort.ToSocialLinkDTO(&u.SocialLinks[i]))
	}
	if viewerID != "" && viewerID != id {
		if dto.IsFollowing, err = s.FollowerRepository.IsFollowing(ctx, viewerID, id); err != nil {
			return nil, err
		}
	}
	return dto, nil
}
