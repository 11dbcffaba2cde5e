package userapp

import (
	"context"
	"net/url"
	"strings"

	"inkwell/internal/core/apperr"
	userEntity "inkwell/internal/core/user"
	userPort "inkwell/internal/ports/user"

	"github.com/gofrs/uuid"
)

func validLink(link string) (string, error) {
	link = strings.TrimSpace(link)
	u, err := url.ParseRequestURI(link)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return "", apperr.Validation("Validation error", map[string]string{"link": "Enter a valid URL."})
	}
	return link, nil
}

func (s *UserService) ListSocialLinks(ctx context.Context, actorID string) ([]*userPort.SocialLinkDTO, error) {
	if actorID == "" {
		return nil, apperr.ErrUnauthorized
	}
	links, err := s.SocialLinkRepository.ListByUser(ctx, actorID)
	if err != nil {
		return nil, err
	}
	out := make([]*userPort.SocialLinkDTO, 0, len(links))
	for _, l := range links {
		out = append(out, userPort.ToSocialLinkDTO(l))
	}
	return out, nil
}

func (s *UserService) CreateSocialLink(ctx context.Context, actorID, link string) (*userPort.SocialLinkDTO, error) {
	if actorID == "" {
		return nil, apperr.ErrUnauthorized
	}
	link, err := validLink(link)
	if err != nil {
		return nil, err
	}
	created, err := s.SocialLinkRepository.Create(ctx, &userEntity.SocialLink{
		ID:     uuid.Must(uuid.NewV4()),
		UserID: uuid.FromStringOrNil(actorID),
		Link:   link,
	})
	if err != nil {
		return nil, err
	}
	return userPort.ToSocialLinkDTO(created), nil
}

func (s *UserService) UpdateSocialLink(ctx context.Context, actorID, id, link string) (*userPort.SocialLinkDTO, error) {
	existing, err := s.ownedLink(ctx, actorID, id)
	if err != nil {
		return nil, err
	}
	link, err = validLink(link)
	if err != nil {
		return nil, err
	}
	if err := s.SocialLinkRepository.Update(ctx, id, link); err != nil {
		return nil, err
	}
	existing.Link = link
	return userPort.ToSocialLinkDTO(existing), nil
}

func (s *UserService) DeleteSocialLink(ctx context.Context, actorID, id string) error {
	if _, err := s.ownedLink(ctx, actorID, id); err != nil {
		return err
	}
	return s.SocialLinkRepository.Delete(ctx, id)
}

func (s *UserService) ownedLink(ctx context.Context, actorID, id string) (*userEntity.SocialLink, error) {
	if actorID == "" {
		return nil, apperr.ErrUnauthorized
	}
	link, err := s.SocialLinkRepository.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if link.UserID.String() != actorID {
		return nil, apperr.ErrForbidden
	}
	return link, nil
}
