package searchapp

import (
	"context"
	"strings"

	"inkwell/internal/core/apperr"
	"inkwell/internal/core/projection"
	searchPort "inkwell/internal/ports/search"
	userPort "inkwell/internal/ports/user"
)

const (
	ModeLess = "less"
	ModeHard = "hard"

	// lessLimit caps each result list in less mode. Hard mode is unbounded.
	lessLimit = 5
)

type SearchService struct {
	SearchRepository searchPort.SearchRepository
	Projector        *projection.Projector
}

func NewSearchService(repo searchPort.SearchRepository, projector *projection.Projector) *SearchService {
	return &SearchService{SearchRepository: repo, Projector: projector}
}

// Search matches q against post titles and subtitles, and user first names, last names and emails.
func (s *SearchService) Search(ctx context.Context, viewerID, q, mode string) (*searchPort.ResultDTO, error) {
	q = strings.TrimSpace(q)
	if q == "" {
		return nil, apperr.BadRequest("search query is required")
	}

	var limit int
	switch mode {
	case "", ModeLess:
		limit = lessLimit
	case ModeHard:
		limit = 0
	default:
		return nil, apperr.BadRequest("unknown search type: " + mode)
	}

	posts, err := s.SearchRepository.SearchPosts(ctx, q, viewerID, limit)
	if err != nil {
		return nil, err
	}
	users, err := s.SearchRepository.SearchUsers(ctx, q, limit)
	if err != nil {
		return nil, err
	}

	items, err := s.Projector.Posts(ctx, posts, viewerID)
	if err != nil {
		return nil, err
	}
	return &searchPort.ResultDTO{Posts: items, Users: userPort.ToUserDTOs(users)}, nil
}
