package httpapi

import (
	"strconv"
	"strings"

	"inkwell/internal/adapters/httpapi/middleware"
	"inkwell/internal/core/feed"
	"inkwell/internal/core/pagination"
	userPort "inkwell/internal/ports/user"

	"github.com/gin-gonic/gin"
)

// actorID is the authenticated user id, or "" for anonymous requests.
func actorID(c *gin.Context) string {
	return c.GetString(middleware.UserIDKey)
}

func tokenClaims(c *gin.Context) *userPort.TokenClaims {
	v, exists := c.Get(middleware.ClaimsKey)
	if !exists {
		return nil
	}
	claims, _ := v.(*userPort.TokenClaims)
	return claims
}

// queryInt parses a query parameter. Missing or malformed values yield def.
func queryInt(c *gin.Context, key string, def int) int {
	n, err := strconv.Atoi(c.Query(key))
	if err != nil {
		return def
	}
	return n
}

func pageParams(c *gin.Context) pagination.Params {
	return pagination.Params{
		Page:  queryInt(c, "page", pagination.DefaultPage),
		Limit: queryInt(c, "limit", pagination.DefaultLimit),
	}
}

func queryBool(c *gin.Context, key string) bool {
	switch strings.ToLower(c.Query(key)) {
	case "1", "true", "yes":
		return true
	}
	return false
}

func feedQuery(c *gin.Context) feed.Query {
	return feed.Query{
		ViewerID: actorID(c),
		Filter: feed.Filter{
			Category:      c.Query("category"),
			AuthorID:      c.Query("author"),
			LikedByViewer: queryBool(c, "liked"),
		},
		Sort: feed.ParseSort(c.DefaultQuery("sort_by", string(feed.SortCreatedAt)), c.Query("order")),
		Page: pageParams(c),
	}
}
