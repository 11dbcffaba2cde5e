package httpapi

import (
	"context"
	"net/http"

	"inkwell/internal/adapters/httpapi/middleware"
	commentapp "inkwell/internal/core/comment/service"
	"inkwell/internal/core/feed"
	"inkwell/internal/core/like"
	"inkwell/internal/core/pagination"
	categoryPort "inkwell/internal/ports/category"
	commentPort "inkwell/internal/ports/comment"
	feedPort "inkwell/internal/ports/feed"
	followerPort "inkwell/internal/ports/follower"
	likePort "inkwell/internal/ports/like"
	postPort "inkwell/internal/ports/post"
	searchPort "inkwell/internal/ports/search"
	"inkwell/internal/ports/storage"
	userPort "inkwell/internal/ports/user"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

type UserUseCase interface {
	RegisterUser(ctx context.Context, req userPort.RegisterRequest) (*userPort.LoginResponse, error)
	LoginUser(ctx context.Context, username, password string) (*userPort.LoginResponse, error)
	RefreshToken(ctx context.Context, refreshToken string) (*userPort.LoginResponse, error)
	Logout(ctx context.Context, actorID, refreshToken string, access *userPort.TokenClaims) error
	VerifyAccessToken(ctx context.Context, raw string) (*userPort.TokenClaims, error)

	GetUser(ctx context.Context, viewerID, id string) (*userPort.ProfileDTO, error)
	ListUsers(ctx context.Context, username string) ([]*userPort.UserDTO, error)
	UpdateProfile(ctx context.Context, actorID string, in userPort.ProfileUpdate) (*userPort.ProfileDTO, error)
	ChangePassword(ctx context.Context, actorID, oldPassword, newPassword string) error
	DeleteAccount(ctx context.Context, actorID string) error
	UploadAvatar(ctx context.Context, actorID string, file storage.Upload) (*userPort.ProfileDTO, error)

	ListSocialLinks(ctx context.Context, actorID string) ([]*userPort.SocialLinkDTO, error)
	CreateSocialLink(ctx context.Context, actorID, link string) (*userPort.SocialLinkDTO, error)
	UpdateSocialLink(ctx context.Context, actorID, id, link string) (*userPort.SocialLinkDTO, error)
	DeleteSocialLink(ctx context.Context, actorID, id string) error
}

type CategoryUseCase interface {
	ListCategories(ctx context.Context) ([]*categoryPort.CategoryDTO, error)
	GetCategory(ctx context.Context, id string) (*categoryPort.CategoryDTO, error)
	CreateCategory(ctx context.Context, actorID, name string) (*categoryPort.CategoryDTO, error)
	UpdateCategory(ctx context.Context, actorID, id, name string) (*categoryPort.CategoryDTO, error)
	DeleteCategory(ctx context.Context, actorID, id string) error
}

type PostUseCase interface {
	CreatePost(ctx context.Context, actorID string, in postPort.PostInput) (*postPort.PostDTO, error)
	UpdatePost(ctx context.Context, actorID, id string, in postPort.PostInput) (*postPort.PostDTO, error)
	DeletePost(ctx context.Context, actorID, id string) error
	GetPost(ctx context.Context, viewerID, id string) (*postPort.PostDetailDTO, error)
	AttachFeaturedImage(ctx context.Context, actorID, id string, file storage.Upload) (*postPort.PostDTO, error)
}

type FeedUseCase interface {
	ListPosts(ctx context.Context, q feed.Query) (*feedPort.PageDTO, error)
}

type CommentUseCase interface {
	CreateComment(ctx context.Context, actorID, postID, parentID, content string) (*commentPort.CommentDTO, error)
	ListRootComments(ctx context.Context, viewerID, postID string, page pagination.Params) (*commentapp.PageDTO, error)
	GetComment(ctx context.Context, viewerID, id string) (*commentPort.CommentDTO, error)
	UpdateComment(ctx context.Context, actorID, id, content string) (*commentPort.CommentDTO, error)
	DeleteComment(ctx context.Context, actorID, id string) error
}

type LikeUseCase interface {
	ToggleLike(ctx context.Context, actorID string, target like.Target) (*likePort.ToggleDTO, error)
}

type FollowerUseCase interface {
	FollowUser(ctx context.Context, followerID, followeeID string) (*followerPort.FollowStatusDTO, error)
	UnfollowUser(ctx context.Context, followerID, followeeID string) (*followerPort.FollowStatusDTO, error)
	GetFollowers(ctx context.Context, userID string) ([]*userPort.UserDTO, error)
	GetFollowing(ctx context.Context, userID string) ([]*userPort.UserDTO, error)
}

type SearchUseCase interface {
	Search(ctx context.Context, viewerID, q, mode string) (*searchPort.ResultDTO, error)
}

type TimelineUseCase interface {
	GetTimeline(ctx context.Context, userID string, start, limit int64) ([]*postPort.PostDTO, error)
}

// UseCases groups the inbound ports the router serves.
type UseCases struct {
	Users      UserUseCase
	Categories CategoryUseCase
	Posts      PostUseCase
	Feed       FeedUseCase
	Comments   CommentUseCase
	Likes      LikeUseCase
	Followers  FollowerUseCase
	Search     SearchUseCase
	Timeline   TimelineUseCase
}

type RouterOptions struct {
	Logger *zap.Logger
	// Registry receives the HTTP metrics. Nil disables /metrics.
	Registry *prometheus.Registry
}

// SetupRoutes only routes; use cases are injected from outside.
func SetupRoutes(uc UseCases, opts RouterOptions) *gin.Engine {
	r := gin.New()
	if opts.Logger != nil {
		r.Use(middleware.Logger(opts.Logger))
	}
	r.Use(gin.Recovery())
	if opts.Registry != nil {
		r.Use(middleware.NewMetrics(opts.Registry).Handler())
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(opts.Registry, promhttp.HandlerOpts{})))
	}
	r.NoRoute(func(c *gin.Context) { respond(c, http.StatusNotFound, "", nil) })

	r.GET("/health", func(c *gin.Context) { ok(c, "", gin.H{"status": "ok"}) })

	auth := middleware.JWTAuthMiddleware(uc.Users)
	optional := middleware.OptionalAuth(uc.Users)

	uctl := NewUserController(uc.Users)
	sctl := NewSocialLinkController(uc.Users)
	cctl := NewCategoryController(uc.Categories)
	pctl := NewPostController(uc.Posts, uc.Feed, uc.Likes)
	mctl := NewCommentController(uc.Comments, uc.Likes)
	fctl := NewFollowerController(uc.Followers)
	qctl := NewSearchController(uc.Search)
	tctl := NewTimelineController(uc.Timeline)

	api := r.Group("/api")

	// register and login go without the JWT middleware
	authGroup := api.Group("/auth")
	authGroup.POST("/register", uctl.RegisterUser)
	authGroup.POST("/login", uctl.LoginUser)
	authGroup.POST("/refresh", uctl.RefreshToken)
	authGroup.POST("/logout", optional, uctl.Logout)

	users := api.Group("/users")
	users.GET("", optional, uctl.ListUsers)
	users.PATCH("/me", auth, uctl.UpdateProfile)
	users.DELETE("/me", auth, uctl.DeleteAccount)
	users.PUT("/me/password", auth, uctl.ChangePassword)
	users.POST("/me/avatar", auth, uctl.UploadAvatar)
	users.GET("/:id", optional, uctl.GetUser)
	users.POST("/:id/follow", auth, fctl.FollowUser)
	users.POST("/:id/unfollow", auth, fctl.UnfollowUser)
	users.GET("/:id/followers", optional, fctl.GetFollowers)
	users.GET("/:id/following", optional, fctl.GetFollowing)

	links := api.Group("/social-links", auth)
	links.GET("", sctl.List)
	links.POST("", sctl.Create)
	links.PATCH("/:id", sctl.Update)
	links.DELETE("/:id", sctl.Delete)

	categories := api.Group("/categories")
	categories.GET("", cctl.List)
	categories.POST("", auth, cctl.Create)
	categories.GET("/:id", cctl.Get)
	categories.PATCH("/:id", auth, cctl.Update)
	categories.DELETE("/:id", auth, cctl.Delete)

	posts := api.Group("/posts")
	posts.GET("", optional, pctl.ListPosts)
	posts.POST("", auth, pctl.CreatePost)
	posts.GET("/:id", optional, pctl.GetPost)
	posts.PATCH("/:id", auth, pctl.UpdatePost)
	posts.DELETE("/:id", auth, pctl.DeletePost)
	posts.POST("/:id/like", auth, pctl.LikePost)
	posts.POST("/:id/image", auth, pctl.UploadImage)
	posts.GET("/:id/comments", optional, mctl.ListForPost)

	comments := api.Group("/comments")
	comments.POST("", auth, mctl.Create)
	comments.GET("/:id", optional, mctl.Get)
	comments.PATCH("/:id", auth, mctl.Update)
	comments.DELETE("/:id", auth, mctl.Delete)
	comments.POST("/:id/like", auth, mctl.Like)

	api.GET("/search", optional, qctl.Search)
	api.GET("/timeline", auth, tctl.GetTimeline)

	return r
}
