package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"

	"inkwell/internal/adapters/database"
	redisAdapter "inkwell/internal/adapters/redis"
	categoryapp "inkwell/internal/core/category/service"
	commentapp "inkwell/internal/core/comment/service"
	feedapp "inkwell/internal/core/feed/service"
	followerapp "inkwell/internal/core/follower/service"
	likeapp "inkwell/internal/core/like/service"
	postapp "inkwell/internal/core/post/service"
	"inkwell/internal/core/projection"
	searchapp "inkwell/internal/core/search/service"
	timelineapp "inkwell/internal/core/timeline/service"
	userapp "inkwell/internal/core/user/service"
	"inkwell/internal/testutil"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memStore struct{}

func (memStore) Put(_ context.Context, name string, r io.Reader, _ int64, _ string) (string, error) {
	if _, err := io.ReadAll(r); err != nil {
		return "", err
	}
	return "http://store/" + name, nil
}

type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type server struct {
	t        *testing.T
	handler  http.Handler
	timeline *redisAdapter.TimelineRepositoryRedis
}

func newServer(t *testing.T) *server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := testutil.NewDB(t)
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	users := database.NewUserRepositoryDatabase(db)
	posts := database.NewPostRepositoryDatabase(db)
	comments := database.NewCommentRepositoryDatabase(db)
	likes := database.NewLikeRepositoryDatabase(db)
	followers := database.NewFollowerRepositoryDatabase(db)
	categories := database.NewCategoryRepositoryDatabase(db)
	timeline := redisAdapter.NewTimelineRepositoryRedis(client, 0)
	projector := projection.NewProjector(likes, comments)

	uc := UseCases{
		Users: userapp.NewUserService(users, database.NewSocialLinkRepositoryDatabase(db), followers,
			redisAdapter.NewTokenBlacklistRedis(client), memStore{}, userapp.TokenConfig{Secret: []byte("test-secret")}),
		Categories: categoryapp.NewCategoryService(categories),
		Posts: postapp.NewPostService(posts, categories, comments, database.NewFanoutRepositoryDatabase(db),
			projector, memStore{}),
		Feed:      feedapp.NewFeedService(database.NewFeedRepositoryDatabase(db), projector),
		Comments:  commentapp.NewCommentService(comments, posts, projector, nil),
		Likes:     likeapp.NewLikeService(likes, posts, comments, nil),
		Followers: followerapp.NewFollowerService(followers, users, nil),
		Search:    searchapp.NewSearchService(database.NewSearchRepositoryDatabase(db), projector),
		Timeline:  timelineapp.NewTimelineService(timeline, posts, projector),
	}
	r := SetupRoutes(uc, RouterOptions{Registry: prometheus.NewRegistry()})
	return &server{t: t, handler: r, timeline: timeline}
}

func (s *server) do(method, path, token string, body interface{}) (int, envelope) {
	s.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(s.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	return s.send(req, token)
}

func (s *server) send(req *http.Request, token string) (int, envelope) {
	s.t.Helper()
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.handler.ServeHTTP(w, req)

	var env envelope
	require.NoError(s.t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	assert.Equal(s.t, w.Code, env.Code)
	return w.Code, env
}

func decode(t *testing.T, env envelope, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(env.Data, v))
}

type session struct {
	ID      string
	Access  string
	Refresh string
}

func (s *server) register(username string) session {
	s.t.Helper()
	status, env := s.do(http.MethodPost, "/api/auth/register", "", map[string]string{
		"username": username,
		"email":    username + "@example.com",
		"password": "secret123",
	})
	require.Equal(s.t, http.StatusCreated, status, env.Message)
	var res struct {
		Access  string `json:"access"`
		Refresh string `json:"refresh"`
		User    struct {
			ID string `json:"id"`
		} `json:"user"`
	}
	decode(s.t, env, &res)
	return session{ID: res.User.ID, Access: res.Access, Refresh: res.Refresh}
}

type postBody struct {
	ID            string `json:"id"`
	Title         string `json:"title"`
	LikesCount    int64  `json:"likes_count"`
	CommentsCount int64  `json:"comments_count"`
	IsLiked       bool   `json:"is_liked"`
	FeaturedImage string `json:"featured_image"`
}

func (s *server) createPost(token, title string) postBody {
	s.t.Helper()
	status, env := s.do(http.MethodPost, "/api/posts", token, map[string]string{"title": title, "content": "body"})
	require.Equal(s.t, http.StatusCreated, status, env.Message)
	var p postBody
	decode(s.t, env, &p)
	return p
}

func TestHealthAndMetrics(t *testing.T) {
	s := newServer(t)

	status, env := s.do(http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Success", env.Message)

	w := httptest.NewRecorder()
	s.handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "inkwell_http_requests_total")
}

func TestProtectedRouteRequiresToken(t *testing.T) {
	s := newServer(t)

	status, env := s.do(http.MethodPost, "/api/posts", "", map[string]string{"title": "x"})
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "Authentication credentials were not provided", env.Message)

	status, _ = s.do(http.MethodPost, "/api/posts", "garbage", map[string]string{"title": "x"})
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestRegisterValidation(t *testing.T) {
	s := newServer(t)

	status, env := s.do(http.MethodPost, "/api/auth/register", "", map[string]string{"username": "a"})
	assert.Equal(t, http.StatusUnprocessableEntity, status)
	var fields map[string]string
	decode(t, env, &fields)
	assert.Contains(t, fields, "email")
	assert.Contains(t, fields, "password")

	s.register("alice")
	status, _ = s.do(http.MethodPost, "/api/auth/register", "", map[string]string{
		"username": "alice", "email": "other@example.com", "password": "secret123",
	})
	assert.Equal(t, http.StatusUnprocessableEntity, status)
}

func TestLogoutRevokesTokens(t *testing.T) {
	s := newServer(t)
	alice := s.register("alice")

	status, _ := s.do(http.MethodPost, "/api/auth/logout", alice.Access, map[string]string{"refresh": alice.Refresh})
	require.Equal(t, http.StatusOK, status)

	status, _ = s.do(http.MethodPost, "/api/posts", alice.Access, map[string]string{"title": "x"})
	assert.Equal(t, http.StatusUnauthorized, status)
	status, _ = s.do(http.MethodPost, "/api/auth/refresh", "", map[string]string{"refresh": alice.Refresh})
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestLikeToggleOverHTTP(t *testing.T) {
	s := newServer(t)
	alice := s.register("alice")
	bob := s.register("bob")
	p := s.createPost(alice.Access, "hello")

	status, env := s.do(http.MethodPost, "/api/posts/"+p.ID+"/like", bob.Access, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Like post successfully", env.Message)

	status, env = s.do(http.MethodPost, "/api/posts/"+p.ID+"/like", bob.Access, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Unlike post successfully", env.Message)
	var res struct {
		Liked      bool  `json:"liked"`
		LikesCount int64 `json:"likes_count"`
	}
	decode(t, env, &res)
	assert.False(t, res.Liked)
	assert.Zero(t, res.LikesCount)

	status, _ = s.do(http.MethodPost, "/api/posts/00000000-0000-0000-0000-000000000000/like", bob.Access, nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestCommentDepthOverHTTP(t *testing.T) {
	s := newServer(t)
	alice := s.register("alice")
	p := s.createPost(alice.Access, "hello")

	status, env := s.do(http.MethodPost, "/api/comments", alice.Access, map[string]string{"post": p.ID, "content": "root"})
	require.Equal(t, http.StatusCreated, status)
	var root struct {
		ID string `json:"id"`
	}
	decode(t, env, &root)

	status, env = s.do(http.MethodPost, "/api/comments", alice.Access, map[string]string{"parent": root.ID, "content": "reply"})
	require.Equal(t, http.StatusCreated, status)
	var reply struct {
		ID string `json:"id"`
	}
	decode(t, env, &reply)

	status, env = s.do(http.MethodPost, "/api/comments", alice.Access, map[string]string{"parent": reply.ID, "content": "too deep"})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Maximum comment depth reached", env.Message)

	status, env = s.do(http.MethodGet, "/api/posts/"+p.ID+"/comments", "", nil)
	require.Equal(t, http.StatusOK, status)
	var page struct {
		Items []struct {
			Replies []json.RawMessage `json:"replies"`
		} `json:"items"`
		TotalCount int64 `json:"total_count"`
	}
	decode(t, env, &page)
	require.Len(t, page.Items, 1)
	assert.Len(t, page.Items[0].Replies, 1)
	assert.EqualValues(t, 1, page.TotalCount)
}

func TestFollowOverHTTP(t *testing.T) {
	s := newServer(t)
	alice := s.register("alice")
	bob := s.register("bob")

	status, env := s.do(http.MethodPost, "/api/users/"+alice.ID+"/follow", alice.Access, nil)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "You cannot follow yourself", env.Message)

	status, _ = s.do(http.MethodPost, "/api/users/"+strings.ToUpper(alice.ID)+"/follow", alice.Access, nil)
	assert.Equal(t, http.StatusBadRequest, status)

	status, env = s.do(http.MethodPost, "/api/users/"+alice.ID+"/follow", bob.Access, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Follow user successfully", env.Message)

	status, _ = s.do(http.MethodPost, "/api/users/"+alice.ID+"/follow", bob.Access, nil)
	assert.Equal(t, http.StatusConflict, status)

	status, env = s.do(http.MethodGet, "/api/users/"+alice.ID, bob.Access, nil)
	require.Equal(t, http.StatusOK, status)
	var profile struct {
		FollowersCount int64 `json:"followers_count"`
		IsFollowing    bool  `json:"is_following"`
	}
	decode(t, env, &profile)
	assert.EqualValues(t, 1, profile.FollowersCount)
	assert.True(t, profile.IsFollowing)

	status, _ = s.do(http.MethodPost, "/api/users/"+alice.ID+"/unfollow", bob.Access, nil)
	assert.Equal(t, http.StatusOK, status)
	status, _ = s.do(http.MethodPost, "/api/users/"+alice.ID+"/unfollow", bob.Access, nil)
	assert.Equal(t, http.StatusConflict, status)
}

func TestFeedOverHTTP(t *testing.T) {
	s := newServer(t)
	alice := s.register("alice")
	for _, title := range []string{"a", "b", "c"} {
		s.createPost(alice.Access, title)
	}
	status, _ := s.do(http.MethodPost, "/api/posts", alice.Access, map[string]string{"title": "hidden", "status": "draft"})
	require.Equal(t, http.StatusCreated, status)

	var page struct {
		Items      []postBody `json:"items"`
		Page       int        `json:"page"`
		TotalPages int        `json:"total_pages"`
		TotalCount int64      `json:"total_count"`
	}

	status, env := s.do(http.MethodGet, "/api/posts?page=999&limit=2&sort_by=title&order=asc", "", nil)
	require.Equal(t, http.StatusOK, status)
	decode(t, env, &page)
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, 2, page.TotalPages)
	assert.EqualValues(t, 3, page.TotalCount)
	require.Len(t, page.Items, 2)
	assert.Equal(t, "a", page.Items[0].Title)

	status, env = s.do(http.MethodGet, "/api/posts", alice.Access, nil)
	require.Equal(t, http.StatusOK, status)
	decode(t, env, &page)
	assert.EqualValues(t, 4, page.TotalCount)

	status, _ = s.do(http.MethodGet, "/api/posts?liked=true", "", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestSearchOverHTTP(t *testing.T) {
	s := newServer(t)
	alice := s.register("alice")
	s.createPost(alice.Access, "Learning Go")

	status, _ := s.do(http.MethodGet, "/api/search?q=%20", "", nil)
	assert.Equal(t, http.StatusBadRequest, status)
	status, _ = s.do(http.MethodGet, "/api/search?q=go&type=fuzzy", "", nil)
	assert.Equal(t, http.StatusBadRequest, status)

	status, env := s.do(http.MethodGet, "/api/search?q=GO&type=hard", "", nil)
	require.Equal(t, http.StatusOK, status)
	var res struct {
		Posts []postBody `json:"posts"`
	}
	decode(t, env, &res)
	require.Len(t, res.Posts, 1)
	assert.Equal(t, "Learning Go", res.Posts[0].Title)
}

func TestTimelineOverHTTP(t *testing.T) {
	s := newServer(t)
	alice := s.register("alice")
	bob := s.register("bob")
	p := s.createPost(alice.Access, "for followers")
	require.NoError(t, s.timeline.Push(context.Background(), p.ID, 100, []string{bob.ID}))

	status, env := s.do(http.MethodGet, "/api/timeline?limit=5", bob.Access, nil)
	require.Equal(t, http.StatusOK, status)
	var res struct {
		Timeline []postBody `json:"timeline"`
	}
	decode(t, env, &res)
	require.Len(t, res.Timeline, 1)
	assert.Equal(t, "for followers", res.Timeline[0].Title)

	status, _ = s.do(http.MethodGet, "/api/timeline?start=x", bob.Access, nil)
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestUploadFeaturedImage(t *testing.T) {
	s := newServer(t)
	alice := s.register("alice")
	bob := s.register("bob")
	p := s.createPost(alice.Access, "pic")

	upload := func(token, contentType string) (int, envelope) {
		var buf bytes.Buffer
		mw := multipart.NewWriter(&buf)
		h := textproto.MIMEHeader{}
		h.Set("Content-Disposition", `form-data; name="image"; filename="a.png"`)
		h.Set("Content-Type", contentType)
		part, err := mw.CreatePart(h)
		require.NoError(t, err)
		_, _ = part.Write([]byte("\x89PNG fake"))
		require.NoError(t, mw.Close())

		req := httptest.NewRequest(http.MethodPost, "/api/posts/"+p.ID+"/image", &buf)
		req.Header.Set("Content-Type", mw.FormDataContentType())
		return s.send(req, token)
	}

	status, _ := upload(bob.Access, "image/png")
	assert.Equal(t, http.StatusForbidden, status)

	status, env := upload(alice.Access, "image/png")
	require.Equal(t, http.StatusOK, status, env.Message)
	var res postBody
	decode(t, env, &res)
	assert.Contains(t, res.FeaturedImage, "http://store/posts/"+p.ID+"/")

	status, _ = upload(alice.Access, "application/pdf")
	assert.Equal(t, http.StatusUnprocessableEntity, status)
}

func TestCategoryCRUD(t *testing.T) {
	s := newServer(t)
	alice := s.register("alice")

	status, env := s.do(http.MethodPost, "/api/categories", alice.Access, map[string]string{"name": "golang"})
	require.Equal(t, http.StatusCreated, status)
	assert.Equal(t, "Create category successfully", env.Message)
	var c struct {
		ID string `json:"id"`
	}
	decode(t, env, &c)

	status, _ = s.do(http.MethodPost, "/api/categories", alice.Access, map[string]string{"name": "golang"})
	assert.Equal(t, http.StatusUnprocessableEntity, status)

	status, _ = s.do(http.MethodDelete, "/api/categories/"+c.ID, alice.Access, nil)
	assert.Equal(t, http.StatusOK, status)
	status, _ = s.do(http.MethodGet, "/api/categories/"+c.ID, "", nil)
	assert.Equal(t, http.StatusNotFound, status)
}
