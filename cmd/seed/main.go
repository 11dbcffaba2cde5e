// Command seed fills the database with fake users, follows, posts, comments and likes.
package main

import (
	"context"
	"errors"
	"flag"
	"math/rand"

	dbadapter "inkwell/internal/adapters/database"
	"inkwell/internal/adapters/objectstore"
	"inkwell/internal/config"
	categoryapp "inkwell/internal/core/category/service"
	commentapp "inkwell/internal/core/comment/service"
	followerapp "inkwell/internal/core/follower/service"
	"inkwell/internal/core/like"
	likeapp "inkwell/internal/core/like/service"
	postapp "inkwell/internal/core/post/service"
	"inkwell/internal/core/projection"
	userapp "inkwell/internal/core/user/service"
	"inkwell/internal/ports/events"
	postPort "inkwell/internal/ports/post"
	userPort "inkwell/internal/ports/user"

	"github.com/brianvoe/gofakeit/v6"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type seeder struct {
	users      *userapp.UserService
	categories *categoryapp.CategoryService
	posts      *postapp.PostService
	comments   *commentapp.CommentService
	likes      *likeapp.LikeService
	followers  *followerapp.FollowerService
	faker      *gofakeit.Faker
	rnd        *rand.Rand
	logger     *zap.Logger
}

func main() {
	numUsers := flag.Int("users", 50, "users to create")
	postsPerUser := flag.Int("posts", 5, "posts per user")
	followsPerUser := flag.Int("follows", 10, "accounts each user follows")
	seed := flag.Int64("seed", 0, "random seed, 0 picks one")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		config.InitLogger("development")
		config.Logger.Fatal("Invalid configuration", zap.Error(err))
	}
	config.InitLogger(cfg.Env)
	defer config.SyncLogger()

	config.InitDB(cfg.DBDSN)
	if err := dbadapter.AutoMigrate(config.DB); err != nil {
		config.Logger.Fatal("Error during migrations", zap.Error(err))
	}

	s := newSeeder(config.DB, cfg.JWTSecret, *seed, config.Logger)
	if err := s.run(context.Background(), *numUsers, *postsPerUser, *followsPerUser); err != nil {
		config.Logger.Fatal("Seeding failed", zap.Error(err))
	}
}

func newSeeder(db *gorm.DB, secret string, seed int64, logger *zap.Logger) *seeder {
	userRepo := dbadapter.NewUserRepositoryDatabase(db)
	categoryRepo := dbadapter.NewCategoryRepositoryDatabase(db)
	postRepo := dbadapter.NewPostRepositoryDatabase(db)
	commentRepo := dbadapter.NewCommentRepositoryDatabase(db)
	likeRepo := dbadapter.NewLikeRepositoryDatabase(db)
	followerRepo := dbadapter.NewFollowerRepositoryDatabase(db)
	projector := projection.NewProjector(likeRepo, commentRepo)

	return &seeder{
		users: userapp.NewUserService(userRepo, dbadapter.NewSocialLinkRepositoryDatabase(db), followerRepo,
			nil, objectstore.Disabled{}, userapp.TokenConfig{Secret: []byte(secret)}),
		categories: categoryapp.NewCategoryService(categoryRepo),
		posts: postapp.NewPostService(postRepo, categoryRepo, commentRepo,
			dbadapter.NewFanoutRepositoryDatabase(db), projector, objectstore.Disabled{}),
		comments:  commentapp.NewCommentService(commentRepo, postRepo, projector, events.Nop{}),
		likes:     likeapp.NewLikeService(likeRepo, postRepo, commentRepo, events.Nop{}),
		followers: followerapp.NewFollowerService(followerRepo, userRepo, events.Nop{}),
		faker:     gofakeit.New(seed),
		rnd:       rand.New(rand.NewSource(seed)),
		logger:    logger,
	}
}

func (s *seeder) run(ctx context.Context, numUsers, postsPerUser, followsPerUser int) error {
	categoryIDs := s.seedCategories(ctx)
	userIDs := s.seedUsers(ctx, numUsers)
	if len(userIDs) == 0 {
		return errors.New("no users created")
	}
	s.seedFollows(ctx, userIDs, followsPerUser)
	postIDs := s.seedPosts(ctx, userIDs, categoryIDs, postsPerUser)
	s.seedInteractions(ctx, userIDs, postIDs)
	s.logger.Info("Seeding completed",
		zap.Int("users", len(userIDs)),
		zap.Int("posts", len(postIDs)),
	)
	return nil
}

func (s *seeder) seedCategories(ctx context.Context) []string {
	ids := make([]string, 0, 6)
	for _, name := range []string{"Technology", "Travel", "Food", "Science", "Culture", "Sports"} {
		c, err := s.categories.CreateCategory(ctx, "seed", name)
		if err != nil {
			s.logger.Warn("Skipping category", zap.String("name", name), zap.Error(err))
			continue
		}
		ids = append(ids, c.ID)
	}
	return ids
}

func (s *seeder) seedUsers(ctx context.Context, n int) []string {
	ids := make([]string, 0, n)
	for i := 0; i < n; i++ {
		res, err := s.users.RegisterUser(ctx, userPort.RegisterRequest{
			Username:  s.faker.Username() + s.faker.DigitN(4),
			Email:     s.faker.DigitN(6) + "." + s.faker.Email(),
			Password:  "password",
			FirstName: s.faker.FirstName(),
			LastName:  s.faker.LastName(),
		})
		if err != nil {
			s.logger.Warn("Error creating user", zap.Error(err))
			continue
		}
		ids = append(ids, res.User.ID)
		if (i+1)%50 == 0 {
			s.logger.Info("Created users so far", zap.Int("count", i+1))
		}
	}
	return ids
}

func (s *seeder) seedFollows(ctx context.Context, userIDs []string, perUser int) {
	count := 0
	for _, followerID := range userIDs {
		for _, i := range s.rnd.Perm(len(userIDs))[:min(perUser+1, len(userIDs))] {
			followeeID := userIDs[i]
			if followeeID == followerID {
				continue
			}
			if _, err := s.followers.FollowUser(ctx, followerID, followeeID); err != nil {
				s.logger.Warn("Could not follow", zap.String("followerID", followerID), zap.Error(err))
				continue
			}
			count++
		}
	}
	s.logger.Info("Follow setup completed", zap.Int("count", count))
}

func (s *seeder) seedPosts(ctx context.Context, userIDs, categoryIDs []string, perUser int) []string {
	ids := make([]string, 0, len(userIDs)*perUser)
	for _, uid := range userIDs {
		for p := 0; p < perUser; p++ {
			title := s.faker.Sentence(s.rnd.Intn(6) + 3)
			subtitle := s.faker.Sentence(8)
			content := s.faker.Paragraph(3, 4, 12, "\n\n")
			status := "published"
			if s.rnd.Intn(10) == 0 {
				status = "draft"
			}
			in := postPort.PostInput{Title: &title, Subtitle: &subtitle, Content: &content, Status: &status}
			if len(categoryIDs) > 0 {
				in.Category = &categoryIDs[s.rnd.Intn(len(categoryIDs))]
			}

			created, err := s.posts.CreatePost(ctx, uid, in)
			if err != nil {
				s.logger.Warn("Error creating post", zap.String("userID", uid), zap.Error(err))
				continue
			}
			if status == "published" {
				ids = append(ids, created.ID)
			}
		}
	}
	return ids
}

// seedInteractions adds a root comment, sometimes a reply, and a few likes per post.
func (s *seeder) seedInteractions(ctx context.Context, userIDs, postIDs []string) {
	pick := func() string { return userIDs[s.rnd.Intn(len(userIDs))] }

	for _, postID := range postIDs {
		root, err := s.comments.CreateRootComment(ctx, pick(), postID, s.faker.Sentence(10))
		if err != nil {
			s.logger.Warn("Error creating comment", zap.String("postID", postID), zap.Error(err))
			continue
		}
		if s.rnd.Intn(2) == 0 {
			if _, err := s.comments.CreateReply(ctx, pick(), root.ID, s.faker.Sentence(6)); err != nil {
				s.logger.Warn("Error creating reply", zap.Error(err))
			}
		}
		if _, err := s.likes.ToggleLike(ctx, pick(), like.Target{Kind: like.TargetComment, ID: root.ID}); err != nil {
			s.logger.Warn("Error liking comment", zap.Error(err))
		}

		likers := map[string]bool{}
		for i := s.rnd.Intn(5); i > 0; i-- {
			likers[pick()] = true
		}
		for uid := range likers {
			if _, err := s.likes.ToggleLike(ctx, uid, like.Target{Kind: like.TargetPost, ID: postID}); err != nil {
				s.logger.Warn("Error liking post", zap.Error(err))
			}
		}
	}
}
