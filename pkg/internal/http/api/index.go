package api

import (
	"time"

	"tipshare/pkg/internal/security"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/spf13/viper"
	"gorm.io/gorm"
)

// API bundles the store handle and the token authority every handler needs.
// Handlers never reach for globals, which keeps them testable against an
// in-memory database.
type API struct {
	db        *gorm.DB
	authority *security.TokenAuthority
}

func MapAPIs(app *fiber.App, baseURL string, db *gorm.DB, authority *security.TokenAuthority) {
	srv := &API{db: db, authority: authority}

	createLimiter := limiter.New(limiter.Config{
		Max:        limitOrDefault("limits.create_per_minute", 10),
		Expiration: time.Minute,
		LimitReached: func(c *fiber.Ctx) error {
			return fiber.NewError(fiber.StatusTooManyRequests, "too many requests, slow down")
		},
	})
	credentialLimiter := limiter.New(limiter.Config{
		Max:        limitOrDefault("limits.auth_per_quarter", 5),
		Expiration: 15 * time.Minute,
		LimitReached: func(c *fiber.Ctx) error {
			return fiber.NewError(fiber.StatusTooManyRequests, "too many attempts, try again later")
		},
	})

	router := app.Group(baseURL, srv.contextMiddleware)
	{
		accounts := router.Group("/auth")
		{
			accounts.Post("/register", credentialLimiter, srv.doRegister)
			accounts.Post("/login", credentialLimiter, srv.doLogin)
		}

		posts := router.Group("/posts")
		{
			posts.Get("/", srv.listPost)
			posts.Get("/:postId", srv.getPost)
			posts.Post("/", createLimiter, srv.createPost)
			posts.Put("/:postId", srv.editPost)
			posts.Delete("/:postId", srv.deletePost)
			posts.Post("/:postId/like", srv.likePost)
			posts.Post("/:postId/fork", srv.forkPost)
			posts.Post("/:postId/save", srv.savePost)
		}

		comments := router.Group("/comments")
		{
			comments.Get("/post/:postId", srv.listPostComments)
			comments.Post("/", createLimiter, srv.createComment)
			comments.Delete("/:commentId", srv.deleteComment)
			comments.Post("/:commentId/like", srv.likeComment)
		}

		categories := router.Group("/categories")
		{
			categories.Get("/", srv.listCategory)
			categories.Get("/:categoryId", srv.getCategory)
			categories.Post("/", srv.createCategory)
		}

		users := router.Group("/users")
		{
			users.Get("/me", srv.getMyself)
			users.Put("/me", srv.editMyself)
			users.Get("/:userId", srv.getOtherUser)
			users.Post("/:userId/follow", srv.followUser)
			users.Post("/:userId/unfollow", srv.unfollowUser)
		}
	}
}

func limitOrDefault(key string, fallback int) int {
	if value := viper.GetInt(key); value > 0 {
		return value
	}
	return fallback
}
