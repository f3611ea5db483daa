// Package admin — веб-панель: дашборд со статистикой, управление
// пользователями и рецептами. Одна общая админская учётка, сессии
// в redis (или в памяти, если redis не настроен).
package admin

import (
	"context"
	"log/slog"
	"net"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/session"
	fiberredis "github.com/gofiber/storage/redis"
	"github.com/gofiber/template/html/v2"

	"github.com/maybecook/mealbot/internal/config"
	"github.com/maybecook/mealbot/internal/domain/history"
	"github.com/maybecook/mealbot/internal/domain/purchases"
	"github.com/maybecook/mealbot/internal/domain/recipes"
	"github.com/maybecook/mealbot/internal/domain/stats"
	"github.com/maybecook/mealbot/internal/domain/users"
	"github.com/maybecook/mealbot/internal/entitlement"
	"github.com/maybecook/mealbot/internal/infra/cache"
)

const sessionTTL = 8 * time.Hour

type Server struct {
	app   *fiber.App
	log   *slog.Logger
	store *session.Store
	val   *validator.Validate

	username     string
	password     string
	passwordHash string

	eval  entitlement.Evaluator
	cache *cache.Cache

	stats   *stats.Repo
	users   *users.Repo
	recipes *recipes.Repo
	history *history.Repo
	buys    *purchases.Repo
}

func New(log *slog.Logger, cfg config.Config,
	eval entitlement.Evaluator, c *cache.Cache,
	statsRepo *stats.Repo, usersRepo *users.Repo, recipesRepo *recipes.Repo,
	historyRepo *history.Repo, buysRepo *purchases.Repo) *Server {

	engine := html.New(cfg.Admin.ViewsDir, ".html")
	engine.AddFunc("date", func(t time.Time) string {
		return t.Format("02.01.2006 15:04")
	})

	app := fiber.New(fiber.Config{
		Views:       engine,
		ViewsLayout: "layout",
	})
	app.Use(recover.New(), fiberlogger.New())

	s := &Server{
		app:          app,
		log:          log,
		store:        newSessionStore(cfg.Redis.Addr, cfg.Redis.Password),
		val:          validator.New(),
		username:     cfg.Admin.Username,
		password:     cfg.Admin.Password,
		passwordHash: cfg.Admin.PasswordHash,
		eval:         eval,
		cache:        c,
		stats:        statsRepo,
		users:        usersRepo,
		recipes:      recipesRepo,
		history:      historyRepo,
		buys:         buysRepo,
	}
	s.routes()
	return s
}

// newSessionStore Redis-хранилище сессий в отдельной БД (кэш живёт в нулевой);
// без redis fiber использует встроенное in-memory хранилище.
func newSessionStore(redisAddr, redisPassword string) *session.Store {
	cfg := session.Config{
		Expiration:     sessionTTL,
		KeyLookup:      "cookie:admin_session",
		CookieHTTPOnly: true,
		CookieSameSite: "Lax",
	}
	if redisAddr != "" {
		if host, portStr, err := net.SplitHostPort(redisAddr); err == nil {
			port, _ := strconv.Atoi(portStr)
			cfg.Storage = fiberredis.New(fiberredis.Config{
				Host:     host,
				Port:     port,
				Password: redisPassword,
				Database: 1,
			})
		}
	}
	return session.New(cfg)
}

func (s *Server) routes() {
	s.app.Get("/admin/login", s.handleLoginPage)
	s.app.Post("/admin/login", s.handleLoginPost)
	s.app.Get("/admin/logout", s.handleLogout)

	grp := s.app.Group("/admin", s.requireAdmin)
	grp.Get("/", s.handleDashboard)

	grp.Get("/users", s.handleUsers)
	grp.Get("/users/export", s.handleUsersExport)
	grp.Get("/users/:id", s.handleUserDetail)
	grp.Post("/users/:id/subscription", s.handleUserSubscription)
	grp.Post("/users/:id/delete", s.handleUserDelete)

	grp.Get("/recipes", s.handleRecipes)
	grp.Get("/recipes/export", s.handleRecipesExport)
	grp.Post("/recipes/import", s.handleRecipesImport)
	grp.Get("/recipes/new", s.handleRecipeNew)
	grp.Get("/recipes/:id", s.handleRecipeEdit)
	grp.Post("/recipes/save", s.handleRecipeSave)
	grp.Post("/recipes/:id/delete", s.handleRecipeDelete)

	grp.Get("/api/stats", s.handleAPIStats)
	grp.Get("/api/users/search", s.handleAPIUserSearch)
}

func (s *Server) Run(addr string) error {
	return s.app.Listen(addr)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.app.ShutdownWithContext(ctx)
}
