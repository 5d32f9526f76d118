package handler

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"

	"facilityassist/internal/auth"
	"facilityassist/internal/http/middleware"
	"facilityassist/internal/service"
)

// Services bundles everything the route table needs.
type Services struct {
	Auth     service.AuthService
	Notice   service.NoticeService
	Document service.DocumentService
	Unit     service.UnitService
	User     service.UserService
	Tokens   *auth.TokenManager
}

// RegisterRoutes attaches all HTTP routes to the provided Fiber app.
// Everything under /api except the login endpoint requires a Bearer token.
func RegisterRoutes(app *fiber.App, db *sql.DB, svcs Services) {
	app.Get("/health", HealthCheck(db))
	app.Get("/healthz", LivenessProbe())

	api := app.Group("/api")
	api.Post("/auth/login", Login(svcs.Auth))

	authed := api.Group("", middleware.Auth(svcs.Tokens, svcs.Auth))
	authed.Post("/auth/logout", Logout())
	authed.Get("/auth/me", Me(svcs.User))

	authed.Get("/notices", ListNotices(svcs.Notice))
	authed.Get("/notices/all", ListAllNotices(svcs.Notice))
	authed.Get("/notices/:id", GetNotice(svcs.Notice))
	authed.Post("/notices", CreateNotice(svcs.Notice))

	authed.Get("/documents", ListDocuments(svcs.Document))
	authed.Get("/documents/all", ListAllDocuments(svcs.Document))
	authed.Get("/documents/:id", GetDocument(svcs.Document))
	authed.Get("/documents/:id/download", DownloadDocument(svcs.Document))
	authed.Post("/documents", UploadDocument(svcs.Document))

	authed.Get("/units", ListUnits(svcs.Unit))

	authed.Get("/users", ListUsers(svcs.User))
	authed.Get("/users/managers", ListManagers(svcs.User))
	authed.Get("/users/me", Me(svcs.User))
}
