// Package http содержит компоненты для HTTP сервера.
package http

import (
	"github.com/gofiber/fiber/v3"

	"notedelta/internal/adapters/http/auth"
	"notedelta/internal/adapters/http/middleware"
	"notedelta/internal/adapters/http/notes"
	"notedelta/internal/ports/api"
	"notedelta/internal/ports/services"
)

// SetupRouter настраивает маршрутизацию для HTTP сервера.
func SetupRouter(
	app *fiber.App,
	authUseCase api.AuthUseCase,
	userUseCase api.UserUseCase,
	noteUseCase api.NoteUseCase,
	tokenService services.TokenService,
) {
	authHandler := auth.NewHandler(authUseCase, userUseCase)
	notesHandler := notes.NewHandler(noteUseCase)

	// Middleware для всех запросов.
	app.Use(middleware.NewLoggerMiddleware())
	app.Use(middleware.NewRecoveryMiddleware())

	// API версии 1.
	apiV1 := app.Group("/api/v1")

	// Auth routes (публичные).
	authRoutes := apiV1.Group("/auth")
	authRoutes.Post("/register", authHandler.Register)
	authRoutes.Post("/login", authHandler.Login)
	authRoutes.Post("/refresh", authHandler.RefreshTokens)
	authRoutes.Post("/logout", authHandler.Logout)

	// Публичный доступ к опубликованным заметкам.
	apiV1.Get("/shared/:share_token", notesHandler.GetSharedNote)

	requireAuth := middleware.NewAuthMiddleware(tokenService)

	// Защищенные маршруты пользователя.
	userRoutes := apiV1.Group("/user")
	userRoutes.Use(requireAuth)
	userRoutes.Get("/profile", authHandler.GetProfile)
	userRoutes.Put("/password", authHandler.UpdatePassword)
	userRoutes.Delete("/", authHandler.DeleteUser)

	// Защищенные маршруты заметок.
	noteRoutes := apiV1.Group("/notes")
	noteRoutes.Use(requireAuth)
	noteRoutes.Post("/", notesHandler.CreateNote)
	noteRoutes.Get("/", notesHandler.ListNotes)
	noteRoutes.Get("/:note_id", notesHandler.GetNote)
	noteRoutes.Put("/:note_id", notesHandler.UpdateNote)
	noteRoutes.Delete("/:note_id", notesHandler.DeleteNote)
	noteRoutes.Post("/:note_id/share", notesHandler.ShareNote)
	noteRoutes.Delete("/:note_id/share", notesHandler.UnshareNote)

	// Обработчик для несуществующих маршрутов.
	app.Use(func(c fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Route not found",
		})
	})
}
