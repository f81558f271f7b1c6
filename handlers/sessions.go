// handlers/sessions.go — session CRUD plus the nested per-session listings
package handlers

import (
	"github.com/ngtkana/senseki-db/services"

	"github.com/gofiber/fiber/v2"
)

func SetupSessionRoutes(app *fiber.App, sessionService *services.SessionService, matchService *services.MatchService, gspService *services.GSPService) {
	app.Get("/api/sessions", sessionService.GetAllSessions)
	app.Post("/api/sessions", sessionService.CreateSession)
	app.Get("/api/sessions/:id", sessionService.GetSessionByID)
	app.Put("/api/sessions/:id", sessionService.UpdateSession)
	app.Delete("/api/sessions/:id", sessionService.DeleteSession)

	// Nested collections, ordered by match_order
	app.Get("/api/sessions/:session_id/matches", matchService.GetMatchesBySession)
	app.Get("/api/sessions/:session_id/gsp_records", gspService.GetGSPRecordsBySession)
}
