package handlers

import (
	"github.com/ngtkana/senseki-db/services"

	"github.com/gofiber/fiber/v2"
)

func SetupMatchRoutes(app *fiber.App, matchService *services.MatchService) {
	app.Post("/api/matches", matchService.CreateMatch)
	app.Put("/api/matches/:id", matchService.UpdateMatch)
	app.Patch("/api/matches/:id", matchService.UpdateMatch)
	app.Delete("/api/matches/:id", matchService.DeleteMatch)
}

func SetupGSPRoutes(app *fiber.App, gspService *services.GSPService) {
	app.Post("/api/gsp_records", gspService.CreateGSPRecord)
}

func SetupExportRoutes(app *fiber.App, exportService *services.ExportService) {
	app.Post("/api/export", exportService.ExportNow)
}
