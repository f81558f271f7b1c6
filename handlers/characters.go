package handlers

import (
	"github.com/ngtkana/senseki-db/services"

	"github.com/gofiber/fiber/v2"
)

func SetupCharacterRoutes(app *fiber.App, characterService *services.CharacterService) {
	app.Get("/api/characters", characterService.GetAllCharacters)
	app.Get("/api/characters/:id", characterService.GetCharacterByID)
}
