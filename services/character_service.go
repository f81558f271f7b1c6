package services

import (
	"errors"

	"github.com/ngtkana/senseki-db/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type CharacterService struct {
	DB *gorm.DB
}

func NewCharacterService(db *gorm.DB) *CharacterService {
	return &CharacterService{DB: db}
}

func characterToResponse(c models.Character) models.CharacterResponse {
	return models.CharacterResponse{
		ID:         c.ID,
		Name:       c.Name,
		NameEn:     c.NameEn,
		FighterKey: c.FighterKey,
	}
}

// GetAllCharacters returns the full roster, ordered by id (roster order).
func (s *CharacterService) GetAllCharacters(c *fiber.Ctx) error {
	var characters []models.Character
	if err := s.DB.Order("id asc").Find(&characters).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to fetch characters"})
	}

	response := make([]models.CharacterResponse, 0, len(characters))
	for _, char := range characters {
		response = append(response, characterToResponse(char))
	}
	return c.JSON(response)
}

// GetCharacterByID returns a single roster entry.
func (s *CharacterService) GetCharacterByID(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid character id"})
	}

	var char models.Character
	if err := s.DB.First(&char, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "character not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to fetch character"})
	}
	return c.JSON(characterToResponse(char))
}

// characterNames loads an id → name lookup for resolving match responses in
// one query instead of two per match.
func characterNames(db *gorm.DB) (map[int]string, error) {
	var characters []models.Character
	if err := db.Find(&characters).Error; err != nil {
		return nil, err
	}
	names := make(map[int]string, len(characters))
	for _, char := range characters {
		names[char.ID] = char.Name
	}
	return names, nil
}
