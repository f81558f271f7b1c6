package services

import (
	"github.com/ngtkana/senseki-db/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type GSPService struct {
	DB *gorm.DB
}

func NewGSPService(db *gorm.DB) *GSPService {
	return &GSPService{DB: db}
}

func gspRecordToResponse(r models.GSPRecord) models.GSPRecordResponse {
	return models.GSPRecordResponse{
		ID:         r.ID,
		SessionID:  r.SessionID,
		MatchOrder: r.MatchOrder,
		GSP:        r.GSP,
		Note:       r.Note,
	}
}

// CreateGSPRecord stores a GSP reading against a session.
func (s *GSPService) CreateGSPRecord(c *fiber.Ctx) error {
	var req models.CreateGSPRecordRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if req.GSP < 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "gsp must not be negative"})
	}

	record := models.GSPRecord{
		SessionID:  req.SessionID,
		MatchOrder: req.MatchOrder,
		GSP:        req.GSP,
		Note:       req.Note,
	}
	if err := s.DB.Create(&record).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to create GSP record"})
	}
	return c.Status(fiber.StatusCreated).JSON(gspRecordToResponse(record))
}

// GetGSPRecordsBySession lists a session's GSP readings in match order.
func (s *GSPService) GetGSPRecordsBySession(c *fiber.Ctx) error {
	sessionID, err := c.ParamsInt("session_id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid session id"})
	}

	var records []models.GSPRecord
	if err := s.DB.Where("session_id = ?", sessionID).Order("match_order asc").Find(&records).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to fetch GSP records"})
	}

	response := make([]models.GSPRecordResponse, 0, len(records))
	for _, record := range records {
		response = append(response, gspRecordToResponse(record))
	}
	return c.JSON(response)
}
