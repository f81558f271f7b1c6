package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/ngtkana/senseki-db/models"
	"github.com/ngtkana/senseki-db/utils"

	"github.com/go-co-op/gocron/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ExportService snapshots the whole ledger (sessions, matches, GSP records)
// as a JSON document into the configured object store bucket.
type ExportService struct {
	DB *gorm.DB
}

func NewExportService(db *gorm.DB) *ExportService {
	return &ExportService{DB: db}
}

type exportSnapshot struct {
	ExportedAt time.Time          `json:"exported_at"`
	Sessions   []models.Session   `json:"sessions"`
	Matches    []models.Match     `json:"matches"`
	GSPRecords []models.GSPRecord `json:"gsp_records"`
}

// Snapshot builds and uploads one export; returns the object key.
func (s *ExportService) Snapshot(ctx context.Context) (string, error) {
	var snapshot exportSnapshot
	snapshot.ExportedAt = time.Now().UTC()

	if err := s.DB.Order("id asc").Find(&snapshot.Sessions).Error; err != nil {
		return "", fmt.Errorf("failed to load sessions: %w", err)
	}
	if err := s.DB.Order("id asc").Find(&snapshot.Matches).Error; err != nil {
		return "", fmt.Errorf("failed to load matches: %w", err)
	}
	if err := s.DB.Order("id asc").Find(&snapshot.GSPRecords).Error; err != nil {
		return "", fmt.Errorf("failed to load gsp records: %w", err)
	}

	body, err := json.Marshal(snapshot)
	if err != nil {
		return "", fmt.Errorf("failed to encode snapshot: %w", err)
	}

	key := fmt.Sprintf("exports/%s-%s.json",
		snapshot.ExportedAt.Format("20060102T150405Z"), uuid.NewString()[:8])
	if err := utils.UploadJSON(ctx, key, body); err != nil {
		return "", err
	}
	return key, nil
}

// ExportNow handles POST /api/export.
func (s *ExportService) ExportNow(c *fiber.Ctx) error {
	if !utils.ObjectStoreEnabled() {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": "export bucket not configured"})
	}
	key, err := s.Snapshot(c.Context())
	if err != nil {
		log.Printf("[EXPORT] ❌ snapshot failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "export failed"})
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"key": key})
}

// StartExportScheduler uploads a daily snapshot. Callers only start this when
// the object store is configured.
func (s *ExportService) StartExportScheduler() {
	sched, _ := gocron.NewScheduler()
	sched.Start()

	_, _ = sched.NewJob(
		gocron.DurationJob(24*time.Hour),
		gocron.NewTask(func() {
			key, err := s.Snapshot(context.Background())
			if err != nil {
				log.Printf("[EXPORT] ❌ scheduled snapshot failed: %v", err)
				return
			}
			log.Printf("[EXPORT] ✅ snapshot uploaded: %s", key)
		}),
	)
}
