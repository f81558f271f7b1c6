// workers/roster_sync_worker.go
package workers

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/ngtkana/senseki-db/models"
	"github.com/ngtkana/senseki-db/services"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// RemoteFighter matches the JSON of the roster endpoint. FighterKey may be
// absent for newly announced fighters; a key is then derived from the English
// name.
type RemoteFighter struct {
	Name       string `json:"name"`
	NameEn     string `json:"name_en"`
	FighterKey string `json:"fighter_key,omitempty"`
}

type rosterResponse struct {
	Fighters []RemoteFighter `json:"fighters"`
}

// RosterSyncWorker keeps the local character table in step with a remote
// roster feed (DLC additions, name fixes). Purely additive — it never deletes
// local characters, since matches reference them.
type RosterSyncWorker struct {
	db         *gorm.DB
	rosterURL  string
	interval   time.Duration
	httpClient *http.Client
}

func NewRosterSyncWorker(db *gorm.DB, rosterURL string, httpClient *http.Client) *RosterSyncWorker {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &RosterSyncWorker{
		db:         db,
		rosterURL:  rosterURL,
		interval:   6 * time.Hour,
		httpClient: httpClient,
	}
}

func (w *RosterSyncWorker) Start(ctx context.Context) {
	log.Println("🔁 Starting Roster Sync Worker…")
	go w.run(ctx)
}

func (w *RosterSyncWorker) run(ctx context.Context) {
	if err := w.syncOnce(ctx); err != nil {
		log.Printf("⚠️ Initial roster sync failed: %v", err)
	}

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if err := w.syncOnce(ctx); err != nil {
				log.Printf("❌ Roster sync failed: %v", err)
			}
		case <-ctx.Done():
			log.Println("⏹️ Roster Sync Worker stopped")
			return
		}
	}
}

func (w *RosterSyncWorker) syncOnce(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, "GET", w.rosterURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create roster request: %w", err)
	}

	resp, err := w.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("roster request failed: %w", err)
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("roster endpoint returned %d: %s", resp.StatusCode, string(body))
	}

	var roster rosterResponse
	if err := json.NewDecoder(resp.Body).Decode(&roster); err != nil {
		return fmt.Errorf("failed to decode roster response: %w", err)
	}
	if len(roster.Fighters) == 0 {
		return nil
	}

	var upsertCount, errorCount int
	for _, fighter := range roster.Fighters {
		key := fighter.FighterKey
		if key == "" {
			key = services.FighterKeyFor(fighter.NameEn)
		}
		character := models.Character{
			Name:       fighter.Name,
			NameEn:     fighter.NameEn,
			FighterKey: key,
		}
		if err := w.db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "fighter_key"}},
			DoUpdates: clause.AssignmentColumns([]string{"name", "name_en", "updated_at"}),
		}).Create(&character).Error; err != nil {
			errorCount++
			log.Printf("[ROSTER] ⚠️ Failed to upsert fighter %q: %v", key, err)
		} else {
			upsertCount++
		}
	}

	log.Printf("[ROSTER] ✅ Synced %d fighter(s) (%d upserted, %d errors)",
		len(roster.Fighters), upsertCount, errorCount)
	return nil
}
