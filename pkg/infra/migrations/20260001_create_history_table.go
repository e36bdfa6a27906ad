package migrations

import (
	"github.com/NeuralTrust/TrustImage/pkg/infra/database"
	"gorm.io/gorm"
)

func init() {
	database.RegisterMigration(database.Migration{
		ID:   "20260001_create_history_table",
		Name: "Create history table for published uploads",

		Up: func(db *gorm.DB) error {
			if err := db.Exec(`
				CREATE TABLE IF NOT EXISTS history (
					id           BIGSERIAL PRIMARY KEY,
					url          TEXT NOT NULL,
					filename     TEXT NOT NULL DEFAULT '',
					hash         TEXT NOT NULL,
					object_key   TEXT NOT NULL DEFAULT '',
					content_type TEXT NOT NULL DEFAULT '',
					size         BIGINT NOT NULL DEFAULT 0,
					user_id      BIGINT,
					device_id    TEXT,
					is_shared    BOOLEAN NOT NULL DEFAULT FALSE,
					created_at   TIMESTAMPTZ NOT NULL DEFAULT NOW()
				);
			`).Error; err != nil {
				return err
			}

			// moderation deletes by fingerprint
			if err := db.Exec(`
				CREATE INDEX IF NOT EXISTS idx_history_hash
				ON history (hash);
			`).Error; err != nil {
				return err
			}

			return nil
		},

		Down: func(db *gorm.DB) error {
			return db.Exec(`DROP TABLE IF EXISTS history;`).Error
		},
	})
}
