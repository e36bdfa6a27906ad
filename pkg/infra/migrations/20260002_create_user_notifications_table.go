package migrations

import (
	"github.com/NeuralTrust/TrustImage/pkg/infra/database"
	"gorm.io/gorm"
)

func init() {
	database.RegisterMigration(database.Migration{
		ID:   "20260002_create_user_notifications_table",
		Name: "Create user_notifications table",

		Up: func(db *gorm.DB) error {
			if err := db.Exec(`
				CREATE TABLE IF NOT EXISTS user_notifications (
					id         BIGSERIAL PRIMARY KEY,
					user_id    BIGINT,
					device_id  TEXT,
					type       TEXT NOT NULL DEFAULT 'system',
					title      TEXT NOT NULL,
					message    TEXT NOT NULL,
					is_read    BOOLEAN NOT NULL DEFAULT FALSE,
					created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
					CONSTRAINT chk_user_notifications_recipient
						CHECK ((user_id IS NULL) <> (device_id IS NULL))
				);
			`).Error; err != nil {
				return err
			}

			if err := db.Exec(`
				CREATE INDEX IF NOT EXISTS idx_user_notifications_user_id
				ON user_notifications (user_id, created_at DESC)
				WHERE user_id IS NOT NULL;
			`).Error; err != nil {
				return err
			}

			if err := db.Exec(`
				CREATE INDEX IF NOT EXISTS idx_user_notifications_device_id
				ON user_notifications (device_id, created_at DESC)
				WHERE device_id IS NOT NULL;
			`).Error; err != nil {
				return err
			}

			return nil
		},

		Down: func(db *gorm.DB) error {
			return db.Exec(`DROP TABLE IF EXISTS user_notifications;`).Error
		},
	})
}
