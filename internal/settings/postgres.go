package settings

import (
	"context"
	"fmt"

	"github.com/BradenHooton/gridboard/internal/database"
)

// PostgresStore keeps documents in the view_settings JSONB table
type PostgresStore struct {
	db *database.DB
}

func NewPostgresStore(db *database.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (p *PostgresStore) Load(ctx context.Context, key string) (*ViewSettings, error) {
	query := `SELECT document FROM view_settings WHERE settings_key = $1`

	var data []byte
	if err := p.db.Pool.QueryRow(ctx, query, key).Scan(&data); err != nil {
		return nil, database.MapPostgresError(err)
	}
	return decode(data)
}

func (p *PostgresStore) Save(ctx context.Context, key string, vs ViewSettings) error {
	if err := ValidateKey(key); err != nil {
		return err
	}
	data, err := encode(vs)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO view_settings (settings_key, document, created_at, updated_at)
		VALUES ($1, $2, NOW(), NOW())
		ON CONFLICT (settings_key)
		DO UPDATE SET document = EXCLUDED.document, updated_at = NOW()
	`
	if _, err := p.db.Pool.Exec(ctx, query, key, data); err != nil {
		return fmt.Errorf("save settings %s: %w", key, database.MapPostgresError(err))
	}
	return nil
}
