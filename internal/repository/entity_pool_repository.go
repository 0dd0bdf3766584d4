package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"entity-match/internal/database"
	"entity-match/internal/domain/entity"
)

// EntityPoolRepository stores named, reusable collections of entities that a
// match request can reference instead of inlining both sides. Pools hold
// inputs only; results are never written back.
type EntityPoolRepository interface {
	EnsureSchema(ctx context.Context) error
	ReplacePool(ctx context.Context, name string, entities []entity.Entity) error
	GetPool(ctx context.Context, name string) ([]entity.Entity, error)
}

type PostgresEntityPoolRepository struct {
	db database.DB
}

func NewPostgresEntityPoolRepository(db database.DB) *PostgresEntityPoolRepository {
	return &PostgresEntityPoolRepository{db: db}
}

func (r *PostgresEntityPoolRepository) EnsureSchema(ctx context.Context) error {
	_, err := r.db.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS entity_pool_entries (
			pool_name   TEXT  NOT NULL,
			position    INT   NOT NULL,
			entity_id   TEXT  NOT NULL,
			entity_type TEXT  NOT NULL,
			attributes  JSONB NOT NULL DEFAULT '{}'::jsonb,
			preferences JSONB NOT NULL DEFAULT '[]'::jsonb,
			constraints JSONB NOT NULL DEFAULT '{}'::jsonb,
			PRIMARY KEY (pool_name, entity_id)
		)`)
	return err
}

func (r *PostgresEntityPoolRepository) ReplacePool(ctx context.Context, name string, entities []entity.Entity) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `DELETE FROM entity_pool_entries WHERE pool_name = $1`, name); err != nil {
		return err
	}

	for pos, e := range entities {
		attrs, err := json.Marshal(e.Attributes)
		if err != nil {
			return fmt.Errorf("marshal attributes for %s: %w", e.ID, err)
		}
		prefs, err := json.Marshal(e.Preferences)
		if err != nil {
			return fmt.Errorf("marshal preferences for %s: %w", e.ID, err)
		}
		constraints, err := json.Marshal(e.Constraints)
		if err != nil {
			return fmt.Errorf("marshal constraints for %s: %w", e.ID, err)
		}

		_, err = tx.Exec(ctx, `
			INSERT INTO entity_pool_entries
				(pool_name, position, entity_id, entity_type, attributes, preferences, constraints)
			VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			name, pos, e.ID, e.Type.String(), attrs, prefs, constraints,
		)
		if err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

func (r *PostgresEntityPoolRepository) GetPool(ctx context.Context, name string) ([]entity.Entity, error) {
	rows, err := r.db.Query(ctx, `
		SELECT entity_id, entity_type, attributes, preferences, constraints
		FROM entity_pool_entries
		WHERE pool_name = $1
		ORDER BY position ASC`, name)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]entity.Entity, 0)
	for rows.Next() {
		var (
			id, typRaw                   string
			attrsB, prefsB, constraintsB []byte
		)
		if err := rows.Scan(&id, &typRaw, &attrsB, &prefsB, &constraintsB); err != nil {
			return nil, err
		}

		typ, err := entity.ParseEntityType(typRaw)
		if err != nil {
			return nil, fmt.Errorf("pool %s entry %s: %w", name, id, err)
		}

		var attrs map[string]entity.AttrValue
		if err := json.Unmarshal(attrsB, &attrs); err != nil {
			return nil, fmt.Errorf("pool %s entry %s attributes: %w", name, id, err)
		}
		var prefs []string
		if err := json.Unmarshal(prefsB, &prefs); err != nil {
			return nil, fmt.Errorf("pool %s entry %s preferences: %w", name, id, err)
		}
		var constraints map[string]entity.AttrValue
		if err := json.Unmarshal(constraintsB, &constraints); err != nil {
			return nil, fmt.Errorf("pool %s entry %s constraints: %w", name, id, err)
		}

		out = append(out, entity.NewEntity(id, typ, attrs, prefs, constraints))
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
