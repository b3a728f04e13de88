package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jonathan/recipe-crawler/internal/schemas"
	"github.com/jonathan/recipe-crawler/internal/types"
	rootschemas "github.com/jonathan/recipe-crawler/schemas"
)

// Stage selection is derived from JSONB key presence, so a document is
// re-selected on the next run until the stage's fields are written.
const (
	extractedPredicate = `(data ? 'dish_name' AND data ? 'ingredients' AND data ? 'recipe')`
	cleanedPredicate   = `(data ? 'clean_description' AND data ? 'clean_captions')`
)

// UpsertVideo inserts or replaces the document for doc.VideoID. The recipe
// columns mirror the document so they can be queried without JSONB paths.
// Extracted documents must be finalized; see checkFinalized.
func (db *DB) UpsertVideo(ctx context.Context, doc *types.VideoDocument) error {
	if err := checkFinalized(doc); err != nil {
		return &PersistError{Op: "validate", VideoID: doc.VideoID, Cause: err}
	}

	data, err := json.Marshal(doc)
	if err != nil {
		return &PersistError{Op: "marshal", VideoID: doc.VideoID, Cause: err}
	}
	ingredients, err := nullableJSON(doc.Ingredients)
	if err != nil {
		return &PersistError{Op: "marshal", VideoID: doc.VideoID, Cause: err}
	}
	recipe, err := nullableJSON(doc.Recipe)
	if err != nil {
		return &PersistError{Op: "marshal", VideoID: doc.VideoID, Cause: err}
	}

	_, err = db.pool.Exec(ctx,
		`INSERT INTO recipes (video_id, data, dish_name, category, ingredients, recipe, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, NOW())
		 ON CONFLICT (video_id) DO UPDATE SET
			data = EXCLUDED.data,
			dish_name = EXCLUDED.dish_name,
			category = EXCLUDED.category,
			ingredients = EXCLUDED.ingredients,
			recipe = EXCLUDED.recipe,
			updated_at = NOW()`,
		doc.VideoID, data, nullableString(doc.DishName), nullableString(doc.Category), ingredients, recipe,
	)
	if err != nil {
		return &PersistError{Op: "upsert", VideoID: doc.VideoID, Cause: err}
	}
	return nil
}

// DeleteVideo removes a document. It reports whether a row was deleted;
// deleting a missing id is not an error.
func (db *DB) DeleteVideo(ctx context.Context, videoID string) (bool, error) {
	tag, err := db.pool.Exec(ctx, `DELETE FROM recipes WHERE video_id = $1`, videoID)
	if err != nil {
		return false, &PersistError{Op: "delete", VideoID: videoID, Cause: err}
	}
	return tag.RowsAffected() > 0, nil
}

// VideoExists reports whether a document is stored for videoID.
func (db *DB) VideoExists(ctx context.Context, videoID string) (bool, error) {
	var exists bool
	err := db.pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM recipes WHERE video_id = $1)`, videoID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check video %s: %w", videoID, err)
	}
	return exists, nil
}

// GetVideo retrieves a document by id. Returns nil, nil when not found.
func (db *DB) GetVideo(ctx context.Context, videoID string) (*types.VideoDocument, error) {
	var data []byte
	err := db.pool.QueryRow(ctx, `SELECT data FROM recipes WHERE video_id = $1`, videoID).Scan(&data)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get video %s: %w", videoID, err)
	}
	return decodeDocument(videoID, data)
}

// ListPendingForCleaning returns collected documents that have no cleaned
// text yet and were not already extracted.
func (db *DB) ListPendingForCleaning(ctx context.Context) ([]*types.VideoDocument, error) {
	return db.listDocuments(ctx,
		`SELECT video_id, data FROM recipes
		 WHERE NOT `+cleanedPredicate+`
		   AND NOT `+extractedPredicate+`
		 ORDER BY video_id`)
}

// ListPendingForExtraction returns cleaned documents without recipe fields.
func (db *DB) ListPendingForExtraction(ctx context.Context) ([]*types.VideoDocument, error) {
	return db.listDocuments(ctx,
		`SELECT video_id, data FROM recipes
		 WHERE `+cleanedPredicate+`
		   AND NOT `+extractedPredicate+`
		 ORDER BY video_id`)
}

// CountRecipes returns the number of extracted recipes.
func (db *DB) CountRecipes(ctx context.Context) (int, error) {
	var count int
	err := db.pool.QueryRow(ctx, `SELECT COUNT(*) FROM recipes WHERE `+extractedPredicate).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count recipes: %w", err)
	}
	return count, nil
}

func (db *DB) listDocuments(ctx context.Context, query string) ([]*types.VideoDocument, error) {
	rows, err := db.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list videos: %w", err)
	}
	defer rows.Close()

	var docs []*types.VideoDocument
	for rows.Next() {
		var videoID string
		var data []byte
		if err := rows.Scan(&videoID, &data); err != nil {
			return nil, fmt.Errorf("failed to scan video: %w", err)
		}
		doc, err := decodeDocument(videoID, data)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating videos: %w", err)
	}
	return docs, nil
}

// decodeDocument unmarshals a stored document; the row key wins over a
// missing or stale video_id inside the JSON.
func decodeDocument(videoID string, data []byte) (*types.VideoDocument, error) {
	var doc types.VideoDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode video %s: %w", videoID, err)
	}
	doc.VideoID = videoID
	return &doc, nil
}

func nullableString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// nullableJSON marshals non-empty slices; empty ones are stored as NULL.
func nullableJSON[T any](items []T) ([]byte, error) {
	if len(items) == 0 {
		return nil, nil
	}
	return json.Marshal(items)
}

// checkFinalized rejects extracted documents that still carry raw or
// intermediate text, or whose recipe fields are not normalized.
func checkFinalized(doc *types.VideoDocument) error {
	if !doc.IsExtracted() {
		return nil
	}
	return schemas.Validate(rootschemas.VideoDocument, doc)
}
