package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/kahgin/fika-core/internal/models/db_models"
)

type POIRepository interface {
	CreatePoi(ctx context.Context, poi *db_models.POI) (uuid.UUID, error)
	UpdatePoi(ctx context.Context, poi *db_models.POI) error
	Delete(ctx context.Context, id uuid.UUID) error

	GetByID(ctx context.Context, id string) (*db_models.POI, error)
	ListByDestination(ctx context.Context, destination string, page, pageSize int) ([]db_models.POI, error)

	// ListCandidates returns catalog rows for one role in a destination,
	// best-rated first. An empty theme set means no theme filter.
	ListCandidates(ctx context.Context, destination, role string, themes []string, limit int) ([]db_models.POI, error)

	// TopThemes ranks a destination's themes by rating-weighted place count;
	// the selector uses it to augment thin theme sets.
	TopThemes(ctx context.Context, destination string, limit int) ([]string, error)
}

type poiRepository struct {
	db *gorm.DB
}

func NewPOIRepository(db *gorm.DB) POIRepository {
	return &poiRepository{db: db}
}

func (r *poiRepository) CreatePoi(ctx context.Context, poi *db_models.POI) (uuid.UUID, error) {
	if err := r.db.WithContext(ctx).Create(poi).Error; err != nil {
		return uuid.Nil, err
	}
	return poi.ID, nil
}

func (r *poiRepository) UpdatePoi(ctx context.Context, poi *db_models.POI) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Save(poi)
		if result.Error != nil {
			if errors.Is(result.Error, gorm.ErrRecordNotFound) {
				return nil
			}
			return fmt.Errorf("failed to update POI: %w", result.Error)
		}

		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}

		return nil
	})
}

func (r *poiRepository) Delete(ctx context.Context, id uuid.UUID) error {
	err := r.db.WithContext(ctx).Delete(&db_models.POI{}, "id = ?", id).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	return nil
}

// ────────────────────────────────────────────────────────────────
// Read helpers follow the same pattern: default value + nil error
// when no rows are found.
// ────────────────────────────────────────────────────────────────

func (r *poiRepository) GetByID(ctx context.Context, id string) (*db_models.POI, error) {
	var poi db_models.POI
	err := r.db.WithContext(ctx).First(&poi, "id = ?", id).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &poi, nil
}

func (r *poiRepository) ListByDestination(ctx context.Context, destination string, page, pageSize int) ([]db_models.POI, error) {
	var pois []db_models.POI
	offset := (page - 1) * pageSize

	err := r.db.WithContext(ctx).
		Where("destination = ?", destination).
		Order("rating DESC NULLS LAST, id ASC").
		Offset(offset).
		Limit(pageSize).
		Find(&pois).Error
	if err != nil {
		return nil, err
	}
	return pois, nil
}

func (r *poiRepository) ListCandidates(ctx context.Context, destination, role string, themes []string, limit int) ([]db_models.POI, error) {
	q := r.db.WithContext(ctx).
		Where("destination = ?", destination).
		Where("? = ANY(roles)", role)

	if len(themes) > 0 {
		q = q.Where("themes && ?", pq.Array(themes))
	}

	var pois []db_models.POI
	// Stable order keeps the pipeline deterministic for a given snapshot.
	err := q.Order("rating DESC NULLS LAST, id ASC").
		Limit(limit).
		Find(&pois).Error
	if err != nil {
		return nil, err
	}
	return pois, nil
}

func (r *poiRepository) TopThemes(ctx context.Context, destination string, limit int) ([]string, error) {
	var themes []string
	err := r.db.WithContext(ctx).Raw(`
		SELECT t.theme
		FROM (
			SELECT unnest(themes) AS theme,
			       COUNT(*) * COALESCE(AVG(rating), 2.5) AS weight
			FROM pois
			WHERE destination = ? AND deleted_at IS NULL
			GROUP BY theme
		) t
		ORDER BY t.weight DESC, t.theme ASC
		LIMIT ?`, destination, limit).
		Scan(&themes).Error
	if err != nil {
		return nil, err
	}
	return themes, nil
}
