package storage

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"lifeseed/internal/models"
)

// SQL stores documents as rows of the documents table.
type SQL struct {
	db *gorm.DB
}

// NewSQL wraps an open GORM connection whose schema is already migrated.
func NewSQL(db *gorm.DB) *SQL {
	return &SQL{db: db}
}

func (s *SQL) Load(key string) ([]byte, error) {
	var doc models.Document
	if err := s.db.Where("key = ?", key).First(&doc).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load document %s: %w", key, err)
	}
	return []byte(doc.Value), nil
}

func (s *SQL) Save(key string, data []byte) error {
	doc := models.Document{Key: key, Value: string(data)}
	err := s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&doc).Error
	if err != nil {
		return fmt.Errorf("failed to save document %s: %w", key, err)
	}
	return nil
}

func (s *SQL) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
