package kv

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	apperrors "github.com/RodrigoMBrauna/SistemaDeEstoque/internal/errors"
)

// Record is one row of the kv_store table. kv_key is binary so lookups and
// prefix scans compare bytes exactly instead of following the table's
// case- and accent-insensitive default collation.
type Record struct {
	Key   string `gorm:"column:kv_key;primaryKey;type:varbinary(255)"`
	Value string `gorm:"column:kv_value;type:longtext;not null"`
}

// TableName pins the table name regardless of naming strategy.
func (Record) TableName() string {
	return "kv_store"
}

// SQLStore keeps values in a single two-column table through GORM.
type SQLStore struct {
	db *gorm.DB
}

var _ Store = (*SQLStore)(nil)

// NewSQL creates a store over db. Call Migrate before first use.
func NewSQL(db *gorm.DB) *SQLStore {
	return &SQLStore{db: db}
}

// Migrate creates the kv_store table if needed.
func (s *SQLStore) Migrate() error {
	return apperrors.NewStorageError("migrate", "", s.db.AutoMigrate(&Record{}))
}

func (s *SQLStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var rec Record
	err := s.db.WithContext(ctx).Where("kv_key = ?", key).First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, apperrors.NewStorageError("get", key, err)
	}
	return []byte(rec.Value), true, nil
}

func (s *SQLStore) Set(ctx context.Context, key string, value []byte) error {
	rec := Record{Key: key, Value: string(value)}
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "kv_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"kv_value"}),
	}).Create(&rec).Error
	return apperrors.NewStorageError("set", key, err)
}

func (s *SQLStore) Delete(ctx context.Context, key string) error {
	err := s.db.WithContext(ctx).Where("kv_key = ?", key).Delete(&Record{}).Error
	return apperrors.NewStorageError("delete", key, err)
}

func (s *SQLStore) ScanPrefix(ctx context.Context, prefix string) ([][]byte, error) {
	var recs []Record
	err := s.db.WithContext(ctx).Where("kv_key LIKE ?", escapeLike(prefix)+"%").Find(&recs).Error
	if err != nil {
		return nil, apperrors.NewStorageError("scan", prefix, err)
	}
	out := make([][]byte, 0, len(recs))
	for _, rec := range recs {
		out = append(out, []byte(rec.Value))
	}
	return out, nil
}

var likeReplacer = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike quotes LIKE wildcards using the default backslash escape.
func escapeLike(s string) string {
	return likeReplacer.Replace(s)
}
