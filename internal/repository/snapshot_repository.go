package repository

import (
	"context"
	"errors"
	"sync"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrSnapshotNotFound возвращается, если под ключом ещё ничего не сохранено
var ErrSnapshotNotFound = errors.New("snapshot not found")

// SnapshotRepository определяет хранилище снимков вида "ключ - JSON-документ".
// Каждая запись перезаписывает предыдущее значение целиком.
type SnapshotRepository interface {
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, data []byte) error
}

// StorageEntry - строка таблицы storage_entries
type StorageEntry struct {
	Key       string    `gorm:"column:storage_key;primaryKey;type:varchar(200)"`
	Value     string    `gorm:"column:value;type:text;not null"`
	UpdatedAt time.Time `gorm:"column:updated_at;not null"`
}

// TableName задаёт имя таблицы для GORM
func (StorageEntry) TableName() string {
	return "storage_entries"
}

type snapshotRepository struct {
	db  *gorm.DB
	now func() time.Time
}

// NewSnapshotRepository создаёт репозиторий снимков поверх GORM
func NewSnapshotRepository(db *gorm.DB) SnapshotRepository {
	return &snapshotRepository{db: db, now: time.Now}
}

func (r *snapshotRepository) Load(ctx context.Context, key string) ([]byte, error) {
	var entry StorageEntry
	err := r.db.WithContext(ctx).Where("storage_key = ?", key).First(&entry).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSnapshotNotFound
		}
		return nil, err
	}
	return []byte(entry.Value), nil
}

func (r *snapshotRepository) Save(ctx context.Context, key string, data []byte) error {
	entry := StorageEntry{
		Key:       key,
		Value:     string(data),
		UpdatedAt: r.now().UTC(),
	}

	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "storage_key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).
		Create(&entry).Error
}

// MemorySnapshotRepository хранит снимки в памяти процесса
type MemorySnapshotRepository struct {
	mu      sync.RWMutex
	entries map[string][]byte
}

// NewMemorySnapshotRepository создаёт пустое хранилище в памяти
func NewMemorySnapshotRepository() *MemorySnapshotRepository {
	return &MemorySnapshotRepository{entries: make(map[string][]byte)}
}

func (r *MemorySnapshotRepository) Load(_ context.Context, key string) ([]byte, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	data, ok := r.entries[key]
	if !ok {
		return nil, ErrSnapshotNotFound
	}
	return append([]byte(nil), data...), nil
}

func (r *MemorySnapshotRepository) Save(_ context.Context, key string, data []byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.entries[key] = append([]byte(nil), data...)
	return nil
}
