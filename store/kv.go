package store

import (
	"context"
	"errors"
	"sync"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// KV is the persistent key/value boundary. Values are whole JSON documents;
// there is no partial update and no transaction spanning keys.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Put(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// Slot is one persisted key.
type Slot struct {
	Key       string         `gorm:"column:slot_key;primaryKey;size:64"`
	Value     datatypes.JSON `gorm:"not null"`
	UpdatedAt time.Time
}

func (Slot) TableName() string { return "kv_slots" }

// GormKV keeps slots in a SQL table through gorm.
type GormKV struct {
	db *gorm.DB
}

// NewGormKV migrates the slot table and returns a KV backed by it.
func NewGormKV(db *gorm.DB) (*GormKV, error) {
	if err := db.AutoMigrate(&Slot{}); err != nil {
		return nil, err
	}
	return &GormKV{db: db}, nil
}

func (k *GormKV) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var s Slot
	err := k.db.WithContext(ctx).Where("slot_key = ?", key).First(&s).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return []byte(s.Value), true, nil
}

func (k *GormKV) Put(ctx context.Context, key string, value []byte) error {
	s := Slot{Key: key, Value: datatypes.JSON(value), UpdatedAt: time.Now()}
	return k.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "slot_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&s).Error
}

func (k *GormKV) Delete(ctx context.Context, key string) error {
	return k.db.WithContext(ctx).Where("slot_key = ?", key).Delete(&Slot{}).Error
}

// MemoryKV is a process-local KV.
type MemoryKV struct {
	mu   sync.Mutex
	data map[string][]byte
}

func NewMemoryKV() *MemoryKV {
	return &MemoryKV{data: map[string][]byte{}}
}

func (m *MemoryKV) Get(_ context.Context, key string) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[key]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), v...), true, nil
}

func (m *MemoryKV) Put(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = append([]byte(nil), value...)
	return nil
}

func (m *MemoryKV) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}
