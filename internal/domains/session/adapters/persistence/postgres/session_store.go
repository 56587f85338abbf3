package postgres

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Apurer/dharai-delivery/internal/domains/session/ports"
)

var _ ports.SessionStore = (*SessionStore)(nil)

// DefaultSessionTTL keeps a client's entries for a month of inactivity.
const DefaultSessionTTL = 30 * 24 * time.Hour

// SessionStore persists Session Store entries in PostgreSQL, one row per client and key.
type SessionStore struct {
	db  *gorm.DB
	ttl time.Duration
	now func() time.Time
}

// NewSessionStore wires a PostgreSQL-backed session store. Caller owns DB lifecycle.
func NewSessionStore(db *gorm.DB, ttl time.Duration) *SessionStore {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &SessionStore{db: db, ttl: ttl, now: time.Now}
}

type sessionEntry struct {
	ClientID  string    `gorm:"primaryKey;column:client_id;size:64"`
	Key       string    `gorm:"primaryKey;column:key;size:64"`
	Value     string    `gorm:"column:value"`
	ExpiresAt time.Time `gorm:"column:expires_at;index"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (sessionEntry) TableName() string { return "client_sessions" }

// touchStep is how far an expiry must lag before a read pushes it forward.
const touchStep = time.Minute

// Get returns a live entry and slides the expiry of the client's live entries
// forward. Expired rows read as absent until purged.
func (s *SessionStore) Get(ctx context.Context, clientID, key string) (string, bool, error) {
	if err := s.ensureDB(); err != nil {
		return "", false, err
	}
	now := s.now()
	var entry sessionEntry
	err := s.db.WithContext(ctx).
		Where("client_id = ? AND key = ? AND expires_at > ?", clientID, key, now).
		First(&entry).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", false, nil
		}
		return "", false, err
	}
	if expiresAt := now.Add(s.ttl); entry.ExpiresAt.Before(expiresAt.Add(-touchStep)) {
		err := s.db.WithContext(ctx).Model(&sessionEntry{}).
			Where("client_id = ? AND expires_at > ?", clientID, now).
			Update("expires_at", expiresAt).Error
		if err != nil {
			return "", false, err
		}
	}
	return entry.Value, true, nil
}

// Set upserts the entry and slides its expiry forward.
func (s *SessionStore) Set(ctx context.Context, clientID, key, value string) error {
	if err := s.ensureDB(); err != nil {
		return err
	}
	clientID = strings.TrimSpace(clientID)
	if clientID == "" || key == "" {
		return errors.New("client id and key are required")
	}
	entry := sessionEntry{ClientID: clientID, Key: key, Value: value, ExpiresAt: s.now().Add(s.ttl)}
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "client_id"}, {Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "expires_at", "updated_at"}),
		}).
		Create(&entry).Error
}

func (s *SessionStore) Clear(ctx context.Context, clientID, key string) error {
	if err := s.ensureDB(); err != nil {
		return err
	}
	return s.db.WithContext(ctx).Delete(&sessionEntry{}, "client_id = ? AND key = ?", clientID, key).Error
}

// PurgeExpired removes expired rows and reports how many were deleted.
func (s *SessionStore) PurgeExpired(ctx context.Context) (int64, error) {
	if err := s.ensureDB(); err != nil {
		return 0, err
	}
	result := s.db.WithContext(ctx).Where("expires_at <= ?", s.now()).Delete(&sessionEntry{})
	return result.RowsAffected, result.Error
}

func (s *SessionStore) ensureDB() error {
	if s == nil || s.db == nil {
		return ports.ErrStoreNotConfigured
	}
	return nil
}
