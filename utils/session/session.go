package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/collegehub/cms-api/utils/cache"
)

// Data is the mutable per-session state kept in Redis. Identity stays in
// the signed cookie token; only admin UI state lives here.
type Data struct {
	SelectedCollegeID *uint `json:"selected_college_id,omitempty"`
}

// Store persists admin session state keyed by the session token's JTI.
// A nil Store (Redis unavailable) degrades to "no state": reads return
// empty data and writes are dropped, so tenant resolution falls back to
// "no college selected" instead of failing the request.
type Store struct {
	cache *cache.RedisCache
	ttl   time.Duration
}

// NewStore creates a session store. cache may be nil.
func NewStore(c *cache.RedisCache, ttl time.Duration) *Store {
	if c == nil {
		return nil
	}
	return &Store{cache: c, ttl: ttl}
}

func sessionKey(sid string) string {
	return fmt.Sprintf("session:%s", sid)
}

// Get loads session data. A missing key or a nil store yields empty data.
func (s *Store) Get(ctx context.Context, sid string) (Data, error) {
	var data Data
	if s == nil || sid == "" {
		return data, nil
	}
	err := s.cache.GetJSON(ctx, sessionKey(sid), &data)
	if err != nil {
		if errors.Is(err, cache.ErrNotFound) {
			return Data{}, nil
		}
		return Data{}, err
	}
	return data, nil
}

// SetSelectedCollege persists the selected college for the session.
func (s *Store) SetSelectedCollege(ctx context.Context, sid string, collegeID uint) error {
	if s == nil || sid == "" {
		return nil
	}
	data, err := s.Get(ctx, sid)
	if err != nil {
		return err
	}
	data.SelectedCollegeID = &collegeID
	return s.cache.SetJSON(ctx, sessionKey(sid), data, s.ttl)
}

// ClearSelectedCollege drops the selected college without ending the session.
func (s *Store) ClearSelectedCollege(ctx context.Context, sid string) error {
	if s == nil || sid == "" {
		return nil
	}
	data, err := s.Get(ctx, sid)
	if err != nil {
		return err
	}
	data.SelectedCollegeID = nil
	return s.cache.SetJSON(ctx, sessionKey(sid), data, s.ttl)
}

// Delete ends the session (logout).
func (s *Store) Delete(ctx context.Context, sid string) error {
	if s == nil || sid == "" {
		return nil
	}
	return s.cache.Delete(ctx, sessionKey(sid))
}
