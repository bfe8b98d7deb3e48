package notifications

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"time"
)

const feedKey = "admin_notifications"

// DefaultFeedCap bounds the persisted log; the oldest entries are evicted.
const DefaultFeedCap = 50

// Entry is one persisted order alert. Read is stored for the admin UI but
// never filtered on.
type Entry struct {
	ID      int64  `json:"id"`
	Content string `json:"content"`
	Time    string `json:"time"`
	Read    bool   `json:"read"`
}

// Keyspace is the key/value surface the feed persists into, satisfied by
// *redis.Client.
type Keyspace interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
}

// Feed is the persisted, capped, newest-first log of order alerts plus a
// transient unread counter. The counter intentionally does not survive a
// restart, only the entries do.
type Feed struct {
	keyspace Keyspace
	cap      int
	now      func() time.Time

	mu     sync.Mutex
	unread int
}

// NewFeed builds a feed over the given keyspace. cap values below one fall
// back to DefaultFeedCap.
func NewFeed(keyspace Keyspace, cap int) *Feed {
	if cap < 1 {
		cap = DefaultFeedCap
	}
	return &Feed{
		keyspace: keyspace,
		cap:      cap,
		now:      time.Now,
	}
}

// Record prepends a new entry, evicts beyond the cap, persists the full log
// and bumps the unread counter. The entry id is the creation timestamp.
func (f *Feed) Record(ctx context.Context, content string) Entry {
	now := f.now()
	entry := Entry{
		ID:      now.UnixMilli(),
		Content: content,
		Time:    now.Format("15:04:05 02/01/2006"),
	}

	entries := append([]Entry{entry}, f.List(ctx)...)
	if len(entries) > f.cap {
		entries = entries[:f.cap]
	}
	f.persist(ctx, entries)

	f.mu.Lock()
	f.unread++
	f.mu.Unlock()
	return entry
}

// List returns the persisted log newest first. Absent or corrupt state reads
// as empty.
func (f *Feed) List(ctx context.Context) []Entry {
	raw, err := f.keyspace.Get(ctx, feedKey)
	if err != nil || strings.TrimSpace(raw) == "" {
		return []Entry{}
	}
	var entries []Entry
	if err := json.Unmarshal([]byte(raw), &entries); err != nil || entries == nil {
		return []Entry{}
	}
	return entries
}

// Unread returns the transient unread count.
func (f *Feed) Unread() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.unread
}

// MarkSeen resets the unread counter without touching the entries.
func (f *Feed) MarkSeen() {
	f.mu.Lock()
	f.unread = 0
	f.mu.Unlock()
}

// Clear deletes the persisted log and resets the unread counter.
func (f *Feed) Clear(ctx context.Context) error {
	if err := f.keyspace.Del(ctx, feedKey); err != nil {
		return err
	}
	f.MarkSeen()
	return nil
}

func (f *Feed) persist(ctx context.Context, entries []Entry) {
	raw, err := json.Marshal(entries)
	if err != nil {
		return
	}
	// best effort, a dropped persist only loses history
	_ = f.keyspace.Set(ctx, feedKey, string(raw), 0)
}
