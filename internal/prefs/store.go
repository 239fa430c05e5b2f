// Package prefs keeps per-user UI state in Redis: the last dashboard tab a
// user had open, and whether the inventory warning banner was dismissed for
// the current login session. Dismissals are keyed by username plus login
// time so the banner comes back on the next login.
package prefs

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// DefaultTab is returned when a user has no saved tab.
const DefaultTab = "overview"

// DismissalTTL bounds how long a dismissal outlives its login session.
const DismissalTTL = 24 * time.Hour

// Tabs lists the dashboard tabs a user can land on.
var Tabs = []string{"overview", "trends", "breakdowns", "clients", "investments"}

// Session identifies one browser login for dismissal scoping.
type Session struct {
	Username string
	LoginAt  time.Time
}

// Store reads and writes UI preferences.
type Store struct {
	client *redis.Client
}

// NewStore wraps a Redis client.
func NewStore(client *redis.Client) *Store {
	return &Store{client: client}
}

// Tab returns the user's last selected tab, or DefaultTab when unset.
func (s *Store) Tab(ctx context.Context, username string) (string, error) {
	tab, err := s.client.Get(ctx, tabKey(username)).Result()
	if errors.Is(err, redis.Nil) {
		return DefaultTab, nil
	}
	if err != nil {
		return "", fmt.Errorf("prefs: get tab: %w", err)
	}
	if !ValidTab(tab) {
		return DefaultTab, nil
	}
	return tab, nil
}

// SetTab stores the user's selected tab with no expiry.
func (s *Store) SetTab(ctx context.Context, username, tab string) error {
	if !ValidTab(tab) {
		return fmt.Errorf("prefs: unknown tab %q", tab)
	}
	if err := s.client.Set(ctx, tabKey(username), tab, 0).Err(); err != nil {
		return fmt.Errorf("prefs: set tab: %w", err)
	}
	return nil
}

// WarningDismissed reports whether the inventory warning was dismissed in
// this login session.
func (s *Store) WarningDismissed(ctx context.Context, sess Session) (bool, error) {
	n, err := s.client.Exists(ctx, warnKey(sess)).Result()
	if err != nil {
		return false, fmt.Errorf("prefs: check dismissal: %w", err)
	}
	return n > 0, nil
}

// DismissWarning hides the inventory warning for the rest of the session.
func (s *Store) DismissWarning(ctx context.Context, sess Session) error {
	if err := s.client.Set(ctx, warnKey(sess), "1", DismissalTTL).Err(); err != nil {
		return fmt.Errorf("prefs: dismiss warning: %w", err)
	}
	return nil
}

// ValidTab reports whether tab names a known dashboard tab.
func ValidTab(tab string) bool {
	for _, t := range Tabs {
		if t == tab {
			return true
		}
	}
	return false
}

func tabKey(username string) string {
	return "prefs:tab:" + username
}

func warnKey(sess Session) string {
	return "prefs:warn:" + sess.Username + ":" + strconv.FormatInt(sess.LoginAt.Unix(), 10)
}
