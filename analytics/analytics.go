// Package analytics provides privacy-first page view tracking: no cookies,
// no raw IP storage, salted visitor hashes only.
package analytics

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"sync"
	"time"
)

// salt holds the per-installation random salt for visitor hashing, protected
// by sync.Once.
var salt struct {
	once  sync.Once
	value string
}

// InitSalt loads or generates a persistent salt for visitor hashing.
// Must be called once at startup before any requests are served.
func InitSalt(store *Store) error {
	var initErr error
	salt.once.Do(func() {
		s, err := store.GetSetting("hash_salt")
		if err != nil {
			initErr = fmt.Errorf("read hash salt: %w", err)
			return
		}
		if s == "" {
			b := make([]byte, 32)
			if _, err := rand.Read(b); err != nil {
				initErr = fmt.Errorf("generate salt: %w", err)
				return
			}
			s = hex.EncodeToString(b)
			if err := store.SetSetting("hash_salt", s); err != nil {
				initErr = fmt.Errorf("store hash salt: %w", err)
				return
			}
		}
		salt.value = s
	})
	return initErr
}

func getSalt() string {
	return salt.value
}

// Visit represents a single page view.
type Visit struct {
	ID        int64     `json:"-"`
	VisitorID string    `json:"visitor_id"` // Anonymous fingerprint hash
	Path      string    `json:"path"`
	Referrer  string    `json:"referrer"`
	Timestamp time.Time `json:"timestamp"`
}

// Stats holds aggregated analytics data.
type Stats struct {
	Period         string      `json:"period"`
	UniqueVisitors int         `json:"unique_visitors"`
	TotalViews     int         `json:"total_views"`
	TopPages       []PageStat  `json:"top_pages"`
	TopReferrers   []PageStat  `json:"top_referrers"`
	DailyViews     []DailyView `json:"daily_views"`
}

// PageStat is a path (or referrer) with its view count.
type PageStat struct {
	Path  string `json:"path"`
	Views int    `json:"views"`
}

// DailyView is the view count for one calendar day.
type DailyView struct {
	Day   string `json:"day"` // YYYY-MM-DD
	Views int    `json:"views"`
}

// VisitorID derives the anonymous visitor fingerprint from the request IP,
// user agent, and the day. Rotating the day into the hash means a visitor
// cannot be tracked across days.
func VisitorID(ip, userAgent string, now time.Time) string {
	h := sha256.Sum256([]byte(getSalt() + "|" + ip + "|" + userAgent + "|" + now.UTC().Format("2006-01-02")))
	return hex.EncodeToString(h[:16])
}

var botMarkers = []string{
	"bot", "crawl", "spider", "slurp", "curl", "wget", "python-requests",
	"headless", "lighthouse", "pingdom", "facebookexternalhit",
}

// IsBot reports whether the user agent looks like a crawler. An empty user
// agent counts as a bot.
func IsBot(userAgent string) bool {
	if strings.TrimSpace(userAgent) == "" {
		return true
	}
	ua := strings.ToLower(userAgent)
	for _, marker := range botMarkers {
		if strings.Contains(ua, marker) {
			return true
		}
	}
	return false
}
