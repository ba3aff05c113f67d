// internal/daily/daily.go
//
// Deterministic root word selection for the Daily Challenge: every player gets
// the same root word on a given UTC date. The day's key and the server salt
// seed a random source, and the word is drawn with game.StartGame so daily and
// free-play games skip blanks and fall back the same way.

package daily

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/binary"
	"fmt"
	"math/rand"
	"time"

	"github.com/robalobadob/wordscramble/internal/game"
)

const dateLayout = "2006-01-02"

// DateKey returns YYYY-MM-DD in UTC.
func DateKey(t time.Time) string {
	return t.UTC().Format(dateLayout)
}

// ParseDate validates a YYYY-MM-DD key as sent by clients.
func ParseDate(s string) (string, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return "", fmt.Errorf("daily: bad date %q: %w", s, err)
	}
	return DateKey(t), nil
}

// Source returns the random source for t's date. Two calls for the same date
// and salt yield identical sequences.
func Source(t time.Time, salt string) *rand.Rand {
	mac := hmac.New(sha256.New, []byte(salt))
	mac.Write([]byte(DateKey(t)))
	seed := binary.BigEndian.Uint64(mac.Sum(nil)[:8])
	return rand.New(rand.NewSource(int64(seed &^ (1 << 63))))
}

// RootWord returns the daily root word drawn from list.
func RootWord(t time.Time, salt string, list []string) string {
	return game.StartGame(list, Source(t, salt)).RootWord
}
