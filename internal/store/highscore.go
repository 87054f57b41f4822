package store

import (
	"sort"
	"strconv"
	"strings"
)

// HighScoreKey is the key the best local score is stored under.
const HighScoreKey = "balloonPop_highScore"

// UserKey returns the high score key for a named player.
func UserKey(user string) string {
	if user == "" {
		return HighScoreKey
	}
	return HighScoreKey + ":" + user
}

// HighScore reads and writes one integer score in a KV.
type HighScore struct {
	KV  KV
	Key string
}

// NewHighScore returns a HighScore stored under key (HighScoreKey if empty).
func NewHighScore(kv KV, key string) *HighScore {
	if key == "" {
		key = HighScoreKey
	}
	return &HighScore{KV: kv, Key: key}
}

// Load returns the stored score. Missing or malformed values count as 0;
// only store failures are reported.
func (h *HighScore) Load() (int, error) {
	raw, ok, err := h.KV.Get(h.Key)
	if err != nil || !ok {
		return 0, err
	}
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 0 {
		return 0, nil
	}
	return n, nil
}

func (h *HighScore) Save(score int) error {
	return h.KV.Set(h.Key, strconv.Itoa(score))
}

// Entry is one player's high score.
type Entry struct {
	Player string `json:"player"`
	Score  int    `json:"score"`
}

// Leaderboard extracts high score entries from a store dump, best first.
// The local score is reported under the player name "local".
func Leaderboard(data map[string]string) []Entry {
	var entries []Entry
	for _, k := range SortedKeys(data) {
		player, ok := strings.CutPrefix(k, HighScoreKey)
		if !ok {
			continue
		}
		switch {
		case player == "":
			player = "local"
		case strings.HasPrefix(player, ":"):
			player = player[1:]
		default:
			continue
		}
		score, err := strconv.Atoi(strings.TrimSpace(data[k]))
		if err != nil || score <= 0 {
			continue
		}
		entries = append(entries, Entry{Player: player, Score: score})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Score > entries[j].Score
	})
	return entries
}
