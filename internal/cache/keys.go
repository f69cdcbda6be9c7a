package cache

import (
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrCacheMiss is returned by Get when the key is absent or expired.
var ErrCacheMiss = errors.New("cache miss")

// KeyGenerator builds namespaced cache keys for market lookups
type KeyGenerator struct {
	Prefix string
}

// NewKeyGenerator creates a new key generator with the given prefix
func NewKeyGenerator(prefix string) *KeyGenerator {
	if prefix == "" {
		prefix = "vor"
	}
	return &KeyGenerator{Prefix: prefix}
}

// MarketKey identifies the event rows for one (topic, city, state) market.
// Components are normalized so "Tampa" and " TAMPA " share an entry.
func (kg *KeyGenerator) MarketKey(topic, city, state string) string {
	return fmt.Sprintf("%s:market:%s:%s:%s",
		kg.Prefix, normalize(topic), normalize(state), normalize(city))
}

// ReportKey identifies a rendered VOR response for one market.
func (kg *KeyGenerator) ReportKey(topic, city, state string) string {
	return fmt.Sprintf("%s:report:%s:%s:%s",
		kg.Prefix, normalize(topic), normalize(state), normalize(city))
}

// StatsKey identifies the dataset-wide statistics entry.
func (kg *KeyGenerator) StatsKey() string {
	return fmt.Sprintf("%s:stats", kg.Prefix)
}

// MarketsKey identifies the market listing entry.
func (kg *KeyGenerator) MarketsKey() string {
	return fmt.Sprintf("%s:markets", kg.Prefix)
}

// FilterKey hashes an arbitrary filter into a search key.
func (kg *KeyGenerator) FilterKey(filter interface{}) string {
	jsonBytes, err := json.Marshal(filter)
	if err != nil {
		// Fallback to string representation if JSON fails
		jsonBytes = []byte(fmt.Sprintf("%+v", filter))
	}
	hash := md5.Sum(jsonBytes)
	return fmt.Sprintf("%s:search:%s", kg.Prefix, hex.EncodeToString(hash[:]))
}

// Pattern generation for bulk invalidation

func (kg *KeyGenerator) AllPattern() string {
	return fmt.Sprintf("%s:*", kg.Prefix)
}

func (kg *KeyGenerator) ReportPattern() string {
	return fmt.Sprintf("%s:report:*", kg.Prefix)
}

func (kg *KeyGenerator) MarketPattern() string {
	return fmt.Sprintf("%s:market:*", kg.Prefix)
}

// ValidateKey checks if a key follows the expected format
func (kg *KeyGenerator) ValidateKey(key string) bool {
	return strings.HasPrefix(key, kg.Prefix+":")
}

func normalize(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}
