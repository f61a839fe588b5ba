package services

import (
	"context"
	"fmt"
	"log"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"time"

	"tabiplan/internal/models/response_models"
	"tabiplan/pkg/utils"
)

const (
	// FareErrorMarker is returned when the model answered with something
	// that is not a bare number.
	FareErrorMarker = "計算エラー"
	// FareUnavailableMarker is returned when the generation call itself
	// failed. Unlike FareErrorMarker it is never cached.
	FareUnavailableMarker = "取得失敗"
)

var (
	fareNumberPattern = regexp.MustCompile(`^\d+(\.\d+)?$`)
	nonDigitPattern   = regexp.MustCompile(`[^0-9]`)
)

// FareCache memoizes fare lookups keyed by origin|destination|mode.
type FareCache interface {
	Get(key string) (string, bool)
	Set(key, value string)
	Len() int
}

type fareCacheEntry struct {
	value     string
	expiresAt time.Time
	setAt     time.Time
}

type boundedFareCache struct {
	mu         sync.RWMutex
	maxEntries int
	ttl        time.Duration // <= 0 means entries never expire
	store      map[string]fareCacheEntry
	now        func() time.Time
}

// NewFareCache returns a size-bounded in-memory cache. When full it drops
// expired entries first, then the oldest.
func NewFareCache(maxEntries int, ttl time.Duration) FareCache {
	if maxEntries < 1 {
		maxEntries = 1
	}
	return &boundedFareCache{
		maxEntries: maxEntries,
		ttl:        ttl,
		store:      make(map[string]fareCacheEntry),
		now:        time.Now,
	}
}

func (c *boundedFareCache) Get(key string) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.store[key]
	if !ok {
		return "", false
	}
	if !e.expiresAt.IsZero() && c.now().After(e.expiresAt) {
		return "", false
	}
	return e.value, true
}

func (c *boundedFareCache) Set(key, value string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.store[key]; !exists && len(c.store) >= c.maxEntries {
		c.evictLocked()
	}

	e := fareCacheEntry{value: value, setAt: c.now()}
	if c.ttl > 0 {
		e.expiresAt = e.setAt.Add(c.ttl)
	}
	c.store[key] = e
}

func (c *boundedFareCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.store)
}

func (c *boundedFareCache) evictLocked() {
	now := c.now()
	for k, e := range c.store {
		if !e.expiresAt.IsZero() && now.After(e.expiresAt) {
			delete(c.store, k)
		}
	}
	if len(c.store) < c.maxEntries {
		return
	}
	var oldestKey string
	var oldest time.Time
	for k, e := range c.store {
		if oldestKey == "" || e.setAt.Before(oldest) {
			oldestKey = k
			oldest = e.setAt
		}
	}
	delete(c.store, oldestKey)
}

// TransportServiceInterface estimates travel costs via the text generator.
// Both operations are fail-soft: transport cost is advisory, so failures
// resolve to 0 or an inline marker instead of blocking the caller.
type TransportServiceInterface interface {
	EstimateFare(ctx context.Context, origin, destination, mode string) string
	EstimateTransportCost(ctx context.Context, origin response_models.Coordinates, destination string) int
}

type TransportService struct {
	generator utils.TextGenerator
	cache     FareCache
}

func NewTransportService(generator utils.TextGenerator, cache FareCache) TransportServiceInterface {
	return &TransportService{generator: generator, cache: cache}
}

func (s *TransportService) EstimateFare(ctx context.Context, origin, destination, mode string) string {
	key := origin + "|" + destination + "|" + mode
	if v, ok := s.cache.Get(key); ok {
		return v
	}

	prompt := fmt.Sprintf(
		`Tell me the fare for traveling from %s to %s by %s. Return only the number in Japanese Yen (JPY) format like "1500". Only number.`,
		origin, destination, mode)

	text, err := s.generator.Generate(ctx, prompt)
	if err != nil {
		log.Printf("Fare estimation failed for %s: %v", key, err)
		return FareUnavailableMarker
	}

	price := FareErrorMarker
	if txt := strings.TrimSpace(text); fareNumberPattern.MatchString(txt) {
		price = txt + "円"
	}
	s.cache.Set(key, price)
	return price
}

func (s *TransportService) EstimateTransportCost(ctx context.Context, origin response_models.Coordinates, destination string) int {
	var prompt strings.Builder
	prompt.WriteString("あなたは旅行アシスタントです。\n")
	prompt.WriteString("以下の出発地から日本国内の目的地までの、大人1人分の最も安い片道交通費（電車、バス、または飛行機）を推定してください。\n\n")
	fmt.Fprintf(&prompt, "出発地: Coordinates: %v, %v\n", origin.Lat, origin.Lng)
	fmt.Fprintf(&prompt, "目的地: %s\n\n", destination)
	prompt.WriteString("出発地が座標の場合は、まず最寄りの主要な駅/空港を見つけてください。\n")
	prompt.WriteString("日本円での推定費用のみを数値で返してください。テキストや記号は含めないでください。\n")
	prompt.WriteString("例: 12000\n")

	text, err := s.generator.Generate(ctx, prompt.String())
	if err != nil {
		log.Printf("Transport cost estimation failed for %s: %v", destination, err)
		return 0
	}

	cleaned := nonDigitPattern.ReplaceAllString(text, "")
	if cleaned == "" {
		return 0
	}
	cost, err := strconv.Atoi(cleaned)
	if err != nil {
		return 0
	}
	return cost
}
