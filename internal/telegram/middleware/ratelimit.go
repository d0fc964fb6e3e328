package middleware

import (
	"strconv"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/patrickmn/go-cache"
	"go.uber.org/zap"
)

// inactiveAfter is how long an idle chat keeps its bucket
const inactiveAfter = time.Hour

// chatLimit tracks rate limit state for a single chat
type chatLimit struct {
	mu            sync.Mutex
	tokens        float64
	lastRefill    time.Time
	warningsSent  int
	lastWarningAt time.Time
}

// Notifier sends a plain text message to a chat
type Notifier func(chatID int64, text string)

// RateLimiterMiddleware implements token bucket rate limiting per chat
type RateLimiterMiddleware struct {
	limits          *cache.Cache
	mu              sync.Mutex
	maxTokens       float64 // burst size
	refillRate      float64 // tokens added per second
	warningInterval time.Duration
	logger          *zap.Logger
	notify          Notifier
	now             func() time.Time
}

// NewRateLimiterMiddleware allows requestsPerMinute on average with bursts of up to burstSize
func NewRateLimiterMiddleware(
	requestsPerMinute int,
	burstSize int,
	logger *zap.Logger,
	notify Notifier,
) *RateLimiterMiddleware {
	if burstSize < 1 {
		burstSize = 1
	}

	return &RateLimiterMiddleware{
		limits:          cache.New(inactiveAfter, 10*time.Minute),
		maxTokens:       float64(burstSize),
		refillRate:      float64(requestsPerMinute) / 60.0,
		warningInterval: 30 * time.Second,
		logger:          logger,
		notify:          notify,
		now:             time.Now,
	}
}

// Handle processes the update through rate limiting
func (rl *RateLimiterMiddleware) Handle(update tgbotapi.Update, next func(tgbotapi.Update)) {
	var chatID int64
	switch {
	case update.Message != nil:
		chatID = update.Message.Chat.ID
	case update.CallbackQuery != nil && update.CallbackQuery.Message != nil:
		chatID = update.CallbackQuery.Message.Chat.ID
	default:
		next(update)
		return
	}

	if !rl.allowRequest(chatID) {
		rl.logger.Warn("rate limit exceeded", zap.Int64("chat_id", chatID))
		return
	}

	next(update)
}

// bucket returns the chat's bucket, creating a full one on first use
func (rl *RateLimiterMiddleware) bucket(chatID int64) *chatLimit {
	key := strconv.FormatInt(chatID, 10)

	rl.mu.Lock()
	defer rl.mu.Unlock()

	if v, ok := rl.limits.Get(key); ok {
		limit := v.(*chatLimit)
		rl.limits.Set(key, limit, cache.DefaultExpiration)
		return limit
	}

	limit := &chatLimit{tokens: rl.maxTokens, lastRefill: rl.now()}
	rl.limits.Set(key, limit, cache.DefaultExpiration)
	return limit
}

// allowRequest checks if request is allowed under rate limit
func (rl *RateLimiterMiddleware) allowRequest(chatID int64) bool {
	limit := rl.bucket(chatID)

	limit.mu.Lock()
	defer limit.mu.Unlock()

	now := rl.now()

	elapsed := now.Sub(limit.lastRefill).Seconds()
	limit.tokens += elapsed * rl.refillRate
	if limit.tokens > rl.maxTokens {
		limit.tokens = rl.maxTokens
	}
	limit.lastRefill = now

	if limit.tokens >= 1.0 {
		limit.tokens -= 1.0
		limit.warningsSent = 0
		return true
	}

	// Warn at most once per interval
	if now.Sub(limit.lastWarningAt) > rl.warningInterval {
		limit.warningsSent++
		limit.lastWarningAt = now
		rl.sendRateLimitWarning(chatID, limit.warningsSent)
	}

	return false
}

// sendRateLimitWarning sends a warning message to the chat
func (rl *RateLimiterMiddleware) sendRateLimitWarning(chatID int64, warningCount int) {
	if rl.notify == nil {
		return
	}

	text := "⚠️ Too many requests. Please wait a moment."
	if warningCount >= 2 {
		text = "🛑 You are sending messages too fast. Please wait a minute."
	}
	rl.notify(chatID, text)
}
