package middlewares

import (
	"net"
	"net/http"
	"strconv"
	"strings"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// --------- Key helpers ---------

type KeyFunc func(r *http.Request) string

// Limiter is satisfied by both the Redis-backed and the in-process token bucket.
type Limiter interface {
	Middleware(next http.Handler) http.Handler
}

// PerIPKey keys requests by client IP. Forwarded headers are only believed when
// trustProxy is set; a direct client can put anything in them.
func PerIPKey(prefix string, trustProxy bool) KeyFunc {
	return func(r *http.Request) string {
		ip := clientIP(r, trustProxy)
		if ip == "" {
			ip = "unknown"
		}
		return prefix + ":" + ip
	}
}

func clientIP(r *http.Request, trustProxy bool) string {
	if trustProxy {
		// X-Forwarded-For may have a list: client, proxy1, proxy2...
		if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
			first, _, _ := strings.Cut(xff, ",")
			if ip := strings.TrimSpace(first); ip != "" {
				return ip
			}
		}
		if xrip := r.Header.Get("X-Real-IP"); xrip != "" {
			return xrip
		}
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err == nil {
		return host
	}
	return r.RemoteAddr
}

func tooManyRequests(w http.ResponseWriter, r *http.Request, policy, key string, retrySec int64) {
	if retrySec < 1 {
		retrySec = 1
	}
	w.Header().Set("Retry-After", strconv.FormatInt(retrySec, 10))
	log.Warn().
		Str("policy", policy).
		Str("key", key).
		Str("request_id", GetRequestID(r)).
		Int64("retry_after_s", retrySec).
		Msg("rate limited")
	http.Error(w, "Too Many Requests", http.StatusTooManyRequests)
}

// --------- Token Bucket (Redis + Lua) ---------

// tokenBucketLua refills and takes one token atomically.
// KEYS[1] = bucket hash {tokens, ts}; ARGV = rate/s, capacity.
// Returns {allowed 1/0, remaining tokens, retry_after_ms}.
const tokenBucketLua = `
local key   = KEYS[1]
local rate  = tonumber(ARGV[1])
local cap   = tonumber(ARGV[2])

local t = redis.call('TIME')
local now_ms = (tonumber(t[1]) * 1000) + math.floor(tonumber(t[2]) / 1000)

local data = redis.call('HMGET', key, 'tokens', 'ts')
local tokens = tonumber(data[1])
local ts     = tonumber(data[2])

if tokens == nil then
  tokens = cap
  ts = now_ms
end

local delta_ms = now_ms - ts
if delta_ms > 0 then
  tokens = math.min(cap, tokens + (delta_ms / 1000.0) * rate)
end

local allowed = 0
local retry_after_ms = 0
if tokens >= 1.0 then
  tokens = tokens - 1.0
  allowed = 1
else
  retry_after_ms = math.ceil((1.0 - tokens) * 1000.0 / rate)
end

redis.call('HSET', key, 'tokens', tokens, 'ts', now_ms)
redis.call('PEXPIRE', key, math.ceil((cap / rate) * 1000.0))

return {allowed, tostring(tokens), retry_after_ms}
`

type RedisTokenBucket struct {
	rdb      redis.Scripter
	keyFn    KeyFunc
	ratePerS float64
	burst    int
	script   *redis.Script
}

func NewRedisTokenBucket(rdb redis.Scripter, ratePerSecond float64, burst int, keyFn KeyFunc) *RedisTokenBucket {
	return &RedisTokenBucket{
		rdb:      rdb,
		keyFn:    keyFn,
		ratePerS: ratePerSecond,
		burst:    burst,
		script:   redis.NewScript(tokenBucketLua),
	}
}

// Middleware fails open: if Redis is unavailable the request goes through.
func (tb *RedisTokenBucket) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := tb.keyFn(r)

		res, err := tb.script.Run(r.Context(), tb.rdb, []string{key},
			strconv.FormatFloat(tb.ratePerS, 'f', -1, 64),
			strconv.Itoa(tb.burst),
		).Slice()
		if err != nil || len(res) != 3 {
			log.Error().Err(err).Str("key", key).Msg("token bucket unavailable, allowing request")
			next.ServeHTTP(w, r)
			return
		}

		allowed := toInt64(res[0]) == 1
		remaining := toInt64(res[1])
		retryAfterMs := toInt64(res[2])

		w.Header().Set("X-RateLimit-Policy", "token-bucket")
		w.Header().Set("X-RateLimit-Limit", strconv.Itoa(tb.burst))
		w.Header().Set("X-RateLimit-Remaining", strconv.FormatInt(remaining, 10))

		if !allowed {
			tooManyRequests(w, r, "token-bucket", key, (retryAfterMs+999)/1000)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// Lua numbers come back as int64; the float token count is sent as a string.
func toInt64(v interface{}) int64 {
	switch t := v.(type) {
	case int64:
		return t
	case string:
		f, _ := strconv.ParseFloat(t, 64)
		return int64(f)
	case []byte:
		f, _ := strconv.ParseFloat(string(t), 64)
		return int64(f)
	case float64:
		return int64(t)
	default:
		return 0
	}
}
