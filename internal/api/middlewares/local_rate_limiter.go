package middlewares

import (
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"
)

const (
	localBucketIdle    = 10 * time.Minute
	localBucketCleanup = 5 * time.Minute
)

// LocalTokenBucket is the in-process fallback used when no Redis is configured.
// One rate.Limiter per key; idle keys expire out of the cache.
type LocalTokenBucket struct {
	limit   rate.Limit
	burst   int
	keyFn   KeyFunc
	buckets *cache.Cache
}

func NewLocalTokenBucket(ratePerSecond float64, burst int, keyFn KeyFunc) *LocalTokenBucket {
	return &LocalTokenBucket{
		limit:   rate.Limit(ratePerSecond),
		burst:   burst,
		keyFn:   keyFn,
		buckets: cache.New(localBucketIdle, localBucketCleanup),
	}
}

func (lb *LocalTokenBucket) limiter(key string) *rate.Limiter {
	if v, ok := lb.buckets.Get(key); ok {
		lb.buckets.SetDefault(key, v)
		return v.(*rate.Limiter)
	}
	lim := rate.NewLimiter(lb.limit, lb.burst)
	if err := lb.buckets.Add(key, lim, cache.DefaultExpiration); err != nil {
		// another request created it first
		if v, ok := lb.buckets.Get(key); ok {
			return v.(*rate.Limiter)
		}
	}
	return lim
}

func (lb *LocalTokenBucket) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := lb.keyFn(r)
		lim := lb.limiter(key)

		res := lim.Reserve()
		delay := res.Delay()
		if delay > 0 {
			res.Cancel()
		}

		w.Header().Set("X-RateLimit-Policy", "token-bucket-local")
		w.Header().Set("X-RateLimit-Limit", strconv.Itoa(lb.burst))
		w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(int(math.Max(0, lim.Tokens()))))

		if delay > 0 {
			tooManyRequests(w, r, "token-bucket-local", key, int64(math.Ceil(delay.Seconds())))
			return
		}

		next.ServeHTTP(w, r)
	})
}
