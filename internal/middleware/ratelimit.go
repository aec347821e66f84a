package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/nanci1121/app-entradas/internal/config"
)

// NewRateLimiter returns a fixed-window request limiter backed by Redis, so
// the quota holds across replicas.  Counting and expiry run atomically in a
// single script round-trip.  When Redis is unreachable the limiter degrades
// open: throttling is protection, not a correctness requirement.
func NewRateLimiter(cfg config.RateLimitConfig, rdb *redis.Client) echo.MiddlewareFunc {
	if !cfg.Enabled || rdb == nil {
		return func(next echo.HandlerFunc) echo.HandlerFunc {
			return func(c echo.Context) error { return next(c) }
		}
	}

	ventana := redis.NewScript(`
		local actual = redis.call('INCR', KEYS[1])
		if actual == 1 then
			redis.call('PEXPIRE', KEYS[1], ARGV[1])
		end
		local restante_ms = redis.call('PTTL', KEYS[1])
		return { actual, restante_ms }
	`)

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ip := c.RealIP()
			if ip == "" {
				ip = "unknown"
			}
			key := cfg.Prefix + ":ip:" + ip

			ctx := c.Request().Context()
			vals, err := ventana.Run(ctx, rdb, []string{key}, cfg.Window.Milliseconds()).Int64Slice()
			if err != nil || len(vals) != 2 {
				return next(c)
			}
			cuenta, restante := vals[0], time.Duration(vals[1])*time.Millisecond

			quedan := int64(cfg.Max) - cuenta
			if quedan < 0 {
				quedan = 0
			}
			c.Response().Header().Set("X-RateLimit-Limit", strconv.Itoa(cfg.Max))
			c.Response().Header().Set("X-RateLimit-Remaining", strconv.FormatInt(quedan, 10))

			if cuenta > int64(cfg.Max) {
				segundos := int(restante / time.Second)
				if segundos < 1 {
					segundos = 1
				}
				c.Response().Header().Set("Retry-After", strconv.Itoa(segundos))
				return c.JSON(http.StatusTooManyRequests, echo.Map{
					"ok":      false,
					"mensaje": "Demasiadas solicitudes, intente más tarde.",
				})
			}
			return next(c)
		}
	}
}
