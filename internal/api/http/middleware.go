package http

import (
	"context"
	"fmt"
	"runtime/debug"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/spec-kit/tour-service/internal/config"
	"github.com/spec-kit/tour-service/internal/observability"
	apperrors "github.com/spec-kit/tour-service/pkg/util"
)

// RegisterMiddlewares attaches global middlewares such as error handling and logging.
func RegisterMiddlewares(app *fiber.App, logger *zap.Logger, metrics *observability.Metrics, cfg *config.Config) {
	if timeout := cfg.App.RequestTimeout(); timeout > 0 {
		app.Use(requestTimeoutMiddleware(timeout))
	}
	// the request logger wraps the error translator so it observes the status
	// actually written, not the pre-translation one
	app.Use(observability.RequestLogger(logger, metrics))
	app.Use(errorHandlingMiddleware(logger, metrics, cfg.App.Production()))
}

func requestTimeoutMiddleware(timeout time.Duration) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), timeout)
		defer cancel()
		c.SetUserContext(ctx)
		return c.Next()
	}
}

// errorHandlingMiddleware converts any returned or panicked error into the
// uniform response envelope. Outside production the payload carries the raw
// error and a stack trace; in production only the safe message leaks, and
// unexpected errors collapse to a generic 500.
func errorHandlingMiddleware(logger *zap.Logger, metrics *observability.Metrics, production bool) fiber.Handler {
	return func(c *fiber.Ctx) (err error) {
		var stack []byte
		defer func() {
			if r := recover(); r != nil {
				stack = debug.Stack()
				logger.Error("panic recovered", zap.Any("panic", r), zap.ByteString("stack", stack))
				err = apperrors.NewInternalError(fmt.Errorf("panic: %v", r))
			}
			if err != nil {
				domainErr := apperrors.ToDomainError(err)
				if metrics != nil {
					metrics.RecordError(c.Path(), c.Method(), domainErr.Code)
				}
				if domainErr.HTTPStatus >= 500 {
					logger.Error("request failed", zap.Error(domainErr))
				}

				response := fiber.Map{
					"status":  domainErr.Status(),
					"message": domainErr.Message,
				}
				if !production {
					response["error"] = domainErr.Error()
					if stack == nil {
						stack = debug.Stack()
					}
					response["stack"] = string(stack)
				}
				c.Status(domainErr.HTTPStatus)
				_ = c.JSON(response)
				err = nil
			}
		}()
		return c.Next()
	}
}

// RateLimiter bounds the requests a single client IP may issue within the
// configured window, backed by a Redis counter. When Redis is unreachable the
// request is let through rather than failing closed.
func RateLimiter(client *redis.Client, cfg config.RateLimitConfig, logger *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if client == nil || cfg.MaxRequests <= 0 {
			return c.Next()
		}

		key := "ratelimit:" + c.IP()
		count, err := client.Incr(c.Context(), key).Result()
		if err != nil {
			logger.Warn("rate limiter unavailable", zap.Error(err))
			return c.Next()
		}
		if count == 1 {
			client.Expire(c.Context(), key, cfg.Window())
		}
		if count > int64(cfg.MaxRequests) {
			return apperrors.NewDomainError("RATE_LIMITED",
				"Too many requests from this IP,please try again in an hour!",
				fiber.StatusTooManyRequests)
		}
		return c.Next()
	}
}
