package handler

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/goliatone/go-errors"
	"github.com/herogame/herogame/internal/auth"
)

// ContextAccountIDKey is the locals key holding the authenticated account id.
const ContextAccountIDKey = "account_id"

const authScheme = "Bearer"

// Protected gates a route on a bearer session token. The full validation
// pass runs on every request: parse, signature, expiry, and the existence
// re-check that the subject account is still present. All failures map to
// one unauthorized response; the distinct failure kind is only logged.
func Protected(auther *auth.Authenticator, logger auth.Logger) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		raw, err := tokenFromHeader(ctx.Get(fiber.HeaderAuthorization))
		if err != nil {
			return unauthorized(ctx)
		}

		subjectID, err := auther.Authorize(ctx.UserContext(), raw, time.Now().UTC())
		if err != nil {
			if auth.IsAuthFailure(err) {
				logger.Info("request rejected by token gate: %s path=%s", auth.TextCode(err), ctx.Path())
				return unauthorized(ctx)
			}
			logger.Error("token gate store error: %v", err)
			return renderError(ctx, err)
		}

		ctx.Locals(ContextAccountIDKey, subjectID)
		return ctx.Next()
	}
}

// AccountID extracts the authenticated account id set by Protected.
func AccountID(ctx *fiber.Ctx) (int64, bool) {
	id, ok := ctx.Locals(ContextAccountIDKey).(int64)
	return id, ok
}

func tokenFromHeader(header string) (string, error) {
	l := len(authScheme)
	if len(header) > l+1 && strings.EqualFold(header[:l], authScheme) {
		return strings.TrimSpace(header[l:]), nil
	}
	return "", errors.New("missing or malformed bearer token", errors.CategoryAuth).
		WithTextCode(auth.TextCodeTokenMalformed).
		WithCode(errors.CodeUnauthorized)
}
