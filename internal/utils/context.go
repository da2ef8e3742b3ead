package utils

import (
	"context"

	"github.com/gin-gonic/gin"

	apperrors "github.com/customeros/statusstack/internal/errors"
)

type CustomContext struct {
	AppSource string
	UserLogin string
	Username  string
	Domain    string
}

type customContextKeyType string

const customContextKey customContextKeyType = "CUSTOM_CONTEXT"

func WithCustomContext(ctx context.Context, customContext *CustomContext) context.Context {
	return context.WithValue(ctx, customContextKey, customContext)
}

func WithCustomContextFromGinRequest(c *gin.Context, appSource string) context.Context {
	login := c.GetString("UserLogin")
	username, domain := SplitLogin(login)
	customContext := &CustomContext{
		AppSource: appSource,
		UserLogin: login,
		Username:  username,
		Domain:    domain,
	}
	return WithCustomContext(c.Request.Context(), customContext)
}

func GetContext(ctx context.Context) *CustomContext {
	customContext, ok := ctx.Value(customContextKey).(*CustomContext)
	if !ok {
		return new(CustomContext)
	}
	return customContext
}

func GetAppSourceFromContext(ctx context.Context) string {
	return GetContext(ctx).AppSource
}

func GetUserLoginFromContext(ctx context.Context) string {
	return GetContext(ctx).UserLogin
}

func GetUsernameFromContext(ctx context.Context) string {
	return GetContext(ctx).Username
}

func GetDomainFromContext(ctx context.Context) string {
	return GetContext(ctx).Domain
}

// SetUserLoginInContext returns a copy of ctx carrying login as the current user
func SetUserLoginInContext(ctx context.Context, login string) context.Context {
	current := GetContext(ctx)
	username, domain := SplitLogin(login)
	return WithCustomContext(ctx, &CustomContext{
		AppSource: current.AppSource,
		UserLogin: login,
		Username:  username,
		Domain:    domain,
	})
}

func ValidateUserLogin(ctx context.Context) error {
	if GetUsernameFromContext(ctx) == "" {
		return apperrors.ErrUserLoginMissing
	}
	return nil
}
