package utils

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitLogin(t *testing.T) {
	username, domain := SplitLogin("jdoe@example.org")
	assert.Equal(t, "jdoe", username)
	assert.Equal(t, "example.org", domain)

	username, domain = SplitLogin(" jdoe ")
	assert.Equal(t, "jdoe", username)
	assert.Equal(t, "", domain)

	assert.Equal(t, "jdoe@example.org", JoinLogin("jdoe", "example.org"))
	assert.Equal(t, "jdoe", JoinLogin("jdoe", ""))
}

func TestUserLoginContext(t *testing.T) {
	ctx := context.Background()
	assert.Error(t, ValidateUserLogin(ctx))

	ctx = SetUserLoginInContext(ctx, "jdoe@example.org")
	assert.NoError(t, ValidateUserLogin(ctx))
	assert.Equal(t, "jdoe@example.org", GetUserLoginFromContext(ctx))
	assert.Equal(t, "jdoe", GetUsernameFromContext(ctx))
	assert.Equal(t, "example.org", GetDomainFromContext(ctx))
}

func TestExtensions(t *testing.T) {
	assert.Equal(t, "png", ExtensionFromContentType("image/PNG"))
	assert.Equal(t, "", ExtensionFromContentType("application/x-unknown"))
	assert.Equal(t, "pdf", ExtensionFromFilename("Report.PDF"))
	assert.Equal(t, "", ExtensionFromFilename("README"))
}

func TestGenerateNanoIDWithPrefix(t *testing.T) {
	id := GenerateNanoIDWithPrefix("event", 21)
	assert.True(t, strings.HasPrefix(id, "event_"))
	assert.Len(t, id, len("event_")+21)
	assert.Len(t, GenerateNanoIDWithPrefix("", 8), 8)
}

func TestAppendUnique(t *testing.T) {
	list := AppendUnique(nil, "a")
	list = AppendUnique(list, "b")
	list = AppendUnique(list, "a")
	assert.Equal(t, []string{"a", "b"}, list)
}
