package visitor

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/gofrs/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nuoidev/api/internal/types"
)

func newTestApp(seedUser *types.UserContext) (*fiber.App, *types.Voter) {
	app := fiber.New()
	captured := &types.Voter{}

	if seedUser != nil {
		app.Use(func(c *fiber.Ctx) error {
			c.Locals(types.UserCtxName, *seedUser)
			return c.Next()
		})
	}
	app.Use(New(Config{}))
	app.Get("/whoami", func(c *fiber.Ctx) error {
		if v, ok := GetVoter(c); ok {
			*captured = v
		}
		return c.SendStatus(fiber.StatusOK)
	})

	return app, captured
}

func TestVisitor_MintsCookieForAnonymous(t *testing.T) {
	app, captured := newTestApp(nil)

	resp, err := app.Test(httptest.NewRequest("GET", "/whoami", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	var cookieValue string
	for _, c := range resp.Cookies() {
		if c.Name == types.VisitorCookie {
			cookieValue = c.Value
		}
	}
	require.NotEmpty(t, cookieValue, "visitor cookie should be set")

	_, err = uuid.FromString(cookieValue)
	assert.NoError(t, err, "visitor token should be a UUID")

	assert.Equal(t, types.VoterKindAnonymous, captured.Kind)
	assert.Equal(t, cookieValue, captured.Key())
}

func TestVisitor_ReusesExistingCookie(t *testing.T) {
	app, captured := newTestApp(nil)

	token, err := uuid.NewV4()
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/whoami", nil)
	req.Header.Set("Cookie", types.VisitorCookie+"="+token.String())

	resp, err := app.Test(req)
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, token.String(), captured.Key())
}

func TestVisitor_RejectsMalformedCookie(t *testing.T) {
	app, captured := newTestApp(nil)

	req := httptest.NewRequest("GET", "/whoami", nil)
	req.Header.Set("Cookie", types.VisitorCookie+"=not-a-uuid")

	resp, err := app.Test(req)
	require.NoError(t, err)
	resp.Body.Close()

	// A fresh token replaces the malformed one.
	assert.NotEqual(t, "not-a-uuid", captured.Key())
	_, err = uuid.FromString(captured.Key())
	assert.NoError(t, err)
}

func TestVisitor_AuthenticatedUserWins(t *testing.T) {
	userID, err := uuid.NewV4()
	require.NoError(t, err)
	app, captured := newTestApp(&types.UserContext{UserID: userID, Username: "dev@example.com"})

	req := httptest.NewRequest("GET", "/whoami", nil)
	req.Header.Set("Cookie", types.VisitorCookie+"="+userID.String())

	resp, err := app.Test(req)
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, types.VoterKindUser, captured.Kind)
	assert.Equal(t, userID.String(), captured.Key())
}
