package budget

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// asUser injects authenticated claims the way the JWT middleware would.
func asUser(userID uuid.UUID) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
			"sub": userID.String(),
		})
		c.Locals("user", token)
		return c.Next()
	}
}

func TestGetExpenseEndpoint(t *testing.T) {
	svc, db := newTestService(t)
	userID := uuid.New()

	expense, err := svc.CreateExpense(userID, CreateExpenseRequest{Amount: 42, Category: "vet"})
	require.NoError(t, err)

	app := fiber.New()
	app.Use(asUser(userID))
	New().RegisterRoutes(app, db, nil)

	req := httptest.NewRequest(http.MethodGet, "/expenses/"+expense.ID.String(), nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body Expense
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, expense.ID, body.ID)
	assert.Equal(t, float64(42), body.Amount)

	req = httptest.NewRequest(http.MethodGet, "/expenses/"+uuid.NewString(), nil)
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	// Another user's request is refused.
	strangerApp := fiber.New()
	strangerApp.Use(asUser(uuid.New()))
	New().RegisterRoutes(strangerApp, db, nil)

	req = httptest.NewRequest(http.MethodGet, "/expenses/"+expense.ID.String(), nil)
	resp, err = strangerApp.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}
