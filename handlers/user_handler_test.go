package handlers_test

import (
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/kamaubrian/peer_tutor/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateUser(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		app := newTestApp(t)

		resp, raw := doRequest(t, app, "POST", "/api/v1/users", fiber.Map{
			"name":  "  Amina Yusuf ",
			"email": " Amina@Example.COM ",
			"role":  "student",
		})
		require.Equal(t, http.StatusCreated, resp.StatusCode)

		var user models.User
		decodeJSON(t, raw, &user)
		assert.NotEqual(t, uuid.Nil, user.ID)
		assert.Equal(t, "Amina Yusuf", user.Name)
		assert.Equal(t, "amina@example.com", user.Email)
		assert.Equal(t, "student", user.Role)
	})

	t.Run("MissingFields", func(t *testing.T) {
		app := newTestApp(t)

		resp, _ := doRequest(t, app, "POST", "/api/v1/users", fiber.Map{"name": "No Email"})
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("InvalidRole", func(t *testing.T) {
		app := newTestApp(t)

		resp, _ := doRequest(t, app, "POST", "/api/v1/users", fiber.Map{
			"name":  "Bad Role",
			"email": "bad@example.com",
			"role":  "admin",
		})
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("DuplicateEmail", func(t *testing.T) {
		app := newTestApp(t)
		createUser(t, "First", "dup@example.com", models.RoleStudent)

		resp, raw := doRequest(t, app, "POST", "/api/v1/users", fiber.Map{
			"name":  "Second",
			"email": "DUP@example.com",
			"role":  "student",
		})
		require.Equal(t, http.StatusConflict, resp.StatusCode)

		var body map[string]string
		decodeJSON(t, raw, &body)
		assert.Equal(t, "Email already exists", body["error"])
	})
}

func TestListUsers(t *testing.T) {
	t.Run("All", func(t *testing.T) {
		app := newTestApp(t)
		createUser(t, "A", "a@example.com", models.RoleStudent)
		createUser(t, "B", "b@example.com", models.RoleTutor)

		resp, raw := doRequest(t, app, "GET", "/api/v1/users", nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var users []models.User
		decodeJSON(t, raw, &users)
		assert.Len(t, users, 2)
	})

	t.Run("EmailFilterHit", func(t *testing.T) {
		app := newTestApp(t)
		created := createUser(t, "A", "probe@example.com", models.RoleStudent)

		resp, raw := doRequest(t, app, "GET", "/api/v1/users?email=Probe@Example.com", nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var users []models.User
		decodeJSON(t, raw, &users)
		require.Len(t, users, 1)
		assert.Equal(t, created.ID, users[0].ID)
	})

	t.Run("EmailFilterMiss", func(t *testing.T) {
		app := newTestApp(t)

		resp, raw := doRequest(t, app, "GET", "/api/v1/users?email=nobody@example.com", nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var users []models.User
		decodeJSON(t, raw, &users)
		assert.Empty(t, users)
	})
}

func TestGetUser(t *testing.T) {
	t.Run("Found", func(t *testing.T) {
		app := newTestApp(t)
		created := createUser(t, "A", "a@example.com", models.RoleStudent)

		resp, raw := doRequest(t, app, "GET", "/api/v1/users/"+created.ID.String(), nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var user models.User
		decodeJSON(t, raw, &user)
		assert.Equal(t, created.Email, user.Email)
	})

	t.Run("NotFound", func(t *testing.T) {
		app := newTestApp(t)

		resp, _ := doRequest(t, app, "GET", "/api/v1/users/"+uuid.NewString(), nil)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("MalformedID", func(t *testing.T) {
		app := newTestApp(t)

		resp, _ := doRequest(t, app, "GET", "/api/v1/users/not-a-uuid", nil)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}
