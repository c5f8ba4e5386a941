package usersrepobridge_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dev2ever/userservice/bridge/repositories/usersrepobridge"
	"github.com/dev2ever/userservice/bridge/scaffolding/mid"
	"github.com/dev2ever/userservice/core/repositories/usersrepo"
	"github.com/dev2ever/userservice/infrastructure/web"
	"github.com/dev2ever/userservice/sdk/logger"
)

// ============================================================================
// In-memory Storer
// ============================================================================

type memStorer struct {
	nextID int64
	users  map[int64]usersrepo.User

	insertErr error
}

func newMemStorer() *memStorer {
	return &memStorer{users: make(map[int64]usersrepo.User)}
}

func (s *memStorer) Insert(ctx context.Context, input usersrepo.CreateUser) (usersrepo.User, error) {
	if s.insertErr != nil {
		return usersrepo.User{}, s.insertErr
	}
	for _, u := range s.users {
		if u.Username == input.Username || u.Email == input.Email {
			return usersrepo.User{}, usersrepo.ErrDuplicate
		}
	}
	s.nextID++
	user := usersrepo.User{
		UserID:   s.nextID,
		Username: input.Username,
		Email:    input.Email,
		Password: input.Password,
		FullName: input.FullName,
	}
	s.users[user.UserID] = user
	return user, nil
}

func (s *memStorer) Update(ctx context.Context, userID int64, input usersrepo.UpdateUser) (usersrepo.User, error) {
	existing, ok := s.users[userID]
	if !ok {
		return usersrepo.User{}, usersrepo.ErrNotFound
	}
	for id, u := range s.users {
		if id != userID && (u.Username == input.Username || u.Email == input.Email) {
			return usersrepo.User{}, usersrepo.ErrDuplicate
		}
	}
	existing.Username = input.Username
	existing.Email = input.Email
	existing.Password = input.Password
	existing.FullName = input.FullName
	s.users[userID] = existing
	return existing, nil
}

func (s *memStorer) Delete(ctx context.Context, userID int64) error {
	if _, ok := s.users[userID]; !ok {
		return usersrepo.ErrNotFound
	}
	delete(s.users, userID)
	return nil
}

func (s *memStorer) GetByID(ctx context.Context, userID int64) (usersrepo.User, error) {
	u, ok := s.users[userID]
	if !ok {
		return usersrepo.User{}, usersrepo.ErrNotFound
	}
	return u, nil
}

func (s *memStorer) GetByUsername(ctx context.Context, username string) (usersrepo.User, error) {
	for _, u := range s.users {
		if u.Username == username {
			return u, nil
		}
	}
	return usersrepo.User{}, usersrepo.ErrNotFound
}

func (s *memStorer) GetByEmail(ctx context.Context, email string) (usersrepo.User, error) {
	for _, u := range s.users {
		if u.Email == email {
			return u, nil
		}
	}
	return usersrepo.User{}, usersrepo.ErrNotFound
}

func (s *memStorer) List(ctx context.Context) ([]usersrepo.User, error) {
	out := make([]usersrepo.User, 0, len(s.users))
	for _, u := range s.users {
		out = append(out, u)
	}
	return out, nil
}

// ============================================================================
// Harness
// ============================================================================

type harness struct {
	storer  *memStorer
	handler *web.WebHandler
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	log := logger.NewDefault(logger.WithOutput(io.Discard))
	storer := newMemStorer()
	repo := usersrepo.NewRepository(log, storer)

	handler := web.NewWebHandler(web.WithGlobalMiddleware(
		mid.Logger(log),
		mid.Errors(log),
		mid.Panics(log),
		mid.Authenticate(),
	))

	group := handler.Group("/api/v1", mid.RequireRole(mid.RoleUser))
	usersrepobridge.AddHttpRoutes(group, usersrepobridge.Config{
		Log:        log,
		Repository: repo,
	})

	return &harness{storer: storer, handler: handler}
}

// do runs one request through the full chain, identity headers included.
func (h *harness) do(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = bytes.NewBufferString(body)
	}

	r := httptest.NewRequest(method, path, reader)
	r.Header.Set("Content-Type", "application/json")
	r.Header.Set("X-User-Id", "tester")
	r.Header.Set("X-User-Roles", "user")

	w := httptest.NewRecorder()
	h.handler.ServeHTTP(w, r)
	return w
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Message string `json:"message"`
		Code    string `json:"code"`
	} `json:"error"`
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()

	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), "body: %s", w.Body.String())
	return env
}

func aliceJSON() string {
	return `{"username":"alice","email":"a@x.com","password":"p","fullName":"Alice A"}`
}

// ============================================================================
// Create
// ============================================================================

func TestCreateUser(t *testing.T) {
	h := newHarness(t)

	w := h.do(t, http.MethodPost, "/api/v1/users", aliceJSON())
	require.Equal(t, http.StatusCreated, w.Code, "body: %s", w.Body.String())

	env := decodeEnvelope(t, w)
	assert.True(t, env.Success)
	assert.Nil(t, env.Error)

	var user struct {
		ID       int64  `json:"id"`
		Username string `json:"username"`
		FullName string `json:"fullName"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &user))
	assert.NotZero(t, user.ID)
	assert.Equal(t, "alice", user.Username)
	assert.Equal(t, "Alice A", user.FullName)
}

func TestCreateUserDuplicate(t *testing.T) {
	h := newHarness(t)

	require.Equal(t, http.StatusCreated, h.do(t, http.MethodPost, "/api/v1/users", aliceJSON()).Code)

	w := h.do(t, http.MethodPost, "/api/v1/users", aliceJSON())
	require.Equal(t, http.StatusConflict, w.Code)

	env := decodeEnvelope(t, w)
	assert.False(t, env.Success)
	require.NotNil(t, env.Error)
	assert.Equal(t, "DUPLICATE_RESOURCE", env.Error.Code)
	assert.Equal(t, "Username or email already exists.", env.Error.Message)
}

func TestCreateUserValidation(t *testing.T) {
	h := newHarness(t)

	w := h.do(t, http.MethodPost, "/api/v1/users", `{"username":"","email":"not-an-email","password":"","fullName":""}`)
	require.Equal(t, http.StatusBadRequest, w.Code)

	env := decodeEnvelope(t, w)
	require.NotNil(t, env.Error)
	assert.Equal(t, "FIELD_VALIDATION_ERROR", env.Error.Code)
	assert.Contains(t, env.Error.Message, "Username is required.")
	assert.Contains(t, env.Error.Message, "Email must be a valid email address.")
	assert.Contains(t, env.Error.Message, "Password is required.")
	assert.Contains(t, env.Error.Message, "Full name is required.")
}

func TestCreateUserInternalFault(t *testing.T) {
	h := newHarness(t)
	h.storer.insertErr = fmt.Errorf("pq: the database is gone")

	w := h.do(t, http.MethodPost, "/api/v1/users", aliceJSON())
	require.Equal(t, http.StatusInternalServerError, w.Code)

	env := decodeEnvelope(t, w)
	require.NotNil(t, env.Error)
	assert.Equal(t, "INTERNAL_SERVER_ERROR", env.Error.Code)
	assert.NotContains(t, env.Error.Message, "pq:")
}

// ============================================================================
// Read
// ============================================================================

func TestListUsers(t *testing.T) {
	h := newHarness(t)

	h.do(t, http.MethodPost, "/api/v1/users", aliceJSON())
	h.do(t, http.MethodPost, "/api/v1/users", `{"username":"bob","email":"b@x.com","password":"p","fullName":"Bob B"}`)

	w := h.do(t, http.MethodGet, "/api/v1/users", "")
	require.Equal(t, http.StatusOK, w.Code)

	env := decodeEnvelope(t, w)
	assert.True(t, env.Success)

	var users []json.RawMessage
	require.NoError(t, json.Unmarshal(env.Data, &users))
	assert.Len(t, users, 2)
}

func TestGetUserByID(t *testing.T) {
	h := newHarness(t)

	created := decodeEnvelope(t, h.do(t, http.MethodPost, "/api/v1/users", aliceJSON()))
	var u struct {
		ID int64 `json:"id"`
	}
	require.NoError(t, json.Unmarshal(created.Data, &u))

	w := h.do(t, http.MethodGet, fmt.Sprintf("/api/v1/users/%d", u.ID), "")
	require.Equal(t, http.StatusOK, w.Code)

	env := decodeEnvelope(t, w)
	assert.True(t, env.Success)
}

func TestGetUserMissAnswersNoContent(t *testing.T) {
	h := newHarness(t)

	w := h.do(t, http.MethodGet, "/api/v1/users/12345", "")
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Body.String())
}

func TestGetUserBadID(t *testing.T) {
	h := newHarness(t)

	w := h.do(t, http.MethodGet, "/api/v1/users/abc", "")
	require.Equal(t, http.StatusBadRequest, w.Code)

	env := decodeEnvelope(t, w)
	require.NotNil(t, env.Error)
	assert.Equal(t, "FIELD_VALIDATION_ERROR", env.Error.Code)
}

// ============================================================================
// Update
// ============================================================================

func TestUpdateUser(t *testing.T) {
	h := newHarness(t)

	created := decodeEnvelope(t, h.do(t, http.MethodPost, "/api/v1/users", aliceJSON()))
	var u struct {
		ID int64 `json:"id"`
	}
	require.NoError(t, json.Unmarshal(created.Data, &u))

	w := h.do(t, http.MethodPut, fmt.Sprintf("/api/v1/users/%d", u.ID),
		`{"username":"alice2","email":"a2@x.com","password":"p2","fullName":"Alice B"}`)
	require.Equal(t, http.StatusOK, w.Code, "body: %s", w.Body.String())

	env := decodeEnvelope(t, w)
	assert.True(t, env.Success)
	assert.Contains(t, string(env.Data), "alice2")
}

func TestUpdateUserNotFound(t *testing.T) {
	h := newHarness(t)

	w := h.do(t, http.MethodPut, "/api/v1/users/777", aliceJSON())
	require.Equal(t, http.StatusNotFound, w.Code)

	env := decodeEnvelope(t, w)
	require.NotNil(t, env.Error)
	assert.Equal(t, "NOT_FOUND", env.Error.Code)
	assert.Contains(t, env.Error.Message, "777")
}

func TestUpdateUserDuplicate(t *testing.T) {
	h := newHarness(t)

	h.do(t, http.MethodPost, "/api/v1/users", aliceJSON())
	created := decodeEnvelope(t, h.do(t, http.MethodPost, "/api/v1/users",
		`{"username":"bob","email":"b@x.com","password":"p","fullName":"Bob B"}`))
	var u struct {
		ID int64 `json:"id"`
	}
	require.NoError(t, json.Unmarshal(created.Data, &u))

	w := h.do(t, http.MethodPut, fmt.Sprintf("/api/v1/users/%d", u.ID),
		`{"username":"alice","email":"b@x.com","password":"p","fullName":"Bob B"}`)
	require.Equal(t, http.StatusConflict, w.Code)

	env := decodeEnvelope(t, w)
	require.NotNil(t, env.Error)
	assert.Equal(t, "DUPLICATE_RESOURCE", env.Error.Code)
}

// ============================================================================
// Delete
// ============================================================================

func TestDeleteUser(t *testing.T) {
	h := newHarness(t)

	created := decodeEnvelope(t, h.do(t, http.MethodPost, "/api/v1/users", aliceJSON()))
	var u struct {
		ID int64 `json:"id"`
	}
	require.NoError(t, json.Unmarshal(created.Data, &u))

	w := h.do(t, http.MethodDelete, fmt.Sprintf("/api/v1/users/%d", u.ID), "")
	require.Equal(t, http.StatusOK, w.Code)

	env := decodeEnvelope(t, w)
	assert.True(t, env.Success)
	assert.Nil(t, env.Error)

	// Gone for real.
	after := h.do(t, http.MethodGet, fmt.Sprintf("/api/v1/users/%d", u.ID), "")
	assert.Equal(t, http.StatusNoContent, after.Code)
}

func TestDeleteUserNotFound(t *testing.T) {
	h := newHarness(t)

	w := h.do(t, http.MethodDelete, "/api/v1/users/99", "")
	require.Equal(t, http.StatusNotFound, w.Code)

	env := decodeEnvelope(t, w)
	require.NotNil(t, env.Error)
	assert.Equal(t, "NOT_FOUND", env.Error.Code)
	assert.Contains(t, env.Error.Message, "99")
}

// ============================================================================
// Access control
// ============================================================================

func TestMissingIdentityIsUnauthorized(t *testing.T) {
	h := newHarness(t)

	r := httptest.NewRequest(http.MethodGet, "/api/v1/users", nil)
	w := httptest.NewRecorder()
	h.handler.ServeHTTP(w, r)

	require.Equal(t, http.StatusUnauthorized, w.Code)

	env := decodeEnvelope(t, w)
	require.NotNil(t, env.Error)
	assert.Equal(t, "UNAUTHORIZED", env.Error.Code)
}

func TestMissingRoleIsForbidden(t *testing.T) {
	h := newHarness(t)

	r := httptest.NewRequest(http.MethodGet, "/api/v1/users", nil)
	r.Header.Set("X-User-Id", "tester")
	r.Header.Set("X-User-Roles", "viewer,auditor")
	w := httptest.NewRecorder()
	h.handler.ServeHTTP(w, r)

	require.Equal(t, http.StatusForbidden, w.Code)

	env := decodeEnvelope(t, w)
	require.NotNil(t, env.Error)
	assert.Equal(t, "FORBIDDEN", env.Error.Code)
}

func TestRoleListMayContainMore(t *testing.T) {
	h := newHarness(t)

	r := httptest.NewRequest(http.MethodGet, "/api/v1/users", nil)
	r.Header.Set("X-User-Id", "tester")
	r.Header.Set("X-User-Roles", "admin, user ,auditor")
	w := httptest.NewRecorder()
	h.handler.ServeHTTP(w, r)

	assert.Equal(t, http.StatusOK, w.Code)
}

// ============================================================================
// Body handling
// ============================================================================

func TestCreateUserMalformedJSON(t *testing.T) {
	h := newHarness(t)

	w := h.do(t, http.MethodPost, "/api/v1/users", `{"username": "alice"`)
	require.Equal(t, http.StatusBadRequest, w.Code)

	env := decodeEnvelope(t, w)
	require.NotNil(t, env.Error)
	assert.Equal(t, "FIELD_VALIDATION_ERROR", env.Error.Code)
}

func TestCreateUserEmptyBody(t *testing.T) {
	h := newHarness(t)

	w := h.do(t, http.MethodPost, "/api/v1/users", "")
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDuplicateMessageNamesNoField(t *testing.T) {
	h := newHarness(t)

	h.do(t, http.MethodPost, "/api/v1/users", aliceJSON())

	// Collide on email only.
	w := h.do(t, http.MethodPost, "/api/v1/users",
		`{"username":"someone-else","email":"a@x.com","password":"p","fullName":"Someone E"}`)
	require.Equal(t, http.StatusConflict, w.Code)

	env := decodeEnvelope(t, w)
	require.NotNil(t, env.Error)
	assert.False(t, strings.Contains(env.Error.Message, "users_email_key"))
	assert.Equal(t, "Username or email already exists.", env.Error.Message)
}
