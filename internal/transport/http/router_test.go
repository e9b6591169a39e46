package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/go-todo-api/internal/config"
	"github.com/go-todo-api/internal/domain"
	jwtinfra "github.com/go-todo-api/internal/infrastructure/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- in-memory repositories ---

type memUserRepo struct {
	mu    sync.Mutex
	users map[string]*domain.User // keyed by email
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: map[string]*domain.User{}}
}

func (r *memUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[email]
	if !ok {
		return nil, fmt.Errorf("user not found: %w", domain.ErrNotFound)
	}
	cp := *u
	return &cp, nil
}

func (r *memUserRepo) Put(_ context.Context, u *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[u.Email]; ok {
		return fmt.Errorf("email already registered: %w", domain.ErrConflict)
	}
	cp := *u
	r.users[u.Email] = &cp
	return nil
}

type memTodoRepo struct {
	mu    sync.Mutex
	todos map[string]*domain.Todo
}

func newMemTodoRepo() *memTodoRepo {
	return &memTodoRepo{todos: map[string]*domain.Todo{}}
}

func (r *memTodoRepo) Put(_ context.Context, t *domain.Todo) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *t
	r.todos[t.TodoID] = &cp
	return nil
}

func (r *memTodoRepo) ListByOwner(_ context.Context, ownerID string) ([]domain.Todo, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []domain.Todo{}
	for _, t := range r.todos {
		if t.OwnerID == ownerID {
			out = append(out, *t)
		}
	}
	return out, nil
}

func (r *memTodoRepo) Complete(_ context.Context, todoID, ownerID string) (*domain.Todo, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.todos[todoID]
	if !ok || t.OwnerID != ownerID {
		return nil, fmt.Errorf("todo not found: %w", domain.ErrNotFound)
	}
	t.IsDone = true
	t.UpdatedAt = time.Now().UTC()
	cp := *t
	return &cp, nil
}

// --- helpers ---

func newTestRouter() http.Handler {
	cfg := &config.Config{
		JWTSecret:      "e2e-test-secret",
		JWTExpiry:      24 * time.Hour,
		AllowedOrigins: []string{"*"},
	}
	deps := &Deps{
		UserRepo:    newMemUserRepo(),
		TodoRepo:    newMemTodoRepo(),
		JWTProvider: jwtinfra.NewProvider(cfg),
	}
	return NewRouter(cfg, deps)
}

func do(t *testing.T, router http.Handler, method, path, token, body string) *httptest.ResponseRecorder {
	t.Helper()
	var buf *bytes.Buffer
	if body != "" {
		buf = bytes.NewBufferString(body)
	} else {
		buf = &bytes.Buffer{}
	}
	req := httptest.NewRequest(method, path, buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

func tokenFrom(t *testing.T, rr *httptest.ResponseRecorder) string {
	t.Helper()
	var env struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &env))
	require.NotEmpty(t, env.Token)
	return env.Token
}

// --- end to end ---

func TestEndToEnd_SignupSigninProtected(t *testing.T) {
	router := newTestRouter()

	// sign up
	rr := do(t, router, http.MethodPost, "/auth/signup", "", `{"email":"a@x.com","password":"pw"}`)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	signupToken := tokenFrom(t, rr)

	// duplicate signup conflicts
	rr = do(t, router, http.MethodPost, "/auth/signup", "", `{"email":"a@x.com","password":"other"}`)
	assert.Equal(t, http.StatusConflict, rr.Code)

	// sign in with the same credentials
	rr = do(t, router, http.MethodPost, "/auth/signin", "", `{"email":"a@x.com","password":"pw"}`)
	require.Equal(t, http.StatusOK, rr.Code)
	signinToken := tokenFrom(t, rr)

	// protected probe reports the same user for both tokens
	rr = do(t, router, http.MethodGet, "/api/test", signupToken, "")
	require.Equal(t, http.StatusOK, rr.Code)
	bodyWithSignup := rr.Body.String()

	rr = do(t, router, http.MethodGet, "/api/test", signinToken, "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, bodyWithSignup, rr.Body.String())

	// no Authorization header
	rr = do(t, router, http.MethodGet, "/api/test", "", "")
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	// corrupted token: one character altered
	corrupted := []byte(signinToken)
	if corrupted[10] == 'a' {
		corrupted[10] = 'b'
	} else {
		corrupted[10] = 'a'
	}
	rr = do(t, router, http.MethodGet, "/api/test", string(corrupted), "")
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestEndToEnd_SigninErrorsAreUniform(t *testing.T) {
	router := newTestRouter()

	rr := do(t, router, http.MethodPost, "/auth/signup", "", `{"email":"a@x.com","password":"pw"}`)
	require.Equal(t, http.StatusOK, rr.Code)

	wrongPw := do(t, router, http.MethodPost, "/auth/signin", "", `{"email":"a@x.com","password":"nope"}`)
	unknown := do(t, router, http.MethodPost, "/auth/signin", "", `{"email":"b@x.com","password":"pw"}`)

	assert.Equal(t, http.StatusUnauthorized, wrongPw.Code)
	assert.Equal(t, http.StatusUnauthorized, unknown.Code)
	assert.JSONEq(t, wrongPw.Body.String(), unknown.Body.String())
}

func TestEndToEnd_SignupValidation(t *testing.T) {
	router := newTestRouter()

	rr := do(t, router, http.MethodPost, "/auth/signup", "", `{"email":"a@x.com"}`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = do(t, router, http.MethodPost, "/auth/signup", "", `{"password":"pw"}`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestEndToEnd_TodoFlow(t *testing.T) {
	router := newTestRouter()

	rr := do(t, router, http.MethodPost, "/auth/signup", "", `{"email":"a@x.com","password":"pw"}`)
	require.Equal(t, http.StatusOK, rr.Code)
	alice := tokenFrom(t, rr)

	rr = do(t, router, http.MethodPost, "/auth/signup", "", `{"email":"b@x.com","password":"pw"}`)
	require.Equal(t, http.StatusOK, rr.Code)
	bob := tokenFrom(t, rr)

	// alice creates a todo
	rr = do(t, router, http.MethodPost, "/api/todo", alice, `{"task":"laundry","severity":2}`)
	require.Equal(t, http.StatusOK, rr.Code)
	var created domain.Todo
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &created))
	assert.Equal(t, "laundry", created.Task)
	assert.False(t, created.IsDone)

	// bob sees no todos
	rr = do(t, router, http.MethodGet, "/api/todo", bob, "")
	require.Equal(t, http.StatusOK, rr.Code)
	var bobTodos []domain.Todo
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &bobTodos))
	assert.Empty(t, bobTodos)

	// bob cannot complete alice's todo
	rr = do(t, router, http.MethodPut, "/api/todo/"+created.TodoID, bob, "")
	assert.Equal(t, http.StatusNotFound, rr.Code)

	// alice can
	rr = do(t, router, http.MethodPut, "/api/todo/"+created.TodoID, alice, "")
	require.Equal(t, http.StatusOK, rr.Code)
	var updated domain.Todo
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &updated))
	assert.True(t, updated.IsDone)

	// and sees it done in the list
	rr = do(t, router, http.MethodGet, "/api/todo", alice, "")
	require.Equal(t, http.StatusOK, rr.Code)
	var aliceTodos []domain.Todo
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &aliceTodos))
	require.Len(t, aliceTodos, 1)
	assert.True(t, aliceTodos[0].IsDone)
}

func TestHealthCheck(t *testing.T) {
	router := newTestRouter()

	rr := do(t, router, http.MethodGet, "/health-check/ping", "", "")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"message":"pong"}`, rr.Body.String())

	rr = do(t, router, http.MethodGet, "/health-check/bogus", "", "")
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}
