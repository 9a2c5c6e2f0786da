package session

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medlegalmatch/auth-service/internal/api/dto"
)

func newStore(t *testing.T) *FileTokenStore {
	t.Helper()
	return NewFileTokenStore(filepath.Join(t.TempDir(), "auth_token"))
}

func newManagerFor(t *testing.T, serverURL string, store TokenStore) *Manager {
	t.Helper()
	return NewManager(NewAPIClient(serverURL, 2*time.Second), store)
}

func testUser() dto.UserResponse {
	return dto.UserResponse{
		ID:       "account-1",
		Email:    "a@test.com",
		Name:     "A B",
		UserType: "attorney",
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeAPIError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, map[string]any{
		"error": map[string]any{"code": code, "message": message},
	})
}

func TestRestoreWithoutToken(t *testing.T) {
	manager := newManagerFor(t, "http://127.0.0.1:1", newStore(t))

	require.NoError(t, manager.Restore(context.Background()))
	assert.Equal(t, StateUnauthenticated, manager.Snapshot().State)
}

func TestRestoreSuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/auth/me", r.URL.Path)
		require.Equal(t, "Bearer tok123", r.Header.Get("Authorization"))
		writeJSON(w, http.StatusOK, dto.MeResponse{User: testUser()})
	}))
	defer server.Close()

	store := newStore(t)
	require.NoError(t, store.Save("tok123"))

	manager := newManagerFor(t, server.URL, store)

	var states []State
	manager.Subscribe(func(s Snapshot) { states = append(states, s.State) })

	require.NoError(t, manager.Restore(context.Background()))

	snap := manager.Snapshot()
	assert.Equal(t, StateAuthenticated, snap.State)
	require.NotNil(t, snap.User)
	assert.Equal(t, "account-1", snap.User.ID)
	assert.Equal(t, "tok123", manager.Token())

	// initial delivery, then restoring, then authenticated
	assert.Equal(t, []State{StateUnauthenticated, StateRestoring, StateAuthenticated}, states)
}

func TestRestoreInvalidTokenDiscardsIt(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeAPIError(w, http.StatusUnauthorized, "UNAUTHORIZED", "token expired")
	}))
	defer server.Close()

	store := newStore(t)
	require.NoError(t, store.Save("stale-token"))

	manager := newManagerFor(t, server.URL, store)

	err := manager.Restore(context.Background())
	require.Error(t, err)

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.True(t, apiErr.IsAuthError())

	assert.Equal(t, StateUnauthenticated, manager.Snapshot().State)
	token, loadErr := store.Load()
	require.NoError(t, loadErr)
	assert.Empty(t, token)
}

func TestRestoreNetworkFailureSettlesUnauthenticated(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	serverURL := server.URL
	server.Close()

	store := newStore(t)
	require.NoError(t, store.Save("tok123"))

	manager := newManagerFor(t, serverURL, store)

	err := manager.Restore(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNetwork)
	assert.Equal(t, StateUnauthenticated, manager.Snapshot().State)
}

func TestLoginPersistsToken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/auth/login", r.URL.Path)
		var req dto.LoginRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Equal(t, "a@test.com", req.Email)
		writeJSON(w, http.StatusOK, dto.AuthResponse{
			User:      testUser(),
			Token:     "tok123",
			ExpiresAt: time.Now().Add(time.Hour),
		})
	}))
	defer server.Close()

	store := newStore(t)
	manager := newManagerFor(t, server.URL, store)

	require.NoError(t, manager.Login(context.Background(), "a@test.com", "Passw0rd"))
	assert.Equal(t, StateAuthenticated, manager.Snapshot().State)

	token, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, "tok123", token)
}

func TestLoginFailureKeepsPriorState(t *testing.T) {
	failLogin := false
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if failLogin {
			writeAPIError(w, http.StatusUnauthorized, "INVALID_CREDENTIALS", "invalid email or password")
			return
		}
		writeJSON(w, http.StatusOK, dto.AuthResponse{User: testUser(), Token: "tok123"})
	}))
	defer server.Close()

	manager := newManagerFor(t, server.URL, newStore(t))
	require.NoError(t, manager.Login(context.Background(), "a@test.com", "Passw0rd"))

	failLogin = true
	err := manager.Login(context.Background(), "a@test.com", "WrongPass1")
	require.Error(t, err)

	// a failed new attempt does not clear the already-authenticated session
	snap := manager.Snapshot()
	assert.Equal(t, StateAuthenticated, snap.State)
	assert.Equal(t, "account-1", snap.User.ID)
	assert.Equal(t, "tok123", manager.Token())
}

func TestRegisterPassesPayloadThrough(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/auth/register", r.URL.Path)
		var req dto.RegisterRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Equal(t, "attorney", req.UserType)
		require.Equal(t, "12345", req.BarNumber)
		require.Equal(t, []string{"CA"}, req.StatesOfPractice)
		require.True(t, req.AgreeToTerms)
		writeJSON(w, http.StatusCreated, dto.AuthResponse{User: testUser(), Token: "tok123"})
	}))
	defer server.Close()

	manager := newManagerFor(t, server.URL, newStore(t))

	err := manager.Register(context.Background(), dto.RegisterRequest{
		Email:            "a@test.com",
		Password:         "Passw0rd",
		FullName:         "A B",
		UserType:         "attorney",
		AgreeToTerms:     true,
		FirmName:         "F",
		BarNumber:        "12345",
		StatesOfPractice: []string{"CA"},
		FirmSize:         "solo",
	})
	require.NoError(t, err)
	assert.Equal(t, StateAuthenticated, manager.Snapshot().State)
}

func TestLogoutClearsStateAndToken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/auth/login" {
			t.Errorf("unexpected server call to %s after logout", r.URL.Path)
		}
		writeJSON(w, http.StatusOK, dto.AuthResponse{User: testUser(), Token: "tok123"})
	}))
	defer server.Close()

	store := newStore(t)
	manager := newManagerFor(t, server.URL, store)
	require.NoError(t, manager.Login(context.Background(), "a@test.com", "Passw0rd"))

	manager.Logout()

	snap := manager.Snapshot()
	assert.Equal(t, StateUnauthenticated, snap.State)
	assert.Nil(t, snap.User)
	assert.Empty(t, manager.Token())

	token, err := store.Load()
	require.NoError(t, err)
	assert.Empty(t, token)
}

func TestRestoreAsyncNotifiesObservers(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, dto.MeResponse{User: testUser()})
	}))
	defer server.Close()

	store := newStore(t)
	require.NoError(t, store.Save("tok123"))

	manager := newManagerFor(t, server.URL, store)

	settled := make(chan Snapshot, 4)
	manager.Subscribe(func(s Snapshot) {
		if s.State != StateRestoring {
			settled <- s
		}
	})
	<-settled // initial unauthenticated delivery

	manager.RestoreAsync(context.Background())

	select {
	case snap := <-settled:
		assert.Equal(t, StateAuthenticated, snap.State)
	case <-time.After(5 * time.Second):
		t.Fatal("restore did not settle")
	}
}
