package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MontaQLabs/PolkArena-sub001/internal/middleware"
	"github.com/MontaQLabs/PolkArena-sub001/internal/realtime"
	"github.com/MontaQLabs/PolkArena-sub001/internal/services"
)

type buzzerTestEnv struct {
	router   *gin.Engine
	identity *services.IdentityService
	buzzer   *services.BuzzerService
}

func newBuzzerTestEnv() *buzzerTestEnv {
	gin.SetMode(gin.TestMode)

	hub := realtime.NewHub()
	identity := services.NewIdentityService("test-secret")
	buzzer := services.NewBuzzerService(hub)

	authHandler := NewAuthHandler(identity)
	buzzerHandler := NewBuzzerHandler(buzzer)

	r := gin.New()
	api := r.Group("/api/v1")
	api.POST("/auth/guest", authHandler.GuestToken)

	authed := api.Group("/buzzer")
	authed.Use(middleware.UserAuth(identity))
	{
		authed.POST("/rooms", buzzerHandler.CreateRoom)
		authed.GET("/rooms", buzzerHandler.ListRooms)
		authed.POST("/rooms/join", buzzerHandler.Join)
		authed.GET("/rooms/:id", buzzerHandler.GetRoom)
		authed.DELETE("/rooms/:id", buzzerHandler.DeleteRoom)
		authed.POST("/rooms/:id/leave", buzzerHandler.Leave)
		authed.POST("/rooms/:id/start", buzzerHandler.Start)
		authed.POST("/rooms/:id/stop", buzzerHandler.Stop)
		authed.POST("/rooms/:id/reset", buzzerHandler.Reset)
		authed.POST("/rooms/:id/buzz", buzzerHandler.Buzz)
	}

	return &buzzerTestEnv{router: r, identity: identity, buzzer: buzzer}
}

func (e *buzzerTestEnv) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func (e *buzzerTestEnv) token(t *testing.T, userID, name string) string {
	t.Helper()
	token, err := e.identity.IssueToken(userID, name)
	require.NoError(t, err)
	return token
}

func TestGuestTokenEndpoint(t *testing.T) {
	env := newBuzzerTestEnv()

	w := env.do(t, http.MethodPost, "/api/v1/auth/guest", "", gin.H{"display_name": "Alice"})
	require.Equal(t, http.StatusOK, w.Code)

	var resp GuestTokenResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.UserID)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "Alice", resp.DisplayName)

	userID, name, err := env.identity.ValidateToken(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, resp.UserID, userID)
	assert.Equal(t, "Alice", name)
}

func TestGuestTokenRequiresDisplayName(t *testing.T) {
	env := newBuzzerTestEnv()
	w := env.do(t, http.MethodPost, "/api/v1/auth/guest", "", gin.H{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestBuzzerRoutesRequireAuth(t *testing.T) {
	env := newBuzzerTestEnv()

	w := env.do(t, http.MethodPost, "/api/v1/buzzer/rooms", "", gin.H{"name": "Trivia Night"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = env.do(t, http.MethodPost, "/api/v1/buzzer/rooms", "garbage", gin.H{"name": "Trivia Night"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestBuzzerHTTPFlow(t *testing.T) {
	env := newBuzzerTestEnv()
	host := env.token(t, "host-1", "Alice")
	player := env.token(t, "u1", "Bob")

	w := env.do(t, http.MethodPost, "/api/v1/buzzer/rooms", host, gin.H{"name": "Trivia Night"})
	require.Equal(t, http.StatusCreated, w.Code)
	var created struct {
		ID  string `json:"id"`
		PIN string `json:"pin"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	require.Regexp(t, `^\d{6}$`, created.PIN)

	w = env.do(t, http.MethodPost, "/api/v1/buzzer/rooms/join", player, gin.H{"pin": created.PIN})
	require.Equal(t, http.StatusOK, w.Code)

	w = env.do(t, http.MethodPost, "/api/v1/buzzer/rooms/"+created.ID+"/start", host, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = env.do(t, http.MethodPost, "/api/v1/buzzer/rooms/"+created.ID+"/buzz", player, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var buzz BuzzResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &buzz))
	assert.Equal(t, 1, buzz.Order)

	// Second press conflicts.
	w = env.do(t, http.MethodPost, "/api/v1/buzzer/rooms/"+created.ID+"/buzz", player, nil)
	assert.Equal(t, http.StatusConflict, w.Code)

	// Joining a running room conflicts.
	late := env.token(t, "u2", "Carol")
	w = env.do(t, http.MethodPost, "/api/v1/buzzer/rooms/join", late, gin.H{"pin": created.PIN})
	assert.Equal(t, http.StatusConflict, w.Code)

	// Host-only actions from a player are forbidden.
	w = env.do(t, http.MethodPost, "/api/v1/buzzer/rooms/"+created.ID+"/reset", player, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = env.do(t, http.MethodPost, "/api/v1/buzzer/rooms/"+created.ID+"/reset", host, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = env.do(t, http.MethodGet, "/api/v1/buzzer/rooms/"+created.ID, host, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var snap struct {
		Status       string `json:"status"`
		Participants []struct {
			Acted bool `json:"acted"`
		} `json:"participants"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &snap))
	assert.Equal(t, "waiting", snap.Status)
	require.Len(t, snap.Participants, 1)
	assert.False(t, snap.Participants[0].Acted)
}

func TestBuzzerJoinValidatesPIN(t *testing.T) {
	env := newBuzzerTestEnv()
	token := env.token(t, "u1", "Bob")

	for _, pin := range []string{"", "12345", "1234567", "12a456"} {
		w := env.do(t, http.MethodPost, "/api/v1/buzzer/rooms/join", token, gin.H{"pin": pin})
		assert.Equal(t, http.StatusBadRequest, w.Code, "pin %q", pin)
	}

	w := env.do(t, http.MethodPost, "/api/v1/buzzer/rooms/join", token, gin.H{"pin": "999999"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestBuzzerGetUnknownRoom(t *testing.T) {
	env := newBuzzerTestEnv()
	token := env.token(t, "u1", "Bob")

	w := env.do(t, http.MethodGet, "/api/v1/buzzer/rooms/missing", token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestBuzzerDeleteRoom(t *testing.T) {
	env := newBuzzerTestEnv()
	host := env.token(t, "host-1", "Alice")

	created, err := env.buzzer.CreateRoom("host-1", "Alice", "Trivia Night", "")
	require.NoError(t, err)

	w := env.do(t, http.MethodDelete, "/api/v1/buzzer/rooms/"+created.ID, host, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = env.do(t, http.MethodGet, "/api/v1/buzzer/rooms/"+created.ID, host, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
