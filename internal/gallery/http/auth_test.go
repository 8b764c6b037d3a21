package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/blushhq/blush/internal/gallery/authstate"
	httpapi "github.com/blushhq/blush/internal/gallery/http"
	"github.com/blushhq/blush/internal/gallery/service"
	"github.com/blushhq/blush/internal/gallery/store/drivers/sqlite"
	"github.com/blushhq/blush/pkg/slogx"
	"github.com/stretchr/testify/require"
)

// captureSender records the last code sent per address instead of emailing.
type captureSender struct {
	mu    sync.Mutex
	codes map[string]string
	fail  bool
}

func (c *captureSender) SendCode(_ context.Context, to, code string, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.fail {
		return context.DeadlineExceeded
	}
	if c.codes == nil {
		c.codes = map[string]string{}
	}
	c.codes[to] = code
	return nil
}

func (c *captureSender) codeFor(email string) string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.codes[email]
}

type testEnv struct {
	server *httptest.Server
	sender *captureSender
}

func newTestEnv(t *testing.T, allowedEmails ...string) *testEnv {
	t.Helper()

	st, err := sqlite.NewStore(filepath.Join(t.TempDir(), "gallery.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.ApplyMigrations())

	secret := []byte("test-secret")
	sender := &captureSender{}

	otp := &service.OTPService{
		Challenges:     authstate.NewChallengeStore(),
		Secret:         secret,
		TTL:            10 * time.Minute,
		ResendCooldown: time.Minute,
		MaxAttempts:    5,
		AllowedEmails:  allowedEmails,
	}
	sessions := &service.SessionService{
		Revocations: authstate.NewRevocationSet(),
		Secret:      secret,
		SessionTTL:  time.Hour,
	}
	storage := &service.StorageService{
		BaseDir: t.TempDir(),
		Secret:  secret,
		URLTTL:  15 * time.Minute,
	}

	logger := slogx.New(slogx.Config{Service: "gallery-test", Level: "error", Format: "text"})
	router := httpapi.NewRouter("test", st, logger)
	router.OTPService = otp
	router.SessionService = sessions
	router.AlbumService = &service.AlbumService{Store: st}
	router.MediaService = &service.MediaService{Store: st}
	router.StorageService = storage
	router.Mailer = sender
	router.ApplyRoutes()

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	return &testEnv{server: server, sender: sender}
}

func (e *testEnv) do(t *testing.T, method, path, bearer string, body any) (*http.Response, map[string]any) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req, err := http.NewRequest(method, e.server.URL+path, &buf)
	require.NoError(t, err)
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	resp, err := e.server.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var decoded map[string]any
	_ = json.NewDecoder(resp.Body).Decode(&decoded)
	return resp, decoded
}

func (e *testEnv) signIn(t *testing.T, email string) string {
	t.Helper()

	resp, _ := e.do(t, http.MethodPost, "/v1/auth/request-code", "", map[string]string{"email": email})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, body := e.do(t, http.MethodPost, "/v1/auth/verify", "", map[string]string{
		"email": email,
		"code":  e.sender.codeFor(email),
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	token, _ := body["token"].(string)
	require.NotEmpty(t, token)
	return token
}

func TestSignInFlow(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)

	resp, body := env.do(t, http.MethodPost, "/v1/auth/request-code", "", map[string]string{"email": "Alice@Example.com"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, true, body["sent"])

	code := env.sender.codeFor("alice@example.com")
	require.Len(t, code, 6, "codes are normalized-email keyed and six digits")

	resp, body = env.do(t, http.MethodPost, "/v1/auth/verify", "", map[string]string{
		"email": "alice@example.com",
		"code":  code,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "alice@example.com", body["email"])
	require.NotEmpty(t, body["user_id"])
	token, _ := body["token"].(string)
	require.NotEmpty(t, token)

	resp, body = env.do(t, http.MethodGet, "/v1/auth/me", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "alice@example.com", body["email"])

	resp, _ = env.do(t, http.MethodPost, "/v1/auth/logout", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, body = env.do(t, http.MethodGet, "/v1/auth/me", token, nil)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	require.Equal(t, "unauthenticated", body["error"])
}

func TestVerifyWrongCode(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)

	resp, _ := env.do(t, http.MethodPost, "/v1/auth/request-code", "", map[string]string{"email": "bob@example.com"})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	right := env.sender.codeFor("bob@example.com")
	wrong := "000000"
	if right == wrong {
		wrong = "000001"
	}

	resp, body := env.do(t, http.MethodPost, "/v1/auth/verify", "", map[string]string{
		"email": "bob@example.com",
		"code":  wrong,
	})
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	require.Equal(t, "unauthenticated", body["error"])

	// The right code still works after a wrong guess.
	resp, _ = env.do(t, http.MethodPost, "/v1/auth/verify", "", map[string]string{
		"email": "bob@example.com",
		"code":  right,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// But it was consumed by that success.
	resp, body = env.do(t, http.MethodPost, "/v1/auth/verify", "", map[string]string{
		"email": "bob@example.com",
		"code":  right,
	})
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	require.Equal(t, "unauthenticated", body["error"])
}

func TestRequestCodeCooldown(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)

	resp, _ := env.do(t, http.MethodPost, "/v1/auth/request-code", "", map[string]string{"email": "carol@example.com"})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, body := env.do(t, http.MethodPost, "/v1/auth/request-code", "", map[string]string{"email": "carol@example.com"})
	require.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
	require.Equal(t, "rate_limited", body["error"])
	require.NotEmpty(t, resp.Header.Get("Retry-After"))
}

func TestRequestCodeAllowList(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, "alice@example.com")

	resp, body := env.do(t, http.MethodPost, "/v1/auth/request-code", "", map[string]string{"email": "mallory@example.com"})
	require.Equal(t, http.StatusForbidden, resp.StatusCode)
	require.Equal(t, "forbidden", body["error"])

	resp, _ = env.do(t, http.MethodPost, "/v1/auth/request-code", "", map[string]string{"email": "alice@example.com"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRequestCodeDeliveryFailure(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	env.sender.fail = true

	resp, body := env.do(t, http.MethodPost, "/v1/auth/request-code", "", map[string]string{"email": "dave@example.com"})
	require.Equal(t, http.StatusBadGateway, resp.StatusCode)
	require.Equal(t, "delivery_failed", body["error"])
}

func TestMeRequiresBearer(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)

	resp, _ := env.do(t, http.MethodGet, "/v1/auth/me", "", nil)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, _ = env.do(t, http.MethodGet, "/v1/auth/me", "garbage-token", nil)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
