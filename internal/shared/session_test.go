package shared

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSessions(t *testing.T) (*SessionManager, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return NewSessionManager(client, "pd_session", "secret", time.Hour, false), mr
}

func roundTrip(t *testing.T, sm *SessionManager, cookie *http.Cookie, fn func(*Session)) *http.Cookie {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if cookie != nil {
		req.AddCookie(cookie)
	}
	sess, err := sm.Load(context.Background(), req)
	require.NoError(t, err)
	fn(sess)
	rr := httptest.NewRecorder()
	require.NoError(t, sm.Commit(context.Background(), rr, req, sess))
	cookies := rr.Result().Cookies()
	require.Len(t, cookies, 1)
	return cookies[0]
}

func TestFlashSurvivesRedirect(t *testing.T) {
	sm, _ := newTestSessions(t)

	cookie := roundTrip(t, sm, nil, func(s *Session) {
		s.AddFlash(FlashMessage{Kind: FlashError, Message: "Não foi possível deletar o produto."})
	})

	var popped []FlashMessage
	cookie = roundTrip(t, sm, cookie, func(s *Session) { popped = s.PopFlashes() })
	require.Len(t, popped, 1)
	assert.Equal(t, "Não foi possível deletar o produto.", popped[0].Message)

	roundTrip(t, sm, cookie, func(s *Session) { popped = s.PopFlashes() })
	assert.Empty(t, popped)
}

func TestSessionKeepsValuesAndID(t *testing.T) {
	sm, _ := newTestSessions(t)

	var firstID string
	cookie := roundTrip(t, sm, nil, func(s *Session) {
		firstID = s.ID
		s.Set("k", "v")
	})
	roundTrip(t, sm, cookie, func(s *Session) {
		assert.Equal(t, firstID, s.ID)
		assert.Equal(t, "v", s.Get("k"))
	})
}

func TestUnknownCookieGetsFreshSession(t *testing.T) {
	sm, _ := newTestSessions(t)

	roundTrip(t, sm, &http.Cookie{Name: "pd_session", Value: "forged"}, func(s *Session) {
		assert.NotEqual(t, "forged", s.ID)
	})
}

func TestCSRFTokenLifecycle(t *testing.T) {
	sm, _ := newTestSessions(t)
	csrf := NewCSRFManager("csrfsecret")
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	sess, err := sm.Load(context.Background(), req)
	require.NoError(t, err)

	token, err := csrf.EnsureToken(context.Background(), sess)
	require.NoError(t, err)
	again, _ := csrf.EnsureToken(context.Background(), sess)

	assert.Equal(t, token, again)
	assert.NoError(t, csrf.VerifyToken(context.Background(), sess, token))
	assert.ErrorIs(t, csrf.VerifyToken(context.Background(), sess, "nope"), ErrCSRFTokenMismatch)
	assert.ErrorIs(t, csrf.VerifyToken(context.Background(), sess, ""), ErrCSRFTokenMissing)
}

func TestCSRFTokenBoundToSecretAndSession(t *testing.T) {
	sm, _ := newTestSessions(t)
	sess, err := sm.Load(context.Background(), httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)

	token, err := NewCSRFManager("csrfsecret").EnsureToken(context.Background(), sess)
	require.NoError(t, err)

	rotated := NewCSRFManager("rotated")
	assert.ErrorIs(t, rotated.VerifyToken(context.Background(), sess, token), ErrCSRFTokenMismatch)

	fresh, err := rotated.EnsureToken(context.Background(), sess)
	require.NoError(t, err)
	assert.NotEqual(t, token, fresh)
	assert.NoError(t, rotated.VerifyToken(context.Background(), sess, fresh))
}
