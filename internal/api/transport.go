package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"roveri/internal/utils"
)

// retryKey marks a request that has already been through the
// refresh-and-retry path. Carried in the request context so nothing
// extra goes over the wire; a marked request is never refreshed again,
// whatever the server answers.
type retryKey struct{}

func wasRetried(req *http.Request) bool {
	marked, _ := req.Context().Value(retryKey{}).(bool)
	return marked
}

var errNoRefreshToken = errors.New("no refresh token stored")

// authTransport attaches the access credential to every request and, on
// an unauthenticated response for a not-yet-retried request, performs
// exactly one silent refresh followed by exactly one retry.
type authTransport struct {
	base       http.RoundTripper
	tokens     TokenSource
	refreshURL string
	log        *utils.RemoteLogger

	mu sync.Mutex // serializes refresh calls
}

func (t *authTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	access, _, _ := t.tokens.LoadTokens()
	retried := wasRetried(req)

	// Expired-token peek: refreshing up front saves a round trip that is
	// guaranteed to 401. Any failure here just falls through to the
	// reactive path below.
	if access != "" && !retried && tokenExpired(access) {
		if fresh, err := t.refresh(req.Context()); err == nil {
			access = fresh
		}
	}

	attempt, err := cloneRequest(req)
	if err != nil {
		return nil, err
	}
	if access != "" {
		attempt.Header.Set("Authorization", "Bearer "+access)
	}
	resp, err := t.base.RoundTrip(attempt)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusUnauthorized || retried {
		return resp, nil
	}

	fresh, rerr := t.refresh(req.Context())
	if rerr != nil {
		// Refresh failed: purge the now-invalid cached credentials and
		// surface the original unauthenticated response to the caller.
		_ = t.tokens.ClearTokens()
		t.log.Logf("[api] token refresh failed: %v", rerr)
		return resp, nil
	}

	retry, err := cloneRequest(req)
	if err != nil {
		return resp, nil
	}
	resp.Body.Close()
	retry = retry.WithContext(context.WithValue(req.Context(), retryKey{}, true))
	retry.Header.Set("Authorization", "Bearer "+fresh)
	return t.base.RoundTrip(retry)
}

// refresh trades the stored refresh credential for a new access token.
func (t *authTransport) refresh(ctx context.Context) (string, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	_, refreshTok, err := t.tokens.LoadTokens()
	if err != nil {
		return "", err
	}
	if refreshTok == "" {
		return "", errNoRefreshToken
	}

	payload, err := json.Marshal(map[string]string{"refresh": refreshTok})
	if err != nil {
		return "", err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.refreshURL, bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.base.RoundTrip(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	if resp.StatusCode != http.StatusOK {
		return "", &HTTPError{Status: resp.StatusCode, Detail: extractDetail(body), Body: body}
	}

	var out struct {
		Access  string `json:"access"`
		Refresh string `json:"refresh"`
	}
	if err := json.Unmarshal(body, &out); err != nil {
		return "", err
	}
	if out.Access == "" {
		return "", fmt.Errorf("refresh response missing access token")
	}
	if err := t.tokens.SaveTokens(out.Access, out.Refresh); err != nil {
		t.log.Logf("[api] failed to persist refreshed tokens: %v", err)
	}
	return out.Access, nil
}

// cloneRequest copies a request so it can be sent (or re-sent) with its
// body intact. Requests with an unreplayable body cannot be cloned.
func cloneRequest(req *http.Request) (*http.Request, error) {
	clone := req.Clone(req.Context())
	if req.Body == nil || req.Body == http.NoBody {
		return clone, nil
	}
	if req.GetBody == nil {
		return nil, fmt.Errorf("request body is not replayable")
	}
	body, err := req.GetBody()
	if err != nil {
		return nil, err
	}
	clone.Body = body
	return clone, nil
}

// tokenExpired peeks at the unverified exp claim. Verification belongs
// to the server; the client only wants to know whether sending this
// token is pointless. Unparseable tokens are sent as-is.
func tokenExpired(token string) bool {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return time.Until(exp.Time) < 30*time.Second
}
