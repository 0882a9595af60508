package auth

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/friendgraph/friendgraph-api/internal/middleware"
	"github.com/friendgraph/friendgraph-api/internal/pkg/response"
)

func post(t *testing.T, h http.Handler, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, path, strings.NewReader(body)))
	return rr
}

func TestLoginHandlerErrors(t *testing.T) {
	disabled := mustUser(t, "off@example.com", "pw", false)
	svc, _ := newTestService(t, mustUser(t, "on@example.com", "pw", true), disabled)
	router := NewHandler(svc).Routes(middleware.Auth(svc.jwtService))

	cases := []struct {
		body string
		msg  string
	}{
		{`{"email":"missing@example.com","password":"pw"}`, "User with this email does not exist."},
		{`{"email":"off@example.com","password":"pw"}`, "Your account has been disabled"},
		{`{"email":"on@example.com","password":"nope"}`, "Please provide valid credentials"},
	}
	for _, tc := range cases {
		rr := post(t, router, "/login", tc.body)
		if rr.Code != http.StatusBadRequest {
			t.Fatalf("%s: expected 400, got %d", tc.body, rr.Code)
		}
		var resp response.Response
		if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		if resp.Error == nil || resp.Error.Message != tc.msg {
			t.Fatalf("expected %q, got %+v", tc.msg, resp.Error)
		}
	}
}

func TestLoginRefreshMeFlow(t *testing.T) {
	u := mustUser(t, "on@example.com", "pw", true)
	svc, _ := newTestService(t, u)
	router := NewHandler(svc).Routes(middleware.Auth(svc.jwtService))

	rr := post(t, router, "/login", `{"email":"on@example.com","password":"pw"}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("login: expected 200, got %d body=%s", rr.Code, rr.Body.String())
	}
	var login struct {
		Data TokenPair `json:"data"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &login); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	rr = post(t, router, "/refresh", `{}`)
	if rr.Code != http.StatusBadRequest || !bytes.Contains(rr.Body.Bytes(), []byte("Refresh token is required")) {
		t.Fatalf("expected missing refresh 400, got %d %s", rr.Code, rr.Body.String())
	}

	rr = post(t, router, "/refresh", `{"refresh":"`+login.Data.RefreshToken+`"}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("refresh: expected 200, got %d", rr.Code)
	}
	if bytes.Contains(rr.Body.Bytes(), []byte("refresh_token")) {
		t.Fatalf("refresh must only return an access token: %s", rr.Body.String())
	}

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+login.Data.AccessToken)
	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK || !bytes.Contains(rr.Body.Bytes(), []byte(u.ID.String())) {
		t.Fatalf("me: got %d %s", rr.Code, rr.Body.String())
	}

	req = httptest.NewRequest(http.MethodPost, "/logout", strings.NewReader(`{"refresh":"`+login.Data.RefreshToken+`"}`))
	req.Header.Set("Authorization", "Bearer "+login.Data.AccessToken)
	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	if rr.Code != http.StatusNoContent {
		t.Fatalf("logout: expected 204, got %d", rr.Code)
	}

	rr = post(t, router, "/refresh", `{"refresh":"`+login.Data.RefreshToken+`"}`)
	if rr.Code != http.StatusBadRequest || !bytes.Contains(rr.Body.Bytes(), []byte("Invalid Refresh token")) {
		t.Fatalf("expected revoked refresh to fail, got %d %s", rr.Code, rr.Body.String())
	}
}

func TestMeRequiresAuth(t *testing.T) {
	svc, _ := newTestService(t)
	router := NewHandler(svc).Routes(middleware.Auth(svc.jwtService))

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/me", nil))
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rr.Code)
	}
}
