package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/storefront/auth-service/internal/core/domain"
	"github.com/storefront/auth-service/internal/core/ports"
	"github.com/storefront/auth-service/internal/core/service"
	"github.com/storefront/auth-service/internal/infrastructure/db/memory"
	"github.com/storefront/auth-service/internal/infrastructure/lock"
	"github.com/storefront/auth-service/internal/infrastructure/password"
	"github.com/storefront/auth-service/internal/infrastructure/token"
)

type testServer struct {
	t    *testing.T
	h    http.Handler
	repo *memory.UserRepository
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	repo := memory.NewUserRepository()
	codec := token.NewCodec("secret", 0)
	guests := domain.GuestList{{Email: "guest@storefront.dev", Password: "guest123", FirstName: "Guest", LastName: "User"}}

	e := NewRouter(Deps{
		AuthService: service.NewAuthService(repo, codec, password.Plain{}, lock.NewSharded(0), nil, guests, zerolog.Nop()),
		Guard:       service.NewAuthGuard(repo, codec, nil, zerolog.Nop()),
		Users:       repo,
		Logger:      zerolog.Nop(),
		Registry:    prometheus.NewRegistry(),
	})
	return &testServer{t: t, h: e, repo: repo}
}

func (s *testServer) do(method, path, body, authz string) (int, map[string]any) {
	s.t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if authz != "" {
		req.Header.Set("Authorization", authz)
	}
	rec := httptest.NewRecorder()
	s.h.ServeHTTP(rec, req)

	var resp map[string]any
	if strings.HasPrefix(rec.Header().Get("Content-Type"), "application/json") {
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			s.t.Fatalf("invalid json %q: %v", rec.Body.String(), err)
		}
	}
	return rec.Code, resp
}

func firstError(resp map[string]any) string {
	errs, _ := resp["errors"].([]any)
	if len(errs) != 1 {
		return ""
	}
	s, _ := errs[0].(string)
	return s
}

func TestRouter_SignupLoginMe(t *testing.T) {
	s := newTestServer(t)

	code, resp := s.do(http.MethodPost, "/auth/signup", `{"email":"a@b.com","password":"xyz","firstName":"A"}`, "")
	if code != http.StatusCreated {
		t.Fatalf("signup: expected 201, got %d (%v)", code, resp)
	}
	created := resp["createdUser"].(map[string]any)
	if created["email"] != "a@b.com" || created["password"] != "xyz" {
		t.Fatalf("unexpected createdUser: %v", created)
	}
	if resp["encodedToken"] == "" {
		t.Fatalf("expected token")
	}

	code, resp = s.do(http.MethodPost, "/auth/signup", `{"email":"A@B.com","password":"xyz","firstName":"A"}`, "")
	if code != http.StatusUnprocessableEntity || firstError(resp) != domain.ErrEmailAlreadyExists.Error() {
		t.Fatalf("duplicate signup: got %d %v", code, resp)
	}
	if s.repo.Len() != 1 {
		t.Fatalf("expected 1 user, got %d", s.repo.Len())
	}

	code, resp = s.do(http.MethodPost, "/auth/login", `{"email":"a@b.com","password":"xyz"}`, "")
	if code != http.StatusOK {
		t.Fatalf("login: expected 200, got %d (%v)", code, resp)
	}
	found := resp["foundUser"].(map[string]any)
	if _, leaked := found["password"]; leaked {
		t.Fatalf("login must strip password")
	}
	if found["_id"] != created["_id"] {
		t.Fatalf("login returned a different user")
	}
	tok := resp["encodedToken"].(string)

	code, resp = s.do(http.MethodGet, "/auth/me", "", "Bearer "+tok)
	if code != http.StatusOK || resp["foundUser"].(map[string]any)["_id"] != created["_id"] {
		t.Fatalf("me with bearer: got %d %v", code, resp)
	}

	code, _ = s.do(http.MethodGet, "/auth/me", "", tok)
	if code != http.StatusOK {
		t.Fatalf("me with raw token: got %d", code)
	}
}

func TestRouter_LoginOutcomes(t *testing.T) {
	s := newTestServer(t)
	s.do(http.MethodPost, "/auth/signup", `{"email":"dave@b.com","password":"goodpass","firstName":"Dave"}`, "")

	cases := []struct {
		body   string
		status int
		msg    string
	}{
		{`{"email":"nope","password":"x"}`, http.StatusBadRequest, domain.ErrInvalidEmailFormat.Error()},
		{`{"email":"dave@b.com","password":"  "}`, http.StatusBadRequest, domain.ErrMissingPassword.Error()},
		{`{"email":"nope@b.com","password":"x"}`, http.StatusNotFound, domain.ErrUnknownEmail.Error()},
		{`{"email":"dave@b.com","password":"badpass"}`, http.StatusUnauthorized, domain.ErrInvalidPassword.Error()},
	}
	for _, tc := range cases {
		code, resp := s.do(http.MethodPost, "/auth/login", tc.body, "")
		if code != tc.status || firstError(resp) != tc.msg {
			t.Fatalf("login %s: got %d %v", tc.body, code, resp)
		}
		if _, ok := resp["encodedToken"]; ok {
			t.Fatalf("login %s: no token may be issued", tc.body)
		}
	}
}

func TestRouter_SignupValidation(t *testing.T) {
	s := newTestServer(t)

	cases := []struct {
		body string
		msg  string
	}{
		{`{"email":"bad","password":"xyz","firstName":"A"}`, domain.ErrInvalidEmailFormat.Error()},
		{`{"email":"a@b.com","password":"xy","firstName":"A"}`, domain.ErrWeakPassword.Error()},
		{`{"email":"a@b.com","password":"xyz"}`, domain.ErrMissingFirstName.Error()},
	}
	for _, tc := range cases {
		code, resp := s.do(http.MethodPost, "/auth/signup", tc.body, "")
		if code != http.StatusUnprocessableEntity || firstError(resp) != tc.msg {
			t.Fatalf("signup %s: got %d %v", tc.body, code, resp)
		}
	}
	if s.repo.Len() != 0 {
		t.Fatalf("failed signups must not create users")
	}
}

func TestRouter_GuestLogin(t *testing.T) {
	s := newTestServer(t)

	code, first := s.do(http.MethodPost, "/auth/login", `{"email":"guest@storefront.dev","password":"guest123"}`, "")
	if code != http.StatusOK {
		t.Fatalf("guest login: got %d %v", code, first)
	}
	code, second := s.do(http.MethodPost, "/auth/login", `{"email":"guest@storefront.dev","password":"guest123"}`, "")
	if code != http.StatusOK {
		t.Fatalf("second guest login: got %d %v", code, second)
	}

	id1 := first["foundUser"].(map[string]any)["_id"]
	id2 := second["foundUser"].(map[string]any)["_id"]
	if id1 != id2 || s.repo.Len() != 1 {
		t.Fatalf("guest provisioned twice: %v %v (%d users)", id1, id2, s.repo.Len())
	}
}

func TestRouter_GuardRejections(t *testing.T) {
	s := newTestServer(t)

	foreign, err := token.NewCodec("other-secret", 0).Issue(ports.TokenClaims{ID: "x", Email: "a@b.com"})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	for _, authz := range []string{"", "Bearer garbage", "Bearer " + foreign} {
		code, resp := s.do(http.MethodGet, "/auth/me", "", authz)
		if code != http.StatusUnauthorized || firstError(resp) != domain.ErrUnauthorized.Error() {
			t.Fatalf("authz %q: got %d %v", authz, code, resp)
		}
	}

	// A well-signed token for an email that is not in the store.
	ghost, _ := token.NewCodec("secret", 0).Issue(ports.TokenClaims{ID: "x", Email: "ghost@b.com"})
	code, _ := s.do(http.MethodGet, "/auth/me", "", ghost)
	if code != http.StatusUnauthorized {
		t.Fatalf("ghost token: expected 401, got %d", code)
	}
}

func TestRouter_InvalidPayloadAndUnknownRoute(t *testing.T) {
	s := newTestServer(t)

	code, resp := s.do(http.MethodPost, "/auth/signup", `{`, "")
	if code != http.StatusBadRequest || firstError(resp) != "invalid payload" {
		t.Fatalf("bad payload: got %d %v", code, resp)
	}

	code, resp = s.do(http.MethodGet, "/nope", "", "")
	if code != http.StatusNotFound || firstError(resp) == "" {
		t.Fatalf("unknown route: got %d %v", code, resp)
	}
}

func TestRouter_HealthAndMetrics(t *testing.T) {
	s := newTestServer(t)

	if code, _ := s.do(http.MethodGet, "/health", "", ""); code != http.StatusOK {
		t.Fatalf("health: got %d", code)
	}
	if code, _ := s.do(http.MethodGet, "/health/ready", "", ""); code != http.StatusOK {
		t.Fatalf("ready: got %d", code)
	}
	if code, _ := s.do(http.MethodGet, "/metrics", "", ""); code != http.StatusOK {
		t.Fatalf("metrics: got %d", code)
	}
}
