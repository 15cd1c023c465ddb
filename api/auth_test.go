package api_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/avelar/pitch/api"
	"github.com/avelar/pitch/internal/models"
	"github.com/avelar/pitch/pkg/repository/mock"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

func TestAuthHandlers(t *testing.T) {
	secret := "testsecret"
	tokenDur := 1 * time.Hour

	tests := []struct {
		name       string
		path       string
		body       any
		prepare    func(m *mock.Mocks)
		wantStatus int
		checkBody  func(t *testing.T, body []byte)
	}{
		{
			name:       "Signup_InvalidRequest",
			path:       "/signup",
			body:       "not a json",
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "Signup_MissingFields",
			path:       "/signup",
			body:       map[string]string{"username": "alice", "password1": "s3cret"},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "Signup_PasswordMismatch",
			path:       "/signup",
			body:       map[string]string{"username": "alice", "email": "alice@example.com", "password1": "s3cret", "password2": "other"},
			wantStatus: http.StatusBadRequest,
			checkBody: func(t *testing.T, b []byte) {
				if !bytes.Contains(b, []byte("Passwords do not match")) {
					t.Fatalf("unexpected body: %s", b)
				}
			},
		},
		{
			name:       "Signup_InvalidEmail",
			path:       "/signup",
			body:       map[string]string{"username": "alice", "email": "not-an-email", "password1": "s3cret", "password2": "s3cret"},
			wantStatus: http.StatusBadRequest,
			checkBody: func(t *testing.T, b []byte) {
				if !bytes.Contains(b, []byte("Invalid email format")) {
					t.Fatalf("unexpected body: %s", b)
				}
			},
		},
		{
			name:       "Signup_Success",
			path:       "/signup",
			body:       map[string]string{"username": "alice", "email": "alice@example.com", "password1": "s3cret", "password2": "s3cret"},
			wantStatus: http.StatusCreated,
			checkBody: func(t *testing.T, b []byte) {
				var ar struct {
					Token string `json:"token"`
				}
				if err := json.Unmarshal(b, &ar); err != nil {
					t.Fatalf("unmarshal token: %v", err)
				}
				if ar.Token == "" {
					t.Fatalf("empty token")
				}
				tok, err := jwt.Parse(ar.Token, func(token *jwt.Token) (any, error) { return []byte(secret), nil })
				if err != nil {
					t.Fatalf("invalid token: %v", err)
				}
				claims := tok.Claims.(jwt.MapClaims)
				if _, ok := claims["user_id"]; !ok {
					t.Fatalf("missing user_id claim")
				}
				if expF, ok := claims["exp"].(float64); !ok || int64(expF) < time.Now().Unix() {
					t.Fatalf("invalid exp claim")
				}
			},
		},
		{
			name: "Signup_DuplicateUsername",
			path: "/signup",
			body: map[string]string{"username": "dup", "email": "new@example.com", "password1": "pw", "password2": "pw"},
			prepare: func(m *mock.Mocks) {
				m.Users.Stored = []*models.User{{ID: 1, Username: "dup", Email: "dup@example.com"}}
			},
			wantStatus: http.StatusBadRequest,
			checkBody: func(t *testing.T, b []byte) {
				if !bytes.Contains(b, []byte("Username already exists")) {
					t.Fatalf("unexpected body: %s", b)
				}
			},
		},
		{
			name: "Signup_DuplicateEmail",
			path: "/signup",
			body: map[string]string{"username": "fresh", "email": "dup@example.com", "password1": "pw", "password2": "pw"},
			prepare: func(m *mock.Mocks) {
				m.Users.Stored = []*models.User{{ID: 1, Username: "dup", Email: "dup@example.com"}}
			},
			wantStatus: http.StatusBadRequest,
			checkBody: func(t *testing.T, b []byte) {
				if !bytes.Contains(b, []byte("Email already exists")) {
					t.Fatalf("unexpected body: %s", b)
				}
			},
		},
		{
			name: "Signup_RepoError",
			path: "/signup",
			body: map[string]string{"username": "err", "email": "err@example.com", "password1": "pw", "password2": "pw"},
			prepare: func(m *mock.Mocks) {
				m.Users.CreateErr = fmt.Errorf("db locked")
			},
			wantStatus: http.StatusInternalServerError,
		},
		{
			name:       "Signin_InvalidRequest",
			path:       "/signin",
			body:       "not a json",
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "Signin_MissingFields",
			path:       "/signin",
			body:       map[string]string{"login": "bob"},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "Signin_MissingUser",
			path:       "/signin",
			body:       map[string]string{"login": "ghost", "password": "nop"},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name: "Signin_ByUsername",
			path: "/signin",
			body: map[string]string{"login": "bob", "password": "hunter2"},
			prepare: func(m *mock.Mocks) {
				hash, _ := bcrypt.GenerateFromPassword([]byte("hunter2"), bcrypt.DefaultCost)
				m.Users.Stored = []*models.User{{ID: 2, Username: "bob", Email: "bob@example.com", PasswordHash: string(hash)}}
			},
			wantStatus: http.StatusOK,
			checkBody: func(t *testing.T, b []byte) {
				var ar struct {
					Token            string `json:"token"`
					ProfileSubmitted bool   `json:"profile_submitted"`
				}
				if err := json.Unmarshal(b, &ar); err != nil {
					t.Fatalf("unmarshal: %v", err)
				}
				if ar.Token == "" {
					t.Fatalf("empty token")
				}
				if ar.ProfileSubmitted {
					t.Fatalf("expected profile_submitted=false without a profile row")
				}
			},
		},
		{
			name: "Signin_ByEmail_WithProfile",
			path: "/signin",
			body: map[string]string{"login": "bob@example.com", "password": "hunter2"},
			prepare: func(m *mock.Mocks) {
				hash, _ := bcrypt.GenerateFromPassword([]byte("hunter2"), bcrypt.DefaultCost)
				m.Users.Stored = []*models.User{{ID: 2, Username: "bob", Email: "bob@example.com", PasswordHash: string(hash)}}
				m.Profiles.Stored = map[int64]*models.FreelancerProfile{2: {ID: 1, UserID: 2, FullName: "Bob"}}
			},
			wantStatus: http.StatusOK,
			checkBody: func(t *testing.T, b []byte) {
				var ar struct {
					ProfileSubmitted bool `json:"profile_submitted"`
				}
				if err := json.Unmarshal(b, &ar); err != nil {
					t.Fatalf("unmarshal: %v", err)
				}
				if !ar.ProfileSubmitted {
					t.Fatalf("expected profile_submitted=true")
				}
			},
		},
		{
			name: "Signin_WrongPassword",
			path: "/signin",
			body: map[string]string{"login": "carol", "password": "wrongpw"},
			prepare: func(m *mock.Mocks) {
				hash, _ := bcrypt.GenerateFromPassword([]byte("rightpw"), bcrypt.DefaultCost)
				m.Users.Stored = []*models.User{{ID: 3, Username: "carol", Email: "c@example.com", PasswordHash: string(hash)}}
			},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "Signout_OK",
			path:       "/signout",
			wantStatus: http.StatusOK,
			checkBody: func(t *testing.T, b []byte) {
				if !bytes.Contains(b, []byte("signed out")) {
					t.Fatalf("unexpected body: %s", string(b))
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mocks := mock.NewMocks()
			if tt.prepare != nil {
				tt.prepare(mocks)
			}
			handler := api.NewAuthHandler(mocks.Users, mocks.Profiles, secret, tokenDur)

			var bodyReader io.Reader
			if tt.body != nil {
				b, _ := json.Marshal(tt.body)
				bodyReader = bytes.NewReader(b)
			}
			req := httptest.NewRequest(http.MethodPost, tt.path, bodyReader)
			w := httptest.NewRecorder()

			switch tt.path {
			case "/signup":
				handler.Signup(w, req)
			case "/signin":
				handler.Signin(w, req)
			case "/signout":
				handler.Signout(w, req)
			default:
				t.Fatalf("unknown path %s", tt.path)
			}

			res := w.Result()
			defer res.Body.Close()
			data, _ := io.ReadAll(res.Body)
			if res.StatusCode != tt.wantStatus {
				t.Fatalf("%s: expected status %d got %d body=%s", tt.name, tt.wantStatus, res.StatusCode, string(data))
			}
			if tt.checkBody != nil {
				tt.checkBody(t, data)
			}
		})
	}
}
