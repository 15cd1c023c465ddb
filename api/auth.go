package api

import (
	"encoding/json"
	"net/http"
	"net/mail"
	"strings"
	"time"

	"github.com/avelar/pitch/internal/models"
	"github.com/avelar/pitch/pkg/repository"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

type AuthHandler struct {
	userRepo      repository.UserRepo
	profileRepo   repository.ProfileRepo
	jwtSecret     string
	tokenDuration time.Duration
}

// NewAuthHandler creates a new AuthHandler with required dependencies.
func NewAuthHandler(ur repository.UserRepo, pr repository.ProfileRepo, jwtSecret string, tokenDuration time.Duration) *AuthHandler {
	return &AuthHandler{userRepo: ur, profileRepo: pr, jwtSecret: jwtSecret, tokenDuration: tokenDuration}
}

type signupRequest struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	Password1 string `json:"password1"`
	Password2 string `json:"password2"`
}

type signinRequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

func (h *AuthHandler) issueToken(userID int64, username string) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id":  userID,
		"username": username,
		"exp":      time.Now().Add(h.tokenDuration).Unix(),
	})
	return token.SignedString([]byte(h.jwtSecret))
}

func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "Invalid request", http.StatusBadRequest)
		return
	}
	if req.Username == "" || req.Email == "" || req.Password1 == "" || req.Password2 == "" {
		writeError(w, "Please provide username, email, password, and password confirmation", http.StatusBadRequest)
		return
	}
	if req.Password1 != req.Password2 {
		writeError(w, "Passwords do not match", http.StatusBadRequest)
		return
	}
	if _, err := mail.ParseAddress(req.Email); err != nil {
		writeError(w, "Invalid email format", http.StatusBadRequest)
		return
	}

	ctx := r.Context()

	if existing, err := h.userRepo.GetUserByUsername(ctx, req.Username); err != nil {
		writeError(w, "Error creating user", http.StatusInternalServerError)
		return
	} else if existing != nil {
		writeError(w, "Username already exists", http.StatusBadRequest)
		return
	}
	if existing, err := h.userRepo.GetUserByEmail(ctx, req.Email); err != nil {
		writeError(w, "Error creating user", http.StatusInternalServerError)
		return
	} else if existing != nil {
		writeError(w, "Email already exists", http.StatusBadRequest)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password1), bcrypt.DefaultCost)
	if err != nil {
		writeError(w, "Error hashing password", http.StatusInternalServerError)
		return
	}

	user := models.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: string(hash),
	}

	userID, err := h.userRepo.CreateUser(ctx, &user)
	if err != nil {
		writeError(w, "Error creating user", http.StatusInternalServerError)
		return
	}

	tokenStr, err := h.issueToken(userID, req.Username)
	if err != nil {
		writeError(w, "Error signing token", http.StatusInternalServerError)
		return
	}

	writeSuccess(w, map[string]any{
		"message": "User created successfully",
		"user": map[string]any{
			"id":       userID,
			"username": req.Username,
			"email":    req.Email,
		},
		"token": tokenStr,
	}, http.StatusCreated)
}

func (h *AuthHandler) Signin(w http.ResponseWriter, r *http.Request) {
	var req signinRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "Invalid request", http.StatusBadRequest)
		return
	}
	if req.Login == "" || req.Password == "" {
		writeError(w, "Please provide login credentials and password", http.StatusBadRequest)
		return
	}

	ctx := r.Context()

	// login accepts a username or an email address
	var user *models.User
	var err error
	if strings.Contains(req.Login, "@") {
		user, err = h.userRepo.GetUserByEmail(ctx, req.Login)
	} else {
		user, err = h.userRepo.GetUserByUsername(ctx, req.Login)
	}
	if err != nil || user == nil {
		writeError(w, "Invalid credentials", http.StatusUnauthorized)
		return
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		writeError(w, "Invalid credentials", http.StatusUnauthorized)
		return
	}

	tokenStr, err := h.issueToken(user.ID, user.Username)
	if err != nil {
		writeError(w, "Error signing token", http.StatusInternalServerError)
		return
	}

	// tells the client whether to route to onboarding or the dashboard
	profileSubmitted := false
	if profile, perr := h.profileRepo.GetProfileByUserID(ctx, user.ID); perr == nil && profile != nil {
		profileSubmitted = true
	}

	writeSuccess(w, map[string]any{
		"user": map[string]any{
			"id":       user.ID,
			"username": user.Username,
			"email":    user.Email,
		},
		"token":             tokenStr,
		"profile_submitted": profileSubmitted,
	}, http.StatusOK)
}

func (h *AuthHandler) Signout(w http.ResponseWriter, r *http.Request) {
	// For stateless JWT, signout is client-side (just delete token)
	writeSuccess(w, map[string]any{"message": "signed out"}, http.StatusOK)
}
