package api

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"net/mail"
	"time"
	"unicode"

	"golang.org/x/crypto/bcrypt"

	"github.com/amistack/amistack/internal/models"
	"github.com/amistack/amistack/internal/store"
)

// Token validity duration
const TokenValidityDuration = 7 * 24 * time.Hour // 7 days

type authRequest struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	Name        string `json:"name"`
	CompanyName string `json:"company_name"`
}

type authResponse struct {
	Token string `json:"token"`
	Email string `json:"email"`
}

func generateToken() string {
	b := make([]byte, 32)
	rand.Read(b)
	return hex.EncodeToString(b)
}

// validateEmail checks if the email format is valid
func validateEmail(email string) bool {
	_, err := mail.ParseAddress(email)
	return err == nil
}

// validatePassword checks password strength (min 8 chars, at least 1 letter and 1 number)
func validatePassword(password string) bool {
	if len(password) < 8 {
		return false
	}
	hasLetter := false
	hasNumber := false
	for _, c := range password {
		if unicode.IsLetter(c) {
			hasLetter = true
		}
		if unicode.IsDigit(c) {
			hasNumber = true
		}
	}
	return hasLetter && hasNumber
}

// POST /api/auth/register
func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req authRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}

	if !validateEmail(req.Email) {
		writeError(w, http.StatusBadRequest, "invalid email format")
		return
	}

	if !validatePassword(req.Password) {
		writeError(w, http.StatusBadRequest, "password must be at least 8 characters with at least 1 letter and 1 number")
		return
	}

	if _, err := s.Store.GetUserByEmail(req.Email); err == nil {
		writeError(w, http.StatusBadRequest, "email already registered")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to hash password")
		return
	}

	token := generateToken()
	user := &models.User{
		Email:        req.Email,
		PasswordHash: string(hash),
		APIToken:     token,
		TokenExpiry:  time.Now().Add(TokenValidityDuration),
		Name:         req.Name,
		CompanyName:  req.CompanyName,
		Plan:         "free",
	}

	if err := s.Store.CreateUser(user); err != nil {
		s.Store.LogError(err)
		writeError(w, http.StatusInternalServerError, "failed to create account")
		return
	}

	writeJSON(w, http.StatusOK, authResponse{Token: token, Email: user.Email})
}

// POST /api/auth/login
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req authRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}

	user, err := s.Store.GetUserByEmail(req.Email)
	if err != nil {
		if err == store.ErrNotFound {
			writeError(w, http.StatusUnauthorized, "invalid credentials")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to find user")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		writeError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	// Regenerate token on login with new expiry
	user.APIToken = generateToken()
	user.TokenExpiry = time.Now().Add(TokenValidityDuration)
	s.Store.UpdateUser(user)

	writeJSON(w, http.StatusOK, authResponse{Token: user.APIToken, Email: user.Email})
}

// GET /api/auth/me
func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	user := getUserFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "not authenticated")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"email":        user.Email,
		"name":         user.Name,
		"company_name": user.CompanyName,
		"plan":         user.Plan,
	})
}
