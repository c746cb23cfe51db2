package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/kudetabet/portal/auth"
)

// authResponse pairs the profile with its session token after register/login.
type authResponse struct {
	User    interface{} `json:"user"`
	Token   string      `json:"token"`
	Message string      `json:"message,omitempty"`
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var in auth.RegisterInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body", "BAD_REQUEST")
		return
	}
	p, sess, err := s.auth.Register(r.Context(), in)
	if err != nil {
		code := http.StatusBadRequest
		if errors.Is(err, auth.ErrEmailTaken) || errors.Is(err, auth.ErrUsernameTaken) {
			code = http.StatusConflict
		}
		writeError(w, code, err.Error(), "REGISTER_FAILED")
		return
	}
	writeJSON(w, http.StatusCreated, authResponse{User: p, Token: sess.Token})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Identifier string `json:"identifier"` // email or username
		Password   string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body", "BAD_REQUEST")
		return
	}
	p, sess, err := s.auth.Login(r.Context(), in.Identifier, in.Password)
	if err != nil {
		writeError(w, http.StatusUnauthorized, err.Error(), "LOGIN_FAILED")
		return
	}
	writeJSON(w, http.StatusOK, authResponse{User: p, Token: sess.Token})
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	s.auth.Logout(bearerToken(r))
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// handleSessionStatus lets clients poll how close the session is to its
// auto-logout deadline and whether the warning dialog should show.
func (s *Server) handleSessionStatus(w http.ResponseWriter, r *http.Request) {
	st, ok := s.auth.Sessions.Status(bearerToken(r))
	if !ok {
		writeError(w, http.StatusUnauthorized, "session expired", "SESSION_EXPIRED")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"remaining_ms": st.RemainingIdle.Milliseconds(),
		"warning":      st.Warning,
	})
}

func (s *Server) handleForgotPassword(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Email string `json:"email"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body", "BAD_REQUEST")
		return
	}
	token, err := s.auth.RequestPasswordReset(r.Context(), in.Email)
	if err != nil {
		// Do not leak whether the email exists.
		writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
		return
	}
	if s.mail.Enabled() {
		go s.sendResetMail(in.Email, token)
	}
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

func (s *Server) handleResetPassword(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Token    string `json:"token"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body", "BAD_REQUEST")
		return
	}
	if err := s.auth.ResetPassword(r.Context(), in.Token, in.Password); err != nil {
		writeError(w, http.StatusBadRequest, err.Error(), "RESET_FAILED")
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

func (s *Server) handleChangePassword(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body", "BAD_REQUEST")
		return
	}
	if err := s.auth.UpdatePassword(r.Context(), userID(r), in.Password); err != nil {
		writeError(w, http.StatusBadRequest, err.Error(), "PASSWORD_UPDATE_FAILED")
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

func (s *Server) handleCheckUsername(w http.ResponseWriter, r *http.Request) {
	username := strings.TrimSpace(r.URL.Query().Get("username"))
	if username == "" {
		writeError(w, http.StatusBadRequest, "username is required", "BAD_REQUEST")
		return
	}
	ok, err := s.profiles.UsernameAvailable(r.Context(), username)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "availability check failed", "INTERNAL")
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"available": ok})
}

func (s *Server) handleCheckReferral(w http.ResponseWriter, r *http.Request) {
	code := strings.TrimSpace(r.URL.Query().Get("code"))
	if code == "" {
		writeError(w, http.StatusBadRequest, "code is required", "BAD_REQUEST")
		return
	}
	ok, err := s.profiles.ReferralCodeValid(r.Context(), code)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "referral check failed", "INTERNAL")
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"valid": ok})
}

func (s *Server) handleCheckEmail(w http.ResponseWriter, r *http.Request) {
	email := strings.TrimSpace(r.URL.Query().Get("email"))
	if email == "" {
		writeError(w, http.StatusBadRequest, "email is required", "BAD_REQUEST")
		return
	}
	ok, err := s.profiles.EmailAvailable(r.Context(), email)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "availability check failed", "INTERNAL")
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"available": ok})
}
