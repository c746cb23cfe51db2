package server

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	portaldb "github.com/kudetabet/portal"
	"github.com/kudetabet/portal/auth"
	"github.com/kudetabet/portal/catalog"
	"github.com/kudetabet/portal/config"
	"github.com/kudetabet/portal/doubleexp"
	"github.com/kudetabet/portal/history"
	"github.com/kudetabet/portal/mailer"
	"github.com/kudetabet/portal/notify"
	"github.com/kudetabet/portal/profile"
	"github.com/kudetabet/portal/storage"
	"github.com/kudetabet/portal/transaction"
)

type Server struct {
	cfg *config.Config
	db  *sql.DB

	slots  *catalog.Service
	arcade *catalog.Service
	all    *catalog.Service

	auth         *auth.Service
	profiles     *profile.Store
	transactions *transaction.Store
	games        *history.Store
	doubleExp    *doubleexp.Store
	telegram     *notify.Telegram
	mail         *mailer.Mailer
	uploads      *storage.Store
}

func New(cfg *config.Config) (*Server, error) {
	db, err := portaldb.GetDB()
	if err != nil {
		return nil, err
	}
	if db == nil {
		return nil, errors.New("DATABASE_URL is not set")
	}
	profiles := profile.NewStore(db)
	sessions := auth.NewSessionStore(cfg.SessionIdleTimeout, cfg.SessionWarning)
	var recipients []string
	for _, r := range strings.Split(cfg.SMTPRecipients, ",") {
		if r = strings.TrimSpace(r); r != "" {
			recipients = append(recipients, r)
		}
	}
	srv := &Server{
		cfg:          cfg,
		db:           db,
		slots:        catalog.NewSlots(cfg.ProviderImgURL),
		arcade:       catalog.NewArcade(cfg.ProviderImgURL),
		all:          catalog.NewAll(cfg.ProviderImgURL),
		auth:         auth.NewService(db, profiles, sessions),
		profiles:     profiles,
		transactions: transaction.NewStore(db),
		games:        history.NewStore(db),
		doubleExp:    doubleexp.NewStore(db),
		telegram:     notify.NewTelegram(cfg.TelegramBotToken, cfg.TelegramChatID),
		mail: mailer.New(cfg.SMTPHost, strconv.Itoa(cfg.SMTPPort), cfg.SMTPFrom,
			cfg.SMTPPass, cfg.SMTPReplyTo, recipients),
		uploads: storage.New(cfg.UploadDir, cfg.UploadPublicURL),
	}
	return srv, nil
}

func (s *Server) Run() error {
	mux := s.routes()

	go s.sweepLoop()

	port := s.cfg.Port
	if port <= 0 {
		port = 8080
	}
	addr := ":" + strconv.Itoa(port)
	log.Printf("portal listening on %s", addr)
	return http.ListenAndServe(addr, cors(requestLogger(mux)))
}

func (s *Server) routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.health)

	mux.HandleFunc("POST /api/auth/register", s.handleRegister)
	mux.HandleFunc("POST /api/auth/login", s.handleLogin)
	mux.HandleFunc("POST /api/auth/logout", s.withAuth(s.handleLogout))
	mux.HandleFunc("GET /api/auth/session", s.withAuth(s.handleSessionStatus))
	mux.HandleFunc("POST /api/auth/reset-password", s.handleForgotPassword)
	mux.HandleFunc("POST /api/auth/reset-password/confirm", s.handleResetPassword)
	mux.HandleFunc("POST /api/auth/update-password", s.withAuth(s.handleChangePassword))
	mux.HandleFunc("GET /api/auth/check-username", s.handleCheckUsername)
	mux.HandleFunc("GET /api/auth/check-email", s.handleCheckEmail)
	mux.HandleFunc("GET /api/auth/check-referral", s.handleCheckReferral)

	mux.HandleFunc("GET /api/games", s.handleGamesList)
	mux.HandleFunc("GET /api/games/list", s.handleGamesQuery)
	mux.HandleFunc("GET /api/games/search", s.handleGamesSearch)
	mux.HandleFunc("POST /api/games/filter", s.handleGamesFilter)
	mux.HandleFunc("POST /api/games/filter/reset", s.handleFilterReset)
	mux.HandleFunc("GET /api/games/categories", s.handleCategories)
	mux.HandleFunc("GET /api/games/providers", s.handleProviders)
	mux.HandleFunc("GET /api/games/category/{slug}", s.handleGamesByCategory)
	mux.HandleFunc("POST /api/games/launch", s.withAuth(s.handleGameLaunch))

	mux.HandleFunc("GET /api/profile", s.withAuth(s.handleGetProfile))
	mux.HandleFunc("PATCH /api/profile", s.withAuth(s.handleUpdateProfile))
	mux.HandleFunc("GET /api/profile/balance", s.withAuth(s.handleGetBalance))

	mux.HandleFunc("GET /api/transactions", s.withAuth(s.handleTransactionsList))
	mux.HandleFunc("POST /api/transactions", s.withAuth(s.handleTransactionCreate))
	mux.HandleFunc("GET /api/transactions/stats", s.withAuth(s.handleTransactionStats))
	mux.HandleFunc("GET /api/transactions/pending-count", s.withAuth(s.handleTransactionPendingCount))
	mux.HandleFunc("GET /api/transactions/reference/{reference}", s.withAuth(s.handleTransactionByReference))
	mux.HandleFunc("GET /api/transactions/{id}", s.withAuth(s.handleTransactionGet))
	mux.HandleFunc("POST /api/transactions/{id}/cancel", s.withAuth(s.handleTransactionCancel))
	mux.HandleFunc("POST /api/transactions/{id}/proof", s.withAuth(s.handleTransactionProof))
	mux.HandleFunc("POST /api/transactions/{id}/approve", s.withAdmin(s.handleTransactionApprove))
	mux.HandleFunc("POST /api/transactions/{id}/reject", s.withAdmin(s.handleTransactionReject))

	mux.HandleFunc("GET /api/history", s.withAuth(s.handleHistoryList))
	mux.HandleFunc("POST /api/history", s.withAuth(s.handleHistoryAdd))
	mux.HandleFunc("GET /api/history/stats", s.withAuth(s.handleHistoryStats))
	mux.HandleFunc("GET /api/history/favourites", s.withAuth(s.handleHistoryFavourites))
	mux.HandleFunc("GET /api/history/search", s.withAuth(s.handleHistorySearch))
	mux.HandleFunc("POST /api/history/{id}/favourite", s.withAuth(s.handleHistoryToggleFavourite))
	mux.HandleFunc("DELETE /api/history/{id}", s.withAuth(s.handleHistoryDelete))

	mux.HandleFunc("GET /api/double-exp", s.withAuth(s.handleDoubleExpStatus))
	mux.HandleFunc("POST /api/double-exp/claim", s.withAuth(s.handleDoubleExpClaim))

	mux.HandleFunc("POST /api/messages/ticket", s.withAuth(s.handleTicket))
	mux.HandleFunc("POST /api/transaction/deposit", s.withAuth(s.handleDepositNotify))

	// Proof-of-payment files are served straight from the upload root.
	mux.Handle("GET /uploads/", http.StripPrefix("/uploads/",
		http.FileServer(http.Dir(s.uploads.Root()))))

	return mux
}

// sweepLoop evicts idle sessions and deactivates expired double-EXP boosts.
func (s *Server) sweepLoop() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()
	for range ticker.C {
		if n := s.auth.Sessions.Sweep(); n > 0 {
			log.Printf("sessions: swept %d idle sessions", n)
		}
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		if n, err := s.doubleExp.DeactivateExpired(ctx); err != nil {
			log.Printf("doubleexp: sweep: %v", err)
		} else if n > 0 {
			log.Printf("doubleexp: deactivated %d expired boosts", n)
		}
		cancel()
	}
}

func cors(h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		h.ServeHTTP(w, r)
	})
}

// requestLogger logs method and path for each request (no body or secrets).
func requestLogger(h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log.Printf("portal %s %s", r.Method, r.URL.Path)
		h.ServeHTTP(w, r)
	})
}

type ctxKey int

const userIDKey ctxKey = 0

// withAuth requires a live Bearer session and slides its idle clock.
func (s *Server) withAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := bearerToken(r)
		if token == "" {
			writeError(w, http.StatusUnauthorized, "missing bearer token", "UNAUTHORIZED")
			return
		}
		sess, ok := s.auth.Sessions.Get(token)
		if !ok {
			writeError(w, http.StatusUnauthorized, "session expired", "SESSION_EXPIRED")
			return
		}
		s.auth.Sessions.Touch(token)
		ctx := context.WithValue(r.Context(), userIDKey, sess.UserID)
		next(w, r.WithContext(ctx))
	}
}

// withAdmin additionally requires the caller's profile role to be admin.
func (s *Server) withAdmin(next http.HandlerFunc) http.HandlerFunc {
	return s.withAuth(func(w http.ResponseWriter, r *http.Request) {
		p, err := s.profiles.Get(r.Context(), userID(r))
		if err != nil || p.Role != "admin" {
			writeError(w, http.StatusForbidden, "admin access required", "FORBIDDEN")
			return
		}
		next(w, r)
	})
}

func bearerToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if !strings.HasPrefix(h, prefix) {
		return ""
	}
	return strings.TrimSpace(h[len(prefix):])
}

// userID returns the authenticated user id placed by withAuth.
func userID(r *http.Request) string {
	id, _ := r.Context().Value(userIDKey).(string)
	return id
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok", "service": "portal"})
}

func writeJSON(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}
