/*
Copyright 2026 the PN Academy Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Package fake is an in-memory implementation of the user-management API.
// It behaves like the real service closely enough for the suites to run
// without a deployed environment, and backs the unit tests of the client,
// runner and scenario packages.
package fake

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-logr/logr"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const (
	defaultAccessTokenLifetime  = 15 * time.Minute
	defaultRefreshTokenLifetime = 24 * time.Hour
	signingKeyLength            = 32
)

var ErrInvalidOptions = errors.New("invalid options")

// Admin describes the account seeded when the server starts.
type Admin struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
	Phone     string
}

// Options configures a Server.
type Options struct {
	// Admin is created on startup, it is the only account able to log in
	// until others are registered.
	Admin Admin

	// SigningKey signs tokens, a random key is generated when empty.
	SigningKey []byte

	AccessTokenLifetime  time.Duration
	RefreshTokenLifetime time.Duration

	// PasswordCost is the bcrypt cost, defaults to bcrypt.MinCost to keep
	// tests fast.
	PasswordCost int

	Logger logr.Logger

	// Now defaults to time.Now.
	Now func() time.Time
}

// Server serves the user-management API from memory.
type Server struct {
	store        *store
	tokens       *tokenIssuer
	validate     *validator.Validate
	log          logr.Logger
	now          func() time.Time
	passwordCost int

	// AdminID is the identifier of the seeded admin account.
	AdminID string
}

// New creates a server and seeds the admin account.
func New(options Options) (*Server, error) {
	if options.Admin.Email == "" || options.Admin.Password == "" {
		return nil, fmt.Errorf("%w: admin email and password are required", ErrInvalidOptions)
	}

	signingKey := options.SigningKey
	if len(signingKey) == 0 {
		signingKey = make([]byte, signingKeyLength)

		if _, err := rand.Read(signingKey); err != nil {
			return nil, fmt.Errorf("generating signing key: %w", err)
		}
	}

	now := options.Now
	if now == nil {
		now = time.Now
	}

	accessLifetime := options.AccessTokenLifetime
	if accessLifetime == 0 {
		accessLifetime = defaultAccessTokenLifetime
	}

	refreshLifetime := options.RefreshTokenLifetime
	if refreshLifetime == 0 {
		refreshLifetime = defaultRefreshTokenLifetime
	}

	passwordCost := options.PasswordCost
	if passwordCost == 0 {
		passwordCost = bcrypt.MinCost
	}

	log := options.Logger
	if log.GetSink() == nil {
		log = logr.Discard()
	}

	validate, err := newValidator()
	if err != nil {
		return nil, err
	}

	s := &Server{
		store: newStore(),
		tokens: &tokenIssuer{
			signingKey:      signingKey,
			accessLifetime:  accessLifetime,
			refreshLifetime: refreshLifetime,
			now:             now,
		},
		validate:     validate,
		log:          log,
		now:          now,
		passwordCost: passwordCost,
	}

	admin, err := s.newUser(options.Admin.FirstName, options.Admin.LastName, options.Admin.Email, options.Admin.Phone, options.Admin.Password)
	if err != nil {
		return nil, err
	}

	if err := s.store.createUser(admin); err != nil {
		return nil, fmt.Errorf("seeding admin: %w", err)
	}

	s.AdminID = admin.ID

	return s, nil
}

func (s *Server) newUser(firstName, lastName, email, phone, password string) (*userRecord, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.passwordCost)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	now := s.now().UTC()

	return &userRecord{
		ID:           uuid.NewString(),
		FirstName:    firstName,
		LastName:     lastName,
		Email:        email,
		Phone:        phone,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

// Handler returns the HTTP routes of the service.
func (s *Server) Handler() http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(middleware.Recoverer)
	router.Use(s.logRequest)

	router.Post("/login", s.login)
	router.Post("/access-token", s.accessToken)

	router.Group(func(r chi.Router) {
		r.Use(s.authenticate)

		r.Get("/info", s.info)
		r.Post("/register", s.register)
		r.Patch("/update", s.updateUser)
		r.Get("/bulk", s.listUsers)
		r.Get("/export", s.exportUsers)
		r.Delete("/delete", s.deleteUsers)
		r.Post("/role", s.createRole)
		r.Get("/roles", s.listRoles)
		r.Delete("/role", s.deleteRoles)
	})

	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeMessage(w, http.StatusNotFound, "Route not found")
	})

	return router
}

// ListenAndServe serves the API on addr until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	server := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errs := make(chan error, 1)

	go func() {
		errs <- server.ListenAndServe()
	}()

	s.log.Info("fake user service listening", "addr", addr)

	select {
	case err := <-errs:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	return server.Shutdown(shutdownCtx)
}

func (s *Server) logRequest(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()

		next.ServeHTTP(ww, r)

		s.log.V(1).Info("request served",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start),
			"requestID", middleware.GetReqID(r.Context()),
			"traceparent", r.Header.Get("Traceparent"))
	})
}

type userIDKey struct{}

// authenticate requires a valid access token for a user that still exists.
func (s *Server) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
		if !ok || token == "" {
			writeMessage(w, http.StatusUnauthorized, "Authorization token is required")
			return
		}

		userID, err := s.tokens.validate(token, tokenTypeAccess)
		if err != nil {
			writeMessage(w, http.StatusUnauthorized, "Invalid or expired token")
			return
		}

		if _, err := s.store.user(userID); err != nil {
			writeMessage(w, http.StatusUnauthorized, "User no longer exists")
			return
		}

		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), userIDKey{}, userID)))
	})
}

func currentUserID(ctx context.Context) string {
	id, _ := ctx.Value(userIDKey{}).(string)

	return id
}
