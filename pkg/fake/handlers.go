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

package fake

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"net/http"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/pnacademy/user-api-tests/pkg/client"
)

const (
	defaultPage     = 1
	defaultPageSize = 10
	maxPageSize     = 100
)

type loginRequest struct {
	Email      string `json:"email" validate:"required,email"`
	Password   string `json:"password" validate:"required"`
	DeviceType string `json:"deviceType"`
}

type registerRequest struct {
	FirstName string `json:"firstName" validate:"required"`
	LastName  string `json:"lastName" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,strong_password"`
	Phone     string `json:"phone" validate:"required,numeric,min=7,max=15"`
}

type createRoleRequest struct {
	Name        string          `json:"name" validate:"required"`
	Permissions map[string]bool `json:"permissions" validate:"required"`
}

type userUpdate struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email" validate:"omitempty,email"`
	Phone     string `json:"phone" validate:"omitempty,numeric,min=7,max=15"`
	RoleID    string `json:"roleId"`
}

type updateUserRequest struct {
	ID           string     `json:"id" validate:"required"`
	DataToUpdate userUpdate `json:"dataToUpdate"`
}

type roleReference struct {
	RoleID string `json:"roleId" validate:"required"`
}

type deleteRolesRequest struct {
	RoleIDs []roleReference `json:"roleIds" validate:"required,min=1,dive"`
}

type deleteUsersRequest struct {
	UserIDs []string `json:"userIds" validate:"required,min=1,dive,required"`
}

type accessTokenRequest struct {
	RefreshToken string `json:"refreshToken" validate:"required"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	_ = json.NewEncoder(w).Encode(body)
}

func writeMessage(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, client.MessageResponse{Message: message})
}

// decode reads a JSON body and validates it, writing a 400 on failure.
func (s *Server) decode(w http.ResponseWriter, r *http.Request, into any) bool {
	if err := json.NewDecoder(r.Body).Decode(into); err != nil {
		writeMessage(w, http.StatusBadRequest, "Request body is not valid JSON")
		return false
	}

	if err := s.validate.Struct(into); err != nil {
		writeMessage(w, http.StatusBadRequest, validationMessage(err))
		return false
	}

	return true
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

func toUser(u userRecord) client.User {
	return client.User{
		ID:        u.ID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Email:     u.Email,
		Phone:     u.Phone,
		RoleID:    u.RoleID,
		CreatedAt: formatTime(u.CreatedAt),
		UpdatedAt: formatTime(u.UpdatedAt),
	}
}

func toRole(r roleRecord) client.Role {
	return client.Role{
		ID:          r.ID,
		Name:        r.Name,
		Permissions: client.Permissions(r.Permissions),
	}
}

// pageParams reads page and pageSize from the query, applying defaults.
func pageParams(r *http.Request) (int, int, bool) {
	parse := func(name string, fallback int) (int, bool) {
		raw := r.URL.Query().Get(name)
		if raw == "" {
			return fallback, true
		}

		value, err := strconv.Atoi(raw)
		if err != nil || value < 1 {
			return 0, false
		}

		return value, true
	}

	page, ok := parse("page", defaultPage)
	if !ok {
		return 0, 0, false
	}

	pageSize, ok := parse("pageSize", defaultPageSize)
	if !ok || pageSize > maxPageSize {
		return 0, 0, false
	}

	return page, pageSize, true
}

func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	var request loginRequest
	if !s.decode(w, r, &request) {
		return
	}

	user, err := s.store.userByEmail(request.Email)
	if err != nil {
		writeMessage(w, http.StatusUnauthorized, "Invalid email or password")
		return
	}

	if err := bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(request.Password)); err != nil {
		writeMessage(w, http.StatusUnauthorized, "Invalid email or password")
		return
	}

	access, refresh, err := s.tokens.issuePair(user.ID)
	if err != nil {
		s.log.Error(err, "failed to issue tokens", "userID", user.ID)
		writeMessage(w, http.StatusInternalServerError, "Internal server error")

		return
	}

	s.log.V(1).Info("user logged in", "userID", user.ID, "deviceType", request.DeviceType)

	writeJSON(w, http.StatusOK, client.LoginResponse{
		Message:      "Login successful",
		AccessToken:  access,
		RefreshToken: refresh,
	})
}

func (s *Server) info(w http.ResponseWriter, r *http.Request) {
	user, err := s.store.user(currentUserID(r.Context()))
	if err != nil {
		writeMessage(w, http.StatusNotFound, "User not found")
		return
	}

	data := toUser(user)

	writeJSON(w, http.StatusOK, client.InfoResponse{
		Message: client.MessageSuccess,
		Data:    &data,
	})
}

func (s *Server) register(w http.ResponseWriter, r *http.Request) {
	var request registerRequest
	if !s.decode(w, r, &request) {
		return
	}

	user, err := s.newUser(request.FirstName, request.LastName, request.Email, request.Phone, request.Password)
	if err != nil {
		s.log.Error(err, "failed to create user")
		writeMessage(w, http.StatusInternalServerError, "Internal server error")

		return
	}

	if err := s.store.createUser(user); err != nil {
		writeMessage(w, http.StatusConflict, "User with this email already exists")
		return
	}

	writeJSON(w, http.StatusCreated, client.RegisterResponse{
		Message: client.MessageUserRegistered,
		Data:    toUser(*user),
	})
}

func (s *Server) createRole(w http.ResponseWriter, r *http.Request) {
	var request createRoleRequest
	if !s.decode(w, r, &request) {
		return
	}

	if err := validatePermissions(request.Permissions); err != nil {
		writeMessage(w, http.StatusBadRequest, err.Error())
		return
	}

	role := &roleRecord{
		ID:          uuid.NewString(),
		Name:        request.Name,
		Permissions: request.Permissions,
		CreatedAt:   s.now().UTC(),
	}

	if err := s.store.createRole(role); err != nil {
		writeMessage(w, http.StatusConflict, "Role with this name already exists")
		return
	}

	writeJSON(w, http.StatusCreated, client.RoleResponse{
		Message: client.MessageRoleCreated,
		Data:    toRole(*role),
	})
}

func (s *Server) updateUser(w http.ResponseWriter, r *http.Request) {
	var request updateUserRequest
	if !s.decode(w, r, &request) {
		return
	}

	patch := userPatch(request.DataToUpdate)
	if patch == (userPatch{}) {
		writeMessage(w, http.StatusBadRequest, "dataToUpdate is required")
		return
	}

	err := s.store.updateUser(request.ID, patch, s.now().UTC())

	switch {
	case errors.Is(err, ErrNotFound):
		writeMessage(w, http.StatusNotFound, "User not found")
	case errors.Is(err, ErrInvalidRole):
		writeMessage(w, http.StatusBadRequest, "Role not found")
	case errors.Is(err, ErrConflict):
		writeMessage(w, http.StatusConflict, "User with this email already exists")
	case err != nil:
		writeMessage(w, http.StatusInternalServerError, "Internal server error")
	default:
		writeMessage(w, http.StatusOK, client.MessageUserUpdated)
	}
}

func (s *Server) listUsers(w http.ResponseWriter, r *http.Request) {
	page, pageSize, ok := pageParams(r)
	if !ok {
		writeMessage(w, http.StatusBadRequest, "page and pageSize must be positive integers, pageSize at most "+strconv.Itoa(maxPageSize))
		return
	}

	records, total := s.store.listUsers(page, pageSize)

	users := make([]client.User, 0, len(records))
	for _, record := range records {
		users = append(users, toUser(record))
	}

	writeJSON(w, http.StatusOK, client.UserListResponse{
		Message: client.MessageSuccess,
		Data: client.UserList{
			Users: users,
			Pagination: client.Pagination{
				Page:     page,
				PageSize: pageSize,
				Total:    total,
			},
		},
	})
}

func (s *Server) listRoles(w http.ResponseWriter, r *http.Request) {
	page, pageSize, ok := pageParams(r)
	if !ok {
		writeMessage(w, http.StatusBadRequest, "page and pageSize must be positive integers, pageSize at most "+strconv.Itoa(maxPageSize))
		return
	}

	records, total := s.store.listRoles(page, pageSize)

	roles := make([]client.Role, 0, len(records))
	for _, record := range records {
		roles = append(roles, toRole(record))
	}

	writeJSON(w, http.StatusOK, client.RoleListResponse{
		Message: client.MessageSuccess,
		Data: client.RoleList{
			Roles: roles,
			Pagination: client.Pagination{
				Page:     page,
				PageSize: pageSize,
				Total:    total,
			},
		},
	})
}

func (s *Server) deleteRoles(w http.ResponseWriter, r *http.Request) {
	var request deleteRolesRequest
	if !s.decode(w, r, &request) {
		return
	}

	ids := make([]string, 0, len(request.RoleIDs))
	for _, ref := range request.RoleIDs {
		ids = append(ids, ref.RoleID)
	}

	if err := s.store.deleteRoles(ids); err != nil {
		writeMessage(w, http.StatusNotFound, "One or more roles not found")
		return
	}

	writeMessage(w, http.StatusOK, client.MessageRolesDeleted)
}

func (s *Server) accessToken(w http.ResponseWriter, r *http.Request) {
	var request accessTokenRequest
	if !s.decode(w, r, &request) {
		return
	}

	userID, err := s.tokens.validate(request.RefreshToken, tokenTypeRefresh)
	if err != nil {
		writeMessage(w, http.StatusUnauthorized, "Invalid or expired refresh token")
		return
	}

	if _, err := s.store.user(userID); err != nil {
		writeMessage(w, http.StatusUnauthorized, "User no longer exists")
		return
	}

	access, err := s.tokens.issue(userID, tokenTypeAccess)
	if err != nil {
		s.log.Error(err, "failed to issue access token", "userID", userID)
		writeMessage(w, http.StatusInternalServerError, "Internal server error")

		return
	}

	writeJSON(w, http.StatusOK, client.AccessTokenResponse{
		Message:     client.MessageAccessTokenGranted,
		AccessToken: access,
	})
}

func (s *Server) exportUsers(w http.ResponseWriter, r *http.Request) {
	users := s.store.allUsers()

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="users.csv"`)
	w.WriteHeader(http.StatusOK)

	out := csv.NewWriter(w)

	_ = out.Write(strings.Split(client.ExportHeader, ","))

	for _, user := range users {
		_ = out.Write([]string{
			user.ID,
			user.FirstName,
			user.LastName,
			user.Email,
			user.Phone,
			formatTime(user.CreatedAt),
			formatTime(user.UpdatedAt),
		})
	}

	out.Flush()

	if err := out.Error(); err != nil {
		s.log.Error(err, "failed to write export")
	}
}

func (s *Server) deleteUsers(w http.ResponseWriter, r *http.Request) {
	var request deleteUsersRequest
	if !s.decode(w, r, &request) {
		return
	}

	if slices.Contains(request.UserIDs, currentUserID(r.Context())) {
		writeMessage(w, http.StatusBadRequest, "You cannot delete your own account")
		return
	}

	if err := s.store.deleteUsers(request.UserIDs); err != nil {
		writeMessage(w, http.StatusNotFound, "One or more users not found")
		return
	}

	writeMessage(w, http.StatusOK, client.MessageUsersDeleted)
}
