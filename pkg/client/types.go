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

package client

// Messages returned by the service on success.
const (
	MessageSuccess            = "success"
	MessageUserRegistered     = "User registered successfully"
	MessageRoleCreated        = "Role Created successfully"
	MessageUserUpdated        = "User Updated successfully"
	MessageRolesDeleted       = "Roles Deleted successfully"
	MessageAccessTokenGranted = "New Access Token granted successfully"
	MessageUsersDeleted       = "Users Deleted successfully"
)

// ExportHeader is the first line of the CSV user export.
const ExportHeader = "id,first_name,last_name,email,phone,createdAt,updatedAt"

// DefaultDeviceType is sent on login when the caller does not choose one.
const DefaultDeviceType = "web"

// Permission keys recognised by the service.
const (
	PermissionManageAssessment   = "canManageAssessment"
	PermissionManageUser         = "canManageUser"
	PermissionManageRole         = "canManageRole"
	PermissionManageNotification = "canManageNotification"
	PermissionManageLocalGroup   = "canManageLocalGroup"
	PermissionManageReports      = "canManageReports"
	PermissionAttemptAssessment  = "canAttemptAssessment"
	PermissionViewReport         = "canViewReport"
	PermissionManageMyAccount    = "canManageMyAccount"
	PermissionViewNotification   = "canViewNotification"
)

// PermissionKeys lists every permission key the service accepts.
func PermissionKeys() []string {
	return []string{
		PermissionManageAssessment,
		PermissionManageUser,
		PermissionManageRole,
		PermissionManageNotification,
		PermissionManageLocalGroup,
		PermissionManageReports,
		PermissionAttemptAssessment,
		PermissionViewReport,
		PermissionManageMyAccount,
		PermissionViewNotification,
	}
}

// Permissions maps permission keys to grants. It is a plain map so callers
// can send keys the service does not know about.
type Permissions map[string]bool

// AllPermissions grants every known permission.
func AllPermissions() Permissions {
	keys := PermissionKeys()
	p := make(Permissions, len(keys))

	for _, key := range keys {
		p[key] = true
	}

	return p
}

// Session carries the values produced by one call and consumed by later ones.
// It is passed by value; the With* helpers return modified copies.
type Session struct {
	AccessToken  string
	RefreshToken string
	UserID       string
	RoleID       string
}

func (s Session) WithTokens(accessToken, refreshToken string) Session {
	s.AccessToken = accessToken
	s.RefreshToken = refreshToken

	return s
}

func (s Session) WithAccessToken(accessToken string) Session {
	s.AccessToken = accessToken

	return s
}

func (s Session) WithUserID(id string) Session {
	s.UserID = id

	return s
}

func (s Session) WithRoleID(id string) Session {
	s.RoleID = id

	return s
}

type LoginRequest struct {
	Email      string `json:"email,omitempty"`
	Password   string `json:"password,omitempty"`
	DeviceType string `json:"deviceType,omitempty"`
}

type LoginResponse struct {
	Message      string `json:"message,omitempty"`
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// User is a user record as returned by the service.
type User struct {
	ID        string `json:"id"`
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
	Email     string `json:"email,omitempty"`
	Phone     string `json:"phone,omitempty"`
	RoleID    string `json:"roleId,omitempty"`
	CreatedAt string `json:"createdAt,omitempty"`
	UpdatedAt string `json:"updatedAt,omitempty"`
}

type InfoResponse struct {
	Message string `json:"message"`
	Data    *User  `json:"data,omitempty"`
}

type RegisterRequest struct {
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
	Email     string `json:"email,omitempty"`
	Password  string `json:"password,omitempty"`
	Phone     string `json:"phone,omitempty"`
}

type RegisterResponse struct {
	Message string `json:"message"`
	Data    User   `json:"data"`
}

// Role is a role record as returned by the service.
type Role struct {
	ID          string      `json:"id"`
	Name        string      `json:"name,omitempty"`
	Permissions Permissions `json:"permissions,omitempty"`
}

type CreateRoleRequest struct {
	Name        string      `json:"name,omitempty"`
	Permissions Permissions `json:"permissions,omitempty"`
}

type RoleResponse struct {
	Message string `json:"message"`
	Data    Role   `json:"data"`
}

// UserUpdate holds the fields to change; empty fields are left untouched.
type UserUpdate struct {
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
	Email     string `json:"email,omitempty"`
	Phone     string `json:"phone,omitempty"`
	RoleID    string `json:"roleId,omitempty"`
}

type UpdateUserRequest struct {
	ID           string     `json:"id"`
	DataToUpdate UserUpdate `json:"dataToUpdate"`
}

type RoleReference struct {
	RoleID string `json:"roleId"`
}

type DeleteRolesRequest struct {
	RoleIDs []RoleReference `json:"roleIds"`
}

type DeleteUsersRequest struct {
	UserIDs []string `json:"userIds"`
}

type AccessTokenRequest struct {
	RefreshToken string `json:"refreshToken"`
}

type AccessTokenResponse struct {
	Message     string `json:"message"`
	AccessToken string `json:"accessToken,omitempty"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

// Pagination describes the page returned by a listing.
type Pagination struct {
	Page     int `json:"page"`
	PageSize int `json:"pageSize"`
	Total    int `json:"total"`
}

type UserList struct {
	Users []User `json:"users"`
	Pagination
}

type UserListResponse struct {
	Message string   `json:"message"`
	Data    UserList `json:"data"`
}

type RoleList struct {
	Roles []Role `json:"roles"`
	Pagination
}

type RoleListResponse struct {
	Message string   `json:"message"`
	Data    RoleList `json:"data"`
}
