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

import (
	"context"
	"fmt"
	"net/http"
)

// Login exchanges credentials for an access and refresh token pair.
func (c *Client) Login(ctx context.Context, request LoginRequest) (*LoginResponse, error) {
	var response LoginResponse

	if err := c.callJSON(ctx, http.MethodPost, c.endpoints.Login(), request, &response); err != nil {
		return nil, fmt.Errorf("logging in: %w", err)
	}

	return &response, nil
}

// Info returns the profile of the authenticated user.
func (c *Client) Info(ctx context.Context) (*InfoResponse, error) {
	var response InfoResponse

	if err := c.callJSON(ctx, http.MethodGet, c.endpoints.Info(), nil, &response); err != nil {
		return nil, fmt.Errorf("getting user info: %w", err)
	}

	return &response, nil
}

// Register creates a new user.
func (c *Client) Register(ctx context.Context, request RegisterRequest) (*RegisterResponse, error) {
	var response RegisterResponse

	if err := c.callJSON(ctx, http.MethodPost, c.endpoints.Register(), request, &response); err != nil {
		return nil, fmt.Errorf("registering user: %w", err)
	}

	return &response, nil
}

// CreateRole creates a new role.
func (c *Client) CreateRole(ctx context.Context, request CreateRoleRequest) (*RoleResponse, error) {
	var response RoleResponse

	if err := c.callJSON(ctx, http.MethodPost, c.endpoints.Role(), request, &response); err != nil {
		return nil, fmt.Errorf("creating role: %w", err)
	}

	return &response, nil
}

// UpdateUser patches an existing user.
func (c *Client) UpdateUser(ctx context.Context, request UpdateUserRequest) (*MessageResponse, error) {
	var response MessageResponse

	if err := c.callJSON(ctx, http.MethodPatch, c.endpoints.UpdateUser(), request, &response); err != nil {
		return nil, fmt.Errorf("updating user %q: %w", request.ID, err)
	}

	return &response, nil
}

// ListUsers returns a page of users.
func (c *Client) ListUsers(ctx context.Context, params *PageParams) (*UserListResponse, error) {
	path, err := c.endpoints.ListUsers(params)
	if err != nil {
		return nil, err
	}

	var response UserListResponse

	if err := c.callJSON(ctx, http.MethodGet, path, nil, &response); err != nil {
		return nil, fmt.Errorf("listing users: %w", err)
	}

	return &response, nil
}

// ListRoles returns a page of roles.
func (c *Client) ListRoles(ctx context.Context, params *PageParams) (*RoleListResponse, error) {
	path, err := c.endpoints.ListRoles(params)
	if err != nil {
		return nil, err
	}

	var response RoleListResponse

	if err := c.callJSON(ctx, http.MethodGet, path, nil, &response); err != nil {
		return nil, fmt.Errorf("listing roles: %w", err)
	}

	return &response, nil
}

// DeleteRoles deletes the given roles. The service rejects the whole request
// if any of them does not exist.
func (c *Client) DeleteRoles(ctx context.Context, roleIDs ...string) (*MessageResponse, error) {
	request := DeleteRolesRequest{
		RoleIDs: make([]RoleReference, 0, len(roleIDs)),
	}

	for _, id := range roleIDs {
		request.RoleIDs = append(request.RoleIDs, RoleReference{RoleID: id})
	}

	var response MessageResponse

	if err := c.callJSON(ctx, http.MethodDelete, c.endpoints.Role(), request, &response); err != nil {
		return nil, fmt.Errorf("deleting roles %v: %w", roleIDs, err)
	}

	return &response, nil
}

// RefreshAccessToken trades a refresh token for a new access token.
func (c *Client) RefreshAccessToken(ctx context.Context, refreshToken string) (*AccessTokenResponse, error) {
	var response AccessTokenResponse

	if err := c.callJSON(ctx, http.MethodPost, c.endpoints.AccessToken(), AccessTokenRequest{RefreshToken: refreshToken}, &response); err != nil {
		return nil, fmt.Errorf("refreshing access token: %w", err)
	}

	return &response, nil
}

// ExportUsers returns the CSV export of all users.
func (c *Client) ExportUsers(ctx context.Context) (string, error) {
	resp, err := c.call(ctx, http.MethodGet, c.endpoints.ExportUsers(), nil)
	if err != nil {
		return "", fmt.Errorf("exporting users: %w", err)
	}

	return resp.BodyString(), nil
}

// DeleteUsers deletes the given users. The service rejects the whole request
// if any of them does not exist.
func (c *Client) DeleteUsers(ctx context.Context, userIDs ...string) (*MessageResponse, error) {
	var response MessageResponse

	if err := c.callJSON(ctx, http.MethodDelete, c.endpoints.DeleteUsers(), DeleteUsersRequest{UserIDs: userIDs}, &response); err != nil {
		return nil, fmt.Errorf("deleting users %v: %w", userIDs, err)
	}

	return &response, nil
}
