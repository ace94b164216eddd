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

// Package scenario is the end to end check of the user-management API: log
// in, manage users and roles, refresh the token and export, in that order.
package scenario

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/pnacademy/user-api-tests/pkg/client"
	"github.com/pnacademy/user-api-tests/pkg/fixtures"
	"github.com/pnacademy/user-api-tests/pkg/runner"
)

// Case names, in run order.
const (
	CaseLogin                  = "User Login"
	CaseLoginInvalid           = "User Login - Invalid Credentials"
	CaseLoginMissingFields     = "User Login - Missing Fields"
	CaseUserInfo               = "Get User Info"
	CaseCreateUser             = "Create User"
	CaseCreateUserMissing      = "Create User - Missing Required Fields"
	CaseCreateUserWeakPassword = "Create User - Weak Password"
	CaseCreateRole             = "Create Role"
	CaseCreateRoleInvalid      = "Create Role - Invalid Permissions"
	CaseUpdateUser             = "Update User"
	CaseUpdateUserMissing      = "Update User - Non-existent User"
	CaseListUsers              = "Get Bulk Users"
	CaseListRoles              = "Get Roles"
	CaseDeleteRole             = "Delete Role"
	CaseDeleteRoleMissing      = "Delete Role - Non-existent Role"
	CaseNewAccessToken         = "New Access Token"
	CaseExportUsers            = "Export Users"
	CaseDeleteUsers            = "Delete Users"
	CaseDeleteUsersMissing     = "Delete Users - Non-existent User"
)

// Name identifies the scenario in reports.
const Name = "User API Tests"

var ErrUnexpectedResponse = errors.New("unexpected response")

const firstPage, defaultPageSize = 1, 10

type Scenario struct {
	client   *client.Client
	fixtures *fixtures.Fixtures
}

func New(c *client.Client, f *fixtures.Fixtures) *Scenario {
	return &Scenario{
		client:   c,
		fixtures: f,
	}
}

func expectMessage(got, want string) error {
	if got != want {
		return fmt.Errorf("%w: message %q, expected %q", ErrUnexpectedResponse, got, want)
	}

	return nil
}

func expectNotEmpty(field, value string) error {
	if value == "" {
		return fmt.Errorf("%w: %s is empty", ErrUnexpectedResponse, field)
	}

	return nil
}

// as returns the client bound to the session's access token.
func (s *Scenario) as(session client.Session) *client.Client {
	return s.client.Authenticate(session.AccessToken)
}

func firstPageParams() *client.PageParams {
	page, pageSize := firstPage, defaultPageSize

	return &client.PageParams{Page: &page, PageSize: &pageSize}
}

// Cases returns the ordered cases with their dependencies.
//
//nolint:funlen,maintidx
func (s *Scenario) Cases() []runner.Case[client.Session] {
	f := s.fixtures

	return []runner.Case[client.Session]{
		{
			Name: CaseLogin,
			Run: func(ctx context.Context, session client.Session) (client.Session, error) {
				response, err := s.client.Login(ctx, f.AdminLogin())
				if err != nil {
					return session, err
				}

				if err := errors.Join(expectNotEmpty("accessToken", response.AccessToken), expectNotEmpty("refreshToken", response.RefreshToken)); err != nil {
					return session, err
				}

				return session.WithTokens(response.AccessToken, response.RefreshToken), nil
			},
		},
		{
			Name: CaseLoginInvalid,
			Run: func(ctx context.Context, session client.Session) (client.Session, error) {
				_, err := s.client.Login(ctx, client.LoginRequest{
					Email:      f.Invalid.Email,
					Password:   f.Invalid.Password,
					DeviceType: f.DeviceType,
				})

				return session, runner.ExpectRejection(err)
			},
		},
		{
			Name: CaseLoginMissingFields,
			Run: func(ctx context.Context, session client.Session) (client.Session, error) {
				_, err := s.client.Login(ctx, client.LoginRequest{Email: f.Admin.Email})

				return session, runner.ExpectRejection(err)
			},
		},
		{
			Name:      CaseUserInfo,
			DependsOn: []string{CaseLogin},
			Run: func(ctx context.Context, session client.Session) (client.Session, error) {
				response, err := s.as(session).Info(ctx)
				if err != nil {
					return session, err
				}

				return session, expectMessage(response.Message, client.MessageSuccess)
			},
		},
		{
			Name:      CaseCreateUser,
			DependsOn: []string{CaseLogin},
			Run: func(ctx context.Context, session client.Session) (client.Session, error) {
				response, err := s.as(session).Register(ctx, f.NewUser())
				if err != nil {
					return session, err
				}

				if err := errors.Join(expectMessage(response.Message, client.MessageUserRegistered), expectNotEmpty("data.id", response.Data.ID)); err != nil {
					return session, err
				}

				return session.WithUserID(response.Data.ID), nil
			},
		},
		{
			Name:      CaseCreateUserMissing,
			DependsOn: []string{CaseLogin},
			Run: func(ctx context.Context, session client.Session) (client.Session, error) {
				_, err := s.as(session).Register(ctx, client.RegisterRequest{
					FirstName: f.User.FirstName,
					LastName:  f.User.LastName,
				})

				return session, runner.ExpectRejection(err)
			},
		},
		{
			Name:      CaseCreateUserWeakPassword,
			DependsOn: []string{CaseLogin},
			Run: func(ctx context.Context, session client.Session) (client.Session, error) {
				request := f.NewUser()
				request.Password = f.Invalid.WeakPassword

				_, err := s.as(session).Register(ctx, request)

				return session, runner.ExpectRejection(err)
			},
		},
		{
			Name:      CaseCreateRole,
			DependsOn: []string{CaseLogin},
			Run: func(ctx context.Context, session client.Session) (client.Session, error) {
				response, err := s.as(session).CreateRole(ctx, f.NewRole())
				if err != nil {
					return session, err
				}

				if err := errors.Join(expectMessage(response.Message, client.MessageRoleCreated), expectNotEmpty("data.id", response.Data.ID)); err != nil {
					return session, err
				}

				return session.WithRoleID(response.Data.ID), nil
			},
		},
		{
			Name:      CaseCreateRoleInvalid,
			DependsOn: []string{CaseLogin},
			Run: func(ctx context.Context, session client.Session) (client.Session, error) {
				_, err := s.as(session).CreateRole(ctx, client.CreateRoleRequest{
					Name:        fixtures.UniqueName("invalid-role"),
					Permissions: client.Permissions{f.Invalid.Permission: true},
				})

				return session, runner.ExpectRejection(err)
			},
		},
		{
			Name:      CaseUpdateUser,
			DependsOn: []string{CaseCreateUser, CaseCreateRole},
			Run: func(ctx context.Context, session client.Session) (client.Session, error) {
				response, err := s.as(session).UpdateUser(ctx, client.UpdateUserRequest{
					ID:           session.UserID,
					DataToUpdate: f.UserUpdate(session.RoleID),
				})
				if err != nil {
					return session, err
				}

				return session, expectMessage(response.Message, client.MessageUserUpdated)
			},
		},
		{
			Name:      CaseUpdateUserMissing,
			DependsOn: []string{CaseLogin},
			Run: func(ctx context.Context, session client.Session) (client.Session, error) {
				_, err := s.as(session).UpdateUser(ctx, client.UpdateUserRequest{
					ID: f.Invalid.UserID,
					DataToUpdate: client.UserUpdate{
						FirstName: "John",
						LastName:  "Doe",
					},
				})

				return session, runner.ExpectRejection(err)
			},
		},
		{
			Name:      CaseListUsers,
			DependsOn: []string{CaseLogin},
			Run: func(ctx context.Context, session client.Session) (client.Session, error) {
				response, err := s.as(session).ListUsers(ctx, firstPageParams())
				if err != nil {
					return session, err
				}

				return session, expectMessage(response.Message, client.MessageSuccess)
			},
		},
		{
			Name:      CaseListRoles,
			DependsOn: []string{CaseLogin},
			Run: func(ctx context.Context, session client.Session) (client.Session, error) {
				response, err := s.as(session).ListRoles(ctx, firstPageParams())
				if err != nil {
					return session, err
				}

				return session, expectMessage(response.Message, client.MessageSuccess)
			},
		},
		{
			Name:      CaseDeleteRole,
			DependsOn: []string{CaseCreateRole},
			Run: func(ctx context.Context, session client.Session) (client.Session, error) {
				response, err := s.as(session).DeleteRoles(ctx, session.RoleID)
				if err != nil {
					return session, err
				}

				return session, expectMessage(response.Message, client.MessageRolesDeleted)
			},
		},
		{
			Name:      CaseDeleteRoleMissing,
			DependsOn: []string{CaseLogin},
			Run: func(ctx context.Context, session client.Session) (client.Session, error) {
				_, err := s.as(session).DeleteRoles(ctx, f.Invalid.RoleID)

				return session, runner.ExpectRejection(err)
			},
		},
		{
			Name:      CaseNewAccessToken,
			DependsOn: []string{CaseLogin},
			Run: func(ctx context.Context, session client.Session) (client.Session, error) {
				response, err := s.client.RefreshAccessToken(ctx, session.RefreshToken)
				if err != nil {
					return session, err
				}

				if err := expectMessage(response.Message, client.MessageAccessTokenGranted); err != nil {
					return session, err
				}

				if response.AccessToken != "" {
					session = session.WithAccessToken(response.AccessToken)
				}

				return session, nil
			},
		},
		{
			Name:      CaseExportUsers,
			DependsOn: []string{CaseLogin},
			Run: func(ctx context.Context, session client.Session) (client.Session, error) {
				export, err := s.as(session).ExportUsers(ctx)
				if err != nil {
					return session, err
				}

				if !strings.Contains(export, client.ExportHeader) {
					return session, fmt.Errorf("%w: export does not contain header %q", ErrUnexpectedResponse, client.ExportHeader)
				}

				return session, nil
			},
		},
		{
			Name:      CaseDeleteUsers,
			DependsOn: []string{CaseCreateUser},
			Run: func(ctx context.Context, session client.Session) (client.Session, error) {
				response, err := s.as(session).DeleteUsers(ctx, session.UserID)
				if err != nil {
					return session, err
				}

				return session, expectMessage(response.Message, client.MessageUsersDeleted)
			},
		},
		{
			Name:      CaseDeleteUsersMissing,
			DependsOn: []string{CaseLogin},
			Run: func(ctx context.Context, session client.Session) (client.Session, error) {
				_, err := s.as(session).DeleteUsers(ctx, f.Invalid.DeleteUserID)

				return session, runner.ExpectRejection(err)
			},
		},
	}
}

// Runner returns a runner over the scenario's cases.
func (s *Scenario) Runner(options runner.Options) (*runner.Runner[client.Session], error) {
	return runner.New(s.Cases(), options)
}

// Run executes the scenario from an empty session.
func (s *Scenario) Run(ctx context.Context, options runner.Options) (*runner.RunResult, error) {
	r, err := s.Runner(options)
	if err != nil {
		return nil, err
	}

	return r.Run(ctx, Name, client.Session{}), nil
}
