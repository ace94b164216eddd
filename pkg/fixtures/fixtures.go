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

// Package fixtures provides the input data that drives the user API
// scenario. Defaults are embedded and may be overlaid from a YAML file.
package fixtures

import (
	"crypto/rand"
	_ "embed"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/pnacademy/user-api-tests/pkg/client"
)

//go:embed fixtures.yaml
var defaults []byte

var ErrInvalidFixtures = errors.New("invalid fixtures")

// Credentials identify an account that can log in.
type Credentials struct {
	FirstName string `yaml:"firstName"`
	LastName  string `yaml:"lastName"`
	Email     string `yaml:"email"`
	Password  string `yaml:"password"`
	Phone     string `yaml:"phone"`
}

// UserTemplate is the shape of users created by the scenario. Emails are
// generated per run under EmailDomain.
type UserTemplate struct {
	FirstName   string `yaml:"firstName"`
	LastName    string `yaml:"lastName"`
	EmailDomain string `yaml:"emailDomain"`
	Password    string `yaml:"password"`
	Phone       string `yaml:"phone"`
}

type UpdateTemplate struct {
	FirstName string `yaml:"firstName"`
	LastName  string `yaml:"lastName"`
	Phone     string `yaml:"phone"`
}

type RoleTemplate struct {
	NamePrefix  string          `yaml:"namePrefix"`
	Permissions map[string]bool `yaml:"permissions"`
}

// Invalid holds values that the service must reject.
type Invalid struct {
	Email        string `yaml:"email"`
	Password     string `yaml:"password"`
	WeakPassword string `yaml:"weakPassword"`
	Permission   string `yaml:"permission"`
	UserID       string `yaml:"userID"`
	RoleID       string `yaml:"roleID"`
	DeleteUserID string `yaml:"deleteUserID"`
}

type Fixtures struct {
	Admin      Credentials    `yaml:"admin"`
	DeviceType string         `yaml:"deviceType"`
	User       UserTemplate   `yaml:"user"`
	Update     UpdateTemplate `yaml:"update"`
	Role       RoleTemplate   `yaml:"role"`
	Invalid    Invalid        `yaml:"invalid"`
}

// Default returns the embedded fixtures.
func Default() (*Fixtures, error) {
	return Load("")
}

// Load returns the embedded fixtures overlaid with the contents of path, if
// path is not empty.
func Load(path string) (*Fixtures, error) {
	f := &Fixtures{}

	if err := yaml.Unmarshal(defaults, f); err != nil {
		return nil, fmt.Errorf("parsing default fixtures: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading fixtures: %w", err)
		}

		if err := yaml.Unmarshal(data, f); err != nil {
			return nil, fmt.Errorf("parsing fixtures %s: %w", path, err)
		}
	}

	if err := f.validate(); err != nil {
		return nil, err
	}

	return f, nil
}

func (f *Fixtures) validate() error {
	var missing []string

	required := []struct {
		name  string
		value string
	}{
		{"admin.email", f.Admin.Email},
		{"admin.password", f.Admin.Password},
		{"user.emailDomain", f.User.EmailDomain},
		{"user.password", f.User.Password},
		{"role.namePrefix", f.Role.NamePrefix},
		{"invalid.email", f.Invalid.Email},
		{"invalid.password", f.Invalid.Password},
		{"invalid.weakPassword", f.Invalid.WeakPassword},
		{"invalid.permission", f.Invalid.Permission},
		{"invalid.userID", f.Invalid.UserID},
		{"invalid.roleID", f.Invalid.RoleID},
		{"invalid.deleteUserID", f.Invalid.DeleteUserID},
	}

	for _, r := range required {
		if r.value == "" {
			missing = append(missing, r.name)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("%w: missing %s", ErrInvalidFixtures, strings.Join(missing, ", "))
	}

	return nil
}

// AdminLogin is the login request for the fixture admin.
func (f *Fixtures) AdminLogin() client.LoginRequest {
	return client.LoginRequest{
		Email:      f.Admin.Email,
		Password:   f.Admin.Password,
		DeviceType: f.DeviceType,
	}
}

// NewUser returns a registration request with a unique email.
func (f *Fixtures) NewUser() client.RegisterRequest {
	return client.RegisterRequest{
		FirstName: f.User.FirstName,
		LastName:  f.User.LastName,
		Email:     UniqueEmail(f.User.FirstName, f.User.EmailDomain),
		Password:  f.User.Password,
		Phone:     f.User.Phone,
	}
}

// NewRole returns a role request with a unique name.
func (f *Fixtures) NewRole() client.CreateRoleRequest {
	permissions := make(client.Permissions, len(f.Role.Permissions))

	for key, value := range f.Role.Permissions {
		permissions[key] = value
	}

	return client.CreateRoleRequest{
		Name:        UniqueName(f.Role.NamePrefix),
		Permissions: permissions,
	}
}

// UserUpdate returns the changes applied to a user, assigning roleID and a
// fresh email.
func (f *Fixtures) UserUpdate(roleID string) client.UserUpdate {
	return client.UserUpdate{
		FirstName: f.Update.FirstName,
		LastName:  f.Update.LastName,
		Email:     UniqueEmail(f.Update.FirstName, f.User.EmailDomain),
		Phone:     f.Update.Phone,
		RoleID:    roleID,
	}
}

func randomSuffix() string {
	bytes := make([]byte, 4)
	_, _ = rand.Read(bytes)

	return hex.EncodeToString(bytes)
}

// UniqueName appends a random suffix to prefix.
func UniqueName(prefix string) string {
	return fmt.Sprintf("%s-%s", prefix, randomSuffix())
}

// UniqueEmail returns an address that will not collide with earlier runs.
func UniqueEmail(local, domain string) string {
	if local == "" {
		local = "user"
	}

	return fmt.Sprintf("%s.%s@%s", strings.ToLower(local), randomSuffix(), domain)
}
