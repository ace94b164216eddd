package api

import (
	"github.com/pnacademy/user-api-tests/pkg/client"
	"github.com/pnacademy/user-api-tests/pkg/fixtures"
)

func GenerateTestID() string {
	return fixtures.UniqueName("test")
}

// UserPayloadBuilder builds registration payloads for testing.
type UserPayloadBuilder struct {
	payload client.RegisterRequest
}

// NewUserPayload creates a user payload builder with a unique email and the
// fixture defaults.
func NewUserPayload(f *fixtures.Fixtures) *UserPayloadBuilder {
	return &UserPayloadBuilder{
		payload: f.NewUser(),
	}
}

func (b *UserPayloadBuilder) WithName(first, last string) *UserPayloadBuilder {
	b.payload.FirstName = first
	b.payload.LastName = last

	return b
}

func (b *UserPayloadBuilder) WithEmail(email string) *UserPayloadBuilder {
	b.payload.Email = email
	return b
}

func (b *UserPayloadBuilder) WithPassword(password string) *UserPayloadBuilder {
	b.payload.Password = password
	return b
}

func (b *UserPayloadBuilder) WithPhone(phone string) *UserPayloadBuilder {
	b.payload.Phone = phone
	return b
}

func (b *UserPayloadBuilder) Build() client.RegisterRequest {
	return b.payload
}

// RolePayloadBuilder builds role payloads for testing.
type RolePayloadBuilder struct {
	payload client.CreateRoleRequest
}

// NewRolePayload creates a role payload builder with a unique name and the
// fixture permissions.
func NewRolePayload(f *fixtures.Fixtures) *RolePayloadBuilder {
	return &RolePayloadBuilder{
		payload: f.NewRole(),
	}
}

func (b *RolePayloadBuilder) WithName(name string) *RolePayloadBuilder {
	b.payload.Name = name
	return b
}

// WithPermission sets a single permission, adding the key if it is not
// already present.
func (b *RolePayloadBuilder) WithPermission(key string, granted bool) *RolePayloadBuilder {
	if b.payload.Permissions == nil {
		b.payload.Permissions = client.Permissions{}
	}

	b.payload.Permissions[key] = granted
	return b
}

// WithoutPermissions sends no permission map at all.
func (b *RolePayloadBuilder) WithoutPermissions() *RolePayloadBuilder {
	b.payload.Permissions = nil
	return b
}

func (b *RolePayloadBuilder) Build() client.CreateRoleRequest {
	return b.payload
}
