package auth_test

import (
	"context"
	"testing"

	auth "github.com/goliatone/go-auth-tokens"
	"github.com/stretchr/testify/assert"
)

func validRegistration() auth.Registration {
	return auth.Registration{
		FirstName:  "Ada",
		LastName:   "Lovelace",
		Username:   "ada",
		Email:      "ada@x.com",
		Password:   "pw123-secret",
		Field:      auth.FieldEmail,
		Roles:      []string{"Admin"},
		VerifyCode: "ABC",
	}
}

func TestRegistrationValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*auth.Registration)
		wantErr bool
	}{
		{
			name:   "valid email registration",
			mutate: func(r *auth.Registration) {},
		},
		{
			name: "valid username registration without email",
			mutate: func(r *auth.Registration) {
				r.Field = auth.FieldUserName
				r.Email = ""
			},
		},
		{
			name:    "missing first name",
			mutate:  func(r *auth.Registration) { r.FirstName = "" },
			wantErr: true,
		},
		{
			name:    "missing last name",
			mutate:  func(r *auth.Registration) { r.LastName = "" },
			wantErr: true,
		},
		{
			name:    "missing password",
			mutate:  func(r *auth.Registration) { r.Password = "" },
			wantErr: true,
		},
		{
			name: "missing email when the field is EMAIL",
			mutate: func(r *auth.Registration) {
				r.Field = auth.FieldEmail
				r.Email = ""
			},
			wantErr: true,
		},
		{
			name: "missing username when the field is USERNAME",
			mutate: func(r *auth.Registration) {
				r.Field = auth.FieldUserName
				r.Username = ""
			},
			wantErr: true,
		},
		{
			name:    "malformed email",
			mutate:  func(r *auth.Registration) { r.Email = "not-an-email" },
			wantErr: true,
		},
		{
			name: "email optional when the field is USERNAME",
			mutate: func(r *auth.Registration) {
				r.Field = auth.FieldUserName
				r.Email = ""
				r.Username = "ada"
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := validRegistration()
			tt.mutate(&r)

			err := r.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestRegistrarRejectsEmptyRoleSet(t *testing.T) {
	registrar := auth.NewRegistrar(stubRepoManager{}, "console")

	r := validRegistration()
	r.Roles = nil

	_, err := registrar.Register(context.Background(), r)
	assert.ErrorIs(t, err, auth.ErrNoRolesSpecified)
}

func TestRegistrarRejectsUnknownField(t *testing.T) {
	registrar := auth.NewRegistrar(stubRepoManager{}, "console")

	r := validRegistration()
	r.Field = auth.AuthenticationField("phone")

	_, err := registrar.Register(context.Background(), r)
	assert.Error(t, err)
}
