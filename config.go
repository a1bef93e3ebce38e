package auth

import (
	"github.com/caarlos0/env/v11"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	goerrors "github.com/goliatone/go-errors"
	"github.com/joho/godotenv"
)

// ProviderConfig is the concrete Config implementation. It is a plain value
// handed to constructors; there is no process-wide configuration state.
type ProviderConfig struct {
	AppName         string   `env:"AUTH_APP_NAME" json:"app_name"`
	SigningKey      string   `env:"AUTH_SIGNING_KEY" json:"signing_key"`
	Issuer          string   `env:"AUTH_TOKEN_ISSUER" json:"issuer"`
	Audience        []string `env:"AUTH_TOKEN_AUDIENCE" json:"audience"`
	TokenExpiration int      `env:"AUTH_TOKEN_EXPIRATION_MINUTES" envDefault:"30" json:"token_expiration"`
}

var _ Config = ProviderConfig{}

func (c ProviderConfig) GetAppName() string { return c.AppName }

func (c ProviderConfig) GetSigningKey() string { return c.SigningKey }

func (c ProviderConfig) GetIssuer() string { return c.Issuer }

func (c ProviderConfig) GetAudience() []string { return c.Audience }

// GetTokenExpiration returns the token lifetime in minutes.
func (c ProviderConfig) GetTokenExpiration() int { return c.TokenExpiration }

func (c ProviderConfig) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.AppName, validation.Required),
		validation.Field(&c.SigningKey, validation.Required, validation.Length(32, 0)),
		validation.Field(&c.Issuer, validation.Required),
		validation.Field(&c.TokenExpiration, validation.Min(1)),
	)
}

// LoadConfig builds a ProviderConfig from the environment. Optional env files
// are loaded first, making local development setups explicit rather than
// relying on ambient state.
func LoadConfig(envFiles ...string) (ProviderConfig, error) {
	if len(envFiles) > 0 {
		if err := godotenv.Load(envFiles...); err != nil {
			return ProviderConfig{}, goerrors.Wrap(err, goerrors.CategoryOperation, "failed to load env file")
		}
	}

	cfg, err := env.ParseAs[ProviderConfig]()
	if err != nil {
		return ProviderConfig{}, goerrors.Wrap(err, goerrors.CategoryOperation, "failed to parse environment configuration")
	}

	if err := cfg.Validate(); err != nil {
		return ProviderConfig{}, goerrors.Wrap(err, goerrors.CategoryValidation, "invalid provider configuration").
			WithTextCode(TextCodeValidation)
	}

	return cfg, nil
}
