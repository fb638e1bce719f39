package identity

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/romashorodok/room-token-server/pkg/variables"
)

// SigningCredentials identify the account and the API key that sign tokens.
type SigningCredentials struct {
	AccountSID string `validate:"required,len=34,startswith=AC"`
	KeySID     string `validate:"required,len=34,startswith=SK"`
	Secret     string `validate:"required"`
}

var validate = validator.New()

func (c SigningCredentials) Validate() error {
	if err := validate.Struct(c); err != nil {
		return errors.Join(ErrInvalidCredentials, err)
	}
	return nil
}

// NewSigningCredentials fails at startup rather than on the first request.
func NewSigningCredentials(config *variables.Config) (SigningCredentials, error) {
	creds := SigningCredentials{
		AccountSID: config.TwilioAccountSID,
		KeySID:     config.TwilioAPIKeySID,
		Secret:     config.TwilioAPIKeySecret,
	}
	if err := creds.Validate(); err != nil {
		return SigningCredentials{}, err
	}
	return creds, nil
}
