package identity

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lestrrat-go/jwx/v2/jwa"
	"github.com/lestrrat-go/jwx/v2/jws"
	"github.com/lestrrat-go/jwx/v2/jwt"
	"github.com/romashorodok/room-token-server/pkg/protocol"
	"go.uber.org/fx"
)

const (
	_CONTENT_TYPE  = "twilio-fpa;v=1"
	_GRANTS_CLAIM  = "grants"
	_TOKEN_EXPIRES = time.Hour
)

// IdentityGenerator returns a fresh participant identity on every call.
type IdentityGenerator func() string

// Clock returns the issuance time.
type Clock func() time.Time

type VideoGrant struct {
	Room string `json:"room"`
}

type Grants struct {
	Identity string      `json:"identity"`
	Video    *VideoGrant `json:"video,omitempty"`
}

type AccessToken struct {
	JWT       string
	Identity  string
	RoomName  protocol.RoomName
	ExpiresAt time.Time
}

type TokenService struct {
	creds       SigningCredentials
	newIdentity IdentityGenerator
	now         Clock
}

func signToken(secret string, headers jws.Headers, token jwt.Token) (string, error) {
	byteToken, err := jwt.Sign(token, jwt.WithKey(jwa.HS256, []byte(secret), jws.WithProtectedHeaders(headers)))
	if err != nil {
		return "", err
	}
	return string(byteToken), nil
}

// IssueToken mints a token for a new anonymous participant that may publish
// and subscribe in roomName. It makes no remote call.
func (s *TokenService) IssueToken(roomName protocol.RoomName) (*AccessToken, error) {
	if roomName == "" {
		return nil, ErrRoomNameEmpty
	}

	identity := s.newIdentity()
	if identity == "" {
		return nil, ErrIdentityEmpty
	}

	issuedAt := s.now().Truncate(time.Second)
	expiresAt := issuedAt.Add(_TOKEN_EXPIRES)

	token, err := jwt.NewBuilder().
		JwtID(fmt.Sprintf("%s-%d", s.creds.KeySID, issuedAt.Unix())).
		Issuer(s.creds.KeySID).
		Subject(s.creds.AccountSID).
		IssuedAt(issuedAt).
		Expiration(expiresAt).
		Claim(_GRANTS_CLAIM, &Grants{
			Identity: identity,
			Video:    &VideoGrant{Room: roomName},
		}).
		Build()
	if err != nil {
		return nil, fmt.Errorf("unable build token. Error: %w", err)
	}

	headers := jws.NewHeaders()
	if err = headers.Set(jws.ContentTypeKey, _CONTENT_TYPE); err != nil {
		return nil, fmt.Errorf("unable set header `cty`. Error: %w", err)
	}
	if err = headers.Set(jws.TypeKey, "JWT"); err != nil {
		return nil, fmt.Errorf("unable set header `typ`. Error: %w", err)
	}

	signed, err := signToken(s.creds.Secret, headers, token)
	if err != nil {
		return nil, fmt.Errorf("unable sign token. Error: %w", err)
	}

	return &AccessToken{
		JWT:       signed,
		Identity:  identity,
		RoomName:  roomName,
		ExpiresAt: expiresAt,
	}, nil
}

func (s *TokenService) WithIdentityGenerator(gen IdentityGenerator) *TokenService {
	s.newIdentity = gen
	return s
}

func (s *TokenService) WithClock(clock Clock) *TokenService {
	s.now = clock
	return s
}

type NewTokenServiceParams struct {
	fx.In

	Credentials SigningCredentials
}

func NewTokenService(params NewTokenServiceParams) *TokenService {
	return &TokenService{
		creds:       params.Credentials,
		newIdentity: uuid.NewString,
		now:         time.Now,
	}
}
