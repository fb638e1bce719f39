package variables

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"time"

	"github.com/Netflix/go-env"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

const (
	TWILIO_ACCOUNT_SID_NAME    = "TWILIO_ACCOUNT_SID"
	TWILIO_API_KEY_SID_NAME    = "TWILIO_API_KEY_SID"
	TWILIO_API_KEY_SECRET_NAME = "TWILIO_API_KEY_SECRET"

	HTTP_PORT_NAME = "PORT"
)

var ErrInvalidConfig = errors.New("invalid config")

// Config is read once at startup and never mutated afterwards.
type Config struct {
	TwilioAccountSID   string `env:"TWILIO_ACCOUNT_SID,required=true" validate:"required"`
	TwilioAPIKeySID    string `env:"TWILIO_API_KEY_SID,required=true" validate:"required"`
	TwilioAPIKeySecret string `env:"TWILIO_API_KEY_SECRET,required=true" validate:"required"`

	HTTPHost string `env:"HTTP_HOST"`
	HTTPPort int    `env:"PORT,default=8081" validate:"min=1,max=65535"`

	LogLevel  string `env:"LOG_LEVEL,default=info" validate:"oneof=debug info warn error"`
	StaticDir string `env:"STATIC_DIR,default=build"`

	ProvisionTimeout time.Duration `env:"PROVISION_TIMEOUT,default=10s" validate:"gt=0"`
	ShutdownTimeout  time.Duration `env:"SHUTDOWN_TIMEOUT,default=5s" validate:"gt=0"`
}

func (c *Config) HTTPAddr() string {
	return fmt.Sprintf("%s:%d", c.HTTPHost, c.HTTPPort)
}

var validate = validator.New()

func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return errors.Join(ErrInvalidConfig, err)
	}
	return nil
}

// LoadDotEnv applies the given dotenv files to the process environment.
// Missing files are skipped, variables already set are left untouched.
func LoadDotEnv(filenames ...string) error {
	if len(filenames) == 0 {
		filenames = []string{".env"}
	}
	for _, filename := range filenames {
		if err := godotenv.Load(filename); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("unable load %s. Err: %w", filename, err)
		}
		log.Printf("[dotenv]: loaded %s", filename)
	}
	return nil
}

func FromEnviron() (*Config, error) {
	config := &Config{}
	if _, err := env.UnmarshalFromEnviron(config); err != nil {
		return nil, errors.Join(ErrInvalidConfig, err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	log.Printf("[%s]: %s", TWILIO_ACCOUNT_SID_NAME, config.TwilioAccountSID)
	log.Printf("[%s]: %s", TWILIO_API_KEY_SID_NAME, config.TwilioAPIKeySID)
	log.Printf("[%s]: %d", HTTP_PORT_NAME, config.HTTPPort)
	return config, nil
}

// Load is the fx constructor: dotenv first, then environ.
func Load() (*Config, error) {
	if err := LoadDotEnv(); err != nil {
		return nil, err
	}
	return FromEnviron()
}
