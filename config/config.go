package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	log "github.com/sirupsen/logrus"
)

type Config struct {
	Debug                    bool          `envconfig:"debug"`
	Port                     int           `envconfig:"port" default:"8080"`
	Env                      string        `envconfig:"env" default:"dev"`
	PostgresHost             string        `envconfig:"postgres_host"`
	PostgresUser             string        `envconfig:"postgres_user"`
	PostgresDB               string        `envconfig:"postgres_db"`
	PostgresPort             int           `envconfig:"postgres_port" default:"5432"`
	PostgresPassword         string        `envconfig:"postgres_password"`
	PostgresTimeZone         string        `envconfig:"postgres_timezone" default:"UTC"`
	JWTSecret                string        `envconfig:"jwt_secret"`
	AccessTokenTTL           time.Duration `envconfig:"access_token_ttl" default:"24h"`
	MailgunApiKey            string        `envconfig:"mg_public_api_key"`
	MgDomain                 string        `envconfig:"mg_domain"`
	MgEmailFrom              string        `envconfig:"email_from"`
	BaseUrl                  string        `envconfig:"base_url"`
	FirebaseCredentialsFile  string        `envconfig:"firebase_credentials_file"`
	AWSRegion                string        `envconfig:"aws_region"`
	AWSAccessKeyID           string        `envconfig:"aws_access_key_id"`
	AWSSecretAccessKey       string        `envconfig:"aws_secret_access_key"`
	AWSBucket                string        `envconfig:"aws_bucket"`
	AccessControlAllowOrigin string        `envconfig:"access_control_allow_origin"`
	LoginRateLimit           uint          `envconfig:"login_rate_limit" default:"5"`
	LoginRateWindow          time.Duration `envconfig:"login_rate_window" default:"1m"`
}

// IsProd reports whether the service runs with production settings.
func (c *Config) IsProd() bool {
	return c.Env == "prod"
}

func Load() (*Config, error) {
	env := os.Getenv("GIN_MODE")
	if env != "release" {
		if err := godotenv.Load("./.env"); err != nil {
			log.Printf("couldn't load env vars: %v", err)
		}
	}

	c := &Config{}
	err := envconfig.Process("studyfocus", c)
	if err != nil {
		return nil, err
	}
	return c, nil
}
