package config

import "time"

type Config struct {
	Environment Environment
	Log         Log
	HTTP        HTTPServer
	BaseURL     string `env:"BASE_URL" envDefault:"http://localhost:3000"` // storefront origin used in email links

	Database Database `envPrefix:"DATABASE_"`
	JWT      JWT      `envPrefix:"JWT_"`
	SMTP     SMTP     `envPrefix:"SMTP_"`
	Auth     Auth
}

type Database struct {
	Driver string `env:"DRIVER" envDefault:"sqlite"` // sqlite, mysql
	URL    string `env:"URL" envDefault:"sportify.db"`
	Seed   bool   `env:"SEED" envDefault:"false"`
}

type JWT struct {
	Secret          string        `env:"SECRET,required"`
	SessionTTL      time.Duration `env:"SESSION_TTL" envDefault:"24h"`
	VerificationTTL time.Duration `env:"VERIFICATION_TTL" envDefault:"1h"`
}

type SMTP struct {
	Host     string `env:"HOST"`
	Port     string `env:"PORT" envDefault:"587"`
	User     string `env:"USER"`
	Password string `env:"PASS"`
	From     string `env:"FROM" envDefault:"no-reply@sportify.local"`
}

type Auth struct {
	BcryptCost int `env:"BCRYPT_COST" envDefault:"10"`
}

type Environment struct {
	Name string `env:"ENVIRONMENT" envDefault:"development"`
}

type Log struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Format string `env:"LOG_FORMAT" envDefault:"json"`
}

type HTTPServer struct {
	Host          string  `env:"HTTP_HOST" envDefault:"0.0.0.0"`
	Port          string  `env:"HTTP_PORT" envDefault:"5000"`
	AuthRateLimit float64 `env:"RATE_LIMIT_AUTH" envDefault:"5"` // requests per second per client IP
}
