package config

import "time"

type Config struct {
	Web   Web
	DB    DB
	Auth  Auth
	Cors  Cors
	Limit Limit
}

type Web struct {
	Address         string        `conf:"default:0.0.0.0:4000"`
	ReadTimeout     time.Duration `conf:"default:5s"`
	WriteTimeout    time.Duration `conf:"default:10s"`
	IdleTimeout     time.Duration `conf:"default:120s"`
	ShutdownTimeout time.Duration `conf:"default:20s"`
}

type DB struct {
	User       string `conf:"default:postgres"`
	Password   string `conf:"default:postgres,mask"`
	Host       string `conf:"default:localhost"`
	Name       string `conf:"default:ecommerce"`
	DisableTLS bool   `conf:"default:true"`
}

type Auth struct {
	// Secret signs access tokens. It must be provided by the environment,
	// never compiled in.
	Secret        string        `conf:"required,mask"`
	TokenLifetime time.Duration `conf:"default:24h"`
}

type Cors struct {
	Origin string
}

type Limit struct {
	Burst    int     `conf:"default:20"`
	RPS      float64 `conf:"default:10"`
	ExpiryMn int     `conf:"default:10"`
}
