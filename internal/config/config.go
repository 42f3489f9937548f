package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type (
	Container struct {
		App     *App
		Token   *Token
		HTTP    *HTTP
		Redis   *Redis
		Peloton *Peloton
	}

	App struct {
		Name string
		Env  string
	}

	Token struct {
		Secret string
	}

	HTTP struct {
		Env            string
		Port           string
		AllowedOrigins string
		URL            string
		SecureCookie   bool
	}

	Redis struct {
		Address  string
		Password string
	}

	// Peloton points at the betting backend. Mock swaps the live client
	// for the in-memory seed so the gateway runs without the backend up.
	Peloton struct {
		BaseURL string
		Timeout string
		Mock    bool
	}
)

func New() (*Container, error) {
	if os.Getenv("APP_ENV") != "production" {
		err := godotenv.Load()
		if err != nil {
			return nil, err
		}
	}

	app := &App{
		Name: os.Getenv("APP_NAME"),
		Env:  os.Getenv("APP_ENV"),
	}

	token := &Token{
		Secret: os.Getenv("TOKEN_SECRET"),
	}

	http := &HTTP{
		Port:           os.Getenv("HTTP_PORT"),
		AllowedOrigins: os.Getenv("ALLOWED_ORIGINS"),
		URL:            os.Getenv("HTTP_URL"),
		Env:            os.Getenv("APP_ENV"),
		SecureCookie:   os.Getenv("APP_ENV") == "production",
	}

	redis := &Redis{
		Address:  os.Getenv("REDIS_ADDRESS"),
		Password: os.Getenv("REDIS_PASSWORD"),
	}

	mock, _ := strconv.ParseBool(os.Getenv("PELOTON_MOCK"))
	peloton := &Peloton{
		BaseURL: os.Getenv("PELOTON_BASE_URL"),
		Timeout: os.Getenv("PELOTON_TIMEOUT"),
		Mock:    mock,
	}

	return &Container{
		App:     app,
		Token:   token,
		HTTP:    http,
		Redis:   redis,
		Peloton: peloton,
	}, nil
}

func (p *Peloton) TimeoutDuration() time.Duration {
	d, err := time.ParseDuration(p.Timeout)
	if err != nil {
		return 10 * time.Second
	}
	return d
}
