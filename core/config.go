package core

import (
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	AppName      string
	Env          string // DEV (local; default), TEST, QA, PROD
	Debug        bool
	TestMode     bool
	Build        string
	RollbarToken string

	API struct {
		URL     string // without tenant
		Tenant  string
		Timeout time.Duration
	}

	Server struct {
		Address                   string
		ShutdownTimeout           time.Duration
		SecretKey                 string
		JWTExpirationDelta        time.Duration
		JWTRefreshExpirationDelta time.Duration
	}

	Dashboard struct {
		StateFile       string
		TokenFile       string
		CertificatesDir string
	}
}

// BaseURL is the tenant-scoped API root every endpoint path is appended to.
func (c *Config) BaseURL() string {
	return strings.TrimRight(c.API.URL, "/") + "/" + strings.Trim(c.API.Tenant, "/")
}

func NewConfig() *Config {
	conf := viper.New()

	// defaults
	conf.SetTypeByDefaultValue(true)
	conf.SetDefault("debug", true)
	conf.SetDefault("appName", "Eventos")
	conf.SetDefault("build", "develop")
	conf.SetDefault("rollbarToken", "")
	conf.SetDefault("apiURL", "http://localhost:8000/api/v1")
	conf.SetDefault("apiTenant", "demo")
	conf.SetDefault("apiTimeout", 15*time.Second)
	conf.SetDefault("serverAddress", ":8000")
	conf.SetDefault("serverShutdownTimeout", 5*time.Second)
	conf.SetDefault("secretKey", "n1d$-84kq)lwe&^v2z!c0p+t9x*u7m_r5g(h3b=ya@6js#fo")
	conf.SetDefault("jwtExpirationDelta", 15*time.Minute)
	conf.SetDefault("jwtRefreshExpirationDelta", 7*24*time.Hour)

	home, _ := os.UserConfigDir()
	dashDir := filepath.Join(home, "eventos")
	conf.SetDefault("stateFile", filepath.Join(dashDir, "state.json"))
	conf.SetDefault("tokenFile", filepath.Join(dashDir, "session.json"))
	conf.SetDefault("certificatesDir", filepath.Join(dashDir, "certificates"))

	env := strings.ToUpper(os.Getenv("ENV"))
	switch env {
	case "":
		env = "DEV"
	case "TEST":
		conf.SetDefault("testMode", true)
	}
	conf.SetEnvPrefix(env)

	// load .env if it exists (ignore if it does not)
	dotEnvPath := filepath.Join("config", ".env."+strings.ToLower(env))
	if _, err := os.Stat(dotEnvPath); err == nil {
		if err := godotenv.Load(dotEnvPath); err != nil {
			log.Fatalf("config.godotenv(%s): %v", dotEnvPath, err)
		}
	} else if !os.IsNotExist(err) {
		log.Fatalf("config.os.Stat(%s): %v", dotEnvPath, err)
	}
	conf.AutomaticEnv()

	c := new(Config)
	c.AppName = conf.GetString("appName")
	c.Env = env
	c.Debug = conf.GetBool("debug")
	c.TestMode = conf.GetBool("testMode")
	c.Build = conf.GetString("build")
	c.RollbarToken = conf.GetString("rollbarToken")

	c.API.URL = conf.GetString("apiURL")
	c.API.Tenant = conf.GetString("apiTenant")
	c.API.Timeout = conf.GetDuration("apiTimeout")

	c.Server.Address = conf.GetString("serverAddress")
	c.Server.ShutdownTimeout = conf.GetDuration("serverShutdownTimeout")
	c.Server.SecretKey = conf.GetString("secretKey")
	c.Server.JWTExpirationDelta = conf.GetDuration("jwtExpirationDelta")
	c.Server.JWTRefreshExpirationDelta = conf.GetDuration("jwtRefreshExpirationDelta")

	c.Dashboard.StateFile = conf.GetString("stateFile")
	c.Dashboard.TokenFile = conf.GetString("tokenFile")
	c.Dashboard.CertificatesDir = conf.GetString("certificatesDir")
	return c
}
