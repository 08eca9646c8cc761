package postgres

import (
	"net"
	"net/url"
	"strconv"

	"github.com/snapcourse/snapcourse-backend/config"
)

// DSN builds a postgres:// URL usable by both pgxpool and database/sql.
func DSN(cfg *config.DatabaseConfig) string {
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(cfg.User, cfg.Password),
		Host:   net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port)),
		Path:   "/" + cfg.Name,
	}
	q := url.Values{}
	q.Set("sslmode", cfg.SSLMode)
	u.RawQuery = q.Encode()
	return u.String()
}
