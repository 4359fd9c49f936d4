package db

import (
	"errors"
	"net"
	"net/url"
	"strconv"

	"github.com/go-sql-driver/mysql"
)

// DSN returns the driver connection string for c.
// ConnectionString is returned as is when set.
func (c Config) DSN() (string, error) {
	c = c.WithDefaults()
	if c.ConnectionString != "" {
		return c.ConnectionString, nil
	}

	addr := net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
	switch c.Driver {
	case DriverMySQL:
		mc := mysql.NewConfig()
		mc.User = c.User
		mc.Passwd = c.Password
		mc.Net = "tcp"
		mc.Addr = addr
		mc.DBName = c.Name
		mc.Params = map[string]string{"charset": c.Charset}
		return mc.FormatDSN(), nil
	case DriverPostgres:
		u := url.URL{
			Scheme: "postgres",
			User:   url.UserPassword(c.User, c.Password),
			Host:   addr,
			Path:   "/" + c.Name,
		}
		return u.String(), nil
	default:
		return "", errors.Join(ErrUnsupportedDriver, errors.New(c.Driver))
	}
}
