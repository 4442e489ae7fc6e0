// Package settings validates server settings with compositions: every field
// is validated on its own, derived fields depend on their inputs, and the
// whole Settings value is one composition over the fields.
package settings

import (
	"net"
	"net/mail"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/ib-77/validated/pkg/validated"
)

// Raw holds settings as read from a file or the environment.
type Raw struct {
	Name           string `mapstructure:"name"`
	Host           string `mapstructure:"host"`
	Port           int    `mapstructure:"port"`
	ReadTimeout    string `mapstructure:"read_timeout"`
	MaxConnections int    `mapstructure:"max_connections"`
	AdminEmail     string `mapstructure:"admin_email"`
}

// Settings are validated, typed settings.
type Settings struct {
	Name           string        `yaml:"name"`
	Addr           string        `yaml:"addr"`
	ReadTimeout    time.Duration `yaml:"read_timeout"`
	MaxConnections int           `yaml:"max_connections"`
	AdminEmail     string        `yaml:"admin_email"`
}

const (
	maxNameLen        = 63
	maxConnections    = 100_000
	busyConnections   = 1000
	busyReadTimeout   = 30 * time.Second
	maxReadTimeout    = 10 * time.Minute
	hostnameLabelSize = 63
)

var nameRe = regexp.MustCompile(`^[a-z0-9]([a-z0-9-]*[a-z0-9])?$`)

func Name(s string) validated.Validated[string] {
	s = strings.TrimSpace(s)
	switch {
	case s == "":
		return validated.Invalid[string]("must not be empty")
	case len(s) > maxNameLen:
		return validated.Invalid[string]("must be at most " + strconv.Itoa(maxNameLen) + " characters")
	case !nameRe.MatchString(s):
		return validated.Invalid[string]("must contain only lowercase letters, digits and inner dashes")
	}
	return validated.Valid(s)
}

func Host(s string) validated.Validated[string] {
	s = strings.TrimSpace(s)
	if s == "" {
		return validated.Invalid[string]("must not be empty")
	}
	if net.ParseIP(s) != nil {
		return validated.Valid(s)
	}
	for _, label := range strings.Split(s, ".") {
		if label == "" || len(label) > hostnameLabelSize || !nameRe.MatchString(strings.ToLower(label)) {
			return validated.Invalid[string]("is neither an IP address nor a host name")
		}
	}
	return validated.Valid(s)
}

func Port(p int) validated.Validated[int] {
	return validated.Validate(p, func(in int) (bool, string) {
		return in >= 1 && in <= 65535, "must be between 1 and 65535"
	})
}

// Addr depends on host and port; when either failed it is InvalidComponent
// and reports nothing of its own.
func Addr(host validated.Validated[string], port validated.Validated[int]) validated.Validated[string] {
	return validated.Compose2(host, port, func(h string, p int) string {
		return net.JoinHostPort(h, strconv.Itoa(p))
	})
}

func Timeout(s string) validated.Validated[time.Duration] {
	parsed, err := time.ParseDuration(strings.TrimSpace(s))
	return validated.AndValidate(validated.Of(parsed, err), func(in time.Duration) (bool, string) {
		if in <= 0 {
			return false, "must be positive"
		}
		if in > maxReadTimeout {
			return false, "must be at most " + maxReadTimeout.String()
		}
		return true, ""
	})
}

func MaxConnections(n int) validated.Validated[int] {
	return validated.Validate(n, func(in int) (bool, string) {
		return in >= 1 && in <= maxConnections, "must be between 1 and " + strconv.Itoa(maxConnections)
	})
}

func AdminEmail(s string) validated.Validated[string] {
	if strings.TrimSpace(s) == "" {
		return validated.Invalid[string]("must not be empty")
	}
	addr, err := mail.ParseAddress(s)
	if err != nil {
		return validated.Invalid[string]("is not an email address")
	}
	return validated.Valid(addr.Address)
}

// Fields keeps the result of every field of one Raw value.
type Fields struct {
	Name           validated.Validated[string]
	Host           validated.Validated[string]
	Port           validated.Validated[int]
	Addr           validated.Validated[string]
	ReadTimeout    validated.Validated[time.Duration]
	MaxConnections validated.Validated[int]
	AdminEmail     validated.Validated[string]
}

func Validate(raw Raw) Fields {
	host := Host(raw.Host)
	port := Port(raw.Port)
	return Fields{
		Name:           Name(raw.Name),
		Host:           host,
		Port:           port,
		Addr:           Addr(host, port),
		ReadTimeout:    Timeout(raw.ReadTimeout),
		MaxConnections: MaxConnections(raw.MaxConnections),
		AdminEmail:     AdminEmail(raw.AdminEmail),
	}
}

// Settings composes the fields. Field failures make the result
// InvalidComponent; a rule spanning several valid fields reports Invalid.
func (f Fields) Settings() validated.Validated[Settings] {
	return validated.Compose(func(b *validated.Body[Settings]) Settings {
		s := Settings{
			Name:           f.Name.Get(b),
			Addr:           f.Addr.Get(b),
			ReadTimeout:    f.ReadTimeout.Get(b),
			MaxConnections: f.MaxConnections.Get(b),
			AdminEmail:     f.AdminEmail.Get(b),
		}
		if s.MaxConnections > busyConnections && s.ReadTimeout > busyReadTimeout {
			return b.Error("max_connections above " + strconv.Itoa(busyConnections) +
				" requires a read_timeout of at most " + busyReadTimeout.String())
		}
		return s
	})
}

func Build(raw Raw) validated.Validated[Settings] {
	return Validate(raw).Settings()
}
