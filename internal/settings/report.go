package settings

import "github.com/ib-77/validated/pkg/validated"

// Problem is one first-party failure.
type Problem struct {
	Field  string `yaml:"field"`
	Reason string `yaml:"reason"`
}

type Report struct {
	Valid    bool      `yaml:"valid"`
	Settings *Settings `yaml:"settings,omitempty"`
	Problems []Problem `yaml:"problems,omitempty"`
}

// Problems lists the Invalid fields in declaration order. InvalidComponent
// fields are left out: their cause is listed under another field.
func (f Fields) Problems() []Problem {
	var out []Problem
	add := func(field string, reason string, isInvalid bool) {
		if isInvalid {
			out = append(out, Problem{Field: field, Reason: reason})
		}
	}
	add("name", f.Name.Reason(), f.Name.IsInvalid())
	add("host", f.Host.Reason(), f.Host.IsInvalid())
	add("port", f.Port.Reason(), f.Port.IsInvalid())
	add("addr", f.Addr.Reason(), f.Addr.IsInvalid())
	add("read_timeout", f.ReadTimeout.Reason(), f.ReadTimeout.IsInvalid())
	add("max_connections", f.MaxConnections.Reason(), f.MaxConnections.IsInvalid())
	add("admin_email", f.AdminEmail.Reason(), f.AdminEmail.IsInvalid())
	return out
}

func Check(raw Raw) Report {
	fields := Validate(raw)
	return newReport(fields, fields.Settings())
}

func newReport(fields Fields, result validated.Validated[Settings]) Report {
	r := Report{Problems: fields.Problems()}
	result.IfValid(func(s Settings) {
		r.Valid = true
		r.Settings = &s
	})
	if actual, failed := result.Failure(); failed && actual.IsInvalid() {
		r.Problems = append(r.Problems, Problem{Field: "settings", Reason: actual.Reason()})
	}
	return r
}
