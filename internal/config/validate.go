package config

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

var packageNameRegex = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterStructValidation(validateSource, Config{})
	_ = v.RegisterValidation("go_package", func(fl validator.FieldLevel) bool {
		return packageNameRegex.MatchString(fl.Field().String())
	})
	return v
}

// validateSource checks that the settings the selected source needs are
// present.
func validateSource(sl validator.StructLevel) {
	c := sl.Current().Interface().(Config)

	switch c.Source {
	case SourceApi:
		if c.URL == "" {
			sl.ReportError(c.URL, "URL", "URL", "required_for_source", c.Source)
		}
	case SourceSnapshot:
		if c.Snapshot.Path == "" {
			sl.ReportError(c.Snapshot.Path, "Snapshot.Path", "Path", "required_for_source", c.Source)
		}
	case SourceSql:
		if len(c.Migrations) == 0 {
			sl.ReportError(c.Migrations, "Migrations", "Migrations", "required_for_source", c.Source)
		}
	case SourceDatabase:
		if c.DatabaseURL == "" {
			sl.ReportError(c.DatabaseURL, "DatabaseURL", "DatabaseURL", "required_for_source", c.Source)
		}
	}

	if c.Watch && c.Source != SourceSnapshot && c.Source != SourceSql {
		sl.ReportError(c.Watch, "Watch", "Watch", "file_source", c.Source)
	}
}

func Validate(c *Config) error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("invalid config: %w", err)
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, describe(fe))
	}

	return fmt.Errorf("invalid config: %s: %w", strings.Join(msgs, "; "), err)
}

func describe(fe validator.FieldError) string {
	field := strings.TrimPrefix(fe.Namespace(), "Config.")

	switch fe.Tag() {
	case "required_for_source":
		return fmt.Sprintf(`%s is required for source "%s"`, field, fe.Param())
	case "file_source":
		return fmt.Sprintf(`watch is not supported for source "%s"`, fe.Param())
	case "oneof":
		return fmt.Sprintf(`%s must be one of [%s], got "%v"`, field, fe.Param(), fe.Value())
	case "go_package":
		return fmt.Sprintf(`%s must be a valid Go package name, got "%v"`, field, fe.Value())
	case "url":
		return fmt.Sprintf(`%s must be a valid url, got "%v"`, field, fe.Value())
	}

	return fmt.Sprintf("%s failed on the %s rule", field, fe.Tag())
}
