package config

import (
	"flag"
	"fmt"
	"io"
	"strings"
)

type flags struct {
	set        *flag.FlagSet
	configPath string
	values     Config
	migrations string
}

func parseFlags(args []string) (*flags, error) {
	f := &flags{set: flag.NewFlagSet("directus-typegen", flag.ContinueOnError)}
	f.set.SetOutput(io.Discard)

	d := Default()
	v := &f.values

	f.set.StringVar(&f.configPath, "config", "", "Path to the config file (default "+FileName+" if it exists)")
	f.set.StringVar(&v.Output, "output", d.Output, `Output file, "-" for stdout, "" to skip writing`)
	f.set.StringVar(&v.URL, "url", d.URL, "Directus URL")
	f.set.StringVar(&v.Token, "token", d.Token, "Directus static token")
	f.set.StringVar(&v.Source, "source", d.Source, "Metadata source (api/snapshot/sql/database)")
	f.set.StringVar(&v.Snapshot.Path, "snapshot", "", "Schema snapshot file (source=snapshot)")
	f.set.StringVar(&f.migrations, "migrations", "", "Comma separated migration file globs (source=sql)")
	f.set.StringVar(&v.DatabaseURL, "database-url", "", "Postgres URL of the Directus database (source=database)")
	f.set.StringVar(&v.Format, "format", d.Format, "Output format (ts/go)")
	f.set.StringVar(&v.Package.Name, "package", d.Package.Name, "Package name of Go output")
	f.set.StringVar(&v.SchemaName, "schema-name", d.SchemaName, "Name of the aggregate schema type")
	f.set.BoolVar(&v.SingularizeSingletons, "singularize-singletons", false, "Singularize singleton type names too")
	f.set.BoolVar(&v.IncludeSystem, "include-system", false, "Include directus_* system collections")
	f.set.DurationVar(&v.Timeout, "timeout", d.Timeout, "Metadata fetch timeout")
	f.set.StringVar(&v.LogLevel, "log-level", d.LogLevel, "Log level (debug/info/warn/error)")
	f.set.StringVar(&v.LogFormat, "log-format", d.LogFormat, "Log format (text/json)")
	f.set.BoolVar(&v.Watch, "watch", false, "Regenerate when source files change (source=snapshot/sql)")

	if err := f.set.Parse(args); err != nil {
		return nil, fmt.Errorf("invalid arguments: %w", err)
	}

	if f.set.NArg() > 0 {
		return nil, fmt.Errorf(`unexpected argument "%s"`, f.set.Arg(0))
	}

	return f, nil
}

// apply copies the flags given on the command line over c. Flags that were
// not given leave c untouched.
func (f *flags) apply(c *Config) {
	v := f.values

	f.set.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "output":
			c.Output = v.Output
		case "url":
			c.URL = strings.TrimSpace(v.URL)
		case "token":
			c.Token = v.Token
		case "source":
			c.Source = strings.TrimSpace(v.Source)
		case "snapshot":
			c.Snapshot.Path = v.Snapshot.Path
		case "migrations":
			c.Migrations = splitMigrations(f.migrations)
		case "database-url":
			c.DatabaseURL = v.DatabaseURL
		case "format":
			c.Format = strings.TrimSpace(v.Format)
		case "package":
			c.Package.Name = v.Package.Name
		case "schema-name":
			c.SchemaName = v.SchemaName
		case "singularize-singletons":
			c.SingularizeSingletons = v.SingularizeSingletons
		case "include-system":
			c.IncludeSystem = v.IncludeSystem
		case "timeout":
			c.Timeout = v.Timeout
		case "log-level":
			c.LogLevel = v.LogLevel
		case "log-format":
			c.LogFormat = v.LogFormat
		case "watch":
			c.Watch = v.Watch
		}
	})
}

func splitMigrations(s string) []Migration {
	out := make([]Migration, 0)

	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, Migration{Path: p})
		}
	}

	return out
}

// Usage writes the flag documentation to w.
func Usage(w io.Writer) {
	f, _ := parseFlags(nil)
	f.set.SetOutput(w)
	f.set.PrintDefaults()
}
