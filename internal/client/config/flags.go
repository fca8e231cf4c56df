package config

import (
	"flag"
	"io"
	"time"

	"github.com/dmitrijs2005/folio/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Only -a, -f and -t are considered; everything else in args is filtered
// out with flagx.FilterArgs so the JSON selector does not trip the parser.
func parseFlags(cfg *Config, args []string) error {
	args = flagx.FilterArgs(args, []string{"-a", "-f", "-t"})

	fs := flag.NewFlagSet("client", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.ServerURL, "a", cfg.ServerURL, "base URL of the folio API")
	fs.StringVar(&cfg.StoragePath, "f", cfg.StoragePath, "local storage file")
	timeout := fs.Int("t", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds)")

	if err := fs.Parse(args); err != nil {
		return err
	}

	fs.Visit(func(f *flag.Flag) {
		if f.Name == "t" {
			cfg.RequestTimeout = time.Duration(*timeout) * time.Second
		}
	})
	return nil
}
