package config

import (
	"flag"
	"os"

	"github.com/Loth-Lorien/SiniestrosAPI-sub000/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   base URL of the siniestros API (default from Config)
//	-d string   sqlite DSN of the local state database (default from Config)
//
// The function filters os.Args to only include the flags it knows about,
// using flagx.FilterArgs, to avoid interference with other components.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-d"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.APIBaseURL, "a", cfg.APIBaseURL, "base URL of the siniestros API")
	fs.StringVar(&cfg.LocalStateDSN, "d", cfg.LocalStateDSN, "path or DSN of the local state database")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
