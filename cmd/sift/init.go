package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/rs/zerolog/log"
	flag "github.com/spf13/pflag"
)

func initFlags(ko *koanf.Koanf) {
	f := flag.NewFlagSet("config", flag.ContinueOnError)
	f.Usage = func() {
		fmt.Println(f.FlagUsages())
		os.Exit(0)
	}

	f.StringSlice("config", nil, "path to one or more config files (will be merged in order)")
	f.String("file", "", "newline-delimited JSON log file to scan")
	f.StringSlice("fields", nil, "fields to project (plain keys or dotted paths)")
	f.String("from", "", "drop records with a timestamp before this")
	f.String("until", "", "drop records with a timestamp after this")
	f.String("output", "", "output sink: delimited, console or raw")
	f.Bool("quiet", false, "suppress the start notice and summary")
	f.Bool("skip-malformed", false, "skip and count malformed lines instead of aborting")
	f.Bool("follow", false, "keep scanning as the file grows")
	f.Bool("version", false, "show current version of the build")

	if err := f.Parse(os.Args[1:]); err != nil {
		log.Fatal().Msgf("error loading flags: %v", err)
	}

	configs, _ := f.GetStringSlice("config")
	for _, c := range configs {
		log.Debug().Msgf("Reading config from %s", c)
		var parser koanf.Parser
		switch c[strings.LastIndex(c, ".")+1:] {
		case "yaml", "yml":
			parser = yaml.Parser()
		case "json":
			parser = json.Parser()
		default:
			log.Fatal().Msgf("unsupported config file extension: %s", c)
		}
		if err := ko.Load(file.Provider(c), parser); err != nil {
			log.Fatal().Msgf("error reading config: %v", err)
		}
	}

	// flags override whatever the config files said
	if err := ko.Load(posflag.Provider(f, ".", ko), nil); err != nil {
		log.Fatal().Msgf("error reading flag config: %v", err)
	}
}
