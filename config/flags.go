package config

import (
	"github.com/spf13/pflag"
)

var CliArgs *CliConfig

type CliConfig struct {
	ConfigFile string
	Debug      bool
	Serve      bool
	Listen     string
}

// ParseArgs parses the command line. Without --serve the binary runs as a Lambda function.
func ParseArgs(args []string) error {
	if CliArgs != nil {
		panic("already defined")
	}
	cli, err := parseArgs(args)
	if err != nil {
		return err
	}
	CliArgs = cli
	return nil
}

func parseArgs(args []string) (*CliConfig, error) {
	cli := &CliConfig{}
	fs := pflag.NewFlagSet("blogwriter", pflag.ContinueOnError)
	fs.StringVar(&cli.ConfigFile, "config", "", "Path to the config file")
	fs.BoolVarP(&cli.Debug, "debug", "d", false, "Enable debug mode")
	fs.BoolVar(&cli.Serve, "serve", false, "Serve the handler over HTTP instead of the Lambda runtime")
	fs.StringVar(&cli.Listen, "listen", "", "Listen address for --serve")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	return cli, nil
}
