package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/kbukum/webtoon-api/app"
	"github.com/kbukum/webtoon-api/config"
	"github.com/kbukum/webtoon-api/version"
)

// envPrefix scopes environment overrides, e.g. WEBTOON_AUTH_TOKEN_SECRET.
const envPrefix = "WEBTOON"

func main() {
	configFile := flag.String("config", "", "path to config.yml (default: search standard locations)")
	envFile := flag.String("env", "", "path to a .env file (default: search standard locations)")
	showVersion := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println(version.Get())
		return
	}

	if err := run(*configFile, *envFile); err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", app.ServiceName, err)
		os.Exit(1)
	}
}

func run(configFile, envFile string) error {
	var cfg app.Config
	opts := []config.LoaderOption{config.WithEnvPrefix(envPrefix)}
	if configFile != "" {
		opts = append(opts, config.WithConfigFile(configFile))
	}
	if envFile != "" {
		opts = append(opts, config.WithEnvFile(envFile))
	}
	if err := config.LoadConfig(app.ServiceName, &cfg, opts...); err != nil {
		return err
	}
	if cfg.Version == "" {
		cfg.Version = version.Get().String()
	}

	svc, err := app.New(&cfg)
	if err != nil {
		return err
	}
	return svc.Run(context.Background())
}
