package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	docopt "github.com/docopt/docopt-go"
	"github.com/fsnotify/fsnotify"
	"github.com/jinzhu/copier"
	"github.com/rs/zerolog"

	"github.com/dirauth/dirauth/internal/monitoring"
	"github.com/dirauth/dirauth/internal/toml"
	"github.com/dirauth/dirauth/internal/tracing"
	"github.com/dirauth/dirauth/internal/version"
	"github.com/dirauth/dirauth/pkg/config"
	"github.com/dirauth/dirauth/pkg/logging"
	"github.com/dirauth/dirauth/pkg/server"
	"github.com/dirauth/dirauth/pkg/stats"
)

const programName = "dirauth"

var usage = `dirauth: authenticate your users against a directory server

Usage:
  dirauth [options] -c <file|s3 url>
  dirauth -h --help
  dirauth --version

Options:
  -c, --config <file>       Config file.
  -K <aws_key_id>           AWS Key ID.
  -S <aws_secret_key>       AWS Secret Key.
  -r <aws_region>           AWS Region [default: us-east-1].
  --aws_endpoint_url <url>  Custom S3 endpoint.
  --listen <address>        Listen address for the web API.
  --directory <host>        Directory server host, overrides the config file.
  --check-config            Check configuration file and exit.
  -h, --help                Show this screen.
  --version                 Show version.
`

var (
	log  zerolog.Logger
	args map[string]interface{}

	activeConfig = &config.Config{}
)

func main() {

	if err := parseArgs(); err != nil {
		fmt.Println("Could not parse command-line arguments")
		fmt.Println(err)
		os.Exit(1)
	}
	checkConfig := false
	if cc, ok := args["--check-config"]; ok {
		if cc == true {
			checkConfig = true
		}
	}

	cfg, err := toml.NewConfig(checkConfig, getConfigLocation(), args)

	if err != nil {
		fmt.Println("Configuration file error")
		fmt.Println(err)
		os.Exit(1)
	}

	if checkConfig {
		fmt.Println("Config file seems ok")
		return
	}

	if err := copier.Copy(activeConfig, cfg); err != nil {
		log.Info().Err(err).Msg("Could not save loaded config. Holding on to old config")
	}

	log = logging.InitLogging(activeConfig.Debug, activeConfig.Syslog, activeConfig.StructuredLog)

	if cfg.Debug {
		log.Info().Msg("Debugging enabled")
	}
	if cfg.Syslog {
		log.Info().Msg("Syslog enabled")
	}

	log.Info().Msg("AP start")

	startService()
}

func startService() {
	// stats
	stats.General.Set("version", stats.Stringer(version.Version))

	monitor := monitoring.NewMonitor(&log)
	tracer := tracing.NewTracer(
		tracing.NewConfig(
			activeConfig.Tracing.Enabled,
			activeConfig.Tracing.GRPCEndpoint,
			activeConfig.Tracing.HTTPEndpoint,
			&log,
		),
	)

	s, err := server.NewServer(
		server.Logger(log),
		server.Config(activeConfig),
		server.Monitor(monitor),
		server.Tracer(tracer),
	)

	if err != nil {
		log.Error().Err(err).Msg("could not create server")
		os.Exit(1)
	}

	startConfigWatcher(s)

	go func() {
		if err := s.ListenAndServe(); err != nil {
			log.Error().Err(err).Msg("could not start web API server")
			os.Exit(1)
		}
	}()

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	// Block until we receive our signal.
	<-c

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := s.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("error during shutdown")
	}

	log.Info().Msg("AP exit")
	os.Exit(0)
}

func startConfigWatcher(s *server.AuthSvc) {
	configFileLocation := getConfigLocation()
	if !activeConfig.WatchConfig || strings.HasPrefix(configFileLocation, "s3://") {
		return
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		log.Error().Err(err).Msg("could not start config-watcher")
		return
	}

	ticker := time.NewTicker(1 * time.Second)
	go func() {
		isChanged, isRemoved := false, false
		for {
			select {
			case event := <-watcher.Events:
				log.Info().Str("e", event.Op.String()).Msg("watcher got event")
				if event.Op&fsnotify.Write == fsnotify.Write {
					isChanged = true
				} else if event.Op&fsnotify.Remove == fsnotify.Remove { // vim edit file with rename/remove
					isChanged, isRemoved = true, true
				} else if event.Op&fsnotify.Create == fsnotify.Create { // only when watching a directory
					isChanged = true
				}
			case err := <-watcher.Errors:
				log.Error().Err(err).Msg("watcher error")
			case <-ticker.C:
				// wakeup, try finding removed config
			}
			if _, err := os.Stat(configFileLocation); !os.IsNotExist(err) && (isRemoved || isChanged) {
				if isRemoved {
					log.Info().Str("file", configFileLocation).Msg("rewatching config")
					watcher.Add(configFileLocation) // overwrite
					isChanged, isRemoved = true, false
				}
				if isChanged {

					cfg, err := toml.NewConfig(false, configFileLocation, args)

					if err != nil {
						log.Info().Err(err).Msg("Could not reload config. Holding on to old config")
					} else {
						log.Info().Msg("Config was reloaded")

						if err := copier.Copy(activeConfig, cfg); err != nil {
							log.Info().Err(err).Msg("Could not save reloaded config. Holding on to old config")
						}
						s.ReplaceConfig(activeConfig)
					}
					isChanged = false
				}
			}
		}
	}()

	watcher.Add(configFileLocation)
}

func parseArgs() error {
	var err error

	if args, err = docopt.Parse(usage, nil, true, version.GetVersion(), false); err != nil {
		return err
	}

	return nil
}

func getConfigLocation() string {
	return args["--config"].(string)
}
