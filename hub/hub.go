package hub

import (
	"fmt"
	"os"

	"github.com/suffixlab/suffixd/component/psl"
	"github.com/suffixlab/suffixd/component/resource"
	"github.com/suffixlab/suffixd/config"
	C "github.com/suffixlab/suffixd/constant"
	types "github.com/suffixlab/suffixd/constant/provider"
	"github.com/suffixlab/suffixd/hub/route"
	"github.com/suffixlab/suffixd/log"
	"github.com/suffixlab/suffixd/provider"
)

const (
	logMaxSize    = 10 // megabytes
	logMaxBackups = 3
	logMaxAge     = 28 // days
)

type Option func(*config.Config)

func WithExternalController(externalController string) Option {
	return func(cfg *config.Config) {
		cfg.General.ExternalController = externalController
	}
}

func WithSecret(secret string) Option {
	return func(cfg *config.Config) {
		cfg.General.Secret = secret
	}
}

func readConfig(path string) ([]byte, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		// missing config file runs on defaults
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("configuration file %s is empty", path)
	}
	return data, nil
}

// TestConfig only validates the configuration file
func TestConfig() error {
	buf, err := readConfig(C.Path.Config())
	if err != nil {
		return err
	}
	_, err = config.Parse(buf)
	return err
}

// Parse call at the beginning of suffixd: load config, pull the rule list
// through the provider into the resolver, then expose the RESTful API
func Parse(options ...Option) error {
	buf, err := readConfig(C.Path.Config())
	if err != nil {
		return err
	}

	cfg, err := config.Parse(buf)
	if err != nil {
		return err
	}

	for _, option := range options {
		option(cfg)
	}

	log.SetLevel(cfg.General.LogLevel)
	if cfg.General.LogFile != "" {
		log.SetOutput(cfg.General.LogFile, logMaxSize, logMaxBackups, logMaxAge, false)
	}

	resolver := psl.NewResolver()

	var vehicle types.Vehicle
	if cfg.SuffixList.URL != "" {
		vehicle = resource.NewHTTPVehicle(cfg.SuffixList.URL, cfg.SuffixList.Path, nil, resource.DefaultHttpTimeout)
	} else {
		vehicle = resource.NewFileVehicle(cfg.SuffixList.Path)
	}

	sp := provider.NewSuffixProvider("public-suffix-list", vehicle, cfg.SuffixList.Interval,
		psl.ParseOption{IncludePrivate: cfg.SuffixList.IncludePrivate}, resolver)

	if err := sp.Initial(); err != nil {
		return fmt.Errorf("initial suffix list: %w", err)
	}

	route.SetResolver(resolver)
	route.SetProvider(sp)

	if cfg.General.ExternalController != "" {
		go route.Start(cfg.General.ExternalController, cfg.General.Secret)
	}

	return nil
}
