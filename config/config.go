package config

import (
	"fmt"
	"time"

	C "github.com/suffixlab/suffixd/constant"
	"github.com/suffixlab/suffixd/log"

	"gopkg.in/yaml.v3"
)

// DefaultListURL is the upstream rule list pulled when none is configured
const DefaultListURL = "https://publicsuffix.org/list/public_suffix_list.dat"

// RawConfig is the yaml shape of the config file, unset fields keep defaults
type RawConfig struct {
	LogLevel           log.LogLevel  `yaml:"log-level"`
	LogFile            string        `yaml:"log-file"`
	ExternalController string        `yaml:"external-controller"`
	Secret             string        `yaml:"secret"`
	SuffixList         RawSuffixList `yaml:"suffix-list"`
}

type RawSuffixList struct {
	URL            string `yaml:"url"`
	Path           string `yaml:"path"`
	Interval       int    `yaml:"interval"` // seconds between remote refreshes
	IncludePrivate bool   `yaml:"include-private"`
}

// General config
type General struct {
	LogLevel           log.LogLevel
	LogFile            string
	ExternalController string
	Secret             string
}

// SuffixList is the resolved rule list source
type SuffixList struct {
	URL            string
	Path           string
	Interval       time.Duration
	IncludePrivate bool
}

// Config is the typed, validated configuration
type Config struct {
	General    *General
	SuffixList *SuffixList
}

// UnmarshalRawConfig fills defaults then overlays the yaml buffer
func UnmarshalRawConfig(buf []byte) (*RawConfig, error) {
	rawCfg := &RawConfig{
		LogLevel:           log.INFO,
		ExternalController: "127.0.0.1:9091",
		SuffixList: RawSuffixList{
			URL:      DefaultListURL,
			Interval: 86400,
		},
	}

	if err := yaml.Unmarshal(buf, rawCfg); err != nil {
		return nil, err
	}

	return rawCfg, nil
}

// Parse converts a yaml buffer into a validated Config
func Parse(buf []byte) (*Config, error) {
	rawCfg, err := UnmarshalRawConfig(buf)
	if err != nil {
		return nil, err
	}

	return ParseRawConfig(rawCfg)
}

func ParseRawConfig(rawCfg *RawConfig) (*Config, error) {
	if rawCfg.SuffixList.Interval < 0 {
		return nil, fmt.Errorf("invalid suffix-list interval: %d", rawCfg.SuffixList.Interval)
	}

	path := rawCfg.SuffixList.Path
	if path == "" {
		path = C.Path.SuffixList()
	} else {
		path = C.Path.Resolve(path)
	}

	if rawCfg.SuffixList.URL == "" && rawCfg.SuffixList.Path == "" {
		return nil, fmt.Errorf("suffix-list needs an url or a local path")
	}

	logFile := rawCfg.LogFile
	if logFile != "" {
		logFile = C.Path.Resolve(logFile)
	}

	return &Config{
		General: &General{
			LogLevel:           rawCfg.LogLevel,
			LogFile:            logFile,
			ExternalController: rawCfg.ExternalController,
			Secret:             rawCfg.Secret,
		},
		SuffixList: &SuffixList{
			URL:            rawCfg.SuffixList.URL,
			Path:           path,
			Interval:       time.Duration(rawCfg.SuffixList.Interval) * time.Second,
			IncludePrivate: rawCfg.SuffixList.IncludePrivate,
		},
	}, nil
}
