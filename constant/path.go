package constant

import (
	"os"
	P "path"
	"path/filepath"
)

const Name = "suffixd"

// Path is used to get the configuration path
var Path *path

type path struct {
	homeDir    string
	configFile string
}

func init() {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir, _ = os.Getwd()
	}

	homeDir = P.Join(homeDir, ".config", Name)
	Path = &path{homeDir: homeDir, configFile: "config.yaml"}
}

// SetHomeDir is used to set the configuration path
func SetHomeDir(root string) {
	Path.homeDir = root
}

// SetConfig is used to set the configuration file
func SetConfig(file string) {
	Path.configFile = file
}

func (p *path) HomeDir() string {
	return p.homeDir
}

func (p *path) Config() string {
	return p.configFile
}

// Resolve return a absolute path or a relative path with homedir
func (p *path) Resolve(path string) string {
	if !filepath.IsAbs(path) {
		return filepath.Join(p.HomeDir(), path)
	}

	return path
}

// Cache is the bbolt cache file shared by the whole process
func (p *path) Cache() string {
	return P.Join(p.homeDir, "cache.db")
}

// SuffixList is the default on-disk copy of the downloaded rule list
func (p *path) SuffixList() string {
	return P.Join(p.homeDir, "public_suffix_list.dat")
}
