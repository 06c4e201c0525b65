package main

import (
	"flag"

	"github.com/spf13/viper"

	"github.com/prebid/prebid-gpp/config"
	"github.com/prebid/prebid-gpp/logger"
	"github.com/prebid/prebid-gpp/router"
	"github.com/prebid/prebid-gpp/server"
)

// Rev holds binary revision string
// Set manually at build time using:
//
//	go build -ldflags "-X main.Rev=`git rev-parse --short HEAD`"
var Rev string

// Version holds the latest git tag the binary was built from
// Set manually at build time using:
//
//	go build -ldflags "-X main.Version=`git describe --tags --abbrev=0`"
var Version string

func main() {
	flag.Parse() // required for glog flags and testing package flags

	cfg, err := loadConfig()
	if err != nil {
		logger.Fatalf("Configuration could not be loaded or did not pass validation: %v", err)
	}

	if err := serve(Version, Rev, cfg); err != nil {
		logger.Fatalf("prebid-gpp failed: %v", err)
	}
}

const configFileName = "gpp"

func loadConfig() (*config.Configuration, error) {
	v := viper.New()
	config.SetupViper(v, configFileName)
	return config.New(v)
}

func serve(version, revision string, cfg *config.Configuration) error {
	r := router.New(cfg)

	corsRouter := router.SupportCORS(r, cfg.CORS.AllowedOrigins)
	return server.Listen(cfg, router.NoCache{Handler: corsRouter}, router.Admin(version, revision), r.Registry)
}
