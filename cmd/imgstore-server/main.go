package main

import (
	"github.com/sirupsen/logrus"
	flag "github.com/spf13/pflag"

	"github.com/epfl-cs212/imgstore/internal/server"
)

func main() {
	configPath := flag.StringP("config", "c", "", "Path to HuJSON config file")
	listen := flag.String("listen", "", "Listen address (overrides config)")
	storePath := flag.String("store", "", "imgStore file (overrides config)")
	docRoot := flag.String("doc-root", "", "Static file directory (overrides config)")
	flag.Parse()

	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	var (
		cfg server.Config
		err error
	)

	if *configPath != "" {
		cfg, err = server.LoadConfig(*configPath)
		if err != nil {
			log.WithError(err).Fatal("cannot load config")
		}
	} else {
		cfg = server.Config{Listen: server.DefaultListen, DocRoot: server.DefaultDocRoot}
	}

	if *listen != "" {
		cfg.Listen = *listen
	}

	if *storePath != "" {
		cfg.StorePath = *storePath
	}

	if *docRoot != "" {
		cfg.DocRoot = *docRoot
	}

	if cfg.StorePath == "" {
		log.Fatal("no imgStore file configured (use --store or a config file)")
	}

	if err := server.New(cfg, log).ListenAndServe(); err != nil {
		log.WithError(err).Fatal("server stopped")
	}
}
