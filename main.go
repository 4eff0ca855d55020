package main

import (
	"github.com/houseofplants/houseofplants/internal/config"
	"github.com/houseofplants/houseofplants/internal/entrypoint"
)

// Version information - set at build time via ldflags
var Version = "dev"

func main() {
	cfg := config.NewConfig()
	entrypoint.Run(cfg, Version)
}
