package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"BridgeCLI/internal/cli"
	"BridgeCLI/pkg/appcfg"
	"BridgeCLI/pkg/logx"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	os.Exit(run())
}

func run() int {
	cwd, err := os.Getwd()
	if err != nil {
		fmt.Fprintf(os.Stderr, "getwd: %v\n", err)
		return 2
	}

	appConf, err := appcfg.Load(filepath.Join(cwd, "configs", "app.yaml"))
	if err != nil {
		appConf = appcfg.Defaults()
		fmt.Fprintf(os.Stderr, "load app config: %v (use defaults: %s/%s)\n", err, appConf.LogDir, appConf.LogLevel)
	}

	logPath, err := logx.Init(logx.Config{
		Dir:                  appConf.LogDir,
		Level:                appConf.LogLevel,
		Console:              appConf.LogConsole,
		HideSecretsInConsole: appConf.HideSecretsInConsole,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "log init: %v\n", err)
		return 1
	}
	defer logx.Close()

	logx.S().Infow("pbtc started",
		"cwd", cwd,
		"version", version,
		"log_path", logPath,
		"log_level", appConf.LogLevel,
	)

	return cli.NewRunner(version).Run(context.Background(), os.Args[1:])
}
