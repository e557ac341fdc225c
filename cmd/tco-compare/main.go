package main

import (
	"fmt"
	"os"

	"github.com/diillson/tco-compare-go/internal/adapter/driven/config"
	"github.com/diillson/tco-compare-go/internal/adapter/driven/export"
	"github.com/diillson/tco-compare-go/internal/adapter/driving/cli"
	"github.com/diillson/tco-compare-go/internal/application/usecase"
	"github.com/diillson/tco-compare-go/pkg/console"
	"github.com/diillson/tco-compare-go/pkg/version"
)

func main() {
	app := cli.NewCLIApp(version.Version)

	// Inicializa os repositórios
	exportRepo := export.NewExportRepository()
	configRepo := config.NewConfigRepository()
	consoleImpl := console.NewConsole()

	comparisonUseCase := usecase.NewComparisonUseCase(
		exportRepo,
		configRepo,
		consoleImpl,
	)
	app.SetComparisonUseCase(comparisonUseCase)

	if err := app.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
