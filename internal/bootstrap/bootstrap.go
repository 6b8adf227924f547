package bootstrap

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	advisorinadapter "brewlog/internal/modules/advisor/adapter/in"
	advisoroutadapter "brewlog/internal/modules/advisor/adapter/out"
	advisorservice "brewlog/internal/modules/advisor/service"
	advisorusecase "brewlog/internal/modules/advisor/usecase"
	beaninadapter "brewlog/internal/modules/bean/adapter/in"
	beanoutadapter "brewlog/internal/modules/bean/adapter/out"
	beanservice "brewlog/internal/modules/bean/service"
	beanusecase "brewlog/internal/modules/bean/usecase"
	grinderinadapter "brewlog/internal/modules/grinder/adapter/in"
	grinderoutadapter "brewlog/internal/modules/grinder/adapter/out"
	grinderservice "brewlog/internal/modules/grinder/service"
	grinderusecase "brewlog/internal/modules/grinder/usecase"
	shotinadapter "brewlog/internal/modules/shot/adapter/in"
	shotoutadapter "brewlog/internal/modules/shot/adapter/out"
	shotservice "brewlog/internal/modules/shot/service"
	shotusecase "brewlog/internal/modules/shot/usecase"
	statsinadapter "brewlog/internal/modules/stats/adapter/in"
	statsservice "brewlog/internal/modules/stats/service"
	statsusecase "brewlog/internal/modules/stats/usecase"
	"brewlog/internal/platform/clock"
	"brewlog/internal/platform/config"
	"brewlog/internal/platform/id"
	"brewlog/internal/platform/tx"
	uiapp "brewlog/internal/ui/app"
)

type App struct {
	GrinderCLI grinderinadapter.CLIHandler
	BeanCLI    beaninadapter.CLIHandler
	ShotCLI    shotinadapter.CLIHandler
	AdvisorCLI advisorinadapter.CLIHandler
	StatsCLI   statsinadapter.CLIHandler
}

func New(cfg config.Config) (*App, error) {
	clk := clock.SystemClock{}
	ids := id.UUID{}

	grinderUC := grinderusecase.NewInteractor(
		grinderservice.NewGrinderService(clk, grinderoutadapter.NewFileScaleStore(cfg.GrinderPath)),
	)

	beanStore := beanoutadapter.NewJournalBeanStore(cfg.JournalPath)
	beanProjector, err := beanoutadapter.NewSQLiteBeanProjector(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("new bean projector: %w", err)
	}
	beanUC := beanusecase.NewInteractor(beanservice.NewBeanService(clk, ids, beanStore, beanProjector))

	adviceStore, err := advisoroutadapter.NewSQLiteAdviceStore(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("new advice store: %w", err)
	}
	advisorUC := advisorusecase.NewInteractor(
		advisorservice.NewAdvisorService(clk, ids, adviceStore),
		grinderUC,
		advisoroutadapter.NewJournalGuidanceProjector(cfg.JournalPath),
	)

	shotStore, err := shotoutadapter.NewSQLiteShotStore(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("new shot store: %w", err)
	}
	shotUC := shotusecase.NewInteractor(
		shotservice.NewShotService(clk, ids, shotStore),
		beanUC,
		advisorUC,
		tx.NoopManager{},
	)

	statsUC := statsusecase.NewInteractor(statsservice.NewStatsService(), shotUC)

	return &App{
		GrinderCLI: grinderinadapter.NewCLIHandler(grinderUC),
		BeanCLI:    beaninadapter.NewCLIHandler(beanUC),
		ShotCLI:    shotinadapter.NewCLIHandler(shotUC),
		AdvisorCLI: advisorinadapter.NewCLIHandler(advisorUC),
		StatsCLI:   statsinadapter.NewCLIHandler(statsUC),
	}, nil
}

func RunTUI(app *App) error {
	model := uiapp.NewModel(app.BeanCLI, app.ShotCLI, app.AdvisorCLI, app.StatsCLI)
	program := tea.NewProgram(model, tea.WithAltScreen())
	_, err := program.Run()
	return err
}
