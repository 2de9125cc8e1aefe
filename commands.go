package main

import (
	"context"
	"errors"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/jessevdk/go-flags"
	"github.com/oklog/run"
	"go.uber.org/zap"

	"github.com/oblq/ipmifc/internal/control"
	"github.com/oblq/ipmifc/internal/curve"
	"github.com/oblq/ipmifc/internal/logging"
	"github.com/oblq/ipmifc/internal/report"
)

type options struct {
	Verbose bool   `long:"verbose" description:"Verbose output"`
	Config  string `short:"f" long:"config" description:"Backend configuration file, ipmifc.yaml if present when not set"`
	Backend string `short:"b" long:"backend" choice:"ipmi" choice:"commanderpro" description:"Fan backend, overrides the configuration file"`
}

// app holds what the commands share.
type app struct {
	// ctx is the parent context of every command.
	ctx    context.Context
	opts   options
	stdout io.Writer
	log    *zap.Logger

	newLogger func(verbose bool) (*zap.Logger, error)
	backends  map[string]backendOpener
}

func newApp(stdout io.Writer) *app {
	return &app{
		ctx:       context.Background(),
		stdout:    stdout,
		newLogger: logging.New,
		backends:  backends,
	}
}

func newParser(a *app) *flags.Parser {
	parser := flags.NewParser(&a.opts, flags.HelpFlag|flags.PassDoubleDash)
	parser.ShortDescription = "IPMI fan control"
	parser.LongDescription = "Drive server fans from the CPU temperature through ipmitool or a Corsair Commander Pro."

	_, _ = parser.AddCommand("auto",
		"Auto adjust fan speed by interval checking CPU temperature",
		"Auto adjust fan speed by interval checking CPU temperature, "+
			"optionally running the fans at full speed periodically to clear the air.",
		&autoCommand{app: a})
	_, _ = parser.AddCommand("fixed",
		"Set fixed RPM percentage for fan",
		"Set fixed RPM percentage for fan, value range 0-100.",
		&fixedCommand{app: a})
	_, _ = parser.AddCommand("info",
		"Print CPU temperature and fan RPM",
		"Print CPU temperature and fan RPM.",
		&infoCommand{app: a})
	preview, _ := parser.AddCommand("preview",
		"Print the fan speed for every temperature",
		"Print the fan speed computed for every temperature from 20 to 100°C.",
		&previewCommand{app: a})
	preview.Aliases = []string{"print-all-speeds"}

	parser.CommandHandler = func(command flags.Commander, args []string) error {
		if command == nil {
			return nil
		}

		log, err := a.newLogger(a.opts.Verbose)
		if err != nil {
			return err
		}
		a.log = log
		defer func() { _ = log.Sync() }()

		if err := command.Execute(args); err != nil {
			log.Error(err.Error())
			return err
		}
		return nil
	}

	return parser
}

// openFan opens the backend selected by the options and the configuration file.
func (a *app) openFan(ctx context.Context) (FanBackend, error) {
	path, required := a.opts.Config, a.opts.Config != ""
	if !required {
		path = defaultConfigPath
	}

	config, err := loadConfig(path, required)
	if err != nil {
		return nil, err
	}
	if a.opts.Backend != "" {
		config.Backend = a.opts.Backend
	}

	open, ok := a.backends[config.Backend]
	if !ok {
		return nil, errors.New("no such backend: " + config.Backend)
	}
	return open(ctx, config, a.log)
}

type curveOptions struct {
	Threshold         int `short:"u" long:"threshold" default:"70" description:"threshold CPU temperature for full speed Fan, accepted value range [40-100]"`
	TargetTemperature int `short:"l" long:"target-temperature" default:"35" description:"target temperature to keep CPU below, fans will run quietly below this temperature, accepted value range [20-60]"`
	MaxFanSpeed       int `short:"m" long:"max-fan-speed" default:"100" description:"max fan speed percentage, accepted value range [0-100]"`
}

type autoCommand struct {
	Interval int `short:"i" long:"interval" default:"5" description:"check CPU temperature every how many seconds, accepted value range [5-120]"`
	curveOptions
	ClearAirInterval int `short:"c" long:"clear-air-interval" default:"0" description:"clear air (run fans at full speed) every how many seconds. 0 disables this feature"`
	ClearAirDuration int `short:"x" long:"clear-air-duration" default:"10" description:"clear air duration in seconds"`

	app *app
}

func (c *autoCommand) parameters() control.Parameters {
	return control.Parameters{
		Interval:          c.Interval,
		Threshold:         c.Threshold,
		TargetTemperature: c.TargetTemperature,
		MaxFanSpeed:       c.MaxFanSpeed,
		ClearAirInterval:  c.ClearAirInterval,
		ClearAirDuration:  c.ClearAirDuration,
	}
}

func (c *autoCommand) Execute(_ []string) error {
	log := c.app.log

	params, corrections := control.Validate(c.parameters())
	for _, correction := range corrections {
		log.Info(correction.String(), zap.Int("given", correction.Given))
	}

	ctx, cancel := context.WithCancel(c.app.ctx)
	defer cancel()

	fan, err := c.app.openFan(ctx)
	if err != nil {
		return err
	}
	defer fan.Close()

	loop := control.NewLoop(fan, params, log)

	var g run.Group
	{
		g.Add(func() error {
			if err := loop.Run(ctx); !errors.Is(err, context.Canceled) {
				return err
			}
			return nil
		}, func(error) {
			cancel()
		})
	}
	{
		stop := make(chan os.Signal, 1)
		signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
		g.Add(func() error {
			select {
			case sig := <-stop:
				log.Info("exiting", zap.Stringer("signal", sig))
			case <-ctx.Done():
			}
			return nil
		}, func(error) {
			signal.Stop(stop)
			cancel()
		})
	}

	return g.Run()
}

type fixedCommand struct {
	Args struct {
		Value int `positional-arg-name:"value" description:"value range 0-100"`
	} `positional-args:"yes" required:"yes"`

	app *app
}

func (c *fixedCommand) Execute(_ []string) error {
	ctx := c.app.ctx

	fan, err := c.app.openFan(ctx)
	if err != nil {
		return err
	}
	defer fan.Close()

	return control.Fixed(ctx, fan, c.Args.Value, c.app.log)
}

type infoCommand struct {
	app *app
}

func (c *infoCommand) Execute(_ []string) error {
	ctx := c.app.ctx

	fan, err := c.app.openFan(ctx)
	if err != nil {
		return err
	}
	defer fan.Close()

	info, err := control.Info(ctx, fan)
	if err != nil {
		return err
	}
	return report.Info(c.app.stdout, info)
}

type previewCommand struct {
	curveOptions

	app *app
}

func (c *previewCommand) Execute(_ []string) error {
	points := curve.Preview(c.TargetTemperature, c.Threshold, c.MaxFanSpeed)
	return report.Preview(c.app.stdout, points, c.MaxFanSpeed)
}
