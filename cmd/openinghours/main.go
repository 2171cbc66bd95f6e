// Command openinghours normalizes, validates and evaluates opening_hours
// expressions.
//
// Settings are read from flags, OPENINGHOURS_* environment variables and an
// optional openinghours.yaml in the working directory:
//
//	lat: 52.52
//	lon: 13.405
//	timezone: Europe/Berlin
//	holidays: holidays-de-be.yaml
//	mode: interval
package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/ngrash/go-openinghours/holiday"
	"github.com/ngrash/go-openinghours/openinghours"
	"github.com/ngrash/go-openinghours/solar"
)

func main() {
	if err := newRootCmd(nil).Execute(); err != nil {
		os.Exit(1)
	}
}

type app struct {
	v   *viper.Viper
	log *zap.SugaredLogger
}

// newRootCmd builds the command tree. A nil log is replaced by a zap logger
// according to the debug setting.
func newRootCmd(log *zap.SugaredLogger) *cobra.Command {
	a := &app{v: viper.New(), log: log}
	root := &cobra.Command{
		Use:           "openinghours",
		Short:         "Normalize, validate and evaluate opening_hours expressions",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = a.log.Sync()
		},
	}

	pf := root.PersistentFlags()
	pf.String("config", "", "config file (default ./openinghours.yaml)")
	pf.Float64("lat", 0, "latitude for sunrise and sunset")
	pf.Float64("lon", 0, "longitude for sunrise and sunset")
	pf.String("timezone", "Local", "IANA time zone days are evaluated in")
	pf.String("holidays", "", "YAML file with public holidays")
	pf.String("mode", "interval", "query mode: interval or point-in-time")
	pf.Bool("debug", false, "turn on debugging output")
	_ = a.v.BindPFlags(pf)
	a.v.SetEnvPrefix("OPENINGHOURS")
	a.v.AutomaticEnv()

	root.AddCommand(a.normalizeCmd(), a.validateCmd(), a.evalCmd(), a.diffCmd())
	return root
}

func (a *app) init() error {
	if cfg := a.v.GetString("config"); cfg != "" {
		a.v.SetConfigFile(cfg)
	} else {
		a.v.SetConfigName("openinghours")
		a.v.SetConfigType("yaml")
		a.v.AddConfigPath(".")
	}
	err := a.v.ReadInConfig()
	var notFound viper.ConfigFileNotFoundError
	if err != nil && !errors.As(err, &notFound) {
		return fmt.Errorf("read config: %w", err)
	}

	if a.log == nil {
		var zl *zap.Logger
		if a.v.GetBool("debug") {
			zl, err = zap.NewDevelopment()
		} else {
			zl, err = zap.NewProduction()
		}
		if err != nil {
			return fmt.Errorf("can't initialize zap logger: %w", err)
		}
		a.log = zl.Sugar()
	}
	if f := a.v.ConfigFileUsed(); f != "" {
		a.log.Debugw("using config file", "file", f)
	}
	return nil
}

func (a *app) location() (*time.Location, error) {
	loc, err := time.LoadLocation(a.v.GetString("timezone"))
	if err != nil {
		return nil, fmt.Errorf("timezone: %w", err)
	}
	return loc, nil
}

// environment returns the evaluation collaborators that are configured and
// the capabilities they provide.
func (a *app) environment() (openinghours.HolidayOracle, openinghours.SolarResolver, openinghours.Capability, error) {
	var (
		holidays  openinghours.HolidayOracle
		sun       openinghours.SolarResolver
		available openinghours.Capability
	)
	if a.v.IsSet("lat") && a.v.IsSet("lon") {
		sun = solar.Location{Lat: a.v.GetFloat64("lat"), Lon: a.v.GetFloat64("lon")}
		available = available.Set(openinghours.CapabilityLocation)
		a.log.Debugw("location configured", "lat", a.v.GetFloat64("lat"), "lon", a.v.GetFloat64("lon"))
	}
	if path := a.v.GetString("holidays"); path != "" {
		f, err := os.Open(path)
		if err != nil {
			return nil, nil, 0, err
		}
		defer f.Close()
		cal, err := holiday.Load(f)
		if err != nil {
			return nil, nil, 0, fmt.Errorf("%s: %w", path, err)
		}
		holidays = cal
		available = available.Set(openinghours.CapabilityPublicHoliday)
		a.log.Debugw("holidays loaded", "file", path, "region", cal.Region)
	}
	return holidays, sun, available, nil
}
