// Package app wires configuration, dataset loading and the charging
// estimators into a single batch run.
package app

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"gonum.org/v1/gonum/floats"

	"github.com/evgrid/evdemand/config"
	"github.com/evgrid/evdemand/core/charging"
	"github.com/evgrid/evdemand/core/survey"
	"github.com/evgrid/evdemand/core/weighting"
	"github.com/evgrid/evdemand/infra/loadcurve"
	"github.com/evgrid/evdemand/infra/logger"
)

// Service executes one charging-demand scenario.
type Service struct {
	cfg   *config.Config
	log   logger.Logger
	runID string
}

// New creates a Service from the configuration.
func New(cfg *config.Config) (*Service, error) {
	if cfg == nil {
		return nil, fmt.Errorf("nil configuration")
	}
	return &Service{
		cfg:   cfg,
		log:   logger.New("service"),
		runID: uuid.NewString(),
	}, nil
}

// Run loads the inputs, computes the charging-load curve and writes it to
// the configured output. The whole run is a single deterministic pass; ctx
// is only consulted between stages.
func (s *Service) Run(ctx context.Context) error {
	sc := s.cfg.Scenario
	s.log.Infof("run %s: %s %s scenario, model year %d", s.runID, sc.VehType, sc.Strategy, sc.ModelYear)

	table, err := survey.Load(s.cfg.Paths.Survey, regionOrDefault(sc.CensusRegion))
	if err != nil {
		return fmt.Errorf("survey table: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	res, err := s.estimate(sc, table)
	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := s.writeCurve(res.Curve); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	s.log.Debugw("run finished", map[string]any{
		"run_id":    s.runID,
		"demand":    res.Demand,
		"allocated": res.Allocated,
		"shortfall": floats.Sum(res.Shortfall),
	})
	s.log.Infof("run %s: wrote %d hours to %s (allocated %.1f of %.1f kWh)",
		s.runID, len(res.Curve), s.cfg.Paths.Output, res.Allocated, res.Demand)
	return nil
}

func (s *Service) estimate(sc config.ScenarioConfig, table *survey.Table) (*charging.Result, error) {
	class, err := sc.Class()
	if err != nil {
		return nil, err
	}

	if !class.LightDuty() {
		if sc.Strategy != config.StrategySmart {
			return nil, fmt.Errorf("strategy %q is not supported for depot fleets", sc.Strategy)
		}
		cfg, err := sc.Heavy()
		if err != nil {
			return nil, err
		}
		baseline, err := s.readBaseline()
		if err != nil {
			return nil, err
		}
		return charging.SmartHeavyDuty(cfg, baseline, table)
	}

	cfg, err := sc.Light()
	if err != nil {
		return nil, err
	}
	weights, err := weighting.Daily(cfg.ModelYear, sc.Area())
	if err != nil {
		return nil, err
	}
	if sc.Strategy == config.StrategyImmediate {
		return charging.Immediate(cfg, weights, table)
	}
	baseline, err := s.readBaseline()
	if err != nil {
		return nil, err
	}
	return charging.Smart(cfg, baseline, weights, table)
}

func (s *Service) readBaseline() ([]float64, error) {
	p := s.cfg.Paths.Baseline
	if p == "" {
		return nil, fmt.Errorf("paths.baseline is required for smart charging")
	}
	if isNetCDF(p) {
		return loadcurve.ReadNetCDF(p, s.cfg.Paths.BaselineVar)
	}
	return loadcurve.ReadCSV(p)
}

func (s *Service) writeCurve(curve []float64) error {
	p := s.cfg.Paths.Output
	if isNetCDF(p) {
		return loadcurve.WriteNetCDF(p, s.cfg.Paths.OutputVar, curve)
	}
	return loadcurve.WriteCSV(p, curve)
}

func isNetCDF(path string) bool {
	return strings.ToLower(filepath.Ext(path)) == ".nc"
}

// Survey loading rejects region 0; depot-fleet tables are not regional, so
// runs that leave the region unset read the table as region 1.
func regionOrDefault(region int) int {
	if region == 0 {
		return 1
	}
	return region
}
