package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/yahuti/trade-engine/tools/dashgen/dashboards"
	"github.com/yahuti/trade-engine/tools/dashgen/rules"
	"github.com/yahuti/trade-engine/tools/dashgen/validate"
)

const generatedHeader = "# Code generated by dashgen. DO NOT EDIT.\n"

func main() {
	validateOnly := flag.Bool("validate", false, "validate generated artifacts without writing files")
	outputDir := flag.String("output", "", "override output directory")
	flag.Parse()

	cfg := DefaultConfig()
	if *outputDir != "" {
		cfg.OutputDir = *outputDir
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}

	if err := run(cfg, *validateOnly); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(cfg Config, validateOnly bool) error {
	dash, err := dashboards.BuildOverview().Build()
	if err != nil {
		return fmt.Errorf("building overview dashboard: %w", err)
	}

	if res := validate.Dashboard(dash, KnownMetrics); !res.Ok() {
		return validationError("dashboard", res)
	}

	recording := rules.RecordingRules()
	alerts := rules.AlertRules()

	var ruleExprs []string
	for _, cr := range []rules.PrometheusRule{recording, alerts} {
		for _, g := range cr.Spec.Groups {
			for _, r := range g.Rules {
				ruleExprs = append(ruleExprs, r.Expr)
			}
		}
	}
	if res := validate.Exprs(ruleExprs, KnownMetrics); !res.Ok() {
		return validationError("rules", res)
	}

	if validateOnly {
		fmt.Println("validation passed")
		return nil
	}

	if cfg.DashboardEnabled {
		data, err := json.MarshalIndent(dash, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling dashboard: %w", err)
		}
		path := filepath.Join(cfg.OutputDir, "grafana", "data", "yte-overview.json")
		if err := writeFile(path, append(data, '\n')); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", path)
	}

	if cfg.RulesEnabled {
		for name, cr := range map[string]rules.PrometheusRule{
			"yte-recording-rules.yaml": recording,
			"yte-alerts.yaml":          alerts,
		} {
			data, err := yaml.Marshal(cr)
			if err != nil {
				return fmt.Errorf("marshaling %s: %w", name, err)
			}
			path := filepath.Join(cfg.OutputDir, "prometheus", name)
			if err := writeFile(path, append([]byte(generatedHeader), data...)); err != nil {
				return err
			}
			fmt.Printf("wrote %s\n", path)
		}
	}

	return nil
}

func validationError(what string, res validate.Result) error {
	for _, w := range res.Warnings {
		fmt.Fprintf(os.Stderr, "warning: %s\n", w)
	}
	for _, e := range res.Errors {
		fmt.Fprintf(os.Stderr, "error: %s\n", e)
	}
	return fmt.Errorf("%s validation failed with %d error(s)", what, len(res.Errors))
}

func writeFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
