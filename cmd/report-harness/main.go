package main

import (
	"encoding/json"
	"flag"
	"os"

	"github.com/crovdigital/gerente_backend/config"
	"github.com/crovdigital/gerente_backend/models"
)

// report-harness builds a dashboard report from a JSON file holding the
// filter and the raw dataset, and prints the report to stdout. Useful to
// replay a production payload against the aggregation engine.

type harnessInput struct {
	Filter  models.FilterState `json:"filtros"`
	Dataset models.RawDataset  `json:"datos"`
}

func main() {
	inputPath := flag.String("input", "", "path to a JSON file with filtros and datos")
	pretty := flag.Bool("pretty", true, "indent the report output")
	flag.Parse()

	logger := config.GetLogger()

	if *inputPath == "" {
		logger.Fatal("missing -input flag")
	}

	raw, err := os.ReadFile(*inputPath)
	if err != nil {
		config.LogError(logger, "report-harness", "main", "reading input file", *inputPath, err)
		os.Exit(1)
	}

	var input harnessInput
	if err := json.Unmarshal(raw, &input); err != nil {
		config.LogError(logger, "report-harness", "main", "decoding input file", *inputPath, err)
		os.Exit(1)
	}

	report, err := models.BuildDashboardReport(input.Filter, input.Dataset)
	if err != nil {
		config.LogError(logger, "report-harness", "main", "building report", input.Filter, err)
		os.Exit(1)
	}

	encoder := json.NewEncoder(os.Stdout)
	if *pretty {
		encoder.SetIndent("", "  ")
	}
	if err := encoder.Encode(report); err != nil {
		config.LogError(logger, "report-harness", "main", "encoding report", nil, err)
		os.Exit(1)
	}
}
