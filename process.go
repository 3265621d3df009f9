package kapgain

import (
	"fmt"
	"io"
	"path/filepath"
)

// Process runs the whole pipeline for a set of statement parsers: parse,
// export the normalized statements, populate exchange rates, and (when every
// activity type is understood) calculate and export the realized sales.
type Process struct {
	InputDir   string
	OutputDir  string
	Parsers    []string   // parser names, deduplicated in order
	Source     RateSource // where exchange rates come from
	InCurrency bool       // report profit/loss in the trade currency

	statements map[string][]Activity // per parser name
	sales      []SaleRecord
	residual   map[string][]Lot
}

// NewProcess returns a process over the given directories and parsers.
func NewProcess(inputDir, outputDir string, parsers []string, source RateSource) *Process {
	seen := make(map[string]bool)
	var names []string
	for _, name := range parsers {
		if !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}
	return &Process{
		InputDir:  inputDir,
		OutputDir: outputDir,
		Parsers:   names,
		Source:    source,
	}
}

// Sales returns the merged realized sales of the last Run.
func (p *Process) Sales() []SaleRecord { return p.sales }

// Residual returns the per-symbol open lots left after the last Run, merged
// across parsers, for carry-forward purposes.
func (p *Process) Residual() map[string][]Lot { return p.residual }

// Run executes the pipeline. Parse or rate failures abort; an unsupported
// activity type skips the sales step but still exports the statements.
func (p *Process) Run() error {
	if err := p.parse(); err != nil {
		return err
	}
	if err := p.exportStatements(); err != nil {
		return err
	}
	if err := p.populateRates(); err != nil {
		return err
	}

	var unsupported []ActivityType
	for _, activities := range p.statements {
		unsupported = append(unsupported, UnsupportedActivityTypes(activities)...)
	}
	if len(unsupported) > 0 {
		processLog.Warnf("found unsupported activity types: %v. Sales information will not be calculated.", unsupported)
		return nil
	}

	if err := p.calculateSales(); err != nil {
		return err
	}
	return p.exportSales()
}

// RunStatementsOnly parses and exports the normalized statements without
// resolving rates or calculating sales.
func (p *Process) RunStatementsOnly() error {
	if err := p.parse(); err != nil {
		return err
	}
	return p.exportStatements()
}

func (p *Process) parse() error {
	processLog.Infof("parsing statement files with parsers: %v", p.Parsers)

	p.statements = make(map[string][]Activity)
	for _, name := range p.Parsers {
		inputDir := p.InputDir
		if len(p.Parsers) > 1 {
			inputDir = filepath.Join(inputDir, name)
		}
		parser, err := NewParser(name, inputDir)
		if err != nil {
			return err
		}
		activities, err := parser.Parse()
		if err != nil {
			return fmt.Errorf("parser %q failed: %w", name, err)
		}
		if len(activities) == 0 {
			return fmt.Errorf("no activities found with parser %q, check the statement files", name)
		}
		p.statements[name] = activities
	}
	return nil
}

// outputPath returns where a report file goes for a parser: directly in the
// output dir, or in a per-parser subdirectory when several parsers run.
func (p *Process) outputPath(parser, filename string) string {
	if len(p.Parsers) > 1 {
		return filepath.Join(p.OutputDir, parser, filename)
	}
	return filepath.Join(p.OutputDir, filename)
}

func (p *Process) exportStatements() error {
	processLog.Infof("generating [statements.csv] file")
	for _, name := range p.Parsers {
		activities := p.statements[name]
		err := exportFile(p.outputPath(name, "statements.csv"), func(w io.Writer) error {
			return ExportStatements(w, activities)
		})
		if err != nil {
			return err
		}
	}
	return nil
}

func (p *Process) populateRates() error {
	processLog.Infof("populating exchange rates")
	for _, name := range p.Parsers {
		activities := p.statements[name]
		table, err := p.Source.Rates(activities[0].TradeDate, activities[len(activities)-1].TradeDate)
		if err != nil {
			return err
		}
		populated, err := table.Populate(activities)
		if err != nil {
			return err
		}
		p.statements[name] = populated
	}
	return nil
}

func (p *Process) calculateSales() error {
	processLog.Infof("calculating sales information")

	p.sales = nil
	p.residual = make(map[string][]Lot)
	for _, name := range p.Parsers {
		sales, residual, err := Czechia().Calculate(p.statements[name])
		if err != nil {
			return err
		}
		p.sales = append(p.sales, sales...)
		for symbol, queue := range residual {
			p.residual[symbol] = append(p.residual[symbol], queue...)
		}
	}
	return nil
}

func (p *Process) exportSales() error {
	processLog.Infof("generating [sales.csv] file")
	export := ExportSalesCZK
	if p.InCurrency {
		export = ExportSalesInCurrency
	}
	return exportFile(filepath.Join(p.OutputDir, "sales.csv"), func(w io.Writer) error {
		return export(w, p.sales)
	})
}
