package validation

import (
	"fmt"

	"report-validator/core/reconcile"
	"report-validator/core/report"
	"report-validator/core/table"
)

// TablePayload is a table sent inline as JSON.
type TablePayload struct {
	// Name labels the table in errors and warnings.
	Name string `json:"name,omitempty" example:"cognos_sales"`
	// Header lists the column names in order.
	Header []string `json:"header"`
	// Rows holds one array of cells per row, aligned with Header.
	Rows [][]any `json:"rows"`
	// Types declares column types (text, number, date). Other columns are inferred.
	Types map[string]string `json:"types,omitempty"`
}

// Table converts the payload into a table.
func (p TablePayload) Table(fallbackName string) (table.Table, error) {
	name := p.Name
	if name == "" {
		name = fallbackName
	}

	types := make(map[string]table.Type, len(p.Types))
	for col, raw := range p.Types {
		typ, err := table.ParseType(raw)
		if err != nil {
			return table.Table{}, fmt.Errorf("%w: %s column %s: %v", ErrInvalidRequest, name, col, err)
		}
		types[col] = typ
	}

	records := make([]map[string]any, len(p.Rows))
	for r, row := range p.Rows {
		if len(row) > len(p.Header) {
			return table.Table{}, fmt.Errorf("%w: %s row %d has %d cells for %d columns", table.ErrInvalidTable, name, r, len(row), len(p.Header))
		}
		rec := make(map[string]any, len(p.Header))
		for c, cell := range row {
			rec[p.Header[c]] = cell
		}
		records[r] = rec
	}
	return table.FromRecords(name, p.Header, records, types), nil
}

// RunOptions are the per-request overrides of the configured defaults.
type RunOptions struct {
	// Mode is dimensional or hash. Empty uses the configured mode.
	Mode string `json:"mode,omitempty" example:"dimensional"`
	// ExcludeColumns are dropped from both tables in addition to the configured ones.
	ExcludeColumns []string `json:"exclude_columns,omitempty"`
	// RenameToIdentity columns are forced into the identity role.
	RenameToIdentity []string `json:"rename_to_identity,omitempty"`
	// SourceName overrides the source platform label.
	SourceName string `json:"source_name,omitempty" example:"Cognos"`
	// TargetName overrides the target platform label.
	TargetName string `json:"target_name,omitempty" example:"PBI"`
}

// ValidationRequest reconciles two inline tables.
type ValidationRequest struct {
	Source  TablePayload `json:"source"`
	Target  TablePayload `json:"target"`
	Options RunOptions   `json:"options"`
}

// QueryRequest reconciles the result sets of two queries against the configured database.
type QueryRequest struct {
	SourceQuery string     `json:"source_query" example:"SELECT region_id, SUM(sales) AS sales FROM cognos_sales GROUP BY region_id"`
	TargetQuery string     `json:"target_query" example:"SELECT region_id, SUM(sales) AS sales FROM pbi_sales GROUP BY region_id"`
	Options     RunOptions `json:"options"`
}

// Report is a reconciliation result together with its workbook.
type Report struct {
	RunID    string
	Names    report.SideNames
	Result   *reconcile.Result
	Workbook *report.Workbook
	Cached   bool
}

// Response is the JSON rendering of a report.
type Response struct {
	RunID     string                 `json:"run_id"`
	Passed    bool                   `json:"passed"`
	Mode      reconcile.KeyMode      `json:"mode"`
	Names     report.SideNames       `json:"names"`
	Summary   reconcile.Summary      `json:"summary"`
	Partition reconcile.Partition    `json:"partition"`
	Columns   []reconcile.ColumnPair `json:"columns"`
	Rows      []reconcile.Row        `json:"rows"`
	Warnings  []reconcile.Warning    `json:"warnings"`
	Sheets    []report.Sheet         `json:"sheets"`
	Cached    bool                   `json:"cached,omitempty"`
	SavedKey  string                 `json:"saved_key,omitempty"`
}

// NewResponse renders a report as JSON.
func NewResponse(r *Report) Response {
	res := r.Result
	return Response{
		RunID:     r.RunID,
		Passed:    res.Summary.Passed,
		Mode:      res.Mode,
		Names:     r.Names,
		Summary:   res.Summary,
		Partition: res.Partition,
		Columns:   res.Columns,
		Rows:      res.Rows,
		Warnings:  res.Warnings,
		Sheets:    r.Workbook.Sheets,
		Cached:    r.Cached,
	}
}
