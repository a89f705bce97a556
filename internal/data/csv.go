package data

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"go.uber.org/multierr"
)

var header = []string{"employee_id", "name", "department", "overtime", "compensation", "satisfaction", "growth", "work_life_balance", "resigned", "risk_score"}

// ReadEmployees parses the CSV layout written by WriteEmployees. Rows that
// fail to parse are skipped; their errors are combined in the returned error
// alongside the rows that did parse.
func ReadEmployees(r io.Reader) ([]Employee, error) {
	cr := csv.NewReader(r)
	rows, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(rows) < 2 {
		return nil, nil
	}
	col := map[string]int{}
	for i, h := range rows[0] {
		col[strings.TrimSpace(strings.ToLower(h))] = i
	}
	for _, h := range header[3:8] {
		if _, ok := col[h]; !ok {
			return nil, fmt.Errorf("missing column %q", h)
		}
	}

	var errs error
	out := make([]Employee, 0, len(rows)-1)
	for n, row := range rows[1:] {
		e, err := parseRow(row, col)
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("row %d: %w", n+2, err))
			continue
		}
		out = append(out, e)
	}
	return out, errs
}

func parseRow(row []string, col map[string]int) (Employee, error) {
	get := func(name string) string {
		i, ok := col[name]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}
	num := func(name string) (float64, error) {
		v, err := strconv.ParseFloat(get(name), 64)
		if err != nil {
			return 0, fmt.Errorf("%s: %w", name, err)
		}
		return v, nil
	}

	e := Employee{EmployeeID: get("employee_id"), Name: get("name"), Department: get("department")}
	var err, errs error
	if e.Overtime, err = num("overtime"); err != nil {
		errs = multierr.Append(errs, err)
	}
	if e.Compensation, err = num("compensation"); err != nil {
		errs = multierr.Append(errs, err)
	}
	if e.Satisfaction, err = num("satisfaction"); err != nil {
		errs = multierr.Append(errs, err)
	}
	if e.Growth, err = num("growth"); err != nil {
		errs = multierr.Append(errs, err)
	}
	if e.WorkLifeBalance, err = num("work_life_balance"); err != nil {
		errs = multierr.Append(errs, err)
	}
	if s := get("resigned"); s != "" {
		b, err := strconv.ParseBool(s)
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("resigned: %w", err))
		} else {
			e.Resigned = &b
		}
	}
	if s := get("risk_score"); s != "" {
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("risk_score: %w", err))
		} else {
			e.RiskScore = &f
		}
	}
	return e, errs
}

func WriteEmployees(w io.Writer, employees []Employee) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return err
	}
	ff := func(f float64) string { return strconv.FormatFloat(f, 'f', 2, 64) }
	for _, e := range employees {
		resigned, risk := "", ""
		if e.Resigned != nil {
			resigned = strconv.FormatBool(*e.Resigned)
		}
		if e.RiskScore != nil {
			risk = ff(*e.RiskScore)
		}
		rec := []string{e.EmployeeID, e.Name, e.Department,
			ff(e.Overtime), ff(e.Compensation), ff(e.Satisfaction), ff(e.Growth), ff(e.WorkLifeBalance),
			resigned, risk}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func LoadEmployees(path string) ([]Employee, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadEmployees(f)
}

func SaveEmployees(path string, employees []Employee) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := WriteEmployees(f, employees); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
