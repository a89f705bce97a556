package data

import (
	"bytes"
	"math/rand"
	"strings"
	"testing"
)

func TestWriteReadEmployees(t *testing.T) {
	in := GenerateEmployees(25, 0.5, rand.New(rand.NewSource(1)))
	var buf bytes.Buffer
	if err := WriteEmployees(&buf, in); err != nil {
		t.Fatal(err)
	}
	out, err := ReadEmployees(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if len(out) != len(in) {
		t.Fatalf("read %d rows, want %d", len(out), len(in))
	}
	for i := range in {
		if out[i].EmployeeID != in[i].EmployeeID || out[i].Overtime != in[i].Overtime {
			t.Fatalf("row %d mismatch: %+v vs %+v", i, out[i], in[i])
		}
		if (in[i].Resigned == nil) != (out[i].Resigned == nil) {
			t.Fatalf("row %d resigned presence mismatch", i)
		}
	}
}

func TestReadEmployeesCollectsRowErrors(t *testing.T) {
	csvText := "employee_id,overtime,compensation,satisfaction,growth,work_life_balance,resigned\n" +
		"E1,10,20,30,40,50,true\n" +
		"E2,x,20,30,40,50,\n" +
		"E3,10,20,30,40,50,maybe\n" +
		"E4,1,2,3,4,5,\n"
	out, err := ReadEmployees(strings.NewReader(csvText))
	if err == nil {
		t.Fatal("expected parse errors")
	}
	if !strings.Contains(err.Error(), "row 3") || !strings.Contains(err.Error(), "row 4") {
		t.Fatalf("error should name both bad rows: %v", err)
	}
	if len(out) != 2 || out[0].EmployeeID != "E1" || out[1].EmployeeID != "E4" {
		t.Fatalf("unexpected rows %+v", out)
	}
	if out[0].Resigned == nil || !*out[0].Resigned || out[1].Resigned != nil {
		t.Fatal("resigned column parsed incorrectly")
	}
}

func TestReadEmployeesMissingColumn(t *testing.T) {
	if _, err := ReadEmployees(strings.NewReader("employee_id,overtime\nE1,5\n")); err == nil {
		t.Fatal("expected missing column error")
	}
}

func TestGenerateEmployeesDeterministic(t *testing.T) {
	a := GenerateEmployees(10, 0.3, rand.New(rand.NewSource(5)))
	b := GenerateEmployees(10, 0.3, rand.New(rand.NewSource(5)))
	for i := range a {
		if a[i].Overtime != b[i].Overtime || a[i].Satisfaction != b[i].Satisfaction {
			t.Fatalf("row %d differs between identical seeds", i)
		}
		for _, v := range []float64{a[i].Overtime, a[i].Compensation, a[i].Satisfaction, a[i].Growth, a[i].WorkLifeBalance} {
			if v < 0 || v > 100 {
				t.Fatalf("factor %v out of range", v)
			}
		}
	}
}
