package models

import (
	"encoding/json"
	"math"
	"strings"
	"testing"
)

func sampleOutput() Output {
	var o Output
	for i, f := range OutputFields {
		f.Set(&o, float64(i)+0.5)
	}
	return o
}

func TestOutputFields_CoverEveryField(t *testing.T) {
	if len(OutputFields) != 39 {
		t.Fatalf("expected 39 output fields, got %d", len(OutputFields))
	}

	o := sampleOutput()
	seen := map[float64]string{}
	for _, f := range OutputFields {
		v := f.Value(o)
		if prev, dup := seen[v]; dup {
			t.Errorf("%s and %s share storage", prev, f.Key)
		}
		seen[v] = f.Key
	}

	for _, s := range ResultSections {
		for _, k := range s.Keys {
			if _, ok := LookupOutputField(k); !ok {
				t.Errorf("section %q references unknown key %q", s.Title, k)
			}
		}
	}
	for _, k := range ReportKeys {
		if _, ok := LookupOutputField(k); !ok {
			t.Errorf("report references unknown key %q", k)
		}
	}
}

func TestOutput_JSONNonFinite(t *testing.T) {
	o := sampleOutput()
	o.CapacidadeDeSuporte = math.Inf(1)
	o.Coe = math.NaN()
	o.Ml = math.Inf(-1)

	data, err := json.Marshal(o)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	s := string(data)
	for _, want := range []string{`"capacidadeDeSuporte":"+Inf"`, `"coe":"NaN"`, `"ml":"-Inf"`, `"aguaAplicada":0.5`} {
		if !strings.Contains(s, want) {
			t.Errorf("expected %s in %s", want, s)
		}
	}

	var back Output
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !back.Equal(o) {
		t.Errorf("round trip changed values:\n got %+v\nwant %+v", back, o)
	}
}

func TestOutput_UnmarshalNull(t *testing.T) {
	var o Output
	if err := json.Unmarshal([]byte(`{"payback":null,"trci":12.5}`), &o); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !math.IsNaN(o.Payback) {
		t.Errorf("null should decode as NaN, got %v", o.Payback)
	}
	if o.Trci != 12.5 {
		t.Errorf("trci = %v, want 12.5", o.Trci)
	}
}

func TestOutput_UnmarshalRejectsGarbage(t *testing.T) {
	var o Output
	if err := json.Unmarshal([]byte(`{"payback":"soon"}`), &o); err == nil {
		t.Error("expected error for non-numeric string")
	}
}

func TestOutput_Degenerate(t *testing.T) {
	o := sampleOutput()
	if got := o.Degenerate(); len(got) != 0 {
		t.Errorf("finite output reported degenerate keys %v", got)
	}

	o.ProducaoDiaria = math.NaN()
	o.Coe = math.Inf(1)
	got := o.Degenerate()
	if len(got) != 2 || got[0] != "coe" || got[1] != "producaoDiaria" {
		t.Errorf("Degenerate() = %v, want [coe producaoDiaria]", got)
	}
}

func TestOutput_Equal(t *testing.T) {
	a := sampleOutput()
	b := sampleOutput()
	a.Payback, b.Payback = math.NaN(), math.NaN()

	if !a.Equal(b) {
		t.Error("NaN fields should compare equal")
	}

	b.Trci += 1e-12
	if a.Equal(b) {
		t.Error("different values should not compare equal")
	}
}

func TestOutput_Diff(t *testing.T) {
	a := sampleOutput()
	b := sampleOutput()
	a.Itu, b.Itu = math.NaN(), math.NaN()
	b.Ml = -1
	b.Trci = math.Inf(1)

	got := a.Diff(b)
	if len(got) != 2 || got[0] != "ml" || got[1] != "trci" {
		t.Errorf("Diff() = %v, want [ml trci]", got)
	}
}
