package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
)

// Output holds every indicator derived from an Input. Fields are always
// populated; NaN and ±Inf mean the indicator is unavailable for the given
// input (zero area, zero paddocks, intake equal to supplementation...).
type Output struct {
	AguaAplicada                  float64 `yaml:"aguaAplicada"`
	CapacidadeDeSuporte           float64 `yaml:"capacidadeDeSuporte"`
	Coe                           float64 `yaml:"coe"`
	CoeTotal                      float64 `yaml:"coeTotal"`
	Consumo                       float64 `yaml:"consumo"`
	ConsumoDeNDT                  float64 `yaml:"consumoDeNDT"`
	ConsumoTotal                  float64 `yaml:"consumoTotal"`
	Cot                           float64 `yaml:"cot"`
	Depreciacao                   float64 `yaml:"depreciacao"`
	Dpl                           float64 `yaml:"dpl"`
	DplAnual                      float64 `yaml:"dplAnual"`
	Eto                           float64 `yaml:"eto"`
	ForragemDisponivel            float64 `yaml:"forragemDisponivel"`
	InvestimentoTotal             float64 `yaml:"investimentoTotal"`
	Irrigacao                     float64 `yaml:"irrigacao"`
	Itu                           float64 `yaml:"itu"`
	MdoFamiliar                   float64 `yaml:"mdoFamiliar"`
	Ml                            float64 `yaml:"ml"`
	MlAnual                       float64 `yaml:"mlAnual"`
	MlPorArea                     float64 `yaml:"mlPorArea"`
	NdtDeslocamento               float64 `yaml:"ndtDeslocamento"`
	NdtDH                         float64 `yaml:"ndtDH"`
	NdtDV                         float64 `yaml:"ndtDV"`
	ParticipacaoDaIrrigacaoNaAgua float64 `yaml:"participacaoDaIrrigacaoNaAgua"`
	Payback                       float64 `yaml:"payback"`
	PegadaHidrica                 float64 `yaml:"pegadaHidrica"`
	PerdaDeReceitaComEstresse     float64 `yaml:"perdaDeReceitaComEstresse"`
	PrecoDoLeite                  float64 `yaml:"precoDoLeite"`
	ProducaoDeForragem            float64 `yaml:"producaoDeForragem"`
	ProducaoDeLeiteHaAno          float64 `yaml:"producaoDeLeiteHaAno"`
	ProducaoDeLeiteHaDia          float64 `yaml:"producaoDeLeiteHaDia"`
	ProducaoDiaria                float64 `yaml:"producaoDiaria"`
	ReceitaPorArea                float64 `yaml:"receitaPorArea"`
	ReceitaTotalAno               float64 `yaml:"receitaTotalAno"`
	ReceitaTotalMes               float64 `yaml:"receitaTotalMes"`
	Suplementacao                 float64 `yaml:"suplementacao"`
	TaxaDeLotacao                 float64 `yaml:"taxaDeLotacao"`
	TensaoDaAguaNoSolo            float64 `yaml:"tensaoDaAguaNoSolo"`
	Trci                          float64 `yaml:"trci"`
}

// Degenerate returns the keys of every indicator that is NaN or infinite,
// in field table order.
func (o Output) Degenerate() []string {
	var keys []string
	for _, f := range OutputFields {
		if !IsFinite(f.Value(o)) {
			keys = append(keys, f.Key)
		}
	}
	return keys
}

// Equal compares field by field, treating two NaNs as equal.
func (o Output) Equal(other Output) bool {
	for _, f := range OutputFields {
		if !sameFloat(f.Value(o), f.Value(other)) {
			return false
		}
	}
	return true
}

// Diff lists the keys whose values differ, NaN matching NaN.
func (o Output) Diff(other Output) []string {
	var keys []string
	for _, f := range OutputFields {
		if !sameFloat(f.Value(o), f.Value(other)) {
			keys = append(keys, f.Key)
		}
	}
	return keys
}

// IsFinite reports whether v can be displayed as a number.
func IsFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func sameFloat(a, b float64) bool {
	if math.IsNaN(a) && math.IsNaN(b) {
		return true
	}
	return a == b
}

// Non-finite values have no JSON number form; they travel as these strings.
const (
	jsonNaN    = "NaN"
	jsonPosInf = "+Inf"
	jsonNegInf = "-Inf"
)

// MarshalJSON writes fields in table order. Non-finite values are encoded as
// the strings "NaN", "+Inf" and "-Inf" so stored results round-trip exactly.
func (o Output) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range OutputFields {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.WriteString(strconv.Quote(f.Key))
		buf.WriteByte(':')
		buf.WriteString(encodeFloat(f.Value(o)))
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON accepts numbers and the non-finite string spellings. Unknown
// keys are ignored; missing keys leave the field untouched.
func (o *Output) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	for _, f := range OutputFields {
		msg, ok := raw[f.Key]
		if !ok {
			continue
		}
		v, err := decodeFloat(msg)
		if err != nil {
			return fmt.Errorf("decoding %s: %w", f.Key, err)
		}
		f.Set(o, v)
	}
	return nil
}

func encodeFloat(v float64) string {
	switch {
	case math.IsNaN(v):
		return strconv.Quote(jsonNaN)
	case math.IsInf(v, 1):
		return strconv.Quote(jsonPosInf)
	case math.IsInf(v, -1):
		return strconv.Quote(jsonNegInf)
	default:
		return strconv.FormatFloat(v, 'g', -1, 64)
	}
}

func decodeFloat(msg json.RawMessage) (float64, error) {
	// Older exports wrote unavailable indicators as null.
	if bytes.Equal(bytes.TrimSpace(msg), []byte("null")) {
		return math.NaN(), nil
	}

	var s string
	if err := json.Unmarshal(msg, &s); err == nil {
		switch s {
		case jsonNaN:
			return math.NaN(), nil
		case jsonPosInf, "Inf", "Infinity":
			return math.Inf(1), nil
		case jsonNegInf, "-Infinity":
			return math.Inf(-1), nil
		default:
			return 0, fmt.Errorf("unexpected value %q", s)
		}
	}

	var v float64
	if err := json.Unmarshal(msg, &v); err != nil {
		return 0, err
	}
	return v, nil
}
