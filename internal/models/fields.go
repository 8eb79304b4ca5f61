package models

import (
	"strings"
	"unicode"
)

// InputGroup is a step of the input form.
type InputGroup string

const (
	GroupAmbiente      InputGroup = "Ambiente"
	GroupAguaESolo     InputGroup = "Água e Solo"
	GroupPropriedade   InputGroup = "Propriedade"
	GroupRebanho       InputGroup = "Rebanho"
	GroupEconomico     InputGroup = "Econômico"
	GroupSensibilidade InputGroup = "Sensibilidade"
)

// InputGroups lists the form steps in display order.
func InputGroups() []InputGroup {
	return []InputGroup{
		GroupAmbiente, GroupAguaESolo, GroupPropriedade,
		GroupRebanho, GroupEconomico, GroupSensibilidade,
	}
}

// InputField describes one Input field for forms, flags and exports.
type InputField struct {
	Key    string
	Label  string
	Unit   string
	Digits int
	Group  InputGroup
	ptr    func(*Input) *float64
}

// Value reads the field from in.
func (f InputField) Value(in Input) float64 { return *f.ptr(&in) }

// Set writes v into the field of in.
func (f InputField) Set(in *Input, v float64) { *f.ptr(in) = v }

// FlagName is the kebab-case command line spelling of the key.
func (f InputField) FlagName() string { return kebab(f.Key) }

// ConfigName is the snake_case spelling used in TOML files.
func (f InputField) ConfigName() string { return strings.ReplaceAll(kebab(f.Key), "-", "_") }

// InputFields lists every Input field in form order.
var InputFields = []InputField{
	{"temperaturaMinima", "Temp. Mínima", "°C", 1, GroupAmbiente, func(i *Input) *float64 { return &i.TemperaturaMinima }},
	{"temperaturaMaxima", "Temp. Máxima", "°C", 1, GroupAmbiente, func(i *Input) *float64 { return &i.TemperaturaMaxima }},
	{"precipitacao", "Precipitação", "mm/dia", 1, GroupAmbiente, func(i *Input) *float64 { return &i.Precipitacao }},
	{"umidadeRelativa", "Umidade Relativa", "%", 1, GroupAmbiente, func(i *Input) *float64 { return &i.UmidadeRelativa }},
	{"velocidadeDoVento", "Velocidade do Vento", "m/s", 1, GroupAmbiente, func(i *Input) *float64 { return &i.VelocidadeDoVento }},

	{"aguaDisponivelParaIrrigacao", "Água Disponível", "m³/dia", 0, GroupAguaESolo, func(i *Input) *float64 { return &i.AguaDisponivelParaIrrigacao }},
	{"aguaDeOutrosUsos", "Água Outros Usos", "L/mês", 0, GroupAguaESolo, func(i *Input) *float64 { return &i.AguaDeOutrosUsos }},
	{"doseDeN", "Dose de N", "kg N/ha/ano", 0, GroupAguaESolo, func(i *Input) *float64 { return &i.DoseDeN }},

	{"area", "Área", "ha", 1, GroupPropriedade, func(i *Input) *float64 { return &i.Area }},
	{"numeroDePiquetes", "Nº de Piquetes", "", 0, GroupPropriedade, func(i *Input) *float64 { return &i.NumeroDePiquetes }},
	{"deslocamentoHorizontal", "Deslocamento Horizontal", "m", 0, GroupPropriedade, func(i *Input) *float64 { return &i.DeslocamentoHorizontal }},
	{"deslocamentoVertical", "Deslocamento Vertical", "m", 0, GroupPropriedade, func(i *Input) *float64 { return &i.DeslocamentoVertical }},

	{"pesoCorporal", "Peso Corporal", "kg", 0, GroupRebanho, func(i *Input) *float64 { return &i.PesoCorporal }},
	{"producaoDeLeite", "Produção de Leite", "L/vaca/dia", 1, GroupRebanho, func(i *Input) *float64 { return &i.ProducaoDeLeite }},
	{"teorDeGorduraNoLeite", "Teor de Gordura", "%", 2, GroupRebanho, func(i *Input) *float64 { return &i.TeorDeGorduraNoLeite }},
	{"teorDePBNoLeite", "Teor de Proteína Bruta", "%", 2, GroupRebanho, func(i *Input) *float64 { return &i.TeorDePBNoLeite }},
	{"vacasEmLactacao", "Vacas em Lactação", "%", 1, GroupRebanho, func(i *Input) *float64 { return &i.VacasEmLactacao }},

	{"investimentoPorL", "Investimento por Litro", "R$/L", 2, GroupEconomico, func(i *Input) *float64 { return &i.InvestimentoPorL }},
	{"rendaFamiliar", "Renda Familiar", "R$/mês", 2, GroupEconomico, func(i *Input) *float64 { return &i.RendaFamiliar }},
	{"taxaDeDepreciacao", "Taxa de Depreciação", "%/ano", 3, GroupEconomico, func(i *Input) *float64 { return &i.TaxaDeDepreciacao }},

	{"varCOE", "Var. COE", "×", 2, GroupSensibilidade, func(i *Input) *float64 { return &i.VarCOE }},
	{"varDPL", "Var. DPL (Perda Prod.)", "×", 2, GroupSensibilidade, func(i *Input) *float64 { return &i.VarDPL }},
	{"varFOR", "Var. Produção Forragem", "×", 2, GroupSensibilidade, func(i *Input) *float64 { return &i.VarFOR }},
	{"varMS", "Var. Consumo MS", "×", 2, GroupSensibilidade, func(i *Input) *float64 { return &i.VarMS }},
	{"varPreco", "Var. Preço Leite", "×", 2, GroupSensibilidade, func(i *Input) *float64 { return &i.VarPreco }},
}

// LookupInputField finds a field by key, flag name or TOML name.
func LookupInputField(name string) (InputField, bool) {
	for _, f := range InputFields {
		if f.Key == name || f.FlagName() == name || f.ConfigName() == name {
			return f, true
		}
	}
	return InputField{}, false
}

// InputFieldsIn returns the fields of one form step.
func InputFieldsIn(g InputGroup) []InputField {
	var out []InputField
	for _, f := range InputFields {
		if f.Group == g {
			out = append(out, f)
		}
	}
	return out
}

// OutputField describes one Output indicator.
type OutputField struct {
	Key    string
	Label  string
	Unit   string
	Digits int
	ptr    func(*Output) *float64
}

// Value reads the indicator from o.
func (f OutputField) Value(o Output) float64 { return *f.ptr(&o) }

// Set writes v into the indicator of o.
func (f OutputField) Set(o *Output, v float64) { *f.ptr(o) = v }

// OutputFields lists every indicator in record order.
var OutputFields = []OutputField{
	{"aguaAplicada", "Água Aplicada", "mm/dia", 2, func(o *Output) *float64 { return &o.AguaAplicada }},
	{"capacidadeDeSuporte", "Capacidade Suporte", "animais", 1, func(o *Output) *float64 { return &o.CapacidadeDeSuporte }},
	{"coe", "COE", "R$/L", 3, func(o *Output) *float64 { return &o.Coe }},
	{"coeTotal", "COE Total", "R$/ano", 2, func(o *Output) *float64 { return &o.CoeTotal }},
	{"consumo", "Consumo de MS", "kg MS/dia", 2, func(o *Output) *float64 { return &o.Consumo }},
	{"consumoDeNDT", "Consumo de NDT", "kg/dia", 2, func(o *Output) *float64 { return &o.ConsumoDeNDT }},
	{"consumoTotal", "Consumo Total", "kg MS/dia", 2, func(o *Output) *float64 { return &o.ConsumoTotal }},
	{"cot", "COT", "R$/L", 3, func(o *Output) *float64 { return &o.Cot }},
	{"depreciacao", "Depreciação", "R$/L", 3, func(o *Output) *float64 { return &o.Depreciacao }},
	{"dpl", "Perda de Produção (DPL)", "L/vaca/dia", 2, func(o *Output) *float64 { return &o.Dpl }},
	{"dplAnual", "DPL Anual", "L/vaca/ano", 1, func(o *Output) *float64 { return &o.DplAnual }},
	{"eto", "Evapotranspiração (ETo)", "mm/dia", 2, func(o *Output) *float64 { return &o.Eto }},
	{"forragemDisponivel", "Forragem Disponível", "kg MS", 0, func(o *Output) *float64 { return &o.ForragemDisponivel }},
	{"investimentoTotal", "Investimento Total", "R$", 2, func(o *Output) *float64 { return &o.InvestimentoTotal }},
	{"irrigacao", "Necessidade de Irrigação", "mm/dia", 2, func(o *Output) *float64 { return &o.Irrigacao }},
	{"itu", "ITU", "", 1, func(o *Output) *float64 { return &o.Itu }},
	{"mdoFamiliar", "Mão de Obra Familiar", "R$/L", 3, func(o *Output) *float64 { return &o.MdoFamiliar }},
	{"ml", "Margem Líquida", "R$/L", 3, func(o *Output) *float64 { return &o.Ml }},
	{"mlAnual", "Lucro Anual (ML Anual)", "R$", 2, func(o *Output) *float64 { return &o.MlAnual }},
	{"mlPorArea", "ML por Área", "R$/ha/ano", 2, func(o *Output) *float64 { return &o.MlPorArea }},
	{"ndtDeslocamento", "NDT Deslocamento", "kg/dia", 3, func(o *Output) *float64 { return &o.NdtDeslocamento }},
	{"ndtDH", "NDT Desl. Horizontal", "kg/dia", 3, func(o *Output) *float64 { return &o.NdtDH }},
	{"ndtDV", "NDT Desl. Vertical", "kg/dia", 3, func(o *Output) *float64 { return &o.NdtDV }},
	{"participacaoDaIrrigacaoNaAgua", "Participação da Irrigação", "%", 2, func(o *Output) *float64 { return &o.ParticipacaoDaIrrigacaoNaAgua }},
	{"payback", "Payback", "anos", 1, func(o *Output) *float64 { return &o.Payback }},
	{"pegadaHidrica", "Pegada Hídrica", "L H2O/L leite", 1, func(o *Output) *float64 { return &o.PegadaHidrica }},
	{"perdaDeReceitaComEstresse", "Perda Receita (Estresse)", "R$/ano", 2, func(o *Output) *float64 { return &o.PerdaDeReceitaComEstresse }},
	{"precoDoLeite", "Preço do Leite", "R$/L", 2, func(o *Output) *float64 { return &o.PrecoDoLeite }},
	{"producaoDeForragem", "Produção de Forragem", "kg MS/m²", 3, func(o *Output) *float64 { return &o.ProducaoDeForragem }},
	{"producaoDeLeiteHaAno", "Produção Anual", "L/ha/ano", 0, func(o *Output) *float64 { return &o.ProducaoDeLeiteHaAno }},
	{"producaoDeLeiteHaDia", "Produção por Hectare", "L/ha/dia", 1, func(o *Output) *float64 { return &o.ProducaoDeLeiteHaDia }},
	{"producaoDiaria", "Produção Diária", "L/dia", 0, func(o *Output) *float64 { return &o.ProducaoDiaria }},
	{"receitaPorArea", "Receita por Área", "R$/ha/ano", 2, func(o *Output) *float64 { return &o.ReceitaPorArea }},
	{"receitaTotalAno", "Receita Anual", "R$/ano", 2, func(o *Output) *float64 { return &o.ReceitaTotalAno }},
	{"receitaTotalMes", "Receita Mensal", "R$/mês", 2, func(o *Output) *float64 { return &o.ReceitaTotalMes }},
	{"suplementacao", "Suplementação", "kg/vaca/dia", 2, func(o *Output) *float64 { return &o.Suplementacao }},
	{"taxaDeLotacao", "Taxa de Lotação", "vacas/ha", 1, func(o *Output) *float64 { return &o.TaxaDeLotacao }},
	{"tensaoDaAguaNoSolo", "Tensão da Água no Solo", "MPa", 3, func(o *Output) *float64 { return &o.TensaoDaAguaNoSolo }},
	{"trci", "Rentabilidade (TRCI)", "%", 2, func(o *Output) *float64 { return &o.Trci }},
}

// LookupOutputField finds an indicator by key.
func LookupOutputField(key string) (OutputField, bool) {
	for _, f := range OutputFields {
		if f.Key == key {
			return f, true
		}
	}
	return OutputField{}, false
}

// ResultSection groups indicators on the result screen.
type ResultSection struct {
	Title string
	Keys  []string
}

// ResultSections is the layout of the result screen.
var ResultSections = []ResultSection{
	{
		Title: "Resumo Produtivo",
		Keys:  []string{"producaoDiaria", "producaoDeLeiteHaAno", "capacidadeDeSuporte", "consumoTotal"},
	},
	{
		Title: "Indicadores Financeiros",
		Keys:  []string{"ml", "mlAnual", "trci", "payback", "investimentoTotal", "coeTotal", "precoDoLeite"},
	},
	{
		Title: "Ambiente e Estresse",
		Keys:  []string{"itu", "perdaDeReceitaComEstresse", "pegadaHidrica"},
	},
}

// ReportKeys are the indicators printed in the technical report.
var ReportKeys = []string{
	"producaoDiaria", "producaoDeLeiteHaAno", "capacidadeDeSuporte", "taxaDeLotacao",
	"ml", "trci", "payback", "pegadaHidrica", "itu",
}

// kebab converts camelCase keys: "varCOE" -> "var-coe",
// "teorDePBNoLeite" -> "teor-de-pb-no-leite".
func kebab(s string) string {
	rs := []rune(s)
	var b strings.Builder
	for i, r := range rs {
		if !unicode.IsUpper(r) {
			b.WriteRune(r)
			continue
		}
		if i > 0 {
			prevLower := unicode.IsLower(rs[i-1])
			acronymEnd := unicode.IsUpper(rs[i-1]) && i+1 < len(rs) && unicode.IsLower(rs[i+1])
			if prevLower || acronymEnd {
				b.WriteByte('-')
			}
		}
		b.WriteRune(unicode.ToLower(r))
	}
	return b.String()
}
