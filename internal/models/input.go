package models

// Input is the full parameter set for one farm scenario. Every field is
// required; zero is a legal value. The five Var* fields are sensitivity
// multipliers where 1.0 means "no adjustment".
type Input struct {
	// Ambiente
	TemperaturaMinima float64 `json:"temperaturaMinima" yaml:"temperaturaMinima" toml:"temperatura_minima" validate:"finite,gte=0"`
	TemperaturaMaxima float64 `json:"temperaturaMaxima" yaml:"temperaturaMaxima" toml:"temperatura_maxima" validate:"finite,gte=0"`
	Precipitacao      float64 `json:"precipitacao" yaml:"precipitacao" toml:"precipitacao" validate:"finite,gte=0"`
	UmidadeRelativa   float64 `json:"umidadeRelativa" yaml:"umidadeRelativa" toml:"umidade_relativa" validate:"finite,gte=0"`
	VelocidadeDoVento float64 `json:"velocidadeDoVento" yaml:"velocidadeDoVento" toml:"velocidade_do_vento" validate:"finite,gte=0"`

	// Água e Solo
	AguaDisponivelParaIrrigacao float64 `json:"aguaDisponivelParaIrrigacao" yaml:"aguaDisponivelParaIrrigacao" toml:"agua_disponivel_para_irrigacao" validate:"finite,gte=0"`
	AguaDeOutrosUsos            float64 `json:"aguaDeOutrosUsos" yaml:"aguaDeOutrosUsos" toml:"agua_de_outros_usos" validate:"finite,gte=0"`
	DoseDeN                     float64 `json:"doseDeN" yaml:"doseDeN" toml:"dose_de_n" validate:"finite,gte=0"`

	// Propriedade
	Area                   float64 `json:"area" yaml:"area" toml:"area" validate:"finite,gte=0"`
	NumeroDePiquetes       float64 `json:"numeroDePiquetes" yaml:"numeroDePiquetes" toml:"numero_de_piquetes" validate:"finite,gte=0"`
	DeslocamentoHorizontal float64 `json:"deslocamentoHorizontal" yaml:"deslocamentoHorizontal" toml:"deslocamento_horizontal" validate:"finite,gte=0"`
	DeslocamentoVertical   float64 `json:"deslocamentoVertical" yaml:"deslocamentoVertical" toml:"deslocamento_vertical" validate:"finite,gte=0"`

	// Rebanho
	PesoCorporal         float64 `json:"pesoCorporal" yaml:"pesoCorporal" toml:"peso_corporal" validate:"finite,gte=0"`
	ProducaoDeLeite      float64 `json:"producaoDeLeite" yaml:"producaoDeLeite" toml:"producao_de_leite" validate:"finite,gte=0"`
	TeorDeGorduraNoLeite float64 `json:"teorDeGorduraNoLeite" yaml:"teorDeGorduraNoLeite" toml:"teor_de_gordura_no_leite" validate:"finite,gte=0"`
	TeorDePBNoLeite      float64 `json:"teorDePBNoLeite" yaml:"teorDePBNoLeite" toml:"teor_de_pb_no_leite" validate:"finite,gte=0"`
	VacasEmLactacao      float64 `json:"vacasEmLactacao" yaml:"vacasEmLactacao" toml:"vacas_em_lactacao" validate:"finite,gte=0"`

	// Econômico
	InvestimentoPorL  float64 `json:"investimentoPorL" yaml:"investimentoPorL" toml:"investimento_por_l" validate:"finite,gte=0"`
	RendaFamiliar     float64 `json:"rendaFamiliar" yaml:"rendaFamiliar" toml:"renda_familiar" validate:"finite,gte=0"`
	TaxaDeDepreciacao float64 `json:"taxaDeDepreciacao" yaml:"taxaDeDepreciacao" toml:"taxa_de_depreciacao" validate:"finite,gte=0"`

	// Sensibilidade
	VarCOE   float64 `json:"varCOE" yaml:"varCOE" toml:"var_coe" validate:"finite,gte=0,lte=2"`
	VarDPL   float64 `json:"varDPL" yaml:"varDPL" toml:"var_dpl" validate:"finite,gte=0,lte=2"`
	VarFOR   float64 `json:"varFOR" yaml:"varFOR" toml:"var_for" validate:"finite,gte=0,lte=2"`
	VarMS    float64 `json:"varMS" yaml:"varMS" toml:"var_ms" validate:"finite,gte=0,lte=2"`
	VarPreco float64 `json:"varPreco" yaml:"varPreco" toml:"var_preco" validate:"finite,gte=0,lte=2"`
}

// DefaultInput returns the reference scenario shipped with the form: a 50 ha
// irrigated pasture in a hot, humid climate.
func DefaultInput() Input {
	return Input{
		TemperaturaMinima: 21.5,
		TemperaturaMaxima: 34.3,
		Precipitacao:      2.027,
		UmidadeRelativa:   63.6,
		VelocidadeDoVento: 3.6,

		AguaDisponivelParaIrrigacao: 3000,
		AguaDeOutrosUsos:            50000,
		DoseDeN:                     1200,

		Area:                   50,
		NumeroDePiquetes:       24,
		DeslocamentoHorizontal: 5000,
		DeslocamentoVertical:   300,

		PesoCorporal:         450,
		ProducaoDeLeite:      18,
		TeorDeGorduraNoLeite: 3.8,
		TeorDePBNoLeite:      3.2,
		VacasEmLactacao:      78,

		InvestimentoPorL:  750,
		RendaFamiliar:     5000,
		TaxaDeDepreciacao: 6.667,

		VarCOE:   1.4,
		VarDPL:   1,
		VarFOR:   1,
		VarMS:    1,
		VarPreco: 1.35,
	}
}

// Neutral returns a copy of the input with every sensitivity multiplier set
// to 1.0.
func (in Input) Neutral() Input {
	in.VarCOE = 1
	in.VarDPL = 1
	in.VarFOR = 1
	in.VarMS = 1
	in.VarPreco = 1
	return in
}

// Validate checks the input against the form rules.
func (in Input) Validate() error {
	return validateStruct(in)
}
