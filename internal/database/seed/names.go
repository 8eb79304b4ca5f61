// Package seed creates demo simulations for trying the application out.
package seed

// FarmPrefixes and FarmNames combine into names like "Sítio Boa Esperança".
var FarmPrefixes = []string{"Sítio", "Fazenda", "Chácara", "Estância", "Recanto"}

// FarmNames is a curated list of common rural property names.
var FarmNames = []string{
	"Boa Esperança", "Santa Luzia", "São José", "Bela Vista", "Água Limpa",
	"Três Irmãos", "Santo Antônio", "Primavera", "Santa Rita", "Bom Jardim",
	"Sossego", "Ouro Verde", "Cachoeira", "Pedra Branca", "Vale Verde",
	"Nossa Senhora Aparecida", "Palmeiras", "Capão Alto", "Barra Mansa",
	"Monte Alegre", "Rio Claro", "Serra Azul", "Buriti", "Ipê Amarelo",
}

// Climate is a regional weather profile: daily means for the grazing season.
type Climate struct {
	Region            string
	TemperaturaMinima float64
	TemperaturaMaxima float64
	Precipitacao      float64
	UmidadeRelativa   float64
	VelocidadeDoVento float64
}

// Climates covers the main dairy basins.
var Climates = []Climate{
	{"Zona da Mata (MG)", 17.8, 28.9, 3.6, 78.0, 1.8},
	{"Sul de Minas (MG)", 14.9, 27.1, 4.1, 74.5, 2.1},
	{"Triângulo Mineiro (MG)", 19.2, 31.4, 3.9, 66.0, 2.4},
	{"Agreste (PE)", 21.5, 34.3, 2.0, 63.6, 3.6},
	{"Oeste (SC)", 13.4, 25.8, 5.1, 76.2, 2.6},
	{"Noroeste (RS)", 14.1, 26.7, 4.8, 73.1, 2.9},
	{"Sudoeste (GO)", 19.8, 32.2, 3.4, 62.8, 2.0},
	{"Vale do Paraíba (SP)", 16.6, 28.3, 3.8, 75.9, 1.7},
}

// Herd is a production system profile.
type Herd struct {
	Description     string
	PesoCorporal    float64
	ProducaoDeLeite float64
	Gordura         float64
	Proteina        float64
}

// Herds covers the usual breeds on pasture.
var Herds = []Herd{
	{"rebanho Girolando 1/2", 450, 14, 3.8, 3.2},
	{"rebanho Girolando 3/4", 480, 18, 3.6, 3.1},
	{"rebanho Holandês a pasto", 550, 24, 3.4, 3.0},
	{"rebanho Jersey", 380, 16, 4.6, 3.6},
	{"rebanho mestiço", 420, 10, 4.0, 3.3},
}
