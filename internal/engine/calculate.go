// Package engine computes the agronomic and financial indicators of a
// pasture-based dairy farm from a single input snapshot.
//
// Calculate is pure: no I/O, no clock, no randomness, no shared state. It is
// safe to call from any number of goroutines. It never panics or returns an
// error; degenerate inputs show up as NaN or ±Inf in the affected fields.
package engine

import (
	"math"

	"github.com/ifplan/ifplan/internal/models"
)

const (
	daysPerYear  = 365.0
	daysPerMonth = 30.4
	m2PerHectare = 10000.0

	// Nitrogen dose at which the forage regression was fitted.
	referenceDoseN = 1200.0
	// Share of standing forage a paddock offers per grazing.
	grazingEfficiency = 0.2
	// Share of available forage actually consumed.
	forageUtilization = 0.95
	// Litres of milk that justify one kg of concentrate.
	milkPerConcentrateKg = 2.5
	// Conversion of walking energy (Mcal) to kg TDN.
	mcalToTDN = 0.43
)

// Calculate runs the full indicator chain for one input.
func Calculate(in models.Input) models.Output {
	var out models.Output

	// Thermal comfort and heat-stress loss.
	tm := (in.TemperaturaMaxima + in.TemperaturaMinima) / 2
	itu := 0.8*tm + (in.UmidadeRelativa/100)*(tm-14.4) + 46.4
	dpl := -1.075 - 1.736*in.ProducaoDeLeite + 0.02474*in.ProducaoDeLeite*itu
	scaledDPL := dpl * in.VarDPL

	out.Itu = itu
	out.Dpl = scaledDPL
	out.DplAnual = scaledDPL * daysPerYear

	// Water balance.
	eto := ((24.211*in.TemperaturaMaxima-635.46)/30.4 + (53.984*in.VelocidadeDoVento+10.898)/30.4) / 2
	irrigacao := math.Max(0, eto-in.Precipitacao)
	// Unguarded: area == 0 makes supply ±Inf or NaN.
	supplyMM := (in.AguaDisponivelParaIrrigacao * 1000) / (in.Area * m2PerHectare)
	effective := supplyMM
	if supplyMM >= irrigacao {
		effective = irrigacao
	}
	aguaAplicada := in.Precipitacao + effective

	out.Eto = eto
	out.Irrigacao = irrigacao
	out.AguaAplicada = aguaAplicada
	if aguaAplicada != 0 {
		out.TensaoDaAguaNoSolo = 0.0368068 + (-1.06252 / aguaAplicada)
	}

	// Forage.
	t := out.TensaoDaAguaNoSolo
	tensionTerm := 1.36722 - 0.284546*t - 2.13514*t*t
	nitrogenTerm := (100.31 + 0.1377*in.DoseDeN) / (100.31 + 0.1377*referenceDoseN)
	producaoDeForragem := tensionTerm * nitrogenTerm * in.VarFOR
	// Unguarded: numeroDePiquetes == 0.
	forragemDisponivel := producaoDeForragem * m2PerHectare * (in.Area / in.NumeroDePiquetes) * grazingEfficiency

	out.ProducaoDeForragem = producaoDeForragem
	out.ForragemDisponivel = forragemDisponivel

	// Intake.
	consumo := -4.69 + 0.0142*in.PesoCorporal + 0.356*in.ProducaoDeLeite + 1.72*in.TeorDeGorduraNoLeite
	ndtPct := 48.6 - 0.0183*in.PesoCorporal + 0.435*in.ProducaoDeLeite + 0.728*in.TeorDeGorduraNoLeite + 3.46*in.TeorDePBNoLeite
	consumoDeNDT := (ndtPct * 1.04 / 100) * consumo

	ndtDH := 0.00048 * in.PesoCorporal * (in.DeslocamentoHorizontal / 1000) * mcalToTDN
	ndtDV := 0.0
	if in.DeslocamentoVertical > 0 {
		ndtDV = 0.00669 * in.PesoCorporal * (in.DeslocamentoVertical / 1000)
	}
	ndtDV *= mcalToTDN
	ndtDeslocamento := ndtDH + ndtDV

	walkingExtra := 0.0
	if consumoDeNDT != 0 {
		walkingExtra = ndtDeslocamento / consumoDeNDT * consumo
	}
	consumoTotal := (consumo + walkingExtra) * in.VarMS
	suplementacao := in.ProducaoDeLeite / milkPerConcentrateKg

	out.Consumo = consumo
	out.ConsumoDeNDT = consumoDeNDT
	out.NdtDH = ndtDH
	out.NdtDV = ndtDV
	out.NdtDeslocamento = ndtDeslocamento
	out.ConsumoTotal = consumoTotal
	out.Suplementacao = suplementacao

	// Herd and milk output.
	// Unguarded: consumoTotal == suplementacao.
	capacidade := (forragemDisponivel * forageUtilization) / (consumoTotal - suplementacao)
	lactating := capacidade * (in.VacasEmLactacao / 100)
	producaoDiaria := (in.ProducaoDeLeite - scaledDPL) * lactating
	producaoAnual := producaoDiaria * daysPerYear

	out.CapacidadeDeSuporte = capacidade
	out.ProducaoDiaria = producaoDiaria
	out.ProducaoDeLeiteHaDia = producaoDiaria / in.Area
	out.ProducaoDeLeiteHaAno = producaoAnual / in.Area
	out.TaxaDeLotacao = lactating / in.Area

	// Costs.
	d := producaoDiaria
	y := in.ProducaoDeLeite
	coe := (4.52816 - 0.000142*d + 7.67199e-09*d*d - 0.24042*y + 0.004937*y*y) * in.VarCOE
	investimentoTotal := in.InvestimentoPorL * producaoDiaria
	depreciacao := in.InvestimentoPorL * (in.TaxaDeDepreciacao / 100 / daysPerYear)
	// Unguarded: producaoDiaria == 0.
	mdoFamiliar := in.RendaFamiliar / (producaoDiaria * daysPerMonth)
	cot := coe + mdoFamiliar + depreciacao

	out.Coe = coe
	out.CoeTotal = coe * producaoAnual
	out.InvestimentoTotal = investimentoTotal
	out.Depreciacao = depreciacao
	out.MdoFamiliar = mdoFamiliar
	out.Cot = cot

	// Revenue and margin. A negative daily production yields NaN from Pow.
	fat := in.TeorDeGorduraNoLeite
	preco := (0.631922*math.Pow(producaoDiaria, 0.102383) + (-0.0132*fat*fat + 0.1384*fat - 0.3089)) * in.VarPreco
	ml := preco - cot
	mlAnual := ml * producaoAnual
	receitaAno := preco * producaoAnual

	out.PrecoDoLeite = preco
	out.Ml = ml
	out.MlAnual = mlAnual
	out.MlPorArea = mlAnual / in.Area
	out.ReceitaTotalAno = receitaAno
	out.ReceitaTotalMes = receitaAno / 12
	out.ReceitaPorArea = receitaAno / in.Area
	out.PerdaDeReceitaComEstresse = scaledDPL * lactating * daysPerYear * preco

	// Water footprint.
	irrigationWater := aguaAplicada * m2PerHectare * in.Area
	totalWater := irrigationWater + in.AguaDeOutrosUsos/daysPerMonth
	out.PegadaHidrica = totalWater / producaoDiaria
	out.ParticipacaoDaIrrigacaoNaAgua = irrigationWater / totalWater * 100

	// Return on investment.
	if mlAnual != 0 {
		out.Payback = investimentoTotal / mlAnual
	}
	if investimentoTotal != 0 {
		out.Trci = mlAnual / investimentoTotal * 100
	}

	return out
}
