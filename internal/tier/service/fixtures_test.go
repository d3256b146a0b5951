package service

import "psutier/internal/tier/model"

// fixtureBrands: урезанный справочник с реальными названиями линеек.
func fixtureBrands() map[string][]model.SeriesEntry {
	return map[string][]model.SeriesEntry{
		"corsair": {
			{MatchSeries: "RMx 2021", Tier: "A", Wattage: "550/650/750/850/1000W", Efficiency: "80+ Gold", Brand: "Corsair", Series: "RMx 2021"},
			{MatchSeries: "RM-e 2023", Tier: "B+", Wattage: "550-1200W", Efficiency: "80+ Gold", Brand: "Corsair"},
			{MatchSeries: "CX-M 2021", Tier: "D", Wattage: "450-750W", Efficiency: "80+ Bronze", Brand: "Corsair"},
		},
		"coolermaster": {
			{MatchSeries: "MWE Gold", Tier: "C", Wattage: "550-850W", Efficiency: "80+ Gold"},
			{MatchSeries: "MWE V2 Gold Full Mod.", Tier: "B+", Wattage: "550-850W", Efficiency: "80+ Gold"},
			{MatchSeries: "MWE Bronze V2", Tier: "D", Wattage: "450-750W", Efficiency: "80+ Bronze"},
			{MatchSeries: `V Series "Vanguard" SFX`, Tier: "A", Wattage: "550-850W", Efficiency: "80+ Gold"},
		},
		"thermaltake": {
			{MatchSeries: "Toughpower", Tier: "C", Wattage: AllPSUs},
			{MatchSeries: "Toughpower GF1", Tier: "B", Wattage: "650-1000W", Efficiency: "80+ Gold"},
			{MatchSeries: "Toughpower GF A3", Tier: "B", Wattage: "650-1200W", Efficiency: "80+ Gold"},
			{MatchSeries: "Toughpower GF3 Premium, Original", Tier: "A", Wattage: "750-1650W", Efficiency: "80+ Gold"},
			{MatchSeries: "Smart", Tier: "F", Wattage: "430-700W", Efficiency: "80+ White/Standard"},
		},
		"montech": {
			{MatchSeries: "Century", Tier: "C", Wattage: "650-1050W", Efficiency: "80+ Gold"},
			{MatchSeries: "Century II Gold ATX 3.1", Tier: "A-", Wattage: "850/1050/1200W", Efficiency: "80+ Gold"},
		},
		"nzxt": {
			{MatchSeries: "C Series Gold V2", Tier: "B", Wattage: "650-850W", Efficiency: "80+ Gold"},
			{MatchSeries: "C Series Gold V1", Tier: "C", Wattage: "650-850W", Efficiency: "80+ Gold"},
			{MatchSeries: "C Series Gold ATX 3.1", Tier: "B+", Wattage: "850-1200W", Efficiency: "80+ Gold"},
			{MatchSeries: "C Series Bronze", Tier: "D", Wattage: "550-850W", Efficiency: "80+ Bronze"},
		},
		"1stplayer": {
			{MatchSeries: "NGDP", Tier: "A-", Wattage: "750-1300W", Efficiency: "80+ Gold"},
		},
		"fsp": {
			{MatchSeries: "Hydro G Pro", Tier: "B", Wattage: "550-1000W", Efficiency: "80+ Gold"},
		},
		"fspgroup": {
			{MatchSeries: "Hydro G Pro", Tier: "B", Wattage: "550-1000W", Efficiency: "80+ Gold"},
		},
		"gaming": {
			{MatchSeries: "Anything", Tier: "F"},
		},
	}
}

func fixtureTable() *Table {
	return NewTable(fixtureBrands(), "test")
}

func fixtureResolver() *Resolver {
	return NewResolver(fixtureTable(), nil)
}
