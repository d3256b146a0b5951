package batch

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"psutier/internal/fileio"
	"psutier/internal/tier/model"
	"psutier/internal/tier/service"
)

func testResolver() *service.Resolver {
	tbl := service.NewTable(map[string][]model.SeriesEntry{
		"corsair": {
			{MatchSeries: "RMx 2021", Tier: "A", Wattage: "550/650/750/850/1000W", Efficiency: "80+ Gold"},
		},
		"thermaltake": {
			{MatchSeries: "Toughpower", Tier: "C", Wattage: service.AllPSUs},
			{MatchSeries: "Smart", Tier: "F", Wattage: "430-700W", Efficiency: "80+ White/Standard"},
		},
	}, "v-test")
	return service.NewResolver(tbl, nil)
}

func TestResolveColumn(t *testing.T) {
	t.Parallel()

	headers := []string{"Артикул", "Наименование товара", "Мощность, Вт", "Product", "Цена"}
	assert.Equal(t, "Product", resolveColumn(headers, "product"))
	assert.Equal(t, "Наименование товара", resolveColumn(headers, "наименование"))
	assert.Equal(t, "Мощность, Вт", resolveColumn(headers, DefaultWattageColumns))
	assert.Equal(t, "Product", resolveColumn(headers, DefaultNameColumns))
	assert.Equal(t, "Цена", resolveColumn(headers, "ЦЕНА"))
	assert.Equal(t, "", resolveColumn(headers, "sku"))
	assert.Equal(t, "", resolveColumn(headers, ""))
}

func TestNormHeaderKey(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "мощность вт", normHeaderKey("  Мощность, Вт "))
	assert.Equal(t, "еще", normHeaderKey("Ещё"))
}

func readCSV(t *testing.T, body string) *fileio.Sheet {
	t.Helper()
	sh, err := fileio.ReadAny(strings.NewReader(body), "in.csv", 1)
	require.NoError(t, err)
	return sh
}

func TestRows(t *testing.T) {
	t.Parallel()

	sh := readCSV(t, "Product,Power\n"+
		"Corsair RM850x (2018),850W\n"+
		"Product,Power\n"+
		",500\n"+
		"Thermaltake Smart 500W,\n"+
		"Thermaltake Toughpower GT,1.000W\n")

	rows, m, err := Rows(sh, Options{InferWattage: true})
	require.NoError(t, err)
	assert.Equal(t, "Product", m.NameKey)
	assert.Equal(t, "Power", m.WattageKey)
	require.Len(t, rows, 3)
	assert.Equal(t, model.ProductRow{Line: 2, Name: "Corsair RM850x (2018)", Wattage: 850}, rows[0])
	assert.Equal(t, model.ProductRow{Line: 5, Name: "Thermaltake Smart 500W", Wattage: 500}, rows[1])
	assert.Equal(t, 1000, rows[2].Wattage)

	rows, _, err = Rows(sh, Options{WattageColumn: "-"})
	require.NoError(t, err)
	assert.Zero(t, rows[1].Wattage)
}

func TestRows_NoNameColumn(t *testing.T) {
	t.Parallel()

	_, _, err := Rows(readCSV(t, "sku,price\n1,2\n"), Options{})
	assert.ErrorIs(t, err, ErrNoNameColumn)
}

func TestRun(t *testing.T) {
	t.Parallel()

	rows := []model.ProductRow{
		{Line: 2, Name: "Corsair RM850x (2018)", Wattage: 850},
		{Line: 3, Name: "Thermaltake Smart 850W", Wattage: 850},
		{Line: 4, Name: "Noname 400W", Wattage: 400},
		{Line: 5, Name: "Thermaltake Smart 500W", Wattage: 500},
	}
	res, err := Run(context.Background(), testResolver(), rows, 3)
	require.NoError(t, err)

	require.Len(t, res.Rows, 4)
	for i, r := range res.Rows {
		assert.Equal(t, rows[i].Line, r.Line)
	}
	assert.Equal(t, "A", res.Rows[0].Tier)
	assert.Equal(t, "RMx 2021", res.Rows[0].Series)
	assert.Equal(t, "no_series", res.Rows[1].Outcome)
	assert.Equal(t, "unknown_brand", res.Rows[2].Outcome)
	assert.Equal(t, "F", res.Rows[3].Tier)
	assert.Equal(t, 2, res.Matched)
	assert.Equal(t, 4, res.Total)
	assert.Equal(t, map[string]int{"matched": 2, "no_series": 1, "unknown_brand": 1}, res.Stats)
	assert.Equal(t, "v-test", res.Table)
}

func TestRun_Canceled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Run(ctx, testResolver(), []model.ProductRow{{Name: "Corsair RM850x"}}, 2)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRun_Empty(t *testing.T) {
	t.Parallel()

	res, err := Run(context.Background(), testResolver(), nil, 0)
	require.NoError(t, err)
	assert.Zero(t, res.Total)
	assert.Empty(t, res.Rows)
}
