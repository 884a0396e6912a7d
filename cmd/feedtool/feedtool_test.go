package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/giftshop/storefront/internal/usecase"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const namesCSV = "product_id,name,price\n" +
	"PROD-0001,Red Rose Bouquet 🌹🌹 for Her,\"₦45,000\"\n" +
	"PROD-0002,Red Rose Bouquet,\"₦30,000\"\n" +
	"PROD-0003\n"

func TestCleanNames(t *testing.T) {
	var out bytes.Buffer
	stats, err := cleanNames(strings.NewReader(namesCSV), &out, usecase.NewNameCleaner(0, nil), 10)

	require.NoError(t, err)
	assert.Equal(t, 3, stats.Total)
	assert.Equal(t, 1, stats.Changed)
	require.Len(t, stats.Samples, 1)
	assert.Equal(t, "Red Rose Bouquet", stats.Samples[0].New)

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "product_id,name,price", lines[0])
	assert.Equal(t, `PROD-0001,Red Rose Bouquet,"₦45,000"`, lines[1])
	assert.Equal(t, `PROD-0002,Red Rose Bouquet,"₦30,000"`, lines[2])
	assert.Equal(t, "PROD-0003,", lines[3])
}

func TestCleanNames_MissingNameColumn(t *testing.T) {
	_, err := cleanNames(strings.NewReader("id,title\n1,x\n"), &bytes.Buffer{}, usecase.NewNameCleaner(0, nil), 10)
	assert.ErrorContains(t, err, "no name column")
}

const pricingCSV = "name,image,sell_price,cost_price,profit\n" +
	"Rose,https://i.ibb.co/abc/0910-red-rose.jpg,\"₦52,752\",\"₦40,000\",\"₦12,752\"\n" +
	"Teddy,https://example.com/teddy.jpg,TBD,\"₦10,000\",\n"

func TestRepriceTable(t *testing.T) {
	var out bytes.Buffer
	stats, err := repriceTable(strings.NewReader(pricingCSV), &out, 10, zap.NewNop())

	require.NoError(t, err)
	assert.Equal(t, 2, stats.Total)
	assert.Equal(t, 1, stats.Coded)
	assert.Equal(t, 1, stats.Repriced)
	assert.Equal(t, []string{"Teddy"}, stats.Uncoded)
	assert.Equal(t, 1, stats.Endings["x,500"])

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "product_id,name,image,sell_price,cost_price,profit", lines[0])
	assert.Equal(t, `PROD-0910,Rose,https://i.ibb.co/abc/0910-red-rose.jpg,"₦53,500","₦40,000","₦13,500"`, lines[1])
	assert.Equal(t, `,Teddy,https://example.com/teddy.jpg,TBD,"₦10,000",`, lines[2])
}

func TestRepriceTable_ExistingIDColumn(t *testing.T) {
	input := "product_id,image,sell_price,cost_price\nOLD,https://x.example/images/0434_teddy.png,\"₦1,000\",\"₦500\"\n"

	var out bytes.Buffer
	_, err := repriceTable(strings.NewReader(input), &out, 0, zap.NewNop())

	require.NoError(t, err)
	assert.Equal(t,
		"product_id,image,sell_price,cost_price\nPROD-0434,https://x.example/images/0434_teddy.png,\"₦1,500\",₦500\n",
		out.String())
}

func TestRepriceTable_MissingColumns(t *testing.T) {
	_, err := repriceTable(strings.NewReader("name,price\nRose,1\n"), &bytes.Buffer{}, 0, zap.NewNop())
	assert.ErrorContains(t, err, "sell_price")
}

func TestEndingBucket(t *testing.T) {
	tests := map[int]string{
		53000: "x,000",
		53500: "x,500",
		53900: "x,900",
		59900: "x9,900",
		53750: "other",
	}
	for value, want := range tests {
		assert.Equal(t, want, endingBucket(value), value)
	}
}

func TestRootCommand_CleanNamesInPlace(t *testing.T) {
	path := filepath.Join(t.TempDir(), "products.csv")
	require.NoError(t, os.WriteFile(path, []byte(namesCSV), 0o644))

	var stdout bytes.Buffer
	root := newRootCommand()
	root.SetOut(&stdout)
	root.SetArgs([]string{"clean-names", "--input", path, "--output", "", "--log-level", "error"})

	require.NoError(t, root.Execute())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "for Her")
	assert.Contains(t, stdout.String(), "Names changed:  1")
}

func TestRootCommand_RepriceMissingInput(t *testing.T) {
	root := newRootCommand()
	root.SetOut(&bytes.Buffer{})
	root.SetArgs([]string{"reprice", "--input", filepath.Join(t.TempDir(), "missing.csv")})

	assert.Error(t, root.Execute())
}
