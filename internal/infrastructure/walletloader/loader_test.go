package walletloader

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeHoldings(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "holdings.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadHoldings(t *testing.T) {
	path := writeHoldings(t, `
wallets:
  - address: "0x0255c9D3850cacA1152AEB20425C264787661692"
    holdings:
      - {symbol: ETH, name: Ethereum, balance: 2, price: 1500, change24hPercent: 2.5, chain: ethereum}
      - {symbol: MATIC, name: Polygon, balance: 100, price: 0.8, change24hPercent: -1, chain: polygon}
`)
	byWallet, err := LoadHoldings(path)
	require.NoError(t, err)

	holdings := byWallet["0x0255c9d3850caca1152aeb20425c264787661692"]
	require.Len(t, holdings, 2)
	assert.Equal(t, 3000.0, holdings[0].Value)
	assert.InDelta(t, 80.0, holdings[1].Value, 1e-9)
}

func TestLoadHoldings_Invalid(t *testing.T) {
	_, err := LoadHoldings(writeHoldings(t, "wallets:\n  - address: nope\n"))
	assert.Error(t, err)

	_, err = LoadHoldings(writeHoldings(t, `
wallets:
  - address: "0x0255c9D3850cacA1152AEB20425C264787661692"
  - address: "0x0255C9D3850CACA1152AEB20425C264787661692"
`))
	assert.Error(t, err)

	_, err = LoadHoldings(writeHoldings(t, `
wallets:
  - address: "0x0255c9D3850cacA1152AEB20425C264787661692"
    holdings:
      - {symbol: ETH, balance: 1, price: 1}
`))
	assert.Error(t, err)
}

func TestLoadHoldings_RejectsNaN(t *testing.T) {
	_, err := LoadHoldings(writeHoldings(t, `
wallets:
  - address: "0x0255c9D3850cacA1152AEB20425C264787661692"
    holdings:
      - {symbol: ETH, chain: ethereum, balance: .nan, price: 1}
`))
	assert.Error(t, err)
}
