package settlement_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Mercado-api/internal/domain/settlement"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// ──────────────────────────────────────────────────────────────────────────────
// Escenarios de referencia
// ──────────────────────────────────────────────────────────────────────────────

func TestSettle_BilleteraMayorQuePrecio(t *testing.T) {
	r := settlement.Settle(d("100"), d("80"))
	assert.True(t, r.Wallet.Equal(d("20")), "wallet=%s", r.Wallet)
	assert.True(t, r.AmountDue.IsZero(), "due=%s", r.AmountDue)
	assert.True(t, r.Applied.Equal(d("80")))
}

func TestSettle_BilleteraMenorQuePrecio(t *testing.T) {
	r := settlement.Settle(d("30"), d("80"))
	assert.True(t, r.Wallet.IsZero())
	assert.True(t, r.AmountDue.Equal(d("50")), "due=%s", r.AmountDue)
	assert.True(t, r.Applied.Equal(d("30")))
}

func TestSettle_BilleteraIgualAPrecio(t *testing.T) {
	r := settlement.Settle(d("80"), d("80"))
	assert.True(t, r.Wallet.IsZero())
	assert.True(t, r.AmountDue.IsZero())
}

// ──────────────────────────────────────────────────────────────────────────────
// Propiedad: wallet = max(0, W-P), due = max(0, P-W)
// ──────────────────────────────────────────────────────────────────────────────

func TestSettle_PropiedadMaxCero(t *testing.T) {
	values := []string{"0", "0.01", "1", "79.99", "80", "80.01", "100", "500", "999999999999.99"}
	for _, ws := range values {
		for _, ps := range values {
			w, p := d(ws), d(ps)
			r := settlement.Settle(w, p)

			wantWallet := decimal.Max(decimal.Zero, w.Sub(p))
			wantDue := decimal.Max(decimal.Zero, p.Sub(w))

			assert.True(t, r.Wallet.Equal(wantWallet), "W=%s P=%s wallet=%s", ws, ps, r.Wallet)
			assert.True(t, r.AmountDue.Equal(wantDue), "W=%s P=%s due=%s", ws, ps, r.AmountDue)
			assert.False(t, r.Wallet.IsNegative())
			assert.False(t, r.AmountDue.IsNegative())
			// Lo aplicado más lo pendiente siempre cubre el precio.
			assert.True(t, r.Applied.Add(r.AmountDue).Equal(p), "W=%s P=%s", ws, ps)
		}
	}
}

func TestSettle_SecuenciaNuncaNegativa(t *testing.T) {
	wallet := d("120")
	for _, price := range []string{"50", "50", "50", "0", "10"} {
		wallet = settlement.Settle(wallet, d(price)).Wallet
		assert.False(t, wallet.IsNegative())
	}
	assert.True(t, wallet.IsZero())
}

func TestSettle_EntradasNegativasSeTratanComoCero(t *testing.T) {
	r := settlement.Settle(d("-10"), d("5"))
	assert.True(t, r.Wallet.IsZero())
	assert.True(t, r.AmountDue.Equal(d("5")))
}

func TestCredit(t *testing.T) {
	assert.True(t, settlement.Credit(d("20"), d("500")).Equal(d("520")))
	assert.True(t, settlement.Credit(decimal.Zero, d("500")).Equal(d("500")))
	assert.True(t, settlement.Credit(d("20"), d("-5")).Equal(d("20")))
}
