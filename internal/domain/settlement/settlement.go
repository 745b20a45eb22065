// Package settlement reparte el precio de un producto entre la billetera del
// cliente y el monto pendiente de pago (servicio de dominio puro, sin I/O).
package settlement

import "github.com/shopspring/decimal"

// Result salida de la liquidación.
type Result struct {
	Wallet    decimal.Decimal // saldo de billetera después del pedido
	AmountDue decimal.Decimal // final_price del pedido
	Applied   decimal.Decimal // parte del precio cubierta por la billetera
}

// Settle liquida un pedido de precio price contra una billetera wallet.
// Los tres casos se comparan sobre los valores originales:
//
//	wallet > price  -> billetera = wallet - price, debe 0
//	wallet < price  -> billetera = 0, debe price - wallet
//	wallet == price -> billetera = 0, debe 0
//
// Equivale a Wallet = max(0, W-P) y AmountDue = max(0, P-W). Entradas negativas se tratan como 0.
func Settle(wallet, price decimal.Decimal) Result {
	w := floorZero(wallet)
	p := floorZero(price)

	switch w.Cmp(p) {
	case 1:
		return Result{Wallet: w.Sub(p), AmountDue: decimal.Zero, Applied: p}
	case -1:
		return Result{Wallet: decimal.Zero, AmountDue: p.Sub(w), Applied: w}
	default:
		return Result{Wallet: decimal.Zero, AmountDue: decimal.Zero, Applied: p}
	}
}

// Credit suma una bonificación a la billetera; nunca deja un saldo negativo.
func Credit(wallet, amount decimal.Decimal) decimal.Decimal {
	return floorZero(floorZero(wallet).Add(floorZero(amount)))
}

func floorZero(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}
