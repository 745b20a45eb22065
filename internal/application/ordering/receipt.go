package ordering

import (
	"context"
	"strings"

	"github.com/jhoicas/Mercado-api/internal/domain"
	"github.com/jhoicas/Mercado-api/internal/domain/entity"
)

// Receipt genera el comprobante PDF de un pedido. Solo el dueño del pedido o staff.
func (uc *OrderUseCase) Receipt(ctx context.Context, principal entity.Principal, id string) ([]byte, error) {
	order, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if order.CustomerID != principal.CustomerID && !principal.IsStaff {
		return nil, domain.ErrForbidden
	}
	r := Receipt{
		OrderID:         order.ID,
		CreatedAt:       order.CreatedAt,
		Status:          string(order.Status),
		CustomerEmail:   order.CustomerEmail,
		PhoneCustomer:   order.PhoneCustomer,
		DeliveryAddress: order.DeliveryAddress,
		ProductName:     order.ProductName,
		FinalPrice:      order.FinalPrice,
	}
	customer, err := uc.customers.GetByID(ctx, order.CustomerID)
	if err != nil {
		return nil, err
	}
	if customer != nil {
		r.CustomerName = strings.TrimSpace(customer.FirstName + " " + customer.LastName)
	}
	product, err := uc.products.GetByID(ctx, order.ProductID)
	if err != nil {
		return nil, err
	}
	if product != nil {
		r.ListPrice = product.Price
		r.ProductValue = strings.TrimSpace(product.Value.String() + " " + product.Unit)
	}
	return uc.receipts.GenerateReceipt(r)
}
