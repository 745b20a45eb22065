// Package ordering implementa la creación de pedidos con liquidación contra la
// billetera del cliente y el cambio de estado con bonificación por entrega.
package ordering

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Mercado-api/internal/application/dto"
	"github.com/jhoicas/Mercado-api/internal/application/validation"
	"github.com/jhoicas/Mercado-api/internal/domain"
	"github.com/jhoicas/Mercado-api/internal/domain/entity"
	"github.com/jhoicas/Mercado-api/internal/domain/repository"
	"github.com/jhoicas/Mercado-api/internal/domain/settlement"
	"github.com/jhoicas/Mercado-api/pkg/config"
	"github.com/jhoicas/Mercado-api/pkg/logger"
	"github.com/shopspring/decimal"
)

// Config reglas de la bonificación por entrega.
type Config struct {
	RebateAmount    decimal.Decimal
	RebateRecipient string // config.RebateRecipientActor | config.RebateRecipientCustomer
}

// OrderUseCase casos de uso de pedidos.
type OrderUseCase struct {
	tx        TxRunner
	orders    repository.OrderRepository
	customers repository.CustomerRepository
	products  repository.ProductRepository
	publisher EventPublisher
	receipts  ReceiptGenerator
	cfg       Config
	log       *logger.Logger
	now       func() time.Time
}

// NewOrderUseCase construye el caso de uso. Los repositorios sueltos sirven las lecturas fuera de transacción.
func NewOrderUseCase(
	tx TxRunner,
	orders repository.OrderRepository,
	customers repository.CustomerRepository,
	products repository.ProductRepository,
	publisher EventPublisher,
	receipts ReceiptGenerator,
	cfg Config,
	log *logger.Logger,
) *OrderUseCase {
	return &OrderUseCase{
		tx:        tx,
		orders:    orders,
		customers: customers,
		products:  products,
		publisher: publisher,
		receipts:  receipts,
		cfg:       cfg,
		log:       log,
		now:       time.Now,
	}
}

// PlaceOrder crea un pedido del principal. La billetera cubre el precio hasta donde alcance:
// el saldo restante queda en la billetera y el faltante es el final_price del pedido.
// El precio del producto no se modifica.
func (uc *OrderUseCase) PlaceOrder(ctx context.Context, principal entity.Principal, in dto.CreateOrderRequest) (*dto.OrderResponse, error) {
	if err := validation.Struct(in); err != nil {
		return nil, err
	}

	var (
		order  *entity.Order
		result settlement.Result
	)
	err := uc.tx.RunOrdering(ctx, func(customers repository.CustomerRepository, products repository.ProductRepository, orders repository.OrderRepository) error {
		product, err := products.GetByID(ctx, in.ProductID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrNotFound
		}
		customer, err := customers.GetByIDForUpdate(ctx, principal.CustomerID)
		if err != nil {
			return err
		}
		if customer == nil {
			return domain.ErrUnauthorized
		}

		result = settlement.Settle(customer.Wallet, product.Price)
		if err := customers.UpdateWallet(ctx, customer.ID, result.Wallet); err != nil {
			return err
		}

		now := uc.now()
		order = &entity.Order{
			ID:              uuid.New().String(),
			ProductID:       product.ID,
			ProductName:     product.Name,
			CustomerID:      customer.ID,
			CustomerEmail:   customer.Email,
			PhoneCustomer:   customer.Phone,
			Status:          entity.OrderStatusPending,
			DeliveryAddress: in.DeliveryAddress,
			FinalPrice:      result.AmountDue,
			CreatedAt:       now,
			UpdatedAt:       now,
		}
		return orders.Create(ctx, order)
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().
		Str("order_id", order.ID).
		Str("customer_id", order.CustomerID).
		Str("wallet_applied", result.Applied.String()).
		Str("final_price", order.FinalPrice.String()).
		Msg("pedido creado")

	uc.publish(ctx, OrderEvent{
		Type:          EventOrderPlaced,
		OrderID:       order.ID,
		CustomerID:    order.CustomerID,
		ProductID:     order.ProductID,
		Status:        string(order.Status),
		FinalPrice:    order.FinalPrice,
		WalletApplied: result.Applied,
		ActorID:       principal.CustomerID,
	})
	return toOrderResponse(order), nil
}

// UpdateOrderStatus aplica una actualización parcial a un pedido (solo staff).
// La primera entrada al estado "delivery" acredita la bonificación configurada.
func (uc *OrderUseCase) UpdateOrderStatus(ctx context.Context, actor entity.Principal, id string, in dto.PatchOrderRequest) (*dto.OrderResponse, error) {
	if !actor.IsStaff {
		return nil, domain.ErrForbidden
	}
	if err := validation.ID(id); err != nil {
		return nil, err
	}
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	var next entity.OrderStatus
	if in.Status != nil {
		st, ok := entity.ParseOrderStatus(*in.Status)
		if !ok {
			return nil, domain.NewValidationError("status", "estado desconocido")
		}
		next = st
	}

	var (
		order    *entity.Order
		previous entity.OrderStatus
		rebateTo string
	)
	err := uc.tx.RunOrdering(ctx, func(customers repository.CustomerRepository, _ repository.ProductRepository, orders repository.OrderRepository) error {
		var err error
		order, err = orders.GetByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if order == nil {
			return domain.ErrNotFound
		}
		previous = order.Status

		if in.Status != nil {
			if !previous.CanTransition(next) {
				return domain.ErrInvalidTransition
			}
			order.Status = next
		}
		if in.CustomerID != nil && *in.CustomerID != order.CustomerID {
			c, err := customers.GetByID(ctx, *in.CustomerID)
			if err != nil {
				return err
			}
			if c == nil {
				return domain.NewValidationError("customer_id", "el cliente no existe")
			}
			order.CustomerID = c.ID
		}
		if in.PhoneCustomer != nil {
			order.PhoneCustomer = *in.PhoneCustomer
		}
		if in.DeliveryAddress != nil {
			order.DeliveryAddress = *in.DeliveryAddress
		}

		if previous.EntersDelivery(order.Status) && uc.cfg.RebateAmount.IsPositive() {
			rebateTo = actor.CustomerID
			if uc.cfg.RebateRecipient == config.RebateRecipientCustomer {
				rebateTo = order.CustomerID
			}
			recipient, err := customers.GetByIDForUpdate(ctx, rebateTo)
			if err != nil {
				return err
			}
			if recipient == nil {
				return domain.ErrNotFound
			}
			if err := customers.UpdateWallet(ctx, recipient.ID, settlement.Credit(recipient.Wallet, uc.cfg.RebateAmount)); err != nil {
				return err
			}
		}

		order.UpdatedAt = uc.now()
		if err := orders.Update(ctx, order); err != nil {
			return err
		}
		order, err = orders.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if order == nil {
			return domain.ErrNotFound
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if rebateTo != "" {
		uc.log.Info().
			Str("order_id", order.ID).
			Str("recipient_id", rebateTo).
			Str("amount", uc.cfg.RebateAmount.String()).
			Msg("bonificación por entrega acreditada")
	}
	if previous != order.Status {
		ev := OrderEvent{
			Type:           EventOrderStatusChanged,
			OrderID:        order.ID,
			CustomerID:     order.CustomerID,
			ProductID:      order.ProductID,
			Status:         string(order.Status),
			PreviousStatus: string(previous),
			FinalPrice:     order.FinalPrice,
			ActorID:        actor.CustomerID,
		}
		if rebateTo != "" {
			ev.Rebate = uc.cfg.RebateAmount
			ev.RebateTo = rebateTo
		}
		uc.publish(ctx, ev)
	}
	return toOrderResponse(order), nil
}

// ListOwn lista los pedidos del principal; search busca en la dirección de entrega.
func (uc *OrderUseCase) ListOwn(ctx context.Context, principal entity.Principal, q dto.ListQuery) ([]dto.OrderResponse, error) {
	sort, err := repository.ParseSort(q.OrderBy, repository.OrderSortFields)
	if err != nil {
		return nil, err
	}
	list, err := uc.orders.ListByCustomer(ctx, principal.CustomerID, repository.ListOptions{Search: q.Search, Sort: sort})
	if err != nil {
		return nil, err
	}
	items := make([]dto.OrderResponse, 0, len(list))
	for _, o := range list {
		items = append(items, *toOrderResponse(o))
	}
	return items, nil
}

// Get obtiene un pedido por ID.
func (uc *OrderUseCase) Get(ctx context.Context, id string) (*dto.OrderResponse, error) {
	order, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	return toOrderResponse(order), nil
}

// Delete elimina un pedido (solo staff). No devuelve saldo a la billetera.
func (uc *OrderUseCase) Delete(ctx context.Context, actor entity.Principal, id string) error {
	if !actor.IsStaff {
		return domain.ErrForbidden
	}
	order, err := uc.get(ctx, id)
	if err != nil {
		return err
	}
	if err := uc.orders.Delete(ctx, id); err != nil {
		return err
	}
	uc.publish(ctx, OrderEvent{
		Type:       EventOrderDeleted,
		OrderID:    order.ID,
		CustomerID: order.CustomerID,
		ProductID:  order.ProductID,
		Status:     string(order.Status),
		FinalPrice: order.FinalPrice,
		ActorID:    actor.CustomerID,
	})
	return nil
}

func (uc *OrderUseCase) get(ctx context.Context, id string) (*entity.Order, error) {
	if err := validation.ID(id); err != nil {
		return nil, err
	}
	order, err := uc.orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	return order, nil
}

// publish es best effort: el pedido ya está confirmado, un fallo solo se registra.
func (uc *OrderUseCase) publish(ctx context.Context, ev OrderEvent) {
	ev.ID = uuid.New().String()
	ev.OccurredAt = uc.now()
	if err := uc.publisher.Publish(ctx, ev); err != nil {
		uc.log.Warn().Err(err).Str("type", ev.Type).Str("order_id", ev.OrderID).Msg("no se pudo publicar evento de pedido")
	}
}

func toOrderResponse(o *entity.Order) *dto.OrderResponse {
	return &dto.OrderResponse{
		ID:              o.ID,
		ProductID:       o.ProductID,
		Product:         o.ProductName,
		CustomerID:      o.CustomerID,
		Customer:        o.CustomerEmail,
		PhoneCustomer:   o.PhoneCustomer,
		Status:          string(o.Status),
		DeliveryAddress: o.DeliveryAddress,
		FinalPrice:      o.FinalPrice,
		CreatedAt:       o.CreatedAt,
		UpdatedAt:       o.UpdatedAt,
	}
}
