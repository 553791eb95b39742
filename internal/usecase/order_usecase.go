package usecase

import (
	"context"
	"fmt"
	"net/http"
	"regexp"
	"strings"
	"time"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"github.com/shopspring/decimal"
)

var emailRe = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

type OrderUsecase struct {
	tx repo.TransactionManager
}

func NewOrderUsecase(tx repo.TransactionManager) *OrderUsecase {
	return &OrderUsecase{tx: tx}
}

type OrderItemInput struct {
	CakeID   int64
	Quantity int64
}

type CreateOrderInput struct {
	CustomerName    string
	CustomerEmail   string
	CustomerPhone   string
	DeliveryAddress string
	Notes           *string
	Items           []OrderItemInput
}

type OrderItemOutput struct {
	ID         int64           `json:"id"`
	CakeID     int64           `json:"cake_id"`
	CakeName   string          `json:"cake_name"`
	Quantity   int64           `json:"quantity"`
	UnitPrice  decimal.Decimal `json:"unit_price"`
	TotalPrice decimal.Decimal `json:"total_price"`
}

type OrderOutput struct {
	ID              int64             `json:"id"`
	CustomerName    string            `json:"customer_name"`
	CustomerEmail   string            `json:"customer_email"`
	CustomerPhone   string            `json:"customer_phone"`
	DeliveryAddress string            `json:"delivery_address"`
	TotalAmount     decimal.Decimal   `json:"total_amount"`
	Status          string            `json:"status"`
	Notes           *string           `json:"notes"`
	CreatedAt       time.Time         `json:"created_at"`
	UpdatedAt       time.Time         `json:"updated_at"`
	Items           []OrderItemOutput `json:"items"`
}

// 注文作成。検証→価格スナップショット→合計→ヘッダと明細を1トランザクションで保存。
// どこかで失敗したら何も書き込まない。
func (u *OrderUsecase) CreateOrder(ctx context.Context, in CreateOrderInput) (OrderOutput, error) {
	if strings.TrimSpace(in.CustomerName) == "" {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "customer_name required")
	}
	if !emailRe.MatchString(in.CustomerEmail) {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid customer_email")
	}
	if strings.TrimSpace(in.CustomerPhone) == "" {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "customer_phone required")
	}
	if strings.TrimSpace(in.DeliveryAddress) == "" {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "delivery_address required")
	}
	if len(in.Items) == 0 {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "items required")
	}
	for _, it := range in.Items {
		if it.CakeID <= 0 {
			return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid cake_id")
		}
		if it.Quantity <= 0 {
			return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "quantity must be > 0")
		}
	}

	var out OrderOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		//参照されているケーキを一括取得（重複IDは1回だけ）
		seen := map[int64]bool{}
		ids := make([]int64, 0, len(in.Items))
		for _, it := range in.Items {
			if !seen[it.CakeID] {
				seen[it.CakeID] = true
				ids = append(ids, it.CakeID)
			}
		}

		cakes, err := r.Cakes().FindByIDs(ctx, ids)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		cakeByID := make(map[int64]model.Cake, len(cakes))
		for _, c := range cakes {
			cakeByID[c.ID] = c
		}

		//全明細を先に検証。1件でもダメなら注文ごと失敗させる
		for _, it := range in.Items {
			c, ok := cakeByID[it.CakeID]
			if !ok {
				return NewHTTPError(http.StatusBadRequest, fmt.Sprintf("cake not found: %d", it.CakeID))
			}
			if !c.IsAvailable {
				return NewHTTPError(http.StatusBadRequest, fmt.Sprintf("cake not available: %s", c.Name))
			}
		}

		//価格スナップショットと合計（decimalで計算、floatは使わない）
		orderItems := make([]model.OrderItem, 0, len(in.Items))
		total := decimal.Zero
		for _, it := range in.Items {
			c := cakeByID[it.CakeID]
			lineTotal := c.Price.Mul(decimal.NewFromInt(it.Quantity))
			total = total.Add(lineTotal)

			orderItems = append(orderItems, model.OrderItem{
				CakeID:     it.CakeID,
				Quantity:   it.Quantity,
				UnitPrice:  c.Price,
				TotalPrice: lineTotal,
			})
		}

		//ヘッダ→明細の順で保存。同一トランザクションなので途中失敗は全部ロールバック
		now := time.Now()
		orderID, err := r.Orders().Create(ctx, model.Order{
			CustomerName:    strings.TrimSpace(in.CustomerName),
			CustomerEmail:   in.CustomerEmail,
			CustomerPhone:   in.CustomerPhone,
			DeliveryAddress: in.DeliveryAddress,
			TotalAmount:     total,
			Status:          model.OrderStatusPending,
			Notes:           in.Notes,
			CreatedAt:       now,
			UpdatedAt:       now,
		})
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		if err := r.OrderItems().CreateBulk(ctx, orderID, orderItems); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		//レスポンスはケーキ名付き。名前はさっき取ったものを使う（再フェッチしない）
		outItems := make([]OrderItemOutput, 0, len(orderItems))
		for _, oi := range orderItems {
			outItems = append(outItems, OrderItemOutput{
				ID:         oi.ID,
				CakeID:     oi.CakeID,
				CakeName:   cakeByID[oi.CakeID].Name,
				Quantity:   oi.Quantity,
				UnitPrice:  oi.UnitPrice,
				TotalPrice: oi.TotalPrice,
			})
		}

		out = OrderOutput{
			ID:              orderID,
			CustomerName:    strings.TrimSpace(in.CustomerName),
			CustomerEmail:   in.CustomerEmail,
			CustomerPhone:   in.CustomerPhone,
			DeliveryAddress: in.DeliveryAddress,
			TotalAmount:     total,
			Status:          string(model.OrderStatusPending),
			Notes:           in.Notes,
			CreatedAt:       now,
			UpdatedAt:       now,
			Items:           outItems,
		}
		return nil
	})

	if err != nil {
		return OrderOutput{}, err
	}
	return out, nil
}

func (u *OrderUsecase) ListOrders(ctx context.Context) ([]OrderOutput, error) {
	var outs []OrderOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		orders, err := r.Orders().List(ctx)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		outs = make([]OrderOutput, 0, len(orders))
		for _, o := range orders {
			items, err := r.OrderItems().ListByOrderID(ctx, o.ID)
			if err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
			outs = append(outs, toOrderOutput(o, items))
		}
		return nil
	})

	if err != nil {
		return []OrderOutput{}, err
	}
	return outs, nil
}

func (u *OrderUsecase) GetOrder(ctx context.Context, orderID int64) (OrderOutput, error) {
	if orderID <= 0 {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	var out OrderOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		o, err := r.Orders().FindByID(ctx, orderID)
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		items, err := r.OrderItems().ListByOrderID(ctx, orderID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		out = toOrderOutput(o, items)
		return nil
	})

	if err != nil {
		return OrderOutput{}, err
	}
	return out, nil
}

type UpdateOrderStatusInput struct {
	Status string
}

// ステータス更新。遷移順は強制しない（どの状態からどの状態へも変えられる）
func (u *OrderUsecase) UpdateOrderStatus(ctx context.Context, orderID int64, in UpdateOrderStatusInput) (OrderOutput, error) {
	if orderID <= 0 {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	newStatus := strings.TrimSpace(in.Status)
	switch model.OrderStatus(newStatus) {
	case model.OrderStatusPending, model.OrderStatusConfirmed, model.OrderStatusPreparing,
		model.OrderStatusReady, model.OrderStatusDelivered, model.OrderStatusCancelled:
		// OK
	default:
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid status")
	}

	var out OrderOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		if err := r.Orders().UpdateStatus(ctx, orderID, model.OrderStatus(newStatus)); err != nil {
			if err == repo.ErrNotFound {
				return NewHTTPError(http.StatusNotFound, "not found")
			}
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		o, err := r.Orders().FindByID(ctx, orderID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		items, err := r.OrderItems().ListByOrderID(ctx, orderID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		out = toOrderOutput(o, items)
		return nil
	})

	if err != nil {
		return OrderOutput{}, err
	}
	return out, nil
}

func toOrderOutput(o model.Order, items []repo.OrderItemWithCake) OrderOutput {
	outItems := make([]OrderItemOutput, 0, len(items))
	for _, it := range items {
		outItems = append(outItems, OrderItemOutput{
			ID:         it.ID,
			CakeID:     it.CakeID,
			CakeName:   it.CakeName,
			Quantity:   it.Quantity,
			UnitPrice:  it.UnitPrice,
			TotalPrice: it.TotalPrice,
		})
	}

	return OrderOutput{
		ID:              o.ID,
		CustomerName:    o.CustomerName,
		CustomerEmail:   o.CustomerEmail,
		CustomerPhone:   o.CustomerPhone,
		DeliveryAddress: o.DeliveryAddress,
		TotalAmount:     o.TotalAmount,
		Status:          string(o.Status),
		Notes:           o.Notes,
		CreatedAt:       o.CreatedAt,
		UpdatedAt:       o.UpdatedAt,
		Items:           outItems,
	}
}
