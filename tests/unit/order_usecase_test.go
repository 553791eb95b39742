package unit

import (
	"app/internal/domain/model"
	repo "app/internal/repository"
	"app/internal/usecase"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// =====================
// TxManager / TxRepos mocks
// =====================

// OrdTxManagerMock は WithinTx の中で渡す repos を固定して unit テストを回す
type OrdTxManagerMock struct {
	mock.Mock
	Repos repo.TxRepos
}

func (m *OrdTxManagerMock) WithinTx(ctx context.Context, fn func(r repo.TxRepos) error) error {
	// 呼ばれた事実だけ記録（ctxの具体値は問わない）
	m.Called(ctx)
	return fn(m.Repos)
}

type OrdTxReposMock struct {
	cakes      repo.CakeRepository
	orders     repo.OrderRepository
	orderItems repo.OrderItemRepository
}

func (r *OrdTxReposMock) Cakes() repo.CakeRepository           { return r.cakes }
func (r *OrdTxReposMock) Orders() repo.OrderRepository         { return r.orders }
func (r *OrdTxReposMock) OrderItems() repo.OrderItemRepository { return r.orderItems }

// =====================
// Repository mocks（Order向け：衝突回避）
// =====================

type OrdCakeRepoMock struct{ mock.Mock }

func (m *OrdCakeRepoMock) List(ctx context.Context) ([]model.Cake, error) {
	panic("not used in OrderUsecase tests")
}

func (m *OrdCakeRepoMock) ListAvailable(ctx context.Context) ([]model.Cake, error) {
	panic("not used in OrderUsecase tests")
}

func (m *OrdCakeRepoMock) ListByCategory(ctx context.Context, category string) ([]model.Cake, error) {
	panic("not used in OrderUsecase tests")
}

func (m *OrdCakeRepoMock) ListCategories(ctx context.Context) ([]string, error) {
	panic("not used in OrderUsecase tests")
}

func (m *OrdCakeRepoMock) FindByID(ctx context.Context, id int64) (model.Cake, error) {
	panic("not used in OrderUsecase tests")
}

func (m *OrdCakeRepoMock) FindByIDs(ctx context.Context, ids []int64) ([]model.Cake, error) {
	args := m.Called(ctx, ids)
	cakes, _ := args.Get(0).([]model.Cake)
	return cakes, args.Error(1)
}

func (m *OrdCakeRepoMock) Create(ctx context.Context, c model.Cake) (model.Cake, error) {
	panic("not used in OrderUsecase tests")
}

func (m *OrdCakeRepoMock) UpdateFields(ctx context.Context, id int64, fields map[string]interface{}) error {
	panic("not used in OrderUsecase tests")
}

func (m *OrdCakeRepoMock) Delete(ctx context.Context, id int64) error {
	panic("not used in OrderUsecase tests")
}

type OrdOrderRepoMock struct{ mock.Mock }

func (m *OrdOrderRepoMock) FindByID(ctx context.Context, orderID int64) (model.Order, error) {
	args := m.Called(ctx, orderID)
	o, _ := args.Get(0).(model.Order)
	return o, args.Error(1)
}

func (m *OrdOrderRepoMock) List(ctx context.Context) ([]model.Order, error) {
	args := m.Called(ctx)
	orders, _ := args.Get(0).([]model.Order)
	return orders, args.Error(1)
}

func (m *OrdOrderRepoMock) Create(ctx context.Context, order model.Order) (int64, error) {
	args := m.Called(ctx, order)
	return args.Get(0).(int64), args.Error(1)
}

func (m *OrdOrderRepoMock) UpdateStatus(ctx context.Context, orderID int64, status model.OrderStatus) error {
	args := m.Called(ctx, orderID, status)
	return args.Error(0)
}

type OrdOrderItemRepoMock struct{ mock.Mock }

func (m *OrdOrderItemRepoMock) CreateBulk(ctx context.Context, orderID int64, items []model.OrderItem) error {
	args := m.Called(ctx, orderID, items)
	return args.Error(0)
}

func (m *OrdOrderItemRepoMock) ListByOrderID(ctx context.Context, orderID int64) ([]repo.OrderItemWithCake, error) {
	args := m.Called(ctx, orderID)
	items, _ := args.Get(0).([]repo.OrderItemWithCake)
	return items, args.Error(1)
}

func newOrderUsecaseForTest() (*usecase.OrderUsecase, *OrdTxManagerMock, *OrdCakeRepoMock, *OrdOrderRepoMock, *OrdOrderItemRepoMock) {
	cakes := new(OrdCakeRepoMock)
	orders := new(OrdOrderRepoMock)
	orderItems := new(OrdOrderItemRepoMock)

	txm := &OrdTxManagerMock{Repos: &OrdTxReposMock{
		cakes:      cakes,
		orders:     orders,
		orderItems: orderItems,
	}}

	return usecase.NewOrderUsecase(txm), txm, cakes, orders, orderItems
}

func validOrderInput(items ...usecase.OrderItemInput) usecase.CreateOrderInput {
	return usecase.CreateOrderInput{
		CustomerName:    "Hanako Yamada",
		CustomerEmail:   "hanako@example.com",
		CustomerPhone:   "090-0000-0000",
		DeliveryAddress: "1-2-3 Ginza, Tokyo",
		Items:           items,
	}
}

// =====================
// CreateOrder
// =====================

func TestOrderUsecase_CreateOrder_TotalsFromPriceSnapshot(t *testing.T) {
	ctx := context.Background()

	uc, txm, cakes, orders, orderItems := newOrderUsecaseForTest()

	txm.On("WithinTx", mock.Anything).Return(nil)
	cakes.On("FindByIDs", mock.Anything, mock.Anything).Return([]model.Cake{
		{ID: 1, Name: "Choc", Price: d("25.99"), IsAvailable: true},
		{ID: 2, Name: "Strawberry", Price: d("22.50"), IsAvailable: true},
	}, nil)

	orders.On("Create", mock.Anything, mock.MatchedBy(func(o model.Order) bool {
		// 25.99*1 + 22.50*3 = 93.49
		return o.TotalAmount.Equal(d("93.49")) && o.Status == model.OrderStatusPending
	})).Return(int64(10), nil)

	orderItems.On("CreateBulk", mock.Anything, int64(10), mock.MatchedBy(func(items []model.OrderItem) bool {
		if len(items) != 2 {
			return false
		}
		//unit_priceは注文時点の価格スナップショット
		return items[0].UnitPrice.Equal(d("25.99")) && items[0].TotalPrice.Equal(d("25.99")) &&
			items[1].UnitPrice.Equal(d("22.50")) && items[1].TotalPrice.Equal(d("67.50"))
	})).Return(nil)

	out, err := uc.CreateOrder(ctx, validOrderInput(
		usecase.OrderItemInput{CakeID: 1, Quantity: 1},
		usecase.OrderItemInput{CakeID: 2, Quantity: 3},
	))
	assert.NoError(t, err)
	assert.Equal(t, int64(10), out.ID)
	assert.True(t, out.TotalAmount.Equal(d("93.49")))
	assert.Equal(t, "pending", out.Status)
	assert.Equal(t, 2, len(out.Items))
	assert.Equal(t, "Choc", out.Items[0].CakeName)
	assert.Equal(t, "Strawberry", out.Items[1].CakeName)

	cakes.AssertExpectations(t)
	orders.AssertExpectations(t)
	orderItems.AssertExpectations(t)
}

func TestOrderUsecase_CreateOrder_UnknownCake_NoWrites(t *testing.T) {
	ctx := context.Background()

	uc, txm, cakes, orders, orderItems := newOrderUsecaseForTest()

	txm.On("WithinTx", mock.Anything).Return(nil)
	//999は存在しない
	cakes.On("FindByIDs", mock.Anything, mock.Anything).Return([]model.Cake{
		{ID: 1, Name: "Choc", Price: d("25.99"), IsAvailable: true},
	}, nil)

	_, err := uc.CreateOrder(ctx, validOrderInput(
		usecase.OrderItemInput{CakeID: 1, Quantity: 1},
		usecase.OrderItemInput{CakeID: 999, Quantity: 1},
	))
	assertErrContains(t, err, "cake not found: 999")

	//注文も明細も書き込まれない
	orders.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	orderItems.AssertNotCalled(t, "CreateBulk", mock.Anything, mock.Anything, mock.Anything)
}

func TestOrderUsecase_CreateOrder_UnavailableCake_NoWrites(t *testing.T) {
	ctx := context.Background()

	uc, txm, cakes, orders, orderItems := newOrderUsecaseForTest()

	txm.On("WithinTx", mock.Anything).Return(nil)
	cakes.On("FindByIDs", mock.Anything, mock.Anything).Return([]model.Cake{
		{ID: 1, Name: "Choc", Price: d("25.99"), IsAvailable: true},
		{ID: 2, Name: "Seasonal", Price: d("30.00"), IsAvailable: false},
	}, nil)

	_, err := uc.CreateOrder(ctx, validOrderInput(
		usecase.OrderItemInput{CakeID: 1, Quantity: 1},
		usecase.OrderItemInput{CakeID: 2, Quantity: 1},
	))
	assertErrContains(t, err, "cake not available: Seasonal")

	orders.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	orderItems.AssertNotCalled(t, "CreateBulk", mock.Anything, mock.Anything, mock.Anything)
}

func TestOrderUsecase_CreateOrder_Validation(t *testing.T) {
	uc, txm, _, _, _ := newOrderUsecaseForTest()

	//明細なし
	_, err := uc.CreateOrder(context.Background(), validOrderInput())
	assertErrContains(t, err, "items required")

	//数量0
	_, err = uc.CreateOrder(context.Background(), validOrderInput(
		usecase.OrderItemInput{CakeID: 1, Quantity: 0},
	))
	assertErrContains(t, err, "quantity must be > 0")

	//メールが不正
	in := validOrderInput(usecase.OrderItemInput{CakeID: 1, Quantity: 1})
	in.CustomerEmail = "not-an-email"
	_, err = uc.CreateOrder(context.Background(), in)
	assertErrContains(t, err, "invalid customer_email")

	//検証エラーではトランザクションすら開かない
	txm.AssertNotCalled(t, "WithinTx", mock.Anything)
}

// =====================
// List / Get
// =====================

func TestOrderUsecase_ListOrders_WithItems(t *testing.T) {
	ctx := context.Background()

	uc, txm, _, orders, orderItems := newOrderUsecaseForTest()

	txm.On("WithinTx", mock.Anything).Return(nil)
	orders.On("List", mock.Anything).Return([]model.Order{
		{ID: 2, Status: model.OrderStatusPending, TotalAmount: d("25.99")},
		{ID: 1, Status: model.OrderStatusDelivered, TotalAmount: d("10.00")},
	}, nil)
	orderItems.On("ListByOrderID", mock.Anything, int64(2)).Return([]repo.OrderItemWithCake{
		{OrderItem: model.OrderItem{ID: 5, OrderID: 2, CakeID: 1, Quantity: 1, UnitPrice: d("25.99"), TotalPrice: d("25.99")}, CakeName: "Choc"},
	}, nil)
	//明細ゼロの注文は空配列で返る（nullではない）
	orderItems.On("ListByOrderID", mock.Anything, int64(1)).Return([]repo.OrderItemWithCake{}, nil)

	outs, err := uc.ListOrders(ctx)
	assert.NoError(t, err)
	assert.Equal(t, 2, len(outs))
	assert.Equal(t, "Choc", outs[0].Items[0].CakeName)
	assert.NotNil(t, outs[1].Items)
	assert.Equal(t, 0, len(outs[1].Items))

	orders.AssertExpectations(t)
	orderItems.AssertExpectations(t)
}

func TestOrderUsecase_GetOrder_NotFound(t *testing.T) {
	ctx := context.Background()

	uc, txm, _, orders, _ := newOrderUsecaseForTest()

	txm.On("WithinTx", mock.Anything).Return(nil)
	orders.On("FindByID", mock.Anything, int64(99)).Return(model.Order{}, repo.ErrNotFound)

	_, err := uc.GetOrder(ctx, 99)
	assertErrContains(t, err, "not found")
}

// =====================
// UpdateOrderStatus
// =====================

func TestOrderUsecase_UpdateOrderStatus_InvalidStatus(t *testing.T) {
	uc, txm, _, _, _ := newOrderUsecaseForTest()

	_, err := uc.UpdateOrderStatus(context.Background(), 1, usecase.UpdateOrderStatusInput{Status: "shipped"})
	assertErrContains(t, err, "invalid status")

	txm.AssertNotCalled(t, "WithinTx", mock.Anything)
}

func TestOrderUsecase_UpdateOrderStatus_NotFound(t *testing.T) {
	ctx := context.Background()

	uc, txm, _, orders, _ := newOrderUsecaseForTest()

	txm.On("WithinTx", mock.Anything).Return(nil)
	orders.On("UpdateStatus", mock.Anything, int64(999), model.OrderStatusConfirmed).Return(repo.ErrNotFound)

	_, err := uc.UpdateOrderStatus(ctx, 999, usecase.UpdateOrderStatusInput{Status: "confirmed"})
	assertErrContains(t, err, "not found")
}

func TestOrderUsecase_UpdateOrderStatus_AnyTransitionAllowed(t *testing.T) {
	ctx := context.Background()

	uc, txm, _, orders, orderItems := newOrderUsecaseForTest()

	//delivered→pendingのような逆行も許す（遷移グラフは持たない）
	txm.On("WithinTx", mock.Anything).Return(nil)
	orders.On("UpdateStatus", mock.Anything, int64(1), model.OrderStatusPending).Return(nil)
	orders.On("FindByID", mock.Anything, int64(1)).Return(model.Order{
		ID: 1, Status: model.OrderStatusPending, TotalAmount: d("25.99"),
	}, nil)
	orderItems.On("ListByOrderID", mock.Anything, int64(1)).Return([]repo.OrderItemWithCake{}, nil)

	out, err := uc.UpdateOrderStatus(ctx, 1, usecase.UpdateOrderStatusInput{Status: "pending"})
	assert.NoError(t, err)
	assert.Equal(t, "pending", out.Status)

	orders.AssertExpectations(t)
}
