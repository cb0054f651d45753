package checkout

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jacksleight/simple-commerce/internal/domain"
)

func newCustomerStageTest(t *testing.T) (*customerStage, *memOrders, *memCustomers, *domain.Order) {
	t.Helper()
	order := &domain.Order{ID: "order-1", PaymentStatus: domain.PaymentStatusUnpaid}
	orders := newMemOrders(order)
	customers := newMemCustomers()
	stage := &customerStage{
		customers: customers,
		orders:    orders,
		whitelist: []string{"name", "first_name", "last_name", "email"},
	}
	return stage, orders, customers, order
}

func TestCustomerStage_FullNameWinsOverFirstLast(t *testing.T) {
	stage, _, customers, order := newCustomerStageTest(t)

	chk := newContext(testSession, order, Request{
		"name":       "Joe Bloggs",
		"first_name": "Joe",
		"last_name":  "Bloggs",
		"email":      "joe@example.com",
	})

	require.NoError(t, stage.Process(context.Background(), chk))

	customer, err := customers.FindByEmail(context.Background(), "joe@example.com")
	require.NoError(t, err)
	assert.Equal(t, "Joe Bloggs", customer.Name)
	assert.Empty(t, customer.FirstName)

	// Only the winning branch's keys are consumed.
	assert.True(t, chk.IsConsumed("name"))
	assert.True(t, chk.IsConsumed("email"))
	assert.False(t, chk.IsConsumed("first_name"))
}

func TestCustomerStage_FirstLastNameBranch(t *testing.T) {
	stage, _, customers, order := newCustomerStageTest(t)

	chk := newContext(testSession, order, Request{
		"first_name": "Joe",
		"last_name":  "Bloggs",
		"email":      "joe@example.com",
	})

	require.NoError(t, stage.Process(context.Background(), chk))

	customer, err := customers.FindByEmail(context.Background(), "joe@example.com")
	require.NoError(t, err)
	assert.Equal(t, "Joe", customer.FirstName)
	assert.Equal(t, "Bloggs", customer.LastName)
	assert.True(t, chk.IsConsumed("first_name"))
	assert.True(t, chk.IsConsumed("last_name"))
	assert.True(t, chk.IsConsumed("email"))
}

func TestCustomerStage_ExistingCustomerMergedNotDuplicated(t *testing.T) {
	stage, _, customers, order := newCustomerStageTest(t)
	require.NoError(t, customers.Save(context.Background(), &domain.Customer{
		ID:        "customer-1",
		Email:     "joe@example.com",
		Published: true,
	}))

	chk := newContext(testSession, order, Request{
		"name":  "Joe Bloggs",
		"email": "joe@example.com",
	})

	require.NoError(t, stage.Process(context.Background(), chk))

	assert.Equal(t, "customer-1", chk.Order.CustomerID)
	customer, err := customers.Get(context.Background(), "customer-1")
	require.NoError(t, err)
	assert.Equal(t, "Joe Bloggs", customer.Name)
	assert.Len(t, customers.customers, 1)
}

func TestCustomerStage_CustomerIDStringAttachesDirectly(t *testing.T) {
	stage, orders, _, order := newCustomerStageTest(t)

	chk := newContext(testSession, order, Request{"customer": "customer-42"})

	require.NoError(t, stage.Process(context.Background(), chk))

	assert.Equal(t, "customer-42", chk.Order.CustomerID)
	assert.Equal(t, "customer-42", orders.persisted("order-1").CustomerID)
	assert.True(t, chk.IsConsumed("customer"))
}

func TestCustomerStage_NoIdentityFieldsIsANoOp(t *testing.T) {
	stage, orders, _, order := newCustomerStageTest(t)

	chk := newContext(testSession, order, Request{"gift_note": "hello"})

	require.NoError(t, stage.Process(context.Background(), chk))

	assert.Empty(t, chk.Order.CustomerID)
	assert.Equal(t, 0, orders.saves)
	assert.True(t, chk.IsConsumed("customer"))
}
