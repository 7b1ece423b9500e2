package store

import (
	"reflect"
	"time"

	"github.com/google/uuid"

	"mockgraph/schema"
	"mockgraph/stub"
)

type productSub struct{ *stub.Substitute }

func (p productSub) ID() int64            { return stub.Return[int64](p.Substitute, "ID") }
func (p productSub) SKU() string          { return stub.Return[string](p.Substitute, "SKU") }
func (p productSub) Name() string         { return stub.Return[string](p.Substitute, "Name") }
func (p productSub) PriceCents() int64    { return stub.Return[int64](p.Substitute, "PriceCents") }
func (p productSub) Inventory() int       { return stub.Return[int](p.Substitute, "Inventory") }
func (p productSub) CreatedAt() time.Time { return stub.Return[time.Time](p.Substitute, "CreatedAt") }

type customerSub struct{ *stub.Substitute }

func (c customerSub) ID() int64        { return stub.Return[int64](c.Substitute, "ID") }
func (c customerSub) Email() string    { return stub.Return[string](c.Substitute, "Email") }
func (c customerSub) FullName() string { return stub.Return[string](c.Substitute, "FullName") }
func (c customerSub) Address() *string { return stub.Return[*string](c.Substitute, "Address") }
func (c customerSub) IsActive() bool   { return stub.Return[bool](c.Substitute, "IsActive") }

type orderSub struct{ *stub.Substitute }

func (o orderSub) ID() int64               { return stub.Return[int64](o.Substitute, "ID") }
func (o orderSub) Reference() uuid.UUID    { return stub.Return[uuid.UUID](o.Substitute, "Reference") }
func (o orderSub) Customer() Customer      { return stub.Return[Customer](o.Substitute, "Customer") }
func (o orderSub) Status() OrderStatus     { return stub.Return[OrderStatus](o.Substitute, "Status") }
func (o orderSub) SetStatus(s OrderStatus) { o.Record("SetStatus", s) }
func (o orderSub) TotalCents() int64       { return stub.Return[int64](o.Substitute, "TotalCents") }
func (o orderSub) Items() []OrderItem      { return stub.Return[[]OrderItem](o.Substitute, "Items") }
func (o orderSub) OrderedAt() time.Time    { return stub.Return[time.Time](o.Substitute, "OrderedAt") }

func (o orderSub) Products() map[string]Product {
	return stub.Return[map[string]Product](o.Substitute, "Products")
}

// Register adds the store types to r.
func Register(r *schema.Registry) error {
	if err := schema.Substitute(r, func(s *stub.Substitute) Product { return productSub{s} }); err != nil {
		return err
	}
	if err := schema.Substitute(r, func(s *stub.Substitute) Customer { return customerSub{s} }); err != nil {
		return err
	}
	if err := schema.Substitute(r, func(s *stub.Substitute) Order { return orderSub{s} }); err != nil {
		return err
	}
	if err := schema.Enum(r, StatusPending, StatusPaid, StatusShipped, StatusCancelled); err != nil {
		return err
	}

	return r.Register(reflect.TypeFor[OrderItem]())
}

// Registry returns a registry with the store types.
func Registry() (*schema.Registry, error) {
	r := schema.New()
	if err := Register(r); err != nil {
		return nil, err
	}

	return r, nil
}
