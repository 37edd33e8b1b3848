package database

import (
	"context"
	"log"
	"time"

	"order_management/internal/domain/entities"
	"order_management/internal/usecase"
	"order_management/internal/usecase/interfaces"

	"github.com/google/uuid"
)

// OrderCreator is the order builder the seed goes through, so the demo order gets its
// prices and total the same way real orders do.
type OrderCreator interface {
	Create(ctx context.Context, customerID string, items []usecase.OrderItemInput) (usecase.OrderDetails, error)
}

type Seeder struct {
	customers interfaces.ICustomerRepository
	products  interfaces.IProductRepository
	orders    OrderCreator
}

func NewSeeder(customers interfaces.ICustomerRepository, products interfaces.IProductRepository, orders OrderCreator) *Seeder {
	return &Seeder{customers: customers, products: products, orders: orders}
}

func demoCatalog() []entities.Product {
	return []entities.Product{
		{Name: "Notebook Gamer", Category: "Eletronicos", PriceCents: 500000, Active: true},
		{Name: "Smartphone Pro", Category: "Eletronicos", PriceCents: 350000, Active: true},
		{Name: "Tablet Básico", Category: "Eletronicos", PriceCents: 80000, Active: true},
		{Name: "Mouse Sem Fio", Category: "Acessorios", PriceCents: 15000, Active: true},
		{Name: "Teclado Mecânico", Category: "Acessorios", PriceCents: 45000, Active: true},
		{Name: "Cabo HDMI 2m", Category: "Acessorios", PriceCents: 3000, Active: true},
		{Name: "Teclado Antigo", Category: "Acessorios", PriceCents: 1000, Active: false},
		{Name: "Monitor 27pol 144hz", Category: "Perifericos", PriceCents: 180000, Active: true},
		{Name: "Headset Surround", Category: "Perifericos", PriceCents: 35000, Active: true},
		{Name: "Webcam 720p", Category: "Perifericos", PriceCents: 12000, Active: true},
		{Name: "Cadeira Gamer RGB", Category: "Escritorio", PriceCents: 120000, Active: true},
		{Name: "Mesa Ajustável", Category: "Escritorio", PriceCents: 95000, Active: true},
		{Name: "Mouse Antigo", Category: "Acessorios", PriceCents: 1050, Active: false},
	}
}

// Seed loads the demo catalog, two customers and one NEW order for the first customer.
// It does nothing when the catalog already has products.
func (s *Seeder) Seed(ctx context.Context) error {
	existing, err := s.products.List(ctx, interfaces.ProductFilter{})
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		log.Printf("[database][seed] catalog not empty, skipping products=%d", len(existing))
		return nil
	}

	var first entities.Product
	for i, p := range demoCatalog() {
		p.ID = uuid.NewString()
		created, err := s.products.Create(ctx, p)
		if err != nil {
			return err
		}
		if i == 0 {
			first = created
		}
	}

	var buyer entities.Customer
	for i, c := range []entities.Customer{
		{Name: "Joao Froes", Email: "joao@teste.com"},
		{Name: "Maria Silva", Email: "maria@teste.com"},
	} {
		c.ID = uuid.NewString()
		c.CreatedAt = time.Now().UTC()
		created, err := s.customers.Create(ctx, c)
		if err != nil {
			return err
		}
		if i == 0 {
			buyer = created
		}
	}

	d, err := s.orders.Create(ctx, buyer.ID, []usecase.OrderItemInput{{ProductID: first.ID, Quantity: 1}})
	if err != nil {
		return err
	}
	log.Printf("[database][seed] demo data loaded products=%d order_id=%s", len(demoCatalog()), d.Order.ID)
	return nil
}
