package usecase

import (
	"context"
	"errors"
	"order_management/internal/domain/entities"
	"order_management/internal/usecase/interfaces"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidCustomerName  = errors.New("invalid customer name")
	ErrInvalidCustomerEmail = errors.New("invalid customer email")
	ErrCustomerEmailTaken   = errors.New("customer email already registered")
)

type ICustomerUseCase interface {
	Create(ctx context.Context, name, email string) (entities.Customer, error)
	GetByID(ctx context.Context, id string) (entities.Customer, error)
	List(ctx context.Context) ([]entities.Customer, error)
}

type CustomerUseCase struct {
	repo interfaces.ICustomerRepository
}

var _ ICustomerUseCase = (*CustomerUseCase)(nil)

func NewCustomerUseCase(repo interfaces.ICustomerRepository) *CustomerUseCase {
	return &CustomerUseCase{repo: repo}
}

func (u *CustomerUseCase) Create(ctx context.Context, name, email string) (entities.Customer, error) {
	name = strings.TrimSpace(name)
	email = strings.ToLower(strings.TrimSpace(email))
	if name == "" {
		return entities.Customer{}, ErrInvalidCustomerName
	}
	if email == "" || !strings.Contains(email, "@") {
		return entities.Customer{}, ErrInvalidCustomerEmail
	}

	c := entities.Customer{
		ID:        uuid.NewString(),
		Name:      name,
		Email:     email,
		CreatedAt: time.Now().UTC(),
	}
	created, err := u.repo.Create(ctx, c)
	if errors.Is(err, interfaces.ErrEmailAlreadyUsed) {
		return entities.Customer{}, ErrCustomerEmailTaken
	}
	if err != nil {
		return entities.Customer{}, err
	}
	return created, nil
}

func (u *CustomerUseCase) GetByID(ctx context.Context, id string) (entities.Customer, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.Customer{}, ErrInvalidCustomerID
	}

	c, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return entities.Customer{}, err
	}
	if c.ID == "" {
		return entities.Customer{}, ErrCustomerNotFound
	}
	return c, nil
}

func (u *CustomerUseCase) List(ctx context.Context) ([]entities.Customer, error) {
	return u.repo.List(ctx)
}
