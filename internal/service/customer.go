package service

import (
	"context"
	"strings"

	apperrors "github.com/umalmyha/clientes/internal/errors"
	"github.com/umalmyha/clientes/internal/model"
	"github.com/umalmyha/clientes/internal/repository"
)

//go:generate mockery --name=CustomerService --output=./mocks

// CustomerService validates customer operations and delegates them to the repository
type CustomerService interface {
	List(context.Context, string) ([]*model.Customer, error)
	Register(context.Context, string, int) error
	UpdateByName(context.Context, string, model.CustomerPatch) error
	UpdateByID(context.Context, string, model.CustomerPatch) error
	DeleteByName(context.Context, string) error
	DeleteByID(context.Context, string) error
}

type customerService struct {
	customerRepo repository.CustomerRepository
}

// NewCustomerService builds new CustomerService
func NewCustomerService(customerRepo repository.CustomerRepository) CustomerService {
	return &customerService{customerRepo: customerRepo}
}

func (s *customerService) List(ctx context.Context, name string) ([]*model.Customer, error) {
	return s.customerRepo.FindAll(ctx, strings.TrimSpace(name))
}

func (s *customerService) Register(ctx context.Context, name string, age int) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return apperrors.NewValidationErr("nombre", "Name is required.")
	}

	if age < 0 {
		return apperrors.NewValidationErr("edad", "Age can't be negative.")
	}

	ok, err := s.customerRepo.Insert(ctx, name, age)
	if err != nil {
		return err
	}

	if !ok {
		return apperrors.NewOperationalErr("Failed to register customer.")
	}
	return nil
}

func (s *customerService) UpdateByName(ctx context.Context, name string, patch model.CustomerPatch) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return apperrors.NewValidationErr("nombre", "Name to filter by is required.")
	}

	if patch.Age != nil && *patch.Age < 0 {
		return apperrors.NewValidationErr("edad", "Age can't be negative.")
	}

	ok, err := s.customerRepo.UpdateByName(ctx, name, model.CustomerPatch{
		Name: trimmed(patch.Name),
		Age:  patch.Age,
		City: trimmed(patch.City),
	})
	if err != nil {
		return err
	}

	if !ok {
		return apperrors.NewOperationalErr("Failed to update customer.")
	}
	return nil
}

func (s *customerService) UpdateByID(ctx context.Context, id string, patch model.CustomerPatch) error {
	ok, err := s.customerRepo.UpdateByID(ctx, id, patch)
	if err != nil {
		return err
	}

	if !ok {
		return apperrors.NewOperationalErr("Remote API did not confirm the update.")
	}
	return nil
}

func (s *customerService) DeleteByName(ctx context.Context, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return apperrors.NewValidationErr("nombre", "Name is required.")
	}

	ok, err := s.customerRepo.DeleteByName(ctx, name)
	if err != nil {
		return err
	}

	if !ok {
		return apperrors.NewOperationalErr("Failed to delete customer.")
	}
	return nil
}

func (s *customerService) DeleteByID(ctx context.Context, id string) error {
	ok, err := s.customerRepo.DeleteByID(ctx, id)
	if err != nil {
		return err
	}

	if !ok {
		return apperrors.NewOperationalErr("Remote API did not confirm the deletion.")
	}
	return nil
}

func trimmed(s *string) *string {
	if s == nil {
		return nil
	}
	t := strings.TrimSpace(*s)
	return &t
}
