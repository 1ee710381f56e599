package repository

import (
	"context"
	"strings"

	apperrors "github.com/umalmyha/clientes/internal/errors"
	"github.com/umalmyha/clientes/internal/metrics"
	"github.com/umalmyha/clientes/internal/model"
	"github.com/umalmyha/clientes/pkg/docstore"
)

const (
	operationUpdate = "update"
	operationDelete = "delete"
)

//go:generate mockery --name=CustomerRepository --output=./mocks

// CustomerRepository is the gateway to customers kept in the remote document store
type CustomerRepository interface {
	FindAll(context.Context, string) ([]*model.Customer, error)
	Insert(context.Context, string, int) (bool, error)
	UpdateByName(context.Context, string, model.CustomerPatch) (bool, error)
	UpdateByID(context.Context, string, model.CustomerPatch) (bool, error)
	DeleteByName(context.Context, string) (bool, error)
	DeleteByID(context.Context, string) (bool, error)
}

type remoteCustomerRepository struct {
	client  *docstore.Client
	metrics *metrics.Metrics
}

// NewRemoteCustomerRepository builds CustomerRepository on top of document API client
func NewRemoteCustomerRepository(client *docstore.Client, m *metrics.Metrics) CustomerRepository {
	return &remoteCustomerRepository{client: client, metrics: m}
}

func (r *remoteCustomerRepository) FindAll(ctx context.Context, name string) ([]*model.Customer, error) {
	resp, err := r.client.Find(ctx, name)
	if err != nil {
		return nil, apperrors.NewTransportErr("load customers", err)
	}

	if !resp.Success() {
		return nil, apperrors.NewOperationalErrWithResponse("Failed to load customers.", string(resp.Body))
	}

	customers, ok := decodeCustomers(resp.Body)
	if !ok {
		return nil, apperrors.NewOperationalErrWithResponse("Customers list is not valid JSON.", string(resp.Body))
	}
	return customers, nil
}

func (r *remoteCustomerRepository) Insert(ctx context.Context, name string, age int) (bool, error) {
	resp, err := r.client.Insert(ctx, newCustomerData{Name: name, Age: age})
	if err != nil {
		return false, apperrors.NewTransportErr("insert customer", err)
	}
	return resp.Success(), nil
}

func (r *remoteCustomerRepository) UpdateByName(ctx context.Context, name string, patch model.CustomerPatch) (bool, error) {
	filter := map[string]string{fieldName: name}
	data := customerData{Name: patch.Name, Age: patch.Age, City: patch.City}

	resp, err := r.client.Update(ctx, filter, data)
	if err != nil {
		return false, apperrors.NewTransportErr("update customer", err)
	}
	return resp.Success(), nil
}

func (r *remoteCustomerRepository) DeleteByName(ctx context.Context, name string) (bool, error) {
	resp, err := r.client.Delete(ctx, map[string]string{fieldName: name})
	if err != nil {
		return false, apperrors.NewTransportErr("delete customer", err)
	}
	return resp.Success(), nil
}

func (r *remoteCustomerRepository) UpdateByID(ctx context.Context, id string, patch model.CustomerPatch) (bool, error) {
	if !model.IsObjectID(id) {
		return false, errMalformedID
	}

	if patch.Age != nil && *patch.Age < 0 {
		return false, apperrors.NewValidationErr("edad", "Age can't be negative.")
	}

	data := nonBlankData(patch)
	if data == nil {
		return false, apperrors.NewValidationErr("datos", "No field to update was provided.")
	}

	return r.mutateByID(ctx, id, fallback{
		operation: operationUpdate,
		failure:   "Remote API did not modify any document.",
		mutate: func(ctx context.Context, filter map[string]string) (outcome, error) {
			resp, err := r.client.Update(ctx, filter, data)
			if err != nil {
				return outcome{}, apperrors.NewTransportErr("update customer", err)
			}
			return updateCountRule.parse(resp), nil
		},
	})
}

func (r *remoteCustomerRepository) DeleteByID(ctx context.Context, id string) (bool, error) {
	if !model.IsObjectID(id) {
		return false, errMalformedID
	}

	return r.mutateByID(ctx, id, fallback{
		operation: operationDelete,
		failure:   "Remote API did not delete any document.",
		mutate: func(ctx context.Context, filter map[string]string) (outcome, error) {
			resp, err := r.client.Delete(ctx, filter)
			if err != nil {
				return outcome{}, apperrors.NewTransportErr("delete customer", err)
			}
			return deleteCountRule.parse(resp), nil
		},
	})
}

var errMalformedID = apperrors.NewValidationErr("id", "Id must be a 24 characters hexadecimal ObjectId.")

// nonBlankData keeps only non-blank name/city and present age, nil when nothing is left
func nonBlankData(patch model.CustomerPatch) *customerData {
	var data customerData
	if patch.Name != nil && strings.TrimSpace(*patch.Name) != "" {
		name := strings.TrimSpace(*patch.Name)
		data.Name = &name
	}

	if patch.Age != nil {
		age := *patch.Age
		data.Age = &age
	}

	if patch.City != nil && strings.TrimSpace(*patch.City) != "" {
		city := strings.TrimSpace(*patch.City)
		data.City = &city
	}

	if data == (customerData{}) {
		return nil
	}
	return &data
}
