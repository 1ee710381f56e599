package repository

import (
	"context"
	"strings"

	apperrors "github.com/umalmyha/clientes/internal/errors"
	"github.com/umalmyha/clientes/internal/metrics"
	"github.com/umalmyha/clientes/internal/model"
)

// mutation applies one update or delete restricted by filter and reports its effect
type mutation func(ctx context.Context, filter map[string]string) (outcome, error)

type fallback struct {
	operation string
	failure   string
	mutate    mutation
}

// mutateByID runs mutation filtered by _id first. The remote store doesn't always match by _id,
// so when the effect is not confirmed the document is looked up in full listing and the same
// mutation is repeated filtered by its email.
func (r *remoteCustomerRepository) mutateByID(ctx context.Context, id string, f fallback) (bool, error) {
	primary, err := f.mutate(ctx, map[string]string{fieldID: id})
	if err != nil {
		return false, err
	}
	r.metrics.ObserveMutation(f.operation, metrics.TierID, primary.kind.String())

	if primary.confirmed() {
		return true, nil
	}

	email, err := r.correlationKey(ctx, id, func(c *model.Customer) string { return c.Email })
	if err != nil {
		return false, err
	}

	if strings.TrimSpace(email) == "" {
		r.metrics.ObserveMutation(f.operation, metrics.TierEmail, "not_located")
		return false, apperrors.NewOperationalErr("Document could not be located by _id to apply fallback.")
	}

	secondary, err := f.mutate(ctx, map[string]string{fieldEmail: email})
	if err != nil {
		return false, err
	}
	r.metrics.ObserveMutation(f.operation, metrics.TierEmail, secondary.kind.String())

	if secondary.confirmed() {
		return true, nil
	}
	return false, apperrors.NewOperationalErrWithResponse(f.failure, secondary.raw)
}

// correlationKey scans unfiltered listing for document with id and extracts key from it.
// Empty key means document was not found or has no such key.
func (r *remoteCustomerRepository) correlationKey(ctx context.Context, id string, extract func(*model.Customer) string) (string, error) {
	customers, err := r.FindAll(ctx, "")
	if err != nil {
		return "", err
	}

	for _, c := range customers {
		if c.HasID(id) {
			return extract(c), nil
		}
	}
	return "", nil
}
