package usecase

import (
	"context"
	"strings"

	domainErrors "github.com/devxankit/Electrici-toys/internal/domain/errors"
	"github.com/devxankit/Electrici-toys/internal/domain/model"
	"github.com/devxankit/Electrici-toys/internal/domain/repository"
)

// QueryUseCase serves read-only order views.
type QueryUseCase struct {
	views repository.OrderViewRepository
}

// NewQueryUseCase constructs QueryUseCase.
func NewQueryUseCase(views repository.OrderViewRepository) *QueryUseCase {
	return &QueryUseCase{views: views}
}

// ListAll returns every order, newest first.
func (u *QueryUseCase) ListAll(ctx context.Context) ([]model.OrderView, error) {
	return u.views.ListAll(ctx)
}

// ListByUser returns the caller's orders, newest first.
func (u *QueryUseCase) ListByUser(ctx context.Context, userID string) ([]model.OrderView, error) {
	return u.views.ListByUser(ctx, userID)
}

// Get returns one order if the actor owns it or is an admin.
func (u *QueryUseCase) Get(ctx context.Context, id string, actor model.Actor) (*model.OrderView, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, domainErrors.ErrOrderNotFound
	}
	view, err := u.views.GetView(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.CanAccess(view.UserID) {
		return nil, domainErrors.ErrForbidden
	}
	return view, nil
}
