package usersrepobridge

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/dev2ever/userservice/bridge/scaffolding/apiresponse"
	"github.com/dev2ever/userservice/core/repositories/usersrepo"
	"github.com/dev2ever/userservice/core/scaffolding/results"
	"github.com/dev2ever/userservice/infrastructure/web"
	"github.com/dev2ever/userservice/sdk/logger"
)

// bridge provides HTTP handlers for the user operations.
type bridge struct {
	log            *logger.Logger
	userRepository *usersrepo.Repository
}

func newBridge(log *logger.Logger, userRepository *usersrepo.Repository) *bridge {
	return &bridge{
		log:            log,
		userRepository: userRepository,
	}
}

func (b *bridge) httpCreate(ctx context.Context, r *http.Request) web.Encoder {
	var req CreateUserRequest
	if err := web.Decode(r, &req); err != nil {
		return apiresponse.Error[usersrepo.User](results.FieldValidationError, err.Error(), http.StatusBadRequest)
	}

	res := b.userRepository.Save(ctx, req.toInput())
	if !res.IsSuccess() {
		return apiresponse.DynamicError(res)
	}

	return apiresponse.Created(res.Value())
}

func (b *bridge) httpList(ctx context.Context, r *http.Request) web.Encoder {
	users, err := b.userRepository.FindAll(ctx)
	if err != nil {
		b.log.ErrorContext(ctx, "listing users", "err", err)
		return apiresponse.Error[[]usersrepo.User](results.InternalServerError, "Internal server error.", http.StatusInternalServerError)
	}

	return apiresponse.OK(users)
}

func (b *bridge) httpGetByID(ctx context.Context, r *http.Request) web.Encoder {
	userID, encErr := parseUserID(r)
	if encErr != nil {
		return encErr
	}

	user, err := b.userRepository.FindByID(ctx, userID)
	switch {
	case errors.Is(err, usersrepo.ErrNotFound):
		// A read miss is not an error, just an empty answer.
		return apiresponse.NoContent{}

	case err != nil:
		b.log.ErrorContext(ctx, "fetching user", "user_id", userID, "err", err)
		return apiresponse.Error[usersrepo.User](results.InternalServerError, "Internal server error.", http.StatusInternalServerError)
	}

	return apiresponse.OK(user)
}

func (b *bridge) httpUpdate(ctx context.Context, r *http.Request) web.Encoder {
	userID, encErr := parseUserID(r)
	if encErr != nil {
		return encErr
	}

	var req UpdateUserRequest
	if err := web.Decode(r, &req); err != nil {
		return apiresponse.Error[usersrepo.User](results.FieldValidationError, err.Error(), http.StatusBadRequest)
	}

	res := b.userRepository.UpdateUserFields(ctx, userID, req.toInput())
	if !res.IsSuccess() {
		return apiresponse.DynamicError(res)
	}

	return apiresponse.OK(res.Value())
}

func (b *bridge) httpDelete(ctx context.Context, r *http.Request) web.Encoder {
	userID, encErr := parseUserID(r)
	if encErr != nil {
		return encErr
	}

	res := b.userRepository.DeleteByID(ctx, userID)
	if !res.IsSuccess() {
		return apiresponse.DynamicError(res)
	}

	return apiresponse.SuccessEmpty()
}

// parseUserID pulls the {user_id} path value. A non-integer id never reaches
// the repository.
func parseUserID(r *http.Request) (int64, web.Encoder) {
	raw := web.Param(r, "user_id")

	userID, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, apiresponse.Error[usersrepo.User](results.FieldValidationError, "User id must be an integer.", http.StatusBadRequest)
	}

	return userID, nil
}
