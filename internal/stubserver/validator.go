package stubserver

import (
	"errors"
	"io"

	"github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/bomsquad/shoplist/internal/pkg/constants"
)

type Validator struct {
	validate *validator.Validate
}

func NewValidator() *Validator {
	return &Validator{validate: validator.New()}
}

func (v *Validator) Validate(i interface{}) error {
	if err := v.validate.Struct(i); err != nil {
		// Non-struct payloads (bare JSON objects bound into maps) carry no
		// tags to check.
		var invalid *validator.InvalidValidationError
		if errors.As(err, &invalid) {
			return nil
		}
		return constants.NewCodedError(constants.ErrValidation.Code(), err.Error())
	}
	return nil
}

// Binder binds and then validates in one step, so handlers never see a
// half-checked payload.
type Binder struct {
	base echo.DefaultBinder
}

func NewBinder() *Binder {
	return &Binder{}
}

func (b *Binder) Bind(i interface{}, ctx echo.Context) error {
	if err := b.base.Bind(i, ctx); err != nil {
		return constants.NewCodedError(constants.ErrValidation.Code(), err.Error())
	}
	return ctx.Echo().Validator.Validate(i)
}

// sonicSerializer swaps echo's JSON codec for sonic.
type sonicSerializer struct{}

func (sonicSerializer) Serialize(ctx echo.Context, i interface{}, _ string) error {
	body, err := sonic.Marshal(i)
	if err != nil {
		return err
	}
	_, err = ctx.Response().Write(body)
	return err
}

func (sonicSerializer) Deserialize(ctx echo.Context, i interface{}) error {
	body, err := io.ReadAll(ctx.Request().Body)
	if err != nil {
		return err
	}
	return sonic.Unmarshal(body, i)
}
