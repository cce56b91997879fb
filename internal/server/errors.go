package server

import (
	"errors"
	"strings"

	"github.com/alexanderramin/pinboard/internal/domain"
	"github.com/alexanderramin/pinboard/internal/dto"
	"github.com/alexanderramin/pinboard/internal/repository"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

func validateRequest(req any) error {
	return validate.Struct(req)
}

// statusFor maps an error from the service layer to an HTTP status.
func statusFor(err error) int {
	var (
		fiberErr *fiber.Error
		verrs    validator.ValidationErrors
	)
	switch {
	case errors.As(err, &fiberErr):
		return fiberErr.Code
	case errors.As(err, &verrs):
		return fiber.StatusBadRequest
	case errors.Is(err, repository.ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, domain.ErrNoteLocked):
		return fiber.StatusLocked
	case errors.Is(err, repository.ErrConflict):
		return fiber.StatusConflict
	case errors.Is(err, domain.ErrInvalidSize),
		errors.Is(err, domain.ErrInvalidPosition),
		errors.Is(err, domain.ErrInvalidColor),
		errors.Is(err, domain.ErrInvalidImportance),
		errors.Is(err, domain.ErrInvalidTagName):
		return fiber.StatusBadRequest
	default:
		return fiber.StatusInternalServerError
	}
}

func errorHandler(c *fiber.Ctx, err error) error {
	code := statusFor(err)
	msg := err.Error()

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			fields = append(fields, fe.Field()+" failed "+fe.Tag())
		}
		msg = "invalid request: " + strings.Join(fields, ", ")
	}
	if code == fiber.StatusInternalServerError {
		msg = "internal error"
	}
	return c.Status(code).JSON(dto.ErrorResponse(code, msg))
}
