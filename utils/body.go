package utils

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

var ErrInvalidBody = errors.New("invalid request body")

// ParseBody decodes the request body into out and validates it.
func ParseBody(c *fiber.Ctx, out interface{}) error {
	if err := c.BodyParser(out); err != nil {
		return ErrInvalidBody
	}
	return ValidateStruct(out)
}
