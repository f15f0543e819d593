package handler

import (
	"strconv"

	"staffmatch/internal/delivery/http/middleware"

	"github.com/gofiber/fiber/v3"
)

func idParam(c fiber.Ctx, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Params(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, middleware.NewAppError(fiber.StatusBadRequest, "Invalid "+name, nil, err)
	}
	return id, nil
}

// intQuery reads an optional integer query value; absent values yield def.
func intQuery(c fiber.Ctx, key string, def int64) (int64, error) {
	raw := c.Query(key)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || v < 0 {
		return 0, middleware.NewAppError(fiber.StatusBadRequest, "Invalid query parameter "+key, nil, err)
	}
	return v, nil
}

func floatQuery(c fiber.Ctx, key string, def float64) (float64, error) {
	raw := c.Query(key)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || v < 0 || v > 100 {
		return 0, middleware.NewAppError(fiber.StatusBadRequest, "Invalid query parameter "+key, nil, err)
	}
	return v, nil
}
