package utils

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
)

// Pagination holds limit/offset paging parameters.
type Pagination struct {
	Limit  int
	Offset int
}

// ParsePagination reads limit and offset query params with sane defaults.
func ParsePagination(c *fiber.Ctx) Pagination {
	limit := parseInt(c.Query("limit", "20"), 20)
	offset := parseInt(c.Query("offset", "0"), 0)
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	return Pagination{
		Limit:  limit,
		Offset: offset,
	}
}

func parseInt(value string, fallback int) int {
	if parsed, err := strconv.Atoi(value); err == nil {
		return parsed
	}
	return fallback
}
