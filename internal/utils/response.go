package utils

import "github.com/gofiber/fiber/v2"

const (
	StatusSuccess = "success"
	StatusError   = "error"
	StatusFail    = "fail"
)

// StandardResponse is the envelope every endpoint answers with.
type StandardResponse struct {
	Status  string `json:"status"`
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
	Meta    any    `json:"meta,omitempty"`
}

type PaginationMeta struct {
	Page        int   `json:"page"`
	Limit       int   `json:"limit"`
	Total       int64 `json:"total"`
	TotalPages  int   `json:"total_pages"`
	HasNext     bool  `json:"has_next"`
	HasPrevious bool  `json:"has_previous"`
}

func SuccessResponse(c *fiber.Ctx, code int, message string, data any) error {
	return respond(c, code, StatusSuccess, message, data, nil)
}

func SuccessWithMetaResponse(c *fiber.Ctx, code int, message string, data, meta any) error {
	return respond(c, code, StatusSuccess, message, data, meta)
}

// ErrorResponse reports client errors as "error" and server errors as "fail".
func ErrorResponse(c *fiber.Ctx, code int, message string) error {
	return respond(c, code, errorStatus(code), message, nil, nil)
}

// ErrorWithDataResponse is ErrorResponse with a payload, e.g. the report of a failed import.
func ErrorWithDataResponse(c *fiber.Ctx, code int, message string, data any) error {
	return respond(c, code, errorStatus(code), message, data, nil)
}

const (
	DefaultPageLimit = 20
	MaxPageLimit     = 100
)

// ParsePagination reads ?page= and ?limit=, falling back to the first page
// and the default limit on bad input and capping limit at MaxPageLimit.
func ParsePagination(c *fiber.Ctx) (int, int) {
	page := c.QueryInt("page", 1)
	if page < 1 {
		page = 1
	}
	limit := c.QueryInt("limit", DefaultPageLimit)
	if limit < 1 {
		limit = DefaultPageLimit
	}
	return page, min(limit, MaxPageLimit)
}

func CreatePaginationMeta(page, limit int, total int64) PaginationMeta {
	if limit < 1 {
		limit = 1
	}
	totalPages := int((total + int64(limit) - 1) / int64(limit))
	if totalPages == 0 {
		totalPages = 1
	}

	return PaginationMeta{
		Page:        page,
		Limit:       limit,
		Total:       total,
		TotalPages:  totalPages,
		HasNext:     page < totalPages,
		HasPrevious: page > 1,
	}
}

func respond(c *fiber.Ctx, code int, status, message string, data, meta any) error {
	return c.Status(code).JSON(StandardResponse{
		Status:  status,
		Code:    code,
		Message: message,
		Data:    data,
		Meta:    meta,
	})
}

func errorStatus(code int) string {
	if code >= fiber.StatusInternalServerError {
		return StatusFail
	}
	return StatusError
}
