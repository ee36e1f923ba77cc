package httputil

import (
	stderrors "errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/clinic-api/pkg/errors"
)

// Response wraps all API responses
type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *Error      `json:"error,omitempty"`
}

// Error represents API error
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// Pagination represents pagination metadata
type Pagination struct {
	Page      int `json:"page"`
	PageSize  int `json:"page_size"`
	Total     int `json:"total"`
	TotalPage int `json:"total_pages"`
}

// PaginatedResponse wraps paginated data
type PaginatedResponse struct {
	Data       interface{} `json:"data"`
	Pagination Pagination  `json:"pagination"`
}

var statusByCode = map[errors.ErrorCode]int{
	errors.ErrNotFound:          http.StatusNotFound,
	errors.ErrBadRequest:        http.StatusBadRequest,
	errors.ErrUnauthorized:      http.StatusUnauthorized,
	errors.ErrForbidden:         http.StatusForbidden,
	errors.ErrConflict:          http.StatusConflict,
	errors.ErrInvalidTransition: http.StatusConflict,
	// A misconfigured clinic is a client-fixable problem, not a server fault.
	errors.ErrConfiguration: http.StatusUnprocessableEntity,
	errors.ErrInternal:      http.StatusInternalServerError,
}

// HTTPStatus maps an application error code to its HTTP status.
func HTTPStatus(err error) int {
	if status, ok := statusByCode[errors.Code(err)]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// RespondWithSuccess sends a success response
func RespondWithSuccess(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Success: true,
		Data:    data,
	})
}

// RespondWithCreated sends a success response for a newly created resource
func RespondWithCreated(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, Response{
		Success: true,
		Data:    data,
	})
}

// RespondWithError sends an error response. Internal errors never leak their
// underlying cause to the client.
func RespondWithError(c *gin.Context, err error) {
	status := HTTPStatus(err)
	message := "Internal server error"

	var appErr *errors.AppError
	if stderrors.As(err, &appErr) && status != http.StatusInternalServerError {
		message = appErr.Message
	}

	c.JSON(status, Response{
		Success: false,
		Error: &Error{
			Code:    int(errors.Code(err)),
			Message: message,
		},
	})
}

// RespondWithValidationError sends a 400 with the validation message intact.
func RespondWithValidationError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, Response{
		Success: false,
		Error: &Error{
			Code:    int(errors.ErrBadRequest),
			Message: err.Error(),
		},
	})
}

// RespondWithPagination sends a paginated response
func RespondWithPagination(c *gin.Context, data interface{}, page, pageSize, total int) {
	totalPages := 0
	if pageSize > 0 {
		totalPages = (total + pageSize - 1) / pageSize
	}

	c.JSON(http.StatusOK, Response{
		Success: true,
		Data: PaginatedResponse{
			Data: data,
			Pagination: Pagination{
				Page:      page,
				PageSize:  pageSize,
				Total:     total,
				TotalPage: totalPages,
			},
		},
	})
}
