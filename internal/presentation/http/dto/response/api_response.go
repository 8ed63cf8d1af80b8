package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/ddms-api/pkg/apperror"
	"github.com/sangkips/ddms-api/pkg/ddms"
	"github.com/sangkips/ddms-api/pkg/pagination"
)

// LoginStatusKey is the gin context key the auth middleware uses to
// report why a request is not authenticated.
const LoginStatusKey = "login_status"

// APIResponse is the DDMS envelope every endpoint answers with.
type APIResponse = ddms.Envelope[interface{}]

func loginStatus(c *gin.Context) string {
	if s := c.GetString(LoginStatusKey); s != "" {
		return s
	}
	if _, ok := c.Get("user_id"); ok {
		return ddms.LoginAuthenticated
	}
	return ddms.LoginUnauthenticated
}

// Success sends a success response
func Success(c *gin.Context, statusCode int, message string, data interface{}) {
	c.JSON(statusCode, APIResponse{
		Status:      ddms.StatusSuccess,
		LoginStatus: loginStatus(c),
		Message:     message,
		Data:        data,
	})
}

// SuccessWithPagination sends a success response with pagination
func SuccessWithPagination[T any](c *gin.Context, statusCode int, message string, result *pagination.PaginatedResult[T]) {
	Success(c, statusCode, message, result)
}

// Error sends an error response
func Error(c *gin.Context, err error) {
	appErr := apperror.GetAppError(err)
	if appErr.Code >= http.StatusInternalServerError {
		_ = c.Error(err)
	}
	var data interface{}
	if len(appErr.Errors) > 0 {
		data = gin.H{"errors": appErr.Errors}
	}
	c.JSON(appErr.Code, APIResponse{
		Status:      ddms.StatusError,
		LoginStatus: loginStatus(c),
		ErrorCode:   appErr.ErrorCode,
		Message:     appErr.Message,
		Data:        data,
	})
}

// ErrorWithCode sends an error response with a specific status code
func ErrorWithCode(c *gin.Context, statusCode int, errorCode, message string) {
	Error(c, &apperror.AppError{Code: statusCode, ErrorCode: errorCode, Message: message})
}

// ValidationError sends a validation error response
func ValidationError(c *gin.Context, errors []apperror.FieldError) {
	Error(c, apperror.NewValidationError(errors))
}

// Created sends a 201 Created response
func Created(c *gin.Context, message string, data interface{}) {
	Success(c, http.StatusCreated, message, data)
}

// OK sends a 200 OK response
func OK(c *gin.Context, message string, data interface{}) {
	Success(c, http.StatusOK, message, data)
}

// NotFound sends a 404 Not Found response
func NotFound(c *gin.Context, message string) {
	ErrorWithCode(c, http.StatusNotFound, ddms.CodeNotFound, message)
}

// Unauthorized sends a 401 Unauthorized response
func Unauthorized(c *gin.Context, errorCode, message string) {
	ErrorWithCode(c, http.StatusUnauthorized, errorCode, message)
}

// Forbidden sends a 403 Forbidden response
func Forbidden(c *gin.Context, message string) {
	ErrorWithCode(c, http.StatusForbidden, ddms.CodeForbidden, message)
}

// BadRequest sends a 400 Bad Request response
func BadRequest(c *gin.Context, message string) {
	ErrorWithCode(c, http.StatusBadRequest, ddms.CodeValidation, message)
}

// InternalServerError sends a 500 Internal Server Error response
func InternalServerError(c *gin.Context, message string) {
	ErrorWithCode(c, http.StatusInternalServerError, ddms.CodeInternal, message)
}
