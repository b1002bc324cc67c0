package response

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/ignatzorin/freelancehub-backend/internal/logger"
	"github.com/ignatzorin/freelancehub-backend/internal/pkg/apperror"
)

type ErrorBody struct {
	Message string            `json:"message"`
	Code    string            `json:"code"`
	Details map[string]string `json:"details,omitempty"`
}

type Message struct {
	Message string `json:"message"`
}

type PaginatedResponse struct {
	Data       interface{} `json:"data"`
	Pagination Pagination  `json:"pagination"`
}

type Pagination struct {
	Total   int  `json:"total"`
	Limit   int  `json:"limit"`
	Offset  int  `json:"offset"`
	HasMore bool `json:"hasMore"`
}

func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}

func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, data)
}

func Paginated(c *gin.Context, data interface{}, total, limit, offset int) {
	c.JSON(http.StatusOK, PaginatedResponse{
		Data: data,
		Pagination: Pagination{
			Total:   total,
			Limit:   limit,
			Offset:  offset,
			HasMore: offset+limit < total,
		},
	})
}

// Error переводит ошибку в HTTP-ответ. Причины внутренних ошибок только логируются.
func Error(c *gin.Context, err error) {
	var appErr *apperror.AppError
	if !errors.As(err, &appErr) {
		appErr = apperror.Wrap(err, apperror.ErrCodeInternal, "server error")
	}

	if appErr.IsInternal() {
		logger.WithComponent("http").
			WithError(err).
			WithField("method", c.Request.Method).
			WithField("path", c.Request.URL.Path).
			Error("request failed")
		c.AbortWithStatusJSON(http.StatusInternalServerError, ErrorBody{
			Message: "server error",
			Code:    string(apperror.ErrCodeInternal),
		})
		return
	}

	c.AbortWithStatusJSON(appErr.HTTPStatus, ErrorBody{
		Message: appErr.Message,
		Code:    string(appErr.Code),
		Details: appErr.Details,
	})
}

// BindError превращает ошибку ShouldBind* в ответ 400 с деталями по полям.
func BindError(c *gin.Context, err error) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		details := make(map[string]string, len(verrs))
		for _, fe := range verrs {
			details[fieldName(fe)] = rule(fe)
		}
		Error(c, apperror.Validation("validation error", details))
		return
	}

	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	switch {
	case errors.As(err, &typeErr):
		Error(c, apperror.Validation("validation error", map[string]string{typeErr.Field: "type=" + typeErr.Type.String()}))
	case errors.As(err, &syntaxErr), errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF):
		Error(c, apperror.New(apperror.ErrCodeBadRequest, "malformed JSON body"))
	default:
		Error(c, apperror.New(apperror.ErrCodeBadRequest, "invalid request"))
	}
}

// fieldName возвращает путь поля без имени корневой структуры, с первой буквой в нижнем регистре.
func fieldName(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		ns = ns[i+1:]
	}
	parts := strings.Split(ns, ".")
	for i, p := range parts {
		if p != "" {
			parts[i] = strings.ToLower(p[:1]) + p[1:]
		}
	}
	return strings.Join(parts, ".")
}

func rule(fe validator.FieldError) string {
	if fe.Param() != "" {
		return fe.Tag() + "=" + fe.Param()
	}
	return fe.Tag()
}
