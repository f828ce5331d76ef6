package httpapi

import (
	"errors"
	"log/slog"
	"net/http"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"kinvoice/internal/domain"
	"kinvoice/internal/pagination"
	"kinvoice/internal/service"
)

const (
	problemWithMessage  = "problem-with-message"
	constraintViolation = "constraint-violation"
)

// problem тело ответа об ошибке клиента
type problem struct {
	Type        string       `json:"type"`
	Title       string       `json:"title"`
	Status      int          `json:"status"`
	EntityName  string       `json:"entityName,omitempty"`
	ErrorKey    string       `json:"errorKey,omitempty"`
	Message     string       `json:"message"`
	Params      string       `json:"params,omitempty"`
	FieldErrors []fieldError `json:"fieldErrors,omitempty"`
}

type fieldError struct {
	ObjectName string `json:"objectName"`
	Field      string `json:"field"`
	Message    string `json:"message"`
}

// mapErrorToStatus статус и ключ ошибки для ответа
func mapErrorToStatus(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrIDExists):
		return http.StatusBadRequest, "idexists"
	case errors.Is(err, domain.ErrIDNull):
		return http.StatusBadRequest, "idnull"
	case errors.Is(err, service.ErrInvalidInput):
		return http.StatusBadRequest, "validation"
	case errors.Is(err, domain.ErrInvoiceNotFound):
		return http.StatusBadRequest, "invoicenotfound"
	case errors.Is(err, pagination.ErrInvalidSort):
		return http.StatusBadRequest, "sortinvalid"
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, "notfound"
	case errors.Is(err, domain.ErrInvoiceInUse):
		return http.StatusConflict, "invoiceinuse"
	default:
		return http.StatusInternalServerError, "internal"
	}
}

// fail пишет ответ об ошибке: 404 без тела, 5xx без подробностей,
// остальное: problem и заголовки X-<app>-error / X-<app>-params
func (s *Server) fail(c *gin.Context, entity string, err error) {
	status, key := mapErrorToStatus(err)
	switch {
	case status == http.StatusNotFound:
		c.AbortWithStatus(status)
	case status >= http.StatusInternalServerError:
		slog.ErrorContext(c.Request.Context(), "request failed",
			"entity", entity,
			"error", err,
			"request_id", c.GetString(ctxKeyRequestID),
		)
		c.AbortWithStatusJSON(status, problem{
			Type:    problemWithMessage,
			Title:   http.StatusText(status),
			Status:  status,
			Message: "error.http.500",
		})
	default:
		s.failure(c, status, problem{
			Type:       problemWithMessage,
			Title:      err.Error(),
			EntityName: entity,
			ErrorKey:   key,
		})
	}
}

func (s *Server) failure(c *gin.Context, status int, p problem) {
	p.Status = status
	p.Message = "error." + p.ErrorKey
	p.Params = p.EntityName
	c.Header("X-"+s.appName+"-error", p.Message)
	c.Header("X-"+s.appName+"-params", p.EntityName)
	c.AbortWithStatusJSON(status, p)
}

// alert заголовки уведомления об успешной операции (created/updated/deleted)
func (s *Server) alert(c *gin.Context, entity, action, param string) {
	c.Header("X-"+s.appName+"-alert", s.appName+"."+entity+"."+action)
	c.Header("X-"+s.appName+"-params", param)
}

// bind разбирает JSON тела; при ошибке уже отвечает 400
func (s *Server) bind(c *gin.Context, entity, object string, dst any) bool {
	err := c.ShouldBindJSON(dst)
	if err == nil {
		return true
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		s.failure(c, http.StatusBadRequest, problem{
			Type:        constraintViolation,
			Title:       "Method argument not valid",
			EntityName:  entity,
			ErrorKey:    "validation",
			FieldErrors: toFieldErrors(object, verrs),
		})
		return false
	}
	s.failure(c, http.StatusBadRequest, problem{
		Type:       problemWithMessage,
		Title:      "invalid json",
		EntityName: entity,
		ErrorKey:   "badrequest",
	})
	return false
}

func toFieldErrors(object string, verrs validator.ValidationErrors) []fieldError {
	out := make([]fieldError, 0, len(verrs))
	for _, fe := range verrs {
		field := fe.Namespace()
		if i := strings.IndexByte(field, '.'); i >= 0 {
			field = field[i+1:]
		}
		msg := fe.Tag()
		switch msg {
		case "required":
			msg = "NotNull"
		case "oneof":
			msg = "InvalidEnum"
		case "money":
			msg = "Digits"
		}
		out = append(out, fieldError{ObjectName: object, Field: field, Message: msg})
	}
	return out
}

var registerValidatorsOnce sync.Once

// registerValidators настраивает валидатор gin: JSON-имена полей в ошибках,
// decimal как строка и тег money (не больше 19 цифр до запятой, не меньше нуля)
func registerValidators() {
	registerValidatorsOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
			if name == "-" {
				return ""
			}
			if name == "" {
				return f.Name
			}
			return name
		})
		v.RegisterCustomTypeFunc(func(field reflect.Value) any {
			if d, ok := field.Interface().(decimal.Decimal); ok {
				return d.String()
			}
			return nil
		}, decimal.Decimal{})
		_ = v.RegisterValidation("money", validateMoney)
	})
}

func validateMoney(fl validator.FieldLevel) bool {
	d, err := decimal.NewFromString(fl.Field().String())
	if err != nil || d.IsNegative() {
		return false
	}
	maxIntDigits := domain.AmountPrecision - domain.AmountScale
	return d.Truncate(0).Abs().LessThan(decimal.New(1, int32(maxIntDigits)))
}
