package httpapi

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"kinvoice/internal/domain"
	"kinvoice/internal/pagination"
	"kinvoice/internal/repository"
)

// invoicePayload тело POST/PUT; указатели отличают null от нулевого значения
type invoicePayload struct {
	ID            *int64                `json:"id"`
	Code          *string               `json:"code" binding:"required"`
	Date          *time.Time            `json:"date" binding:"required"`
	Details       *string               `json:"details"`
	Status        *domain.InvoiceStatus `json:"status" binding:"required,oneof=ISSUED PAID CANCELLED"`
	PaymentMethod *domain.PaymentMethod `json:"paymentMethod" binding:"required,oneof=CREDIT_CARD CASH_ON_DELIVERY PAYPAL"`
	PaymentDate   *time.Time            `json:"paymentDate" binding:"required"`
	PaymentAmount *decimal.Decimal      `json:"paymentAmount" binding:"required,money" swaggertype:"number"`
}

// toDomain вызывается после успешной валидации, обязательные поля не nil
func (p invoicePayload) toDomain() domain.Invoice {
	inv := domain.Invoice{
		Code:          *p.Code,
		Date:          p.Date.UTC(),
		Details:       p.Details,
		Status:        *p.Status,
		PaymentMethod: *p.PaymentMethod,
		PaymentDate:   p.PaymentDate.UTC(),
		PaymentAmount: *p.PaymentAmount,
	}
	if p.ID != nil {
		inv.ID = *p.ID
	}
	return inv
}

// @Summary Create invoice
// @Tags invoices
// @Accept json
// @Produce json
// @Param input body invoicePayload true "Invoice without id"
// @Success 201 {object} domain.Invoice
// @Header 201 {string} Location "/api/invoices/{id}"
// @Failure 400 {object} problem
// @Router /api/invoices [post]
func (s *Server) createInvoice(c *gin.Context) {
	var req invoicePayload
	if !s.bind(c, entityInvoice, "invoice", &req) {
		return
	}
	if req.ID != nil {
		s.fail(c, entityInvoice, domain.ErrIDExists)
		return
	}
	inv, err := s.invoices.Create(c.Request.Context(), req.toDomain())
	if err != nil {
		s.fail(c, entityInvoice, err)
		return
	}
	id := strconv.FormatInt(inv.ID, 10)
	c.Header("Location", "/api/invoices/"+id)
	s.alert(c, entityInvoice, "created", id)
	c.JSON(http.StatusCreated, inv)
}

// @Summary Update invoice
// @Tags invoices
// @Accept json
// @Produce json
// @Param input body invoicePayload true "Invoice with id"
// @Success 200 {object} domain.Invoice
// @Failure 400 {object} problem
// @Failure 404
// @Router /api/invoices [put]
func (s *Server) updateInvoice(c *gin.Context) {
	var req invoicePayload
	if !s.bind(c, entityInvoice, "invoice", &req) {
		return
	}
	if req.ID == nil {
		s.fail(c, entityInvoice, domain.ErrIDNull)
		return
	}
	inv, err := s.invoices.Update(c.Request.Context(), req.toDomain())
	if err != nil {
		s.fail(c, entityInvoice, err)
		return
	}
	s.alert(c, entityInvoice, "updated", strconv.FormatInt(inv.ID, 10))
	c.JSON(http.StatusOK, inv)
}

// @Summary List invoices
// @Tags invoices
// @Produce json
// @Param page query int false "Page number, zero-based"
// @Param size query int false "Page size"
// @Param sort query []string false "property[,asc|desc]" collectionFormat(multi)
// @Success 200 {array} domain.Invoice
// @Header 200 {string} X-Total-Count "total number of invoices"
// @Header 200 {string} Link "next, prev, last and first pages"
// @Failure 400 {object} problem
// @Router /api/invoices [get]
func (s *Server) listInvoices(c *gin.Context) {
	req, err := pagination.ParseRequest(c.Request.URL.Query(), repository.InvoiceSortProperties, s.paging)
	if err != nil {
		s.fail(c, entityInvoice, err)
		return
	}
	page, err := s.invoices.FindAll(c.Request.Context(), req)
	if err != nil {
		s.fail(c, entityInvoice, err)
		return
	}
	writePageHeaders(c, page)
	c.JSON(http.StatusOK, page.Content)
}

// @Summary Get invoice by id
// @Tags invoices
// @Produce json
// @Param id path int true "Invoice ID"
// @Success 200 {object} domain.Invoice
// @Failure 400 {object} problem
// @Failure 404
// @Router /api/invoices/{id} [get]
func (s *Server) getInvoice(c *gin.Context) {
	id, ok := s.pathID(c, entityInvoice)
	if !ok {
		return
	}
	inv, err := s.invoices.FindOne(c.Request.Context(), id)
	if err != nil {
		s.fail(c, entityInvoice, err)
		return
	}
	c.JSON(http.StatusOK, inv)
}

// @Summary Delete invoice
// @Tags invoices
// @Param id path int true "Invoice ID"
// @Success 204
// @Failure 400 {object} problem
// @Failure 409 {object} problem
// @Router /api/invoices/{id} [delete]
func (s *Server) deleteInvoice(c *gin.Context) {
	id, ok := s.pathID(c, entityInvoice)
	if !ok {
		return
	}
	if err := s.invoices.Delete(c.Request.Context(), id); err != nil {
		s.fail(c, entityInvoice, err)
		return
	}
	s.alert(c, entityInvoice, "deleted", strconv.FormatInt(id, 10))
	c.Status(http.StatusNoContent)
}
