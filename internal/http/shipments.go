package httpapi

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"kinvoice/internal/domain"
	"kinvoice/internal/pagination"
	"kinvoice/internal/repository"
)

type invoiceRef struct {
	ID *int64 `json:"id" binding:"required"`
}

type shipmentPayload struct {
	ID           *int64      `json:"id"`
	TrackingCode *string     `json:"trackingCode"`
	Date         *time.Time  `json:"date" binding:"required"`
	Details      *string     `json:"details"`
	Invoice      *invoiceRef `json:"invoice" binding:"required"`
}

func (p shipmentPayload) toDomain() domain.Shipment {
	sh := domain.Shipment{
		TrackingCode: p.TrackingCode,
		Date:         p.Date.UTC(),
		Details:      p.Details,
		Invoice:      &domain.Invoice{ID: *p.Invoice.ID},
	}
	if p.ID != nil {
		sh.ID = *p.ID
	}
	return sh
}

// @Summary Create shipment
// @Tags shipments
// @Accept json
// @Produce json
// @Param input body shipmentPayload true "Shipment without id"
// @Success 201 {object} domain.Shipment
// @Header 201 {string} Location "/api/shipments/{id}"
// @Failure 400 {object} problem
// @Router /api/shipments [post]
func (s *Server) createShipment(c *gin.Context) {
	var req shipmentPayload
	if !s.bind(c, entityShipment, "shipment", &req) {
		return
	}
	if req.ID != nil {
		s.fail(c, entityShipment, domain.ErrIDExists)
		return
	}
	sh, err := s.shipments.Create(c.Request.Context(), req.toDomain())
	if err != nil {
		s.fail(c, entityShipment, err)
		return
	}
	id := strconv.FormatInt(sh.ID, 10)
	c.Header("Location", "/api/shipments/"+id)
	s.alert(c, entityShipment, "created", id)
	c.JSON(http.StatusCreated, sh)
}

// @Summary Update shipment
// @Tags shipments
// @Accept json
// @Produce json
// @Param input body shipmentPayload true "Shipment with id"
// @Success 200 {object} domain.Shipment
// @Failure 400 {object} problem
// @Failure 404
// @Router /api/shipments [put]
func (s *Server) updateShipment(c *gin.Context) {
	var req shipmentPayload
	if !s.bind(c, entityShipment, "shipment", &req) {
		return
	}
	if req.ID == nil {
		s.fail(c, entityShipment, domain.ErrIDNull)
		return
	}
	sh, err := s.shipments.Update(c.Request.Context(), req.toDomain())
	if err != nil {
		s.fail(c, entityShipment, err)
		return
	}
	s.alert(c, entityShipment, "updated", strconv.FormatInt(sh.ID, 10))
	c.JSON(http.StatusOK, sh)
}

// @Summary List shipments
// @Tags shipments
// @Produce json
// @Param page query int false "Page number, zero-based"
// @Param size query int false "Page size"
// @Param sort query []string false "property[,asc|desc]" collectionFormat(multi)
// @Success 200 {array} domain.Shipment
// @Header 200 {string} X-Total-Count "total number of shipments"
// @Header 200 {string} Link "next, prev, last and first pages"
// @Failure 400 {object} problem
// @Router /api/shipments [get]
func (s *Server) listShipments(c *gin.Context) {
	req, err := pagination.ParseRequest(c.Request.URL.Query(), repository.ShipmentSortProperties, s.paging)
	if err != nil {
		s.fail(c, entityShipment, err)
		return
	}
	page, err := s.shipments.FindAll(c.Request.Context(), req)
	if err != nil {
		s.fail(c, entityShipment, err)
		return
	}
	writePageHeaders(c, page)
	c.JSON(http.StatusOK, page.Content)
}

// @Summary Get shipment by id
// @Tags shipments
// @Produce json
// @Param id path int true "Shipment ID"
// @Success 200 {object} domain.Shipment
// @Failure 400 {object} problem
// @Failure 404
// @Router /api/shipments/{id} [get]
func (s *Server) getShipment(c *gin.Context) {
	id, ok := s.pathID(c, entityShipment)
	if !ok {
		return
	}
	sh, err := s.shipments.FindOne(c.Request.Context(), id)
	if err != nil {
		s.fail(c, entityShipment, err)
		return
	}
	c.JSON(http.StatusOK, sh)
}

// @Summary Delete shipment
// @Tags shipments
// @Param id path int true "Shipment ID"
// @Success 204
// @Failure 400 {object} problem
// @Router /api/shipments/{id} [delete]
func (s *Server) deleteShipment(c *gin.Context) {
	id, ok := s.pathID(c, entityShipment)
	if !ok {
		return
	}
	if err := s.shipments.Delete(c.Request.Context(), id); err != nil {
		s.fail(c, entityShipment, err)
		return
	}
	s.alert(c, entityShipment, "deleted", strconv.FormatInt(id, 10))
	c.Status(http.StatusNoContent)
}
