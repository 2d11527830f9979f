// README: Pricing configuration handlers - rate tables and rental packages.
package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"cabdesk/internal/modules/fare"
)

// RuleAdmin is the configuration surface the pricing endpoints need.
type RuleAdmin interface {
	fare.RuleSource
	PutRules(ctx context.Context, class fare.VehicleClass, r fare.Rules) error
	PutPackage(ctx context.Context, p fare.Package) error
	DeletePackage(ctx context.Context, id string) error
}

type PricingHandler struct {
	store RuleAdmin
}

func NewPricingHandler(store RuleAdmin) *PricingHandler {
	return &PricingHandler{store: store}
}

func (h *PricingHandler) ListRules(c *gin.Context) {
	rules, err := h.store.Rules(c.Request.Context())
	if err != nil {
		writeDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"rules": rules})
}

func (h *PricingHandler) GetRules(c *gin.Context) {
	class := fare.VehicleClass(c.Param("class"))
	rules, err := h.store.Rules(c.Request.Context())
	if err != nil {
		writeDomainError(c, err)
		return
	}
	r, ok := rules[class]
	if !ok {
		writeError(c, http.StatusNotFound, "no pricing rules for vehicle class "+string(class))
		return
	}
	c.JSON(http.StatusOK, r)
}

func (h *PricingHandler) PutRules(c *gin.Context) {
	class := fare.VehicleClass(c.Param("class"))
	var r fare.Rules
	if err := c.ShouldBindJSON(&r); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	if err := h.store.PutRules(c.Request.Context(), class, r); err != nil {
		writeDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, r)
}

func (h *PricingHandler) ListPackages(c *gin.Context) {
	packages, err := h.store.Packages(c.Request.Context())
	if err != nil {
		writeDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"packages": packages})
}

func (h *PricingHandler) PutPackage(c *gin.Context) {
	var p fare.Package
	if err := c.ShouldBindJSON(&p); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	if p.ID == "" {
		p.ID = c.Param("id")
	}
	if p.ID != c.Param("id") {
		writeError(c, http.StatusBadRequest, "package id mismatch")
		return
	}
	if err := h.store.PutPackage(c.Request.Context(), p); err != nil {
		writeDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *PricingHandler) DeletePackage(c *gin.Context) {
	if err := h.store.DeletePackage(c.Request.Context(), c.Param("id")); err != nil {
		writeDomainError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
