// README: HTTP router registration.
package http

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"cabdesk/internal/http/handlers"
	"cabdesk/internal/http/middleware"
	"cabdesk/internal/infra"
	"cabdesk/internal/modules/booking"
	"cabdesk/internal/modules/fare"
)

type RouterDeps struct {
	Fares      *fare.Service
	Rules      handlers.RuleAdmin
	Bookings   *booking.Service
	Distance   handlers.DistanceProvider
	Places     handlers.Autocompleter
	Verifier   infra.TokenVerifier
	Log        *logrus.Logger
	CORSOrigin []string
}

func NewRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()
	r.Use(middleware.Recovery(deps.Log))
	r.Use(middleware.Logging(deps.Log))

	corsCfg := cors.DefaultConfig()
	if len(deps.CORSOrigin) > 0 {
		corsCfg.AllowOrigins = deps.CORSOrigin
	} else {
		corsCfg.AllowAllOrigins = true
	}
	corsCfg.AllowHeaders = append(corsCfg.AllowHeaders, "Authorization")
	r.Use(cors.New(corsCfg))

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	api := r.Group("/api")
	api.Use(middleware.Auth(deps.Verifier))

	quote := handlers.NewQuoteHandler(deps.Fares)
	api.POST("/quotes", quote.Create)

	enquiry := handlers.NewEnquiryHandler(deps.Bookings)
	api.POST("/enquiries", enquiry.Create)
	api.GET("/enquiries", enquiry.List)
	api.GET("/enquiries/:id", enquiry.Get)
	api.POST("/enquiries/:id/confirm", enquiry.Confirm)
	api.POST("/enquiries/:id/complete", enquiry.Complete)
	api.POST("/enquiries/:id/cancel", enquiry.Cancel)

	pricing := handlers.NewPricingHandler(deps.Rules)
	api.GET("/pricing/rules", pricing.ListRules)
	api.GET("/pricing/rules/:class", pricing.GetRules)
	api.PUT("/pricing/rules/:class", pricing.PutRules)
	api.GET("/pricing/packages", pricing.ListPackages)
	api.PUT("/pricing/packages/:id", pricing.PutPackage)
	api.DELETE("/pricing/packages/:id", pricing.DeletePackage)

	places := handlers.NewPlacesHandler(deps.Distance, deps.Places)
	api.POST("/distance", places.Distance)
	api.POST("/travel-estimate", places.TravelEstimate)
	api.GET("/places/autocomplete", places.Autocomplete)
	api.GET("/places/resolve", places.Resolve)

	return r
}
