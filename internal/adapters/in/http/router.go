package http

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"
)

// RouterOptions configures the optional parts of the HTTP surface.
type RouterOptions struct {
	// ValidateRequests checks every /api/v1 request against the OpenAPI document.
	ValidateRequests bool
	// Metrics serves GET /metrics when set.
	Metrics http.Handler
}

// Register mounts the API, the health probe, the metrics endpoint and the
// Swagger UI on e.
func Register(ctx context.Context, e *echo.Echo, s *Server, opts RouterOptions) error {
	doc, err := LoadOpenAPI(ctx)
	if err != nil {
		return err
	}
	if err := registerSwagger(doc); err != nil {
		return err
	}

	var middleware []echo.MiddlewareFunc
	if opts.ValidateRequests {
		validator, err := requestValidator(doc)
		if err != nil {
			return err
		}
		middleware = append(middleware, validator)
	}

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})
	if opts.Metrics != nil {
		e.GET("/metrics", echo.WrapHandler(opts.Metrics))
	}
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api/v1", middleware...)

	api.POST("/tenders", s.OpenTender)
	api.GET("/tenders/:tenderId", s.GetTender)
	api.POST("/tenders/:tenderId/quotations", s.CreateQuotation)
	api.GET("/tenders/:tenderId/awards", s.ListTenderAwards)
	api.POST("/tenders/:tenderId/reconcile", s.ReconcileTenderStatus)

	api.GET("/quotations/:quotationId", s.GetQuotation)
	api.GET("/quotations/:quotationId/pdf", s.RenderQuotationPdf)
	api.GET("/quotations/:quotationId/awards", s.ListQuotationAwards)
	api.POST("/quotations/:quotationId/finalize", s.FinalizeQuotation)
	api.POST("/quotations/:quotationId/lines", s.AddLine)
	api.PATCH("/quotations/:quotationId/lines/:lineId", s.UpdateLine)
	api.DELETE("/quotations/:quotationId/lines/:lineId", s.RemoveLine)
	api.POST("/quotations/:quotationId/lines/:lineId/award", s.AwardLine)
	api.POST("/quotations/:quotationId/lines/:lineId/reject", s.RejectLine)

	return nil
}
