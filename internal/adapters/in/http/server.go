package http

import (
	"log/slog"
	"net/http"
	"time"

	"tendering/internal/core/application/usecases/commands"
	"tendering/internal/core/application/usecases/queries"
	"tendering/internal/core/domain/model/kernel"
	"tendering/internal/core/domain/model/quotation"
	"tendering/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

// Server handles the HTTP API. It coordinates between HTTP handlers and
// application use cases.
type Server struct {
	workflow *commands.Workflow

	// Query handlers
	getTenderHandler          queries.GetTenderQueryHandler
	getQuotationHandler       queries.GetQuotationQueryHandler
	listAwardsHandler         queries.ListAwardsQueryHandler
	renderQuotationPdfHandler queries.RenderQuotationPdfQueryHandler

	logger *slog.Logger
	now    func() time.Time
}

func NewServer(
	workflow *commands.Workflow,
	getTenderHandler queries.GetTenderQueryHandler,
	getQuotationHandler queries.GetQuotationQueryHandler,
	listAwardsHandler queries.ListAwardsQueryHandler,
	renderQuotationPdfHandler queries.RenderQuotationPdfQueryHandler,
	logger *slog.Logger,
) *Server {
	return &Server{
		workflow:                  workflow,
		getTenderHandler:          getTenderHandler,
		getQuotationHandler:       getQuotationHandler,
		listAwardsHandler:         listAwardsHandler,
		renderQuotationPdfHandler: renderQuotationPdfHandler,
		logger:                    logger.With("component", "http_server"),
		now:                       time.Now,
	}
}

// OpenTender handles POST /api/v1/tenders - opens a tender.
func (s *Server) OpenTender(c echo.Context) error {
	var req OpenTenderRequest
	if err := bindBody(c, &req); err != nil {
		return s.fail(c, err)
	}

	items := make([]commands.RequestedItemInput, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, commands.RequestedItemInput{
			ProductID:   kernel.UUIDFromGoogle(item.ProductID),
			Description: item.Description,
			Quantity:    item.Quantity,
		})
	}

	cmd, err := commands.NewOpenTenderCommand(kernel.NewUUID(), req.CallReference, req.InternalReference,
		req.StartsAt, req.Deadline, kernel.UUIDFromGoogle(req.RequesterID), items)
	if err != nil {
		return s.fail(c, err)
	}

	t, err := s.workflow.OpenTender(c.Request().Context(), cmd)
	if err != nil {
		return s.fail(c, err)
	}

	return c.JSON(http.StatusCreated, newTenderResponse(queries.NewTenderView(t)))
}

// GetTender handles GET /api/v1/tenders/{tenderId}.
func (s *Server) GetTender(c echo.Context) error {
	tenderID, err := pathUUID(c, "tenderId")
	if err != nil {
		return s.fail(c, err)
	}

	query, err := queries.NewGetTenderQuery(tenderID)
	if err != nil {
		return s.fail(c, err)
	}

	view, err := s.getTenderHandler.Handle(c.Request().Context(), query)
	if err != nil {
		return s.fail(c, err)
	}

	return c.JSON(http.StatusOK, newTenderResponse(view))
}

// CreateQuotation handles POST /api/v1/tenders/{tenderId}/quotations - creates
// the open quotation of a tender.
func (s *Server) CreateQuotation(c echo.Context) error {
	tenderID, err := pathUUID(c, "tenderId")
	if err != nil {
		return s.fail(c, err)
	}

	var req CreateQuotationRequest
	if err := bindBody(c, &req); err != nil {
		return s.fail(c, err)
	}

	cmd, err := commands.NewCreateQuotationCommand(kernel.NewUUID(), tenderID, req.Identifier, req.Currency, req.PaymentTerms)
	if err != nil {
		return s.fail(c, err)
	}

	q, err := s.workflow.CreateQuotation(c.Request().Context(), cmd)
	if err != nil {
		return s.fail(c, err)
	}

	return c.JSON(http.StatusCreated, newQuotationResponse(queries.NewQuotationView(q)))
}

// ListTenderAwards handles GET /api/v1/tenders/{tenderId}/awards.
func (s *Server) ListTenderAwards(c echo.Context) error {
	tenderID, err := pathUUID(c, "tenderId")
	if err != nil {
		return s.fail(c, err)
	}

	query, err := queries.NewListAwardsByTenderQuery(tenderID)
	if err != nil {
		return s.fail(c, err)
	}
	return s.listAwards(c, query)
}

// ReconcileTenderStatus handles POST /api/v1/tenders/{tenderId}/reconcile.
func (s *Server) ReconcileTenderStatus(c echo.Context) error {
	tenderID, err := pathUUID(c, "tenderId")
	if err != nil {
		return s.fail(c, err)
	}

	cmd, err := commands.NewReconcileTenderStatusCommand(tenderID)
	if err != nil {
		return s.fail(c, err)
	}

	ctx := c.Request().Context()
	changed, err := s.workflow.ReconcileTenderStatus(ctx, cmd)
	if err != nil {
		return s.fail(c, err)
	}

	query, err := queries.NewGetTenderQuery(tenderID)
	if err != nil {
		return s.fail(c, err)
	}
	view, err := s.getTenderHandler.Handle(ctx, query)
	if err != nil {
		return s.fail(c, err)
	}

	return c.JSON(http.StatusOK, ReconcileResponse{Changed: changed, Status: view.Status})
}

// GetQuotation handles GET /api/v1/quotations/{quotationId}.
func (s *Server) GetQuotation(c echo.Context) error {
	quotationID, err := pathUUID(c, "quotationId")
	if err != nil {
		return s.fail(c, err)
	}

	query, err := queries.NewGetQuotationQuery(quotationID)
	if err != nil {
		return s.fail(c, err)
	}

	view, err := s.getQuotationHandler.Handle(c.Request().Context(), query)
	if err != nil {
		return s.fail(c, err)
	}

	return c.JSON(http.StatusOK, newQuotationResponse(view))
}

// RenderQuotationPdf handles GET /api/v1/quotations/{quotationId}/pdf.
func (s *Server) RenderQuotationPdf(c echo.Context) error {
	quotationID, err := pathUUID(c, "quotationId")
	if err != nil {
		return s.fail(c, err)
	}

	query, err := queries.NewRenderQuotationPdfQuery(quotationID)
	if err != nil {
		return s.fail(c, err)
	}

	doc, err := s.renderQuotationPdfHandler.Handle(c.Request().Context(), query)
	if err != nil {
		return s.fail(c, err)
	}

	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="`+doc.Filename+`"`)
	return c.Blob(http.StatusOK, doc.ContentType, doc.Content)
}

// ListQuotationAwards handles GET /api/v1/quotations/{quotationId}/awards.
func (s *Server) ListQuotationAwards(c echo.Context) error {
	quotationID, err := pathUUID(c, "quotationId")
	if err != nil {
		return s.fail(c, err)
	}

	query, err := queries.NewListAwardsByQuotationQuery(quotationID)
	if err != nil {
		return s.fail(c, err)
	}
	return s.listAwards(c, query)
}

// FinalizeQuotation handles POST /api/v1/quotations/{quotationId}/finalize.
func (s *Server) FinalizeQuotation(c echo.Context) error {
	quotationID, err := pathUUID(c, "quotationId")
	if err != nil {
		return s.fail(c, err)
	}

	cmd, err := commands.NewFinalizeQuotationCommand(quotationID)
	if err != nil {
		return s.fail(c, err)
	}

	q, err := s.workflow.FinalizeQuotation(c.Request().Context(), cmd)
	if err != nil {
		return s.fail(c, err)
	}

	return c.JSON(http.StatusOK, newQuotationResponse(queries.NewQuotationView(q)))
}

// AddLine handles POST /api/v1/quotations/{quotationId}/lines.
func (s *Server) AddLine(c echo.Context) error {
	quotationID, err := pathUUID(c, "quotationId")
	if err != nil {
		return s.fail(c, err)
	}

	var req AddLineRequest
	if err := bindBody(c, &req); err != nil {
		return s.fail(c, err)
	}

	var productID *kernel.UUID
	if req.ProductID != nil {
		id := kernel.UUIDFromGoogle(*req.ProductID)
		productID = &id
	}

	cmd, err := commands.NewAddLineCommand(quotationID, kernel.NewUUID(), productID, req.Description,
		req.Quantity, req.UnitPriceWithoutTax, req.TaxPercentage, req.DeliveryDays)
	if err != nil {
		return s.fail(c, err)
	}

	q, err := s.workflow.AddLine(c.Request().Context(), cmd)
	if err != nil {
		return s.fail(c, err)
	}

	return c.JSON(http.StatusCreated, newQuotationResponse(queries.NewQuotationView(q)))
}

// UpdateLine handles PATCH /api/v1/quotations/{quotationId}/lines/{lineId}.
func (s *Server) UpdateLine(c echo.Context) error {
	quotationID, lineID, err := lineIDs(c)
	if err != nil {
		return s.fail(c, err)
	}

	var req UpdateLineRequest
	if err := bindBody(c, &req); err != nil {
		return s.fail(c, err)
	}

	cmd, err := commands.NewUpdateLineCommand(quotationID, lineID, quotation.LinePatch{
		Description:         req.Description,
		Quantity:            req.Quantity,
		UnitPriceWithoutTax: req.UnitPriceWithoutTax,
		TaxPercentage:       req.TaxPercentage,
		DeliveryDays:        req.DeliveryDays,
	})
	if err != nil {
		return s.fail(c, err)
	}

	q, err := s.workflow.UpdateLine(c.Request().Context(), cmd)
	if err != nil {
		return s.fail(c, err)
	}

	return c.JSON(http.StatusOK, newQuotationResponse(queries.NewQuotationView(q)))
}

// RemoveLine handles DELETE /api/v1/quotations/{quotationId}/lines/{lineId}.
func (s *Server) RemoveLine(c echo.Context) error {
	quotationID, lineID, err := lineIDs(c)
	if err != nil {
		return s.fail(c, err)
	}

	cmd, err := commands.NewRemoveLineCommand(quotationID, lineID)
	if err != nil {
		return s.fail(c, err)
	}

	q, err := s.workflow.RemoveLine(c.Request().Context(), cmd)
	if err != nil {
		return s.fail(c, err)
	}

	return c.JSON(http.StatusOK, newQuotationResponse(queries.NewQuotationView(q)))
}

// AwardLine handles POST /api/v1/quotations/{quotationId}/lines/{lineId}/award.
// Without a quantity the whole line is awarded.
func (s *Server) AwardLine(c echo.Context) error {
	quotationID, lineID, err := lineIDs(c)
	if err != nil {
		return s.fail(c, err)
	}

	var req AwardLineRequest
	if err := bindBody(c, &req); err != nil {
		return s.fail(c, err)
	}
	adjudicationDate := s.adjudicationDate(req.AdjudicationDate)

	var cmd commands.AwardLineCommand
	if req.Quantity != nil {
		cmd, err = commands.NewAwardLinePartiallyCommand(quotationID, lineID, *req.Quantity, adjudicationDate)
	} else {
		cmd, err = commands.NewAwardLineCommand(quotationID, lineID, adjudicationDate)
	}
	if err != nil {
		return s.fail(c, err)
	}

	res, err := s.workflow.AwardLine(c.Request().Context(), cmd)
	if err != nil {
		return s.fail(c, err)
	}

	return c.JSON(http.StatusOK, newResolutionResponse(res))
}

// RejectLine handles POST /api/v1/quotations/{quotationId}/lines/{lineId}/reject.
func (s *Server) RejectLine(c echo.Context) error {
	quotationID, lineID, err := lineIDs(c)
	if err != nil {
		return s.fail(c, err)
	}

	var req RejectLineRequest
	if err := bindBody(c, &req); err != nil {
		return s.fail(c, err)
	}

	cmd, err := commands.NewRejectLineCommand(quotationID, lineID, quotation.Competitor{
		Name:  req.CompetitorName,
		TaxID: req.CompetitorTaxID,
		Price: req.CompetitorPrice,
	}, s.adjudicationDate(req.AdjudicationDate))
	if err != nil {
		return s.fail(c, err)
	}

	res, err := s.workflow.RejectLine(c.Request().Context(), cmd)
	if err != nil {
		return s.fail(c, err)
	}

	return c.JSON(http.StatusOK, newResolutionResponse(res))
}

func (s *Server) listAwards(c echo.Context, query queries.ListAwardsQuery) error {
	views, err := s.listAwardsHandler.Handle(c.Request().Context(), query)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, newAwardResponses(views))
}

func (s *Server) adjudicationDate(requested *time.Time) time.Time {
	if requested != nil && !requested.IsZero() {
		return requested.UTC()
	}
	return s.now().UTC()
}

func newResolutionResponse(res commands.ResolutionResult) ResolutionResponse {
	resp := ResolutionResponse{
		Award:        newAwardResponse(queries.NewAwardView(res.Award)),
		TenderStatus: res.Tender.Status().String(),
	}
	view := queries.NewQuotationView(res.Quotation)
	for _, l := range view.Lines {
		if l.ID.IsEqual(res.Line.ID()) {
			line := LineResponse(l)
			resp.Line = &line
			break
		}
	}
	return resp
}

// pathUUID binds a simple-style path parameter.
func pathUUID(c echo.Context, name string) (kernel.UUID, error) {
	var id openapi_types.UUID
	err := runtime.BindStyledParameterWithOptions("simple", name, c.Param(name), &id, runtime.BindStyledParameterOptions{
		ParamLocation: runtime.ParamLocationPath,
		Explode:       false,
		Required:      true,
	})
	if err != nil {
		return kernel.UUID{}, errs.NewValueIsInvalidErrorWithCause(name, err)
	}
	return kernel.UUIDFromGoogle(id), nil
}

func lineIDs(c echo.Context) (kernel.UUID, kernel.UUID, error) {
	quotationID, err := pathUUID(c, "quotationId")
	if err != nil {
		return kernel.UUID{}, kernel.UUID{}, err
	}
	lineID, err := pathUUID(c, "lineId")
	if err != nil {
		return kernel.UUID{}, kernel.UUID{}, err
	}
	return quotationID, lineID, nil
}

func bindBody(c echo.Context, dst any) error {
	if err := (&echo.DefaultBinder{}).BindBody(c, dst); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("request body", err)
	}
	return nil
}
