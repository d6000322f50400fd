package queries

import (
	"context"
	"fmt"
	"strings"

	"tendering/internal/core/ports"
)

// Document is a rendered quotation.
type Document struct {
	Filename    string
	ContentType string
	Content     []byte
}

type RenderQuotationPdfQueryHandler struct {
	readerFactory ReaderFactory
	renderer      ports.QuotationRenderer
}

func NewRenderQuotationPdfQueryHandler(
	readerFactory ReaderFactory,
	renderer ports.QuotationRenderer,
) RenderQuotationPdfQueryHandler {
	return RenderQuotationPdfQueryHandler{
		readerFactory: readerFactory,
		renderer:      renderer,
	}
}

func (h RenderQuotationPdfQueryHandler) Handle(ctx context.Context, query RenderQuotationPdfQuery) (Document, error) {
	if err := query.Validate(); err != nil {
		return Document{}, err
	}

	reader := h.readerFactory.Create()

	q, err := reader.QuotationRepository().Get(ctx, query.QuotationID())
	if err != nil {
		return Document{}, err
	}

	t, err := reader.TenderRepository().Get(ctx, q.TenderID())
	if err != nil {
		return Document{}, err
	}

	content, err := h.renderer.Render(ctx, t, q)
	if err != nil {
		return Document{}, fmt.Errorf("render quotation %s: %w", q.ID(), err)
	}

	return Document{
		Filename:    documentFilename(q.Identifier()),
		ContentType: h.renderer.ContentType(),
		Content:     content,
	}, nil
}

func documentFilename(identifier string) string {
	name := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		default:
			return '_'
		}
	}, identifier)
	return "quotation-" + name + ".pdf"
}
