// Package pdf renders quotations as PDF documents.
package pdf

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"tendering/internal/core/application/usecases/queries"
	"tendering/internal/core/domain/model/quotation"
	"tendering/internal/core/domain/model/tender"

	"github.com/go-pdf/fpdf"
	"github.com/shopspring/decimal"
)

const (
	ContentType = "application/pdf"

	lineHeight = 6.0
)

type column struct {
	title string
	width float64
	align string
}

var lineColumns = []column{
	{title: "#", width: 8, align: "C"},
	{title: "Description", width: 64, align: "L"},
	{title: "Qty", width: 16, align: "R"},
	{title: "Unit price", width: 24, align: "R"},
	{title: "IVA %", width: 14, align: "R"},
	{title: "Total", width: 28, align: "R"},
	{title: "Days", width: 16, align: "R"},
}

// Renderer implements ports.QuotationRenderer with fpdf. Output is
// deterministic for a given tender and quotation: the document dates are
// taken from the quotation.
type Renderer struct {
	pageSize string
}

func NewRenderer() *Renderer {
	return &Renderer{pageSize: "A4"}
}

func (r *Renderer) ContentType() string {
	return ContentType
}

func (r *Renderer) Render(ctx context.Context, t *tender.Tender, q *quotation.Quotation) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	view := queries.NewQuotationView(q)

	doc := fpdf.New("P", "mm", r.pageSize, "")
	tr := doc.UnicodeTranslatorFromDescriptor("")
	doc.SetTitle(tr("Quotation "+view.Identifier), false)
	doc.SetCreator("tendering", false)
	doc.SetCreationDate(view.CreatedAt)
	doc.SetModificationDate(view.CreatedAt)
	doc.SetCatalogSort(true)
	doc.SetFooterFunc(func() {
		doc.SetY(-15)
		doc.SetFont("Helvetica", "I", 8)
		doc.CellFormat(0, 10, fmt.Sprintf("Page %d/{nb}", doc.PageNo()), "", 0, "C", false, 0, "")
	})
	doc.AliasNbPages("")
	doc.AddPage()

	writeHeader(doc, tr, t, view)
	writeLines(doc, tr, view)
	writeTotals(doc, view)

	if err := doc.Error(); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeHeader(doc *fpdf.Fpdf, tr func(string) string, t *tender.Tender, view queries.QuotationView) {
	doc.SetFont("Helvetica", "B", 16)
	doc.CellFormat(0, 10, tr("Quotation "+view.Identifier), "", 1, "L", false, 0, "")

	doc.SetFont("Helvetica", "", 10)
	rows := [][2]string{
		{"Call reference", t.CallReference()},
		{"Internal reference", t.InternalReference()},
		{"Validity", formatDate(t.StartsAt()) + " - " + formatDate(t.Deadline())},
		{"Currency", view.Currency},
		{"Payment terms", view.PaymentTerms},
		{"State", view.State},
		{"Issued", formatDate(view.CreatedAt)},
	}
	for _, row := range rows {
		if row[1] == "" {
			continue
		}
		doc.SetFont("Helvetica", "B", 10)
		doc.CellFormat(40, lineHeight, tr(row[0]), "", 0, "L", false, 0, "")
		doc.SetFont("Helvetica", "", 10)
		doc.CellFormat(0, lineHeight, tr(row[1]), "", 1, "L", false, 0, "")
	}
	doc.Ln(4)
}

func writeLines(doc *fpdf.Fpdf, tr func(string) string, view queries.QuotationView) {
	doc.SetFont("Helvetica", "B", 9)
	doc.SetFillColor(230, 230, 230)
	for _, c := range lineColumns {
		doc.CellFormat(c.width, lineHeight+1, c.title, "1", 0, c.align, true, 0, "")
	}
	doc.Ln(-1)

	doc.SetFont("Helvetica", "", 9)
	for i, l := range view.Lines {
		description := l.Description
		if l.Provisional {
			description += " (provisional)"
		}
		cells := []string{
			fmt.Sprintf("%d", i+1),
			truncate(doc, tr(description), lineColumns[1].width-2),
			l.Quantity.String(),
			money(l.UnitPriceWithoutTax),
			l.TaxPercentage.String(),
			money(l.TotalWithoutTax),
			fmt.Sprintf("%d", l.DeliveryDays),
		}
		for j, c := range lineColumns {
			doc.CellFormat(c.width, lineHeight, cells[j], "1", 0, c.align, false, 0, "")
		}
		doc.Ln(-1)
	}
	doc.Ln(4)
}

func writeTotals(doc *fpdf.Fpdf, view queries.QuotationView) {
	const labelWidth, valueWidth = 50.0, 35.0
	offset := 0.0
	for _, c := range lineColumns {
		offset += c.width
	}
	offset -= labelWidth + valueWidth

	row := func(label, value string, bold bool) {
		style := ""
		if bold {
			style = "B"
		}
		doc.SetFont("Helvetica", style, 10)
		doc.CellFormat(offset, lineHeight, "", "", 0, "L", false, 0, "")
		doc.CellFormat(labelWidth, lineHeight, label, "", 0, "L", false, 0, "")
		doc.CellFormat(valueWidth, lineHeight, value, "", 1, "R", false, 0, "")
	}

	row("Subtotal", money(view.SubtotalWithoutTax)+" "+view.Currency, false)
	for _, rate := range view.TaxBreakdown {
		row(fmt.Sprintf("IVA %s%% on %s", rate.Percentage, money(rate.Base)), money(rate.Tax), false)
	}
	row("Total IVA", money(view.TaxTotal), false)
	row("Total", money(view.TotalWithTax)+" "+view.Currency, true)
}

func money(d decimal.Decimal) string {
	return d.StringFixedBank(2)
}

func formatDate(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

func truncate(doc *fpdf.Fpdf, s string, width float64) string {
	if doc.GetStringWidth(s) <= width {
		return s
	}
	runes := []rune(s)
	for len(runes) > 0 && doc.GetStringWidth(string(runes)+"...") > width {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + "..."
}
