// Package invoice renders order invoices as PDF documents.
package invoice

import (
	"fmt"
	"io"

	"github.com/go-pdf/fpdf"

	"github.com/dtroode/storefront/internal/model"
)

var _ model.InvoiceRenderer = (*Renderer)(nil)

// Renderer draws a one-page A4 invoice.
type Renderer struct{}

func NewRenderer() *Renderer {
	return &Renderer{}
}

func (r *Renderer) Render(w io.Writer, order model.Order) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle("Invoice "+order.ID.String(), true)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "U", 26)
	pdf.Cell(0, 14, "Invoice")
	pdf.Ln(16)

	pdf.SetFont("Helvetica", "", 10)
	pdf.Cell(0, 6, tr(fmt.Sprintf("Order %s", order.ID)))
	pdf.Ln(6)
	pdf.Cell(0, 6, tr(fmt.Sprintf("Date: %s", order.CreatedAt.Format("2006-01-02"))))
	pdf.Ln(6)
	pdf.Cell(0, 6, tr(fmt.Sprintf("Buyer: %s", order.BuyerEmail)))
	pdf.Ln(8)

	if billTo := formatAddress(order.Billing); billTo != "" {
		pdf.MultiCell(0, 5, tr("Bill to: "+billTo), "", "L", false)
		pdf.Ln(2)
	}
	if shipTo := formatAddress(order.Shipping); shipTo != "" {
		pdf.MultiCell(0, 5, tr("Ship to: "+shipTo), "", "L", false)
		pdf.Ln(2)
	}

	pdf.Cell(0, 4, "-----------------------")
	pdf.Ln(8)

	pdf.SetFont("Helvetica", "", 14)
	for _, line := range order.Lines {
		pdf.Cell(0, 8, tr(fmt.Sprintf("%s - %d x $%s", line.Title, line.Quantity, line.Price.StringFixed(2))))
		pdf.Ln(8)
	}

	pdf.SetFont("Helvetica", "", 10)
	pdf.Cell(0, 4, "---")
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 20)
	pdf.Cell(0, 10, tr(fmt.Sprintf("Total Price: $%s", order.Total.StringFixed(2))))

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("failed to render invoice: %w", err)
	}
	return nil
}

func formatAddress(a model.Address) string {
	var out string
	for _, part := range []string{a.Name, a.Street, a.City, a.State, a.Postcode, a.Country} {
		if part == "" {
			continue
		}
		if out != "" {
			out += ", "
		}
		out += part
	}
	return out
}
