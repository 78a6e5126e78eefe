package infra

// pdf.go — receipt rendering with go-pdf/fpdf. Output is a thermal-style
// slip: business header, sale number and date, item lines with talla, extra
// costs, bold total and the payment/cambio breakdown.

import (
	"fmt"
	"os"
	"path/filepath"

	"minegocio/internal/model"

	"github.com/go-pdf/fpdf"
)

// GenerateReciboPDF writes the receipt for a sale into storagePath (created
// if needed) and returns the absolute path of the file.
func GenerateReciboPDF(venta *model.Venta, storagePath, negocioNombre string) (string, error) {
	if err := os.MkdirAll(storagePath, 0755); err != nil {
		return "", fmt.Errorf("pdf: create storage dir: %w", err)
	}

	fileName := fmt.Sprintf("recibo_%s.pdf", venta.NumeroVenta)
	filePath := filepath.Join(storagePath, fileName)

	// 74mm × 105mm — close to thermal receipt paper
	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "mm",
		Size:           fpdf.SizeType{Wd: 74, Ht: 105},
	})
	pdf.SetMargins(4, 4, 4)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 8

	pdf.SetFont("Helvetica", "B", 13)
	pdf.CellFormat(contentW, 7, negocioNombre, "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 8)
	pdf.CellFormat(contentW, 5, "Recibo de Compra", "", 1, "C", false, 0, "")
	pdf.Ln(2)

	pdf.SetFont("Helvetica", "B", 8)
	pdf.CellFormat(contentW, 5, venta.NumeroVenta, "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 7)
	pdf.CellFormat(contentW, 4, venta.Fecha.Format("02/01/2006  15:04"), "", 1, "L", false, 0, "")
	if venta.ClienteNombre != nil && *venta.ClienteNombre != "" {
		pdf.CellFormat(contentW, 4, "Cliente: "+*venta.ClienteNombre, "", 1, "L", false, 0, "")
	}
	pdf.Ln(2)

	pdf.Line(4, pdf.GetY(), pageW-4, pdf.GetY())
	pdf.Ln(2)

	col1 := contentW * 0.52
	col2 := contentW * 0.16
	col3 := contentW * 0.32

	pdf.SetFont("Helvetica", "B", 7)
	pdf.CellFormat(col1, 5, "Producto", "B", 0, "L", false, 0, "")
	pdf.CellFormat(col2, 5, "Cant", "B", 0, "C", false, 0, "")
	pdf.CellFormat(col3, 5, "Subtotal", "B", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 7)
	for _, item := range venta.Items {
		nombre := ""
		if item.Producto != nil {
			nombre = item.Producto.Nombre
		}
		if item.Variante != nil {
			nombre += " T." + item.Variante.Talla
		}
		if len(nombre) > 22 {
			nombre = nombre[:21] + "…"
		}
		pdf.CellFormat(col1, 5, nombre, "", 0, "L", false, 0, "")
		pdf.CellFormat(col2, 5, fmt.Sprintf("x%d", item.Cantidad), "", 0, "C", false, 0, "")
		pdf.CellFormat(col3, 5, "$"+item.Subtotal.StringFixed(2), "", 1, "R", false, 0, "")
	}

	for _, ce := range venta.CostosExtra {
		concepto := ce.Concepto
		if len(concepto) > 22 {
			concepto = concepto[:21] + "…"
		}
		pdf.CellFormat(col1+col2, 5, concepto, "", 0, "L", false, 0, "")
		pdf.CellFormat(col3, 5, "$"+ce.Monto.StringFixed(2), "", 1, "R", false, 0, "")
	}

	pdf.Ln(2)
	pdf.Line(4, pdf.GetY(), pageW-4, pdf.GetY())
	pdf.Ln(2)

	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(col1+col2, 6, "TOTAL:", "", 0, "L", false, 0, "")
	pdf.CellFormat(col3, 6, "$"+venta.Total.StringFixed(2), "", 1, "R", false, 0, "")

	pdf.Ln(1)
	pdf.SetFont("Helvetica", "", 7)
	pdf.CellFormat(col1+col2, 4, "Pago ("+venta.MetodoPago+"):", "", 0, "L", false, 0, "")
	pdf.CellFormat(col3, 4, "$"+venta.MontoPagado.StringFixed(2), "", 1, "R", false, 0, "")
	if !venta.Cambio.IsZero() {
		pdf.CellFormat(col1+col2, 4, "Cambio:", "", 0, "L", false, 0, "")
		pdf.CellFormat(col3, 4, "$"+venta.Cambio.StringFixed(2), "", 1, "R", false, 0, "")
	}
	if venta.Estado == model.VentaPendiente {
		saldo := venta.Total.Sub(venta.MontoPagado)
		pdf.SetFont("Helvetica", "B", 7)
		pdf.CellFormat(col1+col2, 4, "Saldo pendiente:", "", 0, "L", false, 0, "")
		pdf.CellFormat(col3, 4, "$"+saldo.StringFixed(2), "", 1, "R", false, 0, "")
	}

	pdf.Ln(3)
	pdf.SetFont("Helvetica", "I", 7)
	pdf.CellFormat(contentW, 4, "¡Gracias por su compra!", "", 1, "C", false, 0, "")

	if err := pdf.OutputFileAndClose(filePath); err != nil {
		return "", fmt.Errorf("pdf: write file: %w", err)
	}
	return filePath, nil
}
