package utils

import (
	"bytes"
	"fmt"
	"time"

	"github.com/go-pdf/fpdf"
)

// ReceiptDetails is the fixed field set the payment receipt renders.
type ReceiptDetails struct {
	RoomName  string
	Name      string
	ReceiptID string
	OrderID   string
	Date      time.Time
	StartDate string
	EndDate   string
	Status    string
	Amount    float64
}

// GenerateReceipt renders the booking receipt as PDF bytes. It is a pure
// function of its input; callers attach the result to the confirmation
// mail.
func GenerateReceipt(r ReceiptDetails) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(18, 18, 18)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "I", 11)
	pdf.SetTextColor(55, 65, 81)
	pdf.MultiCell(0, 6, fmt.Sprintf("Thank you for choosing %s in Kanchenjunga convention centre.", r.RoomName), "", "C", false)
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "", 16)
	pdf.SetTextColor(17, 24, 39)
	pdf.CellFormat(0, 10, "PAYMENT RECEIPT", "", 1, "C", false, 0, "")

	pdf.SetDrawColor(229, 231, 235)
	x, y := pdf.GetXY()
	pdf.Line(x, y, 210-18, y)
	pdf.Ln(6)

	section := func(title string) {
		pdf.SetFont("Helvetica", "B", 12)
		pdf.SetTextColor(55, 65, 81)
		pdf.CellFormat(0, 8, title, "", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 11)
		pdf.SetTextColor(107, 114, 128)
	}
	line := func(s string) {
		pdf.CellFormat(0, 6, s, "", 1, "L", false, 0, "")
	}

	section("Guest Details:")
	line("Name: " + r.Name)
	line("Receipt ID: " + r.ReceiptID)
	pdf.Ln(4)

	section("Payment Details:")
	line("Order ID: " + r.OrderID)
	line("Payment Date: " + r.Date.Format("02 January 2006"))
	pdf.Ln(4)

	section("Reservation Details:")
	line("Check-In: " + r.StartDate)
	line("Check-Out: " + r.EndDate)
	pdf.Ln(6)

	section("Amount Paid:")
	pdf.SetFillColor(249, 250, 251)
	pdf.SetTextColor(55, 65, 81)
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(120, 8, "Description", "1", 0, "L", true, 0, "")
	pdf.CellFormat(54, 8, "Amount (INR)", "1", 1, "R", true, 0, "")
	pdf.SetFont("Helvetica", "", 11)
	pdf.SetTextColor(107, 114, 128)
	pdf.CellFormat(120, 8, "Total Amount", "1", 0, "L", false, 0, "")
	pdf.CellFormat(54, 8, fmt.Sprintf("%.2f", r.Amount), "1", 1, "R", false, 0, "")
	pdf.CellFormat(120, 8, "Amount Paid", "1", 0, "L", true, 0, "")
	pdf.CellFormat(54, 8, fmt.Sprintf("%.2f", r.Amount), "1", 1, "R", true, 0, "")
	pdf.Ln(6)

	pdf.SetFont("Helvetica", "", 11)
	pdf.SetTextColor(55, 65, 81)
	pdf.CellFormat(16, 8, "Status:", "", 0, "L", false, 0, "")
	if r.Status == "Paid" {
		pdf.SetFillColor(16, 185, 129)
		pdf.SetTextColor(255, 255, 255)
		pdf.CellFormat(26, 8, "Paid", "", 1, "C", true, 0, "")
	} else {
		pdf.CellFormat(26, 8, r.Status, "", 1, "L", false, 0, "")
	}
	pdf.Ln(8)

	pdf.SetFont("Helvetica", "", 9)
	pdf.SetTextColor(0, 0, 0)
	pdf.MultiCell(0, 5, "This is a computer-generated receipt and does not require a signature.", "", "L", false)
	pdf.Ln(2)
	pdf.CellFormat(0, 5, "Generated on: "+time.Now().Format("02/01/2006"), "", 1, "L", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
