package report

import (
	"fmt"
	"io"
	"time"

	"github.com/go-pdf/fpdf"

	"library-console/api"
	"library-console/policy"
)

// Layout constants shared by every report: bold 18pt title, 12pt detail
// lines, 10pt grid tables with a blue header row and shaded alternate
// rows.
var (
	headerFill = [3]int{66, 135, 245}
	altRowFill = [3]int{240, 240, 240}
)

func newDoc() *fpdf.Fpdf {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()
	return pdf
}

func writeTitle(pdf *fpdf.Fpdf, title string) {
	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, title)
	pdf.Ln(14)
}

func writeDetails(pdf *fpdf.Fpdf, lines []string) {
	pdf.SetFont("Helvetica", "", 12)
	for _, line := range lines {
		pdf.Cell(0, 6, line)
		pdf.Ln(6)
	}
	pdf.Ln(4)
}

func writeSection(pdf *fpdf.Fpdf, heading string) {
	pdf.SetFont("Helvetica", "B", 14)
	pdf.Cell(0, 8, heading)
	pdf.Ln(10)
}

func writeTable(pdf *fpdf.Fpdf, widths []float64, head []string, rows [][]string) {
	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(headerFill[0], headerFill[1], headerFill[2])
	pdf.SetTextColor(255, 255, 255)
	for i, h := range head {
		pdf.CellFormat(widths[i], 7, h, "1", 0, "L", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(0, 0, 0)
	for r, row := range rows {
		fill := r%2 == 1
		if fill {
			pdf.SetFillColor(altRowFill[0], altRowFill[1], altRowFill[2])
		}
		for i, cell := range row {
			pdf.CellFormat(widths[i], 6, cell, "1", 0, "L", fill, 0, "")
		}
		pdf.Ln(-1)
	}
	pdf.Ln(4)
}

// BookInventory writes the book inventory report.
func BookInventory(w io.Writer, books []api.Book, now time.Time) error {
	s := SummarizeBooks(books)
	pdf := newDoc()
	writeTitle(pdf, "Book Inventory Report")

	details := []string{
		"Date: " + now.Format("2006-01-02"),
		fmt.Sprintf("Total Books: %d", s.TotalQuantity),
		fmt.Sprintf("Unique Titles: %d", s.UniqueTitles),
		fmt.Sprintf("Unique Authors: %d", s.UniqueAuthors),
		fmt.Sprintf("Unique Categories: %d", s.UniqueCategories),
		fmt.Sprintf("Average Quantity per Book: %.2f", s.AverageQuantity),
	}
	if s.MostStocked != nil {
		details = append(details,
			fmt.Sprintf("Most Stocked Book: %s (%d copies)", s.MostStocked.Title, s.MostStocked.Quantity),
			fmt.Sprintf("Least Stocked Book: %s (%d copies)", s.LeastStocked.Title, s.LeastStocked.Quantity))
	}
	writeDetails(pdf, details)

	writeSection(pdf, "Book List")
	rows := make([][]string, 0, len(books))
	for _, b := range books {
		rows = append(rows, []string{
			fmt.Sprintf("%d", b.ID), b.Title, b.Author, b.ISBN, b.Category, fmt.Sprintf("%d", b.Quantity),
		})
	}
	writeTable(pdf,
		[]float64{12, 50, 40, 32, 36, 20},
		[]string{"ID", "Title", "Author", "ISBN", "Category", "Quantity"},
		rows)

	return pdf.Output(w)
}

// Members writes the member management report.
func Members(w io.Writer, members []api.Member, now time.Time) error {
	s := SummarizeMembers(members)
	pdf := newDoc()
	writeTitle(pdf, "Member Management Report")

	details := []string{
		"Date: " + now.Format("2006-01-02"),
		fmt.Sprintf("Total Members: %d", s.TotalMembers),
		fmt.Sprintf("Total Outstanding Debt: KES %.2f", s.TotalOutstandingDebt),
		fmt.Sprintf("Average Debt: KES %.2f", s.AverageDebt),
	}
	if s.HighestDebt != nil {
		details = append(details,
			fmt.Sprintf("Member with Highest Debt: %s (KES %.2f)", s.HighestDebt.Name, s.HighestDebt.OutstandingDebt),
			fmt.Sprintf("Member with Lowest Debt: %s (KES %.2f)", s.LowestDebt.Name, s.LowestDebt.OutstandingDebt))
	}
	writeDetails(pdf, details)

	writeSection(pdf, "Member List")
	rows := make([][]string, 0, len(members))
	for _, m := range members {
		rows = append(rows, []string{
			fmt.Sprintf("%d", m.ID), m.Name, m.Email, m.Phone, fmt.Sprintf("KES %.2f", m.OutstandingDebt),
		})
	}
	writeTable(pdf,
		[]float64{12, 45, 55, 38, 40},
		[]string{"ID", "Name", "Email", "Phone", "Outstanding Debt"},
		rows)

	return pdf.Output(w)
}

// Transactions writes the transaction report.
func Transactions(w io.Writer, ts []api.Transaction, now time.Time) error {
	s := SummarizeTransactions(ts, now)
	pdf := newDoc()
	writeTitle(pdf, "Transaction Report")

	writeDetails(pdf, []string{
		"Date: " + now.Format("2006-01-02"),
		fmt.Sprintf("Total Transactions: %d", s.Total),
		fmt.Sprintf("Active Transactions: %d", s.Active),
		fmt.Sprintf("Completed Transactions: %d", s.Completed),
		fmt.Sprintf("Total Rent Fee: KES %.2f", s.TotalRentFee),
	})

	writeSection(pdf, "Transaction List")
	rows := make([][]string, 0, len(ts))
	for i := range ts {
		rows = append(rows, transactionRow(&ts[i]))
	}
	writeTable(pdf,
		[]float64{12, 50, 42, 28, 28, 30},
		[]string{"ID", "Book", "Borrower", "Issue Date", "Return Date", "Rent Fee"},
		rows)

	return pdf.Output(w)
}

// Overdue writes the overdue loans report; ts should already be filtered
// with policy.Overdue.
func Overdue(w io.Writer, ts []api.Transaction, now time.Time) error {
	pdf := newDoc()
	writeTitle(pdf, "Overdue Books Report")

	writeDetails(pdf, []string{
		"Date: " + now.Format("2006-01-02"),
		fmt.Sprintf("Total Overdue Books: %d", len(ts)),
	})

	rows := make([][]string, 0, len(ts))
	for i := range ts {
		t := &ts[i]
		title, author := "N/A", "N/A"
		if t.Book != nil {
			title, author = t.Book.Title, t.Book.Author
		}
		rows = append(rows, []string{
			fmt.Sprintf("%d", i+1),
			title,
			author,
			t.IssueDate.Format("2006-01-02"),
			fmt.Sprintf("%d", policy.DaysOverdue(t, now)),
		})
	}
	writeTable(pdf,
		[]float64{12, 60, 50, 34, 34},
		[]string{"#", "Title", "Author", "Issue Date", "Days Overdue"},
		rows)

	return pdf.Output(w)
}

// Comprehensive writes the combined library report: the three summaries in
// one document.
func Comprehensive(w io.Writer, books []api.Book, members []api.Member, ts []api.Transaction, now time.Time) error {
	bs := SummarizeBooks(books)
	ms := SummarizeMembers(members)
	tsum := SummarizeTransactions(ts, now)

	pdf := newDoc()
	writeTitle(pdf, "Comprehensive Library Report")

	writeSection(pdf, "Books Summary")
	writeDetails(pdf, []string{
		fmt.Sprintf("Total Books: %d", bs.TotalBooks),
		fmt.Sprintf("Total Quantity: %d", bs.TotalQuantity),
		fmt.Sprintf("Unique Authors: %d", bs.UniqueAuthors),
	})

	writeSection(pdf, "Members Summary")
	writeDetails(pdf, []string{
		fmt.Sprintf("Total Members: %d", ms.TotalMembers),
		fmt.Sprintf("Total Outstanding Debt: KES %.2f", ms.TotalOutstandingDebt),
		fmt.Sprintf("Members with Debt: %d", ms.MembersWithDebt),
	})

	writeSection(pdf, "Transactions Summary")
	writeDetails(pdf, []string{
		fmt.Sprintf("Total Transactions: %d", tsum.Total),
		fmt.Sprintf("Currently Borrowed Books: %d", tsum.Active),
		fmt.Sprintf("Overdue Books: %d", tsum.Overdue),
		fmt.Sprintf("Total Rent Fee Collected: KES %.2f", tsum.TotalRentFee),
	})

	return pdf.Output(w)
}

func transactionRow(t *api.Transaction) []string {
	bookTitle, memberName := "N/A", "N/A"
	if t.Book != nil {
		bookTitle = t.Book.Title
	}
	if t.Member != nil {
		memberName = t.Member.Name
	}
	returnDate, fee := "N/A", "N/A"
	if t.ReturnDate != nil {
		returnDate = t.ReturnDate.Format("2006-01-02")
	}
	if t.RentFee != nil {
		fee = fmt.Sprintf("KES %.2f", *t.RentFee)
	}
	return []string{
		fmt.Sprintf("%d", t.ID),
		bookTitle,
		memberName,
		t.IssueDate.Format("2006-01-02"),
		returnDate,
		fee,
	}
}
