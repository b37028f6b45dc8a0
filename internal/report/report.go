package report

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gomutex/godocx"
	"github.com/xuri/excelize/v2"

	"github.com/revline/review-flow/internal/review"
)

const (
	fontName   = "Times New Roman"
	fontSize   = 12
	ledgerName = "issues-ledger.xlsx"
	sheetName  = "Sheet1"
)

// Record writes the per-review document and appends the review's issues
// to the ledger workbook. Only completed reviews are recorded.
func (w *implWriter) Record(ctx context.Context, name string, res review.Result) error {
	if !res.Completed {
		return fmt.Errorf("cannot record an incomplete review")
	}

	if err := os.MkdirAll(w.reportsDir, 0755); err != nil {
		return fmt.Errorf("create reports dir: %w", err)
	}

	docPath := filepath.Join(w.reportsDir, name+".docx")
	if err := w.writeDocument(docPath, name, res); err != nil {
		return fmt.Errorf("write review document: %w", err)
	}
	w.logger.Debug(ctx, "Review document written: %s", docPath)

	w.mu.Lock()
	defer w.mu.Unlock()
	if err := w.appendLedger(name, res.Issues); err != nil {
		return fmt.Errorf("append issues ledger: %w", err)
	}

	w.logger.Info(ctx, "Recorded review %s (%d issues)", name, len(res.Issues))
	return nil
}

func (w *implWriter) writeDocument(path, title string, res review.Result) error {
	doc, err := godocx.NewDocument()
	if err != nil {
		return err
	}

	heading := doc.AddParagraph("")
	heading.AddText(title).Font(fontName).Size(16).Color("000000").Bold(true)

	body := doc.AddParagraph("")
	body.AddText("Review").Font(fontName).Size(14).Color("000000").Bold(true)
	doc.AddParagraph("").AddText(res.CorrectedText).Font(fontName).Size(fontSize).Color("000000")

	summary := doc.AddParagraph("")
	summary.AddText("Summary").Font(fontName).Size(14).Color("000000").Bold(true)
	doc.AddParagraph("").AddText(res.Summary).Font(fontName).Size(fontSize).Color("000000")

	issues := doc.AddParagraph("")
	issues.AddText("Issues").Font(fontName).Size(14).Color("000000").Bold(true)

	if len(res.Issues) == 0 {
		doc.AddParagraph("").AddText("No issues reported.").Font(fontName).Size(fontSize).Color("000000")
	}
	for _, issue := range res.Issues {
		line := fmt.Sprintf("• [%s] %s", issue.Department, issue.Description)
		doc.AddParagraph("").AddText(line).Font(fontName).Size(fontSize).Color("000000")
	}

	return doc.SaveTo(path)
}

func (w *implWriter) appendLedger(source string, issues []review.Issue) error {
	if len(issues) == 0 {
		return nil
	}

	ledgerPath := filepath.Join(w.reportsDir, ledgerName)

	file, nextRow, err := openLedger(ledgerPath)
	if err != nil {
		return err
	}
	defer file.Close()

	recordedAt := time.Now().Format(time.RFC3339)
	for _, issue := range issues {
		cells := []interface{}{recordedAt, source, issue.Description, string(issue.Department)}
		for col, value := range cells {
			cell, err := excelize.CoordinatesToCellName(col+1, nextRow)
			if err != nil {
				return err
			}
			if err := file.SetCellValue(sheetName, cell, value); err != nil {
				return err
			}
		}
		nextRow++
	}

	return file.SaveAs(ledgerPath)
}

// openLedger opens the workbook, creating it with a header row when it
// does not exist yet, and reports the first free row.
func openLedger(path string) (*excelize.File, int, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		file := excelize.NewFile()
		headers := []string{"Recorded At", "Source", "Issue", "Department"}
		for col, header := range headers {
			cell, err := excelize.CoordinatesToCellName(col+1, 1)
			if err != nil {
				return nil, 0, err
			}
			if err := file.SetCellValue(sheetName, cell, header); err != nil {
				return nil, 0, err
			}
		}
		return file, 2, nil
	}

	file, err := excelize.OpenFile(path)
	if err != nil {
		return nil, 0, err
	}

	rows, err := file.GetRows(sheetName)
	if err != nil {
		file.Close()
		return nil, 0, err
	}
	return file, len(rows) + 1, nil
}
