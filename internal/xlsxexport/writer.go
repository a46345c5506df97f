// Package xlsxexport renders stored analyses as Excel workbooks for
// download: one sheet of extracted fields plus the section texts, or one
// sheet per product for comparisons.
package xlsxexport

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"inscan/internal/domain"
)

var fieldDisplayNames = map[domain.FieldName]string{
	domain.FieldProductName:    "상품명",
	domain.FieldProductCode:    "상품코드",
	domain.FieldProductType:    "상품타입",
	domain.FieldCompanyName:    "회사",
	domain.FieldMonthlyPremium: "월보험료",
	domain.FieldPaymentMethod:  "납입방식",
	domain.FieldPaymentPeriod:  "납입기간",
}

var sectionDisplayNames = map[domain.SectionKind]string{
	domain.SectionHeader:          "개요",
	domain.SectionBasicInfo:       "기본 정보",
	domain.SectionPremiumInfo:     "보험료 정보",
	domain.SectionCoverage:        "핵심 보장",
	domain.SectionAdvantages:      "경쟁 우위",
	domain.SectionRefund:          "해약/환급",
	domain.SectionTarget:          "추천 대상",
	domain.SectionScore:           "비교 점수",
	domain.SectionFallbackContent: "원문",
}

// Write renders the analysis as an xlsx workbook.
func Write(w io.Writer, a *domain.Analysis) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	switch a.Mode {
	case domain.AnalysisModeComparison:
		var cmp domain.ComparisonDocument
		if err := json.Unmarshal(a.Result, &cmp); err != nil {
			return fmt.Errorf("unmarshaling comparison result: %w", err)
		}
		if err := writeDocumentSheet(f, "상품 A", a.ProductName, cmp.ProductA); err != nil {
			return err
		}
		if _, err := f.NewSheet("상품 B"); err != nil {
			return fmt.Errorf("creating sheet: %w", err)
		}
		if err := fillDocumentSheet(f, "상품 B", a.ProductNameB, cmp.ProductB); err != nil {
			return err
		}
	default:
		var doc domain.AnalysisDocument
		if err := json.Unmarshal(a.Result, &doc); err != nil {
			return fmt.Errorf("unmarshaling analysis result: %w", err)
		}
		if err := writeDocumentSheet(f, "분석", a.ProductName, &doc); err != nil {
			return err
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}

// writeDocumentSheet renames the default sheet and fills it.
func writeDocumentSheet(f *excelize.File, sheet, productName string, doc *domain.AnalysisDocument) error {
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return fmt.Errorf("renaming sheet: %w", err)
	}
	return fillDocumentSheet(f, sheet, productName, doc)
}

func fillDocumentSheet(f *excelize.File, sheet, productName string, doc *domain.AnalysisDocument) error {
	set := func(cell string, value interface{}) error {
		if err := f.SetCellValue(sheet, cell, value); err != nil {
			return fmt.Errorf("setting %s!%s: %w", sheet, cell, err)
		}
		return nil
	}

	if err := set("A1", "상품"); err != nil {
		return err
	}
	if err := set("B1", productName); err != nil {
		return err
	}
	if err := set("A2", "분석 형태"); err != nil {
		return err
	}
	mode := "구조화 분석"
	if doc.DegradationMode == domain.DegradationFallback {
		mode = "기본 추출 (구조화 실패)"
	}
	if err := set("B2", mode); err != nil {
		return err
	}

	row := 4
	if err := set(fmt.Sprintf("A%d", row), "항목"); err != nil {
		return err
	}
	if err := set(fmt.Sprintf("B%d", row), "값"); err != nil {
		return err
	}
	row++
	for _, name := range domain.AllFields {
		field, ok := doc.Field(name)
		value := "-"
		if ok {
			value = field.Value
		}
		if err := set(fmt.Sprintf("A%d", row), fieldDisplayNames[name]); err != nil {
			return err
		}
		if err := set(fmt.Sprintf("B%d", row), value); err != nil {
			return err
		}
		row++
	}

	row++
	for _, sec := range doc.Sections {
		title := sectionDisplayNames[sec.Kind]
		if title == "" {
			title = string(sec.Kind)
		}
		if err := set(fmt.Sprintf("A%d", row), title); err != nil {
			return err
		}
		if err := set(fmt.Sprintf("B%d", row), sec.Text); err != nil {
			return err
		}
		row++
	}

	if err := f.SetColWidth(sheet, "A", "A", 18); err != nil {
		return fmt.Errorf("setting column width: %w", err)
	}
	if err := f.SetColWidth(sheet, "B", "B", 80); err != nil {
		return fmt.Errorf("setting column width: %w", err)
	}
	return nil
}
