package xlsxexport

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"inscan/internal/domain"
)

func testDocument(productName string) *domain.AnalysisDocument {
	return &domain.AnalysisDocument{
		Sections: []domain.Section{
			{Kind: domain.SectionBasicInfo, Lines: []string{"상품명: " + productName}, Text: "상품명: " + productName},
		},
		Fields: map[domain.FieldName]domain.ExtractedField{
			domain.FieldProductName:    {Name: domain.FieldProductName, Value: productName, Found: true},
			domain.FieldMonthlyPremium: {Name: domain.FieldMonthlyPremium, Value: "92,540원", Found: true, Normalized: true},
		},
		DegradationMode: domain.DegradationStructured,
		RawText:         "원문",
	}
}

func TestWrite_SingleAnalysis(t *testing.T) {
	result, err := json.Marshal(testDocument("튼튼건강보험"))
	require.NoError(t, err)

	a := &domain.Analysis{
		ID:          uuid.New(),
		Mode:        domain.AnalysisModeSingle,
		ProductName: "튼튼건강보험",
		Result:      result,
	}

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, a))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	assert.Equal(t, []string{"분석"}, f.GetSheetList())

	name, err := f.GetCellValue("분석", "B1")
	require.NoError(t, err)
	assert.Equal(t, "튼튼건강보험", name)

	mode, err := f.GetCellValue("분석", "B2")
	require.NoError(t, err)
	assert.Equal(t, "구조화 분석", mode)

	// Row 5 is the first field row (productName).
	v, err := f.GetCellValue("분석", "B5")
	require.NoError(t, err)
	assert.Equal(t, "튼튼건강보험", v)

	// Unresolved fields render as a dash.
	v, err = f.GetCellValue("분석", "B6")
	require.NoError(t, err)
	assert.Equal(t, "-", v)
}

func TestWrite_Comparison(t *testing.T) {
	cmp := domain.ComparisonDocument{
		ProductA:      testDocument("보험A"),
		ProductB:      testDocument("보험B"),
		SplitStrategy: domain.SplitCompoundDelimiter,
	}
	result, err := json.Marshal(cmp)
	require.NoError(t, err)

	a := &domain.Analysis{
		ID:           uuid.New(),
		Mode:         domain.AnalysisModeComparison,
		ProductName:  "보험A",
		ProductNameB: "보험B",
		Result:       result,
	}

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, a))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	assert.ElementsMatch(t, []string{"상품 A", "상품 B"}, f.GetSheetList())

	nameB, err := f.GetCellValue("상품 B", "B1")
	require.NoError(t, err)
	assert.Equal(t, "보험B", nameB)
}

func TestWrite_FallbackModeLabel(t *testing.T) {
	doc := testDocument("암보험")
	doc.DegradationMode = domain.DegradationFallback
	result, err := json.Marshal(doc)
	require.NoError(t, err)

	a := &domain.Analysis{
		ID:          uuid.New(),
		Mode:        domain.AnalysisModeSingle,
		ProductName: "암보험",
		Result:      result,
	}

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, a))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	mode, err := f.GetCellValue("분석", "B2")
	require.NoError(t, err)
	assert.Equal(t, "기본 추출 (구조화 실패)", mode)
}

func TestWrite_InvalidResult(t *testing.T) {
	a := &domain.Analysis{
		ID:     uuid.New(),
		Mode:   domain.AnalysisModeSingle,
		Result: json.RawMessage(`not json`),
	}

	var buf bytes.Buffer
	assert.Error(t, Write(&buf, a))
}
