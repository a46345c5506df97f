package service

import (
	"bytes"
	"context"
	"fmt"

	"github.com/google/uuid"

	"inscan/internal/domain"
	"inscan/internal/port"
	"inscan/internal/xlsxexport"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// reportObjectKey is the storage key an analysis export lives under. Delete
// uses the same key to clean the object up with its analysis.
func reportObjectKey(id uuid.UUID) string {
	return fmt.Sprintf("reports/%s.xlsx", id)
}

// ExportResult describes an exported report workbook.
type ExportResult struct {
	Key         string `json:"key"`
	DownloadURL string `json:"download_url"`
	ExpirySecs  int64  `json:"expiry_secs"`
}

// ReportService exports stored analyses as downloadable Excel reports.
type ReportService interface {
	ExportAnalysis(ctx context.Context, id uuid.UUID) (*ExportResult, error)
}

type reportService struct {
	analysisRepo  port.AnalysisRepository
	storage       port.ObjectStorage
	bucket        string
	presignExpiry int64
}

// NewReportService creates a new ReportService implementation.
func NewReportService(analysisRepo port.AnalysisRepository, storage port.ObjectStorage, bucket string, presignExpiry int64) ReportService {
	if presignExpiry <= 0 {
		presignExpiry = 3600
	}
	return &reportService{
		analysisRepo:  analysisRepo,
		storage:       storage,
		bucket:        bucket,
		presignExpiry: presignExpiry,
	}
}

// ExportAnalysis renders the analysis workbook, uploads it, and returns a
// presigned download URL.
func (s *reportService) ExportAnalysis(ctx context.Context, id uuid.UUID) (*ExportResult, error) {
	a, err := s.analysisRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := xlsxexport.Write(&buf, a); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrExportFailed, err)
	}

	key := reportObjectKey(a.ID)
	if _, err := s.storage.Upload(ctx, port.UploadInput{
		Bucket:      s.bucket,
		Key:         key,
		Body:        &buf,
		ContentType: xlsxContentType,
		Size:        int64(buf.Len()),
	}); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrExportFailed, err)
	}

	url, err := s.storage.GetPresignedURL(ctx, s.bucket, key, s.presignExpiry)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrExportFailed, err)
	}

	return &ExportResult{
		Key:         key,
		DownloadURL: url,
		ExpirySecs:  s.presignExpiry,
	}, nil
}
