package drive

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/stockcast/backend-go/internal/domain"
	"github.com/stockcast/backend-go/internal/repository"
	"github.com/stockcast/backend-go/pkg/logger"
)

// IngestService turns sales export CSV files from Drive into sale
// records. Each row becomes one sale, which the repository applies
// together with the matching stock decrement.
type IngestService struct {
	driveService *Service
	sales        repository.SalesRepository
}

func NewIngestService(driveService *Service, sales repository.SalesRepository) *IngestService {
	return &IngestService{
		driveService: driveService,
		sales:        sales,
	}
}

// IngestResult reports how a file ingestion went. Rows that fail to
// parse or insert are skipped, counted, and logged rather than
// aborting the whole file.
type IngestResult struct {
	Inserted int `json:"inserted"`
	Skipped  int `json:"skipped"`
}

var requiredColumns = []string{"product_id", "quantity", "sale_price", "sale_date"}

func (s *IngestService) IngestFile(ctx context.Context, fileID string) (*IngestResult, error) {
	pr, pw := io.Pipe()
	go func() {
		err := s.driveService.DownloadFile(fileID, pw)
		pw.CloseWithError(err)
	}()

	reader := csv.NewReader(pr)

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	colMap := make(map[string]int)
	for i, col := range header {
		colMap[strings.ToLower(strings.TrimSpace(col))] = i
	}
	for _, col := range requiredColumns {
		if _, ok := colMap[col]; !ok {
			return nil, fmt.Errorf("missing required column: %s", col)
		}
	}

	log := logger.With("drive-ingest")
	result := &IngestResult{}

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return result, fmt.Errorf("failed to read CSV record: %w", err)
		}

		sale, err := parseSaleRow(record, colMap)
		if err != nil {
			log.Warn().Err(err).Str("file_id", fileID).Msg("skipping malformed row")
			result.Skipped++
			continue
		}

		if err := s.sales.RecordSale(ctx, sale); err != nil {
			log.Warn().Err(err).Str("product_id", sale.ProductID).Msg("skipping row that failed to insert")
			result.Skipped++
			continue
		}
		result.Inserted++
	}

	log.Info().Str("file_id", fileID).
		Int("inserted", result.Inserted).
		Int("skipped", result.Skipped).
		Msg("file ingested")

	return result, nil
}

func parseSaleRow(record []string, colMap map[string]int) (*domain.SaleEvent, error) {
	getValue := func(colName string) string {
		if idx, ok := colMap[colName]; ok && idx < len(record) {
			return strings.TrimSpace(record[idx])
		}
		return ""
	}

	productID := getValue("product_id")
	if productID == "" {
		return nil, fmt.Errorf("empty product_id")
	}

	quantity, err := strconv.Atoi(getValue("quantity"))
	if err != nil || quantity <= 0 {
		return nil, fmt.Errorf("invalid quantity %q", getValue("quantity"))
	}

	price, err := strconv.ParseFloat(getValue("sale_price"), 64)
	if err != nil || price < 0 {
		return nil, fmt.Errorf("invalid sale_price %q", getValue("sale_price"))
	}

	saleDate, err := parseSaleDate(getValue("sale_date"))
	if err != nil {
		return nil, err
	}

	return &domain.SaleEvent{
		ProductID:   productID,
		Quantity:    quantity,
		SalePrice:   price,
		TotalAmount: price * float64(quantity),
		Customer:    getValue("customer"),
		Timestamp:   saleDate,
	}, nil
}

var saleDateLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
}

func parseSaleDate(value string) (time.Time, error) {
	for _, layout := range saleDateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid sale_date %q", value)
}
