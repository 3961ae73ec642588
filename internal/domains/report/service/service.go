package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"solireserve/config"
	"solireserve/infras/otel"
	"solireserve/infras/s3"
	"solireserve/internal/domains/report/model"
	"solireserve/internal/domains/report/model/dto"
	"solireserve/internal/domains/report/repository"
	"solireserve/shared"
	"solireserve/shared/cache"
	"solireserve/shared/constant"
	"solireserve/shared/failure"
	"solireserve/shared/timezone"

	"github.com/rs/zerolog/log"
)

const (
	exportDirectory  = "reports"
	exportTimeFormat = "20060102-150405"
)

var exportHeader = []string{
	"operator_id",
	"operateur",
	"nombre_reservations",
	"total_facture",
	"total_tarif_standard",
	"total_economies",
	"reduction_moyenne",
}

type Report interface {
	Savings(ctx context.Context, req dto.SavingsRequest) (dto.SavingsResponse, error)
	Processes(ctx context.Context) (dto.ProcessesResponse, error)
	ExportSavings(ctx context.Context, req dto.SavingsRequest) (dto.ExportResponse, error)
}

type serviceImpl struct {
	repo  repository.Report
	cfg   *config.Config
	cache cache.RedisCache
	s3    s3.S3
	otel  otel.Otel
}

func New(repo repository.Report, cfg *config.Config, cache cache.RedisCache, s3 s3.S3, otel otel.Otel) Report {
	return &serviceImpl{
		repo:  repo,
		cfg:   cfg,
		cache: cache,
		s3:    s3,
		otel:  otel,
	}
}

func (s *serviceImpl) Savings(ctx context.Context, req dto.SavingsRequest) (res dto.SavingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Report.Savings")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	filter, err := req.ToFilter()
	if err != nil {
		return res, failure.BadRequest(err) // nolint:wrapcheck
	}

	cacheKey := shared.BuildCacheKey(constant.CacheKeyReportSavings, req.OperatorID, req.HotelID, req.From, req.To)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for savings report")

		return res, nil
	}

	savings, err := s.repo.Savings(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get savings report")

		return res, fmt.Errorf("failed to get savings report: %w", err)
	}

	res.FromModel(savings)
	res.Currency = s.cfg.Tariff.Currency

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save savings report to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Processes(ctx context.Context) (res dto.ProcessesResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Report.Processes")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	err = s.cache.Get(ctx, constant.CacheKeyReportProcesses, &res)
	if err == nil {
		log.Info().Str("cacheKey", constant.CacheKeyReportProcesses).Msg("cache hit for processes report")

		return res, nil
	}

	totals, err := s.repo.ProcessTotals(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to get processes report")

		return res, fmt.Errorf("failed to get processes report: %w", err)
	}

	res.FromModel(model.Summarize(totals))
	res.Currency = s.cfg.Tariff.Currency

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, constant.CacheKeyReportProcesses, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save processes report to cache")
		}
	}()

	return res, nil
}

// ExportSavings writes the savings report grouped by operator as CSV and uploads it.
func (s *serviceImpl) ExportSavings(ctx context.Context, req dto.SavingsRequest) (res dto.ExportResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Report.ExportSavings")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	filter, err := req.ToFilter()
	if err != nil {
		return res, failure.BadRequest(err) // nolint:wrapcheck
	}

	rows, err := s.repo.SavingsByOperator(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get savings by operator")

		return res, fmt.Errorf("failed to get savings by operator: %w", err)
	}

	data, err := savingsCSV(rows)
	if err != nil {
		log.Error().Err(err).Msg("failed to write savings csv")

		return res, fmt.Errorf("failed to write savings csv: %w", err)
	}

	fileName := fmt.Sprintf("economies-%s.csv", timezone.Now().Format(exportTimeFormat))

	bucketName := s.cfg.External.S3.BucketName

	err = s.s3.UploadAttachment(ctx, bucketName, exportDirectory, fileName, constant.ContentTypeCSV, data)
	if err != nil {
		log.Error().Err(err).Msg("failed to upload savings export")

		return res, fmt.Errorf("failed to upload savings export: %w", err)
	}

	url, expiresAt, err := s.s3.PresignGetURL(ctx, bucketName, exportDirectory, fileName)
	if err != nil {
		log.Error().Err(err).Str("file", fileName).Msg("failed to sign savings export")

		return res, fmt.Errorf("failed to sign savings export: %w", err)
	}

	res.URL = url
	res.FileName = fileName
	res.ExpiresAt = timezone.Format(expiresAt, time.RFC3339)
	res.Operators = len(rows)

	return res, nil
}

func savingsCSV(rows []model.OperatorSavings) ([]byte, error) {
	var buf bytes.Buffer

	writer := csv.NewWriter(&buf)

	if err := writer.Write(exportHeader); err != nil {
		return nil, err //nolint:wrapcheck
	}

	for _, row := range rows {
		record := []string{
			row.OperatorID,
			row.OperatorName,
			strconv.Itoa(row.Reservations),
			row.TotalBilled.StringFixed(2),
			row.TotalStandard.StringFixed(2),
			row.TotalSavings.StringFixed(2),
			row.AverageReduction().StringFixed(2),
		}

		if err := writer.Write(record); err != nil {
			return nil, err //nolint:wrapcheck
		}
	}

	writer.Flush()

	return buf.Bytes(), writer.Error() //nolint:wrapcheck
}
