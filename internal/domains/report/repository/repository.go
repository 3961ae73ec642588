package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"

	"solireserve/infras/otel"
	"solireserve/infras/postgres"
	operatorModel "solireserve/internal/domains/operator/model"
	processModel "solireserve/internal/domains/process/model"
	"solireserve/internal/domains/report/model"
	reservationModel "solireserve/internal/domains/reservation/model"
	"solireserve/shared/constant"
	"solireserve/shared/logger"

	"github.com/Masterminds/squirrel"
)

// Report runs read-only aggregates over reservations and their processes.
type Report interface {
	Savings(ctx context.Context, filter model.SavingsFilter) (model.Savings, error)
	SavingsByOperator(ctx context.Context, filter model.SavingsFilter) ([]model.OperatorSavings, error)
	ProcessTotals(ctx context.Context) ([]model.StatusTotals, error)
}

type repositoryImpl struct {
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Report {
	return &repositoryImpl{
		db:   db,
		otel: otel,
	}
}

var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

func column(table, field string) string {
	return table + "." + field
}

func savingsColumns() []string {
	price := column(reservationModel.TableName, reservationModel.FieldPrice)
	standard := column(reservationModel.TableName, reservationModel.FieldStandardPrice)
	nights := column(reservationModel.TableName, reservationModel.FieldNights)
	savings := column(reservationModel.TableName, reservationModel.FieldSavings)

	return []string{
		fmt.Sprintf("COUNT(%s) AS reservations", column(reservationModel.TableName, reservationModel.FieldID)),
		fmt.Sprintf("COALESCE(SUM(%s * %s), 0) AS total_billed", price, nights),
		fmt.Sprintf("COALESCE(SUM(%s * %s), 0) AS total_standard", standard, nights),
		fmt.Sprintf("COALESCE(SUM(%s), 0) AS total_savings", savings),
	}
}

func applySavingsFilter(builder squirrel.SelectBuilder, filter model.SavingsFilter) squirrel.SelectBuilder {
	if filter.OperatorID != constant.Empty {
		builder = builder.Where(squirrel.Eq{column(reservationModel.TableName, reservationModel.FieldOperatorID): filter.OperatorID})
	}

	if filter.HotelID != constant.Empty {
		builder = builder.Where(squirrel.Eq{column(reservationModel.TableName, reservationModel.FieldHotelID): filter.HotelID})
	}

	if filter.From != nil {
		builder = builder.Where(squirrel.GtOrEq{column(reservationModel.TableName, reservationModel.FieldArrivalDate): *filter.From})
	}

	if filter.To != nil {
		builder = builder.Where(squirrel.LtOrEq{column(reservationModel.TableName, reservationModel.FieldArrivalDate): *filter.To})
	}

	return builder
}

func savingsQuery(filter model.SavingsFilter) squirrel.SelectBuilder {
	return applySavingsFilter(psql.Select(savingsColumns()...).From(reservationModel.TableName), filter)
}

func savingsByOperatorQuery(filter model.SavingsFilter) squirrel.SelectBuilder {
	operatorID := column(reservationModel.TableName, reservationModel.FieldOperatorID)
	operatorName := column(operatorModel.TableName, operatorModel.FieldName)

	columns := append([]string{
		operatorID + " AS operator_id",
		operatorName + " AS operator_name",
	}, savingsColumns()...)

	builder := psql.Select(columns...).
		From(reservationModel.TableName).
		Join(fmt.Sprintf("%s ON %s = %s", operatorModel.TableName, column(operatorModel.TableName, operatorModel.FieldID), operatorID)).
		GroupBy(operatorID, operatorName).
		OrderBy(operatorName + " ASC")

	return applySavingsFilter(builder, filter)
}

func processTotalsQuery() squirrel.SelectBuilder {
	return psql.Select(
		processModel.FieldStatus,
		fmt.Sprintf("COUNT(%s) AS total", processModel.FieldReservationID),
		fmt.Sprintf("COALESCE(SUM(%s), 0) AS invoiced", processModel.FieldInvoiceAmount),
		fmt.Sprintf("COALESCE(SUM(%s), 0) AS paid", processModel.FieldInvoiceAmountPaid),
	).
		From(processModel.TableName).
		GroupBy(processModel.FieldStatus)
}

func (r *repositoryImpl) Savings(ctx context.Context, filter model.SavingsFilter) (res model.Savings, err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".report.Savings")
	defer scope.End()

	query, args, err := savingsQuery(filter).ToSql()
	if err != nil {
		scope.TraceError(err)

		return res, fmt.Errorf("failed to build savings query: %w", err)
	}

	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	if err = r.db.Read.GetContext(ctx, &res, query, args...); err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return res, fmt.Errorf("failed to aggregate savings: %w", err)
	}

	return res, nil
}

func (r *repositoryImpl) SavingsByOperator(ctx context.Context, filter model.SavingsFilter) (res []model.OperatorSavings, err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".report.SavingsByOperator")
	defer scope.End()

	query, args, err := savingsByOperatorQuery(filter).ToSql()
	if err != nil {
		scope.TraceError(err)

		return res, fmt.Errorf("failed to build savings by operator query: %w", err)
	}

	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	if err = r.db.Read.SelectContext(ctx, &res, query, args...); err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return res, fmt.Errorf("failed to aggregate savings by operator: %w", err)
	}

	return res, nil
}

func (r *repositoryImpl) ProcessTotals(ctx context.Context) (res []model.StatusTotals, err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".report.ProcessTotals")
	defer scope.End()

	query, args, err := processTotalsQuery().ToSql()
	if err != nil {
		scope.TraceError(err)

		return res, fmt.Errorf("failed to build process totals query: %w", err)
	}

	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	if err = r.db.Read.SelectContext(ctx, &res, query, args...); err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return res, fmt.Errorf("failed to aggregate processes: %w", err)
	}

	return res, nil
}
