package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"maps"
	"reflect"
	"slices"
	"strings"

	"solireserve/infras/otel"
	"solireserve/infras/postgres"
	"solireserve/shared/constant"
	"solireserve/shared/dto"
	"solireserve/shared/logger"

	"github.com/jmoiron/sqlx"
)

const expectedVersionArg = "expected_version"

var errRequiredFilter = errors.New("required filter")

// Joiner is implemented by models that read columns from another table. Fields of such
// models tagged `table:"hotels" column:"nom"` are selected through the join and never written.
type Joiner interface {
	GetJoinQuery() string
}

type column struct {
	name  string
	table string
	alias string
}

func (c column) qualified() string {
	return c.table + "." + c.name
}

func (c column) selectExpr() string {
	if c.alias == "" {
		return c.qualified()
	}

	return c.qualified() + " AS " + c.alias
}

type execer interface {
	NamedExecContext(ctx context.Context, query string, arg any) (sql.Result, error)
}

type preparer interface {
	PrepareNamedContext(ctx context.Context, query string) (*sqlx.NamedStmt, error)
}

// Repository is the CRUD layer embedded by the domain repositories. Reads go to the
// read pool, writes to the write pool or to the transaction passed to the *Tx variants.
type Repository[T any] struct {
	db            *postgres.Connection
	otel          otel.Otel
	table         string
	entity        string
	primaryColumn string
	join          string
	columns       []column
	insertQuery   string
}

func NewRepository[T any](entityName, tableName, primaryColumn string, dbConnection *postgres.Connection, otl otel.Otel) Repository[T] {
	var zero T

	columns, insertColumns := getColumns(tableName, reflect.TypeOf(zero))

	join := constant.Empty
	if joiner, ok := any(zero).(Joiner); ok {
		join = joiner.GetJoinQuery()
	}

	placeholders := make([]string, len(insertColumns))
	for i, col := range insertColumns {
		placeholders[i] = ":" + col
	}

	return Repository[T]{
		db:            dbConnection,
		otel:          otl,
		table:         tableName,
		entity:        entityName,
		primaryColumn: primaryColumn,
		join:          join,
		columns:       columns,
		insertQuery: fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
			tableName, strings.Join(insertColumns, ", "), strings.Join(placeholders, ", ")),
	}
}

func (repo *Repository[T]) newScope(ctx context.Context, operation string) (context.Context, otel.Scope) {
	return repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+"."+repo.entity+"."+operation)
}

func (repo *Repository[T]) Insert(ctx context.Context, model T) error {
	return repo.insert(ctx, repo.db.Write, model, "Insert")
}

func (repo *Repository[T]) InsertTx(ctx context.Context, sqltx *sqlx.Tx, model T) error {
	return repo.insert(ctx, sqltx, model, "InsertTx")
}

func (repo *Repository[T]) insert(ctx context.Context, exec execer, model T, operation string) error {
	ctx, scope := repo.newScope(ctx, operation)
	defer scope.End()

	scope.SetAttribute(constant.OtelQueryAttributeKey, repo.insertQuery)

	if _, err := exec.NamedExecContext(ctx, repo.insertQuery, model); err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return fmt.Errorf("failed to insert data (%s): %w", repo.entity, err)
	}

	return nil
}

func (repo *Repository[T]) Exist(ctx context.Context, filter dto.FilterGroup) (bool, error) {
	ctx, scope := repo.newScope(ctx, "Exist")
	defer scope.End()

	where, args, err := repo.where(filter)
	if err != nil {
		return false, err
	}

	query := fmt.Sprintf("SELECT EXISTS(SELECT 1 FROM %s %s %s)", repo.table, repo.join, where)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	var exist bool

	if err = repo.queryRow(ctx, &exist, query, args); err != nil {
		scope.TraceError(err)

		return false, fmt.Errorf("failed to check exist data (%s): %w", repo.entity, err)
	}

	return exist, nil
}

// Get returns the first matching row from the read pool, or the zero value of T when nothing
// matches.
func (repo *Repository[T]) Get(ctx context.Context, filter dto.FilterGroup, columns ...string) (T, error) {
	return repo.get(ctx, repo.db.Read, "Get", filter, columns)
}

// GetPrimary reads from the write pool. Read-modify-write paths use it so they never start from
// a lagging replica.
func (repo *Repository[T]) GetPrimary(ctx context.Context, filter dto.FilterGroup, columns ...string) (T, error) {
	return repo.get(ctx, repo.db.Write, "GetPrimary", filter, columns)
}

func (repo *Repository[T]) get(ctx context.Context, db preparer, operation string, filter dto.FilterGroup, columns []string) (T, error) {
	ctx, scope := repo.newScope(ctx, operation)
	defer scope.End()

	var model T

	where, args, err := repo.where(filter)
	if err != nil {
		return model, err
	}

	query := fmt.Sprintf("SELECT %s FROM %s %s %s LIMIT 1", repo.selectList(columns), repo.table, repo.join, where)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	err = namedGet(ctx, db, &model, query, args)
	if errors.Is(err, sql.ErrNoRows) {
		return model, nil
	}

	if err != nil {
		scope.TraceError(err)

		return model, fmt.Errorf("failed to get data (%s): %w", repo.entity, err)
	}

	return model, nil
}

// GetAll pages through the matching rows. Rows are ordered by params.SortBy when it names a
// selected column (or alias), then by primary key so pages never overlap.
func (repo *Repository[T]) GetAll(ctx context.Context, params dto.QueryParams, filter dto.FilterGroup, columns ...string) ([]T, error) {
	ctx, scope := repo.newScope(ctx, "GetAll")
	defer scope.End()

	where, args := filter.GetWhereClause()
	if where != constant.Empty {
		where = "WHERE " + where
	}

	query := fmt.Sprintf("SELECT %s FROM %s %s %s ORDER BY %s", repo.selectList(columns), repo.table, repo.join, where, repo.ordering(params))

	if params.Limit > 0 {
		args["limit"] = params.Limit
		args["offset"] = params.Offset()

		query += " LIMIT :limit OFFSET :offset"
	}

	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	models := []T{}

	stmt, err := repo.db.Read.PrepareNamedContext(ctx, query)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return models, fmt.Errorf("failed to prepare statement (%s): %w", repo.entity, err)
	}
	defer stmt.Close()

	if err = stmt.SelectContext(ctx, &models, args); err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return models, fmt.Errorf("failed to get all data (%s): %w", repo.entity, err)
	}

	return models, nil
}

func (repo *Repository[T]) Count(ctx context.Context, filter dto.FilterGroup) (int, error) {
	ctx, scope := repo.newScope(ctx, "Count")
	defer scope.End()

	where, args := filter.GetWhereClause()
	if where != constant.Empty {
		where = "WHERE " + where
	}

	query := fmt.Sprintf("SELECT COUNT(*) FROM %s %s %s", repo.table, repo.join, where)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	var count int

	if err := repo.queryRow(ctx, &count, query, args); err != nil {
		scope.TraceError(err)

		return 0, fmt.Errorf("failed to count data (%s): %w", repo.entity, err)
	}

	return count, nil
}

func (repo *Repository[T]) Delete(ctx context.Context, filter dto.FilterGroup) error {
	ctx, scope := repo.newScope(ctx, "Delete")
	defer scope.End()

	where, args, err := repo.where(filter)
	if err != nil {
		return err
	}

	query := fmt.Sprintf("DELETE FROM %s %s", repo.table, where)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	if _, err = repo.db.Write.NamedExecContext(ctx, query, args); err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return fmt.Errorf("failed to delete data (%s): %w", repo.entity, err)
	}

	return nil
}

func (repo *Repository[T]) Update(ctx context.Context, mod map[string]any, filter dto.FilterGroup) error {
	ctx, scope := repo.newScope(ctx, "Update")
	defer scope.End()

	where, args, err := repo.where(filter)
	if err != nil {
		return err
	}

	query := fmt.Sprintf("UPDATE %s SET %s %s", repo.table, strings.Join(assignments(mod), ", "), where)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	maps.Copy(args, mod)

	if _, err = repo.db.Write.NamedExecContext(ctx, query, args); err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return fmt.Errorf("failed to update data (%s): %w", repo.entity, err)
	}

	return nil
}

// UpdateVersioned applies mod only when the row still carries version and bumps it.
// A zero row count means the row is missing or was saved by someone else.
func (repo *Repository[T]) UpdateVersioned(ctx context.Context, mod map[string]any, filter dto.FilterGroup, version int) (int64, error) {
	ctx, scope := repo.newScope(ctx, "UpdateVersioned")
	defer scope.End()

	where, args, err := repo.where(filter)
	if err != nil {
		return 0, err
	}

	fields := maps.Clone(mod)
	delete(fields, constant.FieldVersion)

	set := append([]string{fmt.Sprintf("%s = %s + 1", constant.FieldVersion, constant.FieldVersion)}, assignments(fields)...)
	query := fmt.Sprintf("UPDATE %s SET %s %s AND %s = :%s",
		repo.table, strings.Join(set, ", "), where, constant.FieldVersion, expectedVersionArg)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	maps.Copy(args, fields)
	args[expectedVersionArg] = version

	result, err := repo.db.Write.NamedExecContext(ctx, query, args)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return 0, fmt.Errorf("failed to update data (%s): %w", repo.entity, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		scope.TraceError(err)

		return 0, fmt.Errorf("failed to read affected rows (%s): %w", repo.entity, err)
	}

	return affected, nil
}

func (repo *Repository[T]) queryRow(ctx context.Context, dest any, query string, args map[string]any) error {
	return namedGet(ctx, repo.db.Read, dest, query, args)
}

func namedGet(ctx context.Context, db preparer, dest any, query string, args map[string]any) error {
	stmt, err := db.PrepareNamedContext(ctx, query)
	if err != nil {
		logger.ErrorWithStack(err)

		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	err = stmt.GetContext(ctx, dest, args)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		logger.ErrorWithStack(err)
	}

	return err //nolint:wrapcheck
}

// where renders a mandatory WHERE clause. Statements that would touch every row are refused.
func (repo *Repository[T]) where(filter dto.FilterGroup) (string, map[string]any, error) {
	where, args := filter.GetWhereClause()
	if where == constant.Empty {
		return constant.Empty, args, fmt.Errorf("%s: %w", repo.entity, errRequiredFilter)
	}

	return "WHERE " + where, args, nil
}

func (repo *Repository[T]) selectList(only []string) string {
	exprs := make([]string, 0, len(repo.columns))

	for _, col := range repo.columns {
		if len(only) > 0 && !slices.Contains(only, col.name) && !slices.Contains(only, col.alias) {
			continue
		}

		exprs = append(exprs, col.selectExpr())
	}

	return strings.Join(exprs, ", ")
}

func (repo *Repository[T]) ordering(params dto.QueryParams) string {
	tiebreak := repo.table + "." + repo.primaryColumn

	dir := params.SortDir
	if dir != dto.SortDirAsc {
		dir = dto.SortDirDesc
	}

	for _, col := range repo.columns {
		if params.SortBy != constant.Empty && (col.name == params.SortBy || col.alias == params.SortBy) {
			if col.qualified() == tiebreak {
				return tiebreak + " " + dir
			}

			return fmt.Sprintf("%s %s, %s", col.qualified(), dir, tiebreak)
		}
	}

	return tiebreak
}

// assignments renders "col = :col" pairs in column order so the statement text is stable.
func assignments(mod map[string]any) []string {
	columns := slices.Sorted(maps.Keys(mod))

	set := make([]string, len(columns))
	for i, col := range columns {
		set[i] = fmt.Sprintf("%s = :%s", col, col)
	}

	return set
}

func getColumns(table string, reflectType reflect.Type) (columns []column, insertColumns []string) {
	for i := range reflectType.NumField() {
		field := reflectType.Field(i)

		if field.Anonymous && field.Type.Kind() == reflect.Struct {
			embedded, embeddedInsert := getColumns(table, field.Type)
			columns = append(columns, embedded...)
			insertColumns = append(insertColumns, embeddedInsert...)

			continue
		}

		dbTag := field.Tag.Get("db")
		if dbTag == constant.Empty || dbTag == "-" {
			continue
		}

		source := field.Tag.Get("table")
		if source == constant.Empty || source == table {
			columns = append(columns, column{name: dbTag, table: table})
			insertColumns = append(insertColumns, dbTag)

			continue
		}

		name := field.Tag.Get("column")
		if name == constant.Empty {
			name = dbTag
		}

		columns = append(columns, column{name: name, table: source, alias: dbTag})
	}

	return columns, insertColumns
}
