package dto

import (
	"fmt"
	"maps"
	"strconv"
	"strings"
	"time"
)

const (
	FilterOperatorEq        = "eq"
	FilterOperatorNotEq     = "not_eq"
	FilterOperatorLike      = "like"
	FilterOperatorIn        = "in"
	FilterOperatorLessEq    = "less_eq"
	FilterOperatorGreaterEq = "greater_eq"
)

const (
	FilterGroupOperatorAnd = "AND"
	FilterGroupOperatorOr  = "OR"
)

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// Filter is one named-parameter condition. The bound argument is called
// <table>_<ArgName or Field> so that the same column can appear twice in a group and
// never collides with the column names of an UPDATE.
type Filter struct {
	ArgName  string
	Field    string
	Value    any
	Operator string `validate:"required,oneof=eq not_eq like in less_eq greater_eq"`
	Table    string
}

func (f *Filter) column() string {
	if f.Table == "" {
		return f.Field
	}

	return f.Table + "." + f.Field
}

func (f *Filter) argName() string {
	name := f.ArgName
	if name == "" {
		name = f.Field
	}

	if f.Table == "" {
		return name
	}

	return f.Table + "_" + name
}

func (f *Filter) GetWhereClause() (string, map[string]any) {
	column, arg := f.column(), f.argName()
	args := map[string]any{}

	switch f.Operator {
	case FilterOperatorEq:
		args[arg] = f.Value

		return fmt.Sprintf("%s = :%s", column, arg), args
	case FilterOperatorNotEq:
		args[arg] = f.Value

		return fmt.Sprintf("%s != :%s", column, arg), args
	case FilterOperatorLike:
		args[arg] = "%" + likeEscaper.Replace(fmt.Sprint(f.Value)) + "%"

		return fmt.Sprintf("LOWER(%s) LIKE LOWER(:%s)", column, arg), args
	case FilterOperatorIn:
		values, _ := f.Value.([]string)
		if len(values) == 0 {
			return "FALSE", args
		}

		named := make([]string, len(values))

		for idx, value := range values {
			key := fmt.Sprintf("%s_%d", arg, idx)
			args[key] = value
			named[idx] = ":" + key
		}

		return fmt.Sprintf("%s IN (%s)", column, strings.Join(named, ", ")), args
	case FilterOperatorLessEq:
		args[arg] = f.Value

		return fmt.Sprintf("%s <= :%s", column, arg), args
	case FilterOperatorGreaterEq:
		args[arg] = f.Value

		return fmt.Sprintf("%s >= :%s", column, arg), args
	default:
		return "", args
	}
}

type FilterGroup struct {
	Filters  []any
	Operator string
}

// AddEqual appends an equality filter unless value is empty.
func (f *FilterGroup) AddEqual(table, field, value string) {
	if value == "" {
		return
	}

	f.add(Filter{Table: table, Field: field, Operator: FilterOperatorEq, Value: value})
}

// AddLike appends a case-insensitive substring match unless value is empty.
func (f *FilterGroup) AddLike(table, field, value string) {
	if value = strings.TrimSpace(value); value == "" {
		return
	}

	f.add(Filter{Table: table, Field: field, Operator: FilterOperatorLike, Value: value})
}

// AddBool appends an equality filter on a boolean column when raw parses as a bool
// ("true", "1", "false", "0", ...). Anything else is ignored.
func (f *FilterGroup) AddBool(table, field, raw string) {
	value, err := strconv.ParseBool(raw)
	if err != nil {
		return
	}

	f.add(Filter{Table: table, Field: field, Operator: FilterOperatorEq, Value: value})
}

// AddIn appends an IN filter from a comma separated list such as "confirmee,en_cours".
// A single value becomes a plain equality.
func (f *FilterGroup) AddIn(table, field, raw string) {
	var values []string

	for value := range strings.SplitSeq(raw, ",") {
		if value = strings.TrimSpace(value); value != "" {
			values = append(values, value)
		}
	}

	switch len(values) {
	case 0:
		return
	case 1:
		f.AddEqual(table, field, values[0])
	default:
		f.add(Filter{Table: table, Field: field, Operator: FilterOperatorIn, Value: values})
	}
}

// AddRange bounds field by from and to, both inclusive. A nil bound leaves that side open.
func (f *FilterGroup) AddRange(table, field string, from, to *time.Time) {
	if from != nil {
		f.add(Filter{Table: table, Field: field, ArgName: field + "_from", Operator: FilterOperatorGreaterEq, Value: *from})
	}

	if to != nil {
		f.add(Filter{Table: table, Field: field, ArgName: field + "_to", Operator: FilterOperatorLessEq, Value: *to})
	}
}

func (f *FilterGroup) add(filter Filter) {
	if f.Operator == "" {
		f.Operator = FilterGroupOperatorAnd
	}

	f.Filters = append(f.Filters, filter)
}

func (f *FilterGroup) GetWhereClause() (string, map[string]any) {
	args := map[string]any{}
	clauses := []string{}

	for _, filter := range f.Filters {
		var (
			where string
			arg   map[string]any
		)

		switch fill := filter.(type) {
		case Filter:
			where, arg = fill.GetWhereClause()
		case FilterGroup:
			where, arg = fill.GetWhereClause()
		default:
			continue
		}

		if where == "" {
			continue
		}

		clauses = append(clauses, where)
		maps.Copy(args, arg)
	}

	if len(clauses) == 0 {
		return "", args
	}

	operator := f.Operator
	if operator == "" {
		operator = FilterGroupOperatorAnd
	}

	return fmt.Sprintf("(%s)", strings.Join(clauses, " "+operator+" ")), args
}
