package validator

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"reflect"
	"slices"
	"strconv"
	"strings"
	"time"

	"solireserve/shared/constant"
	"solireserve/shared/failure"

	val "github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var validate *val.Validate

const bytesPerMB = 1024 * 1024

// fileHeader accepts the header by value or pointer; the validator may hand either.
func fileHeader(field val.FieldLevel) (multipart.FileHeader, bool) {
	switch file := field.Field().Interface().(type) {
	case multipart.FileHeader:
		return file, true
	case *multipart.FileHeader:
		if file != nil {
			return *file, true
		}
	}

	return multipart.FileHeader{}, false
}

// mimetypes=image/png image/jpeg
func validateMimetypes(field val.FieldLevel) bool {
	file, ok := fileHeader(field)
	if !ok {
		return false
	}

	contentType := file.Header.Get(constant.RequestHeaderContentType)

	return slices.Contains(strings.Fields(field.Param()), contentType)
}

// maxfilesize=2.5 is in megabytes and also bounds the length of strings.
func validateMaxFileSize(field val.FieldLevel) bool {
	maxMB, err := strconv.ParseFloat(field.Param(), 64)
	if err != nil {
		return false
	}

	var size int64

	if file, ok := fileHeader(field); ok {
		size = file.Size
	} else if str, ok := field.Field().Interface().(string); ok {
		size = int64(len(str))
	}

	return float64(size) <= maxMB*bytesPerMB
}

func validateDay(field val.FieldLevel) bool {
	str, ok := field.Field().Interface().(string)
	if !ok {
		return false
	}

	_, err := time.Parse(constant.DayFormat, str)

	return err == nil
}

func validateEmpty(field val.FieldLevel) bool {
	return field.Field().IsZero()
}

func decimalValue(field reflect.Value) any {
	if value, ok := field.Interface().(decimal.Decimal); ok {
		res, _ := value.Float64()

		return res
	}

	return nil
}

func init() {
	validate = val.New(val.WithRequiredStructEnabled())
	validate.RegisterTagNameFunc(jsonName)
	validate.RegisterCustomTypeFunc(decimalValue, decimal.Decimal{})

	custom := map[string]val.Func{
		"day":         validateDay,
		"empty":       validateEmpty,
		"mimetypes":   validateMimetypes,
		"maxfilesize": validateMaxFileSize,
	}

	for tag, fn := range custom {
		if err := validate.RegisterValidation(tag, fn); err != nil {
			panic(err)
		}
	}
}

// Validate decodes a JSON body into data and validates it. Decoding and validation errors
// are both returned as 400 failures.
func Validate[T any](r io.Reader, data *T) error {
	if err := json.NewDecoder(r).Decode(data); err != nil {
		if errors.Is(err, io.EOF) {
			return failure.BadRequestFromString("request body is empty") //nolint:wrapcheck
		}

		return failure.BadRequest(fmt.Errorf("failed to decode request body: %w", err)) //nolint:wrapcheck
	}

	return ValidateStruct(data)
}

func ValidateStruct[T any](data *T) error {
	if err := validate.Struct(data); err != nil {
		return failure.BadRequestFromString(message(err)) //nolint:wrapcheck
	}

	return nil
}

// ValidateVar checks a single value, such as a path or query parameter, against tag.
func ValidateVar(field any, tag string) error {
	if err := validate.Var(field, tag); err != nil {
		return failure.BadRequestFromString(message(err)) //nolint:wrapcheck
	}

	return nil
}
