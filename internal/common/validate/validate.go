package validate

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/binduu04/fleet-management-assignment/internal/common/apperr"
)

var v = validator.New(validator.WithRequiredStructEnabled())

func init() {
	// 错误信息里用 json 字段名，和对外 API 保持一致
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})
}

// Collect 运行 struct 校验，返回按字段收集的 ValidationError（可能为空，便于追加业务校验）。
func Collect(s any) *apperr.ValidationError {
	ve := apperr.NewValidation()
	err := v.Struct(s)
	if err == nil {
		return ve
	}
	fieldErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return ve.Add("payload", err.Error())
	}
	for _, fe := range fieldErrs {
		ve.Add(fe.Field(), message(fe))
	}
	return ve
}

// Struct 运行 struct 校验；全部通过返回 nil，否则返回 *apperr.ValidationError。
func Struct(s any) error {
	return Collect(s).OrNil()
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "oneof":
		return fmt.Sprintf("must be one of: %s", strings.Join(strings.Fields(fe.Param()), ", "))
	case "min", "gte":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max", "lte":
		return fmt.Sprintf("must be at most %s", fe.Param())
	default:
		return "is invalid"
	}
}
