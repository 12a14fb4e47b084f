// Package validate 物品与用户的字段规则，基于 go-playground/validator。
package validate

import (
	"strings"

	"github.com/go-playground/validator/v10"

	"wtwr-api/internal/domain"
)

var v = newValidator()

func newValidator() *validator.Validate {
	vv := validator.New(validator.WithRequiredStructEnabled())
	_ = vv.RegisterValidation("imageref", func(fl validator.FieldLevel) bool {
		return IsImageRef(fl.Field().String())
	})
	return vv
}

// Item 校验待写入的物品；失败统一为 Validation
func Item(it *domain.ClothingItem) error { return check(it) }

func User(u *domain.User) error { return check(u) }

func check(s any) error {
	if err := v.Struct(s); err != nil {
		return domain.ValidationError(err)
	}
	return nil
}

// IsName 长度按字符计，[2,30]
func IsName(s string) bool { return v.Var(s, "required,min=2,max=30") == nil }

func IsWeather(s string) bool { return v.Var(s, "required,oneof=hot warm cold") == nil }

// IsURL 绝对 http/https 地址且带 host
func IsURL(s string) bool { return v.Var(s, "required,http_url") == nil }

// IsImageRef 远程地址，或上传解析出的 /uploads/<file>
func IsImageRef(s string) bool {
	if name, ok := strings.CutPrefix(s, domain.UploadPathPrefix); ok {
		return IsUploadName(name)
	}
	return IsURL(s)
}

// IsUploadName 单层文件名，不允许路径穿越
func IsUploadName(name string) bool {
	if name == "" || name == "." || strings.Contains(name, "..") {
		return false
	}
	return !strings.ContainsAny(name, `/\`)
}
