package app

import (
	"strings"

	ut "github.com/go-playground/universal-translator"

	"github.com/gin-gonic/gin"
	validatorV10 "github.com/go-playground/validator/v10"
)

// ValidError 单个字段的校验错误
type ValidError struct {
	Key     string
	Message string
}

type ValidErrors []*ValidError

func (v *ValidError) Error() string {
	return v.Message
}

func (v ValidErrors) Error() string {
	return strings.Join(v.Errors(), ",")
}

func (v ValidErrors) Errors() []string {
	var errs []string
	for _, err := range v {
		errs = append(errs, err.Error())
	}
	return errs
}

func (v ValidErrors) ErrorsToString() string {
	return strings.Join(v.Errors(), ",")
}

// MapsToString 返回 key:message 形式的错误映射，便于前端定位字段
func (v ValidErrors) MapsToString() map[string]string {
	m := make(map[string]string, len(v))
	for _, err := range v {
		m[err.Key] = err.Message
	}
	return m
}

// BindAndValid binds request parameters and validates them
// BindAndValid 绑定请求参数并进行校验
// Validation messages are translated by the translator injected in middleware
// 校验消息由中间件注入的翻译器进行翻译
func BindAndValid(c *gin.Context, v interface{}) (bool, ValidErrors) {
	var errs ValidErrors

	err := c.ShouldBind(v)
	if err != nil {
		verrs, isValidatorErr := err.(validatorV10.ValidationErrors)
		if !isValidatorErr {
			errs = append(errs, &ValidError{
				Key:     "body",
				Message: err.Error(),
			})
			return false, errs
		}

		trans, hasTrans := c.Value("trans").(ut.Translator)
		if hasTrans {
			for key, value := range verrs.Translate(trans) {
				errs = append(errs, &ValidError{
					Key:     key,
					Message: value,
				})
			}
		} else {
			for _, fe := range verrs {
				errs = append(errs, &ValidError{
					Key:     fe.Field(),
					Message: fe.Error(),
				})
			}
		}
		return false, errs
	}

	return true, nil
}
