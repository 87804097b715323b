// Package rule 封装 go-playground/validator，校验规则写在结构体的 rule tag 上.
package rule

import (
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var (
	inst *validator.Validate
	once sync.Once
)

// 优先复用 gin binding 的 validator 实例，保证 binding tag 与 rule tag 走同一引擎.
func initValidator() {
	if engine, ok := binding.Validator.Engine().(*validator.Validate); ok && engine != nil {
		inst = engine
	} else {
		inst = validator.New()
	}

	inst.SetTagName("rule")
}

// Engine 返回全局 validator，首次调用时初始化.
func Engine() *validator.Validate {
	once.Do(initValidator)

	return inst
}

// ValidateStruct 按 rule tag 校验整个结构体.
func ValidateStruct(s any) error {
	return Engine().Struct(s)
}

// ValidateVar 校验单个值，如 ValidateVar(id, "required,uuid").
func ValidateVar(field any, tag string) error {
	return Engine().Var(field, tag)
}
