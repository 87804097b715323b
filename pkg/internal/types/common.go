// Package types 定义 HTTP 层的请求与响应结构.
package types

// Pagination 通用分页参数，嵌入到各列表请求中.
type Pagination struct {
	Page     int `form:"page"      rule:"omitempty,min=1"`
	PageSize int `form:"page_size" rule:"omitempty,min=1,max=200"`
}

const (
	defaultPage     = 1
	defaultPageSize = 20
)

// Normalize 填充默认分页值.
func (p *Pagination) Normalize() {
	if p.Page < 1 {
		p.Page = defaultPage
	}

	if p.PageSize < 1 {
		p.PageSize = defaultPageSize
	}
}

// Offset 计算偏移量.
func (p *Pagination) Offset() int {
	return (p.Page - 1) * p.PageSize
}
