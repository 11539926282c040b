package store

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	// ErrNotFound 记录不存在，或当前用户无权看到该记录
	ErrNotFound = errors.New("record not found")

	// ErrBadOrdering 排序字段不在白名单内
	ErrBadOrdering = errors.New("unknown ordering field")
)

// ValidationError 按字段报告创建/更新输入的问题
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return fmt.Sprintf("invalid fields: %s", strings.Join(names, ", "))
}
