// Package global 提供跨层的调试辅助
package global

import (
	"fmt"
	"runtime"

	dumpx "github.com/gookit/goutil/dump"
)

// Dump 打印调用位置和变量内容，仅用于开发调试
func Dump(a ...any) {
	_, file, line, ok := runtime.Caller(1)
	if ok {
		fmt.Printf("\033[32m%s:%d:\033[0m\n", file, line)
	}
	dumpx.P(a...)
}
