package convert

import (
	"github.com/jinzhu/copier"
)

// StructAssign
// dst 目标结构体，src 源结构体
// 它会把src与dst的相同字段名的值，复制到dst中
func StructAssign(src any, dst any) any {
	copier.Copy(dst, src)
	return dst
}
