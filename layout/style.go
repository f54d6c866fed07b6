package layout

import "github.com/ByLCY/typeline/font"

// Style 描述一次文本布局的样式。由调用方创建并持有，
// 布局期间只读借用，不会被修改。
type Style struct {
	// FontSize 为字号，单位 pt，必须为正。
	FontSize float64
	// Classes 是首选字体的有序类别标签（例如 family、字重）。
	Classes []font.Class
	// Fallback 是回退链：解析失败时按序逐个附加到 Classes 之后重试。
	// 为空时仅用 Classes 尝试一次。
	Fallback []font.Class
}
