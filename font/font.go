package font

// 该文件定义字体选择的基础类型：类别标签、查询、句柄与两个协作者契约
// （Source 负责按类别解析字体，Face 暴露字形度量）。

// Class 是一个不透明的字体选择标签，例如 family、字重或书写系统。
// 匹配策略由 Source 的实现决定。
type Class string

// Query 描述一次字体解析请求：必须覆盖的字符集合与有序的类别标签。
// 每次回退尝试都会构造一个新的 Query，不会被持久化。
type Query struct {
	Chars   []rune
	Classes []Class
}

// Handle 在一次 Source 会话内稳定地标识一个已解析的字体，
// 布局器用它来检测字体切换。
type Handle int

// NoHandle 表示“尚无活动字体”的哨兵值，任何 Source 都不得返回它。
const NoHandle Handle = -1

// GlyphID 是字体内部的字形编号。
type GlyphID uint16

// Face 暴露单个字体的度量信息，是布局器唯一依赖的字体视图。
// UnitsPerEm 返回 em 方格大小；GlyphIndex 做字符到字形的映射；
// Advance 返回字形的前进宽度（字体设计单位）。
type Face interface {
	UnitsPerEm() uint16
	GlyphIndex(r rune) (GlyphID, bool)
	Advance(g GlyphID) (uint16, bool)
}

// Source 按查询解析字体。返回的 Face 必须覆盖 Query.Chars 中的所有字符，
// Handle 在会话期间稳定。第三个返回值为 false 表示没有任何字体满足查询。
type Source interface {
	Resolve(q Query) (Face, Handle, bool)
}
