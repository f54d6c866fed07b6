package font

import (
	"fmt"

	tdfont "github.com/tdewolff/font"
)

// sfntFace 基于 github.com/tdewolff/font 的 SFNT 解析实现 Face。
// 约定：GlyphIndex 返回 0（.notdef）视为字体不覆盖该字符。
type sfntFace struct {
	sfnt *tdfont.SFNT
}

var _ Face = (*sfntFace)(nil)

// ParseFace 从 TTF/OTF 字节数据解析出一个 Face。
func ParseFace(data []byte) (Face, error) {
	sfnt, err := tdfont.ParseSFNT(data, 0)
	if err != nil {
		return nil, fmt.Errorf("解析 SFNT 字体失败: %w", err)
	}
	return &sfntFace{sfnt: sfnt}, nil
}

func (f *sfntFace) UnitsPerEm() uint16 {
	return f.sfnt.Head.UnitsPerEm
}

func (f *sfntFace) GlyphIndex(r rune) (GlyphID, bool) {
	gid := f.sfnt.GlyphIndex(r)
	if gid == 0 {
		return 0, false
	}
	return GlyphID(gid), true
}

func (f *sfntFace) Advance(g GlyphID) (uint16, bool) {
	return f.sfnt.GlyphAdvance(uint16(g)), true
}
