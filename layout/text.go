package layout

import (
	"fmt"
	"strings"

	"github.com/ByLCY/typeline/font"
)

// TextContext 携带一次文本布局所需的依赖：字体解析器与样式。
// 对共享 Fonts 的互斥由其实现负责（Loader 内部加锁），
// 布局器本身逐字符串行解析，单次查询不会跨越多个字符。
type TextContext struct {
	Fonts font.Source
	Style *Style
}

// NoSuitableFontError 表示回退链中没有任何字体覆盖某个字符。
// 首个无法解析的字符会中止整次布局，不产生部分结果。
type NoSuitableFontError struct {
	Char rune
}

func (e *NoSuitableFontError) Error() string {
	return fmt.Sprintf("没有适用于字符 %q 的字体", e.Char)
}

// LayoutText 将文本排成一个盒子。
//
// 没有复杂的排版：文本从左到右依次排列，逐字符选出最合适的字体，
// 连续的同字体字符合并为一条 WriteText，减少字体切换开销。
// 宽度为所有字符前进宽度之和，高度为字号（单行，不含行距）。
func LayoutText(text string, ctx TextContext) (*Layout, error) {
	return newTextLayouter(text, ctx).layout()
}

// textLayouter 保存一次布局调用的全部工作状态，调用结束即丢弃。
type textLayouter struct {
	ctx        TextContext
	text       string
	actions    []Action
	buffer     strings.Builder
	activeFont font.Handle
	width      Size
}

func newTextLayouter(text string, ctx TextContext) *textLayouter {
	return &textLayouter{
		ctx:        ctx,
		text:       text,
		activeFont: font.NoHandle,
	}
}

func (tl *textLayouter) layout() (*Layout, error) {
	for _, c := range tl.text {
		handle, charWidth, err := tl.selectFont(c)
		if err != nil {
			return nil, err
		}

		tl.width = tl.width.Add(charWidth)

		if tl.activeFont != handle {
			if tl.buffer.Len() > 0 {
				tl.actions = append(tl.actions, WriteText{Text: tl.buffer.String()})
				tl.buffer.Reset()
			}

			tl.actions = append(tl.actions, SetFont{Handle: handle, Size: tl.ctx.Style.FontSize})
			tl.activeFont = handle
		}

		tl.buffer.WriteRune(c)
	}

	if tl.buffer.Len() > 0 {
		tl.actions = append(tl.actions, WriteText{Text: tl.buffer.String()})
	}

	return &Layout{
		Dimensions: Size2D{W: tl.width, H: Pt(tl.ctx.Style.FontSize)},
		Actions:    tl.actions,
	}, nil
}

// selectFont 为字符 c 选择最合适的字体，返回句柄与该字符的前进宽度。
// 回退链按声明顺序逐个尝试，先匹配者胜出；回退链为空时仅用首选类别尝试一次。
func (tl *textLayouter) selectFont(c rune) (font.Handle, Size, error) {
	style := tl.ctx.Style

	if len(style.Fallback) == 0 {
		if handle, width, ok := tl.resolve(c, style.Classes); ok {
			return handle, width, nil
		}
		return font.NoHandle, 0, &NoSuitableFontError{Char: c}
	}

	// 基础类别保持不变，每次尝试只追加一个候选回退标签。
	classes := make([]font.Class, len(style.Classes), len(style.Classes)+1)
	copy(classes, style.Classes)
	for _, fb := range style.Fallback {
		if handle, width, ok := tl.resolve(c, append(classes, fb)); ok {
			return handle, width, nil
		}
	}
	return font.NoHandle, 0, &NoSuitableFontError{Char: c}
}

func (tl *textLayouter) resolve(c rune, classes []font.Class) (font.Handle, Size, bool) {
	face, handle, ok := tl.ctx.Fonts.Resolve(font.Query{
		Chars:   []rune{c},
		Classes: classes,
	})
	if !ok {
		return font.NoHandle, 0, false
	}
	return handle, charWidth(face, c, tl.ctx.Style.FontSize), true
}

// charWidth 由字体度量换算字符宽度：advance / unitsPerEm * fontSize（pt）。
// 不做取整或网格对齐，保留浮点语义。
// Face 是按覆盖 c 选出来的，此处任何缺失的字形或度量都意味着
// 协作者契约被破坏，直接 panic 而不是降级处理。
func charWidth(face font.Face, c rune, fontSize float64) Size {
	ratio := 1.0 / float64(face.UnitsPerEm())

	glyph, ok := face.GlyphIndex(c)
	if !ok {
		panic(fmt.Sprintf("layout text: font should have char %q", c))
	}

	advance, ok := face.Advance(glyph)
	if !ok {
		panic(fmt.Sprintf("layout text: font should have glyph %d", glyph))
	}

	return Pt(ratio * float64(advance)).Mul(fontSize)
}
