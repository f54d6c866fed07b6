package layout

import (
	"errors"
	"math"
	"testing"

	"github.com/ByLCY/typeline/font"
)

// stubFace 是测试用的字体面：用覆盖字符集合与固定 advance 描述度量。
type stubFace struct {
	unitsPerEm uint16
	advance    uint16
	chars      string
}

func (f *stubFace) UnitsPerEm() uint16 { return f.unitsPerEm }

func (f *stubFace) GlyphIndex(r rune) (font.GlyphID, bool) {
	for _, c := range f.chars {
		if c == r {
			return font.GlyphID(uint16(r)), true
		}
	}
	return 0, false
}

func (f *stubFace) Advance(g font.GlyphID) (uint16, bool) { return f.advance, true }

// newTestSource 构建一个带两个字体面的加载器：
// 句柄 0 覆盖小写拉丁字母，句柄 1 覆盖大写拉丁字母。
func newTestSource(t *testing.T) *font.Loader {
	t.Helper()
	loader := font.NewLoader()
	loader.AddFace("lower", &stubFace{unitsPerEm: 1000, advance: 500, chars: "abcdefghijklmnopqrstuvwxyz "},
		"sans", "latin")
	loader.AddFace("upper", &stubFace{unitsPerEm: 1000, advance: 700, chars: "ABCDEFGHIJKLMNOPQRSTUVWXYZ"},
		"sans", "caps")
	return loader
}

func testStyle() *Style {
	return &Style{
		FontSize: 12,
		Classes:  []font.Class{"sans"},
		Fallback: []font.Class{"latin", "caps"},
	}
}

func mustLayout(t *testing.T, text string, src font.Source, style *Style) *Layout {
	t.Helper()
	l, err := LayoutText(text, TextContext{Fonts: src, Style: style})
	if err != nil {
		t.Fatalf("LayoutText(%q) 失败: %v", text, err)
	}
	return l
}

func eq(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

// 全部字符解析到同一字体时：恰好一个 SetFont，其后是一条等于完整输入的 WriteText。
func TestSingleFontSingleRun(t *testing.T) {
	l := mustLayout(t, "hello world", newTestSource(t), testStyle())

	if len(l.Actions) != 2 {
		t.Fatalf("指令数不符: got=%d want=2 actions=%#v", len(l.Actions), l.Actions)
	}
	sf, ok := l.Actions[0].(SetFont)
	if !ok {
		t.Fatalf("首条指令应为 SetFont，实际 %T", l.Actions[0])
	}
	if sf.Handle != 0 || sf.Size != 12 {
		t.Fatalf("SetFont 内容不符: %+v", sf)
	}
	wt, ok := l.Actions[1].(WriteText)
	if !ok {
		t.Fatalf("第二条指令应为 WriteText，实际 %T", l.Actions[1])
	}
	if wt.Text != "hello world" {
		t.Fatalf("WriteText 内容不符: got=%q want=%q", wt.Text, "hello world")
	}
}

// 两种字体交替时不得跨切换合并：aAa 产生三次 SetFont、三条单字符 WriteText。
func TestAlternatingFontsSplitRuns(t *testing.T) {
	l := mustLayout(t, "aAa", newTestSource(t), testStyle())

	want := []Action{
		SetFont{Handle: 0, Size: 12},
		WriteText{Text: "a"},
		SetFont{Handle: 1, Size: 12},
		WriteText{Text: "A"},
		SetFont{Handle: 0, Size: 12},
		WriteText{Text: "a"},
	}
	if len(l.Actions) != len(want) {
		t.Fatalf("指令数不符: got=%d want=%d actions=%#v", len(l.Actions), len(want), l.Actions)
	}
	for i := range want {
		if l.Actions[i] != want[i] {
			t.Fatalf("指令 %d 不符: got=%#v want=%#v", i, l.Actions[i], want[i])
		}
	}
}

// 同字体长文本只切换一次字体，WriteText 串联后等于原始输入。
func TestSameFontBatchingIdempotent(t *testing.T) {
	text := "the quick brown fox jumps over the lazy dog"
	l := mustLayout(t, text, newTestSource(t), testStyle())

	setFonts := 0
	concat := ""
	for _, a := range l.Actions {
		switch act := a.(type) {
		case SetFont:
			setFonts++
		case WriteText:
			concat += act.Text
		}
	}
	if setFonts != 1 {
		t.Fatalf("SetFont 次数不符: got=%d want=1", setFonts)
	}
	if concat != text {
		t.Fatalf("WriteText 串联结果不符: got=%q want=%q", concat, text)
	}
}

// 宽度可加且与分段无关：总宽度等于各字符 advance/unitsPerEm*fontSize 之和。
func TestWidthAdditive(t *testing.T) {
	// "aA"：小写 500/1000*12 = 6pt，大写 700/1000*12 = 8.4pt
	l := mustLayout(t, "aA", newTestSource(t), testStyle())

	want := 6.0 + 8.4
	if got := l.Dimensions.W.Pt(); !eq(got, want) {
		t.Fatalf("总宽度不符: got=%g want=%g", got, want)
	}
	if got := l.Dimensions.H.Pt(); !eq(got, 12) {
		t.Fatalf("高度应为字号: got=%g want=12", got)
	}
}

// 空输入得到空指令列表、零宽度、高度等于字号。
func TestEmptyText(t *testing.T) {
	l := mustLayout(t, "", newTestSource(t), testStyle())

	if len(l.Actions) != 0 {
		t.Fatalf("空输入不应产生指令: %#v", l.Actions)
	}
	if got := l.Dimensions.W.Pt(); !eq(got, 0) {
		t.Fatalf("空输入宽度应为 0: got=%g", got)
	}
	if got := l.Dimensions.H.Pt(); !eq(got, 12) {
		t.Fatalf("空输入高度应为字号: got=%g want=12", got)
	}
	if l.DebugRender {
		t.Fatalf("DebugRender 默认应为关闭")
	}
}

// 回退链中没有任何字体覆盖的字符必须中止整次布局，并指明该字符。
func TestNoSuitableFontAborts(t *testing.T) {
	l, err := LayoutText("ab汉cd", TextContext{Fonts: newTestSource(t), Style: testStyle()})
	if err == nil {
		t.Fatalf("期望 NoSuitableFontError，实际成功: %#v", l)
	}
	var nsf *NoSuitableFontError
	if !errors.As(err, &nsf) {
		t.Fatalf("错误类型不符: %T %v", err, err)
	}
	if nsf.Char != '汉' {
		t.Fatalf("错误字符不符: got=%q want=%q", nsf.Char, '汉')
	}
	if l != nil {
		t.Fatalf("失败时不得产生部分结果: %#v", l)
	}
}

// 首个回退标签不覆盖、第二个覆盖时，必须用第二个标签解析（按序尝试）。
func TestFallbackOrderSecondTagResolves(t *testing.T) {
	loader := font.NewLoader()
	loader.AddFace("latin", &stubFace{unitsPerEm: 1000, advance: 500, chars: "abc"}, "serif", "latin")
	loader.AddFace("cjk", &stubFace{unitsPerEm: 1000, advance: 1000, chars: "汉字"}, "serif", "cjk")

	style := &Style{FontSize: 10, Classes: []font.Class{"serif"}, Fallback: []font.Class{"latin", "cjk"}}
	l := mustLayout(t, "汉", loader, style)

	sf, ok := l.Actions[0].(SetFont)
	if !ok || sf.Handle != 1 {
		t.Fatalf("应解析到第二个回退标签的字体: %#v", l.Actions)
	}
}

// 多个字体都能覆盖时，先列出的回退标签胜出，而不是“更好”的匹配。
func TestFallbackFirstMatchWins(t *testing.T) {
	loader := font.NewLoader()
	loader.AddFace("greek", &stubFace{unitsPerEm: 1000, advance: 600, chars: "αβγ"}, "sans", "greek")
	loader.AddFace("symbol", &stubFace{unitsPerEm: 2048, advance: 900, chars: "αβγ∑"}, "sans", "symbol")

	style := &Style{FontSize: 10, Classes: []font.Class{"sans"}, Fallback: []font.Class{"symbol", "greek"}}
	l := mustLayout(t, "α", loader, style)

	sf, ok := l.Actions[0].(SetFont)
	if !ok || sf.Handle != 1 {
		t.Fatalf("symbol 标签在前，应解析到 symbol 字体: %#v", l.Actions)
	}
}

// 回退链为空时仅用首选类别尝试一次。
func TestEmptyFallbackUsesPrimaryClasses(t *testing.T) {
	loader := font.NewLoader()
	loader.AddFace("body", &stubFace{unitsPerEm: 1000, advance: 500, chars: "abc"}, "sans")

	style := &Style{FontSize: 10, Classes: []font.Class{"sans"}}
	l := mustLayout(t, "abc", loader, style)
	if len(l.Actions) != 2 {
		t.Fatalf("指令数不符: %#v", l.Actions)
	}

	// 覆盖不到的字符仍然报错
	if _, err := LayoutText("x", TextContext{Fonts: loader, Style: style}); err == nil {
		t.Fatalf("期望 NoSuitableFontError")
	}
}

// 选中的字体缺少字形度量属于协作者契约破坏，必须 panic 而不是返回错误。
func TestMissingGlyphMetricsPanics(t *testing.T) {
	loader := font.NewLoader()
	loader.AddFace("broken", &brokenFace{}, "sans")
	style := &Style{FontSize: 10, Classes: []font.Class{"sans"}}

	defer func() {
		if recover() == nil {
			t.Fatalf("期望 panic")
		}
	}()
	LayoutText("a", TextContext{Fonts: loader, Style: style})
}

// brokenFace 声称覆盖所有字符，却不提供 advance 度量。
type brokenFace struct{}

func (brokenFace) UnitsPerEm() uint16                     { return 1000 }
func (brokenFace) GlyphIndex(r rune) (font.GlyphID, bool) { return font.GlyphID(uint16(r)), true }
func (brokenFace) Advance(g font.GlyphID) (uint16, bool)  { return 0, false }
