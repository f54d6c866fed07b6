package render

import (
	"bytes"
	"fmt"

	"github.com/tdewolff/canvas"
	"github.com/tdewolff/canvas/renderers/pdf"

	"github.com/ByLCY/typeline/font"
	"github.com/ByLCY/typeline/layout"
)

// FaceData 按句柄提供字体的原始字节。*font.Loader 满足该接口。
type FaceData interface {
	FaceData(h font.Handle) ([]byte, bool)
}

// Renderer 通过 github.com/tdewolff/canvas 把布局结果重放为单页 PDF。
type Renderer struct {
	data     FaceData
	families map[font.Handle]*canvas.FontFamily
}

// NewRenderer 创建一个 PDF 渲染器，字体字节按句柄向 data 取用。
func NewRenderer(data FaceData) *Renderer {
	return &Renderer{
		data:     data,
		families: map[font.Handle]*canvas.FontFamily{},
	}
}

// Render 渲染布局结果并返回 PDF 字节。页面尺寸取布局外接盒（mm），
// 空文本会得到一张退化的小页面而不是错误。
func (r *Renderer) Render(l *layout.Layout) ([]byte, error) {
	if l == nil {
		return nil, fmt.Errorf("渲染结果为空")
	}

	width := l.Dimensions.W.Mm()
	height := l.Dimensions.H.Mm()
	if width <= 0 {
		width = 1
	}
	if height <= 0 {
		height = 1
	}

	c := canvas.New(width, height)
	ctx := canvas.NewContext(c)
	ctx.SetCoordSystem(canvas.CartesianIV) // 使坐标与布局保持左上角为原点

	sink := &canvasSink{renderer: r, ctx: ctx}
	if err := Replay(l.Actions, sink); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	writer := pdf.New(&buf, width, height, nil)
	c.RenderTo(writer)
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("写入 PDF 失败: %w", err)
	}
	return buf.Bytes(), nil
}

// canvasSink 实现 Sink：维护当前字体面与横向游标，逐段绘制文本。
type canvasSink struct {
	renderer *Renderer
	ctx      *canvas.Context
	face     *canvas.FontFace
	x        float64 // mm
}

func (s *canvasSink) SetFont(h font.Handle, size float64) error {
	family, err := s.renderer.family(h)
	if err != nil {
		return err
	}
	s.face = family.Face(size, canvas.Black, canvas.FontRegular, canvas.FontNormal)
	return nil
}

func (s *canvasSink) WriteText(text string) error {
	if s.face == nil {
		return fmt.Errorf("写入文本前缺少 SetFont 指令")
	}
	line := canvas.NewTextLine(s.face, text, canvas.Left)

	// 基线位置：行顶加上字体上升部
	baseline := s.face.Metrics().Ascent
	s.ctx.DrawText(s.x, baseline, line)
	s.x += s.face.TextWidth(text)
	return nil
}

func (r *Renderer) family(h font.Handle) (*canvas.FontFamily, error) {
	if family, ok := r.families[h]; ok {
		return family, nil
	}
	data, ok := r.data.FaceData(h)
	if !ok {
		return nil, fmt.Errorf("字体句柄 %d 没有可用的字体数据", h)
	}
	family := canvas.NewFontFamily(fmt.Sprintf("typeline-%d", h))
	if err := family.LoadFont(data, 0, canvas.FontRegular); err != nil {
		return nil, fmt.Errorf("加载字体句柄 %d 失败: %w", h, err)
	}
	r.families[h] = family
	return family, nil
}
