package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/ByLCY/typeline/binding"
	"github.com/ByLCY/typeline/font"
	"github.com/ByLCY/typeline/fontspec"
	"github.com/ByLCY/typeline/layout"
	"github.com/ByLCY/typeline/render"
)

func main() {
	specPath := flag.String("fonts", "examples/demo.fonts", "字体描述文件路径")
	styleName := flag.String("style", "body", "使用的样式名")
	text := flag.String("text", "", "要排版的文本")
	sizeOverride := flag.Float64("size", 0, "覆盖样式字号（pt，0 表示使用样式默认值）")
	output := flag.String("out", "output/text.pdf", "PDF 输出路径（留空则跳过渲染）")
	debug := flag.String("debug", "", "布局调试 JSON 输出路径")
	dataJSON := flag.String("data", "", "绑定到文本占位符的 JSON 数据")
	flag.Parse()

	var inputData any
	if *dataJSON != "" {
		if err := json.Unmarshal([]byte(*dataJSON), &inputData); err != nil {
			log.Fatalf("解析 data JSON 失败: %v", err)
		}
	}

	if err := run(*specPath, *styleName, *text, *output, *debug, *sizeOverride, inputData); err != nil {
		log.Fatalf("排版失败: %v", err)
	}
	if *output != "" {
		fmt.Printf("已生成 PDF：%s\n", *output)
	}
}

// run 串联字体描述解析、字体加载、文本布局与渲染。
func run(specPath, styleName, text, outputPath, debugPath string, sizeOverride float64, data any) error {
	file, err := os.Open(specPath)
	if err != nil {
		return fmt.Errorf("无法打开字体描述文件 %s: %w", specPath, err)
	}
	defer file.Close()

	doc, err := fontspec.Parse(file)
	if err != nil {
		return fmt.Errorf("解析字体描述失败: %w", err)
	}
	faces, err := doc.Faces()
	if err != nil {
		return err
	}
	styles, err := doc.Styles()
	if err != nil {
		return err
	}

	loader := font.NewLoader()
	baseDir := filepath.Dir(specPath)
	for _, f := range faces {
		path := f.Src
		if !filepath.IsAbs(path) {
			path = filepath.Join(baseDir, path)
		}
		if err := loader.AddFile(f.Name, path, f.Classes...); err != nil {
			return err
		}
	}

	style, ok := styles[styleName]
	if !ok {
		return fmt.Errorf("样式 %s 未定义", styleName)
	}
	if sizeOverride > 0 {
		style.FontSize = sizeOverride
	}

	if data != nil {
		text = binding.Interpolate(text, data)
	}

	result, err := layout.LayoutText(text, layout.TextContext{Fonts: loader, Style: &style})
	if err != nil {
		return fmt.Errorf("布局计算失败: %w", err)
	}

	if debugPath != "" {
		if err := os.MkdirAll(filepath.Dir(debugPath), 0o755); err != nil {
			return fmt.Errorf("创建调试目录失败: %w", err)
		}
		if err := layout.WriteDebugJSON(result, debugPath); err != nil {
			return fmt.Errorf("输出调试 JSON 失败: %w", err)
		}
	}

	if outputPath == "" {
		return nil
	}
	pdfBytes, err := render.NewRenderer(loader).Render(result)
	if err != nil {
		return fmt.Errorf("渲染 PDF 失败: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return fmt.Errorf("创建输出目录失败: %w", err)
	}
	if err := os.WriteFile(outputPath, pdfBytes, 0o644); err != nil {
		return fmt.Errorf("写入 PDF 文件失败: %w", err)
	}
	return nil
}
