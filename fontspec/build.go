package fontspec

// 该文件把解析出的 AST 转换为字体注册项与布局样式。

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ByLCY/typeline/font"
	"github.com/ByLCY/typeline/layout"
)

// FaceSpec 描述一个声明的字体面：注册名、来源路径与类别标签。
type FaceSpec struct {
	Name    string
	Src     string
	Classes []font.Class
}

// Faces 按声明顺序返回文件中的字体面。顺序有意义：
// Loader 的匹配策略是注册顺序在前者优先。
func (d *Document) Faces() ([]FaceSpec, error) {
	var out []FaceSpec
	for _, decl := range d.Decls {
		if decl.Face == nil {
			continue
		}
		spec := FaceSpec{Name: decl.Face.Name}
		for _, a := range decl.Face.Block.Assignments {
			switch a.Key {
			case "src":
				if a.Value.String != nil {
					spec.Src = string(*a.Value.String)
				}
			case "classes":
				spec.Classes = toClasses(a.Value)
			}
		}
		if spec.Src == "" {
			return nil, fmt.Errorf("字体面 %s 缺少 src", spec.Name)
		}
		out = append(out, spec)
	}
	return out, nil
}

// Styles 返回按名字索引的布局样式。重复声明视为错误。
func (d *Document) Styles() (map[string]layout.Style, error) {
	out := map[string]layout.Style{}
	for _, decl := range d.Decls {
		if decl.Style == nil {
			continue
		}
		name := decl.Style.Name
		if _, ok := out[name]; ok {
			return nil, fmt.Errorf("样式 %s 重复声明", name)
		}

		style := layout.Style{FontSize: 12}
		for _, a := range decl.Style.Block.Assignments {
			switch a.Key {
			case "size":
				if a.Value.Number == nil {
					return nil, fmt.Errorf("样式 %s 的 size 必须是长度值", name)
				}
				size, err := parseSizePt(*a.Value.Number)
				if err != nil {
					return nil, fmt.Errorf("样式 %s: %w", name, err)
				}
				style.FontSize = size
			case "classes":
				style.Classes = toClasses(a.Value)
			case "fallback":
				style.Fallback = toClasses(a.Value)
			}
		}
		if style.FontSize <= 0 {
			return nil, fmt.Errorf("样式 %s 的字号必须为正", name)
		}
		out[name] = style
	}
	return out, nil
}

func toClasses(v *Value) []font.Class {
	if v == nil || v.List == nil {
		return nil
	}
	out := make([]font.Class, 0, len(v.List.Items))
	for _, item := range v.List.Items {
		out = append(out, font.Class(item))
	}
	return out
}

// parseSizePt 将带单位的长度解析为 pt，省略单位时按 pt 处理。
func parseSizePt(value string) (float64, error) {
	unit := ""
	for _, suffix := range []string{"pt", "mm", "cm", "in"} {
		if strings.HasSuffix(value, suffix) {
			unit = suffix
			break
		}
	}
	num := strings.TrimSuffix(value, unit)
	v, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return 0, fmt.Errorf("长度值 %s 无法解析", value)
	}
	switch unit {
	case "mm":
		return v * layout.MmToPt, nil
	case "cm":
		return v * 10 * layout.MmToPt, nil
	case "in":
		return v * 25.4 * layout.MmToPt, nil
	default: // pt 或无单位
		return v, nil
	}
}
