package layout

// 该文件定义布局结果与渲染指令，供布局计算、渲染与调试 JSON 共用。

import (
	"encoding/json"

	"github.com/ByLCY/typeline/font"
)

// Action 是布局结果中的一条渲染指令，只有两个变体：SetFont 与 WriteText。
// 消费方应使用类型分支做穷尽匹配，不认识的变体按错误处理。
// 指令顺序有意义：按序重放必须精确复现排版时遇到的字体切换与文本写入。
type Action interface {
	isAction()
}

// SetFont 切换当前渲染字体，Size 为字号（pt）。
type SetFont struct {
	Handle font.Handle `json:"handle"`
	Size   float64     `json:"size"`
}

// WriteText 在当前字体下写入一段连续文本。
type WriteText struct {
	Text string `json:"text"`
}

func (SetFont) isAction()   {}
func (WriteText) isAction() {}

// MarshalJSON 为调试输出附加 op 判别字段。
func (a SetFont) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Op     string      `json:"op"`
		Handle font.Handle `json:"handle"`
		Size   float64     `json:"size"`
	}{"set-font", a.Handle, a.Size})
}

// MarshalJSON 为调试输出附加 op 判别字段。
func (a WriteText) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Op   string `json:"op"`
		Text string `json:"text"`
	}{"write-text", a.Text})
}

// Layout 是一次文本布局的最终结果：外接盒尺寸与有序的渲染指令。
type Layout struct {
	Dimensions  Size2D   `json:"dimensions"`
	Actions     []Action `json:"actions"`
	DebugRender bool     `json:"debugRender"`
}
