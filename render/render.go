package render

import (
	"fmt"

	"github.com/ByLCY/typeline/font"
	"github.com/ByLCY/typeline/layout"
)

// Sink 消费布局指令：SetFont 切换当前字体，WriteText 在当前字体下写入文本。
// 实现方需要自行维护“当前字体”状态。
type Sink interface {
	SetFont(h font.Handle, size float64) error
	WriteText(text string) error
}

// Replay 按序把布局指令重放到 sink 上。指令集是封闭的，
// 未知的指令类型意味着布局结果损坏，按错误处理。
func Replay(actions []layout.Action, sink Sink) error {
	for _, action := range actions {
		switch a := action.(type) {
		case layout.SetFont:
			if err := sink.SetFont(a.Handle, a.Size); err != nil {
				return err
			}
		case layout.WriteText:
			if err := sink.WriteText(a.Text); err != nil {
				return err
			}
		default:
			return fmt.Errorf("未知的布局指令类型 %T", action)
		}
	}
	return nil
}
