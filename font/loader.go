package font

import (
	"fmt"
	"os"
	"sync"
)

// Loader 是 Source 的默认实现：维护一组带类别标签的已加载字体，
// 按注册顺序解析查询。内部用互斥锁串行化解析，
// 多个并发的布局调用可以安全地共享同一个 Loader。
type Loader struct {
	mu      sync.Mutex
	entries []*loaderEntry
}

type loaderEntry struct {
	name    string
	classes map[Class]bool
	face    Face
	data    []byte // 原始字体字节，渲染器按句柄取用；测试注入的 Face 可以为空
}

var _ Source = (*Loader)(nil)

// NewLoader 创建一个空的字体加载器。
func NewLoader() *Loader {
	return &Loader{}
}

// AddFace 注册一个已构建的 Face（通常用于测试或自定义度量来源）。
func (l *Loader) AddFace(name string, face Face, classes ...Class) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, &loaderEntry{
		name:    name,
		classes: classSet(classes),
		face:    face,
	})
}

// AddBytes 解析 TTF/OTF 字节数据并注册为一个带类别标签的字体。
func (l *Loader) AddBytes(name string, data []byte, classes ...Class) error {
	face, err := ParseFace(data)
	if err != nil {
		return fmt.Errorf("字体 %s: %w", name, err)
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, &loaderEntry{
		name:    name,
		classes: classSet(classes),
		face:    face,
		data:    data,
	})
	return nil
}

// AddFile 从磁盘读取字体文件并注册。
func (l *Loader) AddFile(name, path string, classes ...Class) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("读取字体文件 %s 失败: %w", path, err)
	}
	return l.AddBytes(name, data, classes...)
}

// Resolve 实现 Source。匹配策略：候选字体必须带有查询中的全部类别标签，
// 且覆盖查询中的全部字符；多个候选时注册顺序在前者优先。
func (l *Loader) Resolve(q Query) (Face, Handle, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	for i, e := range l.entries {
		if !e.matches(q) {
			continue
		}
		return e.face, Handle(i), true
	}
	return nil, NoHandle, false
}

// FaceData 返回句柄对应字体的原始字节，供渲染器构建绘制用的字体面。
// 通过 AddFace 注入的字体没有原始字节，返回 false。
func (l *Loader) FaceData(h Handle) ([]byte, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if h < 0 || int(h) >= len(l.entries) {
		return nil, false
	}
	data := l.entries[h].data
	if len(data) == 0 {
		return nil, false
	}
	return data, true
}

// FaceName 返回句柄对应字体的注册名，仅用于诊断输出。
func (l *Loader) FaceName(h Handle) string {
	l.mu.Lock()
	defer l.mu.Unlock()
	if h < 0 || int(h) >= len(l.entries) {
		return ""
	}
	return l.entries[h].name
}

func (e *loaderEntry) matches(q Query) bool {
	for _, c := range q.Classes {
		if !e.classes[c] {
			return false
		}
	}
	for _, r := range q.Chars {
		if _, ok := e.face.GlyphIndex(r); !ok {
			return false
		}
	}
	return true
}

func classSet(classes []Class) map[Class]bool {
	set := make(map[Class]bool, len(classes))
	for _, c := range classes {
		set[c] = true
	}
	return set
}
