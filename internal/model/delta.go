package model

// ── 增量标记 ──
//
//	(absent) --create--> new
//	new | "" | removed --未变化--> ""
//	new | "" | removed --发生变化--> changed
//	changed --再次导入--> ""（changed 只保留一次导入）
const (
	DeltaNone    = ""
	DeltaNew     = "new"
	DeltaChanged = "changed"
	DeltaRemoved = "removed"
)

// NextDelta 计算再次导入时的增量标记。
// dirty 表示该行需要写回：属性变化或标记本身发生迁移。
// 已是 changed 的行再次变化（如授课形式 B 改为 C）时标记回到 ""，
// 新值照常写回，但下游无法从标记上察觉这第二次变化。
func NextDelta(current string, changed bool) (next string, dirty bool) {
	switch {
	case current == DeltaChanged:
		next = DeltaNone
	case changed:
		next = DeltaChanged
	default:
		next = DeltaNone
	}
	return next, changed || next != current
}
