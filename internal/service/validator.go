package service

import (
	"context"
	"errors"

	"organizer/backend/internal/untis"
)

// ErrUnexpectedNode 校验器收到了不属于其节的节点
var ErrUnexpectedNode = errors.New("节点类型与校验器不匹配")

// ResourceValidator 单节校验器
//
// Validate 规范化一个节点并登记到导入上下文，Resolve 将上下文中的候选对象落库。
// 数据问题写入报告；返回的 error 只表示存储故障，会中止整个导入。
type ResourceValidator interface {
	Validate(ctx context.Context, ic *ImportContext, node untis.Node) error
	Resolve(ctx context.Context, ic *ImportContext, code string) error
}

// sectionFinisher 需要在整节遍历完之后汇总处理的校验器
type sectionFinisher interface {
	Finish(ctx context.Context, ic *ImportContext) error
}

// section 节名 → 节点提取 + 校验器
type section struct {
	name      string
	nodes     func(doc *untis.Document) []untis.Node
	validator ResourceValidator
}

func nodesOf[N untis.Node](items []N) []untis.Node {
	out := make([]untis.Node, len(items))
	for i, n := range items {
		out[i] = n
	}
	return out
}

// runSection 依次校验节内节点，然后执行汇总
func runSection(ctx context.Context, ic *ImportContext, doc *untis.Document, s section) error {
	for _, node := range s.nodes(doc) {
		if err := s.validator.Validate(ctx, ic, node); err != nil {
			return err
		}
	}
	if f, ok := s.validator.(sectionFinisher); ok {
		return f.Finish(ctx, ic)
	}
	return nil
}
