package untis

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"

	"golang.org/x/net/html/charset"
)

// ErrNotUntisDocument 根节点不是 <document>
var ErrNotUntisDocument = errors.New("不是 Untis 导出文件")

// Parse 解码 Untis XML，支持 ISO-8859-1 / windows-1252 等非 UTF-8 编码
func Parse(r io.Reader) (*Document, error) {
	dec := xml.NewDecoder(r)
	dec.CharsetReader = charset.NewReaderLabel

	var doc Document
	if err := dec.Decode(&doc); err != nil {
		var unexpected xml.UnmarshalError
		if errors.As(err, &unexpected) {
			return nil, fmt.Errorf("%w: %v", ErrNotUntisDocument, err)
		}
		return nil, fmt.Errorf("解析 XML 失败: %w", err)
	}
	return &doc, nil
}
