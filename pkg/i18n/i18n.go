// Package i18n 将导入报告的消息 ID 渲染为本地化文本
package i18n

import (
	"embed"
	"fmt"
	"path"

	"github.com/BurntSushi/toml"
	"github.com/iota-uz/go-i18n/v2/i18n"
	"golang.org/x/text/language"
)

//go:embed locales/*.toml
var localeFS embed.FS

// Translator 消息翻译接口
type Translator interface {
	T(messageID string, data map[string]any) string
}

// Bundle 已加载全部语言文件的消息包
type Bundle struct {
	bundle   *i18n.Bundle
	fallback string
}

// 支持的语言
var supported = map[string]bool{"en": true, "zh": true}

// Supported 判断语言是否有对应的语言文件
func Supported(locale string) bool { return supported[locale] }

// NewBundle 加载内嵌的语言文件，fallback 为请求未指定语言时的默认值
func NewBundle(fallback string) (*Bundle, error) {
	b := i18n.NewBundle(language.English)
	b.RegisterUnmarshalFunc("toml", toml.Unmarshal)

	entries, err := localeFS.ReadDir("locales")
	if err != nil {
		return nil, fmt.Errorf("读取语言文件目录失败: %w", err)
	}
	for _, e := range entries {
		data, err := localeFS.ReadFile(path.Join("locales", e.Name()))
		if err != nil {
			return nil, fmt.Errorf("读取语言文件 %s 失败: %w", e.Name(), err)
		}
		if _, err := b.ParseMessageFileBytes(data, e.Name()); err != nil {
			return nil, fmt.Errorf("解析语言文件 %s 失败: %w", e.Name(), err)
		}
	}

	if !Supported(fallback) {
		fallback = "en"
	}
	return &Bundle{bundle: b, fallback: fallback}, nil
}

// Translator 返回指定语言的翻译器；不支持的语言回退到默认语言
func (b *Bundle) Translator(locale string) Translator {
	if !Supported(locale) {
		locale = b.fallback
	}
	return &localizer{l: i18n.NewLocalizer(b.bundle, locale, b.fallback)}
}

type localizer struct {
	l *i18n.Localizer
}

// T 找不到消息时返回消息 ID 本身
func (t *localizer) T(messageID string, data map[string]any) string {
	s, err := t.l.Localize(&i18n.LocalizeConfig{
		MessageID:    messageID,
		TemplateData: data,
	})
	if err != nil {
		return messageID
	}
	return s
}

// Identity 不做翻译，直接返回消息 ID
type Identity struct{}

// T 返回消息 ID
func (Identity) T(messageID string, _ map[string]any) string { return messageID }
