package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Selectors 描述一个站点的 CSS 选择器：容器、标题、正文，以及可选的链接
type Selectors struct {
	Container string `yaml:"container"`
	Title     string `yaml:"title"`
	Body      string `yaml:"body"`
	Link      string `yaml:"link,omitempty"`
}

// SourceConfig 一个新闻站点的抓取规则，启动后不再修改
type SourceConfig struct {
	Name      string    `yaml:"name"`
	URL       string    `yaml:"url"`
	BaseURL   string    `yaml:"baseUrl,omitempty"`
	Selectors Selectors `yaml:"selectors"`
}

type sourcesFile struct {
	Sources []SourceConfig `yaml:"sources"`
}

// Validate 检查必填字段
func (s SourceConfig) Validate() error {
	switch {
	case strings.TrimSpace(s.Name) == "":
		return fmt.Errorf("source name is empty")
	case strings.TrimSpace(s.URL) == "":
		return fmt.Errorf("source %s: url is empty", s.Name)
	case s.Selectors.Container == "" || s.Selectors.Title == "" || s.Selectors.Body == "":
		return fmt.Errorf("source %s: container/title/body selectors are required", s.Name)
	}
	return nil
}

// LoadSourcesFile 从 YAML 文件读取站点列表
func LoadSourcesFile(path string) ([]SourceConfig, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read sources file %s: %w", path, err)
	}
	return ParseSources(raw)
}

// ParseSources 解析 YAML 格式的站点列表，任一站点不合法则整体失败
func ParseSources(raw []byte) ([]SourceConfig, error) {
	var f sourcesFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse sources: %w", err)
	}
	if len(f.Sources) == 0 {
		return nil, fmt.Errorf("parse sources: no sources defined")
	}
	for _, s := range f.Sources {
		if err := s.Validate(); err != nil {
			return nil, fmt.Errorf("parse sources: %w", err)
		}
	}
	return f.Sources, nil
}

// DefaultSources 内置的五个印度新闻站点
func DefaultSources() []SourceConfig {
	return []SourceConfig{
		{
			Name: "Times of India",
			URL:  "https://timesofindia.indiatimes.com/briefs/india",
			Selectors: Selectors{
				Container: ".brief_box",
				Title:     ".brief_box h2",
				Body:      ".brief_box p",
			},
		},
		{
			Name: "NDTV",
			URL:  "https://www.ndtv.com/latest",
			Selectors: Selectors{
				Container: ".news_Itm-cont",
				Title:     ".newsHdng",
				Body:      ".newsCont",
			},
		},
		{
			Name:    "Hindustan Times",
			URL:     "https://www.hindustantimes.com/india-news",
			BaseURL: "https://www.hindustantimes.com",
			Selectors: Selectors{
				Container: ".storyCard, .hdg3",
				Title:     "h3 a, .hdg3 a",
				Body:      ".detail, .storyDetail, .sortDec, .storyParagraph",
				Link:      "h3 a, .hdg3 a",
			},
		},
		{
			Name:    "India Today",
			URL:     "https://www.indiatoday.in/india",
			BaseURL: "https://www.indiatoday.in",
			Selectors: Selectors{
				Container: "div.story__grid article",
				Title:     "h2.story__title a",
				Body:      "p.story__description",
				Link:      "h2.story__title a",
			},
		},
		{
			Name:    "The Hindu",
			URL:     "https://www.thehindu.com/latest-news/",
			BaseURL: "https://www.thehindu.com",
			Selectors: Selectors{
				Container: ".timeline-container .timeline-item",
				Title:     ".title a, h3 a",
				Body:      ".intro, .story-card-text",
				Link:      ".title a, h3 a",
			},
		},
	}
}
