package collector

import (
	"bytes"
	"fmt"
	"net/url"
	"strings"

	"github.com/LJTian/NewsPulse/internal/config"
	"github.com/PuerkitoBio/goquery"
)

// Candidate 单个容器中抽取出的原始标题与正文，尚未做分类/情感等加工
type Candidate struct {
	Title string
	Body  string
	URL   string
}

// Extract 按站点的选择器从 HTML 中抽取候选条目，最多 limit 个容器（limit<=0 不限制）。
// 标题和正文都为空的容器直接跳过；子选择器匹配不到时同样跳过，不返回错误。
func Extract(html []byte, sel config.Selectors, baseURL string, limit int) ([]Candidate, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}
	if sel.Container == "" {
		return nil, nil
	}

	containers := doc.Find(sel.Container)
	out := make([]Candidate, 0, min(containers.Length(), max(limit, 0)))

	containers.EachWithBreak(func(i int, s *goquery.Selection) bool {
		if limit > 0 && i >= limit {
			return false
		}
		c, ok := extractOne(s, sel, baseURL)
		if ok {
			out = append(out, c)
		}
		return true
	})
	return out, nil
}

func extractOne(s *goquery.Selection, sel config.Selectors, baseURL string) (Candidate, bool) {
	title := cleanText(s.Find(sel.Title).Text())
	body := ""
	if sel.Body != "" {
		body = cleanText(s.Find(sel.Body).Text())
	}
	if title == "" && body == "" {
		return Candidate{}, false
	}

	c := Candidate{Title: title, Body: body}
	if sel.Link != "" {
		if href, ok := s.Find(sel.Link).First().Attr("href"); ok {
			c.URL = ResolveLink(baseURL, href)
		}
	}
	return c, true
}

// ResolveLink 相对链接按 baseURL 拼接（去掉一个前导斜杠），绝对链接原样返回
func ResolveLink(baseURL, href string) string {
	href = strings.TrimSpace(href)
	if href == "" || strings.HasPrefix(href, "#") || strings.HasPrefix(strings.ToLower(href), "javascript:") {
		return ""
	}
	if u, err := url.Parse(href); err == nil && u.IsAbs() {
		return href
	}
	if strings.HasPrefix(href, "//") {
		scheme := "https"
		if b, err := url.Parse(baseURL); err == nil && b.Scheme != "" {
			scheme = b.Scheme
		}
		return scheme + ":" + href
	}
	if baseURL == "" {
		return ""
	}
	return strings.TrimSuffix(baseURL, "/") + "/" + strings.TrimPrefix(href, "/")
}

// cleanText 合并多个匹配节点时可能产生的多余空白
func cleanText(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
