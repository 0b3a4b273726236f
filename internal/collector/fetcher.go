package collector

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/LJTian/NewsPulse/internal/config"
	"github.com/gocolly/colly/v2"
)

const (
	defaultFetchTimeout = 8 * time.Second
	defaultMaxRedirects = 5
	fetchMaxBodyBytes   = 4 << 20 // 4MB，新闻列表页足够
	browserUserAgent    = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
)

// 模拟浏览器请求头，降低被站点拦截的概率；Accept-Encoding 交给 transport 处理以便自动解压
var browserHeaders = map[string]string{
	"Accept":                    "text/html,application/xhtml+xml,application/xml;q=0.9,image/webp,image/apng,*/*;q=0.8",
	"Accept-Language":           "en-US,en;q=0.9",
	"Cache-Control":             "no-cache",
	"Pragma":                    "no-cache",
	"DNT":                       "1",
	"Upgrade-Insecure-Requests": "1",
	"Sec-Ch-Ua":                 `"Not_A Brand";v="8", "Chromium";v="120", "Google Chrome";v="120"`,
	"Sec-Ch-Ua-Mobile":          "?0",
	"Sec-Ch-Ua-Platform":        `"Windows"`,
	"Sec-Fetch-Dest":            "document",
	"Sec-Fetch-Mode":            "navigate",
	"Sec-Fetch-Site":            "none",
	"Sec-Fetch-User":            "?1",
}

// Fetcher 抽象单个站点页面的下载
type Fetcher interface {
	Fetch(ctx context.Context, src config.SourceConfig) ([]byte, error)
}

// FetchError 单个站点抓取失败的原因，不会影响其它站点
type FetchError struct {
	Source     string
	URL        string
	StatusCode int
	Reason     string
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("fetch %s (%s): %s (status %d)", e.Source, e.URL, e.Reason, e.StatusCode)
	}
	return fmt.Sprintf("fetch %s (%s): %s", e.Source, e.URL, e.Reason)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

var errTooManyRedirects = errors.New("too many redirects")

// HTTPFetcher 基于 colly 的页面下载器，每次抓取新建一个 collector，互不共享状态
type HTTPFetcher struct {
	Timeout          time.Duration
	MaxRedirects     int
	RespectRobotsTxt bool
}

func NewHTTPFetcher(timeout time.Duration, maxRedirects int, respectRobots bool) *HTTPFetcher {
	return &HTTPFetcher{
		Timeout:          timeout,
		MaxRedirects:     maxRedirects,
		RespectRobotsTxt: respectRobots,
	}
}

// Fetch 发起一次 GET，只有 2xx 视为成功；其它情况统一返回 *FetchError
func (f *HTTPFetcher) Fetch(ctx context.Context, src config.SourceConfig) ([]byte, error) {
	fail := func(status int, reason string, err error) *FetchError {
		return &FetchError{Source: src.Name, URL: src.URL, StatusCode: status, Reason: reason, Err: err}
	}

	if err := ctx.Err(); err != nil {
		return nil, fail(0, "canceled before request", err)
	}

	timeout := f.Timeout
	if timeout <= 0 {
		timeout = defaultFetchTimeout
	}
	maxRedirects := f.MaxRedirects
	if maxRedirects <= 0 {
		maxRedirects = defaultMaxRedirects
	}

	c := colly.NewCollector(
		colly.UserAgent(browserUserAgent),
		colly.AllowURLRevisit(),
	)
	c.MaxBodySize = fetchMaxBodyBytes
	// 非 200 的响应也交给 OnResponse，是否成功由下面统一按 2xx 判断
	c.ParseHTTPErrorResponse = true
	c.WithTransport(&ctxTransport{ctx: ctx, base: http.DefaultTransport})
	c.IgnoreRobotsTxt = !f.RespectRobotsTxt
	c.SetRequestTimeout(timeout)
	c.SetRedirectHandler(func(req *http.Request, via []*http.Request) error {
		if len(via) > maxRedirects {
			return fmt.Errorf("%w (limit %d)", errTooManyRedirects, maxRedirects)
		}
		return nil
	})

	var (
		body   []byte
		status int
	)

	c.OnRequest(func(r *colly.Request) {
		if ctx.Err() != nil {
			r.Abort()
			return
		}
		for k, v := range browserHeaders {
			r.Headers.Set(k, v)
		}
	})
	c.OnResponse(func(r *colly.Response) {
		status = r.StatusCode
		if r.StatusCode >= 200 && r.StatusCode < 300 {
			body = r.Body
		}
	})
	c.OnError(func(r *colly.Response, err error) {
		if r != nil {
			status = r.StatusCode
		}
	})

	err := c.Visit(src.URL)
	switch {
	case ctx.Err() != nil:
		return nil, fail(status, "canceled", ctx.Err())
	case err != nil && errors.Is(err, errTooManyRedirects):
		return nil, fail(status, "redirect limit exceeded", err)
	case err != nil && status != 0:
		return nil, fail(status, "unexpected status", err)
	case err != nil:
		return nil, fail(0, err.Error(), err)
	case status < 200 || status >= 300:
		return nil, fail(status, "unexpected status", nil)
	case body == nil:
		return nil, fail(status, "empty response", nil)
	}
	return body, nil
}

// ctxTransport 把抓取调用方的 ctx 挂到每个请求上，取消时正在进行的请求立即中断；
// 请求自身的超时 ctx 仍然保留
type ctxTransport struct {
	ctx  context.Context
	base http.RoundTripper
}

func (t *ctxTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	ctx, cancel := context.WithCancel(req.Context())
	stop := context.AfterFunc(t.ctx, cancel)
	release := func() {
		stop()
		cancel()
	}

	resp, err := t.base.RoundTrip(req.WithContext(ctx))
	if err != nil {
		release()
		return nil, err
	}
	// body 读完关闭后才能释放，否则读取过程中会被取消
	resp.Body = &releaseOnClose{ReadCloser: resp.Body, release: release}
	return resp, nil
}

type releaseOnClose struct {
	io.ReadCloser
	release func()
}

func (b *releaseOnClose) Close() error {
	err := b.ReadCloser.Close()
	b.release()
	return err
}
