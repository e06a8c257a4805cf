package coursecheck

import (
	"bytes"
	"context"
	"log/slog"
	"net/http/cookiejar"
	"time"

	"coursewatch/lib/telemetry"
	"coursewatch/lib/textutil"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"
)

// Preflight probes task URLs over plain HTTP before any browser spins
// up, so dead links are skipped instead of burning a navigation timeout
// on both viewports.
type Preflight struct {
	http *resty.Client
}

func NewPreflight() *Preflight {
	client := resty.New()
	client.SetTimeout(time.Second * 30)
	jar, _ := cookiejar.New(nil)
	client.SetCookieJar(jar)
	client.GetClient().Transport = cloudflarebp.AddCloudFlareByPass(client.GetClient().Transport)
	client.SetHeader(
		"user-agent",
		"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36",
	)
	telemetry.InstrumentResty(client, "coursecheck/preflight")
	return &Preflight{http: client}
}

// Filter returns the tasks whose URL answered with a non-error status.
func (p *Preflight) Filter(ctx context.Context, tasks []Task) []Task {
	var reachable []Task
	for _, task := range tasks {
		res, err := p.http.R().SetContext(ctx).Get(task.URL)
		if err != nil {
			slog.WarnContext(ctx, "task url unreachable, skipping", "url", task.URL, "err", err)
			continue
		}
		if res.IsError() {
			slog.WarnContext(ctx, "task url answered with error, skipping",
				"url", task.URL, "status", res.StatusCode())
			continue
		}
		slog.DebugContext(ctx, "task url reachable",
			"url", task.URL, "title", pageTitle(res.Body()))
		reachable = append(reachable, task)
	}
	return reachable
}

func pageTitle(body []byte) string {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return ""
	}
	return textutil.CollapseWhitespace(doc.Find("title").First().Text())
}
