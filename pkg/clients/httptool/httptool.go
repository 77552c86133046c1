package httptool

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/has-1997/Telegram-Nutrition-Assistant/config"
	"github.com/has-1997/Telegram-Nutrition-Assistant/pkg/tools"
)

type HTTPClient struct {
	hc         http.Client
	clientName string
}

func NewHTTPClient(clientName string, timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		hc: http.Client{
			Timeout: timeout,
		},
		clientName: clientName,
	}
}

// DownloadFileWithContext 下载绝对 URL 到本地文件，流式写盘
func (hc *HTTPClient) DownloadFileWithContext(ctx context.Context, url, destPath string) error {
	now := time.Now()

	if config.GetInstance().GetBoolOrDefault(config.ClientsCommonRequestLog, false) {
		log.Debugf("%s: downloading %v", hc.clientName, url)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return errors.WithStack(err)
	}

	resp, err := hc.hc.Do(req)
	if err != nil {
		return errors.WithStack(err)
	}
	defer tools.ErrorWithPrintContext(resp.Body.Close, "close response body")

	if resp.StatusCode/100 != 2 {
		return fmt.Errorf("%s: download %v failed with status code %d", hc.clientName, url, resp.StatusCode)
	}

	if time.Since(now) > 800*time.Millisecond {
		log.Infof("TimeConsuming: download %v status code = %d took = %v", url, resp.StatusCode, time.Since(now))
	}

	out, err := os.Create(destPath)
	if err != nil {
		return errors.WithStack(err)
	}
	defer tools.ErrorWithPrintContext(out.Close, "close file %s", destPath)

	if _, err := io.Copy(out, resp.Body); err != nil {
		return errors.WithStack(err)
	}
	return nil
}
