package handlers

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

// maxProxyBytes caps proxied PDFs at 25 MiB.
const maxProxyBytes = 25 << 20

var (
	errTooManyRedirects = errors.New("upstream redirected more than once")
	errRedirectBlocked  = errors.New("redirect target not allowed")
	errProxyTooLarge    = errors.New("pdf stream exceeded the size cap")
)

// ProxyPDF streams a remote newsletter PDF through the API origin so the
// front end can embed it without cross-origin trouble. Only https URLs on
// the configured hostname allow-list are fetched, and at most one redirect
// is followed after its target passes the same checks. Unlike the JSON API,
// failures here answer with a plain-text reason.
// GET /api/pdf-proxy?url=https://...
func (h *ApplicationHandler) ProxyPDF(c *fiber.Ctx) error {
	raw := c.Query("url")
	if raw == "" {
		return c.Status(fiber.StatusBadRequest).SendString("missing url parameter")
	}
	target, err := url.Parse(raw)
	if err != nil || target.Host == "" {
		return c.Status(fiber.StatusBadRequest).SendString("invalid url parameter")
	}
	if target.Scheme != "https" {
		return c.Status(fiber.StatusBadRequest).SendString("only https urls are proxied")
	}
	if !h.hostAllowed(target.Hostname()) {
		return c.Status(fiber.StatusForbidden).SendString("host not allowed")
	}

	resp, err := h.fetchPDF(target.String())
	if err != nil {
		h.Logger.WithFields(logrus.Fields{
			"url":   target.String(),
			"error": err.Error(),
		}).Warn("PDF proxy fetch failed")
		switch {
		case errors.Is(err, errRedirectBlocked):
			return c.Status(fiber.StatusForbidden).SendString("redirect target not allowed")
		case errors.Is(err, errTooManyRedirects):
			return c.Status(fiber.StatusBadGateway).SendString("too many redirects")
		}
		return c.Status(fiber.StatusBadGateway).SendString("upstream fetch failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return c.Status(fiber.StatusBadGateway).SendString(fmt.Sprintf("upstream answered %d", resp.StatusCode))
	}
	contentType := strings.ToLower(strings.TrimSpace(strings.Split(resp.Header.Get("Content-Type"), ";")[0]))
	if contentType != "application/pdf" {
		return c.Status(fiber.StatusUnsupportedMediaType).SendString("upstream did not return a PDF")
	}
	if resp.ContentLength > maxProxyBytes {
		return c.Status(fiber.StatusRequestEntityTooLarge).SendString("pdf exceeds the 25 MiB limit")
	}

	c.Set(fiber.HeaderContentType, "application/pdf")
	if resp.ContentLength >= 0 {
		return c.SendStream(&capReader{r: resp.Body, limit: maxProxyBytes}, int(resp.ContentLength))
	}
	return c.SendStream(&capReader{r: resp.Body, limit: maxProxyBytes})
}

// fetchPDF performs the upstream GET. The injected client is copied so its
// transport is kept while the redirect policy is replaced: one hop,
// re-validated, and nothing beyond that.
func (h *ApplicationHandler) fetchPDF(target string) (*http.Response, error) {
	client := *h.httpClient()
	redirects := 0
	client.CheckRedirect = func(req *http.Request, via []*http.Request) error {
		redirects++
		if redirects > 1 {
			return errTooManyRedirects
		}
		if req.URL.Scheme != "https" || !h.hostAllowed(req.URL.Hostname()) {
			return errRedirectBlocked
		}
		return nil
	}
	return client.Get(target)
}

func (h *ApplicationHandler) hostAllowed(host string) bool {
	host = strings.ToLower(host)
	for _, allowed := range h.Config.ProxyAllowedHosts {
		if host == allowed {
			return true
		}
	}
	return false
}

// capReader errors once more than limit bytes have passed through, which
// aborts the response mid-stream rather than forwarding an oversized body.
type capReader struct {
	r     io.Reader
	limit int64
	read  int64
}

func (cr *capReader) Read(p []byte) (int, error) {
	n, err := cr.r.Read(p)
	cr.read += int64(n)
	if cr.read > cr.limit {
		return n, errProxyTooLarge
	}
	return n, err
}
