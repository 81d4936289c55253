package views

import (
	"errors"
	"fmt"

	"beyt_client/api"
	"beyt_client/i18n"
)

// errorText turns a fetch error into the line shown in the feed. Transport
// failures and server rejections get localized copy; anything else falls back
// to the raw error.
func errorText(msgs *i18n.Bundle, err error) string {
	if err == nil {
		return ""
	}

	var netErr *api.NetworkError
	if errors.As(err, &netErr) {
		return msgs.T("errors.network")
	}

	var httpErr *api.HTTPError
	if errors.As(err, &httpErr) {
		return fmt.Sprintf("%s (%d)", msgs.T("errors.server"), httpErr.Status)
	}

	return err.Error()
}
