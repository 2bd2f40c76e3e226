package logging

import (
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"regexp"
	"strings"
	"time"
)

// credentialParam matches the key query parameters the metadata providers
// send, so a failed request URL carried in an error never reaches a log
// file with the key intact.
var credentialParam = regexp.MustCompile(`(?i)\b(api_?key)=[^&\s"']+`)

const redacted = "<redacted>"

func redactCredentials(s string) string {
	if !strings.Contains(strings.ToLower(s), "key=") {
		return s
	}
	return credentialParam.ReplaceAllString(s, "${1}="+redacted)
}

// newJSONHandler builds the machine-readable handler used for the json
// console format and the logging.file mirror. Keys are shortened to ts,
// level and msg, times are UTC RFC3339, and sources are trimmed to
// file:line.
func newJSONHandler(w io.Writer, lvl *slog.LevelVar, addSource bool) slog.Handler {
	opts := slog.HandlerOptions{
		Level:     lvl,
		AddSource: addSource,
		ReplaceAttr: func(_ []string, attr slog.Attr) slog.Attr {
			switch attr.Key {
			case slog.TimeKey:
				attr.Key = "ts"
				if attr.Value.Kind() == slog.KindTime {
					attr.Value = slog.StringValue(attr.Value.Time().UTC().Format(time.RFC3339))
				}
				return attr
			case slog.LevelKey:
				attr.Key = "level"
				attr.Value = slog.StringValue(strings.ToLower(attr.Value.String()))
				return attr
			case slog.MessageKey:
				attr.Key = "msg"
				attr.Value = slog.StringValue(redactCredentials(attr.Value.String()))
				return attr
			case slog.SourceKey:
				if src, ok := attr.Value.Any().(*slog.Source); ok && src != nil {
					attr.Value = slog.StringValue(fmt.Sprintf("%s:%d", filepath.Base(src.File), src.Line))
				}
				return attr
			}
			switch attr.Value.Kind() {
			case slog.KindString:
				attr.Value = slog.StringValue(redactCredentials(attr.Value.String()))
			case slog.KindAny:
				if err, ok := attr.Value.Any().(error); ok && err != nil {
					attr.Value = slog.StringValue(redactCredentials(err.Error()))
				}
			}
			return attr
		},
	}
	return slog.NewJSONHandler(w, &opts)
}
