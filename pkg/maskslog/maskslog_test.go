// Copyright (c) 2024 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package maskslog

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

type logRecord struct {
	Message          string `json:"msg"`
	Name             string `json:"name"`
	ConnectionString string `json:"connection_string"`
	Entry            struct {
		Name             string `json:"name"`
		ConnectionString string `json:"connection_string"`
	} `json:"entry"`
}

func decodeRecord(t *testing.T, buf *bytes.Buffer) (logRecord, bool) {
	t.Helper()

	var record logRecord
	err := json.Unmarshal(buf.Bytes(), &record)
	if !assert.Nil(t, err, buf.String()) {
		return record, false
	}
	return record, true
}

func TestHandler_Handle(t *testing.T) {
	t.Run("will not mask attrs", func(t *testing.T) {
		testCases := []struct {
			Name string
			Opts []Option
		}{
			{
				Name: "if no masking funcs are registered",
			},
			{
				Name: "if the attr key does not match a masking func",
				Opts: []Option{Attr("password", AnonymousStringAttr)},
			},
		}

		for _, testCase := range testCases {
			t.Run(testCase.Name, func(t *testing.T) {
				var buf bytes.Buffer
				h := NewHandler(slog.NewJSONHandler(&buf, nil), testCase.Opts...)

				logger := slog.New(h)
				logger.Info("set connection string", slog.String("connection_string", "host=localhost"))

				record, ok := decodeRecord(t, &buf)
				if !ok {
					return
				}
				if !assert.Equal(t, "set connection string", record.Message) {
					return
				}
				if !assert.Equal(t, "host=localhost", record.ConnectionString) {
					return
				}
			})
		}
	})

	t.Run("will mask attrs", func(t *testing.T) {
		t.Run("if the attr key matches a masking func", func(t *testing.T) {
			var buf bytes.Buffer
			h := NewHandler(
				slog.NewJSONHandler(&buf, nil),
				Attr("connection_string", AnonymousStringAttr),
			)

			logger := slog.New(h)
			logger.Info(
				"set connection string",
				slog.String("name", "default"),
				slog.String("connection_string", "host=localhost;password=secret"),
			)

			record, ok := decodeRecord(t, &buf)
			if !ok {
				return
			}
			if !assert.Equal(t, "default", record.Name) {
				return
			}
			if !assert.Equal(t, "****", record.ConnectionString) {
				return
			}
		})

		t.Run("if the attr is nested in a group", func(t *testing.T) {
			var buf bytes.Buffer
			h := NewHandler(
				slog.NewJSONHandler(&buf, nil),
				Attr("connection_string", AnonymousStringAttr),
			)

			logger := slog.New(h)
			logger.Info(
				"set connection string",
				slog.Group(
					"entry",
					slog.String("name", "default"),
					slog.String("connection_string", "host=localhost;password=secret"),
				),
			)

			record, ok := decodeRecord(t, &buf)
			if !ok {
				return
			}
			if !assert.Equal(t, "default", record.Entry.Name) {
				return
			}
			if !assert.Equal(t, "****", record.Entry.ConnectionString) {
				return
			}
		})
	})

	t.Run("will mask the message", func(t *testing.T) {
		t.Run("if a message masking func is registered", func(t *testing.T) {
			var buf bytes.Buffer
			h := NewHandler(
				slog.NewJSONHandler(&buf, nil),
				Message(func(s string) string {
					return "****"
				}),
			)

			logger := slog.New(h)
			logger.Info("host=localhost")

			record, ok := decodeRecord(t, &buf)
			if !ok {
				return
			}
			if !assert.Equal(t, "****", record.Message) {
				return
			}
		})
	})
}

func TestHandler_WithAttrs(t *testing.T) {
	t.Run("will not mask attrs", func(t *testing.T) {
		t.Run("if none of the keys match a registered masking func", func(t *testing.T) {
			var buf bytes.Buffer
			var h slog.Handler = NewHandler(
				slog.NewJSONHandler(&buf, nil),
				Attr("password", AnonymousStringAttr),
			)
			h = h.WithAttrs([]slog.Attr{slog.String("connection_string", "host=localhost")})

			logger := slog.New(h)
			logger.Info("hello world")

			record, ok := decodeRecord(t, &buf)
			if !ok {
				return
			}
			if !assert.Equal(t, "host=localhost", record.ConnectionString) {
				return
			}
		})
	})

	t.Run("will mask attrs", func(t *testing.T) {
		t.Run("if any of the keys match a registered masking func", func(t *testing.T) {
			var buf bytes.Buffer
			var h slog.Handler = NewHandler(
				slog.NewJSONHandler(&buf, nil),
				Attr("connection_string", AnonymousStringAttr),
			)
			h = h.WithAttrs([]slog.Attr{slog.String("connection_string", "host=localhost")})

			logger := slog.New(h)
			logger.Info("hello world")

			record, ok := decodeRecord(t, &buf)
			if !ok {
				return
			}
			if !assert.Equal(t, "****", record.ConnectionString) {
				return
			}
		})

		t.Run("if they are logged after attrs were added", func(t *testing.T) {
			var buf bytes.Buffer
			var h slog.Handler = NewHandler(
				slog.NewJSONHandler(&buf, nil),
				Attr("connection_string", AnonymousStringAttr),
			)
			h = h.WithAttrs([]slog.Attr{slog.String("name", "default")})

			logger := slog.New(h)
			logger.Info("hello world", slog.String("connection_string", "host=localhost"))

			record, ok := decodeRecord(t, &buf)
			if !ok {
				return
			}
			if !assert.Equal(t, "default", record.Name) {
				return
			}
			if !assert.Equal(t, "****", record.ConnectionString) {
				return
			}
		})
	})
}

func TestHandler_WithGroup(t *testing.T) {
	t.Run("will not mask entire group", func(t *testing.T) {
		t.Run("if the group name matches a registered masking func", func(t *testing.T) {
			var buf bytes.Buffer
			var h slog.Handler = NewHandler(
				slog.NewJSONHandler(&buf, nil),
				Attr("entry", AnonymousStringAttr),
			)
			h = h.WithGroup("entry")

			logger := slog.New(h)
			logger.Info("hello world", slog.String("name", "default"))

			record, ok := decodeRecord(t, &buf)
			if !ok {
				return
			}
			if !assert.Equal(t, "default", record.Entry.Name) {
				return
			}
		})
	})

	t.Run("will mask sub-attrs", func(t *testing.T) {
		t.Run("if any of the keys match a registered masking func", func(t *testing.T) {
			var buf bytes.Buffer
			var h slog.Handler = NewHandler(
				slog.NewJSONHandler(&buf, nil),
				Attr("connection_string", AnonymousStringAttr),
			)
			h = h.WithGroup("entry")

			logger := slog.New(h)
			logger.Info("hello world", slog.String("connection_string", "host=localhost"))

			record, ok := decodeRecord(t, &buf)
			if !ok {
				return
			}
			if !assert.Equal(t, "****", record.Entry.ConnectionString) {
				return
			}
		})
	})
}
