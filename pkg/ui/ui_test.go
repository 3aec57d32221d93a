// pkg/ui/ui_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: None
// PURPOSE: Test format parsing and rendering of reports in every format

package ui

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/arthur-debert/cyrelease/pkg/errors"
	"github.com/arthur-debert/cyrelease/pkg/packaging"
	"github.com/arthur-debert/cyrelease/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func sampleReport() *types.Report {
	return &types.Report{
		RunID:     "3f0c9a4e-0000-4000-8000-000000000000",
		Operation: "build",
		Tasks: []*types.TaskResult{
			{
				Dir:      "/work/app",
				Compiled: []string{"/work/app/a.py"},
				Failed:   []string{"/work/app/broken.py"},
				Duration: 1500 * time.Millisecond,
			},
			{
				Dir:      "/work/lib",
				Missing:  []string{"/work/lib/odd.py"},
				Duration: time.Second,
			},
		},
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"", FormatAuto, false},
		{"auto", FormatAuto, false},
		{"term", FormatTerminal, false},
		{"TEXT", FormatText, false},
		{"json", FormatJSON, false},
		{"yml", FormatYAML, false},
		{"xml", FormatAuto, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFormat(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			if tt.in != "" && tt.in != "TEXT" && tt.in != "yml" {
				assert.Equal(t, tt.in, got.String())
			}
		})
	}
}

func TestNewRenderer_AutoOnBufferIsText(t *testing.T) {
	var buf bytes.Buffer
	r, err := NewRenderer(FormatAuto, &buf)
	require.NoError(t, err)

	require.NoError(t, r.RenderMessage("hello"))
	assert.Equal(t, "hello\n", buf.String())
}

func TestTextRenderer_Report(t *testing.T) {
	var buf bytes.Buffer
	r, err := NewRenderer(FormatText, &buf)
	require.NoError(t, err)

	require.NoError(t, r.RenderResult(sampleReport()))
	out := buf.String()
	assert.Contains(t, out, "/work/app: compiled 1, skipped 0, missing 0, failed 1, removed 0 (1.5s)")
	assert.Contains(t, out, "  failed: /work/app/broken.py")
	assert.Contains(t, out, "  missing: /work/lib/odd.py")
	assert.Contains(t, out, "1 file(s) failed")
}

func TestTerminalRenderer_Report(t *testing.T) {
	var buf bytes.Buffer
	r, err := NewRenderer(FormatTerminal, &buf)
	require.NoError(t, err)

	require.NoError(t, r.RenderResult(sampleReport()))
	out := buf.String()
	assert.Contains(t, out, "/work/app")
	assert.Contains(t, out, "broken.py")
	assert.Contains(t, out, "1 file(s) failed")
}

func TestJSONRenderer_Report(t *testing.T) {
	var buf bytes.Buffer
	r, err := NewRenderer(FormatJSON, &buf)
	require.NoError(t, err)

	require.NoError(t, r.RenderResult(sampleReport()))

	var decoded types.Report
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, []string{"/work/app/broken.py"}, decoded.Failures())
}

func TestJSONRenderer_Error(t *testing.T) {
	var buf bytes.Buffer
	r, err := NewRenderer(FormatJSON, &buf)
	require.NoError(t, err)

	require.NoError(t, r.RenderError(errors.New(errors.ErrPackage, "toolchain failed")))

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "PACKAGE", decoded["code"])
}

func TestYAMLRenderer_Package(t *testing.T) {
	var buf bytes.Buffer
	r, err := NewRenderer(FormatYAML, &buf)
	require.NoError(t, err)

	require.NoError(t, r.RenderResult(&packaging.Result{
		Root:     "/proj",
		Assets:   []string{"pkg/a.so"},
		Manifest: "/proj/MANIFEST.in",
		Marker:   "/proj/pkg/__init__.py",
	}))

	var decoded map[string]interface{}
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "/proj/MANIFEST.in", decoded["manifest"])
	assert.Equal(t, []interface{}{"pkg/a.so"}, decoded["assets"])
}
