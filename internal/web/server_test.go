package web

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rajkumarmali01/Employee-Analysis/internal/config"
	"github.com/rajkumarmali01/Employee-Analysis/internal/core"
	_ "github.com/rajkumarmali01/Employee-Analysis/internal/core/profiles"
)

const (
	groupRoster = "Employee Code,Name of Employee,Employment Status,Employee Type,Location Name," +
		"Group Date of Joining,Date of Separation,Department 1.0,Department 1.1,Location Code,Location City\n" +
		"E1,Asha,Active,Permanent,GIFT City Ahmedabad,2024-12-01,,ABEX - GCC,Ops,AMD1,Ahmedabad\n" +
		"E2,Ravi,Active,Permanent,Pune,2019-05-06,,Finance,Ops,PUN1,Pune\n"
	groupSeating = "Employee ID,Building Name,Floor,Wing,WS Number,WS Type\n" +
		"E1,Tower A,3,North,WS-12,Fixed\n"
)

func newTestServer(t *testing.T, mutate func(*config.Config)) *Server {
	t.Helper()
	cfg, err := config.LoadFrom(func(string) (string, bool) { return "", false })
	require.NoError(t, err)
	cfg.Rate.Enabled = false
	if mutate != nil {
		mutate(cfg)
	}

	svc, err := core.NewService(core.ServiceConfig{
		DefaultProfile: cfg.Pipeline.DefaultProfile,
		MaxConcurrent:  cfg.Upload.MaxConcurrent,
		MaxWait:        cfg.Upload.MaxWaitTime,
		Timeout:        cfg.Upload.Timeout,
	})
	require.NoError(t, err)

	s := NewServer(svc, cfg)
	t.Cleanup(func() { _ = s.Shutdown(context.Background()) })
	return s
}

// uploadRequest builds a multipart POST. Empty file contents are omitted.
func uploadRequest(t *testing.T, target, main, seating, profile string) *http.Request {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	for field, content := range map[string]string{fieldMain: main, fieldSeating: seating} {
		if content == "" {
			continue
		}
		fw, err := mw.CreateFormFile(field, field+".csv")
		require.NoError(t, err)
		_, err = fw.Write([]byte(content))
		require.NoError(t, err)
	}
	if profile != "" {
		require.NoError(t, mw.WriteField(fieldProfile, profile))
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, target, &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func serve(s *Server, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) ErrorResponse {
	t.Helper()
	var resp ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	return resp
}

func TestIndex(t *testing.T) {
	s := newTestServer(t, nil)

	rec := serve(s, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `action="/process"`)
	assert.Contains(t, body, `name="main"`)
	assert.Contains(t, body, `name="seating"`)
	assert.Contains(t, body, "elcm-city")
	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
	assert.NotEmpty(t, rec.Header().Get("Content-Security-Policy"))
}

func TestListProfiles(t *testing.T) {
	s := newTestServer(t, nil)

	rec := serve(s, httptest.NewRequest(http.MethodGet, "/api/profiles", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var resp ProfilesResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "elcm-group", resp.Default)
	assert.Len(t, resp.Profiles, 3)
}

func TestStatus(t *testing.T) {
	s := newTestServer(t, nil)

	rec := serve(s, httptest.NewRequest(http.MethodGet, "/api/status", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var status core.LimiterStatus
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&status))
	assert.Equal(t, core.LimiterStatus{Active: 0, Available: 4, MaxConcurrent: 4}, status)
}

func TestProcessAPI(t *testing.T) {
	s := newTestServer(t, nil)

	rec := serve(s, uploadRequest(t, "/api/process", groupRoster, groupSeating, ""))

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var resp ProcessResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))

	assert.NotEmpty(t, resp.RunID)
	assert.Equal(t, "elcm-group", resp.Profile)
	assert.True(t, resp.Joined)
	assert.Equal(t, core.FileWithSeating, resp.FileName)
	assert.Equal(t, 2, resp.TotalRows)
	require.Len(t, resp.Rows, 2)
	assert.Contains(t, resp.Columns, core.ColumnDepartment)
	assert.Contains(t, resp.Columns, "Building Name")
	assert.Equal(t, &core.JoinReport{Matched: 1, Unmatched: 1}, resp.Join)
}

func TestProcessAPI_NamedProfile(t *testing.T) {
	s := newTestServer(t, nil)

	rec := serve(s, uploadRequest(t, "/api/process", groupRoster, "", "elcm-city"))

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	var resp ProcessResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "elcm-city", resp.Profile)
	require.True(t, resp.Diagnostics.HasErrors())
	assert.Equal(t, "VAL004", resp.Diagnostics.Errors()[0].Code)
	assert.Empty(t, resp.Rows)
}

func TestProcessAPI_Errors(t *testing.T) {
	tests := []struct {
		name     string
		req      func(t *testing.T) *http.Request
		mutate   func(*config.Config)
		wantCode int
		wantErr  string
	}{
		{
			name: "no main file",
			req: func(t *testing.T) *http.Request {
				return uploadRequest(t, "/api/process", "", groupSeating, "")
			},
			wantCode: http.StatusBadRequest,
			wantErr:  "FILE004",
		},
		{
			name: "unknown profile",
			req: func(t *testing.T) *http.Request {
				return uploadRequest(t, "/api/process", groupRoster, "", "nope")
			},
			wantCode: http.StatusBadRequest,
			wantErr:  "PRF001",
		},
		{
			name: "not multipart",
			req: func(t *testing.T) *http.Request {
				req := httptest.NewRequest(http.MethodPost, "/api/process", strings.NewReader("{}"))
				req.Header.Set("Content-Type", "application/json")
				return req
			},
			wantCode: http.StatusBadRequest,
			wantErr:  "UPL001",
		},
		{
			name: "file too large",
			req: func(t *testing.T) *http.Request {
				return uploadRequest(t, "/api/process", groupRoster, "", "")
			},
			mutate:   func(c *config.Config) { c.Upload.MaxFileSize = 64 },
			wantCode: http.StatusRequestEntityTooLarge,
			wantErr:  "FILE001",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestServer(t, tt.mutate)
			rec := serve(s, tt.req(t))

			assert.Equal(t, tt.wantCode, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
			assert.Equal(t, tt.wantErr, decodeError(t, rec).Code)
		})
	}
}

func TestDownload(t *testing.T) {
	s := newTestServer(t, nil)

	t.Run("csv", func(t *testing.T) {
		rec := serve(s, uploadRequest(t, "/api/download", groupRoster, groupSeating, ""))

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, mimeCSV, rec.Header().Get("Content-Type"))
		assert.Equal(t, `attachment; filename="employee_data_with_seating.csv"`, rec.Header().Get("Content-Disposition"))
		assert.NotEmpty(t, rec.Header().Get("X-Run-ID"))
		assert.True(t, strings.HasPrefix(rec.Body.String(), "Employee Code,Name of Employee,"))
	})

	t.Run("xlsx", func(t *testing.T) {
		rec := serve(s, uploadRequest(t, "/api/download?format=xlsx", groupRoster, "", ""))

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, mimeXLSX, rec.Header().Get("Content-Type"))
		assert.Equal(t, `attachment; filename="processed_employee_data.xlsx"`, rec.Header().Get("Content-Disposition"))
		assert.True(t, bytes.HasPrefix(rec.Body.Bytes(), []byte("PK")), "xlsx is a zip archive")
	})

	t.Run("unsupported format", func(t *testing.T) {
		rec := serve(s, uploadRequest(t, "/api/download?format=pdf", groupRoster, "", ""))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "FILE008", decodeError(t, rec).Code)
	})

	t.Run("roster fails", func(t *testing.T) {
		rec := serve(s, uploadRequest(t, "/api/download", "Nothing\nx\n", "", ""))

		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		var resp ProcessResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
		assert.True(t, resp.Diagnostics.HasErrors())
	})
}

func TestProcessPage(t *testing.T) {
	s := newTestServer(t, nil)

	t.Run("success", func(t *testing.T) {
		rec := serve(s, uploadRequest(t, "/process", groupRoster, groupSeating, ""))

		require.Equal(t, http.StatusOK, rec.Code)
		body := rec.Body.String()
		assert.Contains(t, body, core.MsgProcessedJoin)
		assert.Contains(t, body, `download="employee_data_with_seating.csv"`)
		assert.Contains(t, body, `download="employee_data_with_seating.xlsx"`)
		assert.Contains(t, body, "href=\"data:text/csv;base64,")
		assert.Contains(t, body, "<td>Tower A</td>")
		assert.Contains(t, body, "1 matched, 1 without seating.")
	})

	t.Run("no main file shows the prompt", func(t *testing.T) {
		rec := serve(s, uploadRequest(t, "/process", "", "", ""))

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), core.MsgNoPrimary)
		assert.NotContains(t, rec.Body.String(), "base64")
	})

	t.Run("missing columns", func(t *testing.T) {
		rec := serve(s, uploadRequest(t, "/process", "Employee Code\nE1\n", groupSeating, ""))

		require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		body := rec.Body.String()
		assert.Contains(t, body, "diag-error")
		assert.Contains(t, body, "VAL004")
		assert.Contains(t, body, "<strong>Main employee data:</strong> Employee Code")
		assert.NotContains(t, body, "base64")
	})

	t.Run("errors render as html", func(t *testing.T) {
		rec := serve(s, uploadRequest(t, "/process", groupRoster, "", "nope"))

		require.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
		assert.Contains(t, rec.Body.String(), "PRF001")
	})
}

func TestUploadRateLimit(t *testing.T) {
	s := newTestServer(t, func(c *config.Config) {
		c.Rate.Enabled = true
		c.Rate.UploadLimit = 1
	})

	first := serve(s, uploadRequest(t, "/api/process", groupRoster, "", ""))
	require.Equal(t, http.StatusOK, first.Code)

	second := serve(s, uploadRequest(t, "/api/process", groupRoster, "", ""))
	require.Equal(t, http.StatusTooManyRequests, second.Code)
	assert.Equal(t, "60", second.Header().Get("Retry-After"))
	assert.Equal(t, "RATE001", decodeError(t, second).Code)

	// Read-only routes have their own budget.
	status := serve(s, httptest.NewRequest(http.MethodGet, "/api/status", nil))
	assert.Equal(t, http.StatusOK, status.Code)
}

func TestRateLimiter_Window(t *testing.T) {
	rl := newRateLimiter(2, time.Minute)
	defer rl.stop()

	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return now }

	assert.True(t, rl.allow("10.0.0.1"))
	assert.True(t, rl.allow("10.0.0.1"))
	assert.False(t, rl.allow("10.0.0.1"))
	assert.True(t, rl.allow("10.0.0.2"), "budgets are per client")

	now = now.Add(61 * time.Second)
	assert.True(t, rl.allow("10.0.0.1"), "window resets")
}

func TestStatusForError(t *testing.T) {
	assert.Equal(t, http.StatusServiceUnavailable, statusForError(core.ErrTooManyUploads))
	assert.Equal(t, http.StatusBadRequest, statusForError(errNoFile))
	assert.Equal(t, http.StatusRequestEntityTooLarge, statusForError(&http.MaxBytesError{Limit: 1}))
	assert.Equal(t, http.StatusInternalServerError, statusForError(assert.AnError))
}

func TestPreview(t *testing.T) {
	table := core.NewTable("A")
	table.Append(core.TextValue("1"))
	table.Append(core.TextValue("2"))
	table.Append(core.TextValue("3"))

	header, rows := preview(table, 2)
	assert.Equal(t, []string{"A"}, header)
	assert.Equal(t, [][]string{{"1"}, {"2"}}, rows)

	_, rows = preview(table, -1)
	assert.Len(t, rows, 3)
}
