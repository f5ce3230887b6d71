package gsheets

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	gax "github.com/googleapis/gax-go/v2"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"stock_dashboard/internal/feature/candidates/domain"
	"stock_dashboard/internal/feature/candidates/domain/entity"
	"stock_dashboard/internal/feature/candidates/usecase"
	"stock_dashboard/internal/platform/credential"
)

const spreadsheetMimeType = "application/vnd.google-apps.spreadsheet"

// Client reads the first worksheet of a spreadsheet located by its exact title.
type Client struct {
	cfg     Config
	base    *http.Client
	backoff gax.Backoff

	// authorize turns a credential into an authenticated HTTP client.
	authorize func(ctx context.Context, cred *credential.Credential) (*http.Client, error)
}

// Clientがusecase.SheetSourceを実装していることをコンパイル時に検証します。
var _ usecase.SheetSource = (*Client)(nil)

// NewClient creates a spreadsheet client. base carries transport timeouts for
// both the token exchange and the API calls.
func NewClient(cfg Config, base *http.Client) *Client {
	c := &Client{
		cfg:     cfg.withDefaults(),
		base:    base,
		backoff: gax.Backoff{Initial: 500 * time.Millisecond, Max: 5 * time.Second, Multiplier: 2},
	}
	c.authorize = c.jwtClient
	return c
}

// FetchGrid returns every cell of the first worksheet as strings, exactly as
// the Sheets API formats them. A sheet with fewer than two rows yields an
// empty grid. Failures are returned as *domain.IntegrationError.
func (c *Client) FetchGrid(ctx context.Context, cred *credential.Credential) (entity.RawGrid, error) {
	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	hc, err := c.authorize(ctx, cred)
	if err != nil {
		var ce *domain.ConfigurationError
		if errors.As(err, &ce) {
			return nil, err
		}
		return nil, classify("authorize", err)
	}

	driveSrv, err := drive.NewService(ctx, c.options(hc, c.cfg.DriveEndpoint)...)
	if err != nil {
		return nil, classify("drive client", err)
	}
	sheetsSrv, err := sheets.NewService(ctx, c.options(hc, c.cfg.SheetsEndpoint)...)
	if err != nil {
		return nil, classify("sheets client", err)
	}

	id, err := c.findSpreadsheet(ctx, driveSrv)
	if err != nil {
		return nil, err
	}
	title, err := c.firstSheetTitle(ctx, sheetsSrv, id)
	if err != nil {
		return nil, err
	}

	var vr *sheets.ValueRange
	err = c.invoke(ctx, "read values", func(ctx context.Context) error {
		var err error
		vr, err = sheetsSrv.Spreadsheets.Values.Get(id, quoteSheetTitle(title)).
			ValueRenderOption("FORMATTED_VALUE").
			MajorDimension("ROWS").
			Context(ctx).
			Do()
		return err
	})
	if err != nil {
		return nil, err
	}

	grid := toGrid(vr.Values)
	slog.Debug("spreadsheet read", "spreadsheet", c.cfg.SpreadsheetName, "sheet", title, "rows", len(grid))
	if len(grid) < 2 {
		return entity.RawGrid{}, nil
	}
	return grid, nil
}

// findSpreadsheet resolves the configured title to a spreadsheet id. Drive's
// name filter is looser than required, so the match is repeated exactly here.
func (c *Client) findSpreadsheet(ctx context.Context, srv *drive.Service) (string, error) {
	name := c.cfg.SpreadsheetName
	q := fmt.Sprintf("name = '%s' and mimeType = '%s' and trashed = false", escapeQuery(name), spreadsheetMimeType)

	var list *drive.FileList
	err := c.invoke(ctx, "find spreadsheet", func(ctx context.Context) error {
		var err error
		list, err = srv.Files.List().
			Q(q).
			Fields("files(id,name)").
			PageSize(50).
			SupportsAllDrives(true).
			IncludeItemsFromAllDrives(true).
			Context(ctx).
			Do()
		return err
	})
	if err != nil {
		return "", err
	}

	for _, f := range list.Files {
		if f.Name == name {
			return f.Id, nil
		}
	}
	return "", &domain.IntegrationError{
		Op:    "find spreadsheet",
		Kind:  domain.IntegrationNotFound,
		Cause: fmt.Errorf("spreadsheet %q not found", name),
	}
}

// firstSheetTitle returns the title of the worksheet with the lowest index.
func (c *Client) firstSheetTitle(ctx context.Context, srv *sheets.Service, id string) (string, error) {
	var ss *sheets.Spreadsheet
	err := c.invoke(ctx, "read sheet list", func(ctx context.Context) error {
		var err error
		ss, err = srv.Spreadsheets.Get(id).Fields("sheets.properties").Context(ctx).Do()
		return err
	})
	if err != nil {
		return "", err
	}

	var first *sheets.SheetProperties
	for _, sh := range ss.Sheets {
		if sh == nil || sh.Properties == nil {
			continue
		}
		if first == nil || sh.Properties.Index < first.Index {
			first = sh.Properties
		}
	}
	if first == nil {
		return "", &domain.IntegrationError{
			Op:    "read sheet list",
			Kind:  domain.IntegrationNotFound,
			Cause: errors.New("spreadsheet has no worksheets"),
		}
	}
	return first.Title, nil
}

// invoke runs call with bounded retries on quota, network and 5xx failures.
func (c *Client) invoke(ctx context.Context, op string, call func(context.Context) error) error {
	retryer := &boundedRetryer{op: op, backoff: c.backoff, max: c.cfg.MaxAttempts}
	err := gax.Invoke(ctx, func(ctx context.Context, _ gax.CallSettings) error {
		return call(ctx)
	}, gax.WithRetry(func() gax.Retryer { return retryer }))
	if err != nil {
		return classify(op, err)
	}
	return nil
}

func (c *Client) options(hc *http.Client, endpoint string) []option.ClientOption {
	opts := []option.ClientOption{option.WithHTTPClient(hc)}
	if endpoint != "" {
		opts = append(opts, option.WithEndpoint(endpoint))
	}
	return opts
}

// jwtClient signs requests as the service account.
func (c *Client) jwtClient(ctx context.Context, cred *credential.Credential) (*http.Client, error) {
	conf, err := google.JWTConfigFromJSON(cred.JSON(), credential.Scopes...)
	if err != nil {
		return nil, &domain.ConfigurationError{Source: "credential", Cause: err}
	}
	if c.base != nil {
		ctx = context.WithValue(ctx, oauth2.HTTPClient, c.base)
	}
	return conf.Client(ctx), nil
}

// boundedRetryer retries retryable integration failures up to max attempts.
type boundedRetryer struct {
	op       string
	backoff  gax.Backoff
	max      int
	attempts int
}

func (r *boundedRetryer) Retry(err error) (time.Duration, bool) {
	r.attempts++
	if r.attempts >= r.max || !classify(r.op, err).Retryable() {
		return 0, false
	}
	pause := r.backoff.Pause()
	slog.Debug("retrying spreadsheet call", "op", r.op, "attempt", r.attempts, "pause", pause, "error", err)
	return pause, true
}

func toGrid(values [][]interface{}) entity.RawGrid {
	grid := make(entity.RawGrid, 0, len(values))
	for _, row := range values {
		cells := make([]string, len(row))
		for i, v := range row {
			if v == nil {
				continue
			}
			cells[i] = fmt.Sprint(v)
		}
		grid = append(grid, cells)
	}
	return grid
}

// quoteSheetTitle turns a sheet title into an A1 range covering the whole sheet.
func quoteSheetTitle(title string) string {
	return "'" + strings.ReplaceAll(title, "'", "''") + "'"
}

func escapeQuery(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	return strings.ReplaceAll(s, `'`, `\'`)
}
