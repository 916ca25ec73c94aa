// Package sheets appends tweet rows to a Google Spreadsheet.
package sheets

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"github.com/custodia-labs/tweetwatch/internal/connectors/google"
	"github.com/custodia-labs/tweetwatch/internal/core/domain"
	"github.com/custodia-labs/tweetwatch/internal/core/ports/driven"
	"github.com/custodia-labs/tweetwatch/internal/logger"
)

// Ensure the adapters implement the interfaces.
var (
	_ driven.SinkOpener = (*Opener)(nil)
	_ driven.Sink       = (*Sink)(nil)
)

// DefaultCredentialsFile is the service-account key looked up when none is configured.
const DefaultCredentialsFile = "client_secret.json"

// Config identifies the spreadsheet and how to reach it.
type Config struct {
	// SpreadsheetID is the document id from the spreadsheet URL.
	SpreadsheetID string

	// CredentialsFile is the service-account key file.
	CredentialsFile string

	// WritesPerSecond paces appends. Zero uses the Sheets default;
	// a negative value disables pacing.
	WritesPerSecond float64
}

// Opener opens a spreadsheet and selects its first worksheet.
type Opener struct {
	cfg  Config
	opts []option.ClientOption
}

// NewOpener creates an opener for cfg. When opts is empty, Open
// authenticates with cfg.CredentialsFile.
func NewOpener(cfg Config, opts ...option.ClientOption) *Opener {
	if cfg.CredentialsFile == "" {
		cfg.CredentialsFile = DefaultCredentialsFile
	}
	return &Opener{cfg: cfg, opts: opts}
}

// Open authenticates, loads the document metadata and selects the
// worksheet with the lowest index.
func (o *Opener) Open(ctx context.Context) (driven.Sink, error) {
	if o.cfg.SpreadsheetID == "" {
		return nil, fmt.Errorf("%w: spreadsheet id is empty", domain.ErrSinkConnection)
	}

	opts := o.opts
	if len(opts) == 0 {
		ts, err := google.ServiceAccountTokenSource(ctx, o.cfg.CredentialsFile, sheets.SpreadsheetsScope)
		if err != nil {
			return nil, err
		}
		opts = []option.ClientOption{option.WithTokenSource(ts)}
	}

	svc, err := google.NewSheetsService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}

	doc, err := svc.Spreadsheets.Get(o.cfg.SpreadsheetID).
		Fields("spreadsheetId", "properties.title", "sheets.properties").
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("load document %s: %w", o.cfg.SpreadsheetID, google.WrapError(err))
	}

	sheet := firstSheet(doc)
	if sheet == nil {
		return nil, google.ErrNoWorksheet
	}

	title := ""
	if doc.Properties != nil {
		title = doc.Properties.Title
	}
	logger.Info("Opened spreadsheet %q, worksheet %q", title, sheet.Title)

	return &Sink{
		svc:           svc,
		spreadsheetID: o.cfg.SpreadsheetID,
		docTitle:      title,
		sheetTitle:    sheet.Title,
		limiter:       newLimiter(o.cfg.WritesPerSecond),
	}, nil
}

func newLimiter(perSecond float64) *google.RateLimiter {
	switch {
	case perSecond == 0:
		return google.NewRateLimiter(google.ServiceSheets)
	case perSecond < 0:
		return google.NewRateLimiterWithConfig(google.RateLimitConfig{})
	default:
		return google.NewRateLimiterWithConfig(google.RateLimitConfig{
			RequestsPerSecond: perSecond,
			BurstSize:         google.DefaultRateLimits[google.ServiceSheets].BurstSize,
		})
	}
}

// firstSheet returns the properties of the worksheet with the lowest index.
func firstSheet(doc *sheets.Spreadsheet) *sheets.SheetProperties {
	var first *sheets.SheetProperties
	for _, s := range doc.Sheets {
		if s == nil || s.Properties == nil {
			continue
		}
		if first == nil || s.Properties.Index < first.Index {
			first = s.Properties
		}
	}
	return first
}

// Sink appends rows to one worksheet.
type Sink struct {
	svc           *sheets.Service
	spreadsheetID string
	docTitle      string
	sheetTitle    string
	limiter       *google.RateLimiter
}

// Name returns "<document> / <worksheet>".
func (s *Sink) Name() string {
	return s.docTitle + " / " + s.sheetTitle
}

// Append adds the record as a new row below the worksheet's data.
// Values are stored as typed, so tweet text is never evaluated as a formula.
func (s *Sink) Append(ctx context.Context, record domain.TweetRecord) error {
	if !s.limiter.Allow() {
		logger.Debug("Sheets write quota reached, waiting")
		if err := s.limiter.Wait(ctx); err != nil {
			return err
		}
	}

	row := record.Row()
	values := make([]interface{}, len(row))
	for i, v := range row {
		values[i] = v
	}

	_, err := s.svc.Spreadsheets.Values.
		Append(s.spreadsheetID, a1Range(s.sheetTitle), &sheets.ValueRange{
			MajorDimension: "ROWS",
			Values:         [][]interface{}{values},
		}).
		ValueInputOption("RAW").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	if err != nil {
		return google.WrapError(err)
	}
	return nil
}

// Close is a no-op; the HTTP client holds no per-sink resources.
func (s *Sink) Close() error {
	return nil
}

// a1Range returns the A1 anchor for a worksheet title, quoting it.
func a1Range(sheetTitle string) string {
	return "'" + strings.ReplaceAll(sheetTitle, "'", "''") + "'!A1"
}
