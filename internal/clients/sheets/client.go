package sheets

import (
	"context"
	"fmt"
	"github.com/maxaizer/uninotify/internal/domain/models"
	"github.com/pkg/errors"
	"github.com/samber/lo"
	log "github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
	"google.golang.org/api/option"
	gsheets "google.golang.org/api/sheets/v4"
	"time"
)

// ValuesAPI is the subset of the spreadsheet values endpoint the client needs.
type ValuesAPI interface {
	Get(ctx context.Context, spreadsheetID, readRange string) ([][]any, error)
	Append(ctx context.Context, spreadsheetID, writeRange string, rows [][]any) error
	Update(ctx context.Context, spreadsheetID, writeRange string, rows [][]any) error
}

type Client struct {
	values        ValuesAPI
	spreadsheetID string
	sheetName     string
	rateLimiter   *rate.Limiter
	now           func() time.Time
}

func NewClient(ctx context.Context, spreadsheetID, sheetName, credentialsFile string) (*Client, error) {
	service, err := gsheets.NewService(ctx,
		option.WithCredentialsFile(credentialsFile),
		option.WithScopes(gsheets.SpreadsheetsScope))
	if err != nil {
		return nil, fmt.Errorf("can't create sheets service: %w", err)
	}

	return NewClientWithValues(&googleValues{service: service}, spreadsheetID, sheetName), nil
}

func NewClientWithValues(values ValuesAPI, spreadsheetID, sheetName string) *Client {
	return &Client{values: values, spreadsheetID: spreadsheetID, sheetName: sheetName, now: time.Now}
}

func (c *Client) SetRateLimit(maxRequestsPerSecond float32) {
	c.rateLimiter = rate.NewLimiter(rate.Limit(maxRequestsPerSecond), 1)
}

// GetAll reads the whole sheet. Rows that fail validation are skipped with a warning.
func (c *Client) GetAll(ctx context.Context) ([]models.University, error) {
	h, rows, err := c.readSheet(ctx)
	if err != nil {
		return nil, err
	}

	universities := make([]models.University, 0, len(rows))
	for _, cells := range rows {
		university, err := parseRow(h, cells)
		if err != nil {
			log.Warnf("skipping sheet row: %v", err)
			continue
		}
		universities = append(universities, university)
	}
	return universities, nil
}

func (c *Client) Add(ctx context.Context, university models.University) error {
	h, rows, err := c.readSheet(ctx)
	if err != nil {
		return err
	}

	if _, found := findRow(h, rows, university.Name); found {
		return errors.Wrapf(models.ErrAlreadyExists, "university %q", university.Name)
	}

	var toAppend [][]any
	if h.empty() {
		h = defaultHeader()
		toAppend = append(toAppend, lo.ToAnySlice(columns))
	}
	university.Programs = models.NormalizePrograms(university.Programs)
	toAppend = append(toAppend, h.layout(cellValues(university, c.now())))

	if err = c.wait(ctx); err != nil {
		return err
	}
	return c.values.Append(ctx, c.spreadsheetID, c.sheetName, toAppend)
}

func (c *Client) Update(ctx context.Context, name string, update models.UniversityUpdate) error {
	h, rows, err := c.readSheet(ctx)
	if err != nil {
		return err
	}

	index, found := findRow(h, rows, name)
	if !found {
		return errors.Wrapf(models.ErrNotFound, "university %q", name)
	}

	current, err := parseRow(h, rows[index])
	if err != nil {
		// a broken row is overwritten with whatever the update carries
		current = models.University{Name: name, Currency: "USD", AdmissionStatus: models.AdmissionClosed}
	}
	updated := update.Apply(current)

	// +2: header row and 1-based sheet rows
	writeRange := fmt.Sprintf("%s!A%d", c.sheetName, index+2)

	if err = c.wait(ctx); err != nil {
		return err
	}
	return c.values.Update(ctx, c.spreadsheetID, writeRange, [][]any{h.layout(cellValues(updated, c.now()))})
}

func (c *Client) readSheet(ctx context.Context) (header, [][]any, error) {
	if err := c.wait(ctx); err != nil {
		return header{}, nil, err
	}

	values, err := c.values.Get(ctx, c.spreadsheetID, c.sheetName)
	if err != nil {
		return header{}, nil, fmt.Errorf("error reading sheet %s: %w", c.sheetName, err)
	}
	if len(values) == 0 {
		return header{}, nil, nil
	}
	return newHeader(values[0]), values[1:], nil
}

func findRow(h header, rows [][]any, name string) (int, bool) {
	_, index, found := lo.FindIndexOf(rows, func(cells []any) bool {
		return h.cell(cells, "name") == name
	})
	return index, found
}

func (c *Client) wait(ctx context.Context) error {
	if c.rateLimiter == nil {
		return nil
	}
	return c.rateLimiter.Wait(ctx)
}

type googleValues struct {
	service *gsheets.Service
}

func (g *googleValues) Get(ctx context.Context, spreadsheetID, readRange string) ([][]any, error) {
	resp, err := g.service.Spreadsheets.Values.Get(spreadsheetID, readRange).Context(ctx).Do()
	if err != nil {
		return nil, err
	}
	return resp.Values, nil
}

func (g *googleValues) Append(ctx context.Context, spreadsheetID, writeRange string, rows [][]any) error {
	_, err := g.service.Spreadsheets.Values.Append(spreadsheetID, writeRange, &gsheets.ValueRange{Values: rows}).
		ValueInputOption("RAW").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	return err
}

func (g *googleValues) Update(ctx context.Context, spreadsheetID, writeRange string, rows [][]any) error {
	_, err := g.service.Spreadsheets.Values.Update(spreadsheetID, writeRange, &gsheets.ValueRange{Values: rows}).
		ValueInputOption("RAW").
		Context(ctx).
		Do()
	return err
}
