// Package api implements the HTTP endpoints of the serve mode: file
// conversion uploads plus dictionary and column-layout lookups.
package api

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"sort"

	"github.com/labstack/echo/v4"

	"github.com/roadmaphealthcare/ediot/parsers/eligibility"
)

// maxUploadBytes bounds a single uploaded eligibility file.
const maxUploadBytes = 64 << 20

type Handler struct {
	version string
}

func NewHandler(version string) *Handler {
	return &Handler{version: version}
}

func (h *Handler) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api")
	api.GET("/info", h.GetInfo)
	api.GET("/dictionaries", h.GetDictionaries)
	api.GET("/columns", h.GetColumns)
	api.POST("/convert", h.Convert)
}

func (h *Handler) GetInfo(c echo.Context) error {
	keys := make([]string, 0, len(eligibility.Dictionaries))
	for key := range eligibility.Dictionaries {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return c.JSON(http.StatusOK, map[string]interface{}{
		"name":         "ediot",
		"version":      h.version,
		"dictionaries": keys,
	})
}

func (h *Handler) GetDictionaries(c echo.Context) error {
	return c.JSON(http.StatusOK, eligibility.DictionaryList())
}

// GetColumns returns the expanded output column layout of a dictionary
// (?dict=384, defaulting to the 384 layout).
func (h *Handler) GetColumns(c echo.Context) error {
	dict, err := requestDictionary(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"header":  dict.HeaderKey(),
		"columns": dict.Columns(),
	})
}

// Convert accepts a multipart "file" upload and returns it converted to
// ?format=csv (default), xlsx, or json. An optional multipart "dictionary"
// part supplies a custom JSON dictionary; otherwise ?dict selects a
// built-in one.
func (h *Handler) Convert(c echo.Context) error {
	dict, err := requestDictionary(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	fh, err := c.FormFile("file")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "missing file upload")
	}
	if fh.Size > maxUploadBytes {
		return echo.NewHTTPError(http.StatusRequestEntityTooLarge, "file too large")
	}
	f, err := fh.Open()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "unreadable upload")
	}
	defer f.Close()

	switch format := c.QueryParam("format"); format {
	case "", "csv":
		var buf bytes.Buffer
		if err := dict.WriteCSV(eligibility.NewSegmentScanner(f), &buf); err != nil {
			return conversionError(err)
		}
		c.Response().Header().Set(echo.HeaderContentDisposition,
			`attachment; filename="eligibility.csv"`)
		return c.Blob(http.StatusOK, "text/csv", buf.Bytes())

	case "xlsx":
		data, err := dict.WriteExcel(eligibility.NewSegmentScanner(f))
		if err != nil {
			return conversionError(err)
		}
		c.Response().Header().Set(echo.HeaderContentDisposition,
			`attachment; filename="eligibility.xlsx"`)
		return c.Blob(http.StatusOK,
			"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)

	case "json":
		records := []map[string]string{}
		err := dict.ParseMap(eligibility.NewSegmentScanner(f), func(m map[string]string) error {
			records = append(records, m)
			return nil
		})
		if err != nil {
			return conversionError(err)
		}
		return c.JSON(http.StatusOK, map[string]interface{}{
			"columns": dict.Columns(),
			"records": records,
			"total":   len(records),
		})

	default:
		return echo.NewHTTPError(http.StatusBadRequest,
			fmt.Sprintf("unknown format: %s", format))
	}
}

// requestDictionary resolves the dictionary for a request: a custom JSON
// "dictionary" part when present, otherwise the ?dict built-in.
func requestDictionary(c echo.Context) (*eligibility.Dictionary, error) {
	if fh, err := c.FormFile("dictionary"); err == nil {
		f, err := fh.Open()
		if err != nil {
			return nil, fmt.Errorf("unreadable dictionary upload")
		}
		defer f.Close()
		jsonData, err := io.ReadAll(io.LimitReader(f, 1<<20))
		if err != nil {
			return nil, err
		}
		return eligibility.LoadCustomDictionary(jsonData)
	}
	key := c.QueryParam("dict")
	if key == "" {
		key = eligibility.DefaultDictionaryKey
	}
	return eligibility.GetDictionary(key)
}

// conversionError maps parse failures to 422 so callers can tell bad input
// from server faults.
func conversionError(err error) error {
	return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
}
