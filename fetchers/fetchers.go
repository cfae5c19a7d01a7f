package fetchers

import (
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"net/http"
)

const (
	CBRURL = "http://www.cbr.ru/scripts/XML_daily.asp"
)

type (
	valCurs struct {
		XMLName xml.Name `xml:"ValCurs"`
		Date    string   `xml:"Date,attr"`
		Valutes []valute `xml:"Valute"`
	}

	// Pointers tell an empty element apart from a missing one.
	valute struct {
		ID       string  `xml:"ID,attr"`
		Name     *string `xml:"Name"`
		CharCode *string `xml:"CharCode"`
		Value    *string `xml:"Value"`
		Nominal  *string `xml:"Nominal"`
	}
)

var (
	ErrClient  = errors.New("client error")
	ErrServer  = errors.New("server error")
	ErrUnknown = errors.New("unknown error")
)

func getData(ctx context.Context, url string) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)

	if err != nil {
		return nil, err
	}

	req.Header.Add("Accept", "application/xml")

	return req, nil
}

func handleHTTPStatusCodeError(res *http.Response) error {
	if res.StatusCode == http.StatusOK {
		return nil
	}

	switch {
	case res.StatusCode >= http.StatusBadRequest && res.StatusCode < http.StatusInternalServerError:
		return fmt.Errorf("%w: status %d", ErrClient, res.StatusCode)
	case res.StatusCode >= http.StatusInternalServerError:
		return fmt.Errorf("%w: status %d", ErrServer, res.StatusCode)
	default:
		return fmt.Errorf("%w: status %d", ErrUnknown, res.StatusCode)
	}
}
