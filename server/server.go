package server

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	currency "github.com/malusev998/cbr-currency"
	"github.com/malusev998/cbr-currency/chart"
)

type (
	// Service is what the HTTP API needs from the rates service.
	Service interface {
		Currencies(ctx context.Context, save bool) ([]currency.Currency, error)
		Find(ctx context.Context, identifier string) (currency.Currency, error)
		Convert(ctx context.Context, amount decimal.Decimal, from, to string) (decimal.Decimal, error)
	}

	handler struct {
		service Service
		logger  *slog.Logger
	}

	conversionResponse struct {
		Amount string `json:"amount"`
		From   string `json:"from"`
		To     string `json:"to"`
		Result string `json:"result"`
	}
)

func New(service Service, logger *slog.Logger) *gin.Engine {
	if logger == nil {
		logger = slog.Default()
	}

	h := handler{service: service, logger: logger}

	router := gin.New()
	router.Use(gin.Recovery(), h.logRequests)

	router.GET("/currencies", h.listCurrencies)
	router.GET("/currencies/:identifier", h.getCurrency)
	router.GET("/convert", h.convert)
	router.GET("/chart.png", h.chart)

	return router
}

func (h handler) logRequests(c *gin.Context) {
	start := time.Now()

	c.Next()

	h.logger.Info("request completed",
		slog.String("method", c.Request.Method),
		slog.String("path", c.Request.URL.Path),
		slog.Int("status", c.Writer.Status()),
		slog.Duration("latency", time.Since(start)),
	)
}

func (h handler) listCurrencies(c *gin.Context) {
	currencies, err := h.service.Currencies(c.Request.Context(), false)

	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, currencies)
}

func (h handler) getCurrency(c *gin.Context) {
	found, err := h.service.Find(c.Request.Context(), c.Param("identifier"))

	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, found)
}

func (h handler) convert(c *gin.Context) {
	amount, err := decimal.NewFromString(c.Query("amount"))

	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "amount must be a number"})
		return
	}

	from, to := c.Query("from"), c.Query("to")

	if from == "" || to == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "from and to are required"})
		return
	}

	result, err := h.service.Convert(c.Request.Context(), amount, from, to)

	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, conversionResponse{
		Amount: amount.String(),
		From:   from,
		To:     to,
		Result: result.String(),
	})
}

func (h handler) chart(c *gin.Context) {
	currencies, err := h.service.Currencies(c.Request.Context(), false)

	if err != nil {
		h.fail(c, err)
		return
	}

	p, err := chart.BarChart(currencies)

	if err != nil {
		h.fail(c, err)
		return
	}

	var buffer bytes.Buffer

	if err := chart.Encode(p, &buffer, "png"); err != nil {
		h.fail(c, err)
		return
	}

	c.Data(http.StatusOK, "image/png", buffer.Bytes())
}

// fail checks ErrFetch before ErrNotFound, a lookup that failed to fetch
// wraps both.
func (h handler) fail(c *gin.Context, err error) {
	status := http.StatusInternalServerError

	switch {
	case errors.Is(err, currency.ErrFetch):
		status = http.StatusBadGateway
	case errors.Is(err, currency.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, chart.ErrNoData):
		status = http.StatusNotFound
	}

	if status >= http.StatusInternalServerError {
		h.logger.Error("request failed", slog.String("path", c.Request.URL.Path), slog.Any("error", err))
	}

	c.JSON(status, gin.H{"error": err.Error()})
}
