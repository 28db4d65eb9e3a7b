package twse

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/shopspring/decimal"
)

const DefaultBaseURL = "https://mis.twse.com.tw/stock/api"

// Client - клиент снапшотного API котировок TWSE MIS.
// Это публичный эндпоинт без подписи; таймаут задаем явно, чтобы один
// зависший запрос не растягивал цикл планировщика.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// --- Implementation of domain.PriceSource ---

// GetPrice возвращает цену последней сделки по коду бумаги ("2330").
// Биржа отдает "-" или "0" вместо цены, когда сделок нет, - это и любой
// битый ответ схлопывается в ошибку: для вызывающего цена просто недоступна.
func (c *Client) GetPrice(ctx context.Context, instrumentID string) (decimal.Decimal, error) {
	url := fmt.Sprintf("%s/getStockInfo.jsp?ex_ch=tse_%s.tw", c.baseURL, instrumentID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return decimal.Zero, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return decimal.Zero, fmt.Errorf("quote request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return decimal.Zero, fmt.Errorf("quote api status %d", resp.StatusCode)
	}

	var info StockInfoResponse
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return decimal.Zero, fmt.Errorf("failed to parse quote response: %w", err)
	}

	if len(info.MsgArray) == 0 {
		return decimal.Zero, fmt.Errorf("no quote data for %s", instrumentID)
	}

	last := info.MsgArray[0].LastPrice
	if last == "" || last == "-" || last == "0" {
		return decimal.Zero, fmt.Errorf("no trade price for %s", instrumentID)
	}

	price, err := decimal.NewFromString(last)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid price %q for %s", last, instrumentID)
	}

	return price, nil
}
